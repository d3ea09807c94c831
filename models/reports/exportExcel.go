package reports

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// BuildStockReportExcel renders the stock report as an xlsx workbook.
// The caller owns the file and should Close it after writing.
func BuildStockReportExcel(ctx context.Context, warehouseId *int) (*excelize.File, error) {

	data, err := GetStockReport(ctx, warehouseId)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	sheetName := "Sheet1"
	if _, err := f.NewSheet(sheetName); err != nil {
		return nil, err
	}

	// Add headers
	headings := []string{"Material", "SKU", "Warehouse", "Available", "Reserved", "OnHand", "ReorderLevel"}
	col := 'A'
	for _, h := range headings {
		f.SetCellValue(sheetName, string(col)+"1", h)
		col++
	}

	// Add data
	for i, d := range data {
		row := fmt.Sprint(i + 2)
		f.SetCellValue(sheetName, "A"+row, d.MaterialName)
		f.SetCellValue(sheetName, "B"+row, d.MaterialSku)
		f.SetCellValue(sheetName, "C"+row, d.WarehouseName)
		f.SetCellValue(sheetName, "D"+row, d.AvailableQty.String())
		f.SetCellValue(sheetName, "E"+row, d.ReservedQty.String())
		f.SetCellValue(sheetName, "F"+row, d.OnHandQty.String())
		f.SetCellValue(sheetName, "G"+row, d.ReorderLevel.String())
	}

	return f, nil
}
