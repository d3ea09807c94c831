package models

import (
	"log"

	"bitbucket.org/mmdatafocus/bizmanage_backend/config"
)

func MigrateTable() {
	db := config.GetDB()

	err := db.AutoMigrate(
		&Organization{}, &User{},
		&Unit{}, &Category{}, &Material{}, &Warehouse{},
		&Vendor{}, &Customer{},
		&StockRecord{}, &StockUsage{},
		&VendorOrder{}, &VendorOrderDetail{},
		&CustomerOrder{}, &CustomerOrderDetail{},
		&TransferOrder{}, &TransferOrderDetail{},
		&Invoice{}, &Account{}, &Payment{},
		&DocumentSequence{},
	)
	if err != nil {
		log.Fatal(err)
	}
}
