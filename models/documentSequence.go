package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DocumentSequence hands out gapless per-org numbers for each document
// type. The row is locked inside the caller's transaction so two
// concurrent creates can never draw the same number.
type DocumentSequence struct {
	ID           int          `gorm:"primary_key" json:"id"`
	OrgId        string       `gorm:"uniqueIndex:idx_doc_seq_org_type;not null" json:"org_id"`
	DocumentType DocumentType `gorm:"uniqueIndex:idx_doc_seq_org_type;size:30;not null" json:"document_type"`
	Prefix       string       `gorm:"size:10;not null" json:"prefix"`
	LastNumber   int          `gorm:"not null;default:0" json:"last_number"`
	CreatedAt    time.Time    `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time    `gorm:"autoUpdateTime" json:"updated_at"`
}

func documentPrefix(docType DocumentType) string {
	switch docType {
	case DocumentTypeVendorOrder:
		return "PO"
	case DocumentTypeCustomerOrder:
		return "SO"
	case DocumentTypeTransferOrder:
		return "TO"
	case DocumentTypeVendorInvoice:
		return "BIL"
	case DocumentTypeCustomerInvoice:
		return "INV"
	case DocumentTypeFinanceInvoice:
		return "FIN"
	}
	return "DOC"
}

// NextDocumentNumber must run inside tx. It locks the counter row,
// bumps it and returns the formatted number, e.g. "PO-00042".
func NextDocumentNumber(tx *gorm.DB, orgId string, docType DocumentType) (string, error) {

	seq := DocumentSequence{
		OrgId:        orgId,
		DocumentType: docType,
		Prefix:       documentPrefix(docType),
	}
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("org_id = ? AND document_type = ?", orgId, docType).
		FirstOrCreate(&seq).Error
	if err != nil {
		return "", err
	}

	seq.LastNumber++
	err = tx.Model(&seq).UpdateColumn("last_number", seq.LastNumber).Error
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s-%05d", seq.Prefix, seq.LastNumber), nil
}
