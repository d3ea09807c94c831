package models

// Status and reference enums are stored as plain strings. Inputs are checked
// with the Valid() helpers inside each model's validate().

type VendorOrderStatus string

const (
	VendorOrderStatusPending   VendorOrderStatus = "PENDING"
	VendorOrderStatusApproved  VendorOrderStatus = "APPROVED"
	VendorOrderStatusReceiving VendorOrderStatus = "RECEIVING"
	VendorOrderStatusReceived  VendorOrderStatus = "RECEIVED"
	VendorOrderStatusCancelled VendorOrderStatus = "CANCELLED"
)

func (s VendorOrderStatus) Valid() bool {
	switch s {
	case VendorOrderStatusPending,
		VendorOrderStatusApproved,
		VendorOrderStatusReceiving,
		VendorOrderStatusReceived,
		VendorOrderStatusCancelled:
		return true
	}
	return false
}

type CustomerOrderStatus string

const (
	CustomerOrderStatusPending    CustomerOrderStatus = "PENDING"
	CustomerOrderStatusConfirmed  CustomerOrderStatus = "CONFIRMED"
	CustomerOrderStatusDelivering CustomerOrderStatus = "DELIVERING"
	CustomerOrderStatusDelivered  CustomerOrderStatus = "DELIVERED"
	CustomerOrderStatusCancelled  CustomerOrderStatus = "CANCELLED"
)

func (s CustomerOrderStatus) Valid() bool {
	switch s {
	case CustomerOrderStatusPending,
		CustomerOrderStatusConfirmed,
		CustomerOrderStatusDelivering,
		CustomerOrderStatusDelivered,
		CustomerOrderStatusCancelled:
		return true
	}
	return false
}

type TransferOrderStatus string

const (
	TransferOrderStatusPending   TransferOrderStatus = "PENDING"
	TransferOrderStatusApproved  TransferOrderStatus = "APPROVED"
	TransferOrderStatusReceiving TransferOrderStatus = "RECEIVING"
	TransferOrderStatusReceived  TransferOrderStatus = "RECEIVED"
	TransferOrderStatusCancelled TransferOrderStatus = "CANCELLED"
)

func (s TransferOrderStatus) Valid() bool {
	switch s {
	case TransferOrderStatusPending,
		TransferOrderStatusApproved,
		TransferOrderStatusReceiving,
		TransferOrderStatusReceived,
		TransferOrderStatusCancelled:
		return true
	}
	return false
}

type StockDirection string

const (
	StockDirectionIn  StockDirection = "IN"
	StockDirectionOut StockDirection = "OUT"
)

func (d StockDirection) Valid() bool {
	return d == StockDirectionIn || d == StockDirectionOut
}

// StockReferenceType tags the event that moved stock.
type StockReferenceType string

const (
	StockReferenceTypeVendorOrder       StockReferenceType = "VENDOR_ORDER"
	StockReferenceTypeCustomerOrder     StockReferenceType = "CUSTOMER_ORDER"
	StockReferenceTypeWarehouseTransfer StockReferenceType = "WAREHOUSE_TRANSFER"
	StockReferenceTypeAdjustment        StockReferenceType = "ADJUSTMENT"
)

func (t StockReferenceType) Valid() bool {
	switch t {
	case StockReferenceTypeVendorOrder,
		StockReferenceTypeCustomerOrder,
		StockReferenceTypeWarehouseTransfer,
		StockReferenceTypeAdjustment:
		return true
	}
	return false
}

type InvoiceType string

const (
	InvoiceTypeVendor   InvoiceType = "VENDOR"
	InvoiceTypeCustomer InvoiceType = "CUSTOMER"
	InvoiceTypeFinance  InvoiceType = "FINANCE"
)

func (t InvoiceType) Valid() bool {
	switch t {
	case InvoiceTypeVendor, InvoiceTypeCustomer, InvoiceTypeFinance:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentStatusUnpaid  PaymentStatus = "UNPAID"
	PaymentStatusPartial PaymentStatus = "PARTIAL"
	PaymentStatusPaid    PaymentStatus = "PAID"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusUnpaid, PaymentStatusPartial, PaymentStatusPaid:
		return true
	}
	return false
}

type AccountType string

const (
	AccountTypeCash   AccountType = "CASH"
	AccountTypeBank   AccountType = "BANK"
	AccountTypeUpi    AccountType = "UPI"
	AccountTypeCheque AccountType = "CHEQUE"
)

func (t AccountType) Valid() bool {
	switch t {
	case AccountTypeCash, AccountTypeBank, AccountTypeUpi, AccountTypeCheque:
		return true
	}
	return false
}

type PaymentDirection string

const (
	PaymentDirectionIn  PaymentDirection = "IN"
	PaymentDirectionOut PaymentDirection = "OUT"
)

func (d PaymentDirection) Valid() bool {
	return d == PaymentDirectionIn || d == PaymentDirectionOut
}

type PaymentMode string

const (
	PaymentModeCash   PaymentMode = "CASH"
	PaymentModeBank   PaymentMode = "BANK"
	PaymentModeUpi    PaymentMode = "UPI"
	PaymentModeCheque PaymentMode = "CHEQUE"
)

func (m PaymentMode) Valid() bool {
	switch m {
	case PaymentModeCash, PaymentModeBank, PaymentModeUpi, PaymentModeCheque:
		return true
	}
	return false
}

// DocumentType keys the per-organization number sequences.
type DocumentType string

const (
	DocumentTypeVendorOrder     DocumentType = "VENDOR_ORDER"
	DocumentTypeCustomerOrder   DocumentType = "CUSTOMER_ORDER"
	DocumentTypeTransferOrder   DocumentType = "TRANSFER_ORDER"
	DocumentTypeVendorInvoice   DocumentType = "VENDOR_INVOICE"
	DocumentTypeCustomerInvoice DocumentType = "CUSTOMER_INVOICE"
	DocumentTypeFinanceInvoice  DocumentType = "FINANCE_INVOICE"
)
