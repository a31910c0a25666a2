package models

// Invoice statuses reported by the backend.
const (
	InvoiceStatusPending  = "pending"
	InvoiceStatusSent     = "sent"
	InvoiceStatusAccepted = "accepted"
	InvoiceStatusFailed   = "failed"
	InvoiceStatusRetrying = "retrying"
)

type Invoice struct {
	ID            ID            `json:"id"`
	InvoiceNumber string        `json:"invoice_number"`
	ReceiptNumber string        `json:"receipt_number,omitempty"`
	DeviceID      ID            `json:"device_id,omitempty"`
	CustomerName  string        `json:"customer_name,omitempty"`
	CustomerPin   string        `json:"customer_pin,omitempty"`
	Status        string        `json:"status"`
	TotalAmount   Amount        `json:"total_amount"`
	TaxAmount     Amount        `json:"tax_amount"`
	Currency      string        `json:"currency,omitempty"`
	RetryCount    int           `json:"retry_count"`
	LastError     string        `json:"last_error,omitempty"`
	QRCode        string        `json:"qr_code,omitempty"`
	CreatedAt     Time          `json:"created_at"`
	SyncedAt      Time          `json:"synced_at"`
	Items         []InvoiceItem `json:"items,omitempty"`
}

type InvoiceItem struct {
	Description string `json:"description"`
	Quantity    Amount `json:"quantity"`
	UnitPrice   Amount `json:"unit_price"`
	TaxType     string `json:"tax_type,omitempty"`
	TaxAmount   Amount `json:"tax_amount"`
	Total       Amount `json:"total"`
}

// NewInvoice is the body of POST /invoices/.
type NewInvoice struct {
	DeviceID     ID               `json:"device_id"`
	CustomerName string           `json:"customer_name,omitempty"`
	CustomerPin  string           `json:"customer_pin,omitempty"`
	Items        []NewInvoiceItem `json:"items"`
}

type NewInvoiceItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	TaxType     string  `json:"tax_type,omitempty"`
}

// RetryAllResult is returned by POST /invoices/retry-all/.
type RetryAllResult struct {
	Queued  int    `json:"queued"`
	Message string `json:"message,omitempty"`
}
