package domain

import "time"

type InvoiceStatus string

const (
	InvoicePending   InvoiceStatus = "PENDING"
	InvoicePaid      InvoiceStatus = "PAID"
	InvoiceCancelled InvoiceStatus = "CANCELLED"
)

func (s InvoiceStatus) Valid() bool {
	switch s {
	case InvoicePending, InvoicePaid, InvoiceCancelled:
		return true
	}
	return false
}

type PaymentMethod string

const (
	PayCreditCard   PaymentMethod = "CREDIT_CARD"
	PayDebitCard    PaymentMethod = "DEBIT_CARD"
	PayCash         PaymentMethod = "CASH"
	PayBankTransfer PaymentMethod = "BANK_TRANSFER"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PayCreditCard, PayDebitCard, PayCash, PayBankTransfer:
		return true
	}
	return false
}

// Invoice is derived from exactly one completed booking; BookingID carries a
// unique index so a second invoice for the same booking cannot be inserted
// even under concurrent event redelivery.
type Invoice struct {
	ID             string         `gorm:"primaryKey" json:"id"`
	InvoiceNumber  string         `gorm:"uniqueIndex" json:"invoice_number"`
	BookingID      string         `gorm:"uniqueIndex" json:"booking_id"`
	CustomerID     string         `gorm:"index" json:"customer_id"`
	RoomID         string         `json:"room_id"`
	CheckInDate    time.Time      `json:"check_in_date"`
	CheckOutDate   time.Time      `json:"check_out_date"`
	NumberOfNights int32          `json:"number_of_nights"`
	RoomCharges    float64        `json:"room_charges"`
	TaxAmount      float64        `json:"tax_amount"`
	TotalAmount    float64        `json:"total_amount"`
	Status         InvoiceStatus  `gorm:"index" json:"status"`
	PaymentMethod  *PaymentMethod `json:"payment_method,omitempty"`
	PaidAt         *time.Time     `json:"paid_at,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}
