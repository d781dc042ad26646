package models

import "time"

// Transaction statuses shown on the back-office payments screen.
const (
	TxPending   = "en_attente"
	TxPartial   = "partiel"
	TxCompleted = "complété"
	TxCancelled = "annulé"
)

// Transaction is the payment record shown in the back office. This surface
// is display-only for now: rows come from fixtures, there is no live write
// path behind it.
type Transaction struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	PropertyID    string    `json:"property_id"`
	TotalAmount   int64     `json:"total_amount"`
	PaidAmount    int64     `json:"paid_amount"`
	RemainAmount  int64     `json:"remain_amount"`
	Status        string    `json:"status"`
	PaymentMethod string    `json:"payment_method"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
