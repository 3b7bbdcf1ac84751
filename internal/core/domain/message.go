package domain

import "time"

const MaxMessageText = 1000

// Message is a private chat line between an order's landlord and its worker.
type Message struct {
	ID          string    `json:"id"`
	OrderID     string    `json:"order_id"`
	SenderID    string    `json:"sender_id"`
	RecipientID string    `json:"recipient_id"`
	Text        string    `json:"text"`
	CreatedAt   time.Time `json:"created_at"`
}
