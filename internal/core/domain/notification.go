package domain

import "time"

const MaxNotificationText = 240

type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

// Texts for notifications emitted as side effects of order activity.
const (
	NoticeOrderClaimed   = "En tjenesteutfører har påtatt seg oppdraget ditt."
	NoticeOrderAssigned  = "Nytt oppdrag tildelt: "
	NoticeOrderCompleted = "Oppdrag er markert som utført."
	NoticeNewMessage     = "Du har fått en ny melding i oppdragschatten."
)
