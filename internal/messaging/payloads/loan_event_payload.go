package payloads

import (
	"time"

	"github.com/google/uuid"
)

// Типы событий жизненного цикла одалживания.
const (
	EventTypeLoanCreated  = "loan.created"
	EventTypeLoanReturned = "loan.returned"
)

// LoanEventPayload представляет событие жизненного цикла одалживания,
// публикуемое в RabbitMQ после успешной записи в бд.
type LoanEventPayload struct {
	EventID    uuid.UUID `json:"event_id"`
	Type       string    `json:"type"`
	LoanID     int64     `json:"loan_id"`
	UserID     int64     `json:"user_id"`
	BookID     int64     `json:"book_id"`
	OccurredAt time.Time `json:"occurred_at"`
}
