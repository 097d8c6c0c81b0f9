package ports

import (
	"context"

	"github.com/GoArmGo/LibraryApp/internal/messaging/payloads"
)

// LoanEventPublisher определяет методы для публикации событий одалживаний.
// Используется бизнес-логикой после успешного создания или возврата.
type LoanEventPublisher interface {
	PublishLoanEvent(ctx context.Context, payload payloads.LoanEventPayload) error
}

// LoanEventConsumer определяет методы для потребления событий одалживаний,
// будет использоваться воркером для получения задач из очереди.
type LoanEventConsumer interface {
	// StartConsumingLoanEvents начинает прослушивание очереди событий,
	// принимает функцию-обработчик, которая вызывается для каждого сообщения.
	StartConsumingLoanEvents(ctx context.Context, handler func(context.Context, payloads.LoanEventPayload) error) error
}
