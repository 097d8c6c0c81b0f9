package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/GoArmGo/LibraryApp/internal/core/ports"
	"github.com/GoArmGo/LibraryApp/internal/messaging/payloads"
)

// runWorker запускает потребителя событий одалживаний и обрабатывает
// уведомления до отмены контекста.
func runWorker(ctx context.Context, logger *slog.Logger, consumer ports.LoanEventConsumer) error {
	if consumer == nil {
		return errors.New("режим worker требует настроенного RABBITMQ_URL")
	}

	logger.Info("worker started, waiting for loan events")

	// Обработчик уведомлений: здесь доставка сводится к структурированной
	// записи в лог, транспорт уведомлений подключается на этом месте.
	eventHandler := func(ctx context.Context, payload payloads.LoanEventPayload) error {
		switch payload.Type {
		case payloads.EventTypeLoanCreated:
			logger.Info("loan notification: book checked out",
				"event_id", payload.EventID,
				"loan_id", payload.LoanID,
				"user_id", payload.UserID,
				"book_id", payload.BookID,
				"occurred_at", payload.OccurredAt,
			)
		case payloads.EventTypeLoanReturned:
			logger.Info("loan notification: book returned",
				"event_id", payload.EventID,
				"loan_id", payload.LoanID,
				"user_id", payload.UserID,
				"book_id", payload.BookID,
				"occurred_at", payload.OccurredAt,
			)
		default:
			logger.Warn("unknown loan event type", "type", payload.Type, "event_id", payload.EventID)
		}
		return nil
	}

	if err := consumer.StartConsumingLoanEvents(ctx, eventHandler); err != nil {
		return fmt.Errorf("ошибка при запуске потребителя RabbitMQ: %w", err)
	}

	<-ctx.Done()
	logger.Info("worker stopped")
	return nil
}
