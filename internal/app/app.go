package app

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/GoArmGo/LibraryApp/internal/config"
	"github.com/GoArmGo/LibraryApp/internal/core/ports"
	"github.com/GoArmGo/LibraryApp/internal/database/client"
	"github.com/GoArmGo/LibraryApp/internal/usecase"
)

// App собирает зависимости приложения и управляет его жизненным циклом.
type App struct {
	Config *config.Config

	logger   *slog.Logger
	dbClient *client.Client

	userUseCase usecase.UserUseCase
	bookUseCase usecase.BookUseCase
	loanUseCase usecase.LoanUseCase

	loanEventConsumer ports.LoanEventConsumer // nil, если RabbitMQ выключен
	broker            interface{ Close() error }
}

// NewApp создает приложение из готовых зависимостей.
func NewApp(
	cfg *config.Config,
	logger *slog.Logger,
	dbClient *client.Client,
	userUseCase usecase.UserUseCase,
	bookUseCase usecase.BookUseCase,
	loanUseCase usecase.LoanUseCase,
	loanEventConsumer ports.LoanEventConsumer,
	broker interface{ Close() error },
) *App {
	return &App{
		Config:            cfg,
		logger:            logger,
		dbClient:          dbClient,
		userUseCase:       userUseCase,
		bookUseCase:       bookUseCase,
		loanUseCase:       loanUseCase,
		loanEventConsumer: loanEventConsumer,
		broker:            broker,
	}
}

// LoggerIns возвращает основной логгер приложения.
func (a *App) LoggerIns() *slog.Logger {
	return a.logger
}

// Run запускает приложение в указанном режиме и блокируется
// до сигнала завершения.
func (a *App) Run(ctx context.Context, mode string) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.logger.Info("starting application", "mode", mode)

	var err error
	switch mode {
	case "server":
		err = runServer(ctx, a.Config, a.logger, a.dbClient, a.userUseCase, a.bookUseCase, a.loanUseCase)
	case "worker":
		err = runWorker(ctx, a.logger, a.loanEventConsumer)
	default:
		err = fmt.Errorf("неизвестный режим: %s (используйте 'server' или 'worker')", mode)
	}
	if err != nil {
		return err
	}

	a.logger.Info("shutting down")
	if closeErr := a.Shutdown(); closeErr != nil {
		a.logger.Error("shutdown error", "error", closeErr)
	}
	a.logger.Info("stopped cleanly")
	return nil
}

// Shutdown закрывает все ресурсы приложения.
func (a *App) Shutdown() error {
	if a.broker != nil {
		if err := a.broker.Close(); err != nil {
			a.logger.Error("error closing broker connection", "error", err)
		}
	}

	if a.dbClient != nil {
		if err := a.dbClient.Close(); err != nil {
			return fmt.Errorf("ошибка закрытия БД: %w", err)
		}
	}
	return nil
}
