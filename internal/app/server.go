package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/GoArmGo/LibraryApp/internal/config"
	"github.com/GoArmGo/LibraryApp/internal/database/client"
	"github.com/GoArmGo/LibraryApp/internal/handler"
	"github.com/GoArmGo/LibraryApp/internal/usecase"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
)

// runServer запускает HTTP сервер и блокируется до отмены контекста.
func runServer(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	dbClient *client.Client,
	userUseCase usecase.UserUseCase,
	bookUseCase usecase.BookUseCase,
	loanUseCase usecase.LoanUseCase,
) error {
	validate := validator.New()

	userHandler := handler.NewUserHandler(userUseCase, validate, logger)
	bookHandler := handler.NewBookHandler(bookUseCase, validate, logger)
	loanHandler := handler.NewLoanHandler(loanUseCase, validate, logger)
	metaHandler := handler.NewMetaHandler(dbClient.DB, cfg.APITitle, cfg.APIVersion, logger)

	r := chi.NewRouter()
	r.Use(handler.RequestID)
	r.Use(handler.RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.RequestTimeout))

	r.Get("/", metaHandler.GetAPIInfo)
	r.Get("/health", metaHandler.GetHealth)

	r.Route("/users", func(r chi.Router) {
		r.Get("/", userHandler.GetAllUsers)
		r.Post("/", userHandler.CreateUser)
		r.Get("/{id}", userHandler.GetUserByID)
		r.Put("/{id}", userHandler.UpdateUser)
		r.Delete("/{id}", userHandler.DeleteUser)
	})

	r.Route("/books", func(r chi.Router) {
		r.Get("/", bookHandler.GetAllBooks)
		r.Post("/", bookHandler.CreateBook)
		r.Get("/{id}", bookHandler.GetBookByID)
		r.Put("/{id}", bookHandler.UpdateBook)
		r.Delete("/{id}", bookHandler.DeleteBook)
	})

	r.Route("/loans", func(r chi.Router) {
		r.Get("/", loanHandler.GetAllLoans)
		r.Post("/", loanHandler.CreateLoan)
		r.Get("/{id}", loanHandler.GetLoanByID)
		r.Put("/{id}", loanHandler.UpdateLoan)
		r.Patch("/{id}/return", loanHandler.ReturnLoan)
		r.Delete("/{id}", loanHandler.DeleteLoan)
	})

	serverAddr := fmt.Sprintf(":%s", cfg.ServerPort)
	server := &http.Server{
		Addr:    serverAddr,
		Handler: r,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", "addr", serverAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("ошибка при запуске сервера: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutdown signal received, stopping HTTP server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	logger.Info("HTTP server stopped")
	return nil
}
