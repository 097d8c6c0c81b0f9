package di

import (
	"github.com/GoArmGo/LibraryApp/internal/app"
	"github.com/GoArmGo/LibraryApp/internal/config"
	"github.com/GoArmGo/LibraryApp/internal/core/ports"
	"github.com/GoArmGo/LibraryApp/internal/database/client"
	"github.com/GoArmGo/LibraryApp/internal/database/storage"
	"github.com/GoArmGo/LibraryApp/internal/logger"
	"github.com/GoArmGo/LibraryApp/internal/rabbitmq"
	"github.com/GoArmGo/LibraryApp/internal/usecase"
)

// BuildApp инициализирует все зависимости и возвращает готовый объект App.
func BuildApp() (*app.App, error) {
	// 1. Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	slogger := logger.NewSlog(logger.SlogConfig{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	slogger.Info("logger initialized", "level", cfg.LogLevel, "format", cfg.LogFormat)

	// 2. Инициализация PostgreSQL клиента (sqlx + gorm, миграции на старте)
	dbClient, err := client.NewClient(cfg, slogger)
	if err != nil {
		return nil, err
	}

	// 3. Инициализация хранилищ
	userStorage := storage.NewUserStorage(dbClient.DB, slogger)
	bookStorage := storage.NewBookStorage(dbClient.Gorm, slogger)
	loanStorage := storage.NewLoanStorage(dbClient.Gorm, slogger)

	// 4. RabbitMQ опционален: без RABBITMQ_URL события не публикуются,
	// а режим worker недоступен.
	var (
		loanEventPublisher ports.LoanEventPublisher
		loanEventConsumer  ports.LoanEventConsumer
		broker             interface{ Close() error }
	)
	if cfg.RabbitMQ.RabbitMQURL != "" {
		rabbitMQClient, err := rabbitmq.NewClient(cfg, slogger)
		if err != nil {
			return nil, err
		}
		loanEventPublisher = rabbitMQClient
		loanEventConsumer = rabbitMQClient
		broker = rabbitMQClient
	} else {
		slogger.Info("RabbitMQ is not configured, loan events disabled")
	}

	// 5. Инициализация бизнес-логики (usecases)
	userUseCase := usecase.NewUserUseCase(userStorage, slogger)
	bookUseCase := usecase.NewBookUseCase(bookStorage, slogger)
	loanUseCase := usecase.NewLoanUseCase(loanStorage, userStorage, bookStorage, loanEventPublisher, slogger)

	// 6. Сборка итогового приложения
	application := app.NewApp(
		cfg,
		slogger,
		dbClient,
		userUseCase,
		bookUseCase,
		loanUseCase,
		loanEventConsumer,
		broker,
	)

	slogger.Info("all dependencies initialized")
	return application, nil
}
