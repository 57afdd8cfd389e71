package app

import (
	"go.uber.org/zap"

	"github.com/byYuraGudan/PlaceTown/internal/bot"
	"github.com/byYuraGudan/PlaceTown/internal/config"
	"github.com/byYuraGudan/PlaceTown/internal/database"
	"github.com/byYuraGudan/PlaceTown/internal/logger"
	"github.com/byYuraGudan/PlaceTown/internal/scheduler"
	"github.com/byYuraGudan/PlaceTown/internal/telegram"
)

func Run(configPath string) error {
	// Загружаем конфигурацию
	cfg, err := config.NewConfig(configPath)
	if err != nil {
		return err
	}

	// Инициализируем логгер
	logger, err := logger.New(cfg.Logger)
	if err != nil {
		zap.L().Error("не удалось создать логгер", zap.Error(err))
		return err
	}

	// Подключаемся к базе данных
	db, err := database.NewConnection(cfg.Database, logger)
	if err != nil {
		logger.Error("не удалось подключиться к базе данных", zap.Error(err))
		return err
	}

	// Инициализируем репозитории
	userRepo := database.NewUserRepository(db, logger)
	companyRepo := database.NewCompanyRepository(db, logger)
	orderRepo := database.NewOrderRepository(db, logger)
	newsRepo := database.NewNewsRepository(db, logger)

	// Инициализируем Telegram клиент
	tgClient, err := telegram.NewClient(cfg.Telegram.Token)
	if err != nil {
		logger.Error("не удалось создать Telegram клиент", zap.Error(err))
		return err
	}

	// Планировщик отложенных заданий
	jobScheduler := scheduler.New(logger)
	defer jobScheduler.Stop()

	// Сервис рассылки новостей: поднимаем неразосланные новости
	newsService := bot.NewNewsService(tgClient, logger, newsRepo, jobScheduler)
	if err := newsService.SchedulePending(); err != nil {
		logger.Error("не удалось запланировать рассылку новостей", zap.Error(err))
		return err
	}

	// Машина состояний заказов
	orderService := bot.NewOrderService(tgClient, logger, orderRepo)

	// Основной сервис бота
	botService := bot.NewService(tgClient, logger, userRepo, companyRepo, orderRepo, orderService)

	// Запускаем приём обновлений
	updates, err := tgClient.Start()
	if err != nil {
		logger.Error("не удалось начать приём обновлений", zap.Error(err))
		return err
	}
	botService.Run(updates)

	return nil
}
