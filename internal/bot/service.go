package bot

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/byYuraGudan/PlaceTown/internal/callback"
	"github.com/byYuraGudan/PlaceTown/internal/models"
)

// Триггер каталога срабатывает и на кнопку меню, и на текст руками.
var categoriesPattern = regexp.MustCompile(`(?i)категории`)

// Service - главный сервис бота: принимает обновления, сопоставляет
// callback-токены экранам и обслуживает текстовые команды меню.
type Service struct {
	telegram     Messenger
	logger       *zap.Logger
	router       *Router
	users        UserStore
	companies    CompanyStore
	orders       OrderStore
	orderService *OrderService
}

// NewService - создает новый сервис бота
func NewService(
	telegram Messenger,
	logger *zap.Logger,
	users UserStore,
	companies CompanyStore,
	orders OrderStore,
	orderService *OrderService,
) *Service {
	s := &Service{
		telegram:     telegram,
		logger:       logger,
		router:       NewRouter(logger),
		users:        users,
		companies:    companies,
		orders:       orders,
		orderService: orderService,
	}
	s.registerScreens()
	return s
}

// registerScreens - статическая таблица экранов. Новый экран
// добавляется строкой здесь, на горячем пути таблица только читается.
func (s *Service) registerScreens() {
	s.router.Register(cmdLanguage, s.languageScreen)
	s.router.Register(cmdFilter, s.filterScreen)
	s.router.Register(cmdCategories, s.categoriesScreen)
	s.router.Register(cmdCompanies, s.companiesScreen)
	s.router.Register(cmdCompanyDetail, s.companyDetailScreen)
	s.router.Register(cmdCompanyLocation, s.companyLocationScreen)
	s.router.Register(cmdGradeCompany, s.gradeScreen)
	s.router.Register(cmdServices, s.servicesScreen)
	s.router.Register(cmdServiceDetail, s.serviceDetailScreen)
	s.router.Register(cmdCreateOrder, s.createOrderScreen)
	s.router.Register(cmdOrderStatus, s.orderStatusScreen)
	s.router.Register(cmdOutgoingOrders, s.outgoingOrdersScreen)
	s.router.Register(cmdOutgoingOrderDetail, s.outgoingOrderDetailScreen)
	s.router.Register(cmdIncomingOrders, s.incomingOrdersScreen)
	s.router.Register(cmdIncomingOrderDetail, s.incomingOrderDetailScreen)
	s.router.Register(cmdProfile, s.profileScreen)
}

// Run обрабатывает обновления до закрытия канала. Ошибка обработчика
// логируется и не роняет цикл.
func (s *Service) Run(updates tgbotapi.UpdatesChannel) {
	s.logger.Info("Бот запущен и слушает обновления")
	for update := range updates {
		switch {
		case update.CallbackQuery != nil:
			if err := s.handleCallback(update.CallbackQuery); err != nil {
				s.logger.Error("Ошибка обработки callback-запроса",
					zap.Error(err),
					zap.String("data", update.CallbackQuery.Data),
					zap.Int64("user_id", update.CallbackQuery.From.ID),
				)
			}
		case update.Message != nil:
			if err := s.handleMessage(update.Message); err != nil {
				s.logger.Error("Ошибка обработки сообщения",
					zap.Error(err),
					zap.Int64("user_id", update.Message.From.ID),
				)
			}
		}
	}
	s.logger.Info("Канал обновлений закрыт, бот остановлен")
}

func (s *Service) handleCallback(query *tgbotapi.CallbackQuery) error {
	if query.Message == nil {
		return nil
	}

	command, params, err := callback.Decode(query.Data)
	if err != nil {
		// Ошибка протокола: кнопка с битым токеном. Отвечаем
		// пользователю и сообщаем громко в лог.
		s.logger.Error("Не удалось декодировать callback-токен",
			zap.Error(err),
			zap.String("data", query.Data),
		)
		return s.telegram.AnswerCallback(query.ID, textNoInfo)
	}

	user, err := s.users.GetOrCreate(query.From.ID, fullName(query.From), query.From.UserName, query.From.LanguageCode)
	if err != nil {
		return err
	}
	if user.Blocked {
		return s.telegram.AnswerCallback(query.ID, textBlocked)
	}

	ctx := &Ctx{Query: query, Params: params, User: user}
	if err := s.router.Dispatch(command, ctx); err != nil {
		return err
	}
	// Снимаем индикатор загрузки, если экран не ответил сам.
	s.answer(ctx, "")
	return nil
}

func (s *Service) handleMessage(message *tgbotapi.Message) error {
	user, err := s.users.GetOrCreate(message.From.ID, fullName(message.From), message.From.UserName, message.From.LanguageCode)
	if err != nil {
		return err
	}
	if user.Blocked {
		return nil
	}
	chatID := message.Chat.ID

	switch {
	case message.Location != nil:
		_, err := s.users.SetLocation(user.ID, message.Location.Longitude, message.Location.Latitude, time.Now())
		if err != nil {
			return err
		}
		return s.telegram.SendMessage(chatID, textLocationSaved)
	case message.Contact != nil:
		phone := message.Contact.PhoneNumber
		if err := s.users.SetPhone(user.ID, phone); err != nil {
			return err
		}
		return s.telegram.SendMessage(chatID, fmt.Sprintf(textPhoneSaved, phone))
	}

	if message.IsCommand() {
		switch message.Command() {
		case "start":
			return s.sendWelcome(&user, chatID)
		case "help":
			return s.telegram.SendMessage(chatID, textHelp)
		case "language":
			markup, err := languageMarkup(user.Lang)
			if err != nil {
				return err
			}
			_, err = s.telegram.SendMessageWithInlineKeyboard(chatID, textChooseLanguage, markup)
			return err
		default:
			return s.telegram.SendMessage(chatID, textUnknown)
		}
	}

	switch {
	case categoriesPattern.MatchString(message.Text):
		return s.sendCategories(chatID)
	case message.Text == menuOrders:
		return s.sendOutgoing(&user, chatID)
	case message.Text == menuProfile:
		return s.sendProfile(&user, chatID)
	case message.Text == menuFilters:
		markup, err := filterMarkup(&user.Settings)
		if err != nil {
			return err
		}
		// Клавиатура фильтров материализует умолчания, сохраняем их
		// сразу, чтобы дальше все экраны читали одно и то же.
		if err := s.users.SaveSettings(user.ID, user.Settings); err != nil {
			return err
		}
		_, err = s.telegram.SendMessageWithInlineKeyboard(chatID, textChooseFilters, markup)
		return err
	default:
		return s.telegram.SendMessage(chatID, textUnknown)
	}
}

func (s *Service) sendWelcome(user *models.User, chatID int64) error {
	owner, err := s.users.OwnsCompany(user.ID)
	if err != nil {
		return err
	}
	return s.telegram.SendMessageWithReplyKeyboard(chatID, fmt.Sprintf(textWelcome, user.FullName), mainMenu(owner))
}

// answer отвечает на callback не больше одного раза: Telegram
// отклоняет повторные ответы на тот же запрос.
func (s *Service) answer(ctx *Ctx, text string) {
	if ctx.answered {
		return
	}
	ctx.answered = true
	if err := s.telegram.AnswerCallback(ctx.Query.ID, text); err != nil {
		s.logger.Debug("Не удалось ответить на callback",
			zap.Error(err),
			zap.String("callback_id", ctx.Query.ID),
		)
	}
}

func fullName(from *tgbotapi.User) string {
	return strings.TrimSpace(from.FirstName + " " + from.LastName)
}
