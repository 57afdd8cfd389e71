package bot

import (
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/byYuraGudan/PlaceTown/internal/database"
	"github.com/byYuraGudan/PlaceTown/internal/models"
)

// Messenger - интерфейс для взаимодействия с Telegram API
type Messenger interface {
	SendMessage(chatID int64, text string) error
	SendMessageWithInlineKeyboard(chatID int64, text string, keyboard tgbotapi.InlineKeyboardMarkup) (int, error)
	SendMessageWithReplyKeyboard(chatID int64, text string, keyboard tgbotapi.ReplyKeyboardMarkup) error
	EditMessageText(chatID int64, messageID int, text string, markup *tgbotapi.InlineKeyboardMarkup) error
	EditReplyMarkup(chatID int64, messageID int, markup tgbotapi.InlineKeyboardMarkup) error
	DeleteMessage(chatID int64, messageID int) error
	SendLocation(chatID int64, latitude, longitude float64) error
	AnswerCallback(callbackID string, text string) error
}

// UserStore - хранилище пользователей и их настроек.
type UserStore interface {
	GetOrCreate(id int64, fullName, username, lang string) (models.User, error)
	GetByID(id int64) (models.User, error)
	SaveSettings(id int64, settings models.UserSettings) error
	SetPhone(id int64, phone string) error
	SetLanguage(id int64, lang string) error
	SetLocation(id int64, longitude, latitude float64, now time.Time) (models.UserSettings, error)
	OwnsCompany(id int64) (bool, error)
}

// CompanyStore - справочник категорий, компаний, услуг и оценок.
type CompanyStore interface {
	Categories() ([]models.Category, error)
	CompaniesByCategory(f database.CompanyFilter) ([]models.Company, error)
	GetByID(id int64) (models.Company, error)
	WorkSchedule(companyID int64) ([]models.TimeWork, error)
	HasGrade(reviewerID, companyID int64) (bool, error)
	CreateGrade(reviewerID, companyID int64, mark int) error
	ServicesByCompany(companyID int64) ([]models.Service, error)
	ServiceByID(id int64) (models.Service, error)
}

// OrderStore - хранилище заказов.
type OrderStore interface {
	Create(customerID, serviceID int64) (models.Order, error)
	GetByID(orderID int64) (models.Order, error)
	UpdateStatus(orderID int64, status models.OrderStatus) error
	SaveSettings(orderID int64, settings models.OrderSettings) error
	ServiceBooked(serviceID int64) (bool, error)
	Outgoing(customerID int64, hidden []models.OrderStatus) ([]models.Order, error)
	Incoming(ownerID int64, hidden []models.OrderStatus) ([]models.Order, error)
}

// NewsStore - новости компаний и их подписчики.
type NewsStore interface {
	GetByID(id int64) (models.News, error)
	PendingNotifications() ([]models.News, error)
	MarkNotified(id int64) error
	Watchers(companyID int64) ([]models.User, error)
}
