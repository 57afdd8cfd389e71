package bot

import (
	"errors"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/byYuraGudan/PlaceTown/internal/callback"
	"github.com/byYuraGudan/PlaceTown/internal/models"
)

var (
	// ErrInvalidTransition - переход не разрешён таблицей статусов.
	ErrInvalidTransition = errors.New("недопустимый переход статуса заказа")
)

const orderTimeLayout = "02-01-06 15:04"

// OrderService - машина состояний заказа. Владеет переходами статусов
// и двумя нитями сообщений: клиентской и исполнительской. На каждом
// переходе обе нити перерисовываются, чтобы ни одна сторона не видела
// устаревших кнопок.
type OrderService struct {
	telegram Messenger
	logger   *zap.Logger
	orders   OrderStore
}

// NewOrderService - создает новый сервис заказов
func NewOrderService(telegram Messenger, logger *zap.Logger, orders OrderStore) *OrderService {
	return &OrderService{
		telegram: telegram,
		logger:   logger,
		orders:   orders,
	}
}

// Create создает заказ и отправляет стартовые сообщения обеим сторонам.
// Предусловия (телефон клиента, существование услуги) проверяет экран;
// гонку по услуге бронирования ловит хранилище (ErrServiceBooked).
func (s *OrderService) Create(customer models.User, service models.Service) (models.Order, error) {
	order, err := s.orders.Create(customer.ID, service.ID)
	if err != nil {
		return models.Order{}, err
	}

	s.logger.Info("Создан заказ",
		zap.Int64("order_id", order.ID),
		zap.Int64("customer_id", customer.ID),
		zap.Int64("service_id", service.ID),
	)

	s.refreshSides(&order, nil, nil)
	return order, nil
}

// Transition переводит заказ в новый статус и перерисовывает сообщения
// обеих сторон. backRow стороны, с экрана которой нажата кнопка,
// сохраняет её кнопку "назад" в свежем сообщении.
func (s *OrderService) Transition(order models.Order, newStatus models.OrderStatus, customerBack, performerBack []tgbotapi.InlineKeyboardButton) error {
	if !order.Status.CanTransition(newStatus) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.Status.Label(), newStatus.Label())
	}

	if err := s.orders.UpdateStatus(order.ID, newStatus); err != nil {
		return err
	}
	order.Status = newStatus

	s.logger.Info("Заказ сменил статус",
		zap.Int64("order_id", order.ID),
		zap.String("status", newStatus.Label()),
	)

	s.refreshSides(&order, customerBack, performerBack)
	return nil
}

// refreshSides перерисовывает сообщения заказа у клиента и исполнителя.
// Сбой одной стороны не мешает другой: следующий переход перерисует
// обе нити заново.
func (s *OrderService) refreshSides(order *models.Order, customerBack, performerBack []tgbotapi.InlineKeyboardButton) {
	s.refreshCustomer(order, customerBack)
	s.refreshPerformer(order, performerBack)

	if err := s.orders.SaveSettings(order.ID, order.Settings); err != nil {
		s.logger.Error("Не удалось сохранить живые сообщения заказа",
			zap.Error(err),
			zap.Int64("order_id", order.ID),
		)
	}
}

func (s *OrderService) refreshCustomer(order *models.Order, back []tgbotapi.InlineKeyboardButton) {
	s.deleteLive(order.CustomerID, order.Settings.UserMessages)
	order.Settings.UserMessages = nil

	markup, err := CustomerMarkup(*order, back, nil)
	if err != nil {
		s.logger.Error("Не удалось собрать клавиатуру клиента",
			zap.Error(err),
			zap.Int64("order_id", order.ID),
		)
		return
	}

	messageID, err := s.telegram.SendMessageWithInlineKeyboard(order.CustomerID, CustomerText(*order), markup)
	if err != nil {
		s.logger.Error("Не удалось отправить сообщение клиенту",
			zap.Error(err),
			zap.Int64("order_id", order.ID),
			zap.Int64("customer_id", order.CustomerID),
		)
		return
	}
	order.Settings.UserMessages = []int{messageID}
}

func (s *OrderService) refreshPerformer(order *models.Order, back []tgbotapi.InlineKeyboardButton) {
	s.deleteLive(order.PerformerID, order.Settings.PerformerMessages)
	order.Settings.PerformerMessages = nil

	markup, err := PerformerMarkup(*order, back, nil)
	if err != nil {
		s.logger.Error("Не удалось собрать клавиатуру исполнителя",
			zap.Error(err),
			zap.Int64("order_id", order.ID),
		)
		return
	}

	messageID, err := s.telegram.SendMessageWithInlineKeyboard(order.PerformerID, PerformerText(*order), markup)
	if err != nil {
		s.logger.Error("Не удалось отправить сообщение исполнителю",
			zap.Error(err),
			zap.Int64("order_id", order.ID),
			zap.Int64("performer_id", order.PerformerID),
		)
		return
	}
	order.Settings.PerformerMessages = []int{messageID}
}

// deleteLive удаляет прежние живые сообщения стороны. Сбой удаления
// не фатален: сообщение могли удалить руками.
func (s *OrderService) deleteLive(chatID int64, messageIDs []int) {
	for _, messageID := range messageIDs {
		if err := s.telegram.DeleteMessage(chatID, messageID); err != nil {
			s.logger.Warn("Не удалось удалить живое сообщение заказа",
				zap.Error(err),
				zap.Int64("chat_id", chatID),
				zap.Int("message_id", messageID),
			)
		}
	}
}

// CustomerText - текст заказа для клиента.
func CustomerText(order models.Order) string {
	return fmt.Sprintf(textOrderCustomer,
		order.ID,
		order.Status.Label(),
		order.CompanyName,
		order.ServiceName,
		order.Created.Format(orderTimeLayout),
		order.CompanyContact,
	)
}

// PerformerText - текст заказа для исполнителя.
func PerformerText(order models.Order) string {
	return fmt.Sprintf(textOrderPerformer,
		order.ID,
		order.Status.Label(),
		order.ServiceName,
		order.Created.Format(orderTimeLayout),
		order.CompanyName,
		order.CustomerName,
		order.CustomerPhone,
	)
}

// CustomerMarkup - кнопки клиента: только легальные переходы из
// текущего статуса. Клиент может лишь отклонить заказ.
func CustomerMarkup(order models.Order, back []tgbotapi.InlineKeyboardButton, extra callback.Params) (tgbotapi.InlineKeyboardMarkup, error) {
	var buttons []tgbotapi.InlineKeyboardButton
	if order.Status.CanTransition(models.OrderStatusRejected) {
		btn, err := statusButton(btnReject, order.ID, models.OrderStatusRejected, extra)
		if err != nil {
			return tgbotapi.InlineKeyboardMarkup{}, err
		}
		buttons = append(buttons, btn)
	}
	return actionMarkup(buttons, back), nil
}

// PerformerMarkup - кнопки исполнителя: принять из "ожидает",
// выполнить из "принят", отклонить из любого нетерминального статуса.
func PerformerMarkup(order models.Order, back []tgbotapi.InlineKeyboardButton, extra callback.Params) (tgbotapi.InlineKeyboardMarkup, error) {
	var buttons []tgbotapi.InlineKeyboardButton
	actions := []struct {
		label  string
		status models.OrderStatus
	}{
		{btnAccept, models.OrderStatusAccepted},
		{btnDone, models.OrderStatusDone},
		{btnReject, models.OrderStatusRejected},
	}
	for _, action := range actions {
		if !order.Status.CanTransition(action.status) {
			continue
		}
		btn, err := statusButton(action.label, order.ID, action.status, extra)
		if err != nil {
			return tgbotapi.InlineKeyboardMarkup{}, err
		}
		buttons = append(buttons, btn)
	}
	return actionMarkup(buttons, back), nil
}

func statusButton(label string, orderID int64, status models.OrderStatus, extra callback.Params) (tgbotapi.InlineKeyboardButton, error) {
	params := callback.Params{
		"id":     int(orderID),
		"status": int(status),
	}
	token, err := callback.Encode(cmdOrderStatus, params.Merge(extra))
	if err != nil {
		return tgbotapi.InlineKeyboardButton{}, err
	}
	return tgbotapi.NewInlineKeyboardButtonData(label, token), nil
}

func actionMarkup(buttons, back []tgbotapi.InlineKeyboardButton) tgbotapi.InlineKeyboardMarkup {
	var markup tgbotapi.InlineKeyboardMarkup
	if len(buttons) > 0 {
		markup.InlineKeyboard = append(markup.InlineKeyboard, buttons)
	}
	if len(back) > 0 {
		markup.InlineKeyboard = append(markup.InlineKeyboard, back)
	}
	return markup
}
