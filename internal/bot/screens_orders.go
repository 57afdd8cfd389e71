package bot

import (
	"errors"
	"fmt"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/byYuraGudan/PlaceTown/internal/callback"
	"github.com/byYuraGudan/PlaceTown/internal/database"
	"github.com/byYuraGudan/PlaceTown/internal/models"
	"github.com/byYuraGudan/PlaceTown/internal/pagination"
)

// createOrderScreen оформляет заказ на услугу. Без телефона заказ не
// создаётся: исполнителю нечего показать в контактах клиента.
func (s *Service) createOrderScreen(ctx *Ctx) error {
	if ctx.User.Phone == "" {
		s.answer(ctx, textMustSetPhone)
		return s.telegram.SendMessageWithReplyKeyboard(ctx.ChatID(), textMustSetPhone, settingsMenu(false))
	}

	serviceID := ctx.Params.Int("id", 0)
	service, err := s.companies.ServiceByID(int64(serviceID))
	if err != nil {
		return err
	}
	if service.ID == 0 {
		s.answer(ctx, textNoInfo)
		return nil
	}

	// Убираем кнопку оформления с карточки услуги, чтобы её не нажали
	// второй раз, пока заказ создаётся.
	if markup := ctx.Query.Message.ReplyMarkup; markup != nil && len(markup.InlineKeyboard) > 0 {
		trimmed := tgbotapi.InlineKeyboardMarkup{InlineKeyboard: markup.InlineKeyboard[1:]}
		if err := s.telegram.EditReplyMarkup(ctx.ChatID(), ctx.MessageID(), trimmed); err != nil {
			s.logger.Warn("Не удалось убрать кнопку оформления заказа",
				zap.Error(err),
				zap.Int64("chat_id", ctx.ChatID()),
				zap.Int("message_id", ctx.MessageID()),
			)
		}
	}

	_, err = s.orderService.Create(ctx.User, service)
	if errors.Is(err, database.ErrServiceBooked) {
		s.answer(ctx, textServiceBooked)
		return nil
	}
	return err
}

// orderStatusScreen - смена статуса заказа кнопкой с любой из сторон.
// Параметр st помечает, с чьего списка нажата кнопка: последний ряд
// этого сообщения переносится в свежее сообщение как кнопка "назад".
func (s *Service) orderStatusScreen(ctx *Ctx) error {
	orderID := ctx.Params.Int("id", 0)
	order, err := s.orders.GetByID(int64(orderID))
	if err != nil {
		return err
	}
	if order.ID == 0 {
		s.answer(ctx, textNoInfo)
		return nil
	}

	statusStr := ctx.Params.Str("status", "")
	statusCode, err := strconv.Atoi(statusStr)
	if err != nil {
		return fmt.Errorf("некорректный статус %q в токене: %w", statusStr, err)
	}
	newStatus := models.OrderStatus(statusCode)

	var customerBack, performerBack []tgbotapi.InlineKeyboardButton
	if side := ctx.Params.Str("st", ""); side != "" {
		if markup := ctx.Query.Message.ReplyMarkup; markup != nil && len(markup.InlineKeyboard) > 0 {
			last := markup.InlineKeyboard[len(markup.InlineKeyboard)-1]
			switch side {
			case "outgoing":
				customerBack = last
			case "incoming":
				performerBack = last
			}
		}
		// Нажатое сообщение из списка сейчас перерисуется в новое,
		// старое удаляем сами: живым оно не числится.
		if err := s.telegram.DeleteMessage(ctx.ChatID(), ctx.MessageID()); err != nil {
			s.logger.Warn("Не удалось удалить сообщение заказа",
				zap.Error(err),
				zap.Int64("chat_id", ctx.ChatID()),
				zap.Int("message_id", ctx.MessageID()),
			)
		}
	}

	err = s.orderService.Transition(order, newStatus, customerBack, performerBack)
	if errors.Is(err, ErrInvalidTransition) {
		s.answer(ctx, textBadTransition)
		return nil
	}
	return err
}

// outgoingView - список исходящих заказов пользователя с учётом
// фильтров видимости статусов.
func (s *Service) outgoingView(user *models.User, page int) (string, *tgbotapi.InlineKeyboardMarkup, error) {
	orders, err := s.orders.Outgoing(user.ID, user.Settings.HiddenStatuses())
	if err != nil {
		return "", nil, err
	}
	if len(orders) == 0 {
		return textNoOrders, nil, nil
	}

	markup, err := orderListMarkup(orders, cmdOutgoingOrderDetail, cmdOutgoingOrders, page)
	if err != nil {
		return "", nil, err
	}
	return textChooseOrder, markup, nil
}

func (s *Service) outgoingOrdersScreen(ctx *Ctx) error {
	text, markup, err := s.outgoingView(&ctx.User, ctx.Params.Int("page", 1))
	if err != nil {
		return err
	}
	return s.telegram.EditMessageText(ctx.ChatID(), ctx.MessageID(), text, markup)
}

func (s *Service) sendOutgoing(user *models.User, chatID int64) error {
	text, markup, err := s.outgoingView(user, 1)
	if err != nil {
		return err
	}
	if markup == nil {
		return s.telegram.SendMessage(chatID, text)
	}
	_, err = s.telegram.SendMessageWithInlineKeyboard(chatID, text, *markup)
	return err
}

func (s *Service) outgoingOrderDetailScreen(ctx *Ctx) error {
	orderID := ctx.Params.Int("id", 0)
	page := ctx.Params.Int("page", 1)

	order, err := s.orders.GetByID(int64(orderID))
	if err != nil {
		return err
	}
	if order.ID == 0 {
		s.answer(ctx, textNoInfo)
		return nil
	}

	back, err := backButton(cmdOutgoingOrders, callback.Params{"page": page})
	if err != nil {
		return err
	}
	markup, err := CustomerMarkup(order, []tgbotapi.InlineKeyboardButton{back}, callback.Params{"st": "outgoing"})
	if err != nil {
		return err
	}
	return s.telegram.EditMessageText(ctx.ChatID(), ctx.MessageID(), CustomerText(order), &markup)
}

// incomingOrdersScreen - входящие заказы на услуги компаний
// пользователя. Доступно только владельцам компаний.
func (s *Service) incomingOrdersScreen(ctx *Ctx) error {
	page := ctx.Params.Int("page", 1)

	orders, err := s.orders.Incoming(ctx.User.ID, ctx.User.Settings.HiddenStatuses())
	if err != nil {
		return err
	}
	if len(orders) == 0 {
		s.answer(ctx, textNoOrders)
		return nil
	}

	markup, err := orderListMarkup(orders, cmdIncomingOrderDetail, cmdIncomingOrders, page)
	if err != nil {
		return err
	}
	back, err := backButton(cmdProfile, nil)
	if err != nil {
		return err
	}
	markup.InlineKeyboard = append(markup.InlineKeyboard, []tgbotapi.InlineKeyboardButton{back})
	return s.telegram.EditMessageText(ctx.ChatID(), ctx.MessageID(), textChooseOrder, markup)
}

func (s *Service) incomingOrderDetailScreen(ctx *Ctx) error {
	orderID := ctx.Params.Int("id", 0)
	page := ctx.Params.Int("page", 1)

	order, err := s.orders.GetByID(int64(orderID))
	if err != nil {
		return err
	}
	if order.ID == 0 {
		s.answer(ctx, textNoInfo)
		return nil
	}

	back, err := backButton(cmdIncomingOrders, callback.Params{"page": page})
	if err != nil {
		return err
	}
	markup, err := PerformerMarkup(order, []tgbotapi.InlineKeyboardButton{back}, callback.Params{"st": "incoming"})
	if err != nil {
		return err
	}
	return s.telegram.EditMessageText(ctx.ChatID(), ctx.MessageID(), PerformerText(order), &markup)
}

// orderListMarkup - пагинированный список заказов; кнопка несёт статус
// эмодзи и название услуги, токен - страницу списка для возврата.
func orderListMarkup(orders []models.Order, detailCmd, pageCmd string, page int) (*tgbotapi.InlineKeyboardMarkup, error) {
	rows := make([]pagination.Row, 0, len(orders))
	for _, order := range orders {
		rows = append(rows, pagination.Row{
			Title: fmt.Sprintf("%s %s", order.Status.Emoji(), order.ServiceName),
			Keys:  callback.Params{"id": int(order.ID)},
		})
	}
	paginator := pagination.New(rows, pagination.Config{
		DataCommand: detailCmd,
		PageCommand: pageCmd,
		Page:        page,
		Columns:     1,
		DataParams:  callback.Params{"page": page},
	})
	markup, err := paginator.Markup()
	if err != nil {
		return nil, err
	}
	return &markup, nil
}

// profileView - профиль владельца компаний.
func (s *Service) profileView(user *models.User) (*tgbotapi.InlineKeyboardMarkup, error) {
	owner, err := s.users.OwnsCompany(user.ID)
	if err != nil {
		return nil, err
	}
	if !owner {
		return nil, nil
	}

	token, err := callback.Encode(cmdIncomingOrders, nil)
	if err != nil {
		return nil, err
	}
	return &tgbotapi.InlineKeyboardMarkup{InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{
		{tgbotapi.NewInlineKeyboardButtonData(btnIncoming, token)},
	}}, nil
}

func (s *Service) profileScreen(ctx *Ctx) error {
	markup, err := s.profileView(&ctx.User)
	if err != nil {
		return err
	}
	if markup == nil {
		s.answer(ctx, textNoInfo)
		return nil
	}
	return s.telegram.EditMessageText(ctx.ChatID(), ctx.MessageID(), textMyProfile, markup)
}

func (s *Service) sendProfile(user *models.User, chatID int64) error {
	markup, err := s.profileView(user)
	if err != nil {
		return err
	}
	if markup == nil {
		return s.telegram.SendMessage(chatID, textNoInfo)
	}
	_, err = s.telegram.SendMessageWithInlineKeyboard(chatID, textMyProfile, *markup)
	return err
}
