package telegram

import (
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Client - обёртка над Telegram Bot API: отправка, правка и удаление
// сообщений плюс получение обновлений. Вся логика экранов живёт выше.
type Client struct {
	bot *tgbotapi.BotAPI
}

func NewClient(token string) (*Client, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("не удалось создать telegram-клиент: %w", err)
	}
	return &Client{bot: bot}, nil
}

func (c *Client) SendMessage(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	_, err := c.bot.Send(msg)
	return err
}

// SendMessageWithInlineKeyboard отправляет сообщение с инлайн-кнопками
// и возвращает идентификатор сообщения - он нужен для учёта "живых"
// сообщений заказа.
func (c *Client) SendMessageWithInlineKeyboard(chatID int64, text string, keyboard tgbotapi.InlineKeyboardMarkup) (int, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = keyboard
	sent, err := c.bot.Send(msg)
	if err != nil {
		return 0, err
	}
	return sent.MessageID, nil
}

func (c *Client) SendMessageWithReplyKeyboard(chatID int64, text string, keyboard tgbotapi.ReplyKeyboardMarkup) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = keyboard
	_, err := c.bot.Send(msg)
	return err
}

// EditMessageText меняет текст сообщения; markup == nil оставляет
// сообщение без кнопок.
func (c *Client) EditMessageText(chatID int64, messageID int, text string, markup *tgbotapi.InlineKeyboardMarkup) error {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	edit.ReplyMarkup = markup
	_, err := c.bot.Send(edit)
	return err
}

func (c *Client) EditReplyMarkup(chatID int64, messageID int, markup tgbotapi.InlineKeyboardMarkup) error {
	edit := tgbotapi.NewEditMessageReplyMarkup(chatID, messageID, markup)
	_, err := c.bot.Send(edit)
	return err
}

func (c *Client) DeleteMessage(chatID int64, messageID int) error {
	_, err := c.bot.Request(tgbotapi.NewDeleteMessage(chatID, messageID))
	return err
}

func (c *Client) SendLocation(chatID int64, latitude, longitude float64) error {
	_, err := c.bot.Send(tgbotapi.NewLocation(chatID, latitude, longitude))
	return err
}

// AnswerCallback отвечает на нажатие кнопки - убирает индикатор
// загрузки и при непустом тексте показывает всплывающее уведомление.
func (c *Client) AnswerCallback(callbackID string, text string) error {
	_, err := c.bot.Request(tgbotapi.NewCallback(callbackID, text))
	return err
}

// Start удаляет вебхук и возвращает канал обновлений long polling.
func (c *Client) Start() (tgbotapi.UpdatesChannel, error) {
	if _, err := c.bot.Request(tgbotapi.DeleteWebhookConfig{}); err != nil {
		return nil, fmt.Errorf("не удалось удалить вебхук: %w", err)
	}

	// Пауза для стабилизации соединения
	time.Sleep(1 * time.Second)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	return c.bot.GetUpdatesChan(u), nil
}
