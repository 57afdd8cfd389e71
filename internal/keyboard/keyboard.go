// Package keyboard собирает раскладки кнопок для экранов бота.
package keyboard

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// MaxInlineButtons - предел кнопок на одном экране.
const MaxInlineButtons = 60

// Grid раскладывает кнопки в сетку по cols штук в ряд.
func Grid(buttons []tgbotapi.InlineKeyboardButton, cols int) [][]tgbotapi.InlineKeyboardButton {
	if cols < 1 {
		cols = 1
	}
	if len(buttons) > MaxInlineButtons {
		buttons = buttons[:MaxInlineButtons]
	}
	var rows [][]tgbotapi.InlineKeyboardButton
	for i := 0; i < len(buttons); i += cols {
		end := i + cols
		if end > len(buttons) {
			end = len(buttons)
		}
		rows = append(rows, buttons[i:end])
	}
	return rows
}

// Append дописывает ряды кнопок к готовой разметке.
func Append(markup tgbotapi.InlineKeyboardMarkup, rows ...[]tgbotapi.InlineKeyboardButton) tgbotapi.InlineKeyboardMarkup {
	markup.InlineKeyboard = append(markup.InlineKeyboard, rows...)
	return markup
}
