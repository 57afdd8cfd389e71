package keyboard

import (
	"fmt"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
)

func makeButtons(n int) []tgbotapi.InlineKeyboardButton {
	buttons := make([]tgbotapi.InlineKeyboardButton, 0, n)
	for i := 0; i < n; i++ {
		buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(fmt.Sprintf("b%d", i), "x"))
	}
	return buttons
}

func TestGrid(t *testing.T) {
	rows := Grid(makeButtons(5), 2)
	assert.Len(t, rows, 3)
	assert.Len(t, rows[0], 2)
	assert.Len(t, rows[2], 1)

	assert.Nil(t, Grid(nil, 2))

	// некорректное число колонок откатывается к одной
	rows = Grid(makeButtons(3), 0)
	assert.Len(t, rows, 3)
}

// TestGridCap - лишние кнопки за пределом экрана отбрасываются.
func TestGridCap(t *testing.T) {
	rows := Grid(makeButtons(MaxInlineButtons+10), 2)
	total := 0
	for _, row := range rows {
		total += len(row)
	}
	assert.Equal(t, MaxInlineButtons, total)
}

func TestAppend(t *testing.T) {
	markup := tgbotapi.InlineKeyboardMarkup{InlineKeyboard: Grid(makeButtons(2), 2)}
	markup = Append(markup, makeButtons(1))
	assert.Len(t, markup.InlineKeyboard, 2)
}
