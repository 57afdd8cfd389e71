package pagination

import (
	"fmt"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/byYuraGudan/PlaceTown/internal/callback"
)

func makeRows(n int) []Row {
	rows := make([]Row, 0, n)
	for i := 1; i <= n; i++ {
		rows = append(rows, Row{
			Title: fmt.Sprintf("Запись %d", i),
			Keys:  callback.Params{"id": i},
		})
	}
	return rows
}

func labels(row []tgbotapi.InlineKeyboardButton) []string {
	out := make([]string, 0, len(row))
	for _, btn := range row {
		out = append(out, btn.Text)
	}
	return out
}

// TestPageCoverage - страницы покрывают все записи без пропусков и
// пересечений, последняя страница может быть неполной.
func TestPageCoverage(t *testing.T) {
	rows := makeRows(23)
	seen := make(map[int]bool)

	for page := 1; page <= 3; page++ {
		p := New(rows, Config{Page: page})
		for _, row := range p.PageRows() {
			id := row.Keys.Int("id", 0)
			assert.False(t, seen[id], "запись %d встретилась дважды", id)
			seen[id] = true
		}
	}
	assert.Len(t, seen, 23)

	last := New(rows, Config{Page: 3})
	assert.Len(t, last.PageRows(), 3)
}

func TestPageCountMinimumOne(t *testing.T) {
	p := New(nil, Config{Page: 1})
	assert.Equal(t, 1, p.PageCount())
	assert.Empty(t, p.PageRows())
}

// TestPageClamping - запрос за последнюю страницу прижимается к ней,
// а не считается ошибкой.
func TestPageClamping(t *testing.T) {
	p := New(makeRows(25), Config{Page: 99})
	assert.Equal(t, 3, p.Page())

	p = New(makeRows(25), Config{Page: 0})
	assert.Equal(t, 1, p.Page())
}

func TestSinglePageNoNavigation(t *testing.T) {
	p := New(makeRows(10), Config{DataCommand: "did", PageCommand: "iid", Page: 1})
	markup, err := p.Markup()
	require.NoError(t, err)
	// 10 записей по 2 в ряд, навигации нет
	assert.Len(t, markup.InlineKeyboard, 5)
}

// TestShortListNavigation - до пяти страниц навигация показывает все
// номера, текущий помечен точками.
func TestShortListNavigation(t *testing.T) {
	p := New(makeRows(30), Config{DataCommand: "did", PageCommand: "iid", Page: 2})
	markup, err := p.Markup()
	require.NoError(t, err)

	nav := markup.InlineKeyboard[len(markup.InlineKeyboard)-1]
	assert.Equal(t, []string{"1", "·2·", "3"}, labels(nav))
}

// TestWindowStart - длинный список, страницы у левого края: окно
// прижато к началу, последняя страница всегда доступна.
func TestWindowStart(t *testing.T) {
	p := New(makeRows(70), Config{DataCommand: "did", PageCommand: "iid", Page: 2})
	markup, err := p.Markup()
	require.NoError(t, err)

	nav := markup.InlineKeyboard[len(markup.InlineKeyboard)-1]
	assert.Equal(t, []string{"1", "·2·", "3", "4 ›", "7"}, labels(nav))
}

// TestWindowFinish - страницы у правого края: окно прижато к концу,
// первая страница всегда доступна.
func TestWindowFinish(t *testing.T) {
	p := New(makeRows(70), Config{DataCommand: "did", PageCommand: "iid", Page: 5})
	markup, err := p.Markup()
	require.NoError(t, err)

	nav := markup.InlineKeyboard[len(markup.InlineKeyboard)-1]
	assert.Equal(t, []string{"« 1", "‹ 4", "·5·", "6", "7"}, labels(nav))
}

// TestWindowMiddleNarrow - семь страниц, текущая четвёртая: единственная
// страница, не попадающая в крайние окна.
func TestWindowMiddleNarrow(t *testing.T) {
	p := New(makeRows(70), Config{DataCommand: "did", PageCommand: "iid", Page: 4})
	markup, err := p.Markup()
	require.NoError(t, err)

	nav := markup.InlineKeyboard[len(markup.InlineKeyboard)-1]
	assert.Equal(t, []string{"« 1", "‹ 3", "·4·", "5 ›", "7 »"}, labels(nav))
}

// TestWindowMiddle - страница в середине: первая, соседние, текущая
// и последняя.
func TestWindowMiddle(t *testing.T) {
	p := New(makeRows(200), Config{DataCommand: "did", PageCommand: "iid", Page: 10})
	markup, err := p.Markup()
	require.NoError(t, err)

	nav := markup.InlineKeyboard[len(markup.InlineKeyboard)-1]
	assert.Equal(t, []string{"« 1", "‹ 9", "·10·", "11 ›", "20 »"}, labels(nav))
}

// TestTokens - кнопка записи несёт команду данных с ключами записи и
// общими параметрами, навигационная - команду страницы.
func TestTokens(t *testing.T) {
	p := New(makeRows(30), Config{
		DataCommand: "did",
		PageCommand: "iid",
		Page:        2,
		PageParams:  callback.Params{"cid": 7},
		DataParams:  callback.Params{"cp_pg": 2},
	})
	markup, err := p.Markup()
	require.NoError(t, err)

	first := markup.InlineKeyboard[0][0]
	command, params, err := callback.Decode(*first.CallbackData)
	require.NoError(t, err)
	assert.Equal(t, "did", command)
	assert.Equal(t, 11, params.Int("id", 0))
	assert.Equal(t, 2, params.Int("cp_pg", 0))

	nav := markup.InlineKeyboard[len(markup.InlineKeyboard)-1]
	command, params, err = callback.Decode(*nav[0].CallbackData)
	require.NoError(t, err)
	assert.Equal(t, "iid", command)
	assert.Equal(t, 1, params.Int("page", 0))
	assert.Equal(t, 7, params.Int("cid", 0))
}

func TestColumns(t *testing.T) {
	p := New(makeRows(6), Config{DataCommand: "doid", PageCommand: "ooid", Page: 1, Columns: 1})
	markup, err := p.Markup()
	require.NoError(t, err)
	assert.Len(t, markup.InlineKeyboard, 6)
	for _, row := range markup.InlineKeyboard {
		assert.Len(t, row, 1)
	}
}

func TestPageSizeCap(t *testing.T) {
	p := New(makeRows(120), Config{Page: 1, PageSize: 500})
	// превышение предела откатывает размер страницы к умолчанию
	assert.Len(t, p.PageRows(), PageSize)
}
