// Package pagination строит постраничные меню из инлайн-кнопок.
// Каждая кнопка несёт callback-токен: кнопки данных открывают запись,
// навигационный ряд перелистывает страницы того же экрана.
package pagination

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/byYuraGudan/PlaceTown/internal/callback"
	"github.com/byYuraGudan/PlaceTown/internal/keyboard"
)

const (
	// PageSize - размер страницы по умолчанию.
	PageSize = 10
	// MaxPageSize - верхняя граница размера страницы.
	MaxPageSize = 50
)

// Шаблоны подписей навигационных кнопок.
const (
	firstPageLabel    = "« %d"
	previousPageLabel = "‹ %d"
	nextPageLabel     = "%d ›"
	lastPageLabel     = "%d »"
	currentPageLabel  = "·%d·"
)

// Row - одна запись списка: подпись кнопки и ключи записи,
// попадающие в её callback-токен.
type Row struct {
	Title string
	Keys  callback.Params
}

// Config описывает страницу и команды токенов.
type Config struct {
	// DataCommand - команда токена кнопки-записи.
	DataCommand string
	// PageCommand - команда токена навигационных кнопок.
	PageCommand string
	// Page - запрошенная страница, от 1. Выход за последнюю страницу
	// прижимается к ней, а не считается ошибкой.
	Page int
	// PageSize - размер страницы, не больше MaxPageSize.
	PageSize int
	// Columns - кнопок-записей в ряду, по умолчанию 2.
	Columns int
	// PageParams добавляются в токен каждой навигационной кнопки.
	PageParams callback.Params
	// DataParams добавляются в токен каждой кнопки-записи.
	DataParams callback.Params
}

// Paginator считает содержимое страницы и собирает раскладку кнопок.
type Paginator struct {
	rows []Row
	cfg  Config
}

func New(rows []Row, cfg Config) *Paginator {
	if cfg.Page < 1 {
		cfg.Page = 1
	}
	if cfg.PageSize < 1 || cfg.PageSize > MaxPageSize {
		cfg.PageSize = PageSize
	}
	if cfg.Columns < 1 {
		cfg.Columns = 2
	}
	return &Paginator{rows: rows, cfg: cfg}
}

// PageCount - число страниц, минимум 1.
func (p *Paginator) PageCount() int {
	count := (len(p.rows) + p.cfg.PageSize - 1) / p.cfg.PageSize
	if count < 1 {
		count = 1
	}
	return count
}

// Page - действующая страница после прижатия к границам.
func (p *Paginator) Page() int {
	if last := p.PageCount(); p.cfg.Page > last {
		return last
	}
	return p.cfg.Page
}

// PageRows возвращает записи текущей страницы.
func (p *Paginator) PageRows() []Row {
	start := (p.Page() - 1) * p.cfg.PageSize
	if start >= len(p.rows) {
		return nil
	}
	end := start + p.cfg.PageSize
	if end > len(p.rows) {
		end = len(p.rows)
	}
	return p.rows[start:end]
}

// Markup собирает клавиатуру: сетка кнопок-записей и навигационный
// ряд внизу. При одной странице навигации нет.
func (p *Paginator) Markup() (tgbotapi.InlineKeyboardMarkup, error) {
	var markup tgbotapi.InlineKeyboardMarkup

	data, err := p.dataButtons()
	if err != nil {
		return markup, err
	}
	markup.InlineKeyboard = keyboard.Grid(data, p.cfg.Columns)

	nav, err := p.navButtons()
	if err != nil {
		return markup, err
	}
	if len(nav) > 0 {
		markup.InlineKeyboard = append(markup.InlineKeyboard, nav)
	}
	return markup, nil
}

func (p *Paginator) dataButtons() ([]tgbotapi.InlineKeyboardButton, error) {
	rows := p.PageRows()
	buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(rows))
	for _, row := range rows {
		token, err := callback.Encode(p.cfg.DataCommand, row.Keys.Merge(p.cfg.DataParams))
		if err != nil {
			return nil, err
		}
		buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(row.Title, token))
	}
	return buttons, nil
}

func (p *Paginator) navButtons() ([]tgbotapi.InlineKeyboardButton, error) {
	pageCount := p.PageCount()
	switch {
	case pageCount == 1:
		return nil, nil
	case pageCount <= 5:
		buttons := make([]tgbotapi.InlineKeyboardButton, 0, pageCount)
		for page := 1; page <= pageCount; page++ {
			btn, err := p.pageButton(page, p.numberLabel(page))
			if err != nil {
				return nil, err
			}
			buttons = append(buttons, btn)
		}
		return buttons, nil
	default:
		return p.windowButtons()
	}
}

// windowButtons - окно из пяти кнопок для длинных списков. У границ
// окно прижато к краю, в середине - первая, соседние, текущая и
// последняя страницы.
func (p *Paginator) windowButtons() ([]tgbotapi.InlineKeyboardButton, error) {
	page, pageCount := p.Page(), p.PageCount()
	switch {
	case page <= 3:
		return p.windowRow(
			pageLink{1, p.numberLabel(1)},
			pageLink{2, p.numberLabel(2)},
			pageLink{3, p.numberLabel(3)},
			pageLink{4, fmt.Sprintf(nextPageLabel, 4)},
			pageLink{pageCount, fmt.Sprintf("%d", pageCount)},
		)
	case page > pageCount-3:
		return p.windowRow(
			pageLink{1, fmt.Sprintf(firstPageLabel, 1)},
			pageLink{pageCount - 3, fmt.Sprintf(previousPageLabel, pageCount-3)},
			pageLink{pageCount - 2, p.numberLabel(pageCount - 2)},
			pageLink{pageCount - 1, p.numberLabel(pageCount - 1)},
			pageLink{pageCount, p.numberLabel(pageCount)},
		)
	default:
		return p.windowRow(
			pageLink{1, fmt.Sprintf(firstPageLabel, 1)},
			pageLink{page - 1, fmt.Sprintf(previousPageLabel, page-1)},
			pageLink{page, fmt.Sprintf(currentPageLabel, page)},
			pageLink{page + 1, fmt.Sprintf(nextPageLabel, page+1)},
			pageLink{pageCount, fmt.Sprintf(lastPageLabel, pageCount)},
		)
	}
}

type pageLink struct {
	page  int
	label string
}

func (p *Paginator) windowRow(links ...pageLink) ([]tgbotapi.InlineKeyboardButton, error) {
	buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(links))
	for _, link := range links {
		btn, err := p.pageButton(link.page, link.label)
		if err != nil {
			return nil, err
		}
		buttons = append(buttons, btn)
	}
	return buttons, nil
}

func (p *Paginator) numberLabel(page int) string {
	if page == p.Page() {
		return fmt.Sprintf(currentPageLabel, page)
	}
	return fmt.Sprintf("%d", page)
}

func (p *Paginator) pageButton(page int, label string) (tgbotapi.InlineKeyboardButton, error) {
	token, err := callback.Encode(p.cfg.PageCommand, p.cfg.PageParams.Merge(callback.Params{"page": page}))
	if err != nil {
		return tgbotapi.InlineKeyboardButton{}, err
	}
	return tgbotapi.NewInlineKeyboardButtonData(label, token), nil
}
