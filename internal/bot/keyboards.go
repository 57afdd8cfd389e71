package bot

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/byYuraGudan/PlaceTown/internal/callback"
	"github.com/byYuraGudan/PlaceTown/internal/keyboard"
	"github.com/byYuraGudan/PlaceTown/internal/models"
)

// Поддерживаемые языки интерфейса.
var languages = []struct {
	Code string
	Name string
}{
	{"ru", "Русский"},
	{"uk", "Українська"},
	{"en", "English"},
}

// mainMenu - главное reply-меню. Владельцам компаний добавляется
// кнопка профиля со входящими заказами.
func mainMenu(isOwner bool) tgbotapi.ReplyKeyboardMarkup {
	rows := [][]tgbotapi.KeyboardButton{
		{
			tgbotapi.NewKeyboardButton(menuCategories),
			tgbotapi.NewKeyboardButtonLocation(menuLocation),
		},
		{
			tgbotapi.NewKeyboardButton(menuOrders),
			tgbotapi.NewKeyboardButton(menuFilters),
		},
	}
	if isOwner {
		rows = append(rows, []tgbotapi.KeyboardButton{tgbotapi.NewKeyboardButton(menuProfile)})
	}
	markup := tgbotapi.NewReplyKeyboard(rows...)
	markup.ResizeKeyboard = true
	return markup
}

// settingsMenu - запрос геопозиции и, если телефона ещё нет, контакта.
func settingsMenu(hasPhone bool) tgbotapi.ReplyKeyboardMarkup {
	rows := [][]tgbotapi.KeyboardButton{
		{tgbotapi.NewKeyboardButtonLocation(menuLocation)},
	}
	if !hasPhone {
		rows = append(rows, []tgbotapi.KeyboardButton{tgbotapi.NewKeyboardButtonContact(btnGetPhone)})
	}
	markup := tgbotapi.NewReplyKeyboard(rows...)
	markup.ResizeKeyboard = true
	return markup
}

// filterMarkup - настройки сортировки компаний и видимости заказов.
// Галочки и стрелки отражают текущее состояние настроек.
func filterMarkup(settings *models.UserSettings) (tgbotapi.InlineKeyboardMarkup, error) {
	sortDirection := " 🔽"
	if !settings.Sort.GetDesc() {
		sortDirection = " 🔼"
	}

	buttons := []struct {
		label  string
		params callback.Params
	}{
		{btnSortByMark + checked(settings.Sort.GetBy() == models.SortByMark), callback.Params{"order": models.SortByMark}},
		{btnSortByName + checked(settings.Sort.GetBy() == models.SortByName), callback.Params{"order": models.SortByName}},
		{btnSortDirection + sortDirection, callback.Params{"order": "sorting"}},
		{btnShowRejected + checked(settings.Filters.GetShowRejected()), callback.Params{"filter": "show_rejected"}},
		{btnShowDone + checked(settings.Filters.ShowDone), callback.Params{"filter": "show_done"}},
	}

	var markup tgbotapi.InlineKeyboardMarkup
	for _, b := range buttons {
		token, err := callback.Encode(cmdFilter, b.params)
		if err != nil {
			return markup, err
		}
		markup.InlineKeyboard = append(markup.InlineKeyboard,
			[]tgbotapi.InlineKeyboardButton{tgbotapi.NewInlineKeyboardButtonData(b.label, token)},
		)
	}
	return markup, nil
}

// gradeButtons - оценки от 1 до 5 одним рядом.
func gradeButtons(companyID int64) (tgbotapi.InlineKeyboardMarkup, error) {
	buttons := make([]tgbotapi.InlineKeyboardButton, 0, 5)
	for mark := 1; mark <= 5; mark++ {
		token, err := callback.Encode(cmdGradeCompany, callback.Params{
			"cid":  int(companyID),
			"mark": mark,
		})
		if err != nil {
			return tgbotapi.InlineKeyboardMarkup{}, err
		}
		buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(fmt.Sprintf("%d", mark), token))
	}
	return tgbotapi.InlineKeyboardMarkup{InlineKeyboard: keyboard.Grid(buttons, 5)}, nil
}

// languageMarkup - выбор языка, текущий помечен галочкой.
func languageMarkup(current string) (tgbotapi.InlineKeyboardMarkup, error) {
	buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(languages))
	for _, lang := range languages {
		token, err := callback.Encode(cmdLanguage, callback.Params{"lang": lang.Code})
		if err != nil {
			return tgbotapi.InlineKeyboardMarkup{}, err
		}
		buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(lang.Name+checked(lang.Code == current), token))
	}
	return tgbotapi.InlineKeyboardMarkup{InlineKeyboard: keyboard.Grid(buttons, 1)}, nil
}

// backButton - кнопка возврата на прежний экран.
func backButton(command string, params callback.Params) (tgbotapi.InlineKeyboardButton, error) {
	token, err := callback.Encode(command, params)
	if err != nil {
		return tgbotapi.InlineKeyboardButton{}, err
	}
	return tgbotapi.NewInlineKeyboardButtonData(btnBack, token), nil
}

func checked(on bool) string {
	if on {
		return " ✅"
	}
	return ""
}
