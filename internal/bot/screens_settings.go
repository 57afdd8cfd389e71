package bot

import (
	"fmt"
	"time"

	"github.com/byYuraGudan/PlaceTown/internal/models"
)

// filterScreen обслуживает три вида переключателей одной команды:
// st - фильтры списка компаний (с перерисовкой списка), order -
// сортировка, filter - видимость статусов заказов.
func (s *Service) filterScreen(ctx *Ctx) error {
	settings := &ctx.User.Settings

	if st := ctx.Params.Str("st", ""); st != "" {
		switch st {
		case "open":
			settings.Filters.Open = !settings.Filters.Open
			s.answer(ctx, btnFilterOpen+checked(settings.Filters.Open))
		case "nearby":
			if !settings.Filters.Nearby && !settings.Location.Fresh(time.Now()) {
				s.answer(ctx, textMustUpdateLocation)
				return nil
			}
			settings.Filters.Nearby = !settings.Filters.Nearby
			s.answer(ctx, btnFilterNearby+checked(settings.Filters.Nearby))
		default:
			return nil
		}
		if err := s.users.SaveSettings(ctx.User.ID, *settings); err != nil {
			return err
		}
		// Список компаний перерисовывается на прежнем месте: его
		// контекст приехал в том же токене.
		delete(ctx.Params, "st")
		return s.companiesScreen(ctx)
	}

	if order := ctx.Params.Str("order", ""); order != "" {
		switch order {
		case "sorting":
			settings.Sort.SetDesc(!settings.Sort.GetDesc())
		case models.SortByMark, models.SortByName:
			settings.Sort.By = order
		default:
			return nil
		}
		return s.saveAndRedrawFilters(ctx)
	}

	if filter := ctx.Params.Str("filter", ""); filter != "" {
		switch filter {
		case "show_done":
			settings.Filters.ShowDone = !settings.Filters.ShowDone
		case "show_rejected":
			settings.Filters.SetShowRejected(!settings.Filters.GetShowRejected())
		default:
			return nil
		}
		return s.saveAndRedrawFilters(ctx)
	}

	return nil
}

func (s *Service) saveAndRedrawFilters(ctx *Ctx) error {
	if err := s.users.SaveSettings(ctx.User.ID, ctx.User.Settings); err != nil {
		return err
	}
	markup, err := filterMarkup(&ctx.User.Settings)
	if err != nil {
		return err
	}
	return s.telegram.EditReplyMarkup(ctx.ChatID(), ctx.MessageID(), markup)
}

// languageScreen переключает язык интерфейса и заново отправляет
// главное меню.
func (s *Service) languageScreen(ctx *Ctx) error {
	code := ctx.Params.Str("lang", "")
	var name string
	for _, lang := range languages {
		if lang.Code == code {
			name = lang.Name
			break
		}
	}
	if name == "" {
		s.answer(ctx, textNoInfo)
		return nil
	}

	if err := s.users.SetLanguage(ctx.User.ID, code); err != nil {
		return err
	}
	ctx.User.Lang = code

	markup, err := languageMarkup(code)
	if err != nil {
		return err
	}
	if err := s.telegram.EditReplyMarkup(ctx.ChatID(), ctx.MessageID(), markup); err != nil {
		return err
	}
	s.answer(ctx, name)

	owner, err := s.users.OwnsCompany(ctx.User.ID)
	if err != nil {
		return err
	}
	return s.telegram.SendMessageWithReplyKeyboard(ctx.ChatID(), fmt.Sprintf(textLangSaved, name), mainMenu(owner))
}
