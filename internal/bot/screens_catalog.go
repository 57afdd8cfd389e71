package bot

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/byYuraGudan/PlaceTown/internal/callback"
	"github.com/byYuraGudan/PlaceTown/internal/database"
	"github.com/byYuraGudan/PlaceTown/internal/geo"
	"github.com/byYuraGudan/PlaceTown/internal/keyboard"
	"github.com/byYuraGudan/PlaceTown/internal/models"
	"github.com/byYuraGudan/PlaceTown/internal/pagination"
)

// categoriesView строит экран списка категорий. Кнопка категории
// открывает список её компаний и несёт страницу категорий как
// обратную ссылку для кнопки "назад".
func (s *Service) categoriesView(page int) (string, *tgbotapi.InlineKeyboardMarkup, error) {
	categories, err := s.companies.Categories()
	if err != nil {
		return "", nil, err
	}
	if len(categories) == 0 {
		return textNoCategories, nil, nil
	}

	rows := make([]pagination.Row, 0, len(categories))
	for _, category := range categories {
		rows = append(rows, pagination.Row{
			Title: category.Name,
			Keys:  callback.Params{"cid": int(category.ID)},
		})
	}

	paginator := pagination.New(rows, pagination.Config{
		DataCommand: cmdCompanies,
		PageCommand: cmdCategories,
		Page:        page,
		DataParams:  callback.Params{callback.KeyCategoryPage: page},
	})
	markup, err := paginator.Markup()
	if err != nil {
		return "", nil, err
	}
	return textChooseCategory, &markup, nil
}

func (s *Service) categoriesScreen(ctx *Ctx) error {
	text, markup, err := s.categoriesView(ctx.Params.Int("page", 1))
	if err != nil {
		return err
	}
	return s.telegram.EditMessageText(ctx.ChatID(), ctx.MessageID(), text, markup)
}

func (s *Service) sendCategories(chatID int64) error {
	text, markup, err := s.categoriesView(1)
	if err != nil {
		return err
	}
	if markup == nil {
		return s.telegram.SendMessage(chatID, text)
	}
	_, err = s.telegram.SendMessageWithInlineKeyboard(chatID, text, *markup)
	return err
}

// companiesScreen - список компаний категории. Порядок применения:
// фильтр "открыто сейчас", затем фильтр "рядом", затем выбранная
// сортировка. При активном "рядом" сортировка по расстоянию
// перекрывает выбранную.
func (s *Service) companiesScreen(ctx *Ctx) error {
	categoryID := ctx.Params.Int("cid", 0)
	page := ctx.Params.Int("page", 1)
	categoryPage := callback.BreadcrumbFrom(ctx.Params).CategoryPageOr(1)

	settings := &ctx.User.Settings
	filter := database.CompanyFilter{CategoryID: int64(categoryID)}
	if settings.Filters.Open {
		now := time.Now()
		filter.OpenAt = &now
	}
	nearby := settings.Filters.Nearby && settings.Location != nil
	if nearby {
		filter.RequireLocation = true
	} else {
		filter.OrderBy = settings.Sort.GetBy()
		filter.Desc = settings.Sort.GetDesc()
	}

	companies, err := s.companies.CompaniesByCategory(filter)
	if err != nil {
		return err
	}

	optionRows, err := s.companyOptionRows(settings, categoryID, page, categoryPage)
	if err != nil {
		return err
	}

	if len(companies) == 0 {
		markup := tgbotapi.InlineKeyboardMarkup{InlineKeyboard: optionRows}
		return s.telegram.EditMessageText(ctx.ChatID(), ctx.MessageID(), textNoCompanies, &markup)
	}

	if nearby {
		location := settings.Location
		for i := range companies {
			company := &companies[i]
			if company.HasLocation() {
				company.Distance = geo.CompanyDistance(
					location.Longitude, location.Latitude,
					*company.Longitude, *company.Latitude,
				)
			}
		}
		sort.Slice(companies, func(i, j int) bool {
			return companies[i].Distance < companies[j].Distance
		})
	}

	rows := make([]pagination.Row, 0, len(companies))
	for _, company := range companies {
		title := company.Name
		if nearby {
			title = fmt.Sprintf("%.2f км %s", company.Distance, company.Name)
		}
		rows = append(rows, pagination.Row{
			Title: title,
			Keys:  callback.Params{"id": int(company.ID)},
		})
	}

	paginator := pagination.New(rows, pagination.Config{
		DataCommand: cmdCompanyDetail,
		PageCommand: cmdCompanies,
		Page:        page,
		PageParams: callback.Params{
			"cid":                    categoryID,
			callback.KeyCategoryPage: categoryPage,
		},
		DataParams: callback.Params{
			callback.KeyCompanyPage:  page,
			callback.KeyCategoryPage: categoryPage,
		},
	})
	markup, err := paginator.Markup()
	if err != nil {
		return err
	}
	markup = keyboard.Append(markup, optionRows...)
	return s.telegram.EditMessageText(ctx.ChatID(), ctx.MessageID(), textChooseCompany, &markup)
}

// companyOptionRows - переключатели фильтров и возврат к категориям.
// Токены переключателей несут контекст списка, чтобы после
// переключения экран перерисовался на том же месте.
func (s *Service) companyOptionRows(settings *models.UserSettings, categoryID, page, categoryPage int) ([][]tgbotapi.InlineKeyboardButton, error) {
	listParams := callback.Params{
		"cid":                    categoryID,
		"page":                   page,
		callback.KeyCategoryPage: categoryPage,
	}

	openToken, err := callback.Encode(cmdFilter, listParams.Merge(callback.Params{"st": "open"}))
	if err != nil {
		return nil, err
	}
	nearbyToken, err := callback.Encode(cmdFilter, listParams.Merge(callback.Params{"st": "nearby"}))
	if err != nil {
		return nil, err
	}
	back, err := backButton(cmdCategories, callback.Params{"page": categoryPage})
	if err != nil {
		return nil, err
	}

	return [][]tgbotapi.InlineKeyboardButton{
		{
			tgbotapi.NewInlineKeyboardButtonData(btnFilterOpen+checked(settings.Filters.Open), openToken),
			tgbotapi.NewInlineKeyboardButtonData(btnFilterNearby+checked(settings.Filters.Nearby), nearbyToken),
		},
		{back},
	}, nil
}

// companyDetailScreen - карточка компании с рейтингом, контактами и
// графиком работы. Кнопка "назад" восстанавливает список компаний на
// прежней странице из параметров токена.
func (s *Service) companyDetailScreen(ctx *Ctx) error {
	companyID := ctx.Params.Int("id", 0)
	crumbs := callback.BreadcrumbFrom(ctx.Params)

	company, err := s.companies.GetByID(int64(companyID))
	if err != nil {
		return err
	}
	if company.ID == 0 {
		return s.telegram.EditMessageText(ctx.ChatID(), ctx.MessageID(), textNoInfo, nil)
	}

	var buttons []tgbotapi.InlineKeyboardButton
	if company.Site != "" {
		buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonURL(btnSite, company.Site))
	}
	if company.HasLocation() {
		token, err := callback.Encode(cmdCompanyLocation, callback.Params{"company_id": companyID})
		if err != nil {
			return err
		}
		buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(btnLocation, token))
	}

	graded, err := s.companies.HasGrade(ctx.User.ID, company.ID)
	if err != nil {
		return err
	}
	if !graded {
		token, err := callback.Encode(cmdGradeCompany, callback.Params{"cid": companyID})
		if err != nil {
			return err
		}
		buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(btnGrade, token))
	}

	services, err := s.companies.ServicesByCompany(company.ID)
	if err != nil {
		return err
	}
	if len(services) > 0 {
		params := callback.Params{"cid": companyID}
		token, err := callback.Encode(cmdServices, params.Merge(crumbs.Params()))
		if err != nil {
			return err
		}
		buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(btnServices, token))
	}

	back, err := backButton(cmdCompanies, callback.Params{
		"cid":                    int(company.CategoryID),
		"page":                   crumbs.CompanyPageOr(1),
		callback.KeyCategoryPage: crumbs.CategoryPageOr(1),
	})
	if err != nil {
		return err
	}

	markup := tgbotapi.InlineKeyboardMarkup{InlineKeyboard: keyboard.Grid(buttons, 2)}
	markup = keyboard.Append(markup, []tgbotapi.InlineKeyboardButton{back})

	schedule, err := s.companies.WorkSchedule(company.ID)
	if err != nil {
		return err
	}

	var text strings.Builder
	description := company.Description
	if description == "" {
		description = textNoInfo
	}
	fmt.Fprintf(&text, "%s\n%s", company.Name, description)
	if company.AvgMark != nil {
		fmt.Fprintf(&text, "\n⭐️: %.2f/5.0", *company.AvgMark)
	}
	if company.Address != "" {
		fmt.Fprintf(&text, "\n🏢: %s", company.Address)
	}
	if company.Contact != "" {
		fmt.Fprintf(&text, "\n📞: %s", company.Contact)
	}
	if company.Email != "" {
		fmt.Fprintf(&text, "\n📧: %s", company.Email)
	}
	text.WriteString("\nГрафик работы:")
	if len(schedule) == 0 {
		text.WriteString(" " + textNoInfo)
	} else {
		for _, day := range schedule {
			fmt.Fprintf(&text, "\n%s %s - %s", day.WeekDayLabel(), day.StartTime, day.EndTime)
		}
	}

	return s.telegram.EditMessageText(ctx.ChatID(), ctx.MessageID(), text.String(), &markup)
}

// companyLocationScreen отправляет геоточку компании отдельным
// сообщением.
func (s *Service) companyLocationScreen(ctx *Ctx) error {
	companyID := ctx.Params.Int("company_id", 0)
	company, err := s.companies.GetByID(int64(companyID))
	if err != nil {
		return err
	}
	if company.ID == 0 {
		s.answer(ctx, textNoInfo)
		return nil
	}
	if !company.HasLocation() {
		s.answer(ctx, textNoLocationInfo)
		return nil
	}
	if err := s.telegram.SendLocation(ctx.ChatID(), *company.Latitude, *company.Longitude); err != nil {
		return err
	}
	s.answer(ctx, fmt.Sprintf(textCompanyLocation, company.Name))
	return nil
}

// gradeScreen - оценка компании. Оценка ставится один раз; повторная
// попытка отклоняется, состояние не меняется.
func (s *Service) gradeScreen(ctx *Ctx) error {
	companyID := ctx.Params.Int("cid", 0)
	company, err := s.companies.GetByID(int64(companyID))
	if err != nil {
		return err
	}
	if company.ID == 0 {
		s.answer(ctx, textNoInfo)
		return nil
	}

	graded, err := s.companies.HasGrade(ctx.User.ID, company.ID)
	if err != nil {
		return err
	}

	if markStr := ctx.Params.Str("mark", ""); markStr != "" {
		if graded {
			s.answer(ctx, textAlreadyGraded)
			return nil
		}
		mark, err := strconv.Atoi(markStr)
		if err != nil {
			return fmt.Errorf("некорректная оценка %q в токене: %w", markStr, err)
		}
		if err := s.companies.CreateGrade(ctx.User.ID, company.ID, mark); err != nil {
			return err
		}
		s.logger.Info("Компания оценена",
			zap.Int64("company_id", company.ID),
			zap.Int64("reviewer_id", ctx.User.ID),
			zap.Int("mark", mark),
		)
		s.answer(ctx, fmt.Sprintf(textYourMark, mark))
		ctx.Params = callback.Params{"id": companyID}
		return s.companyDetailScreen(ctx)
	}

	if graded {
		s.answer(ctx, textAlreadyGraded)
		return nil
	}

	markup, err := gradeButtons(company.ID)
	if err != nil {
		return err
	}
	return s.telegram.EditMessageText(ctx.ChatID(), ctx.MessageID(), textGradeCompany, &markup)
}

// servicesScreen - список услуг компании. Услуги бронирования с живым
// заказом уже отфильтрованы хранилищем.
func (s *Service) servicesScreen(ctx *Ctx) error {
	companyID := ctx.Params.Int("cid", 0)
	page := ctx.Params.Int("page", 1)
	crumbs := callback.BreadcrumbFrom(ctx.Params)

	services, err := s.companies.ServicesByCompany(int64(companyID))
	if err != nil {
		return err
	}
	if len(services) == 0 {
		s.answer(ctx, textNoServices)
		ctx.Params = callback.Params{"id": companyID}.Merge(crumbs.Params())
		return s.companyDetailScreen(ctx)
	}

	rows := make([]pagination.Row, 0, len(services))
	for _, service := range services {
		rows = append(rows, pagination.Row{
			Title: service.Name,
			Keys:  callback.Params{"id": int(service.ID)},
		})
	}

	listCrumbs := callback.Params{
		callback.KeyCategoryPage: crumbs.CategoryPageOr(1),
		callback.KeyCompanyPage:  crumbs.CompanyPageOr(1),
	}
	paginator := pagination.New(rows, pagination.Config{
		DataCommand: cmdServiceDetail,
		PageCommand: cmdServices,
		Page:        page,
		PageParams:  listCrumbs.Merge(callback.Params{"cid": companyID}),
		DataParams: listCrumbs.Merge(callback.Params{
			"cid":                   companyID,
			callback.KeyServicePage: page,
		}),
	})
	markup, err := paginator.Markup()
	if err != nil {
		return err
	}

	back, err := backButton(cmdCompanyDetail, listCrumbs.Merge(callback.Params{"id": companyID}))
	if err != nil {
		return err
	}
	markup = keyboard.Append(markup, []tgbotapi.InlineKeyboardButton{back})
	return s.telegram.EditMessageText(ctx.ChatID(), ctx.MessageID(), textChooseService, &markup)
}

// serviceDetailScreen - карточка услуги с кнопкой оформления заказа.
func (s *Service) serviceDetailScreen(ctx *Ctx) error {
	serviceID := ctx.Params.Int("id", 0)
	companyID := ctx.Params.Int("cid", 0)
	crumbs := callback.BreadcrumbFrom(ctx.Params)

	service, err := s.companies.ServiceByID(int64(serviceID))
	if err != nil {
		return err
	}
	if service.ID == 0 {
		s.answer(ctx, textNoInfo)
		ctx.Params = callback.Params{"id": companyID}.Merge(crumbs.Params())
		return s.companyDetailScreen(ctx)
	}

	booked, err := s.orders.ServiceBooked(service.ID)
	if err != nil {
		return err
	}
	if booked {
		s.answer(ctx, textServiceBooked)
		return nil
	}

	orderToken, err := callback.Encode(cmdCreateOrder, callback.Params{"id": serviceID})
	if err != nil {
		return err
	}
	back, err := backButton(cmdServices, callback.Params{
		"cid":                    companyID,
		"page":                   crumbs.ServicePageOr(1),
		callback.KeyCategoryPage: crumbs.CategoryPageOr(1),
		callback.KeyCompanyPage:  crumbs.CompanyPageOr(1),
	})
	if err != nil {
		return err
	}

	markup := tgbotapi.InlineKeyboardMarkup{InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{
		{tgbotapi.NewInlineKeyboardButtonData(btnCreateOrder, orderToken)},
		{back},
	}}

	description := service.Description
	if description == "" {
		description = textNoInfo
	}
	text := fmt.Sprintf("%s\n%s", service.Name, description)
	return s.telegram.EditMessageText(ctx.ChatID(), ctx.MessageID(), text, &markup)
}
