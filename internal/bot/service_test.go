package bot

import (
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/byYuraGudan/PlaceTown/internal/callback"
	"github.com/byYuraGudan/PlaceTown/internal/database"
	"github.com/byYuraGudan/PlaceTown/internal/models"
)

type fakeUserStore struct {
	users map[int64]models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[int64]models.User)}
}

func (s *fakeUserStore) GetOrCreate(id int64, fullName, username, lang string) (models.User, error) {
	if user, ok := s.users[id]; ok {
		return user, nil
	}
	user := models.User{ID: id, FullName: fullName, Username: username, Lang: lang}
	s.users[id] = user
	return user, nil
}

func (s *fakeUserStore) GetByID(id int64) (models.User, error) {
	return s.users[id], nil
}

func (s *fakeUserStore) SaveSettings(id int64, settings models.UserSettings) error {
	user := s.users[id]
	user.Settings = settings
	s.users[id] = user
	return nil
}

func (s *fakeUserStore) SetPhone(id int64, phone string) error {
	user := s.users[id]
	user.Phone = phone
	s.users[id] = user
	return nil
}

func (s *fakeUserStore) SetLanguage(id int64, lang string) error {
	user := s.users[id]
	user.Lang = lang
	s.users[id] = user
	return nil
}

func (s *fakeUserStore) SetLocation(id int64, longitude, latitude float64, now time.Time) (models.UserSettings, error) {
	user := s.users[id]
	user.Settings.Location = &models.LocationFix{Longitude: longitude, Latitude: latitude, LastUpdate: now}
	s.users[id] = user
	return user.Settings, nil
}

func (s *fakeUserStore) OwnsCompany(id int64) (bool, error) {
	return false, nil
}

type fakeCompanyStore struct {
	categories []models.Category
	companies  []models.Company
	services   []models.Service
	lastFilter database.CompanyFilter
}

func (s *fakeCompanyStore) Categories() ([]models.Category, error) {
	return s.categories, nil
}

func (s *fakeCompanyStore) CompaniesByCategory(f database.CompanyFilter) ([]models.Company, error) {
	s.lastFilter = f
	return s.companies, nil
}

func (s *fakeCompanyStore) GetByID(id int64) (models.Company, error) {
	for _, c := range s.companies {
		if c.ID == id {
			return c, nil
		}
	}
	return models.Company{}, nil
}

func (s *fakeCompanyStore) WorkSchedule(companyID int64) ([]models.TimeWork, error) {
	return nil, nil
}

func (s *fakeCompanyStore) HasGrade(reviewerID, companyID int64) (bool, error) {
	return false, nil
}

func (s *fakeCompanyStore) CreateGrade(reviewerID, companyID int64, mark int) error {
	return nil
}

func (s *fakeCompanyStore) ServicesByCompany(companyID int64) ([]models.Service, error) {
	return nil, nil
}

func (s *fakeCompanyStore) ServiceByID(id int64) (models.Service, error) {
	for _, service := range s.services {
		if service.ID == id {
			return service, nil
		}
	}
	return models.Service{}, nil
}

func newTestService() (*Service, *fakeMessenger, *fakeUserStore, *fakeCompanyStore) {
	messenger := &fakeMessenger{}
	users := newFakeUserStore()
	companies := &fakeCompanyStore{}
	orders := newFakeOrderStore()
	orderService := NewOrderService(messenger, zap.NewNop(), orders)
	service := NewService(messenger, zap.NewNop(), users, companies, orders, orderService)
	return service, messenger, users, companies
}

func callbackUpdate(userID int64, data string) *tgbotapi.CallbackQuery {
	return &tgbotapi.CallbackQuery{
		ID:   "cb-1",
		From: &tgbotapi.User{ID: userID, FirstName: "Тест"},
		Data: data,
		Message: &tgbotapi.Message{
			MessageID: 42,
			Chat:      &tgbotapi.Chat{ID: userID},
		},
	}
}

// TestHandleCallbackUnknownCommand - неизвестная команда не считается
// сбоем: логируется и пользователю снимается индикатор загрузки.
func TestHandleCallbackUnknownCommand(t *testing.T) {
	service, messenger, _, _ := newTestService()

	err := service.handleCallback(callbackUpdate(1, "nope;id=1"))
	require.NoError(t, err)
	assert.Len(t, messenger.answers, 1)
}

// TestHandleCallbackBadToken - битый токен отклоняется с ответом
// пользователю.
func TestHandleCallbackBadToken(t *testing.T) {
	service, messenger, _, _ := newTestService()

	err := service.handleCallback(callbackUpdate(1, "did;id=abc"))
	require.NoError(t, err)
	require.Len(t, messenger.answers, 1)
	assert.Equal(t, textNoInfo, messenger.answers[0])
}

// TestFilterTogglePersists - переключатель сортировки сохраняет
// настройки и перерисовывает клавиатуру фильтров.
func TestFilterTogglePersists(t *testing.T) {
	service, _, users, _ := newTestService()

	err := service.handleCallback(callbackUpdate(1, "filter;order=mark"))
	require.NoError(t, err)
	saved := users.users[1]
	assert.Equal(t, models.SortByMark, saved.Settings.Sort.GetBy())

	err = service.handleCallback(callbackUpdate(1, "filter;order=sorting"))
	require.NoError(t, err)
	saved = users.users[1]
	assert.False(t, saved.Settings.Sort.GetDesc())

	err = service.handleCallback(callbackUpdate(1, "filter;filter=show_rejected"))
	require.NoError(t, err)
	saved = users.users[1]
	assert.False(t, saved.Settings.Filters.GetShowRejected())
}

// TestNearbyRequiresFreshLocation - фильтр "рядом" не включается на
// устаревшей геопозиции.
func TestNearbyRequiresFreshLocation(t *testing.T) {
	service, messenger, users, _ := newTestService()

	user, _ := users.GetOrCreate(1, "Тест", "", "ru")
	user.Settings.Location = &models.LocationFix{
		Longitude:  30.5,
		Latitude:   50.4,
		LastUpdate: time.Now().Add(-11 * time.Minute),
	}
	users.users[1] = user

	err := service.handleCallback(callbackUpdate(1, "filter;st=nearby;cid=3;page=1;ct_pg=1"))
	require.NoError(t, err)

	assert.False(t, users.users[1].Settings.Filters.Nearby)
	require.NotEmpty(t, messenger.answers)
	assert.Equal(t, textMustUpdateLocation, messenger.answers[0])
}

// TestOpenToggleRedrawsCompanies - переключение "открыто сейчас"
// сохраняет настройку и запрашивает компании с фильтром по времени.
func TestOpenToggleRedrawsCompanies(t *testing.T) {
	service, _, users, companies := newTestService()
	companies.companies = []models.Company{{ID: 1, CategoryID: 3, Name: "Ателье"}}

	err := service.handleCallback(callbackUpdate(1, "filter;st=open;cid=3;page=1;ct_pg=1"))
	require.NoError(t, err)

	assert.True(t, users.users[1].Settings.Filters.Open)
	assert.NotNil(t, companies.lastFilter.OpenAt)
	assert.Equal(t, int64(3), companies.lastFilter.CategoryID)
}

// TestNearbySortOverridesChosen - при включённом "рядом" компании
// упорядочены по расстоянию, выбранная сортировка не применяется.
func TestNearbySortOverridesChosen(t *testing.T) {
	service, _, users, companies := newTestService()

	nearLon, nearLat := 30.51, 50.45
	farLon, farLat := 30.70, 50.60
	companies.companies = []models.Company{
		{ID: 1, CategoryID: 3, Name: "Дальняя", Longitude: &farLon, Latitude: &farLat},
		{ID: 2, CategoryID: 3, Name: "Ближняя", Longitude: &nearLon, Latitude: &nearLat},
	}

	user, _ := users.GetOrCreate(1, "Тест", "", "ru")
	user.Settings.Filters.Nearby = true
	user.Settings.Location = &models.LocationFix{Longitude: 30.5, Latitude: 50.45, LastUpdate: time.Now()}
	users.users[1] = user

	err := service.handleCallback(callbackUpdate(1, "iid;cid=3;page=1"))
	require.NoError(t, err)

	assert.True(t, companies.lastFilter.RequireLocation)
	assert.Empty(t, companies.lastFilter.OrderBy)
}

// TestCreateOrderRequiresPhone - без телефона заказ не оформляется,
// пользователю предлагается клавиатура настроек.
func TestCreateOrderRequiresPhone(t *testing.T) {
	service, messenger, _, companies := newTestService()
	companies.services = []models.Service{{ID: 5, CompanyID: 1, Name: "Стрижка"}}

	err := service.handleCallback(callbackUpdate(1, "cr-order;id=5"))
	require.NoError(t, err)

	require.NotEmpty(t, messenger.answers)
	assert.Equal(t, textMustSetPhone, messenger.answers[0])
	// заказ не создан, ушла только подсказка с запросом контакта
	require.Len(t, messenger.sent, 1)
	assert.Equal(t, textMustSetPhone, messenger.sent[0].text)
}

// TestCreateOrderBookedService - гонка по услуге бронирования
// превращается в уведомление, а не в сбой.
func TestCreateOrderBookedService(t *testing.T) {
	messenger := &fakeMessenger{}
	users := newFakeUserStore()
	companies := &fakeCompanyStore{services: []models.Service{{ID: 5, Type: models.ServiceTypeBooking}}}
	orders := newFakeOrderStore()
	orders.booked = true
	orderService := NewOrderService(messenger, zap.NewNop(), orders)
	service := NewService(messenger, zap.NewNop(), users, companies, orders, orderService)

	user, _ := users.GetOrCreate(1, "Тест", "", "ru")
	user.Phone = "+380501112233"
	users.users[1] = user

	err := service.handleCallback(callbackUpdate(1, "cr-order;id=5"))
	require.NoError(t, err)

	require.NotEmpty(t, messenger.answers)
	assert.Equal(t, textServiceBooked, messenger.answers[0])
	assert.Empty(t, orders.orders)
}

// TestCompaniesEmptyCategory - пустая категория показывает заглушку
// с переключателями фильтров и кнопкой "назад".
func TestCompaniesEmptyCategory(t *testing.T) {
	service, messenger, _, _ := newTestService()

	err := service.handleCallback(callbackUpdate(1, "iid;cid=5;page=1;ct_pg=1"))
	require.NoError(t, err)

	require.Len(t, messenger.edits, 1)
	edit := messenger.edits[0]
	assert.Equal(t, textNoCompanies, edit.text)
	require.NotNil(t, edit.markup)
	require.Len(t, edit.markup.InlineKeyboard, 2)
	assert.Len(t, edit.markup.InlineKeyboard[0], 2)
	require.Len(t, edit.markup.InlineKeyboard[1], 1)

	command, params, err := callback.Decode(*edit.markup.InlineKeyboard[1][0].CallbackData)
	require.NoError(t, err)
	assert.Equal(t, cmdCategories, command)
	assert.Equal(t, 1, params.Int("page", 0))
}

// TestCompaniesBackRestoresCategoryPage - кнопка "назад" списка
// компаний несёт страницу категорий из токена.
func TestCompaniesBackRestoresCategoryPage(t *testing.T) {
	service, _, _, companies := newTestService()
	companies.companies = []models.Company{{ID: 1, CategoryID: 3, Name: "Ателье"}}

	settings := &models.UserSettings{}
	rows, err := service.companyOptionRows(settings, 3, 2, 4)
	require.NoError(t, err)

	back := rows[len(rows)-1][0]
	command, params, err := callback.Decode(*back.CallbackData)
	require.NoError(t, err)
	assert.Equal(t, cmdCategories, command)
	assert.Equal(t, 4, params.Int("page", 0))
}
