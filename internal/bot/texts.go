package bot

// Команды callback-токенов. Это wire-протокол кнопок: короткие, потому
// что весь токен ограничен 64 байтами.
const (
	cmdLanguage            = "lang"
	cmdFilter              = "filter"
	cmdCategories          = "cid"
	cmdCompanies           = "iid"
	cmdCompanyDetail       = "did"
	cmdCompanyLocation     = "location"
	cmdGradeCompany        = "gr-com"
	cmdServices            = "services"
	cmdServiceDetail       = "ssid"
	cmdCreateOrder         = "cr-order"
	cmdOrderStatus         = "us-order"
	cmdOutgoingOrders      = "ooid"
	cmdOutgoingOrderDetail = "doid"
	cmdIncomingOrders      = "ioid"
	cmdIncomingOrderDetail = "dioid"
	cmdProfile             = "pfid"
)

// Кнопки главного меню, они же текстовые триггеры.
const (
	menuCategories = "🗂 Категории"
	menuLocation   = "📍 Поделиться геопозицией"
	menuOrders     = "📦 Мои заказы"
	menuProfile    = "👤 Мой профиль"
	menuFilters    = "⚙️ Фильтры"
)

const (
	btnBack        = "‹ Назад"
	btnSite        = "🌐 Сайт"
	btnLocation    = "📍 Расположение"
	btnGrade       = "⭐ Оценить"
	btnServices    = "🛠 Услуги"
	btnCreateOrder = "📝 Оформить заказ"
	btnAccept      = "✅ Принять"
	btnDone        = "🏁 Выполнен"
	btnReject      = "❌ Отклонить"
	btnIncoming    = "📥 Входящие заказы"
	btnCompany     = "🏢 Компания"
	btnGetPhone    = "📞 Отправить номер телефона"

	btnFilterOpen     = "Открыто сейчас"
	btnFilterNearby   = "Рядом"
	btnSortByMark     = "По рейтингу"
	btnSortByName     = "По алфавиту"
	btnSortDirection  = "Направление сортировки"
	btnShowRejected   = "Показывать отклонённые"
	btnShowDone       = "Показывать выполненные"
)

const (
	textWelcome = `Привет, %s! 👋
Здесь можно найти компании по категориям, посмотреть их услуги и оформить заказ.
Выберите раздел в меню ниже.`

	textHelp = `Бот-справочник местных услуг.
🗂 Категории - каталог компаний
📍 Поделиться геопозицией - для фильтра "рядом"
📦 Мои заказы - ваши заказы и их статусы
⚙️ Фильтры - настройка списка компаний и заказов`

	textUnknown = "Не понимаю. Отправьте /help, чтобы посмотреть, что я умею."
	textBlocked = "Доступ к боту ограничен."

	textChooseCategory = "Выберите категорию:"
	textChooseCompany  = "Выберите компанию:"
	textChooseService  = "Выберите услугу компании:"
	textChooseOrder    = "Выберите заказ:"
	textChooseLanguage = "Выберите язык:"
	textChooseFilters  = "Настройки списка компаний и заказов:"

	textNoCategories = "Категории пока не заведены."
	textNoCompanies  = "В этой категории пока нет подходящих исполнителей."
	textNoServices   = "У компании нет доступных услуг."
	textNoOrders     = "Заказов пока нет."
	textNoInfo       = "Информация недоступна."

	textMustSetPhone       = "Чтобы оформить заказ, отправьте номер телефона."
	textMustUpdateLocation = "Геопозиция устарела. Поделитесь ей ещё раз."
	textServiceBooked      = "Услуга уже забронирована."
	textAlreadyGraded      = "Вы уже оценивали эту компанию."
	textGradeCompany       = "Оцените компанию:"
	textYourMark           = "Ваша оценка: %d ⭐"
	textBadTransition      = "Действие для этого статуса заказа недоступно."

	textCompanyLocation = "Расположение компании %s"
	textNoLocationInfo  = "У компании не указано расположение."

	textPhoneSaved    = "Телефон сохранён: %s"
	textLocationSaved = "Геопозиция обновлена. Теперь доступен фильтр \"рядом\"."
	textLangSaved     = "Язык переключён: %s"

	textMyProfile = "Мой профиль"

	textOrderCustomer = `Заказ №%d - %s
Компания: %s
Услуга: %s
Создан: %s
Контакт компании: %s`

	textOrderPerformer = `Заказ №%d - %s
Услуга: %s
Создан: %s
Компания: %s
Клиент: %s
Телефон клиента: %s`

	textNewsNotification = `📰 %s
%s

%s

%s`
)
