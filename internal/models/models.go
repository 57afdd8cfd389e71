package models

import "time"

// OrderStatus - статус заказа. Порядок значений совпадает с кодами,
// которые ходят в callback-токенах, менять их нельзя.
type OrderStatus int

const (
	OrderStatusWaiting  OrderStatus = 0
	OrderStatusAccepted OrderStatus = 1
	OrderStatusRejected OrderStatus = 2
	OrderStatusDone     OrderStatus = 3
)

var orderStatusLabels = map[OrderStatus]string{
	OrderStatusWaiting:  "ожидает",
	OrderStatusAccepted: "принят",
	OrderStatusRejected: "отклонён",
	OrderStatusDone:     "выполнен",
}

var orderStatusEmoji = map[OrderStatus]string{
	OrderStatusWaiting:  "🟡",
	OrderStatusAccepted: "🟢",
	OrderStatusRejected: "🔴",
	OrderStatusDone:     "✅",
}

// Разрешённые переходы статусов: rejected и done - терминальные.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusWaiting:  {OrderStatusAccepted, OrderStatusRejected},
	OrderStatusAccepted: {OrderStatusDone, OrderStatusRejected},
}

func (s OrderStatus) Label() string {
	return orderStatusLabels[s]
}

func (s OrderStatus) Emoji() string {
	return orderStatusEmoji[s]
}

// Terminal сообщает, что из статуса больше нет переходов.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusRejected || s == OrderStatusDone
}

// CanTransition проверяет переход по таблице статусов.
func (s OrderStatus) CanTransition(to OrderStatus) bool {
	for _, next := range orderTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// ServiceType - тип услуги. Услуга с бронированием допускает не больше
// одного незавершённого заказа одновременно.
type ServiceType int

const (
	ServiceTypeSimple  ServiceType = 0
	ServiceTypeBooking ServiceType = 1
)

// User - пользователь телеграма. Создаётся при первом обращении к боту.
type User struct {
	ID       int64        `db:"id"`
	FullName string       `db:"full_name"`
	Username string       `db:"username"`
	Lang     string       `db:"lang"`
	Phone    string       `db:"phone"`
	Blocked  bool         `db:"blocked"`
	Settings UserSettings `db:"settings"`
}

type Category struct {
	ID          int64  `db:"id"`
	Name        string `db:"name"`
	Description string `db:"description"`
	Hidden      bool   `db:"hidden"`
}

type Company struct {
	ID          int64    `db:"id"`
	CategoryID  int64    `db:"category_id"`
	OwnerID     int64    `db:"owner_id"`
	Name        string   `db:"name"`
	Description string   `db:"description"`
	Address     string   `db:"address"`
	Contact     string   `db:"contact"`
	Email       string   `db:"email"`
	Site        string   `db:"site"`
	Longitude   *float64 `db:"longitude"`
	Latitude    *float64 `db:"latitude"`
	AvgMark     *float64 `db:"avg_mark"`

	// Distance заполняется в обработчике при включённом фильтре
	// "рядом", в базе не хранится.
	Distance float64 `db:"-"`
}

// HasLocation - у компании заданы обе координаты.
func (c Company) HasLocation() bool {
	return c.Longitude != nil && c.Latitude != nil
}

// TimeWork - одна строка графика работы компании.
type TimeWork struct {
	ID        int64  `db:"id"`
	CompanyID int64  `db:"company_id"`
	WeekDay   int    `db:"week_day"` // 0 - понедельник
	StartTime string `db:"start_time"`
	EndTime   string `db:"end_time"`
	IsLunch   bool   `db:"is_lunch"`
}

var weekDayLabels = [...]string{"Пн", "Вт", "Ср", "Чт", "Пт", "Сб", "Вс"}

func (t TimeWork) WeekDayLabel() string {
	if t.WeekDay < 0 || t.WeekDay >= len(weekDayLabels) {
		return ""
	}
	return weekDayLabels[t.WeekDay]
}

type Service struct {
	ID          int64       `db:"id"`
	CompanyID   int64       `db:"company_id"`
	Type        ServiceType `db:"type"`
	Name        string      `db:"name"`
	Description string      `db:"description"`

	// Поля компании-исполнителя, подтягиваются джойном.
	CompanyName string `db:"company_name"`
	OwnerID     int64  `db:"owner_id"`
}

type Grade struct {
	ID         int64     `db:"id"`
	ReviewerID int64     `db:"reviewer_id"`
	CompanyID  int64     `db:"company_id"`
	Mark       int       `db:"mark"`
	Created    time.Time `db:"created"`
}

type News struct {
	ID          int64      `db:"id"`
	CompanyID   int64      `db:"company_id"`
	Title       string     `db:"title"`
	Description string     `db:"description"`
	NotifyUsers bool       `db:"notify_users"`
	Notified    bool       `db:"notified"`
	DateFrom    *time.Time `db:"date_from"`
	DateTo      *time.Time `db:"date_to"`
	Created     time.Time  `db:"created"`

	CompanyName string `db:"company_name"`
}

// Active - дата попадает в окно действия новости.
func (n News) Active(now time.Time) bool {
	day := now.Truncate(24 * time.Hour)
	if n.DateFrom != nil && day.Before(n.DateFrom.Truncate(24*time.Hour)) {
		return false
	}
	if n.DateTo != nil && day.After(n.DateTo.Truncate(24*time.Hour)) {
		return false
	}
	return true
}

// Order - заказ пользователя на услугу компании. Изменяется только через
// OrderService, удаление не предусмотрено.
type Order struct {
	ID         int64         `db:"id"`
	Status     OrderStatus   `db:"status"`
	CustomerID int64         `db:"customer_id"`
	ServiceID  int64         `db:"service_id"`
	Settings   OrderSettings `db:"settings"`
	Created    time.Time     `db:"created"`
	Updated    time.Time     `db:"updated"`

	// Поля для отображения, подтягиваются джойнами.
	ServiceName    string `db:"service_name"`
	CompanyName    string `db:"company_name"`
	CompanyContact string `db:"company_contact"`
	PerformerID    int64  `db:"performer_id"`
	CustomerName   string `db:"customer_name"`
	CustomerPhone  string `db:"customer_phone"`
}
