package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// SortByName и SortByMark - допустимые ключи сортировки компаний.
const (
	SortByName = "name"
	SortByMark = "mark"
)

// LocationStaleAfter - срок годности геопозиции пользователя. Фильтр
// "рядом" отказывается работать на более старых координатах.
const LocationStaleAfter = 10 * time.Minute

// FilterSettings - флаги фильтров пользователя. Значения по умолчанию:
// open=false, nearby=false, show_done=false, show_rejected=true.
// Отсутствующие в JSON поля материализуются при первом чтении.
type FilterSettings struct {
	Open         bool  `json:"open"`
	Nearby       bool  `json:"nearby"`
	ShowDone     bool  `json:"show_done"`
	ShowRejected *bool `json:"show_rejected"`
}

// GetShowRejected материализует значение по умолчанию (true).
func (f *FilterSettings) GetShowRejected() bool {
	if f.ShowRejected == nil {
		v := true
		f.ShowRejected = &v
	}
	return *f.ShowRejected
}

func (f *FilterSettings) SetShowRejected(v bool) {
	f.ShowRejected = &v
}

// SortSettings - настройки сортировки списка компаний. По умолчанию
// by=name, desc=true.
type SortSettings struct {
	By   string `json:"by"`
	Desc *bool  `json:"sorting"`
}

func (s *SortSettings) GetBy() string {
	if s.By == "" {
		s.By = SortByName
	}
	return s.By
}

// GetDesc материализует направление сортировки по умолчанию (true).
func (s *SortSettings) GetDesc() bool {
	if s.Desc == nil {
		v := true
		s.Desc = &v
	}
	return *s.Desc
}

func (s *SortSettings) SetDesc(v bool) {
	s.Desc = &v
}

// LocationFix - последняя известная геопозиция пользователя.
type LocationFix struct {
	Longitude  float64   `json:"longitude"`
	Latitude   float64   `json:"latitude"`
	LastUpdate time.Time `json:"last_update"`
}

// Fresh - координаты моложе LocationStaleAfter.
func (l *LocationFix) Fresh(now time.Time) bool {
	if l == nil || l.LastUpdate.IsZero() {
		return false
	}
	return now.Sub(l.LastUpdate) <= LocationStaleAfter
}

// UserSettings - настройки пользователя, хранятся в JSONB-колонке.
type UserSettings struct {
	Filters  FilterSettings `json:"filters"`
	Sort     SortSettings   `json:"orders"`
	Location *LocationFix   `json:"location,omitempty"`
}

// HiddenStatuses - статусы заказов, скрытые текущими фильтрами.
func (s *UserSettings) HiddenStatuses() []OrderStatus {
	var hidden []OrderStatus
	if !s.Filters.ShowDone {
		hidden = append(hidden, OrderStatusDone)
	}
	if !s.Filters.GetShowRejected() {
		hidden = append(hidden, OrderStatusRejected)
	}
	return hidden
}

func (s UserSettings) Value() (driver.Value, error) {
	return json.Marshal(s)
}

func (s *UserSettings) Scan(src interface{}) error {
	return scanJSON(src, s)
}

// OrderSettings - служебные данные заказа: идентификаторы "живых"
// сообщений обеих сторон. Список, хотя живёт не больше одного
// сообщения на сторону.
type OrderSettings struct {
	UserMessages      []int `json:"user_messages,omitempty"`
	PerformerMessages []int `json:"performer_messages,omitempty"`
}

func (s OrderSettings) Value() (driver.Value, error) {
	return json.Marshal(s)
}

func (s *OrderSettings) Scan(src interface{}) error {
	return scanJSON(src, s)
}

func scanJSON(src, dst interface{}) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	default:
		return fmt.Errorf("неподдерживаемый тип для JSONB: %T", src)
	}
}
