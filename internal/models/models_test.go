package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestOrderTransitions - таблица переходов: из "ожидает" можно принять
// или отклонить, из "принят" - выполнить или отклонить, терминальные
// статусы переходов не имеют.
func TestOrderTransitions(t *testing.T) {
	assert.True(t, OrderStatusWaiting.CanTransition(OrderStatusAccepted))
	assert.True(t, OrderStatusWaiting.CanTransition(OrderStatusRejected))
	assert.False(t, OrderStatusWaiting.CanTransition(OrderStatusDone))
	assert.False(t, OrderStatusWaiting.CanTransition(OrderStatusWaiting))

	assert.True(t, OrderStatusAccepted.CanTransition(OrderStatusDone))
	assert.True(t, OrderStatusAccepted.CanTransition(OrderStatusRejected))
	assert.False(t, OrderStatusAccepted.CanTransition(OrderStatusAccepted))

	for _, terminal := range []OrderStatus{OrderStatusRejected, OrderStatusDone} {
		assert.True(t, terminal.Terminal())
		for _, next := range []OrderStatus{OrderStatusWaiting, OrderStatusAccepted, OrderStatusRejected, OrderStatusDone} {
			assert.False(t, terminal.CanTransition(next))
		}
	}
}

func TestOrderStatusLabels(t *testing.T) {
	assert.Equal(t, "ожидает", OrderStatusWaiting.Label())
	assert.Equal(t, "🟡", OrderStatusWaiting.Emoji())
	assert.Equal(t, "✅", OrderStatusDone.Emoji())
}

func TestWeekDayLabel(t *testing.T) {
	assert.Equal(t, "Пн", TimeWork{WeekDay: 0}.WeekDayLabel())
	assert.Equal(t, "Вс", TimeWork{WeekDay: 6}.WeekDayLabel())
	assert.Equal(t, "", TimeWork{WeekDay: 7}.WeekDayLabel())
}

func TestNewsActive(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	from := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC)

	assert.True(t, News{}.Active(now))
	assert.True(t, News{DateFrom: &from, DateTo: &to}.Active(now))
	assert.False(t, News{DateFrom: &to}.Active(now))
	assert.False(t, News{DateTo: &from}.Active(now))
}

func TestCompanyHasLocation(t *testing.T) {
	lon, lat := 30.5, 50.4
	assert.False(t, Company{}.HasLocation())
	assert.False(t, Company{Longitude: &lon}.HasLocation())
	assert.True(t, Company{Longitude: &lon, Latitude: &lat}.HasLocation())
}
