package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSettingsDefaults - отсутствующие в JSON настройки получают
// значения по умолчанию при первом чтении.
func TestSettingsDefaults(t *testing.T) {
	var settings UserSettings
	require.NoError(t, settings.Scan([]byte(`{}`)))

	assert.False(t, settings.Filters.Open)
	assert.False(t, settings.Filters.Nearby)
	assert.False(t, settings.Filters.ShowDone)
	assert.True(t, settings.Filters.GetShowRejected())
	assert.Equal(t, SortByName, settings.Sort.GetBy())
	assert.True(t, settings.Sort.GetDesc())
	assert.Nil(t, settings.Location)
}

// TestSettingsMaterializedDefaultsPersist - материализованное
// умолчание попадает в сериализованные настройки.
func TestSettingsMaterializedDefaultsPersist(t *testing.T) {
	var settings UserSettings
	settings.Filters.GetShowRejected()
	settings.Sort.GetDesc()

	value, err := settings.Value()
	require.NoError(t, err)

	var restored UserSettings
	require.NoError(t, restored.Scan(value))
	require.NotNil(t, restored.Filters.ShowRejected)
	assert.True(t, *restored.Filters.ShowRejected)
	require.NotNil(t, restored.Sort.Desc)
	assert.True(t, *restored.Sort.Desc)
}

// TestSettingsExplicitFalse - явно сохранённое false не перетирается
// умолчанием true.
func TestSettingsExplicitFalse(t *testing.T) {
	var settings UserSettings
	raw := `{"filters":{"show_rejected":false},"orders":{"sorting":false}}`
	require.NoError(t, settings.Scan([]byte(raw)))

	assert.False(t, settings.Filters.GetShowRejected())
	assert.False(t, settings.Sort.GetDesc())
}

func TestHiddenStatuses(t *testing.T) {
	var settings UserSettings
	assert.Equal(t, []OrderStatus{OrderStatusDone}, settings.HiddenStatuses())

	settings.Filters.ShowDone = true
	assert.Empty(t, settings.HiddenStatuses())

	settings.Filters.SetShowRejected(false)
	assert.Equal(t, []OrderStatus{OrderStatusRejected}, settings.HiddenStatuses())
}

// TestLocationFreshness - геопозиция годна десять минут, редактирование
// других настроек времени фиксации не касается.
func TestLocationFreshness(t *testing.T) {
	now := time.Now()

	var nilFix *LocationFix
	assert.False(t, nilFix.Fresh(now))

	fix := &LocationFix{Longitude: 30.5, Latitude: 50.4, LastUpdate: now.Add(-9 * time.Minute)}
	assert.True(t, fix.Fresh(now))

	fix.LastUpdate = now.Add(-11 * time.Minute)
	assert.False(t, fix.Fresh(now))
}

func TestOrderSettingsRoundTrip(t *testing.T) {
	settings := OrderSettings{UserMessages: []int{101}, PerformerMessages: []int{202}}
	value, err := settings.Value()
	require.NoError(t, err)

	var restored OrderSettings
	require.NoError(t, restored.Scan(value))
	assert.Equal(t, settings, restored)
}

func TestScanNilAndString(t *testing.T) {
	var settings UserSettings
	require.NoError(t, settings.Scan(nil))

	require.NoError(t, settings.Scan(`{"filters":{"open":true}}`))
	assert.True(t, settings.Filters.Open)

	assert.Error(t, settings.Scan(42))
}

func TestSettingsJSONShape(t *testing.T) {
	var settings UserSettings
	settings.Filters.Open = true
	data, err := json.Marshal(settings)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"filters"`)
	assert.Contains(t, string(data), `"orders"`)
}
