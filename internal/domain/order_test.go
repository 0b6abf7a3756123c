package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validMeta() OrderMeta {
	return OrderMeta{
		UserID:      "12345",
		URL:         "https://www.wildberries.ru/catalog/149751046/detail.aspx",
		Name:        "Кроссовки",
		Price:       2500,
		ScheduledAt: time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC),
	}
}

func TestOrderMeta_Validate(t *testing.T) {
	meta := validMeta()
	assert.NoError(t, meta.Validate())
}

func TestOrderMeta_ValidateListsAllMissingFields(t *testing.T) {
	meta := OrderMeta{}
	err := meta.Validate()
	require.Error(t, err)

	// ошибка перечисляет все отсутствующие поля сразу
	assert.Contains(t, err.Error(), "user_id")
	assert.Contains(t, err.Error(), "url")
	assert.Contains(t, err.Error(), "name")
	assert.Contains(t, err.Error(), "scheduled_at")
}

func TestOrderMeta_ValidateMissingScheduledAt(t *testing.T) {
	meta := validMeta()
	meta.ScheduledAt = time.Time{}

	err := meta.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scheduled_at")
	assert.NotContains(t, err.Error(), "user_id")
}

func TestOrderMetaFlatMapRoundTrip(t *testing.T) {
	meta := validMeta()
	meta.Description = "Лёгкие кроссовки"
	meta.Category = "Обувь"

	restored := OrderMetaFromFlatMap(meta.ToFlatMap())

	assert.Equal(t, meta.UserID, restored.UserID)
	assert.Equal(t, meta.URL, restored.URL)
	assert.Equal(t, meta.Name, restored.Name)
	assert.Equal(t, meta.Description, restored.Description)
	assert.Equal(t, meta.Category, restored.Category)
	assert.Equal(t, meta.Price, restored.Price)
	assert.True(t, meta.ScheduledAt.Equal(restored.ScheduledAt))
}

func TestOrderMetaFromFlatMap_TgIDFallback(t *testing.T) {
	restored := OrderMetaFromFlatMap(map[string]string{
		"tg_id": "98765",
		"url":   "https://example.com",
	})
	assert.Equal(t, "98765", restored.UserID)
}

func TestOrderMetaFromFlatMap_BadValuesAreNotFatal(t *testing.T) {
	restored := OrderMetaFromFlatMap(map[string]string{
		"user_id":        "12345",
		"price":          "not-a-number",
		"scheduled_date": "yesterday",
	})

	assert.Equal(t, "12345", restored.UserID)
	assert.Zero(t, restored.Price)
	assert.True(t, restored.ScheduledAt.IsZero())
}
