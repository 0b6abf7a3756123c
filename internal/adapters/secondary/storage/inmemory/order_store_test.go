package inmemory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hikinamuri/wb-sellers-backend/internal/domain"
)

func TestOrderStore_PutGetRemove(t *testing.T) {
	store := NewOrderStore()

	meta := &domain.OrderMeta{
		UserID:      "12345",
		URL:         "https://www.wildberries.ru/catalog/1234567/detail.aspx",
		Name:        "Кроссовки",
		ScheduledAt: time.Now().Add(time.Hour),
	}
	store.Put("p1", meta)

	got, ok := store.Get("p1")
	require.True(t, ok)
	assert.Equal(t, "Кроссовки", got.Name)

	store.Remove("p1")
	_, ok = store.Get("p1")
	assert.False(t, ok)

	store.Remove("p1") // повторное удаление - no-op
}

func TestOrderStore_GetReturnsCopy(t *testing.T) {
	store := NewOrderStore()
	store.Put("p1", &domain.OrderMeta{Name: "original"})

	got, ok := store.Get("p1")
	require.True(t, ok)
	got.Name = "mutated"

	again, ok := store.Get("p1")
	require.True(t, ok)
	assert.Equal(t, "original", again.Name, "мутация копии не должна трогать хранилище")
}

func TestOrderStore_PutOverwrites(t *testing.T) {
	store := NewOrderStore()
	store.Put("p1", &domain.OrderMeta{Name: "first"})
	store.Put("p1", &domain.OrderMeta{Name: "second"})

	got, ok := store.Get("p1")
	require.True(t, ok)
	assert.Equal(t, "second", got.Name)
}

func TestOrderStore_Keys(t *testing.T) {
	store := NewOrderStore()
	assert.Empty(t, store.Keys())

	store.Put("p1", &domain.OrderMeta{})
	store.Put("p2", &domain.OrderMeta{})

	assert.ElementsMatch(t, []string{"p1", "p2"}, store.Keys())
}
