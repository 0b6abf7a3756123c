package checkout

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const defaultRawKey = "order"

// NewPayload генерирует одноразовый payload попытки оплаты:
// {raw_key}_{random}_{timestamp}. Уникальность — на попытку, а не на заказ:
// повторная оплата того же заказа получает новый payload.
func NewPayload(rawKey string) string {
	rawKey = strings.TrimSpace(rawKey)
	if rawKey == "" {
		rawKey = defaultRawKey
	}
	return fmt.Sprintf("%s_%s_%d", rawKey, uuid.NewString(), time.Now().UnixNano())
}
