// Package idempotency переносит Idempotency-Key от места, где решается,
// что запрос является повтором, до транспорта, который его отправляет.
package idempotency

import (
	"context"

	"github.com/google/uuid"
)

type keyCtx struct{}

// NewKey выпускает новый ключ для еще не отправленной операции.
func NewKey() string {
	return uuid.NewString()
}

func WithKey(ctx context.Context, key string) context.Context {
	if key == "" {
		return ctx
	}
	return context.WithValue(ctx, keyCtx{}, key)
}

func KeyFromContext(ctx context.Context) (string, bool) {
	key, ok := ctx.Value(keyCtx{}).(string)
	return key, ok && key != ""
}
