package session

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"courier-agent/internal/entities"
	"courier-agent/internal/pkg/idempotency"
)

type operation string

const (
	opRegister      operation = "register"
	opUnregister    operation = "unregister"
	opCreateOrder   operation = "create_order"
	opCompleteOrder operation = "complete_order"
)

type pendingKey struct {
	args string
	key  string
}

// withIdempotencyKey кладет в ctx ключ операции. Повтор с теми же аргументами
// получает ключ предыдущей попытки, пока ее исход не стал окончательным.
func (m *Manager) withIdempotencyKey(ctx context.Context, op operation, args ...string) context.Context {
	fingerprint := strings.Join(args, "\x00")

	m.mu.Lock()
	defer m.mu.Unlock()

	pending, ok := m.keys[op]
	if !ok || pending.args != fingerprint {
		pending = pendingKey{args: fingerprint, key: m.newKey()}
		m.keys[op] = pending
	}

	return idempotency.WithKey(ctx, pending.key)
}

func (m *Manager) settleIdempotencyKey(op operation, err error) {
	if err != nil && isResendable(err) {
		return
	}

	m.mu.Lock()
	delete(m.keys, op)
	m.mu.Unlock()
}

// isResendable: запрос мог дойти до сервера и выполниться, хотя ответа мы не получили.
func isResendable(err error) bool {
	var gwErr *entities.GatewayError
	if !errors.As(err, &gwErr) {
		return false
	}

	switch gwErr.Kind {
	case entities.GatewayErrorNetwork:
		return true
	case entities.GatewayErrorUnexpected:
		return gwErr.Code >= http.StatusInternalServerError ||
			(gwErr.Code >= http.StatusOK && gwErr.Code < http.StatusMultipleChoices)
	default:
		return false
	}
}
