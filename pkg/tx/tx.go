package tx

import (
	"context"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/avito-tech/go-transaction-manager/trm/manager"
	"github.com/avito-tech/go-transaction-manager/trm/settings"
	"github.com/jackc/pgx/v5"
)

// снимок для нескольких чтений подряд, записи запрещены
var snapshotRead = pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly}

// Manager открывает транзакции pgx и кладет их в контекст, откуда их берет querier.
type Manager struct {
	internal *manager.Manager
}

func New(db pgxv5.Transactional) *Manager {
	return &Manager{
		internal: manager.Must(pgxv5.NewDefaultFactory(db)),
	}
}

// ReadSnapshot: все запросы fn видят базу на один момент времени.
func (m *Manager) ReadSnapshot(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, snapshotRead, fn)
}

func (m *Manager) run(ctx context.Context, opts pgx.TxOptions, fn func(ctx context.Context) error) error {
	txSettings := pgxv5.MustSettings(
		settings.Must(),
		pgxv5.WithTxOptions(opts),
	)
	return m.internal.DoWithSettings(ctx, txSettings, fn)
}
