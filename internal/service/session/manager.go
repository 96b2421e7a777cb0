package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"courier-agent/internal/entities"
	"courier-agent/internal/pkg/idempotency"
	"courier-agent/pkg/logger"
	"github.com/AlekSi/pointer"
)

type axis int

const (
	axisCourier axis = iota
	axisOrder
)

// Manager владеет сессией курьера: две оси состояний (курьер и заказ),
// которые переживают рестарт через Store.
type Manager struct {
	gateway Gateway
	store   Store
	log     managerLogger
	now     func() time.Time
	newKey  func() string

	mu          sync.Mutex
	courier     *entities.Courier
	order       *entities.Order
	courierBusy bool
	orderBusy   bool
	keys        map[operation]pendingKey
}

// New восстанавливает сессию из хранилища без обращения к сети.
func New(ctx context.Context, gateway Gateway, store Store, log managerLogger, now func() time.Time) (*Manager, error) {
	m := &Manager{
		gateway: gateway,
		store:   store,
		log:     log,
		now:     now,
		newKey:  idempotency.NewKey,
		keys:    make(map[operation]pendingKey),
	}

	snapshot, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	if snapshot.Courier != nil && !snapshot.Courier.Registered() {
		log.Warn("discarding persisted courier without id")
		if err := store.ClearCourier(ctx); err != nil {
			log.Error("clear courier without id", logger.NewField("error", err))
		}
		snapshot.Courier = nil
	}

	if snapshot.OrderID != nil && snapshot.Courier == nil {
		log.Warn("discarding persisted order without courier", logger.NewField("order_id", *snapshot.OrderID))
		if err := store.ClearOrderID(ctx); err != nil {
			log.Error("clear orphan order id", logger.NewField("error", err))
		}
		snapshot.OrderID = nil
	}

	m.courier = snapshot.Courier
	if snapshot.OrderID != nil {
		m.order = &entities.Order{ID: *snapshot.OrderID}
	}

	log.Info("session restored",
		logger.NewField("registered", m.courier != nil),
		logger.NewField("has_order", m.order != nil),
	)

	return m, nil
}

func (m *Manager) Register(ctx context.Context, name string, phone *string) (*entities.Courier, error) {
	name = strings.TrimSpace(name)
	if !isValidName(name) {
		return nil, fmt.Errorf("%w: courier name is required", ErrValidation)
	}
	phone = normalizePhone(phone)

	release, err := m.begin(axisCourier, func() error {
		if m.courier != nil {
			return fmt.Errorf("%w: courier is already registered", ErrPrecondition)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	defer release()

	callCtx := m.withIdempotencyKey(ctx, opRegister, name, pointer.GetString(phone))
	courier, err := m.gateway.RegisterCourier(callCtx, name, phone)
	m.settleIdempotencyKey(opRegister, err)
	if err != nil {
		return nil, fmt.Errorf("register courier: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// сервер курьера уже создал, поэтому переходим в Registered даже при ошибке записи
	m.courier = courier
	if err := m.store.SaveCourier(ctx, *courier); err != nil {
		return cloneCourier(courier), fmt.Errorf("%w: save courier: %w", ErrPersistence, err)
	}

	return cloneCourier(courier), nil
}

func (m *Manager) Unregister(ctx context.Context) error {
	var courierID string

	release, err := m.begin(axisCourier, func() error {
		if m.courier == nil {
			return fmt.Errorf("%w: courier is not registered", ErrPrecondition)
		}
		courierID = m.courier.ID
		return nil
	})
	if err != nil {
		return err
	}
	defer release()

	callCtx := m.withIdempotencyKey(ctx, opUnregister, courierID)
	err = m.gateway.UnregisterCourier(callCtx, courierID)
	m.settleIdempotencyKey(opUnregister, err)
	if err != nil {
		if !isServerGone(err) {
			return fmt.Errorf("unregister courier: %w", err)
		}
		// 500 на удаление сервер отдает, когда курьера у него уже нет
		m.log.Warn("courier is already gone on the server, unregistering locally",
			logger.NewField("courier_id", courierID),
			logger.NewField("error", err),
		)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.courier = nil
	m.order = nil

	return m.persist(
		m.store.ClearOrderID(ctx),
		m.store.ClearCourier(ctx),
	)
}

func (m *Manager) CreateOrder(ctx context.Context, source, destination string) (*entities.Order, error) {
	source, destination = strings.TrimSpace(source), strings.TrimSpace(destination)
	if !isValidAddress(source) || !isValidAddress(destination) {
		return nil, fmt.Errorf("%w: source and destination addresses are required", ErrValidation)
	}

	var courierID string

	release, err := m.begin(axisOrder, func() error {
		if m.courier == nil {
			return fmt.Errorf("%w: courier is not registered", ErrPrecondition)
		}
		if m.order != nil {
			return fmt.Errorf("%w: order %s is already active", ErrPrecondition, m.order.ID)
		}
		courierID = m.courier.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	defer release()

	callCtx := m.withIdempotencyKey(ctx, opCreateOrder, courierID, source, destination)
	order, err := m.gateway.CreateOrder(callCtx, courierID, source, destination)
	m.settleIdempotencyKey(opCreateOrder, err)
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.order = order
	if err := m.store.SaveOrderID(ctx, order.ID); err != nil {
		return cloneOrder(order), fmt.Errorf("%w: save order id: %w", ErrPersistence, err)
	}

	return cloneOrder(order), nil
}

func (m *Manager) CompleteOrder(ctx context.Context) (*entities.Order, error) {
	var (
		courierID string
		order     entities.Order
	)

	release, err := m.begin(axisOrder, func() error {
		if m.courier == nil || m.order == nil {
			return fmt.Errorf("%w: no active order", ErrPrecondition)
		}
		courierID = m.courier.ID
		order = *m.order
		return nil
	})
	if err != nil {
		return nil, err
	}
	defer release()

	deliveredAt := m.now()
	callCtx := m.withIdempotencyKey(ctx, opCompleteOrder, courierID, order.ID)
	err = m.gateway.CompleteOrder(callCtx, courierID, order.ID, deliveredAt)
	m.settleIdempotencyKey(opCompleteOrder, err)
	if err != nil {
		return nil, fmt.Errorf("complete order: %w", err)
	}
	order.DeliveredAt = &deliveredAt

	m.mu.Lock()
	defer m.mu.Unlock()

	m.order = nil
	if err := m.store.ClearOrderID(ctx); err != nil {
		return &order, fmt.Errorf("%w: clear order id: %w", ErrPersistence, err)
	}

	return &order, nil
}

// RememberLocation запоминает последнюю отправленную точку курьера.
// Точка, отправленная за другого (уже удаленного) курьера, игнорируется.
func (m *Manager) RememberLocation(ctx context.Context, courierID string, location entities.Location) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.courier == nil || m.courier.ID != courierID {
		return nil
	}

	courier := *m.courier
	courier.LastKnownLocation = &location
	m.courier = &courier

	if err := m.store.SaveCourier(ctx, courier); err != nil {
		return fmt.Errorf("%w: save courier location: %w", ErrPersistence, err)
	}
	return nil
}

func (m *Manager) State() entities.SessionState {
	m.mu.Lock()
	defer m.mu.Unlock()

	return entities.SessionState{
		HasCourier: m.courier != nil,
		HasOrder:   m.order != nil,
	}
}

func (m *Manager) Courier() (entities.Courier, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.courier == nil {
		return entities.Courier{}, false
	}
	return *m.courier, true
}

func (m *Manager) OrderID() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.order == nil {
		return "", false
	}
	return m.order.ID, true
}

// begin занимает ось под lifecycle-вызов. Заказ требует id курьера, поэтому
// занятая любая ось блокирует обе. check вызывается под мьютексом.
func (m *Manager) begin(a axis, check func() error) (func(), error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.courierBusy || m.orderBusy {
		return nil, ErrConcurrentOperation
	}

	if err := check(); err != nil {
		return nil, err
	}

	busy := &m.courierBusy
	if a == axisOrder {
		busy = &m.orderBusy
	}
	*busy = true

	return func() {
		m.mu.Lock()
		*busy = false
		m.mu.Unlock()
	}, nil
}

func (m *Manager) persist(errs ...error) error {
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return nil
}

func isServerGone(err error) bool {
	var gwErr *entities.GatewayError
	return errors.As(err, &gwErr) && gwErr.Kind == entities.GatewayErrorServerGone
}

func cloneCourier(c *entities.Courier) *entities.Courier {
	clone := *c
	return &clone
}

func cloneOrder(o *entities.Order) *entities.Order {
	clone := *o
	return &clone
}
