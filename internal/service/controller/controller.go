package controller

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"courier-agent/internal/entities"
	"courier-agent/internal/service/session"
	"courier-agent/pkg/logger"
)

// Controller - единая точка входа для пользовательских действий и точек от датчика.
// Каждый триггер возвращает состояние сессии после перехода.
type Controller struct {
	baseCtx  context.Context
	manager  SessionManager
	reporter LocationReporter
	log      controllerLogger
	now      func() time.Time

	// сериализует включение трекинга относительно удаления курьера
	trackingMu sync.Mutex

	notifyMu    sync.Mutex
	observersMu sync.RWMutex
	observers   []Observer
}

// New: baseCtx живет столько же, сколько процесс, на нем работает репортер.
func New(baseCtx context.Context, manager SessionManager, reporter LocationReporter, log controllerLogger, now func() time.Time) *Controller {
	return &Controller{
		baseCtx:  baseCtx,
		manager:  manager,
		reporter: reporter,
		log:      log,
		now:      now,
	}
}

func (c *Controller) Subscribe(observer Observer) {
	c.observersMu.Lock()
	defer c.observersMu.Unlock()

	c.observers = append(c.observers, observer)
}

func (c *Controller) State() entities.SessionState {
	state := c.manager.State()
	state.Tracking = c.reporter.Active()
	return state
}

func (c *Controller) CourierID() (string, bool) {
	courier, ok := c.manager.Courier()
	return courier.ID, ok
}

func (c *Controller) OrderID() (string, bool) {
	return c.manager.OrderID()
}

func (c *Controller) OnRegisterRequested(ctx context.Context, name string, phone *string) (entities.SessionState, error) {
	return c.transition(ctx, entities.TriggerRegister, func() (effect, error) {
		courier, err := c.manager.Register(ctx, name, phone)
		if courier == nil {
			return effect{}, err
		}
		return effect{changed: true, courierID: courier.ID}, err
	})
}

// OnUnregisterRequested после успешного удаления курьера выключает трекинг.
func (c *Controller) OnUnregisterRequested(ctx context.Context) (entities.SessionState, error) {
	return c.transition(ctx, entities.TriggerUnregister, func() (effect, error) {
		courierID, _ := c.CourierID()
		orderID, _ := c.OrderID()

		err := c.manager.Unregister(ctx)
		eff := effect{
			changed:   err == nil || errors.Is(err, session.ErrPersistence),
			courierID: courierID,
			orderID:   orderID,
		}

		if !c.manager.State().HasCourier {
			c.trackingMu.Lock()
			if c.reporter.Active() {
				eff.changed = true
			}
			c.reporter.Stop()
			c.trackingMu.Unlock()
		}
		return eff, err
	})
}

func (c *Controller) OnStartTracking(ctx context.Context) (entities.SessionState, error) {
	return c.transition(ctx, entities.TriggerStartTracking, func() (effect, error) {
		c.trackingMu.Lock()
		defer c.trackingMu.Unlock()

		if !c.manager.State().HasCourier {
			return effect{}, fmt.Errorf("start tracking: %w: courier is not registered", session.ErrPrecondition)
		}

		wasActive := c.reporter.Active()
		c.reporter.Start(c.baseCtx)
		return c.currentEffect(!wasActive), nil
	})
}

func (c *Controller) OnStopTracking(ctx context.Context) (entities.SessionState, error) {
	return c.transition(ctx, entities.TriggerStopTracking, func() (effect, error) {
		c.trackingMu.Lock()
		defer c.trackingMu.Unlock()

		wasActive := c.reporter.Active()
		c.reporter.Stop()
		return c.currentEffect(wasActive), nil
	})
}

func (c *Controller) OnCreateOrderRequested(ctx context.Context, source, destination string) (entities.SessionState, error) {
	return c.transition(ctx, entities.TriggerCreateOrder, func() (effect, error) {
		order, err := c.manager.CreateOrder(ctx, source, destination)
		if order == nil {
			return effect{}, err
		}
		eff := c.currentEffect(true)
		eff.orderID = order.ID
		return eff, err
	})
}

func (c *Controller) OnCompleteOrderRequested(ctx context.Context) (entities.SessionState, error) {
	return c.transition(ctx, entities.TriggerCompleteOrder, func() (effect, error) {
		order, err := c.manager.CompleteOrder(ctx)
		if order == nil {
			return effect{}, err
		}
		eff := c.currentEffect(true)
		eff.orderID = order.ID
		return eff, err
	})
}

// OnLocationSample без включенного трекинга просто игнорирует точку.
func (c *Controller) OnLocationSample(_ context.Context, sample entities.LocationSample) (entities.SessionState, error) {
	if !c.reporter.Active() {
		c.log.Debug("tracking is off, ignoring location sample")
		return c.State(), nil
	}

	if sample.CapturedAt.IsZero() {
		sample.CapturedAt = c.now()
	}

	c.reporter.Submit(sample)
	return c.State(), nil
}

// effect - изменение, которое сделал сам триггер. По нему, а не по разнице
// снимков до и после, строится событие: параллельный триггер не попадет
// в чужое событие.
type effect struct {
	changed   bool
	courierID string
	orderID   string
}

func (c *Controller) currentEffect(changed bool) effect {
	courierID, _ := c.CourierID()
	orderID, _ := c.OrderID()

	return effect{changed: changed, courierID: courierID, orderID: orderID}
}

// transition выполняет действие и, если оно что-то поменяло, оповещает подписчиков.
// Ошибка действия не отменяет оповещение: при ErrPersistence переход уже случился.
func (c *Controller) transition(ctx context.Context, trigger entities.TriggerType, action func() (effect, error)) (entities.SessionState, error) {
	eff, err := action()
	if !eff.changed {
		return c.State(), err
	}

	// события уходят в том же порядке, в каком сняты их состояния
	c.notifyMu.Lock()
	defer c.notifyMu.Unlock()

	state := c.State()
	change := entities.StateChange{
		Trigger:   trigger,
		State:     state,
		CourierID: eff.courierID,
		OrderID:   eff.orderID,
		At:        c.now(),
	}

	c.log.Info("session state changed",
		logger.NewField("trigger", trigger.String()),
		logger.NewField("has_courier", state.HasCourier),
		logger.NewField("has_order", state.HasOrder),
		logger.NewField("tracking", state.Tracking),
	)

	c.notify(context.WithoutCancel(ctx), change)

	return state, err
}

func (c *Controller) notify(ctx context.Context, change entities.StateChange) {
	c.observersMu.RLock()
	observers := append([]Observer(nil), c.observers...)
	c.observersMu.RUnlock()

	for _, observer := range observers {
		if err := observer.OnStateChange(ctx, change); err != nil {
			c.log.Warn("state change observer failed",
				logger.NewField("trigger", change.Trigger.String()),
				logger.NewField("error", err),
			)
		}
	}
}
