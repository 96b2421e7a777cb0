package entities

import "time"

type SessionState struct {
	HasCourier bool
	HasOrder   bool
	Tracking   bool
}

// SessionSnapshot - то, что лежит в хранилище сессии. nil = ключ отсутствует.
type SessionSnapshot struct {
	Courier *Courier
	OrderID *string
}

type TriggerType string

const (
	TriggerRegister      TriggerType = "register"
	TriggerUnregister    TriggerType = "unregister"
	TriggerStartTracking TriggerType = "start_tracking"
	TriggerStopTracking  TriggerType = "stop_tracking"
	TriggerCreateOrder   TriggerType = "create_order"
	TriggerCompleteOrder TriggerType = "complete_order"
)

func (t TriggerType) String() string {
	return string(t)
}

type StateChange struct {
	Trigger   TriggerType
	State     SessionState
	CourierID string
	OrderID   string
	At        time.Time
}
