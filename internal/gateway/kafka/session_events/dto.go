package session_events

type stateChangedEvent struct {
	DeviceID   string `json:"device_id"`
	Trigger    string `json:"trigger"`
	HasCourier bool   `json:"has_courier"`
	HasOrder   bool   `json:"has_order"`
	Tracking   bool   `json:"tracking"`
	CourierID  string `json:"courier_id,omitempty"`
	OrderID    string `json:"order_id,omitempty"`
	At         int64  `json:"at"`
}
