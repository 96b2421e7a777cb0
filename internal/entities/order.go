package entities

import "time"

type Order struct {
	ID                 string
	SourceAddress      string
	DestinationAddress string
	DeliveredAt        *time.Time
}

func (o Order) Delivered() bool {
	return o.DeliveredAt != nil
}
