package tracking

import (
	"time"

	"courier-agent/internal/entities"
	"courier-agent/internal/generated/trackingapi"
	"github.com/AlekSi/pointer"
)

func toCourierCreate(name string, phone *string) trackingapi.RegisterCourierJSONRequestBody {
	return trackingapi.CourierCreate{
		Name:  name,
		Phone: phone,
	}
}

func toDomainCourier(resp trackingapi.Courier, name string, phone *string) *entities.Courier {
	// сервер может не вернуть name/phone, тогда берем то, что отправляли
	courier := &entities.Courier{
		ID:    resp.ID,
		Name:  name,
		Phone: phone,
	}
	if got := pointer.GetString(resp.Name); got != "" {
		courier.Name = got
	}
	if resp.Phone != nil {
		courier.Phone = resp.Phone
	}
	return courier
}

func toDomainOrder(resp trackingapi.Order, source, destination string) *entities.Order {
	return &entities.Order{
		ID:                 resp.ID,
		SourceAddress:      source,
		DestinationAddress: destination,
	}
}

func toLocationUpdate(lat, lon float64) trackingapi.ReportLocationJSONRequestBody {
	return trackingapi.LocationUpdate{
		Location: trackingapi.Location{
			Point: trackingapi.Point{Lat: lat, Lon: lon},
		},
	}
}

func toOrderCreate(source, destination string) trackingapi.CreateOrderJSONRequestBody {
	return trackingapi.OrderCreate{
		Source:      trackingapi.Address{Address: source},
		Destination: trackingapi.Address{Address: destination},
	}
}

func toOrderComplete(deliveredAt time.Time) trackingapi.CompleteOrderJSONRequestBody {
	return trackingapi.OrderComplete{DeliveredAt: deliveredAt.Unix()}
}
