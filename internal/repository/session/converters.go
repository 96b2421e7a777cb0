package session

import (
	"encoding/json"
	"fmt"

	"courier-agent/internal/entities"
)

func fromDomainCourier(c entities.Courier) courierRecord {
	record := courierRecord{
		ID:    c.ID,
		Name:  c.Name,
		Phone: c.Phone,
	}
	if c.LastKnownLocation != nil {
		record.Location = &locationRecord{
			Lat: c.LastKnownLocation.Lat,
			Lon: c.LastKnownLocation.Lon,
		}
	}
	return record
}

func toDomainCourier(r courierRecord) *entities.Courier {
	courier := &entities.Courier{
		ID:    r.ID,
		Name:  r.Name,
		Phone: r.Phone,
	}
	if r.Location != nil {
		courier.LastKnownLocation = &entities.Location{
			Lat: r.Location.Lat,
			Lon: r.Location.Lon,
		}
	}
	return courier
}

func encodeCourier(c entities.Courier) (string, error) {
	data, err := json.Marshal(fromDomainCourier(c))
	if err != nil {
		return "", fmt.Errorf("encode courier: %w", err)
	}
	return string(data), nil
}

// toSnapshot собирает снапшот из пар ключ-значение. Отсутствующий ключ дает nil.
func toSnapshot(records map[string]string) (entities.SessionSnapshot, error) {
	var snapshot entities.SessionSnapshot

	if raw, ok := records[keyCourier]; ok {
		var record courierRecord
		if err := json.Unmarshal([]byte(raw), &record); err != nil {
			return entities.SessionSnapshot{}, fmt.Errorf("%w: courier: %v", ErrMalformedRecord, err)
		}
		snapshot.Courier = toDomainCourier(record)
	}

	if orderID, ok := records[keyOrderID]; ok && orderID != "" {
		snapshot.OrderID = &orderID
	}

	return snapshot, nil
}
