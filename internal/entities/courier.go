package entities

type Location struct {
	Lat float64
	Lon float64
}

// Courier - снапшот курьера на устройстве. ID пустой, пока сервер не подтвердил регистрацию.
type Courier struct {
	ID                string
	Name              string
	Phone             *string
	LastKnownLocation *Location
}

func (c Courier) Registered() bool {
	return c.ID != ""
}
