package session

const (
	keyCourier = "courier"
	keyOrderID = "order_id"
)

var recordKeys = []string{keyCourier, keyOrderID}

type locationRecord struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type courierRecord struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Phone    *string         `json:"phone,omitempty"`
	Location *locationRecord `json:"location,omitempty"`
}
