package tracking

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"courier-agent/internal/entities"
	"courier-agent/internal/generated/trackingapi"
	"courier-agent/internal/pkg/idempotency"
)

const (
	serviceName = "tracking-api"

	headerIdempotencyKey = "Idempotency-Key"
)

type Gateway struct {
	baseURL           string
	client            httpClient
	newIdempotencyKey func() string
}

func New(baseURL string, client httpClient) *Gateway {
	return &Gateway{
		baseURL:           strings.TrimRight(baseURL, "/"),
		client:            client,
		newIdempotencyKey: idempotency.NewKey,
	}
}

type call struct {
	method string
	path   string
	body   any
	out    any

	expectedStatus   int
	serverGoneStatus int
	idempotent       bool
}

func (g *Gateway) RegisterCourier(ctx context.Context, name string, phone *string) (*entities.Courier, error) {
	var resp trackingapi.Courier

	err := g.executeWithMetrics(ctx, "RegisterCourier", call{
		method:         http.MethodPost,
		path:           "/couriers",
		body:           toCourierCreate(name, phone),
		out:            &resp,
		expectedStatus: http.StatusCreated,
		idempotent:     true,
	})
	if err != nil {
		return nil, err
	}

	if resp.ID == "" {
		return nil, unexpectedError(http.StatusCreated, "response has no courier id", nil)
	}

	return toDomainCourier(resp, name, phone), nil
}

// UnregisterCourier: 500 на DELETE сервер отдает для уже удаленного курьера,
// поэтому это отдельный ServerGone, а не Unexpected.
func (g *Gateway) UnregisterCourier(ctx context.Context, courierID string) error {
	return g.executeWithMetrics(ctx, "UnregisterCourier", call{
		method:           http.MethodDelete,
		path:             "/couriers/" + url.PathEscape(courierID),
		expectedStatus:   http.StatusNoContent,
		serverGoneStatus: http.StatusInternalServerError,
		idempotent:       true,
	})
}

func (g *Gateway) ReportLocation(ctx context.Context, courierID string, lat, lon float64) error {
	return g.executeWithMetrics(ctx, "ReportLocation", call{
		method:         http.MethodPut,
		path:           "/couriers/" + url.PathEscape(courierID),
		body:           toLocationUpdate(lat, lon),
		expectedStatus: http.StatusOK,
	})
}

func (g *Gateway) CreateOrder(ctx context.Context, courierID, source, destination string) (*entities.Order, error) {
	var resp trackingapi.Order

	err := g.executeWithMetrics(ctx, "CreateOrder", call{
		method:         http.MethodPost,
		path:           "/couriers/" + url.PathEscape(courierID) + "/orders",
		body:           toOrderCreate(source, destination),
		out:            &resp,
		expectedStatus: http.StatusCreated,
		idempotent:     true,
	})
	if err != nil {
		return nil, err
	}

	if resp.ID == "" {
		return nil, unexpectedError(http.StatusCreated, "response has no order id", nil)
	}

	return toDomainOrder(resp, source, destination), nil
}

func (g *Gateway) CompleteOrder(ctx context.Context, courierID, orderID string, deliveredAt time.Time) error {
	return g.executeWithMetrics(ctx, "CompleteOrder", call{
		method:         http.MethodPut,
		path:           "/couriers/" + url.PathEscape(courierID) + "/orders/" + url.PathEscape(orderID),
		body:           toOrderComplete(deliveredAt),
		expectedStatus: http.StatusOK,
		idempotent:     true,
	})
}

func (g *Gateway) executeWithMetrics(ctx context.Context, method string, c call) error {
	start := time.Now()

	status, err := g.do(ctx, c)

	// Метрики Prometheus
	GatewayRequestDuration.WithLabelValues(serviceName, method, statusLabel(status, err)).Observe(time.Since(start).Seconds())

	return err
}

func (g *Gateway) do(ctx context.Context, c call) (int, error) {
	var body io.Reader
	if c.body != nil {
		payload, err := json.Marshal(c.body)
		if err != nil {
			return 0, unexpectedError(0, "encode request body", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, c.method, g.baseURL+c.path, body)
	if err != nil {
		return 0, unexpectedError(0, "build request", err)
	}

	req.Header.Set("Accept", "application/json")
	if c.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.idempotent {
		// повтор операции приходит с ключом первой попытки
		key, ok := idempotency.KeyFromContext(ctx)
		if !ok {
			key = g.newIdempotencyKey()
		}
		req.Header.Set(headerIdempotencyKey, key)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return 0, networkError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != c.expectedStatus {
		if c.serverGoneStatus != 0 && resp.StatusCode == c.serverGoneStatus {
			return resp.StatusCode, serverGoneError(resp.StatusCode)
		}
		return resp.StatusCode, unexpectedError(resp.StatusCode, statusMessage(resp), nil)
	}

	if c.out != nil {
		if err := json.NewDecoder(resp.Body).Decode(c.out); err != nil {
			return resp.StatusCode, unexpectedError(resp.StatusCode, "malformed response body", err)
		}
	}

	return resp.StatusCode, nil
}

func statusLabel(status int, err error) string {
	if status != 0 {
		return strconv.Itoa(status)
	}

	var gwErr *entities.GatewayError
	if errors.As(err, &gwErr) {
		return gwErr.Kind.String()
	}
	return "OK"
}
