package httpclient

import (
	"crypto/tls"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"courier-agent/internal/pkg/config"
)

const (
	dialTimeout         = 5 * time.Second
	keepAlive           = 30 * time.Second
	tlsHandshakeTimeout = 5 * time.Second
	idleConnTimeout     = 90 * time.Second
	maxIdleConnsPerHost = 4
)

// New собирает клиент для tracking API. InsecureSkipVerify действует только
// на хост из BaseURL, нужен для стендов с самоподписанным сертификатом.
func New(cfg *config.TrackingAPI) *http.Client {
	transport := newTransport()

	var rt http.RoundTripper = transport
	if cfg.InsecureSkipVerify {
		rt = &hostTrustTransport{
			host:     trustedHost(cfg.BaseURL),
			verified: transport,
			trusted:  insecureTransport(transport),
		}
	}

	return &http.Client{
		Transport: rt,
		Timeout:   cfg.Timeout,
	}
}

func newTransport() *http.Transport {
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   dialTimeout,
			KeepAlive: keepAlive,
		}).DialContext,
		TLSHandshakeTimeout: tlsHandshakeTimeout,
		IdleConnTimeout:     idleConnTimeout,
		MaxIdleConnsPerHost: maxIdleConnsPerHost,
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
	}
}

func insecureTransport(base *http.Transport) *http.Transport {
	transport := base.Clone()
	transport.TLSClientConfig.InsecureSkipVerify = true //nolint:gosec // только для хоста из конфига

	return transport
}

func trustedHost(baseURL string) string {
	u, err := url.Parse(baseURL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}

// hostTrustTransport пропускает проверку сертификата только для одного хоста,
// остальные запросы (включая редиректы) идут через проверяющий транспорт.
type hostTrustTransport struct {
	host     string
	verified *http.Transport
	trusted  *http.Transport
}

func (t *hostTrustTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.host != "" && strings.EqualFold(req.URL.Hostname(), t.host) {
		return t.trusted.RoundTrip(req)
	}
	return t.verified.RoundTrip(req)
}

func (t *hostTrustTransport) CloseIdleConnections() {
	t.verified.CloseIdleConnections()
	t.trusted.CloseIdleConnections()
}
