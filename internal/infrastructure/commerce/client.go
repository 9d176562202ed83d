package commerce

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/DanielPopoola/storefront-checkout/internal/config"
	"github.com/DanielPopoola/storefront-checkout/internal/domain"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Client is the commerce API surface used by the gateway. Credentials are
// passed per call because the environment is resolved per request.
type Client interface {
	CreateOrder(ctx context.Context, creds domain.Credentials, req CreateOrderRequest) (*CreateOrderResponse, error)
	CreatePayment(ctx context.Context, creds domain.Credentials, req CreatePaymentRequest) (*CreatePaymentResponse, error)
	OrderReader
}

type OrderReader interface {
	RetrieveOrder(ctx context.Context, creds domain.Credentials, orderID string) (*RetrieveOrderResponse, error)
}

type HTTPClient struct {
	rest *resty.Client
}

func NewClient(cfg config.SquareConfig) *HTTPClient {
	return NewClientWithTransport(cfg, http.DefaultTransport)
}

// NewClientWithTransport wraps base with tracing and applies the API
// version and timeout shared by every call.
func NewClientWithTransport(cfg config.SquareConfig, base http.RoundTripper) *HTTPClient {
	rest := resty.New().
		SetTransport(otelhttp.NewTransport(base)).
		SetTimeout(cfg.RequestTimeout).
		SetHeader("Square-Version", cfg.APIVersion).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json")

	return &HTTPClient{rest: rest}
}

func (c *HTTPClient) CreateOrder(ctx context.Context, creds domain.Credentials, req CreateOrderRequest) (*CreateOrderResponse, error) {
	return sendRequest[CreateOrderResponse](ctx, c, creds, http.MethodPost, "/v2/orders", &req)
}

func (c *HTTPClient) CreatePayment(ctx context.Context, creds domain.Credentials, req CreatePaymentRequest) (*CreatePaymentResponse, error) {
	return sendRequest[CreatePaymentResponse](ctx, c, creds, http.MethodPost, "/v2/payments", &req)
}

func (c *HTTPClient) RetrieveOrder(ctx context.Context, creds domain.Credentials, orderID string) (*RetrieveOrderResponse, error) {
	path := "/v2/orders/" + url.PathEscape(orderID)
	return sendRequest[RetrieveOrderResponse](ctx, c, creds, http.MethodGet, path, nil)
}

func sendRequest[Resp any](ctx context.Context, c *HTTPClient, creds domain.Credentials, method, path string, body any) (*Resp, error) {
	req := c.rest.R().
		SetContext(ctx).
		SetAuthToken(creds.AccessToken)
	if body != nil {
		req.SetBody(body)
	}

	resp, err := req.Execute(method, creds.BaseURL+path)
	if err != nil {
		return nil, fmt.Errorf("error making request: %w", err)
	}

	if resp.StatusCode() >= 300 {
		apiErr := &APIError{
			StatusCode: resp.StatusCode(),
			Body:       resp.String(),
		}
		var errResp errorResponse
		if err := json.Unmarshal(resp.Body(), &errResp); err == nil {
			apiErr.Errors = errResp.Errors
		}
		return nil, apiErr
	}

	var out Resp
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, fmt.Errorf("error decoding json response: %w", err)
	}

	return &out, nil
}
