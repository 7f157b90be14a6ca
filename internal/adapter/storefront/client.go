// Package storefront is an HTTP client for the Rype REST API.
package storefront

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"sync"
	"time"

	domainErrors "github.com/polkiloo/rype/internal/domain/errors"
	"github.com/polkiloo/rype/internal/domain/model"
	"github.com/polkiloo/rype/internal/server/http/dto"
)

const defaultTimeout = 10 * time.Second

// Client talks to a running storefront API on behalf of one customer.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger

	mu    sync.RWMutex
	token string
}

type envelope struct {
	Success bool                `json:"success"`
	Error   string              `json:"error"`
	Token   string              `json:"token"`
	Order   *dto.OrderResponse  `json:"order"`
	Orders  []dto.OrderResponse `json:"orders"`
}

// NewClient creates a client for the API rooted at baseURL.
func NewClient(baseURL string, logger *slog.Logger) (*Client, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse storefront url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("storefront url must be absolute")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:    parsed,
		logger:     logger.With("component", "storefront_client"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}, nil
}

// SetToken uses token for subsequent authenticated calls.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// Login authenticates and keeps the issued token.
func (c *Client) Login(ctx context.Context, email, password string) error {
	body, err := json.Marshal(dto.LoginRequest{Email: email, Password: password})
	if err != nil {
		return err
	}
	var env envelope
	if err := c.do(ctx, http.MethodPost, "/api/login", body, &env); err != nil {
		return err
	}
	if env.Token == "" {
		return fmt.Errorf("login response carried no token")
	}
	c.SetToken(env.Token)
	return nil
}

// MyOrders returns the caller's orders newest first.
func (c *Client) MyOrders(ctx context.Context) ([]model.Order, error) {
	var env envelope
	if err := c.do(ctx, http.MethodGet, "/api/orders/my-orders", nil, &env); err != nil {
		return nil, err
	}
	orders := make([]model.Order, len(env.Orders))
	for i, o := range env.Orders {
		orders[i] = toModel(o)
	}
	return orders, nil
}

// Order fetches one of the caller's orders.
func (c *Client) Order(ctx context.Context, id string) (*model.Order, error) {
	var env envelope
	if err := c.do(ctx, http.MethodGet, path.Join("/api/orders", url.PathEscape(id)), nil, &env); err != nil {
		return nil, err
	}
	if env.Order == nil {
		return nil, domainErrors.ErrNotFound
	}
	order := toModel(*env.Order)
	return &order, nil
}

func (c *Client) do(ctx context.Context, method, route string, body []byte, out *envelope) error {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, route)

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.mu.RLock()
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	c.mu.RUnlock()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil && resp.StatusCode == http.StatusOK {
		return fmt.Errorf("decode %s response: %w", route, err)
	}

	switch {
	case resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", domainErrors.ErrUnauthorized, out.Error)
	case resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: %s", domainErrors.ErrForbidden, out.Error)
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", domainErrors.ErrNotFound, out.Error)
	default:
		c.logger.Error("storefront request failed", slog.String("route", route), slog.Int("status", resp.StatusCode), slog.String("body", string(data)))
		return fmt.Errorf("storefront error: %s", resp.Status)
	}
}

func toModel(o dto.OrderResponse) model.Order {
	items := make([]model.OrderItem, len(o.Items))
	for i, item := range o.Items {
		items[i] = model.OrderItem(item)
	}
	return model.Order{
		ID:                o.ID,
		UserID:            o.UserID,
		Items:             items,
		Total:             o.Total,
		Status:            model.OrderStatus(o.Status),
		Address:           o.Address,
		Customer:          model.CustomerInfo(o.Customer),
		PaymentMethod:     model.PaymentMethod(o.PaymentMethod),
		EstimatedDelivery: o.EstimatedDelivery,
		DeliveredAt:       o.DeliveredAt,
		CreatedAt:         o.CreatedAt,
		UpdatedAt:         o.UpdatedAt,
	}
}
