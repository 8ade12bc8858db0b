// Package loadtest drives the running HTTP service through full order
// lifecycles from concurrent simulated tables.
package loadtest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sukab-restaurant/tableside/internal/config"
	"github.com/sukab-restaurant/tableside/internal/validation"
)

// Runner fires create/list/detail/delete round-trips against a base URL.
type Runner struct {
	cfg    config.LoadTest
	client *http.Client
	logger *zap.Logger
}

// NewRunner constructs a load-test runner from configuration.
func NewRunner(cfg config.LoadTest, logger *zap.Logger) *Runner {
	return &Runner{
		cfg:    cfg,
		client: &http.Client{Timeout: 30 * time.Second},
		logger: logger,
	}
}

// Run launches the configured number of workers; each one walks a random
// table through a full order lifecycle. The first failing worker cancels the
// rest.
func (r *Runner) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	for i := 0; i < r.cfg.Workers; i++ {
		g.Go(func() error {
			tableNumber := randomInRange(validation.MinTableNumber, validation.MaxTableNumber)
			menuID := randomInRange(validation.MinMenuID, validation.MaxMenuID)
			return r.roundTrip(ctx, tableNumber, menuID)
		})
	}

	return g.Wait()
}

func (r *Runner) roundTrip(ctx context.Context, tableNumber, menuID int) error {
	orderID, err := r.createOrder(ctx, tableNumber, menuID)
	if err != nil {
		return err
	}
	if err := r.listOrders(ctx, tableNumber); err != nil {
		return err
	}
	if err := r.orderDetail(ctx, tableNumber, orderID); err != nil {
		return err
	}
	return r.deleteOrder(ctx, tableNumber, orderID)
}

type createRequest struct {
	MenuID int `json:"menu_id"`
}

type createResponse struct {
	Order struct {
		OrderID int64 `json:"order_id"`
	} `json:"order"`
}

func (r *Runner) createOrder(ctx context.Context, tableNumber, menuID int) (int64, error) {
	body, err := json.Marshal(createRequest{MenuID: menuID})
	if err != nil {
		return 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.ordersURL(tableNumber), bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("create order: unexpected status %d", resp.StatusCode)
	}

	var parsed createResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return 0, err
	}

	r.logger.Info("create order",
		zap.Int("table_number", tableNumber),
		zap.Int64("order_id", parsed.Order.OrderID),
	)
	return parsed.Order.OrderID, nil
}

func (r *Runner) listOrders(ctx context.Context, tableNumber int) error {
	return r.get(ctx, r.ordersURL(tableNumber), "list orders")
}

func (r *Runner) orderDetail(ctx context.Context, tableNumber int, orderID int64) error {
	return r.get(ctx, r.orderURL(tableNumber, orderID), "order detail")
}

func (r *Runner) deleteOrder(ctx context.Context, tableNumber int, orderID int64) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, r.orderURL(tableNumber, orderID), nil)
	if err != nil {
		return err
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	r.logger.Info("delete order",
		zap.Int64("order_id", orderID),
		zap.Int("status", resp.StatusCode),
	)
	return nil
}

func (r *Runner) get(ctx context.Context, url, op string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	r.logger.Info(op, zap.String("url", url), zap.Int("status", resp.StatusCode))
	return nil
}

func (r *Runner) ordersURL(tableNumber int) string {
	return fmt.Sprintf("%s/table/%d/order", r.cfg.BaseURL, tableNumber)
}

func (r *Runner) orderURL(tableNumber int, orderID int64) string {
	return fmt.Sprintf("%s/table/%d/order/%d", r.cfg.BaseURL, tableNumber, orderID)
}

func randomInRange(min, max int) int {
	return min + rand.Intn(max-min+1)
}
