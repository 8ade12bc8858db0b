package order

import (
	"strconv"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/sukab-restaurant/tableside/internal/dto"
	"github.com/sukab-restaurant/tableside/internal/presentation/http/response"
	service "github.com/sukab-restaurant/tableside/internal/service/order"
	"github.com/sukab-restaurant/tableside/pkg/errorbank"
)

var httpTracer = otel.Tracer("github.com/sukab-restaurant/tableside/transport/http/order")

// Handler exposes the table-scoped order endpoints over HTTP.
type Handler struct {
	svc *service.Service
}

// NewHandler constructs an order Handler.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Register mounts the order routes under their table scope.
func Register(e *echo.Echo, h *Handler) {
	g := e.Group("/table/:table_number/order")
	g.POST("", h.create)
	g.GET("", h.list)
	g.GET("/:order_id", h.detail)
	g.DELETE("/:order_id", h.delete)
}

type createRequest struct {
	MenuID int `json:"menu_id"`
}

func (h *Handler) create(c echo.Context) error {
	tableNumber, err := pathTableNumber(c)
	if err != nil {
		return err
	}

	var payload createRequest
	if err := c.Bind(&payload); err != nil {
		return errorbank.Validation("invalid request body", errorbank.WithCause(err))
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "orders.create", trace.WithAttributes(
		attribute.Int("order.table_number", tableNumber),
		attribute.Int("order.menu_id", payload.MenuID),
	))
	defer span.End()

	order, err := h.svc.Create(ctx, tableNumber, payload.MenuID)
	if err != nil {
		return err
	}

	return response.New(c).WithData(dto.NewOrderResponse(order)).Build()
}

func (h *Handler) list(c echo.Context) error {
	tableNumber, err := pathTableNumber(c)
	if err != nil {
		return err
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "orders.list", trace.WithAttributes(
		attribute.Int("order.table_number", tableNumber),
	))
	defer span.End()

	orders, err := h.svc.List(ctx, tableNumber, service.ListQuery{
		Page:  queryInt(c, "page"),
		Limit: queryInt(c, "limit"),
	})
	if err != nil {
		return err
	}

	return response.New(c).WithData(dto.NewOrderListResponse(orders)).Build()
}

func (h *Handler) detail(c echo.Context) error {
	tableNumber, err := pathTableNumber(c)
	if err != nil {
		return err
	}
	orderID, err := pathOrderID(c)
	if err != nil {
		return err
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "orders.detail", trace.WithAttributes(
		attribute.Int("order.table_number", tableNumber),
		attribute.Int64("order.id", orderID),
	))
	defer span.End()

	order, err := h.svc.Detail(ctx, tableNumber, orderID)
	if err != nil {
		return err
	}

	return response.New(c).WithData(dto.NewOrderResponse(order)).Build()
}

func (h *Handler) delete(c echo.Context) error {
	tableNumber, err := pathTableNumber(c)
	if err != nil {
		return err
	}
	orderID, err := pathOrderID(c)
	if err != nil {
		return err
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "orders.delete", trace.WithAttributes(
		attribute.Int("order.table_number", tableNumber),
		attribute.Int64("order.id", orderID),
	))
	defer span.End()

	removedID, err := h.svc.Delete(ctx, tableNumber, orderID)
	if err != nil {
		return err
	}

	return response.New(c).WithData(dto.DeleteResponse{OrderID: removedID}).Build()
}

func pathTableNumber(c echo.Context) (int, error) {
	n, err := strconv.Atoi(c.Param("table_number"))
	if err != nil {
		return 0, errorbank.Validation("table_number must be an integer",
			errorbank.WithField("table_number"), errorbank.WithCause(err))
	}
	return n, nil
}

func pathOrderID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("order_id"), 10, 64)
	if err != nil {
		return 0, errorbank.Validation("order_id must be an integer",
			errorbank.WithField("order_id"), errorbank.WithCause(err))
	}
	return id, nil
}

// queryInt parses an optional query parameter. Absent or unparsable values
// yield nil so normalization applies the documented default.
func queryInt(c echo.Context, name string) *int {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &v
}
