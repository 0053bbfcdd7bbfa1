package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"bloomify/internal/core/application/usecases/commands"
	"bloomify/internal/core/application/usecases/queries"
	"bloomify/internal/core/domain/model/order"
	"bloomify/internal/generated/servers"
	"bloomify/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const (
	statusSuccess = "success"
	statusFail    = "fail"

	// Same layout as JavaScript's Date.toISOString.
	timestampLayout = "2006-01-02T15:04:05.000Z"
)

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler       commands.CreateOrderCommandHandler
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler
	patchOrderHandler        commands.PatchOrderCommandHandler

	// Query handlers
	getOrderHandler queries.GetOrderQueryHandler

	logger *slog.Logger
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler,
	patchOrderHandler commands.PatchOrderCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	logger *slog.Logger,
) *Server {
	return &Server{
		createOrderHandler:       createOrderHandler,
		updateOrderStatusHandler: updateOrderStatusHandler,
		patchOrderHandler:        patchOrderHandler,
		getOrderHandler:          getOrderHandler,
		logger:                   logger.With("component", "http_server"),
	}
}

// CreateOrder handles POST /api/order - creates a new order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body servers.CreateOrderJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return fail(ctx, http.StatusBadRequest, "Invalid request body")
	}
	s.logger.DebugContext(ctx.Request().Context(), "Received order", "payload", body)

	contact := order.Contact{
		Customer: body.Customer,
		Email:    body.Email,
		Phone:    body.Phone,
		Address:  body.Address,
	}
	cmd, err := commands.NewCreateOrderCommand(contact, deref(body.Status), toDomainCart(body.Cart))
	if err != nil {
		if errors.Is(err, errs.ErrValueIsRequired) {
			return fail(ctx, http.StatusBadRequest, "Missing required fields")
		}
		return s.internalError(ctx, err)
	}

	created, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		if errors.Is(err, errs.ErrValueIsInvalid) {
			return fail(ctx, http.StatusBadRequest, "Invalid request body")
		}
		return s.internalError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, servers.OrderResponse{
		Status: statusSuccess,
		Data:   toOrderResponse(created),
	})
}

// UpdateOrderStatus handles POST /update-order-status - broadcasts the new
// status and sends the confirmation email for confirmed orders.
func (s *Server) UpdateOrderStatus(ctx echo.Context) error {
	var body servers.UpdateOrderStatusJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.StatusUpdateResponse{Message: "Missing data!"})
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(orderIDString(body.OrderId), body.Status, commands.CustomerDetails{
		Email:        deref(body.CustomerEmail),
		Name:         deref(body.CustomerName),
		Phone:        deref(body.Phone),
		Address:      deref(body.Address),
		OrderDetails: renderOrderDetails(body.OrderDetails),
	})
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.StatusUpdateResponse{Message: "Missing data!"})
	}

	if err = s.updateOrderStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		s.logger.ErrorContext(ctx.Request().Context(), "Status update failed", "error", err)
		return ctx.JSON(http.StatusInternalServerError, servers.StatusUpdateResponse{Message: "Internal server error"})
	}

	return ctx.JSON(http.StatusOK, servers.StatusUpdateResponse{
		Success: true,
		Message: fmt.Sprintf("Order %s updated to %s", cmd.OrderID(), cmd.Status()),
	})
}

// GetOrder handles GET /api/order/{id} - retrieves a single order.
func (s *Server) GetOrder(ctx echo.Context, id string) error {
	query, err := queries.NewGetOrderQuery(id)
	if err != nil {
		return fail(ctx, http.StatusNotFound, "Couldn't find order #"+id)
	}

	found, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return fail(ctx, http.StatusNotFound, "Couldn't find order #"+id)
		}
		return s.internalError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, servers.OrderResponse{
		Status: statusSuccess,
		Data:   toOrderResponse(found),
	})
}

// PatchOrder handles PATCH /api/order/{id} - merges the body into the order.
func (s *Server) PatchOrder(ctx echo.Context, id string) error {
	var body servers.PatchOrderJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return fail(ctx, http.StatusBadRequest, "Invalid request body")
	}

	cmd, err := commands.NewPatchOrderCommand(id, toDomainPatch(body))
	if err != nil {
		return fail(ctx, http.StatusNotFound, "Order not found")
	}

	updated, err := s.patchOrderHandler.Handle(ctx.Request().Context(), cmd)
	switch {
	case err == nil:
		return ctx.JSON(http.StatusOK, servers.OrderResponse{
			Status: statusSuccess,
			Data:   toOrderResponse(updated),
		})
	case errors.Is(err, errs.ErrObjectNotFound):
		return fail(ctx, http.StatusNotFound, "Order not found")
	case errors.Is(err, errs.ErrValueIsInvalid), errors.Is(err, errs.ErrValueIsRequired):
		return fail(ctx, http.StatusBadRequest, err.Error())
	default:
		return s.internalError(ctx, err)
	}
}

func (s *Server) internalError(ctx echo.Context, err error) error {
	s.logger.ErrorContext(ctx.Request().Context(), "Request failed",
		"method", ctx.Request().Method, "path", ctx.Path(), "error", err)
	return fail(ctx, http.StatusInternalServerError, "Internal server error")
}

func fail(ctx echo.Context, code int, message string) error {
	return ctx.JSON(code, servers.FailResponse{Status: statusFail, Message: message})
}

func toOrderResponse(o *order.Order) servers.Order {
	contact := o.Contact()
	return servers.Order{
		Id:                o.ID(),
		Address:           contact.Address,
		Email:             contact.Email,
		Phone:             contact.Phone,
		Customer:          contact.Customer,
		Status:            o.Status().String(),
		Cart:              toResponseCart(o.Cart()),
		OrderPrice:        o.OrderPrice(),
		EstimatedDelivery: o.EstimatedDelivery().UTC().Format(timestampLayout),
	}
}

func toResponseCart(cart order.Cart) []servers.CartItem {
	items := make([]servers.CartItem, len(cart))
	for i, item := range cart {
		unitPrice, quantity := item.UnitPrice, item.Quantity
		items[i] = servers.CartItem{
			UnitPrice:            &unitPrice,
			Quantity:             &quantity,
			AdditionalProperties: item.Attributes,
		}
	}
	return items
}

func toDomainCart(items *[]servers.CartItem) order.Cart {
	if items == nil {
		return order.Cart{}
	}

	cart := make(order.Cart, len(*items))
	for i, item := range *items {
		cart[i] = order.CartItem{
			UnitPrice:  deref(item.UnitPrice),
			Quantity:   deref(item.Quantity),
			Attributes: item.AdditionalProperties,
		}
	}
	return cart
}

func toDomainPatch(body servers.OrderPatch) order.Patch {
	patch := order.Patch{
		ID:                body.Id,
		Customer:          body.Customer,
		Email:             body.Email,
		Phone:             body.Phone,
		Address:           body.Address,
		Status:            body.Status,
		OrderPrice:        body.OrderPrice,
		EstimatedDelivery: body.EstimatedDelivery,
	}
	if body.Cart != nil {
		cart := toDomainCart(body.Cart)
		patch.Cart = &cart
	}
	if body.EstimatedDelivery != nil {
		eta := body.EstimatedDelivery.UTC()
		patch.EstimatedDelivery = &eta
	}
	if len(body.AdditionalProperties) > 0 {
		patch.UnknownFields = slices.Sorted(maps.Keys(body.AdditionalProperties))
	}
	return patch
}

// orderIDString renders a JSON orderId as text. Falsy values (null, false, 0,
// "") come back empty so they are treated as missing.
func orderIDString(v interface{}) string {
	switch id := v.(type) {
	case nil:
		return ""
	case string:
		return id
	case bool:
		if !id {
			return ""
		}
		return strconv.FormatBool(id)
	case float64:
		if id == 0 {
			return ""
		}
		return strconv.FormatFloat(id, 'f', -1, 64)
	default:
		return renderOrderDetails(&v)
	}
}

// renderOrderDetails quotes strings verbatim and any other JSON value compactly.
func renderOrderDetails(details *interface{}) string {
	if details == nil || *details == nil {
		return ""
	}
	if text, ok := (*details).(string); ok {
		return text
	}

	var buf strings.Builder
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(*details); err != nil {
		return fmt.Sprint(*details)
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

func deref[T any](v *T) T {
	if v == nil {
		var zero T
		return zero
	}
	return *v
}

var _ servers.ServerInterface = (*Server)(nil)
