// Package servers holds the HTTP API types and echo bindings described by
// openapi.json. The code follows oapi-codegen's echo-server layout but is
// maintained by hand; keep it in step with openapi.json when either changes.
package servers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// CartItem defines model for CartItem.
type CartItem struct {
	Quantity             *float64               `json:"quantity,omitempty"`
	UnitPrice            *float64               `json:"unitPrice,omitempty"`
	AdditionalProperties map[string]interface{} `json:"-"`
}

// CreateOrderRequest defines model for CreateOrderRequest.
type CreateOrderRequest struct {
	Address  string      `json:"address"`
	Cart     *[]CartItem `json:"cart,omitempty"`
	Customer string      `json:"customer"`
	Email    string      `json:"email"`
	Phone    string      `json:"phone"`
	Status   *string     `json:"status,omitempty"`
}

// FailResponse defines model for FailResponse.
type FailResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

// Order defines model for Order.
type Order struct {
	Id       string `json:"id"`
	Address  string `json:"address"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Customer string `json:"customer"`
	Status   string `json:"status"`

	Cart       []CartItem `json:"cart"`
	OrderPrice float64    `json:"orderPrice"`

	// EstimatedDelivery UTC timestamp with millisecond precision
	EstimatedDelivery string `json:"estimatedDelivery"`
}

// OrderPatch defines model for OrderPatch.
type OrderPatch struct {
	Address              *string                `json:"address,omitempty"`
	Cart                 *[]CartItem            `json:"cart,omitempty"`
	Customer             *string                `json:"customer,omitempty"`
	Email                *string                `json:"email,omitempty"`
	EstimatedDelivery    *time.Time             `json:"estimatedDelivery,omitempty"`
	Id                   *string                `json:"id,omitempty"`
	OrderPrice           *float64               `json:"orderPrice,omitempty"`
	Phone                *string                `json:"phone,omitempty"`
	Status               *string                `json:"status,omitempty"`
	AdditionalProperties map[string]interface{} `json:"-"`
}

// OrderResponse defines model for OrderResponse.
type OrderResponse struct {
	Data   Order  `json:"data"`
	Status string `json:"status"`
}

// StatusUpdateResponse defines model for StatusUpdateResponse.
type StatusUpdateResponse struct {
	Message string `json:"message"`
	Success bool   `json:"success"`
}

// UpdateOrderStatusRequest defines model for UpdateOrderStatusRequest.
type UpdateOrderStatusRequest struct {
	Address       *string `json:"address,omitempty"`
	CustomerEmail *string `json:"customerEmail,omitempty"`
	CustomerName  *string `json:"customerName,omitempty"`

	// OrderId Any non-empty JSON value; numbers are accepted as well as strings
	OrderId interface{} `json:"orderId"`

	// OrderDetails Free text or any JSON value quoted in the confirmation email
	OrderDetails *interface{} `json:"orderDetails,omitempty"`
	Phone        *string      `json:"phone,omitempty"`
	Status       string       `json:"status"`
}

// CreateOrderJSONRequestBody defines body for CreateOrder for application/json ContentType.
type CreateOrderJSONRequestBody = CreateOrderRequest

// PatchOrderJSONRequestBody defines body for PatchOrder for application/json ContentType.
type PatchOrderJSONRequestBody = OrderPatch

// UpdateOrderStatusJSONRequestBody defines body for UpdateOrderStatus for application/json ContentType.
type UpdateOrderStatusJSONRequestBody = UpdateOrderStatusRequest

// Getter for additional properties for CartItem. Returns the specified
// element and whether it was found
func (a CartItem) Get(fieldName string) (value interface{}, found bool) {
	if a.AdditionalProperties != nil {
		value, found = a.AdditionalProperties[fieldName]
	}
	return
}

// Setter for additional properties for CartItem
func (a *CartItem) Set(fieldName string, value interface{}) {
	if a.AdditionalProperties == nil {
		a.AdditionalProperties = make(map[string]interface{})
	}
	a.AdditionalProperties[fieldName] = value
}

// Override default JSON handling for CartItem to handle AdditionalProperties
func (a *CartItem) UnmarshalJSON(b []byte) error {
	object := make(map[string]json.RawMessage)
	err := json.Unmarshal(b, &object)
	if err != nil {
		return err
	}

	if raw, found := object["quantity"]; found {
		err = json.Unmarshal(raw, &a.Quantity)
		if err != nil {
			return fmt.Errorf("error reading 'quantity': %w", err)
		}
		delete(object, "quantity")
	}

	if raw, found := object["unitPrice"]; found {
		err = json.Unmarshal(raw, &a.UnitPrice)
		if err != nil {
			return fmt.Errorf("error reading 'unitPrice': %w", err)
		}
		delete(object, "unitPrice")
	}

	if len(object) != 0 {
		a.AdditionalProperties = make(map[string]interface{})
		for fieldName, fieldBuf := range object {
			var fieldVal interface{}
			err := json.Unmarshal(fieldBuf, &fieldVal)
			if err != nil {
				return fmt.Errorf("error unmarshaling field %s: %w", fieldName, err)
			}
			a.AdditionalProperties[fieldName] = fieldVal
		}
	}
	return nil
}

// Override default JSON handling for CartItem to handle AdditionalProperties
func (a CartItem) MarshalJSON() ([]byte, error) {
	var err error
	object := make(map[string]json.RawMessage)

	if a.Quantity != nil {
		object["quantity"], err = json.Marshal(a.Quantity)
		if err != nil {
			return nil, fmt.Errorf("error marshaling 'quantity': %w", err)
		}
	}

	if a.UnitPrice != nil {
		object["unitPrice"], err = json.Marshal(a.UnitPrice)
		if err != nil {
			return nil, fmt.Errorf("error marshaling 'unitPrice': %w", err)
		}
	}

	for fieldName, field := range a.AdditionalProperties {
		object[fieldName], err = json.Marshal(field)
		if err != nil {
			return nil, fmt.Errorf("error marshaling '%s': %w", fieldName, err)
		}
	}
	return json.Marshal(object)
}

// Getter for additional properties for OrderPatch. Returns the specified
// element and whether it was found
func (a OrderPatch) Get(fieldName string) (value interface{}, found bool) {
	if a.AdditionalProperties != nil {
		value, found = a.AdditionalProperties[fieldName]
	}
	return
}

// Setter for additional properties for OrderPatch
func (a *OrderPatch) Set(fieldName string, value interface{}) {
	if a.AdditionalProperties == nil {
		a.AdditionalProperties = make(map[string]interface{})
	}
	a.AdditionalProperties[fieldName] = value
}

// Override default JSON handling for OrderPatch to handle AdditionalProperties
func (a *OrderPatch) UnmarshalJSON(b []byte) error {
	object := make(map[string]json.RawMessage)
	err := json.Unmarshal(b, &object)
	if err != nil {
		return err
	}

	if raw, found := object["address"]; found {
		err = json.Unmarshal(raw, &a.Address)
		if err != nil {
			return fmt.Errorf("error reading 'address': %w", err)
		}
		delete(object, "address")
	}

	if raw, found := object["cart"]; found {
		err = json.Unmarshal(raw, &a.Cart)
		if err != nil {
			return fmt.Errorf("error reading 'cart': %w", err)
		}
		delete(object, "cart")
	}

	if raw, found := object["customer"]; found {
		err = json.Unmarshal(raw, &a.Customer)
		if err != nil {
			return fmt.Errorf("error reading 'customer': %w", err)
		}
		delete(object, "customer")
	}

	if raw, found := object["email"]; found {
		err = json.Unmarshal(raw, &a.Email)
		if err != nil {
			return fmt.Errorf("error reading 'email': %w", err)
		}
		delete(object, "email")
	}

	if raw, found := object["estimatedDelivery"]; found {
		err = json.Unmarshal(raw, &a.EstimatedDelivery)
		if err != nil {
			return fmt.Errorf("error reading 'estimatedDelivery': %w", err)
		}
		delete(object, "estimatedDelivery")
	}

	if raw, found := object["id"]; found {
		err = json.Unmarshal(raw, &a.Id)
		if err != nil {
			return fmt.Errorf("error reading 'id': %w", err)
		}
		delete(object, "id")
	}

	if raw, found := object["orderPrice"]; found {
		err = json.Unmarshal(raw, &a.OrderPrice)
		if err != nil {
			return fmt.Errorf("error reading 'orderPrice': %w", err)
		}
		delete(object, "orderPrice")
	}

	if raw, found := object["phone"]; found {
		err = json.Unmarshal(raw, &a.Phone)
		if err != nil {
			return fmt.Errorf("error reading 'phone': %w", err)
		}
		delete(object, "phone")
	}

	if raw, found := object["status"]; found {
		err = json.Unmarshal(raw, &a.Status)
		if err != nil {
			return fmt.Errorf("error reading 'status': %w", err)
		}
		delete(object, "status")
	}

	if len(object) != 0 {
		a.AdditionalProperties = make(map[string]interface{})
		for fieldName, fieldBuf := range object {
			var fieldVal interface{}
			err := json.Unmarshal(fieldBuf, &fieldVal)
			if err != nil {
				return fmt.Errorf("error unmarshaling field %s: %w", fieldName, err)
			}
			a.AdditionalProperties[fieldName] = fieldVal
		}
	}
	return nil
}

// Override default JSON handling for OrderPatch to handle AdditionalProperties
func (a OrderPatch) MarshalJSON() ([]byte, error) {
	var err error
	object := make(map[string]json.RawMessage)

	if a.Address != nil {
		object["address"], err = json.Marshal(a.Address)
		if err != nil {
			return nil, fmt.Errorf("error marshaling 'address': %w", err)
		}
	}

	if a.Cart != nil {
		object["cart"], err = json.Marshal(a.Cart)
		if err != nil {
			return nil, fmt.Errorf("error marshaling 'cart': %w", err)
		}
	}

	if a.Customer != nil {
		object["customer"], err = json.Marshal(a.Customer)
		if err != nil {
			return nil, fmt.Errorf("error marshaling 'customer': %w", err)
		}
	}

	if a.Email != nil {
		object["email"], err = json.Marshal(a.Email)
		if err != nil {
			return nil, fmt.Errorf("error marshaling 'email': %w", err)
		}
	}

	if a.EstimatedDelivery != nil {
		object["estimatedDelivery"], err = json.Marshal(a.EstimatedDelivery)
		if err != nil {
			return nil, fmt.Errorf("error marshaling 'estimatedDelivery': %w", err)
		}
	}

	if a.Id != nil {
		object["id"], err = json.Marshal(a.Id)
		if err != nil {
			return nil, fmt.Errorf("error marshaling 'id': %w", err)
		}
	}

	if a.OrderPrice != nil {
		object["orderPrice"], err = json.Marshal(a.OrderPrice)
		if err != nil {
			return nil, fmt.Errorf("error marshaling 'orderPrice': %w", err)
		}
	}

	if a.Phone != nil {
		object["phone"], err = json.Marshal(a.Phone)
		if err != nil {
			return nil, fmt.Errorf("error marshaling 'phone': %w", err)
		}
	}

	if a.Status != nil {
		object["status"], err = json.Marshal(a.Status)
		if err != nil {
			return nil, fmt.Errorf("error marshaling 'status': %w", err)
		}
	}

	for fieldName, field := range a.AdditionalProperties {
		object[fieldName], err = json.Marshal(field)
		if err != nil {
			return nil, fmt.Errorf("error marshaling '%s': %w", fieldName, err)
		}
	}
	return json.Marshal(object)
}

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// Create a new order
	// (POST /api/order)
	CreateOrder(ctx echo.Context) error
	// Get an order by id
	// (GET /api/order/{id})
	GetOrder(ctx echo.Context, id string) error
	// Partially update an order
	// (PATCH /api/order/{id})
	PatchOrder(ctx echo.Context, id string) error
	// Broadcast a status change and send the confirmation email
	// (POST /update-order-status)
	UpdateOrderStatus(ctx echo.Context) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

// CreateOrder converts echo context to params.
func (w *ServerInterfaceWrapper) CreateOrder(ctx echo.Context) error {
	var err error

	// Invoke the callback with all the unmarshaled arguments
	err = w.Handler.CreateOrder(ctx)
	return err
}

// GetOrder converts echo context to params.
func (w *ServerInterfaceWrapper) GetOrder(ctx echo.Context) error {
	var err error
	// ------------- Path parameter "id" -------------
	var id string

	err = runtime.BindStyledParameterWithOptions("simple", "id", ctx.Param("id"), &id, runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter id: %s", err))
	}

	// Invoke the callback with all the unmarshaled arguments
	err = w.Handler.GetOrder(ctx, id)
	return err
}

// PatchOrder converts echo context to params.
func (w *ServerInterfaceWrapper) PatchOrder(ctx echo.Context) error {
	var err error
	// ------------- Path parameter "id" -------------
	var id string

	err = runtime.BindStyledParameterWithOptions("simple", "id", ctx.Param("id"), &id, runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter id: %s", err))
	}

	// Invoke the callback with all the unmarshaled arguments
	err = w.Handler.PatchOrder(ctx, id)
	return err
}

// UpdateOrderStatus converts echo context to params.
func (w *ServerInterfaceWrapper) UpdateOrderStatus(ctx echo.Context) error {
	var err error

	// Invoke the callback with all the unmarshaled arguments
	err = w.Handler.UpdateOrderStatus(ctx)
	return err
}

// This is a simple interface which specifies echo.Route addition functions which
// are present on both echo.Echo and echo.Group, since we want to allow using
// either of them for path registration
type EchoRouter interface {
	CONNECT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	HEAD(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	OPTIONS(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	TRACE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

// Registers handlers, and prepends BaseURL to the paths, so that the paths
// can be served under a prefix.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {

	wrapper := ServerInterfaceWrapper{
		Handler: si,
	}

	router.POST(baseURL+"/api/order", wrapper.CreateOrder)
	router.GET(baseURL+"/api/order/:id", wrapper.GetOrder)
	router.PATCH(baseURL+"/api/order/:id", wrapper.PatchOrder)
	router.POST(baseURL+"/update-order-status", wrapper.UpdateOrderStatus)

}
