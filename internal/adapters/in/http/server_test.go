package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	httpadapter "bloomify/internal/adapters/in/http"
	"bloomify/internal/adapters/out/memory/orderrepo"
	"bloomify/internal/adapters/out/realtime"
	"bloomify/internal/core/application/notifications"
	"bloomify/internal/core/application/usecases/commands"
	"bloomify/internal/core/application/usecases/queries"
	"bloomify/internal/core/domain/model/kernel"
	"bloomify/internal/core/domain/model/order"
	"bloomify/internal/core/ports"
	"bloomify/internal/pkg/background"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
	"golang.org/x/net/websocket"
)

const (
	account       = "kitchen@example.com"
	allowedOrigin = "https://bloomify.example"
)

var errSMTPDown = errors.New("smtp: connection refused")

// recordingMailer keeps every message it is handed; with failing set it still
// records the attempt but reports a transport error.
type recordingMailer struct {
	mu      sync.Mutex
	sent    []ports.MailMessage
	failing bool
}

func (m *recordingMailer) Send(_ context.Context, msg ports.MailMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	if m.failing {
		return errSMTPDown
	}
	return nil
}

func (m *recordingMailer) SetFailing(failing bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failing = failing
}

func (m *recordingMailer) Sent() []ports.MailMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]ports.MailMessage(nil), m.sent...)
}

type envelope struct {
	Status  string         `json:"status"`
	Success *bool          `json:"success"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data"`
}

type ServerTestSuite struct {
	suite.Suite
	repo   *orderrepo.MemoryOrderRepository
	mailer *recordingMailer
	hub    *realtime.Hub
	tasks  *background.Group
	echo   *echo.Echo
}

func (suite *ServerTestSuite) SetupTest() {
	suite.echo = suite.build(order.LenientPatch)
}

func (suite *ServerTestSuite) TearDownTest() {
	suite.tasks.Wait()
	suite.hub.Close()
}

func (suite *ServerTestSuite) build(policy order.PatchPolicy) *echo.Echo {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ids, err := kernel.NewOrderIDGenerator(kernel.DefaultOrderIDLength)
	suite.Require().NoError(err)

	suite.repo = orderrepo.NewMemoryOrderRepository()
	suite.mailer = &recordingMailer{}
	suite.hub = realtime.NewHub([]string{allowedOrigin}, logger)
	suite.tasks = background.NewGroup(logger)
	gateway := notifications.NewGateway(suite.mailer, suite.hub, account, logger)

	server := httpadapter.NewServer(
		commands.NewCreateOrderCommandHandler(suite.repo, ids, gateway, suite.tasks),
		commands.NewUpdateOrderStatusCommandHandler(gateway, suite.tasks),
		commands.NewPatchOrderCommandHandler(suite.repo, policy),
		queries.NewGetOrderQueryHandler(suite.repo),
		logger,
	)
	return httpadapter.NewRouter(server, suite.hub, []string{allowedOrigin}, logger)
}

func (suite *ServerTestSuite) do(method, path, body string) (*httptest.ResponseRecorder, envelope) {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	suite.echo.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		suite.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func (suite *ServerTestSuite) createOrder(body string) map[string]any {
	rec, env := suite.do(http.MethodPost, "/api/order", body)
	suite.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	suite.Require().Equal("success", env.Status)
	return env.Data
}

const validOrder = `{
	"customer": "Ana",
	"email": "ana@example.com",
	"phone": "555-0100",
	"address": "1 Elm St",
	"cart": [
		{"name": "Margherita", "pizzaId": 7, "unitPrice": 10, "quantity": 2},
		{"name": "Cola", "unitPrice": 5, "quantity": 1}
	]
}`

func (suite *ServerTestSuite) TestCreateOrder() {
	before := time.Now().UTC().Truncate(time.Millisecond)

	data := suite.createOrder(validOrder)

	suite.Regexp(`^ORD[0-9A-Z]{8}$`, data["id"])
	suite.Equal("pending", data["status"])
	suite.InDelta(25.0, data["orderPrice"], 0)
	suite.Equal("Ana", data["customer"])

	eta, err := time.Parse("2006-01-02T15:04:05.000Z", data["estimatedDelivery"].(string))
	suite.Require().NoError(err)
	suite.WithinDuration(before.Add(30*time.Minute), eta, 5*time.Second)

	cart := data["cart"].([]any)
	suite.Require().Len(cart, 2)
	first := cart[0].(map[string]any)
	suite.Equal("Margherita", first["name"])
	suite.InDelta(7.0, first["pizzaId"], 0)

	suite.Eventually(func() bool { return len(suite.mailer.Sent()) == 1 }, 2*time.Second, 10*time.Millisecond)
	sent := suite.mailer.Sent()[0]
	suite.Equal([]string{account}, sent.To)
	suite.Equal([]string{"ana@example.com"}, sent.Cc)
	suite.Contains(sent.Body, "Total Price: 25")
}

func (suite *ServerTestSuite) TestCreateOrder_EmptyCart() {
	data := suite.createOrder(`{"customer":"Ana","email":"ana@example.com","phone":"1","address":"x","status":"preparing"}`)

	suite.InDelta(0.0, data["orderPrice"], 0)
	suite.Equal("preparing", data["status"])
	suite.Empty(data["cart"])
}

func (suite *ServerTestSuite) TestCreateOrder_MissingFields() {
	rec, env := suite.do(http.MethodPost, "/api/order", `{"customer":"Ana","email":"ana@example.com","phone":"1"}`)

	suite.Equal(http.StatusBadRequest, rec.Code)
	suite.Equal("fail", env.Status)
	suite.Equal("Missing required fields", env.Message)
	suite.Zero(suite.repo.Len())
	suite.tasks.Wait()
	suite.Empty(suite.mailer.Sent())
}

func (suite *ServerTestSuite) TestCreateOrder_MalformedBody() {
	rec, env := suite.do(http.MethodPost, "/api/order", `{"customer":`)

	suite.Equal(http.StatusBadRequest, rec.Code)
	suite.Equal("Invalid request body", env.Message)
}

func (suite *ServerTestSuite) TestCreateOrder_NonNumericPrice() {
	rec, env := suite.do(http.MethodPost, "/api/order",
		`{"customer":"Ana","email":"a@b.c","phone":"1","address":"x","cart":[{"unitPrice":"abc","quantity":1}]}`)

	suite.Equal(http.StatusBadRequest, rec.Code)
	suite.Equal("Invalid request body", env.Message)
	suite.Zero(suite.repo.Len())
}

func (suite *ServerTestSuite) TestCreateOrder_FractionalQuantity() {
	data := suite.createOrder(`{"customer":"Ana","email":"a@b.c","phone":"1","address":"x",
		"cart":[{"unitPrice":4,"quantity":1.5},{"unitPrice":3,"quantity":2.0}]}`)

	suite.InDelta(12.0, data["orderPrice"], 0)
	cart := data["cart"].([]any)
	suite.Require().Len(cart, 2)
	suite.InDelta(1.5, cart[0].(map[string]any)["quantity"], 0)
}

func (suite *ServerTestSuite) TestCreateOrder_TotalOutOfRange() {
	rec, env := suite.do(http.MethodPost, "/api/order",
		`{"customer":"Ana","email":"a@b.c","phone":"1","address":"x","cart":[{"unitPrice":1e308,"quantity":10}]}`)

	suite.Equal(http.StatusBadRequest, rec.Code)
	suite.Equal("fail", env.Status)
	suite.Equal("Invalid request body", env.Message)
	suite.Zero(suite.repo.Len())
	suite.tasks.Wait()
	suite.Empty(suite.mailer.Sent())
}

func (suite *ServerTestSuite) TestCreateOrder_MailerFailureKeepsResponse() {
	suite.mailer.SetFailing(true)

	rec, env := suite.do(http.MethodPost, "/api/order", validOrder)

	suite.Equal(http.StatusCreated, rec.Code)
	suite.Equal("success", env.Status)
	suite.Regexp(`^ORD[0-9A-Z]{8}$`, env.Data["id"])
	suite.InDelta(25.0, env.Data["orderPrice"], 0)
	suite.Equal("pending", env.Data["status"])
	suite.Equal(1, suite.repo.Len())

	suite.tasks.Wait()
	suite.Len(suite.mailer.Sent(), 1)

	_, stored := suite.do(http.MethodGet, "/api/order/"+env.Data["id"].(string), "")
	suite.Equal(env.Data, stored.Data)
}

func (suite *ServerTestSuite) TestGetOrder_ReturnsCreatedRecord() {
	created := suite.createOrder(validOrder)

	rec, env := suite.do(http.MethodGet, "/api/order/"+created["id"].(string), "")

	suite.Equal(http.StatusOK, rec.Code)
	suite.Equal("success", env.Status)
	suite.Equal(created, env.Data)
}

func (suite *ServerTestSuite) TestGetOrder_NotFound() {
	rec, env := suite.do(http.MethodGet, "/api/order/ORDMISSING1", "")

	suite.Equal(http.StatusNotFound, rec.Code)
	suite.Equal("fail", env.Status)
	suite.Equal("Couldn't find order #ORDMISSING1", env.Message)
}

func (suite *ServerTestSuite) TestPatchOrder_StatusOnly() {
	created := suite.createOrder(validOrder)
	id := created["id"].(string)

	rec, env := suite.do(http.MethodPatch, "/api/order/"+id, `{"status":"confirmed"}`)

	suite.Equal(http.StatusOK, rec.Code)
	suite.Equal("confirmed", env.Data["status"])
	for key, value := range created {
		if key != "status" {
			suite.Equal(value, env.Data[key], key)
		}
	}

	_, stored := suite.do(http.MethodGet, "/api/order/"+id, "")
	suite.Equal("confirmed", stored.Data["status"])
}

func (suite *ServerTestSuite) TestPatchOrder_LenientIgnoresIDAndUnknownFields() {
	created := suite.createOrder(validOrder)
	id := created["id"].(string)

	rec, env := suite.do(http.MethodPatch, "/api/order/"+id, `{"id":"ORDHIJACKED","coupon":"FREE","orderPrice":1}`)

	suite.Equal(http.StatusOK, rec.Code)
	suite.Equal(id, env.Data["id"])
	suite.InDelta(1.0, env.Data["orderPrice"], 0)
	suite.NotContains(env.Data, "coupon")
}

func (suite *ServerTestSuite) TestPatchOrder_NotFound() {
	rec, env := suite.do(http.MethodPatch, "/api/order/ORDMISSING1", `{"status":"confirmed"}`)

	suite.Equal(http.StatusNotFound, rec.Code)
	suite.Equal("fail", env.Status)
	suite.Equal("Order not found", env.Message)
}

func (suite *ServerTestSuite) TestPatchOrder_TypeMismatch() {
	created := suite.createOrder(validOrder)

	rec, env := suite.do(http.MethodPatch, "/api/order/"+created["id"].(string), `{"orderPrice":"x"}`)

	suite.Equal(http.StatusBadRequest, rec.Code)
	suite.Equal("Invalid request body", env.Message)
}

func (suite *ServerTestSuite) TestPatchOrder_Strict() {
	suite.tasks.Wait()
	suite.hub.Close()
	suite.echo = suite.build(order.StrictPatch)
	created := suite.createOrder(validOrder)
	id := created["id"].(string)

	rec, env := suite.do(http.MethodPatch, "/api/order/"+id, `{"status":"ready","coupon":"FREE"}`)
	suite.Equal(http.StatusBadRequest, rec.Code)
	suite.Equal("fail", env.Status)
	suite.Contains(env.Message, "coupon")

	rec, _ = suite.do(http.MethodPatch, "/api/order/"+id, `{"email":""}`)
	suite.Equal(http.StatusBadRequest, rec.Code)

	rec, env = suite.do(http.MethodPatch, "/api/order/"+id, `{"status":"ready"}`)
	suite.Equal(http.StatusOK, rec.Code)
	suite.Equal("ready", env.Data["status"])
}

func (suite *ServerTestSuite) TestUpdateOrderStatus_MissingData() {
	for _, body := range []string{`{"status":"confirmed"}`, `{"orderId":"ORD1"}`, `{"orderId":`} {
		rec, env := suite.do(http.MethodPost, "/update-order-status", body)

		suite.Equal(http.StatusBadRequest, rec.Code, body)
		suite.Require().NotNil(env.Success)
		suite.False(*env.Success)
		suite.Equal("Missing data!", env.Message)
	}
}

func (suite *ServerTestSuite) TestUpdateOrderStatus_ConfirmedBroadcastsAndEmails() {
	srv := httptest.NewServer(suite.echo)
	defer srv.Close()

	conn, err := websocket.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws", "", allowedOrigin)
	suite.Require().NoError(err)
	defer conn.Close()
	suite.Eventually(func() bool { return suite.hub.Subscribers() == 1 }, 2*time.Second, 10*time.Millisecond)

	rec, env := suite.do(http.MethodPost, "/update-order-status", `{
		"orderId": "ORDNOTSTORED",
		"status": "Confirmed",
		"customerEmail": "ana@example.com",
		"customerName": "Ana",
		"phone": "555-0100",
		"address": "1 Elm St",
		"orderDetails": [{"name": "Margherita", "quantity": 2}]
	}`)

	suite.Equal(http.StatusOK, rec.Code)
	suite.Require().NotNil(env.Success)
	suite.True(*env.Success)
	suite.Equal("Order ORDNOTSTORED updated to Confirmed", env.Message)

	suite.Require().NoError(conn.SetReadDeadline(time.Now().Add(2 * time.Second)))
	var frame string
	suite.Require().NoError(websocket.Message.Receive(conn, &frame))
	suite.JSONEq(`{"event":"order-status-update","data":{"orderId":"ORDNOTSTORED","status":"Confirmed"}}`, frame)

	suite.Eventually(func() bool { return len(suite.mailer.Sent()) == 1 }, 2*time.Second, 10*time.Millisecond)
	sent := suite.mailer.Sent()[0]
	suite.Equal([]string{"ana@example.com"}, sent.To)
	suite.Contains(sent.Body, "Dear Ana,")
	suite.Contains(sent.Body, `[{"name":"Margherita","quantity":2}]`)
}

func (suite *ServerTestSuite) TestUpdateOrderStatus_MailerFailureKeepsResponse() {
	suite.mailer.SetFailing(true)

	rec, env := suite.do(http.MethodPost, "/update-order-status",
		`{"orderId":"ORD1","status":"confirmed","customerEmail":"ana@example.com","customerName":"Ana"}`)

	suite.Equal(http.StatusOK, rec.Code)
	suite.Require().NotNil(env.Success)
	suite.True(*env.Success)
	suite.Equal("Order ORD1 updated to confirmed", env.Message)

	suite.tasks.Wait()
	suite.Len(suite.mailer.Sent(), 1)
}

func (suite *ServerTestSuite) TestUpdateOrderStatus_NumericOrderID() {
	rec, env := suite.do(http.MethodPost, "/update-order-status", `{"orderId":42,"status":"delivered"}`)

	suite.Equal(http.StatusOK, rec.Code)
	suite.Require().NotNil(env.Success)
	suite.True(*env.Success)
	suite.Equal("Order 42 updated to delivered", env.Message)
}

func (suite *ServerTestSuite) TestUpdateOrderStatus_FalsyOrderID() {
	for _, body := range []string{`{"orderId":0,"status":"confirmed"}`, `{"orderId":"","status":"confirmed"}`,
		`{"orderId":null,"status":"confirmed"}`, `{"orderId":false,"status":"confirmed"}`} {
		rec, env := suite.do(http.MethodPost, "/update-order-status", body)

		suite.Equal(http.StatusBadRequest, rec.Code, body)
		suite.Equal("Missing data!", env.Message, body)
	}
}

func (suite *ServerTestSuite) TestUpdateOrderStatus_OtherStatusSendsNoEmail() {
	rec, env := suite.do(http.MethodPost, "/update-order-status", `{"orderId":"ORD1","status":"delivered"}`)

	suite.Equal(http.StatusOK, rec.Code)
	suite.Equal("Order ORD1 updated to delivered", env.Message)
	suite.tasks.Wait()
	suite.Empty(suite.mailer.Sent())
}

func (suite *ServerTestSuite) TestHealth() {
	rec, _ := suite.do(http.MethodGet, "/health", "")

	suite.Equal(http.StatusOK, rec.Code)
	suite.Equal("Healthy", rec.Body.String())
}

func (suite *ServerTestSuite) TestSwaggerDocument() {
	rec, _ := suite.do(http.MethodGet, "/swagger/doc.json", "")

	suite.Equal(http.StatusOK, rec.Code)
	suite.Contains(rec.Body.String(), "Bloomify Orders API")
}

func (suite *ServerTestSuite) TestCORSPreflight() {
	req := httptest.NewRequest(http.MethodOptions, "/api/order", nil)
	req.Header.Set(echo.HeaderOrigin, allowedOrigin)
	req.Header.Set(echo.HeaderAccessControlRequestMethod, http.MethodPost)
	rec := httptest.NewRecorder()

	suite.echo.ServeHTTP(rec, req)

	suite.Equal(http.StatusNoContent, rec.Code)
	suite.Equal(allowedOrigin, rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
}

func TestServerTestSuite(t *testing.T) {
	suite.Run(t, new(ServerTestSuite))
}
