package cmd

import (
	"context"
	"log/slog"

	httpin "bloomify/internal/adapters/in/http"
	"bloomify/internal/adapters/out/memory/orderrepo"
	"bloomify/internal/adapters/out/realtime"
	"bloomify/internal/adapters/out/smtp"
	"bloomify/internal/core/application/notifications"
	"bloomify/internal/core/application/usecases/commands"
	"bloomify/internal/core/application/usecases/queries"
	"bloomify/internal/core/domain/model/kernel"
	"bloomify/internal/core/domain/model/order"
	"bloomify/internal/jobs"
	"bloomify/internal/pkg/background"

	"github.com/labstack/echo/v4"
)

type CompositionRoot struct {
	cfg    Config
	logger *slog.Logger

	orderRepo *orderrepo.MemoryOrderRepository
	ids       *kernel.OrderIDGenerator
	hub       *realtime.Hub
	gateway   *notifications.Gateway
	tasks     *background.Group
}

func NewCompositionRoot(cfg Config, logger *slog.Logger) (*CompositionRoot, error) {
	ids, err := kernel.NewOrderIDGenerator(kernel.DefaultOrderIDLength)
	if err != nil {
		return nil, err
	}

	hub := realtime.NewHub(cfg.AllowedOrigins, logger)
	mailer := smtp.NewMailer(smtp.Config{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.EmailUser,
		Password: cfg.EmailPass,
	})

	return &CompositionRoot{
		cfg:       cfg,
		logger:    logger,
		orderRepo: orderrepo.NewMemoryOrderRepository(),
		ids:       ids,
		hub:       hub,
		gateway:   notifications.NewGateway(mailer, hub, cfg.EmailUser, logger),
		tasks:     background.NewGroup(logger),
	}, nil
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderRepo, c.ids, c.gateway, c.tasks)
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	return commands.NewUpdateOrderStatusCommandHandler(c.gateway, c.tasks)
}

func (c *CompositionRoot) CreatePatchOrderCommandHandler() commands.PatchOrderCommandHandler {
	return commands.NewPatchOrderCommandHandler(c.orderRepo, order.ParsePatchPolicy(c.cfg.PatchStrict))
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.orderRepo)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.hub, c.cfg.HeartbeatSchedule, c.tasks, c.logger)
}

// CreateRouter wires the HTTP API, the websocket endpoint and the docs.
func (c *CompositionRoot) CreateRouter() *echo.Echo {
	server := httpin.NewServer(
		c.CreateCreateOrderCommandHandler(),
		c.CreateUpdateOrderStatusCommandHandler(),
		c.CreatePatchOrderCommandHandler(),
		c.CreateGetOrderQueryHandler(),
		c.logger,
	)
	return httpin.NewRouter(server, c.hub, c.cfg.AllowedOrigins, c.logger)
}

// Hub exposes the real-time hub so shutdown can disconnect subscribers.
func (c *CompositionRoot) Hub() *realtime.Hub {
	return c.hub
}

// Tasks exposes the notification goroutines so shutdown can drain them.
func (c *CompositionRoot) Tasks() *background.Group {
	return c.tasks
}

// Shutdown disconnects websocket subscribers, stops e and drains pending
// notifications, all bounded by ctx. Only the server's own failure is
// returned: notifications that outlast ctx are abandoned with a warning.
func (c *CompositionRoot) Shutdown(ctx context.Context, e *echo.Echo) error {
	c.hub.Close()
	serverErr := e.Shutdown(ctx)
	// The group logs whatever it abandons.
	_ = c.tasks.Shutdown(ctx)
	return serverErr
}
