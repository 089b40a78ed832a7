package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tair/inventory-ledger/api-gateway/config"
	"github.com/tair/inventory-ledger/api-gateway/middleware"
	"github.com/tair/inventory-ledger/api-gateway/proxy"
)

// RouteDefinition defines a route mapping
type RouteDefinition struct {
	Prefix      string
	Description string
	RequireAuth bool
}

// Routes holds all route definitions. Role-level authorization stays in
// the ledger service; the gateway only distinguishes public from
// authenticated prefixes.
var Routes = []RouteDefinition{
	{
		Prefix:      "/auth",
		Description: "Authentication endpoints (login, register)",
		RequireAuth: false,
	},
	{
		Prefix:      "/api/users",
		Description: "User profile",
		RequireAuth: true,
	},
	{
		Prefix:      "/api/products",
		Description: "Product catalog and low-stock alerts",
		RequireAuth: true,
	},
	{
		Prefix:      "/api/transactions",
		Description: "Stock movement ledger",
		RequireAuth: true,
	},
}

// SetupRoutes configures all routes in the gateway
func SetupRoutes(app *fiber.App, cfg *config.GatewayConfig) {
	reverseProxy := proxy.NewReverseProxy(cfg)

	// Gateway liveness
	app.Get("/health/live", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "alive",
		})
	})

	// Readiness: checks the backend service health endpoint
	app.Get("/health/ready", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 3*time.Second)
		defer cancel()

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, cfg.Service.BaseURL+cfg.Service.HealthCheck, nil)
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "unhealthy",
			})
		}

		resp, err := http.DefaultClient.Do(req)
		if err != nil || resp.StatusCode != http.StatusOK {
			if resp != nil {
				resp.Body.Close()
			}
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status":  "unhealthy",
				"service": cfg.Service.Name,
			})
		}
		resp.Body.Close()

		return c.JSON(fiber.Map{
			"status":  "ready",
			"service": cfg.Service.Name,
		})
	})

	// Service health passthrough
	app.Get("/health", func(c *fiber.Ctx) error {
		return reverseProxy.ProxyRequest(c)
	})

	// API routes overview
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Inventory Ledger Gateway",
			"version": "1.0.0",
			"routes":  Routes,
		})
	})

	for _, route := range Routes {
		registerServiceRoutes(app, route, reverseProxy)
	}
}

// registerServiceRoutes registers all HTTP methods for a route prefix
func registerServiceRoutes(app *fiber.App, route RouteDefinition, proxyHandler *proxy.ReverseProxy) {
	handler := func(c *fiber.Ctx) error {
		return proxyHandler.ProxyRequest(c)
	}

	var middlewares []fiber.Handler
	if route.RequireAuth {
		middlewares = append(middlewares, middleware.AuthMiddleware())
	}

	group := app.Group(route.Prefix, middlewares...)
	group.All("/*", handler)

	if len(middlewares) > 0 {
		app.All(route.Prefix, append(middlewares, handler)...)
	} else {
		app.All(route.Prefix, handler)
	}
}
