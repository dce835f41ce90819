package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/fastygo/crm/api/handler"
)

type Handlers struct {
	Customer *apiHandler.CustomerHandler
	Product  *apiHandler.ProductHandler
	Order    *apiHandler.OrderHandler
	Report   *apiHandler.ReportHandler
	Health   *apiHandler.HealthHandler
	JobLog   *apiHandler.JobLogHandler
}

func New(handlers Handlers, authMiddleware func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	// Queries
	r.GET("/api/v1/customers", handlers.Customer.List)
	r.GET("/api/v1/customers/count", handlers.Customer.Count)
	r.GET("/api/v1/customers/{id}", handlers.Customer.Get)
	r.GET("/api/v1/products", handlers.Product.List)
	r.GET("/api/v1/products/{id}", handlers.Product.Get)
	r.GET("/api/v1/orders", handlers.Order.List)
	r.GET("/api/v1/orders/count", handlers.Order.Count)
	r.GET("/api/v1/orders/{id}", handlers.Order.Get)
	r.GET("/api/v1/report", handlers.Report.Get)
	r.GET("/api/v1/jobs/{job}/log", handlers.JobLog.Recent)

	// Mutations
	r.POST("/api/v1/customers", authMiddleware(handlers.Customer.Create))
	r.POST("/api/v1/customers/bulk", authMiddleware(handlers.Customer.BulkCreate))
	r.POST("/api/v1/products", authMiddleware(handlers.Product.Create))
	r.POST("/api/v1/products/low-stock/replenish", authMiddleware(handlers.Product.ReplenishLowStock))
	r.POST("/api/v1/orders", authMiddleware(handlers.Order.Create))

	return r
}
