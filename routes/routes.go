package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fadhlanhapp/trust-ledger/handlers"
	"github.com/fadhlanhapp/trust-ledger/live"
)

const livePath = "/public/live"

// Dependencies holds everything the routes are wired to
type Dependencies struct {
	Trusts     *handlers.TrustHandler
	Payments   *handlers.PaymentHandler
	Public     *handlers.PublicHandler
	Audit      *handlers.AuditHandler
	Hub        *live.Hub
	DB         handlers.Pinger
	Gatherer   prometheus.Gatherer
	AdminToken string
}

// SetupRoutes configures all API routes for the application
func SetupRoutes(router *gin.Engine, deps Dependencies) {
	router.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{livePath})))

	// Ops endpoints
	router.GET("/healthz", handlers.Healthz(deps.DB))
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))

	// Admin endpoints
	admin := router.Group("/", handlers.AdminAuth(deps.AdminToken))
	{
		admin.POST("/trusts", deps.Trusts.CreateTrust)
		admin.GET("/trusts/:id", deps.Trusts.GetTrust)
		admin.POST("/bills", deps.Trusts.CreateBill)
		admin.GET("/audit", deps.Audit.ListAudit)
	}

	// Payment endpoints
	payments := router.Group("/payments")
	{
		payments.POST("/create-order", deps.Payments.CreateOrder)
		payments.POST("/webhook", deps.Payments.Webhook)
	}

	// Public transparency endpoints
	public := router.Group("/public", cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length", "Content-Disposition"},
		MaxAge:        12 * time.Hour,
	}))
	{
		public.GET("/trusts", deps.Trusts.ListTrusts)
		public.GET("/trusts/:id/bills", deps.Trusts.ListBills)
		public.GET("/bills/:id", deps.Public.GetBill)
		public.GET("/bills/:id/export", deps.Public.ExportBill)
		public.GET("/bills/:id/qrcode", deps.Public.BillQRCode)
		public.GET("/verify/:payment_id", deps.Public.VerifyPayment)
		public.GET("/live", handlers.LiveFeed(deps.Hub))
	}
}
