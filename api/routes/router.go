package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/assoumso/au-djassa/api/controllers"
	"github.com/assoumso/au-djassa/api/middleware"
	"github.com/assoumso/au-djassa/internal/assistant"
	checkoutflow "github.com/assoumso/au-djassa/internal/checkout"
	"github.com/assoumso/au-djassa/internal/reports"
	"github.com/assoumso/au-djassa/internal/session"
	"github.com/assoumso/au-djassa/internal/state"
	"github.com/assoumso/au-djassa/internal/syncer"
	"github.com/assoumso/au-djassa/pkg/config"
	"github.com/assoumso/au-djassa/pkg/enums"
	"github.com/assoumso/au-djassa/pkg/logger"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	store *state.Store,
	engine *syncer.Engine,
	sessions *session.Manager,
	checkouts *checkoutflow.Registry,
	overview *reports.Builder,
	assistantSvc *assistant.Service,
	gatherer prometheus.Gatherer,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg))
	})

	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Post("/api/v1/session/bootstrap", controllers.SessionBootstrap(sessions, cfg.JWT, logg))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, sessions, logg))

		r.Route("/session", func(r chi.Router) {
			r.Get("/", controllers.SessionGet(sessions, logg))
			r.Post("/role", controllers.SessionSelectRole(sessions, cfg.JWT, logg))
			r.Post("/registration", controllers.SessionGoToRegistration(sessions, cfg.JWT, logg))
			r.Post("/landing", controllers.SessionBackToLanding(sessions, cfg.JWT, logg))
			r.Post("/login", controllers.SupplierLogin(sessions, cfg.JWT, logg))
			r.Post("/register", controllers.SupplierRegister(sessions, cfg.JWT, logg))
			r.Post("/logout", controllers.SessionLogout(sessions, cfg.JWT, logg))
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(store, logg))
			r.Get("/{productId}", controllers.GetProduct(store, logg))
		})
		r.Get("/suppliers", controllers.ListSuppliers(store, logg))

		r.Route("/checkout", func(r chi.Router) {
			r.Post("/", controllers.CheckoutStart(checkouts, store, logg))
			r.Get("/", controllers.CheckoutState(checkouts, logg))
			r.Post("/details", controllers.CheckoutDetails(checkouts, logg))
			r.Post("/payment", controllers.CheckoutPayment(checkouts, logg))
			r.Post("/confirm", controllers.CheckoutConfirm(checkouts, logg))
			r.Delete("/", controllers.CheckoutAbandon(checkouts, logg))
		})

		r.Post("/assistant/inquiry", controllers.AssistantDraftInquiry(assistantSvc, logg))

		r.Route("/supplier", func(r chi.Router) {
			r.Use(middleware.RequireRole(string(enums.UserRoleSupplier), logg))
			r.Get("/products", controllers.SupplierProducts(store, logg))
			r.Post("/products", controllers.SupplierCreateProduct(engine, store, logg))
			r.Delete("/products/{productId}", controllers.SupplierDeleteProduct(engine, store, logg))
			r.Get("/orders", controllers.SupplierOrders(store, logg))
			r.Post("/orders/{orderId}/status", controllers.SupplierUpdateOrderStatus(engine, store, logg))
			r.Post("/assistant/describe-product", controllers.AssistantDescribeProduct(assistantSvc, logg))
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireRole(string(enums.UserRoleAdmin), logg))
			r.Get("/overview", controllers.AdminOverview(overview, logg))
			r.Get("/products", controllers.AdminProducts(store, logg))
			r.Get("/suppliers", controllers.AdminSuppliers(store, logg))
			r.Get("/orders", controllers.AdminOrders(store, logg))
			r.Post("/products/{productId}/promote", controllers.AdminToggleProductPromotion(engine, logg))
			r.Post("/suppliers/{supplierId}/verify", controllers.AdminToggleSupplierVerification(engine, logg))
			r.Delete("/products/{productId}", controllers.AdminDeleteProduct(engine, store, logg))
			r.Post("/orders/{orderId}/status", controllers.AdminUpdateOrderStatus(engine, store, logg))
			r.Post("/assistant/trends", controllers.AssistantAnalyzeTrends(assistantSvc, store, logg))
		})
	})

	return r
}
