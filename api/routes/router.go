package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mariodelgado/aquatrack-backend/api/controllers"
	"github.com/mariodelgado/aquatrack-backend/api/middleware"
	customersvc "github.com/mariodelgado/aquatrack-backend/internal/customers"
	hrsvc "github.com/mariodelgado/aquatrack-backend/internal/hr"
	inventorysvc "github.com/mariodelgado/aquatrack-backend/internal/inventory"
	paymentsvc "github.com/mariodelgado/aquatrack-backend/internal/payments"
	productionsvc "github.com/mariodelgado/aquatrack-backend/internal/production"
	recipesvc "github.com/mariodelgado/aquatrack-backend/internal/recipes"
	salessvc "github.com/mariodelgado/aquatrack-backend/internal/sales"
	statssvc "github.com/mariodelgado/aquatrack-backend/internal/stats"
	"github.com/mariodelgado/aquatrack-backend/internal/store"
	"github.com/mariodelgado/aquatrack-backend/pkg/config"
	"github.com/mariodelgado/aquatrack-backend/pkg/logger"
)

// Services groups everything the router needs wired in.
type Services struct {
	Inventory  inventorysvc.Service
	Sales      salessvc.Service
	Production productionsvc.Service
	Recipes    recipesvc.Service
	Customers  customersvc.Service
	Payments   paymentsvc.Service
	Stats      statssvc.Service
	HR         hrsvc.Service
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	st *store.Store,
	gatherer prometheus.Gatherer,
	svcs Services,
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
		r.Get("/ready", controllers.HealthReady(cfg, logg, st))
	})

	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/inventory", func(r chi.Router) {
			r.Post("/receive", controllers.AddStock(svcs.Inventory, logg))
			r.Get("/", controllers.ListInventory(svcs.Inventory, logg))
			r.Get("/low-stock", controllers.LowStock(svcs.Inventory, logg))
		})

		r.Post("/sales", controllers.SellStock(svcs.Sales, logg))
		r.Get("/transactions", controllers.ListTransactions(svcs.Sales, logg))

		r.Route("/production", func(r chi.Router) {
			r.Post("/", controllers.RunProduction(svcs.Production, svcs.Recipes, logg))
			r.Get("/", controllers.ListProduction(svcs.Production, logg))
		})

		r.Route("/recipes", func(r chi.Router) {
			r.Post("/", controllers.AddRecipe(svcs.Recipes, logg))
			r.Get("/", controllers.ListRecipes(svcs.Recipes, logg))
		})

		r.Route("/customers", func(r chi.Router) {
			r.Post("/", controllers.RegisterCustomer(svcs.Customers, logg))
			r.Get("/", controllers.ListCustomers(svcs.Customers, logg))
			r.Post("/payments", controllers.CollectPayment(svcs.Payments, logg))
		})

		r.Get("/stats", controllers.Stats(svcs.Stats, logg))

		r.Route("/employees", func(r chi.Router) {
			r.Post("/", controllers.AddEmployee(svcs.HR, logg))
			r.Get("/", controllers.ListEmployees(svcs.HR, logg))
		})
	})

	return r
}
