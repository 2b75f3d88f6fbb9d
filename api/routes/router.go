package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/amara-labs/zawadi-backend/api/controllers"
	cartcontrollers "github.com/amara-labs/zawadi-backend/api/controllers/cart"
	"github.com/amara-labs/zawadi-backend/api/middleware"
	checkoutsvc "github.com/amara-labs/zawadi-backend/internal/checkout"
	"github.com/amara-labs/zawadi-backend/pkg/config"
	"github.com/amara-labs/zawadi-backend/pkg/logger"
)

// NewRouter assembles the HTTP surface of the cart service.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	cartManager cartcontrollers.Manager,
	products cartcontrollers.ProductLookup,
	checkoutService checkoutsvc.Service,
	snapshotPinger controllers.Pinger,
	gatherer prometheus.Gatherer,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(nil),
	)

	r.Get("/healthz", controllers.HealthLive(cfg))
	r.Get("/readyz", controllers.HealthReady(cfg, logg, snapshotPinger))

	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Session(logg))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartcontrollers.Fetch(cartManager, logg))
			r.Delete("/", cartcontrollers.Clear(cartManager, logg))
			r.Post("/items", cartcontrollers.AddItem(cartManager, products, logg))
			r.Patch("/items/{itemID}", cartcontrollers.UpdateItem(cartManager, logg))
			r.Delete("/items/{itemID}", cartcontrollers.RemoveItem(cartManager, logg))
			r.Post("/validate", cartcontrollers.Validate(cartManager, logg))
			r.Get("/shipping", cartcontrollers.Shipping(cartManager, logg))
			r.Get("/shipping/options", cartcontrollers.ShippingOptions(cartManager, logg))
			r.Get("/export", cartcontrollers.Export(cartManager, logg))
			r.Post("/import", cartcontrollers.Import(cartManager, logg))
		})

		r.Post("/checkout", controllers.Checkout(checkoutService, logg))
	})

	return r
}
