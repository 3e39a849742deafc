package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sayeedajmal/saudimart-core/api/controllers"
	"github.com/sayeedajmal/saudimart-core/api/middleware"
	"github.com/sayeedajmal/saudimart-core/pkg/config"
	"github.com/sayeedajmal/saudimart-core/pkg/logger"
	"github.com/sayeedajmal/saudimart-core/pkg/redis"
)

// NewRouter assembles the HTTP surface: health and metrics stay open, the
// catalog and quotation routes sit behind bearer auth.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	cache *redis.Client,
	registry *prometheus.Registry,
	composeService controllers.ComposeService,
	productReader controllers.ProductReader,
	quoteService controllers.QuoteService,
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
		r.Get("/ready", controllers.HealthReady(cfg, logg, cache))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))

		r.Route("/products", func(r chi.Router) {
			r.Post("/compose", controllers.ComposeProduct(composeService, logg))
			r.Get("/{productID}", controllers.GetProduct(productReader, logg))
		})

		r.Route("/quotes", func(r chi.Router) {
			r.Post("/", controllers.CreateQuote(quoteService, logg))
			r.Get("/", controllers.ListQuotes(quoteService, logg))
			r.Get("/{quoteID}", controllers.GetQuote(quoteService, logg))
			r.Post("/{quoteID}/status", controllers.ChangeQuoteStatus(quoteService, logg))
			r.Post("/{quoteID}/items", controllers.AddQuoteItem(quoteService, logg))
			r.Patch("/{quoteID}/items/{itemID}", controllers.ChangeQuoteItemQuantity(quoteService, logg))
			r.Delete("/{quoteID}/items/{itemID}", controllers.RemoveQuoteItem(quoteService, logg))
		})
	})

	return r
}
