package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/seedkitapp/seedkit-backend/api/controllers"
	"github.com/seedkitapp/seedkit-backend/api/middleware"
	"github.com/seedkitapp/seedkit-backend/internal/collections"
	"github.com/seedkitapp/seedkit-backend/internal/session"
	"github.com/seedkitapp/seedkit-backend/pkg/config"
	"github.com/seedkitapp/seedkit-backend/pkg/enums"
	"github.com/seedkitapp/seedkit-backend/pkg/kv"
	"github.com/seedkitapp/seedkit-backend/pkg/logger"
)

// NewRouter wires the influencer storefront surface and the admin surface
// onto one chi router. Both groups ride the same session middleware; the
// role check is what separates them.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	substrate kv.Substrate,
	collectionsService collections.Service,
	sessions *session.Manager,
	metricsHandler http.Handler,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, substrate))
	})

	if metricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", metricsHandler)
	}

	r.Route("/api/v1/session", func(r chi.Router) {
		r.Post("/", controllers.SessionLogin(sessions, logg))
		r.Post("/logout", controllers.SessionLogout(sessions, logg))
	})

	r.Route("/api/v1/me", func(r chi.Router) {
		r.Use(middleware.Auth(sessions, logg))
		r.Use(middleware.RequireRole(enums.ActorRoleInfluencer, logg))

		r.Get("/collection", controllers.MyCollection(collectionsService, logg))
		r.Get("/products/{productID}", controllers.MyProduct(collectionsService, logg))
		r.Post("/view", controllers.SessionViewUpdate(sessions, logg))
		r.Get("/cart", controllers.MyCart(sessions, logg))
		r.Post("/cart/items", controllers.CartItemAdd(sessions, logg))
		r.Delete("/cart/items/{index}", controllers.CartItemRemove(sessions, logg))
		r.Post("/checkout", controllers.CheckoutSubmit(sessions, logg))
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(sessions, logg))
		r.Use(middleware.RequireRole(enums.ActorRoleAdmin, logg))

		r.Route("/collections", func(r chi.Router) {
			r.Get("/", controllers.CollectionList(collectionsService, logg))
			r.Post("/", controllers.CollectionCreate(collectionsService, logg))

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", controllers.CollectionGet(collectionsService, logg))
				r.Patch("/", controllers.CollectionUpdate(collectionsService, logg))
				r.Delete("/", controllers.CollectionDelete(collectionsService, logg))
				r.Post("/activate", controllers.CollectionActivate(collectionsService, logg))

				r.Post("/lookbook", controllers.LookbookUpload(collectionsService, cfg.Media, logg))
				r.Delete("/lookbook/{index}", controllers.LookbookRemove(collectionsService, logg))

				r.Route("/products", func(r chi.Router) {
					r.Post("/", controllers.ProductCreate(collectionsService, cfg.Media, logg))

					r.Route("/{pid}", func(r chi.Router) {
						r.Patch("/", controllers.ProductUpdate(collectionsService, logg))
						r.Delete("/", controllers.ProductDelete(collectionsService, logg))
						r.Post("/images", controllers.ProductImagesUpload(collectionsService, cfg.Media, logg))
						r.Delete("/images/{index}", controllers.ProductImageRemove(collectionsService, logg))
					})
				})

				r.Route("/entries", func(r chi.Router) {
					r.Get("/", controllers.EntryList(collectionsService, logg))
					r.Get("/export", controllers.EntryExport(collectionsService, logg))

					r.Route("/{eid}", func(r chi.Router) {
						r.Patch("/", controllers.EntryUpdate(collectionsService, logg))
						r.Post("/duplicate", controllers.EntryDuplicate(collectionsService, logg))
						r.Delete("/", controllers.EntryDelete(collectionsService, logg))
					})
				})
			})
		})

		r.Patch("/settings/admin-code", controllers.AdminCodeUpdate(collectionsService, logg))
		r.Get("/storage", controllers.StorageStatus(collectionsService, logg))
	})

	return r
}
