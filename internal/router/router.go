package router

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/taller-pos/api/internal/blob"
	"github.com/taller-pos/api/internal/bsale"
	"github.com/taller-pos/api/internal/config"
	"github.com/taller-pos/api/internal/database"
	"github.com/taller-pos/api/internal/handler"
	mw "github.com/taller-pos/api/internal/middleware"
	"github.com/taller-pos/api/internal/notify"
	"github.com/taller-pos/api/internal/service"
	"github.com/taller-pos/api/internal/ws"
)

// New creates a Chi router with all application routes wired up.
// Applies authentication, branch scoping, and role-based middleware as needed.
func New(cfg *config.Config, queries *database.Queries, pool *pgxpool.Pool, hub *ws.Hub, mailer *notify.Mailer, validator *bsale.Client, uploader blob.Uploader) chi.Router {
	r := chi.NewRouter()

	// Standard middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{
			"http://localhost:5173", // dev frontend
		},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300, // 5 minutes
	}))

	// Public routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok","version":"1.0.0"}`))
	})

	// WebSocket route (handles auth internally via query param)
	r.Get("/ws/branches/{bid}/orders", func(w http.ResponseWriter, r *http.Request) {
		ws.ServeWS(hub, cfg.JWTSecret, w, r)
	})

	// Protected routes (require authentication)
	r.Group(func(r chi.Router) {
		r.Use(mw.Authenticate(cfg.JWTSecret))

		// Bsale document validation (not branch-scoped; accounts are shared)
		bsaleHandler := handler.NewBsaleHandler(validator)
		r.Route("/documents", bsaleHandler.RegisterRoutes)

		// Branch-scoped routes
		r.Route("/branches/{bid}", func(r chi.Router) {
			r.Use(mw.RequireBranch)

			// Customers
			customerHandler := handler.NewCustomerHandler(queries)
			r.Route("/customers", customerHandler.RegisterRoutes)

			// Categories
			categoryHandler := handler.NewCategoryHandler(queries)
			r.Route("/categories", categoryHandler.RegisterRoutes)

			// Products
			productHandler := handler.NewProductHandler(queries)
			r.Route("/products", productHandler.RegisterRoutes)

			// Service catalog
			catalogHandler := handler.NewCatalogHandler(queries)
			r.Route("/catalog", catalogHandler.RegisterRoutes)

			// Reception checklist template
			checklistHandler := handler.NewChecklistHandler(queries)
			r.Route("/checklist", checklistHandler.RegisterRoutes)

			// Orders
			newOrderStore := func(db database.DBTX) service.OrderStore {
				return database.New(db)
			}
			orderService := service.NewOrderService(pool, newOrderStore)
			orderHandler := handler.NewOrderHandler(orderService, queries, hub)
			r.Route("/orders", func(r chi.Router) {
				orderHandler.RegisterRoutes(r)

				// Deleting an order erases intake history; ADMIN only.
				r.Group(func(r chi.Router) {
					r.Use(mw.RequireRole("ADMIN"))
					r.Delete("/{id}", orderHandler.Delete)
				})

				// Notes (nested under orders)
				noteHandler := handler.NewNoteHandler(queries)
				r.Route("/{id}/notes", noteHandler.RegisterRoutes)

				// Printable documents (nested under orders)
				documentHandler := handler.NewDocumentHandler(queries, uploader)
				documentHandler.RegisterRoutes(r)

				// Customer notifications (nested under orders)
				notifyHandler := handler.NewNotifyHandler(queries, mailer)
				r.Route("/{id}/notifications", notifyHandler.RegisterRoutes)
			})

			// POS sales
			newSaleStore := func(db database.DBTX) service.SaleStore {
				return database.New(db)
			}
			saleService := service.NewSaleService(pool, newSaleStore)
			saleHandler := handler.NewSaleHandler(saleService, queries, hub)
			r.Route("/sales", saleHandler.RegisterRoutes)

			// Reports (branch-scoped)
			reportHandler := handler.NewReportHandler(queries)
			r.Route("/reports", reportHandler.RegisterRoutes)
		})
	})

	log.Println("Router initialized with all handlers")
	return r
}
