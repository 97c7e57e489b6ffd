package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/vitorsz/shop-users-api/docs"
	"github.com/vitorsz/shop-users-api/internal/api/auth"
	"github.com/vitorsz/shop-users-api/internal/api/health"
	"github.com/vitorsz/shop-users-api/internal/api/user"
	"github.com/vitorsz/shop-users-api/internal/config"
	httpSwagger "github.com/swaggo/http-swagger"
)

func SetupRoutes(database *mongo.Database, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300, // max time in seconds for OPTIONS preflight response cache
	})

	r.Use(corsMiddleware.Handler)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.StripSlashes)
	r.Use(middleware.Timeout(2 * time.Minute))

	// init services & handlers
	store := user.NewUserService(database)
	authService := auth.NewAuthService(store, cfg.JWTSecret, cfg.TokenTTL)
	userHandler := user.NewHandler(store)
	authHandler := auth.NewAuthHandler(authService)

	r.Get("/health", health.HealthHandler)

	r.Route("/users", func(r chi.Router) {
		r.Get("/", userHandler.Welcome)

		// public auth routes
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)

		// protected routes
		r.Group(func(r chi.Router) {
			r.Use(auth.AuthMiddleware(authService))
			r.Get("/auth-locked", authHandler.AuthLocked)
		})

		r.Get("/{id}", userHandler.GetUser)
		r.Put("/{id}", userHandler.UpdateUser)
		r.Delete("/{id}", userHandler.DeleteUser)
		r.Get("/{id}/cart", userHandler.GetCart)
	})

	// init swagger
	r.Get("/docs", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/docs/index.html", http.StatusMovedPermanently)
	})
	r.Get("/docs/*", httpSwagger.WrapHandler)

	return r
}
