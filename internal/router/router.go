package router

import (
	"database/sql"
	"fmt"
	"net/http"

	"bistro-server/internal/config"
	"bistro-server/internal/handlers"
	"bistro-server/internal/middleware"
	"bistro-server/internal/payments/stripe"
	"bistro-server/internal/services"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

func SetupRouter(db *sql.DB, logger zerolog.Logger, cfg config.Config) *mux.Router {
	authService := services.NewAuthService(cfg.JWTSecret, logger)
	userService := services.NewUserService(db, logger)
	gateway := stripe.NewClient(stripe.Config{
		APIURL:    cfg.StripeAPIURL,
		SecretKey: cfg.StripeSecretKey,
	})

	guard := middleware.NewGuard(authService, userService, logger)

	authHandler := handlers.NewAuthHandler(authService, logger)
	userHandler := handlers.NewUserHandler(db, logger)
	menuHandler := handlers.NewMenuHandler(db, logger)
	cartHandler := handlers.NewCartHandler(db, logger)
	paymentHandler := handlers.NewPaymentHandler(db, gateway, logger)
	statsHandler := handlers.NewStatsHandler(db, logger)

	r := mux.NewRouter()

	rateLimiter := middleware.NewRateLimiter(rate.Limit(10), 20)

	r.Use(middleware.ErrorHandling(logger))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS())
	r.Use(rateLimiter.Middleware())

	authed := guard.Authentication()
	admin := guard.RequireAdmin()

	r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "Server is running very fast")
	}).Methods("GET")

	r.HandleFunc("/jwt", authHandler.IssueToken).Methods("POST")

	r.HandleFunc("/menu", menuHandler.ListMenu).Methods("GET")
	r.HandleFunc("/menu/{id}", menuHandler.GetMenuItem).Methods("GET")
	r.Handle("/menu", middleware.Chain(http.HandlerFunc(menuHandler.CreateMenuItem), authed, admin)).Methods("POST")
	r.Handle("/menu/{id}", middleware.Chain(http.HandlerFunc(menuHandler.UpdateMenuItem), authed, admin)).Methods("PATCH")
	r.Handle("/menu/{id}", middleware.Chain(http.HandlerFunc(menuHandler.DeleteMenuItem), authed, admin)).Methods("DELETE")

	r.HandleFunc("/reviews", menuHandler.ListReviews).Methods("GET")

	r.HandleFunc("/users", userHandler.Register).Methods("POST")
	r.Handle("/users", middleware.Chain(http.HandlerFunc(userHandler.ListUsers), authed, admin)).Methods("GET")
	r.Handle("/users/admin/{email}", middleware.Chain(http.HandlerFunc(userHandler.CheckAdmin), authed, middleware.RequireSelf("email"))).Methods("GET")
	r.Handle("/users/admin/{id}", middleware.Chain(http.HandlerFunc(userHandler.PromoteToAdmin), authed, admin)).Methods("PATCH")
	r.Handle("/users/{id}", middleware.Chain(http.HandlerFunc(userHandler.DeleteUser), authed, admin)).Methods("DELETE")

	r.HandleFunc("/carts", cartHandler.ListCart).Methods("GET")
	r.HandleFunc("/carts", cartHandler.AddCartItem).Methods("POST")
	r.HandleFunc("/carts/{id}", cartHandler.RemoveCartItem).Methods("DELETE")

	r.HandleFunc("/create-payment-intent", paymentHandler.CreateIntent).Methods("POST")
	r.HandleFunc("/payments", paymentHandler.Settle).Methods("POST")
	r.Handle("/payments/{email}", middleware.Chain(http.HandlerFunc(paymentHandler.PaymentHistory), authed, middleware.RequireSelf("email"))).Methods("GET")

	r.Handle("/admin-stats", middleware.Chain(http.HandlerFunc(statsHandler.AdminStats), authed, admin)).Methods("GET")
	r.Handle("/order-stats", middleware.Chain(http.HandlerFunc(statsHandler.OrderStats), authed, admin)).Methods("GET")

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	return r
}
