package main

import (
	"net/http"

	"goal-tracker/config"
	"goal-tracker/handlers"
	"goal-tracker/middleware"
	"goal-tracker/realtime"

	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"
	"github.com/rs/cors"
)

func newSessionStore(auth config.AuthConfig) *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(auth.SessionSecret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
		Secure:   auth.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

func newRouter(cfg *config.Config, store handlers.Store, hub *realtime.Hub) http.Handler {
	tokens := middleware.NewTokens(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	sessionStore := newSessionStore(cfg.Auth)

	// Router oluştur
	r := mux.NewRouter()
	r.Use(middleware.Recover)
	r.Use(middleware.Logger)

	// API Router
	api := r.PathPrefix("/api").Subrouter()

	// Public API endpoints
	api.HandleFunc("/ping", handlers.Ping(cfg.PingMessage)).Methods("GET")
	api.HandleFunc("/auth/register", handlers.Register(store, tokens)).Methods("POST")
	api.HandleFunc("/auth/login", handlers.Login(store, tokens, sessionStore)).Methods("POST")
	api.HandleFunc("/auth/logout", handlers.Logout(sessionStore)).Methods("POST")
	api.HandleFunc("/auth/refresh", handlers.RefreshToken(store, tokens)).Methods("POST")

	api.HandleFunc("/currency/convert", handlers.ConvertCurrency()).Methods("GET")
	api.HandleFunc("/currency/exchange-rates", handlers.ExchangeRates()).Methods("GET")
	api.HandleFunc("/currency/rates", handlers.GetRates(store)).Methods("GET")
	api.HandleFunc("/leaderboard", handlers.GetLeaderboard(store)).Methods("GET")

	// Protected API endpoints
	protected := api.NewRoute().Subrouter()
	protected.Use(middleware.Auth(tokens, sessionStore))

	protected.HandleFunc("/auth/profile", handlers.GetMyProfile(store)).Methods("GET")
	protected.HandleFunc("/auth/profile", handlers.UpdateProfile(store)).Methods("PUT")
	protected.HandleFunc("/auth/password", handlers.ChangePassword(store)).Methods("PUT")

	protected.HandleFunc("/goals", handlers.GetGoals(store)).Methods("GET")
	protected.HandleFunc("/goals", handlers.CreateGoal(store)).Methods("POST")
	protected.HandleFunc("/goals/{goalId:[0-9]+}", handlers.GetGoal(store)).Methods("GET")
	protected.HandleFunc("/goals/{goalId:[0-9]+}", handlers.UpdateGoal(store, hub)).Methods("PUT")
	protected.HandleFunc("/goals/{goalId:[0-9]+}", handlers.DeleteGoal(store)).Methods("DELETE")

	protected.HandleFunc("/goals/{goalId:[0-9]+}/subgoals", handlers.GetSubgoals(store)).Methods("GET")
	protected.HandleFunc("/goals/{goalId:[0-9]+}/subgoals", handlers.CreateSubgoal(store)).Methods("POST")
	protected.HandleFunc("/goals/{goalId:[0-9]+}/subgoals/{subgoalId:[0-9]+}", handlers.UpdateSubgoal(store)).Methods("PUT")
	protected.HandleFunc("/goals/{goalId:[0-9]+}/subgoals/{subgoalId:[0-9]+}", handlers.DeleteSubgoal(store)).Methods("DELETE")

	protected.HandleFunc("/goals/{goalId:[0-9]+}/transactions", handlers.GetTransactions(store)).Methods("GET")
	protected.HandleFunc("/goals/{goalId:[0-9]+}/transactions", handlers.AddTransaction(store)).Methods("POST")

	protected.HandleFunc("/currency/rates", handlers.UpdateRate(store)).Methods("PUT")

	protected.HandleFunc("/achievements", handlers.GetAchievements(store)).Methods("GET")
	protected.HandleFunc("/achievements/check", handlers.CheckAchievements(store, hub)).Methods("POST")
	protected.HandleFunc("/statistics", handlers.GetStatistics(store)).Methods("GET")
	protected.HandleFunc("/statistics/update", handlers.UpdateStatistics(store)).Methods("POST")
	protected.HandleFunc("/calendar", handlers.GetCalendar(store)).Methods("GET")
	protected.HandleFunc("/activity", handlers.GetActivity(store)).Methods("GET")

	// WebSocket olay akışı
	protected.HandleFunc("/ws", handlers.Realtime(hub)).Methods("GET")

	// CORS ayarları
	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.HTTP.CORSOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposedHeaders:   []string{middleware.RequestIDHeader},
	})
	return c.Handler(r)
}
