package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"mechapres/internal/auth"
	"mechapres/internal/calc/assessment"
	"mechapres/internal/calc/demand"
	"mechapres/internal/calc/economics"
	"mechapres/internal/calc/export"
	"mechapres/internal/calc/feasibility"
	"mechapres/internal/calc/performance"
	"mechapres/internal/calc/report"
	"mechapres/internal/factors"
	"mechapres/internal/mail"
	"mechapres/internal/settings"
)

var wg sync.WaitGroup

func HandleList(router *mux.Router) {
	tokenKey := os.Getenv("TOKEN_KEY")
	if tokenKey == "" {
		log.Fatal("TOKEN_KEY environment variable is not set")
	}
	adminUser := os.Getenv("ADMIN_USER")
	adminHash := os.Getenv("ADMIN_PASSWORD_HASH")
	if adminUser == "" || adminHash == "" {
		log.Fatal("ADMIN_USER and ADMIN_PASSWORD_HASH environment variables are not set")
	}

	authEnv := &auth.Authenv{JWTkey: []byte(tokenKey), AdminUser: adminUser, AdminHash: adminHash}
	defaults := settings.NewStore(economics.Investment{})

	var mailer report.Mailer
	if cfg, err := mail.FromEnv(); err != nil {
		log.Println("Email delivery disabled:", err)
	} else {
		mailer = mail.NewClient(cfg)
	}

	feasibilityH := &feasibility.Handler{}
	performanceH := &performance.Handler{}
	economicsH := &economics.Handler{}
	demandH := &demand.Handler{}
	factorsH := &factors.Handler{}
	assessmentH := &assessment.Handler{Defaults: defaults}
	reportH := &report.Handler{Defaults: defaults, Mail: mailer}
	exportH := &export.Handler{Defaults: defaults}
	settingsH := &settings.Handler{Store: defaults}

	limiter := auth.NewIPRateLimiter(5, 10)
	// PDF and workbook generation is the expensive path.
	reportLimiter := auth.NewIPRateLimiter(0.2, 3)

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	api := router.PathPrefix("/api").Subrouter()
	api.Use(limiter.LimitMiddleware)

	api.HandleFunc("/factors", factorsH.List).Methods("GET")
	api.HandleFunc("/calc/feasibility", feasibilityH.Calc).Methods("POST")
	api.HandleFunc("/calc/performance", performanceH.Calc).Methods("POST")
	api.HandleFunc("/calc/economics", economicsH.Calc).Methods("POST")
	api.HandleFunc("/calc/demand", demandH.Calc).Methods("POST")
	api.HandleFunc("/assessment", assessmentH.Run).Methods("POST")

	api.Handle("/report/quick", reportLimiter.LimitMiddleware(http.HandlerFunc(reportH.Quick))).Methods("POST")
	api.Handle("/report/detailed", reportLimiter.LimitMiddleware(http.HandlerFunc(reportH.Detailed))).Methods("POST")
	api.Handle("/report/email", reportLimiter.LimitMiddleware(http.HandlerFunc(reportH.Email))).Methods("POST")
	api.Handle("/export/cashflow", reportLimiter.LimitMiddleware(http.HandlerFunc(exportH.CashFlow))).Methods("POST")

	// Login must be reachable without a session, so it sits outside the
	// secured subrouter.
	api.HandleFunc("/admin/login", authEnv.LoginHandler).Methods("POST")

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(authEnv.AuthMiddleware)
	admin.HandleFunc("/investment", settingsH.Get).Methods("GET")
	admin.HandleFunc("/investment", settingsH.Update).Methods("PUT")
}

func corsOrigins() []string {
	env := os.Getenv("CORS_ORIGINS")
	if env == "" {
		return []string{"*"}
	}
	var origins []string
	for _, o := range strings.Split(env, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using the environment as is")
	}

	router := mux.NewRouter()
	HandleList(router)

	c := cors.New(cors.Options{
		AllowedOrigins:   corsOrigins(),
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	server := &http.Server{
		Addr:    ":" + port,
		Handler: c.Handler(router),
	}

	log.Println("Starting server on :" + port)
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("Server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutdown signal received, closing active connections")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")

	wg.Wait()
}
