package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"sellerdesk/internal/aggregate"
	"sellerdesk/internal/api"
	"sellerdesk/internal/config"
	"sellerdesk/internal/handlers"
	"sellerdesk/internal/realtime"
	"sellerdesk/internal/store"
)

func main() {
	// Configure slog as early as possible in main
	handlerOpts := &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}
	// Using TextHandler for console readability; for production JSONHandler might be preferred.
	logger := slog.New(slog.NewTextHandler(os.Stdout, handlerOpts))
	slog.SetDefault(logger)

	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// 2. Init the snapshot cache
	db, err := store.NewStore(cfg.CachePath)
	if err != nil {
		slog.Error("Failed to initialize store", "error", err)
		os.Exit(1)
	}
	if err := db.InitSchema(); err != nil {
		slog.Error("Failed to initialize schema", "error", err)
		os.Exit(1)
	}

	// 3. Realtime hub: stream orders/products/customers/buyers, seeded from
	// the cache so the dashboard renders before the first event arrives.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub, err := realtime.NewHub(ctx, cfg.SellerID, cfg.FirebaseDBURL, cfg.FirebaseCreds, cfg.ListenerBackoff, db)
	if err != nil {
		slog.Error("Failed to initialize realtime hub", "error", err)
		os.Exit(1)
	}
	hub.Start(ctx)

	// 4. Session Setup
	sessionStore := sessions.NewCookieStore(cfg.SessionKey)
	sessionStore.Options.HttpOnly = true
	sessionStore.Options.Secure = cfg.CookieSecure // Configurable for production
	sessionStore.Options.SameSite = http.SameSiteLaxMode
	sessionStore.Options.Path = "/"
	if cfg.CookieDomain != "" {
		sessionStore.Options.Domain = cfg.CookieDomain
	}

	// 5. Init Templates
	templates := handlers.NewTemplateCache()
	if err := templates.Load("templates"); err != nil {
		slog.Error("Failed to load templates", "error", err)
		os.Exit(1)
	}

	// 6. Setup Handlers
	base := &handlers.Base{
		API:          api.NewClient(cfg.APIBaseURL),
		Hub:          hub,
		Templates:    templates,
		SessionStore: sessionStore,
		Selector:     &aggregate.Selector{},
	}
	authHandler := &handlers.AuthHandler{Base: base}
	dashboardHandler := &handlers.DashboardHandler{Base: base}
	orderHandler := &handlers.OrderHandler{Base: base}
	productHandler := &handlers.ProductHandler{Base: base}
	customerHandler := &handlers.CustomerHandler{Base: base}
	companyHandler := &handlers.CompanyHandler{Base: base}
	paymentHandler := &handlers.PaymentHandler{Base: base}
	integrationHandler := &handlers.IntegrationHandler{Base: base}
	automationHandler := &handlers.AutomationHandler{Base: base}
	cancellationHandler := &handlers.CancellationHandler{Base: base}

	mux := http.NewServeMux()

	// Static Files
	fileServer := http.FileServer(http.Dir("./static"))
	mux.Handle("/static/", http.StripPrefix("/static", fileServer))

	// Prometheus metrics
	mux.Handle("/metrics", promhttp.Handler())

	// Rate Limiter on mutating routes
	rateLimiter := handlers.NewRateLimiter(1 * time.Second)

	// Public Routes
	mux.HandleFunc("/login", authHandler.LoginGet)
	mux.HandleFunc("POST /login", rateLimiter.Middleware(authHandler.LoginPost))
	mux.HandleFunc("/logout", authHandler.Logout)

	// Protected Routes
	auth := base.AuthMiddleware
	mux.HandleFunc("/{$}", auth(dashboardHandler.Dashboard))

	mux.HandleFunc("/onboarding", auth(authHandler.OnboardingGet))
	mux.HandleFunc("POST /onboarding", auth(authHandler.OnboardingPost))

	mux.HandleFunc("/orders", auth(orderHandler.ListOrders))
	mux.HandleFunc("/orders/compose", auth(orderHandler.ComposeUpdate))
	mux.HandleFunc("POST /orders/update", auth(rateLimiter.Middleware(orderHandler.SubmitUpdate)))

	mux.HandleFunc("/products", auth(productHandler.ListProducts))
	mux.HandleFunc("/products/new", auth(productHandler.NewProductForm))
	mux.HandleFunc("/products/edit", auth(productHandler.EditProductForm))
	mux.HandleFunc("POST /products/create", auth(rateLimiter.Middleware(productHandler.CreateProduct)))
	mux.HandleFunc("POST /products/update", auth(rateLimiter.Middleware(productHandler.UpdateProduct)))
	mux.HandleFunc("POST /products/delete", auth(rateLimiter.Middleware(productHandler.DeleteProduct)))

	mux.HandleFunc("/customers", auth(customerHandler.ListCustomers))
	mux.HandleFunc("/customers/chat", auth(customerHandler.Chat))
	mux.HandleFunc("POST /customers/send", auth(rateLimiter.Middleware(customerHandler.SendMessage)))

	mux.HandleFunc("/company", auth(companyHandler.CompanyForm))
	mux.HandleFunc("POST /company", auth(rateLimiter.Middleware(companyHandler.SaveCompany)))

	mux.HandleFunc("/payments", auth(paymentHandler.Payments))

	mux.HandleFunc("/integrations", auth(integrationHandler.Integrations))
	mux.HandleFunc("POST /integrations/razorpay", auth(rateLimiter.Middleware(integrationHandler.ConnectRazorpay)))
	mux.HandleFunc("POST /integrations/razorpay/disconnect", auth(rateLimiter.Middleware(integrationHandler.DisconnectRazorpay)))
	mux.HandleFunc("POST /integrations/whatsapp", auth(rateLimiter.Middleware(integrationHandler.SetWhatsApp)))

	mux.HandleFunc("/automation", auth(automationHandler.Automation))
	mux.HandleFunc("POST /automation/add", auth(automationHandler.AddBlock))
	mux.HandleFunc("POST /automation/remove", auth(automationHandler.RemoveBlock))
	mux.HandleFunc("POST /automation/move", auth(automationHandler.MoveBlock))
	mux.HandleFunc("POST /automation/reset", auth(automationHandler.ResetWorkflow))
	mux.HandleFunc("POST /automation/save", auth(rateLimiter.Middleware(automationHandler.SaveWorkflow)))

	mux.HandleFunc("/cancellations", auth(cancellationHandler.ListCancellations))
	mux.HandleFunc("/cancellations/compose", auth(cancellationHandler.ComposeResolution))
	mux.HandleFunc("POST /cancellations/resolve", auth(rateLimiter.Middleware(cancellationHandler.Resolve)))

	// 7. Middleware Setup
	CSRF := csrf.Protect(
		cfg.CSRFKey,
		csrf.Secure(cfg.CookieSecure), // Configurable for production
		csrf.TrustedOrigins([]string{"localhost:" + cfg.Port, "127.0.0.1:" + cfg.Port, "localhost", "127.0.0.1"}),
	)

	// Chain: Logger -> Security Headers -> CSRF -> Mux
	handler := handlers.LoggingMiddleware(
		handlers.SecurityHeadersMiddleware(
			CSRF(mux),
		),
	)

	// 8. Start Server with Graceful Shutdown
	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("Server starting", "port", cfg.Port, "seller", cfg.SellerID)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to listen and serve", "error", err)
			os.Exit(1)
		}
	}()

	<-stop

	slog.Info("Shutting down server gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
		os.Exit(1)
	}

	hub.Close()
	if err := db.Close(); err != nil {
		slog.Error("Failed to close store", "error", err)
	}

	slog.Info("Server exited gracefully.")
}
