package httpx

import (
	"log/slog"
	"net/http"

	"github.com/readyplan/ready-api/config"
	domainauth "github.com/readyplan/ready-api/internal/domain/auth"
	"github.com/readyplan/ready-api/internal/service"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Reports    *service.ReportService
	Generation *service.GenerationService
	Callbacks  *service.CallbackService
	Auth       *service.AuthService

	CookieDomain string
	Generate     config.GenerationConfig
	Logger       *slog.Logger // Logger for HTTP errors (optional)
}

// NewRouter creates and configures a new HTTP router.
//
// Three trust zones share the mux: user routes behind session auth, admin
// routes behind the admin role, and the webhook receiver behind HMAC
// verification plus a per-IP rate limit.
func NewRouter(services RouterServices) http.Handler {
	mux := http.NewServeMux()

	reportHandlers := &ReportHandlers{
		Reports:    services.Reports,
		Generation: services.Generation,
	}
	webhookHandlers := &WebhookHandlers{Svc: services.Callbacks, Logger: services.Logger}
	callbackHandlers := &CallbackHandlers{Svc: services.Callbacks}

	registerReportRoutes(mux, reportHandlers, services.Auth)
	registerWebhookRoutes(mux, webhookHandlers, services.Generate)
	registerCallbackRoutes(mux, callbackHandlers, services.Auth)

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))

	if services.Auth != nil {
		authHandlers := &AuthHandlers{
			Svc:          services.Auth,
			CookieDomain: services.CookieDomain,
			Logger:       services.Logger,
		}
		registerAuthRoutes(mux, authHandlers)
	}

	return mux
}

func registerReportRoutes(mux *http.ServeMux, h *ReportHandlers, auth *service.AuthService) {
	wrap := func(hh http.Handler) http.Handler {
		if auth != nil {
			return RequireAuth(auth)(hh)
		}
		return hh
	}

	mux.Handle("POST /api/reports", wrap(http.HandlerFunc(h.Create)))
	mux.Handle("GET /api/reports/{id}", wrap(http.HandlerFunc(h.GetByID)))
	mux.Handle("POST /api/reports/{id}/generation", wrap(http.HandlerFunc(h.StartGeneration)))
	mux.Handle("GET /api/reports/{id}/generation", wrap(http.HandlerFunc(h.GenerationStatus)))
	mux.Handle("DELETE /api/reports/{id}/generation", wrap(http.HandlerFunc(h.CancelGeneration)))
}

func registerWebhookRoutes(mux *http.ServeMux, h *WebhookHandlers, cfg config.GenerationConfig) {
	limited := RateLimit(cfg.WebhookRateLimit, cfg.WebhookRateBurst)
	mux.Handle("POST /webhooks/generation", limited(http.HandlerFunc(h.Receive)))
}

func registerCallbackRoutes(mux *http.ServeMux, h *CallbackHandlers, auth *service.AuthService) {
	adminOnly := func(hh http.Handler) http.Handler {
		if auth != nil {
			return RequireRole(auth, domainauth.RoleAdmin)(hh)
		}
		return hh
	}

	mux.Handle("GET /api/callbacks", adminOnly(http.HandlerFunc(h.List)))
	mux.Handle("GET /api/callbacks/{id}", adminOnly(http.HandlerFunc(h.GetByID)))
	mux.Handle("POST /api/callbacks/{id}/viewed", adminOnly(http.HandlerFunc(h.MarkViewed)))
}

func registerAuthRoutes(mux *http.ServeMux, h *AuthHandlers) {
	mux.HandleFunc("GET /auth/login", h.Login)
	mux.HandleFunc("GET /auth/callback", h.Callback)
	mux.HandleFunc("POST /auth/logout", h.Logout)
	mux.HandleFunc("GET /auth/status", h.Status)
}
