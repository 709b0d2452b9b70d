package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"fitChallengeAPI/internal/session"
	"fitChallengeAPI/internal/views"
	"fitChallengeAPI/middleware"
	"fitChallengeAPI/services"
)

// Deps is everything the router needs to build its handlers.
type Deps struct {
	Sessions      *session.Manager
	Identity      *services.IdentityService
	Challenges    *services.ChallengeService
	Shares        *services.ShareService
	Workflow      *services.CreationWorkflow
	Renderer      *views.Renderer
	PublicBaseURL string
	HealthChecks  []HealthCheck
	MetricsUser   string
	MetricsPass   string
	Logger        *zap.Logger
}

func NewRouter(d Deps) *mux.Router {
	challengeHandler := NewChallengeHandler(d.Challenges, d.Shares, d.Workflow, d.Renderer, d.Logger)
	shareHandler := NewShareHandler(d.Shares, d.Logger)
	catalogHandler := NewCatalogHandler(d.PublicBaseURL, d.Logger)
	pageHandler := NewPageHandler(d.Sessions, d.Renderer, d.Logger)
	healthHandler := NewHealthHandler(d.HealthChecks, d.Logger)

	r := mux.NewRouter()
	r.Use(middleware.MonitorMiddleware)
	r.Use(middleware.RequestLogger(d.Logger))

	// mux skips Use middleware when nothing matches.
	unmatched := func(code int, message string) http.Handler {
		h := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			respondWithError(w, code, message)
		})
		return middleware.MonitorMiddleware(middleware.RequestLogger(d.Logger)(h))
	}
	r.NotFoundHandler = unmatched(http.StatusNotFound, "not found")
	r.MethodNotAllowedHandler = unmatched(http.StatusMethodNotAllowed, "method not allowed")

	r.HandleFunc("/ping", pageHandler.Ping).Methods(http.MethodGet)
	r.HandleFunc("/health", healthHandler.Health).Methods(http.MethodGet)
	r.Handle("/metrics", middleware.BasicAuthMiddleware(d.MetricsUser, d.MetricsPass)(promhttp.Handler())).Methods(http.MethodGet)

	r.HandleFunc("/cancel", pageHandler.Cancel).Methods(http.MethodPost)
	r.HandleFunc("/logout", pageHandler.Logout).Methods(http.MethodGet)
	r.HandleFunc("/catalog", catalogHandler.List).Methods(http.MethodGet)
	r.HandleFunc("/s/{id}/qr.png", shareHandler.QRCode).Methods(http.MethodGet)
	r.HandleFunc("/s/{key}", shareHandler.Resolve).Methods(http.MethodGet)

	identity := middleware.Identity(d.Sessions, d.Identity, d.Logger)
	r.Handle("/", identity(http.HandlerFunc(pageHandler.Index))).Methods(http.MethodGet)

	me := r.PathPrefix("/me").Subrouter()
	me.Use(identity)
	me.HandleFunc("/challenges", challengeHandler.List).Methods(http.MethodGet)
	me.HandleFunc("/challenges", challengeHandler.Create).Methods(http.MethodPost)
	// "create" must be registered before {id} so it isn't read as an id.
	me.HandleFunc("/challenges/create", challengeHandler.CreatePage).Methods(http.MethodGet)
	me.HandleFunc("/challenges/{id}", challengeHandler.Get).Methods(http.MethodGet)
	me.HandleFunc("/challenges/{id}", challengeHandler.Delete).Methods(http.MethodDelete)
	me.HandleFunc("/challenges/{id}/delete", challengeHandler.Delete).Methods(http.MethodGet)

	return r
}
