package http

import (
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"campushire/internal/domain/user"
	"campushire/internal/http/handlers"
	"campushire/internal/http/metrics"
	httpmw "campushire/internal/http/middleware"
)

type RouterDependencies struct {
	AuthHandler        *handlers.AuthHandler
	OpportunityHandler *handlers.OpportunityHandler
	ApplicationHandler *handlers.ApplicationHandler
	AdminHandler       *handlers.AdminHandler
	MetricsHandler     *handlers.MetricsHandler
	AuthMiddleware     *httpmw.AuthMiddleware
	Metrics            *metrics.Collector
	Logger             *zap.Logger
	RequestTimeout     time.Duration
}

type Router struct {
	deps RouterDependencies
}

const maxBodyBytes = 1 << 20

func NewRouter(deps RouterDependencies) http.Handler {
	return &Router{deps: deps}
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	handler := httpmw.Chain(r.baseHandler(),
		httpmw.RequestID,
		httpmw.Logging(r.deps.Logger),
		httpmw.BodyLimit(maxBodyBytes),
		httpmw.Recover(r.deps.Logger),
		httpmw.Metrics(r.deps.Metrics),
		httpmw.Timeout(r.deps.RequestTimeout),
	)
	handler.ServeHTTP(w, req)
}

func (r *Router) baseHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		path := req.URL.Path

		switch {
		case req.Method == http.MethodGet && path == "/health":
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
			return
		case req.Method == http.MethodGet && path == "/metrics":
			r.deps.MetricsHandler.Get(w, req)
			return
		case req.Method == http.MethodPost && path == "/api/auth/register":
			r.deps.AuthHandler.Register(w, req)
			return
		case req.Method == http.MethodPost && path == "/api/auth/login":
			r.deps.AuthHandler.Login(w, req)
			return
		}

		if strings.HasPrefix(path, "/api/auth/profile") || strings.HasPrefix(path, "/api/opportunities") || strings.HasPrefix(path, "/api/applications") || strings.HasPrefix(path, "/api/admin") {
			protected := r.deps.AuthMiddleware.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				r.handleProtected(w, req)
			}))
			protected.ServeHTTP(w, req)
			return
		}

		http.NotFound(w, req)
	})
}

func (r *Router) handleProtected(w http.ResponseWriter, req *http.Request) {
	path := req.URL.Path
	admin := httpmw.RequireRole(user.RoleAdmin)
	student := httpmw.RequireRole(user.RoleStudent)

	switch {
	case req.Method == http.MethodGet && path == "/api/auth/profile":
		r.deps.AuthHandler.GetProfile(w, req)
		return
	case req.Method == http.MethodPut && path == "/api/auth/profile":
		r.deps.AuthHandler.UpdateProfile(w, req)
		return
	case req.Method == http.MethodGet && path == "/api/opportunities":
		r.deps.OpportunityHandler.List(w, req)
		return
	case req.Method == http.MethodPost && path == "/api/opportunities":
		admin(http.HandlerFunc(r.deps.OpportunityHandler.Create)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && strings.HasPrefix(path, "/api/opportunities/") && strings.HasSuffix(path, "/applicants"):
		admin(http.HandlerFunc(r.deps.OpportunityHandler.ListApplicants)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && strings.HasPrefix(path, "/api/opportunities/"):
		r.deps.OpportunityHandler.Get(w, req)
		return
	case req.Method == http.MethodPut && strings.HasPrefix(path, "/api/opportunities/"):
		admin(http.HandlerFunc(r.deps.OpportunityHandler.Update)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodDelete && strings.HasPrefix(path, "/api/opportunities/"):
		admin(http.HandlerFunc(r.deps.OpportunityHandler.Delete)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPost && path == "/api/applications":
		student(http.HandlerFunc(r.deps.ApplicationHandler.Apply)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/api/applications/my-applications":
		student(http.HandlerFunc(r.deps.ApplicationHandler.ListMine)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPut && strings.HasPrefix(path, "/api/applications/") && strings.HasSuffix(path, "/status"):
		admin(http.HandlerFunc(r.deps.ApplicationHandler.UpdateStatus)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/api/admin/stats":
		admin(http.HandlerFunc(r.deps.AdminHandler.Stats)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/api/admin/analytics":
		admin(http.HandlerFunc(r.deps.AdminHandler.Analytics)).ServeHTTP(w, req)
		return
	}

	http.NotFound(w, req)
}
