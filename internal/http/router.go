package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/gitgetgotguts/blueprint-career-forum/internal/domain/user"
	"github.com/gitgetgotguts/blueprint-career-forum/internal/http/handlers"
	"github.com/gitgetgotguts/blueprint-career-forum/internal/http/metrics"
	httpmw "github.com/gitgetgotguts/blueprint-career-forum/internal/http/middleware"
)

type RouterDependencies struct {
	AuthHandler        *handlers.AuthHandler
	UserHandler        *handlers.UserHandler
	ProfileHandler     *handlers.ProfileHandler
	OfferHandler       *handlers.OfferHandler
	ApplicationHandler *handlers.ApplicationHandler
	MetricsHandler     *handlers.MetricsHandler
	AuthMiddleware     *httpmw.AuthMiddleware
	Metrics            *metrics.Collector
	Logger             httpmw.Logger
	RequestTimeout     time.Duration
}

type Router struct {
	deps    RouterDependencies
	handler http.Handler
}

// CVs travel base64 encoded inside JSON bodies, so allow a few MB.
const maxBodyBytes = 8 << 20

func NewRouter(deps RouterDependencies) http.Handler {
	r := &Router{deps: deps}
	r.handler = httpmw.Chain(r.baseHandler(),
		httpmw.RequestID,
		httpmw.Logging(deps.Logger),
		httpmw.BodyLimit(maxBodyBytes),
		httpmw.Recover(deps.Logger),
		httpmw.Metrics(deps.Metrics),
		httpmw.Timeout(deps.RequestTimeout),
	)
	return r
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.handler.ServeHTTP(w, req)
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
		case req.Method == http.MethodPost && path == "/auth/login":
			r.deps.AuthHandler.Login(w, req)
			return
		case req.Method == http.MethodPost && path == "/auth/refresh":
			r.deps.AuthHandler.Refresh(w, req)
			return
		case req.Method == http.MethodPost && path == "/auth/logout":
			r.deps.AuthHandler.Logout(w, req)
			return
		}

		if strings.HasPrefix(path, "/users") || strings.HasPrefix(path, "/admin") || strings.HasPrefix(path, "/students") ||
			strings.HasPrefix(path, "/companies") || strings.HasPrefix(path, "/offers") || strings.HasPrefix(path, "/applications") {
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
	company := httpmw.RequireRole(user.RoleCompany)
	student := httpmw.RequireRole(user.RoleStudent)
	reviewer := httpmw.RequireRole(user.RoleAdmin, user.RoleCompany)

	switch {
	case req.Method == http.MethodGet && path == "/users":
		admin(http.HandlerFunc(r.deps.UserHandler.List)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPost && path == "/users":
		admin(http.HandlerFunc(r.deps.UserHandler.Create)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && strings.HasPrefix(path, "/users/"):
		admin(http.HandlerFunc(r.deps.UserHandler.Get)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodDelete && strings.HasPrefix(path, "/users/"):
		admin(http.HandlerFunc(r.deps.UserHandler.Delete)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/admin/stats":
		admin(http.HandlerFunc(r.deps.UserHandler.Stats)).ServeHTTP(w, req)
		return

	case req.Method == http.MethodGet && path == "/offers":
		r.deps.OfferHandler.ListApproved(w, req)
		return
	case req.Method == http.MethodGet && path == "/offers/pending":
		admin(http.HandlerFunc(r.deps.OfferHandler.ListPending)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPost && path == "/offers":
		company(http.HandlerFunc(r.deps.OfferHandler.Create)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPatch && strings.HasPrefix(path, "/offers/") && strings.HasSuffix(path, "/approve"):
		admin(http.HandlerFunc(r.deps.OfferHandler.Approve)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPatch && strings.HasPrefix(path, "/offers/") && strings.HasSuffix(path, "/reject"):
		admin(http.HandlerFunc(r.deps.OfferHandler.Reject)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && strings.HasPrefix(path, "/offers/") && strings.HasSuffix(path, "/applications"):
		reviewer(http.HandlerFunc(r.deps.ApplicationHandler.ListByOffer)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && strings.HasPrefix(path, "/offers/"):
		r.deps.OfferHandler.Get(w, req)
		return
	case req.Method == http.MethodGet && path == "/companies/offers":
		company(http.HandlerFunc(r.deps.OfferHandler.ListOwn)).ServeHTTP(w, req)
		return

	case req.Method == http.MethodPost && path == "/applications":
		student(http.HandlerFunc(r.deps.ApplicationHandler.Apply)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/applications":
		r.deps.ApplicationHandler.List(w, req)
		return
	case req.Method == http.MethodPatch && strings.HasPrefix(path, "/applications/") && strings.HasSuffix(path, "/status"):
		reviewer(http.HandlerFunc(r.deps.ApplicationHandler.UpdateStatus)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && strings.HasPrefix(path, "/applications/") && strings.HasSuffix(path, "/cv"):
		r.deps.ApplicationHandler.DownloadCV(w, req)
		return

	case req.Method == http.MethodGet && path == "/students/profile":
		student(http.HandlerFunc(r.deps.ProfileHandler.GetOwn)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPut && path == "/students/career-goal":
		student(http.HandlerFunc(r.deps.ProfileHandler.SetCareerGoal)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPost && path == "/students/projects":
		student(http.HandlerFunc(r.deps.ProfileHandler.AddProject)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPatch && strings.HasPrefix(path, "/students/projects/"):
		student(http.HandlerFunc(r.deps.ProfileHandler.UpdateProject)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodDelete && strings.HasPrefix(path, "/students/projects/"):
		student(http.HandlerFunc(r.deps.ProfileHandler.RemoveProject)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && strings.HasPrefix(path, "/students/") && strings.HasSuffix(path, "/profile"):
		admin(http.HandlerFunc(r.deps.ProfileHandler.GetByStudent)).ServeHTTP(w, req)
		return
	}

	http.NotFound(w, req)
}
