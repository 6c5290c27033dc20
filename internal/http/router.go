package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/ZeeshanAfzalKhan/HireNexa-sub000/internal/common"
	"github.com/ZeeshanAfzalKhan/HireNexa-sub000/internal/domain/user"
	"github.com/ZeeshanAfzalKhan/HireNexa-sub000/internal/http/handlers"
	"github.com/ZeeshanAfzalKhan/HireNexa-sub000/internal/http/metrics"
	httpmw "github.com/ZeeshanAfzalKhan/HireNexa-sub000/internal/http/middleware"
	"github.com/ZeeshanAfzalKhan/HireNexa-sub000/internal/http/response"
)

type RouterDependencies struct {
	AuthHandler        *handlers.AuthHandler
	ProfileHandler     *handlers.ProfileHandler
	CompanyHandler     *handlers.CompanyHandler
	JobHandler         *handlers.JobHandler
	ApplicationHandler *handlers.ApplicationHandler
	MetricsHandler     *handlers.MetricsHandler
	AuthMiddleware     *httpmw.AuthMiddleware
	Metrics            *metrics.Collector
	RequestTimeout     time.Duration
	MaxBodyBytes       int64
}

type Router struct {
	deps    RouterDependencies
	handler http.Handler
}

func NewRouter(deps RouterDependencies) http.Handler {
	if deps.MaxBodyBytes <= 0 {
		deps.MaxBodyBytes = 1 << 20
	}
	router := &Router{deps: deps}
	router.handler = httpmw.Chain(router.baseHandler(),
		httpmw.RequestID,
		httpmw.Logging,
		httpmw.BodyLimit(deps.MaxBodyBytes),
		httpmw.Recover,
		httpmw.Metrics(deps.Metrics),
		httpmw.Timeout(deps.RequestTimeout),
	)
	return router
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
		case req.Method == http.MethodPost && path == "/user/register":
			r.deps.AuthHandler.Register(w, req)
			return
		case req.Method == http.MethodPost && path == "/user/login":
			r.deps.AuthHandler.Login(w, req)
			return
		case req.Method == http.MethodPost && path == "/user/refresh":
			r.deps.AuthHandler.Refresh(w, req)
			return
		case req.Method == http.MethodGet && path == "/job/get":
			r.deps.JobHandler.List(w, req)
			return
		case req.Method == http.MethodGet && strings.HasPrefix(path, "/job/get/"):
			r.deps.JobHandler.Get(w, req)
			return
		case req.Method == http.MethodGet && path == "/company/get":
			r.deps.CompanyHandler.List(w, req)
			return
		case req.Method == http.MethodGet && strings.HasPrefix(path, "/company/get/"):
			r.deps.CompanyHandler.Get(w, req)
			return
		}

		if strings.HasPrefix(path, "/user") || strings.HasPrefix(path, "/company") || strings.HasPrefix(path, "/job") || strings.HasPrefix(path, "/application") {
			protected := r.deps.AuthMiddleware.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				r.handleProtected(w, req)
			}))
			protected.ServeHTTP(w, req)
			return
		}

		response.Error(w, common.NewError(common.CodeNotFound, "route not found", nil))
	})
}

func (r *Router) handleProtected(w http.ResponseWriter, req *http.Request) {
	path := req.URL.Path

	switch {
	case req.Method == http.MethodGet && path == "/user/me":
		r.deps.AuthHandler.Me(w, req)
		return
	case req.Method == http.MethodPost && path == "/user/logout":
		r.deps.AuthHandler.Logout(w, req)
		return
	case req.Method == http.MethodGet && path == "/user/profile":
		r.deps.ProfileHandler.Get(w, req)
		return
	case req.Method == http.MethodPost && path == "/user/profile/update":
		r.deps.ProfileHandler.Update(w, req)
		return
	case req.Method == http.MethodPost && path == "/company/register":
		httpmw.RequireRole(user.RoleRecruiter)(http.HandlerFunc(r.deps.CompanyHandler.Register)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPost && strings.HasPrefix(path, "/company/update/"):
		httpmw.RequireRole(user.RoleRecruiter)(http.HandlerFunc(r.deps.CompanyHandler.Update)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPost && path == "/job/post":
		httpmw.RequireRole(user.RoleRecruiter)(http.HandlerFunc(r.deps.JobHandler.Create)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/job/recruiter":
		httpmw.RequireRole(user.RoleRecruiter)(http.HandlerFunc(r.deps.JobHandler.ListByRecruiter)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPost && strings.HasPrefix(path, "/job/update/"):
		httpmw.RequireRole(user.RoleRecruiter)(http.HandlerFunc(r.deps.JobHandler.Update)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPost && strings.HasPrefix(path, "/application/apply/"):
		httpmw.RequireRole(user.RoleCandidate)(http.HandlerFunc(r.deps.ApplicationHandler.Apply)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/application/get":
		httpmw.RequireRole(user.RoleCandidate)(http.HandlerFunc(r.deps.ApplicationHandler.GetApplied)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && strings.HasPrefix(path, "/application/") && strings.HasSuffix(path, "/applicants"):
		httpmw.RequireRole(user.RoleRecruiter)(http.HandlerFunc(r.deps.ApplicationHandler.Applicants)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPost && strings.HasPrefix(path, "/application/status/") && strings.HasSuffix(path, "/update"):
		httpmw.RequireRole(user.RoleRecruiter)(http.HandlerFunc(r.deps.ApplicationHandler.UpdateStatus)).ServeHTTP(w, req)
		return
	}

	response.Error(w, common.NewError(common.CodeNotFound, "route not found", nil))
}
