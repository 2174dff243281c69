package server

import (
	"net/http"
	"time"

	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) initClientRoutes() {
	s.RegisterRouteHandler("GET "+RouteHome, ChainMiddleware(s.ClientIndexHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("GET "+RouteAuth, ChainMiddleware(s.AuthHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("GET "+RouteCallback, ChainMiddleware(s.CallbackHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("GET "+RouteLogout, ChainMiddleware(s.LogoutHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("GET "+RouteProfile, ChainMiddleware(s.ProfileHandler(), s.APIMiddleware()...))

	s.initCommonRoutes()
}

func (s *Server) initLoginConsentRoutes() {
	s.RegisterRouteHandler("GET "+RouteHome, ChainMiddleware(s.ProviderIndexHandler(), s.HTMLMiddleWare()...))

	s.RegisterRouteHandler("GET "+RouteLogin, ChainMiddleware(s.LoginGetHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("POST "+RouteLogin, ChainMiddleware(s.LoginPostHandler(), s.HTMLMiddleWare(s.LoginRateLimitMiddleware(), s.CSRFMiddleware)...))

	s.RegisterRouteHandler("GET "+RouteConsent, ChainMiddleware(s.ConsentGetHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("POST "+RouteConsent, ChainMiddleware(s.ConsentPostHandler(), s.HTMLMiddleWare(s.CSRFMiddleware)...))

	s.initCommonRoutes()
}

func (s *Server) initCommonRoutes() {
	s.RegisterRouteHandler("GET "+RouteHealthz, ChainMiddleware(s.HealthzHandler(), s.APIMiddleware()...))
	if s.config.GetMetricsEnabled() {
		s.RegisterRouteHandler("GET "+RouteMetrics, promhttp.Handler())
	}
	s.RegisterRouteHandler("GET "+RouteStaticCSS, ChainMiddleware(s.serveFileHandler(), s.HTMLMiddleWare(s.CompressionMiddleware)...))
}

// LoginRateLimitMiddleware limits credential submissions per client IP. A
// limit of zero disables it.
func (s *Server) LoginRateLimitMiddleware() func(http.HandlerFunc) http.HandlerFunc {
	limit := s.config.GetLoginRateLimit()
	if limit <= 0 {
		return func(next http.HandlerFunc) http.HandlerFunc { return next }
	}
	return AdaptMiddleware(httprate.Limit(
		limit,
		time.Minute,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			s.renderErrorPage(w, r, http.StatusTooManyRequests, "Too many login attempts, please wait a minute and try again")
		}),
	))
}

func (s *Server) serveFileHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filePath := "css/" + r.PathValue("file")
		err := StreamFile(w, r, filePath)
		if err != nil {
			logError(r.Method, filePath, err.Error())
			http.Error(w, "404 - Page Not Found", http.StatusNotFound)
			return
		}
	}
}
