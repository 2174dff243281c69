package server

// Route path constants
const (
	RouteHome = "/{$}"

	// Client app
	RouteAuth     = "/auth"
	RouteCallback = "/callback"
	RouteLogout   = "/logout"
	RouteProfile  = "/profile"

	// Login & consent app
	RouteLogin   = "/login"
	RouteConsent = "/consent"

	// Operational
	RouteHealthz = "/healthz"
	RouteMetrics = "/metrics"

	// Static Asset Routes (patterns)
	RouteStaticCSS = "/css/{file}"
)
