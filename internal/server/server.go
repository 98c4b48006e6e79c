// package server contains the router, middleware & handlers for the songrank web service
package server

import (
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/songrank/internal/tasks"
)

// Middleware wraps an http.Handler and returns a new http.Handler with additional behavior.
// Common middleware includes logging, request ids, CORS & panic recovery.
type Middleware func(http.Handler) http.Handler

// Handler defines the interface for HTTP request handlers in the songrank service.
// Implementations handle specific endpoints (collections, health).
type Handler interface {
	http.Handler      // ServeHTTP handles the HTTP request and writes the response
	Routes() []string // Routes returns the patterns this handler serves, e.g. "GET /health"
}

// Router defines the interface for HTTP routing and middleware management.
// Implementations register handlers, apply middleware, and serve every request through the stack.
type Router interface {
	Use(middleware ...Middleware)                     // Use adds middleware to the router's middleware stack
	Handle(method, path string, handler http.Handler) // Handle registers a handler for the specified method and path
	Handler(handler Handler)                          // Handler registers a custom Handler implementation
	ServeHTTP(w http.ResponseWriter, r *http.Request) // ServeHTTP implements http.Handler for the entire router
}

// Opts configures [NewRouter].
type Opts struct {
	Collector      tasks.Collector
	Logger         *log.Logger
	AllowedOrigins []string
	ServiceName    string // Reported by the health endpoint
}

// NewRouter builds the service router: collection endpoints, health check and the middleware stack.
func NewRouter(opts Opts) *BasicRouter {
	if opts.ServiceName == "" {
		opts.ServiceName = "songrank"
	}

	r := NewBasicRouter()
	r.Use(serviceMiddleware(opts.Logger, opts.AllowedOrigins)...)
	r.Handler(NewCollectionHandler(opts.Collector, opts.Logger))
	r.Handler(NewHealthHandler(opts.ServiceName))
	return r
}

// serviceMiddleware returns the stack used by [NewRouter], outermost first.
//
// Recover sits inside Logging so a recovered panic is still logged as a 500.
func serviceMiddleware(logger *log.Logger, origins []string) []Middleware {
	return []Middleware{
		RequestID(),
		Logging(logger),
		Recover(logger),
		CORS(origins),
	}
}
