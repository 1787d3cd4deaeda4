package server

import (
	"net/http"
	"slices"
	"strings"
)

// BasicRouter is the [Router] used by the summarization service, built on [http.ServeMux].
//
// Routes registered with [BasicRouter.Handle] are method-filtered; several methods may share a path.
type BasicRouter struct {
	mux         *http.ServeMux
	middlewares []Middleware
	methods     map[string]map[string]http.Handler
}

// NewBasicRouter creates a new [BasicRouter] instance.
func NewBasicRouter() *BasicRouter {
	return &BasicRouter{
		mux:     http.NewServeMux(),
		methods: make(map[string]map[string]http.Handler),
	}
}

// Use appends middleware. The first one added is the outermost.
func (r *BasicRouter) Use(middleware ...Middleware) {
	r.middlewares = append(r.middlewares, middleware...)
}

// Handle registers handler for method on path.
//
// Requests for path with any other method get a JSON 405 listing the allowed methods.
func (r *BasicRouter) Handle(method, path string, handler http.Handler) {
	byMethod, seen := r.methods[path]
	if !seen {
		byMethod = make(map[string]http.Handler)
		r.methods[path] = byMethod
	}
	byMethod[strings.ToUpper(method)] = handler

	if seen {
		return
	}

	r.mux.Handle(path, r.Apply(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if h, ok := byMethod[strings.ToUpper(req.Method)]; ok {
			h.ServeHTTP(w, req)
			return
		}
		w.Header().Set("Allow", allowed(byMethod))
		writeMessage(w, http.StatusMethodNotAllowed, "Method not allowed")
	})))
}

// Handler registers every route of handler. The handler does its own method checks.
func (r *BasicRouter) Handler(handler Handler) {
	wrapped := r.Apply(handler)
	for _, route := range handler.Routes() {
		r.mux.Handle(route, wrapped)
	}
}

func (r *BasicRouter) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// Apply wraps handler so that middleware run in the order they were added.
func (r *BasicRouter) Apply(handler http.Handler) http.Handler {
	wrapped := handler
	for _, mw := range slices.Backward(r.middlewares) {
		wrapped = mw(wrapped)
	}
	return wrapped
}

func allowed(byMethod map[string]http.Handler) string {
	methods := make([]string, 0, len(byMethod))
	for m := range byMethod {
		methods = append(methods, m)
	}
	slices.Sort(methods)
	return strings.Join(methods, ", ")
}
