package handlers

import (
	"net/http"
	"os"

	"github.com/Chamas111/booking-airbnb/internal/middleware"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type RouterOptions struct {
	// UploadDir is served under /uploads/ when photos live on local disk.
	UploadDir   string
	AuthLimiter *middleware.RateLimiter
}

// NewRouter builds the route table and wraps it in the request-wide middleware:
// logging, CORS, then session resolution.
func NewRouter(h *Handlers, opts RouterOptions) http.Handler {
	r := mux.NewRouter()
	r.Use(middleware.MetricsMiddleware)

	// Router.Use skips these two, so they are counted explicitly
	r.NotFoundHandler = middleware.MetricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, "Not found", http.StatusNotFound)
	}))
	r.MethodNotAllowedHandler = middleware.MetricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}))

	limited := func(f http.HandlerFunc) http.Handler {
		if opts.AuthLimiter == nil {
			return f
		}
		return opts.AuthLimiter.Middleware(f)
	}
	protected := func(f http.HandlerFunc) http.Handler {
		return middleware.RequireAuth(f)
	}

	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	r.Handle("/register", limited(h.Register)).Methods(http.MethodPost)
	r.Handle("/login", limited(h.Login)).Methods(http.MethodPost)
	r.HandleFunc("/logout", h.Logout).Methods(http.MethodPost)
	r.HandleFunc("/profile", h.Profile).Methods(http.MethodGet)

	r.Handle("/upload-by-link", protected(h.UploadByLink)).Methods(http.MethodPost)
	r.Handle("/upload", protected(h.Upload)).Methods(http.MethodPost)
	if opts.UploadDir != "" {
		r.PathPrefix("/uploads/").
			Handler(http.StripPrefix("/uploads/", http.FileServer(noListing{http.Dir(opts.UploadDir)}))).
			Methods(http.MethodGet, http.MethodHead)
	}

	r.Handle("/places", protected(h.CreatePlace)).Methods(http.MethodPost)
	r.Handle("/places", protected(h.UpdatePlace)).Methods(http.MethodPut)
	r.HandleFunc("/places", h.GetPlaces).Methods(http.MethodGet)
	r.HandleFunc("/places/{id}", h.GetPlace).Methods(http.MethodGet)

	r.Handle("/user-places", protected(h.GetUserPlaces)).Methods(http.MethodGet)
	r.Handle("/user-places/{id}", protected(h.DeleteUserPlace)).Methods(http.MethodDelete)

	r.Handle("/bookings", protected(h.CreateBooking)).Methods(http.MethodPost)
	r.Handle("/bookings", protected(h.GetBookings)).Methods(http.MethodGet)

	return middleware.Chain(r,
		middleware.LoggingMiddleware(h.Logger),
		middleware.CORSMiddleware(h.Cfg.AllowedOrigins),
		middleware.SessionMiddleware(h.AuthService),
	)
}

// noListing hides directory indexes of the upload dir.
type noListing struct {
	fs http.FileSystem
}

func (n noListing) Open(name string) (http.File, error) {
	f, err := n.fs.Open(name)
	if err != nil {
		return nil, err
	}

	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if stat.IsDir() {
		f.Close()
		return nil, os.ErrNotExist
	}
	return f, nil
}
