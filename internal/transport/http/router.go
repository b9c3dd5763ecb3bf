package http

import (
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	middlewareChi "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	httpmw "github.com/cwrk-planet/activities/internal/transport/http/middleware"
	"github.com/cwrk-planet/activities/pkg/httputil"
)

const defaultRequestTimeout = 30 * time.Second

type Deps struct {
	Handler        *Handler
	WS             http.HandlerFunc // roster feed, optional
	Metrics        http.Handler     // optional
	Static         fs.FS            // landing page assets, optional
	Logger         *slog.Logger
	Origins        []string
	RequestTimeout time.Duration
}

func NewRouter(d Deps) http.Handler {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if d.RequestTimeout <= 0 {
		d.RequestTimeout = defaultRequestTimeout
	}

	r := chi.NewRouter()
	r.Use(httputil.MiddlewareRequestID)
	r.Use(middlewareChi.RealIP)
	r.Use(httpmw.RequestLogger(d.Logger))
	r.Use(middlewareChi.Recoverer)

	if len(d.Origins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: d.Origins,
			AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders: []string{"X-Request-ID"},
			MaxAge:         300,
		}))
	}

	// landing page
	if d.Static != nil {
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "/static/index.html", http.StatusTemporaryRedirect)
		})
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServerFS(d.Static)))
	}

	// websocket upgrades must bypass compression and timeouts
	if d.WS != nil {
		r.Get("/ws/activities/{name}", d.WS)
	}

	r.Group(func(api chi.Router) {
		api.Use(middlewareChi.Compress(5))
		api.Use(middlewareChi.Timeout(d.RequestTimeout))

		api.Route("/activities", func(ra chi.Router) {
			ra.Get("/", d.Handler.ListActivities)
			ra.Post("/{name}/signup", d.Handler.SignUp)
			ra.Delete("/{name}/participants/{email}", d.Handler.RemoveParticipant)
		})
	})

	if d.Metrics != nil {
		r.Handle("/metrics", d.Metrics)
	}

	// health
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return r
}
