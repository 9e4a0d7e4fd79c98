package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/liondadev/quick-media-host/config"
	"github.com/liondadev/quick-media-host/store"
)

// PublicError is an error whose message is safe to show to the client. Any
// other error collapses to a generic 500 with the detail kept server-side.
type PublicError struct {
	Code    int
	Message string
}

func (pe PublicError) Error() string {
	return fmt.Sprintf("(%d) %s", pe.Code, pe.Message)
}

// HandlerWithError is a http.Handler body that is allowed to return an error.
type HandlerWithError func(w http.ResponseWriter, r *http.Request) error

type Server struct {
	cfg   *config.Config
	store *store.Store
	log   *zap.SugaredLogger
	mux   *chi.Mux
}

// New creates a new server instance from the config, store and logger.
func New(cfg *config.Config, st *store.Store, log *zap.SugaredLogger) *Server {
	return &Server{
		cfg:   cfg,
		store: st,
		log:   log,
	}
}

// handler funnels handler errors into uniform JSON responses.
func (s *Server) handler(h HandlerWithError) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				s.log.Errorw("recovered from panic while handling request", "remote", r.RemoteAddr, "uri", r.RequestURI, "panic", err)

				writeJson(w, http.StatusInternalServerError, jMap{
					"error": "Unrecoverable Serverside Panic!",
				})
			}
		}()

		err := h(w, r)
		if err != nil {
			var perr PublicError
			if errors.As(err, &perr) {
				s.log.Debugw("public error while serving request", "remote", r.RemoteAddr, "uri", r.RequestURI, "err", err.Error())
				writeJson(w, perr.Code, jMap{
					"error": perr.Message,
				})

				return
			}

			s.log.Errorw("error while serving request", "remote", r.RemoteAddr, "uri", r.RequestURI, "err", err.Error())
			writeJson(w, http.StatusInternalServerError, jMap{
				"error": "Internal Server Error!",
			})
		}
	})
}

func (s *Server) SetupHTTP() error {
	mux := chi.NewMux()

	mux.Use(middleware.RealIP)
	mux.Use(middleware.Compress(5))
	mux.Use(middleware.Recoverer)
	mux.Use(middleware.CleanPath)
	mux.Use(s.collectMetrics)

	// Media routes
	mux.With(s.requireUser).Handle("POST /upload", s.handler(s.handleMediaUpload))
	mux.Handle("GET /media/{name}", s.handler(s.handleMediaView))
	mux.Handle("GET /media/{name}/thumbnail", s.handler(s.handleThumbnailView))
	mux.With(s.requireUser).Handle("DELETE /media/{name}", s.handler(s.handleMediaDelete))

	// User routes
	mux.Handle("POST /user/register", s.handler(s.handleUserRegister))
	mux.With(s.requireUser).Handle("DELETE /user/delete", s.handler(s.handleUserDeleteSelf))
	mux.With(s.requireUser).Handle("DELETE /user/{id}", s.handler(s.handleUserDeleteById))

	// Operational routes
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.Handle("GET /healthz", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeMsg(w, "ok")
	}))

	// Not found handler
	mux.NotFound(s.handler(s.handleNotFound).ServeHTTP)

	s.mux = mux

	return nil
}

// Handler returns the configured mux for mounting under a http.Server.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// handleNotFound is called when no other handlers match the request.
func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) error {
	return PublicError{http.StatusNotFound, "Page not found."}
}
