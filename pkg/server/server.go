// Package server exposes carousel frames over HTTP.
//
// Routes:
//
//	GET /healthz                 build info
//	GET /v1/catalog              the served catalog
//	GET /v1/frame.{format}       one rendered pass (svg, png or json)
//
// Frame requests take the query parameters offset, index, snap, width,
// height, labels and scale. With a catalog directory configured, catalog=name
// serves <dir>/<name>.toml instead of the default catalog.
package server

import (
	"context"
	stderrors "errors"
	"io"
	"net/http"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/carousel/pkg/carousel"
	"github.com/matzehuels/carousel/pkg/catalog"
	"github.com/matzehuels/carousel/pkg/errors"
	"github.com/matzehuels/carousel/pkg/pipeline"
	"github.com/matzehuels/carousel/pkg/render/card"
)

// Timeouts applied by ListenAndServe.
const (
	ReadHeaderTimeout = 5 * time.Second
	WriteTimeout      = 30 * time.Second
	ShutdownTimeout   = 10 * time.Second
)

// Options configures a Server.
type Options struct {
	Runner   *pipeline.Runner
	Catalog  catalog.Catalog
	Config   carousel.Config
	Defaults pipeline.Options // Viewport and render defaults for frame requests
	Provider card.Provider    // Optional image states for rendered frames
	Logger   *log.Logger

	// CatalogDir enables the catalog query parameter. Empty disables it.
	CatalogDir string
}

// Server serves carousel frames.
type Server struct {
	runner     *pipeline.Runner
	catalog    catalog.Catalog
	carousel   *carousel.Carousel
	cfg        carousel.Config
	defaults   pipeline.Options
	provider   card.Provider
	logger     *log.Logger
	catalogDir string
	router     chi.Router
}

// New builds a server. The default catalog must form a valid carousel.
func New(opts Options) (*Server, error) {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Runner == nil {
		opts.Runner = pipeline.NewRunner(nil, nil, opts.Logger)
	}
	if len(opts.Catalog.Items) == 0 {
		opts.Catalog = catalog.Default()
	}
	car, err := carousel.New(opts.Config, opts.Catalog.Items)
	if err != nil {
		return nil, err
	}

	s := &Server{
		runner:     opts.Runner,
		catalog:    opts.Catalog,
		carousel:   car,
		cfg:        opts.Config,
		defaults:   opts.Defaults,
		provider:   opts.Provider,
		logger:     opts.Logger,
		catalogDir: opts.CatalogDir,
	}
	s.router = s.routes()
	return s, nil
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/catalog", s.handleCatalog)
		r.Get("/frame.{format}", s.handleFrame)
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, errors.New(errors.ErrCodeNotFound, "no route for %s", r.URL.Path))
	})
	return r
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: ReadHeaderTimeout,
		WriteTimeout:      WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("serving frames", "addr", addr, "catalog", s.catalog.Name, "items", s.carousel.Len())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.logger.Info("server stopped")
	return nil
}

// carouselFor returns the carousel a request addresses.
func (s *Server) carouselFor(name string) (*carousel.Carousel, catalog.Catalog, error) {
	if name == "" || name == s.catalog.Name {
		return s.carousel, s.catalog, nil
	}
	if s.catalogDir == "" {
		return nil, catalog.Catalog{}, errors.New(errors.ErrCodeNotFound, "catalog %q not found", name)
	}
	if err := errors.ValidatePath(name); err != nil {
		return nil, catalog.Catalog{}, err
	}
	c, err := catalog.LoadFile(filepath.Join(s.catalogDir, name+".toml"))
	if err != nil {
		return nil, catalog.Catalog{}, err
	}
	c.Name = name
	car, err := carousel.New(s.cfg, c.Items)
	if err != nil {
		return nil, catalog.Catalog{}, err
	}
	return car, c, nil
}
