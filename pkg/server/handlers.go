package server

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/carousel/pkg/buildinfo"
	"github.com/matzehuels/carousel/pkg/carousel"
	"github.com/matzehuels/carousel/pkg/errors"
	"github.com/matzehuels/carousel/pkg/pipeline"
)

var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatJSON: "application/json",
}

type healthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Build: buildinfo.Get()})
}

type catalogResponse struct {
	Name  string          `json:"name"`
	Hash  string          `json:"hash"`
	Items []carousel.Item `json:"items"`
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	_, c, err := s.carouselFor(r.URL.Query().Get("catalog"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, catalogResponse{Name: c.Name, Hash: c.Hash(), Items: c.Items})
}

func (s *Server) handleFrame(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if _, ok := contentTypes[format]; !ok {
		writeError(w, r, errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, json)", format))
		return
	}

	q := r.URL.Query()
	car, _, err := s.carouselFor(q.Get("catalog"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	opts, err := s.frameOptions(q)
	if err != nil {
		writeError(w, r, err)
		return
	}
	opts.Formats = []string{format}
	opts.Provider = s.provider
	opts.Logger = loggerFromContext(r.Context(), s.logger)

	res, err := s.runner.Execute(r.Context(), car, opts)
	if err != nil {
		writeError(w, r, err)
		return
	}

	cacheStatus := "miss"
	if res.CacheInfo.RenderHit {
		cacheStatus = "hit"
	}
	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("ETag", strconv.Quote(res.FrameHash))
	w.Header().Set("X-Cache", cacheStatus)
	w.Header().Set("X-Focused-Index", strconv.Itoa(res.Frame.Focused))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[format])
}

// frameOptions parses frame query parameters over the server defaults.
func (s *Server) frameOptions(q url.Values) (pipeline.Options, error) {
	opts := s.defaults
	opts.Formats = nil

	floats := []struct {
		name string
		dst  *float64
	}{
		{"offset", &opts.Offset},
		{"width", &opts.Width},
		{"height", &opts.Height},
		{"scale", &opts.Scale},
	}
	for _, f := range floats {
		v := q.Get(f.name)
		if v == "" {
			continue
		}
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "%s must be a number, got %q", f.name, v)
		}
		*f.dst = n
	}

	if v := q.Get("index"); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "index must be an integer, got %q", v)
		}
		opts.Index = &i
	}

	bools := []struct {
		name string
		dst  *bool
	}{
		{"snap", &opts.Snap},
		{"labels", &opts.Labels},
		{"refresh", &opts.Refresh},
	}
	for _, b := range bools {
		v := q.Get(b.name)
		if v == "" {
			continue
		}
		x, err := strconv.ParseBool(v)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "%s must be a boolean, got %q", b.name, v)
		}
		*b.dst = x
	}
	return opts, nil
}

type errorResponse struct {
	Error     string `json:"error"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	status := errors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		loggerFromContext(r.Context(), nil).Error("request failed", "error", err)
	}
	writeJSON(w, status, errorResponse{
		Error:     string(code),
		Message:   errors.UserMessage(err),
		RequestID: w.Header().Get(RequestIDHeader),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
