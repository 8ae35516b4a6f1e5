// Package inspect serves cookie parsing and formatting over HTTP, for
// checking how a given Set-Cookie header is understood.
//
//	POST /parse   {"origin": {...}, "headers": ["a=b; path=/", ...]}
//	POST /format  {"cookies": [...]}  ->  {"cookie": "a=b; ..."}
//	GET  /healthz
package inspect

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/always-cache/cookiespec"
	"github.com/always-cache/cookiespec/pkg/capture"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

type ParseRequest struct {
	Origin  cookiespec.Origin `json:"origin"`
	Headers []string          `json:"headers"`
}

type ParseResult struct {
	Header  string              `json:"header"`
	Cookies []cookiespec.Cookie `json:"cookies,omitempty"`
	Error   string              `json:"error,omitempty"`
}

type FormatRequest struct {
	Cookies []cookiespec.Cookie `json:"cookies"`
}

// FormatResponse carries the value of the Cookie header.
type FormatResponse struct {
	Cookie string `json:"cookie"`
}

type Config struct {
	Spec *cookiespec.Spec
	// Optional store; parsed headers are captured when set.
	Capture *capture.Store
	// Logger to use. The global zerolog logger is used if nil.
	Logger *zerolog.Logger
}

type handler struct {
	spec    *cookiespec.Spec
	capture *capture.Store
	log     zerolog.Logger
}

// NewRouter returns the inspection routes.
func NewRouter(config Config) http.Handler {
	h := &handler{
		spec:    config.Spec,
		capture: config.Capture,
		log:     log.Logger,
	}
	if config.Logger != nil {
		h.log = *config.Logger
	}
	if h.spec == nil {
		h.spec = cookiespec.New(cookiespec.Config{Logger: config.Logger})
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Post("/parse", h.parse)
	r.Post("/format", h.format)
	return r
}

// parse answers with one result per header. Headers that fail to parse carry
// an error instead of cookies; the response is still 200.
func (h *handler) parse(w http.ResponseWriter, r *http.Request) {
	var req ParseRequest
	if err := decode(w, r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	results := make([]ParseResult, 0, len(req.Headers))
	for _, value := range req.Headers {
		result := ParseResult{Header: value}
		cookies, err := h.spec.Parse(cookiespec.Header{Name: cookiespec.SetCookieHeader, Value: value}, req.Origin)
		if err != nil {
			result.Error = err.Error()
		} else {
			result.Cookies = cookies
		}
		h.captureHeader(value, req.Origin)
		results = append(results, result)
	}
	h.log.Debug().Int("headers", len(req.Headers)).Msg("Parsed headers")
	h.encode(w, results)
}

func (h *handler) format(w http.ResponseWriter, r *http.Request) {
	var req FormatRequest
	if err := decode(w, r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.encode(w, FormatResponse{Cookie: h.spec.FormatCookies(req.Cookies).Value})
}

func (h *handler) captureHeader(value string, origin cookiespec.Origin) {
	if h.capture == nil {
		return
	}
	_, err := h.capture.Put(capture.Entry{
		Header: value,
		Host:   origin.Host,
		Port:   origin.Port,
		Path:   origin.Path,
		Secure: origin.Secure,
	})
	if err != nil {
		h.log.Error().Err(err).Msg("Could not capture header")
	}
}

var errEmptyBody = errors.New("request body empty")

func decode(w http.ResponseWriter, r *http.Request, v any) error {
	if r.Body == nil {
		return errEmptyBody
	}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func (h *handler) encode(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Error().Err(err).Msg("Could not write response")
	}
}
