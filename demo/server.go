// Package demo implements a deterministic local stand-in for the sentiment
// service. It serves the same three endpoints with the same request and
// response shapes, scoring text with a small lexicon instead of a model.
package demo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// DefaultMaxUploadBytes caps the size of an uploaded dataset.
const DefaultMaxUploadBytes = 10 << 20

// HealthMessage is returned by the root endpoint.
const HealthMessage = "Sentiment API running"

// DefaultAllowedOrigins are the browser origins allowed by CORS.
var DefaultAllowedOrigins = []string{"http://localhost:5500", "http://127.0.0.1:5500"}

type prediction struct {
	Text  string  `json:"text"`
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

type textRequest struct {
	Texts []string `json:"texts"`
}

type textResponse struct {
	Results []prediction `json:"results"`
}

type fileResponse struct {
	RowCount    int          `json:"row_count"`
	Predictions []prediction `json:"predictions"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

// Server is the stand-in HTTP service.
type Server struct {
	scorer   *Scorer
	logger   *zap.Logger
	maxBytes int64
	origins  []string
	router   chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithScorer sets the scorer.
func WithScorer(s *Scorer) Option {
	return func(srv *Server) {
		srv.scorer = s
	}
}

// WithLogger sets the request logger.
func WithLogger(l *zap.Logger) Option {
	return func(srv *Server) {
		srv.logger = l
	}
}

// WithMaxUploadBytes sets the dataset size limit.
func WithMaxUploadBytes(n int64) Option {
	return func(srv *Server) {
		if n > 0 {
			srv.maxBytes = n
		}
	}
}

// WithAllowedOrigins sets the CORS origins.
func WithAllowedOrigins(origins []string) Option {
	return func(srv *Server) {
		srv.origins = origins
	}
}

// NewServer creates a Server with routes mounted.
func NewServer(opts ...Option) *Server {
	s := &Server{
		scorer:   NewScorer(),
		logger:   zap.NewNop(),
		maxBytes: DefaultMaxUploadBytes,
		origins:  DefaultAllowedOrigins,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.origins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/", s.handleHealth)
	r.Post("/predict_text", s.handlePredictText)
	r.Post("/predict_file", s.handlePredictFile)
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Serve accepts connections on ln until ctx is canceled, then shuts down
// gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info("shutting down demo server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info("demo server listening", zap.String("addr", ln.Addr().String()))
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return eris.Wrap(err, "demo: serve")
	}
	return nil
}

// ListenAndServe listens on addr and serves until ctx is canceled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return eris.Wrapf(err, "demo: listen on %s", addr)
	}
	return s.Serve(ctx, ln)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "message": HealthMessage})
}

func (s *Server) handlePredictText(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "Invalid request body: "+err.Error())
		return
	}
	if len(req.Texts) == 0 {
		writeError(w, http.StatusBadRequest, "No texts provided")
		return
	}
	writeJSON(w, http.StatusOK, textResponse{Results: s.predict(req.Texts)})
}

func (s *Server) handlePredictFile(w http.ResponseWriter, r *http.Request) {
	// Multipart framing adds a little on top of the file itself.
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBytes+64<<10)
	if err := r.ParseMultipartForm(s.maxBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "File too large")
			return
		}
		writeError(w, http.StatusUnprocessableEntity, "Invalid form data")
		return
	}

	column := r.FormValue("text_column")
	if column == "" {
		writeError(w, http.StatusUnprocessableEntity, "Field 'text_column' is required")
		return
	}

	f, hdr, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "Field 'file' is required")
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Could not read uploaded file")
		return
	}
	if int64(len(data)) > s.maxBytes {
		writeError(w, http.StatusRequestEntityTooLarge, "File too large")
		return
	}

	tbl, err := readTable(hdr.Filename, data)
	if err != nil {
		if errors.Is(err, ErrUnsupportedType) {
			writeError(w, http.StatusBadRequest, "Unsupported file type")
			return
		}
		if errors.Is(err, ErrLegacyExcel) {
			writeError(w, http.StatusBadRequest, "Legacy .xls files are not supported by the demo service; save as .xlsx or .csv")
			return
		}
		s.logger.Warn("dataset decode failed", zap.String("file", hdr.Filename), zap.Error(err))
		writeError(w, http.StatusBadRequest, "Could not parse uploaded file")
		return
	}

	values, ok := tbl.column(column)
	if !ok {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Column '%s' not found in uploaded file", column))
		return
	}

	writeJSON(w, http.StatusOK, fileResponse{
		RowCount:    len(values),
		Predictions: s.predict(values),
	})
}

// predict scores texts in order, dropping blank ones.
func (s *Server) predict(texts []string) []prediction {
	out := make([]prediction, 0, len(texts))
	for _, t := range texts {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		label, score := s.scorer.Score(t)
		out = append(out, prediction{Text: t, Label: label, Score: score})
	}
	return out
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("latency", time.Since(start)),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorResponse{Detail: detail})
}
