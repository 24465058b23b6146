package cli

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/flowviz/sankey/pkg/graph"
	"github.com/flowviz/sankey/pkg/sankey"
)

// maxRequestBody caps layout request bodies at 8 MiB.
const maxRequestBody = 8 << 20

// serveCommand creates the serve command for running the HTTP layout service.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the layout engine over HTTP",
		Long: `Serve the layout engine over HTTP.

POST /layout accepts {"graph": {...}, "options": {...}} and responds with the
computed geometry in the same format the layout command writes. Options are
optional and fall back to the CLI defaults. GET /healthz reports liveness.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	return cmd
}

// layoutRequest is the POST /layout body.
type layoutRequest struct {
	Graph   graph.Graph `json:"graph"`
	Options *Options    `json:"options,omitempty"`
}

// errorResponse is the JSON error envelope for all non-2xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// runServe blocks serving HTTP until ctx is canceled, then shuts down
// gracefully.
func (c *CLI) runServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           c.router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Infof("listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		c.Logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// router assembles the HTTP service.
func (c *CLI) router() http.Handler {
	r := chi.NewRouter()
	r.Use(c.requestID)
	r.Use(c.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Post("/layout", c.handleLayout)
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
	})
	return r
}

// handleLayout runs the engine for a single request.
func (c *CLI) handleLayout(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, maxRequestBody)
	var req layoutRequest
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	opts := defaultOptions()
	if req.Options != nil {
		merged := opts
		applyOptions(&merged, *req.Options)
		opts = merged
	}
	cfg, err := opts.Config()
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	g := req.Graph.Sankey()
	if err := sankey.Layout(g, cfg); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, sankey.ErrInvalidGraph) ||
			errors.Is(err, sankey.ErrCyclicGraph) ||
			errors.Is(err, sankey.ErrInvalidConfiguration) {
			status = http.StatusUnprocessableEntity
		}
		writeJSON(w, status, errorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, graph.ResultFrom(g))
}

// applyOptions copies the non-zero fields of src over dst, so request
// options can override any subset of the defaults.
func applyOptions(dst *Options, src Options) {
	if src.Width != 0 {
		dst.Width = src.Width
	}
	if src.Height != 0 {
		dst.Height = src.Height
	}
	if src.NodeWidth != 0 {
		dst.NodeWidth = src.NodeWidth
	}
	if src.NodePadding != 0 {
		dst.NodePadding = src.NodePadding
	}
	if src.Iterations != 0 {
		dst.Iterations = src.Iterations
	}
	if src.Align != "" {
		dst.Align = src.Align
	}
}

// requestID tags every request with a UUID, honoring an inbound
// X-Request-ID if the client set one.
func (c *CLI) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

// requestLogger logs one line per request with status and duration.
func (c *CLI) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		c.Logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start).Round(time.Microsecond),
			"id", w.Header().Get("X-Request-ID"),
		)
	})
}

// ctxKey is the type for context keys used in this package.
type ctxKey int

// requestIDKey is the context key carrying the request ID.
const requestIDKey ctxKey = 0

// writeJSON encodes v with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
