package cli

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/matzehuels/cyclegraph/pkg/buildinfo"
	"github.com/matzehuels/cyclegraph/pkg/errors"
	"github.com/matzehuels/cyclegraph/pkg/observability"
	"github.com/matzehuels/cyclegraph/pkg/pipeline"
	"github.com/matzehuels/cyclegraph/pkg/render/nodelink"
)

const (
	defaultAddr     = "localhost:8080"
	defaultDebounce = 500 * time.Millisecond
	shutdownTimeout = 5 * time.Second
)

var contentTypes = map[string]string{
	pipeline.FormatDOT:         "text/vnd.graphviz; charset=utf-8",
	pipeline.FormatJSON:        "application/json",
	string(nodelink.FormatSVG): "image/svg+xml",
	string(nodelink.FormatPNG): "image/png",
	string(nodelink.FormatJPG): "image/jpeg",
	string(nodelink.FormatPDF): "application/pdf",
}

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		flags    projectFlags
		addr     string
		watch    bool
		debounce time.Duration
		demo     bool
	)

	cmd := &cobra.Command{
		Use:   "serve [root]",
		Short: "Serve the import graph over HTTP",
		Long: `Analyze the code base under root and serve the result.

Routes:
  GET /                the graph as SVG
  GET /graph/{format}  svg, png, jpg, pdf, dot or json
  GET /api/cycles      the cycles as JSON
  GET /api/stats       run and request counters
  GET /api/version     build information

With --watch the code base is analyzed again after files change.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg, err := flags.load(cmd, args)
			if err != nil {
				return err
			}

			stats := observability.NewStats()
			observability.SetPipelineHooks(stats)
			observability.SetCacheHooks(stats)
			observability.SetServerHooks(stats)
			defer observability.Reset()

			runner := newRunner(ctx, cfg.Cache, logger)
			defer runner.Close()

			srv := newServer(nil, nodelink.NewGraphvizRenderer(), stats, logger)
			run := func(ctx context.Context) (*pipeline.Result, error) {
				return analyze(ctx, runner, cfg, demo)
			}
			go func() { _ = srv.refresh(ctx, run) }()

			if watch && !demo {
				err := watchTree(ctx, cfg.Root, debounce, logger, func() {
					_ = srv.refresh(ctx, run)
				})
				if err != nil {
					return err
				}
			}

			httpSrv := &http.Server{
				Addr:              addr,
				Handler:           srv.routes(),
				ReadHeaderTimeout: 10 * time.Second,
			}
			go func() {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				_ = httpSrv.Shutdown(shutdownCtx)
			}()

			printSuccess("Serving on http://%s", addr)
			if err := httpSrv.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
				return err
			}
			return ctx.Err()
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&addr, "addr", defaultAddr, "listen address")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "re-analyze when files change")
	cmd.Flags().DurationVar(&debounce, "debounce", defaultDebounce, "quiet period before re-analyzing")
	cmd.Flags().BoolVar(&demo, "demo", false, "serve the built-in demo graph")

	return cmd
}

// =============================================================================
// Server
// =============================================================================

// server holds the latest analysis. Handlers read a snapshot; refresh
// replaces it wholesale. Until the first analysis lands, graph routes
// answer 503.
type server struct {
	runMu    sync.Mutex
	mu       sync.RWMutex
	result   *pipeline.Result
	renderer nodelink.Renderer
	stats    *observability.Stats
	logger   *log.Logger
}

func newServer(res *pipeline.Result, r nodelink.Renderer, stats *observability.Stats, logger *log.Logger) *server {
	if stats == nil {
		stats = observability.NewStats()
	}
	return &server{result: res, renderer: r, stats: stats, logger: logger}
}

func (s *server) set(res *pipeline.Result) {
	s.mu.Lock()
	s.result = res
	s.mu.Unlock()
}

// refresh runs one analysis and publishes its result. Runs are serialized.
// A failed run keeps the previous result.
func (s *server) refresh(ctx context.Context, run func(context.Context) (*pipeline.Result, error)) error {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	res, err := run(ctx)
	if err != nil {
		s.logger.Error("Analysis failed", "err", err)
		return err
	}
	s.set(res)
	s.logger.Info("Graph updated", "nodes", res.Graph.NodeCount(), "cycles", len(res.Cycles))
	return nil
}

func (s *server) current() *pipeline.Result {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.result
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		s.writeGraph(w, r, string(nodelink.FormatSVG))
	})
	r.Get("/graph/{format}", func(w http.ResponseWriter, r *http.Request) {
		s.writeGraph(w, r, chi.URLParam(r, "format"))
	})
	r.Route("/api", func(r chi.Router) {
		r.Get("/cycles", s.handleCycles)
		r.Get("/stats", s.handleStats)
		r.Get("/version", s.handleVersion)
	})
	return r
}

// observe reports every request to the server hooks.
func (s *server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		d := time.Since(start)
		observability.Server().OnRequest(r.Context(), r.Method, r.URL.Path, status, d)
		s.logger.Debug("Request", "method", r.Method, "path", r.URL.Path, "status", status, "duration", d)
	})
}

func (s *server) writeGraph(w http.ResponseWriter, r *http.Request, format string) {
	res := s.current()
	if res == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorBody{Code: "NOT_READY", Error: "analysis not finished"})
		return
	}
	data, err := pipeline.Encode(r.Context(), res.Graph, res.Meta(), format, s.renderer)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("X-Run-ID", res.RunID)
	_, _ = w.Write(data)
}

type cycleBody struct {
	ID      int      `json:"id"`
	Nodes   []string `json:"nodes"`
	Color   string   `json:"color"`
	Imports int      `json:"imports"`
}

type cyclesBody struct {
	RunID  string      `json:"run_id"`
	Cycles []cycleBody `json:"cycles"`
}

func (s *server) handleCycles(w http.ResponseWriter, r *http.Request) {
	res := s.current()
	if res == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorBody{Code: "NOT_READY", Error: "analysis not finished"})
		return
	}
	body := cyclesBody{RunID: res.RunID, Cycles: make([]cycleBody, len(res.Cycles))}
	for i, c := range res.Cycles {
		body.Cycles[i] = cycleBody{ID: c.ID, Nodes: c.Nodes, Color: c.Color, Imports: cycleWeight(res.Graph, c)}
	}
	writeJSON(w, http.StatusOK, body)
}

func (s *server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.stats.Snapshot())
}

func (s *server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, buildinfo.Get())
}

type errorBody struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, err error) {
	code := string(errors.GetCode(err))
	if code == "" {
		code = string(errors.ErrCodeInternal)
	}
	writeJSON(w, errors.HTTPStatus(err), errorBody{Code: code, Error: errors.UserMessage(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
