package observability

import (
	"context"
	"sync"
	"time"
)

// Stats counts events in memory. It implements every hook interface and is
// safe for concurrent use.
type Stats struct {
	mu sync.Mutex
	s  Snapshot
}

// Snapshot is a point-in-time copy of [Stats].
type Snapshot struct {
	Builds        int           `json:"builds"`
	BuildErrors   int           `json:"build_errors"`
	LastBuild     time.Duration `json:"last_build_ns"`
	LastNodes     int           `json:"last_nodes"`
	LastEdges     int           `json:"last_edges"`
	LastCycles    int           `json:"last_cycles"`
	Renders       int           `json:"renders"`
	RenderErrors  int           `json:"render_errors"`
	CacheHits     int           `json:"cache_hits"`
	CacheMisses   int           `json:"cache_misses"`
	CacheWrites   int           `json:"cache_writes"`
	Requests      int           `json:"requests"`
	RequestErrors int           `json:"request_errors"`
}

// NewStats returns zeroed counters.
func NewStats() *Stats { return &Stats{} }

// Snapshot returns the current counters.
func (s *Stats) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.s
}

func (s *Stats) update(fn func(*Snapshot)) {
	s.mu.Lock()
	fn(&s.s)
	s.mu.Unlock()
}

func (s *Stats) OnBuildStart(context.Context, string, []string) {}

func (s *Stats) OnBuildComplete(_ context.Context, _ string, nodes, edges int, d time.Duration, err error) {
	s.update(func(x *Snapshot) {
		x.Builds++
		if err != nil {
			x.BuildErrors++
			return
		}
		x.LastBuild, x.LastNodes, x.LastEdges = d, nodes, edges
	})
}

func (s *Stats) OnCyclesMarked(_ context.Context, cycles int, _ time.Duration) {
	s.update(func(x *Snapshot) { x.LastCycles = cycles })
}

func (s *Stats) OnRenderStart(context.Context, string) {}

func (s *Stats) OnRenderComplete(_ context.Context, _ string, _ time.Duration, err error) {
	s.update(func(x *Snapshot) {
		x.Renders++
		if err != nil {
			x.RenderErrors++
		}
	})
}

func (s *Stats) OnCacheHit(context.Context, string) {
	s.update(func(x *Snapshot) { x.CacheHits++ })
}

func (s *Stats) OnCacheMiss(context.Context, string) {
	s.update(func(x *Snapshot) { x.CacheMisses++ })
}

func (s *Stats) OnCacheSet(context.Context, string, int) {
	s.update(func(x *Snapshot) { x.CacheWrites++ })
}

func (s *Stats) OnRequest(_ context.Context, _, _ string, status int, _ time.Duration) {
	s.update(func(x *Snapshot) {
		x.Requests++
		if status >= 500 {
			x.RequestErrors++
		}
	})
}

var (
	_ PipelineHooks = (*Stats)(nil)
	_ CacheHooks    = (*Stats)(nil)
	_ ServerHooks   = (*Stats)(nil)
)
