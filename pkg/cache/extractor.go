package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cyclegraph/pkg/observability"
	"github.com/matzehuels/cyclegraph/pkg/source"
)

const keyTypeImports = "imports"

// Extractor caches the results of an inner [source.Extractor]. Failed
// extractions are not cached. Cache errors degrade to a direct call.
type Extractor struct {
	inner    source.Extractor
	cache    Cache
	language string
	sep      string
	ttl      time.Duration
	logger   *log.Logger

	hits, misses int
}

// NewExtractor wraps the extractor of lang. A nil logger uses
// log.Default().
func NewExtractor(lang source.Language, c Cache, ttl time.Duration, logger *log.Logger) *Extractor {
	if logger == nil {
		logger = log.Default()
	}
	if c == nil {
		c = NewNullCache()
	}
	return &Extractor{
		inner:    lang,
		cache:    c,
		language: lang.Name(),
		sep:      lang.Separator(),
		ttl:      ttl,
		logger:   logger,
	}
}

func (e *Extractor) Imports(ctx context.Context, module source.Path, src []byte) ([]source.Path, error) {
	key := ImportsKey(e.language, module.Join(e.sep), src)

	data, ok, err := e.cache.Get(ctx, key)
	if err != nil {
		e.logger.Debug("Cache read failed", "key", key, "err", err)
	}
	if ok {
		var cached []source.Path
		if err := json.Unmarshal(data, &cached); err == nil {
			e.hits++
			observability.Cache().OnCacheHit(ctx, keyTypeImports)
			return cached, nil
		}
		_ = e.cache.Delete(ctx, key)
	}

	e.misses++
	observability.Cache().OnCacheMiss(ctx, keyTypeImports)
	imports, err := e.inner.Imports(ctx, module, src)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(imports); err == nil {
		if err := e.cache.Set(ctx, key, data, e.ttl); err != nil {
			e.logger.Debug("Cache write failed", "key", key, "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, keyTypeImports, len(data))
		}
	}
	return imports, nil
}

// Stats returns the number of cache hits and misses so far.
func (e *Extractor) Stats() (hits, misses int) { return e.hits, e.misses }

var _ source.Extractor = (*Extractor)(nil)
