package tablemap

import (
	"errors"
	"runtime"
	"weak"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ukaji3/tablegrid-go/pkg/tablegrid/model"
)

const cacheSize = 128

// The cache is keyed by node identity. Entries go away when the LRU bound
// is hit or when the table node is garbage collected.
var (
	cache, _ = lru.New[weak.Pointer[model.Node], *TableMap](cacheSize)

	cacheHits = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tablegrid_tablemap_cache_hits_total",
			Help: "Counter for table map cache hits.",
		},
	)
	cacheMisses = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tablegrid_tablemap_cache_misses_total",
			Help: "Counter for table map cache misses.",
		},
	)
)

// Get returns the map of table, computing it on the first request for this
// node. Structurally equal but distinct nodes get separate entries.
func Get(table *model.Node) (*TableMap, error) {
	if table == nil {
		return nil, ErrNotTable
	}
	key := weak.Make(table)
	if m, ok := cache.Get(key); ok {
		cacheHits.Inc()
		return m, nil
	}
	cacheMisses.Inc()
	m, err := Compute(table)
	if err != nil {
		return nil, err
	}
	if found, _ := cache.ContainsOrAdd(key, m); !found {
		runtime.AddCleanup(table, func(k weak.Pointer[model.Node]) {
			cache.Remove(k)
		}, key)
	}
	return m, nil
}

// PurgeCache drops every cached map.
func PurgeCache() {
	cache.Purge()
}

// RegisterMetrics registers the cache counters with reg. Registering twice
// with the same registry is not an error.
func RegisterMetrics(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{cacheHits, cacheMisses} {
		if err := reg.Register(c); err != nil {
			var already prometheus.AlreadyRegisteredError
			if !errors.As(err, &already) {
				return err
			}
		}
	}
	return nil
}
