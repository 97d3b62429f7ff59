package climate

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/skybi/climate-server/internal/observation"
	"golang.org/x/sync/singleflight"
)

// Ingestor provides the normalized observation series of a station
type Ingestor interface {
	// Ingest fetches and decodes the daily observation series of a station
	Ingest(ctx context.Context, stationID string) ([]observation.Observation, error)
}

// CacheKey identifies a single memoized aggregation result.
// The raw hemisphere latitude is part of the key; two latitudes of the same sign
// produce distinct entries even though their season labels are identical.
type CacheKey struct {
	StationID     string
	FirstYear     int
	LastYear      int
	HemisphereLat float64
}

// Cache memoizes aggregation results behind a bounded LRU.
// Concurrent requests for the same key share a single ingest+aggregate computation;
// failed computations are never stored.
type Cache struct {
	ingestor Ingestor
	entries  *lru.Cache[CacheKey, *Summary]
	group    singleflight.Group
}

// NewCache creates a new aggregation cache holding at most capacity entries
func NewCache(ingestor Ingestor, capacity int) (*Cache, error) {
	entries, err := lru.New[CacheKey, *Summary](capacity)
	if err != nil {
		return nil, err
	}
	return &Cache{
		ingestor: ingestor,
		entries:  entries,
	}, nil
}

// Len returns the amount of currently memoized aggregation results
func (cache *Cache) Len() int {
	return cache.entries.Len()
}

// GetOrCompute returns the memoized aggregation result for the given key or, on a
// miss, ingests the station's observations, aggregates them and stores the result
func (cache *Cache) GetOrCompute(ctx context.Context, key CacheKey) (*Summary, error) {
	if summary, ok := cache.entries.Get(key); ok {
		return summary, nil
	}

	flightKey := fmt.Sprintf("%s\x00%d\x00%d\x00%g", key.StationID, key.FirstYear, key.LastYear, key.HemisphereLat)
	val, err, _ := cache.group.Do(flightKey, func() (interface{}, error) {
		if summary, ok := cache.entries.Get(key); ok {
			return summary, nil
		}

		observations, err := cache.ingestor.Ingest(ctx, key.StationID)
		if err != nil {
			return nil, err
		}

		summary := Aggregate(observations, key.FirstYear, key.LastYear, key.HemisphereLat)
		cache.entries.Add(key, summary)
		return summary, nil
	})
	if err != nil {
		return nil, err
	}
	return val.(*Summary), nil
}
