package station

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/hashicorp/go-memdb"
	"github.com/rs/zerolog/log"
	"github.com/skybi/climate-server/internal/feed"
	"github.com/skybi/climate-server/internal/geo"
	"golang.org/x/sync/singleflight"
)

// ErrNotBuilt is returned when index data is accessed before the index was built.
// This always indicates a programming error; callers are expected to go through
// the building accessors (Ensure, Search).
var ErrNotBuilt = errors.New("the station index is not built yet")

var dbSchema = &memdb.DBSchema{
	Tables: map[string]*memdb.TableSchema{
		"stations": {
			Name: "stations",
			Indexes: map[string]*memdb.IndexSchema{
				"id": {
					Name:         "id",
					Unique:       true,
					AllowMissing: false,
					Indexer:      &memdb.StringFieldIndex{Field: "ID"},
				},
			},
		},
	},
}

// InventorySource provides the raw station inventory feed
type InventorySource interface {
	// Inventory fetches the raw station inventory feed (fixed-width text)
	Inventory(ctx context.Context) (string, error)
}

// Index holds the searchable set of stations built from the inventory feed.
// It is built lazily on first use and cached for the process lifetime; concurrent
// first users share a single build (single-flight).
type Index struct {
	source InventorySource
	group  singleflight.Group

	mtx     sync.RWMutex
	records []Record
	db      *memdb.MemDB
	skipped int
}

// NewIndex creates a new, unbuilt station index
func NewIndex(source InventorySource) *Index {
	return &Index{
		source: source,
	}
}

// Built returns whether the index has been built
func (index *Index) Built() bool {
	index.mtx.RLock()
	defer index.mtx.RUnlock()
	return index.db != nil
}

// Skipped returns the amount of inventory lines dropped during the build
func (index *Index) Skipped() (int, error) {
	index.mtx.RLock()
	defer index.mtx.RUnlock()
	if index.db == nil {
		return 0, ErrNotBuilt
	}
	return index.skipped, nil
}

// Records returns the indexed station records in feed order.
// Unlike Search, this accessor never triggers a build; calling it on an unbuilt
// index is a programming error and fails fast with ErrNotBuilt.
func (index *Index) Records() ([]Record, error) {
	index.mtx.RLock()
	defer index.mtx.RUnlock()
	if index.db == nil {
		return nil, ErrNotBuilt
	}
	return index.records, nil
}

// GetByID retrieves an indexed station record by its station code.
// A nil record without an error means the station is not indexed.
func (index *Index) GetByID(ctx context.Context, id string) (*Record, error) {
	if err := index.Ensure(ctx); err != nil {
		return nil, err
	}

	index.mtx.RLock()
	db := index.db
	index.mtx.RUnlock()

	txn := db.Txn(false)
	obj, err := txn.First("stations", "id", id)
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, nil
	}
	return obj.(*Record), nil
}

// Ensure builds the index if it has not been built yet.
// Concurrent calls share a single underlying feed fetch; a failed build is not
// cached and will be retried by the next caller.
func (index *Index) Ensure(ctx context.Context) error {
	if index.Built() {
		return nil
	}

	// The build result is shared with concurrent waiters, so it must not die
	// with the first caller's context
	buildCtx := context.WithoutCancel(ctx)
	_, err, _ := index.group.Do("build", func() (interface{}, error) {
		if index.Built() {
			return nil, nil
		}
		return nil, index.build(buildCtx)
	})
	return err
}

// Search filters the index down to the stations that lie within the query radius
// and whose year coverage fully contains the query window, ordered by ascending
// distance and truncated to the query limit (non-positive means unlimited).
// The index is built on first use.
func (index *Index) Search(ctx context.Context, query Query) ([]SearchResult, error) {
	if err := index.Ensure(ctx); err != nil {
		return nil, err
	}

	index.mtx.RLock()
	records := index.records
	index.mtx.RUnlock()

	results := make([]SearchResult, 0, max(query.Limit, 0))
	for _, record := range records {
		if record.FirstYear > query.FirstYear || record.LastYear < query.LastYear {
			continue
		}

		distance := geo.Haversine(query.Latitude, query.Longitude, record.Latitude, record.Longitude)
		if distance > query.RadiusKm {
			continue
		}

		results = append(results, SearchResult{
			StationID:  record.ID,
			Latitude:   record.Latitude,
			Longitude:  record.Longitude,
			DistanceKm: distance,
			FirstYear:  record.FirstYear,
			LastYear:   record.LastYear,
		})
	}

	// Ties keep their index order
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].DistanceKm < results[j].DistanceKm
	})

	if query.Limit > 0 && len(results) > query.Limit {
		results = results[:query.Limit]
	}
	return results, nil
}

func (index *Index) build(ctx context.Context) error {
	text, err := index.source.Inventory(ctx)
	if err != nil {
		return err
	}

	rows, skipped := inventoryLayout.Parse(text)
	if len(rows) == 0 && skipped > 0 {
		// A payload without a single decodable row is not an inventory feed
		// (e.g. an upstream HTML error page); caching an empty index would
		// silence every future search
		return &feed.MalformedError{
			Source:   "station inventory feed",
			Wrapping: fmt.Errorf("no decodable rows (%d lines skipped)", skipped),
		}
	}

	db, err := memdb.NewMemDB(dbSchema)
	if err != nil {
		return err
	}
	txn := db.Txn(true)
	defer txn.Abort()

	records := make([]Record, 0, len(rows))
	seen := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		element := row.String("ELEMENT")
		if element != "TMAX" && element != "TMIN" {
			continue
		}

		// An ID may appear once per element; the first surviving row wins
		id := row.String("ID")
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}

		record := Record{
			ID:        id,
			Latitude:  row.Float("LATITUDE"),
			Longitude: row.Float("LONGITUDE"),
			Element:   element,
			FirstYear: row.Int("FIRSTYEAR"),
			LastYear:  row.Int("LASTYEAR"),
		}
		records = append(records, record)

		stored := record
		if err := txn.Insert("stations", &stored); err != nil {
			return err
		}
	}
	txn.Commit()

	index.mtx.Lock()
	index.records = records
	index.db = db
	index.skipped = skipped
	index.mtx.Unlock()

	log.Info().Int("stations", len(records)).Int("skipped_lines", skipped).Msg("built the station index")
	return nil
}
