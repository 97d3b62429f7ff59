package station

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/skybi/climate-server/internal/feed"
	"golang.org/x/sync/singleflight"
)

// UnknownCity is the display name used for stations the metadata feed does not cover
const UnknownCity = "Unknown"

// MetadataSource provides the raw station metadata feed
type MetadataSource interface {
	// Stations fetches the raw station metadata feed (fixed-width text)
	Stations(ctx context.Context) (string, error)
}

// Directory holds the station ID -> display name mapping built from the station
// metadata feed. Like the Index, it is built lazily with a single-flight guarantee
// and cached for the process lifetime.
type Directory struct {
	source MetadataSource
	group  singleflight.Group

	mtx   sync.RWMutex
	names map[string]string
}

// NewDirectory creates a new, unbuilt station name directory
func NewDirectory(source MetadataSource) *Directory {
	return &Directory{
		source: source,
	}
}

// Built returns whether the directory has been built
func (directory *Directory) Built() bool {
	directory.mtx.RLock()
	defer directory.mtx.RUnlock()
	return directory.names != nil
}

// Name returns the display name of a station, building the directory on first use.
// Stations the metadata feed does not cover resolve to UnknownCity.
func (directory *Directory) Name(ctx context.Context, id string) (string, error) {
	if err := directory.ensure(ctx); err != nil {
		return "", err
	}

	directory.mtx.RLock()
	defer directory.mtx.RUnlock()
	name, ok := directory.names[id]
	if !ok || name == "" {
		return UnknownCity, nil
	}
	return name, nil
}

func (directory *Directory) ensure(ctx context.Context) error {
	if directory.Built() {
		return nil
	}

	// The build result is shared with concurrent waiters, so it must not die
	// with the first caller's context
	buildCtx := context.WithoutCancel(ctx)
	_, err, _ := directory.group.Do("build", func() (interface{}, error) {
		if directory.Built() {
			return nil, nil
		}
		return nil, directory.build(buildCtx)
	})
	return err
}

func (directory *Directory) build(ctx context.Context) error {
	text, err := directory.source.Stations(ctx)
	if err != nil {
		return err
	}

	rows, skipped := metadataLayout.Parse(text)
	if len(rows) == 0 && skipped > 0 {
		// A payload without a single decodable row is not a metadata feed
		// (e.g. an upstream HTML error page); caching an empty directory would
		// resolve every station to UnknownCity forever
		return &feed.MalformedError{
			Source:   "station metadata feed",
			Wrapping: fmt.Errorf("no decodable rows (%d lines skipped)", skipped),
		}
	}

	names := make(map[string]string, len(rows))
	for _, row := range rows {
		id := row.String("ID")
		if _, ok := names[id]; ok {
			continue
		}
		names[id] = row.String("NAME")
	}

	directory.mtx.Lock()
	directory.names = names
	directory.mtx.Unlock()

	log.Info().Int("stations", len(names)).Int("skipped_lines", skipped).Msg("built the station name directory")
	return nil
}
