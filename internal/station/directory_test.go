package station

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/skybi/climate-server/internal/feed"
)

func metadataLine(id string, lat, lon, elevation float64, state, name string) string {
	return fmt.Sprintf("%-11s %8.4f %9.4f %6.1f %2s %-30s", id, lat, lon, elevation, state, name)
}

func testMetadata() string {
	return metadataLine("ST001", 48.06, 8.53, 720.0, "", "VILLINGEN-SCHWENNINGEN") + "\n" +
		metadataLine("ST002", 48.07, 8.54, 588.0, "", "ROTTWEIL") + "\n"
}

func TestDirectoryName(t *testing.T) {
	directory := NewDirectory(&fakeFeed{stations: testMetadata()})

	name, err := directory.Name(context.Background(), "ST001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name != "VILLINGEN-SCHWENNINGEN" {
		t.Errorf("unexpected name: %q", name)
	}
}

func TestDirectoryUnknownStation(t *testing.T) {
	directory := NewDirectory(&fakeFeed{stations: testMetadata()})

	name, err := directory.Name(context.Background(), "ST999")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name != UnknownCity {
		t.Errorf("expected %q for an uncovered station, got %q", UnknownCity, name)
	}
}

func TestDirectoryRejectsUndecodableFeed(t *testing.T) {
	directory := NewDirectory(&fakeFeed{stations: "<html><body>503 Service Unavailable</body></html>\n"})

	_, err := directory.Name(context.Background(), "ST001")
	var malformed *feed.MalformedError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected a malformed feed error, got %v", err)
	}
	if directory.Built() {
		t.Error("an undecodable feed must not mark the directory as built")
	}
}

func TestDirectoryBuildDetachedFromCallerContext(t *testing.T) {
	directory := NewDirectory(&contextFeed{fakeFeed{stations: testMetadata()}})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := directory.Name(ctx, "ST001"); err != nil {
		t.Fatalf("a canceled caller must not fail the shared build: %v", err)
	}
	if !directory.Built() {
		t.Error("expected the directory to be built")
	}
}

func TestDirectorySingleFlightBuild(t *testing.T) {
	feed := &fakeFeed{stations: testMetadata()}
	directory := NewDirectory(feed)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := directory.Name(context.Background(), "ST001"); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if fetches := atomic.LoadInt32(&feed.fetches); fetches != 1 {
		t.Errorf("expected exactly 1 feed fetch, got %d", fetches)
	}
}
