package feed

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client fetches the upstream GHCN feeds
type Client struct {
	http            *http.Client
	inventoryURL    string
	stationsURL     string
	observationsURL string
}

// NewClient creates a new feed client.
// The timeout bounds every single feed fetch; an exceeded timeout surfaces as an
// UnavailableError, never as a hanging caller.
func NewClient(inventoryURL, stationsURL, observationsURL string, timeout time.Duration) *Client {
	return &Client{
		http:            &http.Client{Timeout: timeout},
		inventoryURL:    inventoryURL,
		stationsURL:     stationsURL,
		observationsURL: observationsURL,
	}
}

// Inventory fetches the raw station inventory feed (fixed-width text)
func (client *Client) Inventory(ctx context.Context) (string, error) {
	return client.fetchText(ctx, client.inventoryURL)
}

// Stations fetches the raw station metadata feed (fixed-width text)
func (client *Client) Stations(ctx context.Context) (string, error) {
	return client.fetchText(ctx, client.stationsURL)
}

// Observations fetches and decompresses the daily observation series of a single
// station (gzip-compressed delimited text)
func (client *Client) Observations(ctx context.Context, stationID string) (string, error) {
	url := fmt.Sprintf("%s/%s.csv.gz", client.observationsURL, stationID)

	body, err := client.fetch(ctx, url)
	if err != nil {
		return "", err
	}
	defer body.Close()

	reader, err := gzip.NewReader(body)
	if err != nil {
		return "", &MalformedError{Source: url, Wrapping: err}
	}
	defer reader.Close()

	raw, err := io.ReadAll(reader)
	if err != nil {
		return "", &MalformedError{Source: url, Wrapping: err}
	}
	return string(raw), nil
}

func (client *Client) fetchText(ctx context.Context, url string) (string, error) {
	body, err := client.fetch(ctx, url)
	if err != nil {
		return "", err
	}
	defer body.Close()

	raw, err := io.ReadAll(body)
	if err != nil {
		return "", &UnavailableError{Source: url, Wrapping: err}
	}
	return string(raw), nil
}

func (client *Client) fetch(ctx context.Context, url string) (io.ReadCloser, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &UnavailableError{Source: url, Wrapping: err}
	}

	response, err := client.http.Do(request)
	if err != nil {
		return nil, &UnavailableError{Source: url, Wrapping: err}
	}
	if response.StatusCode < 200 || response.StatusCode > 299 {
		response.Body.Close()
		return nil, &UnavailableError{Source: url, Wrapping: fmt.Errorf("unexpected status code %d", response.StatusCode)}
	}
	return response.Body, nil
}
