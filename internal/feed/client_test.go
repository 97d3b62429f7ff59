package feed

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(server *httptest.Server) *Client {
	return NewClient(
		server.URL+"/ghcnd-inventory.txt",
		server.URL+"/ghcnd-stations.txt",
		server.URL+"/by_station",
		5*time.Second,
	)
}

func TestInventory(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if request.URL.Path != "/ghcnd-inventory.txt" {
			t.Errorf("unexpected path: %s", request.URL.Path)
		}
		writer.Write([]byte("inventory payload"))
	}))
	defer server.Close()

	text, err := newTestClient(server).Inventory(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "inventory payload" {
		t.Errorf("unexpected payload: %q", text)
	}
}

func TestObservationsDecompresses(t *testing.T) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	gz.Write([]byte("ST001,20210101,TMAX,250,,,,\n"))
	gz.Close()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if request.URL.Path != "/by_station/ST001.csv.gz" {
			t.Errorf("unexpected path: %s", request.URL.Path)
		}
		writer.Write(buf.Bytes())
	}))
	defer server.Close()

	text, err := newTestClient(server).Observations(context.Background(), "ST001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "ST001,20210101,TMAX,250,,,,\n" {
		t.Errorf("unexpected payload: %q", text)
	}
}

func TestObservationsMalformedGzip(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writer.Write([]byte("this is not gzip"))
	}))
	defer server.Close()

	_, err := newTestClient(server).Observations(context.Background(), "ST001")
	var malformed *MalformedError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected a MalformedError, got %v", err)
	}
}

func TestFetchErrorStatusCode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := newTestClient(server).Inventory(context.Background())
	var unavailable *UnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("expected an UnavailableError, got %v", err)
	}
}

func TestFetchNetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close()

	_, err := newTestClient(server).Stations(context.Background())
	var unavailable *UnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("expected an UnavailableError, got %v", err)
	}
}
