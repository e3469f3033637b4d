package owgclient_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/openwebglobe/terrain/pkg/owgclient"
)

func TestHealth(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	}))
	defer ts.Close()

	c := owgclient.New(ts.URL)
	_, body, err := c.Health(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if body.Status != "ok" {
		t.Fatalf("status=%q, want ok", body.Status)
	}
}

func TestQueueSurfacesServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	c := owgclient.New(ts.URL)
	_, _, err := c.Queue(context.Background())
	if err == nil {
		t.Fatal("Queue: want error on 500 response, got nil")
	}
}

func TestCatalogTilesBuildsLODPath(t *testing.T) {
	var gotPath string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"tiles":[]}`))
	}))
	defer ts.Close()

	c := owgclient.New(ts.URL)
	if _, _, err := c.CatalogTiles(context.Background(), 5); err != nil {
		t.Fatal(err)
	}
	if gotPath != "/catalog/5" {
		t.Fatalf("request path = %q, want /catalog/5", gotPath)
	}
}
