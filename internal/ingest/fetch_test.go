package ingest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFetchCSV_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		_, _ = w.Write([]byte("Project Title,Year\nSmart City Development using IoT and AI,2023\n"))
	}))
	defer srv.Close()

	f := NewFetcher(nil)
	titles, err := f.FetchCSV(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("FetchCSV: %v", err)
	}
	if len(titles) != 1 || titles[0].Text() != "Smart City Development using IoT and AI" {
		t.Errorf("unexpected titles: %+v", titles)
	}
}

func TestFetchCSV_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	f := NewFetcher(nil)
	if _, err := f.FetchCSV(context.Background(), srv.URL); err == nil {
		t.Fatal("expected error for non-200 status")
	}
}

func TestFetchCSV_ContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := NewFetcher(nil)
	if _, err := f.FetchCSV(ctx, srv.URL); err == nil {
		t.Fatal("expected error for canceled context")
	}
}
