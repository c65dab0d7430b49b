package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSearchByTitle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search.json" || r.URL.Query().Get("title") != "Dune" {
			t.Errorf("unexpected request: %s", r.URL)
		}
		w.Write([]byte(`{"docs":[{
			"title": "Dune",
			"author_name": ["Frank Herbert"],
			"isbn": ["9780441013593"],
			"first_publish_year": 1965,
			"number_of_pages_median": 412,
			"publisher": ["Ace Books"],
			"cover_i": 11481354
		}]}`))
	}))
	defer srv.Close()

	c := &OpenLibraryClient{base: srv.URL, client: srv.Client()}
	v, err := c.SearchByTitle(context.Background(), "Dune")
	if err != nil {
		t.Fatalf("SearchByTitle: %v", err)
	}
	if v.Title != "Dune" || v.Author != "Frank Herbert" || v.Year != 1965 || v.Pages != 412 {
		t.Fatalf("unexpected volume: %+v", v)
	}
	if v.CoverURL != coversBase+"/id/11481354-L.jpg" {
		t.Fatalf("cover url: %s", v.CoverURL)
	}
}

func TestSearchByTitle_NoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"docs":[]}`))
	}))
	defer srv.Close()

	c := &OpenLibraryClient{base: srv.URL, client: srv.Client()}
	if _, err := c.SearchByTitle(context.Background(), "nothing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v; want ErrNotFound", err)
	}
}
