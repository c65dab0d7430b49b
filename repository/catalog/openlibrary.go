// repository/catalog/openlibrary.go
package catalog

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	jsoniter "github.com/json-iterator/go"

	"github.com/feregc/BiblioTech/util/httpx"
)

var json = jsoniter.ConfigFastest

const (
	openLibraryBase = "https://openlibrary.org"
	coversBase      = "https://covers.openlibrary.org/b"
)

// OpenLibraryClient looks up book metadata from the Open Library search
// API. Used only to enrich the static seed at startup; the storefront never
// blocks on it.
type OpenLibraryClient struct {
	base   string
	client *http.Client
}

func NewOpenLibrary() *OpenLibraryClient {
	return &OpenLibraryClient{base: openLibraryBase, client: httpx.Client()}
}

type Volume struct {
	Title     string
	Author    string
	ISBN      string
	Year      int
	Pages     int
	Publisher string
	CoverURL  string
}

type searchResp struct {
	Docs []struct {
		Title        string   `json:"title"`
		AuthorName   []string `json:"author_name"`
		ISBN         []string `json:"isbn"`
		FirstPublish int      `json:"first_publish_year"`
		PagesMedian  int      `json:"number_of_pages_median"`
		Publisher    []string `json:"publisher"`
		CoverID      int64    `json:"cover_i"`
	} `json:"docs"`
}

func (c *OpenLibraryClient) SearchByTitle(ctx context.Context, title string) (*Volume, error) {
	q := url.Values{}
	q.Set("title", title)
	q.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/search.json?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("openlibrary search failed: %s", resp.Status)
	}

	var out searchResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	if len(out.Docs) == 0 {
		return nil, ErrNotFound
	}

	d := out.Docs[0]
	v := &Volume{
		Title:  d.Title,
		Year:   d.FirstPublish,
		Pages:  d.PagesMedian,
		ISBN:   first(d.ISBN),
		Author: first(d.AuthorName),
	}
	v.Publisher = first(d.Publisher)
	if d.CoverID != 0 {
		v.CoverURL = fmt.Sprintf("%s/id/%d-L.jpg", coversBase, d.CoverID)
	}
	return v, nil
}

func first(ss []string) string {
	if len(ss) == 0 {
		return ""
	}
	return ss[0]
}

// Enrich fills cover images and missing page counts on the seeded books
// from Open Library. Lookup failures leave the seed values in place.
func (s *Static) Enrich(ctx context.Context, c *OpenLibraryClient) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var firstErr error
	for i := range s.books {
		v, err := c.SearchByTitle(ctx, s.books[i].Title)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		if s.books[i].Image == "" && v.CoverURL != "" {
			s.books[i].Image = v.CoverURL
		}
		if s.books[i].Pages == 0 && v.Pages > 0 {
			s.books[i].Pages = v.Pages
		}
		if s.books[i].Year == 0 && v.Year > 0 {
			s.books[i].Year = v.Year
		}
	}
	return firstErr
}
