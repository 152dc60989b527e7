package seeker

import (
	"strconv"
	"strings"

	"github.com/five82/wyrm/internal/item"
)

// SearchResponse mirrors the payload returned by /api/search.
type SearchResponse struct {
	Items []Result `json:"items"`
}

// Result describes one search hit in transport-friendly form.
type Result struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Year      string   `json:"year"`
	Series    string   `json:"series"`
	Authors   []string `json:"authors"`
	Publisher string   `json:"publisher"`
	Extension string   `json:"extension"`
	Edition   string   `json:"edition"`
	Language  string   `json:"language"`
	Pages     string   `json:"pages"`
	Size      int64    `json:"size"`
	ISBNs     []string `json:"isbns"`
	Mirrors   []string `json:"mirrors"`
}

// DetailsResponse mirrors /api/details.
type DetailsResponse struct {
	ID          string `json:"id"`
	Description string `json:"description"`
}

// Item converts the result into an item stamped with the given source name.
// Numeric fields that fail to parse are left unset.
func (r Result) Item(source string) item.Item {
	authors := make([]string, 0, len(r.Authors))
	for _, a := range r.Authors {
		if a = strings.TrimSpace(a); a != "" {
			authors = append(authors, a)
		}
	}
	return item.Item{
		Source:    source,
		ID:        strings.TrimSpace(r.ID),
		Title:     strings.TrimSpace(r.Title),
		Year:      parseInt(r.Year),
		Series:    strings.TrimSpace(r.Series),
		Authors:   authors,
		Publisher: strings.TrimSpace(r.Publisher),
		Format:    strings.ToLower(strings.TrimSpace(r.Extension)),
		Edition:   strings.TrimSpace(r.Edition),
		Language:  strings.TrimSpace(r.Language),
		Pages:     parseInt(r.Pages),
		Size:      r.Size,
		ISBNs:     r.ISBNs,
		Mirrors:   r.Mirrors,
	}
}

func parseInt(value string) int {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
