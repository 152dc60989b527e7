package item

import (
	"strconv"
	"strings"
)

// ColumnCount is the number of table columns every item renders into.
const ColumnCount = 6

// FetchStatus tracks the lazily fetched description of an item.
type FetchStatus int

const (
	StatusNone FetchStatus = iota
	StatusFetching
	StatusFetched
	StatusFailed
)

func (s FetchStatus) String() string {
	switch s {
	case StatusFetching:
		return "fetching"
	case StatusFetched:
		return "fetched"
	case StatusFailed:
		return "failed"
	default:
		return "none"
	}
}

// Item is a single search result. All exported fields are set by the producer
// and never change afterwards; the description fields are only written through
// Store.SetDetails.
type Item struct {
	Source    string
	ID        string
	Title     string
	Year      int
	Series    string
	Authors   []string
	Publisher string
	Format    string
	Edition   string
	Language  string
	Pages     int
	Size      int64
	ISBNs     []string
	Mirrors   []string

	description string
	status      FetchStatus
	fetchErr    string
}

// Columns renders the item in table order: Title, Year, Series, Authors,
// Publisher, Format.
func (it Item) Columns() [ColumnCount]string {
	year := ""
	if it.Year > 0 {
		year = strconv.Itoa(it.Year)
	}
	return [ColumnCount]string{
		it.Title,
		year,
		it.Series,
		strings.Join(it.Authors, ", "),
		it.Publisher,
		it.Format,
	}
}

// Key identifies the item across runs, e.g. for the description cache.
func (it Item) Key() string {
	if id := strings.TrimSpace(it.ID); id != "" {
		return strings.TrimSpace(it.Source) + "/" + id
	}
	return strings.ToLower(strings.TrimSpace(it.Title)) + "|" + strconv.Itoa(it.Year)
}

// Description returns the fetched description and its status.
func (it Item) Description() (string, FetchStatus) {
	return it.description, it.status
}

// FetchError returns the recorded failure when Status is StatusFailed.
func (it Item) FetchError() string {
	return it.fetchErr
}

// String is used when handing marked items back on stdout.
func (it Item) String() string {
	var b strings.Builder
	b.WriteString(it.Title)
	if it.Year > 0 {
		b.WriteString(" (")
		b.WriteString(strconv.Itoa(it.Year))
		b.WriteString(")")
	}
	if len(it.Authors) > 0 {
		b.WriteString(" by ")
		b.WriteString(strings.Join(it.Authors, ", "))
	}
	if it.Format != "" {
		b.WriteString(" [")
		b.WriteString(it.Format)
		b.WriteString("]")
	}
	if len(it.Mirrors) > 0 {
		b.WriteString(" ")
		b.WriteString(it.Mirrors[0])
	}
	return b.String()
}
