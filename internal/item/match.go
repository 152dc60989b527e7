package item

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// DefaultAccuracy is the minimum similarity percentage for fuzzy fields.
const DefaultAccuracy = 75

// Query describes the wanted item. Year and Format must match exactly when
// set; the remaining fields are matched fuzzily.
type Query struct {
	Title     string
	Authors   []string
	Series    string
	Publisher string
	Year      int
	Format    string
}

// Empty reports whether no field of the query is set.
func (q Query) Empty() bool {
	return strings.TrimSpace(q.Title) == "" &&
		len(q.Authors) == 0 &&
		strings.TrimSpace(q.Series) == "" &&
		strings.TrimSpace(q.Publisher) == "" &&
		q.Year == 0 &&
		strings.TrimSpace(q.Format) == ""
}

// Match reports whether it satisfies the query. accuracy is a percentage in
// [0, 100]; values outside the range are clamped.
func (q Query) Match(it Item, accuracy int) bool {
	switch {
	case accuracy < 0:
		accuracy = 0
	case accuracy > 100:
		accuracy = 100
	}

	if q.Year > 0 && it.Year != q.Year {
		return false
	}
	if f := strings.TrimSpace(q.Format); f != "" && !strings.EqualFold(f, strings.TrimSpace(it.Format)) {
		return false
	}

	fuzzy := []struct{ want, have string }{
		{q.Title, it.Title},
		{q.Series, it.Series},
		{q.Publisher, it.Publisher},
	}
	for _, f := range fuzzy {
		if strings.TrimSpace(f.want) == "" {
			continue
		}
		if similarity(f.want, f.have) < accuracy {
			return false
		}
	}

	for _, want := range q.Authors {
		if strings.TrimSpace(want) == "" {
			continue
		}
		best := 0
		for _, have := range it.Authors {
			if s := similarity(want, have); s > best {
				best = s
			}
		}
		if best < accuracy {
			return false
		}
	}
	return true
}

// similarity returns a case-insensitive percentage in [0, 100]. A wanted value
// contained in the candidate counts as a full match, since seekers often
// append editions or subtitles to titles.
func similarity(want, have string) int {
	a := strings.ToLower(strings.TrimSpace(want))
	b := strings.ToLower(strings.TrimSpace(have))
	if a == "" && b == "" {
		return 100
	}
	if a == "" || b == "" {
		return 0
	}
	if strings.Contains(b, a) {
		return 100
	}
	maxlen := len([]rune(a))
	if n := len([]rune(b)); n > maxlen {
		maxlen = n
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 100 - dist*100/maxlen
}
