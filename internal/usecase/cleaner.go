package usecase

import (
	"strings"

	"github.com/user/zameen-scraper/internal/entity"
)

// nullMarkers are field values treated as missing, in addition to blank ones.
var nullMarkers = map[string]struct{}{
	"NA":   {},
	"N/A":  {},
	"NaN":  {},
	"null": {},
	"None": {},
}

// Clean drops rows with a missing field, then drops exact duplicate rows.
// The first occurrence of a row is kept and input order is preserved.
func Clean(rows []entity.ListingRecord) []entity.ListingRecord {
	seen := make(map[entity.ListingRecord]struct{}, len(rows))
	out := make([]entity.ListingRecord, 0, len(rows))
	for _, r := range rows {
		if hasNull(r) {
			continue
		}
		if _, dup := seen[r]; dup {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	return out
}

func hasNull(r entity.ListingRecord) bool {
	for _, v := range r.Row() {
		if isNull(v) {
			return true
		}
	}
	return false
}

func isNull(v string) bool {
	v = strings.TrimSpace(v)
	if v == "" {
		return true
	}
	_, ok := nullMarkers[v]
	return ok
}
