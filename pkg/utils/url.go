package utils

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/user/zameen-scraper/internal/repository"
)

const pageSuffix = ".html"

// PageURL derives the URL of results page p from a city's entry URL.
// The last path segment of entryURL must end in a single digit followed by
// ".html" (e.g. /Homes/Lahore-1-1.html); that digit is replaced by p.
// Query and fragment are kept.
func PageURL(entryURL string, p int) (string, error) {
	if p < 1 {
		return "", fmt.Errorf("%w: page number %d must be positive", repository.ErrURLFormat, p)
	}

	u, err := url.Parse(entryURL)
	if err != nil {
		return "", fmt.Errorf("%w: %v", repository.ErrURLFormat, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("%w: %q is not absolute", repository.ErrURLFormat, entryURL)
	}

	stem, ok := strings.CutSuffix(u.Path, pageSuffix)
	if !ok {
		return "", fmt.Errorf("%w: %q does not end in %s", repository.ErrURLFormat, u.Path, pageSuffix)
	}
	last := stem[strings.LastIndex(stem, "/")+1:]
	if last == "" || !isDigit(last[len(last)-1]) {
		return "", fmt.Errorf("%w: segment %q has no trailing page number", repository.ErrURLFormat, last+pageSuffix)
	}
	if len(last) > 1 && isDigit(last[len(last)-2]) {
		return "", fmt.Errorf("%w: segment %q has a multi-digit page number", repository.ErrURLFormat, last+pageSuffix)
	}

	u.Path = fmt.Sprintf("%s%d%s", stem[:len(stem)-1], p, pageSuffix)
	u.RawPath = ""
	return u.String(), nil
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
