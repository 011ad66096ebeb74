package goquery_extractor

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/user/zameen-scraper/internal/entity"
	"github.com/user/zameen-scraper/internal/repository"
)

// Selectors are the CSS queries for each listing field on a results page.
type Selectors struct {
	Title    string
	Price    string
	Location string
	Details  string
	// Summary is the element whose text carries the no-results sentinel.
	Summary       string
	NoResultsText string
}

// Extractor implements repository.FieldExtractor with goquery.
type Extractor struct {
	sel Selectors
}

// NewExtractor creates an extractor using the given selectors.
func NewExtractor(sel Selectors) (repository.FieldExtractor, error) {
	for name, q := range map[string]string{
		"title":    sel.Title,
		"price":    sel.Price,
		"location": sel.Location,
		"details":  sel.Details,
		"summary":  sel.Summary,
	} {
		if strings.TrimSpace(q) == "" {
			return nil, fmt.Errorf("%s selector must not be empty", name)
		}
	}
	return &Extractor{sel: sel}, nil
}

// Extract parses markup and collects each field independently in document order.
func (e *Extractor) Extract(markup string) (entity.RawFieldBatch, error) {
	doc, err := parse(markup)
	if err != nil {
		return entity.RawFieldBatch{}, err
	}

	return entity.RawFieldBatch{
		Titles:    texts(doc, e.sel.Title),
		Locations: texts(doc, e.sel.Location),
		Prices:    texts(doc, e.sel.Price),
		Details:   texts(doc, e.sel.Details),
	}, nil
}

// HasNoResults checks the first summary element for the sentinel text.
func (e *Extractor) HasNoResults(markup string) (bool, error) {
	doc, err := parse(markup)
	if err != nil {
		return false, err
	}

	summary := doc.Find(e.sel.Summary).First()
	if summary.Length() == 0 {
		return false, nil
	}
	return strings.TrimSpace(summary.Text()) == e.sel.NoResultsText, nil
}

func parse(markup string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("parse page markup: %w", err)
	}
	return doc, nil
}

func texts(doc *goquery.Document, query string) []string {
	sel := doc.Find(query)
	out := make([]string, 0, sel.Length())
	sel.Each(func(i int, s *goquery.Selection) {
		out = append(out, strings.TrimSpace(s.Text()))
	})
	return out
}
