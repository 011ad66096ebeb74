package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/user/zameen-scraper/internal/entity"
	"github.com/user/zameen-scraper/internal/usecase"
)

const (
	previewColumnWidth = 40
	barWidth           = 40
	noValue            = "-"
)

// Renderer prints a run report as a series of text tables.
type Renderer struct {
	out     io.Writer
	printer *message.Printer
}

// NewRenderer writes to out and formats rupee amounts with English digit grouping.
func NewRenderer(out io.Writer) *Renderer {
	return &Renderer{out: out, printer: message.NewPrinter(language.English)}
}

var _ usecase.Reporter = (*Renderer)(nil)

func (r *Renderer) Render(rep *usecase.Report) error {
	sections := []struct {
		title string
		table table.Writer
	}{
		{"Run", r.summaryTable(rep.Summary)},
		{"First rows of the raw dataset", r.previewTable(rep.Preview)},
		{"Properties per city", r.countsTable(rep.Counts)},
		{"Price ranges by city", r.rangesTable(rep.Ranges)},
		{"Price statistics by city (PKR)", r.statsTable(rep.Stats)},
	}
	for _, s := range sections {
		if _, err := fmt.Fprintf(r.out, "\n%s\n%s\n", s.title, s.table.Render()); err != nil {
			return fmt.Errorf("write %s table: %w", strings.ToLower(s.title), err)
		}
	}
	return nil
}

func newTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.Style().Format.Header = text.FormatDefault
	t.Style().Format.Footer = text.FormatDefault
	return t
}

func (r *Renderer) summaryTable(s entity.RunSummary) table.Writer {
	t := newTable()
	names := make([]string, 0, len(s.Cities))
	for _, c := range s.Cities {
		names = append(names, c.Name)
	}
	t.AppendRows([]table.Row{
		{"Run ID", s.RunID},
		{"Cities", strings.Join(names, ", ")},
		{"Raw rows", r.printer.Sprintf("%d", s.RawRows)},
		{"Clean rows", r.printer.Sprintf("%d", s.CleanRows)},
	})
	return t
}

func (r *Renderer) previewTable(rows []entity.ListingRecord) table.Writer {
	t := newTable()
	t.AppendHeader(table.Row{"#", "Title", "Location", "Price", "Details", "City"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, WidthMax: previewColumnWidth},
		{Number: 3, WidthMax: previewColumnWidth},
		{Number: 5, WidthMax: previewColumnWidth},
	})
	for i, row := range rows {
		t.AppendRow(table.Row{i + 1, row.Title, row.Location, row.PriceText, row.Details, row.City})
	}
	return t
}

func (r *Renderer) countsTable(counts []entity.CityCount) table.Writer {
	t := newTable()
	t.AppendHeader(table.Row{"City", "Listings", "Share", ""})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
	})
	total := 0
	for _, c := range counts {
		total += c.Count
		t.AppendRow(table.Row{c.City, r.printer.Sprintf("%d", c.Count), fmt.Sprintf("%.1f%%", c.Percent), bar(c.Percent)})
	}
	t.AppendFooter(table.Row{"Total", r.printer.Sprintf("%d", total), "", ""})
	return t
}

// rangesTable is a city x price-bin matrix of listing counts.
func (r *Renderer) rangesTable(ranges []entity.PriceRangeCount) table.Writer {
	t := newTable()
	header := table.Row{"City"}
	for _, pr := range usecase.PriceRanges {
		header = append(header, pr.Label)
	}
	t.AppendHeader(header)

	var cities []string
	cells := make(map[string]map[string]int)
	for _, rc := range ranges {
		if _, ok := cells[rc.City]; !ok {
			cells[rc.City] = make(map[string]int)
			cities = append(cities, rc.City)
		}
		cells[rc.City][rc.Range] = rc.Count
	}
	for _, city := range cities {
		row := table.Row{city}
		for _, pr := range usecase.PriceRanges {
			row = append(row, cells[city][pr.Label])
		}
		t.AppendRow(row)
	}
	return t
}

func (r *Renderer) statsTable(stats []entity.CityStats) table.Writer {
	t := newTable()
	t.AppendHeader(table.Row{"City", "Listings", "Priced", "Mean", "Max", "Min"})
	cfg := make([]table.ColumnConfig, 0, 5)
	for n := 2; n <= 6; n++ {
		cfg = append(cfg, table.ColumnConfig{Number: n, Align: text.AlignRight})
	}
	t.SetColumnConfigs(cfg)
	for _, s := range stats {
		avg, hi, lo := noValue, noValue, noValue
		if s.PricedCount > 0 {
			avg, hi, lo = r.rupees(s.Mean), r.rupees(s.Max), r.rupees(s.Min)
		}
		t.AppendRow(table.Row{s.City, s.Count, s.PricedCount, avg, hi, lo})
	}
	return t
}

func (r *Renderer) rupees(v float64) string {
	return r.printer.Sprintf("%d", int64(v+0.5))
}

func bar(percent float64) string {
	n := int(percent / 100 * barWidth)
	return strings.Repeat("█", n)
}
