// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/pdiddy/arxtrend/internal/summary"
)

const (
	abstractLimit = 320
	dateLayout    = "2006-01-02"
)

// sparkLevels are the glyphs of the inline line chart, lowest first.
var sparkLevels = []rune("▁▂▃▄▅▆▇█")

// Style controls the text view.
type Style struct {
	// MaxPapers limits the papers listed. Zero lists all.
	MaxPapers int
}

// WriteText renders r as a terminal view.
func (p *Printer) WriteText(r Report, style Style) error {
	p.Title("Research Analysis: " + r.Topic)
	meta := []string{fmt.Sprintf("Papers analyzed: %d", r.TotalPapers)}
	if r.TimePeriod != "" {
		meta = append([]string{"Time Period: " + r.TimePeriod}, meta...)
	}
	meta = append(meta, "Granularity: "+string(r.Granularity))
	p.Print("%s", p.Dim(strings.Join(meta, "  ·  ")))

	p.Header("Trend Summary")
	if len(r.Summary) == 0 {
		p.Print("%s", p.Dim("No summary provided."))
	}
	for _, b := range r.Summary {
		if b.Number > 0 {
			p.Print("%s %s", p.Bold(fmt.Sprintf("%2d.", b.Number)), b.Text)
			continue
		}
		p.Print("%s", b.Text)
	}

	if len(r.Evolution) > 0 {
		p.Header("Research Evolution")
		p.writeSections(r.Evolution)
	}

	p.Header("Keyword Trends")
	if err := p.writeChart(r.Chart); err != nil {
		return err
	}

	if len(r.TopKeywords) > 0 {
		p.Header("Top Keywords")
		chips := make([]string, len(r.TopKeywords))
		for i, kw := range r.TopKeywords {
			chips[i] = p.Chip(kw)
		}
		p.Print("%s", strings.Join(chips, " "))
	}

	p.Header(fmt.Sprintf("Related Papers (%d)", r.TotalPapers))
	p.writePapers(r, style)
	return nil
}

func (p *Printer) writeSections(sections []summary.Section) {
	for i, sec := range sections {
		if i > 0 {
			p.Print("")
		}
		if sec.Heading != "" {
			p.Print("%s", p.Bold(sec.Heading))
		}
		for _, item := range sec.Items {
			if item.Kind == summary.Bullet {
				p.Print("  • %s", item.Text)
				continue
			}
			p.Print("  %s", item.Text)
		}
	}
}

func (p *Printer) writeChart(c Chart) error {
	if len(c.Series) == 0 || len(c.Labels) == 0 {
		p.Print("%s", p.Dim("No keyword trends."))
		return nil
	}

	width := 0
	for _, s := range c.Series {
		width = max(width, len([]rune(s.Keyword)))
	}
	top := c.Max()
	for _, s := range c.Series {
		p.Print("  %-*s  %s  total %s  peak %s",
			width, s.Keyword, p.Accent(Sparkline(s.Values, top)), FormatValue(s.Total), s.Peak)
	}
	p.Print("  %s", p.Dim(fmt.Sprintf("%s → %s", c.Labels[0], c.Labels[len(c.Labels)-1])))
	p.Print("")

	header := append([]string{"Period"}, keywords(c)...)
	rows := make([][]string, len(c.Labels))
	for i, label := range c.Labels {
		row := make([]string, 0, len(c.Series)+1)
		row = append(row, label)
		for _, s := range c.Series {
			row = append(row, FormatValue(s.Values[i]))
		}
		rows[i] = row
	}
	return writeTable(p.out, header, rows)
}

func (p *Printer) writePapers(r Report, style Style) {
	papers := r.Papers
	if style.MaxPapers > 0 && len(papers) > style.MaxPapers {
		papers = papers[:style.MaxPapers]
	}
	if len(papers) == 0 {
		p.Print("%s", p.Dim("No papers."))
		return
	}
	for i, paper := range papers {
		if i > 0 {
			p.Print("")
		}
		p.Print("%s %s", p.Dim(fmt.Sprintf("%d.", i+1)), p.Bold(paper.Title))

		var byline []string
		if len(paper.Authors) > 0 {
			byline = append(byline, strings.Join(paper.Authors, ", "))
		}
		if !paper.PublishedDate.IsZero() {
			byline = append(byline, paper.PublishedDate.Format(dateLayout))
		}
		if len(byline) > 0 {
			p.Print("   %s", strings.Join(byline, " · "))
		}
		if paper.URL != "" {
			p.Print("   %s", p.Accent(paper.URL))
		}
		if abs := truncate(oneLine(paper.Abstract), abstractLimit); abs != "" {
			p.Print("   %s", abs)
		}
		if len(paper.Keywords) > 0 {
			chips := make([]string, len(paper.Keywords))
			for j, kw := range paper.Keywords {
				chips[j] = p.Chip(kw)
			}
			p.Print("   %s", strings.Join(chips, " "))
		}
	}
	if hidden := len(r.Papers) - len(papers); hidden > 0 {
		p.Print("\n%s", p.Dim(fmt.Sprintf("... and %d more", hidden)))
	}
}

// Sparkline draws values as a one-line chart scaled against top. Values
// are clamped to [0, top]; a zero top draws the lowest glyph throughout.
func Sparkline(values []float64, top float64) string {
	var b strings.Builder
	last := len(sparkLevels) - 1
	for _, v := range values {
		idx := 0
		if top > 0 && v > 0 {
			idx = int(math.Round(math.Min(v, top) / top * float64(last)))
		}
		b.WriteRune(sparkLevels[idx])
	}
	return b.String()
}

// FormatValue prints counts without a trailing fraction.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func keywords(c Chart) []string {
	out := make([]string, len(c.Series))
	for i, s := range c.Series {
		out[i] = s.Keyword
	}
	return out
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit-3]) + "..."
}
