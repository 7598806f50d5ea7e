// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pdiddy/arxtrend/internal/summary"
)

// WriteMarkdown renders r as a Markdown document with a Mermaid line chart.
func WriteMarkdown(w io.Writer, r Report, style Style) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# Research Analysis: %s\n\n", r.Topic)
	var meta []string
	if r.TimePeriod != "" {
		meta = append(meta, "**Time period:** "+r.TimePeriod)
	}
	meta = append(meta,
		fmt.Sprintf("**Papers analyzed:** %d", r.TotalPapers),
		"**Granularity:** "+string(r.Granularity))
	b.WriteString(strings.Join(meta, " · "))
	b.WriteString("\n\n## Trend Summary\n\n")

	for _, blk := range r.Summary {
		if blk.Number > 0 {
			fmt.Fprintf(&b, "%d. %s\n", blk.Number, blk.Text)
			continue
		}
		fmt.Fprintf(&b, "%s\n\n", blk.Text)
	}

	if len(r.Evolution) > 0 {
		b.WriteString("\n## Research Evolution\n")
		for _, sec := range r.Evolution {
			if sec.Heading != "" {
				fmt.Fprintf(&b, "\n### %s\n\n", sec.Heading)
			} else {
				b.WriteString("\n")
			}
			for _, item := range sec.Items {
				if item.Kind == summary.Bullet {
					fmt.Fprintf(&b, "- %s\n", item.Text)
					continue
				}
				fmt.Fprintf(&b, "%s\n\n", item.Text)
			}
		}
	}

	b.WriteString("\n## Keyword Trends\n\n")
	writeMermaid(&b, r.Chart)
	writeMarkdownTable(&b, r.Chart)

	if len(r.TopKeywords) > 0 {
		b.WriteString("\n## Top Keywords\n\n")
		for _, kw := range r.TopKeywords {
			fmt.Fprintf(&b, "- %s\n", kw)
		}
	}

	fmt.Fprintf(&b, "\n## Related Papers (%d)\n\n", r.TotalPapers)
	papers := r.Papers
	if style.MaxPapers > 0 && len(papers) > style.MaxPapers {
		papers = papers[:style.MaxPapers]
	}
	for i, p := range papers {
		title := p.Title
		if p.URL != "" {
			title = fmt.Sprintf("[%s](%s)", p.Title, p.URL)
		}
		fmt.Fprintf(&b, "%d. **%s**", i+1, title)
		if len(p.Authors) > 0 {
			fmt.Fprintf(&b, ", %s", strings.Join(p.Authors, ", "))
		}
		if !p.PublishedDate.IsZero() {
			fmt.Fprintf(&b, " (%s)", p.PublishedDate.Format(dateLayout))
		}
		b.WriteString("\n")
		if abs := truncate(oneLine(p.Abstract), abstractLimit); abs != "" {
			fmt.Fprintf(&b, "   > %s\n", abs)
		}
		if len(p.Keywords) > 0 {
			fmt.Fprintf(&b, "   Tags: %s\n", strings.Join(p.Keywords, ", "))
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeMermaid(b *strings.Builder, c Chart) {
	if len(c.Labels) == 0 {
		b.WriteString("_No keyword trends._\n")
		return
	}
	labels := make([]string, len(c.Labels))
	for i, l := range c.Labels {
		labels[i] = strconv.Quote(l)
	}
	b.WriteString("```mermaid\nxychart-beta\n")
	b.WriteString("    title \"Keyword Trends Over Time\"\n")
	fmt.Fprintf(b, "    x-axis [%s]\n", strings.Join(labels, ", "))
	b.WriteString("    y-axis \"Frequency\"\n")
	for _, s := range c.Series {
		values := make([]string, len(s.Values))
		for i, v := range s.Values {
			values[i] = FormatValue(v)
		}
		fmt.Fprintf(b, "    line [%s]\n", strings.Join(values, ", "))
	}
	b.WriteString("```\n\n")
}

func writeMarkdownTable(b *strings.Builder, c Chart) {
	if len(c.Labels) == 0 {
		return
	}
	header := append([]string{"Period"}, keywords(c)...)
	for i := range header {
		header[i] = escapeCell(header[i])
	}
	fmt.Fprintf(b, "| %s |\n", strings.Join(header, " | "))
	b.WriteString("|" + strings.Repeat(" --- |", len(header)) + "\n")
	for i, label := range c.Labels {
		row := []string{escapeCell(label)}
		for _, s := range c.Series {
			row = append(row, FormatValue(s.Values[i]))
		}
		fmt.Fprintf(b, "| %s |\n", strings.Join(row, " | "))
	}
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
