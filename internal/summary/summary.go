// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package summary turns the analysis service's free-text summaries into
// displayable structure. The service follows loose conventions, not a
// schema, so every function here is best-effort: malformed input degrades
// to a single plain block and nothing ever returns an error.
package summary

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// numberMarker matches a marker candidate such as "1.", "**2.", "### 3."
// at line start or after whitespace. At most three digits so years ending
// a sentence ("in 2024. Then") are not taken as markers. The whitespace
// after the dot is checked separately so it stays available as the leading
// whitespace of the next marker.
var numberMarker = regexp.MustCompile(`(?:^|\s)([*_#(]*)[ \t]*(\d{1,3})\.`)

// Block is one display unit of a numbered summary.
type Block struct {
	// Number is the marker that opened the block, or 0 for unnumbered text.
	Number int `json:"number,omitempty" yaml:"number,omitempty"`

	// Text is the trimmed block content without its marker.
	Text string `json:"text" yaml:"text"`
}

// Blocks splits text on numbered-sentence markers. Text before the first
// marker becomes an unnumbered block; whitespace-only segments are dropped.
// Text without markers yields exactly one block.
func Blocks(text string) (blocks []Block) {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	defer func() {
		if recover() != nil {
			blocks = []Block{{Text: strings.TrimSpace(text)}}
		}
	}()

	matches := markers(text)
	if len(matches) == 0 {
		return []Block{{Text: strings.TrimSpace(text)}}
	}

	if pre := strings.TrimSpace(text[:matches[0][0]]); pre != "" {
		blocks = append(blocks, Block{Text: pre})
	}
	for i, m := range matches {
		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		body := strings.TrimSpace(text[m[1]:end])
		// "**1. Direction:** growth" opens emphasis before the number;
		// drop the matching close so the body reads "Direction: growth".
		if emph := strings.Trim(text[m[2]:m[3]], "#("); emph != "" {
			body = strings.TrimSpace(strings.Replace(body, emph, "", 1))
		}
		if body == "" {
			continue
		}
		n, _ := strconv.Atoi(text[m[4]:m[5]])
		blocks = append(blocks, Block{Number: n, Text: body})
	}
	if len(blocks) == 0 {
		return []Block{{Text: strings.TrimSpace(text)}}
	}
	return blocks
}

// markers returns the submatch indexes of numbered markers in text. A
// candidate counts only when whitespace or the end of text follows its dot,
// which rules out decimals like "2.5x".
func markers(text string) [][]int {
	var out [][]int
	for _, m := range numberMarker.FindAllStringSubmatchIndex(text, -1) {
		if end := m[1]; end == len(text) || unicode.IsSpace(rune(text[end])) {
			out = append(out, m)
		}
	}
	return out
}

// ItemKind distinguishes the lines of a section body.
type ItemKind string

const (
	Paragraph ItemKind = "paragraph"
	Bullet    ItemKind = "bullet"
)

// Item is one body line of a section.
type Item struct {
	Kind ItemKind `json:"kind" yaml:"kind"`
	Text string   `json:"text" yaml:"text"`
}

// Section is a heading followed by bullet and paragraph lines.
type Section struct {
	Heading string `json:"heading" yaml:"heading"`
	Items   []Item `json:"items,omitempty" yaml:"items,omitempty"`
}

// blankLines separates sections; lines holding only spaces count as blank.
var blankLines = regexp.MustCompile(`\n[ \t]*\r?\n`)

// Sections splits a narrative on blank lines. The first line of each
// section is its heading. Lines starting with "-" become bullets;
// everything else becomes a paragraph.
func Sections(text string) (sections []Section) {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	defer func() {
		if recover() != nil {
			sections = fallback(text)
		}
	}()

	normalized := strings.ReplaceAll(text, "\r\n", "\n")
	for _, chunk := range blankLines.Split(normalized, -1) {
		var sec *Section
		for _, line := range strings.Split(chunk, "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			if sec == nil {
				sec = &Section{Heading: strings.TrimSpace(strings.TrimRight(line, ":"))}
				continue
			}
			if body, ok := bulletText(line); ok {
				if body != "" {
					sec.Items = append(sec.Items, Item{Kind: Bullet, Text: body})
				}
				continue
			}
			sec.Items = append(sec.Items, Item{Kind: Paragraph, Text: line})
		}
		if sec != nil {
			sections = append(sections, *sec)
		}
	}
	if len(sections) == 0 {
		return fallback(text)
	}
	return sections
}

// bulletText reports whether line is a "-" bullet and returns its text.
// Lines opening with "*" are left alone: "**Key shift:** ..." is emphasis.
func bulletText(line string) (string, bool) {
	if !strings.HasPrefix(line, "-") {
		return "", false
	}
	return strings.TrimSpace(strings.TrimPrefix(line, "-")), true
}

func fallback(text string) []Section {
	return []Section{{Items: []Item{{Kind: Paragraph, Text: strings.TrimSpace(text)}}}}
}
