// Package splitter breaks a single poems text file into one file per poem.
//
// The input format uses two header lines per poem:
//
//	--- 12 Jun-2023
//	--- The Banyan Tree
//	<poem body until the next header or end of file>
//
// Dates are normalized to YYYY-MM-DD when one of the known formats matches;
// otherwise the original date is kept with spaces replaced by hyphens.
package splitter

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/vinaywadhwa9/anjuli/internal/logging"
)

// headerRE matches one poem section header: a date line followed by a title
// line, both prefixed with ---.
var headerRE = regexp.MustCompile(`(?m)^---\s*([0-9]{1,2}[\s-]+[A-Za-z]{3,9}[\s-]+[0-9]{4})\s*\n---\s*([^\n]+)`)

// invalidFilenameRE matches characters that are not valid in filenames.
var invalidFilenameRE = regexp.MustCompile(`[<>:"/\\|?*]`)

// septRE matches the four-letter "Sept" abbreviation, which no time layout
// accepts. Word-bounded so "September" is left alone.
var septRE = regexp.MustCompile(`\bSept\b`)

// dateLayouts lists the accepted input date formats, tried in order.
var dateLayouts = []string{
	"2 Jan-2006",
	"2 Jan 2006",
	"2-Jan-2006",
	"2- Jan-2006",
	"2-January-2006",
	"2 January-2006",
	"2-January 2006",
	"2 January 2006",
	"2-Jan 2006",
	"2- January-2006",
	"2- Jan 2006",
}

// Poem is one parsed section of the input file.
type Poem struct {
	Date  string // normalized, YYYY-MM-DD when parseable
	Title string
	Body  string
}

// Parse extracts every poem section from content. Text before the first
// header is ignored.
func Parse(content string) []Poem {
	headers := headerRE.FindAllStringSubmatchIndex(content, -1)

	poems := make([]Poem, 0, len(headers))
	for i, h := range headers {
		date := strings.TrimSpace(content[h[2]:h[3]])
		title := strings.TrimSpace(content[h[4]:h[5]])

		bodyStart := h[1]
		bodyEnd := len(content)
		if i+1 < len(headers) {
			bodyEnd = headers[i+1][0]
		}
		body := strings.TrimSpace(content[bodyStart:bodyEnd])

		poems = append(poems, Poem{
			Date:  NormalizeDate(date),
			Title: title,
			Body:  body,
		})
	}
	return poems
}

// NormalizeDate converts a header date to YYYY-MM-DD. Unparseable dates fall
// back to the original text with spaces replaced by hyphens.
func NormalizeDate(date string) string {
	// The source sometimes abbreviates September as "Sept".
	candidate := septRE.ReplaceAllString(date, "Sep")

	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, candidate); err == nil {
			return parsed.Format("2006-01-02")
		}
	}

	logging.Warn("Could not parse date '%s', using original format", date)
	return strings.ReplaceAll(date, " ", "-")
}

// Filename builds the output file name for a poem, replacing characters that
// are invalid in filenames with underscores.
func (p Poem) Filename() string {
	return invalidFilenameRE.ReplaceAllString(p.Date+"_"+p.Title+".txt", "_")
}

// Split parses inputPath and writes each poem to its own file under outDir,
// creating the directory if needed. Returns the number of poems written.
func Split(inputPath, outDir string) (int, error) {
	content, err := os.ReadFile(inputPath)
	if err != nil {
		return 0, fmt.Errorf("read poems file: %w", err)
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return 0, fmt.Errorf("create output dir: %w", err)
	}

	poems := Parse(string(content))
	for _, p := range poems {
		path := filepath.Join(outDir, p.Filename())
		if err := os.WriteFile(path, []byte(p.Body), 0644); err != nil {
			return 0, fmt.Errorf("write %s: %w", path, err)
		}
		logging.Info("Created file: %s", path)
	}
	return len(poems), nil
}
