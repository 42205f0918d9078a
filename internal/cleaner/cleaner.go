// Package cleaner strips stray punctuation and noise from corpus cells before
// conversion. The source spreadsheets are hand-edited, so cells routinely
// carry leading/trailing CJK punctuation, bare numbering, or editorial markers
// that must not end up as sentence text.
package cleaner

import (
	"fmt"
	"regexp"
	"strings"
)

// DefaultPunctuation is the set of runes stripped from both ends of a cell.
const DefaultPunctuation = "=，。、；：！？“”‘’（）%【】《》〈〉「」『』〔〕｛｝〖〗·…—•~\\"

// DefaultClearPatterns blank any cell they fully match: editorial markers,
// bare numbering, and cells mixing digits with letters or CJK text (which are
// annotations, not sentences).
var DefaultClearPatterns = []string{
	`SPC_ORD`,
	`\d+`,
	`\(\d+\)`,
	`SPC_INFO`,
	`.*\d.*[a-zA-Z\x{4e00}-\x{9fff}].*|.*[a-zA-Z\x{4e00}-\x{9fff}].*\d.*`,
}

// Rules is a compiled cell-cleanup configuration.
type Rules struct {
	punctuation string
	patterns    []*regexp.Regexp
}

// NewRules compiles a rule set. Patterns match the whole cell value.
func NewRules(punctuation string, clearPatterns []string) (*Rules, error) {
	r := &Rules{punctuation: punctuation}
	for _, p := range clearPatterns {
		re, err := regexp.Compile(`^(?:` + p + `)$`)
		if err != nil {
			return nil, fmt.Errorf("compile clear pattern %q: %w", p, err)
		}
		r.patterns = append(r.patterns, re)
	}
	return r, nil
}

// DefaultRules returns the stock rule set. The defaults always compile.
func DefaultRules() *Rules {
	r, err := NewRules(DefaultPunctuation, DefaultClearPatterns)
	if err != nil {
		panic(err)
	}
	return r
}

// CleanCell returns the cleaned cell value. A cell fully matching a clear
// pattern comes back empty; otherwise leading and trailing punctuation runes
// are stripped.
func (r *Rules) CleanCell(s string) string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return s
	}
	for _, re := range r.patterns {
		if re.MatchString(trimmed) {
			return ""
		}
	}
	return strings.Trim(s, r.punctuation)
}

// CleanRows cleans every cell in the given columns, in place, and returns the
// number of cells that changed. Column indexes outside a row are skipped.
func (r *Rules) CleanRows(rows [][]string, columns []int) int {
	changed := 0
	for _, row := range rows {
		for _, col := range columns {
			if col < 0 || col >= len(row) {
				continue
			}
			cleaned := r.CleanCell(row[col])
			if cleaned != row[col] {
				row[col] = cleaned
				changed++
			}
		}
	}
	return changed
}
