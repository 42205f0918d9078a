// Package tabular converts between the spreadsheet-shaped corpus (one row per
// chapter/line pair, one column per version) and the nested record form the
// tree builder consumes.
package tabular

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/wenjia-h/corpustree/internal/cleaner"
	"github.com/wenjia-h/corpustree/internal/corpus"
)

// Options control tabular conversion.
type Options struct {
	SegColumn string         // chapter index column, default "seg"
	LnColumn  string         // sentence line column, default "ln"
	RootName  string         // name of the synthesized root node
	Clean     *cleaner.Rules // optional cell cleanup applied to version cells
}

func (o Options) withDefaults() Options {
	if o.SegColumn == "" {
		o.SegColumn = "seg"
	}
	if o.LnColumn == "" {
		o.LnColumn = "ln"
	}
	if o.RootName == "" {
		o.RootName = "root"
	}
	return o
}

// ToRecord converts a header row plus data rows into a nested corpus record:
// root → one version per non-index column → one chapter per distinct seg value
// with text in that version → one sentence per row. Rows whose seg or ln cell
// does not parse as an integer are skipped, and chapters or versions that end
// up empty are omitted, matching how the source converter tolerates sparse
// spreadsheets.
func ToRecord(headers []string, rows [][]string, opts Options) (*corpus.Record, error) {
	opts = opts.withDefaults()

	segCol, lnCol := -1, -1
	for i, h := range headers {
		switch strings.TrimSpace(h) {
		case opts.SegColumn:
			segCol = i
		case opts.LnColumn:
			lnCol = i
		}
	}
	if segCol < 0 {
		return nil, fmt.Errorf("missing required column %q", opts.SegColumn)
	}
	if lnCol < 0 {
		return nil, fmt.Errorf("missing required column %q", opts.LnColumn)
	}

	root := &corpus.Record{
		Name: opts.RootName,
		Type: "root",
		Attrs: corpus.Attrs{
			corpus.AttrDescription: corpus.String("corpus root"),
		},
		Children: []*corpus.Record{},
	}

	versionIdx := 1
	for col, header := range headers {
		if col == segCol || col == lnCol {
			continue
		}
		version := strings.TrimSpace(header)
		if version == "" {
			continue
		}
		versionNode := buildVersion(version, versionIdx, col, segCol, lnCol, rows, opts)
		if len(versionNode.Children) > 0 {
			root.Children = append(root.Children, versionNode)
			versionIdx++
		}
	}
	return root, nil
}

func buildVersion(version string, index, col, segCol, lnCol int, rows [][]string, opts Options) *corpus.Record {
	node := &corpus.Record{
		Name: version,
		Type: "version",
		Attrs: corpus.Attrs{
			corpus.AttrDescription: corpus.String("corpus version: " + version),
			corpus.AttrIndex:       corpus.Int(int64(index)),
		},
		Children: []*corpus.Record{},
	}

	// Group rows by chapter, keeping source row order within each chapter.
	type line struct {
		ln   int64
		text string
	}
	chapters := make(map[int64][]line)
	for _, row := range rows {
		text := cellAt(row, col)
		if opts.Clean != nil {
			text = opts.Clean.CleanCell(text)
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		seg, err := strconv.ParseInt(strings.TrimSpace(cellAt(row, segCol)), 10, 64)
		if err != nil {
			continue
		}
		ln, err := strconv.ParseInt(strings.TrimSpace(cellAt(row, lnCol)), 10, 64)
		if err != nil {
			continue
		}
		chapters[seg] = append(chapters[seg], line{ln: ln, text: text})
	}

	segs := make([]int64, 0, len(chapters))
	for seg := range chapters {
		segs = append(segs, seg)
	}
	sort.Slice(segs, func(i, j int) bool { return segs[i] < segs[j] })

	for _, seg := range segs {
		lines := chapters[seg]
		chapter := &corpus.Record{
			Name: fmt.Sprintf("Chapter %d", seg),
			Type: "chapter",
			Attrs: corpus.Attrs{
				corpus.AttrChapterNumber: corpus.Int(seg),
				corpus.AttrSentenceCount: corpus.Int(int64(len(lines))),
			},
			Children: []*corpus.Record{},
		}
		for _, l := range lines {
			chapter.Children = append(chapter.Children, &corpus.Record{
				Name: fmt.Sprintf("Sentence %d", l.ln),
				Type: "sentence",
				Attrs: corpus.Attrs{
					corpus.AttrChapterNumber:  corpus.Int(seg),
					corpus.AttrSentenceNumber: corpus.Int(l.ln),
					corpus.AttrText:           corpus.String(l.text),
					corpus.AttrVersion:        corpus.String(version),
				},
			})
		}
		node.Children = append(node.Children, chapter)
	}
	return node
}

func cellAt(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}

// WriteCSV emits the header row and data rows as CSV.
func WriteCSV(w io.Writer, headers []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(headers); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, row := range rows {
		// Pad short rows so every record has the header width.
		if len(row) < len(headers) {
			padded := make([]string, len(headers))
			copy(padded, row)
			row = padded
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
