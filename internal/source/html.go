package source

import (
	"fmt"
	"io"
	"strings"

	"github.com/wenjia-h/corpustree/internal/corpus"
	"github.com/wenjia-h/corpustree/internal/tabular"
	"golang.org/x/net/html"
)

// HTMLLoader extracts the first table from an HTML page and converts it as a
// tabular corpus. Corpus snapshots circulate as exported HTML tables, so the
// loader only cares about <table>/<tr>/<th>/<td>.
type HTMLLoader struct {
	Options tabular.Options
}

func (l *HTMLLoader) Load(r io.Reader, filename string) (*corpus.Record, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	table := findElement(doc, "table")
	if table == nil {
		return nil, fmt.Errorf("no table found in %s", filename)
	}

	var allRows [][]string
	var collectRows func(*html.Node)
	collectRows = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "tr" {
			var row []string
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.ElementNode && (c.Data == "td" || c.Data == "th") {
					row = append(row, textContent(c))
				}
			}
			if len(row) > 0 {
				allRows = append(allRows, row)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collectRows(c)
		}
	}
	collectRows(table)

	if len(allRows) == 0 {
		return nil, fmt.Errorf("table in %s has no rows", filename)
	}

	headers, rows := normalizeTable(allRows[0], allRows[1:])
	return tabular.ToRecord(headers, rows, l.Options)
}

func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

func textContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(buf.String())
}
