package source

import (
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"smartmentor/internal"
)

func appendHTML(doc *internal.RawDocument, path string) error {
	blob, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	for _, t := range tablesFromHTML(string(blob)) {
		t.appendTo(doc)
	}
	return nil
}

// tablesFromHTML extracts every <table> from a saved scrape page. The first
// row supplies the headers.
func tablesFromHTML(html string) []table {
	page, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	var out []table
	page.Find("table").Each(func(_ int, sel *goquery.Selection) {
		rows := sel.Find("tr")
		if rows.Length() < 2 {
			return
		}

		t := table{}
		rows.First().Find("th,td").Each(func(_ int, c *goquery.Selection) {
			t.headers = append(t.headers, strings.TrimSpace(c.Text()))
		})
		rows.Slice(1, rows.Length()).Each(func(_ int, row *goquery.Selection) {
			cells := []string{}
			row.Find("th,td").Each(func(_ int, c *goquery.Selection) {
				cells = append(cells, strings.TrimSpace(c.Text()))
			})
			if !emptyRow(cells) {
				t.rows = append(t.rows, cells)
			}
		})
		if len(t.headers) > 0 && len(t.rows) > 0 {
			out = append(out, t)
		}
	})
	return out
}
