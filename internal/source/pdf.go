package source

import (
	"bytes"
	"os"
	"strings"

	pdf "github.com/ledongthuc/pdf"

	"smartmentor/internal"
	"smartmentor/internal/util"
)

// appendPDF pulls component lines out of a scraped datasheet. Datasheet text
// carries components as "Name - Description" lines; they attach to the first
// device in the snapshot (raw id 1), matching how single-device datasheets
// are scraped. Lines for a missing device fall out later as orphans.
func appendPDF(doc *internal.RawDocument, path string) error {
	blob, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	components, err := componentsFromPDF(blob)
	if err != nil {
		return err
	}
	doc.Components = append(doc.Components, components...)
	return nil
}

func componentsFromPDF(blob []byte) ([]internal.RawComponent, error) {
	r, err := pdf.NewReader(bytes.NewReader(blob), int64(len(blob)))
	if err != nil {
		return nil, err
	}

	var out []internal.RawComponent
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			continue
		}
		for _, line := range strings.Split(text, "\n") {
			comp, ok := componentFromLine(line)
			if ok {
				out = append(out, comp)
			}
		}
	}
	return out, nil
}

func componentFromLine(line string) (internal.RawComponent, bool) {
	name, desc, found := strings.Cut(util.NormalizeSpaces(line), " - ")
	name = strings.TrimSpace(name)
	if !found || name == "" {
		return internal.RawComponent{}, false
	}
	return internal.RawComponent{
		DeviceID:      1,
		ComponentName: name,
		Description:   util.StringOrNil(desc),
	}, true
}
