package source

import (
	"strconv"
	"strings"

	"smartmentor/internal"
	"smartmentor/internal/util"
)

type recordKind int

const (
	kindUnknown recordKind = iota
	kindDevice
	kindComponent
	kindGuide
	kindStep
)

// table is one tabular fragment from a scraped file: a header row plus data
// rows, all cells as strings.
type table struct {
	headers []string
	rows    [][]string
}

// classify infers the entity kind from header keywords. Step headers are
// probed first because step tables also carry a guide reference, and
// component tables a device reference.
func (t table) classify() recordKind {
	norm := make([]string, 0, len(t.headers))
	for _, h := range t.headers {
		norm = append(norm, util.NormalizeColumn(h))
	}

	switch {
	case headerIndex(norm, []string{"step"}) >= 0:
		return kindStep
	case headerIndex(norm, []string{"component"}) >= 0:
		return kindComponent
	case headerIndex(norm, []string{"title", "guide"}) >= 0:
		return kindGuide
	case headerIndex(norm, []string{"device", "board", "name"}) >= 0:
		return kindDevice
	default:
		return kindUnknown
	}
}

// appendTo converts the table's rows into raw records of the classified kind.
// Conversion is lenient: unreadable references stay zero and fall out later
// as malformed records, with a warning, rather than failing the build.
func (t table) appendTo(doc *internal.RawDocument) {
	norm := make([]string, 0, len(t.headers))
	for _, h := range t.headers {
		norm = append(norm, util.NormalizeColumn(h))
	}

	switch t.classify() {
	case kindDevice:
		nameIdx := headerIndex(norm, []string{"device_name", "device", "board", "name"})
		typeIdx := headerIndex(norm, []string{"device_type", "type"})
		imageIdx := headerIndex(norm, []string{"image", "url"})
		for _, row := range t.rows {
			name := cell(row, nameIdx)
			if name == "" {
				continue
			}
			doc.Devices = append(doc.Devices, internal.RawDevice{
				DeviceName: name,
				DeviceType: util.StringOrNil(cell(row, typeIdx)),
				ImageURL:   util.StringOrNil(cell(row, imageIdx)),
			})
		}
	case kindComponent:
		deviceIdx := headerIndex(norm, []string{"device_id", "device"})
		nameIdx := headerIndex(norm, []string{"component_name", "component", "name"})
		descIdx := headerIndex(norm, []string{"description", "desc"})
		for _, row := range t.rows {
			doc.Components = append(doc.Components, internal.RawComponent{
				DeviceID:      cellInt64(row, deviceIdx),
				ComponentName: cell(row, nameIdx),
				Description:   util.StringOrNil(cell(row, descIdx)),
			})
		}
	case kindGuide:
		guideIdx := headerIndex(norm, []string{"guide_id"})
		deviceIdx := headerIndex(norm, []string{"device_id", "device"})
		titleIdx := headerIndex(norm, []string{"title", "guide_title"})
		dateIdx := headerIndex(norm, []string{"date"})
		urlIdx := headerIndex(norm, []string{"url", "link"})
		for _, row := range t.rows {
			doc.Guides = append(doc.Guides, internal.RawGuide{
				GuideID:     cellInt64(row, guideIdx),
				DeviceID:    cellInt64(row, deviceIdx),
				Title:       cell(row, titleIdx),
				DateCreated: util.StringOrNil(cell(row, dateIdx)),
				GuideURL:    util.StringOrNil(cell(row, urlIdx)),
			})
		}
	case kindStep:
		guideIdx := headerIndex(norm, []string{"guide_id", "guide"})
		numberIdx := headerIndex(norm, []string{"step_number", "stepnumber", "number", "step"})
		descIdx := headerIndex(norm, []string{"description", "instruction"})
		for _, row := range t.rows {
			doc.Steps = append(doc.Steps, internal.RawStep{
				GuideID:     cellInt64(row, guideIdx),
				StepNumber:  int(cellInt64(row, numberIdx)),
				Description: cell(row, descIdx),
			})
		}
	}
}

func headerIndex(headers []string, probes []string) int {
	for _, probe := range probes {
		for i, h := range headers {
			if strings.Contains(h, probe) {
				return i
			}
		}
	}
	return -1
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return util.NormalizeSpaces(row[idx])
}

func cellInt64(row []string, idx int) int64 {
	raw := cell(row, idx)
	if raw == "" {
		return 0
	}
	parsed, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		// Spreadsheet cells sometimes render integers as floats.
		f, ferr := strconv.ParseFloat(raw, 64)
		if ferr != nil {
			return 0
		}
		return int64(f)
	}
	return parsed
}
