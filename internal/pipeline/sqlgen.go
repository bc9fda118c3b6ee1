package pipeline

import (
	"fmt"
	"strings"

	"smartmentor/internal"
)

// RenderSQL renders the dataset as one INSERT statement per record, parents
// before children: Devices, Components, Guides, Steps. Each kind gets a
// banner and kinds are separated by a blank line.
func RenderSQL(ds internal.Dataset) string {
	var b strings.Builder

	b.WriteString(banner("DEVICES"))
	for _, dev := range ds.Devices {
		fmt.Fprintf(&b, "INSERT INTO Devices (DeviceID, DeviceName, DeviceType, ImageURL) VALUES (%d, %s, %s, %s);\n",
			dev.DeviceID, quote(dev.DeviceName), nullable(dev.DeviceType), nullable(dev.ImageURL))
	}

	b.WriteString("\n")
	b.WriteString(banner("COMPONENTS"))
	for _, comp := range ds.Components {
		fmt.Fprintf(&b, "INSERT INTO Components (ComponentID, DeviceID, ComponentName, Description) VALUES (%d, %d, %s, %s);\n",
			comp.ComponentID, comp.DeviceID, quote(comp.ComponentName), nullable(comp.Description))
	}

	b.WriteString("\n")
	b.WriteString(banner("GUIDES"))
	for _, guide := range ds.Guides {
		fmt.Fprintf(&b, "INSERT INTO Guides (GuideID, DeviceID, Title, DateCreated, GuideURL) VALUES (%d, %d, %s, %s, %s);\n",
			guide.GuideID, guide.DeviceID, quote(guide.Title), nullable(guide.DateCreated), nullable(guide.GuideURL))
	}

	b.WriteString("\n")
	b.WriteString(banner("STEPS"))
	for _, step := range ds.Steps {
		fmt.Fprintf(&b, "INSERT INTO Steps (StepID, GuideID, StepNumber, Description) VALUES (%d, %d, %d, %s);\n",
			step.StepID, step.GuideID, step.StepNumber, quote(step.Description))
	}

	return b.String()
}

func banner(name string) string {
	return "-- ==================== " + name + " ====================\n"
}

// quote renders a SQL string literal, doubling embedded single quotes.
func quote(value string) string {
	return "'" + strings.ReplaceAll(value, "'", "''") + "'"
}

// nullable renders an optional string column: bare NULL when absent.
func nullable(value *string) string {
	if value == nil {
		return "NULL"
	}
	return quote(*value)
}
