package logging

import (
	"fmt"
	"strings"
)

// MetricRow is a single label/value row in a summary table. Values are
// pre-formatted strings so mixed formats (counts, durations, paths) align.
type MetricRow struct {
	Label string
	Value string
	Unit  string
}

// MetricTable renders aligned label/value rows for the run report and the
// console summary.
type MetricTable struct {
	Rows []MetricRow
}

// Add appends a pre-formatted row.
func (t *MetricTable) Add(label, value, unit string) {
	t.Rows = append(t.Rows, MetricRow{Label: label, Value: value, Unit: unit})
}

// AddInt appends an integer row.
func (t *MetricTable) AddInt(label string, value int, unit string) {
	t.Add(label, fmt.Sprintf("%d", value), unit)
}

// String renders the table. Labels are left-aligned, values right-aligned,
// units trail the value column.
func (t *MetricTable) String() string {
	if len(t.Rows) == 0 {
		return ""
	}

	labelWidth := 0
	valueWidth := 0
	for _, row := range t.Rows {
		if len(row.Label) > labelWidth {
			labelWidth = len(row.Label)
		}
		if len(row.Value) > valueWidth {
			valueWidth = len(row.Value)
		}
	}

	var sb strings.Builder
	for _, row := range t.Rows {
		sb.WriteString(fmt.Sprintf("%-*s  %*s", labelWidth, row.Label, valueWidth, row.Value))
		if row.Unit != "" {
			sb.WriteString(" " + row.Unit)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
