// Package charts persists the user's saved chart configurations. The store
// is an explicit repository injected into the UI layer; nothing in the
// ingestion pipeline depends on it.
package charts

import (
	"time"

	"chartdata/dataset"
)

// FieldMapping records which inferred fields drive each chart axis.
type FieldMapping struct {
	XField      string `yaml:"xField,omitempty" json:"xField,omitempty"`
	YField      string `yaml:"yField,omitempty" json:"yField,omitempty"`
	SeriesField string `yaml:"seriesField,omitempty" json:"seriesField,omitempty"`
	ValueField  string `yaml:"valueField,omitempty" json:"valueField,omitempty"`
}

// StoredChart is one saved chart: the source it was built from, the chart
// type chosen in the wizard and the field mapping. Fingerprint identifies
// the source file contents so re-uploads of identical data can be detected.
type StoredChart struct {
	ID          string             `yaml:"id" json:"id"`
	Name        string             `yaml:"name" json:"name"`
	ChartType   string             `yaml:"chartType" json:"chartType"`
	Source      dataset.DataSource `yaml:"source" json:"source"`
	Mapping     FieldMapping       `yaml:"mapping" json:"mapping"`
	Fingerprint string             `yaml:"fingerprint,omitempty" json:"fingerprint,omitempty"`
	CreatedAt   time.Time          `yaml:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `yaml:"updatedAt" json:"updatedAt"`
}
