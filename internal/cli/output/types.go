package output

import "time"

// ConversionOutput is the result of one conversion.
type ConversionOutput struct {
	Value    float64 `json:"value"`
	From     string  `json:"from"`
	To       string  `json:"to"`
	Quantity string  `json:"quantity"`
	Result   float64 `json:"result"`
}

// QuantityInfo describes a quantity and its units.
type QuantityInfo struct {
	Name      string   `json:"name"`
	Label     string   `json:"label"`
	Kind      string   `json:"kind"`
	Reference string   `json:"reference"`
	Units     []string `json:"units"`
}

// QuantitiesOutput is the output of the quantities command.
type QuantitiesOutput struct {
	Quantities []QuantityInfo `json:"quantities"`
}

// UnitsOutput is the output of the units command.
type UnitsOutput struct {
	Quantity string   `json:"quantity"`
	Units    []string `json:"units"`
}

// HistoryEntry is one history line.
type HistoryEntry struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Quantity  string    `json:"quantity"`
	Value     float64   `json:"value"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	Result    float64   `json:"result"`
	Text      string    `json:"text"`
}

// HistoryOutput is the output of history list.
type HistoryOutput struct {
	Entries []HistoryEntry `json:"entries"`
	Total   int            `json:"total"`
}

// VersionOutput is the output of version.
type VersionOutput struct {
	Version    string `json:"version"`
	BuildDate  string `json:"build_date"`
	GitCommit  string `json:"git_commit"`
	GoVersion  string `json:"go_version"`
	Quantities int    `json:"quantities"`
	Units      int    `json:"units"`
	Rounding   string `json:"rounding"`
}
