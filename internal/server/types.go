package server

// QuantityInfo describes one quantity.
type QuantityInfo struct {
	Name      string   `json:"name"`
	Kind      string   `json:"kind"`
	Reference string   `json:"reference"`
	Units     []string `json:"units"`
}

// QuantitiesResponse is the body of GET /api/quantities.
type QuantitiesResponse struct {
	Quantities []QuantityInfo `json:"quantities"`
}

// UnitsResponse is the body of GET /api/quantities/{quantity}/units.
type UnitsResponse struct {
	Quantity string   `json:"quantity"`
	Units    []string `json:"units"`
}

// ConvertResponse is the body of GET /api/convert.
type ConvertResponse struct {
	Value    float64 `json:"value"`
	From     string  `json:"from"`
	To       string  `json:"to"`
	Quantity string  `json:"quantity"`
	Result   float64 `json:"result"`
}

// Error kinds reported in ErrorResponse.Kind.
const (
	KindBadRequest      = "bad_request"
	KindNotFound        = "not_found"
	KindUnknownQuantity = "unknown_quantity"
	KindUnknownUnit     = "unknown_unit"
	KindOutOfRange      = "out_of_range"
	KindInternal        = "internal"
)

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	Error    string `json:"error"`
	Kind     string `json:"kind"`
	Quantity string `json:"quantity,omitempty"`
	Unit     string `json:"unit,omitempty"`
	Side     string `json:"side,omitempty"`
}
