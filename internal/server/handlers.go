package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/leapstack-labs/unitconv/internal/history"
	"github.com/leapstack-labs/unitconv/pkg/units"
)

// Handlers provides the HTTP handlers of the API.
type Handlers struct {
	converter       *units.Converter
	store           history.Store
	record          bool
	defaultQuantity string
	logger          *slog.Logger
}

// NewHandlers creates a new Handlers instance. store may be nil when record is false.
func NewHandlers(conv *units.Converter, store history.Store, record bool, defaultQuantity string, logger *slog.Logger) *Handlers {
	return &Handlers{
		converter:       conv,
		store:           store,
		record:          record && store != nil,
		defaultQuantity: defaultQuantity,
		logger:          logger,
	}
}

// Healthz reports liveness.
func (h *Handlers) Healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

// Quantities lists every quantity with its units.
func (h *Handlers) Quantities(w http.ResponseWriter, _ *http.Request) {
	reg := h.converter.Registry()
	resp := QuantitiesResponse{Quantities: []QuantityInfo{}}
	for _, name := range reg.Quantities() {
		q, err := reg.Lookup(name)
		if err != nil {
			writeConvertError(w, err)
			return
		}
		resp.Quantities = append(resp.Quantities, QuantityInfo{
			Name:      q.Name(),
			Kind:      q.Kind().String(),
			Reference: q.Reference(),
			Units:     q.Units(),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// Units lists the units of the quantity in the URL.
func (h *Handlers) Units(w http.ResponseWriter, r *http.Request) {
	quantity := chi.URLParam(r, "quantity")

	list, err := h.converter.ListUnits(quantity)
	if err != nil {
		writeConvertError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, UnitsResponse{Quantity: quantity, Units: list})
}

// Convert converts value from one unit to another.
func (h *Handlers) Convert(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	from, to := q.Get("from"), q.Get("to")
	quantity := q.Get("quantity")
	if quantity == "" {
		quantity = h.defaultQuantity
	}

	raw := q.Get("value")
	if raw == "" || from == "" || to == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error: "value, from and to are required",
			Kind:  KindBadRequest,
		})
		return
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error: "invalid value: " + strconv.Quote(raw),
			Kind:  KindBadRequest,
		})
		return
	}

	result, err := h.converter.Convert(value, from, to, quantity)
	if err != nil {
		h.logger.Debug("conversion rejected", "quantity", quantity, "from", from, "to", to, "error", err)
		writeConvertError(w, err)
		return
	}
	if math.IsNaN(result) || math.IsInf(result, 0) {
		writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
			Error:    "conversion result out of range: " + raw + " " + from + " in " + to,
			Kind:     KindOutOfRange,
			Quantity: quantity,
		})
		return
	}

	if h.record {
		if err := h.store.Add(r.Context(), history.NewEntry(quantity, value, from, to, result)); err != nil {
			// The conversion itself succeeded.
			h.logger.Warn("failed to record conversion", "error", err)
		}
	}

	writeJSON(w, http.StatusOK, ConvertResponse{
		Value:    value,
		From:     from,
		To:       to,
		Quantity: quantity,
		Result:   result,
	})
}

// writeConvertError maps conversion errors to HTTP statuses:
// unknown quantity is 404, unknown unit is 422.
func writeConvertError(w http.ResponseWriter, err error) {
	var uq *units.UnknownQuantityError
	var uu *units.UnknownUnitError
	switch {
	case errors.As(err, &uq):
		writeJSON(w, http.StatusNotFound, ErrorResponse{
			Error:    err.Error(),
			Kind:     KindUnknownQuantity,
			Quantity: uq.Quantity,
		})
	case errors.As(err, &uu):
		writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
			Error:    err.Error(),
			Kind:     KindUnknownUnit,
			Quantity: uu.Quantity,
			Unit:     uu.Unit,
			Side:     uu.Side.String(),
		})
	default:
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{
			Error: err.Error(),
			Kind:  KindInternal,
		})
	}
}

// writeJSON encodes v before writing the status so an encoding failure
// still reaches the client as a 500.
func writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		buf.Reset()
		status = http.StatusInternalServerError
		_ = json.NewEncoder(&buf).Encode(ErrorResponse{
			Error: "failed to encode response: " + err.Error(),
			Kind:  KindInternal,
		})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}
