package server

import (
	"context"
	"encoding/json"
	"io"
	"math"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/unitconv/internal/history"
	"github.com/leapstack-labs/unitconv/internal/testutil"
	"github.com/leapstack-labs/unitconv/pkg/units"
)

func newTestServer(t *testing.T, cfg Config) http.Handler {
	t.Helper()
	if cfg.Logger == nil {
		cfg.Logger = testutil.NewTestLogger(t)
	}
	return NewServer(cfg).Handler()
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	rec := get(t, newTestServer(t, Config{}), "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestQuantities(t *testing.T) {
	rec := get(t, newTestServer(t, Config{}), "/api/quantities")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp QuantitiesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Quantities, len(units.Quantities()))

	names := make([]string, 0, len(resp.Quantities))
	for _, q := range resp.Quantities {
		names = append(names, q.Name)
		if q.Name == units.Temperature {
			assert.Equal(t, "affine", q.Kind)
			assert.Equal(t, "K", q.Reference)
			assert.Equal(t, []string{"K", "°C", "°F"}, q.Units)
		}
	}
	assert.Equal(t, units.Quantities(), names)
}

func TestUnits(t *testing.T) {
	h := newTestServer(t, Config{})

	rec := get(t, h, "/api/quantities/masse/units")
	require.Equal(t, http.StatusOK, rec.Code)
	var resp UnitsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "masse", resp.Quantity)
	assert.Contains(t, resp.Units, "kg")

	rec = get(t, h, "/api/quantities/volume/units")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	var errResp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	assert.Equal(t, KindUnknownQuantity, errResp.Kind)
	assert.Equal(t, "volume", errResp.Quantity)
}

func TestConvert(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		wantStatus int
		wantResult float64
		wantKind   string
		wantSide   string
	}{
		{"linear", "/api/convert?value=1&from=mile&to=m&quantity=longueur", http.StatusOK, 1609.344, "", ""},
		{"default quantity", "/api/convert?value=1&from=km&to=m", http.StatusOK, 1000, "", ""},
		{"temperature", "/api/convert?value=100&from=%C2%B0C&to=%C2%B0F&quantity=temperature", http.StatusOK, 212, "", ""},
		{"negative value", "/api/convert?value=-40&from=%C2%B0F&to=%C2%B0C&quantity=temperature", http.StatusOK, -40, "", ""},
		{"missing value", "/api/convert?from=km&to=m", http.StatusBadRequest, 0, KindBadRequest, ""},
		{"missing unit", "/api/convert?value=1&from=km", http.StatusBadRequest, 0, KindBadRequest, ""},
		{"bad value", "/api/convert?value=abc&from=km&to=m", http.StatusBadRequest, 0, KindBadRequest, ""},
		{"nan value", "/api/convert?value=NaN&from=km&to=m", http.StatusBadRequest, 0, KindBadRequest, ""},
		{"unknown quantity", "/api/convert?value=1&from=l&to=ml&quantity=volume", http.StatusNotFound, 0, KindUnknownQuantity, ""},
		{"unknown source", "/api/convert?value=1&from=parsec&to=m&quantity=longueur", http.StatusUnprocessableEntity, 0, KindUnknownUnit, "source"},
		{"unknown target", "/api/convert?value=1&from=K&to=R&quantity=temperature", http.StatusUnprocessableEntity, 0, KindUnknownUnit, "target"},
		{"overflow", "/api/convert?value=1e308&from=km&to=nm&quantity=longueur", http.StatusUnprocessableEntity, 0, KindOutOfRange, ""},
		{"negative overflow", "/api/convert?value=-1e308&from=an&to=ns&quantity=temps", http.StatusUnprocessableEntity, 0, KindOutOfRange, ""},
	}

	h := newTestServer(t, Config{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, h, tt.target)
			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())

			if tt.wantStatus == http.StatusOK {
				var resp ConvertResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				assert.Equal(t, tt.wantResult, resp.Result)
				return
			}

			var errResp ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
			assert.Equal(t, tt.wantKind, errResp.Kind)
			assert.NotEmpty(t, errResp.Error)
			assert.Equal(t, tt.wantSide, errResp.Side)
		})
	}
}

func TestWriteJSON_EncodeFailure(t *testing.T) {
	rec := httptest.NewRecorder()
	writeJSON(rec, http.StatusOK, map[string]float64{"result": math.Inf(1)})

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var errResp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	assert.Equal(t, KindInternal, errResp.Kind)
	assert.Contains(t, errResp.Error, "failed to encode response")
}

func TestConvert_DefaultQuantityFromConfig(t *testing.T) {
	h := newTestServer(t, Config{DefaultQuantity: units.Mass})
	rec := get(t, h, "/api/convert?value=2&from=kg&to=g")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ConvertResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, units.Mass, resp.Quantity)
	assert.Equal(t, 2000.0, resp.Result)
}

func TestConvert_RoundingPolicy(t *testing.T) {
	conv := units.NewConverter(nil, units.WithRounding(units.RoundAll), units.WithPrecision(1))
	h := newTestServer(t, Config{Converter: conv})

	rec := get(t, h, "/api/convert?value=1&from=mile&to=km")
	require.Equal(t, http.StatusOK, rec.Code)
	var resp ConvertResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1.6, resp.Result)
}

func TestConvert_Records(t *testing.T) {
	ctx := context.Background()
	store, err := history.OpenStore(ctx, ":memory:", 50)
	require.NoError(t, err)
	defer store.Close()

	h := newTestServer(t, Config{Store: store, Record: true})
	require.Equal(t, http.StatusOK, get(t, h, "/api/convert?value=1&from=km&to=m").Code)
	require.Equal(t, http.StatusUnprocessableEntity, get(t, h, "/api/convert?value=1&from=km&to=x").Code)
	require.Equal(t, http.StatusUnprocessableEntity, get(t, h, "/api/convert?value=1e308&from=km&to=nm").Code)

	entries, err := store.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1, "only successful conversions are recorded")
	assert.Equal(t, "1 km = 1000 m", entries[0].Text())
}

func TestConvert_NoRecordByDefault(t *testing.T) {
	ctx := context.Background()
	store, err := history.OpenStore(ctx, ":memory:", 50)
	require.NoError(t, err)
	defer store.Close()

	h := newTestServer(t, Config{Store: store})
	require.Equal(t, http.StatusOK, get(t, h, "/api/convert?value=1&from=km&to=m").Code)

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestNotFoundAndMethod(t *testing.T) {
	h := newTestServer(t, Config{})

	rec := get(t, h, "/api/nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), KindNotFound)

	req := httptest.NewRequest(http.MethodPost, "/api/convert", nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestServeListener_GracefulShutdown(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- NewServer(Config{Logger: testutil.NewTestLogger(t)}).ServeListener(ctx, ln)
	}()

	url := "http://" + ln.Addr().String() + "/healthz"
	var resp *http.Response
	require.Eventually(t, func() bool {
		resp, err = http.Get(url)
		return err == nil
	}, 2*time.Second, 20*time.Millisecond)
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	assert.Equal(t, "ok", string(body))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
