package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pcparts/catalog/internal/catalog"
	"github.com/pcparts/catalog/internal/store/sqlite"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	db, err := sqlite.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	st, err := sqlite.New(context.Background(), db)
	require.NoError(t, err)

	router := NewRouter(catalog.New(st, zerolog.Nop()), Paging{DefaultLimit: 2, MaxLimit: 3}, func() bool { return true }, zerolog.Nop())
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, srv *httptest.Server, method, path string, body any) (*http.Response, []byte) {
	t.Helper()
	var rdr io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		rdr = strings.NewReader(b)
	default:
		buf, err := json.Marshal(b)
		require.NoError(t, err)
		rdr = bytes.NewReader(buf)
	}
	req, err := http.NewRequest(method, srv.URL+path, rdr)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func createNamed(t *testing.T, srv *httptest.Server, path, name string) string {
	t.Helper()
	resp, body := doJSON(t, srv, http.MethodPost, "/api/v1/"+path, map[string]any{"name": name})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var out struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, "/api/v1/"+path+"/"+out.ID, resp.Header.Get("Location"))
	return out.ID
}

type violationBody struct {
	Violations []struct {
		ParamNames []string `json:"paramNames"`
		Message    string   `json:"message"`
	} `json:"violations"`
}

func decodeViolation(t *testing.T, body []byte) ([]string, string) {
	t.Helper()
	var v violationBody
	require.NoError(t, json.Unmarshal(body, &v), string(body))
	require.Len(t, v.Violations, 1)
	return v.Violations[0].ParamNames, v.Violations[0].Message
}

func TestHDDScenario(t *testing.T) {
	srv := newTestServer(t)
	seagate := createNamed(t, srv, "vendors", "Seagate")
	toshiba := createNamed(t, srv, "vendors", "Toshiba")
	sata3 := createNamed(t, srv, "storage-connectors", "SATA 3")
	sata2 := createNamed(t, srv, "storage-connectors", "SATA 2")

	hdd := map[string]any{
		"name": "Barracuda", "vendor": seagate, "connector": sata3,
		"capacity": 1024, "spindleSpeed": 7200, "cacheSize": 64,
	}
	resp, body := doJSON(t, srv, http.MethodPost, "/api/v1/hdds", hdd)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	var created map[string]any
	require.NoError(t, json.Unmarshal(body, &created))
	assert.Equal(t, map[string]any{"id": seagate, "name": "Seagate"}, created["vendor"])
	assert.Nil(t, created["powerConnector"])
	assert.Contains(t, created, "powerConnector", "absent optional references render as null")

	hdd["vendor"] = toshiba
	hdd["connector"] = sata2
	resp, body = doJSON(t, srv, http.MethodPost, "/api/v1/hdds", hdd)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	params, msg := decodeViolation(t, body)
	assert.Equal(t, []string{"name", "capacity", "spindleSpeed", "cacheSize"}, params)
	assert.Equal(t, "HDD with name <Barracuda> capacity <1024> spindle speed <7200> and cache size <64> already exists!", msg)
}

func TestCPUScenario_PatchUnknownRAMType(t *testing.T) {
	srv := newTestServer(t)
	intel := createNamed(t, srv, "vendors", "Intel")
	socket := createNamed(t, srv, "sockets", "LGA1700")
	ddr4 := createNamed(t, srv, "ram-types", "DDR4")
	ddr5 := createNamed(t, srv, "ram-types", "DDR5")

	resp, body := doJSON(t, srv, http.MethodPost, "/api/v1/cpus", map[string]any{
		"name": "i5 12400F", "vendor": intel, "socket": socket,
		"cores": 6, "threads": 12, "baseClock": 2500, "boostClock": 4400, "tdp": 65,
		"supportedRamTypes": []map[string]any{
			{"ramType": ddr4, "maxMemoryClock": 3200},
			{"ramType": ddr5, "maxMemoryClock": 4800},
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	location := resp.Header.Get("Location")
	before := body

	resp, body = doJSON(t, srv, http.MethodPatch, location, map[string]any{
		"supportedRamTypes": []map[string]any{{"ramType": "00000000-0000-0000-0000-000000000000", "maxMemoryClock": 6000}},
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	params, msg := decodeViolation(t, body)
	assert.Equal(t, []string{"id"}, params)
	assert.Equal(t, "RAM type with ID = <00000000-0000-0000-0000-000000000000> not found!", msg)

	resp, body = doJSON(t, srv, http.MethodGet, location, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, string(before), string(body))
}

func TestErrorsAndIdempotentDelete(t *testing.T) {
	srv := newTestServer(t)
	vendor := createNamed(t, srv, "vendors", "Noctua")

	resp, body := doJSON(t, srv, http.MethodPost, "/api/v1/coolers", `{"name": "NH-D15", "vendor": `)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	params, msg := decodeViolation(t, body)
	assert.Empty(t, params)
	assert.Equal(t, "Malformed request body!", msg)

	resp, body = doJSON(t, srv, http.MethodPost, "/api/v1/coolers", map[string]any{"name": "NH-D15", "vendor": nil, "supportedSockets": []string{"x"}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	params, msg = decodeViolation(t, body)
	assert.Equal(t, []string{"vendor"}, params)
	assert.Equal(t, "Invalid param value!", msg)

	resp, body = doJSON(t, srv, http.MethodPost, "/api/v1/coolers", map[string]any{"name": "NH-D15", "vendor": vendor, "height": -1, "supportedSockets": []string{"x"}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	params, _ = decodeViolation(t, body)
	assert.Equal(t, []string{"height"}, params)

	resp, body = doJSON(t, srv, http.MethodGet, "/api/v1/coolers/nope", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	params, msg = decodeViolation(t, body)
	assert.Empty(t, params)
	assert.Equal(t, "Cooler with ID = <nope> not found!", msg)

	for i := 0; i < 2; i++ {
		resp, _ = doJSON(t, srv, http.MethodDelete, "/api/v1/vendors/"+vendor, nil)
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	}
	resp, _ = doJSON(t, srv, http.MethodGet, "/api/v1/vendors/"+vendor, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDeleteReferencedDictionary(t *testing.T) {
	srv := newTestServer(t)
	vendor := createNamed(t, srv, "vendors", "Noctua")
	socket := createNamed(t, srv, "sockets", "AM5")

	resp, body := doJSON(t, srv, http.MethodPost, "/api/v1/coolers", map[string]any{
		"name": "NH-D15", "vendor": vendor, "height": 165, "supportedSockets": []string{socket},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	resp, body = doJSON(t, srv, http.MethodDelete, "/api/v1/vendors/"+vendor, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	params, msg := decodeViolation(t, body)
	assert.Equal(t, []string{"id"}, params)
	assert.Equal(t, "Invalid param value!", msg)

	resp, _ = doJSON(t, srv, http.MethodGet, "/api/v1/vendors/"+vendor, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestPatchPreservesPutResets(t *testing.T) {
	srv := newTestServer(t)
	samsung := createNamed(t, srv, "vendors", "Samsung")
	sata := createNamed(t, srv, "storage-connectors", "SATA 3")
	power := createNamed(t, srv, "storage-power-connectors", "SATA power")
	bay := createNamed(t, srv, "expansion-bay-formats", "2.5")

	resp, body := doJSON(t, srv, http.MethodPost, "/api/v1/ssds", map[string]any{
		"name": "870 EVO", "vendor": samsung, "connector": sata, "powerConnector": power,
		"formFactor": bay, "capacity": 500, "readSpeed": 560, "writeSpeed": 530,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	location := resp.Header.Get("Location")

	resp, body = doJSON(t, srv, http.MethodPatch, location, map[string]any{"capacity": 1000})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var patched catalog.SSDResponse
	require.NoError(t, json.Unmarshal(body, &patched))
	assert.Equal(t, 1000, patched.Capacity)
	assert.Equal(t, 560, patched.ReadSpeed)
	require.NotNil(t, patched.PowerConnector)
	assert.Equal(t, "SATA power", patched.PowerConnector.Name)

	resp, body = doJSON(t, srv, http.MethodPut, location, map[string]any{
		"name": "870 EVO", "vendor": samsung, "connector": sata, "formFactor": bay, "capacity": 1000,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var replaced catalog.SSDResponse
	require.NoError(t, json.Unmarshal(body, &replaced))
	assert.Nil(t, replaced.PowerConnector)
	assert.Zero(t, replaced.ReadSpeed)

	resp, body = doJSON(t, srv, http.MethodPut, "/api/v1/ssds/unknown", map[string]any{"name": "x"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	params, _ := decodeViolation(t, body)
	assert.Empty(t, params)
}

func TestPageable(t *testing.T) {
	srv := newTestServer(t)
	for _, name := range []string{"DDR3", "DDR5", "DDR4", "DDR2"} {
		createNamed(t, srv, "ram-types", name)
	}

	resp, body := doJSON(t, srv, http.MethodGet, "/api/v1/ram-types/pageable", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var page catalog.Page[map[string]any]
	require.NoError(t, json.Unmarshal(body, &page))
	assert.Equal(t, 4, page.TotalElements)
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, 2, page.Limit)
	assert.Equal(t, "name,asc", page.Sort)
	require.Len(t, page.Content, 2)
	assert.Equal(t, "DDR2", page.Content[0]["name"])

	resp, body = doJSON(t, srv, http.MethodGet, "/api/v1/ram-types/pageable?offset=1&limit=50&sort=name,desc", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	require.NoError(t, json.Unmarshal(body, &page))
	assert.Equal(t, 3, page.Limit, "limit is clamped to the maximum")
	require.Len(t, page.Content, 3)
	assert.Equal(t, "DDR4", page.Content[0]["name"])

	for _, q := range []string{"sort=colour", "sort=name,sideways", "offset=-1", "limit=0", "limit=abc"} {
		resp, _ = doJSON(t, srv, http.MethodGet, "/api/v1/ram-types/pageable?"+q, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, q)
	}

	resp, body = doJSON(t, srv, http.MethodGet, "/api/v1/ram-types", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var all []map[string]any
	require.NoError(t, json.Unmarshal(body, &all))
	assert.Len(t, all, 4)
}

func TestHealthAndMetrics(t *testing.T) {
	srv := newTestServer(t)

	resp, body := doJSON(t, srv, http.MethodGet, "/api/health", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"status":"healthy"`)

	resp, body = doJSON(t, srv, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "catalog_http_requests_total")
	assert.NotEmpty(t, resp.Header.Get("Content-Type"))
}
