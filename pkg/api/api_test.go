package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/coursegraph/coursegraph/pkg/pipeline"
)

func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{})
	srv := NewServer(pipeline.NewRunner(nil, nil, logger), logger)
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts
}

func postJSON(t *testing.T, url string, body any) (*http.Response, map[string]any) {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var decoded map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp, decoded
}

func validCatalog() map[string]string {
	return map[string]string{
		"CS101":   "",
		"CS201":   "CS101",
		"CS301":   "CS201 and one of MATH101 or MATH102",
		"MATH101": "",
		"MATH102": "",
	}
}

func TestHealthz(t *testing.T) {
	ts := testServer(t)
	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}
	if resp.Header.Get("X-Request-ID") == "" {
		t.Error("response should carry X-Request-ID")
	}
}

func TestVersion(t *testing.T) {
	ts := testServer(t)
	resp, err := http.Get(ts.URL + "/version")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["version"] == "" {
		t.Error("version should not be empty")
	}
}

func TestValidateOK(t *testing.T) {
	ts := testServer(t)
	resp, body := postJSON(t, ts.URL+"/v1/validate", map[string]any{"courses": validCatalog()})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body = %v", resp.StatusCode, body)
	}
	if body["valid"] != true {
		t.Errorf("valid = %v", body["valid"])
	}
	if body["courses"].(float64) != 5 {
		t.Errorf("courses = %v", body["courses"])
	}
	if body["catalog_hash"] == "" {
		t.Error("catalog_hash should be set")
	}
}

func TestValidateReportsProblems(t *testing.T) {
	ts := testServer(t)
	resp, body := postJSON(t, ts.URL+"/v1/validate", map[string]any{"courses": map[string]string{
		"CS101": "60 units", // malformed
		"CS201": "CS999",    // unknown reference
		"CS301": "CS201",    // fine
	}})
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, body = %v", resp.StatusCode, body)
	}
	if body["code"] != "INVALID_CATALOG" {
		t.Errorf("code = %v", body["code"])
	}
	malformed := body["malformed"].(map[string]any)
	if _, ok := malformed["CS101"]; !ok {
		t.Errorf("malformed should report CS101: %v", malformed)
	}
	unknown := body["unknown"].(map[string]any)
	if _, ok := unknown["CS201"]; !ok {
		t.Errorf("unknown should report CS201: %v", unknown)
	}
}

func TestOrder(t *testing.T) {
	ts := testServer(t)
	resp, body := postJSON(t, ts.URL+"/v1/order", map[string]any{"courses": map[string]string{
		"C": "B",
		"B": "A",
		"A": "",
	}})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body = %v", resp.StatusCode, body)
	}
	var order []string
	for _, v := range body["order"].([]any) {
		order = append(order, v.(string))
	}
	if !reflect.DeepEqual(order, []string{"A", "B", "C"}) {
		t.Errorf("order = %v", order)
	}
}

func TestOrderCycle(t *testing.T) {
	ts := testServer(t)
	resp, body := postJSON(t, ts.URL+"/v1/order", map[string]any{"courses": map[string]string{
		"A": "B",
		"B": "A",
	}})
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, body = %v", resp.StatusCode, body)
	}
	if body["code"] != "CYCLE_DETECTED" {
		t.Errorf("code = %v", body["code"])
	}
	cycle := body["cycle"].([]any)
	if len(cycle) != 3 || cycle[0] != cycle[len(cycle)-1] {
		t.Errorf("cycle should be a closed walk: %v", cycle)
	}
}

func TestEligible(t *testing.T) {
	ts := testServer(t)
	resp, body := postJSON(t, ts.URL+"/v1/eligible", map[string]any{
		"courses":   validCatalog(),
		"completed": []string{"CS101", "MATH101"},
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body = %v", resp.StatusCode, body)
	}
	var eligible []string
	for _, v := range body["eligible"].([]any) {
		eligible = append(eligible, v.(string))
	}
	if !reflect.DeepEqual(eligible, []string{"CS201", "MATH102"}) {
		t.Errorf("eligible = %v", eligible)
	}
}

func TestEligibleNoCompleted(t *testing.T) {
	ts := testServer(t)
	resp, body := postJSON(t, ts.URL+"/v1/eligible", map[string]any{"courses": validCatalog()})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body = %v", resp.StatusCode, body)
	}
	var eligible []string
	for _, v := range body["eligible"].([]any) {
		eligible = append(eligible, v.(string))
	}
	// Only courses without prerequisites
	if !reflect.DeepEqual(eligible, []string{"CS101", "MATH101", "MATH102"}) {
		t.Errorf("eligible = %v", eligible)
	}
}

func TestBadRequests(t *testing.T) {
	ts := testServer(t)

	// Invalid JSON
	resp, err := http.Post(ts.URL+"/v1/order", "application/json", bytes.NewReader([]byte("{")))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("invalid JSON: status = %d", resp.StatusCode)
	}

	// Missing courses field
	resp2, body := postJSON(t, ts.URL+"/v1/order", map[string]any{})
	if resp2.StatusCode != http.StatusBadRequest {
		t.Errorf("missing courses: status = %d", resp2.StatusCode)
	}
	if body["code"] != "INVALID_INPUT" {
		t.Errorf("code = %v", body["code"])
	}
}

func TestListenAndServeShutsDownOnCancel(t *testing.T) {
	logger := log.NewWithOptions(io.Discard, log.Options{})
	srv := NewServer(pipeline.NewRunner(nil, nil, logger), logger)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- srv.ListenAndServe(ctx, "127.0.0.1:0")
	}()

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("err = %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down after cancel")
	}
}

func TestRequestIDPropagated(t *testing.T) {
	ts := testServer(t)
	req, err := http.NewRequest(http.MethodGet, ts.URL+"/healthz", nil)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("X-Request-ID", "abc-123")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if got := resp.Header.Get("X-Request-ID"); got != "abc-123" {
		t.Errorf("X-Request-ID = %q, want abc-123", got)
	}
}
