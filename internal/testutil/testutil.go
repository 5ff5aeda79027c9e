package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
)

// NewTestRequest creates an HTTP request for handler tests.
func NewTestRequest(method, path string, body io.Reader) *http.Request {
	return httptest.NewRequest(method, path, body)
}

// NewTestRequestWithJSON creates a request with a JSON-encoded body.
func NewTestRequestWithJSON(t *testing.T, method, path string, payload interface{}) *http.Request {
	t.Helper()
	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("failed to marshal payload: %v", err)
	}
	req := httptest.NewRequest(method, path, bytes.NewBuffer(data))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// ParseJSONResponse unmarshals a JSON response body into a map.
func ParseJSONResponse(t *testing.T, body []byte) map[string]interface{} {
	t.Helper()
	var parsed map[string]interface{}
	if err := json.Unmarshal(body, &parsed); err != nil {
		t.Fatalf("failed to parse JSON response: %v", err)
	}
	return parsed
}

// AssertStatusCode fails the test when the recorded status differs.
func AssertStatusCode(t *testing.T, rr *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if rr.Code != expected {
		t.Fatalf("expected status %d, got %d: %s", expected, rr.Code, rr.Body.String())
	}
}

// AssertJSONContains fails unless the body has the key with the value.
func AssertJSONContains(t *testing.T, body []byte, key, value string) {
	t.Helper()
	parsed := ParseJSONResponse(t, body)
	if parsed[key] != value {
		t.Fatalf("expected %q=%q, got %v", key, value, parsed[key])
	}
}

func RandomUUID() uuid.UUID {
	return uuid.New()
}

func RandomName() string {
	return fmt.Sprintf("user-%s", uuid.NewString()[:8])
}

func RandomGroup() string {
	return fmt.Sprintf("group-%s", uuid.NewString()[:8])
}
