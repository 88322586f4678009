package main

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
)

func TestFetchDigitalObject(t *testing.T) {
	transport := &captureTransport{
		status: http.StatusOK,
		body: []byte(`{
			"data": {
				"id": "SANDBOX/ABC-123",
				"type": "digital-media",
				"attributes": {
					"ods:ID": "https://doi.org/SANDBOX/ABC-123",
					"ods:type": "https://doi.org/21.T11148/bbad8c4e101e8af01115",
					"ac:accessURI": "https://images.example.org/sheet.jpg"
				}
			}
		}`),
	}
	client := &http.Client{Transport: transport}

	object, err := fetchDigitalObject(context.Background(), client, "https://sandbox.example.org/api/digital-media/v1/SANDBOX/ABC-123")
	if err != nil {
		t.Fatalf("fetchDigitalObject returned error: %v", err)
	}

	if transport.lastRequest == nil {
		t.Fatalf("expected request to be captured")
	}
	if transport.lastRequest.Method != http.MethodGet {
		t.Fatalf("method = %q, want GET", transport.lastRequest.Method)
	}
	if got := transport.lastRequest.Header.Get("Accept"); got != "application/json" {
		t.Fatalf("Accept = %q, want application/json", got)
	}
	if got := transport.lastRequest.URL.String(); got != "https://sandbox.example.org/api/digital-media/v1/SANDBOX/ABC-123" {
		t.Fatalf("url = %q", got)
	}

	if object.ID != "https://doi.org/SANDBOX/ABC-123" {
		t.Fatalf("ID = %q", object.ID)
	}
	if object.Type != "https://doi.org/21.T11148/bbad8c4e101e8af01115" {
		t.Fatalf("Type = %q", object.Type)
	}
	if object.AccessURI != "https://images.example.org/sheet.jpg" {
		t.Fatalf("AccessURI = %q", object.AccessURI)
	}
}

func TestFetchDigitalObjectErrorStatus(t *testing.T) {
	transport := &captureTransport{status: http.StatusNotFound, body: []byte("media record not found")}
	client := &http.Client{Transport: transport}

	_, err := fetchDigitalObject(context.Background(), client, "https://sandbox.example.org/api/digital-media/v1/SANDBOX/NOPE")
	if err == nil {
		t.Fatal("fetchDigitalObject returned nil, want error")
	}
	if !strings.Contains(err.Error(), "404") {
		t.Fatalf("err = %v, want status code in message", err)
	}
	if !strings.Contains(err.Error(), "media record not found") {
		t.Fatalf("err = %v, want body in message", err)
	}
}

func TestFetchDigitalObjectMalformedBody(t *testing.T) {
	transport := &captureTransport{status: http.StatusOK, body: []byte("<html>oops</html>")}
	client := &http.Client{Transport: transport}

	_, err := fetchDigitalObject(context.Background(), client, "https://sandbox.example.org/api/digital-media/v1/SANDBOX/ABC-123")
	if err == nil {
		t.Fatal("fetchDigitalObject returned nil, want error")
	}
	if !strings.Contains(err.Error(), "decode response") {
		t.Fatalf("err = %v, want decode failure in message", err)
	}
}

type captureTransport struct {
	status      int
	body        []byte
	lastRequest *http.Request
}

func (c *captureTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	c.lastRequest = req
	status := c.status
	if status == 0 {
		status = http.StatusOK
	}
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(bytes.NewReader(c.body)),
	}, nil
}
