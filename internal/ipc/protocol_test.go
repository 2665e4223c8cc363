package ipc

import (
	"encoding/json"
	"testing"
)

func TestParseRequestRoundTrip(t *testing.T) {
	payload, err := json.Marshal(DirectionalPayload{Direction: "left"})
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	raw, err := json.Marshal(Request{Command: CommandFocusWindow, Payload: payload})
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}

	req, err := ParseRequest(raw)
	if err != nil {
		t.Fatalf("ParseRequest: %v", err)
	}
	if req.Command != CommandFocusWindow {
		t.Fatalf("got command %q, want %q", req.Command, CommandFocusWindow)
	}

	var dp DirectionalPayload
	if err := json.Unmarshal(req.Payload, &dp); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if dp.Direction != "left" {
		t.Fatalf("got direction %q, want left", dp.Direction)
	}
}

func TestParseRequestInvalidJSON(t *testing.T) {
	if _, err := ParseRequest([]byte("not json")); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestNewOKResponseWithData(t *testing.T) {
	resp, err := NewOKResponse(StatusData{UptimeSeconds: 42, Paused: true})
	if err != nil {
		t.Fatalf("NewOKResponse: %v", err)
	}
	if resp.Status != "OK" {
		t.Fatalf("got status %q, want OK", resp.Status)
	}
	if resp.Error != "" {
		t.Fatalf("got error %q, want empty", resp.Error)
	}

	var got StatusData
	if err := json.Unmarshal(resp.Data, &got); err != nil {
		t.Fatalf("unmarshal response data: %v", err)
	}
	if got.UptimeSeconds != 42 || !got.Paused {
		t.Fatalf("got %+v, want uptime 42 paused true", got)
	}
}

func TestNewOKResponseNilData(t *testing.T) {
	resp, err := NewOKResponse(nil)
	if err != nil {
		t.Fatalf("NewOKResponse: %v", err)
	}
	if resp.Data != nil {
		t.Fatalf("got data %s, want nil", resp.Data)
	}
}

func TestNewErrorResponse(t *testing.T) {
	resp := NewErrorResponse("window not found")
	if resp.Status != "ERROR" {
		t.Fatalf("got status %q, want ERROR", resp.Status)
	}
	if resp.Error != "window not found" {
		t.Fatalf("got error %q, want %q", resp.Error, "window not found")
	}
}

func TestResponseMarshal(t *testing.T) {
	resp := &Response{Status: "OK"}
	b, err := resp.Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var decoded Response
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.Status != "OK" {
		t.Fatalf("got status %q, want OK", decoded.Status)
	}
}
