package ipc

import "testing"

func TestHandleCommandPing(t *testing.T) {
	s := &Server{}
	resp := s.handleCommand(&Request{Command: CommandPing})
	if resp.Status != "OK" {
		t.Fatalf("got status %q, want OK", resp.Status)
	}
}

func TestHandleCommandUnknown(t *testing.T) {
	s := &Server{}
	resp := s.handleCommand(&Request{Command: CommandType("NOT_A_COMMAND")})
	if resp.Status != "ERROR" {
		t.Fatalf("got status %q, want ERROR", resp.Status)
	}
}

func TestParseDirection(t *testing.T) {
	if _, err := parseDirection("left"); err != nil {
		t.Fatalf("left: %v", err)
	}
	if _, err := parseDirection("sideways"); err == nil {
		t.Fatal("expected error for invalid direction")
	}
}

func TestParseSizing(t *testing.T) {
	if _, err := parseSizing("increase"); err != nil {
		t.Fatalf("increase: %v", err)
	}
	if _, err := parseSizing("decrease"); err != nil {
		t.Fatalf("decrease: %v", err)
	}
	if _, err := parseSizing("bogus"); err == nil {
		t.Fatal("expected error for invalid sizing")
	}
}

func TestParseCycleDirection(t *testing.T) {
	if _, err := parseCycleDirection("previous"); err != nil {
		t.Fatalf("previous: %v", err)
	}
	if _, err := parseCycleDirection("next"); err != nil {
		t.Fatalf("next: %v", err)
	}
	if _, err := parseCycleDirection("up"); err == nil {
		t.Fatal("expected error for invalid cycle direction")
	}
}
