package automation

import "testing"

func TestNewServerFailsWhenDaemonUnreachable(t *testing.T) {
	if _, err := NewServer("komotile-automation-test-nonexistent-socket"); err == nil {
		t.Fatal("expected error when the daemon's command socket isn't listening")
	}
}
