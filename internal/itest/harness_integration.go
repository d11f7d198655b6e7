//go:build integration

package itest

import (
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/nats-io/nats.go"
)

type Harness struct {
	NATSURL string
	ids     []string
}

func RequireDocker(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("docker"); err != nil {
		t.Skip("integration skipped: docker CLI not found")
	}
	if err := exec.Command("docker", "info").Run(); err != nil {
		t.Skipf("integration skipped: docker unavailable: %v", err)
	}
}

// Start runs a throwaway NATS server and waits until it accepts connections.
func Start(t *testing.T) *Harness {
	t.Helper()
	RequireDocker(t)
	h := &Harness{}
	run := func(args ...string) string {
		out, err := exec.Command("docker", args...).CombinedOutput()
		if err != nil {
			t.Skipf("integration skipped: docker %v failed: %v: %s", args, err, string(out))
		}
		return strings.TrimSpace(string(out))
	}
	id := run("run", "-d", "-p", "42229:4222", "nats:2.10-alpine")
	h.ids = []string{id}
	h.NATSURL = "nats://127.0.0.1:42229"

	t.Cleanup(func() {
		for _, id := range h.ids {
			_ = exec.Command("docker", "rm", "-f", id).Run()
		}
	})

	deadline := time.Now().Add(20 * time.Second)
	for time.Now().Before(deadline) {
		nc, err := nats.Connect(h.NATSURL)
		if err == nil {
			nc.Close()
			break
		}
		time.Sleep(300 * time.Millisecond)
	}
	return h
}

func NATS(t *testing.T, url string) *nats.Conn {
	t.Helper()
	nc, err := nats.Connect(url)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(nc.Close)
	return nc
}
