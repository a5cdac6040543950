package listener

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pixil98/go-testutil"
	"golang.org/x/crypto/ssh"
)

type fakeRunner struct {
	conns []io.ReadWriter
	err   error
}

func (r *fakeRunner) RunSession(_ context.Context, conn io.ReadWriter) error {
	r.conns = append(r.conns, conn)
	return r.err
}

func TestConnectionManager_AcceptConnection(t *testing.T) {
	tests := map[string]struct {
		err error
	}{
		"session ends cleanly": {},
		"session fails":        {err: errors.New("boom")},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			runner := &fakeRunner{err: tt.err}
			cm := NewConnectionManager(runner)

			cm.AcceptConnection(context.Background(), &pipeConn{in: strings.NewReader("")})
			testutil.AssertEqual(t, "sessions", len(runner.conns), 1)
		})
	}
}

func TestConsoleListener_Start(t *testing.T) {
	runner := &fakeRunner{}
	l := NewConsoleListener(NewConnectionManager(runner), strings.NewReader("9\n"), io.Discard)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := l.Start(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "sessions", len(runner.conns), 1)
}

func TestLoadHostKey(t *testing.T) {
	ephemeral, err := LoadHostKey("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "ephemeral type", ephemeral.PublicKey().Type(), ssh.KeyAlgoED25519)

	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	block, err := ssh.MarshalPrivateKey(priv, "pymon test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	path := filepath.Join(t.TempDir(), "host_key")
	if err := os.WriteFile(path, pem.EncodeToMemory(block), 0600); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	loaded, err := LoadHostKey(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "loaded type", loaded.PublicKey().Type(), ssh.KeyAlgoED25519)

	_, err = LoadHostKey(filepath.Join(t.TempDir(), "missing"))
	testutil.AssertErrorContains(t, err, "reading host key")

	garbage := filepath.Join(t.TempDir(), "garbage")
	_ = os.WriteFile(garbage, []byte("not a key"), 0600)
	_, err = LoadHostKey(garbage)
	testutil.AssertErrorContains(t, err, "parsing host key")
}
