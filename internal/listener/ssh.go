package listener

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"fmt"
	"log/slog"
	"net"
	"os"

	"golang.org/x/crypto/ssh"
)

// SshListener plays one game per ssh shell session. Clients are not
// authenticated; every game starts from scratch.
type SshListener struct {
	port    uint16
	cm      *ConnectionManager
	hostKey ssh.Signer
}

func NewSshListener(port uint16, cm *ConnectionManager, hostKey ssh.Signer) *SshListener {
	return &SshListener{
		port:    port,
		cm:      cm,
		hostKey: hostKey,
	}
}

// LoadHostKey reads a PEM private key. An empty path generates an ephemeral
// ed25519 key, so clients see a new host key on every restart.
func LoadHostKey(path string) (ssh.Signer, error) {
	if path != "" {
		keyBytes, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading host key %q: %w", path, err)
		}
		signer, err := ssh.ParsePrivateKey(keyBytes)
		if err != nil {
			return nil, fmt.Errorf("parsing host key %q: %w", path, err)
		}
		return signer, nil
	}

	slog.Warn("no host key configured for ssh listener, generating ephemeral key")
	_, privKey, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generating ephemeral key: %w", err)
	}
	return ssh.NewSignerFromKey(privKey)
}

func (l *SshListener) Start(ctx context.Context) error {
	config := &ssh.ServerConfig{NoClientAuth: true}
	config.AddHostKey(l.hostKey)

	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", l.port))
	if err != nil {
		return listenError("ssh", l.port, err)
	}
	slog.InfoContext(ctx, "listening for ssh", "port", l.port)

	go func() {
		<-ctx.Done()
		_ = ln.Close()
	}()

	conns := newConnGroup()
	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				conns.shutdown()
				return nil
			}
			slog.ErrorContext(ctx, "accepting ssh connection", "error", err)
			continue
		}

		conns.spawn(func(connCtx context.Context) {
			l.serveConn(connCtx, conn, config)
		})
	}
}

func (l *SshListener) serveConn(ctx context.Context, conn net.Conn, config *ssh.ServerConfig) {
	defer conn.Close()

	sshConn, chans, reqs, err := ssh.NewServerConn(conn, config)
	if err != nil {
		slog.WarnContext(ctx, "ssh handshake", "remote", conn.RemoteAddr(), "error", err)
		return
	}
	defer sshConn.Close()
	slog.InfoContext(ctx, "ssh connection established", "remote", conn.RemoteAddr(), "client", string(sshConn.ClientVersion()))

	// Closing the connection ends the channel loop below.
	go func() {
		<-ctx.Done()
		_ = sshConn.Close()
	}()
	go ssh.DiscardRequests(reqs)

	for newChan := range chans {
		if newChan.ChannelType() != "session" {
			_ = newChan.Reject(ssh.UnknownChannelType, "only session channels are supported")
			continue
		}
		ch, requests, err := newChan.Accept()
		if err != nil {
			slog.ErrorContext(ctx, "accepting ssh channel", "error", err)
			continue
		}

		if waitForShell(ctx, requests) {
			l.cm.AcceptConnection(ctx, newCRLFReadWriter(ch))
		}
		_ = ch.Close()
	}
}

// waitForShell answers channel requests until the client asks for a shell.
// Clients do not forward input before the shell reply. PTYs are refused so
// the client keeps local echo and line editing.
func waitForShell(ctx context.Context, requests <-chan *ssh.Request) bool {
	ready := make(chan struct{})
	go func() {
		shell := false
		for req := range requests {
			ok := req.Type == "shell" && !shell
			_ = req.Reply(ok, nil)
			if ok {
				shell = true
				close(ready)
			}
		}
	}()

	select {
	case <-ready:
		return true
	case <-ctx.Done():
		return false
	}
}
