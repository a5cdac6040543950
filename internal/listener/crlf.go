package listener

import (
	"bytes"
	"io"
)

// lineEndings translates the network's line endings to the plain newlines the
// game reads, and back again on writes. Clients send "\r\n" (telnet) or a bare
// "\r" (some ssh clients); both become a single "\n".
type lineEndings struct {
	conn io.ReadWriter
	// afterCR is set when the last byte read was '\r', so a '\n' opening the
	// next read completes that line ending instead of starting a new line.
	afterCR bool
}

func newCRLFReadWriter(conn io.ReadWriter) io.ReadWriter {
	return &lineEndings{conn: conn}
}

func (l *lineEndings) Read(p []byte) (int, error) {
	for {
		n, err := l.conn.Read(p)
		out := 0
		for _, b := range p[:n] {
			switch {
			case b == '\n' && l.afterCR:
				l.afterCR = false
			case b == '\r':
				p[out] = '\n'
				out++
				l.afterCR = true
			default:
				p[out] = b
				out++
				l.afterCR = false
			}
		}
		// A read holding only the '\n' of a split "\r\n" yields nothing;
		// read again rather than return (0, nil).
		if out > 0 || err != nil || n == 0 {
			return out, err
		}
	}
}

// Write reports len(p) on success so callers never see the size change.
func (l *lineEndings) Write(p []byte) (int, error) {
	if _, err := l.conn.Write(bytes.ReplaceAll(p, []byte("\n"), []byte("\r\n"))); err != nil {
		return 0, err
	}
	return len(p), nil
}
