package listener

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/pixil98/go-testutil"
)

type pipeConn struct {
	in  io.Reader
	out bytes.Buffer
}

func (c *pipeConn) Read(p []byte) (int, error)  { return c.in.Read(p) }
func (c *pipeConn) Write(p []byte) (int, error) { return c.out.Write(p) }

// chunkReader returns one chunk per Read call.
type chunkReader struct {
	chunks []string
}

func (r *chunkReader) Read(p []byte) (int, error) {
	if len(r.chunks) == 0 {
		return 0, io.EOF
	}
	n := copy(p, r.chunks[0])
	r.chunks = r.chunks[1:]
	return n, nil
}

func TestCRLFReadWriter_SplitLineEnding(t *testing.T) {
	conn := &pipeConn{in: &chunkReader{chunks: []string{"look\r", "\n", "\nexit\r", "\n"}}}

	got, err := io.ReadAll(newCRLFReadWriter(conn))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "read", string(got), "look\n\nexit\n")
}

func TestCRLFReadWriter(t *testing.T) {
	tests := map[string]struct {
		in     string
		expIn  string
		write  string
		expOut string
	}{
		"telnet line endings": {
			in:     "move east\r\nlook\r\n",
			expIn:  "move east\nlook\n",
			write:  "You travelled east.\n",
			expOut: "You travelled east.\r\n",
		},
		"bare carriage returns": {
			in:     "1\r2\r",
			expIn:  "1\n2\n",
			write:  "a\nb",
			expOut: "a\r\nb",
		},
		"already unix": {
			in:     "9\n",
			expIn:  "9\n",
			write:  "",
			expOut: "",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			conn := &pipeConn{in: strings.NewReader(tt.in)}
			rw := newCRLFReadWriter(conn)

			got, err := io.ReadAll(rw)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertEqual(t, "read", string(got), tt.expIn)

			n, err := rw.Write([]byte(tt.write))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertEqual(t, "written", n, len(tt.write))
			testutil.AssertEqual(t, "out", conn.out.String(), tt.expOut)
		})
	}
}
