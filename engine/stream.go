package engine

import (
	"bufio"
	"io"
)

// Stream is a one-character-at-a-time text stream. The concrete source/sink
// can be console-backed or in-memory; built-ins don't care which.
type Stream struct {
	source *bufio.Reader
	sink   io.Writer
}

// NewInputStream returns a read-only stream over r.
func NewInputStream(r io.Reader) *Stream {
	return &Stream{source: bufio.NewReader(r)}
}

// NewOutputStream returns a write-only stream over w.
func NewOutputStream(w io.Writer) *Stream {
	return &Stream{sink: w}
}

// ReadChar reads a single character. At the end of the input it returns the
// empty string and io.EOF.
func (s *Stream) ReadChar() (string, error) {
	if s.source == nil {
		return "", io.EOF
	}
	r, _, err := s.source.ReadRune()
	if err != nil {
		return "", err
	}
	return string(r), nil
}

// WriteChar writes a single character.
func (s *Stream) WriteChar(ch string) error {
	_, err := s.Write([]byte(ch))
	return err
}

// Write implements io.Writer.
func (s *Stream) Write(p []byte) (int, error) {
	if s.sink == nil {
		return 0, io.ErrClosedPipe
	}
	return s.sink.Write(p)
}
