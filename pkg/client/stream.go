package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/0nri/gemini-enterprise-api-explorer/pkg/models"
)

const dataPrefix = "data: "

// Stream consumes a Server-Sent Events conversation reply. Events may arrive
// split across arbitrary read boundaries; Stream reassembles them line by
// line.
type Stream struct {
	body io.ReadCloser
	buf  []byte
	done bool

	closeOnce sync.Once
	closeErr  error
}

func newStream(body io.ReadCloser) *Stream {
	return &Stream{body: body}
}

// Recv returns the next event. The terminal "done" or "error" event is
// delivered to the caller; every Recv after it returns io.EOF.
func (s *Stream) Recv() (*models.ConversationChunk, error) {
	if s.done {
		return nil, io.EOF
	}

	for {
		if line, ok := s.nextLine(); ok {
			if !bytes.HasPrefix(line, []byte(dataPrefix)) {
				continue
			}

			var chunk models.ConversationChunk
			if err := json.Unmarshal(bytes.TrimPrefix(line, []byte(dataPrefix)), &chunk); err != nil {
				return nil, fmt.Errorf("decoding stream event: %w", err)
			}

			if chunk.Type == "done" || chunk.Type == "error" {
				s.done = true
				_ = s.Close()
			}
			return &chunk, nil
		}

		if err := s.fill(); err != nil {
			s.done = true
			_ = s.Close()
			if err == io.EOF {
				return nil, io.EOF
			}
			return nil, fmt.Errorf("reading stream: %w", err)
		}
	}
}

// nextLine pops one complete line off the buffer, retaining a trailing
// partial line for the next read.
func (s *Stream) nextLine() ([]byte, bool) {
	idx := bytes.IndexByte(s.buf, '\n')
	if idx < 0 {
		return nil, false
	}

	line := bytes.TrimRight(s.buf[:idx], "\r")
	s.buf = s.buf[idx+1:]
	return line, true
}

func (s *Stream) fill() error {
	chunk := make([]byte, 4096)
	n, err := s.body.Read(chunk)
	if n > 0 {
		s.buf = append(s.buf, chunk[:n]...)
		return nil
	}
	if err == nil {
		err = io.EOF
	}
	return err
}

// Close releases the underlying response body. Safe to call multiple times.
func (s *Stream) Close() error {
	s.closeOnce.Do(func() { s.closeErr = s.body.Close() })
	return s.closeErr
}
