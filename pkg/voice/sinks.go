package voice

import (
	"fmt"
	"io"
	"os"
)

// ConsoleSink prints each utterance to a writer, prefixed with the
// assistant name. This keeps the conversation readable in text mode and
// when synthesis is degraded.
type ConsoleSink struct {
	name string
	out  io.Writer
}

var _ Sink = (*ConsoleSink)(nil)

// NewConsoleSink creates a sink writing to stdout.
func NewConsoleSink(name string) *ConsoleSink {
	return &ConsoleSink{name: name, out: os.Stdout}
}

// NewConsoleSinkWriter creates a sink writing to w.
func NewConsoleSinkWriter(name string, w io.Writer) *ConsoleSink {
	return &ConsoleSink{name: name, out: w}
}

// Spoken implements Sink.
func (s *ConsoleSink) Spoken(text string) {
	fmt.Fprintf(s.out, "%s: %s\n", s.name, text)
}
