package iostreams

import (
	"fmt"
	"io"

	"k8s.io/cli-runtime/pkg/genericiooptions"
)

// Interface is the set of streams a command writes to. Results go to Out,
// progress and diagnostics go to ErrOut.
type Interface interface {
	In() io.Reader
	Out() io.Writer
	ErrOut() io.Writer

	// Fprintf writes a formatted message to Out.
	Fprintf(format string, args ...any)

	// Errorf writes a formatted message followed by a newline to ErrOut.
	Errorf(format string, args ...any)
}

type streams struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer
}

// NewIOStreams creates an Interface over the given reader and writers.
func NewIOStreams(in io.Reader, out io.Writer, errOut io.Writer) Interface {
	return &streams{
		in:     in,
		out:    out,
		errOut: errOut,
	}
}

// FromGeneric wraps cli-runtime IOStreams.
func FromGeneric(s genericiooptions.IOStreams) Interface {
	return NewIOStreams(s.In, s.Out, s.ErrOut)
}

func (s *streams) In() io.Reader {
	return s.in
}

func (s *streams) Out() io.Writer {
	return s.out
}

func (s *streams) ErrOut() io.Writer {
	return s.errOut
}

func (s *streams) Fprintf(format string, args ...any) {
	_, _ = fmt.Fprintf(s.out, format, args...)
}

func (s *streams) Errorf(format string, args ...any) {
	_, _ = fmt.Fprintf(s.errOut, format+"\n", args...)
}
