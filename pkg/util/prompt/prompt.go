package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/opendatahub-io/secscan/pkg/util/iostreams"
)

// Prompter asks questions on ErrOut and reads the answers from In, one line
// per answer.
type Prompter struct {
	io     iostreams.Interface
	reader *bufio.Reader
}

func New(streams iostreams.Interface) *Prompter {
	return &Prompter{
		io:     streams,
		reader: bufio.NewReader(streams.In()),
	}
}

// Confirm asks a yes/no question. Anything but "y" or "yes" is a no.
func (p *Prompter) Confirm(message string) bool {
	_, _ = fmt.Fprintf(p.io.ErrOut(), "%s [y/N]: ", message)

	response, err := p.readLine()
	if err != nil {
		return false
	}

	response = strings.ToLower(response)

	return response == "y" || response == "yes"
}

// Ask prompts for a value. An empty answer, or end of input, selects def.
func (p *Prompter) Ask(label string, def string) (string, error) {
	if def != "" {
		_, _ = fmt.Fprintf(p.io.ErrOut(), "%s [%s]: ", label, def)
	} else {
		_, _ = fmt.Fprintf(p.io.ErrOut(), "%s: ", label)
	}

	response, err := p.readLine()
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading answer: %w", err)
	}

	if response == "" {
		return def, nil
	}

	return response, nil
}

// readLine returns the next line without its terminator. A final line
// without a newline is returned together with io.EOF.
func (p *Prompter) readLine() (string, error) {
	line, err := p.reader.ReadString('\n')

	return strings.TrimSpace(line), err
}
