// Package console asks the operator for values on an interactive terminal.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrNotNumeric is returned when the answer to a numeric question is not an
// integer.
var ErrNotNumeric = errors.New("input is not numeric")

type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

type answer struct {
	line string
	err  error
}

// Int writes question to the output and parses one line of input as a base-10
// integer. Surrounding whitespace is ignored.
//
// Int returns ctx.Err() as soon as ctx is done, even while the read is still
// blocked. The pending read is abandoned, so a Prompter must not be used again
// after a cancelled call.
func (p *Prompter) Int(ctx context.Context, question string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	fmt.Fprint(p.out, question)

	ch := make(chan answer, 1)
	go func() {
		line, err := p.in.ReadString('\n')
		ch <- answer{line: line, err: err}
	}()

	var a answer
	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	case a = <-ch:
	}

	if a.err != nil && !(errors.Is(a.err, io.EOF) && a.line != "") {
		if errors.Is(a.err, io.EOF) {
			return 0, fmt.Errorf("no answer to %q: %w", strings.TrimSpace(question), io.ErrUnexpectedEOF)
		}
		return 0, fmt.Errorf("failed to read answer: %w", a.err)
	}

	text := strings.TrimSpace(a.line)
	n, err := strconv.Atoi(text)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrNotNumeric, text)
	}
	return n, nil
}
