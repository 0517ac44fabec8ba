package prompt

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// IsInteractive reports whether f is attached to a terminal.
func IsInteractive(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

type line struct {
	text string
	err  error
}

// Terminal asks questions on a line-oriented terminal using numbered menus.
// Input is only read while a question waits for its answer, so child
// processes started between questions get the terminal to themselves.
type Terminal struct {
	out     io.Writer
	reader  *bufio.Reader
	lines   chan line
	pending bool

	question *color.Color
	hint     *color.Color
	errText  *color.Color
}

// NewTerminal returns a Terminal reading answers from in and writing
// questions to out.
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{
		out:      out,
		reader:   bufio.NewReader(in),
		lines:    make(chan line, 1),
		question: color.New(color.FgCyan, color.Bold),
		hint:     color.New(color.Faint),
		errText:  color.New(color.FgRed),
	}
}

func (t *Terminal) read() {
	text, err := t.reader.ReadString('\n')
	if err != nil && text == "" {
		t.lines <- line{err: err}
		return
	}
	t.lines <- line{text: strings.TrimSpace(text)}
}

// readLine waits for the next answer. End of input and context cancellation
// both cancel the question. A read left pending by a cancelled question is
// picked up by the next one.
func (t *Terminal) readLine(ctx context.Context) (string, error) {
	if !t.pending {
		t.pending = true
		go t.read()
	}
	select {
	case <-ctx.Done():
		fmt.Fprintln(t.out)
		return "", ErrCancelled
	case l := <-t.lines:
		t.pending = false
		if l.err != nil {
			fmt.Fprintln(t.out)
			return "", ErrCancelled
		}
		return l.text, nil
	}
}

// Confirm implements Source.
func (t *Terminal) Confirm(ctx context.Context, q Confirm) (bool, error) {
	choices := "y/N"
	if q.Default {
		choices = "Y/n"
	}
	for {
		fmt.Fprintf(t.out, "%s %s %s ", t.question.Sprint("?"), q.Message, t.hint.Sprintf("(%s)", choices))
		answer, err := t.readLine(ctx)
		if err != nil {
			return false, err
		}
		switch strings.ToLower(answer) {
		case "":
			return q.Default, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		t.errText.Fprintln(t.out, "  Please answer y or n.")
	}
}

// Select implements Source.
func (t *Terminal) Select(ctx context.Context, q Select) (string, error) {
	defaultIdx := 0
	for i, o := range q.Options {
		if o.Value == q.Default {
			defaultIdx = i
		}
	}

	fmt.Fprintf(t.out, "%s %s\n", t.question.Sprint("?"), q.Message)
	for i, o := range q.Options {
		label := o.Label
		if label == "" {
			label = o.Value
		}
		marker := " "
		if i == defaultIdx {
			marker = "*"
		}
		fmt.Fprintf(t.out, " %s %d) %s\n", marker, i+1, label)
	}

	for {
		fmt.Fprintf(t.out, "Enter number [1-%d] %s: ", len(q.Options), t.hint.Sprintf("(default %d)", defaultIdx+1))
		answer, err := t.readLine(ctx)
		if err != nil {
			return "", err
		}
		if answer == "" {
			return q.Options[defaultIdx].Value, nil
		}
		if num, err := strconv.Atoi(answer); err == nil && num >= 1 && num <= len(q.Options) {
			return q.Options[num-1].Value, nil
		}
		for _, o := range q.Options {
			if o.Value == answer {
				return o.Value, nil
			}
		}
		t.errText.Fprintf(t.out, "  Invalid selection %q: choose 1-%d.\n", answer, len(q.Options))
	}
}

// Text implements Source.
func (t *Terminal) Text(ctx context.Context, q Text) (string, error) {
	for {
		fmt.Fprintf(t.out, "%s %s", t.question.Sprint("?"), q.Message)
		if q.Default != "" {
			fmt.Fprintf(t.out, " %s", t.hint.Sprintf("(%s)", q.Default))
		}
		fmt.Fprint(t.out, ": ")

		answer, err := t.readLine(ctx)
		if err != nil {
			return "", err
		}
		if answer == "" {
			answer = q.Default
		}
		if q.Validate != nil {
			if err := q.Validate(answer); err != nil {
				t.errText.Fprintf(t.out, "  %v\n", err)
				continue
			}
		}
		return answer, nil
	}
}
