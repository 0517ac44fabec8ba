package prompt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Session prints the framing of a command run: an intro banner, progress
// steps, warnings and a closing outro or cancel line.
type Session struct {
	out io.Writer

	title *color.Color
	step  *color.Color
	warn  *color.Color
	fail  *color.Color
	done  *color.Color
}

// NewSession returns a Session writing to out.
func NewSession(out io.Writer) *Session {
	return &Session{
		out:   out,
		title: color.New(color.BgCyan, color.FgBlack),
		step:  color.New(color.FgGreen),
		warn:  color.New(color.FgYellow),
		fail:  color.New(color.FgRed),
		done:  color.New(color.FgGreen, color.Bold),
	}
}

// Writer returns the underlying writer.
func (s *Session) Writer() io.Writer {
	return s.out
}

// Intro prints the command banner.
func (s *Session) Intro(title string) {
	fmt.Fprintf(s.out, "%s\n\n", s.title.Sprintf(" %s ", title))
}

// Step reports a completed step.
func (s *Session) Step(format string, args ...any) {
	fmt.Fprintf(s.out, "%s %s\n", s.step.Sprint("◇"), fmt.Sprintf(format, args...))
}

// Warn reports a non-fatal problem.
func (s *Session) Warn(format string, args ...any) {
	fmt.Fprintf(s.out, "%s %s\n", s.warn.Sprint("▲"), fmt.Sprintf(format, args...))
}

// Cancel prints the cancellation line.
func (s *Session) Cancel(msg string) {
	fmt.Fprintf(s.out, "%s %s\n", s.fail.Sprint("■"), msg)
}

// Outro prints the closing message. Continuation lines are indented.
func (s *Session) Outro(msg string) {
	lines := strings.Split(msg, "\n")
	fmt.Fprintf(s.out, "\n%s %s\n", s.done.Sprint("└"), lines[0])
	for _, l := range lines[1:] {
		fmt.Fprintf(s.out, "  %s\n", l)
	}
}
