package prompt

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func init() {
	color.NoColor = true
}

func TestTerminalConfirm(t *testing.T) {
	tests := []struct {
		input string
		def   bool
		want  bool
	}{
		{"\n", true, true},
		{"\n", false, false},
		{"y\n", false, true},
		{"NO\n", true, false},
		{"maybe\nyes\n", false, true},
	}
	for _, tt := range tests {
		var out bytes.Buffer
		term := NewTerminal(strings.NewReader(tt.input), &out)
		got, err := term.Confirm(context.Background(), Confirm{Name: "q", Message: "Continue?", Default: tt.def})
		if err != nil {
			t.Fatalf("Confirm(%q) error: %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("Confirm(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestTerminalConfirmEOFCancels(t *testing.T) {
	var out bytes.Buffer
	term := NewTerminal(strings.NewReader(""), &out)
	_, err := term.Confirm(context.Background(), Confirm{Name: "q", Message: "Continue?"})
	if !errors.Is(err, ErrCancelled) {
		t.Errorf("err = %v, want ErrCancelled", err)
	}
}

func TestTerminalContextCancels(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	r, w := io.Pipe()
	defer w.Close()
	term := NewTerminal(r, &out)
	if _, err := term.Text(ctx, Text{Name: "name", Message: "Project name"}); !errors.Is(err, ErrCancelled) {
		t.Errorf("err = %v, want ErrCancelled", err)
	}
}

// ttyReader hands out one line per Read, like a terminal in canonical mode.
type ttyReader struct {
	lines []string
	reads int
}

func (r *ttyReader) Read(p []byte) (int, error) {
	r.reads++
	if len(r.lines) == 0 {
		return 0, io.EOF
	}
	n := copy(p, r.lines[0])
	r.lines = r.lines[1:]
	return n, nil
}

func TestTerminalReadsOnlyWhenAsked(t *testing.T) {
	in := &ttyReader{lines: []string{"y\n", "typed for a child process\n"}}
	var out bytes.Buffer
	term := NewTerminal(in, &out)
	if in.reads != 0 {
		t.Fatalf("input read before any question: %d reads", in.reads)
	}

	ok, err := term.Confirm(context.Background(), Confirm{Name: "install", Message: "Install?"})
	if err != nil || !ok {
		t.Fatalf("Confirm() = %v, %v", ok, err)
	}
	if in.reads != 1 || len(in.lines) != 1 {
		t.Errorf("reads = %d, unread lines = %d; want input after the answer left alone", in.reads, len(in.lines))
	}
}

func TestTerminalSelect(t *testing.T) {
	q := Select{
		Name:    "pm",
		Message: "Package manager",
		Options: []Option{{Value: "npm"}, {Value: "yarn"}, {Value: "pnpm"}},
		Default: "pnpm",
	}
	tests := []struct {
		input string
		want  string
	}{
		{"\n", "pnpm"},
		{"2\n", "yarn"},
		{"npm\n", "npm"},
		{"9\n1\n", "npm"},
	}
	for _, tt := range tests {
		var out bytes.Buffer
		term := NewTerminal(strings.NewReader(tt.input), &out)
		got, err := term.Select(context.Background(), q)
		if err != nil {
			t.Fatalf("Select(%q) error: %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("Select(%q) = %q, want %q", tt.input, got, tt.want)
		}
		if !strings.Contains(out.String(), "* 3) pnpm") {
			t.Errorf("default not marked:\n%s", out.String())
		}
	}
}

func TestTerminalTextValidates(t *testing.T) {
	var out bytes.Buffer
	term := NewTerminal(strings.NewReader("Bad\ngood-name\n"), &out)
	got, err := term.Text(context.Background(), Text{
		Name:    "name",
		Message: "Project name",
		Default: "my-frontend",
		Validate: func(s string) error {
			if strings.ToLower(s) != s {
				return errors.New("use lowercase letters only")
			}
			return nil
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if got != "good-name" {
		t.Errorf("Text() = %q", got)
	}
	if !strings.Contains(out.String(), "use lowercase letters only") {
		t.Errorf("validation message not shown:\n%s", out.String())
	}
}

func TestTerminalTextDefault(t *testing.T) {
	var out bytes.Buffer
	term := NewTerminal(strings.NewReader("\n"), &out)
	got, err := term.Text(context.Background(), Text{Name: "node", Message: "Node.js major", Default: "22"})
	if err != nil || got != "22" {
		t.Errorf("Text() = %q, %v", got, err)
	}
}

func TestScripted(t *testing.T) {
	s := NewScripted(map[string]any{
		"overwrite": false,
		"strategy":  "migrate",
		"name":      Cancel,
	})
	ctx := context.Background()

	if got, err := s.Confirm(ctx, Confirm{Name: "overwrite", Default: true}); err != nil || got {
		t.Errorf("Confirm() = %v, %v", got, err)
	}
	if got, err := s.Confirm(ctx, Confirm{Name: "install", Default: true}); err != nil || !got {
		t.Errorf("unlisted Confirm() = %v, %v", got, err)
	}
	strategy := Select{Name: "strategy", Options: []Option{{Value: "migrate"}, {Value: "replace"}}, Default: "replace"}
	if got, err := s.Select(ctx, strategy); err != nil || got != "migrate" {
		t.Errorf("Select() = %q, %v", got, err)
	}
	if _, err := s.Text(ctx, Text{Name: "name"}); !errors.Is(err, ErrCancelled) {
		t.Errorf("Text() err = %v, want ErrCancelled", err)
	}

	want := []string{"overwrite", "install", "strategy", "name"}
	got := s.Asked()
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("Asked() = %v, want %v", got, want)
	}
	if !s.WasAsked("install") || s.WasAsked("pm") {
		t.Error("WasAsked() mismatch")
	}
}

func TestScriptedRejectsUnknownOption(t *testing.T) {
	s := NewScripted(map[string]any{"pm": "rush"})
	_, err := s.Select(context.Background(), Select{Name: "pm", Options: []Option{{Value: "npm"}}})
	if err == nil {
		t.Error("expected error for unknown option")
	}
}

func TestDefaults(t *testing.T) {
	ctx := context.Background()
	var d Defaults
	if got, _ := d.Confirm(ctx, Confirm{Default: true}); !got {
		t.Error("Confirm() should return default")
	}
	if got, _ := d.Select(ctx, Select{Options: []Option{{Value: "ci"}, {Value: "none"}}}); got != "ci" {
		t.Errorf("Select() = %q", got)
	}
	if _, err := d.Text(ctx, Text{Default: "", Validate: func(s string) error {
		if s == "" {
			return errors.New("required")
		}
		return nil
	}}); err == nil {
		t.Error("expected invalid default to fail validation")
	}
}

func TestSessionOutput(t *testing.T) {
	var out bytes.Buffer
	s := NewSession(&out)
	s.Intro("frontpl (oxfmt)")
	s.Step("wrote %s", ".oxfmtrc.json")
	s.Warn("install failed")
	s.Outro("Done.\n- scripts already aligned")
	s.Cancel("Cancelled")

	text := out.String()
	for _, want := range []string{"frontpl (oxfmt)", "wrote .oxfmtrc.json", "install failed", "Done.", "  - scripts already aligned", "Cancelled"} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q:\n%s", want, text)
		}
	}
}
