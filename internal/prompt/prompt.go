// Package prompt asks the user questions. Commands depend on the Source
// interface so the same flow can be driven by a terminal, by scripted answers
// in tests, or by defaults when every question is pre-confirmed.
//
// Cancelling a question (Ctrl-C, end of input) yields ErrCancelled, which
// commands treat as a clean exit.
package prompt

import (
	"context"
	"errors"
)

// ErrCancelled is returned when the user aborts a question.
var ErrCancelled = errors.New("cancelled")

// Option is one choice of a Select question.
type Option struct {
	Value string
	Label string
}

// Confirm is a yes/no question.
type Confirm struct {
	Name    string
	Message string
	Default bool
}

// Select is a single-choice question.
type Select struct {
	Name    string
	Message string
	Options []Option
	Default string
}

// Text is a free-form question.
type Text struct {
	Name     string
	Message  string
	Default  string
	Validate func(string) error
}

// Source answers questions.
type Source interface {
	Confirm(ctx context.Context, q Confirm) (bool, error)
	Select(ctx context.Context, q Select) (string, error)
	Text(ctx context.Context, q Text) (string, error)
}

// Defaults answers every question with its default value.
type Defaults struct{}

// Confirm implements Source.
func (Defaults) Confirm(_ context.Context, q Confirm) (bool, error) {
	return q.Default, nil
}

// Select implements Source.
func (Defaults) Select(_ context.Context, q Select) (string, error) {
	if q.Default == "" && len(q.Options) > 0 {
		return q.Options[0].Value, nil
	}
	return q.Default, nil
}

// Text implements Source.
func (Defaults) Text(_ context.Context, q Text) (string, error) {
	if q.Validate != nil {
		if err := q.Validate(q.Default); err != nil {
			return "", err
		}
	}
	return q.Default, nil
}
