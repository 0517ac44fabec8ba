package prompt

import (
	"context"
	"fmt"
	"sync"
)

// cancelAnswer is the type of Cancel.
type cancelAnswer struct{}

// Cancel makes a Scripted question return ErrCancelled.
var Cancel = cancelAnswer{}

// Scripted answers questions from a map keyed by question name. Unlisted
// questions get their default. Every asked question name is recorded.
type Scripted struct {
	Answers map[string]any

	mu    sync.Mutex
	asked []string
}

// NewScripted returns a Scripted source with the given answers.
func NewScripted(answers map[string]any) *Scripted {
	if answers == nil {
		answers = map[string]any{}
	}
	return &Scripted{Answers: answers}
}

// Asked returns the names of the questions asked so far, in order.
func (s *Scripted) Asked() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.asked...)
}

// WasAsked reports whether a question with name was asked.
func (s *Scripted) WasAsked(name string) bool {
	for _, n := range s.Asked() {
		if n == name {
			return true
		}
	}
	return false
}

func (s *Scripted) answer(name string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.asked = append(s.asked, name)
	a, ok := s.Answers[name]
	return a, ok
}

// Confirm implements Source.
func (s *Scripted) Confirm(_ context.Context, q Confirm) (bool, error) {
	a, ok := s.answer(q.Name)
	if !ok {
		return q.Default, nil
	}
	switch v := a.(type) {
	case cancelAnswer:
		return false, ErrCancelled
	case bool:
		return v, nil
	}
	return false, fmt.Errorf("scripted answer for %q is %T, want bool", q.Name, a)
}

// Select implements Source.
func (s *Scripted) Select(ctx context.Context, q Select) (string, error) {
	a, ok := s.answer(q.Name)
	if !ok {
		return Defaults{}.Select(ctx, q)
	}
	switch v := a.(type) {
	case cancelAnswer:
		return "", ErrCancelled
	case string:
		for _, o := range q.Options {
			if o.Value == v {
				return v, nil
			}
		}
		return "", fmt.Errorf("scripted answer %q is not an option of %q", v, q.Name)
	}
	return "", fmt.Errorf("scripted answer for %q is %T, want string", q.Name, a)
}

// Text implements Source.
func (s *Scripted) Text(_ context.Context, q Text) (string, error) {
	a, ok := s.answer(q.Name)
	value := q.Default
	if ok {
		switch v := a.(type) {
		case cancelAnswer:
			return "", ErrCancelled
		case string:
			value = v
		default:
			return "", fmt.Errorf("scripted answer for %q is %T, want string", q.Name, a)
		}
	}
	if q.Validate != nil {
		if err := q.Validate(value); err != nil {
			return "", err
		}
	}
	return value, nil
}
