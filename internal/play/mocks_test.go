package play

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/robalobadob/hintle/internal/define"
	"github.com/robalobadob/hintle/internal/hints"
)

// --- Validator ---

type MockValidator struct {
	mock.Mock
}

func (m *MockValidator) Valid(ctx context.Context, word string) (bool, error) {
	args := m.Called(ctx, word)
	return args.Bool(0), args.Error(1)
}

// --- Source ---

type MockSource struct {
	mock.Mock
}

func (m *MockSource) Words(ctx context.Context, length int) ([]string, error) {
	args := m.Called(ctx, length)
	return args.Get(0).([]string), args.Error(1)
}

// --- Definitions ---

type MockDefinitions struct {
	mock.Mock
}

func (m *MockDefinitions) Define(ctx context.Context, word string) (define.Entry, error) {
	args := m.Called(ctx, word)
	return args.Get(0).(define.Entry), args.Error(1)
}

// blockingValidator parks every call until release is closed.
type blockingValidator struct {
	called  chan string
	release chan struct{}
	valid   bool
}

func newBlockingValidator(valid bool) *blockingValidator {
	return &blockingValidator{called: make(chan string, 4), release: make(chan struct{}), valid: valid}
}

func (b *blockingValidator) Valid(ctx context.Context, word string) (bool, error) {
	b.called <- word
	select {
	case <-b.release:
		return b.valid, nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}

// blockingDefinitions parks every lookup until release is closed.
type blockingDefinitions struct {
	called  chan string
	release chan struct{}
}

func newBlockingDefinitions() *blockingDefinitions {
	return &blockingDefinitions{called: make(chan string, 4), release: make(chan struct{})}
}

func (b *blockingDefinitions) Define(ctx context.Context, word string) (define.Entry, error) {
	b.called <- word
	select {
	case <-b.release:
		return define.Entry{Definition: "a large bird"}, nil
	case <-ctx.Done():
		return define.Entry{}, ctx.Err()
	}
}

// slowPolicy always draws its first template, which parks until release is
// closed. The second template answers at once.
func slowPolicy() (*hints.Policy, chan struct{}, chan struct{}) {
	called, release := make(chan struct{}, 4), make(chan struct{})
	slow := hints.Template{
		ID: func(string) string { return "slow" },
		Text: func(ctx context.Context, _ hints.Lookups, _ string) (string, error) {
			called <- struct{}{}
			select {
			case <-release:
				return "slow clue", nil
			case <-ctx.Done():
				return "", ctx.Err()
			}
		},
	}
	other := hints.Template{
		ID:   func(string) string { return "other" },
		Text: func(context.Context, hints.Lookups, string) (string, error) { return "other clue", nil },
	}
	p := &hints.Policy{Pool: []hints.Template{slow, other}, IntN: func(int) int { return 0 }}
	return p, called, release
}
