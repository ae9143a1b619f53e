package mock

import (
	"context"
	"strings"
)

// MockTextGenerator is a test double for ai.TextGenerator.
// It allows custom behavior injection via function fields.
type MockTextGenerator struct {
	// CompleteFunc is called by Complete if set.
	// If nil, uses default canned behavior.
	CompleteFunc func(ctx context.Context, systemPrompt, userPrompt string) (string, error)

	callCount  int
	lastSystem string
	lastUser   string
}

// NewMockTextGenerator creates a mock text generator with default behavior.
// Note: Returns concrete type to allow test assertions via GetMockTextGenerator().
func NewMockTextGenerator() *MockTextGenerator {
	return &MockTextGenerator{}
}

// Complete returns a deterministic canned completion.
// Default behavior: echoes the first line of the user prompt so tests can
// assert the prompt reached the generator.
func (m *MockTextGenerator) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	m.callCount++
	m.lastSystem = systemPrompt
	m.lastUser = userPrompt

	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, systemPrompt, userPrompt)
	}

	firstLine := userPrompt
	if idx := strings.IndexByte(userPrompt, '\n'); idx >= 0 {
		firstLine = userPrompt[:idx]
	}
	return "Mock answer for: " + strings.TrimSpace(firstLine), nil
}

// CallCount returns the number of times Complete was called.
func (m *MockTextGenerator) CallCount() int {
	return m.callCount
}

// LastPrompts returns the prompts from the most recent Complete call.
func (m *MockTextGenerator) LastPrompts() (systemPrompt, userPrompt string) {
	return m.lastSystem, m.lastUser
}

// Reset clears the call count and custom functions.
func (m *MockTextGenerator) Reset() {
	m.callCount = 0
	m.lastSystem = ""
	m.lastUser = ""
	m.CompleteFunc = nil
}
