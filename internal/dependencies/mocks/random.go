package mocks

import (
	"github.com/mcoot/doubles-roundrobin/internal/dependencies/random"
)

// MockRandom is a mock implementation of Random for testing
type MockRandom struct {
	// IntnResults is a queue of results to return from Intn
	IntnResults []int
	intnIndex   int

	// StringResults is a queue of results to return from String
	StringResults []string
	stringIndex   int

	// Fallback serves calls once a queue is exhausted. When nil,
	// exhausted queues return zero values.
	Fallback random.Random
}

// Ensure MockRandom implements Random
var _ random.Random = (*MockRandom)(nil)

// NewMockRandom creates a new MockRandom
func NewMockRandom() *MockRandom {
	return &MockRandom{}
}

// NewMockRandomWithFallback creates a MockRandom that defers to fallback once its queues drain
func NewMockRandomWithFallback(fallback random.Random) *MockRandom {
	return &MockRandom{Fallback: fallback}
}

// Intn returns the next queued result, clamped into [0, n)
func (r *MockRandom) Intn(n int) int {
	if r.intnIndex >= len(r.IntnResults) {
		if r.Fallback != nil {
			return r.Fallback.Intn(n)
		}
		return 0
	}
	result := r.IntnResults[r.intnIndex]
	r.intnIndex++
	if n > 0 && result >= n {
		return n - 1
	}
	return result
}

// String returns the next queued result
func (r *MockRandom) String(length int, alphabet string) string {
	if r.stringIndex >= len(r.StringResults) {
		if r.Fallback != nil {
			return r.Fallback.String(length, alphabet)
		}
		return ""
	}
	result := r.StringResults[r.stringIndex]
	r.stringIndex++
	return result
}

// QueueIntn adds values to the Intn result queue
func (r *MockRandom) QueueIntn(values ...int) {
	r.IntnResults = append(r.IntnResults, values...)
}

// QueueString adds values to the String result queue
func (r *MockRandom) QueueString(values ...string) {
	r.StringResults = append(r.StringResults, values...)
}

// Reset clears all queued results
func (r *MockRandom) Reset() {
	r.IntnResults = nil
	r.intnIndex = 0
	r.StringResults = nil
	r.stringIndex = 0
}
