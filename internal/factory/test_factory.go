package factory

import (
	"log/slog"
	"time"

	"github.com/mcoot/doubles-roundrobin/internal/dependencies/mocks"
	"github.com/mcoot/doubles-roundrobin/internal/dependencies/random"
	"github.com/mcoot/doubles-roundrobin/internal/storage/memory"
	"github.com/mcoot/doubles-roundrobin/internal/testutil"
)

// TestSeed seeds the random fallback used by TestApp schedules
const TestSeed = 1

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies.
// Queued random values are consumed first; once drained, a seeded source
// takes over so generated schedules stay reproducible.
func NewTestApp() *TestApp {
	return NewTestAppWithLogger(testutil.NopLogger())
}

// NewTestAppWithLogger is NewTestApp with a caller-supplied logger
func NewTestAppWithLogger(logger *slog.Logger) *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandomWithFallback(random.NewSeeded(TestSeed))

	app := newWithDependencies(store, mockClock, mockRandom, logger)

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}
