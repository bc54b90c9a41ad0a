package factory

import (
	"context"
	"time"

	"github.com/barmonse/teg-server/internal/broadcast"
	"github.com/barmonse/teg-server/internal/dependencies/mocks"
	"github.com/barmonse/teg-server/internal/services/auth"
	"github.com/barmonse/teg-server/internal/storage/memory"
	"github.com/barmonse/teg-server/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	logger := testutil.NopLogger()
	broker := broadcast.NewMemoryBroker(logger)
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	app := newWithDependencies(store, broker, mockClock, mockRandom, auth.DefaultConfig(), logger)

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}

// LoadCatalog loads the built-in country map
func (t *TestApp) LoadCatalog(ctx context.Context) error {
	return t.CatalogService.LoadDefaults(ctx)
}

// Close shuts down the app's broker
func (t *TestApp) Close() {
	_ = t.Broker.Close()
}
