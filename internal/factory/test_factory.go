package factory

import (
	"time"

	"github.com/mcoot/cornhole/internal/dependencies/mocks"
	"github.com/mcoot/cornhole/internal/remote"
	"github.com/mcoot/cornhole/internal/services/localstore"
	"github.com/mcoot/cornhole/internal/storage"
	"github.com/mcoot/cornhole/internal/storage/memory"
	"github.com/mcoot/cornhole/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock *mocks.MockClock
}

// NewTestApp creates an App over in-memory storage with a mocked clock,
// talking to the record store at remoteURL
func NewTestApp(remoteURL string) *TestApp {
	return NewTestAppWithStore(memory.New(), remoteURL)
}

// NewTestAppWithStore is NewTestApp over the given storage backend
func NewTestAppWithStore(store storage.Store, remoteURL string) *TestApp {
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	client := remote.NewClient(remote.Config{BaseURL: remoteURL, Timeout: 5 * time.Second})

	app := newWithDependencies(store, mockClock, client, localstore.DefaultConfig(), testutil.NopLogger())

	return &TestApp{
		App:       app,
		MockClock: mockClock,
	}
}
