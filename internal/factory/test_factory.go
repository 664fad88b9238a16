package factory

import (
	"github.com/follgramer/DiamantesProPlayers/internal/storage/memory"
	"github.com/follgramer/DiamantesProPlayers/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// MemoryStorage is the concrete backend for direct state assertions
	MemoryStorage *memory.Storage
}

// NewTestApp creates an App backed by in-memory storage for testing
func NewTestApp() *TestApp {
	store := memory.New()
	app := newWithStorage(store, testutil.NopLogger())

	return &TestApp{
		App:           app,
		MemoryStorage: store,
	}
}
