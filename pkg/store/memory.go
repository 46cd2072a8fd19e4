package store

import (
	"sync"

	"github.com/medisure/medisurechat/pkg/chat"
)

// Memory implements Store in memory with the same versioned-write contract
// as GormStore. Used in tests and local development.
type Memory struct {
	mu      sync.Mutex
	records []chat.ConversationRecord
	version uint
}

// NewMemory creates an empty in-memory store
func NewMemory() *Memory {
	return &Memory{version: 1}
}

// ReadAll returns a copy of the record list at the current version
func (m *Memory) ReadAll() (*Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	records := make([]chat.ConversationRecord, len(m.records))
	copy(records, m.records)
	return &Snapshot{Records: records, Version: m.version}, nil
}

// WriteAll replaces the record list if version matches the stored version
func (m *Memory) WriteAll(records []chat.ConversationRecord, version uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if version != m.version {
		return ErrConflict
	}
	m.records = make([]chat.ConversationRecord, len(records))
	copy(m.records, records)
	m.version++
	return nil
}
