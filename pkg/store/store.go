package store

import (
	"errors"

	"github.com/medisure/medisurechat/pkg/chat"
)

// ErrConflict is returned by WriteAll when another writer updated the
// document since the snapshot was read. Callers re-read and retry.
var ErrConflict = errors.New("store: document version changed since read")

// Snapshot is the full record list as read at one point, plus the document
// version it was read at
type Snapshot struct {
	Records []chat.ConversationRecord
	Version uint
}

// Store persists the single shared list of conversation records. The list is
// loaded wholesale and fully replaced on write; the version observed at
// ReadAll guards the replacement.
type Store interface {
	ReadAll() (*Snapshot, error)
	WriteAll(records []chat.ConversationRecord, version uint) error
}
