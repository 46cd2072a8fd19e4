package store

import (
	"encoding/json"
	"fmt"

	"github.com/jinzhu/gorm"
	"github.com/jinzhu/gorm/dialects/postgres"

	"github.com/medisure/medisurechat/pkg/chat"
)

// MessageDoc is the struct for managing database access to the shared
// message document. A single row holds every conversation record as JSONB,
// mirroring the one-document layout the UI reads wholesale on each load.
type MessageDoc struct {
	gorm.Model
	Version uint           `gorm:"default:1" json:"version"`
	Data    postgres.Jsonb `json:"data"`
}

type docPayload struct {
	Messages []chat.ConversationRecord `json:"messages"`
}

// GormStore implements Store over the singleton MessageDoc row
type GormStore struct {
	DB *gorm.DB
}

// NewGormStore is a constructor for GormStore structs
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{DB: db}
}

// ReadAll loads the full record list. A missing row reads as an empty list
// at version zero; WriteAll creates the row in that case.
func (s *GormStore) ReadAll() (*Snapshot, error) {
	var doc MessageDoc
	query := s.DB.Last(&doc)
	if query.RecordNotFound() {
		return &Snapshot{}, nil
	}
	if query.Error != nil {
		return nil, fmt.Errorf("store: read: %w", query.Error)
	}
	var payload docPayload
	if err := json.Unmarshal(doc.Data.RawMessage, &payload); err != nil {
		return nil, fmt.Errorf("store: decode document: %w", err)
	}
	return &Snapshot{Records: payload.Messages, Version: doc.Version}, nil
}

// WriteAll replaces the record list if the row is still at the version the
// caller read. A zero version writes the initial row.
func (s *GormStore) WriteAll(records []chat.ConversationRecord, version uint) error {
	payload, err := json.Marshal(docPayload{Messages: records})
	if err != nil {
		return fmt.Errorf("store: encode document: %w", err)
	}
	data := postgres.Jsonb{RawMessage: json.RawMessage(payload)}

	if version == 0 {
		doc := MessageDoc{Version: 1, Data: data}
		if createErr := s.DB.Create(&doc).Error; createErr != nil {
			return fmt.Errorf("store: write: %w", createErr)
		}
		return nil
	}

	query := s.DB.Model(&MessageDoc{}).
		Where("version = ?", version).
		Updates(map[string]interface{}{"version": version + 1, "data": data})
	if query.Error != nil {
		return fmt.Errorf("store: write: %w", query.Error)
	}
	if query.RowsAffected == 0 {
		return ErrConflict
	}
	return nil
}
