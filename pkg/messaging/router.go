package messaging

import (
	"errors"
	"fmt"
	"time"

	"github.com/medisure/medisurechat/pkg/chat"
	"github.com/medisure/medisurechat/pkg/directory"
	"github.com/medisure/medisurechat/pkg/store"
)

// Writes race under concurrent senders; a conflicting version is re-read and
// the append replayed up to this many times before the send fails.
const maxWriteAttempts = 3

// Send appends a message to the conversation addressed by the selection,
// creating the conversation record if no exact participant match exists. The
// sender's username is resolved up front and snapshotted on the entry; a
// failed sender lookup fails the whole send. An empty body is a no-op.
func Send(st store.Store, dir directory.UserDirectory, senderID string, senderRole chat.Role, selection RecipientSelection, body string) error {
	if body == "" {
		return nil
	}

	target, err := selection.TargetRecord(senderID, senderRole)
	if err != nil {
		return err
	}
	key := chat.ConversationKey(senderRole, senderID, target)

	sender, err := dir.GetUserProfile(senderID)
	if err != nil {
		return fmt.Errorf("messaging: send %s conversation %s: resolve sender: %w", selection.Kind, key, err)
	}

	entry := chat.MessageEntry{
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
		Sender:    sender.Username,
		Body:      body,
	}

	var lastErr error
	for attempt := 0; attempt < maxWriteAttempts; attempt++ {
		snapshot, readErr := st.ReadAll()
		if readErr != nil {
			return fmt.Errorf("messaging: send %s conversation %s: %w", selection.Kind, key, readErr)
		}
		records := appendEntry(snapshot.Records, target, entry)
		lastErr = st.WriteAll(records, snapshot.Version)
		if lastErr == nil {
			return nil
		}
		if !errors.Is(lastErr, store.ErrConflict) {
			break
		}
	}
	return fmt.Errorf("messaging: send %s conversation %s: %w", selection.Kind, key, lastErr)
}

// appendEntry finds the record with exactly the target's participant slots
// and appends to it, or adds a new record when none matches
func appendEntry(records []chat.ConversationRecord, target chat.ConversationRecord, entry chat.MessageEntry) []chat.ConversationRecord {
	for idx := range records {
		if records[idx].SameParticipants(target) {
			records[idx].Entries = append(records[idx].Entries, entry)
			return records
		}
	}
	target.Entries = []chat.MessageEntry{entry}
	return append(records, target)
}
