package messaging

import (
	"errors"
	"testing"

	"github.com/medisure/medisurechat/pkg/chat"
	"github.com/medisure/medisurechat/pkg/mocks"
	"github.com/medisure/medisurechat/pkg/store"
)

func clientDirectory() *mocks.UserDirectoryMock {
	dir := new(mocks.UserDirectoryMock)
	dir.On("GetUserProfile", "C1").Return(&chat.UserProfile{ID: "C1", Username: "carol", Role: chat.RoleClient}, nil)
	return dir
}

func TestSendGroupsIntoOneRecord(t *testing.T) {
	st := store.NewMemory()
	dir := clientDirectory()

	if err := Send(st, dir, "C1", chat.RoleClient, ToDoctor("D1"), "hello"); err != nil {
		t.Fatalf("First send failed: %v", err)
	}
	if err := Send(st, dir, "C1", chat.RoleClient, ToDoctor("D1"), "are you there?"); err != nil {
		t.Fatalf("Second send failed: %v", err)
	}

	snapshot, _ := st.ReadAll()
	if len(snapshot.Records) != 1 {
		t.Fatalf("Expected one record for identical match key, got %d", len(snapshot.Records))
	}
	record := snapshot.Records[0]
	if record.Client != "C1" || record.Doctor != "D1" || record.Provider != "" {
		t.Errorf("Unexpected participant slots %+v", record)
	}
	if len(record.Entries) != 2 {
		t.Fatalf("Expected two entries, got %d", len(record.Entries))
	}
	if record.Entries[0].Body != "hello" || record.Entries[0].Sender != "carol" {
		t.Errorf("Unexpected first entry %+v", record.Entries[0])
	}
}

func TestSendDistinctRecipientSubsets(t *testing.T) {
	st := store.NewMemory()
	dir := clientDirectory()

	_ = Send(st, dir, "C1", chat.RoleClient, ToDoctor("D1"), "doctor only")
	_ = Send(st, dir, "C1", chat.RoleClient, ToDoctorAndProvider("D1", "P1"), "doctor and provider")

	snapshot, _ := st.ReadAll()
	if len(snapshot.Records) != 2 {
		t.Fatalf("Different recipient subsets should create distinct records, got %d", len(snapshot.Records))
	}
}

func TestSendBroadcast(t *testing.T) {
	st := store.NewMemory()
	dir := new(mocks.UserDirectoryMock)
	dir.On("GetUserProfile", "D1").Return(&chat.UserProfile{ID: "D1", Username: "dr-lee", Role: chat.RoleDoctor}, nil)

	_ = Send(st, dir, "D1", chat.RoleDoctor, ToAllDoctors(), "notice")
	_ = Send(st, dir, "D1", chat.RoleDoctor, ToAllDoctors(), "another notice")

	snapshot, _ := st.ReadAll()
	if len(snapshot.Records) != 1 {
		t.Fatalf("Expected a single broadcast record, got %d", len(snapshot.Records))
	}
	record := snapshot.Records[0]
	if !record.IsBroadcast() || record.Client != "" || record.Provider != "" {
		t.Errorf("Broadcast record should only carry the sentinel, got %+v", record)
	}
	if len(record.Entries) != 2 {
		t.Errorf("Expected both notices on the broadcast thread, got %d", len(record.Entries))
	}
}

func TestSendEmptyBodyIsNoOp(t *testing.T) {
	st := store.NewMemory()
	dir := new(mocks.UserDirectoryMock)

	if err := Send(st, dir, "C1", chat.RoleClient, ToDoctor("D1"), ""); err != nil {
		t.Errorf("Empty body should be a no-op, got %v", err)
	}
	snapshot, _ := st.ReadAll()
	if len(snapshot.Records) != 0 {
		t.Errorf("Empty body should not touch the store")
	}
}

func TestSendSenderLookupFailureIsFatal(t *testing.T) {
	st := store.NewMemory()
	dir := new(mocks.UserDirectoryMock)
	dir.On("GetUserProfile", "C1").Return(nil, errors.New("directory unavailable"))

	if err := Send(st, dir, "C1", chat.RoleClient, ToDoctor("D1"), "hello"); err == nil {
		t.Fatalf("Send without a resolvable sender name should fail")
	}
	snapshot, _ := st.ReadAll()
	if len(snapshot.Records) != 0 {
		t.Errorf("Failed send should not write")
	}
}

func TestSendRejectsSelectionForWrongRole(t *testing.T) {
	st := store.NewMemory()
	dir := clientDirectory()

	if err := Send(st, dir, "C1", chat.RoleClient, ToAllDoctors(), "hello"); err == nil {
		t.Errorf("Client should not be able to broadcast to doctors")
	}
	if err := Send(st, dir, "C1", chat.RoleClient, ToClient("C2"), "hello"); err == nil {
		t.Errorf("Client should not be able to target another patient")
	}
}

// conflictStore fails the first n writes with ErrConflict before delegating
type conflictStore struct {
	*store.Memory
	failures int
}

func (s *conflictStore) WriteAll(records []chat.ConversationRecord, version uint) error {
	if s.failures > 0 {
		s.failures--
		return store.ErrConflict
	}
	return s.Memory.WriteAll(records, version)
}

func TestSendRetriesOnWriteConflict(t *testing.T) {
	st := &conflictStore{Memory: store.NewMemory(), failures: 1}
	dir := clientDirectory()

	if err := Send(st, dir, "C1", chat.RoleClient, ToDoctor("D1"), "hello"); err != nil {
		t.Fatalf("Send should retry past a single conflict: %v", err)
	}
	snapshot, _ := st.ReadAll()
	if len(snapshot.Records) != 1 || len(snapshot.Records[0].Entries) != 1 {
		t.Errorf("Entry missing after retried write")
	}
}

func TestSendSurfacesExhaustedConflicts(t *testing.T) {
	st := &conflictStore{Memory: store.NewMemory(), failures: 10}
	dir := clientDirectory()

	err := Send(st, dir, "C1", chat.RoleClient, ToDoctor("D1"), "hello")
	if !errors.Is(err, store.ErrConflict) {
		t.Errorf("Exhausted retries should surface the conflict, got %v", err)
	}
}
