package store

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres"
)

func TestGormStoreReadAll(t *testing.T) {
	db, dbMock, _ := sqlmock.New()
	gormDB, _ := gorm.Open("postgres", db)
	st := NewGormStore(gormDB)

	dbMock.ExpectQuery("SELECT (.+) FROM (.+)").
		WillReturnRows(sqlmock.NewRows([]string{"id", "version", "data"}).
			AddRow(1, 3, []byte(`{"messages":[{"Client":"C1","Doctor":"D1","messages":[{"timestamp":"2024-01-01T00:00:00Z","sender":"carol","message":"hello"}]}]}`)))

	snapshot, err := st.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if snapshot.Version != 3 {
		t.Errorf("Expected document version 3, got %d", snapshot.Version)
	}
	if len(snapshot.Records) != 1 || snapshot.Records[0].Client != "C1" {
		t.Errorf("Records not decoded from document")
	}
	if len(snapshot.Records[0].Entries) != 1 || snapshot.Records[0].Entries[0].Body != "hello" {
		t.Errorf("Entries not decoded from document")
	}
}

func TestGormStoreReadAllMissingDocument(t *testing.T) {
	db, dbMock, _ := sqlmock.New()
	gormDB, _ := gorm.Open("postgres", db)
	st := NewGormStore(gormDB)

	dbMock.ExpectQuery("SELECT (.+) FROM (.+)").
		WillReturnRows(sqlmock.NewRows([]string{"id", "version", "data"}))

	snapshot, err := st.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll on empty table failed: %v", err)
	}
	if snapshot.Version != 0 || len(snapshot.Records) != 0 {
		t.Errorf("Missing document should read as empty at version zero")
	}
}
