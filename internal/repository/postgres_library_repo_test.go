package repository

import (
	"testing"
	"time"

	"github.com/hitoshi/gamestore/internal/model"
)

// PostgresLibraryRepoはLibraryRepositoryインターフェースを満たすことを検証
func TestPostgresLibraryRepo_ImplementsInterface(t *testing.T) {
	var _ LibraryRepository = (*PostgresLibraryRepo)(nil)
}

// NewPostgresLibraryRepoが正しく初期化されることを検証
func TestNewPostgresLibraryRepo_Initializes(t *testing.T) {
	repo := NewPostgresLibraryRepo(nil)
	if repo == nil {
		t.Fatal("expected non-nil repo")
	}
}

// OwnershipRecordモデルのフィールドが正しく構築されることを検証
func TestPostgresLibraryRepo_OwnershipRecordModel_Fields(t *testing.T) {
	now := time.Now()
	record := &model.OwnershipRecord{
		ID:          "record-1",
		UserID:      "user-1",
		GameID:      "game-1",
		PurchasedAt: now,
	}

	if record.UserID != "user-1" {
		t.Errorf("record.UserID = %q, want %q", record.UserID, "user-1")
	}
	if record.GameID != "game-1" {
		t.Errorf("record.GameID = %q, want %q", record.GameID, "game-1")
	}
	if !record.PurchasedAt.Equal(now) {
		t.Errorf("record.PurchasedAt = %v, want %v", record.PurchasedAt, now)
	}
}
