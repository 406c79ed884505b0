package repository

import (
	"context"
	"testing"

	"github.com/RansilvaV29/backend-chat-websoket/internal/db"
	"github.com/RansilvaV29/backend-chat-websoket/internal/model"
)

func setupTestRepo(t *testing.T) *RoomEventRepository {
	t.Helper()

	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("Failed to create database: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	return NewRoomEventRepository(database)
}

func TestRoomEventRepository_Record(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	capacity := 3
	events := []model.RoomEvent{
		{Pin: "123456", Kind: model.RoomEventCreated, ConnID: "conn-x", Capacity: &capacity},
		{Pin: "123456", Kind: model.RoomEventJoined, ConnID: "conn-y"},
		{Pin: "123456", Kind: model.RoomEventLeft, ConnID: "conn-x"},
		{Pin: "654321", Kind: model.RoomEventCreated, ConnID: "conn-z", Capacity: &capacity},
		{Pin: "123456", Kind: model.RoomEventDeleted},
	}
	for _, ev := range events {
		if err := repo.Record(ctx, ev); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	t.Run("list by pin in insertion order", func(t *testing.T) {
		got, err := repo.ListByPin(ctx, "123456")
		if err != nil {
			t.Fatalf("ListByPin failed: %v", err)
		}
		if len(got) != 4 {
			t.Fatalf("expected 4 events, got %d", len(got))
		}

		wantKinds := []model.RoomEventKind{
			model.RoomEventCreated,
			model.RoomEventJoined,
			model.RoomEventLeft,
			model.RoomEventDeleted,
		}
		for i, kind := range wantKinds {
			if got[i].Kind != kind {
				t.Errorf("event %d: expected kind %s, got %s", i, kind, got[i].Kind)
			}
		}

		if got[0].ConnID != "conn-x" {
			t.Errorf("expected conn-x on created event, got %q", got[0].ConnID)
		}
		if got[0].Capacity == nil || *got[0].Capacity != 3 {
			t.Error("created event should carry the capacity")
		}
		if got[3].ConnID != "" || got[3].Capacity != nil {
			t.Error("deleted event should have no conn or capacity")
		}
		if got[0].CreatedAt.IsZero() {
			t.Error("created_at should be populated")
		}
	})

	t.Run("list unknown pin is empty", func(t *testing.T) {
		got, err := repo.ListByPin(ctx, "000000")
		if err != nil {
			t.Fatalf("ListByPin failed: %v", err)
		}
		if len(got) != 0 {
			t.Errorf("expected no events, got %d", len(got))
		}
	})

	t.Run("count by kind", func(t *testing.T) {
		n, err := repo.CountByKind(ctx, model.RoomEventCreated)
		if err != nil {
			t.Fatalf("CountByKind failed: %v", err)
		}
		if n != 2 {
			t.Errorf("expected 2 created events, got %d", n)
		}
	})
}
