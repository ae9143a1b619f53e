package badger

import (
	"context"
	"testing"
	"time"

	"github.com/poiesic/candidex/core"
)

func TestCandidateStoreBasics(t *testing.T) {
	store, audit, backend, err := NewMemoryStores()
	if err != nil {
		t.Fatalf("Failed to create stores: %v", err)
	}
	defer func() {
		audit.Close()
		store.Close()
		backend.Close()
	}()

	ctx := context.Background()

	records := []*core.CandidateRecord{
		{
			IdentityKey: "https://linkedin.com/in/maria",
			Name:        "Maria Silva",
			Headline:    "Finance Manager",
			IngestedAt:  time.Now().UTC(),
		},
		{
			IdentityKey: "https://linkedin.com/in/joao",
			Name:        "João Costa",
			Headline:    "Marketing Lead",
			SkillsTags:  []string{"marketing"},
			IngestedAt:  time.Now().UTC(),
		},
	}

	if err := store.WriteAll(ctx, records); err != nil {
		t.Fatalf("Failed to write records: %v", err)
	}

	count, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Failed to count records: %v", err)
	}
	if count != 2 {
		t.Fatalf("Expected 2 records, got %d", count)
	}

	retrieved, err := store.ReadAll(ctx)
	if err != nil {
		t.Fatalf("Failed to read records: %v", err)
	}
	if len(retrieved) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(retrieved))
	}
	if retrieved[0].Name != "Maria Silva" {
		t.Fatalf("Expected 'Maria Silva' first, got '%s'", retrieved[0].Name)
	}
	if retrieved[1].SkillsTags[0] != "marketing" {
		t.Fatalf("Expected skills tag 'marketing', got '%v'", retrieved[1].SkillsTags)
	}
}

func TestCandidateStoreInsertionOrder(t *testing.T) {
	store, audit, backend, err := NewMemoryStores()
	if err != nil {
		t.Fatalf("Failed to create stores: %v", err)
	}
	defer func() {
		audit.Close()
		store.Close()
		backend.Close()
	}()

	ctx := context.Background()

	// Names chosen so lexicographic order differs from insertion order
	names := []string{"Zara", "Miguel", "Ana", "Rui", "Beatriz"}
	records := make([]*core.CandidateRecord, len(names))
	for i, name := range names {
		records[i] = &core.CandidateRecord{
			IdentityKey: "https://linkedin.com/in/" + name,
			Name:        name,
			IngestedAt:  time.Now().UTC(),
		}
	}

	if err := store.WriteAll(ctx, records); err != nil {
		t.Fatalf("Failed to write records: %v", err)
	}

	retrieved, err := store.ReadAll(ctx)
	if err != nil {
		t.Fatalf("Failed to read records: %v", err)
	}
	if len(retrieved) != len(names) {
		t.Fatalf("Expected %d records, got %d", len(names), len(retrieved))
	}
	for i, name := range names {
		if retrieved[i].Name != name {
			t.Fatalf("Expected '%s' at position %d, got '%s'", name, i, retrieved[i].Name)
		}
	}
}

func TestCandidateStoreWriteAllReplaces(t *testing.T) {
	store, audit, backend, err := NewMemoryStores()
	if err != nil {
		t.Fatalf("Failed to create stores: %v", err)
	}
	defer func() {
		audit.Close()
		store.Close()
		backend.Close()
	}()

	ctx := context.Background()

	first := []*core.CandidateRecord{
		{IdentityKey: "a", Name: "Ana", IngestedAt: time.Now().UTC()},
		{IdentityKey: "b", Name: "Bruno", IngestedAt: time.Now().UTC()},
	}
	if err := store.WriteAll(ctx, first); err != nil {
		t.Fatalf("Failed to write first set: %v", err)
	}

	second := []*core.CandidateRecord{
		{IdentityKey: "c", Name: "Carla", IngestedAt: time.Now().UTC()},
	}
	if err := store.WriteAll(ctx, second); err != nil {
		t.Fatalf("Failed to write second set: %v", err)
	}

	retrieved, err := store.ReadAll(ctx)
	if err != nil {
		t.Fatalf("Failed to read records: %v", err)
	}
	if len(retrieved) != 1 {
		t.Fatalf("Expected 1 record after replacement, got %d", len(retrieved))
	}
	if retrieved[0].Name != "Carla" {
		t.Fatalf("Expected 'Carla', got '%s'", retrieved[0].Name)
	}
}

func TestCandidateStoreDeleteByKey(t *testing.T) {
	store, audit, backend, err := NewMemoryStores()
	if err != nil {
		t.Fatalf("Failed to create stores: %v", err)
	}
	defer func() {
		audit.Close()
		store.Close()
		backend.Close()
	}()

	ctx := context.Background()

	records := []*core.CandidateRecord{
		{IdentityKey: "a", Name: "Ana", IngestedAt: time.Now().UTC()},
		{IdentityKey: "b", Name: "Bruno", IngestedAt: time.Now().UTC()},
		{IdentityKey: "c", Name: "Carla", IngestedAt: time.Now().UTC()},
	}
	if err := store.WriteAll(ctx, records); err != nil {
		t.Fatalf("Failed to write records: %v", err)
	}

	deleted, err := store.DeleteByKey(ctx, "b")
	if err != nil {
		t.Fatalf("Failed to delete record: %v", err)
	}
	if !deleted {
		t.Fatal("Expected deletion to report true")
	}

	retrieved, err := store.ReadAll(ctx)
	if err != nil {
		t.Fatalf("Failed to read records: %v", err)
	}
	if len(retrieved) != 2 {
		t.Fatalf("Expected 2 records after deletion, got %d", len(retrieved))
	}
	if retrieved[0].Name != "Ana" || retrieved[1].Name != "Carla" {
		t.Fatalf("Expected order [Ana, Carla], got [%s, %s]", retrieved[0].Name, retrieved[1].Name)
	}

	// Deleting an absent key is not an error
	deleted, err = store.DeleteByKey(ctx, "nobody")
	if err != nil {
		t.Fatalf("Unexpected error deleting absent key: %v", err)
	}
	if deleted {
		t.Fatal("Expected deletion of absent key to report false")
	}
}

func TestCandidateStoreEmptyIdentityKeys(t *testing.T) {
	store, audit, backend, err := NewMemoryStores()
	if err != nil {
		t.Fatalf("Failed to create stores: %v", err)
	}
	defer func() {
		audit.Close()
		store.Close()
		backend.Close()
	}()

	ctx := context.Background()

	// Records without identity keys must not collide with each other
	records := []*core.CandidateRecord{
		{Name: "Ana", IngestedAt: time.Now().UTC()},
		{Name: "Bruno", IngestedAt: time.Now().UTC()},
	}
	if err := store.WriteAll(ctx, records); err != nil {
		t.Fatalf("Failed to write records: %v", err)
	}

	retrieved, err := store.ReadAll(ctx)
	if err != nil {
		t.Fatalf("Failed to read records: %v", err)
	}
	if len(retrieved) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(retrieved))
	}
}

func TestCandidateStoreExtraFieldsRoundTrip(t *testing.T) {
	store, audit, backend, err := NewMemoryStores()
	if err != nil {
		t.Fatalf("Failed to create stores: %v", err)
	}
	defer func() {
		audit.Close()
		store.Close()
		backend.Close()
	}()

	ctx := context.Background()

	records := []*core.CandidateRecord{{
		IdentityKey: "a",
		Name:        "Ana",
		IngestedAt:  time.Now().UTC(),
		Extra:       map[string]string{"phantombuster_id": "xyz-123"},
	}}
	if err := store.WriteAll(ctx, records); err != nil {
		t.Fatalf("Failed to write records: %v", err)
	}

	retrieved, err := store.ReadAll(ctx)
	if err != nil {
		t.Fatalf("Failed to read records: %v", err)
	}
	if retrieved[0].Extra["phantombuster_id"] != "xyz-123" {
		t.Fatalf("Expected extra field to survive round trip, got %v", retrieved[0].Extra)
	}
}
