package oauthstate_test

import (
	"testing"
	"time"

	"github.com/real-ds/VITConnectDemo/internal/app/store/oauthstate"
	"github.com/real-ds/VITConnectDemo/internal/testutil"
)

func TestStore_SaveAndValidate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := oauthstate.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	state := "test-state-123"
	returnURL := "/communities"
	expiresAt := time.Now().Add(10 * time.Minute)

	if err := store.Save(ctx, state, returnURL, expiresAt); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	gotReturnURL, valid, err := store.Validate(ctx, state)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if !valid {
		t.Error("expected state to be valid")
	}
	if gotReturnURL != returnURL {
		t.Errorf("returnURL: expected %q, got %q", returnURL, gotReturnURL)
	}
}

func TestStore_Validate_InvalidState(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := oauthstate.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	returnURL, valid, err := store.Validate(ctx, "non-existent-state")
	if err != nil {
		t.Fatalf("Validate error: %v", err)
	}
	if valid {
		t.Error("expected invalid state to return valid=false")
	}
	if returnURL != "" {
		t.Errorf("expected empty returnURL, got %q", returnURL)
	}
}

func TestStore_Validate_SingleUse(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := oauthstate.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	state := "single-use-state"
	expiresAt := time.Now().Add(10 * time.Minute)

	if err := store.Save(ctx, state, "", expiresAt); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// First validation should succeed
	_, valid, err := store.Validate(ctx, state)
	if err != nil {
		t.Fatalf("First Validate failed: %v", err)
	}
	if !valid {
		t.Error("expected first validation to succeed")
	}

	// Second validation should fail (state deleted)
	_, valid, err = store.Validate(ctx, state)
	if err != nil {
		t.Fatalf("Second Validate error: %v", err)
	}
	if valid {
		t.Error("expected second validation to fail (single use)")
	}
}

func TestStore_Validate_Expired(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := oauthstate.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	state := "expired-state"
	expiresAt := time.Now().Add(-1 * time.Minute)

	if err := store.Save(ctx, state, "", expiresAt); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	_, valid, err := store.Validate(ctx, state)
	if err != nil {
		t.Fatalf("Validate error: %v", err)
	}
	if valid {
		t.Error("expected expired state to be invalid")
	}
}

func TestStore_CleanupExpired(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := oauthstate.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	for i := 0; i < 3; i++ {
		err := store.Save(ctx, "expired-"+string(rune('a'+i)), "", time.Now().Add(-1*time.Minute))
		if err != nil {
			t.Fatalf("Save expired state failed: %v", err)
		}
	}
	for i := 0; i < 2; i++ {
		err := store.Save(ctx, "valid-"+string(rune('a'+i)), "", time.Now().Add(10*time.Minute))
		if err != nil {
			t.Fatalf("Save valid state failed: %v", err)
		}
	}

	deleted, err := store.CleanupExpired(ctx)
	if err != nil {
		t.Fatalf("CleanupExpired failed: %v", err)
	}
	if deleted != 3 {
		t.Errorf("expected 3 deleted, got %d", deleted)
	}

	_, valid, _ := store.Validate(ctx, "valid-a")
	if !valid {
		t.Error("expected valid-a to still be valid")
	}
}

func TestStore_Save_DuplicateState(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := oauthstate.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := store.EnsureIndexes(ctx); err != nil {
		t.Fatalf("EnsureIndexes failed: %v", err)
	}

	state := "duplicate-state"
	expiresAt := time.Now().Add(10 * time.Minute)

	if err := store.Save(ctx, state, "", expiresAt); err != nil {
		t.Fatalf("First Save failed: %v", err)
	}
	if err := store.Save(ctx, state, "", expiresAt); err == nil {
		t.Error("expected duplicate state to fail")
	}
}
