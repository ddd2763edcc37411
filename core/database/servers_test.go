package database

import (
	"os"
	"testing"

	"PogBot/core/wizard"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// The sqlite-backed store is what the wizard engine writes through.
var _ wizard.Store = ServerStore{}

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) func() {
	db, err := sqlx.Connect("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	_, err = db.Exec(schema)
	if err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	// Set the package-level database
	database = db

	// Return cleanup function
	return func() {
		db.Close()
		database = nil
	}
}

func TestMain(m *testing.M) {
	code := m.Run()
	os.Exit(code)
}

func TestSetPrefixUpsert(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()

	if err := SetPrefix("guild-1", "?"); err != nil {
		t.Fatalf("SetPrefix failed: %v", err)
	}
	if prefix := GetPrefix("guild-1"); prefix != "?" {
		t.Errorf("Expected prefix '?', got '%s'", prefix)
	}

	// Second write for the same guild replaces, not duplicates
	if err := SetPrefix("guild-1", "$"); err != nil {
		t.Fatalf("SetPrefix update failed: %v", err)
	}
	if prefix := GetPrefix("guild-1"); prefix != "$" {
		t.Errorf("Expected prefix '$', got '%s'", prefix)
	}

	var count int
	if err := database.Get(&count, "SELECT COUNT(*) FROM servers"); err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected a single row after upserts, got %d", count)
	}
}

func TestGetPrefixUnconfiguredGuild(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()

	if prefix := GetPrefix("nobody-set-me-up"); prefix != "" {
		t.Errorf("Expected empty prefix for unknown guild, got '%s'", prefix)
	}
}

func TestFetchServerUnknown(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()

	if server := FetchServer("missing"); server != nil {
		t.Errorf("Expected nil for unknown guild, got %+v", server)
	}
}

func TestSettersAreIndependent(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()

	if err := SetWelcomeDmMessage("guild-1", "Hi %USER%"); err != nil {
		t.Fatalf("SetWelcomeDmMessage failed: %v", err)
	}
	if err := SetWelcomeRole("guild-1", "role-9"); err != nil {
		t.Fatalf("SetWelcomeRole failed: %v", err)
	}

	server := FetchServer("guild-1")
	if server == nil {
		t.Fatal("Expected to find server after writes")
	}
	if server.WelcomeDmMessage == nil || *server.WelcomeDmMessage != "Hi %USER%" {
		t.Errorf("Unexpected dm message: %v", server.WelcomeDmMessage)
	}
	if server.WelcomeRole == nil || *server.WelcomeRole != "role-9" {
		t.Errorf("Unexpected role: %v", server.WelcomeRole)
	}
	// Fields never written stay unset
	if server.WelcomeMessage != nil {
		t.Errorf("Expected unset welcome message, got %v", *server.WelcomeMessage)
	}
	if server.WelcomeChannel != nil {
		t.Errorf("Expected unset welcome channel, got %v", *server.WelcomeChannel)
	}
}

func TestEmptyValueClearsField(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()

	SetWelcomeRole("guild-1", "role-9")
	if err := SetWelcomeRole("guild-1", ""); err != nil {
		t.Fatalf("Clearing role failed: %v", err)
	}

	server := FetchServer("guild-1")
	if server == nil {
		t.Fatal("Expected to find server")
	}
	if server.WelcomeRole != nil {
		t.Errorf("Expected cleared role, got %v", *server.WelcomeRole)
	}
}

func TestResetWelcomeMessageLeavesDmAlone(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()

	SetWelcomeMessage("guild-1", "Welcome %USER%!")
	SetWelcomeDmMessage("guild-1", "Glad you're here")
	if err := ResetWelcomeMessage("guild-1"); err != nil {
		t.Fatalf("ResetWelcomeMessage failed: %v", err)
	}

	server := FetchServer("guild-1")
	if server.WelcomeMessage != nil {
		t.Errorf("Expected cleared welcome message, got %v", *server.WelcomeMessage)
	}
	if server.WelcomeDmMessage == nil || *server.WelcomeDmMessage != "Glad you're here" {
		t.Errorf("DM message should survive a welcome reset: %v", server.WelcomeDmMessage)
	}
}

func TestSetWelcomeCardEnabled(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()

	SetWelcomeCardEnabled("guild-1", true)
	if server := FetchServer("guild-1"); server == nil || !server.WelcomeCard {
		t.Error("Expected card flag set")
	}

	SetWelcomeCardEnabled("guild-1", false)
	if server := FetchServer("guild-1"); server == nil || server.WelcomeCard {
		t.Error("Expected card flag cleared")
	}
}

func TestSetterWithClosedDatabase(t *testing.T) {
	cleanup := setupTestDB(t)
	cleanup()

	if err := SetPrefix("guild-1", "?"); err == nil {
		t.Error("Expected an error writing without an open database")
	}
}
