package db

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/drsixthsense/lifelog-public/journal"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	database, err := New(filepath.Join(t.TempDir(), "lifelog.db"))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

func TestSaveProfile_RoundTrip(t *testing.T) {
	database := openTestDB(t)

	profile := &journal.Profile{
		Name:             "Test User",
		Age:              "30",
		Sex:              "Other",
		Work:             "Developer",
		Hobby:            "Testing",
		Language:         "Klingon",
		NotionToken:      "testNotionToken123",
		NotionDatabaseID: "testNotionDbId456",
		ChatGPTAPIKey:    "testChatGPTKey789",
		GeminiAPIKey:     "testGeminiKeyABC",
	}

	if err := database.SaveProfile(profile); err != nil {
		t.Fatalf("SaveProfile failed: %v", err)
	}

	loaded, err := database.LoadProfile()
	if err != nil {
		t.Fatalf("LoadProfile failed: %v", err)
	}
	if !reflect.DeepEqual(loaded, profile) {
		t.Errorf("round trip mismatch. Expected: %+v, Got: %+v", profile, loaded)
	}
}

func TestSaveProfile_AbsentSecrets(t *testing.T) {
	database := openTestDB(t)

	profile := &journal.Profile{
		Name:     "Test User",
		Age:      "30",
		Sex:      "F",
		Work:     "Artist",
		Hobby:    "Painting",
		Language: "English",
		// all four secrets absent
	}

	if err := database.SaveProfile(profile); err != nil {
		t.Fatalf("SaveProfile failed: %v", err)
	}

	loaded, err := database.LoadProfile()
	if err != nil {
		t.Fatalf("LoadProfile failed: %v", err)
	}
	if loaded.NotionToken != "" || loaded.ChatGPTAPIKey != "" || loaded.GeminiAPIKey != "" || loaded.NotionDatabaseID != "" {
		t.Errorf("absent secrets should load as empty, got: %+v", loaded)
	}

	// The secret keys still exist as rows; only the required six decide
	// completeness.
	complete, err := database.HasCompleteProfile()
	if err != nil {
		t.Fatalf("HasCompleteProfile failed: %v", err)
	}
	if !complete {
		t.Error("profile with all required fields should be complete without secrets")
	}
}

func TestSaveProfile_Overwrite(t *testing.T) {
	database := openTestDB(t)

	first := &journal.Profile{Name: "Before", Age: "1", Sex: "x", Work: "w", Hobby: "h", Language: "English"}
	if err := database.SaveProfile(first); err != nil {
		t.Fatalf("SaveProfile failed: %v", err)
	}

	second := &journal.Profile{Name: "After", Age: "2", Sex: "y", Work: "v", Hobby: "g", Language: "Spanish"}
	if err := database.SaveProfile(second); err != nil {
		t.Fatalf("SaveProfile failed: %v", err)
	}

	loaded, err := database.LoadProfile()
	if err != nil {
		t.Fatalf("LoadProfile failed: %v", err)
	}
	if loaded.Name != "After" || loaded.Language != "Spanish" {
		t.Errorf("expected the last write to win, got: %+v", loaded)
	}
}

func TestHasCompleteProfile_FreshStore(t *testing.T) {
	database := openTestDB(t)

	complete, err := database.HasCompleteProfile()
	if err != nil {
		t.Fatalf("HasCompleteProfile failed: %v", err)
	}
	if complete {
		t.Error("fresh store should not report a complete profile")
	}
}

func TestGetValue_MissingKey(t *testing.T) {
	database := openTestDB(t)

	_, ok, err := database.GetValue("name")
	if err != nil {
		t.Fatalf("GetValue failed: %v", err)
	}
	if ok {
		t.Error("missing key should report not found")
	}
}
