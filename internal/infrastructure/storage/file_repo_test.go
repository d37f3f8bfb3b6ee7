package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cognitivegears/ha-escpos-thermal-printer/internal/domain/models"
)

func newTestRepo(t *testing.T) (string, *FileProfileRepository) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "printers", "profiles.json")
	repo, err := NewFileProfileRepository(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return path, repo.(*FileProfileRepository)
}

func TestRepositoryStartsEmpty(t *testing.T) {
	_, repo := newTestRepo(t)

	profiles, err := repo.LoadProfiles()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(profiles) != 0 {
		t.Errorf("expected empty repository, got %d profiles", len(profiles))
	}
}

func TestUpsertAndFindProfile(t *testing.T) {
	path, repo := newTestRepo(t)

	profile := &models.PrinterProfile{
		ID:             "kitchen",
		Name:           "Kitchen printer",
		ConnectionType: models.ConnectionNetwork,
		Host:           "192.168.1.50",
		Port:           9100,
		Codepage:       "CP437",
	}
	if err := repo.UpsertProfile(profile); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found, err := repo.FindProfile("kitchen")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found == nil {
		t.Fatal("expected profile, got nil")
	}
	if found.Host != "192.168.1.50" {
		t.Errorf("expected host 192.168.1.50, got %s", found.Host)
	}

	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected profiles file on disk: %v", err)
	}
}

func TestUpsertReplacesExistingProfile(t *testing.T) {
	_, repo := newTestRepo(t)

	if err := repo.UpsertProfile(&models.PrinterProfile{ID: "p1", Codepage: "CP437"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := repo.UpsertProfile(&models.PrinterProfile{ID: "p1", Codepage: "CP858"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	profiles, err := repo.LoadProfiles()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(profiles) != 1 {
		t.Fatalf("expected 1 profile, got %d", len(profiles))
	}
	if profiles[0].Codepage != "CP858" {
		t.Errorf("expected codepage CP858, got %s", profiles[0].Codepage)
	}
}

func TestDeleteProfile(t *testing.T) {
	_, repo := newTestRepo(t)

	repo.UpsertProfile(&models.PrinterProfile{ID: "p1"})
	repo.UpsertProfile(&models.PrinterProfile{ID: "p2"})

	if err := repo.DeleteProfile("p1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := repo.DeleteProfile("missing"); err == nil {
		t.Error("expected error deleting missing profile, got nil")
	}

	profiles, _ := repo.LoadProfiles()
	if len(profiles) != 1 || profiles[0].ID != "p2" {
		t.Errorf("expected only p2 to remain, got %+v", profiles)
	}
}

func TestFindMissingProfile(t *testing.T) {
	_, repo := newTestRepo(t)

	found, err := repo.FindProfile("missing")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found != nil {
		t.Errorf("expected nil for missing profile, got %+v", found)
	}
}

func TestProfilesSurviveReload(t *testing.T) {
	path, repo := newTestRepo(t)

	repo.UpsertProfile(&models.PrinterProfile{ID: "p1", Name: "Front desk"})

	reloaded, err := NewFileProfileRepository(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	profiles, err := reloaded.LoadProfiles()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(profiles) != 1 || profiles[0].Name != "Front desk" {
		t.Errorf("expected reloaded profile, got %+v", profiles)
	}
}

func TestUpdateLastUsed(t *testing.T) {
	_, repo := newTestRepo(t)

	repo.UpsertProfile(&models.PrinterProfile{ID: "p1"})
	if err := repo.UpdateLastUsed("p1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found, _ := repo.FindProfile("p1")
	if found.LastUsed.IsZero() {
		t.Error("expected LastUsed to be stamped")
	}

	// Unknown IDs are a silent no-op.
	if err := repo.UpdateLastUsed("missing"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
