package storage

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

func TestValidateWithDetector(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "does", "not", "exist", "state.db")

	tests := []struct {
		name     string
		fsType   string
		detErr   error
		wantErr  bool
		errMatch string
	}{
		{name: "local ext4", fsType: "ext4"},
		{name: "local btrfs", fsType: "btrfs"},
		{name: "nfs refused", fsType: "nfs", wantErr: true, errMatch: "network filesystem"},
		{name: "cifs refused", fsType: "cifs", wantErr: true, errMatch: "network filesystem"},
		{name: "case insensitive", fsType: " NFS ", wantErr: true},
		{name: "detection failure is tolerated", detErr: errors.New("statfs unsupported")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			detector := func(string) (string, error) { return tt.fsType, tt.detErr }
			err := validateWithDetector(dbPath, detector)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected refusal for %q", tt.fsType)
				}
				if tt.errMatch != "" && !strings.Contains(err.Error(), tt.errMatch) {
					t.Fatalf("error %q does not mention %q", err, tt.errMatch)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidateEmptyPath(t *testing.T) {
	err := validateWithDetector("", func(string) (string, error) { return "ext4", nil })
	if err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestNearestExistingPathWalksUp(t *testing.T) {
	dir := t.TempDir()
	deep := filepath.Join(dir, "a", "b", "c", "state.db")

	got, err := nearestExistingPath(deep)
	if err != nil {
		t.Fatalf("nearestExistingPath: %v", err)
	}
	if got != dir {
		t.Fatalf("expected %q, got %q", dir, got)
	}

	// An existing path resolves to itself.
	got, err = nearestExistingPath(dir)
	if err != nil {
		t.Fatalf("nearestExistingPath existing: %v", err)
	}
	if got != dir {
		t.Fatalf("expected %q, got %q", dir, got)
	}
}

func TestIsNetworkFilesystem(t *testing.T) {
	for fs, want := range map[string]bool{
		"nfs":   true,
		"cifs":  true,
		"smb2":  true,
		"ext4":  false,
		"xfs":   false,
		"tmpfs": false,
		"":      false,
	} {
		if got := isNetworkFilesystem(fs); got != want {
			t.Errorf("isNetworkFilesystem(%q) = %v, want %v", fs, got, want)
		}
	}
}
