package license

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDigest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "artifact.bin")
	if err := os.WriteFile(path, []byte("hello"), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	got, err := Digest(path)
	if err != nil {
		t.Fatalf("Digest returned error: %v", err)
	}

	// sha256("hello")
	want := "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"
	if got != want {
		t.Errorf("Expected digest %s, got %s", want, got)
	}
}

func TestDigest_MissingFile(t *testing.T) {
	_, err := Digest(filepath.Join(t.TempDir(), "does-not-exist"))
	if err == nil {
		t.Fatal("Expected error for missing file, got nil")
	}
}

func TestMachineID_Stable(t *testing.T) {
	first, err := MachineID()
	if err != nil {
		t.Fatalf("MachineID returned error: %v", err)
	}
	if len(first) != 64 {
		t.Errorf("Expected a 64-char hex token, got %q", first)
	}

	second, err := MachineID()
	if err != nil {
		t.Fatalf("MachineID returned error: %v", err)
	}
	if first != second {
		t.Errorf("Expected stable machine ID, got %q then %q", first, second)
	}
}
