package rsync

import (
	"os"
	"path/filepath"
	"testing"
)

// TestApplyReconstructsTarget covers the common path: Apply writes the bytes
// that delta reconstructs from base, and nothing else, to targetPath.
func TestApplyReconstructsTarget(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "plugin.js")

	base := patternBytes(BlockSize*2, 1)
	newData := append(append([]byte{}, base[:BlockSize]...), []byte("freshly written tail content")...)

	delta := GenerateDelta(base, newData)

	if err := Apply(base, delta, target); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	got, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("unable to read target after Apply: %v", err)
	}
	if len(got) != len(newData) {
		t.Fatalf("target length %d, want %d", len(got), len(newData))
	}
	for i := range got {
		if got[i] != newData[i] {
			t.Fatalf("byte mismatch at offset %d", i)
		}
	}
}

// TestApplyOverwritesExistingTarget verifies that Apply replaces a
// pre-existing file at targetPath rather than appending or failing.
func TestApplyOverwritesExistingTarget(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "plugin.js")

	if err := os.WriteFile(target, []byte("stale content that must not survive"), 0o644); err != nil {
		t.Fatalf("unable to seed existing target: %v", err)
	}

	base := []byte("irrelevant base")
	newData := []byte("the only content the target should hold afterward")
	delta := GenerateDelta(base, newData)

	if err := Apply(base, delta, target); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	got, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("unable to read target: %v", err)
	}
	if string(got) != string(newData) {
		t.Fatalf("got %q, want %q", got, newData)
	}
}

// TestApplyLeavesNothingBehindOnFailure covers P8 (atomicity): if Apply
// cannot complete (here, because the target's directory does not exist, so
// the staging file can never be created), no output is visible at the
// target path and no staging file is left in the surrounding directory.
func TestApplyLeavesNothingBehindOnFailure(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "does-not-exist", "plugin.js")

	base := patternBytes(BlockSize*2, 1)
	newData := patternBytes(BlockSize*2, 99)
	delta := GenerateDelta(base, newData)

	err := Apply(base, delta, target)
	if err == nil {
		t.Fatal("expected Apply to fail when the target directory does not exist")
	}

	if _, statErr := os.Stat(target); !os.IsNotExist(statErr) {
		t.Errorf("expected target to remain absent after a failed Apply, stat error: %v", statErr)
	}

	entries, readErr := os.ReadDir(dir)
	if readErr != nil {
		t.Fatalf("unable to read temp dir: %v", readErr)
	}
	if len(entries) != 0 {
		t.Errorf("expected no staging files left behind after failed Apply, found %d entries", len(entries))
	}
}

// TestApplyNoStagingFileLeftBehindOnSuccess verifies that the staging file
// used internally by Apply is renamed away, not left alongside the target.
func TestApplyNoStagingFileLeftBehindOnSuccess(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "plugin.js")

	base := patternBytes(BlockSize, 4)
	newData := patternBytes(BlockSize, 4)
	delta := GenerateDelta(base, newData)

	if err := Apply(base, delta, target); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("unable to read temp dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected exactly one file in target directory after Apply, found %d", len(entries))
	}
	if entries[0].Name() != filepath.Base(target) {
		t.Errorf("expected only %q to remain, found %q", filepath.Base(target), entries[0].Name())
	}
}
