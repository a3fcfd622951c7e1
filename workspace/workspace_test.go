package workspace

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFindGitRoot(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "mend-workspace-test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	// Resolve symlinks so comparisons are stable on macOS (/var -> /private/var)
	tempDir, err = filepath.EvalSymlinks(tempDir)
	if err != nil {
		t.Fatalf("Failed to resolve temp dir: %v", err)
	}

	// Create a fake repo: tempDir/.git and a nested directory
	if err := os.MkdirAll(filepath.Join(tempDir, ".git"), 0755); err != nil {
		t.Fatalf("Failed to create .git dir: %v", err)
	}
	nested := filepath.Join(tempDir, "src", "deep")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatalf("Failed to create nested dir: %v", err)
	}

	root := findGitRoot(nested)
	if root != tempDir {
		t.Errorf("Expected git root %s, got %s", tempDir, root)
	}
}

func TestFindGitRootNoRepo(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "mend-workspace-norepo")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	if root := findGitRoot(tempDir); root != "" {
		t.Errorf("Expected empty git root, got %s", root)
	}
}

func TestEnsureMendDir(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "mend-workspace-dir")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	if err := EnsureMendDir(tempDir); err != nil {
		t.Fatalf("EnsureMendDir failed: %v", err)
	}

	info, err := os.Stat(filepath.Join(tempDir, ".mend"))
	if err != nil {
		t.Fatalf("Expected .mend directory to exist: %v", err)
	}
	if !info.IsDir() {
		t.Error("Expected .mend to be a directory")
	}

	// Second call is a no-op
	if err := EnsureMendDir(tempDir); err != nil {
		t.Fatalf("EnsureMendDir second call failed: %v", err)
	}
}
