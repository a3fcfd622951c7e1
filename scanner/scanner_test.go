package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, root, relPath, content string) {
	t.Helper()
	fullPath := filepath.Join(root, relPath)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		t.Fatalf("Failed to create dir for %s: %v", relPath, err)
	}
	if err := os.WriteFile(fullPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", relPath, err)
	}
}

func TestScanCollectsSourceFiles(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "mend-scan-test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	writeFile(t, tempDir, "index.ts", "export const x = 1\n")
	writeFile(t, tempDir, "src/auth.ts", "export function login() {}\n")
	writeFile(t, tempDir, "notes.bin", "binary-ish")

	ctx, err := Scan(tempDir)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	if len(ctx.Files) != 2 {
		t.Fatalf("Expected 2 collected files, got %d: %v", len(ctx.Files), ctx.Files)
	}
	for _, f := range ctx.Files {
		if !strings.HasSuffix(f, ".ts") {
			t.Errorf("Unexpected collected file: %s", f)
		}
	}

	if ctx.Metadata.FileCount != 3 {
		t.Errorf("Expected FileCount 3, got %d", ctx.Metadata.FileCount)
	}
	if ctx.Metadata.CodeFileCount != 2 {
		t.Errorf("Expected CodeFileCount 2, got %d", ctx.Metadata.CodeFileCount)
	}
	if ctx.Metadata.TotalSize == 0 {
		t.Error("Expected non-zero TotalSize")
	}
}

func TestScanRespectsMaxDepth(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "mend-scan-depth")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	// At depth 4 (a/b/c/file.ts) files are collected; below that they are not
	writeFile(t, tempDir, "a/b/c/ok.ts", "export const ok = true\n")
	writeFile(t, tempDir, "a/b/c/d/e/too-deep.ts", "export const deep = true\n")

	ctx, err := Scan(tempDir)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	for _, f := range ctx.Files {
		if strings.Contains(f, "too-deep") {
			t.Errorf("Collected file beyond max depth: %s", f)
		}
	}
	found := false
	for _, f := range ctx.Files {
		if f == "a/b/c/ok.ts" {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected a/b/c/ok.ts to be collected, got %v", ctx.Files)
	}
}

func TestScanRespectsFileCap(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "mend-scan-cap")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	for i := 0; i < maxFiles+25; i++ {
		writeFile(t, tempDir, fmt.Sprintf("file%03d.js", i), "console.log(1)\n")
	}

	ctx, err := Scan(tempDir)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	if len(ctx.Files) > maxFiles {
		t.Errorf("Expected at most %d files, got %d", maxFiles, len(ctx.Files))
	}
}

func TestScanSkipsIgnoredAndHiddenDirs(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "mend-scan-skip")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	writeFile(t, tempDir, "node_modules/lib/index.js", "module.exports = {}\n")
	writeFile(t, tempDir, ".hidden/secret.js", "module.exports = {}\n")
	writeFile(t, tempDir, "src/app.js", "console.log('app')\n")

	ctx, err := Scan(tempDir)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	if len(ctx.Files) != 1 || ctx.Files[0] != "src/app.js" {
		t.Errorf("Expected only src/app.js, got %v", ctx.Files)
	}
}

func TestDetectTechnologies(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "mend-scan-tech")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	manifest := `{
		"dependencies": {"react": "^18.0.0", "express": "^4.18.0", "left-pad": "^1.0.0"},
		"devDependencies": {"typescript": "^5.0.0", "jest": "^29.0.0"}
	}`
	writeFile(t, tempDir, "package.json", manifest)

	ctx, err := Scan(tempDir)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	want := map[string]bool{"React": true, "Express": true, "TypeScript": true, "Jest": true}
	if len(ctx.Technologies) != len(want) {
		t.Fatalf("Expected %d technologies, got %v", len(want), ctx.Technologies)
	}
	for _, tech := range ctx.Technologies {
		if !want[tech] {
			t.Errorf("Unexpected technology: %s", tech)
		}
	}
}

func TestDetectTechnologiesNoManifest(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "mend-scan-nomanifest")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	ctx, err := Scan(tempDir)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(ctx.Technologies) != 0 {
		t.Errorf("Expected no technologies, got %v", ctx.Technologies)
	}
}

func TestCachedScannerInvalidate(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "mend-scan-cache")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	writeFile(t, tempDir, "one.js", "console.log(1)\n")

	cs := NewCachedScanner(tempDir)
	ctx1, err := cs.Scan()
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(ctx1.Files) != 1 {
		t.Fatalf("Expected 1 file, got %d", len(ctx1.Files))
	}

	// Without invalidation the cached context is returned as-is
	writeFile(t, tempDir, "two.js", "console.log(2)\n")
	ctx2, err := cs.Scan()
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(ctx2.Files) != 1 {
		t.Errorf("Expected stale cache with 1 file, got %d", len(ctx2.Files))
	}

	cs.Invalidate()
	ctx3, err := cs.Scan()
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(ctx3.Files) != 2 {
		t.Errorf("Expected rescan with 2 files, got %d", len(ctx3.Files))
	}
}

func TestStopWatchingDuringEvents(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "mend-scan-watch")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	cs := NewCachedScanner(tempDir)
	if err := cs.StartWatching(); err != nil {
		t.Fatalf("StartWatching failed: %v", err)
	}

	// Keep events flowing while the watcher is torn down
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		for i := 0; i < 200; i++ {
			path := filepath.Join(tempDir, fmt.Sprintf("file%03d.js", i))
			_ = os.WriteFile(path, []byte("console.log(1)\n"), 0644)
		}
	}()

	cs.StopWatching()
	<-writerDone

	// Stopping twice must also be safe
	cs.StopWatching()
}
