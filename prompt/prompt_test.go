package prompt

import (
	"fmt"
	"strings"
	"testing"

	"mend/intent"
	"mend/scanner"
)

func sampleContext(files ...string) *scanner.ProjectContext {
	return &scanner.ProjectContext{
		Root:         "/tmp/webshop",
		Files:        files,
		Technologies: []string{"React", "TypeScript"},
		Metadata: scanner.Metadata{
			FileCount:     len(files) + 2,
			CodeFileCount: len(files),
		},
	}
}

func TestBuildContainsVerbatimCommand(t *testing.T) {
	it := intent.Analyze("fix the bug in auth.ts")
	p := Build(it, sampleContext("auth.ts"), "")

	if !strings.Contains(p, "fix the bug in auth.ts") {
		t.Error("prompt missing the verbatim command")
	}
	if !strings.Contains(p, "## Task") {
		t.Error("prompt missing the task section")
	}
}

func TestBuildProjectContext(t *testing.T) {
	it := intent.Analyze("add a login form in the folder src/components")
	p := Build(it, sampleContext("src/app.tsx", "src/components/header.tsx"), "")

	if !strings.Contains(p, "Project: webshop") {
		t.Error("prompt missing the project name")
	}
	if !strings.Contains(p, "Technologies: React, TypeScript") {
		t.Error("prompt missing the technology list")
	}
	if !strings.Contains(p, "Target folder: src/components") {
		t.Error("prompt missing the target folder")
	}
	if !strings.Contains(p, "- src/app.tsx") {
		t.Error("prompt missing the file listing")
	}
}

func TestBuildResponseTemplate(t *testing.T) {
	it := intent.Analyze("analyze the project")
	p := Build(it, sampleContext(), "")

	for _, heading := range []string{
		"## " + SectionAnalysis,
		"## " + SectionChanges,
		"## " + SectionCode,
		"## " + SectionNextSteps,
	} {
		if !strings.Contains(p, heading) {
			t.Errorf("prompt missing template heading %q", heading)
		}
	}
	if !strings.Contains(p, FileLabel+" path/to/file.ext") {
		t.Error("prompt missing the file label example")
	}
}

func TestBuildInlinesTargetFileContent(t *testing.T) {
	it := intent.Analyze("fix the bug in auth.ts")
	content := "export function authenticate() {}\n"
	p := Build(it, sampleContext("auth.ts"), content)

	if !strings.Contains(p, "## Current content of auth.ts") {
		t.Error("prompt missing the current-content section")
	}
	if !strings.Contains(p, "```typescript\n"+content) {
		t.Error("prompt missing the fenced file content")
	}
}

func TestBuildTruncatesLargeTargetFile(t *testing.T) {
	it := intent.Analyze("fix the bug in auth.ts")
	content := strings.Repeat("x", maxTargetContentChars+500)
	p := Build(it, sampleContext("auth.ts"), content)

	if strings.Contains(p, content) {
		t.Error("oversized file content was inlined untruncated")
	}
	if !strings.Contains(p, "(truncated)") {
		t.Error("prompt missing the truncation marker")
	}
}

func TestBuildOmitsContentWithoutTargetFile(t *testing.T) {
	it := intent.Analyze("analyze the project")
	p := Build(it, sampleContext(), "leftover content")

	if strings.Contains(p, "## Current content") {
		t.Error("content section present without a target file")
	}
}

func TestBuildCapsFileListing(t *testing.T) {
	var files []string
	for i := 0; i < maxListedFiles+10; i++ {
		files = append(files, fmt.Sprintf("src/mod%02d.ts", i))
	}
	it := intent.Analyze("analyze the project")
	p := Build(it, sampleContext(files...), "")

	if !strings.Contains(p, fmt.Sprintf("- src/mod%02d.ts", maxListedFiles-1)) {
		t.Error("listing missing the last allowed file")
	}
	if strings.Contains(p, fmt.Sprintf("- src/mod%02d.ts", maxListedFiles)) {
		t.Error("listing exceeds the cap")
	}
	if !strings.Contains(p, "... and 10 more") {
		t.Error("listing missing the overflow marker")
	}
}

func TestBuildNilProjectContext(t *testing.T) {
	it := intent.Analyze("analyze the project")
	p := Build(it, nil, "")

	if strings.Contains(p, "## Project context") {
		t.Error("context block present for nil project context")
	}
	if !strings.Contains(p, "## Task") {
		t.Error("prompt missing the task section")
	}
}

func TestLanguageTag(t *testing.T) {
	cases := map[string]string{
		"src/auth.ts": "typescript",
		"main.go":     "go",
		"setup.py":    "python",
		"notes.weird": "text",
		"styles.SCSS": "css",
		"schema.sql":  "sql",
		"index.html":  "html",
		"config.yaml": "yaml",
		"run.rb":      "ruby",
		"lib/core.rs": "rust",
		"App.java":    "java",
		"Program.cs":  "csharp",
		"index.php":   "php",
		"data.json":   "json",
		"README.md":   "markdown",
		"script.jsx":  "javascript",
	}
	for path, want := range cases {
		if got := languageTag(path); got != want {
			t.Errorf("languageTag(%q) = %q, want %q", path, got, want)
		}
	}
}
