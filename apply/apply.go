package apply

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"mend/intent"
	"mend/parser"
)

// ErrDeclined is returned when the user does not confirm the changes.
// Nothing is written in that case.
var ErrDeclined = errors.New("changes declined by user")

// ExecutionResult is accumulated over a single pass of accepted code blocks
type ExecutionResult struct {
	Success       bool     `json:"success"`
	FilesCreated  []string `json:"files_created"`
	FilesModified []string `json:"files_modified"`
	Errors        []string `json:"errors"`
}

// Confirmer asks the user a yes/no question. Injected so tests and
// non-interactive callers can script the answer.
type Confirmer interface {
	Confirm(prompt string) bool
}

// Applier writes accepted code blocks to the workspace after confirmation
type Applier struct {
	workspacePath string
	confirmer     Confirmer
}

// NewApplier creates an applier rooted at workspacePath
func NewApplier(workspacePath string, confirmer Confirmer) *Applier {
	return &Applier{
		workspacePath: workspacePath,
		confirmer:     confirmer,
	}
}

// Apply writes each block in extraction order, gated by one confirmation for
// the whole batch. Declining returns ErrDeclined with zero side effects.
// Failures on individual blocks are recorded and do not abort the rest:
// best-effort across blocks, not all-or-nothing. Duplicate paths are written
// in sequence, last write wins.
func (a *Applier) Apply(blocks []parser.CodeBlock, it intent.CommandIntent) (*ExecutionResult, error) {
	if len(blocks) == 0 {
		return &ExecutionResult{Success: true}, nil
	}

	if !a.confirmer.Confirm(confirmPrompt(blocks, it)) {
		return nil, ErrDeclined
	}

	result := &ExecutionResult{}

	for _, block := range blocks {
		path := block.Path
		if path == "" {
			path = it.TargetFile
		}
		if path == "" {
			result.Errors = append(result.Errors, "code block has no target path")
			continue
		}

		fullPath, err := a.securePath(path)
		if err != nil {
			result.Errors = append(result.Errors, err.Error())
			continue
		}

		_, statErr := os.Stat(fullPath)
		existed := statErr == nil

		if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("failed to create directory for %s: %v", path, err))
			continue
		}

		if err := os.WriteFile(fullPath, []byte(block.Code), 0644); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("failed to write %s: %v", path, err))
			continue
		}

		if existed {
			result.FilesModified = append(result.FilesModified, path)
		} else {
			result.FilesCreated = append(result.FilesCreated, path)
		}
	}

	result.Success = len(result.Errors) == 0
	return result, nil
}

// securePath confines a write target to the workspace and returns the full path
func (a *Applier) securePath(relPath string) (string, error) {
	cleanPath := filepath.Clean(filepath.FromSlash(relPath))
	fullPath := filepath.Join(a.workspacePath, cleanPath)

	absWorkspace, err := filepath.Abs(a.workspacePath)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute workspace path: %v", err)
	}

	absPath, err := filepath.Abs(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %v", err)
	}

	if absPath != absWorkspace && !strings.HasPrefix(absPath, absWorkspace+string(filepath.Separator)) {
		return "", fmt.Errorf("path outside workspace: %s", relPath)
	}

	return fullPath, nil
}

func confirmPrompt(blocks []parser.CodeBlock, it intent.CommandIntent) string {
	paths := make([]string, 0, len(blocks))
	for _, block := range blocks {
		path := block.Path
		if path == "" {
			path = it.TargetFile
		}
		if path == "" {
			path = "(no target path)"
		}
		paths = append(paths, path)
	}

	if len(paths) == 1 {
		return fmt.Sprintf("Apply changes to %s?", paths[0])
	}
	return fmt.Sprintf("Apply changes to %d files (%s)?", len(paths), strings.Join(paths, ", "))
}
