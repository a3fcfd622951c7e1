package apply

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"mend/parser"
)

// maxPreviewChars bounds the rendered diff so large files don't flood the terminal
const maxPreviewChars = 2000

// PreviewChange renders a compact preview of what applying the block would do:
// a colored character diff against the existing file, or a creation notice
// for new files. Purely informational, shown before the confirmation prompt.
func PreviewChange(workspacePath string, block parser.CodeBlock) string {
	if block.Path == "" {
		return ""
	}

	fullPath := filepath.Join(workspacePath, filepath.FromSlash(block.Path))
	original, err := os.ReadFile(fullPath)
	if err != nil {
		return fmt.Sprintf("%s: new file (%d lines)", block.Path, block.Metadata.LineCount)
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(string(original), block.Code, false)
	dmp.DiffCleanupSemantic(diffs)

	preview := dmp.DiffPrettyText(diffs)
	if len(preview) > maxPreviewChars {
		preview = preview[:maxPreviewChars] + "\n... (preview truncated)"
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s: modified\n", block.Path))
	b.WriteString(preview)
	return b.String()
}
