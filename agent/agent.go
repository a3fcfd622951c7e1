package agent

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"mend/apply"
	"mend/intent"
	"mend/llm"
	"mend/parser"
	"mend/prompt"
	"mend/scanner"
	"mend/validate"
)

// maxCommandLabelChars bounds the command label stored in usage records
const maxCommandLabelChars = 60

// UI is the presentation surface the agent talks to. The console package
// provides the interactive implementation; tests script it.
type UI interface {
	Info(format string, args ...interface{})
	Success(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
	Print(format string, args ...interface{})
	Confirm(prompt string) bool
	// Spin shows a progress indicator until the returned stop function is called
	Spin(label string) func()
}

// Scanner produces the project inventory for the current command
type Scanner interface {
	Scan() (*scanner.ProjectContext, error)
}

// Agent runs the single-command pipeline: intent analysis, project scan,
// prompt construction, AI call, response parsing, validation, confirmation
// and file application.
type Agent struct {
	workspacePath string
	invoker       *Invoker
	scanner       Scanner
	applier       *apply.Applier
	ui            UI
	maxFileSize   int64
}

// New creates an agent for one workspace
func New(workspacePath string, adapter llm.Adapter, provider string, usage UsageTracker, scan Scanner, ui UI, maxFileSize int64) *Agent {
	return &Agent{
		workspacePath: workspacePath,
		invoker:       NewInvoker(adapter, provider, usage),
		scanner:       scan,
		applier:       apply.NewApplier(workspacePath, ui),
		ui:            ui,
		maxFileSize:   maxFileSize,
	}
}

// Run executes one natural-language command end to end. Provider errors are
// fatal to the command only; everything earlier degrades gracefully and
// everything later is best-effort per block.
func (a *Agent) Run(ctx context.Context, command string) error {
	command = strings.TrimSpace(command)
	if command == "" {
		return nil
	}

	it := intent.Analyze(command)

	pctx, err := a.scanner.Scan()
	if err != nil {
		// A failed scan degrades to an empty inventory
		a.ui.Warn("Project scan failed: %v", err)
		pctx = &scanner.ProjectContext{Root: a.workspacePath}
	}

	targetContent := a.readTargetFile(it, pctx)

	p := prompt.Build(it, pctx, targetContent)

	stop := a.ui.Spin(fmt.Sprintf("Asking %s", a.invoker.adapter.ModelName()))
	response, err := a.invoker.Invoke(ctx, p, prompt.SystemPrompt, commandLabel(command))
	stop()
	if err != nil {
		a.ui.Error("%v", err)
		return err
	}

	a.showSections(response)

	blocks := parser.ExtractCodeBlocks(response)
	if len(blocks) == 0 {
		a.ui.Info("No executable code found in the response.")
		return nil
	}

	a.reviewBlocks(blocks)

	result, err := a.applier.Apply(blocks, it)
	if errors.Is(err, apply.ErrDeclined) {
		a.ui.Info("Aborted. No files were changed.")
		return nil
	}
	if err != nil {
		a.ui.Error("Failed to apply changes: %v", err)
		return err
	}

	a.showSummary(result)
	return nil
}

// readTargetFile loads the target file content if the intent names one. The
// file is looked up at the workspace root first, then by suffix among the
// scanned files. Unreadable or oversized files are simply omitted.
func (a *Agent) readTargetFile(it intent.CommandIntent, pctx *scanner.ProjectContext) string {
	if it.TargetFile == "" {
		return ""
	}

	candidate := filepath.Join(a.workspacePath, filepath.FromSlash(it.TargetFile))
	if _, err := os.Stat(candidate); err != nil {
		candidate = ""
		for _, f := range pctx.Files {
			if f == it.TargetFile || strings.HasSuffix(f, "/"+it.TargetFile) {
				candidate = filepath.Join(a.workspacePath, filepath.FromSlash(f))
				break
			}
		}
	}
	if candidate == "" {
		return ""
	}

	info, err := os.Stat(candidate)
	if err != nil || (a.maxFileSize > 0 && info.Size() > a.maxFileSize) {
		return ""
	}

	data, err := os.ReadFile(candidate)
	if err != nil {
		return ""
	}
	return string(data)
}

// showSections renders the textual sections of the response, skipping the
// code section which is handled separately.
func (a *Agent) showSections(response string) {
	for _, section := range parser.ExtractSections(response) {
		if section.Title == prompt.SectionCode || section.Content == "" {
			continue
		}
		a.ui.Print("\n%s", section.Title)
		a.ui.Print("%s", section.Content)
	}
}

// reviewBlocks shows per-block validation findings and change previews.
// Validation is advisory: findings never prevent the write.
func (a *Agent) reviewBlocks(blocks []parser.CodeBlock) {
	a.ui.Print("")
	for _, block := range blocks {
		if preview := apply.PreviewChange(a.workspacePath, block); preview != "" {
			a.ui.Print("%s", preview)
		}

		result := validate.Validate(block.Code, block.Language)
		for _, e := range result.Errors {
			a.ui.Warn("%s: %s", block.Path, e)
		}
		for _, w := range result.Warnings {
			a.ui.Warn("%s: %s", block.Path, w)
		}
		if !result.IsComplete {
			a.ui.Warn("%s: the code may be incomplete; review it after applying", block.Path)
		}
	}
}

func (a *Agent) showSummary(result *apply.ExecutionResult) {
	for _, f := range result.FilesCreated {
		a.ui.Success("Created %s", f)
	}
	for _, f := range result.FilesModified {
		a.ui.Success("Modified %s", f)
	}
	for _, e := range result.Errors {
		a.ui.Error("%s", e)
	}

	if result.Success {
		a.ui.Success("Done: %d created, %d modified.",
			len(result.FilesCreated), len(result.FilesModified))
	} else {
		a.ui.Warn("Finished with %d error(s): %d created, %d modified.",
			len(result.Errors), len(result.FilesCreated), len(result.FilesModified))
	}
}

func commandLabel(command string) string {
	if len(command) <= maxCommandLabelChars {
		return command
	}
	return command[:maxCommandLabelChars] + "..."
}
