package prompt

import (
	"fmt"
	"path/filepath"
	"strings"

	"mend/intent"
	"mend/scanner"
)

// Section-header vocabulary of the mandated response template. The parser's
// extraction patterns depend on these exact strings; change them in lockstep.
const (
	SectionAnalysis   = "Analysis"
	SectionChanges    = "Changes Made"
	SectionChangesAlt = "Changes"
	SectionCode       = "Code"
	SectionNextSteps  = "Next Steps"

	// FileLabel precedes the target path of each code block
	FileLabel = "File:"
)

const (
	// maxTargetContentChars bounds how much of the target file is inlined,
	// to keep token cost predictable
	maxTargetContentChars = 3000
	// maxListedFiles bounds the project file listing in the context block
	maxListedFiles = 15
)

// SystemPrompt frames every request sent by the agent
const SystemPrompt = "You are an expert software developer. You modify and create project files " +
	"exactly as instructed, returning complete, working file contents."

// Build combines the command intent, the project inventory and (optionally)
// the current content of the target file into a single prompt. Pure function
// of its inputs.
func Build(it intent.CommandIntent, pctx *scanner.ProjectContext, targetFileContent string) string {
	var b strings.Builder

	b.WriteString("## Task\n\n")
	b.WriteString(it.FullCommand)
	b.WriteString("\n\n")

	writeContextBlock(&b, it, pctx)

	if targetFileContent != "" && it.TargetFile != "" {
		content := targetFileContent
		if len(content) > maxTargetContentChars {
			content = content[:maxTargetContentChars] + "\n// ... (truncated)"
		}
		b.WriteString(fmt.Sprintf("## Current content of %s\n\n", it.TargetFile))
		b.WriteString("```")
		b.WriteString(languageTag(it.TargetFile))
		b.WriteString("\n")
		b.WriteString(content)
		b.WriteString("\n```\n\n")
	}

	b.WriteString("## Requirements\n\n")
	b.WriteString("1. Return the COMPLETE content of every file you create or modify, never a fragment.\n")
	b.WriteString("2. Include all imports the file needs.\n")
	b.WriteString("3. Preserve the existing structure and conventions of the project.\n")
	b.WriteString("4. Precede every code block with a line of the form `" + FileLabel + " <relative/path>`.\n\n")

	b.WriteString("## Response format\n\n")
	b.WriteString("Respond using EXACTLY this structure:\n\n")
	b.WriteString("## " + SectionAnalysis + "\n")
	b.WriteString("Brief analysis of the request and the relevant code.\n\n")
	b.WriteString("## " + SectionChanges + "\n")
	b.WriteString("Bullet list of the changes.\n\n")
	b.WriteString("## " + SectionCode + "\n")
	b.WriteString(FileLabel + " path/to/file.ext\n")
	b.WriteString("```language\n<complete file content>\n```\n\n")
	b.WriteString("## " + SectionNextSteps + "\n")
	b.WriteString("Suggested follow-up steps, if any.\n")

	return b.String()
}

func writeContextBlock(b *strings.Builder, it intent.CommandIntent, pctx *scanner.ProjectContext) {
	if pctx == nil {
		return
	}

	b.WriteString("## Project context\n\n")
	b.WriteString(fmt.Sprintf("Project: %s\n", filepath.Base(pctx.Root)))

	if len(pctx.Technologies) > 0 {
		b.WriteString(fmt.Sprintf("Technologies: %s\n", strings.Join(pctx.Technologies, ", ")))
	}

	b.WriteString(fmt.Sprintf("Files: %d total, %d source\n", pctx.Metadata.FileCount, pctx.Metadata.CodeFileCount))

	if it.TargetFolder != "" {
		b.WriteString(fmt.Sprintf("Target folder: %s\n", it.TargetFolder))
	}
	if it.TargetFile != "" {
		b.WriteString(fmt.Sprintf("Target file: %s\n", it.TargetFile))
	}

	if len(pctx.Files) > 0 {
		b.WriteString("\nProject files:\n")
		listed := pctx.Files
		if len(listed) > maxListedFiles {
			listed = listed[:maxListedFiles]
		}
		for _, f := range listed {
			b.WriteString("- " + f + "\n")
		}
		if len(pctx.Files) > maxListedFiles {
			b.WriteString(fmt.Sprintf("- ... and %d more\n", len(pctx.Files)-maxListedFiles))
		}
	}

	b.WriteString("\n")
}

// languageTag guesses a fence language tag from a file path
func languageTag(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ts", ".tsx":
		return "typescript"
	case ".js", ".jsx", ".mjs", ".cjs":
		return "javascript"
	case ".go":
		return "go"
	case ".py":
		return "python"
	case ".rb":
		return "ruby"
	case ".rs":
		return "rust"
	case ".java":
		return "java"
	case ".cs":
		return "csharp"
	case ".php":
		return "php"
	case ".html":
		return "html"
	case ".css", ".scss":
		return "css"
	case ".json":
		return "json"
	case ".yaml", ".yml":
		return "yaml"
	case ".sql":
		return "sql"
	case ".md":
		return "markdown"
	default:
		return "text"
	}
}
