package validate

import (
	"fmt"
	"strings"
)

// ValidationResult is the advisory outcome of the completeness heuristics.
// It never blocks a write; the presentation layer shows it as warnings.
type ValidationResult struct {
	IsValid     bool     `json:"is_valid"`
	IsComplete  bool     `json:"is_complete"`
	Warnings    []string `json:"warnings"`
	Errors      []string `json:"errors"`
	Suggestions []string `json:"suggestions"`
}

// curlyBraceLanguages are the languages the heuristics understand
var curlyBraceLanguages = map[string]bool{
	"javascript": true, "js": true,
	"typescript": true, "ts": true,
	"jsx": true, "tsx": true,
	"java": true, "go": true, "golang": true,
	"c": true, "cpp": true, "c++": true,
	"csharp": true, "cs": true,
	"rust": true, "kotlin": true, "swift": true,
	"scala": true, "php": true, "dart": true,
}

// definitionTokens mark that the code declares something
var definitionTokens = []string{
	"function ", "func ", "class ", "=>", "def ", "interface ", "struct ",
}

const (
	// minSubstantialLength is the size above which code with no definitions
	// looks suspicious
	minSubstantialLength = 300
	// minModuleLength is the size below which code without import/export
	// tokens looks like a fragment
	minModuleLength = 250
	// trailingCommentWindow is how many final lines are checked for an
	// unterminated block comment
	trailingCommentWindow = 5
)

// Validate applies syntactic completeness heuristics to a code block.
// Pure function: no side effects, advisory only. Languages outside the
// curly-brace family are not checked and validate clean.
func Validate(code, language string) ValidationResult {
	result := ValidationResult{IsValid: true, IsComplete: true}

	if !curlyBraceLanguages[strings.ToLower(language)] {
		return result
	}

	openBraces := strings.Count(code, "{")
	closeBraces := strings.Count(code, "}")
	if openBraces != closeBraces {
		result.IsValid = false
		result.IsComplete = false
		result.Errors = append(result.Errors,
			fmt.Sprintf("unbalanced braces: %d open, %d close", openBraces, closeBraces))
	}

	openParens := strings.Count(code, "(")
	closeParens := strings.Count(code, ")")
	if openParens != closeParens {
		result.IsValid = false
		result.IsComplete = false
		result.Errors = append(result.Errors,
			fmt.Sprintf("unbalanced parentheses: %d open, %d close", openParens, closeParens))
	}

	if len(code) > minSubstantialLength && !hasDefinition(code) {
		result.Warnings = append(result.Warnings,
			"no function or class definitions found")
	}

	if len(code) < minModuleLength &&
		!strings.Contains(code, "import") && !strings.Contains(code, "export") {
		result.Warnings = append(result.Warnings,
			"code is short and has no import/export statements; it may be a fragment")
		result.Suggestions = append(result.Suggestions,
			"ask for the complete file content if this looks truncated")
	}

	if hasUnterminatedTrailingComment(code) {
		result.IsValid = false
		result.IsComplete = false
		result.Errors = append(result.Errors,
			"unterminated block comment at the end of the code")
	}

	return result
}

func hasDefinition(code string) bool {
	for _, token := range definitionTokens {
		if strings.Contains(code, token) {
			return true
		}
	}
	return false
}

// hasUnterminatedTrailingComment reports whether a block comment is opened in
// the final lines without being closed, a common truncation symptom.
func hasUnterminatedTrailingComment(code string) bool {
	lines := strings.Split(code, "\n")
	start := len(lines) - trailingCommentWindow
	if start < 0 {
		start = 0
	}
	tail := strings.Join(lines[start:], "\n")

	lastOpen := strings.LastIndex(tail, "/*")
	if lastOpen < 0 {
		return false
	}
	lastClose := strings.LastIndex(tail, "*/")
	return lastClose < lastOpen
}
