package parser

import (
	"regexp"
	"strings"
)

const (
	// minBlockChars is the size below which a fenced block is treated as
	// illustrative rather than a deliverable
	minBlockChars = 200
	// pathLookback is how far before a block the File:/Path: label may appear
	pathLookback = 300
)

// Section is one titled chunk of the AI response
type Section struct {
	Title   string
	Content string
}

// BlockMetadata carries cheap stats about a code block
type BlockMetadata struct {
	LineCount    int  `json:"line_count"`
	CharCount    int  `json:"char_count"`
	HasImports   bool `json:"has_imports"`
	HasFunctions bool `json:"has_functions"`
}

// CodeBlock is a fenced snippet extracted from the AI answer, candidate for
// being written to disk
type CodeBlock struct {
	Code     string        `json:"code"`
	Language string        `json:"language"`
	Path     string        `json:"path,omitempty"`
	Metadata BlockMetadata `json:"metadata"`
}

var (
	fencedBlockPattern = regexp.MustCompile("(?s)```([a-zA-Z0-9+#-]+)[ \t]*\r?\n(.*?)```")
	pathLabelPattern   = regexp.MustCompile("(?i)\\b(?:File|Path)\\**:[ \t`*]*([^\\s`*]+)")

	// shellCommandPrefixes mark blocks that are command examples, not files
	shellCommandPrefixes = []string{
		"npm ", "npx ", "yarn ", "pnpm ", "pip ", "pip3 ",
		"git ", "go ", "cargo ", "brew ", "apt ", "apt-get ",
		"docker ", "curl ", "wget ", "cd ", "mkdir ", "$ ",
	}

	exampleMarkerPattern = regexp.MustCompile(`(?mi)^\s*(//|#)\s*example\b`)
)

// allowedExtensions is the fixed allow list for extracted target paths
var allowedExtensions = map[string]bool{
	".js": true, ".jsx": true, ".ts": true, ".tsx": true,
	".mjs": true, ".cjs": true, ".go": true, ".py": true,
	".rb": true, ".rs": true, ".java": true, ".c": true,
	".cpp": true, ".h": true, ".cs": true, ".php": true,
	".swift": true, ".kt": true, ".vue": true, ".svelte": true,
	".html": true, ".css": true, ".scss": true, ".json": true,
	".yaml": true, ".yml": true, ".md": true, ".sql": true,
	".env": true, ".txt": true, ".sh": true, ".xml": true,
}

// suspiciousBareWords are first segments that look like the model invented a
// nonsense filename rather than a real project path. A path containing a
// separator is never rejected by this check.
var suspiciousBareWords = map[string]bool{
	"heap": true, "stack": true, "buffer": true, "memory": true,
	"data": true, "temp": true, "tmp": true, "cache": true,
	"input": true, "output": true, "register": true, "segment": true,
}

// ExtractSections splits the response on the "##" section marker. Each
// non-empty chunk's first line is the title, the remainder the content;
// order is preserved.
func ExtractSections(response string) []Section {
	var sections []Section

	for _, chunk := range strings.Split(response, "##") {
		chunk = strings.TrimSpace(chunk)
		if chunk == "" {
			continue
		}

		title := chunk
		content := ""
		if idx := strings.IndexByte(chunk, '\n'); idx >= 0 {
			title = strings.TrimSpace(chunk[:idx])
			content = strings.TrimSpace(chunk[idx+1:])
		}

		sections = append(sections, Section{Title: title, Content: content})
	}

	return sections
}

// ExtractCodeBlocks scans the response for fenced, language-tagged code
// blocks that carry a resolvable target path. Blocks that look illustrative
// (too short, shell-command examples) or that lack a File:/Path: label with
// a recognized extension are dropped: precision over recall.
func ExtractCodeBlocks(response string) []CodeBlock {
	var blocks []CodeBlock

	matches := fencedBlockPattern.FindAllStringSubmatchIndex(response, -1)
	for _, m := range matches {
		language := response[m[2]:m[3]]
		code := strings.TrimRight(response[m[4]:m[5]], "\n")

		if len(code) < minBlockChars {
			continue
		}
		if isShellExample(code) {
			continue
		}

		path := findPrecedingPath(response, m[0])
		if path == "" {
			continue
		}

		blocks = append(blocks, CodeBlock{
			Code:     code,
			Language: strings.ToLower(language),
			Path:     path,
			Metadata: blockMetadata(code),
		})
	}

	return blocks
}

// findPrecedingPath looks for a File:/Path: label within the lookback window
// immediately before the block and returns the normalized, validated path.
// The last label in the window wins.
func findPrecedingPath(response string, blockStart int) string {
	windowStart := blockStart - pathLookback
	if windowStart < 0 {
		windowStart = 0
	}
	window := response[windowStart:blockStart]

	labelMatches := pathLabelPattern.FindAllStringSubmatch(window, -1)
	if len(labelMatches) == 0 {
		return ""
	}

	path := normalizePath(labelMatches[len(labelMatches)-1][1])
	if path == "" || !hasAllowedExtension(path) {
		return ""
	}
	if isSuspiciousPath(path) {
		return ""
	}

	return path
}

// normalizePath cleans up a path the model wrote: backslashes become forward
// slashes, stray backticks and markdown bold markers are stripped.
func normalizePath(raw string) string {
	path := strings.TrimSpace(raw)
	path = strings.Trim(path, "`*\"'")
	path = strings.ReplaceAll(path, "\\", "/")
	path = strings.TrimPrefix(path, "./")
	return path
}

func hasAllowedExtension(path string) bool {
	idx := strings.LastIndexByte(path, '.')
	if idx < 0 {
		return false
	}
	return allowedExtensions[strings.ToLower(path[idx:])]
}

// isSuspiciousPath rejects separator-less names whose stem matches a list of
// words that look like memory regions rather than real files. Best-effort
// guard against invented filenames, not a security boundary.
func isSuspiciousPath(path string) bool {
	if strings.Contains(path, "/") {
		return false
	}
	stem := path
	if idx := strings.IndexByte(stem, '.'); idx >= 0 {
		stem = stem[:idx]
	}
	return suspiciousBareWords[strings.ToLower(stem)]
}

// isShellExample detects blocks that are command walkthroughs rather than
// file content.
func isShellExample(code string) bool {
	trimmed := strings.TrimSpace(code)
	for _, prefix := range shellCommandPrefixes {
		if strings.HasPrefix(trimmed, prefix) {
			return true
		}
	}
	return exampleMarkerPattern.MatchString(code)
}

func blockMetadata(code string) BlockMetadata {
	return BlockMetadata{
		LineCount: strings.Count(code, "\n") + 1,
		CharCount: len(code),
		HasImports: strings.Contains(code, "import ") ||
			strings.Contains(code, "require(") ||
			strings.Contains(code, "#include"),
		HasFunctions: strings.Contains(code, "function ") ||
			strings.Contains(code, "func ") ||
			strings.Contains(code, "def ") ||
			strings.Contains(code, "class ") ||
			strings.Contains(code, "=>"),
	}
}
