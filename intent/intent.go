package intent

import (
	"regexp"
)

// Actions is the fixed set of things the user may be asking for.
// Several can be true at once.
type Actions struct {
	Develop  bool `json:"develop"`
	Debug    bool `json:"debug"`
	Optimize bool `json:"optimize"`
	Refactor bool `json:"refactor"`
	Test     bool `json:"test"`
	Document bool `json:"document"`
	Analyze  bool `json:"analyze"`
}

// CommandIntent is the structured interpretation of a free-form command.
// Immutable once produced.
type CommandIntent struct {
	TargetFolder string  `json:"target_folder,omitempty"`
	TargetFile   string  `json:"target_file,omitempty"`
	Actions      Actions `json:"actions"`
	FullCommand  string  `json:"full_command"`
	// Confidence reflects how many action keyword families matched,
	// capped at 1.0. Advisory only, never a gate.
	Confidence float64 `json:"confidence"`
}

// actionMatcher pairs an action with its keyword-family pattern.
// Each matcher is evaluated independently against the command.
type actionMatcher struct {
	name    string
	pattern *regexp.Regexp
	assign  func(*Actions)
}

var actionMatchers = []actionMatcher{
	{"develop", regexp.MustCompile(`(?i)\b(create|add|implement|build|write|develop|generate|make)\b`),
		func(a *Actions) { a.Develop = true }},
	{"debug", regexp.MustCompile(`(?i)\b(fix|debug|error|bug|issue|broken|crash|fail(s|ing|ure)?)\b`),
		func(a *Actions) { a.Debug = true }},
	{"optimize", regexp.MustCompile(`(?i)\b(optimi[sz]e|performance|faster|speed\s*up|slow|efficient)\b`),
		func(a *Actions) { a.Optimize = true }},
	{"refactor", regexp.MustCompile(`(?i)\b(refactor|restructure|clean\s*up|reorganize|rewrite|simplify)\b`),
		func(a *Actions) { a.Refactor = true }},
	{"test", regexp.MustCompile(`(?i)\b(tests?|testing|coverage|unit\s*tests?|spec)\b`),
		func(a *Actions) { a.Test = true }},
	{"document", regexp.MustCompile(`(?i)\b(document(ation)?|docs|comments?|readme|jsdoc|docstrings?)\b`),
		func(a *Actions) { a.Document = true }},
	{"analyze", regexp.MustCompile(`(?i)\b(analy[sz]e|review|inspect|audit|examine|understand)\b`),
		func(a *Actions) { a.Analyze = true }},
}

// filePatterns recover a target file path; first match wins.
var filePatterns = []*regexp.Regexp{
	// "in src/auth.ts", "file auth.ts", "to lib/utils.js"
	regexp.MustCompile(`(?i)\b(?:in|to|of|from|file)\s+([\w./\\-]+\.[A-Za-z0-9]+)`),
	// any bare path-looking token with an extension
	regexp.MustCompile(`([\w./\\-]+\.[A-Za-z]{1,5})\b`),
}

// folderPatterns recover a target folder; first match wins.
var folderPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:in|into|under|inside)\s+(?:the\s+)?(?:folder|directory|dir)\s+([\w./\\-]+)`),
	regexp.MustCompile(`(?i)\b(?:folder|directory|dir)\s+([\w./\\-]+)`),
	regexp.MustCompile(`(?i)\b(?:in|into|under|inside)\s+([\w.\\-]+/[\w./\\-]*)`),
}

// Analyze parses a raw command string into a CommandIntent. It never fails:
// absence of a signal leaves that field at its neutral value.
func Analyze(command string) CommandIntent {
	result := CommandIntent{FullCommand: command}

	for _, p := range filePatterns {
		if m := p.FindStringSubmatch(command); m != nil {
			result.TargetFile = m[1]
			break
		}
	}

	for _, p := range folderPatterns {
		if m := p.FindStringSubmatch(command); m != nil {
			result.TargetFolder = m[1]
			break
		}
	}

	matched := 0
	for _, matcher := range actionMatchers {
		if matcher.pattern.MatchString(command) {
			matcher.assign(&result.Actions)
			matched++
		}
	}

	result.Confidence = float64(matched) / 3.0
	if result.Confidence > 1.0 {
		result.Confidence = 1.0
	}

	return result
}

// Any reports whether at least one action flag is set
func (a Actions) Any() bool {
	return a.Develop || a.Debug || a.Optimize || a.Refactor || a.Test || a.Document || a.Analyze
}

// Names returns the names of the set action flags in table order
func (a Actions) Names() []string {
	var names []string
	flags := []struct {
		name string
		set  bool
	}{
		{"develop", a.Develop},
		{"debug", a.Debug},
		{"optimize", a.Optimize},
		{"refactor", a.Refactor},
		{"test", a.Test},
		{"document", a.Document},
		{"analyze", a.Analyze},
	}
	for _, f := range flags {
		if f.set {
			names = append(names, f.name)
		}
	}
	return names
}
