package scanner

import (
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const (
	// maxDepth bounds how deep the walk descends below the root
	maxDepth = 4
	// maxFiles bounds how many file paths are collected in total
	maxFiles = 50
)

// Metadata carries aggregate counts gathered during the scan
type Metadata struct {
	FileCount     int   `json:"file_count"`
	CodeFileCount int   `json:"code_file_count"`
	TotalSize     int64 `json:"total_size"`
}

// ProjectContext is a lightweight inventory of the project, built fresh on
// every invocation and discarded when the command completes.
type ProjectContext struct {
	Root         string   `json:"root"`
	Files        []string `json:"files"` // relative paths in scan order, capped at maxFiles
	Technologies []string `json:"technologies"`
	Metadata     Metadata `json:"metadata"`
}

// skipDirs are never descended into
var skipDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"vendor":       true,
	"dist":         true,
	"build":        true,
	"out":          true,
	"target":       true,
	"coverage":     true,
	"__pycache__":  true,
	".vscode":      true,
	".idea":        true,
}

// sourceExtensions is the allow list of file extensions worth collecting
var sourceExtensions = map[string]bool{
	".js":     true,
	".jsx":    true,
	".ts":     true,
	".tsx":    true,
	".mjs":    true,
	".cjs":    true,
	".go":     true,
	".py":     true,
	".rb":     true,
	".rs":     true,
	".java":   true,
	".c":      true,
	".cpp":    true,
	".h":      true,
	".cs":     true,
	".php":    true,
	".swift":  true,
	".kt":     true,
	".vue":    true,
	".svelte": true,
	".html":   true,
	".css":    true,
	".scss":   true,
	".json":   true,
	".yaml":   true,
	".yml":    true,
	".md":     true,
	".sql":    true,
}

// technologyTable maps manifest dependency names to display labels.
// Unmapped dependencies are ignored.
var technologyTable = map[string]string{
	"react":             "React",
	"react-dom":         "React",
	"next":              "Next.js",
	"vue":               "Vue",
	"nuxt":              "Nuxt",
	"svelte":            "Svelte",
	"@angular/core":     "Angular",
	"express":           "Express",
	"fastify":           "Fastify",
	"koa":               "Koa",
	"nest":              "NestJS",
	"@nestjs/core":      "NestJS",
	"typescript":        "TypeScript",
	"vite":              "Vite",
	"webpack":           "Webpack",
	"jest":              "Jest",
	"vitest":            "Vitest",
	"mocha":             "Mocha",
	"tailwindcss":       "Tailwind CSS",
	"prisma":            "Prisma",
	"@prisma/client":    "Prisma",
	"mongoose":          "MongoDB",
	"mongodb":           "MongoDB",
	"pg":                "PostgreSQL",
	"mysql":             "MySQL",
	"mysql2":            "MySQL",
	"redis":             "Redis",
	"ioredis":           "Redis",
	"graphql":           "GraphQL",
	"axios":             "Axios",
	"eslint":            "ESLint",
	"electron":          "Electron",
	"react-native":      "React Native",
	"@sveltejs/kit":     "SvelteKit",
	"styled-components": "Styled Components",
}

// packageManifest is the subset of package.json the scanner reads
type packageManifest struct {
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

// Scan walks rootDir and produces a ProjectContext. The walk is read-only
// and swallows per-entry IO errors: unreadable files and directories are
// skipped, never fatal.
func Scan(rootDir string) (*ProjectContext, error) {
	ctx := &ProjectContext{
		Root:         rootDir,
		Files:        []string{},
		Technologies: detectTechnologies(rootDir),
	}

	err := filepath.WalkDir(rootDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Skip unreadable entries
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		relPath, relErr := filepath.Rel(rootDir, path)
		if relErr != nil || relPath == "." {
			return nil
		}
		relPath = filepath.ToSlash(relPath)
		depth := strings.Count(relPath, "/") + 1

		if d.IsDir() {
			name := d.Name()
			if skipDirs[name] || strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			if depth > maxDepth {
				return filepath.SkipDir
			}
			return nil
		}

		if depth > maxDepth {
			return nil
		}

		info, infoErr := d.Info()
		if infoErr != nil {
			return nil
		}

		ctx.Metadata.FileCount++
		ctx.Metadata.TotalSize += info.Size()

		ext := strings.ToLower(filepath.Ext(relPath))
		if !sourceExtensions[ext] {
			return nil
		}
		ctx.Metadata.CodeFileCount++

		ctx.Files = append(ctx.Files, relPath)
		if len(ctx.Files) >= maxFiles {
			return filepath.SkipAll
		}
		return nil
	})

	if err != nil {
		return ctx, err
	}
	return ctx, nil
}

// detectTechnologies reads the root manifest (package.json) if present and
// maps known dependency names to technology labels.
func detectTechnologies(rootDir string) []string {
	data, err := os.ReadFile(filepath.Join(rootDir, "package.json"))
	if err != nil {
		return []string{}
	}

	var manifest packageManifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return []string{}
	}

	seen := map[string]bool{}
	var technologies []string

	collect := func(deps map[string]string) {
		for name := range deps {
			label, known := technologyTable[name]
			if !known || seen[label] {
				continue
			}
			seen[label] = true
			technologies = append(technologies, label)
		}
	}

	collect(manifest.Dependencies)
	collect(manifest.DevDependencies)

	sort.Strings(technologies)
	return technologies
}
