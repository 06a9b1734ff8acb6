package registry

import (
	"path/filepath"
	"strings"
)

// Category groups items by their first path segment for colour coding.
// It has no behavioural effect.
type Category int

const (
	Other Category = iota
	Root
	Source
	Test
	Docs
	Config
	Assets
	Build
)

var categoryNames = [...]string{
	Other:  "other",
	Root:   "root",
	Source: "source",
	Test:   "test",
	Docs:   "docs",
	Config: "config",
	Assets: "assets",
	Build:  "build",
}

func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return categoryNames[Other]
	}
	return categoryNames[c]
}

var segmentCategories = map[string]Category{
	"src":        Source,
	"lib":        Source,
	"internal":   Source,
	"pkg":        Source,
	"cmd":        Source,
	"app":        Source,
	"test":       Test,
	"tests":      Test,
	"spec":       Test,
	"__tests__":  Test,
	"testdata":   Test,
	"doc":        Docs,
	"docs":       Docs,
	"config":     Config,
	"configs":    Config,
	".github":    Config,
	".vscode":    Config,
	"assets":     Assets,
	"public":     Assets,
	"static":     Assets,
	"images":     Assets,
	"scripts":    Build,
	"build":      Build,
	"dist":       Build,
	"deploy":     Build,
	"migrations": Build,
}

// CategoryOf derives the category from the first segment of path. Files
// directly under the root are Root; unknown directories are Other.
func CategoryOf(path string) Category {
	p := strings.TrimPrefix(filepath.ToSlash(path), "./")
	p = strings.TrimPrefix(p, "/")
	first, _, nested := strings.Cut(p, "/")
	if !nested {
		return Root
	}
	if c, ok := segmentCategories[strings.ToLower(first)]; ok {
		return c
	}
	return Other
}
