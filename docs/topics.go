// Package docs holds the help topics of the hrc tool.
package docs

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
)

//go:embed *.md
var files embed.FS

// index is the topic listing all the others.
const index = "readme"

// Topic returns the markdown content of a help topic. "*" returns every topic.
func Topic(name string) (string, error) {
	if name == "*" {
		names, err := Topics()
		if err != nil {
			return "", err
		}
		var b strings.Builder
		for _, n := range names {
			content, err := Topic(n)
			if err != nil {
				return "", err
			}
			b.WriteString(content)
			b.WriteString("\n")
		}
		return b.String(), nil
	}
	content, err := files.ReadFile(name + ".md")
	if err != nil {
		return "", fmt.Errorf("topic %q not found: %w", name, err)
	}
	return string(content), nil
}

// Topics returns the sorted names of the topics, the index excluded.
func Topics() ([]string, error) {
	entries, err := fs.ReadDir(files, ".")
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		name := strings.TrimSuffix(e.Name(), ".md")
		if e.IsDir() || name == index {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Index returns the topic listing the others.
func Index() string {
	content, _ := files.ReadFile(index + ".md")
	return string(content)
}
