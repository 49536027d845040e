// Package prompts holds the LLM prompt templates shipped with the binary.
// Each JSON file maps prompt keys to template text; templates use {{.Key}}
// placeholders filled in by Format. Keeping prompts out of Go source lets
// them be reviewed and tuned without touching the callers.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
)

//go:embed *.json
var promptFiles embed.FS

var (
	fileCache   = make(map[string]map[string]string)
	fileCacheMu sync.RWMutex
)

// Get returns the template stored under key in the named file. The filename
// is bare, without a path ("interview.json").
func Get(filename, key string) (string, error) {
	templates, err := load(filename)
	if err != nil {
		return "", err
	}

	tmpl, ok := templates[key]
	if !ok {
		return "", fmt.Errorf("prompt key %q not found in %s", key, filename)
	}
	return tmpl, nil
}

// MustGet is Get for templates the application cannot run without. A missing
// embedded template is a build defect, so it panics.
func MustGet(filename, key string) string {
	tmpl, err := Get(filename, key)
	if err != nil {
		panic(fmt.Sprintf("failed to load prompt: %v", err))
	}
	return tmpl
}

// Format substitutes {{.Key}} placeholders with values from data.
// Placeholders with no matching key are left in place so a half-filled
// template is visible in the generated prompt rather than silently blank.
func Format(template string, data map[string]string) string {
	result := template
	for key, value := range data {
		result = strings.ReplaceAll(result, "{{."+key+"}}", value)
	}
	return result
}

// List returns the prompt keys available in a file, sorted.
func List(filename string) ([]string, error) {
	templates, err := load(filename)
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(templates))
	for key := range templates {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}

// ClearCache drops all parsed files. Only tests need this.
func ClearCache() {
	fileCacheMu.Lock()
	fileCache = make(map[string]map[string]string)
	fileCacheMu.Unlock()
}

func load(filename string) (map[string]string, error) {
	fileCacheMu.RLock()
	templates, ok := fileCache[filename]
	fileCacheMu.RUnlock()
	if ok {
		return templates, nil
	}

	data, err := promptFiles.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt file %s: %w", filename, err)
	}
	if err := json.Unmarshal(data, &templates); err != nil {
		return nil, fmt.Errorf("failed to parse prompt file %s: %w", filename, err)
	}

	fileCacheMu.Lock()
	fileCache[filename] = templates
	fileCacheMu.Unlock()
	return templates, nil
}
