// Package prompts provides prompt-template substitution and the embedded
// default template bodies used to seed the record store.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

//go:embed *.json
var promptFiles embed.FS

// Prompt template identifiers. The pipeline looks templates up in the
// record store by these IDs; the embedded bodies are seeds only.
const (
	LayoutTemplateID     = "LAYOUT_JSON_V1"
	BackgroundTemplateID = "CAROUSEL_BG_V1"
)

var (
	cache   map[string]string
	cacheMu sync.RWMutex
)

// Default returns the embedded default template body for an ID.
// Returns an error if the ID has no embedded default.
func Default(id string) (string, error) {
	templates, err := loadDefaults()
	if err != nil {
		return "", err
	}

	body, exists := templates[id]
	if !exists {
		return "", fmt.Errorf("no embedded default for prompt template %q", id)
	}
	return body, nil
}

// DefaultIDs lists the template IDs that have embedded defaults.
func DefaultIDs() ([]string, error) {
	templates, err := loadDefaults()
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(templates))
	for id := range templates {
		ids = append(ids, id)
	}
	return ids, nil
}

// Format replaces placeholders in the form {{ name }} with values from
// vars. Placeholders with no matching variable are left untouched so a
// half-substituted prompt is visible in the audit log rather than silently
// blanked.
func Format(template string, vars map[string]string) string {
	result := template
	for name, value := range vars {
		result = strings.ReplaceAll(result, "{{ "+name+" }}", value)
	}
	return result
}

func loadDefaults() (map[string]string, error) {
	cacheMu.RLock()
	if cache != nil {
		defer cacheMu.RUnlock()
		return cache, nil
	}
	cacheMu.RUnlock()

	data, err := promptFiles.ReadFile("templates.json")
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded templates: %w", err)
	}

	var templates map[string]string
	if err := json.Unmarshal(data, &templates); err != nil {
		return nil, fmt.Errorf("failed to parse embedded templates: %w", err)
	}

	cacheMu.Lock()
	cache = templates
	cacheMu.Unlock()

	return templates, nil
}
