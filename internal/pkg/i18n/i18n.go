// Package i18n holds the label map for the mixed-vocabulary tracking
// ledger. Besides the five case statuses the ledger carries document
// pseudo-statuses and milestones, so lookups fall back to the raw value
// instead of failing.
package i18n

import (
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

type Labels map[string]string

var (
	locales = make(map[string]Labels)
	mu      sync.RWMutex
)

// LoadStatusLabels reads <localePath>/<locale>/statuses.yaml for every
// locale directory present.
func LoadStatusLabels(localePath string) error {
	mu.Lock()
	defer mu.Unlock()

	entries, err := os.ReadDir(localePath)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		locale := entry.Name()

		data, err := os.ReadFile(filepath.Join(localePath, locale, "statuses.yaml"))
		if err != nil {
			continue
		}

		var config struct {
			Statuses Labels `yaml:"STATUSES"`
		}
		if err := yaml.Unmarshal(data, &config); err != nil {
			return err
		}

		locales[locale] = config.Statuses
	}

	return nil
}

// StatusLabel returns the localized label for a ledger status value, or
// the raw value when no translation exists.
func StatusLabel(locale, status string) string {
	mu.RLock()
	defer mu.RUnlock()

	if labels, ok := locales[locale]; ok {
		if label, ok := labels[status]; ok {
			return label
		}
	}
	return status
}

// SetStatusLabels replaces a locale's map directly; used by tests and by
// callers that embed their labels.
func SetStatusLabels(locale string, labels Labels) {
	mu.Lock()
	defer mu.Unlock()
	locales[locale] = labels
}
