package hooks

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/marcelsud/approval-relay/document"
)

/* Loader holds the hook registration in memory for fast lookup on the
 * save path. The registration is read once at startup; there is no reload
 */
type Loader struct {
	events map[document.Kind]map[string]bool
}

type hooksFile struct {
	Hooks []Rule `yaml:"hooks"`
}

// NewLoader creates a loader from explicit rules
func NewLoader(rules []Rule) (*Loader, error) {
	if len(rules) == 0 {
		return nil, fmt.Errorf("no hook rules provided")
	}

	events := make(map[document.Kind]map[string]bool)
	for _, rule := range rules {
		if err := rule.Validate(); err != nil {
			return nil, fmt.Errorf("validating hook rule: %w", err)
		}
		kind := document.NewKind(rule.Doctype)
		if events[kind] == nil {
			events[kind] = make(map[string]bool)
		}
		for _, event := range rule.Events {
			events[kind][event] = true
		}
	}

	return &Loader{events: events}, nil
}

// LoadFile reads the hook registration from a YAML file
func LoadFile(path string) (*Loader, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading hooks file: %w", err)
	}

	var file hooksFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing hooks file: %w", err)
	}

	return NewLoader(file.Hooks)
}

// Default returns the built-in registration: all three supported doctypes
// on the pre-save validation event
func Default() *Loader {
	loader, err := NewLoader([]Rule{
		{Doctype: document.AttendanceRequest.String(), Events: []string{EventValidate}},
		{Doctype: document.LeaveApplication.String(), Events: []string{EventValidate}},
		{Doctype: document.ExpenseClaim.String(), Events: []string{EventValidate}},
	})
	if err != nil {
		// The built-in rules are static and always valid
		panic(err)
	}
	return loader
}

// Match reports whether the kind/event pair is registered
func (l *Loader) Match(kind document.Kind, event string) bool {
	return l.events[kind][event]
}
