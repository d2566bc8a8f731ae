package hooks

import (
	"fmt"

	"github.com/marcelsud/approval-relay/document"
)

// EventValidate is the pre-save validation lifecycle event the host fires
// before persisting a document
const EventValidate = "validate"

/* Rule registers one document kind for one or more lifecycle events
 * Only events registered here reach the change detector
 */
type Rule struct {
	Doctype string   `yaml:"doctype"`
	Events  []string `yaml:"events"`
}

// Validate checks if the rule references a supported doctype and events
func (r Rule) Validate() error {
	if err := document.NewKind(r.Doctype).Validate(); err != nil {
		return fmt.Errorf("unsupported doctype %q: %w", r.Doctype, err)
	}
	if len(r.Events) == 0 {
		return fmt.Errorf("no events registered for doctype %q", r.Doctype)
	}
	for _, event := range r.Events {
		if event == "" {
			return fmt.Errorf("empty event name for doctype %q", r.Doctype)
		}
	}
	return nil
}
