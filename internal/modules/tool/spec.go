// README: Declarative field specs and the shared result envelope for search/booking adapters.
package tool

import (
	"fmt"
	"strings"

	"wayfarer/internal/types"
)

// Field describes one named input of an adapter.
type Field struct {
	Name     string
	Label    string
	Required bool
	Default  any
}

// Spec lists an adapter's inputs in canonical order.
// MissingFormat receives the comma-joined labels of missing required fields.
type Spec struct {
	Name          string
	Fields        []Field
	MissingFormat string
}

// Resolve copies the declared fields out of in, applying defaults to blank optional
// fields, and returns the required fields that are blank in declared order.
// Undeclared keys are passed through untouched.
func (s Spec) Resolve(in map[string]any) (types.Values, []Field) {
	out := make(types.Values, len(in)+len(s.Fields))
	for k, v := range in {
		if !types.IsBlank(v) {
			out[k] = v
		}
	}

	var missing []Field
	for _, f := range s.Fields {
		if out.Present(f.Name) {
			continue
		}
		if f.Required {
			missing = append(missing, f)
			continue
		}
		if f.Default != nil {
			out[f.Name] = f.Default
		}
	}
	return out, missing
}

// Missing returns the required fields that are blank in in.
func (s Spec) Missing(in map[string]any) []Field {
	_, missing := s.Resolve(in)
	return missing
}

func (s Spec) MissingMessage(missing []Field) string {
	format := s.MissingFormat
	if format == "" {
		format = "I need the following information: %s"
	}
	if !strings.Contains(format, "%s") {
		return format
	}
	return fmt.Sprintf(format, JoinLabels(missing))
}

func JoinLabels(fields []Field) string {
	labels := make([]string, len(fields))
	for i, f := range fields {
		labels[i] = f.Label
		if labels[i] == "" {
			labels[i] = strings.ReplaceAll(f.Name, "_", " ")
		}
	}
	return strings.Join(labels, ", ")
}

// Result is the envelope every adapter returns. Success=false results are user-facing,
// recoverable outcomes and never carry raw errors.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func OK(msg string) Result { return Result{Success: true, Message: msg} }

func Fail(msg string) Result { return Result{Success: false, Message: msg} }
