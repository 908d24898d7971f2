package form

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

// Sanitized returns a deep copy of the form with every author-supplied string
// stripped of markup. Builders store titles, labels, and helper text verbatim;
// the public collection surface must not echo raw markup back to respondents.
func (f Form) Sanitized() Form {
	out := f.Clone()
	out.Title = sanitizeText(out.Title)
	out.Description = sanitizeText(out.Description)
	for i := range out.Steps {
		step := &out.Steps[i]
		step.Title = sanitizeText(step.Title)
		for j := range step.Fields {
			field := &step.Fields[j]
			field.Label = sanitizeText(field.Label)
			field.Placeholder = sanitizeText(field.Placeholder)
			field.HelperText = sanitizeText(field.HelperText)
			for k := range field.Options {
				field.Options[k].Label = sanitizeText(field.Options[k].Label)
			}
		}
	}
	return out
}

func sanitizeText(raw string) string {
	if raw == "" {
		return ""
	}
	return strings.TrimSpace(textSanitizer().Sanitize(raw))
}

func textSanitizer() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return textPolicy
}
