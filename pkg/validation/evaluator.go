// Package validation evaluates field values against their declared rule
// sets. The same evaluator backs the design-time preview and the public
// collection surface; both must agree on what "valid" means, so there is
// exactly one implementation.
package validation

import (
	"regexp"
	"strconv"
	"unicode/utf8"

	"github.com/goliatone/go-formbuilder/pkg/form"
)

// Messages surfaced by the evaluator itself. Rule failures use the message
// declared on the rule.
const (
	RequiredMessage       = "This field is required"
	InvalidPatternMessage = "Invalid pattern"
)

// Evaluate checks a single value against a field's constraints and returns
// the error message, or "" when the value is acceptable.
//
// Display-only kinds always pass. A required field with an absent value fails
// with RequiredMessage before any rule runs. An absent value on an optional
// field skips the rule list entirely. Otherwise rules run in declared order
// and the first failure wins: later rules are not evaluated, so message
// precedence is purely positional.
func Evaluate(field form.Field, value any) string {
	if !field.Type.HasValue() {
		return ""
	}
	if field.Required && isAbsent(value) {
		return RequiredMessage
	}
	if isAbsent(value) {
		return ""
	}

	for _, rule := range field.Validation {
		if msg := applyRule(rule, value); msg != "" {
			return msg
		}
	}
	return ""
}

// EvaluateStep evaluates every value-carrying field in the step and returns
// the error messages keyed by field id. The map is recomputed in full on
// every call; an empty map means the step is valid.
func EvaluateStep(step form.Step, values map[string]any) map[string]string {
	errors := make(map[string]string)
	for _, field := range step.Fields {
		if !field.Type.HasValue() {
			continue
		}
		if msg := Evaluate(field, values[field.ID]); msg != "" {
			errors[field.ID] = msg
		}
	}
	return errors
}

// EvaluateForm evaluates every step and merges the per-field errors. Field
// ids are unique across the document, so the merge cannot collide.
func EvaluateForm(f form.Form, values map[string]any) map[string]string {
	errors := make(map[string]string)
	for _, step := range f.Steps {
		for id, msg := range EvaluateStep(step, values) {
			errors[id] = msg
		}
	}
	return errors
}

func applyRule(rule form.ValidationRule, value any) string {
	switch rule.Type {
	case form.RuleRequired:
		if isFalsy(value) {
			return rule.Message
		}
	case form.RuleMinLength:
		if str, ok := value.(string); ok {
			if limit, ok := parseThreshold(rule.Value); ok && float64(utf8.RuneCountInString(str)) < limit {
				return rule.Message
			}
		}
	case form.RuleMaxLength:
		if str, ok := value.(string); ok {
			if limit, ok := parseThreshold(rule.Value); ok && float64(utf8.RuneCountInString(str)) > limit {
				return rule.Message
			}
		}
	case form.RulePattern:
		str, ok := value.(string)
		if !ok || rule.Value == "" {
			return ""
		}
		re, err := regexp.Compile(rule.Value)
		if err != nil {
			return InvalidPatternMessage
		}
		if !re.MatchString(str) {
			return rule.Message
		}
	case form.RuleMin:
		if num, ok := numericValue(value); ok {
			if limit, ok := parseThreshold(rule.Value); ok && num < limit {
				return rule.Message
			}
		}
	case form.RuleMax:
		if num, ok := numericValue(value); ok {
			if limit, ok := parseThreshold(rule.Value); ok && num > limit {
				return rule.Message
			}
		}
	}
	return ""
}

// isAbsent mirrors the "no answer yet" check: missing key, nil, or empty
// string. A false checkbox or a zero are answers, not absence.
func isAbsent(value any) bool {
	if value == nil {
		return true
	}
	str, ok := value.(string)
	return ok && str == ""
}

func isFalsy(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case bool:
		return !v
	case int:
		return v == 0
	case int64:
		return v == 0
	case float64:
		return v == 0
	default:
		return false
	}
}

func numericValue(value any) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case float64:
		return v, true
	default:
		return 0, false
	}
}

func parseThreshold(raw string) (float64, bool) {
	if raw == "" {
		return 0, false
	}
	val, err := strconv.ParseFloat(raw, 64)
	return val, err == nil
}
