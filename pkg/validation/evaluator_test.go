package validation

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbuilder/pkg/form"
)

func TestEvaluateRequiredPrecedence(t *testing.T) {
	field := form.Field{
		ID:       "email",
		Type:     form.FieldTypeEmail,
		Required: true,
		Validation: []form.ValidationRule{
			{Type: form.RulePattern, Value: `^[\w-\.]+@([\w-]+\.)+[\w-]{2,4}$`, Message: "Please enter a valid email"},
		},
	}

	// absence reports the required message before any rule runs
	if got := Evaluate(field, nil); got != RequiredMessage {
		t.Fatalf("expected %q, got %q", RequiredMessage, got)
	}
	if got := Evaluate(field, ""); got != RequiredMessage {
		t.Fatalf("expected %q for empty string, got %q", RequiredMessage, got)
	}

	// a present value runs the rule list
	if got := Evaluate(field, "not-an-email"); got != "Please enter a valid email" {
		t.Fatalf("expected pattern message, got %q", got)
	}
	if got := Evaluate(field, "a@b.co"); got != "" {
		t.Fatalf("expected valid, got %q", got)
	}
}

func TestEvaluateOptionalAbsentSkipsRules(t *testing.T) {
	field := form.Field{
		ID:   "nickname",
		Type: form.FieldTypeText,
		Validation: []form.ValidationRule{
			{Type: form.RuleMinLength, Value: "3", Message: "Too short"},
		},
	}

	if got := Evaluate(field, nil); got != "" {
		t.Fatalf("absent optional value should pass, got %q", got)
	}
	if got := Evaluate(field, ""); got != "" {
		t.Fatalf("empty optional value should pass, got %q", got)
	}
	if got := Evaluate(field, "ab"); got != "Too short" {
		t.Fatalf("expected length failure, got %q", got)
	}
}

func TestEvaluateFirstFailureWins(t *testing.T) {
	field := form.Field{
		ID:   "code",
		Type: form.FieldTypeText,
		Validation: []form.ValidationRule{
			{Type: form.RuleMinLength, Value: "5", Message: "first"},
			{Type: form.RulePattern, Value: `^\d+$`, Message: "second"},
		},
	}

	// both rules fail; only the first message surfaces
	if got := Evaluate(field, "ab"); got != "first" {
		t.Fatalf("expected first failing rule's message, got %q", got)
	}
	// first passes, second fails
	if got := Evaluate(field, "abcde"); got != "second" {
		t.Fatalf("expected second rule's message, got %q", got)
	}
}

func TestEvaluateMalformedPattern(t *testing.T) {
	field := form.Field{
		ID:   "f",
		Type: form.FieldTypeText,
		Validation: []form.ValidationRule{
			{Type: form.RulePattern, Value: `([`, Message: "never used"},
		},
	}

	if got := Evaluate(field, "anything"); got != InvalidPatternMessage {
		t.Fatalf("expected %q, got %q", InvalidPatternMessage, got)
	}
}

func TestEvaluateLengthRulesAreStringOnly(t *testing.T) {
	field := form.Field{
		ID:   "f",
		Type: form.FieldTypeNumber,
		Validation: []form.ValidationRule{
			{Type: form.RuleMinLength, Value: "5", Message: "too short"},
		},
	}

	// a numeric value never trips a length rule
	if got := Evaluate(field, 42.0); got != "" {
		t.Fatalf("length rule applied to a number: %q", got)
	}
}

func TestEvaluateNumericBounds(t *testing.T) {
	field := form.Field{
		ID:   "age",
		Type: form.FieldTypeNumber,
		Validation: []form.ValidationRule{
			{Type: form.RuleMin, Value: "18", Message: "too young"},
			{Type: form.RuleMax, Value: "120", Message: "too old"},
		},
	}

	if got := Evaluate(field, 17.0); got != "too young" {
		t.Fatalf("expected min failure, got %q", got)
	}
	if got := Evaluate(field, 121); got != "too old" {
		t.Fatalf("expected max failure, got %q", got)
	}
	if got := Evaluate(field, 30); got != "" {
		t.Fatalf("expected valid, got %q", got)
	}
	// bounds never apply to strings
	if got := Evaluate(field, "17"); got != "" {
		t.Fatalf("numeric rule applied to a string: %q", got)
	}
}

func TestEvaluateRuneAwareLengths(t *testing.T) {
	field := form.Field{
		ID:   "f",
		Type: form.FieldTypeText,
		Validation: []form.ValidationRule{
			{Type: form.RuleMaxLength, Value: "3", Message: "too long"},
		},
	}

	// three runes, more than three bytes
	if got := Evaluate(field, "héé"); got != "" {
		t.Fatalf("rune count should be 3, got failure %q", got)
	}
	if got := Evaluate(field, "hééé"); got != "too long" {
		t.Fatalf("expected length failure, got %q", got)
	}
}

func TestEvaluateUnparsableThresholdSkipsRule(t *testing.T) {
	field := form.Field{
		ID:   "f",
		Type: form.FieldTypeText,
		Validation: []form.ValidationRule{
			{Type: form.RuleMinLength, Value: "lots", Message: "never"},
		},
	}

	if got := Evaluate(field, "x"); got != "" {
		t.Fatalf("unparsable threshold should skip the rule, got %q", got)
	}
}

func TestEvaluateDisplayFieldsAlwaysPass(t *testing.T) {
	heading := form.Field{
		ID:       "h",
		Type:     form.FieldTypeHeading,
		Required: true,
		Validation: []form.ValidationRule{
			{Type: form.RuleRequired, Message: "never"},
		},
	}

	if got := Evaluate(heading, nil); got != "" {
		t.Fatalf("display field produced error %q", got)
	}
}

func TestEvaluateRequiredRuleFalsyValues(t *testing.T) {
	field := form.Field{
		ID:   "agree",
		Type: form.FieldTypeCheckbox,
		Validation: []form.ValidationRule{
			{Type: form.RuleRequired, Message: "You must agree"},
		},
	}

	// false is an answer, so the rule list runs and the required rule trips
	if got := Evaluate(field, false); got != "You must agree" {
		t.Fatalf("expected required rule failure, got %q", got)
	}
	if got := Evaluate(field, true); got != "" {
		t.Fatalf("expected valid, got %q", got)
	}
}

func TestEvaluateStep(t *testing.T) {
	step := form.Step{
		ID: "s1",
		Fields: []form.Field{
			{ID: "heading", Type: form.FieldTypeHeading, Label: "Details"},
			{ID: "name", Type: form.FieldTypeText, Required: true},
			{ID: "nickname", Type: form.FieldTypeText},
			{
				ID:   "age",
				Type: form.FieldTypeNumber,
				Validation: []form.ValidationRule{
					{Type: form.RuleMin, Value: "18", Message: "too young"},
				},
			},
		},
	}

	got := EvaluateStep(step, map[string]any{
		"age": 12.0,
	})
	want := map[string]string{
		"name": RequiredMessage,
		"age":  "too young",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("step errors mismatch (-want +got):\n%s", diff)
	}

	got = EvaluateStep(step, map[string]any{
		"name": "Ada",
		"age":  21.0,
	})
	if len(got) != 0 {
		t.Fatalf("expected clean step, got %v", got)
	}
}

func TestEvaluateFormMergesSteps(t *testing.T) {
	doc := form.Form{
		Steps: []form.Step{
			{ID: "s1", Fields: []form.Field{{ID: "a", Type: form.FieldTypeText, Required: true}}},
			{ID: "s2", Fields: []form.Field{{ID: "b", Type: form.FieldTypeText, Required: true}}},
		},
	}

	got := EvaluateForm(doc, map[string]any{"a": "present"})
	want := map[string]string{"b": RequiredMessage}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("form errors mismatch (-want +got):\n%s", diff)
	}
}
