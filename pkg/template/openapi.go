package template

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formbuilder/pkg/form"
)

var (
	errEmptyDocument    = errors.New("template: openapi document is empty")
	errOperationMissing = errors.New("template: operation not found")
	errNoRequestSchema  = errors.New("template: operation has no request body schema")
)

// ImportOpenAPI converts one operation's request-body schema into a
// single-step template. Top-level properties become fields: primitive types
// map to the closest field kind, enums become dropdowns, and schema
// constraints carry over as validation rules. Nested objects and arrays have
// no flat-form counterpart and are skipped.
func ImportOpenAPI(ctx context.Context, raw []byte, operationID string) (form.Form, error) {
	if len(raw) == 0 {
		return form.Form{}, errEmptyDocument
	}

	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return form.Form{}, fmt.Errorf("template: load openapi document: %w", err)
	}

	op := findOperation(spec, operationID)
	if op == nil {
		return form.Form{}, fmt.Errorf("%w: %q", errOperationMissing, operationID)
	}

	schema := requestSchema(op)
	if schema == nil || len(schema.Properties) == 0 {
		return form.Form{}, errNoRequestSchema
	}

	requiredSet := make(map[string]struct{}, len(schema.Required))
	for _, name := range schema.Required {
		requiredSet[name] = struct{}{}
	}

	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	var fields []form.Field
	for _, name := range names {
		ref := schema.Properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		_, required := requiredSet[name]
		field, ok := fieldFromSchema(name, ref.Value, required)
		if !ok {
			continue
		}
		fields = append(fields, field)
	}
	if len(fields) == 0 {
		return form.Form{}, errNoRequestSchema
	}

	title := op.Summary
	if title == "" {
		title = operationID
	}

	now := form.Now()
	return form.Form{
		ID:          form.NewID(),
		Title:       title,
		Description: op.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
		Steps: []form.Step{
			{ID: form.NewID(), Title: "Step 1", Fields: fields},
		},
	}, nil
}

func findOperation(spec *openapi3.T, operationID string) *openapi3.Operation {
	if spec.Paths == nil {
		return nil
	}
	for _, item := range spec.Paths.Map() {
		if item == nil {
			continue
		}
		for _, op := range item.Operations() {
			if op != nil && op.OperationID == operationID {
				return op
			}
		}
	}
	return nil
}

func requestSchema(op *openapi3.Operation) *openapi3.Schema {
	if op.RequestBody == nil || op.RequestBody.Value == nil {
		return nil
	}
	content := op.RequestBody.Value.Content
	for _, mediaType := range []string{"application/json", "application/x-www-form-urlencoded", "multipart/form-data"} {
		if mt, ok := content[mediaType]; ok && mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	for _, mt := range content {
		if mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	return nil
}

func fieldFromSchema(name string, schema *openapi3.Schema, required bool) (form.Field, bool) {
	kind, ok := fieldKind(schema)
	if !ok {
		return form.Field{}, false
	}

	field := form.Field{
		Type:       kind,
		Label:      labelFromName(name),
		HelperText: schema.Description,
		Required:   required,
		Default:    schema.Default,
	}
	field.ID = form.NewID()

	if kind == form.FieldTypeDropdown {
		for _, value := range schema.Enum {
			str := fmt.Sprint(value)
			field.Options = append(field.Options, form.Option{Label: str, Value: str})
		}
	}

	field.Validation = rulesFromSchema(schema)
	return field, true
}

func fieldKind(schema *openapi3.Schema) (form.FieldType, bool) {
	switch schemaType(schema) {
	case "string":
		if len(schema.Enum) > 0 {
			return form.FieldTypeDropdown, true
		}
		switch strings.ToLower(schema.Format) {
		case "email":
			return form.FieldTypeEmail, true
		case "password":
			return form.FieldTypePassword, true
		case "date":
			return form.FieldTypeDate, true
		case "time":
			return form.FieldTypeTime, true
		case "byte", "binary":
			return form.FieldTypeFile, true
		case "textarea":
			return form.FieldTypeTextarea, true
		default:
			return form.FieldTypeText, true
		}
	case "integer", "number":
		return form.FieldTypeNumber, true
	case "boolean":
		return form.FieldTypeCheckbox, true
	default:
		// arrays, objects, and untyped schemas have no flat-form field kind
		return "", false
	}
}

func schemaType(schema *openapi3.Schema) string {
	if schema.Type == nil {
		return ""
	}
	values := schema.Type.Slice()
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

func rulesFromSchema(schema *openapi3.Schema) []form.ValidationRule {
	var rules []form.ValidationRule

	if schema.MinLength != 0 {
		rules = append(rules, form.ValidationRule{
			Type:    form.RuleMinLength,
			Value:   fmt.Sprintf("%d", schema.MinLength),
			Message: fmt.Sprintf("Must be at least %d characters", schema.MinLength),
		})
	}
	if schema.MaxLength != nil {
		rules = append(rules, form.ValidationRule{
			Type:    form.RuleMaxLength,
			Value:   fmt.Sprintf("%d", *schema.MaxLength),
			Message: fmt.Sprintf("Must be at most %d characters", *schema.MaxLength),
		})
	}
	if schema.Pattern != "" {
		rules = append(rules, form.ValidationRule{
			Type:    form.RulePattern,
			Value:   schema.Pattern,
			Message: "Invalid format",
		})
	}
	if schema.Min != nil {
		rules = append(rules, form.ValidationRule{
			Type:    form.RuleMin,
			Value:   formatFloat(*schema.Min),
			Message: fmt.Sprintf("Minimum value is %s", formatFloat(*schema.Min)),
		})
	}
	if schema.Max != nil {
		rules = append(rules, form.ValidationRule{
			Type:    form.RuleMax,
			Value:   formatFloat(*schema.Max),
			Message: fmt.Sprintf("Maximum value is %s", formatFloat(*schema.Max)),
		})
	}
	return rules
}

func formatFloat(value float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%f", value), "0"), ".")
}

// labelFromName turns a property name like "firstName" or "first_name" into
// a display label.
func labelFromName(name string) string {
	if name == "" {
		return name
	}

	var words []string
	var current strings.Builder
	flush := func() {
		if current.Len() > 0 {
			words = append(words, current.String())
			current.Reset()
		}
	}

	for i, r := range name {
		switch {
		case r == '_' || r == '-' || r == ' ':
			flush()
		case i > 0 && r >= 'A' && r <= 'Z':
			flush()
			current.WriteRune(r)
		default:
			current.WriteRune(r)
		}
	}
	flush()

	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
