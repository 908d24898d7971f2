package form

// DefaultField returns the starter properties for a freshly added field of
// the given kind: label, placeholder, helper text, seeded options, and any
// stock validation rules. The returned field carries no id; the mutation
// store assigns one on insert. The switch is exhaustive over the closed enum;
// unknown kinds fall back to a plain text input.
func DefaultField(kind FieldType) Field {
	switch kind {
	case FieldTypeText:
		return Field{
			Type:        FieldTypeText,
			Label:       "Text Input",
			Placeholder: "Enter text...",
			HelperText:  "Please enter some text",
			Validation: []ValidationRule{
				{Type: RuleRequired, Message: "This field is required"},
			},
		}
	case FieldTypeTextarea:
		return Field{
			Type:        FieldTypeTextarea,
			Label:       "Text Area",
			Placeholder: "Enter text...",
			HelperText:  "Please enter some text",
		}
	case FieldTypeNumber:
		return Field{
			Type:        FieldTypeNumber,
			Label:       "Number",
			Placeholder: "Enter a number",
			HelperText:  "Please enter a number",
			Validation: []ValidationRule{
				{Type: RuleRequired, Message: "This field is required"},
			},
		}
	case FieldTypeEmail:
		return Field{
			Type:        FieldTypeEmail,
			Label:       "Email",
			Placeholder: "Enter your email",
			HelperText:  "Please enter a valid email address",
			Validation: []ValidationRule{
				{Type: RuleRequired, Message: "Email is required"},
				{Type: RulePattern, Value: `^[\w-\.]+@([\w-]+\.)+[\w-]{2,4}$`, Message: "Please enter a valid email"},
			},
		}
	case FieldTypePassword:
		return Field{
			Type:        FieldTypePassword,
			Label:       "Password",
			Placeholder: "Enter your password",
			HelperText:  "Please enter your password",
			Validation: []ValidationRule{
				{Type: RuleRequired, Message: "Password is required"},
				{Type: RuleMinLength, Value: "8", Message: "Password must be at least 8 characters"},
			},
		}
	case FieldTypeDropdown:
		return Field{
			Type:        FieldTypeDropdown,
			Label:       "Dropdown",
			Placeholder: "Select an option",
			Options:     defaultOptions(),
		}
	case FieldTypeCheckbox:
		return Field{
			Type:       FieldTypeCheckbox,
			Label:      "Checkbox",
			HelperText: "Check this box if you agree",
		}
	case FieldTypeRadio:
		return Field{
			Type:    FieldTypeRadio,
			Label:   "Radio Group",
			Options: defaultOptions(),
		}
	case FieldTypeDate:
		return Field{
			Type:       FieldTypeDate,
			Label:      "Date",
			HelperText: "Select a date",
		}
	case FieldTypeTime:
		return Field{
			Type:       FieldTypeTime,
			Label:      "Time",
			HelperText: "Select a time",
		}
	case FieldTypeRange:
		return Field{
			Type:       FieldTypeRange,
			Label:      "Range",
			HelperText: "Select a value",
			Validation: []ValidationRule{
				{Type: RuleMin, Value: "0", Message: "Minimum value is 0"},
				{Type: RuleMax, Value: "100", Message: "Maximum value is 100"},
			},
		}
	case FieldTypeFile:
		return Field{
			Type:       FieldTypeFile,
			Label:      "File Upload",
			HelperText: "Upload a file",
		}
	case FieldTypeHeading:
		return Field{
			Type:  FieldTypeHeading,
			Label: "Section Heading",
		}
	case FieldTypeParagraph:
		return Field{
			Type:       FieldTypeParagraph,
			Label:      "Information Text",
			HelperText: "This is a paragraph of text that provides additional information.",
		}
	default:
		return Field{
			Type:        FieldTypeText,
			Label:       "Text Input",
			Placeholder: "Enter text...",
		}
	}
}

func defaultOptions() []Option {
	return []Option{
		{Label: "Option 1", Value: "option1"},
		{Label: "Option 2", Value: "option2"},
		{Label: "Option 3", Value: "option3"},
	}
}
