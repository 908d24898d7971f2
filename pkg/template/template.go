// Package template provides reusable seed documents: the built-in starter
// templates, template capture from a working form, and instantiation of a
// template into a fresh form.
package template

import "github.com/goliatone/go-formbuilder/pkg/form"

// Instantiate clones a template into a new form: every id regenerated, fresh
// timestamps, content otherwise intact. The template is never mutated.
func Instantiate(template form.Form) form.Form {
	doc := template.CloneWithNewIDs()
	now := form.Now()
	doc.CreatedAt = now
	doc.UpdatedAt = now
	return doc
}

// FromForm captures a working form as a template. Ids are regenerated so the
// template never aliases the source document.
func FromForm(doc form.Form) form.Form {
	out := doc.CloneWithNewIDs()
	now := form.Now()
	out.CreatedAt = now
	out.UpdatedAt = now
	return out
}

// BuiltIn returns the stock templates offered on the dashboard. Callers
// receive fresh copies; instantiating one regenerates all ids.
func BuiltIn() []form.Form {
	now := form.Now()
	return []form.Form{
		contactTemplate(now),
		surveyTemplate(now),
	}
}

func contactTemplate(now int64) form.Form {
	return form.Form{
		ID:          form.NewID(),
		Title:       "Contact Form",
		Description: "A simple contact form for your website",
		CreatedAt:   now,
		UpdatedAt:   now,
		Steps: []form.Step{
			{
				ID:    form.NewID(),
				Title: "Contact Information",
				Fields: []form.Field{
					{
						ID:          form.NewID(),
						Type:        form.FieldTypeText,
						Label:       "Name",
						Placeholder: "Enter your name",
						Required:    true,
						Validation: []form.ValidationRule{
							{Type: form.RuleRequired, Message: "Name is required"},
						},
					},
					{
						ID:          form.NewID(),
						Type:        form.FieldTypeEmail,
						Label:       "Email",
						Placeholder: "Enter your email",
						Required:    true,
						Validation: []form.ValidationRule{
							{Type: form.RuleRequired, Message: "Email is required"},
							{Type: form.RulePattern, Value: `^[\w-\.]+@([\w-]+\.)+[\w-]{2,4}$`, Message: "Please enter a valid email"},
						},
					},
					{
						ID:          form.NewID(),
						Type:        form.FieldTypeTextarea,
						Label:       "Message",
						Placeholder: "Enter your message",
						Required:    true,
						Validation: []form.ValidationRule{
							{Type: form.RuleRequired, Message: "Message is required"},
						},
					},
				},
			},
		},
	}
}

func surveyTemplate(now int64) form.Form {
	return form.Form{
		ID:          form.NewID(),
		Title:       "Customer Survey",
		Description: "Collect feedback from your customers",
		CreatedAt:   now,
		UpdatedAt:   now,
		Steps: []form.Step{
			{
				ID:    form.NewID(),
				Title: "Basic Information",
				Fields: []form.Field{
					{
						ID:          form.NewID(),
						Type:        form.FieldTypeText,
						Label:       "Name",
						Placeholder: "Enter your name",
					},
					{
						ID:          form.NewID(),
						Type:        form.FieldTypeEmail,
						Label:       "Email",
						Placeholder: "Enter your email",
						Validation: []form.ValidationRule{
							{Type: form.RulePattern, Value: `^[\w-\.]+@([\w-]+\.)+[\w-]{2,4}$`, Message: "Please enter a valid email"},
						},
					},
				},
			},
			{
				ID:    form.NewID(),
				Title: "Your Experience",
				Fields: []form.Field{
					{
						ID:       form.NewID(),
						Type:     form.FieldTypeRadio,
						Label:    "How satisfied are you with our service?",
						Required: true,
						Options: []form.Option{
							{Label: "Very Satisfied", Value: "5"},
							{Label: "Satisfied", Value: "4"},
							{Label: "Neutral", Value: "3"},
							{Label: "Dissatisfied", Value: "2"},
							{Label: "Very Dissatisfied", Value: "1"},
						},
					},
					{
						ID:          form.NewID(),
						Type:        form.FieldTypeTextarea,
						Label:       "Additional Feedback",
						Placeholder: "Tell us more about your experience",
					},
				},
			},
		},
	}
}
