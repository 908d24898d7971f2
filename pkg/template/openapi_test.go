package template

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-formbuilder/pkg/form"
)

const petitionSpec = `{
  "openapi": "3.0.0",
  "info": {"title": "Petitions", "version": "1.0.0"},
  "paths": {
    "/petitions": {
      "post": {
        "operationId": "createPetition",
        "summary": "Create a petition",
        "description": "Starts a new petition",
        "requestBody": {
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["fullName", "email"],
                "properties": {
                  "fullName": {
                    "type": "string",
                    "minLength": 2,
                    "maxLength": 80,
                    "description": "Your legal name"
                  },
                  "email": {"type": "string", "format": "email"},
                  "age": {"type": "integer", "minimum": 18, "maximum": 120},
                  "category": {"type": "string", "enum": ["local", "national"]},
                  "subscribe": {"type": "boolean"},
                  "tags": {"type": "array", "items": {"type": "string"}}
                }
              }
            }
          }
        },
        "responses": {"201": {"description": "created"}}
      }
    }
  }
}`

func TestImportOpenAPI(t *testing.T) {
	doc, err := ImportOpenAPI(context.Background(), []byte(petitionSpec), "createPetition")
	if err != nil {
		t.Fatalf("import: %v", err)
	}

	if doc.Title != "Create a petition" {
		t.Fatalf("unexpected title %q", doc.Title)
	}
	if doc.Description != "Starts a new petition" {
		t.Fatalf("unexpected description %q", doc.Description)
	}
	if len(doc.Steps) != 1 {
		t.Fatalf("expected one step, got %d", len(doc.Steps))
	}

	fields := doc.Steps[0].Fields
	byLabel := make(map[string]form.Field, len(fields))
	for _, field := range fields {
		if field.ID == "" {
			t.Fatalf("field %q has no id", field.Label)
		}
		byLabel[field.Label] = field
	}

	// the array property has no flat-form counterpart
	if len(fields) != 5 {
		t.Fatalf("expected 5 fields, got %d: %v", len(fields), labels(fields))
	}

	name, ok := byLabel["Full Name"]
	if !ok {
		t.Fatalf("missing Full Name field in %v", labels(fields))
	}
	if name.Type != form.FieldTypeText || !name.Required {
		t.Fatalf("unexpected name field: %+v", name)
	}
	if name.HelperText != "Your legal name" {
		t.Fatalf("description not carried over: %q", name.HelperText)
	}
	if len(name.Validation) != 2 {
		t.Fatalf("expected length rules, got %+v", name.Validation)
	}
	if name.Validation[0].Type != form.RuleMinLength || name.Validation[0].Value != "2" {
		t.Fatalf("unexpected first rule %+v", name.Validation[0])
	}

	email := byLabel["Email"]
	if email.Type != form.FieldTypeEmail {
		t.Fatalf("format email should map to the email kind, got %q", email.Type)
	}

	age := byLabel["Age"]
	if age.Type != form.FieldTypeNumber || age.Required {
		t.Fatalf("unexpected age field: %+v", age)
	}
	if len(age.Validation) != 2 || age.Validation[0].Value != "18" || age.Validation[1].Value != "120" {
		t.Fatalf("bounds not carried over: %+v", age.Validation)
	}

	category := byLabel["Category"]
	if category.Type != form.FieldTypeDropdown || len(category.Options) != 2 {
		t.Fatalf("enum should map to a dropdown: %+v", category)
	}

	if byLabel["Subscribe"].Type != form.FieldTypeCheckbox {
		t.Fatalf("boolean should map to a checkbox: %+v", byLabel["Subscribe"])
	}
}

func TestImportOpenAPIUnknownOperation(t *testing.T) {
	_, err := ImportOpenAPI(context.Background(), []byte(petitionSpec), "deletePetition")
	if !errors.Is(err, errOperationMissing) {
		t.Fatalf("expected missing-operation error, got %v", err)
	}
}

func TestImportOpenAPIEmptyDocument(t *testing.T) {
	if _, err := ImportOpenAPI(context.Background(), nil, "any"); err == nil {
		t.Fatal("expected an error for an empty document")
	}
}

func labels(fields []form.Field) []string {
	out := make([]string, len(fields))
	for i, field := range fields {
		out[i] = field.Label
	}
	return out
}
