// Package fill collects a form response over a terminal: the public view of
// a form, one step at a time. The session shares the builder's evaluator, so
// a value rejected in the preview is rejected here with the same message.
package fill

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/collect"
	"github.com/goliatone/go-formbuilder/pkg/form"
	"github.com/goliatone/go-formbuilder/pkg/validation"
)

// Option configures a Session.
type Option func(*Session)

// WithDriver replaces the default survey-backed terminal driver.
func WithDriver(driver PromptDriver) Option {
	return func(s *Session) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// Session prompts through a form's steps and submits the collected values.
type Session struct {
	driver    PromptDriver
	collector *collect.Collector
}

// NewSession creates a session that appends accepted submissions through the
// collector.
func NewSession(collector *collect.Collector, options ...Option) *Session {
	s := &Session{
		driver:    NewSurveyDriver(),
		collector: collector,
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Run walks the form step by step, prompting for every value-carrying field
// in order. Invalid input is re-prompted with the evaluator's message, so a
// step is never left with errors. The sanitized document is what respondents
// see. On success the response is appended and returned.
func (s *Session) Run(ctx context.Context, doc form.Form) (form.Response, error) {
	public := doc.Sanitized()
	values := make(map[string]any)

	for i, step := range public.Steps {
		if len(public.Steps) > 1 {
			header := fmt.Sprintf("-- %s (step %d of %d) --", step.Title, i+1, len(public.Steps))
			if err := s.driver.Info(ctx, header); err != nil {
				return form.Response{}, err
			}
		}
		for _, field := range step.Fields {
			if err := s.promptField(ctx, field, values); err != nil {
				return form.Response{}, err
			}
		}
	}

	response, err := s.collector.Submit(ctx, doc, values)
	if err != nil {
		return form.Response{}, err
	}
	return response, nil
}

func (s *Session) promptField(ctx context.Context, field form.Field, values map[string]any) error {
	if !field.Type.HasValue() {
		return s.showDisplayField(ctx, field)
	}
	if field.Disabled {
		return nil
	}

	for {
		value, err := s.askOnce(ctx, field)
		if err != nil {
			return err
		}
		if msg := validation.Evaluate(field, value); msg != "" {
			if err := s.driver.Info(ctx, fmt.Sprintf("%s: %s", field.Label, msg)); err != nil {
				return err
			}
			continue
		}
		values[field.ID] = value
		return nil
	}
}

func (s *Session) showDisplayField(ctx context.Context, field form.Field) error {
	if field.Type == form.FieldTypeHeading {
		return s.driver.Info(ctx, fmt.Sprintf("== %s ==", field.Label))
	}
	text := field.Label
	if field.HelperText != "" {
		text = field.HelperText
	}
	return s.driver.Info(ctx, text)
}

func (s *Session) askOnce(ctx context.Context, field form.Field) (any, error) {
	switch field.Type {
	case form.FieldTypePassword:
		return s.driver.Password(ctx, InputConfig{
			Message: field.Label,
			Help:    field.HelperText,
		})
	case form.FieldTypeTextarea:
		return s.driver.TextArea(ctx, TextAreaConfig{
			Message: field.Label,
			Default: defaultString(field.Default),
			Help:    field.HelperText,
		})
	case form.FieldTypeCheckbox:
		return s.driver.Confirm(ctx, ConfirmConfig{
			Message: field.Label,
			Default: defaultBool(field.Default),
			Help:    field.HelperText,
		})
	case form.FieldTypeDropdown, form.FieldTypeRadio:
		return s.askOption(ctx, field)
	case form.FieldTypeNumber, form.FieldTypeRange:
		return s.askNumber(ctx, field)
	default:
		// text, email, date, time, and file all collect a plain string
		return s.driver.Input(ctx, InputConfig{
			Message: field.Label,
			Default: defaultString(field.Default),
			Help:    field.HelperText,
		})
	}
}

func (s *Session) askOption(ctx context.Context, field form.Field) (any, error) {
	if len(field.Options) == 0 {
		return s.driver.Input(ctx, InputConfig{
			Message: field.Label,
			Help:    field.HelperText,
		})
	}

	labels := make([]string, len(field.Options))
	defaultIdx := -1
	for i, option := range field.Options {
		labels[i] = option.Label
		if defaultString(field.Default) == option.Value {
			defaultIdx = i
		}
	}

	for {
		idx, err := s.driver.Select(ctx, SelectConfig{
			Message:      field.Label,
			Options:      labels,
			DefaultIndex: defaultIdx,
			Help:         field.HelperText,
		})
		if err != nil {
			return nil, err
		}
		if idx < 0 || idx >= len(field.Options) {
			if err := s.driver.Info(ctx, fmt.Sprintf("%s: invalid selection", field.Label)); err != nil {
				return nil, err
			}
			continue
		}
		return field.Options[idx].Value, nil
	}
}

func (s *Session) askNumber(ctx context.Context, field form.Field) (any, error) {
	for {
		raw, err := s.driver.Input(ctx, InputConfig{
			Message: field.Label,
			Default: defaultString(field.Default),
			Help:    field.HelperText,
		})
		if err != nil {
			return nil, err
		}

		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			// absence is the evaluator's call: required fields re-prompt,
			// optional fields pass
			return "", nil
		}
		parsed, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			if err := s.driver.Info(ctx, fmt.Sprintf("%s: enter a number", field.Label)); err != nil {
				return nil, err
			}
			continue
		}
		return parsed, nil
	}
}

func defaultString(value any) string {
	if str, ok := value.(string); ok {
		return str
	}
	return ""
}

func defaultBool(value any) bool {
	if b, ok := value.(bool); ok {
		return b
	}
	return false
}
