package form

// Clone returns a deep copy of the form. Ids are preserved; use
// CloneWithNewIDs when duplicating a document into a new identity.
func (f Form) Clone() Form {
	out := f
	out.Steps = cloneSteps(f.Steps)
	return out
}

// CloneWithNewIDs returns a deep copy with every form, step, and field id
// regenerated. Duplication must never copy ids: lookups assume ids are unique
// across all open documents.
func (f Form) CloneWithNewIDs() Form {
	out := f.Clone()
	out.ID = NewID()
	for i := range out.Steps {
		out.Steps[i].ID = NewID()
		for j := range out.Steps[i].Fields {
			out.Steps[i].Fields[j].ID = NewID()
		}
	}
	return out
}

// Clone returns a deep copy of the step.
func (s Step) Clone() Step {
	out := s
	out.Fields = cloneFields(s.Fields)
	return out
}

// Clone returns a deep copy of the field.
func (fl Field) Clone() Field {
	out := fl
	if len(fl.Options) > 0 {
		out.Options = append([]Option(nil), fl.Options...)
	}
	if len(fl.Validation) > 0 {
		out.Validation = append([]ValidationRule(nil), fl.Validation...)
	}
	out.Default = deepCopyValue(fl.Default)
	return out
}

// Clone returns a deep copy of the response record.
func (r Response) Clone() Response {
	out := r
	if r.Data != nil {
		data := make(map[string]any, len(r.Data))
		for key, value := range r.Data {
			data[key] = deepCopyValue(value)
		}
		out.Data = data
	}
	return out
}

func cloneSteps(steps []Step) []Step {
	if steps == nil {
		return nil
	}
	out := make([]Step, len(steps))
	for i, step := range steps {
		out[i] = step.Clone()
	}
	return out
}

func cloneFields(fields []Field) []Field {
	if fields == nil {
		return nil
	}
	out := make([]Field, len(fields))
	for i, field := range fields {
		out[i] = field.Clone()
	}
	return out
}

func deepCopyValue(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		clone := make(map[string]any, len(typed))
		for k, v := range typed {
			clone[k] = deepCopyValue(v)
		}
		return clone
	case []any:
		clone := make([]any, len(typed))
		for i, v := range typed {
			clone[i] = deepCopyValue(v)
		}
		return clone
	case []string:
		return append([]string(nil), typed...)
	default:
		return typed
	}
}
