package models

// Draft is the input for a contact that has not been created yet, keyed by
// canonical field name.
type Draft map[string]string

// Set stores value under the canonical name of field.
func (d Draft) Set(field, value string) error {
	f, err := CanonicalField(field)
	if err != nil {
		return err
	}
	d[f] = value
	return nil
}

// Contact builds the record described by the draft. Identifiers and the
// creation timestamp are left for the caller to stamp.
func (d Draft) Contact() Contact {
	var c Contact
	for f, v := range d {
		_ = c.SetField(f, v)
	}
	return c
}

func (d Draft) Clone() Draft {
	out := make(Draft, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}
