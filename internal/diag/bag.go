package diag

// Bag is the buffer a single validation pass appends to. The driver
// decides whether to abort or continue based on the severities it holds;
// no exception-based control flow is needed (see DESIGN NOTES,
// "Diagnostic accumulation").
type Bag struct {
	items []*Diagnostic
}

// Add appends a diagnostic to the bag.
func (b *Bag) Add(d *Diagnostic) {
	if d == nil {
		return
	}
	b.items = append(b.items, d)
}

// HasErrors reports whether any diagnostic in the bag is error-severity.
func (b *Bag) HasErrors() bool {
	for _, d := range b.items {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// All returns every diagnostic collected so far, in insertion order.
func (b *Bag) All() []*Diagnostic {
	return b.items
}

// Errors returns only the error-severity diagnostics, in insertion order.
func (b *Bag) Errors() []*Diagnostic {
	var out []*Diagnostic
	for _, d := range b.items {
		if d.Severity == SeverityError {
			out = append(out, d)
		}
	}
	return out
}

// Warnings returns only the warning-severity diagnostics, in insertion order.
func (b *Bag) Warnings() []*Diagnostic {
	var out []*Diagnostic
	for _, d := range b.items {
		if d.Severity == SeverityWarning {
			out = append(out, d)
		}
	}
	return out
}

// Len reports the number of diagnostics currently held.
func (b *Bag) Len() int {
	return len(b.items)
}
