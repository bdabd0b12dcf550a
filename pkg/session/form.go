package session

import "github.com/opd-ai/go-projectile/pkg/validation"

// Initial form contents.
const (
	DefaultSpeed  = "20"
	DefaultAngle  = "45"
	DefaultHeight = "0"
)

// Field is one text input of the launch form.
type Field struct {
	Name  string
	Label string
	Value []rune
}

// Form holds the three launch inputs. Text is kept verbatim; parsing is left
// to the session.
type Form struct {
	Fields  []Field
	Focus   int
	Editing bool
}

// NewForm creates the launch form pre-filled with speed, angle and height.
func NewForm(speed, angle, height string) *Form {
	return &Form{Fields: []Field{
		{Name: validation.FieldSpeed, Label: "v0 (m/s)", Value: []rune(speed)},
		{Name: validation.FieldAngle, Label: "angle (°)", Value: []rune(angle)},
		{Name: validation.FieldHeight, Label: "h0 (m)", Value: []rune(height)},
	}}
}

// Insert appends r to the focused field.
func (f *Form) Insert(r rune) {
	fld := &f.Fields[f.Focus]
	fld.Value = append(fld.Value, r)
}

// Backspace deletes the last rune of the focused field.
func (f *Form) Backspace() {
	fld := &f.Fields[f.Focus]
	if n := len(fld.Value); n > 0 {
		fld.Value = fld.Value[:n-1]
	}
}

// Next moves focus to the following field, wrapping around.
func (f *Form) Next() {
	f.Focus = (f.Focus + 1) % len(f.Fields)
}

// Prev moves focus to the previous field, wrapping around.
func (f *Form) Prev() {
	f.Focus = (f.Focus + len(f.Fields) - 1) % len(f.Fields)
}

// Values returns the raw text of the speed, angle and height fields.
func (f *Form) Values() (speed, angle, height string) {
	return string(f.Fields[0].Value), string(f.Fields[1].Value), string(f.Fields[2].Value)
}

// Truncate shortens s to at most n runes, marking the cut with an ellipsis.
func Truncate(s string, n int) string {
	rs := []rune(s)
	if len(rs) <= n {
		return s
	}
	if n <= 1 {
		return string(rs[:max(n, 0)])
	}
	return string(rs[:n-1]) + "…"
}
