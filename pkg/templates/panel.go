package templates

import (
	"fmt"

	"github.com/goliatone/go-cvform/pkg/formstate"
)

// Panel is the stateless template-selection surface: a fixed gallery of
// mutually-exclusive styles plus the include-photo toggle. It holds only the
// values passed in and forwards user intent through the two callbacks; all
// state mutation belongs to the caller.
type Panel struct {
	Selected     ID
	IncludePhoto bool

	OnTemplateChange       func(ID)
	OnPhotoInclusionChange func(bool)
}

// Choice pairs a descriptor with its current selection state for rendering.
type Choice struct {
	Descriptor
	Selected bool
}

// Choices returns the gallery entries in order with the active one marked.
func (p Panel) Choices() []Choice {
	out := make([]Choice, 0, 3)
	for _, d := range Descriptors() {
		out = append(out, Choice{Descriptor: d, Selected: d.ID == p.Selected})
	}
	return out
}

// SelectTemplate forwards a gallery click. The identifier must come from the
// closed set; re-selecting the active style still notifies the caller, which
// treats it as a harmless no-op.
func (p Panel) SelectTemplate(id ID) error {
	if !Valid(id) {
		return fmt.Errorf("templates: unknown template %q", id)
	}
	if p.OnTemplateChange != nil {
		p.OnTemplateChange(id)
	}
	return nil
}

// TogglePhoto forwards a toggle click, reporting the negation of the current
// value.
func (p Panel) TogglePhoto() {
	if p.OnPhotoInclusionChange != nil {
		p.OnPhotoInclusionChange(!p.IncludePhoto)
	}
}

// Bind builds a panel over the shared form-state container: current values
// are read from template.selected and template.includePhoto, and both
// callbacks write straight back to the same fields. Call Bind again after a
// change to get a panel reflecting the new state.
func Bind(form *formstate.Container) Panel {
	selected := ID(form.GetString(formstate.PathTemplateSelected))
	if !Valid(selected) {
		selected = Default
	}
	return Panel{
		Selected:     selected,
		IncludePhoto: form.GetBool(formstate.PathIncludePhoto),
		OnTemplateChange: func(id ID) {
			_ = form.Set(formstate.PathTemplateSelected, string(id))
		},
		OnPhotoInclusionChange: func(next bool) {
			_ = form.Set(formstate.PathIncludePhoto, next)
		},
	}
}
