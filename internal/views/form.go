// Package views holds the view models shared by every page template: the
// side-panel drawer form, select options, toggles and display formatting.
package views

import (
	"erp-console/internal/models"
)

type FieldType string

const (
	FieldText     FieldType = "text"
	FieldEmail    FieldType = "email"
	FieldPassword FieldType = "password"
	FieldNumber   FieldType = "number"
	FieldDate     FieldType = "date"
	FieldMonth    FieldType = "month"
	FieldTextarea FieldType = "textarea"
	FieldSelect   FieldType = "select"
	FieldToggle   FieldType = "toggle"
	FieldHidden   FieldType = "hidden"
)

// Field is one input of a drawer form.
type Field struct {
	Name        string
	Label       string
	Type        FieldType
	Value       string
	Placeholder string
	Required    bool
	Step        string
	Select      *Select
	Toggle      *Toggle
}

// Drawer configures a side-panel form. One struct drives every create and
// edit panel in the console.
type Drawer struct {
	ID          string
	Title       string
	Action      string
	SubmitLabel string
	BusyLabel   string
	Fields      []Field
	Open        bool
	Error       string
}

// WithValues returns a copy with field values taken from values, keyed by
// field name. Used to re-fill a form after the API rejected it.
func (d Drawer) WithValues(values map[string]string) Drawer {
	out := d
	out.Fields = make([]Field, len(d.Fields))
	for i, f := range d.Fields {
		if v, ok := values[f.Name]; ok && f.Type != FieldPassword {
			f.Value = v
			if f.Select != nil {
				sel := f.Select.WithSelected(v)
				f.Select = &sel
			}
			if f.Toggle != nil {
				tg := *f.Toggle
				tg.On = v == "true" || v == "on"
				f.Toggle = &tg
			}
		}
		out.Fields[i] = f
	}
	return out
}

// Failed reopens the drawer showing msg.
func (d Drawer) Failed(msg string, values map[string]string) Drawer {
	out := d.WithValues(values)
	out.Open = true
	out.Error = msg
	return out
}

// MissingRequired returns the labels of required fields left blank.
func (d Drawer) MissingRequired(values map[string]string) []string {
	var missing []string
	for _, f := range d.Fields {
		if f.Required && values[f.Name] == "" {
			missing = append(missing, f.Label)
		}
	}
	return missing
}

type Option struct {
	Value    string
	Label    string
	Selected bool
}

// Select is the view model of a dropdown.
type Select struct {
	Name        string
	Placeholder string
	Options     []Option
}

func (s Select) WithSelected(value string) Select {
	out := s
	out.Options = make([]Option, len(s.Options))
	for i, o := range s.Options {
		o.Selected = o.Value == value
		out.Options[i] = o
	}
	return out
}

// SelectedLabel returns the label of the chosen option or the placeholder.
func (s Select) SelectedLabel() string {
	for _, o := range s.Options {
		if o.Selected {
			return o.Label
		}
	}
	return s.Placeholder
}

// Toggle is an on/off switch. Action, when set, is posted on click.
type Toggle struct {
	Name     string
	On       bool
	Disabled bool
	Action   string
}

// RoleOptions builds the role picker. An ADMIN viewer only gets the ADMIN
// option when editing someone who already holds it.
func RoleOptions(viewer models.UserRole, selected models.UserRole) Select {
	sel := Select{Name: "role", Placeholder: "Select role"}
	for _, r := range models.Roles {
		if r == models.RoleAdmin && viewer == models.RoleAdmin && selected != models.RoleAdmin {
			continue
		}
		sel.Options = append(sel.Options, Option{Value: string(r), Label: r.Label(), Selected: r == selected})
	}
	return sel
}

// RoleFilterOptions is the list filter variant with an "all roles" entry.
func RoleFilterOptions(selected string) Select {
	sel := Select{Name: "role", Placeholder: "All roles"}
	sel.Options = append(sel.Options, Option{Value: "", Label: "All roles", Selected: selected == ""})
	for _, r := range models.Roles {
		sel.Options = append(sel.Options, Option{Value: string(r), Label: r.Label(), Selected: string(r) == selected})
	}
	return sel
}

func StatusFilterOptions(selected string) Select {
	return Select{
		Name:        "status",
		Placeholder: "Any status",
		Options: []Option{
			{Value: "", Label: "Any status", Selected: selected == ""},
			{Value: "true", Label: "Active", Selected: selected == "true"},
			{Value: "false", Label: "Inactive", Selected: selected == "false"},
		},
	}
}

// UserOptions lists users as id/name pairs.
func UserOptions(name, placeholder string, users []models.User, selected string) Select {
	sel := Select{Name: name, Placeholder: placeholder}
	for _, u := range users {
		label := u.Name
		if label == "" {
			label = u.Email
		}
		sel.Options = append(sel.Options, Option{Value: u.ID, Label: label, Selected: u.ID == selected})
	}
	return sel
}

func ItemOptions(items []models.InventoryItem, selected string) Select {
	sel := Select{Name: "itemId", Placeholder: "Select item"}
	for _, it := range items {
		sel.Options = append(sel.Options, Option{Value: it.ID, Label: it.ItemName, Selected: it.ID == selected})
	}
	return sel
}
