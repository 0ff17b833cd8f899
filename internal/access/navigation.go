package access

import "erp-console/internal/models"

// NavigationEntry is a sidebar item. It carries either a Path or SubItems,
// never both; sub-items do not nest further.
type NavigationEntry struct {
	Name     string
	Path     string
	Icon     string
	SubItems []NavigationEntry
}

// Resolve returns the sidebar entries for role, in table order. It returns
// nil for an unrecognised role.
func Resolve(role models.UserRole) []NavigationEntry {
	if !role.Valid() {
		return nil
	}

	var out []NavigationEntry
	groups := map[string]int{}
	for _, p := range pages {
		if p.label == "" || !p.rule.Allows(role) {
			continue
		}
		entry := NavigationEntry{Name: p.label, Path: p.rule.Path, Icon: p.icon}
		if p.group == "" {
			out = append(out, entry)
			continue
		}
		entry.Icon = ""
		idx, ok := groups[p.group]
		if !ok {
			out = append(out, NavigationEntry{Name: p.group, Icon: p.icon})
			idx = len(out) - 1
			groups[p.group] = idx
		}
		out[idx].SubItems = append(out[idx].SubItems, entry)
	}
	return out
}

// MenuItem is a NavigationEntry decorated for one rendered page.
type MenuItem struct {
	NavigationEntry
	Active   bool
	Open     bool
	Children []MenuItem
}

// Menu resolves the entries for role and marks the ones matching
// currentPath. A group is open when one of its children is active.
func Menu(role models.UserRole, currentPath string) []MenuItem {
	entries := Resolve(role)
	out := make([]MenuItem, 0, len(entries))
	for _, e := range entries {
		item := MenuItem{NavigationEntry: e}
		if len(e.SubItems) == 0 {
			item.Active = e.Path == currentPath
			out = append(out, item)
			continue
		}
		for _, sub := range e.SubItems {
			child := MenuItem{NavigationEntry: sub, Active: sub.Path == currentPath}
			if child.Active {
				item.Open = true
			}
			item.Children = append(item.Children, child)
		}
		out = append(out, item)
	}
	return out
}

// Paths flattens entries into the list of reachable paths.
func Paths(entries []NavigationEntry) []string {
	var out []string
	for _, e := range entries {
		if e.Path != "" {
			out = append(out, e.Path)
		}
		for _, sub := range e.SubItems {
			out = append(out, sub.Path)
		}
	}
	return out
}
