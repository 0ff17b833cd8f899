package views

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"erp-console/internal/access"
	"erp-console/internal/models"
)

var moneyPrinter = message.NewPrinter(language.English)

// FuncMap is installed on every console template.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"money":      Money,
		"date":       Date,
		"datetime":   DateTime,
		"month":      Month,
		"initials":   Initials,
		"roleLabel":  func(r models.UserRole) string { return r.Label() },
		"taskStatus": TaskStatusBadge,
		"stockLevel": func(it models.InventoryItem) string { return it.StockLevel() },
		"can":        access.Can,
		"seq":        Seq,
		"add":        func(a, b int) int { return a + b },
		"dict":       Dict,
	}
}

// Money renders an amount with thousands separators and two decimals.
func Money(d decimal.Decimal) string {
	return moneyPrinter.Sprintf("%.2f", d.Round(2).InexactFloat64())
}

func Date(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("02 Jan 2006")
}

func DateTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("02 Jan 2006 15:04")
}

// Month turns "2025-03" into "March 2025"; anything else is shown as is.
func Month(s string) string {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return s
	}
	return t.Format("January 2006")
}

func Initials(name string) string {
	parts := strings.Fields(name)
	switch len(parts) {
	case 0:
		return "?"
	case 1:
		return strings.ToUpper(string([]rune(parts[0])[:1]))
	}
	first := []rune(parts[0])[:1]
	last := []rune(parts[len(parts)-1])[:1]
	return strings.ToUpper(string(first) + string(last))
}

// TaskStatusBadge is the CSS modifier for a task status.
func TaskStatusBadge(s models.TaskStatus) string {
	switch s {
	case models.TaskDone:
		return "success"
	case models.TaskLate:
		return "danger"
	default:
		return "warning"
	}
}

// Seq returns 1..n, for pagination links.
func Seq(n int) []int {
	out := make([]int, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, i)
	}
	return out
}

// Dict builds a map from alternating keys and values so a template can pass
// several values to a partial.
func Dict(kv ...any) (map[string]any, error) {
	if len(kv)%2 != 0 {
		return nil, fmt.Errorf("dict: odd number of arguments")
	}
	m := make(map[string]any, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		k, ok := kv[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict: key %v is not a string", kv[i])
		}
		m[k] = kv[i+1]
	}
	return m, nil
}
