package access

import "erp-console/internal/models"

const (
	LoginPath   = "/login"
	LandingPath = "/dashboard"
)

type Verdict int

const (
	Pending Verdict = iota
	Denied
	Granted
)

func (v Verdict) String() string {
	switch v {
	case Pending:
		return "pending"
	case Denied:
		return "denied"
	case Granted:
		return "granted"
	}
	return "unknown"
}

// Decision is the outcome of one guarded navigation.
type Decision struct {
	Verdict  Verdict
	Redirect string
	Reason   string
}

// Identity is the slice of the session the guard needs.
type Identity struct {
	Authenticated bool
	Role          models.UserRole
}

// Evaluate decides a navigation to path. resolved is false while the session
// is still bootstrapping. Paths missing from the table are denied.
func Evaluate(resolved bool, who Identity, path string) Decision {
	if !resolved {
		return Decision{Verdict: Pending}
	}
	if !who.Authenticated {
		return Decision{Verdict: Denied, Redirect: LoginPath, Reason: "no session"}
	}
	rule, ok := Lookup(path)
	if !ok {
		return Decision{Verdict: Denied, Redirect: LandingPath, Reason: "unknown route"}
	}
	if !rule.Allows(who.Role) {
		return Decision{Verdict: Denied, Redirect: LandingPath, Reason: "role not permitted"}
	}
	return Decision{Verdict: Granted}
}

// Can is the boolean form used by templates to show or hide controls.
func Can(role models.UserRole, path string) bool {
	rule, ok := Lookup(path)
	return ok && rule.Allows(role)
}
