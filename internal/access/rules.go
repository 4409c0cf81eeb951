// Package access is the gate every request passes before it reaches a
// handler: it classifies the route, verifies the session token and checks the
// caller's role against the route's requirement.
package access

import (
	"sort"
	"strings"

	"github.com/Hanahafi/redux-stack-ecommerce/internal/models"
)

type Match int

const (
	Exact Match = iota
	Prefix
)

type Level int

const (
	Public Level = iota
	Authenticated
	RoleOnly
)

type Kind int

const (
	Page Kind = iota
	API
)

// Rule maps a route pattern to its requirement. Prefix patterns match whole
// path segments.
type Rule struct {
	Pattern string
	Match   Match
	Level   Level
	Role    models.Role // only for RoleOnly
	Kind    Kind
}

func (r Rule) matches(path string) bool {
	if r.Match == Exact {
		return path == r.Pattern
	}
	if r.Pattern == "/" {
		return true
	}
	return path == r.Pattern || strings.HasPrefix(path, r.Pattern+"/")
}

func DefaultRules() []Rule {
	rules := []Rule{
		{Pattern: "/", Match: Exact, Level: Public, Kind: Page},
		{Pattern: "/login", Match: Exact, Level: Public, Kind: Page},
		{Pattern: "/register", Match: Exact, Level: Public, Kind: Page},
		{Pattern: "/api/login", Match: Exact, Level: Public, Kind: API},
		{Pattern: "/api/register", Match: Exact, Level: Public, Kind: API},
		{Pattern: "/api/logout", Match: Exact, Level: Public, Kind: API},
		{Pattern: "/healthz", Match: Exact, Level: Public, Kind: API},
		{Pattern: "/metrics", Match: Exact, Level: Public, Kind: API},

		{Pattern: "/api", Match: Prefix, Level: Authenticated, Kind: API},
		{Pattern: "/", Match: Prefix, Level: Authenticated, Kind: Page},
	}
	for _, role := range []models.Role{models.RoleAdmin, models.RoleSeller, models.RoleBuyer} {
		rules = append(rules,
			Rule{Pattern: "/api/" + string(role), Match: Prefix, Level: RoleOnly, Role: role, Kind: API},
			Rule{Pattern: "/" + string(role), Match: Prefix, Level: RoleOnly, Role: role, Kind: Page},
		)
	}
	return rules
}

// DashboardRules exempts the role dashboards from verification. Only used when
// AllowUnverifiedDashboard is set.
func DashboardRules() []Rule {
	var rules []Rule
	for _, role := range []models.Role{models.RoleAdmin, models.RoleSeller, models.RoleBuyer} {
		rules = append(rules, Rule{Pattern: "/" + string(role) + "/dashboard", Match: Prefix, Level: Public, Kind: Page})
	}
	return rules
}

// Table resolves a path to the most specific rule: exact matches first, then
// the longest matching prefix.
type Table struct {
	exact  map[string]Rule
	prefix []Rule
}

func NewTable(rules []Rule) *Table {
	t := &Table{exact: make(map[string]Rule)}
	for _, r := range rules {
		if r.Match == Exact {
			t.exact[r.Pattern] = r
			continue
		}
		t.prefix = append(t.prefix, r)
	}
	sort.SliceStable(t.prefix, func(i, j int) bool {
		return len(t.prefix[i].Pattern) > len(t.prefix[j].Pattern)
	})
	return t
}

func (t *Table) Lookup(path string) (Rule, bool) {
	if r, ok := t.exact[path]; ok {
		return r, true
	}
	for _, r := range t.prefix {
		if r.matches(path) {
			return r, true
		}
	}
	return Rule{}, false
}
