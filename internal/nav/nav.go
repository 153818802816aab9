// Package nav declares the dashboard navigation and computes which entries
// a given role may see.
//
// This is a pure, stateless filter: no storage, no network, and the output
// order always equals the declared order. The edge renders the sidebar
// from VisibleTo; nothing else decides navigation visibility.
package nav

import "github.com/sakif/tutoring-admin/internal/model"

// Entry is one navigation destination with the set of roles allowed to
// see it.
type Entry struct {
	Title string       `json:"title"`
	Href  string       `json:"href"`
	Roles []model.Role `json:"-"`
}

// Entries is the full navigation, in display order. Visibility here is a
// UI concern — data access is enforced per-request by the backend, so a
// hidden entry is hidden, not protected.
var Entries = []Entry{
	{
		Title: "Payment Sheet",
		Href:  "/dashboard/payment-sheet",
		Roles: []model.Role{model.RoleAdmin, model.RoleUser},
	},
	{
		Title: "Recap",
		Href:  "/dashboard/recap",
		Roles: []model.Role{model.RoleAdmin, model.RoleUser},
	},
	{
		Title: "Students",
		Href:  "/dashboard/students",
		Roles: []model.Role{model.RoleAdmin, model.RoleUser, model.RoleTutor},
	},
	{
		Title: "Revenue",
		Href:  "/dashboard/revenue",
		Roles: []model.Role{model.RoleAdmin},
	},
	{
		Title: "Sponsorships",
		Href:  "/dashboard/sponsorships",
		Roles: []model.Role{model.RoleAdmin},
	},
}

// VisibleTo returns the entries whose role set contains the given role,
// in declared order. Callers are expected to have produced role via
// model.ParseRole, so an out-of-set value can't reach this filter — but
// if one does, it simply matches nothing.
func VisibleTo(role model.Role) []Entry {
	visible := make([]Entry, 0, len(Entries))
	for _, e := range Entries {
		if allows(e, role) {
			visible = append(visible, e)
		}
	}
	return visible
}

func allows(e Entry, role model.Role) bool {
	for _, r := range e.Roles {
		if r == role {
			return true
		}
	}
	return false
}
