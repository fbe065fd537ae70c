package client

import (
	"starwash-api/internal/core/domain"
)

// CollapseWidth is the viewport width below which the sidebar starts
// collapsed.
const CollapseWidth = 1024

// NavLink is one sidebar entry
type NavLink struct {
	Label string
	Path  string
}

var adminNav = []NavLink{
	{Label: "Dashboard", Path: "/admin/dashboard"},
	{Label: "Transactions", Path: "/admin/transactions"},
	{Label: "Inventory", Path: "/admin/inventory"},
	{Label: "Staff", Path: "/admin/staff"},
	{Label: "Services", Path: "/admin/services"},
	{Label: "Machines", Path: "/admin/machines"},
	{Label: "Settings", Path: "/admin/settings"},
}

var staffNav = []NavLink{
	{Label: "Dashboard", Path: "/staff/dashboard"},
	{Label: "Transactions", Path: "/staff/transactions"},
	{Label: "Inventory", Path: "/staff/inventory"},
}

// NavFor returns the sidebar links for a role
func NavFor(role domain.Role) []NavLink {
	var src []NavLink
	switch role {
	case domain.RoleAdmin:
		src = adminNav
	case domain.RoleStaff:
		src = staffNav
	default:
		return nil
	}
	out := make([]NavLink, len(src))
	copy(out, src)
	return out
}

// Shell is the role-scoped layout frame: sidebar links plus collapse
// state. Route gating delegates to Guard so every page behind the shell
// shares one decision path.
type Shell struct {
	role      domain.Role
	collapsed bool
}

// NewShell creates a shell for the given role, sidebar expanded
func NewShell(role domain.Role) *Shell {
	return &Shell{role: role}
}

// Links returns the sidebar entries for the shell's role
func (s *Shell) Links() []NavLink {
	return NavFor(s.role)
}

// SetViewportWidth applies the responsive default: narrow viewports
// collapse the sidebar
func (s *Shell) SetViewportWidth(px int) {
	s.collapsed = px < CollapseWidth
}

// Toggle flips the sidebar open or closed
func (s *Shell) Toggle() {
	s.collapsed = !s.collapsed
}

// Collapsed reports whether the sidebar is collapsed
func (s *Shell) Collapsed() bool {
	return s.collapsed
}

// Decide gates the shell's content on the session state
func (s *Shell) Decide(st State) Decision {
	return Guard(s.role, st)
}
