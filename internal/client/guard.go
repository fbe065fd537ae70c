package client

import (
	"strings"

	"starwash-api/internal/core/domain"
)

// Decision is the outcome of a route guard check
type Decision int

const (
	// ShowLoading means the session is still resolving; render nothing yet
	ShowLoading Decision = iota
	// RedirectToLogin means nobody is signed in
	RedirectToLogin
	// RedirectToUnauthorized means the operator's role does not match
	RedirectToUnauthorized
	// RenderChildren means the gated view may render
	RenderChildren
)

func (d Decision) String() string {
	switch d {
	case ShowLoading:
		return "show-loading"
	case RedirectToLogin:
		return "redirect-to-login"
	case RedirectToUnauthorized:
		return "redirect-to-unauthorized"
	case RenderChildren:
		return "render-children"
	default:
		return "unknown"
	}
}

// Guard decides whether a view gated on the given role may render. The
// checks run in a fixed order: a resolving session always shows loading,
// an anonymous one always goes to login, and only then is the role
// compared. Role comparison ignores case.
func Guard(required domain.Role, st State) Decision {
	if st.Loading {
		return ShowLoading
	}
	if !st.IsAuthenticated {
		return RedirectToLogin
	}
	if !strings.EqualFold(string(st.Role), string(required)) {
		return RedirectToUnauthorized
	}
	return RenderChildren
}
