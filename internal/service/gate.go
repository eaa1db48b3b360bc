package service

import "strings"

// Page routes.
const (
	RouteHome       = "/"
	RouteLogin      = "/login"
	RouteRegister   = "/register"
	RouteDashboard  = "/dashboard"
	RouteProfile    = "/profile"
	RouteFunding    = "/funding"
	RouteMentorship = "/mentorship"
	RouteResources  = "/resources"
	RouteEvents     = "/events"
	RouteSettings   = "/settings"
)

// Access classifies a destination.
type Access int

const (
	Public Access = iota
	Protected
)

// protectedSegments are the first path segments that need a signed-in user.
// Everything else, including unknown paths (the not-found page), is public.
var protectedSegments = map[string]bool{
	"dashboard":  true,
	"profile":    true,
	"funding":    true,
	"mentorship": true,
	"resources":  true,
	"events":     true,
	"settings":   true,
}

// SessionState is the part of the session the gate reads.
type SessionState interface {
	IsAuthenticated() bool
}

// Decision is the gate's answer: render, or redirect elsewhere first.
type Decision struct {
	Allowed    bool
	RedirectTo string
}

// Allow renders the destination.
var Allow = Decision{Allowed: true}

// RedirectTo sends the caller to route instead.
func RedirectTo(route string) Decision {
	return Decision{RedirectTo: route}
}

// Classify reports whether destination is public or protected. Query
// strings, fragments and trailing slashes are ignored; sub-paths take the
// class of their first segment.
func Classify(destination string) Access {
	path := destination
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	path = strings.TrimPrefix(path, "/")
	first, _, _ := strings.Cut(path, "/")
	if protectedSegments[first] {
		return Protected
	}
	return Public
}

// CanAccess decides whether destination may render for session. An untyped
// nil session is treated as signed out; a non-nil session must be usable,
// since a typed nil pointer inside the interface is not detected. Roles are
// not consulted: every signed-in user sees the same pages.
func CanAccess(destination string, session SessionState) Decision {
	if Classify(destination) == Public {
		return Allow
	}
	if session != nil && session.IsAuthenticated() {
		return Allow
	}
	return RedirectTo(RouteLogin)
}
