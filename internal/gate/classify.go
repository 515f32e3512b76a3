package gate

import "strings"

// RouteClass categorizes a request path relative to the admin subtree.
type RouteClass struct {
	IsAdminRoute bool
	IsLoginPage  bool
}

// Classify reports whether path falls under the configured admin prefix and
// whether it is the login page itself. Admin membership is a prefix match;
// the login page is an exact match, so "/admin/login/x" is an admin route
// but not the login page.
func Classify(path, adminPrefix string) RouteClass {
	prefix := "/" + adminPrefix
	return RouteClass{
		IsAdminRoute: strings.HasPrefix(path, prefix),
		IsLoginPage:  path == prefix+"/login",
	}
}
