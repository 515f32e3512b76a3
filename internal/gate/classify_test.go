package gate

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		path         string
		prefix       string
		isAdminRoute bool
		isLoginPage  bool
	}{
		{"/admin/login", "admin", true, true},
		{"/admin/projects", "admin", true, false},
		{"/admin", "admin", true, false},
		{"/admin/login/extra", "admin", true, false},
		{"/about", "admin", false, false},
		{"/", "admin", false, false},
		{"/api/projects", "admin", false, false},
		{"/kingpersib/login", "kingpersib", true, true},
		{"/admin/login", "kingpersib", false, false},
	}

	for _, tt := range tests {
		rc := Classify(tt.path, tt.prefix)
		if rc.IsAdminRoute != tt.isAdminRoute {
			t.Errorf("Classify(%q, %q).IsAdminRoute = %v, want %v", tt.path, tt.prefix, rc.IsAdminRoute, tt.isAdminRoute)
		}
		if rc.IsLoginPage != tt.isLoginPage {
			t.Errorf("Classify(%q, %q).IsLoginPage = %v, want %v", tt.path, tt.prefix, rc.IsLoginPage, tt.isLoginPage)
		}
	}
}

func TestClientIdentity(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{"forwarded-for single", map[string]string{"X-Forwarded-For": "203.0.113.7"}, "203.0.113.7"},
		{"forwarded-for chain takes first", map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1, 10.0.0.2"}, "203.0.113.7"},
		{"real-ip fallback", map[string]string{"X-Real-IP": "198.51.100.2"}, "198.51.100.2"},
		{"forwarded-for wins over real-ip", map[string]string{"X-Forwarded-For": "203.0.113.7", "X-Real-IP": "198.51.100.2"}, "203.0.113.7"},
		{"no headers coalesce to unknown", nil, UnknownIdentity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRequest(t, "GET", "/admin", tt.headers)
			if got := ClientIdentity(r); got != tt.want {
				t.Errorf("ClientIdentity() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAllowlist(t *testing.T) {
	empty := ParseAllowlist("")
	if !empty.Empty() {
		t.Error("blank config should yield an empty allowlist")
	}
	if !empty.IsAllowed("203.0.113.7") || !empty.IsAllowed(UnknownIdentity) {
		t.Error("empty allowlist must allow everyone")
	}

	al := ParseAllowlist(" 203.0.113.7, 198.51.100.2 ")
	if al.Empty() {
		t.Error("allowlist with entries should not be empty")
	}
	if !al.IsAllowed("203.0.113.7") || !al.IsAllowed("198.51.100.2") {
		t.Error("listed identities must be allowed")
	}
	if al.IsAllowed("192.0.2.1") {
		t.Error("unlisted identity must be denied")
	}
	if al.IsAllowed(UnknownIdentity) {
		t.Error("unknown bucket must be denied unless listed explicitly")
	}
}
