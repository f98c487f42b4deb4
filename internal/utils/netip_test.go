package utils

import (
	"net/http/httptest"
	"testing"
)

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remote     string
		headers    map[string]string
		trustProxy bool
		want       string
	}{
		{name: "remote addr", remote: "10.0.0.1:5555", want: "10.0.0.1"},
		{name: "ignores headers without trust", remote: "10.0.0.1:5555", headers: map[string]string{"X-Forwarded-For": "1.2.3.4"}, want: "10.0.0.1"},
		{name: "cloudflare first", remote: "10.0.0.1:5555", trustProxy: true, headers: map[string]string{"CF-Connecting-IP": "5.6.7.8", "X-Forwarded-For": "1.2.3.4"}, want: "5.6.7.8"},
		{name: "left-most forwarded", remote: "10.0.0.1:5555", trustProxy: true, headers: map[string]string{"X-Forwarded-For": " 1.2.3.4 , 9.9.9.9"}, want: "1.2.3.4"},
		{name: "real ip", remote: "10.0.0.1:5555", trustProxy: true, headers: map[string]string{"X-Real-IP": "4.4.4.4"}, want: "4.4.4.4"},
		{name: "ipv6 remote", remote: "[::1]:80", want: "::1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			r.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			if got := ClientIP(r, tt.trustProxy); got != tt.want {
				t.Errorf("ClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIPMatcher(t *testing.T) {
	m := NewIPMatcher([]string{"192.168.1.0/24", " 10.0.0.7 ", "::1", "garbage", ""})

	tests := []struct {
		ip   string
		want bool
	}{
		{"192.168.1.42", true},
		{"192.168.2.1", false},
		{"10.0.0.7", true},
		{"10.0.0.8", false},
		{"::1", true},
		{"::ffff:192.168.1.9", true},
		{"not-an-ip", false},
	}
	for _, tt := range tests {
		if got := m.Allow(tt.ip); got != tt.want {
			t.Errorf("Allow(%q) = %v, want %v", tt.ip, got, tt.want)
		}
	}

	if m.IsEmpty() {
		t.Error("IsEmpty() = true, want false")
	}
	if !NewIPMatcher([]string{"nope"}).IsEmpty() {
		t.Error("IsEmpty() = false for a list without valid entries")
	}
}
