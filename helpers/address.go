package helpers

import (
	"net"
	"net/url"
	"strings"
)

// HasScheme reports whether addr carries an explicit "scheme://" prefix.
func HasScheme(addr string) bool {
	return strings.Contains(addr, "://")
}

// IsInsecureAddress reports whether addr uses plain http. Addresses without a scheme are treated
// as https, matching how scheme-less typesense hosts are reached.
func IsInsecureAddress(addr string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(addr)), "http://")
}

// IsLoopbackAddress reports whether addr targets localhost or a loopback IP.
// Accepts full URLs ("http://localhost:7700") and bare hosts ("127.0.0.1:8108").
func IsLoopbackAddress(addr string) bool {
	host := Hostname(addr)
	if host == "" {
		return false
	}
	if strings.EqualFold(host, "localhost") {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}

// Hostname extracts the host part (no port, no brackets) from a URL or bare host[:port].
func Hostname(addr string) string {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return ""
	}
	if !HasScheme(addr) {
		addr = "https://" + addr
	}
	u, err := url.Parse(addr)
	if err != nil {
		return ""
	}
	return u.Hostname()
}

// BaseURL returns addr with an https scheme prepended when it has none and without a trailing slash.
func BaseURL(addr string) string {
	addr = strings.TrimRight(strings.TrimSpace(addr), "/")
	if addr == "" || HasScheme(addr) {
		return addr
	}
	return "https://" + addr
}
