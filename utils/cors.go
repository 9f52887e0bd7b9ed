package utils

import (
	"net"
	"net/url"
	"strings"
)

// PrivateOrigins is an allow-list entry that admits localhost, private/RFC1918
// IPs, link-local IPs, .local hostnames, and single-label hostnames.
const PrivateOrigins = "private"

// OriginPolicy decides which browser origins may call the API.
// Entries are exact origins ("https://app.example.com"), wildcard subdomains
// ("https://*.example.com"), "*", or PrivateOrigins. No entries means any origin.
type OriginPolicy struct {
	any      bool
	private  bool
	exact    map[string]struct{}
	suffixes []string
}

func NewOriginPolicy(origins []string) *OriginPolicy {
	p := &OriginPolicy{exact: make(map[string]struct{})}
	for _, o := range origins {
		o = strings.ToLower(strings.TrimRight(strings.TrimSpace(o), "/"))
		switch {
		case o == "":
		case o == "*":
			p.any = true
		case o == PrivateOrigins:
			p.private = true
		case strings.Contains(o, "://*."):
			// "https://*.example.com" matches "https://<anything>.example.com"
			p.suffixes = append(p.suffixes, strings.Replace(o, "://*.", "://", 1))
		default:
			p.exact[o] = struct{}{}
		}
	}
	if len(p.exact) == 0 && len(p.suffixes) == 0 && !p.private {
		p.any = true
	}
	return p
}

// Allow reports whether origin may make credentialed requests.
func (p *OriginPolicy) Allow(origin string) bool {
	if origin == "" {
		return false
	}
	parsed, err := url.Parse(origin)
	if err != nil || parsed.Host == "" {
		return false
	}
	if p.any {
		return true
	}

	normalized := strings.ToLower(parsed.Scheme + "://" + parsed.Host)
	if _, ok := p.exact[normalized]; ok {
		return true
	}
	for _, s := range p.suffixes {
		scheme, host, _ := strings.Cut(s, "://")
		if parsed.Scheme == scheme && strings.HasSuffix(strings.ToLower(parsed.Host), "."+host) {
			return true
		}
	}
	if p.private {
		return isPrivateHost(parsed.Hostname())
	}
	return false
}

func isPrivateHost(hostname string) bool {
	hostname = strings.ToLower(hostname)
	if hostname == "localhost" || strings.HasSuffix(hostname, ".local") {
		return true
	}
	// single-label LAN names
	if !strings.Contains(hostname, ".") && !strings.Contains(hostname, ":") {
		return true
	}
	ip := net.ParseIP(hostname)
	if ip == nil {
		return false
	}
	return ip.IsLoopback() || ip.IsPrivate() || ip.IsLinkLocalUnicast()
}
