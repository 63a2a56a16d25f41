package support

import "strings"

// proxySchemes are the prefixes a proxy spec may already carry. The match is
// exact, so upper-cased schemes count as bare specs.
var proxySchemes = []string{"http://", "https://", "socks4://", "socks5://"}

// NormalizeProxySpec ensures the spec carries an explicit scheme, defaulting
// to http:// when none is present. Nothing else is validated; malformed
// specs fail at request time instead.
func NormalizeProxySpec(spec string) string {
	for _, scheme := range proxySchemes {
		if strings.HasPrefix(spec, scheme) {
			return spec
		}
	}

	return "http://" + spec
}
