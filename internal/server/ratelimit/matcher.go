package ratelimit

import (
	"strings"
)

// HealthPath is never rate limited.
const HealthPath = "/api/health"

// unlimited marks an endpoint without a limit.
var unlimited = EndpointConfig{}

// MatchEndpoint matches a request path and method to an endpoint configuration.
// Exact matches win over prefix matches; configs whose Path ends in "/" match by prefix.
// Returns nil when no config applies.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	if path == HealthPath && method == "GET" {
		u := unlimited
		return &u
	}

	for i := range configs {
		if configs[i].Path == path && configs[i].Method == method {
			return &configs[i]
		}
	}

	for i := range configs {
		c := &configs[i]
		if c.Method == method && strings.HasSuffix(c.Path, "/") && strings.HasPrefix(path, c.Path) {
			return c
		}
	}

	return nil
}
