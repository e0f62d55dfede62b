package authz

import "strings"

// MatchPath checks if a path pattern matches a request path.
// Patterns are segment-based with "/" separators:
//
//   - "/api/users"      matches only "/api/users"
//   - "/api/users/*"    matches "/api/users/123" but not "/api/users"
//     or "/api/users/123/roles"
//   - "/api/users/**"   matches "/api/users" and everything below it
//
// A "*" segment matches exactly one path segment.
func MatchPath(pattern, path string) bool {
	if pattern == path {
		return true
	}

	if strings.HasSuffix(pattern, "/**") {
		prefix := strings.TrimSuffix(pattern, "/**")
		return path == prefix || strings.HasPrefix(path, prefix+"/")
	}

	patSegs := splitPath(pattern)
	reqSegs := splitPath(path)
	if len(patSegs) != len(reqSegs) {
		return false
	}
	for i, seg := range patSegs {
		if seg != "*" && seg != reqSegs[i] {
			return false
		}
	}
	return true
}

func splitPath(p string) []string {
	return strings.Split(strings.Trim(p, "/"), "/")
}
