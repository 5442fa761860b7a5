package names

import (
	"regexp"
	"strings"
)

// authorRoles are the role labels that mean "wrote the book", as opposed to
// translator, illustrator, photographer and the like.
var authorRoles = map[string]bool{
	"지은이":   true,
	"지음":    true,
	"저":     true,
	"저자":    true,
	"글":     true,
	"원작":    true,
	"글·그림":  true,
	"글/그림":  true,
	"글그림":   true,
	"엮은이":   true,
	"편저":    true,
	"author": true,
}

var roleSuffix = regexp.MustCompile(`^(.*?)\s*\(([^()]*)\)\s*$`)

// SplitRole separates "Name (role)" into its parts. ok is false when the token
// carries no trailing parenthetical.
func SplitRole(token string) (name, role string, ok bool) {
	token = strings.TrimSpace(token)
	m := roleSuffix.FindStringSubmatch(token)
	if m == nil {
		return token, "", false
	}
	return strings.TrimSpace(m[1]), strings.TrimSpace(m[2]), true
}

// IsAuthorRole reports whether role is one of the author-like labels.
func IsAuthorRole(role string) bool {
	return authorRoles[strings.ToLower(strings.TrimSpace(role))]
}

// Authors splits a raw "A (지은이), B (옮긴이); C" string on ',' and ';' and
// keeps tokens without a role or with an author-like role, in input order.
func Authors(raw string) []string {
	var out []string
	for _, tok := range strings.FieldsFunc(raw, func(r rune) bool { return r == ',' || r == ';' }) {
		name, role, hasRole := SplitRole(tok)
		if name == "" {
			continue
		}
		if hasRole && !IsAuthorRole(role) {
			continue
		}
		out = append(out, name)
	}
	return out
}
