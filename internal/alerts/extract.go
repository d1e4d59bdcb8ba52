package alerts

import (
	"fmt"
	"regexp"
	"strings"
)

// Alert posts carry a leading marker like "Route 12: bus delayed". The token
// between "Route " and ":" is the route identifier.
var routePattern = regexp.MustCompile(`Route (\w+):`)

// ExtractRoute pulls the route token out of a raw post body and returns the
// remaining message text with the marker stripped. Literal `\n` sequences in
// the source text (escaped by the feed, not real newlines) are collapsed to
// single spaces. ok is false when no route marker is present; such posts are
// skipped by the caller.
func ExtractRoute(text string) (route, rest string, ok bool) {
	match := routePattern.FindStringSubmatch(text)
	if match == nil {
		return "", "", false
	}
	route = match[1]

	rest = strings.ReplaceAll(text, fmt.Sprintf("Route %s: ", route), "")
	rest = strings.ReplaceAll(rest, `\n`, " ")
	rest = strings.TrimSpace(rest)

	return route, rest, true
}
