package graph

import "strings"

// Normalize lexically normalizes a slash-separated path: "." segments and
// empty segments are dropped, ".." pops one component (never above the
// root). No filesystem access; normalization is idempotent.
func Normalize(path string) string {
	segments := strings.Split(path, "/")
	out := make([]string, 0, len(segments))
	for _, seg := range segments {
		switch seg {
		case "", ".":
		case "..":
			if len(out) > 0 {
				out = out[:len(out)-1]
			}
		default:
			out = append(out, seg)
		}
	}
	return strings.Join(out, "/")
}
