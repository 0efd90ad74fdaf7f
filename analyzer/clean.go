package analyzer

import "strings"

const codeFence = "```"

// CleanResponse strips surrounding whitespace and markdown code fences at the
// start and end of the reply. Either fence may appear alone. Fences are only
// removed at the boundaries so a literal "```" inside a JSON string value survives.
func CleanResponse(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, codeFence) {
		s = strings.TrimPrefix(s, codeFence)
		// the opening fence may carry a language tag such as ```json
		end := strings.IndexAny(s, "\r\n{[")
		if end < 0 {
			end = len(s)
		}
		if isFenceTag(strings.TrimSpace(s[:end])) {
			s = s[end:]
		}
		s = strings.TrimSpace(s)
	}
	s = strings.TrimSuffix(s, codeFence)
	return strings.TrimSpace(s)
}

func isFenceTag(tag string) bool {
	for _, r := range tag {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '-' || r == '_') {
			return false
		}
	}
	return true
}
