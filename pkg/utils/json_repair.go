package utils

import (
	"fmt"
	"strings"
)

// Prefixes models like to put in front of a JSON payload.
var chattyPrefixes = []string{
	"Here's the travel plan:",
	"Here is the itinerary:",
	"Here is the JSON:",
	"Itinerary:",
	"JSON:",
}

// StripCodeFences removes markdown fences and well-known chatty prefixes.
func StripCodeFences(response string) string {
	response = strings.ReplaceAll(response, "```json", "")
	response = strings.ReplaceAll(response, "```JSON", "")
	response = strings.ReplaceAll(response, "```", "")
	response = strings.TrimSpace(response)

	for _, prefix := range chattyPrefixes {
		if strings.HasPrefix(response, prefix) {
			response = strings.TrimSpace(strings.TrimPrefix(response, prefix))
			break
		}
	}
	return response
}

// ExtractJSONObject returns the first balanced top-level JSON object in text.
// Braces inside string literals are ignored.
func ExtractJSONObject(text string) (string, error) {
	start := strings.Index(text, "{")
	if start == -1 {
		return "", fmt.Errorf("no JSON object start found")
	}
	end := findMatchingBrace(text, start)
	if end == -1 {
		return "", fmt.Errorf("no complete JSON object found")
	}
	return text[start : end+1], nil
}

// findMatchingBrace finds the matching closing brace for an opening brace
func findMatchingBrace(s string, start int) int {
	if start >= len(s) || s[start] != '{' {
		return -1
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		char := s[i]

		if escaped {
			escaped = false
			continue
		}
		if char == '\\' && inString {
			escaped = true
			continue
		}
		if char == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}

		switch char {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}

	return -1
}

// RepairJSON is a single best-effort pass over a model response: it drops
// fences and prose around the first object or array, turns single-quoted
// strings into double-quoted ones, closes a truncated payload, removes
// trailing commas, quotes bare keys and rewrites Python literals. The result
// is not guaranteed to be valid JSON.
func RepairJSON(raw string) string {
	s := StripCodeFences(raw)
	start := strings.IndexAny(s, "{[")
	if start == -1 {
		return s
	}
	s = s[:start] + requoteSingleQuoted(s[start:])

	var (
		out      strings.Builder
		closers  []byte
		inString bool
		escaped  bool
	)

	for i := start; i < len(s); i++ {
		char := s[i]
		out.WriteByte(char)

		if inString {
			switch {
			case escaped:
				escaped = false
			case char == '\\':
				escaped = true
			case char == '"':
				inString = false
			}
			continue
		}

		switch char {
		case '"':
			inString = true
		case '{':
			closers = append(closers, '}')
		case '[':
			closers = append(closers, ']')
		case '}', ']':
			if len(closers) > 0 {
				closers = closers[:len(closers)-1]
			}
			if len(closers) == 0 {
				return normalizeJSONTokens(out.String())
			}
		}
	}

	// Truncated payload: close whatever is still open.
	repaired := out.String()
	if inString {
		repaired = strings.TrimSuffix(repaired, "\\") + `"`
	}
	repaired = strings.TrimRight(repaired, " \t\r\n,:")
	for i := len(closers) - 1; i >= 0; i-- {
		repaired += string(closers[i])
	}
	return normalizeJSONTokens(repaired)
}

// requoteSingleQuoted rewrites 'text' as "text", escaping inner double quotes
// and unescaping \'. Double-quoted strings are copied as they are.
func requoteSingleQuoted(s string) string {
	var b strings.Builder
	var quote byte

	for i := 0; i < len(s); i++ {
		char := s[i]

		switch {
		case quote == 0:
			if char == '"' || char == '\'' {
				quote = char
				b.WriteByte('"')
				continue
			}
			b.WriteByte(char)
		case char == '\\' && i+1 < len(s):
			next := s[i+1]
			i++
			if quote == '\'' && next == '\'' {
				b.WriteByte('\'')
				continue
			}
			b.WriteByte(char)
			b.WriteByte(next)
		case char == quote:
			quote = 0
			b.WriteByte('"')
		case char == '"':
			b.WriteString(`\"`)
		default:
			b.WriteByte(char)
		}
	}
	return b.String()
}

func normalizeJSONTokens(s string) string {
	var b strings.Builder
	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
		char := s[i]

		if inString {
			b.WriteByte(char)
			switch {
			case escaped:
				escaped = false
			case char == '\\':
				escaped = true
			case char == '"':
				inString = false
			}
			continue
		}

		switch {
		case char == '"':
			inString = true
			b.WriteByte(char)
		case char == ',':
			j := i + 1
			for j < len(s) && isJSONSpace(s[j]) {
				j++
			}
			if j < len(s) && (s[j] == '}' || s[j] == ']') {
				continue
			}
			b.WriteByte(char)
		case isIdentByte(char):
			j := i
			for j < len(s) && (isIdentByte(s[j]) || isDigit(s[j])) {
				j++
			}
			word := s[i:j]
			switch word {
			case "True":
				word = "true"
			case "False":
				word = "false"
			case "None":
				word = "null"
			}
			k := j
			for k < len(s) && isJSONSpace(s[k]) {
				k++
			}
			if k < len(s) && s[k] == ':' {
				word = `"` + word + `"`
			}
			b.WriteString(word)
			i = j - 1
		default:
			b.WriteByte(char)
		}
	}

	return b.String()
}

func isJSONSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isIdentByte(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}
