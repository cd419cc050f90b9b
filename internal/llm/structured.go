package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Validator validates a parsed value after JSON decoding.
// Returns nil if valid, or a descriptive error if invalid.
type Validator[T any] func(T) error

// ParseJSON attempts a strict parse of the entire response text (after
// trimming whitespace and markdown code fences) as a JSON value of type T.
// This is the first phase of the two-phase parse; on failure callers fall
// back to ExtractJSON.
func ParseJSON[T any](raw string, validator Validator[T]) (T, error) {
	var zero T

	cleaned := strings.TrimSpace(stripCodeFences(raw))
	if cleaned == "" {
		return zero, fmt.Errorf("%w: empty response", ErrInvalidOutput)
	}

	var result T
	if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
		return zero, fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}

	if validator != nil {
		if err := validator(result); err != nil {
			return zero, fmt.Errorf("%w: validation failed: %v", ErrInvalidOutput, err)
		}
	}

	return result, nil
}

// ExtractJSON extracts a JSON object of type T from raw model output that
// may surround the object with prose. It locates the first balanced
// { ... } block and parses that substring. This is the second phase of the
// two-phase parse.
func ExtractJSON[T any](raw string, validator Validator[T]) (T, error) {
	var zero T

	cleaned := stripCodeFences(raw)
	jsonStr := extractJSONBlock(cleaned)
	if jsonStr == "" {
		return zero, fmt.Errorf("%w: no JSON object found in response", ErrInvalidOutput)
	}

	var result T
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		return zero, fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}

	if validator != nil {
		if err := validator(result); err != nil {
			return zero, fmt.Errorf("%w: validation failed: %v", ErrInvalidOutput, err)
		}
	}

	return result, nil
}

// ParseOrExtract runs the two phases in order: strict parse of the full
// text, then balanced-brace extraction. Each phase stays independently
// callable for tests.
func ParseOrExtract[T any](raw string, validator Validator[T]) (T, error) {
	if result, err := ParseJSON[T](raw, validator); err == nil {
		return result, nil
	}
	return ExtractJSON[T](raw, validator)
}

// stripCodeFences removes markdown code fences (```json ... ``` or ``` ... ```).
func stripCodeFences(s string) string {
	lines := strings.Split(s, "\n")
	var result []string
	inFence := false
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") {
			inFence = !inFence
			continue
		}
		result = append(result, line)
	}
	return strings.Join(result, "\n")
}

// extractJSONBlock finds the first balanced { ... } block in the text.
func extractJSONBlock(s string) string {
	start := strings.IndexByte(s, '{')
	if start == -1 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		c := s[i]

		if escaped {
			escaped = false
			continue
		}

		if c == '\\' && inString {
			escaped = true
			continue
		}

		if c == '"' {
			inString = !inString
			continue
		}

		if inString {
			continue
		}

		switch c {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}

	return ""
}
