// Package jsonio decodes structured payloads out of LLM responses, which
// arrive as imperfect JSON more often than not.
package jsonio

import (
	"encoding/json"
	"fmt"
	"strings"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	hjson "github.com/hjson/hjson-go/v4"
)

// Decode unmarshals input into target, trying progressively more lenient
// strategies:
//
//  1. strict JSON (after stripping markdown code fences)
//  2. repaired JSON — unquoted keys, trailing commas, unclosed brackets
//  3. Hjson, the most permissive
//
// The returned error is the strict-parse error, so the caller can feed it
// back to the model in a repair re-request.
func Decode(input string, target interface{}) error {
	stripped := stripFences(input)

	strictErr := json.Unmarshal([]byte(stripped), target)
	if strictErr == nil {
		return nil
	}

	if repaired, err := jsonrepair.RepairJSON(stripped); err == nil {
		if json.Unmarshal([]byte(repaired), target) == nil {
			return nil
		}
	}

	if hjson.Unmarshal([]byte(stripped), target) == nil {
		return nil
	}

	return fmt.Errorf("response is not parseable JSON: %w", strictErr)
}

// stripFences removes a surrounding markdown code fence, with or without a
// language tag.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```")
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		// Drop the language tag line ("json", "hjson", ...).
		first := strings.TrimSpace(s[:idx])
		if len(first) <= 8 && !strings.ContainsAny(first, "{[") {
			s = s[idx+1:]
		}
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
