// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package openai

// repairJSON attempts to fix common JSON formatting issues in LLM responses.
// It specifically handles missing opening quotes before keys in JSON objects,
// e.g. `, location":` becomes `, "location":`.
func repairJSON(s string) string {
	result := []rune(s)
	fixed := make([]rune, 0, len(result)+16)

	i := 0
	for i < len(result) {
		ch := result[i]

		if ch != '{' && ch != ',' {
			fixed = append(fixed, ch)
			i++
			continue
		}

		fixed = append(fixed, ch)
		i++

		// Skip whitespace after the opening brace or comma
		for i < len(result) && (result[i] == ' ' || result[i] == '\n' || result[i] == '\t') {
			fixed = append(fixed, result[i])
			i++
		}

		// A bare identifier here means the key lost its opening quote
		if i >= len(result) || result[i] == '"' || !isIdentRune(result[i]) {
			continue
		}

		keyStart := i
		for i < len(result) && (isIdentRune(result[i]) || result[i] == ' ') {
			i++
		}

		if i+1 < len(result) && result[i] == '"' && result[i+1] == ':' {
			// Unquoted key followed by `":`, so insert the missing quote
			fixed = append(fixed, '"')
			fixed = append(fixed, result[keyStart:i]...)
		} else {
			// Not a key; copy what was skipped unchanged
			fixed = append(fixed, result[keyStart:i]...)
		}
	}

	return string(fixed)
}

// isIdentRune returns true for runes that can appear in a JSON key name.
func isIdentRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_'
}
