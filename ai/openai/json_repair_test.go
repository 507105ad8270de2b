package openai

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepairJSONMissingKeyQuote(t *testing.T) {
	broken := `{"location": "Paris", place_to_search": "restaurant"}`
	repaired := repairJSON(broken)

	var out map[string]any
	require.NoError(t, json.Unmarshal([]byte(repaired), &out))
	assert.Equal(t, "restaurant", out["place_to_search"])
}

func TestRepairJSONLeavesValidJSONAlone(t *testing.T) {
	valid := `{"location": "Paris", "minimum_star_requirement": 4.5}`
	assert.Equal(t, valid, repairJSON(valid))
}

func TestStripCodeFences(t *testing.T) {
	fenced := "```json\n{\"location\": null}\n```"
	assert.Equal(t, `{"location": null}`, stripCodeFences(fenced))

	plain := `{"location": null}`
	assert.Equal(t, plain, stripCodeFences(plain))
}
