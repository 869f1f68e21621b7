package parsers

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestJSONParser_Parse_ValidInput(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []RawCard
	}{
		{
			name:  "single card",
			input: `[{"id": "a", "name": "Shock", "type_line": "Instant", "set_type": "core"}]`,
			expected: []RawCard{
				{ID: "a", Name: "Shock", TypeLine: "Instant", SetType: "core", Index: 1},
			},
		},
		{
			name:     "empty array",
			input:    "[]",
			expected: []RawCard{},
		},
		{
			name:  "unknown fields ignored",
			input: `[{"id": "a", "name": "Shock", "type_line": "Instant", "prices": {"usd": "0.10"}, "games": ["paper"]}]`,
			expected: []RawCard{
				{ID: "a", Name: "Shock", TypeLine: "Instant", Index: 1},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parser := &JSONParser{}
			result, err := parser.Parse(strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestJSONParser_Parse_AllFields(t *testing.T) {
	input := `[{
		"id": "f6a4c8a5-2b2a-4d6a-9a4f-1d3c2e1b0a99",
		"name": "Delver of Secrets // Insectile Aberration",
		"layout": "transform",
		"set_type": "expansion",
		"scryfall_uri": "https://scryfall.com/card/isd/51/delver-of-secrets",
		"card_faces": [
			{"name": "Delver of Secrets", "type_line": "Creature — Human Wizard", "oracle_text": "At the beginning of your upkeep...", "power": "1", "toughness": "1", "mana_cost": "{U}"},
			{"name": "Insectile Aberration", "type_line": "Creature — Human Insect", "oracle_text": "Flying", "power": "3", "toughness": "2", "mana_cost": ""}
		]
	}]`

	parser := &JSONParser{}
	result, err := parser.Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, result, 1)

	card := result[0]
	assert.Equal(t, "transform", card.Layout)
	assert.Equal(t, "expansion", card.SetType)
	assert.Empty(t, card.TypeLine)
	assert.Nil(t, card.Power)
	require.Len(t, card.CardFaces, 2)
	assert.Equal(t, "Delver of Secrets", card.CardFaces[0].Name)
	assert.Equal(t, strPtr("1"), card.CardFaces[0].Power)
	assert.Equal(t, strPtr("Flying"), card.CardFaces[1].OracleText)
	assert.Equal(t, strPtr(""), card.CardFaces[1].ManaCost)
}

func TestJSONParser_Parse_InvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "not an array", input: `{"id": "a"}`},
		{name: "truncated", input: `[{"id": "a"`},
		{name: "wrong field type", input: `[{"id": 7}]`},
		{name: "empty input", input: ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parser := &JSONParser{}
			_, err := parser.Parse(strings.NewReader(tt.input))
			require.Error(t, err)
		})
	}
}

func TestJSONParser_Stream_StopsOnCallbackError(t *testing.T) {
	input := `[{"id": "a", "name": "One"}, {"id": "b", "name": "Two"}, {"id": "c", "name": "Three"}]`
	stop := errors.New("stop")

	var seen []string
	err := (&JSONParser{}).Stream(strings.NewReader(input), func(c RawCard) error {
		seen = append(seen, c.Name)
		if c.Index == 2 {
			return stop
		}
		return nil
	})

	require.ErrorIs(t, err, stop)
	assert.Equal(t, []string{"One", "Two"}, seen)
}

func TestJSONLinesParser_Parse(t *testing.T) {
	input := "{\"id\": \"a\", \"name\": \"Shock\"}\n\n{\"id\": \"b\", \"name\": \"Opt\"}\n"

	result, err := (&JSONLinesParser{}).Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, "Opt", result[1].Name)
	assert.Equal(t, 2, result[1].Index)
}

func TestJSONLinesParser_Parse_Errors(t *testing.T) {
	input := "{\"id\": \"a\"}\nnot json\n"

	_, err := (&JSONLinesParser{}).Parse(strings.NewReader(input))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestForFormat(t *testing.T) {
	assert.IsType(t, &JSONParser{}, ForFormat("json"))
	assert.IsType(t, &JSONParser{}, ForFormat("JSON"))
	assert.IsType(t, &JSONLinesParser{}, ForFormat("jsonl"))
	assert.IsType(t, &JSONLinesParser{}, ForFormat("ndjson"))
	assert.Nil(t, ForFormat("csv"))
}

func TestForFile(t *testing.T) {
	assert.IsType(t, &JSONParser{}, ForFile("default-cards-20240101.json"))
	assert.IsType(t, &JSONLinesParser{}, ForFile("cards.JSONL"))
	assert.Nil(t, ForFile("cards.txt"))
}
