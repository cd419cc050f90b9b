package llm

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testProfile struct {
	Age  int    `json:"age"`
	Goal string `json:"goal"`
}

func TestParseJSONStrict(t *testing.T) {
	got, err := ParseJSON[testProfile](`{"age": 30, "goal": "strength"}`, nil)
	require.NoError(t, err)
	assert.Equal(t, testProfile{Age: 30, Goal: "strength"}, got)
}

func TestParseJSONStripsCodeFences(t *testing.T) {
	raw := "```json\n{\"age\": 25, \"goal\": \"endurance\"}\n```"
	got, err := ParseJSON[testProfile](raw, nil)
	require.NoError(t, err)
	assert.Equal(t, 25, got.Age)
}

func TestParseJSONRejectsSurroundingProse(t *testing.T) {
	_, err := ParseJSON[testProfile](`Here you go: {"age": 30}`, nil)
	require.ErrorIs(t, err, ErrInvalidOutput)
}

func TestParseJSONEmpty(t *testing.T) {
	_, err := ParseJSON[testProfile]("   \n  ", nil)
	require.ErrorIs(t, err, ErrInvalidOutput)
}

func TestExtractJSONFromProse(t *testing.T) {
	raw := `Sure! Based on your input I built this profile:

{"age": 30, "goal": "strength"}

Let me know if anything is off.`
	got, err := ExtractJSON[testProfile](raw, nil)
	require.NoError(t, err)
	assert.Equal(t, "strength", got.Goal)
}

func TestExtractJSONBalancesNestedBraces(t *testing.T) {
	raw := `prefix {"outer": {"inner": "{not a brace} literal"}} suffix`
	got, err := ExtractJSON[map[string]any](raw, nil)
	require.NoError(t, err)
	inner, ok := got["outer"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "{not a brace} literal", inner["inner"])
}

func TestExtractJSONHandlesEscapedQuotes(t *testing.T) {
	raw := `{"note": "he said \"go {deep}\" twice"}`
	got, err := ExtractJSON[map[string]string](raw, nil)
	require.NoError(t, err)
	assert.Equal(t, `he said "go {deep}" twice`, got["note"])
}

func TestExtractJSONNoObject(t *testing.T) {
	_, err := ExtractJSON[testProfile]("nothing structured here", nil)
	require.ErrorIs(t, err, ErrInvalidOutput)
}

func TestExtractJSONUnbalanced(t *testing.T) {
	_, err := ExtractJSON[testProfile](`{"age": 30`, nil)
	require.ErrorIs(t, err, ErrInvalidOutput)
}

func TestParseOrExtractOrder(t *testing.T) {
	// Strict parse wins when the whole text is JSON.
	got, err := ParseOrExtract[testProfile](`{"age": 1, "goal": "a"}`, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Age)

	// Falls back to extraction when prose surrounds the object.
	got, err = ParseOrExtract[testProfile](`result: {"age": 2, "goal": "b"} done`, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Age)
}

func TestValidatorRejects(t *testing.T) {
	noMinors := func(p testProfile) error {
		if p.Age < 18 {
			return errors.New("age must be 18 or older")
		}
		return nil
	}

	_, err := ParseJSON[testProfile](`{"age": 12, "goal": "strength"}`, noMinors)
	require.ErrorIs(t, err, ErrInvalidOutput)
	assert.Contains(t, err.Error(), "18 or older")

	_, err = ParseOrExtract[testProfile](`ok {"age": 12, "goal": "x"}`, noMinors)
	require.ErrorIs(t, err, ErrInvalidOutput)
}
