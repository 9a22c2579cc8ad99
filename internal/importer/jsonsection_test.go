package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSONSection_FindsObjectAfterMarker(t *testing.T) {
	text := "Here is your plan!\n\nJSON: {\"Title\": \"Push\", \"Exercises\": [{\"name\": \"Bench\", \"sets\": 3, \"reps\": \"8-12\"}]}\n\nEnjoy {the pump}"

	ab, err := ExtractJSONSection(text)
	require.NoError(t, err)
	assert.Equal(t, "Push", ab.Title)
	require.Len(t, ab.Exercises, 1)
	sets, _ := ab.Exercises[0].Sets.Int()
	reps, _ := ab.Exercises[0].Reps.Int()
	assert.Equal(t, 3, sets)
	assert.Equal(t, 8, reps, "ranges keep their first integer")
}

func TestExtractJSONSection_ObjectOnFollowingLines(t *testing.T) {
	text := "Plan below\n  JSON:\n```json\n{\n  \"Title\": \"Legs\",\n  // main work\n  \"Exercises\": []\n}\n```\n"

	ab, err := ExtractJSONSection(text)
	require.NoError(t, err)
	assert.Equal(t, "Legs", ab.Title)
	assert.NotNil(t, ab.Exercises)
}

func TestExtractJSONSection_BraceInsideString(t *testing.T) {
	text := `JSON: {"Title": "Close } early", "Notes": "{not json}", "Exercises": [{"name": "Squat"}]} trailing }`

	ab, err := ExtractJSONSection(text)
	require.NoError(t, err)
	assert.Equal(t, "Close } early", ab.Title)
	assert.Equal(t, "{not json}", ab.Notes.String())
	require.Len(t, ab.Exercises, 1)
}

func TestExtractJSONSection_EscapedQuote(t *testing.T) {
	text := `JSON: {"Title": "The \"}\" block", "Exercises": []}`

	ab, err := ExtractJSONSection(text)
	require.NoError(t, err)
	assert.Equal(t, `The "}" block`, ab.Title)
}

func TestExtractJSONSection_NoMarker(t *testing.T) {
	_, err := ExtractJSONSection(`{"Title": "raw"}`)
	pe, ok := AsParseError(err)
	require.True(t, ok)
	assert.Equal(t, KindNoJSONSection, pe.Kind)
	assert.False(t, pe.Detected)
}

func TestExtractJSONSection_Unbalanced(t *testing.T) {
	_, err := ExtractJSONSection(`JSON: {"Title": "x", "Exercises": [`)
	pe, ok := AsParseError(err)
	require.True(t, ok)
	assert.Equal(t, KindDecodeFailed, pe.Kind)
	assert.Equal(t, DecodeCorruptedData, pe.Decode)
	assert.True(t, pe.Detected)
}

func TestExtractJSONSection_SyntaxError(t *testing.T) {
	_, err := ExtractJSONSection(`JSON: {"Title": "x", "Exercises": [],}`)
	pe, ok := AsParseError(err)
	require.True(t, ok)
	assert.Equal(t, DecodeCorruptedData, pe.Decode)
	assert.Contains(t, err.Error(), "corrupted data")
}

func TestExtractJSONSection_MissingTitle(t *testing.T) {
	_, err := ExtractJSONSection(`JSON: {"Exercises": []}`)
	pe, ok := AsParseError(err)
	require.True(t, ok)
	assert.Equal(t, DecodeMissingKey, pe.Decode)
	assert.Equal(t, "Title", pe.Key)
	assert.Equal(t, `decode failed: missing key "Title"`, err.Error())
}

func TestExtractJSONSection_MissingContent(t *testing.T) {
	_, err := ExtractJSONSection(`JSON: {"Title": "Empty"}`)
	pe, ok := AsParseError(err)
	require.True(t, ok)
	assert.Equal(t, DecodeMissingKey, pe.Decode)
	assert.Equal(t, "Exercises", pe.Key)
}

func TestExtractJSONSection_TopLevelTypeMismatch(t *testing.T) {
	_, err := ExtractJSONSection(`JSON: {"Title": 5, "Exercises": []}`)
	pe, ok := AsParseError(err)
	require.True(t, ok)
	assert.Equal(t, DecodeTypeMismatch, pe.Decode)
	assert.Equal(t, "Title", pe.Path)
	assert.Contains(t, pe.Detail, "number")
}

func TestExtractJSONSection_NestedTypeMismatch(t *testing.T) {
	_, err := ExtractJSONSection(`JSON: {"Title": "x", "Days": [{"name": "A", "exercises": [{"name": "Bench", "sets": {"n": 1}}]}]}`)
	pe, ok := AsParseError(err)
	require.True(t, ok)
	assert.Equal(t, DecodeTypeMismatch, pe.Decode)
	assert.Contains(t, pe.Path, "sets")
	assert.Contains(t, pe.Detail, "object")
}

func TestParseAuthoringJSON_Raw(t *testing.T) {
	ab, err := ParseAuthoringJSON([]byte("\xef\xbb\xbf  {\"title\": \"lowercase keys\", \"days\": [{\"name\": \"A\", \"exercises\": []}]}"))
	require.NoError(t, err)
	assert.Equal(t, "lowercase keys", ab.Title)
	assert.Len(t, ab.Days, 1)
}

func TestParseAuthoringJSON_NotJSONIsUndetected(t *testing.T) {
	_, err := ParseAuthoringJSON([]byte("BLOCK: legacy"))
	pe, ok := AsParseError(err)
	require.True(t, ok)
	assert.Equal(t, KindDecodeFailed, pe.Kind)
	assert.False(t, pe.Detected)
}

func TestExtractJSONBlock(t *testing.T) {
	cases := map[string]string{
		`x {"a": {"b": 1}} y`:     `{"a": {"b": 1}}`,
		`{"s": "}"}`:              `{"s": "}"}`,
		`{"s": "\\"} tail`:        `{"s": "\\"}`,
		`no object`:               ``,
		`{"open": true`:           ``,
		`pre } {"k": "v"} post }`: `{"k": "v"}`,
	}
	for in, want := range cases {
		assert.Equal(t, want, extractJSONBlock(in), in)
	}
}
