package domain

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSkillSet(t *testing.T) {
	set := NewSkillSet(" sql", "python", "", "sql", "  ", "excel")

	assert.Equal(t, []string{"excel", "python", "sql"}, set.Items())
	assert.Equal(t, 3, set.Len())
	assert.True(t, set.Contains("python"))
	assert.False(t, set.Contains("r"))
	assert.False(t, set.IsEmpty())
	assert.True(t, SkillSet{}.IsEmpty())
}

func TestSkillSet_ItemsReturnsCopy(t *testing.T) {
	set := NewSkillSet("sql", "excel")
	items := set.Items()
	items[0] = "mutated"

	assert.Equal(t, []string{"excel", "sql"}, set.Items())
}

func TestParseSkillList(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    []string
		wantErr bool
	}{
		{name: "single quotes", raw: "['sql', 'python', 'excel']", want: []string{"excel", "python", "sql"}},
		{name: "double quotes", raw: `["power bi", "tableau"]`, want: []string{"power bi", "tableau"}},
		{name: "mixed quotes and spacing", raw: " [ 'r' ,\"go\" ] ", want: []string{"go", "r"}},
		{name: "escaped quote", raw: `['o\'reilly']`, want: []string{"o'reilly"}},
		{name: "trailing comma", raw: "['sql',]", want: []string{"sql"}},
		{name: "duplicates collapse", raw: "['sql', 'sql']", want: []string{"sql"}},
		{name: "empty items dropped", raw: "['', ' ', 'sql']", want: []string{"sql"}},
		{name: "empty list", raw: "[]", want: []string{}},
		{name: "empty string", raw: "", want: []string{}},
		{name: "nan", raw: "NaN", want: []string{}},
		{name: "none", raw: "None", want: []string{}},
		{name: "missing open bracket", raw: "'sql', 'python']", wantErr: true},
		{name: "missing close bracket", raw: "['sql', 'python'", wantErr: true},
		{name: "unterminated string", raw: "['sql", wantErr: true},
		{name: "bare word", raw: "[sql]", wantErr: true},
		{name: "missing comma", raw: "['sql' 'python']", wantErr: true},
		{name: "trailing junk", raw: "['sql'] extra", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSkillList(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrMalformedSkillList))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Items())
		})
	}
}

func TestSkillSet_RoundTrip(t *testing.T) {
	sets := []SkillSet{
		{},
		NewSkillSet("sql"),
		NewSkillSet("sql", "excel", "power bi"),
		NewSkillSet(`back\slash`, "it's", `"quoted"`),
		NewSkillSet("c++", "c#", "node.js"),
	}

	for _, set := range sets {
		t.Run(set.String(), func(t *testing.T) {
			parsed, err := ParseSkillList(set.String())
			require.NoError(t, err)
			assert.True(t, set.Equal(parsed), "round trip changed %v to %v", set.Items(), parsed.Items())
			for _, skill := range parsed.Items() {
				assert.NotEmpty(t, skill)
			}
		})
	}
}

func TestSkillSet_String(t *testing.T) {
	assert.Equal(t, "[]", SkillSet{}.String())
	assert.Equal(t, "['excel', 'sql']", NewSkillSet("sql", "excel").String())
}

func TestSkillSet_JSON(t *testing.T) {
	data, err := json.Marshal(NewSkillSet("sql", "excel"))
	require.NoError(t, err)
	assert.JSONEq(t, `["excel","sql"]`, string(data))
}

func TestParseTechnologyMap(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    map[string]string
		wantErr bool
	}{
		{
			name: "two categories",
			raw:  "{'analyst_tools': ['excel', 'tableau'], 'programming': ['python', 'sql']}",
			want: map[string]string{"excel": "analyst_tools", "tableau": "analyst_tools", "python": "programming", "sql": "programming"},
		},
		{
			name: "first category wins",
			raw:  `{"cloud": ["aws"], "other": ["aws"]}`,
			want: map[string]string{"aws": "cloud"},
		},
		{name: "empty", raw: "", want: map[string]string{}},
		{name: "empty braces", raw: "{}", want: map[string]string{}},
		{name: "missing colon", raw: "{'cloud' ['aws']}", wantErr: true},
		{name: "not a mapping", raw: "['aws']", wantErr: true},
		{name: "unterminated list", raw: "{'cloud': ['aws'", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTechnologyMap(tt.raw)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMalformedSkillList)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
