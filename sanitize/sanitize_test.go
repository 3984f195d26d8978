package sanitize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type level string

type inner struct {
	Label string     `json:"label"`
	When  *time.Time `json:"when"`
	Skip  *int       `json:"skip,omitempty"`
}

type Audit struct {
	Editor string `json:"editor,omitempty"`
}

type sample struct {
	Audit
	Name     string         `json:"name"`
	Level    level          `json:"level"`
	Count    int            `json:"count,omitempty"`
	Tags     []string       `json:"tags"`
	Inner    *inner         `json:"inner"`
	Missing  *inner         `json:"missing"`
	Extra    map[string]any `json:"extra"`
	Secret   string         `json:"-"`
	At       time.Time      `json:"at"`
	internal string
}

func TestValue_StripsNilFields(t *testing.T) {
	when := time.Date(2024, 3, 10, 8, 30, 0, 0, time.UTC)
	in := sample{
		Audit: Audit{Editor: "me"},
		Name:  "anatomy",
		Level: "hard",
		Inner: &inner{Label: "x", When: &when},
		Extra: map[string]any{
			"keep":  1,
			"drop":  nil,
			"deep":  map[string]any{"gone": nil, "stay": "yes"},
			"items": []any{nil, "a", map[string]any{"n": nil}},
		},
		Secret:   "hidden",
		At:       when,
		internal: "x",
	}

	out, err := Document(in)
	require.NoError(t, err)

	assert.Equal(t, "me", out["editor"])
	assert.Equal(t, "anatomy", out["name"])
	assert.Equal(t, "hard", out["level"])
	assert.NotContains(t, out, "count")
	assert.NotContains(t, out, "tags")
	assert.NotContains(t, out, "missing")
	assert.NotContains(t, out, "Secret")
	assert.NotContains(t, out, "internal")
	assert.Equal(t, "2024-03-10T08:30:00.000Z", out["at"])

	innerOut := out["inner"].(map[string]any)
	assert.Equal(t, map[string]any{"label": "x", "when": "2024-03-10T08:30:00.000Z"}, innerOut)

	extra := out["extra"].(map[string]any)
	assert.NotContains(t, extra, "drop")
	assert.Equal(t, map[string]any{"stay": "yes"}, extra["deep"])
	assert.Equal(t, []any{"a", map[string]any{}}, extra["items"])

	assertNoNil(t, out)
}

func TestValue_Idempotent(t *testing.T) {
	when := time.Date(2023, 12, 31, 23, 59, 59, 123000000, time.FixedZone("IST", 5*3600+1800))
	score := 7.5
	values := []any{
		nil,
		42,
		"plain",
		level("named"),
		[]int{1, 2, 3},
		[]byte("raw"),
		[2]string{"a", "b"},
		when,
		&when,
		map[int]string{1: "one"},
		map[string]any{"a": nil, "b": []any{nil, &score}},
		sample{Name: "n", Inner: &inner{Label: "l"}, At: when},
		[]*inner{nil, {Label: "kept"}},
	}

	for _, v := range values {
		once := Value(v)
		twice := Value(once)
		assert.Equal(t, once, twice, "value %#v", v)
		assertNoNil(t, once)
	}
}

func TestValue_Time(t *testing.T) {
	local := time.Date(2024, 1, 5, 10, 0, 0, 0, time.FixedZone("X", 2*3600))
	assert.Equal(t, "2024-01-05T08:00:00.000Z", Value(local))
	assert.Equal(t, "2024-01-05T08:00:00.000Z", FormatTime(local))
}

func TestDocument_RejectsScalars(t *testing.T) {
	_, err := Document("nope")
	assert.ErrorIs(t, err, ErrNotDocument)

	_, err = Document(nil)
	assert.ErrorIs(t, err, ErrNotDocument)
}

func assertNoNil(t *testing.T, v any) {
	t.Helper()
	switch tv := v.(type) {
	case map[string]any:
		for k, child := range tv {
			assert.NotNil(t, child, "field %q is nil", k)
			assertNoNil(t, child)
		}
	case []any:
		for i, child := range tv {
			assert.NotNil(t, child, "index %d is nil", i)
			assertNoNil(t, child)
		}
	}
}
