package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunk(t *testing.T) {
	tests := []struct {
		name  string
		n     int
		size  int
		sizes []int
	}{
		{name: "Empty input", n: 0, size: 450, sizes: nil},
		{name: "Single partial group", n: 10, size: 450, sizes: []int{10}},
		{name: "Exact multiple", n: 900, size: 450, sizes: []int{450, 450}},
		{name: "Remainder group", n: 1000, size: 450, sizes: []int{450, 450, 100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := make([]int, tt.n)
			for i := range items {
				items[i] = i
			}

			groups := Chunk(items, tt.size)

			var sizes []int
			next := 0
			for _, g := range groups {
				sizes = append(sizes, len(g))
				for _, v := range g {
					assert.Equal(t, next, v)
					next++
				}
			}
			assert.Equal(t, tt.sizes, sizes)
		})
	}
}

func TestSplit(t *testing.T) {
	collection, id, err := Split("users/u1/materials/m1/chat/c1")
	require.NoError(t, err)
	assert.Equal(t, "users/u1/materials/m1/chat", collection)
	assert.Equal(t, "c1", id)

	for _, bad := range []string{"", "users", "users/u1/materials", "users//x/y"} {
		_, _, err := Split(bad)
		assert.Error(t, err, bad)
	}
}

func TestCompare(t *testing.T) {
	assert.Equal(t, 0, Compare(int64(5), float64(5)))
	assert.Equal(t, -1, Compare(1, 2.5))
	assert.Equal(t, 1, Compare("b", "a"))
	assert.Equal(t, -1, Compare(nil, false))
	assert.Equal(t, -1, Compare(false, true))
	assert.Equal(t, -1, Compare(true, 0))
	assert.Equal(t, -1, Compare(99, "1"))
}

func TestApply(t *testing.T) {
	docs := []Document{
		{ID: "a", Data: map[string]any{"date": "d1", "time": "09:00"}},
		{ID: "b", Data: map[string]any{"date": "d1", "time": "07:30"}},
		{ID: "c", Data: map[string]any{"date": "d2", "time": "08:00"}},
		{ID: "d", Data: map[string]any{"date": "d1"}},
	}

	got := Apply(docs, Query{Where: []Filter{{Field: "date", Value: "d1"}}, OrderBy: "time"})

	ids := make([]string, 0, len(got))
	for _, d := range got {
		ids = append(ids, d.ID)
	}
	assert.Equal(t, []string{"b", "a"}, ids)
}

func TestMergeData(t *testing.T) {
	dst := map[string]any{
		"keep":   1,
		"nested": map[string]any{"x": 1, "y": 2},
		"list":   []any{1, 2},
	}
	src := map[string]any{
		"nested": map[string]any{"y": 3},
		"list":   []any{9},
		"added":  true,
	}

	out := MergeData(dst, src)

	assert.Equal(t, map[string]any{
		"keep":   1,
		"nested": map[string]any{"x": 1, "y": 3},
		"list":   []any{9},
		"added":  true,
	}, out)

	assert.Equal(t, map[string]any{"a": 1}, MergeData(nil, map[string]any{"a": 1}))
}

func TestDocument_DataTo(t *testing.T) {
	doc := Document{Path: "users/u1", Data: map[string]any{"name": "Asha", "streak": float64(4)}}

	var out struct {
		Name   string `json:"name"`
		Streak int    `json:"streak"`
	}
	require.NoError(t, doc.DataTo(&out))
	assert.Equal(t, "Asha", out.Name)
	assert.Equal(t, 4, out.Streak)
}
