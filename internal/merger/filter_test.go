package merger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"birmerge/internal/document"
	"birmerge/internal/merger"
)

func decode(t *testing.T, s string) document.Tree {
	t.Helper()
	tree, err := document.Decode([]byte(s))
	require.NoError(t, err)
	return tree
}

func bdbs(t *testing.T, tree document.Tree) []any {
	t.Helper()
	segs, ok := document.Array(tree, "response", "segments")
	require.True(t, ok)
	out := make([]any, 0, len(segs))
	for _, seg := range segs {
		v, _ := document.Lookup(seg, "bdb")
		out = append(out, v)
	}
	return out
}

func TestFilter_KeepsOnlyNonEmptyIdentifiers(t *testing.T) {
	result := decode(t, `{"response": {"id": "r1", "segments": [
		{"bdb": "a"},
		{"bdb": ""},
		{"bdb": null},
		{"other": 1},
		{"bdb": "b"},
		{"bdb": []},
		{"bdb": 0},
		{"bdb": 7}
	]}, "version": "1.0"}`)

	filtered, dropped := merger.Filter(result)
	assert.Equal(t, 5, dropped)
	assert.Len(t, bdbs(t, filtered), 3)
	assert.Equal(t, "a", bdbs(t, filtered)[0])
	assert.Equal(t, "b", bdbs(t, filtered)[1])

	v, _ := document.Lookup(filtered, "version")
	assert.Equal(t, "1.0", v, "other keys are preserved")
	v, _ = document.Lookup(filtered, "response", "id")
	assert.Equal(t, "r1", v)
}

func TestFilter_IsIdempotent(t *testing.T) {
	result := decode(t, `{"response": {"segments": [{"bdb": ""}, {"bdb": "x"}, {"bdb": "y"}]}}`)

	once, dropped := merger.Filter(result)
	assert.Equal(t, 1, dropped)
	twice, dropped := merger.Filter(once)
	assert.Equal(t, 0, dropped)

	a, err := document.Encode(once)
	require.NoError(t, err)
	b, err := document.Encode(twice)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func TestFilter_AllDropped(t *testing.T) {
	filtered, dropped := merger.Filter(decode(t, `{"response": {"segments": [{"bdb": ""}, {"bdb": ""}]}}`))
	assert.Equal(t, 2, dropped)

	segs, ok := document.Array(filtered, "response", "segments")
	require.True(t, ok)
	assert.Empty(t, segs)

	out, err := document.Encode(filtered)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"segments": []`)
}

func TestFilter_WithoutSegmentsIsUnchanged(t *testing.T) {
	for _, doc := range []string{
		`{"other": true}`,
		`{"response": {}}`,
		`{"response": {"segments": "none"}}`,
	} {
		in := decode(t, doc)
		out, dropped := merger.Filter(in)
		assert.Equal(t, 0, dropped)
		assert.Equal(t, in, out)
	}
}

func TestFilter_DoesNotModifyInput(t *testing.T) {
	in := decode(t, `{"response": {"segments": [{"bdb": ""}, {"bdb": "x"}]}}`)
	_, _ = merger.Filter(in)
	assert.Len(t, bdbs(t, in), 2)
}
