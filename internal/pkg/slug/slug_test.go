package slug

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMake(t *testing.T) {
	cases := map[string]string{
		"Marina Heights":        "marina-heights",
		"  Café   Résidence! ":  "cafe-residence",
		"Жилой комплекс Север":  "zhiloy-kompleks-sever",
		"Tower #2 / Block B":    "tower-2-block-b",
		"---":                   "",
	}
	for in, want := range cases {
		assert.Equal(t, want, Make(in), "input %q", in)
	}
}

func TestUnique(t *testing.T) {
	taken := map[string]bool{"harbor": true, "harbor-2": true}
	got, err := Unique(context.Background(), "harbor", func(_ context.Context, s string) (bool, error) {
		return taken[s], nil
	})
	require.NoError(t, err)
	assert.Equal(t, "harbor-3", got)
}

func TestUniqueStaysWithinMaxLen(t *testing.T) {
	base := Make(strings.Repeat("a", 120))
	require.Len(t, base, maxLen)

	taken := map[string]bool{}
	lookup := func(_ context.Context, s string) (bool, error) { return taken[s], nil }
	for i := 0; i < 12; i++ {
		got, err := Unique(context.Background(), base, lookup)
		require.NoError(t, err)
		assert.LessOrEqual(t, len(got), maxLen, got)
		assert.False(t, taken[got], "candidate %q handed out twice", got)
		taken[got] = true
	}
	assert.True(t, taken[base])
	assert.True(t, taken[strings.Repeat("a", maxLen-2)+"-9"])
	assert.True(t, taken[strings.Repeat("a", maxLen-3)+"-12"])
}

func TestUniqueTrimsHyphenBeforeSuffix(t *testing.T) {
	base := strings.Repeat("ab-", 26) + "ab"
	require.Len(t, base, maxLen)
	got, err := Unique(context.Background(), base, func(_ context.Context, s string) (bool, error) {
		return s == base, nil
	})
	require.NoError(t, err)
	assert.LessOrEqual(t, len(got), maxLen)
	assert.NotContains(t, got, "--")
}
