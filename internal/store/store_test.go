package store

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeItems(t *testing.T) {
	cases := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "trims and drops empties",
			in:   []string{" azumarill ", "", "  ", "garchomp"},
			want: []string{"azumarill", "garchomp"},
		},
		{
			name: "dedupes keeping first position",
			in:   []string{"a", "b", "a", "c", "b"},
			want: []string{"a", "b", "c"},
		},
		{
			name: "empty input",
			in:   nil,
			want: []string{},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, NormalizeItems(tc.in))
		})
	}
}

func TestBoxItemsPreservePositions(t *testing.T) {
	items := boxItems([]string{"a", "b", "c"})
	require.Len(t, items, 3)
	for i, it := range items {
		require.Equal(t, i, it.Position)
	}
}
