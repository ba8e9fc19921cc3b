package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-skillcheck/internal/entities"
)

func TestMatchItemID(t *testing.T) {
	items := []*entities.CheckItem{
		{ID: "3f2a9c10-aaaa"},
		{ID: "3f2a9c10"},
		{ID: "3f7b0011-bbbb"},
		{ID: "91cc4e2d-cccc"},
	}

	testCases := []struct {
		name    string
		prefix  string
		want    string
		wantErr string
	}{
		{name: "exact match wins over longer ids", prefix: "3f2a9c10", want: "3f2a9c10"},
		{name: "full id", prefix: "91cc4e2d-cccc", want: "91cc4e2d-cccc"},
		{name: "unique prefix", prefix: "91", want: "91cc4e2d-cccc"},
		{name: "unique longer prefix", prefix: "3f7", want: "3f7b0011-bbbb"},
		{name: "ambiguous prefix", prefix: "3f", wantErr: `item id "3f" is ambiguous (3 matches)`},
		{name: "no match passes through", prefix: "zz", want: "zz"},
		{name: "empty passes through", prefix: "", want: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := matchItemID(items, tc.prefix)
			if tc.wantErr != "" {
				require.Error(t, err)
				assert.Equal(t, tc.wantErr, err.Error())
				assert.Empty(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestMatchItemID_NoItems(t *testing.T) {
	got, err := matchItemID(nil, "3f")
	require.NoError(t, err)
	assert.Equal(t, "3f", got)
}
