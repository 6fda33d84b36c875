package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringListValue(t *testing.T) {
	v, err := StringList(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)

	v, err = StringList{"a", "b"}.Value()
	require.NoError(t, err)
	assert.Equal(t, `["a","b"]`, v)
}

func TestStringListScan(t *testing.T) {
	tests := []struct {
		name string
		src  any
		want StringList
	}{
		{"nil", nil, StringList{}},
		{"bytes", []byte(`["x"]`), StringList{"x"}},
		{"string", `["x","y"]`, StringList{"x", "y"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var l StringList
			require.NoError(t, l.Scan(tt.src))
			assert.Equal(t, tt.want, l)
		})
	}

	var l StringList
	assert.Error(t, l.Scan(42))
	assert.Error(t, l.Scan("not json"))
}

func TestStringListContains(t *testing.T) {
	l := StringList{"first_place", "social_5"}
	assert.True(t, l.Contains("social_5"))
	assert.False(t, l.Contains("foodie_10"))
}

func TestConnectionStrings(t *testing.T) {
	cfg := testDBConfig()
	assert.Equal(t, "host=db user=app password=pw dbname=connectmap port=5432 sslmode=disable", DSN(cfg))
	assert.Equal(t, "postgres://app:pw@db:5432/connectmap?sslmode=disable", URL(cfg))
}
