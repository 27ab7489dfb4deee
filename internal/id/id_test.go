package id

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_Uniqueness(t *testing.T) {
	ids := make(map[string]bool)
	count := 1000

	for i := 0; i < count; i++ {
		id, err := Generate("test")
		require.NoError(t, err)
		assert.False(t, ids[id], "ID should be unique: %s", id)
		ids[id] = true
	}

	assert.Len(t, ids, count)
}

func TestGenerate_Format(t *testing.T) {
	id, err := Generate("car")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(id, "car-"))
	assert.Len(t, id, len("car-")+21)
}

func TestValid(t *testing.T) {
	id := MustGenerate("bkg")

	tests := []struct {
		name   string
		prefix string
		id     string
		want   bool
	}{
		{"generated id", "bkg", id, true},
		{"wrong prefix", "car", id, false},
		{"empty", "car", "", false},
		{"no separator", "car", "carV1StGXR8_Z5jdHi6BmyT", false},
		{"too short", "car", "car-abc", false},
		{"illegal characters", "car", "car-!!!!!!!!!!!!!!!!!!!!!", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Valid(tt.prefix, tt.id))
		})
	}
}
