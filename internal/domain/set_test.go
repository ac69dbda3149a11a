package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSet_AddIsIdempotent(t *testing.T) {
	s := NewSet[string]()
	assert.True(t, s.Add("a"))
	assert.False(t, s.Add("a"))
	assert.Equal(t, 1, s.Len())
	assert.True(t, s.Has("a"))
}

func TestSet_CloneIsIndependent(t *testing.T) {
	s := NewSet("a")
	c := s.Clone()
	c.Add("b")
	assert.False(t, s.Has("b"))

	var nilSet Set[string]
	assert.NotNil(t, nilSet.Clone())
}

func TestSet_JSONIsSorted(t *testing.T) {
	s := NewSet(
		LevelKey{Subject: "math", Topic: "fractions", Level: 2},
		LevelKey{Subject: "math", Topic: "addition", Level: 10},
		LevelKey{Subject: "math", Topic: "addition", Level: 1},
	)

	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"subject":"math","topic":"addition","level":1},
		{"subject":"math","topic":"addition","level":10},
		{"subject":"math","topic":"fractions","level":2}
	]`, string(data))

	var decoded Set[LevelKey]
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, s, decoded)
}

func TestSet_UnmarshalDropsDuplicates(t *testing.T) {
	var s Set[AchievementID]
	require.NoError(t, json.Unmarshal([]byte(`["level_5","level_5","first_lesson"]`), &s))
	assert.Equal(t, 2, s.Len())
}
