package unlock

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/osse101/zephyr/internal/domain"
)

func key(level int) domain.LevelKey {
	return domain.LevelKey{Subject: domain.SubjectMath, Topic: "fractions", Level: level}
}

func TestIsUnlocked_LinearChain(t *testing.T) {
	s := domain.DefaultState()
	MarkCompleted(s, key(1))
	MarkCompleted(s, key(3))

	tests := []struct {
		level int
		want  bool
	}{
		{1, true},
		{2, true},
		{3, false},
		{4, false},
		{5, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsUnlocked(s, key(tt.level)), "level %d", tt.level)
	}
}

func TestIsUnlocked_InOrderChain(t *testing.T) {
	s := domain.DefaultState()
	for level := 1; level <= 3; level++ {
		assert.True(t, IsUnlocked(s, key(level)))
		MarkCompleted(s, key(level))
	}
	assert.True(t, IsUnlocked(s, key(4)))
	assert.False(t, IsUnlocked(s, key(5)))
}

func TestMarkCompleted_OutOfOrderIsAccepted(t *testing.T) {
	s := domain.DefaultState()
	MarkCompleted(s, key(1))
	c := MarkCompleted(s, key(3))

	assert.True(t, c.FirstTime)
	assert.True(t, c.OutOfOrder)
	assert.True(t, s.CompletedLevels.Has(key(3)))
	assert.False(t, IsUnlocked(s, key(4)))

	// Filling the hole opens the rest of the chain
	MarkCompleted(s, key(2))
	assert.True(t, IsUnlocked(s, key(4)))
}

func TestIsUnlocked_OtherTopicsDoNotCount(t *testing.T) {
	s := domain.DefaultState()
	MarkCompleted(s, domain.LevelKey{Subject: domain.SubjectMath, Topic: "decimals", Level: 1})
	MarkCompleted(s, domain.LevelKey{Subject: domain.SubjectEnglish, Topic: "fractions", Level: 1})

	assert.False(t, IsUnlocked(s, key(2)))
}

func TestMarkCompleted_Idempotent(t *testing.T) {
	s := domain.DefaultState()

	first := MarkCompleted(s, key(1))
	assert.True(t, first.FirstTime)
	assert.True(t, first.FirstEver)
	assert.False(t, first.OutOfOrder)

	snapshot := s.CompletedLevels.Clone()
	done := LevelsDone(s, domain.SubjectMath, "fractions", 4)

	again := MarkCompleted(s, key(1))
	assert.False(t, again.FirstTime)
	assert.False(t, again.FirstEver)
	assert.Equal(t, snapshot, s.CompletedLevels)
	assert.Equal(t, done, LevelsDone(s, domain.SubjectMath, "fractions", 4))
}

func TestLevelsDone_BoundedByLevelCount(t *testing.T) {
	s := domain.DefaultState()
	for level := 1; level <= 5; level++ {
		MarkCompleted(s, key(level))
	}

	assert.Equal(t, 4, LevelsDone(s, domain.SubjectMath, "fractions", 4))
	assert.Equal(t, 5, LevelsDone(s, domain.SubjectMath, "fractions", 5))
	assert.True(t, TopicComplete(s, domain.SubjectMath, "fractions", 4))
	assert.False(t, TopicComplete(s, domain.SubjectMath, "fractions", 6))
	assert.False(t, TopicComplete(s, domain.SubjectMath, "fractions", 0))
}

func TestLevelsDone_Monotonic(t *testing.T) {
	s := domain.DefaultState()
	last := 0
	for _, level := range []int{2, 1, 2, 4, 1, 3, 3} {
		MarkCompleted(s, key(level))
		done := LevelsDone(s, domain.SubjectMath, "fractions", 4)
		assert.GreaterOrEqual(t, done, last)
		last = done
	}
	assert.Equal(t, 4, last)
}

func TestMarkStarted(t *testing.T) {
	s := domain.DefaultState()
	assert.True(t, MarkStarted(s, key(2)))
	assert.False(t, MarkStarted(s, key(2)))
	assert.True(t, s.StartedLevels.Has(key(2)))
	assert.False(t, s.CompletedLevels.Has(key(2)))
}
