package achievement

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/osse101/zephyr/internal/domain"
)

func completeTopic(s *domain.ProgressionState, subject, topic string, levels int) {
	for level := 1; level <= levels; level++ {
		s.CompletedLevels.Add(domain.LevelKey{Subject: subject, Topic: topic, Level: level})
	}
}

func TestEvaluate_FirstLesson(t *testing.T) {
	e := NewEvaluator(nil)
	s := domain.DefaultState()
	assert.Empty(t, e.Evaluate(s))

	s.CompletedLevels.Add(domain.LevelKey{Subject: domain.SubjectMath, Topic: "a", Level: 1})
	assert.Equal(t, []domain.AchievementID{domain.AchievementFirstLesson}, e.Evaluate(s))
	assert.Empty(t, e.Evaluate(s), "re-evaluation is a no-op")
}

func TestEvaluate_Explorer(t *testing.T) {
	e := NewEvaluator(nil)
	s := domain.DefaultState()

	completeTopic(s, domain.SubjectEnglish, "grammar", 4)
	completeTopic(s, domain.SubjectEnglish, "reading", 4)
	completeTopic(s, domain.SubjectEnglish, "spelling", 3) // one level short
	completeTopic(s, domain.SubjectMath, "fractions", 4)

	unlocked := e.Evaluate(s)
	assert.NotContains(t, unlocked, domain.ExplorerAchievement(domain.SubjectEnglish))

	completeTopic(s, domain.SubjectEnglish, "spelling", 4)
	unlocked = e.Evaluate(s)
	assert.Equal(t, []domain.AchievementID{"english_explorer"}, unlocked)
	assert.False(t, s.Achievements.Has(domain.ExplorerAchievement(domain.SubjectMath)))
}

func TestEvaluate_ExplorerUsesTopicLevelCount(t *testing.T) {
	counts := LevelCountFunc(func(subject, topic string) int {
		if topic == "long" {
			return 5
		}
		return 4
	})
	e := NewEvaluator(counts)
	s := domain.DefaultState()

	completeTopic(s, domain.SubjectLatvian, "a", 4)
	completeTopic(s, domain.SubjectLatvian, "b", 4)
	completeTopic(s, domain.SubjectLatvian, "long", 4)
	assert.NotContains(t, e.Evaluate(s), domain.ExplorerAchievement(domain.SubjectLatvian))

	completeTopic(s, domain.SubjectLatvian, "long", 5)
	assert.Contains(t, e.Evaluate(s), domain.ExplorerAchievement(domain.SubjectLatvian))
}

func TestEvaluate_LevelAndStreak(t *testing.T) {
	e := NewEvaluator(nil)
	s := domain.DefaultState()
	s.XP = 600
	s.Level = domain.LevelForXP(s.XP)
	s.Streak = 7

	assert.Equal(t, []domain.AchievementID{domain.AchievementLevel5, domain.AchievementStreak7}, e.Evaluate(s))
}

func TestEvaluate_Monotonic(t *testing.T) {
	e := NewEvaluator(nil)
	s := domain.DefaultState()
	s.Streak = 7
	e.Evaluate(s)
	assert.True(t, s.Achievements.Has(domain.AchievementStreak7))

	s.Streak = 1
	assert.Empty(t, e.Evaluate(s))
	assert.True(t, s.Achievements.Has(domain.AchievementStreak7), "achievements never shrink")
	assert.NotContains(t, e.Earned(s), domain.AchievementStreak7)
}
