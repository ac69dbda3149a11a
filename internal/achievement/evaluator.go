// Package achievement derives unlocked achievements from a progression record.
// Unlocks are inserted into the record and never removed.
package achievement

import (
	"sort"

	"github.com/osse101/zephyr/internal/domain"
)

const (
	// ExplorerTopicThreshold is how many fully completed topics a subject needs
	ExplorerTopicThreshold = 3

	// LevelThreshold unlocks level_5
	LevelThreshold = 5

	// StreakThreshold unlocks streak_7
	StreakThreshold = 7
)

// LevelCounter reports the number of levels of a topic
type LevelCounter interface {
	LevelCount(subject, topic string) int
}

// LevelCountFunc adapts a function to LevelCounter
type LevelCountFunc func(subject, topic string) int

// LevelCount implements LevelCounter
func (f LevelCountFunc) LevelCount(subject, topic string) int {
	return f(subject, topic)
}

// Evaluator checks every achievement rule against a record
type Evaluator struct {
	levels LevelCounter
}

// NewEvaluator creates an evaluator; a nil counter assumes DefaultLevelsPerTopic everywhere
func NewEvaluator(levels LevelCounter) *Evaluator {
	if levels == nil {
		levels = LevelCountFunc(func(string, string) int { return domain.DefaultLevelsPerTopic })
	}
	return &Evaluator{levels: levels}
}

// Earned returns every achievement whose condition currently holds
func (e *Evaluator) Earned(s *domain.ProgressionState) []domain.AchievementID {
	var earned []domain.AchievementID

	if s.CompletedLevels.Len() > 0 {
		earned = append(earned, domain.AchievementFirstLesson)
	}

	full := e.fullTopicsBySubject(s)
	for _, subject := range domain.Subjects {
		if full[subject] >= ExplorerTopicThreshold {
			earned = append(earned, domain.ExplorerAchievement(subject))
		}
	}

	if s.Level >= LevelThreshold {
		earned = append(earned, domain.AchievementLevel5)
	}
	if s.Streak >= StreakThreshold {
		earned = append(earned, domain.AchievementStreak7)
	}
	return earned
}

// Evaluate inserts newly earned achievements into s and returns them sorted.
// Achievements already present are left alone even if their condition no longer holds.
func (e *Evaluator) Evaluate(s *domain.ProgressionState) []domain.AchievementID {
	if s.Achievements == nil {
		s.Achievements = domain.NewSet[domain.AchievementID]()
	}

	var unlocked []domain.AchievementID
	for _, id := range e.Earned(s) {
		if s.Achievements.Add(id) {
			unlocked = append(unlocked, id)
		}
	}
	sort.Slice(unlocked, func(i, j int) bool { return unlocked[i] < unlocked[j] })
	return unlocked
}

type topicRef struct {
	subject string
	topic   string
}

func (e *Evaluator) fullTopicsBySubject(s *domain.ProgressionState) map[string]int {
	done := make(map[topicRef]int)
	for key := range s.CompletedLevels {
		ref := topicRef{subject: key.Subject, topic: key.Topic}
		if key.Level >= 1 && key.Level <= e.levels.LevelCount(key.Subject, key.Topic) {
			done[ref]++
		}
	}

	full := make(map[string]int)
	for ref, count := range done {
		if count >= e.levels.LevelCount(ref.subject, ref.topic) {
			full[ref.subject]++
		}
	}
	return full
}
