// Package unlock derives level access and topic completion from the set of
// completed levels. Every topic is a strictly linear chain of levels.
package unlock

import "github.com/osse101/zephyr/internal/domain"

// Completion describes the effect of MarkCompleted
type Completion struct {
	// FirstTime is true when the level was not completed before
	FirstTime bool
	// FirstEver is true when this is the student's first completed level
	FirstEver bool
	// OutOfOrder is true when the previous level of the topic is not completed
	OutOfOrder bool
}

// IsUnlocked reports whether key may be entered: level 1 always, later levels
// once every earlier level of the same topic is completed. For completions
// recorded in order this is the same as requiring the previous level; a chain
// with a hole stays locked past the hole.
func IsUnlocked(s *domain.ProgressionState, key domain.LevelKey) bool {
	for prev := key.Previous(); prev.Level >= 1; prev = prev.Previous() {
		if !s.CompletedLevels.Has(prev) {
			return false
		}
	}
	return true
}

// LevelsDone counts completed levels 1..total of a topic
func LevelsDone(s *domain.ProgressionState, subject, topic string, total int) int {
	done := 0
	for level := 1; level <= total; level++ {
		if s.CompletedLevels.Has(domain.LevelKey{Subject: subject, Topic: topic, Level: level}) {
			done++
		}
	}
	return done
}

// TopicComplete reports whether every level 1..total of a topic is completed
func TopicComplete(s *domain.ProgressionState, subject, topic string, total int) bool {
	return total > 0 && LevelsDone(s, subject, topic, total) == total
}

// MarkStarted records that key was opened and reports whether it was new
func MarkStarted(s *domain.ProgressionState, key domain.LevelKey) bool {
	return s.StartedLevels.Add(key)
}

// MarkCompleted records key as completed. Completing a level whose predecessor
// is not completed is accepted and flagged as out of order.
func MarkCompleted(s *domain.ProgressionState, key domain.LevelKey) Completion {
	c := Completion{
		FirstEver:  s.CompletedLevels.Len() == 0,
		OutOfOrder: !IsUnlocked(s, key),
	}
	c.FirstTime = s.CompletedLevels.Add(key)
	if !c.FirstTime {
		c.FirstEver = false
		c.OutOfOrder = false
	}
	return c
}
