package catalog

import (
	"fmt"

	"github.com/osse101/zephyr/internal/domain"
)

type topicKey struct {
	subject string
	topic   string
}

// Curriculum answers shape questions about course content: which topics a
// grade has and how many levels each topic has
type Curriculum struct {
	raw    domain.Curriculum
	topics map[topicKey]domain.CurriculumTopic
	grades map[string]map[int][]domain.CurriculumTopic
}

// NewCurriculum indexes a curriculum. Topic ids must be unique within a subject.
func NewCurriculum(raw domain.Curriculum) (*Curriculum, error) {
	c := &Curriculum{
		raw:    raw,
		topics: make(map[topicKey]domain.CurriculumTopic),
		grades: make(map[string]map[int][]domain.CurriculumTopic),
	}

	for _, subject := range raw.Subjects {
		if _, dup := c.grades[subject.ID]; dup {
			return nil, fmt.Errorf(ErrMsgDuplicateSubjectFmt, subject.ID, domain.ErrInvalidSource)
		}
		c.grades[subject.ID] = make(map[int][]domain.CurriculumTopic)

		for _, grade := range subject.Grades {
			for _, topic := range grade.Topics {
				key := topicKey{subject: subject.ID, topic: topic.ID}
				if _, dup := c.topics[key]; dup {
					return nil, fmt.Errorf(ErrMsgDuplicateTopicFmt, topic.ID, subject.ID, domain.ErrInvalidSource)
				}
				c.topics[key] = topic
			}
			c.grades[subject.ID][grade.Grade] = append(c.grades[subject.ID][grade.Grade], grade.Topics...)
		}
	}
	return c, nil
}

// Subjects returns the subject ids in catalog order
func (c *Curriculum) Subjects() []string {
	ids := make([]string, 0, len(c.raw.Subjects))
	for _, subject := range c.raw.Subjects {
		ids = append(ids, subject.ID)
	}
	return ids
}

// Topics returns the ordered topics of a subject and grade
func (c *Curriculum) Topics(subject string, grade int) ([]domain.CurriculumTopic, error) {
	if grade < domain.MinGrade || grade > domain.MaxGrade {
		return nil, fmt.Errorf(ErrMsgGradeOutOfRangeFmt, grade, domain.ErrInvalidGrade)
	}
	grades, ok := c.grades[subject]
	if !ok {
		return nil, fmt.Errorf(ErrMsgUnknownTopicFmt, subject, "*", domain.ErrUnknownTopic)
	}
	return grades[grade], nil
}

// Topic looks up a topic of a subject
func (c *Curriculum) Topic(subject, topic string) (domain.CurriculumTopic, bool) {
	t, ok := c.topics[topicKey{subject: subject, topic: topic}]
	return t, ok
}

// LevelCount returns the level count of a topic, DefaultLevelsPerTopic when unknown
func (c *Curriculum) LevelCount(subject, topic string) int {
	if t, ok := c.Topic(subject, topic); ok {
		return t.LevelCount()
	}
	return domain.DefaultLevelsPerTopic
}

// ValidateLevel checks that key names an existing level of a known topic
func (c *Curriculum) ValidateLevel(key domain.LevelKey) (domain.CurriculumTopic, error) {
	t, ok := c.Topic(key.Subject, key.Topic)
	if !ok {
		return domain.CurriculumTopic{}, fmt.Errorf(ErrMsgUnknownTopicFmt, key.Subject, key.Topic, domain.ErrUnknownTopic)
	}
	if key.Level < 1 || key.Level > t.LevelCount() {
		return t, fmt.Errorf(ErrMsgLevelOutOfRangeFmt, key.Level, key.Subject, key.Topic, t.LevelCount(), domain.ErrInvalidLevel)
	}
	return t, nil
}
