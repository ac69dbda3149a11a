package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/zephyr/internal/domain"
	"github.com/osse101/zephyr/internal/economy"
)

func TestLoadShopCatalog_Default(t *testing.T) {
	c, err := LoadShopCatalog("")
	require.NoError(t, err)

	prices := map[domain.ConsumableKind]int{}
	for _, item := range c.Consumables {
		prices[item.Kind] = item.Cost
	}
	assert.Equal(t, map[domain.ConsumableKind]int{
		domain.ConsumableStreakShield: 100,
		domain.ConsumableXPBoost:      75,
		domain.ConsumableHintToken:    40,
		domain.ConsumableChatToken:    30,
	}, prices)
	assert.Len(t, c.Titles, 6)
	assert.Len(t, c.Themes, 5)

	_, err = economy.NewShop(c)
	assert.NoError(t, err, "default catalog builds a shop")
}

func TestLoadShopCatalog_RejectsUnknownFieldsAndBadValues(t *testing.T) {
	dir := t.TempDir()

	unknown := filepath.Join(dir, "unknown.json")
	require.NoError(t, os.WriteFile(unknown, []byte(`{"pets": []}`), 0o600))
	_, err := LoadShopCatalog(unknown)
	assert.ErrorIs(t, err, domain.ErrInvalidSource)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"vip_plans": [{"id": "x", "name": "X", "cost_stars": 0, "duration_days": 7}]}`), 0o600))
	_, err = LoadShopCatalog(bad)
	assert.ErrorIs(t, err, domain.ErrInvalidSource)

	_, err = LoadShopCatalog(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestLoadCurriculum_Default(t *testing.T) {
	c, err := LoadCurriculum("")
	require.NoError(t, err)

	assert.Equal(t, []string{domain.SubjectMath, domain.SubjectEnglish, domain.SubjectLatvian}, c.Subjects())

	topics, err := c.Topics(domain.SubjectMath, 1)
	require.NoError(t, err)
	require.NotEmpty(t, topics)
	assert.Equal(t, "numbers_1_10", topics[0].ID)
	assert.Equal(t, 30, topics[0].XP)

	assert.Equal(t, 4, c.LevelCount(domain.SubjectMath, "addition_1"))
	assert.Equal(t, 5, c.LevelCount(domain.SubjectMath, "decimals"))
	assert.Equal(t, domain.DefaultLevelsPerTopic, c.LevelCount(domain.SubjectMath, "unknown"))
}

func TestCurriculum_Topics(t *testing.T) {
	c, err := LoadCurriculum("")
	require.NoError(t, err)

	_, err = c.Topics(domain.SubjectMath, 13)
	assert.ErrorIs(t, err, domain.ErrInvalidGrade)

	_, err = c.Topics("history", 1)
	assert.ErrorIs(t, err, domain.ErrUnknownTopic)

	topics, err := c.Topics(domain.SubjectLatvian, 12)
	require.NoError(t, err)
	assert.Empty(t, topics)
}

func TestCurriculum_ValidateLevel(t *testing.T) {
	c, err := LoadCurriculum("")
	require.NoError(t, err)

	topic, err := c.ValidateLevel(domain.LevelKey{Subject: domain.SubjectEnglish, Topic: "alphabet", Level: 4})
	require.NoError(t, err)
	assert.Equal(t, 40, topic.XP)

	_, err = c.ValidateLevel(domain.LevelKey{Subject: domain.SubjectEnglish, Topic: "alphabet", Level: 5})
	assert.ErrorIs(t, err, domain.ErrInvalidLevel)

	_, err = c.ValidateLevel(domain.LevelKey{Subject: domain.SubjectEnglish, Topic: "alphabet", Level: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidLevel)

	_, err = c.ValidateLevel(domain.LevelKey{Subject: "history", Topic: "rome", Level: 1})
	assert.ErrorIs(t, err, domain.ErrUnknownTopic)
}

func TestNewCurriculum_RejectsDuplicateTopics(t *testing.T) {
	raw := domain.Curriculum{Subjects: []domain.CurriculumSubject{{
		ID: "math",
		Grades: []domain.CurriculumGrade{
			{Grade: 1, Topics: []domain.CurriculumTopic{{ID: "a", XP: 10}}},
			{Grade: 2, Topics: []domain.CurriculumTopic{{ID: "a", XP: 20}}},
		},
	}}}

	_, err := NewCurriculum(raw)
	assert.ErrorIs(t, err, domain.ErrInvalidSource)
}

func TestLoadCurriculum_SchemaRejectsOutOfRange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "curriculum.json")
	doc := `{"subjects": [{"id": "math", "grades": [{"grade": 13, "topics": [{"id": "a", "xp": 10}]}]}]}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	_, err := LoadCurriculum(path)
	require.ErrorIs(t, err, domain.ErrInvalidSource)
	assert.Contains(t, err.Error(), "/subjects/0/grades/0/grade")
}
