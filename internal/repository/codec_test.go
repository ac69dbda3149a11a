package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/zephyr/internal/domain"
)

func TestValidateIdentity(t *testing.T) {
	assert.NoError(t, ValidateIdentity("student-42"))
	assert.NoError(t, ValidateIdentity("anna@school.lv"))

	for _, bad := range []string{"", "   ", " padded", string(make([]byte, MaxIdentityLength+1))} {
		assert.ErrorIs(t, ValidateIdentity(bad), domain.ErrInvalidIdentity, "identity %q", bad)
	}
}

func TestEncodeDecodeState_PreservesRecord(t *testing.T) {
	state := domain.DefaultState()
	state.Revision = 7
	state.XP = 320
	state.Level = domain.LevelForXP(320)
	state.Stars = 12
	state.Streak = 4
	day := domain.NewDay(2024, time.March, 6)
	state.LastCreditDay = &day
	state.CompletedLevels.Add(domain.LevelKey{Subject: domain.SubjectMath, Topic: "fractions", Level: 2})
	state.Achievements.Add(domain.AchievementFirstLesson)
	state.Cosmetics.OwnedThemes.Add("ocean")
	state.Cosmetics.ActiveTheme = "ocean"
	expiry := time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)
	state.VIPExpiry = &expiry

	data, err := EncodeState(state)
	require.NoError(t, err)

	got, err := DecodeState(data)
	require.NoError(t, err)
	assert.Equal(t, int64(7), got.Revision)
	assert.Equal(t, 320, got.XP)
	assert.Equal(t, 3, got.Level)
	assert.Equal(t, day, *got.LastCreditDay)
	assert.True(t, got.CompletedLevels.Has(domain.LevelKey{Subject: domain.SubjectMath, Topic: "fractions", Level: 2}))
	assert.Equal(t, "ocean", got.Cosmetics.ActiveTheme)
	assert.True(t, expiry.Equal(*got.VIPExpiry))
}

func TestDecodeState_FillsMissingFields(t *testing.T) {
	got, err := DecodeState([]byte(`{"xp": 160, "consumables": {"streak_shield": 2}}`))
	require.NoError(t, err)

	assert.Equal(t, 2, got.Level)
	assert.Equal(t, 2, got.StreakShields, "legacy shield counter is folded in")
	assert.Equal(t, domain.DefaultThemeID, got.Cosmetics.ActiveTheme)
	assert.NotNil(t, got.CompletedLevels)
	assert.Equal(t, domain.CurrentSchemaVersion, got.SchemaVersion)
}

func TestDecodeState_Corrupt(t *testing.T) {
	_, err := DecodeState([]byte(`{"xp": "lots"`))
	assert.ErrorIs(t, err, domain.ErrCorruptState)
}

func TestEncodeState_Nil(t *testing.T) {
	_, err := EncodeState(nil)
	assert.ErrorIs(t, err, domain.ErrCorruptState)
}

func TestDecodeStoredState(t *testing.T) {
	t.Run("stored revision wins", func(t *testing.T) {
		state, err := DecodeStoredState([]byte(`{"revision":2,"xp":300}`), 9)
		require.NoError(t, err)
		assert.Equal(t, int64(9), state.Revision)
		assert.Equal(t, 300, state.XP)
	})

	t.Run("corrupt keeps revision", func(t *testing.T) {
		_, err := DecodeStoredState([]byte(`{"xp":`), 7)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrCorruptState)

		var corrupt domain.CorruptStateError
		require.True(t, errors.As(err, &corrupt))
		assert.Equal(t, int64(7), corrupt.Revision)
	})
}
