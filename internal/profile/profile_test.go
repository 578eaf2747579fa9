package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alixocracy/jast/internal/store"
)

func newTestProfile(t *testing.T) (*Profile, *store.Store) {
	t.Helper()
	s, err := store.NewMemory()
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return New(s), s
}

func TestOnboarding(t *testing.T) {
	p, s := newTestProfile(t)
	assert.False(t, p.Onboarded())
	assert.Equal(t, "", p.Name())

	assert.ErrorIs(t, p.CompleteOnboarding("   "), ErrEmptyName)
	assert.False(t, p.Onboarded())

	require.NoError(t, p.CompleteOnboarding("  Mira "))
	assert.True(t, p.Onboarded())
	assert.Equal(t, "Mira", p.Name())

	raw, err := s.Get(OnboardingKey)
	require.NoError(t, err)
	assert.Equal(t, "true", raw)
	raw, err = s.Get(NameKey)
	require.NoError(t, err)
	assert.Equal(t, "Mira", raw, "stored as a plain string")
}

func TestAffirmationAvoidsRepeat(t *testing.T) {
	p, _ := newTestProfile(t)
	seq := []int{0, 0, 1}
	p.rand = func(int) int {
		n := seq[0]
		seq = seq[1:]
		return n
	}
	assert.Equal(t, Affirmations[1], p.Affirmation(Affirmations[0]))
}

func TestAffirmationsPresent(t *testing.T) {
	assert.Greater(t, len(Affirmations), 100)
	assert.Equal(t, "You are enough, exactly as you are.", Affirmations[len(Affirmations)-1])
}
