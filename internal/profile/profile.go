// Package profile keeps the user's display name, the onboarding flag and
// the rotating affirmation.
package profile

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/Alixocracy/jast/internal/store"
)

const (
	NameKey       = "focusflow-user-name"
	OnboardingKey = "focusflow-onboarding-complete"
)

var ErrEmptyName = errors.New("name is empty")

// Profile values are stored as plain strings, not JSON.
type Profile struct {
	kv   store.KV
	rand func(n int) int
}

func New(kv store.KV) *Profile {
	return &Profile{kv: kv, rand: rand.IntN}
}

// Name returns the stored display name, or "" when none is set.
func (p *Profile) Name() string {
	return store.GetString(p.kv, NameKey, "")
}

func (p *Profile) SetName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	if err := p.kv.Set(NameKey, name); err != nil {
		return fmt.Errorf("save name: %w", err)
	}
	return nil
}

// Onboarded reports whether onboarding has been completed.
func (p *Profile) Onboarded() bool {
	return store.GetString(p.kv, OnboardingKey, "") == "true"
}

// CompleteOnboarding stores the name and marks onboarding done.
func (p *Profile) CompleteOnboarding(name string) error {
	if err := p.SetName(name); err != nil {
		return err
	}
	return p.kv.Set(OnboardingKey, "true")
}

// Affirmation picks one affirmation at random, different from current when
// possible.
func (p *Profile) Affirmation(current string) string {
	if len(Affirmations) == 0 {
		return ""
	}
	for i := 0; i < 5; i++ {
		a := Affirmations[p.rand(len(Affirmations))]
		if a != current {
			return a
		}
	}
	return Affirmations[0]
}
