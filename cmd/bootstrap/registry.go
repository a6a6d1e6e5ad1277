package bootstrap

import (
	"time"

	"engagement-scheduler/internal/domain/sequence"

	"go.uber.org/fx"
)

var RegistryModule = fx.Module("registry",
	fx.Provide(
		NewSequenceRegistry,
	),
)

// NewSequenceRegistry builds the built-in campaign catalogue. Stages are
// append-only: new stages go at the end with a larger delay, and retired
// stages are soft-deprecated via Registry.Deprecate, never removed.
func NewSequenceRegistry() (*sequence.Registry, error) {
	registry := sequence.NewRegistry()

	loginRecovery, err := sequence.NewDefinition(
		"login-recovery", 1,
		sequence.FlagSet("has_logged_in"),
		[]sequence.Stage{
			{ID: "3h", Delay: 3 * time.Hour, Exit: sequence.FlagSet("has_logged_in"), ContentRef: "email/login-recovery/3h"},
			{ID: "24h", Delay: 24 * time.Hour, Exit: sequence.FlagSet("has_logged_in"), ContentRef: "email/login-recovery/24h"},
			{ID: "72h", Delay: 72 * time.Hour, Exit: sequence.FlagSet("has_logged_in"), ContentRef: "email/login-recovery/72h"},
			{ID: "7d", Delay: 7 * 24 * time.Hour, Exit: sequence.FlagSet("has_logged_in"), ContentRef: "email/login-recovery/7d"},
		},
	)
	if err != nil {
		return nil, err
	}
	if err := registry.Register(loginRecovery); err != nil {
		return nil, err
	}

	onboardingNudges, err := sequence.NewDefinition(
		"onboarding-nudges", 1,
		sequence.FlagSet("onboarding_complete"),
		[]sequence.Stage{
			{ID: "profile-24h", Delay: 24 * time.Hour, Exit: sequence.FlagSet("onboarding_profile_complete"), ContentRef: "email/onboarding/profile"},
			{ID: "first-lesson-96h", Delay: 96 * time.Hour, Exit: sequence.FlagSet("onboarding_first_lesson_complete"), ContentRef: "email/onboarding/first-lesson"},
		},
	)
	if err != nil {
		return nil, err
	}
	if err := registry.Register(onboardingNudges); err != nil {
		return nil, err
	}

	return registry, nil
}
