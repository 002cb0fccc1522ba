package statistics

import (
	"testing"

	"github.com/kbukum/taskstats/errors"
)

func TestRoute_InitialIntent(t *testing.T) {
	action, err := Route(InitialIntent{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := action.(LoadStatistics); !ok {
		t.Errorf("expected LoadStatistics, got %T", action)
	}
}

func TestRoute_Unhandled(t *testing.T) {
	for name, intent := range map[string]Intent{
		"nil":     nil,
		"foreign": bogusIntent{},
	} {
		t.Run(name, func(t *testing.T) {
			action, err := Route(intent)
			if action != nil {
				t.Errorf("expected no action, got %T", action)
			}
			if !errors.HasCode(err, errors.ErrCodeUnhandledIntent) {
				t.Fatalf("expected UNHANDLED_INTENT, got %v", err)
			}
		})
	}
}

func TestParseIntent(t *testing.T) {
	intent, err := ParseIntent(" Initial ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := intent.(InitialIntent); !ok {
		t.Errorf("expected InitialIntent, got %T", intent)
	}
	if IntentName(intent) != IntentInitial {
		t.Errorf("expected name %q, got %q", IntentInitial, IntentName(intent))
	}

	if _, err := ParseIntent("refresh"); !errors.HasCode(err, errors.ErrCodeInvalidInput) {
		t.Errorf("expected INVALID_INPUT, got %v", err)
	}
}
