package statistics

import (
	"fmt"
	"strings"

	"github.com/kbukum/taskstats/errors"
)

// Intent is a user-originated request from the statistics screen.
type Intent interface {
	intent()
}

// InitialIntent is emitted once when the screen is first shown, and again
// on every explicit refresh.
type InitialIntent struct{}

func (InitialIntent) intent() {}

// Intent names used on the HTTP boundary and in metrics.
const (
	IntentInitial = "initial"
)

// IntentName returns the wire name of intent.
func IntentName(intent Intent) string {
	switch intent.(type) {
	case InitialIntent:
		return IntentInitial
	default:
		return fmt.Sprintf("%T", intent)
	}
}

// ParseIntent returns the intent named kind.
func ParseIntent(kind string) (Intent, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case IntentInitial:
		return InitialIntent{}, nil
	default:
		return nil, errors.InvalidInput("type", fmt.Sprintf("unknown intent %q", kind))
	}
}
