package statistics

import "github.com/kbukum/taskstats/errors"

// Route maps an intent to the action that serves it. It is pure.
// An intent with no route yields ErrUnhandledIntent; that is a wiring
// defect and callers treat it as fatal.
func Route(intent Intent) (Action, error) {
	switch intent.(type) {
	case InitialIntent:
		return LoadStatistics{}, nil
	default:
		return nil, errors.UnhandledIntent(intent)
	}
}
