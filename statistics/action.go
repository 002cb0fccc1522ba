package statistics

// Action is the internal command an intent resolves to.
type Action interface {
	action()
}

// LoadStatistics fetches every task and counts active and completed ones.
type LoadStatistics struct{}

func (LoadStatistics) action() {}
