package monitor

import "time"

// Status is the latest result of every registered check.
type Status struct {
	Backend       string          `json:"backend"`
	Checks        map[string]bool `json:"checks"`
	SnapshotCount int             `json:"snapshot_count"`
	LastCheck     time.Time       `json:"last_check"`
}

// Healthy reports whether every check passed.
func (s Status) Healthy() bool {
	for _, ok := range s.Checks {
		if !ok {
			return false
		}
	}
	return true
}
