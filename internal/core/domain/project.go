package domain

import "time"

// Project is a configured project record from the persisted settings store.
// Source discriminates the domain; RefreshMinutes is the background refresh
// cycle length. Changing the cycle only takes effect through an explicit
// timer reset.
type Project struct {
	ProjectID      string
	ProjectName    string
	Source         Mode
	RefreshMinutes int
	OrgID          string
	APIKey         string
	ServiceKey     string
	BaseURL        string
}

// RefreshInterval returns the background refresh cycle as a duration.
func (p Project) RefreshInterval() time.Duration {
	return time.Duration(p.RefreshMinutes) * time.Minute
}

// Mark is a mark-as status update applied to one or more traces.
type Mark struct {
	TraceIDs  []string
	Status    string
	SubStatus string
	Note      string
}
