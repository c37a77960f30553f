package github

import "time"

// * ListOptions are the listing parameters sent with every page request.
// * State is ignored by branch listing, which has no state filter upstream.
type ListOptions struct {
	State   string
	Page    int
	PerPage int
}

// * RateStatus is the last rate limit GitHub reported
type RateStatus struct {
	Remaining int       `json:"remaining"`
	Limit     int       `json:"limit"`
	Reset     time.Time `json:"reset"`
}
