package config

const (
	// MembershipTermYears is the length of one maintenance-plan billing term.
	MembershipTermYears = 1

	// DefaultTuneUpsPerYear is used when a plan does not configure an allotment.
	DefaultTuneUpsPerYear = 2
)
