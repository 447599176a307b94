package models

// Candidate is the discovery projection of a profile: computed per query,
// never persisted. DistanceKm is zero when either side has no coordinates
// and nil when the candidate was built without any location context.
type Candidate struct {
	UserID     string   `json:"userId"`
	Name       string   `json:"name"`
	Age        int      `json:"age"`
	City       string   `json:"city"`
	DistanceKm *float64 `json:"distanceKm,omitempty"`
	Interests  []string `json:"interests"`
	Photos     []string `json:"photos"`
}

// Score is a bounded compatibility value with its explanation. Ephemeral,
// computed per (user, candidate) pair.
type Score struct {
	Value   float64  `json:"value"`
	Reasons []string `json:"reasons"`
}
