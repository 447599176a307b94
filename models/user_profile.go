package models

// Location is a point with a display label for the city.
type Location struct {
	Lat  float64 `dynamodbav:"lat" json:"lat"`
	Lng  float64 `dynamodbav:"lng" json:"lng"`
	City string  `dynamodbav:"city,omitempty" json:"city,omitempty"`
}

// Photo is a single profile photo entry.
type Photo struct {
	URL string `dynamodbav:"url" json:"url"`
}

// Device is a registered push-notification target.
type Device struct {
	Token string `dynamodbav:"token" json:"token"`
}

// SearchPrefs are the numeric discovery preferences of a user.
// Invariant: AgeMin >= 18 and AgeMin <= AgeMax.
type SearchPrefs struct {
	AgeMin        int     `dynamodbav:"ageMin" json:"ageMin"`
	AgeMax        int     `dynamodbav:"ageMax" json:"ageMax"`
	MaxDistanceKm float64 `dynamodbav:"maxDistanceKm" json:"maxDistanceKm"`
}

// UserProfile defines the structure for user profiles.
// Age is never stored; it is derived from Birthdate on read.
// ActiveMatchID is the denormalized pointer backing the one-active-match
// invariant: it is only ever written inside the match transaction.
type UserProfile struct {
	UserID        string       `dynamodbav:"userId" json:"userId"`
	Name          string       `dynamodbav:"name,omitempty" json:"name,omitempty"`
	Birthdate     string       `dynamodbav:"birthdate,omitempty" json:"birthdate,omitempty"` // YYYY-MM-DD
	Gender        string       `dynamodbav:"gender,omitempty" json:"gender,omitempty"`
	Seeking       string       `dynamodbav:"seeking,omitempty" json:"seeking,omitempty"`
	Bio           string       `dynamodbav:"bio,omitempty" json:"bio,omitempty"`
	Location      *Location    `dynamodbav:"location,omitempty" json:"location,omitempty"`
	Interests     []string     `dynamodbav:"interests,omitempty" json:"interests,omitempty"`
	Prefs         *SearchPrefs `dynamodbav:"prefs,omitempty" json:"prefs,omitempty"`
	Plan          string       `dynamodbav:"plan,omitempty" json:"plan,omitempty"`
	Photos        []Photo      `dynamodbav:"photos,omitempty" json:"photos,omitempty"`
	Devices       []Device     `dynamodbav:"devices,omitempty" json:"devices,omitempty"`
	ActiveMatchID string       `dynamodbav:"activeMatchId,omitempty" json:"activeMatchId,omitempty"`
	CreatedAt     string       `dynamodbav:"createdAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt     string       `dynamodbav:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// City returns the profile's city label, if any.
func (p *UserProfile) City() string {
	if p.Location == nil {
		return ""
	}
	return p.Location.City
}

// ProfileView is the read projection of a profile with the age derived.
type ProfileView struct {
	UserID    string       `json:"userId"`
	Name      string       `json:"name"`
	Age       *int         `json:"age"`
	Gender    string       `json:"gender"`
	Seeking   string       `json:"seeking"`
	Location  *Location    `json:"location"`
	City      string       `json:"city"`
	Bio       string       `json:"bio"`
	Interests []string     `json:"interests"`
	Prefs     *SearchPrefs `json:"prefs"`
	Plan      string       `json:"plan"`
	Photos    []Photo      `json:"photos"`
}

// UserProfilesTable is the DynamoDB table name for user profiles
const UserProfilesTable = "UserProfiles"
