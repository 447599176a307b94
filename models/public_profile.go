package models

// PublicProfile is the denormalized projection refreshed whenever a profile
// is written, and deleted when the profile is removed.
type PublicProfile struct {
	UserID    string   `dynamodbav:"userId" json:"userId"`
	Name      string   `dynamodbav:"name" json:"name"`
	Age       *int     `dynamodbav:"age" json:"age"`
	Gender    string   `dynamodbav:"gender" json:"gender"`
	City      string   `dynamodbav:"city" json:"city"`
	Photo     string   `dynamodbav:"photo,omitempty" json:"photo,omitempty"`
	Tags      []string `dynamodbav:"tags" json:"tags"`
	Plan      string   `dynamodbav:"plan" json:"plan"`
	UpdatedAt string   `dynamodbav:"updatedAt" json:"updatedAt"`
}

// PublicProfilesTable is the DynamoDB table name for public profile projections
const PublicProfilesTable = "PublicProfiles"
