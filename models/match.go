package models

// Match lifecycle states. There is no pending state: a match is created
// active and closed is terminal.
const (
	MatchStateActive = "active"
	MatchStateClosed = "closed"
)

type Match struct {
	MatchID       string   `dynamodbav:"matchId" json:"matchId"`
	Users         []string `dynamodbav:"users" json:"users"` // exactly two participants
	State         string   `dynamodbav:"state" json:"state"`
	Score         float64  `dynamodbav:"score" json:"score"`
	OpenedBy      string   `dynamodbav:"openedBy" json:"openedBy"`
	ClosedBy      string   `dynamodbav:"closedBy,omitempty" json:"closedBy,omitempty"`
	CloseReason   string   `dynamodbav:"closeReason,omitempty" json:"closeReason,omitempty"`
	LastMessageAt string   `dynamodbav:"lastMessageAt,omitempty" json:"lastMessageAt,omitempty"`
	CreatedAt     string   `dynamodbav:"createdAt" json:"createdAt"`
	UpdatedAt     string   `dynamodbav:"updatedAt" json:"updatedAt"`
	ClosedAt      string   `dynamodbav:"closedAt,omitempty" json:"closedAt,omitempty"`
}

// HasParticipant reports whether userID is one of the match's two users.
func (m *Match) HasParticipant(userID string) bool {
	for _, u := range m.Users {
		if u == userID {
			return true
		}
	}
	return false
}

// OtherParticipant returns the participant that is not userID, or "" when
// userID is not part of the match.
func (m *Match) OtherParticipant(userID string) string {
	for _, u := range m.Users {
		if u != userID {
			return u
		}
	}
	return ""
}

// MatchesTable is the DynamoDB table name for matches
const MatchesTable = "Matches"
