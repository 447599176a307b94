package models

// Starter is a generated conversation opener attached to a match.
// Exactly three are written per match, ordinals 1-3, immediately after
// match creation.
type Starter struct {
	MatchID   string `dynamodbav:"matchId" json:"matchId"`
	Order     int    `dynamodbav:"order" json:"order"`
	Text      string `dynamodbav:"text" json:"text"`
	Tag       string `dynamodbav:"tag" json:"tag"`
	Used      bool   `dynamodbav:"used" json:"used"`
	CreatedAt string `dynamodbav:"createdAt" json:"createdAt"`
}

// StartersTable is the DynamoDB table name for conversation starters
const StartersTable = "Starters"
