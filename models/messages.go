package models

// Message delivery statuses. The write path only ever sets "sent";
// delivered/read are advanced later by the reading side.
const (
	MessageStatusSent      = "sent"
	MessageStatusDelivered = "delivered"
	MessageStatusRead      = "read"
)

// ModerationResult is the outcome of the moderation gate for a text.
// Labels are independent of the allow/block decision: all-caps labels
// without blocking.
type ModerationResult struct {
	Allowed bool     `dynamodbav:"allowed" json:"allowed"`
	Labels  []string `dynamodbav:"labels" json:"labels"`
}

// Message is one chat message inside a match. MessageID is a KSUID, so the
// sort key orders messages by creation time. The moderation outcome is
// attached at write time for audit.
type Message struct {
	MatchID    string           `dynamodbav:"matchId" json:"matchId"`
	MessageID  string           `dynamodbav:"messageId" json:"messageId"`
	SenderID   string           `dynamodbav:"senderId" json:"senderId"`
	Text       string           `dynamodbav:"text" json:"text"`
	Status     string           `dynamodbav:"status" json:"status"`
	Moderation ModerationResult `dynamodbav:"moderation" json:"moderation"`
	CreatedAt  string           `dynamodbav:"createdAt" json:"createdAt"`
}

// MessagesTable is the DynamoDB table name for chat messages
const MessagesTable = "Messages"
