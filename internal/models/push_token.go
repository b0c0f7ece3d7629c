package models

// PushToken is one user's registered delivery target. Re-registering
// overwrites the existing record, so there is at most one per user.
type PushToken struct {
	Token     string `json:"token" dynamodbav:"token"`
	UserID    string `json:"userId" dynamodbav:"userId"`
	CreatedAt string `json:"createdAt" dynamodbav:"createdAt"` // ISO timestamp
}
