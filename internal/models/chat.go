package models

// ChatRequest is a user message to the assistant.
type ChatRequest struct {
	Message        string `json:"message"`
	ConversationID string `json:"conversation_id,omitempty"`
}

// ChatResponse is the assistant's reply together with the statistics it was grounded on.
type ChatResponse struct {
	ConversationID string        `json:"conversation_id"`
	Reply          string        `json:"reply"`
	HealthScore    *HealthReport `json:"health_score,omitempty"`
	Insights       []Insight     `json:"insights"`
}
