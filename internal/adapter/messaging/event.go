package messaging

// WebhookBody is the envelope delivered to the webhook endpoint.
type WebhookBody struct {
	Destination string  `json:"destination,omitempty"`
	Events      []Event `json:"events"`
}

// Event is one webhook event.
type Event struct {
	Type       string        `json:"type"`
	ReplyToken string        `json:"replyToken,omitempty"`
	Source     EventSource   `json:"source"`
	Message    *EventMessage `json:"message,omitempty"`
}

// EventSource identifies who sent the event.
type EventSource struct {
	Type   string `json:"type"`
	UserID string `json:"userId"`
}

// EventMessage is the message payload of a message event.
type EventMessage struct {
	ID   string `json:"id,omitempty"`
	Type string `json:"type"` // text, sticker, image, video
	Text string `json:"text,omitempty"`
}
