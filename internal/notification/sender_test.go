package notification

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSendNotification_SkipsWhenChatIDEmpty(t *testing.T) {
	// No chat ID means no send attempt; must return without panicking.
	SendNotification("https://webhook.example.com", "telegram", "", "test message")
}

func TestSendNotification_FireAndForget(t *testing.T) {
	// A missing or failing openclaw binary must not block the batch.
	start := time.Now()
	SendNotification("https://webhook.example.com", "telegram", "chat-123", "message")
	assert.Less(t, time.Since(start), 11*time.Second)
}

func TestSendNotification_MultipleCallsInSequence(t *testing.T) {
	for i := 0; i < 3; i++ {
		SendNotification("https://webhook.example.com", "telegram", "chat-123", "message")
	}
}
