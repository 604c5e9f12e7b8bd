// Package notification sends fire-and-forget run notifications via the
// openclaw CLI.
package notification

import (
	"context"
	"os/exec"
	"time"
)

// SendNotification sends a notification message. Fire-and-forget: never
// blocks the batch, silent on failure. No-op when chatID is empty.
func SendNotification(webhook, channel, chatID, message string) {
	if chatID == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cmd := exec.CommandContext(ctx, "openclaw", "message", "send",
		"--webhook", webhook,
		"--channel", channel,
		"--chat-id", chatID,
		"--message", message,
	)

	// Fire and forget - ignore errors
	_ = cmd.Run()
}
