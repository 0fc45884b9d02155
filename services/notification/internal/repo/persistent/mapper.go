package persistent

import (
	"encoding/json"
	"fmt"

	"syncup/services/notification/internal/entity"
)

func encodeNotification(n *entity.Notification) (string, error) {
	payload, err := json.Marshal(n)
	if err != nil {
		return "", fmt.Errorf("failed to encode notification: %w", err)
	}
	return string(payload), nil
}

// decodeNotifications skips entries that no longer parse.
func decodeNotifications(raw []string) []entity.Notification {
	notifications := make([]entity.Notification, 0, len(raw))
	for _, item := range raw {
		var n entity.Notification
		if err := json.Unmarshal([]byte(item), &n); err == nil {
			notifications = append(notifications, n)
		}
	}
	return notifications
}
