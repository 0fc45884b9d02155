package usecase

import (
	"errors"
	"io"
)

var (
	ErrPostNotFound  = errors.New("post not found")
	ErrForbidden     = errors.New("you can only delete your own posts")
	ErrPostNotPublic = errors.New("post is not public")
)

// ValidationError carries a message that is safe to return to the client.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(message string) error {
	return &ValidationError{Message: message}
}

// NotificationPublisher is satisfied by *queue.Client.
type NotificationPublisher interface {
	PublishNotificationTask(task map[string]interface{}) error
}

// ObjectStorage is satisfied by *s3.Client.
type ObjectStorage interface {
	UploadFile(name string, body io.ReadSeeker, contentType string) (string, error)
	DeleteByURL(url string) error
}
