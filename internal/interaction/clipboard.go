package interaction

import (
	"fmt"
	"time"
)

// NotificationDuration is how long a notification stays up unless dismissed.
const NotificationDuration = 2000 * time.Millisecond

// NotificationStatus is the tone of a [Notification].
type NotificationStatus string

const (
	StatusSuccess NotificationStatus = "success"
	StatusError   NotificationStatus = "error"
)

// Notification is a transient message for the notification surface.
type Notification struct {
	Title       string
	Description string
	Status      NotificationStatus
	Duration    time.Duration
	Dismissible bool
}

// Clipboard is a write-only text clipboard.
type Clipboard interface {
	WriteAll(text string) error
}

// Notifier displays notifications.
type Notifier interface {
	Notify(Notification)
}

// NotifierFunc adapts a function to [Notifier].
type NotifierFunc func(Notification)

// Notify calls f(n).
func (f NotifierFunc) Notify(n Notification) { f(n) }

// CopiedNotification is raised after a successful copy.
func CopiedNotification() Notification {
	return Notification{
		Title:       "Copied!",
		Description: "Summary copied to clipboard.",
		Status:      StatusSuccess,
		Duration:    NotificationDuration,
		Dismissible: true,
	}
}

// CopyFailedNotification is raised when the clipboard rejects a write.
func CopyFailedNotification(err error) Notification {
	return Notification{
		Title:       "Copy failed",
		Description: err.Error(),
		Status:      StatusError,
		Duration:    NotificationDuration,
		Dismissible: true,
	}
}

// Copy writes the current summary to the clipboard and raises a notification.
//
// Returns [ErrNothingToCopy] unless the state is [Succeeded]. A clipboard failure raises an
// error notification and returns an error wrapping [ErrClipboard]; the state never changes.
func (c *Controller) Copy() error {
	s, ok := c.State().(Succeeded)
	if !ok {
		return ErrNothingToCopy
	}

	if c.clipboard == nil {
		err := fmt.Errorf("%w: no clipboard available", ErrClipboard)
		c.notify(CopyFailedNotification(err))
		return err
	}

	if err := c.clipboard.WriteAll(s.Summary); err != nil {
		c.logger.Warn("clipboard write failed", "error", err)
		c.notify(CopyFailedNotification(err))
		return fmt.Errorf("%w: %v", ErrClipboard, err)
	}

	c.notify(CopiedNotification())
	return nil
}

func (c *Controller) notify(n Notification) {
	if c.notifier != nil {
		c.notifier.Notify(n)
	}
}
