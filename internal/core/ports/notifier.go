package ports

import "context"

// Notifier delivers transactional mail to account holders. Delivery is off
// the critical path: callers report failures but never let them change the
// outcome of the operation that triggered the mail.
type Notifier interface {
	SendWelcome(ctx context.Context, email string) error
}
