package contact

import "context"

// MessageRepository persists contact form submissions.
type MessageRepository interface {
	Create(ctx context.Context, m Message) error
}
