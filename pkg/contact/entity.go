package contact

import (
	"time"

	"github.com/google/uuid"
)

// Message is one submission from the public contact form.
type Message struct {
	ID        uuid.UUID
	Name      string
	Email     string
	Subject   string
	Body      string
	CreatedAt time.Time
}
