package portfolio

import "time"

// Message is a contact form submission kept in the inbox.
type Message struct {
	ID        string
	Name      string
	Email     string
	Body      string
	RemoteIP  string
	CreatedAt time.Time
}
