package domain

import "time"

type ContactMessage struct {
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Subject    string    `json:"subject"`
	Body       string    `json:"message"`
	ReceivedAt time.Time `json:"received_at"`
}
