package event

import "time"

const UserRegisteredTopic string = "identity.user.registered"
const UserRegisteredConsumerWelcomeEmail string = "user_registered_welcome_email"

type UserRegisteredMessage struct {
	UserID       int64     `json:"user_id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	RegisteredAt time.Time `json:"registered_at"`
}
