package event

import "time"

const UserPasswordResetTopic string = "identity.user.password_reset"
const UserPasswordResetConsumerNotice string = "user_password_reset_notice"

type UserPasswordResetMessage struct {
	UserID  int64     `json:"user_id"`
	Email   string    `json:"email"`
	ResetAt time.Time `json:"reset_at"`
}
