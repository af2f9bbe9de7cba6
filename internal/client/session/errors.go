package session

// DefaultAuthMessage is shown when a failed sign-in carries no server message.
const DefaultAuthMessage = "Invalid email or password"

// AuthError is a failed sign-in. Message is what the login screen shows.
type AuthError struct {
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	return e.Message
}

func (e *AuthError) Unwrap() error {
	return e.Err
}
