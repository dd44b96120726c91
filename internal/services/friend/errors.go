package friend

// ServiceError is a custom error type for friend service wiring errors
type ServiceError string

// Error implements the error interface
func (e ServiceError) Error() string {
	return string(e)
}

const (
	ErrNilConfig        ServiceError = "config cannot be nil"
	ErrNilFriendRepo    ServiceError = "friend repository cannot be nil"
	ErrNilClock         ServiceError = "clock cannot be nil"
	ErrNilUUIDGenerator ServiceError = "UUID generator cannot be nil"
)
