package match

// ServiceError is a custom error type for match service wiring errors
type ServiceError string

// Error implements the error interface
func (e ServiceError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrNilConfig        ServiceError = "config cannot be nil"
	ErrNilMatchRepo     ServiceError = "match repository cannot be nil"
	ErrNilSessionRepo   ServiceError = "session repository cannot be nil"
	ErrNilClock         ServiceError = "clock cannot be nil"
	ErrNilUUIDGenerator ServiceError = "UUID generator cannot be nil"
)
