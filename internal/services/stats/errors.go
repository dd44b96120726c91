package stats

// ServiceError is a custom error type for stats service wiring errors
type ServiceError string

// Error implements the error interface
func (e ServiceError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrNilConfig     ServiceError = "config cannot be nil"
	ErrNilFriendRepo ServiceError = "friend repository cannot be nil"
	ErrNilMatchRepo  ServiceError = "match repository cannot be nil"
)
