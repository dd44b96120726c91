package session

// ServiceError is a custom error type for session service wiring errors
type ServiceError string

// Error implements the error interface
func (e ServiceError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrNilConfig         ServiceError = "config cannot be nil"
	ErrNilSessionRepo    ServiceError = "session repository cannot be nil"
	ErrNilFriendRepo     ServiceError = "friend repository cannot be nil"
	ErrNilMatchRepo      ServiceError = "match repository cannot be nil"
	ErrNilCommentRepo    ServiceError = "comment repository cannot be nil"
	ErrNilAttachmentRepo ServiceError = "attachment repository cannot be nil"
	ErrNilClock          ServiceError = "clock cannot be nil"
	ErrNilUUIDGenerator  ServiceError = "UUID generator cannot be nil"
	ErrNilTokenGenerator ServiceError = "token generator cannot be nil"
)
