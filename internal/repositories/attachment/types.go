package attachment

type CountBySessionIDInput struct {
	SessionID string
}
