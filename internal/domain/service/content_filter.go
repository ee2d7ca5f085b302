package service

// ContentFilter masks profanity in user-written text.
type ContentFilter interface {
	Censor(text string) string
	IsProfane(text string) bool
}
