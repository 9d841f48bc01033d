package study

// Config holds generation settings for the study tools.
type Config struct {
	MaxTokens      int
	LessonTokens   int
	ChatMaxTokens  int
	Temperature    float64
	ChatHistory    int // messages kept in a chat session, oldest dropped first
	DefaultCards   int
	MaxCards       int
	MaxInputLength int // runes accepted per free-text field
}

// DefaultConfig returns sensible defaults for the study tools.
func DefaultConfig() Config {
	return Config{
		MaxTokens:      2048,
		LessonTokens:   4096,
		ChatMaxTokens:  768,
		Temperature:    0.6,
		ChatHistory:    20,
		DefaultCards:   10,
		MaxCards:       30,
		MaxInputLength: 8000,
	}
}
