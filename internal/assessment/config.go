package assessment

// Config controls the requests sent by the Client.
type Config struct {
	// MaxTokens is the token budget for each response.
	MaxTokens int

	// Temperature controls output randomness (0.0-1.0). Grading always
	// uses zero.
	Temperature float64
}

// DefaultConfig returns the recommended defaults.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   2048,
		Temperature: 0.7,
	}
}
