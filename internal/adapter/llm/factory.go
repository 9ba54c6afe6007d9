package llm

import (
	"log"
	"os"
	"time"
)

const (
	// EnvRelayMode is the environment variable name for mode selection.
	EnvRelayMode = "ROLECHAT_MODE"
	// ModeMock indicates mock mode should be used.
	ModeMock = "MOCK"
)

// NewCompletionClient creates a completion client based on the
// ROLECHAT_MODE environment variable. If ROLECHAT_MODE=MOCK, returns a
// MockClient; otherwise returns a real Client.
func NewCompletionClient(baseURL, apiKey string, timeout time.Duration) CompletionClient {
	if os.Getenv(EnvRelayMode) == ModeMock {
		log.Println("ROLECHAT_MODE=MOCK detected, using mock completion client")
		return NewMockClient()
	}
	return NewClient(baseURL, apiKey, timeout)
}
