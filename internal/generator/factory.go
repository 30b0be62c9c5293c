package generator

import (
	"log"
	"strings"
)

// New picks the OpenAI backend when an API key is configured, otherwise
// the deterministic mock.
func New(apiKey, model string) Generator {
	if strings.TrimSpace(apiKey) == "" {
		log.Printf("generator: no API key configured, using mock backend")
		return &Mock{}
	}
	log.Printf("generator: openai backend, model %s", model)
	return NewRetrying(NewOpenAIGenerator(apiKey, model))
}
