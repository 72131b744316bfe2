package llm

import (
	"context"
	"errors"
)

type LLMClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// The system instruction and sampling temperature are fixed: the model must
// return appendable Python code and nothing else, near-deterministically.
const systemInstruction = "You are an assistant that writes clean, valid Python code for " +
	"Django REST Framework. " +
	"Always output ONLY Python code. No explanations, no markdown."

const samplingTemperature = 0.1

// ConfigError marks a failure that every subsequent call would hit
// identically (missing credential, unknown provider). Callers treat it as
// fatal to the whole generation phase rather than to one model.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return e.Reason
}

func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}
