package pipeline

import (
	"context"
)

// MockReply is one scripted LLM response.
type MockReply struct {
	Text string
	Err  error
}

// MockLLMClient returns scripted replies in call order and records every
// prompt it receives. When the script runs out, the last reply repeats.
type MockLLMClient struct {
	Replies []MockReply
	Prompts []string
}

func (m *MockLLMClient) Generate(ctx context.Context, prompt string) (string, error) {
	m.Prompts = append(m.Prompts, prompt)
	if len(m.Replies) == 0 {
		return "", nil
	}
	i := len(m.Prompts) - 1
	if i >= len(m.Replies) {
		i = len(m.Replies) - 1
	}
	reply := m.Replies[i]
	return reply.Text, reply.Err
}
