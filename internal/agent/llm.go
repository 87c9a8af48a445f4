package agent

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/sashabaranov/go-openai"

	"github.com/smilemakc/progsynth/internal/program"
)

// LLMAdvised is an alternative strategy that delegates the choice among
// candidate actions to an OpenAI chat model. It trades the determinism
// guarantee of TopDownBFS for model guidance and must never be the
// default. Any API or parsing failure falls back to the wrapped agent,
// so enumeration always makes progress.
type LLMAdvised struct {
	client   *openai.Client
	model    string
	fallback SynthesisAgent
}

// NewLLMAdvised creates an LLM advised agent. The fallback agent decides
// whenever the model is unreachable or answers out of range.
func NewLLMAdvised(apiKey, model string, fallback SynthesisAgent) *LLMAdvised {
	if model == "" {
		model = "gpt-4o"
	}
	if fallback == nil {
		fallback = NewTopDownBFS()
	}
	return &LLMAdvised{
		client:   openai.NewClient(apiKey),
		model:    model,
		fallback: fallback,
	}
}

// Act implements SynthesisAgent.
func (a *LLMAdvised) Act(candidates []Action, graph *program.Graph) Action {
	prompt := a.buildPrompt(candidates, graph)

	req := openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
	}

	resp, err := a.client.CreateChatCompletion(context.Background(), req)
	if err != nil {
		log.Debug().Err(err).Msg("LLM advice unavailable, falling back")
		return a.fallback.Act(candidates, graph)
	}
	if len(resp.Choices) == 0 {
		return a.fallback.Act(candidates, graph)
	}

	answer := strings.TrimSpace(resp.Choices[0].Message.Content)
	index, err := strconv.Atoi(answer)
	if err != nil || index < 0 || index >= len(candidates) {
		log.Debug().Str("answer", answer).Msg("unusable LLM advice, falling back")
		return a.fallback.Act(candidates, graph)
	}
	return candidates[index]
}

func (a *LLMAdvised) buildPrompt(candidates []Action, graph *program.Graph) string {
	var sb strings.Builder
	sb.WriteString("You are guiding an enumerative program synthesis search.\n")
	sb.WriteString("Current program configuration:\n")
	sb.WriteString(string(graph.HashableConfig()))
	sb.WriteString("\n\nApplicable actions:\n")
	for i, candidate := range candidates {
		sb.WriteString(fmt.Sprintf("%d: %s\n", i, candidate.Key()))
	}
	sb.WriteString("\nAnswer with the index of the single most promising action. Answer with the index only.")
	return sb.String()
}
