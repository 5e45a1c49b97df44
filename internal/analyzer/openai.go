package analyzer

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// Analyzer sends document text to a generative model and returns the raw
// reply. Parsing the reply is the normalizer's job, not the analyzer's.
type Analyzer interface {
	Analyze(ctx context.Context, text string) (string, error)
}

const maxTokens = 2048

const systemPrompt = `You are a legal document reviewer. You identify risky clauses in contracts and explain them in plain language a non-lawyer can understand. You respond ONLY with a valid JSON object, no markdown and no code blocks.`

const userPromptTemplate = `Review the following legal document. Identify clauses that carry risk for the signing party.

Document text:
%s

Respond with a JSON object of exactly this structure:
{
  "summary": "A concise 2-3 sentence summary of the document",
  "risky_clauses": [
    {
      "title": "Short name of the clause",
      "source_excerpt": "The clause text as it appears in the document",
      "explanation": "Plain-language explanation of the risk",
      "risk_level": "LOW, MEDIUM or HIGH"
    }
  ],
  "explanations": "Overall assessment of the risks found"
}`

type openAIAnalyzer struct {
	client *openai.Client
	model  string
}

func NewOpenAIAnalyzer(apiKey, model string) Analyzer {
	return &openAIAnalyzer{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

func (a *openAIAnalyzer) Analyze(ctx context.Context, text string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: a.model,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf(userPromptTemplate, text)},
		},
	}

	// Reasoning models (o1/o3/o4/gpt-5*) take MaxCompletionTokens instead of MaxTokens
	if strings.HasPrefix(a.model, "o1") || strings.HasPrefix(a.model, "o3") ||
		strings.HasPrefix(a.model, "o4") || strings.HasPrefix(a.model, "gpt-5") {
		req.MaxCompletionTokens = maxTokens
	} else {
		req.MaxTokens = maxTokens
	}

	resp, err := a.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("failed to create chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in completion response")
	}

	return resp.Choices[0].Message.Content, nil
}
