package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const systemPrompt = `You are a media researcher. Given a reporter's name, the outlets they write for, and their recent headlines, identify the beats they cover.

Rules:
1. Beats are short lowercase topic labels (e.g. "ai", "antitrust", "climate", "startups")
2. Return at most 6 beats, most central first
3. Base beats only on the headlines provided, never on the reporter's name
4. The pitch is one sentence describing what kind of story this reporter is likely to cover next

Output as JSON only, no other text:
{
  "beats": ["beat 1", "beat 2"],
  "pitch": "one sentence pitch angle"
}`

type OpenAIClient struct {
	client    *openai.Client
	model     openai.ChatModel
	modelName string
}

func NewOpenAIClient(apiKey string) *OpenAIClient {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAIClient{
		client:    &client,
		model:     openai.ChatModelGPT4oMini,
		modelName: "gpt-4o-mini",
	}
}

func (c *OpenAIClient) InferBeats(input BeatInput) (*BeatResult, error) {
	resp, err := c.client.Chat.Completions.New(context.Background(), openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(formatBeatPrompt(input)),
		},
	})

	if err != nil {
		return nil, fmt.Errorf("openai API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from openai")
	}

	content := cleanJSONResponse(resp.Choices[0].Message.Content)

	var parsed struct {
		Beats []string `json:"beats"`
		Pitch string   `json:"pitch"`
	}

	err = json.Unmarshal([]byte(content), &parsed)
	if err != nil {
		return nil, fmt.Errorf("failed to parse response: %w, content: %s", err, content)
	}

	return &BeatResult{
		Beats:     parsed.Beats,
		Pitch:     parsed.Pitch,
		ModelUsed: c.modelName,
	}, nil
}

func formatBeatPrompt(input BeatInput) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Reporter: %s\n", input.Name)
	if len(input.Outlets) > 0 {
		fmt.Fprintf(&sb, "Outlets: %s\n", strings.Join(input.Outlets, ", "))
	}
	sb.WriteString("Recent headlines:\n")
	for i, h := range input.Headlines {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, h)
	}
	return sb.String()
}

func cleanJSONResponse(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	// Some model responses include extra prose around JSON.
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start >= 0 && end > start {
		content = content[start : end+1]
	}
	return content
}
