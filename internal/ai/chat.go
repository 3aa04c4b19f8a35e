package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
)

// ChatMessage is one turn of the follow-up conversation. Role is "user" or
// "assistant". The transcript lives in memory for one session only.
type ChatMessage struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

const chatSystemPrompt = `You are a web platform compatibility assistant. The user has just
received an implementation plan for a UI design, annotated with Baseline
availability badges (widely available, newly available, limited). Answer
follow-up questions about the plan, the mentioned features, browser
support, and practical fallback strategies. Be concise and concrete.`

// Chat sends the transcript plus a new question and returns the assistant
// reply as plain text. One request, no retry.
func (c *Client) Chat(ctx context.Context, history []ChatMessage, question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", fmt.Errorf("question is empty")
	}

	messages := make([]anthropic.MessageParam, 0, len(history)+1)
	for _, msg := range history {
		text := strings.TrimSpace(msg.Text)
		if text == "" {
			continue
		}
		switch msg.Role {
		case "assistant":
			messages = append(messages, anthropic.NewAssistantMessage(anthropic.NewTextBlock(text)))
		default:
			messages = append(messages, anthropic.NewUserMessage(anthropic.NewTextBlock(text)))
		}
	}
	messages = append(messages, anthropic.NewUserMessage(anthropic.NewTextBlock(question)))

	reply, err := c.complete(ctx, "chat", c.chatModel, chatSystemPrompt, 2048, messages)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(reply), nil
}
