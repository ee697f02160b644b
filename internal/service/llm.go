package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// GeneratedPlan is the structured output the LLM is asked to produce.
type GeneratedPlan struct {
	Title string          `json:"title"`
	Meals []GeneratedMeal `json:"meals"`
}

// GeneratedMeal is one meal inside a generated plan.
type GeneratedMeal struct {
	DayIndex    int      `json:"day_index"`
	Slot        string   `json:"slot"`
	Name        string   `json:"name"`
	Calories    float64  `json:"calories"`
	ProteinG    float64  `json:"protein_g"`
	CarbsG      float64  `json:"carbs_g"`
	FatsG       float64  `json:"fats_g"`
	Ingredients []string `json:"ingredients"`
	Leftover    bool     `json:"leftover"`
}

// LLMService calls a chat-completions API to generate menu plans.
type LLMService struct {
	apiKey string
	apiURL string
	model  string
	client *http.Client
}

// NewLLMService creates a new LLMService instance.
func NewLLMService(apiKey, apiURL, model string) (*LLMService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("LLM API key must be set")
	}
	return &LLMService{
		apiKey: apiKey,
		apiURL: apiURL,
		model:  model,
		client: &http.Client{Timeout: 60 * time.Second},
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string            `json:"model"`
	Messages       []chatMessage     `json:"messages"`
	ResponseFormat map[string]string `json:"response_format"`
	Temperature    float64           `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

const planSystemPrompt = `You are a nutrition planning assistant. Respond with a single JSON object:
{"title": string, "meals": [{"day_index": int (0-based), "slot": string, "name": string, "calories": number, "protein_g": number, "carbs_g": number, "fats_g": number, "ingredients": [string], "leftover": bool}]}.
Cover every requested day and slot. No text outside the JSON.`

// GenerateMenuPlan sends the prompt and decodes the structured plan.
func (s *LLMService) GenerateMenuPlan(ctx context.Context, prompt string) (*GeneratedPlan, error) {
	reqBody := chatRequest{
		Model: s.model,
		Messages: []chatMessage{
			{Role: "system", Content: planSystemPrompt},
			{Role: "user", Content: prompt},
		},
		ResponseFormat: map[string]string{"type": "json_object"},
		Temperature:    0.4,
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal llm request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create llm request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("llm request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read llm response: %w", err)
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		preview := string(body)
		if len(preview) > 200 {
			preview = preview[:200] + "..."
		}
		return nil, fmt.Errorf("decode llm response: %w | body: %s", err, preview)
	}
	if resp.StatusCode != http.StatusOK {
		if parsed.Error != nil && parsed.Error.Message != "" {
			return nil, fmt.Errorf("llm api error (%d): %s", resp.StatusCode, parsed.Error.Message)
		}
		return nil, fmt.Errorf("llm api error (%d)", resp.StatusCode)
	}
	if len(parsed.Choices) == 0 || strings.TrimSpace(parsed.Choices[0].Message.Content) == "" {
		return nil, fmt.Errorf("empty llm response")
	}

	var plan GeneratedPlan
	if err := json.Unmarshal([]byte(parsed.Choices[0].Message.Content), &plan); err != nil {
		return nil, fmt.Errorf("decode generated plan: %w", err)
	}
	if len(plan.Meals) == 0 {
		return nil, fmt.Errorf("generated plan has no meals")
	}
	return &plan, nil
}
