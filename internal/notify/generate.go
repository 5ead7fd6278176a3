package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/polar-ai/taskpurge/internal/model"
)

const (
	// DefaultGenerationURL is the hosted reminder-generation backend
	DefaultGenerationURL = "https://tp.polar-ai.app/api/reminder"

	// generationTimeout is the hard ceiling on one generation call.
	// Past it the call is abandoned and the template takes over.
	generationTimeout = 5 * time.Second
)

// GenClient asks the generation backend for a short attention-grabbing
// reminder phrase. Every failure mode is soft: the caller falls back to
// the deterministic template and never surfaces the error.
type GenClient struct {
	url        string
	apiKey     string
	httpClient *http.Client
}

// NewGenClient creates a generation client. An empty url or apiKey
// yields a nil client, which skips generation entirely.
func NewGenClient(url, apiKey string) *GenClient {
	if url == "" || apiKey == "" {
		return nil
	}
	return &GenClient{
		url:        url,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: generationTimeout},
	}
}

type generateRequest struct {
	BoardName string `json:"boardName"`
	TaskName  string `json:"taskName"`
	Priority  string `json:"priority"`
	IsOverdue bool   `json:"isOverdue"`
}

type generateResponse struct {
	Message string `json:"message"`
}

// Generate returns the backend's phrasing for a task, or an error that
// the announcer treats as a fallback trigger.
func (g *GenClient) Generate(ctx context.Context, task model.UrgentTask) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, generationTimeout)
	defer cancel()

	body, err := json.Marshal(generateRequest{
		BoardName: task.BoardName,
		TaskName:  task.Name,
		Priority:  string(task.Priority),
		IsOverdue: task.Overdue,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", g.url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("generation backend: HTTP %d", resp.StatusCode)
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}

	msg := strings.TrimSpace(out.Message)
	if msg == "" {
		return "", fmt.Errorf("generation backend: empty message")
	}
	return msg, nil
}
