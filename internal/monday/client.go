package monday

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/polar-ai/taskpurge/internal/model"
)

const (
	// DefaultAPIURL is the monday.com GraphQL API endpoint
	DefaultAPIURL = "https://api.monday.com/v2"

	// apiURLEnv overrides the endpoint, e.g. to go through a CORS proxy
	apiURLEnv = "TASKPURGE_API_URL"
)

// Client is a monday.com GraphQL API client
type Client struct {
	token      string
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a new monday.com API client
func NewClient(token string) *Client {
	baseURL := DefaultAPIURL
	if v := os.Getenv(apiURLEnv); v != "" {
		baseURL = v
	}
	return &Client{
		token: token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL: baseURL,
	}
}

// NewClientWithURL creates a client against a specific endpoint (tests, proxies)
func NewClientWithURL(token, baseURL string) *Client {
	c := NewClient(token)
	c.baseURL = baseURL
	return c
}

// graphQLRequest represents a GraphQL request
type graphQLRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

// graphQLResponse represents a GraphQL response
type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphQLError  `json:"errors,omitempty"`
}

type graphQLError struct {
	Message string `json:"message"`
}

// Do executes a GraphQL request and unmarshals the response into result.
// HTTP 401 maps to *AuthError, 429 to *RateLimitError, errors in the
// response payload to *QueryError, and anything else to *TransportError.
func (c *Client) Do(ctx context.Context, query string, variables map[string]interface{}, result interface{}) error {
	req := graphQLRequest{
		Query:     query,
		Variables: variables,
	}

	body, err := json.Marshal(req)
	if err != nil {
		return &TransportError{Err: fmt.Errorf("marshal request: %w", err)}
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.baseURL, bytes.NewReader(body))
	if err != nil {
		return &TransportError{Err: fmt.Errorf("create request: %w", err)}
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", c.token)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return &TransportError{Err: fmt.Errorf("execute request: %w", err)}
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return &AuthError{Status: resp.StatusCode}
	case http.StatusTooManyRequests:
		return &RateLimitError{Status: resp.StatusCode}
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode != http.StatusOK {
		return &TransportError{Err: fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(respBody))}
	}

	var gqlResp graphQLResponse
	if err := json.Unmarshal(respBody, &gqlResp); err != nil {
		return &TransportError{Err: fmt.Errorf("unmarshal response: %w", err)}
	}

	if len(gqlResp.Errors) > 0 {
		return &QueryError{Message: gqlResp.Errors[0].Message}
	}

	if result != nil {
		if err := json.Unmarshal(gqlResp.Data, result); err != nil {
			return &TransportError{Err: fmt.Errorf("unmarshal data: %w", err)}
		}
	}

	return nil
}

// ListBoards returns up to 50 boards visible to the token
func (c *Client) ListBoards(ctx context.Context) ([]Board, error) {
	var result struct {
		Boards []Board `json:"boards"`
	}

	if err := c.Do(ctx, queryBoards, nil, &result); err != nil {
		return nil, err
	}

	return result.Boards, nil
}

// BoardItems returns the items of one board as RawTasks tagged with the
// board's name. Page size is bounded at 500 items; pagination beyond that
// is out of scope.
func (c *Client) BoardItems(ctx context.Context, boardID string) ([]model.RawTask, error) {
	var result struct {
		Boards []struct {
			Name      string `json:"name"`
			ItemsPage struct {
				Items []item `json:"items"`
			} `json:"items_page"`
		} `json:"boards"`
	}

	variables := map[string]interface{}{
		"boardId": []string{boardID},
	}

	if err := c.Do(ctx, queryBoardItems, variables, &result); err != nil {
		return nil, err
	}

	if len(result.Boards) == 0 {
		return nil, nil
	}

	board := result.Boards[0]
	tasks := make([]model.RawTask, 0, len(board.ItemsPage.Items))
	for _, it := range board.ItemsPage.Items {
		task := model.RawTask{
			ID:        it.ID,
			Name:      it.Name,
			BoardName: board.Name,
		}
		for _, cv := range it.ColumnValues {
			task.ColumnValues = append(task.ColumnValues, model.ColumnValue{
				ColumnID: cv.ID,
				Text:     cv.Text,
				RawValue: cv.Value,
			})
		}
		tasks = append(tasks, task)
	}

	return tasks, nil
}

// BoardColumns returns the column schema of a board (setup wizard)
func (c *Client) BoardColumns(ctx context.Context, boardID string) ([]Column, error) {
	var result struct {
		Boards []struct {
			Columns []Column `json:"columns"`
		} `json:"boards"`
	}

	variables := map[string]interface{}{
		"boardId": []string{boardID},
	}

	if err := c.Do(ctx, queryBoardColumns, variables, &result); err != nil {
		return nil, err
	}

	if len(result.Boards) == 0 {
		return nil, nil
	}

	return result.Boards[0].Columns, nil
}

// BoardSubscribers returns the users subscribed to a board (watched-user picker)
func (c *Client) BoardSubscribers(ctx context.Context, boardID string) ([]User, error) {
	var result struct {
		Boards []struct {
			Subscribers []User `json:"subscribers"`
		} `json:"boards"`
	}

	variables := map[string]interface{}{
		"boardId": []string{boardID},
	}

	if err := c.Do(ctx, queryBoardSubscribers, variables, &result); err != nil {
		return nil, err
	}

	if len(result.Boards) == 0 {
		return nil, nil
	}

	return result.Boards[0].Subscribers, nil
}

// ValidateToken checks whether the token is accepted by the API
func (c *Client) ValidateToken(ctx context.Context) bool {
	err := c.Do(ctx, queryMe, nil, nil)
	return err == nil
}
