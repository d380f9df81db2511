package planfix

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/lsoft/planfix-reminder/internal/config"
	"github.com/lsoft/planfix-reminder/internal/domain"
)

// Role type codes used by the /task/list filter contract.
const (
	roleAssignee = 2
	roleAssigner = 3
	roleAuditor  = 4
)

// Client fetches tasks from a Planfix account. Selection runs either
// through a saved server-side filter or through per-role queries for a
// user, with duplicates removed across roles.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	userID     int
	filterID   int
	pageSize   int
	roles      []int
	logger     *slog.Logger
}

// NewClient creates a Planfix API client from configuration. The
// client reuses a single http.Client; per-request deadlines come from
// the caller's context.
func NewClient(cfg config.PlanfixConfig, roles config.RolesConfig, logger *slog.Logger) *Client {
	var roleTypes []int
	if roles.IncludeAssignee {
		roleTypes = append(roleTypes, roleAssignee)
	}
	if roles.IncludeAssigner {
		roleTypes = append(roleTypes, roleAssigner)
	}
	if roles.IncludeAuditor {
		roleTypes = append(roleTypes, roleAuditor)
	}

	return &Client{
		httpClient: &http.Client{Timeout: 60 * time.Second},
		baseURL:    strings.TrimRight(cfg.AccountURL, "/"),
		token:      cfg.APIToken,
		userID:     cfg.UserID,
		filterID:   cfg.FilterID,
		pageSize:   cfg.PageSize,
		roles:      roleTypes,
		logger:     logger.With("component", "planfix_client"),
	}
}

// TestConnection performs a minimal single-task query to verify the
// credentials and the account URL before the engine starts polling.
func (c *Client) TestConnection(ctx context.Context) error {
	req := taskListRequest{
		Offset:   0,
		PageSize: 1,
		FilterID: c.filterID,
		Fields:   "id,name",
	}
	if _, err := c.listPage(ctx, req); err != nil {
		return fmt.Errorf("connection test failed: %w", err)
	}
	c.logger.Info("planfix api connection verified", "account", c.baseURL)
	return nil
}

// FetchTasks returns the current task set for the configured selection.
// With a saved filter it pages through that filter's results; otherwise
// it queries each enabled role and merges the results, keeping the
// first occurrence of every task ID.
func (c *Client) FetchTasks(ctx context.Context) ([]domain.Task, error) {
	if c.filterID != 0 {
		raw, err := c.fetchAll(ctx, func(offset int) taskListRequest {
			return taskListRequest{
				Offset:   offset,
				PageSize: c.pageSize,
				FilterID: c.filterID,
				Fields:   taskFields,
			}
		})
		if err != nil {
			return nil, fmt.Errorf("failed to fetch tasks by filter %d: %w", c.filterID, err)
		}
		return c.toDomainTasks(raw), nil
	}

	var merged []apiTask
	seen := make(map[int]struct{})
	for _, role := range c.roles {
		raw, err := c.fetchAll(ctx, func(offset int) taskListRequest {
			return taskListRequest{
				Offset:   offset,
				PageSize: c.pageSize,
				Filters: []roleFilter{{
					Type:     role,
					Operator: "equal",
					Value:    fmt.Sprintf("user:%d", c.userID),
				}},
				Fields: taskFields,
			}
		})
		if err != nil {
			return nil, fmt.Errorf("failed to fetch tasks for role %d: %w", role, err)
		}

		added := 0
		for _, t := range raw {
			if _, dup := seen[t.ID]; dup {
				continue
			}
			seen[t.ID] = struct{}{}
			merged = append(merged, t)
			added++
		}
		c.logger.Debug("fetched tasks for role",
			"role", role,
			"returned", len(raw),
			"new", added)
	}

	return c.toDomainTasks(merged), nil
}

// fetchAll pages through a query until a short page signals the end of
// the result set.
func (c *Client) fetchAll(ctx context.Context, build func(offset int) taskListRequest) ([]apiTask, error) {
	var all []apiTask
	for offset := 0; ; offset += c.pageSize {
		page, err := c.listPage(ctx, build(offset))
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if len(page) < c.pageSize {
			return all, nil
		}
	}
}

// listPage performs one /task/list call and unwraps the envelope.
func (c *Client) listPage(ctx context.Context, reqBody taskListRequest) ([]apiTask, error) {
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	url := c.baseURL + "/task/list"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", url, err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.logger.Warn("failed to close response body", "error", closeErr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	var envelope taskListResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if envelope.Result == "fail" {
		msg := envelope.Error
		if msg == "" {
			msg = "no error message provided"
		}
		return nil, fmt.Errorf("%w: %s", ErrAPIFailure, msg)
	}

	return envelope.Tasks, nil
}

func (c *Client) toDomainTasks(raw []apiTask) []domain.Task {
	tasks := make([]domain.Task, 0, len(raw))
	for _, t := range raw {
		tasks = append(tasks, t.toDomain())
	}
	return tasks
}
