package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/ventline/ventline/internal/client/models"
)

const (
	requestIDHeader = "X-Request-ID"
	authHeader      = "Authorization"
)

// TokenSource yields the current session token, or "" when logged out.
// The session store provides it; reading per request keeps the adapter
// current without a back-reference to the store.
type TokenSource func() string

// HTTPClient implements Client over JSON-over-HTTPS.
type HTTPClient struct {
	baseURL string
	token   TokenSource
	http    *http.Client
}

// NewHTTPClient builds an adapter for the API at baseURL. tokenFn may be nil
// for a client that never authenticates.
func NewHTTPClient(baseURL string, tokenFn TokenSource, httpClient *http.Client) *HTTPClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   tokenFn,
		http:    httpClient,
	}
}

var _ Client = (*HTTPClient)(nil)

func (c *HTTPClient) Close() error { return nil }

// do performs one request. A non-2xx status is mapped to *Error with the
// body's message field (if any); a transport failure wraps ErrUnavailable.
// When out is non-nil the response body is decoded into it.
func (c *HTTPClient) do(ctx context.Context, method, path string, query url.Values, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reqBody = bytes.NewReader(buf)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(requestIDHeader, uuid.NewString())
	if c.token != nil {
		if token := c.token(); token != "" {
			req.Header.Set(authHeader, "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{Status: resp.StatusCode}
		var payload struct {
			Message string `json:"message"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil {
			apiErr.Message = payload.Message
		}
		return apiErr
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}

func (c *HTTPClient) RequestOTP(ctx context.Context, phone string) error {
	body := map[string]string{"phone": phone}
	return c.do(ctx, http.MethodPost, "/api/auth/request-otp", nil, body, nil)
}

func (c *HTTPClient) VerifyOTP(ctx context.Context, phone, code string) (*models.AuthResult, error) {
	body := map[string]string{"phone": phone, "otp": code}
	var result models.AuthResult
	if err := c.do(ctx, http.MethodPost, "/api/auth/verify-otp", nil, body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) CurrentUser(ctx context.Context) (*models.User, error) {
	var resp struct {
		User *models.User `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/auth/user", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.User, nil
}

func (c *HTTPClient) GetUserDetails(ctx context.Context, userID string) (*models.User, error) {
	var resp struct {
		User *models.User `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/auth/user/"+url.PathEscape(userID), nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.User, nil
}

func (c *HTTPClient) ChangeUsername(ctx context.Context, newUsername string) (*models.User, error) {
	body := map[string]string{"newUsername": newUsername}
	var resp struct {
		User *models.User `json:"user"`
	}
	if err := c.do(ctx, http.MethodPut, "/api/auth/change-username", nil, body, &resp); err != nil {
		return nil, err
	}
	return resp.User, nil
}

func (c *HTTPClient) UpdateUserDetails(ctx context.Context, details models.ProfileDetails) (*models.AuthResult, error) {
	var result models.AuthResult
	if err := c.do(ctx, http.MethodPut, "/api/auth/update-details", nil, details, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) CreateVent(ctx context.Context, vent models.NewVent) error {
	return c.do(ctx, http.MethodPost, "/api/vent/create", nil, vent, nil)
}

func (c *HTTPClient) ListVents(ctx context.Context, opts ListOptions) ([]models.Vent, error) {
	query := url.Values{}
	if opts.Sort != "" {
		query.Set("sort", opts.Sort)
	}
	if opts.Page > 0 {
		query.Set("page", strconv.Itoa(opts.Page))
	}
	if opts.Limit > 0 {
		query.Set("limit", strconv.Itoa(opts.Limit))
	}
	var resp struct {
		Vents []models.Vent `json:"vents"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/vent/all", query, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Vents, nil
}

func (c *HTTPClient) FeedVents(ctx context.Context, page, limit int) ([]models.Vent, error) {
	query := url.Values{}
	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	var resp struct {
		Vents []models.Vent `json:"vents"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/vent/feed", query, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Vents, nil
}

func (c *HTTPClient) MyVents(ctx context.Context) ([]models.Vent, error) {
	var resp struct {
		Vents []models.Vent `json:"vents"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/vent/mine", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Vents, nil
}

func (c *HTTPClient) SearchVents(ctx context.Context, queryText string) ([]models.Vent, error) {
	query := url.Values{}
	query.Set("query", queryText)
	var resp struct {
		Vents []models.Vent `json:"vents"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/vent/search", query, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Vents, nil
}

func (c *HTTPClient) ReactToVent(ctx context.Context, ventID string, reaction models.Reaction) error {
	body := map[string]string{"ventId": ventID, "reactionType": string(reaction)}
	return c.do(ctx, http.MethodPost, "/api/vent/react", nil, body, nil)
}

func (c *HTTPClient) DeleteVent(ctx context.Context, ventID string) error {
	return c.do(ctx, http.MethodDelete, "/api/vent/"+url.PathEscape(ventID), nil, nil, nil)
}

func (c *HTTPClient) ReportVent(ctx context.Context, ventID string, reason string) error {
	body := map[string]string{"ventId": ventID, "reason": reason}
	return c.do(ctx, http.MethodPost, "/api/vent/report", nil, body, nil)
}

func (c *HTTPClient) MatchSuggestions(ctx context.Context) ([]models.Match, error) {
	var resp struct {
		Matches []models.Match `json:"matches"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/match/suggestions", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Matches, nil
}

func (c *HTTPClient) PendingMatches(ctx context.Context) (*models.PendingMatches, error) {
	var pending models.PendingMatches
	if err := c.do(ctx, http.MethodGet, "/api/match/pending", nil, nil, &pending); err != nil {
		return nil, err
	}
	return &pending, nil
}

func (c *HTTPClient) MatchHistory(ctx context.Context) ([]models.MatchRecord, error) {
	var resp struct {
		History []models.MatchRecord `json:"history"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/match/history", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.History, nil
}

func (c *HTTPClient) AcceptMatch(ctx context.Context, matchID string) error {
	body := map[string]string{"matchId": matchID}
	return c.do(ctx, http.MethodPost, "/api/match/accept", nil, body, nil)
}

func (c *HTTPClient) RejectMatch(ctx context.Context, matchID string) error {
	body := map[string]string{"matchId": matchID}
	return c.do(ctx, http.MethodPost, "/api/match/reject", nil, body, nil)
}

func (c *HTTPClient) UnmatchUser(ctx context.Context, matchID string) error {
	body := map[string]string{"matchId": matchID}
	return c.do(ctx, http.MethodPost, "/api/match/unmatch", nil, body, nil)
}

func (c *HTTPClient) RefreshMatches(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/match/refresh", nil, nil, nil)
}
