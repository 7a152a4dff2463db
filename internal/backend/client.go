package backend

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
	"time"

	"github.com/vytor/ladderflash/internal/credentials"
	"github.com/vytor/ladderflash/internal/errors"
	"github.com/vytor/ladderflash/internal/logger"
	"github.com/vytor/ladderflash/internal/models"
)

// Client talks to the card service over HTTP/JSON. Authenticated calls
// pull a bearer token from the injected credential source and fail with
// errors.ErrMissingCredential before building a request when it is empty.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	creds      credentials.Source
}

const defaultTimeout = 15 * time.Second

type Option func(*Client)

// WithHTTPClient uses hc as is; WithTimeout does not touch it.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the timeout of the client New builds when no
// WithHTTPClient is given.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

func New(baseURL string, creds credentials.Source, opts ...Option) *Client {
	if creds == nil {
		creds = credentials.Static("")
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: defaultTimeout,
		creds:   creds,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: c.timeout}
	}
	return c
}

type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type request struct {
	method string
	path   string
	query  url.Values
	body   any
	auth   bool
}

func (c *Client) do(ctx context.Context, r request, out any) error {
	log := logger.FromContext(ctx).WithPrefix("backend").WithFields(map[string]any{
		"method": r.method,
		"path":   r.path,
	})

	var token string
	if r.auth {
		tok, err := c.creds.Token(ctx)
		if err != nil {
			log.Error("failed to read credential: %v", err)
			return fmt.Errorf("read credential: %w", err)
		}
		if tok == "" {
			log.Warn("no credential available, request not sent")
			return errors.ErrMissingCredential
		}
		token = tok
	}

	endpoint := c.baseURL + r.path
	if len(r.query) > 0 {
		endpoint += "?" + r.query.Encode()
	}

	var body io.Reader
	if r.body != nil {
		payload, err := json.Marshal(r.body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, endpoint, body)
	if err != nil {
		log.Error("failed to create request: %v", err)
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("request failed: %v", err)
		return err
	}
	defer resp.Body.Close()

	log.Debug("response received in %v, status=%d", time.Since(start), resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		log.Error("failed to decode response: %v", err)
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var eb errorBody
	if err := json.Unmarshal(raw, &eb); err == nil && eb.Error.Code != "" {
		return &errors.AppError{Code: eb.Error.Code, Message: eb.Error.Message, Status: resp.StatusCode}
	}
	code := errors.ErrCodeInternal
	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		code = errors.ErrCodeUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		code = errors.ErrCodeNotFound
	case resp.StatusCode < 500:
		code = errors.ErrCodeBadRequest
	}
	return &errors.AppError{
		Code:    code,
		Message: fmt.Sprintf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw))),
		Status:  resp.StatusCode,
	}
}

type credentialsBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username,omitempty"`
}

func (c *Client) Register(ctx context.Context, email, password, username string) (*models.TokenResponse, error) {
	var out models.TokenResponse
	err := c.do(ctx, request{method: http.MethodPost, path: "/auth/register",
		body: credentialsBody{Email: email, Password: password, Username: username}}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*models.TokenResponse, error) {
	var out models.TokenResponse
	err := c.do(ctx, request{method: http.MethodPost, path: "/auth/login",
		body: credentialsBody{Email: email, Password: password}}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var out models.User
	if err := c.do(ctx, request{method: http.MethodGet, path: "/auth/me", auth: true}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Decks(ctx context.Context) ([]models.Deck, error) {
	var out []models.Deck
	if err := c.do(ctx, request{method: http.MethodGet, path: "/decks", auth: true}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateDeck(ctx context.Context, deck models.Deck) (*models.Deck, error) {
	body := map[string]string{
		"title":       deck.Title,
		"description": deck.Description,
		"color":       deck.Color,
	}
	var out models.Deck
	if err := c.do(ctx, request{method: http.MethodPost, path: "/decks", body: body, auth: true}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeckWithCards(ctx context.Context, deckID string) (*models.DeckWithCards, error) {
	var out models.DeckWithCards
	path := "/decks/" + url.PathEscape(deckID)
	if err := c.do(ctx, request{method: http.MethodGet, path: path, auth: true}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateCard(ctx context.Context, deckID, title string, levels []models.LevelContent) (*models.Card, error) {
	body := struct {
		Title  string                `json:"title"`
		Levels []models.LevelContent `json:"levels"`
	}{title, levels}
	var out models.Card
	path := "/decks/" + url.PathEscape(deckID) + "/cards"
	if err := c.do(ctx, request{method: http.MethodPost, path: path, body: body, auth: true}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Card(ctx context.Context, cardID string) (*models.Card, error) {
	var out models.Card
	if err := c.do(ctx, request{method: http.MethodGet, path: cardPath(cardID, ""), auth: true}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ReviewQueue loads the ordered study queue. An empty deckID means every deck.
func (c *Client) ReviewQueue(ctx context.Context, deckID string, limit int) ([]models.Card, error) {
	q := url.Values{}
	if deckID != "" {
		q.Set("deck_id", deckID)
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	var out []models.Card
	if err := c.do(ctx, request{method: http.MethodGet, path: "/review/cards", query: q, auth: true}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) SubmitReview(ctx context.Context, cardID string, rating models.Rating) error {
	body := map[string]models.Rating{"rating": rating}
	return c.do(ctx, request{method: http.MethodPost, path: cardPath(cardID, "/review"), body: body, auth: true}, nil)
}

func (c *Client) SetActiveLevel(ctx context.Context, cardID string, level int) error {
	body := map[string]int{"level": level}
	return c.do(ctx, request{method: http.MethodPut, path: cardPath(cardID, "/active-level"), body: body, auth: true}, nil)
}

func (c *Client) DeleteLevel(ctx context.Context, cardID string, index int) error {
	path := cardPath(cardID, "/levels/"+strconv.Itoa(index))
	return c.do(ctx, request{method: http.MethodDelete, path: path, auth: true}, nil)
}

func (c *Client) UpsertLevel(ctx context.Context, cardID string, index int, content models.LevelContent) error {
	path := cardPath(cardID, "/levels/"+strconv.Itoa(index))
	return c.do(ctx, request{method: http.MethodPut, path: path, body: content, auth: true}, nil)
}

func (c *Client) SetMaxLevel(ctx context.Context, cardID string, count int) error {
	body := map[string]int{"max_level": count}
	return c.do(ctx, request{method: http.MethodPut, path: cardPath(cardID, "/max-level"), body: body, auth: true}, nil)
}

func (c *Client) Stats(ctx context.Context) (*models.Statistics, error) {
	var out models.Statistics
	if err := c.do(ctx, request{method: http.MethodGet, path: "/stats", auth: true}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func cardPath(cardID, suffix string) string {
	return "/cards/" + url.PathEscape(cardID) + suffix
}
