package remotelog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
)

const (
	authPath = "/auth"
	logsPath = "/logs"

	requestTimeout = 3 * time.Second
	// Refresh the token slightly before its claimed expiry.
	tokenExpSlack = 30 * time.Second
)

type authReq struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
}

type authRes struct {
	AccessToken string `json:"access_token"`
}

type logReq struct {
	Level   string `json:"level"`
	Source  string `json:"source"`
	Message string `json:"message"`
}

// Client delivers messages to the remote sink, re-authenticating when
// the cached bearer token expires. It is stateless between calls beyond
// the cached token.
type Client struct {
	baseURL      string
	clientID     string
	clientSecret string
	httpClient   *http.Client
	fallback     *zap.SugaredLogger

	mux      *sync.Mutex
	token    string
	tokenExp time.Time
}

// NewClient hydrates a client from stored credentials. No network call
// happens until the first message is submitted.
func NewClient(baseURL string, clientID string, clientSecret string, fallback *zap.SugaredLogger) *Client {
	return &Client{
		baseURL:      baseURL,
		clientID:     clientID,
		clientSecret: clientSecret,
		httpClient:   &http.Client{Timeout: requestTimeout},
		fallback:     fallback,
		mux:          &sync.Mutex{},
	}
}

func (c *Client) Debug(tag string, text string) { c.submit(LevelDebug, tag, text) }
func (c *Client) Info(tag string, text string)  { c.submit(LevelInfo, tag, text) }
func (c *Client) Warn(tag string, text string)  { c.submit(LevelWarn, tag, text) }
func (c *Client) Error(tag string, text string) { c.submit(LevelError, tag, text) }

func (c *Client) submit(level Level, tag string, text string) {
	if err := c.trySubmit(level, tag, text); err != nil {
		c.fallback.Warnw("remote log delivery failed", "error", err)
		// The message still reaches the local diagnostic channel.
		c.fallback.Infow(text, "source", tag, "level", level)
	}
}

func (c *Client) trySubmit(level Level, tag string, text string) error {
	token, err := c.bearerToken()
	if err != nil {
		return err
	}

	body, err := json.Marshal(logReq{
		Level:   string(level),
		Source:  tag,
		Message: text,
	})
	if err != nil {
		return fmt.Errorf("error encoding log message: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+logsPath, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("error building log request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("error delivering log message: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("log sink responded %d", res.StatusCode)
	}

	return nil
}

func (c *Client) bearerToken() (string, error) {
	c.mux.Lock()
	defer c.mux.Unlock()

	if c.token != "" && time.Now().Before(c.tokenExp.Add(-tokenExpSlack)) {
		return c.token, nil
	}

	if err := c.authenticate(); err != nil {
		return "", err
	}

	return c.token, nil
}

// authenticate exchanges the client credentials for a fresh bearer
// token. Caller must hold the mutex.
func (c *Client) authenticate() error {
	body, err := json.Marshal(authReq{
		ClientID:     c.clientID,
		ClientSecret: c.clientSecret,
	})
	if err != nil {
		return fmt.Errorf("error encoding auth request: %w", err)
	}

	res, err := c.httpClient.Post(c.baseURL+authPath, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("error authenticating with log sink: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("log sink auth responded %d", res.StatusCode)
	}

	var parsed authRes
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return fmt.Errorf("error decoding auth response: %w", err)
	}

	c.token = parsed.AccessToken
	c.tokenExp = tokenExpiry(parsed.AccessToken)

	return nil
}

// tokenExpiry reads the exp claim without verifying the signature, the
// token is only echoed back to its issuer.
func tokenExpiry(token string) time.Time {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil || claims.ExpiresAt == nil {
		return time.Now().Add(time.Hour)
	}
	return claims.ExpiresAt.Time
}
