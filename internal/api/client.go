package api

import (
	"context"
	"fmt"
	"sync"

	http "github.com/bogdanfinn/fhttp"
	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/diogo/nexichat/internal/config"
	"github.com/diogo/nexichat/internal/models"
)

// HTTPDoer is the subset of tls_client.HttpClient the chat client needs
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ChatClientInterface defines the operations the UI and commands need
type ChatClientInterface interface {
	Send(ctx context.Context, message string) (string, error)
	Endpoint() string
	Close()
}

// ChatClient posts user messages to the chat collaborator
type ChatClient struct {
	httpClient HTTPDoer
	endpoint   string
	headers    map[string]string
	logger     *zap.Logger
	newID      func() string
	mu         sync.RWMutex
	closed     bool
}

// Ensure ChatClient implements ChatClientInterface
var _ ChatClientInterface = (*ChatClient)(nil)

// ClientOption is a function that configures the client
type ClientOption func(*ChatClient)

// WithEndpoint sets the full URL requests are posted to
func WithEndpoint(endpoint string) ClientOption {
	return func(c *ChatClient) {
		c.endpoint = endpoint
	}
}

// WithLogger sets the diagnostic logger
func WithLogger(logger *zap.Logger) ClientOption {
	return func(c *ChatClient) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithHTTPClient replaces the transport (used by tests)
func WithHTTPClient(doer HTTPDoer) ClientOption {
	return func(c *ChatClient) {
		c.httpClient = doer
	}
}

// WithHeader adds a header sent with every request
func WithHeader(key, value string) ClientOption {
	return func(c *ChatClient) {
		c.headers[key] = value
	}
}

// WithRequestIDFunc overrides how request IDs are generated
func WithRequestIDFunc(fn func() string) ClientOption {
	return func(c *ChatClient) {
		if fn != nil {
			c.newID = fn
		}
	}
}

// NewClient creates a new ChatClient
func NewClient(opts ...ClientOption) (*ChatClient, error) {
	client := &ChatClient{
		endpoint: models.DefaultEndpoint,
		headers:  models.DefaultHeaders(),
		logger:   zap.NewNop(),
		newID:    uuid.NewString,
	}

	for _, opt := range opts {
		opt(client)
	}

	if err := config.ValidateEndpoint(client.endpoint); err != nil {
		return nil, err
	}

	if client.httpClient == nil {
		// A zero timeout leaves requests to run until the collaborator answers or the connection fails.
		options := []tls_client.HttpClientOption{
			tls_client.WithTimeoutSeconds(0),
			tls_client.WithClientProfile(profiles.Chrome_120),
		}

		httpClient, err := tls_client.NewHttpClient(tls_client.NewNoopLogger(), options...)
		if err != nil {
			return nil, fmt.Errorf("failed to create HTTP client: %w", err)
		}
		client.httpClient = httpClient
	}

	return client, nil
}

// Endpoint returns the URL requests are posted to
func (c *ChatClient) Endpoint() string {
	return c.endpoint
}

// Close releases idle connections. Sending after Close fails.
func (c *ChatClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true

	if idle, ok := c.httpClient.(interface{ CloseIdleConnections() }); ok {
		idle.CloseIdleConnections()
	}
}

// IsClosed returns whether the client is closed
func (c *ChatClient) IsClosed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.closed
}
