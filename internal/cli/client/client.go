// Package client is the uniform request-issuing facade for every backend
// capability: auth, agents, properties, chat, and insights. It attaches the
// session credential, serializes bodies, and normalizes every non-success
// response into an APIError. Retry policy belongs to callers.
package client

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/url"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	hzclient "github.com/cloudwego/hertz/pkg/app/client"
	"github.com/cloudwego/hertz/pkg/network/standard"
	"github.com/cloudwego/hertz/pkg/protocol"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"github.com/investmateai/imctl/internal/cli/types"
)

// TokenSource supplies the bearer token for authenticated calls.
// An empty token means the session is anonymous.
type TokenSource interface {
	Token() string
}

// Client wraps the Hertz HTTP client for communication with the
// InvestMateAI backend.
type Client struct {
	client *hzclient.Client
	server string
	creds  TokenSource
}

// New creates an API client against the given base server URL. creds may be
// nil for a purely anonymous client.
func New(server string, creds TokenSource) (*Client, error) {
	normalized, err := normalizeServerURL(server)
	if err != nil {
		return nil, fmt.Errorf("invalid server URL: %w", err)
	}

	c, err := hzclient.NewClient(
		hzclient.WithDialTimeout(10*time.Second),
		hzclient.WithMaxIdleConnDuration(60*time.Second),
		hzclient.WithDialer(standard.NewDialer()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP client: %w", err)
	}

	return &Client{
		client: c,
		server: normalized,
		creds:  creds,
	}, nil
}

// normalizeServerURL ensures the server URL has a scheme and no trailing path
func normalizeServerURL(server string) (string, error) {
	if !strings.Contains(server, "://") {
		server = "http://" + server
	}

	u, err := url.Parse(server)
	if err != nil || u.Host == "" {
		return "", fmt.Errorf("invalid server URL")
	}

	return fmt.Sprintf("%s://%s", u.Scheme, u.Host), nil
}

// token returns the current bearer token, or "" when anonymous
func (c *Client) token() string {
	if c.creds == nil {
		return ""
	}
	return c.creds.Token()
}

// authorize attaches the bearer header when a credential is present
func (c *Client) authorize(req *protocol.Request) {
	if t := c.token(); t != "" {
		req.Header.Set("Authorization", "Bearer "+t)
	}
}

// invoke sends the request, normalizes failures, and decodes a JSON success
// body into out when out is non-nil. It releases both request and response.
func (c *Client) invoke(ctx context.Context, req *protocol.Request, out interface{}) error {
	resp := protocol.AcquireResponse()
	defer func() {
		protocol.ReleaseRequest(req)
		protocol.ReleaseResponse(resp)
	}()

	slog.Debug("api request", "method", string(req.Method()), "path", string(req.Path()))

	if err := c.client.Do(ctx, req, resp); err != nil {
		return fmt.Errorf("request failed: %w", err)
	}

	status := resp.StatusCode()
	if status < 200 || status >= 300 {
		return &APIError{
			Status:     status,
			Diagnostic: strings.TrimSpace(string(resp.Body())),
		}
	}

	if out == nil {
		return nil
	}
	if err := sonic.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return nil
}

// newJSONRequest builds a request carrying a JSON body
func (c *Client) newJSONRequest(method, uri string, body interface{}) (*protocol.Request, error) {
	req := protocol.AcquireRequest()
	req.SetMethod(method)
	req.SetRequestURI(c.server + uri)

	if body != nil {
		data, err := sonic.Marshal(body)
		if err != nil {
			protocol.ReleaseRequest(req)
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		req.Header.SetContentTypeBytes([]byte("application/json"))
		req.SetBody(data)
	}

	return req, nil
}

// Login exchanges credentials for a bearer token. The backend speaks a
// password-grant style contract, so the body is form-encoded.
func (c *Client) Login(ctx context.Context, email, password string) (*types.Credential, error) {
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	req := protocol.AcquireRequest()
	req.SetMethod(consts.MethodPost)
	req.SetRequestURI(c.server + endpointLogin)
	req.Header.SetContentTypeBytes([]byte("application/x-www-form-urlencoded"))
	req.SetBody([]byte(form.Encode()))

	var cred types.Credential
	if err := c.invoke(ctx, req, &cred); err != nil {
		return nil, err
	}

	return &cred, nil
}

// Register creates a new agent account. No credential is required.
func (c *Client) Register(ctx context.Context, reg *types.RegisterRequest) (*types.Agent, error) {
	req, err := c.newJSONRequest(consts.MethodPost, endpointAgents, reg)
	if err != nil {
		return nil, err
	}

	var agent types.Agent
	if err := c.invoke(ctx, req, &agent); err != nil {
		return nil, err
	}

	return &agent, nil
}

// ListAgents fetches the roster of registered agents. Usable anonymously.
func (c *Client) ListAgents(ctx context.Context) ([]types.Agent, error) {
	req := protocol.AcquireRequest()
	req.SetMethod(consts.MethodGet)
	req.SetRequestURI(c.server + endpointAgents)

	var agents []types.Agent
	if err := c.invoke(ctx, req, &agents); err != nil {
		return nil, err
	}

	return agents, nil
}

// GetAgent fetches a single agent record
func (c *Client) GetAgent(ctx context.Context, agentID string) (*types.Agent, error) {
	req := protocol.AcquireRequest()
	req.SetMethod(consts.MethodGet)
	req.SetRequestURI(c.server + fmt.Sprintf(endpointAgentByID, agentID))
	c.authorize(req)

	var agent types.Agent
	if err := c.invoke(ctx, req, &agent); err != nil {
		return nil, err
	}

	return &agent, nil
}

// ListProperties fetches property listings. The credential is attached when
// present; anonymous calls see the public view.
func (c *Client) ListProperties(ctx context.Context) ([]types.Property, error) {
	req := protocol.AcquireRequest()
	req.SetMethod(consts.MethodGet)
	req.SetRequestURI(c.server + endpointProperties)
	c.authorize(req)

	var props []types.Property
	if err := c.invoke(ctx, req, &props); err != nil {
		return nil, err
	}

	return props, nil
}

// CreateProperty creates a new property listing. Requires a credential.
func (c *Client) CreateProperty(ctx context.Context, create *types.CreatePropertyRequest) (*types.Property, error) {
	req, err := c.newJSONRequest(consts.MethodPost, endpointProperties, create)
	if err != nil {
		return nil, err
	}
	c.authorize(req)

	var prop types.Property
	if err := c.invoke(ctx, req, &prop); err != nil {
		return nil, err
	}

	return &prop, nil
}

// UploadPropertyImage uploads an image file for a property as a multipart
// body. Requires a credential.
func (c *Client) UploadPropertyImage(ctx context.Context, propertyID, filename string, content []byte) (*types.ImageRef, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to build multipart body: %w", err)
	}
	if _, err := part.Write(content); err != nil {
		return nil, fmt.Errorf("failed to build multipart body: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to build multipart body: %w", err)
	}

	req := protocol.AcquireRequest()
	req.SetMethod(consts.MethodPost)
	req.SetRequestURI(c.server + fmt.Sprintf(endpointPropertyImageUpload, propertyID))
	req.Header.SetContentTypeBytes([]byte(w.FormDataContentType()))
	req.SetBody(buf.Bytes())
	c.authorize(req)

	var ref types.ImageRef
	if err := c.invoke(ctx, req, &ref); err != nil {
		return nil, err
	}

	return &ref, nil
}

// GetPropertyImageURL fetches the image reference for a property. Usable anonymously.
func (c *Client) GetPropertyImageURL(ctx context.Context, propertyID string) (*types.ImageRef, error) {
	req := protocol.AcquireRequest()
	req.SetMethod(consts.MethodGet)
	req.SetRequestURI(c.server + fmt.Sprintf(endpointPropertyImageURL, propertyID))

	var ref types.ImageRef
	if err := c.invoke(ctx, req, &ref); err != nil {
		return nil, err
	}

	return &ref, nil
}

// Chat posts one chat turn and returns the assistant's answer with any
// property results. The credential is attached when present.
func (c *Client) Chat(ctx context.Context, question, agentID string) (*types.ChatResponse, error) {
	req, err := c.newJSONRequest(consts.MethodPost, endpointChat, &types.ChatRequest{
		Question: question,
		AgentID:  agentID,
	})
	if err != nil {
		return nil, err
	}
	c.authorize(req)

	var chatResp types.ChatResponse
	if err := c.invoke(ctx, req, &chatResp); err != nil {
		return nil, err
	}

	return &chatResp, nil
}

// GetChatInsights fetches the aggregated analytics payload for the
// authenticated agent.
func (c *Client) GetChatInsights(ctx context.Context) (*types.ChatInsights, error) {
	req := protocol.AcquireRequest()
	req.SetMethod(consts.MethodGet)
	req.SetRequestURI(c.server + endpointInsights)
	c.authorize(req)

	var insights types.ChatInsights
	if err := c.invoke(ctx, req, &insights); err != nil {
		return nil, err
	}

	return &insights, nil
}
