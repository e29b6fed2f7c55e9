package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/dmitrijs2005/fittracker/internal/common"
	"github.com/go-resty/resty/v2"
)

// Resource is a collection endpoint of the backend.
type Resource string

const (
	ResourceUsers     Resource = "/usuarios"
	ResourceMeals     Resource = "/refeicoes"
	ResourceWorkouts  Resource = "/treinos"
	ResourceHydration Resource = "/hidratacao"
	ResourceHabits    Resource = "/habitos"
	ResourceReminders Resource = "/lembretes"

	pathLogin      = "/login"
	pathNewsletter = "/newsletter/inscrever"
	pathPing       = "/"
)

// Client is the remote API contract used by the auth and sync services.
type Client interface {
	Login(ctx context.Context, email string, password []byte) (string, error)
	Register(ctx context.Context, name, email string, password []byte) (string, error)
	Ping(ctx context.Context) error
	List(ctx context.Context, r Resource) ([]json.RawMessage, error)
	Create(ctx context.Context, r Resource, body any) (string, error)
	Subscribe(ctx context.Context, email string) error
	SetToken(token string)
	Token() string
}

type RESTClient struct {
	http       *resty.Client
	newBackOff func() backoff.BackOff

	mu    sync.RWMutex
	token string
}

type Option func(*RESTClient)

// WithBackOff sets the retry policy for reads.
func WithBackOff(f func() backoff.BackOff) Option {
	return func(c *RESTClient) { c.newBackOff = f }
}

func NewRESTClient(baseURL string, timeout time.Duration, opts ...Option) *RESTClient {
	c := &RESTClient{
		http: resty.New().
			SetBaseURL(baseURL).
			SetHeader("Content-Type", "application/json").
			SetTimeout(timeout),
		newBackOff: defaultBackOff,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func defaultBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 200 * time.Millisecond
	b.MaxInterval = 2 * time.Second
	b.MaxElapsedTime = 10 * time.Second
	return backoff.WithMaxRetries(b, 3)
}

func (c *RESTClient) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

func (c *RESTClient) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

type loginRequest struct {
	Email string `json:"email"`
	Senha string `json:"senha"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Login exchanges credentials for a bearer token and keeps it for later calls.
func (c *RESTClient) Login(ctx context.Context, email string, password []byte) (string, error) {
	body, err := c.do(ctx, http.MethodPost, pathLogin, loginRequest{Email: email, Senha: string(password)})
	if err != nil {
		return "", err
	}
	var resp loginResponse
	if err := json.Unmarshal(unwrap(body), &resp); err != nil {
		return "", fmt.Errorf("decode login response: %w", err)
	}
	if resp.Token == "" {
		return "", common.ErrInvalidToken
	}
	c.SetToken(resp.Token)
	return resp.Token, nil
}

type registerRequest struct {
	Nome  string `json:"nome"`
	Email string `json:"email"`
	Senha string `json:"senha"`
}

// Register creates a remote user and returns its id.
func (c *RESTClient) Register(ctx context.Context, name, email string, password []byte) (string, error) {
	return c.Create(ctx, ResourceUsers, registerRequest{Nome: name, Email: email, Senha: string(password)})
}

func (c *RESTClient) Ping(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodGet, pathPing, nil)
	return err
}

// List fetches every record of r. Transport errors and 5xx answers are
// retried.
func (c *RESTClient) List(ctx context.Context, r Resource) ([]json.RawMessage, error) {
	body, err := c.get(ctx, string(r))
	if err != nil {
		return nil, err
	}
	var items []json.RawMessage
	data := unwrap(body)
	if len(bytes.TrimSpace(data)) == 0 || string(bytes.TrimSpace(data)) == "null" {
		return items, nil
	}
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", r, err)
	}
	return items, nil
}

// Create posts body to r and returns the id assigned by the backend.
func (c *RESTClient) Create(ctx context.Context, r Resource, body any) (string, error) {
	resp, err := c.do(ctx, http.MethodPost, string(r), body)
	if err != nil {
		return "", err
	}
	var created struct {
		ID json.RawMessage `json:"id"`
	}
	if err := json.Unmarshal(unwrap(resp), &created); err != nil {
		return "", fmt.Errorf("decode %s: %w", r, err)
	}
	return rawID(created.ID), nil
}

func (c *RESTClient) Subscribe(ctx context.Context, email string) error {
	_, err := c.do(ctx, http.MethodPost, pathNewsletter, map[string]string{"email": email})
	return err
}

func (c *RESTClient) get(ctx context.Context, path string) ([]byte, error) {
	var out []byte
	op := func() error {
		body, err := c.do(ctx, http.MethodGet, path, nil)
		if err == nil {
			out = body
			return nil
		}
		var re *RemoteError
		if errors.As(err, &re) && !re.Temporary() {
			return backoff.Permanent(err)
		}
		if ctx.Err() != nil {
			return backoff.Permanent(err)
		}
		return err
	}
	if err := backoff.Retry(op, backoff.WithContext(c.newBackOff(), ctx)); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *RESTClient) do(ctx context.Context, method, path string, body any) ([]byte, error) {
	req := c.http.R().SetContext(ctx)
	if token := c.Token(); token != "" {
		req.SetAuthToken(token)
	}
	if body != nil {
		req.SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %s %s: %w", ErrUnavailable, method, path, err)
	}
	if !resp.IsSuccess() {
		return nil, remoteError(resp.StatusCode(), resp.Body())
	}
	return resp.Body(), nil
}

func remoteError(status int, body []byte) *RemoteError {
	var e struct {
		Erro    string `json:"erro"`
		Message string `json:"message"`
	}
	_ = json.Unmarshal(body, &e)
	msg := e.Erro
	if msg == "" {
		msg = e.Message
	}
	if msg == "" {
		msg = "HTTP " + strconv.Itoa(status)
	}
	return &RemoteError{Status: status, Message: msg}
}

// unwrap returns the data member of a {mensagem, data} envelope, or body
// itself when it is not one.
func unwrap(body []byte) json.RawMessage {
	var env map[string]json.RawMessage
	if err := json.Unmarshal(body, &env); err != nil {
		return body
	}
	if data, ok := env["data"]; ok {
		return data
	}
	return body
}

// rawID renders a JSON number or string id as text.
func rawID(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}
