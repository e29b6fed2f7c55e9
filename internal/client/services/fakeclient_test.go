package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/fittracker/internal/client/client"
)

// fakeClient is an in-memory client.Client.
type fakeClient struct {
	token     string
	loginErr  error
	listErr   map[client.Resource]error
	createErr error
	remote    map[client.Resource][]string
	created   map[client.Resource][]map[string]any
	subscribe []string
	nextID    int
	loginWith string
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		listErr: map[client.Resource]error{},
		remote:  map[client.Resource][]string{},
		created: map[client.Resource][]map[string]any{},
		nextID:  100,
	}
}

func (f *fakeClient) Login(_ context.Context, email string, password []byte) (string, error) {
	if f.loginErr != nil {
		return "", f.loginErr
	}
	f.loginWith = email + ":" + string(password)
	f.token = "tok-" + email
	return f.token, nil
}

func (f *fakeClient) Register(_ context.Context, name, _ string, _ []byte) (string, error) {
	f.nextID++
	return fmt.Sprint(f.nextID), nil
}

func (f *fakeClient) Ping(context.Context) error { return nil }

func (f *fakeClient) List(_ context.Context, r client.Resource) ([]json.RawMessage, error) {
	if err := f.listErr[r]; err != nil {
		return nil, err
	}
	out := make([]json.RawMessage, 0, len(f.remote[r]))
	for _, s := range f.remote[r] {
		out = append(out, json.RawMessage(s))
	}
	return out, nil
}

func (f *fakeClient) Create(_ context.Context, r client.Resource, body any) (string, error) {
	if f.createErr != nil {
		return "", f.createErr
	}
	f.created[r] = append(f.created[r], body.(map[string]any))
	f.nextID++
	return fmt.Sprint(f.nextID), nil
}

func (f *fakeClient) Subscribe(_ context.Context, email string) error {
	f.subscribe = append(f.subscribe, email)
	return nil
}

func (f *fakeClient) SetToken(token string) { f.token = token }
func (f *fakeClient) Token() string         { return f.token }
