package webex

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_PeopleListScenario(t *testing.T) {
	var gotAuth, gotPath, gotEmail string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		gotEmail = r.URL.Query().Get("email")
		w.Write([]byte(`{"items":[{"id":"p1","emails":["a@b.com"],"displayName":"A B"}]}`))
	}), func(cfg *Config) {
		cfg.AccessToken = "abc"
	})

	people, err := client.People.List(context.Background(), PeopleListOptions{Email: "a@b.com"}).Collect()
	require.NoError(t, err)

	assert.Equal(t, "Bearer abc", gotAuth)
	assert.Equal(t, "/v1/people", gotPath)
	assert.Equal(t, "a@b.com", gotEmail)

	require.Len(t, people, 1)
	assert.Equal(t, "a@b.com", people[0].StringSlice("emails")[0])
	assert.Equal(t, "A B", people[0].String("displayName"))
}

func TestClient_Getters(t *testing.T) {
	wait := false
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}), func(cfg *Config) {
		cfg.AccessToken = "abc"
		cfg.Timeout = 17 * time.Second
		cfg.WaitOnRateLimit = &wait
	})

	assert.Equal(t, "abc", client.AccessToken())
	assert.Equal(t, 17*time.Second, client.Timeout())
	assert.False(t, client.WaitOnRateLimit())
	assert.Contains(t, client.BaseURL(), "/v1/")
}

func TestClient_AccessorsShareOneSession(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}), nil)

	assert.Same(t, client.Session(), client.People.session)
	assert.Same(t, client.Session(), client.Rooms.session)
	assert.Same(t, client.Session(), client.Messages.session)
	assert.Same(t, client.Session(), client.Webhooks.session)
	assert.Same(t, client.Session(), client.Events.session)
}

func TestClient_CustomObjectFactory(t *testing.T) {
	var factoryCalls int
	custom := func(resource string, data map[string]any) (Record, error) {
		factoryCalls++
		data["injected"] = resource
		return RecordFactory(resource, data)
	}

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"r1"}`))
	}), func(cfg *Config) {
		cfg.ObjectFactory = custom
	})

	room, err := client.Rooms.Get(context.Background(), "r1")
	require.NoError(t, err)

	assert.Equal(t, 1, factoryCalls)
	assert.Equal(t, "room", room.String("injected"))
}

func TestClient_InvalidConfig(t *testing.T) {
	_, err := New(context.Background(), &Config{
		AccessToken: "abc",
		BaseURL:     "ftp://example.com/v1/",
	})

	var ce *ConfigError
	require.ErrorAs(t, err, &ce)
	assert.Contains(t, ce.Error(), "scheme")
}

func TestClient_ConfigNotMutated(t *testing.T) {
	cfg := &Config{AccessToken: "abc"}
	client, err := New(context.Background(), cfg)
	require.NoError(t, err)
	defer client.Close()

	assert.Empty(t, cfg.BaseURL)
	assert.Nil(t, cfg.WaitOnRateLimit)
	assert.Nil(t, cfg.ObjectFactory)
}

func TestWith_ClosesOnSuccessAndError(t *testing.T) {
	var captured *Client

	err := With(context.Background(), &Config{AccessToken: "abc"}, func(c *Client) error {
		captured = c
		return nil
	})
	require.NoError(t, err)
	_, err = captured.Session().Request(context.Background(), "GET", "rooms", nil, nil)
	assert.ErrorIs(t, err, ErrSessionClosed)

	sentinel := errors.New("boom")
	err = With(context.Background(), &Config{AccessToken: "abc"}, func(c *Client) error {
		captured = c
		return sentinel
	})
	assert.ErrorIs(t, err, sentinel)
	_, err = captured.Session().Request(context.Background(), "GET", "rooms", nil, nil)
	assert.ErrorIs(t, err, ErrSessionClosed)
}

func TestClients_AreIndependent(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})
	a := newTestClient(t, handler, func(cfg *Config) { cfg.AccessToken = "token-a" })
	b := newTestClient(t, handler, func(cfg *Config) { cfg.AccessToken = "token-b" })

	require.NoError(t, a.Close())

	// Closing one client must not affect the other.
	_, err := b.Session().Request(context.Background(), "GET", "rooms", nil, nil)
	assert.NoError(t, err)
	assert.Equal(t, "token-b", b.AccessToken())
}
