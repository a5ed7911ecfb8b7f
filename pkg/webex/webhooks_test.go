package webex

import (
	"context"
	"io"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebhooks_CreateValidation(t *testing.T) {
	var requests atomic.Int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
	}), nil)

	tests := []struct {
		name   string
		fields WebhookFields
	}{
		{name: "empty", fields: WebhookFields{}},
		{name: "missing target URL", fields: WebhookFields{Name: "hook", Resource: "messages", Event: "created"}},
		{name: "bad target URL", fields: WebhookFields{Name: "hook", TargetURL: "nope", Resource: "messages", Event: "created"}},
		{name: "missing event", fields: WebhookFields{Name: "hook", TargetURL: "https://x/h", Resource: "messages"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.Webhooks.Create(context.Background(), tt.fields)
			var ce *ConfigError
			require.ErrorAs(t, err, &ce)
		})
	}
	assert.EqualValues(t, 0, requests.Load())
}

func TestWebhooks_CreateAndUpdate(t *testing.T) {
	var gotMethod, gotPath, gotBody string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.Write([]byte(`{"id":"wh1","name":"hook"}`))
	}), nil)

	_, err := client.Webhooks.Create(context.Background(), WebhookFields{
		Name:      "hook",
		TargetURL: "https://example.com/hook",
		Resource:  "messages",
		Event:     "created",
		Filter:    "roomId=r1",
		Secret:    "s3cret",
	})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/v1/webhooks", gotPath)
	assert.JSONEq(t, `{
		"name": "hook",
		"targetUrl": "https://example.com/hook",
		"resource": "messages",
		"event": "created",
		"filter": "roomId=r1",
		"secret": "s3cret"
	}`, gotBody)

	_, err = client.Webhooks.Update(context.Background(), "wh1", "renamed", "https://example.com/hook2")
	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/v1/webhooks/wh1", gotPath)
	assert.JSONEq(t, `{"name":"renamed","targetUrl":"https://example.com/hook2"}`, gotBody)
}
