package webex

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/url"
	"path/filepath"
	"strconv"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/spf13/afero"
)

// MessagesAPI exposes the /messages resource, including local-file
// attachment upload.
type MessagesAPI struct {
	apiGroup
	fs afero.Fs
}

func newMessagesAPI(s *Session, factory ObjectFactory) *MessagesAPI {
	return &MessagesAPI{
		apiGroup: newAPIGroup(s, factory, "message", "messages"),
		fs:       afero.NewOsFs(),
	}
}

// MessagesListOptions filter a messages listing. RoomID is required.
type MessagesListOptions struct {
	RoomID          string
	MentionedPeople string
	Before          time.Time
	BeforeMessage   string
	Max             int
}

func (o MessagesListOptions) validate() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.RoomID, validation.Required),
		validation.Field(&o.Max, validation.Min(0)),
	)
}

func (o MessagesListOptions) query() url.Values {
	params := url.Values{}
	params.Set("roomId", o.RoomID)
	if o.MentionedPeople != "" {
		params.Set("mentionedPeople", o.MentionedPeople)
	}
	if !o.Before.IsZero() {
		params.Set("before", o.Before.UTC().Format(time.RFC3339))
	}
	if o.BeforeMessage != "" {
		params.Set("beforeMessage", o.BeforeMessage)
	}
	if o.Max > 0 {
		params.Set("max", strconv.Itoa(o.Max))
	}
	return params
}

// MessageFields describes an outgoing message. Exactly one destination
// (RoomID, ToPersonID, or ToPersonEmail) must be set, and at least one of
// Text, Markdown, Files, or LocalFile. Files holds remote URLs the API
// fetches itself; LocalFile is a path on this machine uploaded as
// multipart form data.
type MessageFields struct {
	RoomID        string   `json:"roomId,omitempty"`
	ParentID      string   `json:"parentId,omitempty"`
	ToPersonID    string   `json:"toPersonId,omitempty"`
	ToPersonEmail string   `json:"toPersonEmail,omitempty"`
	Text          string   `json:"text,omitempty"`
	Markdown      string   `json:"markdown,omitempty"`
	Files         []string `json:"files,omitempty"`

	LocalFile string `json:"-"`
}

func (f MessageFields) validate() error {
	destinations := 0
	for _, d := range []string{f.RoomID, f.ToPersonID, f.ToPersonEmail} {
		if d != "" {
			destinations++
		}
	}
	if destinations != 1 {
		return errors.New("exactly one of roomId, toPersonId, or toPersonEmail must be set")
	}
	if f.Text == "" && f.Markdown == "" && len(f.Files) == 0 && f.LocalFile == "" {
		return errors.New("one of text, markdown, files, or a local file is required")
	}
	if len(f.Files) > 0 && f.LocalFile != "" {
		return errors.New("remote file URLs and a local file cannot be combined")
	}
	return nil
}

// List returns messages in a room, newest first.
func (api *MessagesAPI) List(ctx context.Context, opts MessagesListOptions) *RecordIterator {
	if err := opts.validate(); err != nil {
		return api.failedIterator(&ConfigError{Reason: "invalid messages list options", Err: err})
	}
	return api.list(ctx, opts.query())
}

// Create posts a message. When LocalFile is set, the message and the file
// are sent together as one multipart upload.
func (api *MessagesAPI) Create(ctx context.Context, fields MessageFields) (Record, error) {
	if err := fields.validate(); err != nil {
		return Record{}, &ConfigError{Reason: "invalid message", Err: err}
	}
	if fields.LocalFile == "" {
		return api.create(ctx, fields)
	}
	return api.createWithUpload(ctx, fields)
}

// Get retrieves a message by ID.
func (api *MessagesAPI) Get(ctx context.Context, messageID string) (Record, error) {
	if err := api.requireID("messageId", messageID); err != nil {
		return Record{}, err
	}
	return api.get(ctx, messageID, nil)
}

// Delete removes a message.
func (api *MessagesAPI) Delete(ctx context.Context, messageID string) error {
	if err := api.requireID("messageId", messageID); err != nil {
		return err
	}
	return api.delete(ctx, messageID)
}

// createWithUpload sends the message as multipart form data with the local
// file attached. The form is materialized up front so a rate-limited
// request can be retried byte-for-byte.
func (api *MessagesAPI) createWithUpload(ctx context.Context, fields MessageFields) (Record, error) {
	file, err := api.fs.Open(fields.LocalFile)
	if err != nil {
		return Record{}, &ConfigError{Reason: fmt.Sprintf("cannot open attachment %q", fields.LocalFile), Err: err}
	}
	defer file.Close()

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)

	values := map[string]string{
		"roomId":        fields.RoomID,
		"parentId":      fields.ParentID,
		"toPersonId":    fields.ToPersonID,
		"toPersonEmail": fields.ToPersonEmail,
		"text":          fields.Text,
		"markdown":      fields.Markdown,
	}
	for name, value := range values {
		if value == "" {
			continue
		}
		if err := form.WriteField(name, value); err != nil {
			return Record{}, fmt.Errorf("build upload form: %w", err)
		}
	}

	part, err := form.CreateFormFile("files", filepath.Base(fields.LocalFile))
	if err != nil {
		return Record{}, fmt.Errorf("build upload form: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return Record{}, fmt.Errorf("read attachment %q: %w", fields.LocalFile, err)
	}
	if err := form.Close(); err != nil {
		return Record{}, fmt.Errorf("build upload form: %w", err)
	}

	raw, err := api.session.Post(ctx, api.endpoint, form.FormDataContentType(), buf.Bytes())
	if err != nil {
		return Record{}, err
	}
	return api.toRecord(raw, api.endpoint)
}
