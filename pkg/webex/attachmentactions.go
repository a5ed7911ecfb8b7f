package webex

import (
	"context"
	"errors"
)

// AttachmentActionsAPI exposes the /attachment/actions resource, the
// submissions users make against adaptive cards.
type AttachmentActionsAPI struct {
	apiGroup
}

func newAttachmentActionsAPI(s *Session, factory ObjectFactory) *AttachmentActionsAPI {
	return &AttachmentActionsAPI{newAPIGroup(s, factory, "attachmentAction", "attachment/actions")}
}

// AttachmentActionFields describes a card submission.
type AttachmentActionFields struct {
	Type      string         `json:"type,omitempty"`
	MessageID string         `json:"messageId,omitempty"`
	Inputs    map[string]any `json:"inputs,omitempty"`
}

func (f AttachmentActionFields) validate() error {
	if f.MessageID == "" {
		return errors.New("messageId is required")
	}
	if f.Type == "" {
		return errors.New("type is required")
	}
	return nil
}

// Create submits an attachment action against a card message.
func (api *AttachmentActionsAPI) Create(ctx context.Context, fields AttachmentActionFields) (Record, error) {
	if err := fields.validate(); err != nil {
		return Record{}, &ConfigError{Reason: "invalid attachment action", Err: err}
	}
	return api.create(ctx, fields)
}

// Get retrieves an attachment action by ID.
func (api *AttachmentActionsAPI) Get(ctx context.Context, actionID string) (Record, error) {
	if err := api.requireID("actionId", actionID); err != nil {
		return Record{}, err
	}
	return api.get(ctx, actionID, nil)
}
