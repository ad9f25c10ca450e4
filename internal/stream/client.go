// Package stream adapts the Stream Chat SDK to the two things the backend
// needs from the provider: upserting users so chat and video calls can
// resolve identity, and minting client-side chat tokens.
package stream

import (
	"context"
	"time"

	stream_chat "github.com/GetStream/stream-chat-go/v6"
)

// Client talks to the Stream Chat API with server-side credentials.
type Client struct {
	api *stream_chat.Client
}

// NewClient creates a Stream client for the given app credentials.
func NewClient(apiKey, apiSecret string) (*Client, error) {
	api, err := stream_chat.NewClient(apiKey, apiSecret)
	if err != nil {
		return nil, err
	}
	return &Client{api: api}, nil
}

// UpsertUser creates or updates a user on the chat provider. Callers treat
// failures as non-fatal; the primary operation never rolls back on a sync
// error.
func (c *Client) UpsertUser(ctx context.Context, id, name, image string) error {
	_, err := c.api.UpsertUser(ctx, &stream_chat.User{
		ID:    id,
		Name:  name,
		Image: image,
	})
	return err
}

// CreateUserToken mints a chat token the client SDK uses to connect as the
// given user. No expiry is set; the provider accepts long-lived user tokens.
func (c *Client) CreateUserToken(userID string) (string, error) {
	return c.api.CreateToken(userID, time.Time{})
}
