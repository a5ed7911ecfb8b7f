// Package webex provides a Go client for the Webex REST API.
//
// # Overview
//
// A Client owns one authenticated HTTP session shared by every resource
// accessor (People, Rooms, Messages, ...). The session handles bearer
// authentication, request timeouts, and 429 rate-limit backoff; accessors
// expose CRUD-style operations and lazy pagination over that session.
//
// # Usage
//
//	client, err := webex.New(ctx, &webex.Config{AccessToken: "..."})
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	me, err := client.People.Me(ctx)
//	if err != nil {
//		return err
//	}
//	fmt.Println(me.String("displayName"))
//
// When no access token is passed explicitly, the client falls back to the
// WEBEX_TEAMS_ACCESS_TOKEN environment variable, and finally to an OAuth
// authorization-code exchange when Config.OAuth is populated.
//
// # Responses
//
// Decoded response payloads are wrapped as immutable Records: read-only,
// attribute-accessible values that recursively wrap nested objects and
// arrays. A custom ObjectFactory can be injected through the Config to
// replace the default wrapping.
//
// # Concurrency
//
// A single Client is safe for concurrent use. Each request carries its own
// context; cancelling one request does not affect others in flight. Record
// iterators are single-consumer: share the Client, not the iterator.
package webex
