// Package todoist provides the transport for the Todoist sync API.
//
// # Overview
//
// The engine consumes two calls: a full snapshot fetch and a batched command
// submission. Both go through the single /sync endpoint as form-encoded POSTs
// carrying the API token:
//
//	client, err := todoist.NewClient(todoist.DefaultBaseURL, token, 0)
//	snap, err := client.FetchSnapshot(ctx)          // Projects + Items
//	status, err := client.SendBatch(ctx, commands)  // uuid -> status
//
// # Wire Types
//
// Records are decoded into plain maps with json.Number values so that ids,
// orders and indents are passed through exactly. Only the fields the list
// algorithms read are interpreted; everything else is opaque.
//
// A command status is either the literal "ok", an error object
// ({"error": ..., "error_code": ...}), an array of those, or an object keyed
// by sub-id for commands that act on several entities. ParseResult flattens
// all of them into a CommandResult.
//
// # Error Handling
//
// Errors are typed so callers can branch with errors.As:
//
//   - TransportError: network failure or non-200 status, classified as
//     bad request (400/404), unauthorized (401/403), rate limited (429),
//     service unavailable (500/503) or unknown
//   - RemoteError: the service reported an error, for the request or for one
//     command uuid
//   - AmbiguousResponseError: a command status that cannot be interpreted
//   - ValidationError: client-side problems (unknown project, missing field)
//
// The client never retries. Retry policy belongs to the caller.
package todoist
