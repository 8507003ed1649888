// Package api provides the client for the remote chat collaborator.
package api

// GJSON paths for extracting values from chat responses.
const (
	// PathReplyMessage holds the assistant reply text: {"message": "..."}
	PathReplyMessage = "message"
)

// maxResponseBytes is the largest reply body accepted; bigger bodies fail to decode
const maxResponseBytes = 4 << 20

// maxErrorBodyBytes bounds the body excerpt kept for diagnostics on non-2xx responses
const maxErrorBodyBytes = 4096
