package catalog

// errors.go defines the error kinds the pipeline can surface and a
// pattern-matching layer that converts technical errors into
// user-facing messages with support codes.
//
// Per-row validation failures are never errors: they are recovered
// locally and aggregated into the ingest Result. Everything here is for
// run-level failures that abort the operation.

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingInput is returned when an ingest is started without a file.
// Maps to a client error at the HTTP boundary.
var ErrMissingInput = errors.New("no file provided")

// ParseError wraps a CSV read failure. It is fatal to the whole ingest
// run: no partial counts are reported.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing failed: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// QueryError wraps a storage failure during listing, search, or batch
// insert, with the operation that failed.
type QueryError struct {
	Op  string
	Err error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("%s: query failed: %v", e.Op, e.Err)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

// UserMessage provides user-friendly error information with actionable
// guidance. Code is a short reference users can quote to support staff.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

// errorPattern defines a substring to match and its corresponding message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns maps technical error text (case-insensitive, substring
// match) to user messages. The first matching pattern wins, so specific
// patterns come before general ones.
var errorPatterns = []errorPattern{
	{
		pattern: "no file provided",
		msg: UserMessage{
			Message: "CSV file is required",
			Action:  "Select a CSV file to upload",
			Code:    "FILE001",
		},
	},
	{
		pattern: "parsing failed",
		msg: UserMessage{
			Message: "Parsing failed",
			Action:  "Ensure the file is a valid comma-separated CSV",
			Code:    "FILE002",
		},
	},
	{
		pattern: "too many concurrent",
		msg: UserMessage{
			Message: "Too many uploads in progress",
			Action:  "Please wait a moment and try again",
			Code:    "UPL001",
		},
	},
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "Request was cancelled",
			Action:  "Please try again",
			Code:    "UPL002",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Operation timed out",
			Action:  "Try a smaller file or try again later",
			Code:    "UPL003",
		},
	},
	{
		pattern: "unique constraint",
		msg: UserMessage{
			Message: "A duplicate value was found",
			Action:  "Review your data for duplicate SKUs",
			Code:    "DB001",
		},
	},
	{
		pattern: "connection refused",
		msg: UserMessage{
			Message: "Unable to connect to database",
			Action:  "Please try again in a few moments",
			Code:    "DB002",
		},
	},
	{
		pattern: "connection reset",
		msg: UserMessage{
			Message: "Database connection was interrupted",
			Action:  "Please try again",
			Code:    "DB003",
		},
	},
	{
		pattern: "query failed",
		msg: UserMessage{
			Message: "Fetching products failed",
			Action:  "Please try again",
			Code:    "DB004",
		},
	},
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "RATE001",
		},
	},
}

// defaultMessage is the fallback when no pattern matches.
var defaultMessage = UserMessage{
	Message: "An unknown error occurred!",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error into a user-facing message.
// The original error should still be logged server-side; the returned
// message is what clients see.
func MapError(err error) UserMessage {
	if err == nil {
		return defaultMessage
	}

	text := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(text, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}
