package errcodes

import "git.appkode.ru/pub/go/failure"

const (
	InternalServerError failure.ErrorCode = "InternalServerError"
	TimeoutExceeded     failure.ErrorCode = "TimeoutExceeded"
	Forbidden           failure.ErrorCode = "Forbidden"
	ValidationError     failure.ErrorCode = "ValidationError"
	NotFound            failure.ErrorCode = "NotFound"

	// Flip pipeline.
	MalformedEvent     failure.ErrorCode = "MalformedEvent"     // required field absent or unparseable
	ActionFailed       failure.ErrorCode = "ActionFailed"       // executor reported failure or panicked
	FeedNotConnected   failure.ErrorCode = "FeedNotConnected"   // send attempted while the websocket is down
	UnknownMessageType failure.ErrorCode = "UnknownMessageType" // envelope type not recognized
)
