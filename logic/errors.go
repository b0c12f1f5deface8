package logic

import (
	"errors"
	"strconv"
)

var (
	// ErrMissingTimestamp marks a feed item that cannot be ordered; the
	// item is skipped, the run continues.
	ErrMissingTimestamp = errors.New("feed item has no usable timestamp")

	// ErrTimelineUnavailable means the dedup cutoff could not be
	// determined; the run aborts rather than risk duplicate posts.
	ErrTimelineUnavailable = errors.New("timeline unavailable")

	// ErrAuthFailed is a session/credentials failure; further publish
	// attempts would fail identically, so the run aborts.
	ErrAuthFailed = errors.New("authentication failed")
)

var errImageTooLarge = errors.New("preview image exceeds size limit")

func isAuthError(err error) bool {
	return errors.Is(err, ErrAuthFailed)
}

type httpStatusError struct {
	status int
}

func (e *httpStatusError) Error() string {
	return "request failed with status " + strconv.Itoa(e.status)
}
