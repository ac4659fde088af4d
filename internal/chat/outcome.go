package chat

import (
	apierrors "github.com/longkey1/finchat/internal/errors"
)

// User-visible fallback texts.
const (
	FallbackNoContent = "Sorry, I couldn't generate a response."
	FallbackFailure   = "Sorry, I couldn't process your request."
)

// OutcomeKind tells a completed request apart from a failed one.
type OutcomeKind int

const (
	OutcomeSuccess OutcomeKind = iota
	OutcomeFailure
)

// Outcome is the result of one upstream call.
type Outcome struct {
	Kind    OutcomeKind
	Content string
	Failure apierrors.Kind
	Err     error
}

// Success wraps the first choice's content, which may be empty.
func Success(content string) Outcome {
	return Outcome{Kind: OutcomeSuccess, Content: content}
}

// Failure wraps an upstream error.
func Failure(err error) Outcome {
	kind := apierrors.Classify(err)
	if kind == apierrors.KindNone {
		kind = apierrors.KindUpstream
	}
	return Outcome{Kind: OutcomeFailure, Failure: kind, Err: err}
}

// NewOutcome converts a Completer result into an Outcome.
func NewOutcome(content string, err error) Outcome {
	if err != nil {
		return Failure(err)
	}
	return Success(content)
}

// ReplyText maps an outcome onto the text of the bot message.
// Every failure kind collapses into the same fallback.
func ReplyText(o Outcome) string {
	switch {
	case o.Kind == OutcomeFailure:
		return FallbackFailure
	case o.Content == "":
		return FallbackNoContent
	default:
		return o.Content
	}
}
