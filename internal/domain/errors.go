package domain

import "errors"

var (
	// ErrListingNotFound signals a missing listing document.
	ErrListingNotFound = errors.New("listing not found")
	// ErrInvalidListingID signals an identifier that is not a valid listing key.
	ErrInvalidListingID = errors.New("invalid listing id")
	// ErrIndexUnavailable signals a vector index query failure.
	ErrIndexUnavailable = errors.New("vector index unavailable")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrJudgeUnavailable signals a relevance judge transport failure.
	ErrJudgeUnavailable = errors.New("relevance judge unavailable")
	// ErrJudgeBadResponse signals a judge response that violates the score schema.
	ErrJudgeBadResponse = errors.New("relevance judge returned malformed response")
	// ErrNoPersona signals that no persona vector could be built from the
	// user's history and favorites.
	ErrNoPersona = errors.New("no persona")
)
