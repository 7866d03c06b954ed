// Package apperr defines the error kinds shared by the vault engine and its transports.
package apperr

import "errors"

var (
	// ErrUnknownTemplate reports a template key absent from the registry.
	ErrUnknownTemplate = errors.New("unknown template")
	// ErrInvalidInput reports a malformed request (name, url, path).
	ErrInvalidInput = errors.New("invalid input")
	// ErrTargetAlreadyExists reports that the destination vault directory is present.
	ErrTargetAlreadyExists = errors.New("target already exists")
	// ErrRetrievalFailed reports that an external configuration could not be fetched or read.
	ErrRetrievalFailed = errors.New("retrieval failed")
	// ErrMaterializationFailed reports an I/O failure while writing the vault.
	ErrMaterializationFailed = errors.New("materialization failed")
	// ErrManifestUnavailable is non-fatal: no resolver produced a plugin manifest.
	ErrManifestUnavailable = errors.New("manifest unavailable")
)
