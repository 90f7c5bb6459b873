// Package common defines sentinel errors shared by the repository, service
// and transport layers of docvault. Callers should use errors.Is to match
// these values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// Folder tree errors.
	ErrorFolderHasSubfolders = errors.New("folder has subfolders")
	ErrorFolderHasFiles      = errors.New("folder has files")

	// Missing references named by a request body. Both match ErrorNotFound.
	ErrorParentFolderNotFound = fmt.Errorf("parent folder: %w", ErrorNotFound)
	ErrorTargetFolderNotFound = fmt.Errorf("target folder: %w", ErrorNotFound)

	// File record errors.
	ErrorInvalidContent = errors.New("invalid base64 content")
	ErrorCorruptContent = errors.New("stored content cannot be decoded")
	ErrorNoUpdateFields = errors.New("no fields to update")
)
