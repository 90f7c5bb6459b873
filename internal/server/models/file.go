package models

import "time"

// File describes a stored document.
type File struct {
	ID     int64
	Name   string
	UserID int64
	// ParentFolderID is nil for root-level files.
	ParentFolderID *int64

	// Content is the base64 payload as received from the client. It is empty
	// when the payload lives in object storage under StorageKey.
	Content    string
	StorageKey *string

	// Size is the length of the decoded payload in bytes.
	Size     int64
	MimeType *string

	CreatedAt time.Time
}

// Download is the decoded payload of a file ready to be sent to a client.
type Download struct {
	Name     string
	MimeType string
	Data     []byte
}
