package models

import "time"

// Folder is a node of a user's folder tree. A nil ParentFolderID places the
// folder at the root level.
type Folder struct {
	ID             int64
	Name           string
	UserID         int64
	ParentFolderID *int64
	CreatedAt      time.Time
}

// FolderContents is a folder together with its direct children.
type FolderContents struct {
	Folder     *Folder
	Subfolders []*Folder
	Files      []*File
}

// RootContents lists the root-level folders and files of a user.
type RootContents struct {
	Folders []*Folder
	Files   []*File
}
