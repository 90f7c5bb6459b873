package rest

import (
	"time"

	"github.com/huseyinozgul/docvault/internal/server/models"
)

type credentialsRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,password"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type userResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type createFolderRequest struct {
	Name           string `json:"name" validate:"required,min=1,max=255"`
	ParentFolderID *int64 `json:"parent_folder_id"`
}

type renameFolderRequest struct {
	Name string `json:"name" validate:"required,min=1,max=255"`
}

type createFileRequest struct {
	Name           string  `json:"name" validate:"required,min=1,max=255"`
	Content        *string `json:"content" validate:"required"`
	ParentFolderID *int64  `json:"parent_folder_id"`
}

// updateFileRequest leaves a field unchanged when it is absent or null. An
// empty name also leaves the name unchanged.
type updateFileRequest struct {
	Name           *string `json:"name" validate:"omitnil,max=255"`
	ParentFolderID *int64  `json:"parent_folder_id"`
}

type folderResponse struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	ParentFolderID *int64    `json:"parent_folder_id"`
	CreatedAt      time.Time `json:"created_at"`
}

type fileResponse struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Size           int64     `json:"size"`
	MimeType       *string   `json:"mime_type"`
	ParentFolderID *int64    `json:"parent_folder_id"`
	CreatedAt      time.Time `json:"created_at"`
}

type folderContentsResponse struct {
	folderResponse
	Subfolders []folderResponse `json:"subfolders"`
	Files      []fileResponse   `json:"files"`
}

type rootContentsResponse struct {
	Folders []folderResponse `json:"folders"`
	Files   []fileResponse   `json:"files"`
}

type healthResponse struct {
	Status string `json:"status"`
}

func toFolderResponse(f *models.Folder) folderResponse {
	return folderResponse{
		ID:             f.ID,
		Name:           f.Name,
		ParentFolderID: f.ParentFolderID,
		CreatedAt:      f.CreatedAt.UTC(),
	}
}

func toFileResponse(f *models.File) fileResponse {
	return fileResponse{
		ID:             f.ID,
		Name:           f.Name,
		Size:           f.Size,
		MimeType:       f.MimeType,
		ParentFolderID: f.ParentFolderID,
		CreatedAt:      f.CreatedAt.UTC(),
	}
}

func toFolderList(in []*models.Folder) []folderResponse {
	out := make([]folderResponse, 0, len(in))
	for _, f := range in {
		out = append(out, toFolderResponse(f))
	}
	return out
}

func toFileList(in []*models.File) []fileResponse {
	out := make([]fileResponse, 0, len(in))
	for _, f := range in {
		out = append(out, toFileResponse(f))
	}
	return out
}
