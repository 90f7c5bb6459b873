package rest

import (
	"net/http"
)

func (h *Handler) createFolder(w http.ResponseWriter, r *http.Request) {
	var req createFolderRequest
	if !h.bind(w, r, &req) {
		return
	}

	f, err := h.folders.Create(r.Context(), currentUser(r).ID, req.Name, req.ParentFolderID)
	if err != nil {
		h.writeError(w, r, err, msgParentNotFound)
		return
	}
	writeJSON(w, http.StatusCreated, toFolderResponse(f))
}

func (h *Handler) rootContents(w http.ResponseWriter, r *http.Request) {
	c, err := h.folders.ListRoot(r.Context(), currentUser(r).ID)
	if err != nil {
		h.writeError(w, r, err, msgFolderNotFound)
		return
	}
	writeJSON(w, http.StatusOK, rootContentsResponse{
		Folders: toFolderList(c.Folders),
		Files:   toFileList(c.Files),
	})
}

func (h *Handler) folderContents(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "folderID")
	if !ok {
		writeDetail(w, http.StatusNotFound, msgFolderNotFound)
		return
	}

	c, err := h.folders.Contents(r.Context(), currentUser(r).ID, id)
	if err != nil {
		h.writeError(w, r, err, msgFolderNotFound)
		return
	}
	writeJSON(w, http.StatusOK, folderContentsResponse{
		folderResponse: toFolderResponse(c.Folder),
		Subfolders:     toFolderList(c.Subfolders),
		Files:          toFileList(c.Files),
	})
}

func (h *Handler) renameFolder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "folderID")
	if !ok {
		writeDetail(w, http.StatusNotFound, msgFolderNotFound)
		return
	}
	var req renameFolderRequest
	if !h.bind(w, r, &req) {
		return
	}

	f, err := h.folders.Rename(r.Context(), currentUser(r).ID, id, req.Name)
	if err != nil {
		h.writeError(w, r, err, msgFolderNotFound)
		return
	}
	writeJSON(w, http.StatusOK, toFolderResponse(f))
}

func (h *Handler) deleteFolder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "folderID")
	if !ok {
		writeDetail(w, http.StatusNotFound, msgFolderNotFound)
		return
	}

	if err := h.folders.Delete(r.Context(), currentUser(r).ID, id); err != nil {
		h.writeError(w, r, err, msgFolderNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
