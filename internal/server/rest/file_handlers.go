package rest

import (
	"mime"
	"net/http"
	"strconv"
)

func (h *Handler) createFile(w http.ResponseWriter, r *http.Request) {
	var req createFileRequest
	if !h.bind(w, r, &req) {
		return
	}

	f, err := h.files.Create(r.Context(), currentUser(r).ID, req.Name, *req.Content, req.ParentFolderID)
	if err != nil {
		h.writeError(w, r, err, msgParentNotFound)
		return
	}
	writeJSON(w, http.StatusCreated, toFileResponse(f))
}

func (h *Handler) getFile(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "fileID")
	if !ok {
		writeDetail(w, http.StatusNotFound, msgFileNotFound)
		return
	}

	f, err := h.files.Get(r.Context(), currentUser(r).ID, id)
	if err != nil {
		h.writeError(w, r, err, msgFileNotFound)
		return
	}
	writeJSON(w, http.StatusOK, toFileResponse(f))
}

func (h *Handler) downloadFile(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "fileID")
	if !ok {
		writeDetail(w, http.StatusNotFound, msgFileNotFound)
		return
	}

	d, err := h.files.Download(r.Context(), currentUser(r).ID, id)
	if err != nil {
		h.writeError(w, r, err, msgFileNotFound)
		return
	}

	w.Header().Set("Content-Type", d.MimeType)
	w.Header().Set("Content-Length", strconv.Itoa(len(d.Data)))
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": d.Name}))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(d.Data)
}

func (h *Handler) updateFile(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "fileID")
	if !ok {
		writeDetail(w, http.StatusNotFound, msgFileNotFound)
		return
	}
	var req updateFileRequest
	if !h.bind(w, r, &req) {
		return
	}

	f, err := h.files.Update(r.Context(), currentUser(r).ID, id, req.Name, req.ParentFolderID)
	if err != nil {
		h.writeError(w, r, err, msgFileNotFound)
		return
	}
	writeJSON(w, http.StatusOK, toFileResponse(f))
}

func (h *Handler) deleteFile(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "fileID")
	if !ok {
		writeDetail(w, http.StatusNotFound, msgFileNotFound)
		return
	}

	if err := h.files.Delete(r.Context(), currentUser(r).ID, id); err != nil {
		h.writeError(w, r, err, msgFileNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
