package handler

import (
	"bytes"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"freewen/internal/config"
	"freewen/internal/model"
	"freewen/internal/pkg/pdfextract"
	"freewen/internal/store"
	"freewen/internal/transport/http/middleware"
	"freewen/internal/transport/http/response"
)

const previewRunes = 400

// BookingHandler manages the uploaded travel documents held with a session.
// Files are kept in memory as-is and handed back byte-identical; the only
// checks at upload time are size and extension.
type BookingHandler struct {
	sessions  *store.SessionStore
	uploadCfg config.UploadConfig
}

func NewBookingHandler(sessions *store.SessionStore, uploadCfg config.UploadConfig) *BookingHandler {
	return &BookingHandler{sessions: sessions, uploadCfg: uploadCfg}
}

func (h *BookingHandler) Upload(c *gin.Context) {
	workspaceID, ok := middleware.WorkspaceID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "missing workspace")
		return
	}
	sessionName := c.Param("name")

	file, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "missing file")
		return
	}
	maxBytes := int64(h.uploadCfg.MaxSizeMB) << 20
	if file.Size > maxBytes {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "file too large")
		return
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !h.extensionAllowed(ext) {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "file type not allowed")
		return
	}

	f, err := file.Open()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "failed to read file")
		return
	}
	defer f.Close()
	content, err := io.ReadAll(f)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "failed to read file")
		return
	}

	docType := strings.TrimSpace(c.PostForm("type"))
	if docType == "" {
		docType = "Other"
	}

	doc := model.BookingDocument{
		ID:          uuid.NewString(),
		Name:        filepath.Base(file.Filename),
		Type:        docType,
		Notes:       strings.TrimSpace(c.PostForm("notes")),
		ContentType: file.Header.Get("Content-Type"),
		Size:        int64(len(content)),
		Content:     content,
		UploadedAt:  time.Now(),
	}
	if ext == ".pdf" {
		doc.TextPreview = pdfextract.Preview(bytes.NewReader(content), previewRunes)
	}

	if err := h.sessions.AddDocument(workspaceID, sessionName, doc); err != nil {
		respondStoreError(c, err, "save document failed")
		return
	}

	// Content never rides along in JSON listings; download returns it.
	doc.Content = nil
	response.OK(c, doc)
}

func (h *BookingHandler) List(c *gin.Context) {
	workspaceID, ok := middleware.WorkspaceID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "missing workspace")
		return
	}

	docs, err := h.sessions.Documents(workspaceID, c.Param("name"))
	if err != nil {
		respondStoreError(c, err, "list documents failed")
		return
	}
	response.OK(c, docs)
}

func (h *BookingHandler) Download(c *gin.Context) {
	workspaceID, ok := middleware.WorkspaceID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "missing workspace")
		return
	}

	doc, err := h.sessions.GetDocument(workspaceID, c.Param("name"), c.Param("id"))
	if err != nil {
		respondStoreError(c, err, "get document failed")
		return
	}

	contentType := doc.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Content-Disposition", `attachment; filename="`+doc.Name+`"`)
	c.Data(http.StatusOK, contentType, doc.Content)
}

func (h *BookingHandler) Delete(c *gin.Context) {
	workspaceID, ok := middleware.WorkspaceID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "missing workspace")
		return
	}

	docID := c.Param("id")
	if err := h.sessions.DeleteDocument(workspaceID, c.Param("name"), docID); err != nil {
		respondStoreError(c, err, "delete document failed")
		return
	}
	response.OK(c, gin.H{"deleted_document_id": docID})
}

func (h *BookingHandler) extensionAllowed(ext string) bool {
	for _, allowed := range h.uploadCfg.AllowedExtensions {
		if ext == strings.ToLower(allowed) {
			return true
		}
	}
	return false
}
