package handlers

import (
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "assetledger/internal/errors"
	"assetledger/internal/models"
	"assetledger/internal/services"
)

// DocumentHandler handles document upload, download and removal.
type DocumentHandler struct {
	documentService services.DocumentServicer
}

// NewDocumentHandler creates a new DocumentHandler.
func NewDocumentHandler(documentService services.DocumentServicer) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

// DocumentsResponse lists documents attached by one upload.
type DocumentsResponse struct {
	Documents []models.AssetDocument `json:"documents"`
}

// AttachDocuments handles uploading documents to an existing asset.
// @Summary     Upload documents
// @Description Attach one or more files (multipart "files") to an asset
// @Tags        documents
// @Accept      mpfd
// @Produce     json
// @Security    BearerAuth
// @Param       id    path     string true "Asset ID"
// @Param       files formData file   true "Documents (pdf, jpg, jpeg, png, gif, doc, docx, xls, xlsx; 10 MB each)"
// @Success     201 {object} DocumentsResponse "Documents attached"
// @Failure     400 {object} ErrorResponse "Invalid file"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Asset not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /assets/{id}/documents/ [post]
func (h *DocumentHandler) AttachDocuments(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	assetID, err := parsePathID(c, "id", apperrors.ErrAssetNotFound)
	if err != nil {
		respondWithError(c, err)
		return
	}

	files, err := uploadedFiles(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	docs, err := h.documentService.AttachToAsset(c.Request.Context(), actor, assetID, files)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, DocumentsResponse{Documents: docs})
}

// DownloadDocument streams a document back to its owner.
// @Summary     Download document
// @Description Download a document attached to one of the caller's assets
// @Tags        documents
// @Produce     octet-stream
// @Security    BearerAuth
// @Param       id path string true "Document ID"
// @Success     200 {file} file "Document content"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Document not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /documents/{id}/download/ [get]
func (h *DocumentHandler) DownloadDocument(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	documentID, err := parsePathID(c, "id", apperrors.ErrDocumentNotFound)
	if err != nil {
		respondWithError(c, err)
		return
	}

	doc, body, err := h.documentService.Open(c.Request.Context(), userID, documentID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	defer body.Close()

	c.DataFromReader(http.StatusOK, doc.Size, doc.ContentType, body, map[string]string{
		"Content-Disposition":    mime.FormatMediaType("attachment", map[string]string{"filename": doc.FileName}),
		"X-Content-Type-Options": "nosniff",
	})
}

// DeleteDocument handles removing a document.
// @Summary     Delete document
// @Description Remove a document from one of the caller's assets
// @Tags        documents
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Document ID"
// @Success     200 {object} MessageResponse "Document deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Document not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /documents/{id}/delete/ [post]
func (h *DocumentHandler) DeleteDocument(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	documentID, err := parsePathID(c, "id", apperrors.ErrDocumentNotFound)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.documentService.Remove(c.Request.Context(), actor, documentID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Document deleted"})
}
