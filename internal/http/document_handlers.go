package http

import (
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"fleet-service/internal/model"
	"fleet-service/internal/service"
)

const uploadField = "files"

func (h *Handler) uploadDocuments(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("multipart form expected"))
		return
	}

	headers := form.File[uploadField]
	files := make([]service.UploadFile, 0, len(headers))
	opened := make([]multipart.File, 0, len(headers))
	defer func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}()
	for _, header := range headers {
		f, err := header.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, errorResponse(fmt.Sprintf("cannot read %s", header.Filename)))
			return
		}
		opened = append(opened, f)
		files = append(files, service.UploadFile{
			FileName: header.Filename,
			Size:     header.Size,
			Content:  f,
		})
	}

	documents, err := h.documents.Upload(c.Request.Context(), p, service.UploadDocumentsInput{
		EntityID:     c.PostForm("entityId"),
		EntityType:   c.PostForm("entityType"),
		DocumentType: c.PostForm("documentType"),
		ExpiryDate:   optionalPostForm(c, "expiryDate"),
		Files:        files,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, successResponse(documents))
}

func (h *Handler) listDocuments(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	h.respondEntityDocuments(c, p, c.Query("entity_type"), c.Query("entity_id"))
}

// listEntityDocuments serves /documents/:entityType/:entityId. The first
// segment shares the :id name with the per-document routes.
func (h *Handler) listEntityDocuments(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	h.respondEntityDocuments(c, p, c.Param("id"), c.Param("entityId"))
}

func (h *Handler) respondEntityDocuments(c *gin.Context, p model.Principal, entityType, entityID string) {
	documents, err := h.documents.ListByEntity(c.Request.Context(), p, entityType, entityID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(documents))
}

func (h *Handler) viewDocument(c *gin.Context) {
	h.serveDocument(c, "inline")
}

func (h *Handler) downloadDocument(c *gin.Context) {
	h.serveDocument(c, "attachment")
}

func (h *Handler) serveDocument(c *gin.Context, disposition string) {
	p, ok := principal(c)
	if !ok {
		return
	}

	content, err := h.documents.Open(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	defer content.Body.Close()

	contentType := content.Document.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.DataFromReader(http.StatusOK, content.Size, contentType, content.Body, map[string]string{
		"Content-Disposition": fmt.Sprintf("%s; filename=%q", disposition, content.Document.FileName),
	})
}

func (h *Handler) deleteDocument(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	if err := h.documents.Delete(c.Request.Context(), p, c.Param("id")); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(gin.H{"deleted": true}))
}

func optionalPostForm(c *gin.Context, key string) *string {
	value, ok := c.GetPostForm(key)
	if !ok || value == "" {
		return nil
	}
	return &value
}
