package handler

import (
	"mime"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/codeforge/problemhub/internal/api/metrics"
	"github.com/codeforge/problemhub/internal/core/ports"
)

// FileHandler serves problem attachments.
type FileHandler struct {
	service ports.FileService
}

func NewFileHandler(service ports.FileService) *FileHandler {
	return &FileHandler{service: service}
}

// Upload handles POST /api/files/upload (admin, interviewer).
//
// @Summary      Upload a problem attachment
// @Tags         files
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        file         formData  file    true   "Attachment (.pdf .txt .md .zip .java .py .js .cpp .c)"
// @Param        problemId    formData  int     true   "Problem ID"
// @Param        description  formData  string  false  "Description"
// @Success      201          {object}  uploadResponse
// @Failure      400          {object}  errorResponse
// @Failure      403          {object}  errorResponse
// @Failure      404          {object}  errorResponse
// @Failure      413          {object}  errorResponse
// @Router       /files/upload [post]
func (h *FileHandler) Upload(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "No file uploaded")
	}
	src, err := fh.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	problemID, _ := strconv.ParseInt(c.FormValue("problemId"), 10, 64)

	file, err := h.service.Upload(c.Request().Context(), actor, ports.UploadInput{
		ProblemID:    problemID,
		Description:  c.FormValue("description"),
		OriginalName: fh.Filename,
		Size:         fh.Size,
		Content:      src,
	})
	if err != nil {
		return err
	}

	metrics.FileUploadBytes.Observe(float64(file.FileSize))
	return c.JSON(http.StatusCreated, uploadResponse{Message: "File uploaded successfully", File: file})
}

// ListByProblem handles GET /api/files/problem/:problemId.
//
// @Summary      Attachments of a problem
// @Tags         files
// @Produce      json
// @Param        problemId  path      int  true  "Problem ID"
// @Success      200        {object}  fileListResponse
// @Router       /files/problem/{problemId} [get]
func (h *FileHandler) ListByProblem(c echo.Context) error {
	problemID, err := pathID(c, "problemId")
	if err != nil {
		return err
	}
	files, err := h.service.ListByProblem(c.Request().Context(), problemID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, fileListResponse{Files: files, Total: len(files)})
}

// Download handles GET /api/files/:id/download.
//
// @Summary      Download an attachment
// @Tags         files
// @Produce      octet-stream
// @Param        id   path  int  true  "File ID"
// @Success      200
// @Failure      404  {object}  errorResponse
// @Router       /files/{id}/download [get]
func (h *FileHandler) Download(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	file, rc, err := h.service.Open(c.Request().Context(), id)
	if err != nil {
		return err
	}
	defer rc.Close()

	c.Response().Header().Set(echo.HeaderContentDisposition,
		mime.FormatMediaType("attachment", map[string]string{"filename": file.OriginalName}))
	return c.Stream(http.StatusOK, contentTypeOr(file.MimeType), rc)
}

// Delete handles DELETE /api/files/:id (admin, interviewer; uploader or admin).
//
// @Summary      Delete an attachment
// @Tags         files
// @Security     BearerAuth
// @Param        id   path  int  true  "File ID"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /files/{id} [delete]
func (h *FileHandler) Delete(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), actor, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Serve handles GET /uploads/:key and streams a stored blob.
func (h *FileHandler) Serve(c echo.Context) error {
	key := c.Param("key")
	rc, err := h.service.OpenKey(c.Request().Context(), key)
	if err != nil {
		return err
	}
	defer rc.Close()
	return c.Stream(http.StatusOK, contentTypeOr(mime.TypeByExtension(filepath.Ext(key))), rc)
}

func contentTypeOr(ct string) string {
	if ct == "" {
		return echo.MIMEOctetStream
	}
	return ct
}
