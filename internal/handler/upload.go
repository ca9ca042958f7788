package handler

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// UploadHandler forwards listing images to the media host.  The
// service never stores binaries itself; it re-posts the multipart file
// and relays the media host's JSON (which carries the hosted URL).
type UploadHandler struct {
	URL    string
	Client *http.Client
}

func NewUploadHandler(mediaURL string) *UploadHandler {
	return &UploadHandler{
		URL:    mediaURL,
		Client: &http.Client{Timeout: 30 * time.Second},
	}
}

// Upload handles POST /api/upload with a multipart "image" field.
func (h *UploadHandler) Upload(c echo.Context) error {
	if h.URL == "" {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "media uploads are not configured"})
	}
	fh, err := c.FormFile("image")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "image file is required"})
	}
	src, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not read upload"})
	}
	defer src.Close()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("image", fh.Filename)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not build upload"})
	}
	if _, err := io.Copy(part, src); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not build upload"})
	}
	if err := w.Close(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not build upload"})
	}

	req, err := http.NewRequestWithContext(c.Request().Context(), http.MethodPost, h.URL, &buf)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not build upload"})
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := h.Client.Do(req)
	if err != nil {
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "media host unreachable"})
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "media host response unreadable"})
	}
	// Relay the media host's status and JSON untouched so clients see
	// the hosted URL exactly as the media host reports it.
	return c.JSONBlob(resp.StatusCode, body)
}
