package intake

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/dayo-adewuyi/growvest/internal/storage"
)

type uploader interface {
	Upload(ctx context.Context, objectPath string, data []byte, contentType string) (string, error)
}

// newUploader is swappable in tests
var newUploader = func() (uploader, error) {
	return storage.NewFromEnv()
}

const maxScreenshotBytes = 10 << 20 // 10 MiB

// Upload handles POST /api/uploads. It accepts a multipart payment-proof
// screenshot, stores it in the bucket and returns the public URL.
func Upload(c echo.Context) error {
	uid, ok := c.Get("user_id").(string)
	if !ok || uid == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "file is required"})
	}
	if fileHeader.Size > maxScreenshotBytes {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "file too large"})
	}

	src, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "could not read file"})
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, maxScreenshotBytes+1))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not read file"})
	}
	if int64(len(data)) > maxScreenshotBytes {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "file too large"})
	}

	store, err := newUploader()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "storage is not configured"})
	}

	ext := path.Ext(fileHeader.Filename)
	objectPath := fmt.Sprintf("payment-proofs/%s-%d%s", uid, time.Now().UnixMilli(), ext)
	if ext == "" {
		objectPath = fmt.Sprintf("payment-proofs/%s-%s", uid, uuid.New().String())
	}

	url, err := store.Upload(c.Request().Context(), objectPath, data, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "upload failed"})
	}

	return c.JSON(http.StatusOK, echo.Map{"url": url})
}
