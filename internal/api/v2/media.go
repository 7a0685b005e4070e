// internal/api/v2/media.go
package api

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/patrickmn/go-cache"

	"github.com/odontosys/odontosys/internal/datastore"
	"github.com/odontosys/odontosys/internal/odontogram"
)

// initMediaRoutes registers the chart rendering and radiograph endpoints
func (c *Controller) initMediaRoutes() {
	c.Group.GET("/odontograms/:id/chart.png", c.GetOdontogramChart)
	c.Group.POST("/odontograms/:id/radiographs", c.UploadRadiograph)
	c.Group.GET("/odontograms/:id/radiographs", c.GetRadiographs)
	c.Group.GET("/radiographs/:id", c.ServeRadiograph)
	c.Group.DELETE("/radiographs/:id", c.DeleteRadiograph)
}

// RadiographResponse represents one radiograph attachment
type RadiographResponse struct {
	ID           uint   `json:"id"`
	OdontogramID uint   `json:"odontogramId"`
	FileName     string `json:"fileName"`
	URL          string `json:"url"`
	UploadedAt   string `json:"uploadedAt"`
}

func toRadiographResponse(r *datastore.Radiograph) RadiographResponse {
	return RadiographResponse{
		ID:           r.ID,
		OdontogramID: r.OdontogramID,
		FileName:     r.FileName,
		URL:          "/api/v2/radiographs/" + strconv.FormatUint(uint64(r.ID), 10),
		UploadedAt:   r.UploadedAt.Format(time.RFC3339),
	}
}

// GetOdontogramChart handles GET /odontograms/:id/chart.png. Rendered charts
// are cached keyed by the session id and its last update time, so stale
// entries age out on their own after a save.
func (c *Controller) GetOdontogramChart(ctx echo.Context) error {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		return c.HandleError(ctx, err, "Invalid odontogram ID", http.StatusBadRequest)
	}

	og, err := c.DS.GetOdontogram(uint(id))
	if err != nil {
		return c.handleStoreError(ctx, err, "odontogram")
	}

	cacheKey := fmt.Sprintf("chart:%d:%d", og.ID, og.UpdatedAt.UnixNano())
	if cached, found := c.renderCache.Get(cacheKey); found {
		if c.metrics != nil {
			c.metrics.Render.RecordCacheLookup(true)
		}
		return ctx.Blob(http.StatusOK, "image/png", cached.([]byte))
	}
	if c.metrics != nil {
		c.metrics.Render.RecordCacheLookup(false)
	}

	findings := make([]odontogram.Finding, 0, len(og.Findings))
	for i := range og.Findings {
		findings = append(findings, datastore.FromRecord(&og.Findings[i]))
	}

	start := time.Now()
	var buf bytes.Buffer
	if err := c.Renderer.RenderPNG(&buf, findings); err != nil {
		if c.metrics != nil {
			c.metrics.Render.RecordRender("error", time.Since(start).Seconds())
		}
		return c.HandleError(ctx, err, "Failed to render chart", http.StatusInternalServerError)
	}
	if c.metrics != nil {
		c.metrics.Render.RecordRender("success", time.Since(start).Seconds())
	}

	c.renderCache.Set(cacheKey, buf.Bytes(), cache.DefaultExpiration)
	return ctx.Blob(http.StatusOK, "image/png", buf.Bytes())
}

// UploadRadiograph handles POST /odontograms/:id/radiographs with a
// multipart "file" field. The file lands under the media directory and the
// row records where it went.
func (c *Controller) UploadRadiograph(ctx echo.Context) error {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		return c.HandleError(ctx, err, "Invalid odontogram ID", http.StatusBadRequest)
	}

	if _, err := c.DS.GetOdontogram(uint(id)); err != nil {
		return c.handleStoreError(ctx, err, "odontogram")
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return c.HandleError(ctx, err, "Missing file upload", http.StatusBadRequest)
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	switch ext {
	case ".png", ".jpg", ".jpeg":
	default:
		return c.HandleError(ctx, nil, "Unsupported file type "+ext, http.StatusBadRequest)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return c.HandleError(ctx, err, "Failed to read upload", http.StatusInternalServerError)
	}
	defer src.Close()

	fileName := fmt.Sprintf("rx_%d_%d%s", id, time.Now().UnixNano(), ext)
	destPath := filepath.Join(c.mediaPath, fileName)
	dst, err := os.Create(destPath)
	if err != nil {
		return c.HandleError(ctx, err, "Failed to store upload", http.StatusInternalServerError)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(destPath)
		return c.HandleError(ctx, err, "Failed to store upload", http.StatusInternalServerError)
	}
	if err := dst.Close(); err != nil {
		os.Remove(destPath)
		return c.HandleError(ctx, err, "Failed to store upload", http.StatusInternalServerError)
	}

	rad := datastore.Radiograph{
		OdontogramID: uint(id),
		FileName:     fileName,
		UploadedAt:   time.Now(),
	}
	if err := c.DS.SaveRadiograph(&rad); err != nil {
		os.Remove(destPath)
		return c.HandleError(ctx, err, "Failed to save radiograph", http.StatusInternalServerError)
	}

	return ctx.JSON(http.StatusCreated, toRadiographResponse(&rad))
}

// GetRadiographs handles GET /odontograms/:id/radiographs
func (c *Controller) GetRadiographs(ctx echo.Context) error {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		return c.HandleError(ctx, err, "Invalid odontogram ID", http.StatusBadRequest)
	}

	rads, err := c.DS.ListRadiographs(uint(id))
	if err != nil {
		return c.HandleError(ctx, err, "Failed to list radiographs", http.StatusInternalServerError)
	}

	results := make([]RadiographResponse, 0, len(rads))
	for i := range rads {
		results = append(results, toRadiographResponse(&rads[i]))
	}
	return ctx.JSON(http.StatusOK, results)
}

// ServeRadiograph handles GET /radiographs/:id, streaming the stored file
func (c *Controller) ServeRadiograph(ctx echo.Context) error {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		return c.HandleError(ctx, err, "Invalid radiograph ID", http.StatusBadRequest)
	}

	rad, err := c.DS.GetRadiograph(uint(id))
	if err != nil {
		return c.handleStoreError(ctx, err, "radiograph")
	}

	// Serve only from inside the media directory
	path := filepath.Join(c.mediaPath, filepath.Base(rad.FileName))
	if _, err := os.Stat(path); err != nil {
		return c.HandleError(ctx, err, "Radiograph file missing", http.StatusNotFound)
	}
	return ctx.File(path)
}

// DeleteRadiograph handles DELETE /radiographs/:id. The stored file goes
// with the row; a missing file is not an error.
func (c *Controller) DeleteRadiograph(ctx echo.Context) error {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		return c.HandleError(ctx, err, "Invalid radiograph ID", http.StatusBadRequest)
	}

	rad, err := c.DS.GetRadiograph(uint(id))
	if err != nil {
		return c.handleStoreError(ctx, err, "radiograph")
	}

	if err := c.DS.DeleteRadiograph(uint(id)); err != nil {
		return c.HandleError(ctx, err, "Failed to delete radiograph", http.StatusInternalServerError)
	}

	if rad.FileName != "" {
		_ = os.Remove(filepath.Join(c.mediaPath, filepath.Base(rad.FileName)))
	}
	return ctx.NoContent(http.StatusNoContent)
}
