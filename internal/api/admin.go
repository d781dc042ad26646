package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"mboaimmo/server/internal/images"
	"mboaimmo/server/internal/models"
	"mboaimmo/server/internal/store"
)

// Back-office handlers. Everything below sits behind AuthRequired +
// AdminRequired.

type propertyRequest struct {
	Title        string   `json:"title" binding:"required"`
	Description  string   `json:"description"`
	PropertyType string   `json:"property_type" binding:"required"`
	Neighborhood string   `json:"neighborhood"`
	City         string   `json:"city"`
	Area         *float64 `json:"area"`
	Price        int64    `json:"price"`
	Status       string   `json:"status"`
	Images       []string `json:"images"`
	VideoURL     string   `json:"video_url"`
	Features     []string `json:"features"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
}

func (r *propertyRequest) toModel() models.Property {
	status := r.Status
	if status == "" {
		status = models.StatusDisponible
	}
	return models.Property{
		Title:        r.Title,
		Description:  r.Description,
		PropertyType: r.PropertyType,
		Neighborhood: r.Neighborhood,
		City:         r.City,
		Area:         r.Area,
		Price:        r.Price,
		Status:       status,
		Images:       r.Images,
		VideoURL:     r.VideoURL,
		Features:     r.Features,
		Latitude:     r.Latitude,
		Longitude:    r.Longitude,
	}
}

func (h *Handler) AdminCreateProperty(c *gin.Context) {
	var req propertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p := req.toModel()
	creator := c.GetString(ctxUserID)
	p.CreatedBy = &creator

	if err := h.properties.Create(c.Request.Context(), &p); err != nil {
		h.logger.WithError(err).Error("Failed to create listing")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, h.view(p))
}

func (h *Handler) AdminUpdateProperty(c *gin.Context) {
	var req propertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	existing, err := h.properties.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": h.translator.T("error.not_found")})
		return
	}

	p := req.toModel()
	p.ID = existing.ID
	p.CreatedBy = existing.CreatedBy

	if err := h.properties.Update(c.Request.Context(), &p); err != nil {
		h.logger.WithError(err).Error("Failed to update listing")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, h.view(p))
}

func (h *Handler) AdminDeleteProperty(c *gin.Context) {
	if err := h.properties.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": h.translator.T("error.not_found")})
			return
		}
		h.logger.WithError(err).Error("Failed to delete listing")
		c.JSON(http.StatusInternalServerError, gin.H{"error": h.translator.T("error.generic")})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "ok"})
}

// AdminUploadImages accepts multipart image files, pushes them to the
// image host and appends the returned URLs to the listing.
func (h *Handler) AdminUploadImages(c *gin.Context) {
	p, err := h.properties.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": h.translator.T("error.not_found")})
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var files []images.File
	for _, fh := range form.File["images"] {
		src, err := fh.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		data, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		files = append(files, images.File{
			Name:        fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Data:        data,
		})
	}
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no images submitted"})
		return
	}

	remaining := h.cfg.Images.MaxPerListing - len(p.Images)
	urls, err := h.uploader.UploadMany(c.Request.Context(), files, remaining)
	if err != nil {
		switch {
		case errors.Is(err, images.ErrFileTooLarge):
			c.JSON(http.StatusBadRequest, gin.H{"error": h.translator.T("error.image_too_large")})
		case errors.Is(err, images.ErrUnsupportedType):
			c.JSON(http.StatusBadRequest, gin.H{"error": h.translator.T("error.image_type")})
		case errors.Is(err, images.ErrTooManyImages):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			h.logger.WithError(err).Error("Image upload failed")
			c.JSON(http.StatusBadGateway, gin.H{"error": h.translator.T("error.generic")})
		}
		return
	}

	p.Images = append(p.Images, urls...)
	if err := h.properties.Update(c.Request.Context(), p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": h.translator.T("error.generic")})
		return
	}

	c.JSON(http.StatusOK, gin.H{"urls": urls, "property": h.view(*p)})
}

// --- Users ---

func (h *Handler) AdminListUsers(c *gin.Context) {
	users, err := h.store.ListUsers(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to list users")
		c.JSON(http.StatusInternalServerError, gin.H{"error": h.translator.T("error.generic")})
		return
	}
	c.JSON(http.StatusOK, users)
}

type activeRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

func (h *Handler) AdminSetUserActive(c *gin.Context) {
	var req activeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.store.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": h.translator.T("error.not_found")})
		return
	}

	user.IsActive = *req.IsActive
	if err := h.store.UpdateUser(c.Request.Context(), user); err != nil {
		h.logger.WithError(err).Error("Failed to update user")
		c.JSON(http.StatusInternalServerError, gin.H{"error": h.translator.T("error.generic")})
		return
	}

	c.JSON(http.StatusOK, user)
}

// --- Transactions (display-only fixtures) ---

func (h *Handler) AdminListTransactions(c *gin.Context) {
	c.JSON(http.StatusOK, store.SeedTransactions())
}

// --- Dashboard ---

func (h *Handler) AdminStats(c *gin.Context) {
	if _, err := h.properties.FetchAll(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": h.translator.T("error.generic")})
		return
	}
	c.JSON(http.StatusOK, h.properties.Stats())
}

// --- Notification emit ---

type notifyRequest struct {
	UserID  string `json:"user_id" binding:"required"`
	Type    string `json:"type"`
	Title   string `json:"title" binding:"required"`
	Message string `json:"message"`
}

func (h *Handler) AdminCreateNotification(c *gin.Context) {
	var req notifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Type == "" {
		req.Type = models.NotifInfo
	}
	n, err := h.notifications.Create(c.Request.Context(), req.UserID, req.Type, req.Title, req.Message)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": h.translator.T("error.generic")})
		return
	}

	c.JSON(http.StatusCreated, n)
}
