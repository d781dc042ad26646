package api

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"mboaimmo/server/config"
	"mboaimmo/server/internal/contact"
	"mboaimmo/server/internal/favorites"
	"mboaimmo/server/internal/format"
	"mboaimmo/server/internal/i18n"
	"mboaimmo/server/internal/images"
	"mboaimmo/server/internal/models"
	"mboaimmo/server/internal/notifications"
	"mboaimmo/server/internal/properties"
	"mboaimmo/server/internal/session"
	"mboaimmo/server/internal/store"
)

type Handler struct {
	cfg           *config.Config
	store         store.Store
	properties    *properties.Service
	favorites     *favorites.Service
	notifications *notifications.Service
	sessions      *session.Service
	uploader      *images.Uploader
	translator    *i18n.Translator
	logger        *logrus.Logger
}

type Services struct {
	Store         store.Store
	Properties    *properties.Service
	Favorites     *favorites.Service
	Notifications *notifications.Service
	Sessions      *session.Service
	Uploader      *images.Uploader
	Translator    *i18n.Translator
}

func NewHandler(cfg *config.Config, svc Services, logger *logrus.Logger) *Handler {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	return &Handler{
		cfg:           cfg,
		store:         svc.Store,
		properties:    svc.Properties,
		favorites:     svc.Favorites,
		notifications: svc.Notifications,
		sessions:      svc.Sessions,
		uploader:      svc.Uploader,
		translator:    svc.Translator,
		logger:        logger,
	}
}

// propertyView decorates a listing with its display price in the active
// language.
type propertyView struct {
	models.Property
	PriceFormatted string `json:"price_formatted"`
}

func (h *Handler) view(p models.Property) propertyView {
	return propertyView{
		Property:       p,
		PriceFormatted: format.Price(p.Price, h.translator.Language()),
	}
}

func (h *Handler) views(props []models.Property) []propertyView {
	out := make([]propertyView, len(props))
	for i, p := range props {
		out[i] = h.view(p)
	}
	return out
}

func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// --- Auth ---

type signUpRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email" binding:"required"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
}

func (h *Handler) SignUp(c *gin.Context) {
	var req signUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sess, err := h.sessions.SignUp(c.Request.Context(), session.SignUpInput{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Address:   req.Address,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, sess)
}

type signInRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

func (h *Handler) SignIn(c *gin.Context) {
	var req signInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sess, err := h.sessions.SignIn(c.Request.Context(), req.Identifier, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, session.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"error": h.translator.T("error.invalid_credentials")})
		case errors.Is(err, session.ErrInactiveAccount):
			c.JSON(http.StatusUnauthorized, gin.H{"error": h.translator.T("error.account_inactive")})
		default:
			h.logger.WithError(err).Error("Sign-in failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": h.translator.T("error.generic")})
		}
		return
	}

	c.JSON(http.StatusOK, sess)
}

func (h *Handler) SignOut(c *gin.Context) {
	if err := h.sessions.SignOut(c.Request.Context()); err != nil {
		h.logger.WithError(err).Warn("Sign-out cleanup failed")
	}
	c.JSON(http.StatusOK, gin.H{"message": h.translator.T("notice.signed_out")})
}

func (h *Handler) Me(c *gin.Context) {
	user, err := h.store.GetUser(c.Request.Context(), c.GetString(ctxUserID))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": h.translator.T("error.not_found")})
		return
	}
	c.JSON(http.StatusOK, user)
}

type profileRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Phone     *string `json:"phone"`
	Address   *string `json:"address"`
	AvatarURL *string `json:"avatar_url"`
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.sessions.UpdateProfile(c.Request.Context(), c.GetString(ctxUserID), session.ProfilePatch{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Address:   req.Address,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": h.translator.T("error.generic")})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": h.translator.T("notice.profile_updated"), "user": user})
}

// --- Properties ---

func (h *Handler) ListProperties(c *gin.Context) {
	if _, err := h.properties.FetchAll(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": h.translator.T("error.generic")})
		return
	}

	crit := properties.Criteria{
		Type:     c.Query("type"),
		Location: c.Query("location"),
		Status:   c.Query("status"),
	}
	if v := c.Query("min_price"); v != "" {
		crit.MinPrice, _ = strconv.ParseInt(v, 10, 64)
	}
	if v := c.Query("max_price"); v != "" {
		crit.MaxPrice, _ = strconv.ParseInt(v, 10, 64)
	}

	result := h.properties.FilterByCriteria(crit)
	if q := c.Query("q"); q != "" {
		result = properties.Search(result, q)
	}
	result = properties.Sort(result, c.Query("sort"))

	c.JSON(http.StatusOK, h.views(result))
}

func (h *Handler) GetProperty(c *gin.Context) {
	p, err := h.properties.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": h.translator.T("error.not_found")})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": h.translator.T("error.generic")})
		return
	}
	c.JSON(http.StatusOK, h.view(*p))
}

func (h *Handler) NearbyProperties(c *gin.Context) {
	lat, err1 := strconv.ParseFloat(c.Query("lat"), 64)
	lon, err2 := strconv.ParseFloat(c.Query("lon"), 64)
	if err1 != nil || err2 != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lat and lon are required"})
		return
	}
	radius, err := strconv.ParseFloat(c.DefaultQuery("radius", "5000"), 64)
	if err != nil || radius <= 0 {
		radius = 5000
	}

	if _, err := h.properties.FetchAll(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": h.translator.T("error.generic")})
		return
	}

	c.JSON(http.StatusOK, h.views(h.properties.Nearby(lat, lon, radius)))
}

// ContactLink returns the messaging deep link for a listing inquiry.
func (h *Handler) ContactLink(c *gin.Context) {
	p, err := h.properties.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": h.translator.T("error.not_found")})
		return
	}

	message := contact.PropertyInquiry(h.translator.T("contact.inquiry"), p.Title, c.Query("url"))
	link, err := contact.InquiryLink(h.cfg.ContactPhone, message)
	if err != nil {
		h.logger.WithError(err).Error("Failed to build contact link")
		c.JSON(http.StatusInternalServerError, gin.H{"error": h.translator.T("error.generic")})
		return
	}

	c.JSON(http.StatusOK, gin.H{"link": link})
}

// --- Favorites ---

func (h *Handler) ListFavorites(c *gin.Context) {
	ids, err := h.favorites.FetchForUser(c.Request.Context(), c.GetString(ctxUserID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": h.translator.T("error.generic")})
		return
	}
	c.JSON(http.StatusOK, gin.H{"property_ids": ids})
}

func (h *Handler) ToggleFavorite(c *gin.Context) {
	userID := c.GetString(ctxUserID)
	propertyID := c.Param("propertyId")

	added, err := h.favorites.Toggle(c.Request.Context(), userID, propertyID)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"error":        h.translator.T("notice.favorite_failed"),
			"property_ids": h.favorites.ListForUser(userID),
		})
		return
	}

	notice := "notice.favorite_removed"
	if added {
		notice = "notice.favorite_added"
	}
	c.JSON(http.StatusOK, gin.H{
		"message":      h.translator.T(notice),
		"added":        added,
		"property_ids": h.favorites.ListForUser(userID),
	})
}

// --- Notifications ---

func (h *Handler) ListNotifications(c *gin.Context) {
	notifs, err := h.notifications.FetchForUser(c.Request.Context(), c.GetString(ctxUserID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": h.translator.T("error.generic")})
		return
	}
	c.JSON(http.StatusOK, notifs)
}

func (h *Handler) MarkNotificationRead(c *gin.Context) {
	if err := h.notifications.MarkRead(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": h.translator.T("error.not_found")})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": h.translator.T("error.generic")})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "ok"})
}

func (h *Handler) MarkAllNotificationsRead(c *gin.Context) {
	if err := h.notifications.MarkAllRead(c.Request.Context(), c.GetString(ctxUserID)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": h.translator.T("error.generic")})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "ok"})
}

// StreamNotifications pushes new notifications over server-sent events.
// Only available on the real backend path; the fallback path answers 501.
func (h *Handler) StreamNotifications(c *gin.Context) {
	userID := c.GetString(ctxUserID)
	ch := make(chan models.Notification, 8)

	err := h.notifications.Listen(c.Request.Context(), userID, func(n models.Notification) {
		select {
		case ch <- n:
		default:
		}
	})
	if err != nil {
		if errors.Is(err, notifications.ErrRealtimeUnavailable) {
			c.JSON(http.StatusNotImplemented, gin.H{"error": "realtime notifications unavailable"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": h.translator.T("error.generic")})
		return
	}

	c.Stream(func(w io.Writer) bool {
		select {
		case <-c.Request.Context().Done():
			return false
		case n := <-ch:
			c.SSEvent("notification", n)
			return true
		}
	})
}

// --- Language ---

func (h *Handler) GetLanguage(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"language": h.translator.Language()})
}

type languageRequest struct {
	Language string `json:"language" binding:"required"`
}

func (h *Handler) SetLanguage(c *gin.Context) {
	var req languageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.translator.SetLanguage(i18n.Language(req.Language)); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"language": h.translator.Language()})
}
