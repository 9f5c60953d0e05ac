package gin

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/fwojciec/storeprofile"
	"github.com/gin-gonic/gin"
)

// UsageMessage is returned by the index route.
const UsageMessage = "Shopify Insights Fetcher. POST /extract { website_url }"

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	extractor storeprofile.ProfileExtractor
	profiles  storeprofile.ProfileService
	logger    *slog.Logger
}

// NewHandler creates a Handler. Profiles may be nil, in which case
// extracted profiles are not stored.
func NewHandler(extractor storeprofile.ProfileExtractor, profiles storeprofile.ProfileService, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Handler{
		extractor: extractor,
		profiles:  profiles,
		logger:    logger,
	}
}

type extractRequest struct {
	WebsiteURL string `json:"website_url" binding:"required"`
}

// Index describes how to use the API.
func (h *Handler) Index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": UsageMessage})
}

// HealthCheck returns the health status of the API.
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "storeprofile",
		"storage": h.profiles != nil,
	})
}

// Extract builds the profile of the requested storefront. When storage is
// configured the profile is saved and its ID is returned in the
// X-Profile-ID header. A failed save is logged and does not fail the
// request.
func (h *Handler) Extract(c *gin.Context) {
	var req extractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid request: website_url is required"})
		return
	}

	profile, err := h.extractor.Extract(c.Request.Context(), req.WebsiteURL)
	if err != nil {
		h.writeError(c, err)
		return
	}

	if h.profiles != nil {
		stored := &storeprofile.StoredProfile{Website: req.WebsiteURL, Profile: profile}
		if err := h.profiles.CreateProfile(c.Request.Context(), stored); err != nil {
			h.logger.Error("save profile", "url", req.WebsiteURL, "err", err)
		} else {
			c.Header("X-Profile-ID", stored.ID)
		}
	}

	c.JSON(http.StatusOK, profile)
}

// ListProfiles returns stored profiles, newest first. Supports the website,
// limit and offset query parameters.
func (h *Handler) ListProfiles(c *gin.Context) {
	var filter storeprofile.ProfileFilter
	if website := c.Query("website"); website != "" {
		filter.Website = &website
	}
	var err error
	if filter.Limit, err = intQuery(c, "limit"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "limit must be a non-negative integer"})
		return
	}
	if filter.Offset, err = intQuery(c, "offset"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "offset must be a non-negative integer"})
		return
	}

	profiles, err := h.profiles.FindProfiles(c.Request.Context(), filter)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, profiles)
}

// GetProfile returns a stored profile by ID.
func (h *Handler) GetProfile(c *gin.Context) {
	profile, err := h.profiles.FindProfileByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// DeleteProfile removes a stored profile.
func (h *Handler) DeleteProfile(c *gin.Context) {
	if err := h.profiles.DeleteProfile(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// writeError writes err as a {"detail": ...} response with a status derived from
// its application error code.
func (h *Handler) writeError(c *gin.Context, err error) {
	msg := message(err)
	switch storeprofile.ErrorCode(err) {
	case storeprofile.EINVALID:
		c.JSON(http.StatusBadRequest, gin.H{"detail": msg})
	case storeprofile.EUNREACHABLE:
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Website not reachable: " + msg})
	case storeprofile.ENOTFOUND:
		c.JSON(http.StatusNotFound, gin.H{"detail": msg})
	default:
		h.logger.Error("request failed", "path", c.Request.URL.Path, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal error: " + msg})
	}
}

func message(err error) string {
	var e *storeprofile.Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

func intQuery(c *gin.Context, key string) (int, error) {
	s := c.Query(key)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, errors.New("invalid " + key)
	}
	return n, nil
}
