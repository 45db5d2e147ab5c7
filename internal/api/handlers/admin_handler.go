package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/foodikal/ny-backend/internal/domain"
	"github.com/foodikal/ny-backend/internal/repository"
)

// AdminHandler covers the small admin-only collections: promo codes and
// storefront banners. Both are thin enough to skip a service layer.
type AdminHandler struct {
	promos  repository.PromoRepository
	banners repository.BannerRepository
}

func NewAdminHandler(promos repository.PromoRepository, banners repository.BannerRepository) *AdminHandler {
	return &AdminHandler{promos: promos, banners: banners}
}

func (h *AdminHandler) ListPromoCodes(c *gin.Context) {
	codes, err := h.promos.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load promo codes"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"promo_codes": codes})
}

type promoRequest struct {
	Code string `json:"code" binding:"required"`
}

func (h *AdminHandler) CreatePromoCode(c *gin.Context) {
	var req promoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "promo code is required"})
		return
	}
	if err := h.promos.Create(c.Request.Context(), req.Code); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create promo code"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"code": req.Code})
}

func (h *AdminHandler) DeletePromoCode(c *gin.Context) {
	code := c.Param("code")
	if err := h.promos.Delete(c.Request.Context(), code); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "promo code not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete promo code"})
		return
	}
	c.Status(http.StatusNoContent)
}

// ListBanners is public: the storefront renders these on the landing page.
func (h *AdminHandler) ListBanners(c *gin.Context) {
	banners, err := h.banners.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load banners"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"banners": banners})
}

func (h *AdminHandler) CreateBanner(c *gin.Context) {
	var banner domain.Banner
	if err := c.ShouldBindJSON(&banner); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid banner payload"})
		return
	}
	if banner.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "banner name is required"})
		return
	}
	if err := h.banners.Create(c.Request.Context(), &banner); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create banner"})
		return
	}
	c.JSON(http.StatusCreated, banner)
}

func (h *AdminHandler) UpdateBanner(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid banner id"})
		return
	}

	var banner domain.Banner
	if err := c.ShouldBindJSON(&banner); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid banner payload"})
		return
	}
	banner.ID = id

	if err := h.banners.Update(c.Request.Context(), &banner); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "banner not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update banner"})
		return
	}
	c.JSON(http.StatusOK, banner)
}

func (h *AdminHandler) DeleteBanner(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid banner id"})
		return
	}
	if err := h.banners.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "banner not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete banner"})
		return
	}
	c.Status(http.StatusNoContent)
}
