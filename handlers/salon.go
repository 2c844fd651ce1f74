package handlers

import (
	"net/http"

	"salonbook/services/salon"
	"salonbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type SalonHandler struct {
	Service salon.SalonService
}

func NewSalonHandler(svc salon.SalonService) *SalonHandler {
	return &SalonHandler{Service: svc}
}

func (h *SalonHandler) ListSalons(c *gin.Context) {
	salons, err := h.Service.ListSalons(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, salons)
}

// GetSalon hides salons still awaiting approval.
func (h *SalonHandler) GetSalon(c *gin.Context) {
	s, err := h.Service.GetSalon(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if !s.Approved {
		utils.JSONError(c, http.StatusNotFound, "salon_not_found", "salon not found", "")
		return
	}
	c.JSON(http.StatusOK, s)
}

// UpdateServices replaces the catalogue of the caller's salon.
func (h *SalonHandler) UpdateServices(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var body catalogueBody
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}
	services, err := body.toServices()
	if err != nil {
		badRequest(c, err)
		return
	}

	updated, err := h.Service.UpdateServices(c.Request.Context(), actor, c.Param("id"), services)
	if err != nil {
		respondError(c, err)
		return
	}
	getLogger(c).Info("salon catalogue updated", zap.String("salonId", updated.ID), zap.Int("services", len(updated.Services)))
	c.JSON(http.StatusOK, updated)
}
