package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sowin-pos/internal/domain"
)

type themeRequest struct {
	Theme string `json:"theme"`
}

type sidebarRequest struct {
	Collapsed bool `json:"collapsed"`
}

func (h *handlers) preferences(c *gin.Context) {
	prefs, err := h.deps.Preferences.Preferences(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, prefs)
}

func (h *handlers) setTheme(c *gin.Context) {
	var in themeRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid theme payload")
		return
	}
	if err := h.deps.Preferences.SetTheme(c.Request.Context(), in.Theme); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) setSidebar(c *gin.Context) {
	var in sidebarRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid sidebar payload")
		return
	}
	if err := h.deps.Preferences.SetSidebarCollapsed(c.Request.Context(), in.Collapsed); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) business(c *gin.Context) {
	c.JSON(http.StatusOK, h.businessProfile(c.Request.Context()))
}

func (h *handlers) setBusiness(c *gin.Context) {
	var in domain.BusinessProfile
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid business payload")
		return
	}
	if err := h.deps.Preferences.SetBusiness(c.Request.Context(), currentSession(c).User, in); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, in)
}
