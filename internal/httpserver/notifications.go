package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sowin-pos/internal/service/advisory"
)

type notificationsResponse struct {
	Items  []advisory.Notification `json:"items"`
	Unread int                     `json:"unread"`
}

func (h *handlers) listNotifications(c *gin.Context) {
	items := h.deps.Notifications.List()
	if items == nil {
		items = []advisory.Notification{}
	}
	c.JSON(http.StatusOK, notificationsResponse{Items: items, Unread: len(h.deps.Notifications.Unread())})
}

func (h *handlers) markNotificationRead(c *gin.Context) {
	if err := h.deps.Notifications.MarkRead(c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) markAllNotificationsRead(c *gin.Context) {
	h.deps.Notifications.MarkAllRead()
	c.Status(http.StatusNoContent)
}

// restockDraft returns a pre-filled stock entry for the notified product.
func (h *handlers) restockDraft(c *gin.Context) {
	draft, err := h.deps.Notifications.Draft(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, draft)
}
