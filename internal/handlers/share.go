// internal/handlers/share.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/stockflow/stockflow-backend/internal/store"
	"github.com/stockflow/stockflow-backend/internal/utils"
)

type ShareHandler struct {
	store *store.Store
}

func NewShareHandler(st *store.Store) *ShareHandler {
	return &ShareHandler{store: st}
}

// GET /v1/share
func (h *ShareHandler) GetShareURL(c *gin.Context) {
	url, err := h.store.ShareURL()
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to build share link")
		return
	}

	utils.SuccessResponse(c, gin.H{"url": url})
}
