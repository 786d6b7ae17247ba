package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kuninet/gravity-household-app/internal/model"
)

// ListCategories 查询分类目录
// GET /api/categories
func (h *Handler) ListCategories(c *gin.Context) {
	list, err := h.store.ListCategories()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if list == nil {
		list = []*model.Category{}
	}
	c.JSON(http.StatusOK, list)
}
