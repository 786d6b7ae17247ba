package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kuninet/gravity-household-app/internal/store"
)

// GetFixedCostMatrix 固定費画面的年度矩阵数据
// GET /api/fixed_costs/matrix?year=YYYY
func (h *Handler) GetFixedCostMatrix(c *gin.Context) {
	year := time.Now().Year()
	if v := c.Query("year"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year"})
			return
		}
		year = n
	}

	cells, err := h.store.FixedCostMatrix(year, store.FixedCostCodes)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if cells == nil {
		cells = []*store.FixedCostCell{}
	}

	c.JSON(http.StatusOK, gin.H{
		"year":  year,
		"codes": store.FixedCostCodes,
		"cells": cells,
	})
}

// BatchUpdateFixedCosts 固定費画面的批量保存
// POST /api/fixed_costs/batch_update
func (h *Handler) BatchUpdateFixedCosts(c *gin.Context) {
	var req struct {
		Year  int                         `json:"year"`
		Cells []store.FixedCostCellUpdate `json:"cells"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Year == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "year and cells are required"})
		return
	}

	for _, cell := range req.Cells {
		if cell.Month < 1 || cell.Month > 12 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "month must be between 1 and 12"})
			return
		}
		if cell.Amount < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "amount must not be negative"})
			return
		}
	}

	processed, err := h.store.BatchUpdateFixedCells(req.Year, req.Cells)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"processed": processed})
}
