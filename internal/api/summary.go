package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kuninet/gravity-household-app/internal/fiscal"
	"github.com/kuninet/gravity-household-app/internal/store"
)

// groupComparison 分类组的当月/前月对比
type groupComparison struct {
	Name      string `json:"name"`
	Total     int64  `json:"total"`
	PrevTotal int64  `json:"prev_total"`
	Diff      int64  `json:"diff"`
}

// GetSummary 月次集計
// GET /api/summary?month=YYYY-MM  (省略時は今日が属する会計月)
func (h *Handler) GetSummary(c *gin.Context) {
	month := c.Query("month")
	if month == "" {
		month = fiscal.MonthKey(time.Now())
	}
	prevMonth := fiscal.PrevMonthKey(month)

	totals, err := h.store.GroupTotals(month, prevMonth)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	income, expense, err := h.store.TypeTotals(month)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// 当月分は合計降順のまま、前月分は対比用のマップに
	byGroup := []*store.GroupTotal{}
	prev := map[string]int64{}
	for _, g := range totals {
		switch g.FiscalMonth {
		case month:
			byGroup = append(byGroup, g)
		case prevMonth:
			prev[g.Name] = g.Total
		}
	}

	comparison := make([]groupComparison, 0, len(byGroup))
	for _, g := range byGroup {
		p := prev[g.Name]
		comparison = append(comparison, groupComparison{
			Name:      g.Name,
			Total:     g.Total,
			PrevTotal: p,
			Diff:      g.Total - p,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"month":      month,
		"prev_month": prevMonth,
		"by_group":   byGroup,
		"comparison": comparison,
		"total": gin.H{
			"income":  income,
			"expense": expense,
			"balance": income - expense,
		},
	})
}

// yearlySeries 年間推移の 1 系列：12 个月的金额
type yearlySeries struct {
	Name  string  `json:"name"`
	Data  []int64 `json:"data"`
	Total int64   `json:"total"`
}

// buildSeries 把按月分组的合计转成固定 12 列的系列
func buildSeries(year int, totals []*store.GroupTotal) []yearlySeries {
	monthIndex := map[string]int{}
	for i, key := range fiscal.MonthKeys(year) {
		monthIndex[key] = i
	}

	var order []string
	byName := map[string]*yearlySeries{}
	for _, g := range totals {
		idx, ok := monthIndex[g.FiscalMonth]
		if !ok {
			continue
		}
		s, ok := byName[g.Name]
		if !ok {
			s = &yearlySeries{Name: g.Name, Data: make([]int64, 12)}
			byName[g.Name] = s
			order = append(order, g.Name)
		}
		s.Data[idx] += g.Total
		s.Total += g.Total
	}

	series := make([]yearlySeries, 0, len(order))
	for _, name := range order {
		series = append(series, *byName[name])
	}
	return series
}

// GetYearlyAnalysis 年次分析
// GET /api/analysis/yearly?year=YYYY  (省略時は今年)
func (h *Handler) GetYearlyAnalysis(c *gin.Context) {
	year := time.Now().Year()
	if v := c.Query("year"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year"})
			return
		}
		year = n
	}

	groups, err := h.store.YearlyGroupTotals(year)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	fixed, err := h.store.YearlyFixedBreakdown(year)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	months := make([]string, 0, 12)
	for m := 1; m <= 12; m++ {
		months = append(months, strconv.Itoa(m))
	}

	c.JSON(http.StatusOK, gin.H{
		"year":                 year,
		"months":               months,
		"groups":               buildSeries(year, groups),
		"fixed_cost_breakdown": buildSeries(year, fixed),
	})
}
