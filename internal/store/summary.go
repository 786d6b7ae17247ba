package store

import (
	"database/sql"
	"fmt"
)

// GroupTotal 分组合计
type GroupTotal struct {
	FiscalMonth string `json:"fiscal_month"`
	Name        string `json:"name"`
	Total       int64  `json:"total"`
}

// GroupTotals 查询若干会计月份按分类组的支出合计
func (s *Store) GroupTotals(fiscalMonths ...string) ([]*GroupTotal, error) {
	if len(fiscalMonths) == 0 {
		return nil, nil
	}

	placeholders := ""
	args := make([]interface{}, 0, len(fiscalMonths))
	for i, m := range fiscalMonths {
		if i > 0 {
			placeholders += ","
		}
		placeholders += "?"
		args = append(args, m)
	}

	rows, err := s.db.Query(`
		SELECT t.fiscal_month, c.group_name, SUM(t.amount) AS total
		FROM transactions t
		JOIN categories c ON t.category_code = c.code
		WHERE t.fiscal_month IN (`+placeholders+`) AND t.type = 'EXPENSE'
		GROUP BY t.fiscal_month, c.group_name
		ORDER BY total DESC
	`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanGroupTotals(rows)
}

// TypeTotals 查询某会计月份按取引種別的合计（INCOME / EXPENSE）
func (s *Store) TypeTotals(fiscalMonth string) (income, expense int64, err error) {
	rows, err := s.db.Query(`
		SELECT type, SUM(amount) AS total
		FROM transactions
		WHERE fiscal_month = ?
		GROUP BY type
	`, fiscalMonth)
	if err != nil {
		return 0, 0, err
	}
	defer rows.Close()

	for rows.Next() {
		var typ string
		var total int64
		if err := rows.Scan(&typ, &total); err != nil {
			return 0, 0, err
		}
		switch typ {
		case "INCOME":
			income = total
		case "EXPENSE":
			expense = total
		}
	}
	return income, expense, rows.Err()
}

// YearlyGroupTotals 查询某年份 12 个会计月按分类组的支出合计
func (s *Store) YearlyGroupTotals(year int) ([]*GroupTotal, error) {
	rows, err := s.db.Query(`
		SELECT t.fiscal_month, c.group_name, SUM(t.amount) AS total
		FROM transactions t
		JOIN categories c ON t.category_code = c.code
		WHERE t.fiscal_month LIKE ? AND t.type = 'EXPENSE'
		GROUP BY t.fiscal_month, c.group_name
		ORDER BY t.fiscal_month ASC
	`, fmt.Sprintf("%04d-%%", year))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanGroupTotals(rows)
}

// YearlyFixedBreakdown 查询某年份固定费组内按分类名的支出合计
func (s *Store) YearlyFixedBreakdown(year int) ([]*GroupTotal, error) {
	rows, err := s.db.Query(`
		SELECT t.fiscal_month, c.name, SUM(t.amount) AS total
		FROM transactions t
		JOIN categories c ON t.category_code = c.code
		WHERE t.fiscal_month LIKE ?
		  AND t.type = 'EXPENSE'
		  AND c.group_name = '固定費'
		GROUP BY t.fiscal_month, c.name
		ORDER BY t.fiscal_month ASC
	`, fmt.Sprintf("%04d-%%", year))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanGroupTotals(rows)
}

func scanGroupTotals(rows *sql.Rows) ([]*GroupTotal, error) {
	var list []*GroupTotal
	for rows.Next() {
		g := &GroupTotal{}
		if err := rows.Scan(&g.FiscalMonth, &g.Name, &g.Total); err != nil {
			return nil, err
		}
		list = append(list, g)
	}
	return list, rows.Err()
}
