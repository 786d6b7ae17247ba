package store

import (
	"fmt"
	"strings"
)

// FixedCostCell 固定费矩阵中的一个单元
type FixedCostCell struct {
	ID           int64  `json:"id"`
	FiscalMonth  string `json:"fiscal_month"`
	CategoryCode int    `json:"category_code"`
	Amount       int64  `json:"amount"`
	Description  string `json:"description"`
}

// FixedCostMatrix 查询某年份固定费编码的全部支出单元
func (s *Store) FixedCostMatrix(year int, codes []int) ([]*FixedCostCell, error) {
	if len(codes) == 0 {
		return nil, nil
	}

	placeholders := strings.Repeat("?,", len(codes))
	placeholders = placeholders[:len(placeholders)-1]

	args := []interface{}{fmt.Sprintf("%04d-%%", year)}
	for _, c := range codes {
		args = append(args, c)
	}

	rows, err := s.db.Query(`
		SELECT id, fiscal_month, category_code, amount, COALESCE(description, '')
		FROM transactions
		WHERE fiscal_month LIKE ?
		  AND category_code IN (`+placeholders+`)
		  AND type = 'EXPENSE'
	`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cells []*FixedCostCell
	for rows.Next() {
		c := &FixedCostCell{}
		if err := rows.Scan(&c.ID, &c.FiscalMonth, &c.CategoryCode, &c.Amount, &c.Description); err != nil {
			return nil, err
		}
		cells = append(cells, c)
	}
	return cells, rows.Err()
}

// FixedCostCellUpdate 批量更新的一个单元：amount 为 0 表示删除
type FixedCostCellUpdate struct {
	Month        int   `json:"month"`
	CategoryCode int   `json:"category_code"`
	Amount       int64 `json:"amount"`
}

// BatchUpdateFixedCells 事务内逐单元 upsert/删除固定费记录
// 手工编辑画面用，与 Excel 导入的覆盖式回写不同。
func (s *Store) BatchUpdateFixedCells(year int, cells []FixedCostCellUpdate) (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	processed := 0
	for _, cell := range cells {
		fiscalMonth := fmt.Sprintf("%04d-%02d", year, cell.Month)

		var id int64
		err := tx.QueryRow(`SELECT id FROM transactions WHERE fiscal_month = ? AND category_code = ?`,
			fiscalMonth, cell.CategoryCode).Scan(&id)
		exists := err == nil

		switch {
		case cell.Amount == 0 && exists:
			if _, err := tx.Exec(`DELETE FROM transactions WHERE id = ?`, id); err != nil {
				return 0, err
			}
		case cell.Amount == 0:
			// 空单元且无记录，跳过
		case exists:
			if _, err := tx.Exec(`UPDATE transactions SET amount = ? WHERE id = ?`, cell.Amount, id); err != nil {
				return 0, err
			}
		default:
			// 日付は月初で代用（集計は fiscal_month 基準）
			date := fiscalMonth + "-01"
			if _, err := tx.Exec(`
				INSERT INTO transactions (date, fiscal_month, amount, type, category_code, description)
				VALUES (?, ?, ?, 'EXPENSE', ?, '固定費入力')
			`, date, fiscalMonth, cell.Amount, cell.CategoryCode); err != nil {
				return 0, err
			}
		}
		processed++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit batch update: %w", err)
	}
	return processed, nil
}

// FixedCostCodes 固定费画面与标准固定费表共用的分类编码
var FixedCostCodes = []int{604, 601, 603, 606, 602, 605, 607, 901, 608}
