package store

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/kuninet/gravity-household-app/internal/model"
)

// bulkInsertChunkSize 批量插入分片大小，限制单条语句的占位符数量
const bulkInsertChunkSize = 50

// ListTransactions 查询取引记录，fiscalMonth 为空时返回全部
func (s *Store) ListTransactions(fiscalMonth string) ([]*model.Transaction, error) {
	query := `SELECT id, date, fiscal_month, amount, type, category_code, description, memo, created_at FROM transactions`
	args := []interface{}{}

	if fiscalMonth != "" {
		query += ` WHERE fiscal_month = ?`
		args = append(args, fiscalMonth)
	}
	query += ` ORDER BY date DESC, id DESC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// scanTransactions 扫描查询结果
func scanTransactions(rows *sql.Rows) ([]*model.Transaction, error) {
	var list []*model.Transaction
	for rows.Next() {
		t := &model.Transaction{}
		var code sql.NullInt64
		var desc, memo, createdAt sql.NullString
		if err := rows.Scan(&t.ID, &t.Date, &t.FiscalMonth, &t.Amount, &t.Type, &code, &desc, &memo, &createdAt); err != nil {
			return nil, err
		}
		if code.Valid {
			c := int(code.Int64)
			t.CategoryCode = &c
		}
		t.Description = desc.String
		t.Memo = memo.String
		t.CreatedAt = createdAt.String
		list = append(list, t)
	}
	return list, rows.Err()
}

// InsertTransaction 插入单条取引，返回新 ID
func (s *Store) InsertTransaction(t *model.Transaction) (int64, error) {
	res, err := s.db.Exec(`
		INSERT INTO transactions (date, fiscal_month, amount, type, category_code, description, memo)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, t.Date, t.FiscalMonth, t.Amount, t.Type, codeArg(t.CategoryCode), t.Description, t.Memo)
	if err != nil {
		return 0, fmt.Errorf("failed to insert transaction: %w", err)
	}
	return res.LastInsertId()
}

// UpdateTransaction 更新单条取引
func (s *Store) UpdateTransaction(t *model.Transaction) (int64, error) {
	res, err := s.db.Exec(`
		UPDATE transactions
		SET date = ?, fiscal_month = ?, amount = ?, type = ?, category_code = ?, description = ?, memo = ?
		WHERE id = ?
	`, t.Date, t.FiscalMonth, t.Amount, t.Type, codeArg(t.CategoryCode), t.Description, t.Memo, t.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to update transaction: %w", err)
	}
	return res.RowsAffected()
}

// DeleteTransaction 删除单条取引
func (s *Store) DeleteTransaction(id int64) (int64, error) {
	res, err := s.db.Exec(`DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// DeleteTransactions 按 ID 批量删除
func (s *Store) DeleteTransactions(ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	placeholders := strings.Repeat("?,", len(ids))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	res, err := s.db.Exec(`DELETE FROM transactions WHERE id IN (`+placeholders+`)`, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// DeleteByScope 按会计月份 + 分类编码集合删除
// codes 为空时删除该会计月份的全部记录（日次表导入的宽范围覆盖）。
func (s *Store) DeleteByScope(fiscalMonth string, codes []int) (int64, error) {
	if len(codes) == 0 {
		res, err := s.db.Exec(`DELETE FROM transactions WHERE fiscal_month = ?`, fiscalMonth)
		if err != nil {
			return 0, err
		}
		return res.RowsAffected()
	}

	placeholders := strings.Repeat("?,", len(codes))
	placeholders = placeholders[:len(placeholders)-1]
	args := []interface{}{fiscalMonth}
	for _, c := range codes {
		args = append(args, c)
	}
	res, err := s.db.Exec(`DELETE FROM transactions WHERE fiscal_month = ? AND category_code IN (`+placeholders+`)`, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// InsertBatch 分片批量插入
// 每个分片是一条多行 VALUES 语句，独立提交，不包外层事务（见导入设计）。
func (s *Store) InsertBatch(records []*model.Transaction) error {
	for start := 0; start < len(records); start += bulkInsertChunkSize {
		end := start + bulkInsertChunkSize
		if end > len(records) {
			end = len(records)
		}
		if err := s.insertChunk(records[start:end]); err != nil {
			return err
		}
	}
	return nil
}

// insertChunk 插入一个分片
func (s *Store) insertChunk(chunk []*model.Transaction) error {
	if len(chunk) == 0 {
		return nil
	}

	var sb strings.Builder
	sb.WriteString(`INSERT INTO transactions (date, fiscal_month, amount, type, category_code, description, memo) VALUES `)

	args := make([]interface{}, 0, len(chunk)*7)
	for i, t := range chunk {
		if i > 0 {
			sb.WriteString(",")
		}
		sb.WriteString("(?, ?, ?, ?, ?, ?, ?)")
		args = append(args, t.Date, t.FiscalMonth, t.Amount, t.Type, codeArg(t.CategoryCode), t.Description, t.Memo)
	}

	if _, err := s.db.Exec(sb.String(), args...); err != nil {
		return fmt.Errorf("failed to bulk insert transactions: %w", err)
	}
	return nil
}

// CountByFiscalMonth 统计某会计月份的记录数
func (s *Store) CountByFiscalMonth(fiscalMonth string) (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM transactions WHERE fiscal_month = ?`, fiscalMonth).Scan(&n)
	return n, err
}

// RestoreAll 备份恢复：事务内清空全表并按原 ID 重新写入
func (s *Store) RestoreAll(records []*model.Transaction) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM transactions`); err != nil {
		return fmt.Errorf("failed to wipe transactions: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM sqlite_sequence WHERE name = 'transactions'`); err != nil {
		return fmt.Errorf("failed to reset sequence: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO transactions (id, date, fiscal_month, amount, type, category_code, description, memo)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, t := range records {
		var id interface{}
		if t.ID > 0 {
			id = t.ID
		}
		if _, err := stmt.Exec(id, t.Date, t.FiscalMonth, t.Amount, t.Type, codeArg(t.CategoryCode), t.Description, t.Memo); err != nil {
			return fmt.Errorf("failed to restore record: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit restore: %w", err)
	}
	return nil
}

// ExportAll 备份导出：按 ID 升序返回全部记录
func (s *Store) ExportAll() ([]*model.Transaction, error) {
	rows, err := s.db.Query(`SELECT id, date, fiscal_month, amount, type, category_code, description, memo, created_at FROM transactions ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTransactions(rows)
}

func codeArg(code *int) interface{} {
	if code == nil {
		return nil
	}
	return *code
}
