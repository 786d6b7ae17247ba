package store

import (
	"github.com/kuninet/gravity-household-app/internal/model"
)

// ListCategories 按编码升序返回分类目录
func (s *Store) ListCategories() ([]*model.Category, error) {
	rows, err := s.db.Query(`SELECT code, name, group_name FROM categories ORDER BY code ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []*model.Category
	for rows.Next() {
		c := &model.Category{}
		if err := rows.Scan(&c.Code, &c.Name, &c.GroupName); err != nil {
			return nil, err
		}
		list = append(list, c)
	}
	return list, rows.Err()
}
