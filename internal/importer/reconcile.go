package importer

import (
	"fmt"

	"github.com/kuninet/gravity-household-app/internal/model"
)

// TxStore 调和引擎需要的存储能力
// 传接口而不是共享连接，调和逻辑可以直接对内存假存储做测试。
type TxStore interface {
	// DeleteByScope 删除某会计月份内指定分类编码的记录，codes 为空删全部分类
	DeleteByScope(fiscalMonth string, codes []int) (int64, error)
	// InsertBatch 分片批量插入
	InsertBatch(records []*model.Transaction) error
}

// Scope 调和范围：会计月份 + 允许覆盖的分类编码集合
// Codes 为空表示该月全部分类（日次表导入）。
type Scope struct {
	FiscalMonth string
	Codes       []int
}

// Reconciler 调和引擎：范围内覆盖式替换
// 先删后插，同一范围重复导入是幂等的——结果只取决于最后一次输入。
// Execute 阶段不包事务，每条语句独立提交（进度流式优先于原子性）。
type Reconciler struct {
	store TxStore
}

// NewReconciler 创建调和引擎
func NewReconciler(store TxStore) *Reconciler {
	return &Reconciler{store: store}
}

// Reconcile 执行一次范围调和
func (r *Reconciler) Reconcile(scope Scope, records []*model.Transaction) error {
	if _, err := r.store.DeleteByScope(scope.FiscalMonth, scope.Codes); err != nil {
		return fmt.Errorf("failed to delete scope %s: %w", scope.FiscalMonth, err)
	}

	if len(records) == 0 {
		return nil
	}

	if err := r.store.InsertBatch(records); err != nil {
		return fmt.Errorf("failed to insert records for %s: %w", scope.FiscalMonth, err)
	}
	return nil
}
