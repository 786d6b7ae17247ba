package store

import (
	"fmt"
	"testing"

	"github.com/kuninet/gravity-household-app/internal/model"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(":memory:")
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func expense(date, fiscalMonth string, amount int64, code int) *model.Transaction {
	return model.NewExpense(date, fiscalMonth, amount, code, "テスト", "")
}

func TestStore_SeedsCategories(t *testing.T) {
	s := newStore(t)

	cats, err := s.ListCategories()
	if err != nil {
		t.Fatalf("list categories: %v", err)
	}
	if len(cats) != len(model.DefaultCategories) {
		t.Fatalf("got %d categories, want %d", len(cats), len(model.DefaultCategories))
	}

	// code 昇順
	for i := 1; i < len(cats); i++ {
		if cats[i-1].Code >= cats[i].Code {
			t.Fatalf("categories not sorted: %d before %d", cats[i-1].Code, cats[i].Code)
		}
	}

	byCode := map[int]*model.Category{}
	for _, c := range cats {
		byCode[c.Code] = c
	}
	if c := byCode[604]; c == nil || c.Name != "家賃" || c.GroupName != "固定費" {
		t.Fatalf("category 604: %+v", c)
	}
	if c := byCode[100]; c == nil || c.Name != "食費" {
		t.Fatalf("category 100: %+v", c)
	}
}

func TestStore_TransactionCRUD(t *testing.T) {
	s := newStore(t)

	id, err := s.InsertTransaction(expense("2024-04-05", "2024-04", 1200, 100))
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if id == 0 {
		t.Fatal("insert returned id 0")
	}

	list, err := s.ListTransactions("2024-04")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].Amount != 1200 || *list[0].CategoryCode != 100 {
		t.Fatalf("list: %+v", list)
	}

	got := list[0]
	got.Amount = 1500
	affected, err := s.UpdateTransaction(got)
	if err != nil || affected != 1 {
		t.Fatalf("update: affected=%d err=%v", affected, err)
	}

	affected, err = s.DeleteTransaction(id)
	if err != nil || affected != 1 {
		t.Fatalf("delete: affected=%d err=%v", affected, err)
	}

	// 存在しない ID の更新・削除は 0 行
	if affected, _ := s.DeleteTransaction(id); affected != 0 {
		t.Fatalf("delete missing: affected=%d", affected)
	}
}

func TestStore_ListTransactions_Order(t *testing.T) {
	s := newStore(t)

	for _, d := range []string{"2024-04-01", "2024-04-10", "2024-04-05"} {
		if _, err := s.InsertTransaction(expense(d, "2024-04", 100, 100)); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	list, err := s.ListTransactions("2024-04")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 3 || list[0].Date != "2024-04-10" || list[2].Date != "2024-04-01" {
		t.Fatalf("order: %+v", list)
	}
}

func TestStore_DeleteByScope(t *testing.T) {
	s := newStore(t)

	seed := []*model.Transaction{
		expense("2024-04-01", "2024-04", 100, 100),
		expense("2024-04-02", "2024-04", 200, 604),
		expense("2024-04-03", "2024-04", 300, 601),
		expense("2024-05-01", "2024-05", 400, 604),
	}
	if err := s.InsertBatch(seed); err != nil {
		t.Fatalf("insert batch: %v", err)
	}

	// 編碼指定の削除は月+編碼だけ消す
	deleted, err := s.DeleteByScope("2024-04", []int{604, 601})
	if err != nil || deleted != 2 {
		t.Fatalf("scoped delete: deleted=%d err=%v", deleted, err)
	}
	if n, _ := s.CountByFiscalMonth("2024-04"); n != 1 {
		t.Fatalf("2024-04 count after scoped delete: %d", n)
	}
	if n, _ := s.CountByFiscalMonth("2024-05"); n != 1 {
		t.Fatalf("2024-05 touched: %d", n)
	}

	// 編碼なしは月まるごと
	deleted, err = s.DeleteByScope("2024-04", nil)
	if err != nil || deleted != 1 {
		t.Fatalf("month delete: deleted=%d err=%v", deleted, err)
	}
}

func TestStore_InsertBatch_SpansChunks(t *testing.T) {
	s := newStore(t)

	var records []*model.Transaction
	for i := 0; i < bulkInsertChunkSize*2+7; i++ {
		records = append(records, expense(fmt.Sprintf("2024-04-%02d", i%28+1), "2024-04", int64(i+1), 100))
	}
	if err := s.InsertBatch(records); err != nil {
		t.Fatalf("insert batch: %v", err)
	}

	n, err := s.CountByFiscalMonth("2024-04")
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != len(records) {
		t.Fatalf("got %d records, want %d", n, len(records))
	}
}

func TestStore_ExportRestoreRoundTrip(t *testing.T) {
	s := newStore(t)

	if _, err := s.InsertTransaction(expense("2024-04-05", "2024-04", 1200, 100)); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if _, err := s.InsertTransaction(expense("2024-05-01", "2024-05", 85000, 604)); err != nil {
		t.Fatalf("insert: %v", err)
	}

	exported, err := s.ExportAll()
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if len(exported) != 2 || exported[0].ID >= exported[1].ID {
		t.Fatalf("export: %+v", exported)
	}

	// 別の店に復元しても ID が保持される
	s2 := newStore(t)
	if _, err := s2.InsertTransaction(expense("2020-01-01", "2020-01", 1, 100)); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := s2.RestoreAll(exported); err != nil {
		t.Fatalf("restore: %v", err)
	}

	restored, err := s2.ExportAll()
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if len(restored) != 2 {
		t.Fatalf("restore did not wipe old data: %+v", restored)
	}
	for i := range exported {
		if restored[i].ID != exported[i].ID || restored[i].Amount != exported[i].Amount {
			t.Fatalf("record %d mismatch: %+v vs %+v", i, restored[i], exported[i])
		}
	}
}

func TestStore_FixedCostMatrixAndBatchUpdate(t *testing.T) {
	s := newStore(t)

	processed, err := s.BatchUpdateFixedCells(2024, []FixedCostCellUpdate{
		{Month: 1, CategoryCode: 604, Amount: 85000},
		{Month: 1, CategoryCode: 601, Amount: 4321},
		{Month: 2, CategoryCode: 604, Amount: 85000},
	})
	if err != nil || processed != 3 {
		t.Fatalf("batch update: processed=%d err=%v", processed, err)
	}

	cells, err := s.FixedCostMatrix(2024, FixedCostCodes)
	if err != nil {
		t.Fatalf("matrix: %v", err)
	}
	if len(cells) != 3 {
		t.Fatalf("matrix cells: %+v", cells)
	}

	// 上書き更新と 0 円削除
	processed, err = s.BatchUpdateFixedCells(2024, []FixedCostCellUpdate{
		{Month: 1, CategoryCode: 604, Amount: 90000},
		{Month: 1, CategoryCode: 601, Amount: 0},
		{Month: 3, CategoryCode: 602, Amount: 0}, // 記録なし + 0 円 → 何もしない
	})
	if err != nil || processed != 3 {
		t.Fatalf("batch update: processed=%d err=%v", processed, err)
	}

	cells, err = s.FixedCostMatrix(2024, FixedCostCodes)
	if err != nil {
		t.Fatalf("matrix: %v", err)
	}
	if len(cells) != 2 {
		t.Fatalf("matrix cells after update: %+v", cells)
	}
	for _, cell := range cells {
		if cell.FiscalMonth == "2024-01" && cell.CategoryCode == 604 && cell.Amount != 90000 {
			t.Fatalf("cell not updated: %+v", cell)
		}
	}
}

func TestStore_Summaries(t *testing.T) {
	s := newStore(t)

	seed := []*model.Transaction{
		expense("2024-04-01", "2024-04", 1000, 100), // 食費
		expense("2024-04-02", "2024-04", 500, 103),  // 外食費（同组）
		expense("2024-04-03", "2024-04", 85000, 604),
		expense("2024-03-05", "2024-03", 2000, 100),
	}
	if err := s.InsertBatch(seed); err != nil {
		t.Fatalf("insert batch: %v", err)
	}
	income := &model.Transaction{Date: "2024-04-25", FiscalMonth: "2024-05", Amount: 300000, Type: model.TypeIncome}
	if _, err := s.InsertTransaction(income); err != nil {
		t.Fatalf("insert income: %v", err)
	}

	totals, err := s.GroupTotals("2024-04", "2024-03")
	if err != nil {
		t.Fatalf("group totals: %v", err)
	}
	byKey := map[string]int64{}
	for _, g := range totals {
		byKey[g.FiscalMonth+"/"+g.Name] = g.Total
	}
	if byKey["2024-04/食費"] != 1500 {
		t.Fatalf("食費 2024-04: %d", byKey["2024-04/食費"])
	}
	if byKey["2024-04/固定費"] != 85000 {
		t.Fatalf("固定費 2024-04: %d", byKey["2024-04/固定費"])
	}
	if byKey["2024-03/食費"] != 2000 {
		t.Fatalf("食費 2024-03: %d", byKey["2024-03/食費"])
	}

	in, out, err := s.TypeTotals("2024-05")
	if err != nil || in != 300000 || out != 0 {
		t.Fatalf("type totals: income=%d expense=%d err=%v", in, out, err)
	}

	fixed, err := s.YearlyFixedBreakdown(2024)
	if err != nil {
		t.Fatalf("fixed breakdown: %v", err)
	}
	if len(fixed) != 1 || fixed[0].Name != "家賃" || fixed[0].Total != 85000 {
		t.Fatalf("fixed breakdown: %+v", fixed)
	}
}
