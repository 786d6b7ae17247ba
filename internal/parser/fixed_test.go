package parser

import (
	"sort"
	"testing"

	"github.com/xuri/excelize/v2"
)

// newFixedSheet 构造测试用固定费表（数据从第 4 行开始，1 行 1 个月）
func newFixedSheet(t *testing.T, sheetName string, rows [][]interface{}) *excelize.File {
	t.Helper()

	f := excelize.NewFile()
	if _, err := f.NewSheet(sheetName); err != nil {
		t.Fatalf("new sheet: %v", err)
	}

	for i, row := range rows {
		for j, v := range row {
			if v == nil {
				continue
			}
			axis, err := excelize.CoordinatesToCellName(j+1, fixedHeaderRows+1+i)
			if err != nil {
				t.Fatalf("cell name: %v", err)
			}
			if err := f.SetCellValue(sheetName, axis, v); err != nil {
				t.Fatalf("set cell: %v", err)
			}
		}
	}
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func TestFixedParser_StandardLayout(t *testing.T) {
	t.Parallel()

	// 1 月行: B=家賃 / C=電気 / D=ガス / F=水道、他は空または 0
	f := newFixedSheet(t, "2024年公共料金等", [][]interface{}{
		{nil, "85,000", "4,321", "2100", nil, "3000", "0", nil, nil, "-1"},
	})

	p := NewFixedParser(f, StandardLayout)
	months, err := p.Extract("2024年公共料金等", 2024)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(months) != 1 {
		t.Fatalf("got %d month rows, want 1", len(months))
	}

	m := months[0]
	if m.Month != 1 || m.FiscalMonth != "2024-01" {
		t.Fatalf("month row: %d %s", m.Month, m.FiscalMonth)
	}

	// 0 円・負額・空セルは記録なし
	got := map[int]int64{}
	for _, r := range m.Records {
		got[*r.CategoryCode] = r.Amount
		if r.Date != "2024-01-01" {
			t.Fatalf("record date: %s", r.Date)
		}
		if r.Description != "ExcelImport" || r.Memo != "固定費" {
			t.Fatalf("record desc/memo: %q / %q", r.Description, r.Memo)
		}
	}

	want := map[int]int64{604: 85000, 601: 4321, 603: 2100, 602: 3000}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for code, amount := range want {
		if got[code] != amount {
			t.Fatalf("code %d = %d, want %d", code, got[code], amount)
		}
	}
}

func TestFixedParser_AlternativeLayout_GasMerge(t *testing.T) {
	t.Parallel()

	// 1 月行: I 列と J 列のガス 2 項目を 603 に合算
	row := make([]interface{}, 10)
	row[8] = "3000" // I
	row[9] = "1500" // J
	f := newFixedSheet(t, "2024合計", [][]interface{}{row})

	months, err := NewFixedParser(f, AlternativeLayout).Extract("2024合計", 2024)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(months) != 1 {
		t.Fatalf("got %d month rows, want 1", len(months))
	}

	m := months[0]
	if len(m.Records) != 1 {
		t.Fatalf("got %d records, want 1", len(m.Records))
	}
	r := m.Records[0]
	if *r.CategoryCode != 603 || r.Amount != 4500 {
		t.Fatalf("gas record: code=%d amount=%d", *r.CategoryCode, r.Amount)
	}
	if r.FiscalMonth != "2024-01" {
		t.Fatalf("gas record fiscal month: %s", r.FiscalMonth)
	}
}

func TestFixedParser_CapsAtTwelveRows(t *testing.T) {
	t.Parallel()

	var rows [][]interface{}
	for i := 0; i < 15; i++ {
		rows = append(rows, []interface{}{nil, "1000"})
	}
	f := newFixedSheet(t, "2024年公共料金等", rows)

	months, err := NewFixedParser(f, StandardLayout).Extract("2024年公共料金等", 2024)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(months) != 12 {
		t.Fatalf("got %d month rows, want 12", len(months))
	}
	if months[11].FiscalMonth != "2024-12" {
		t.Fatalf("last month: %s", months[11].FiscalMonth)
	}
}

func TestFixedLayout_Codes(t *testing.T) {
	t.Parallel()

	std := StandardLayout.Codes()
	sort.Ints(std)
	wantStd := []int{601, 602, 603, 604, 605, 606, 607, 608, 901}
	if len(std) != len(wantStd) {
		t.Fatalf("standard codes: %v", std)
	}
	for i := range wantStd {
		if std[i] != wantStd[i] {
			t.Fatalf("standard codes: %v, want %v", std, wantStd)
		}
	}

	// 合計表は食洗機(606)・保険(608)を上書きしない
	alt := AlternativeLayout.Codes()
	sort.Ints(alt)
	wantAlt := []int{601, 602, 603, 604, 605, 607, 901}
	if len(alt) != len(wantAlt) {
		t.Fatalf("alternative codes: %v", alt)
	}
	for i := range wantAlt {
		if alt[i] != wantAlt[i] {
			t.Fatalf("alternative codes: %v, want %v", alt, wantAlt)
		}
	}
}

func TestLayoutFor(t *testing.T) {
	t.Parallel()

	if _, ok := LayoutFor(SheetTypeFixedStd); !ok {
		t.Fatal("standard layout not found")
	}
	if _, ok := LayoutFor(SheetTypeFixedAlt); !ok {
		t.Fatal("alternative layout not found")
	}
	if _, ok := LayoutFor(SheetTypeDailyLedger); ok {
		t.Fatal("daily ledger must not have a fixed layout")
	}
}
