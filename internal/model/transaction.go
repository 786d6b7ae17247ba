package model

// 取引種別
const (
	TypeExpense = "EXPENSE"
	TypeIncome  = "INCOME"
)

// Transaction 家計簿取引記録
// 金额单位为日元（整数），fiscal_month 始终由 date 按会计月规则推导。
type Transaction struct {
	ID           int64  `json:"id"`
	Date         string `json:"date"`         // YYYY-MM-DD
	FiscalMonth  string `json:"fiscal_month"` // YYYY-MM
	Amount       int64  `json:"amount"`
	Type         string `json:"type"` // EXPENSE / INCOME
	CategoryCode *int   `json:"category_code"`
	Description  string `json:"description"`
	Memo         string `json:"memo"`
	CreatedAt    string `json:"created_at,omitempty"`
}

// NewExpense 创建支出记录
func NewExpense(date, fiscalMonth string, amount int64, categoryCode int, description, memo string) *Transaction {
	code := categoryCode
	return &Transaction{
		Date:         date,
		FiscalMonth:  fiscalMonth,
		Amount:       amount,
		Type:         TypeExpense,
		CategoryCode: &code,
		Description:  description,
		Memo:         memo,
	}
}
