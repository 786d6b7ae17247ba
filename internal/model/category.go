package model

// Category 分类（code 为业务编码，group 用于汇总展示）
type Category struct {
	Code      int    `json:"code"`
	Name      string `json:"name"`
	GroupName string `json:"group_name"`
}

// DefaultCategories 初始分类目录
// 600 番台为固定费，Excel 导入的固定费表直接写这些编码。
var DefaultCategories = []Category{
	{Code: 100, Name: "食費", GroupName: "食費"},
	{Code: 103, Name: "外食費", GroupName: "食費"},
	{Code: 105, Name: "酒", GroupName: "食費"},
	{Code: 200, Name: "日用品・雑費", GroupName: "日用品"},
	{Code: 201, Name: "クリーニング", GroupName: "日用品"},
	{Code: 300, Name: "交通費", GroupName: "交通費"},
	{Code: 400, Name: "交際費・娯楽", GroupName: "交際費"},
	{Code: 401, Name: "映画", GroupName: "交際費"},
	{Code: 402, Name: "本", GroupName: "交際費"},
	{Code: 500, Name: "医療費", GroupName: "医療費"},
	{Code: 900, Name: "その他", GroupName: "その他"},
	{Code: 901, Name: "小遣い", GroupName: "その他"},
	{Code: 600, Name: "家賃・光熱費", GroupName: "固定費"},
	{Code: 601, Name: "電気", GroupName: "固定費"},
	{Code: 602, Name: "水道", GroupName: "固定費"},
	{Code: 603, Name: "ガス一般", GroupName: "固定費"},
	{Code: 604, Name: "家賃", GroupName: "固定費"},
	{Code: 605, Name: "固定電話・フレッツ", GroupName: "固定費"},
	{Code: 606, Name: "食洗機", GroupName: "固定費"},
	{Code: 607, Name: "携帯電話", GroupName: "固定費"},
	{Code: 608, Name: "保険", GroupName: "固定費"},
}
