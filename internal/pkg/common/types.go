package common

import (
	"fmt"
	"strings"
)

// Recipe 評分語料中的一筆食譜（建索引時載入，之後唯讀）
type Recipe struct {
	ID          string    `json:"recipe_id"`
	Name        string    `json:"name"`
	Ingredients []string  `json:"ingredients"` // 已正規化的食材詞袋
	Nutrition   Nutrition `json:"nutrition"`
}

// Nutrition 營養成分；來源資料可能缺欄位，缺值以 nil 表示而非 0 或 NaN
type Nutrition struct {
	Calories     *float64 `json:"calories,omitempty"`
	Protein      *float64 `json:"protein,omitempty"`
	Fat          *float64 `json:"fat,omitempty"`
	Carbohydrate *float64 `json:"carbohydrate,omitempty"`
}

// RankedItem 單筆推薦結果
type RankedItem struct {
	RecipeID string  `json:"recipe_id"`
	Name     string  `json:"name"`
	Score    float64 `json:"score"`
}

// RankedResult 一次查詢產生的排序結果，分數由高至低
type RankedResult struct {
	Items []RankedItem `json:"items"`
}

// Empty 檢查結果是否為空
func (r *RankedResult) Empty() bool {
	return r == nil || len(r.Items) == 0
}

// FormatScore 以固定三位小數呈現相似度分數
func FormatScore(score float64) string {
	return fmt.Sprintf("%.3f", score)
}

// FormatRankedItem 格式化單筆推薦結果（字母 + 名稱 + 編號 + 分數）
func FormatRankedItem(label string, item RankedItem) string {
	return fmt.Sprintf("%s. %s (id=%s, score=%s)", label, item.Name, item.RecipeID, FormatScore(item.Score))
}

// JoinIngredients 將正規化後的食材詞袋組成以空白分隔的文件字串
func JoinIngredients(ingredients []string) string {
	return strings.Join(ingredients, " ")
}
