package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"recipe-recommender/internal/core/store"
	"recipe-recommender/internal/pkg/common"

	"go.uber.org/zap"
)

// 語料表必要欄位
const (
	colRecipeID    = "RecipeId"
	colName        = "Name"
	colIngredients = "CleanedIngredients"
)

// 詳細查詢表的來源網址欄位別名
var urlAliases = []string{"RecipeUrl", "URL", "Url"}

// LoadCorpus 載入評分語料表：每列一筆食譜，食材欄為清單編碼字串。
// maxRows 為 0 時不限制列數。
func LoadCorpus(path string, maxRows int) ([]common.Recipe, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open corpus table: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read corpus header: %w", err)
	}
	cols := indexColumns(header)
	for _, required := range []string{colRecipeID, colName, colIngredients} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("corpus table missing column %q", required)
		}
	}

	var recipes []common.Recipe
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read corpus row: %w", err)
		}
		if maxRows > 0 && len(recipes) >= maxRows {
			break
		}

		id := strings.TrimSpace(field(row, cols, colRecipeID))
		if id == "" {
			continue
		}

		recipes = append(recipes, common.Recipe{
			ID:          id,
			Name:        strings.TrimSpace(field(row, cols, colName)),
			Ingredients: NormalizeAll(DecodeList(field(row, cols, colIngredients))),
			Nutrition: common.Nutrition{
				Calories:     parseOptionalFloat(field(row, cols, "Calories")),
				Protein:      parseOptionalFloat(field(row, cols, "ProteinContent")),
				Fat:          parseOptionalFloat(field(row, cols, "FatContent")),
				Carbohydrate: parseOptionalFloat(field(row, cols, "CarbohydrateContent")),
			},
		})
	}

	common.LogInfo("評分語料載入完成",
		zap.String("路徑", path),
		zap.Int("筆數", len(recipes)),
	)

	return recipes, nil
}

// LoadLookup 載入詳細查詢表；與語料表僅以 RecipeId 關聯
func LoadLookup(path string, maxRows int) ([]store.LookupRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open lookup table: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read lookup header: %w", err)
	}
	cols := indexColumns(header)
	if _, ok := cols[colRecipeID]; !ok {
		return nil, fmt.Errorf("lookup table missing column %q", colRecipeID)
	}

	var records []store.LookupRecord
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read lookup row: %w", err)
		}
		if maxRows > 0 && len(records) >= maxRows {
			break
		}

		id := strings.TrimSpace(field(row, cols, colRecipeID))
		if id == "" {
			continue
		}

		records = append(records, store.LookupRecord{
			ID:           id,
			Name:         strings.TrimSpace(field(row, cols, colName)),
			Instructions: NumberInstructions(field(row, cols, "Instructions")),
			Description:  strings.TrimSpace(field(row, cols, "Description")),
			Category:     strings.TrimSpace(field(row, cols, "RecipeCategory")),
			Cuisine:      strings.TrimSpace(field(row, cols, "RecipeCuisine")),
			TotalTime:    strings.TrimSpace(field(row, cols, "TotalTime")),
			PrepTime:     strings.TrimSpace(field(row, cols, "PrepTime")),
			CookTime:     strings.TrimSpace(field(row, cols, "CookTime")),
			Servings:     parseOptionalFloat(field(row, cols, "RecipeServings")),
			Nutrition: common.Nutrition{
				Calories:     parseOptionalFloat(field(row, cols, "Calories")),
				Protein:      parseOptionalFloat(field(row, cols, "ProteinContent")),
				Fat:          parseOptionalFloat(field(row, cols, "FatContent")),
				Carbohydrate: parseOptionalFloat(field(row, cols, "CarbohydrateContent")),
			},
			Keywords: DecodeList(field(row, cols, "Keywords")),
			URL:      firstAliasField(row, cols, urlAliases),
		})
	}

	common.LogInfo("詳細查詢表載入完成",
		zap.String("路徑", path),
		zap.Int("筆數", len(records)),
	)

	return records, nil
}

// indexColumns 建立欄位名稱到欄位位置的映射
func indexColumns(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	return cols
}

// field 取出指定欄位的值；欄位不存在或列過短時回傳空字串
func field(row []string, cols map[string]int, name string) string {
	idx, ok := cols[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// firstAliasField 依序嘗試欄位別名，回傳第一個非空值
func firstAliasField(row []string, cols map[string]int, aliases []string) string {
	for _, alias := range aliases {
		if v := strings.TrimSpace(field(row, cols, alias)); v != "" {
			return v
		}
	}
	return ""
}

// parseOptionalFloat 解析可能缺漏的數值欄位；空白或無法解析時回傳 nil
func parseOptionalFloat(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}
