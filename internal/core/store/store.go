package store

import (
	"sync"

	"recipe-recommender/internal/pkg/common"

	"go.uber.org/zap"
)

// LookupRecord 食譜詳細資料：與評分語料各自獨立載入，僅以 RecipeId 關聯。
// 來源欄位可能缺漏，缺值一律以 nil 表示，呈現端依存在與否分支而非探測哨兵值。
type LookupRecord struct {
	ID           string           `json:"recipe_id"`
	Name         string           `json:"name"`
	Instructions string           `json:"instructions"` // 已攤平並編號的步驟文字
	Description  string           `json:"description,omitempty"`
	Category     string           `json:"category,omitempty"`
	Cuisine      string           `json:"cuisine,omitempty"`
	TotalTime    string           `json:"total_time,omitempty"`
	PrepTime     string           `json:"prep_time,omitempty"`
	CookTime     string           `json:"cook_time,omitempty"`
	Servings     *float64         `json:"servings,omitempty"`
	Nutrition    common.Nutrition `json:"nutrition"`
	Keywords     []string         `json:"keywords,omitempty"`
	URL          string           `json:"url,omitempty"`
}

// Store 以 RecipeId 為鍵的食譜詳細資料儲存；載入後唯讀
type Store struct {
	mu      sync.RWMutex
	records map[string]LookupRecord
}

// NewStore 創建新的食譜儲存
func NewStore() *Store {
	return &Store{
		records: make(map[string]LookupRecord),
	}
}

// Load 批次載入詳細資料
func (s *Store) Load(records []LookupRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rec := range records {
		s.records[rec.ID] = rec
	}

	common.LogInfo("食譜詳細資料載入完成",
		zap.Int("筆數", len(s.records)),
	)
}

// Get 依 RecipeId 取出詳細資料；不存在時回報 ErrMissingLookupRecord，
// 推薦結果本身仍然有效，只是無法呈現詳細內容。
func (s *Store) Get(id string) (*LookupRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[id]
	if !ok {
		return nil, common.ErrMissingLookupRecord
	}
	return &rec, nil
}

// Size 取得已載入的筆數
func (s *Store) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
