package recommend

import (
	"context"
	"errors"

	"recipe-recommender/internal/core/index"
	"recipe-recommender/internal/core/ingest"
	"recipe-recommender/internal/pkg/common"

	"go.uber.org/zap"
)

// Service 食譜推薦服務：對已建立的索引執行查詢。
// 索引建立後不可變，查詢為唯讀且冪等：相同食材與 topN 必得相同結果。
type Service struct {
	index       *index.Index
	defaultTopN int
}

// NewService 創建食譜推薦服務
func NewService(ix *index.Index, defaultTopN int) *Service {
	return &Service{
		index:       ix,
		defaultTopN: defaultTopN,
	}
}

// Recommend 依自由輸入的食材清單推薦食譜。
// 查詢正規化後沒有任何已知詞彙（空輸入或全是未知食材）時，
// 回傳空的排序結果——「找不到推薦」是正常結果，不是錯誤。
func (s *Service) Recommend(ctx context.Context, ingredients []string, topN int) (*common.RankedResult, error) {
	if topN <= 0 {
		topN = s.defaultTopN
	}

	normalized := ingest.NormalizeAll(ingredients)
	query := common.JoinIngredients(normalized)

	vec, err := s.index.Transform(query)
	if err != nil {
		if errors.Is(err, common.ErrEmptyQuery) {
			common.LogInfo("查詢沒有任何已知詞彙",
				zap.Int("輸入食材數", len(ingredients)),
			)
			return &common.RankedResult{}, nil
		}
		return nil, err
	}

	hits := s.index.Search(vec, topN)

	result := &common.RankedResult{
		Items: make([]common.RankedItem, 0, len(hits)),
	}
	for _, h := range hits {
		result.Items = append(result.Items, common.RankedItem{
			RecipeID: h.RecipeID,
			Name:     h.Name,
			Score:    h.Score,
		})
	}

	common.LogDebug("推薦查詢完成",
		zap.Int("輸入食材數", len(ingredients)),
		zap.Int("結果筆數", len(result.Items)),
		zap.Int("top_n", topN),
	)

	return result, nil
}

// CorpusSize 取得語料列數
func (s *Service) CorpusSize() int {
	return s.index.Size()
}

// VocabSize 取得詞彙表大小
func (s *Service) VocabSize() int {
	return s.index.VocabSize()
}
