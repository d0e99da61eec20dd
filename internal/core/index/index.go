package index

import (
	"sort"

	"recipe-recommender/internal/pkg/common"

	"go.uber.org/zap"
)

// Row 語料矩陣的一列：每列都帶著自己的 RecipeId，
// 排序或過濾後也不會與食譜表失去對應。
type Row struct {
	RecipeID string
	Name     string
	Vector   SparseVector
}

// posting 倒排索引項目：某詞彙欄位出現在哪一列、權重多少
type posting struct {
	row    int
	weight float64
}

// Hit 單筆檢索命中
type Hit struct {
	RecipeID string
	Name     string
	Score    float64
}

// Index 語料索引：已 fit 的向量器、L2 正規化的語料矩陣與倒排索引。
// 建立後不可變，查詢為唯讀操作，可跨請求並行。
type Index struct {
	vectorizer *Vectorizer
	rows       []Row
	postings   map[int][]posting
}

// Build 對語料建立索引。矩陣列數與食譜列數不一致屬致命錯誤：
// 位置對應一旦破壞，所有後續分數都沒有意義。
func Build(recipes []common.Recipe, minDocFreq, maxVocabSize int) (*Index, error) {
	docs := make([]string, len(recipes))
	for i, r := range recipes {
		docs[i] = common.JoinIngredients(r.Ingredients)
	}

	v := NewVectorizer(minDocFreq, maxVocabSize)
	if err := v.Fit(docs); err != nil {
		return nil, err
	}

	rows := make([]Row, 0, len(recipes))
	for i, r := range recipes {
		rows = append(rows, Row{
			RecipeID: r.ID,
			Name:     r.Name,
			Vector:   v.vectorize(docs[i]),
		})
	}

	if len(rows) != len(recipes) {
		return nil, &common.CorpusInconsistencyError{
			RecipeRows: len(recipes),
			MatrixRows: len(rows),
		}
	}

	ix := &Index{
		vectorizer: v,
		rows:       rows,
	}
	ix.buildPostings()

	common.LogInfo("語料索引建立完成",
		zap.Int("列數", len(rows)),
		zap.Int("詞彙數", len(v.Vocabulary)),
	)

	return ix, nil
}

// buildPostings 建立倒排索引：查詢時只需走訪與查詢詞彙重疊的列，
// 不必對整個 N×V 矩陣做稠密乘法
func (ix *Index) buildPostings() {
	ix.postings = make(map[int][]posting)
	for i, row := range ix.rows {
		for col, w := range row.Vector {
			ix.postings[col] = append(ix.postings[col], posting{row: i, weight: w})
		}
	}
}

// Transform 將查詢文字轉入索引的向量空間
func (ix *Index) Transform(text string) (SparseVector, error) {
	return ix.vectorizer.Transform(text)
}

// Search 回傳與查詢向量餘弦相似度最高的前 topN 列。
// 兩邊都已 L2 正規化，餘弦相似度即內積；零分列不納入，
// 結果可能短於 topN（這是合法結果，不補零也不視為錯誤）。
// 同分時原始列編號較小者在前，確保相同輸入可重現相同輸出。
func (ix *Index) Search(query SparseVector, topN int) []Hit {
	if len(query) == 0 || topN <= 0 {
		return nil
	}

	scores := make(map[int]float64)
	for col, qw := range query {
		for _, p := range ix.postings[col] {
			scores[p.row] += qw * p.weight
		}
	}

	candidates := make([]int, 0, len(scores))
	for row, score := range scores {
		if score > 0 {
			candidates = append(candidates, row)
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		si, sj := scores[candidates[i]], scores[candidates[j]]
		if si != sj {
			return si > sj
		}
		return candidates[i] < candidates[j]
	})

	if len(candidates) > topN {
		candidates = candidates[:topN]
	}

	hits := make([]Hit, 0, len(candidates))
	for _, row := range candidates {
		hits = append(hits, Hit{
			RecipeID: ix.rows[row].RecipeID,
			Name:     ix.rows[row].Name,
			Score:    scores[row],
		})
	}
	return hits
}

// Size 取得語料列數
func (ix *Index) Size() int {
	return len(ix.rows)
}

// VocabSize 取得詞彙表大小
func (ix *Index) VocabSize() int {
	return len(ix.vectorizer.Vocabulary)
}

// Rows 取得語料矩陣（測試與快照用；呼叫端不得修改）
func (ix *Index) Rows() []Row {
	return ix.rows
}
