package index

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"recipe-recommender/internal/pkg/common"

	"go.uber.org/zap"
)

// SparseVector 稀疏文件向量：詞彙欄位編號 → 非負權重。
// 所有向量共用同一個詞彙空間，內積才有意義。
type SparseVector map[int]float64

// Norm 計算向量的 L2 範數
func (v SparseVector) Norm() float64 {
	var sum float64
	for _, w := range v {
		sum += w * w
	}
	return math.Sqrt(sum)
}

// Dot 計算兩個稀疏向量的內積
func (v SparseVector) Dot(other SparseVector) float64 {
	// 遍歷較小的一方
	if len(other) < len(v) {
		v, other = other, v
	}
	var sum float64
	for col, w := range v {
		sum += w * other[col]
	}
	return sum
}

// Vectorizer 詞彙加權向量器：對語料建立詞彙表與 IDF 權重（fit），
// 再將任意文字轉入同一向量空間（transform）。fit 每份語料只執行一次，
// 重新 fit 會取代所有既有狀態並使先前的矩陣失效。
type Vectorizer struct {
	MinDocFreq   int            // 詞彙保留的最低文件頻率
	MaxVocabSize int            // 詞彙表大小上限，超出時保留文件頻率最高者
	Vocabulary   map[string]int // 詞彙 → 欄位編號
	IDF          []float64      // 每個欄位的逆文件頻率權重
	fitted       bool
}

// NewVectorizer 創建詞彙加權向量器
func NewVectorizer(minDocFreq, maxVocabSize int) *Vectorizer {
	return &Vectorizer{
		MinDocFreq:   minDocFreq,
		MaxVocabSize: maxVocabSize,
	}
}

// tokenize 僅以空白切詞：多字食材（如 "soy sauce" 以底線或原樣保留者）不再細切
func tokenize(text string) []string {
	return strings.Fields(text)
}

// Fit 對語料建立詞彙表與 IDF 權重
func (v *Vectorizer) Fit(docs []string) error {
	if len(docs) == 0 {
		return fmt.Errorf("cannot fit vectorizer on empty corpus")
	}

	// 統計文件頻率
	df := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]bool)
		for _, tok := range tokenize(doc) {
			if !seen[tok] {
				df[tok]++
				seen[tok] = true
			}
		}
	}

	// 保留文件頻率達門檻的詞彙
	terms := make([]string, 0, len(df))
	for term, n := range df {
		if n >= v.MinDocFreq {
			terms = append(terms, term)
		}
	}

	// 超出上限時保留文件頻率最高者；同頻率以字典序決定，確保可重現
	if len(terms) > v.MaxVocabSize {
		sort.Slice(terms, func(i, j int) bool {
			if df[terms[i]] != df[terms[j]] {
				return df[terms[i]] > df[terms[j]]
			}
			return terms[i] < terms[j]
		})
		terms = terms[:v.MaxVocabSize]
	}

	// 欄位編號按字典序指派，與語料順序無關
	sort.Strings(terms)

	v.Vocabulary = make(map[string]int, len(terms))
	v.IDF = make([]float64, len(terms))
	n := float64(len(docs))
	for col, term := range terms {
		v.Vocabulary[term] = col
		// 平滑 IDF：ln((1+N)/(1+df)) + 1，詞彙出現在所有文件時也不會除零
		v.IDF[col] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}
	v.fitted = true

	common.LogInfo("詞彙表建立完成",
		zap.Int("文件數", len(docs)),
		zap.Int("詞彙數", len(terms)),
		zap.Int("最低文件頻率", v.MinDocFreq),
	)

	return nil
}

// Transform 將任意文字轉入已建立的向量空間。未知詞彙貢獻零權重，
// 不會擴充詞彙表；正規化後沒有任何已知詞彙時回報 ErrEmptyQuery。
func (v *Vectorizer) Transform(text string) (SparseVector, error) {
	if !v.fitted {
		return nil, fmt.Errorf("vectorizer is not fitted")
	}
	vec := v.vectorize(text)
	if len(vec) == 0 {
		return nil, common.ErrEmptyQuery
	}
	return vec, nil
}

// vectorize 計算 TF×IDF 並做 L2 正規化；語料列允許為全零（空向量）
func (v *Vectorizer) vectorize(text string) SparseVector {
	counts := make(map[int]float64)
	for _, tok := range tokenize(text) {
		if col, ok := v.Vocabulary[tok]; ok {
			counts[col]++
		}
	}
	if len(counts) == 0 {
		return SparseVector{}
	}

	vec := make(SparseVector, len(counts))
	for col, tf := range counts {
		vec[col] = tf * v.IDF[col]
	}

	// L2 正規化後，餘弦相似度就是單純的內積
	norm := vec.Norm()
	for col := range vec {
		vec[col] /= norm
	}
	return vec
}
