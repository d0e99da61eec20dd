package index

import (
	"crypto/sha256"
	"encoding/gob"
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"recipe-recommender/internal/pkg/common"

	"go.uber.org/zap"
)

// Snapshot 已建索引的快照值物件：帶著語料內容雜湊，
// 重用前必須核對來源語料版本，語料或正規化規則一變即失效。
type Snapshot struct {
	CorpusHash   string
	MinDocFreq   int
	MaxVocabSize int
	Vocabulary   map[string]int
	IDF          []float64
	Rows         []Row
}

// CorpusHash 計算語料內容雜湊：任一筆食譜的編號、名稱或食材變動都會改變雜湊
func CorpusHash(recipes []common.Recipe) string {
	h := sha256.New()
	for _, r := range recipes {
		h.Write([]byte(r.ID))
		h.Write([]byte{0})
		h.Write([]byte(r.Name))
		h.Write([]byte{0})
		h.Write([]byte(strings.Join(r.Ingredients, "\x00")))
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Snapshot 匯出索引快照
func (ix *Index) Snapshot(corpusHash string) *Snapshot {
	return &Snapshot{
		CorpusHash:   corpusHash,
		MinDocFreq:   ix.vectorizer.MinDocFreq,
		MaxVocabSize: ix.vectorizer.MaxVocabSize,
		Vocabulary:   ix.vectorizer.Vocabulary,
		IDF:          ix.vectorizer.IDF,
		Rows:         ix.rows,
	}
}

// FromSnapshot 從快照還原索引；快照的語料雜湊與現行語料不符時拒絕還原，
// 呼叫端應改走重建路徑
func FromSnapshot(snap *Snapshot, corpusHash string) (*Index, error) {
	if snap.CorpusHash != corpusHash {
		return nil, fmt.Errorf("snapshot corpus hash mismatch: snapshot %.8s, corpus %.8s", snap.CorpusHash, corpusHash)
	}

	v := NewVectorizer(snap.MinDocFreq, snap.MaxVocabSize)
	v.Vocabulary = snap.Vocabulary
	v.IDF = snap.IDF
	v.fitted = true

	ix := &Index{
		vectorizer: v,
		rows:       snap.Rows,
	}
	ix.buildPostings()

	common.LogInfo("索引自快照還原完成",
		zap.Int("列數", len(snap.Rows)),
		zap.Int("詞彙數", len(snap.Vocabulary)),
	)

	return ix, nil
}

// SaveSnapshot 將快照寫入磁碟
func SaveSnapshot(path string, snap *Snapshot) error {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("failed to create snapshot file: %w", err)
	}

	if err := gob.NewEncoder(f).Encode(snap); err != nil {
		f.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to close snapshot file: %w", err)
	}
	return os.Rename(tmp, path)
}

// LoadSnapshot 從磁碟讀取快照
func LoadSnapshot(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot file: %w", err)
	}
	defer f.Close()

	var snap Snapshot
	if err := gob.NewDecoder(f).Decode(&snap); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return &snap, nil
}
