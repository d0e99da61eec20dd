package recommend

import (
	"strings"
	"time"

	"recipe-recommender/internal/pkg/common"
)

// 選項標籤使用固定字母順序，最多 26 個；排序結果超過 26 筆時，
// 其餘筆數仍留在結果中，只是無法以字母選取
const choiceAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Session 選擇會話：兩個狀態的狀態機。
// Idle（沒有當前結果）與 Presenting（有一份排序結果與字母標籤綁定）。
// 新的推薦查詢完成時進入 Presenting（結果為空也算有效的 Presenting）；
// 解析一次選擇後仍停留在 Presenting，使用者可對同一份清單重新選擇。
type Session struct {
	ID         string              `json:"id"`
	Presenting bool                `json:"presenting"`
	Result     common.RankedResult `json:"result"`
	CreatedAt  time.Time           `json:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at"`
}

// NewSession 創建新的選擇會話（Idle 狀態）
func NewSession() *Session {
	now := time.Now()
	return &Session{
		ID:        common.GenerateUUID(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Present 綁定一份新的排序結果並進入 Presenting 狀態，取代先前的綁定
func (s *Session) Present(result *common.RankedResult) {
	if result == nil {
		result = &common.RankedResult{}
	}
	s.Result = *result
	s.Presenting = true
	s.UpdatedAt = time.Now()
}

// Label 取得指定名次的選項字母；超出字母範圍時回傳空字串
func (s *Session) Label(rank int) string {
	if rank < 0 || rank >= len(choiceAlphabet) {
		return ""
	}
	return string(choiceAlphabet[rank])
}

// LabeledCount 取得可用字母選取的筆數
func (s *Session) LabeledCount() int {
	n := len(s.Result.Items)
	if n > len(choiceAlphabet) {
		n = len(choiceAlphabet)
	}
	return n
}

// Resolve 將選項字母解析回食譜編號。字母不分大小寫並忽略前後空白；
// Idle 或空結果時回報 ErrNothingToChoose，字母不在綁定範圍內時回報
// ErrInvalidChoice。兩者都是可恢復條件，由呼叫端決定是否重新提示。
func (s *Session) Resolve(label string) (string, error) {
	if !s.Presenting || len(s.Result.Items) == 0 {
		return "", common.ErrNothingToChoose
	}

	label = strings.ToUpper(strings.TrimSpace(label))
	if len(label) != 1 {
		return "", common.ErrInvalidChoice
	}

	rank := strings.IndexByte(choiceAlphabet, label[0])
	if rank < 0 || rank >= s.LabeledCount() {
		return "", common.ErrInvalidChoice
	}

	return s.Result.Items[rank].RecipeID, nil
}
