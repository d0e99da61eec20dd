package common

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorResponse 定義 API 錯誤響應結構
type ErrorResponse struct {
	Code    string `json:"code"`              // 錯誤代碼
	Message string `json:"message"`           // 錯誤信息
	Details string `json:"details,omitempty"` // 詳細信息（僅在開發模式顯示）
}

// CustomError 定義自定義錯誤類型
type CustomError struct {
	Code    string // 錯誤代碼
	Message string // 錯誤信息
	Err     error  // 原始錯誤
	Status  int    // HTTP 狀態碼
}

func (e *CustomError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

// NewError 創建新的自定義錯誤
func NewError(code string, message string, status int, err error) *CustomError {
	return &CustomError{
		Code:    code,
		Message: message,
		Status:  status,
		Err:     err,
	}
}

// 預定義錯誤代碼
const (
	// 客戶端錯誤 (4xx)
	ErrCodeInvalidRequest  = "INVALID_REQUEST"   // 400
	ErrCodeInvalidChoice   = "INVALID_CHOICE"    // 400
	ErrCodeNotFound        = "NOT_FOUND"         // 404
	ErrCodeTooManyRequests = "TOO_MANY_REQUESTS" // 429

	// 服務器錯誤 (5xx)
	ErrCodeInternalError = "INTERNAL_ERROR" // 500
)

// 預定義錯誤
var (
	// 客戶端錯誤
	ErrInvalidRequest  = NewError(ErrCodeInvalidRequest, "無效的請求", http.StatusBadRequest, nil)
	ErrNotFound        = NewError(ErrCodeNotFound, "資源不存在", http.StatusNotFound, nil)
	ErrTooManyRequests = NewError(ErrCodeTooManyRequests, "請求過於頻繁", http.StatusTooManyRequests, nil)

	// 服務器錯誤
	ErrInternalError = NewError(ErrCodeInternalError, "服務器內部錯誤", http.StatusInternalServerError, nil)

	// 業務錯誤：查詢與選擇階段可恢復的條件
	ErrInvalidChoice       = NewError(ErrCodeInvalidChoice, "選項字母不在目前的推薦清單中", http.StatusBadRequest, nil)
	ErrNothingToChoose     = NewError("NOTHING_TO_CHOOSE", "目前沒有可供選擇的推薦結果", http.StatusBadRequest, nil)
	ErrMissingLookupRecord = NewError("MISSING_LOOKUP_RECORD", "找不到對應的食譜詳細資料", http.StatusNotFound, nil)
	ErrSessionNotFound     = NewError("SESSION_NOT_FOUND", "找不到對應的選擇會話", http.StatusNotFound, nil)
)

// ErrEmptyQuery 查詢正規化後沒有任何已知詞彙；呼叫端應視為「零筆結果」而非失敗
var ErrEmptyQuery = errors.New("empty query: no known tokens after normalization")

// CorpusInconsistencyError 語料表與向量矩陣列數不一致（建索引階段的致命錯誤）
type CorpusInconsistencyError struct {
	RecipeRows int
	MatrixRows int
}

func (e *CorpusInconsistencyError) Error() string {
	return fmt.Sprintf("corpus inconsistency: %d recipe rows but %d matrix rows", e.RecipeRows, e.MatrixRows)
}

// IsCorpusInconsistency 檢查是否為語料不一致錯誤
func IsCorpusInconsistency(err error) bool {
	var ce *CorpusInconsistencyError
	return errors.As(err, &ce)
}
