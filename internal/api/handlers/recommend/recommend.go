package recommend

import (
	"errors"
	"net/http"

	recommendService "recipe-recommender/internal/core/recommend"
	"recipe-recommender/internal/core/store"
	"recipe-recommender/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RecommendRequest 依食材推薦食譜的請求
type RecommendRequest struct {
	Ingredients []string `json:"ingredients"`          // 自由輸入的食材清單；空清單是合法查詢，得到空結果
	TopN        int      `json:"top_n,omitempty"`      // 留空時採用伺服器預設值
	SessionID   string   `json:"session_id,omitempty"` // 留空時開啟新會話
}

// Choice 單筆帶字母標籤的推薦結果
type Choice struct {
	Label    string  `json:"label"`
	RecipeID string  `json:"recipe_id"`
	Name     string  `json:"name"`
	Score    float64 `json:"score"`
	Display  string  `json:"display"` // 字母 + 名稱 + 編號 + 三位小數分數
}

// RecommendResponse 推薦結果響應
type RecommendResponse struct {
	SessionID string   `json:"session_id"`
	Choices   []Choice `json:"choices"`
	Total     int      `json:"total"` // 排序結果總筆數（可能多於可標籤筆數）
}

// SelectRequest 解析選項字母的請求
type SelectRequest struct {
	SessionID string `json:"session_id" binding:"required"`
	Choice    string `json:"choice" binding:"required"` // 單一字母，不分大小寫
}

// SelectResponse 選擇結果響應
type SelectResponse struct {
	RecipeID string              `json:"recipe_id"`
	Detail   *store.LookupRecord `json:"detail,omitempty"`
}

// Handler 推薦處理程序
type Handler struct {
	service  *recommendService.Service
	sessions recommendService.SessionStore
	store    *store.Store
}

// NewHandler 創建新的推薦處理程序
func NewHandler(service *recommendService.Service, sessions recommendService.SessionStore, recipeStore *store.Store) *Handler {
	return &Handler{
		service:  service,
		sessions: sessions,
		store:    recipeStore,
	}
}

// HandleRecommend 依食材推薦食譜，並將結果綁定到選擇會話
func (h *Handler) HandleRecommend(c *gin.Context) {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = uuid.New().String()
		c.Header("X-Request-ID", requestID)
	}

	var req RecommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogError("請求格式無效",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format", "code": common.ErrCodeInvalidRequest})
		return
	}

	// 取出既有會話或開啟新會話
	session, err := h.resolveSession(c, req.SessionID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found", "code": common.ErrSessionNotFound.Code})
		return
	}

	result, err := h.service.Recommend(c.Request.Context(), req.Ingredients, req.TopN)
	if err != nil {
		common.LogError("推薦查詢失敗",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Recommendation failed", "code": common.ErrCodeInternalError})
		return
	}

	// 結果為空也進入 Presenting 狀態：此時任何選擇都會回報「沒有可選項目」
	session.Present(result)
	if err := h.sessions.Put(c.Request.Context(), session); err != nil {
		common.LogError("會話寫入失敗",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Session store failed", "code": common.ErrCodeInternalError})
		return
	}

	choices := make([]Choice, 0, session.LabeledCount())
	for rank := 0; rank < session.LabeledCount(); rank++ {
		item := result.Items[rank]
		label := session.Label(rank)
		choices = append(choices, Choice{
			Label:    label,
			RecipeID: item.RecipeID,
			Name:     item.Name,
			Score:    item.Score,
			Display:  common.FormatRankedItem(label, item),
		})
	}

	common.LogInfo("推薦查詢完成",
		zap.String("request_id", requestID),
		zap.String("session_id", session.ID),
		zap.Int("結果筆數", len(result.Items)),
	)

	c.JSON(http.StatusOK, RecommendResponse{
		SessionID: session.ID,
		Choices:   choices,
		Total:     len(result.Items),
	})
}

// HandleSelect 將選項字母解析回食譜並附上詳細資料
func (h *Handler) HandleSelect(c *gin.Context) {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = uuid.New().String()
		c.Header("X-Request-ID", requestID)
	}

	var req SelectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogError("請求格式無效",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format", "code": common.ErrCodeInvalidRequest})
		return
	}

	session, err := h.sessions.Get(c.Request.Context(), req.SessionID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found", "code": common.ErrSessionNotFound.Code})
		return
	}

	recipeID, err := session.Resolve(req.Choice)
	if err != nil {
		var ce *common.CustomError
		if errors.As(err, &ce) {
			c.JSON(ce.Status, gin.H{"error": ce.Message, "code": ce.Code})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid choice", "code": common.ErrCodeInvalidChoice})
		return
	}

	// 解析成功後會話維持 Presenting，使用者可對同一份清單再次選擇
	response := SelectResponse{RecipeID: recipeID}

	detail, err := h.store.Get(recipeID)
	if err != nil {
		// 推薦本身仍然有效，只是詳細資料缺漏
		common.LogWarn("找不到食譜詳細資料",
			zap.String("recipe_id", recipeID),
			zap.String("request_id", requestID),
		)
		c.JSON(http.StatusNotFound, gin.H{
			"error":     "Lookup record missing for recommended recipe",
			"code":      common.ErrMissingLookupRecord.Code,
			"recipe_id": recipeID,
		})
		return
	}
	response.Detail = detail

	c.JSON(http.StatusOK, response)
}

// HandleRecipeDetail 依食譜編號直接查詢詳細資料
func (h *Handler) HandleRecipeDetail(c *gin.Context) {
	id := c.Param("id")
	detail, err := h.store.Get(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Recipe not found",
			"code":  common.ErrMissingLookupRecord.Code,
		})
		return
	}
	c.JSON(http.StatusOK, detail)
}

// resolveSession 取出既有會話；session_id 留空時開啟新會話
func (h *Handler) resolveSession(c *gin.Context, sessionID string) (*recommendService.Session, error) {
	if sessionID == "" {
		return recommendService.NewSession(), nil
	}
	return h.sessions.Get(c.Request.Context(), sessionID)
}
