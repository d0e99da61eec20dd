package ingest

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"recipe-recommender/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Fetcher 資料集下載器：本地表不存在時，從設定的遠端網址取回
type Fetcher struct {
	client *resty.Client
}

// NewFetcher 創建資料集下載器
func NewFetcher(timeout time.Duration) *Fetcher {
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("User-Agent", "recipe-recommender")

	return &Fetcher{client: client}
}

// EnsureLocal 確保本地檔存在；缺檔且有遠端網址時先下載。
// 回傳是否實際執行了下載。
func (f *Fetcher) EnsureLocal(ctx context.Context, path, url string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}
	if url == "" {
		return false, fmt.Errorf("dataset table %s not found and no download url configured", path)
	}

	common.LogInfo("開始下載資料表",
		zap.String("路徑", path),
		zap.String("網址", url),
	)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return false, fmt.Errorf("failed to create dataset directory: %w", err)
	}

	// 寫入暫存檔，完成後再改名，避免留下半截檔案
	tmp := path + ".tmp"
	resp, err := f.client.R().
		SetContext(ctx).
		SetOutput(tmp).
		Get(url)
	if err != nil {
		return false, fmt.Errorf("failed to download dataset table: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		_ = os.Remove(tmp)
		return false, fmt.Errorf("dataset download returned status %d", resp.StatusCode())
	}
	if err := os.Rename(tmp, path); err != nil {
		return false, fmt.Errorf("failed to finalize dataset table: %w", err)
	}

	common.LogInfo("資料表下載完成",
		zap.String("路徑", path),
	)

	return true, nil
}
