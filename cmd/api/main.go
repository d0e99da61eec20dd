package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"recipe-recommender/internal/api"
	"recipe-recommender/internal/core/index"
	"recipe-recommender/internal/core/ingest"
	"recipe-recommender/internal/core/recommend"
	"recipe-recommender/internal/core/store"
	"recipe-recommender/internal/infrastructure/config"
	"recipe-recommender/internal/pkg/common"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// 載入 .env
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found")
	}

	// 載入設定
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 初始化 logger（需在載入 config 後）
	if err := common.InitLogger(cfg.LogLevel); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer common.Sync()

	// 確保兩張資料表存在，缺檔時從遠端下載
	fetcher := ingest.NewFetcher(cfg.Dataset.FetchTimeout)
	for _, table := range []struct{ path, url string }{
		{cfg.Dataset.CorpusPath, cfg.Dataset.CorpusURL},
		{cfg.Dataset.LookupPath, cfg.Dataset.LookupURL},
	} {
		if _, err := fetcher.EnsureLocal(context.Background(), table.path, table.url); err != nil {
			common.LogFatal("Failed to prepare dataset table",
				zap.String("path", table.path),
				zap.Error(err),
			)
		}
	}

	// 載入評分語料
	recipes, err := ingest.LoadCorpus(cfg.Dataset.CorpusPath, cfg.Dataset.MaxRows)
	if err != nil {
		common.LogFatal("Failed to load corpus table", zap.Error(err))
	}

	// 建立（或自快照還原）語料索引
	corpusIndex, err := buildIndex(cfg, recipes)
	if err != nil {
		// 語料不一致屬致命錯誤：位置對應破壞時所有分數都沒有意義
		if common.IsCorpusInconsistency(err) {
			common.LogFatal("語料表與向量矩陣列數不一致", zap.Error(err))
		}
		common.LogFatal("Failed to build corpus index", zap.Error(err))
	}

	// 載入詳細查詢表
	lookupRecords, err := ingest.LoadLookup(cfg.Dataset.LookupPath, cfg.Dataset.MaxRows)
	if err != nil {
		common.LogFatal("Failed to load lookup table", zap.Error(err))
	}
	recipeStore := store.NewStore()
	recipeStore.Load(lookupRecords)

	// 初始化推薦服務與會話儲存
	recommendSvc := recommend.NewService(corpusIndex, cfg.Recommend.TopN)
	sessions, err := recommend.NewSessionStore(cfg)
	if err != nil {
		common.LogFatal("Failed to initialize session store", zap.Error(err))
	}
	defer sessions.Close()

	// 設置路由
	router, err := api.SetupRouter(cfg, recommendSvc, sessions, recipeStore)
	if err != nil {
		common.LogError("Failed to setup router", zap.Error(err))
		os.Exit(1)
	}

	// 設置 HTTP 服務器
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// 啟動服務器
	go func() {
		common.LogInfo("啟動應用",
			zap.String("version", cfg.App.Version),
			zap.String("env", cfg.App.Env),
			zap.Bool("debug", cfg.App.Debug),
			zap.Int("corpus_size", corpusIndex.Size()),
			zap.Int("vocab_size", corpusIndex.VocabSize()),
		)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			common.LogError("Failed to start server",
				zap.Error(err),
			)
			os.Exit(1)
		}
	}()

	// 等待中斷信號
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	common.LogInfo("Shutting down server...")

	// 設置關閉超時
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		common.LogError("Server forced to shutdown",
			zap.Error(err),
		)
		os.Exit(1)
	}

	common.LogInfo("Server exited")
}

// buildIndex 建立語料索引；設定快照路徑時優先嘗試還原，
// 快照缺失、損毀或語料版本不符都改走重建路徑，重建後回寫快照
func buildIndex(cfg *config.Config, recipes []common.Recipe) (*index.Index, error) {
	corpusHash := index.CorpusHash(recipes)

	if cfg.Dataset.SnapshotPath != "" {
		if snap, err := index.LoadSnapshot(cfg.Dataset.SnapshotPath); err == nil {
			if ix, err := index.FromSnapshot(snap, corpusHash); err == nil {
				return ix, nil
			} else {
				common.LogWarn("快照與現行語料不符，改為重建索引",
					zap.Error(err),
				)
			}
		}
	}

	start := time.Now()
	ix, err := index.Build(recipes, cfg.Index.MinDocFreq, cfg.Index.MaxVocabSize)
	if err != nil {
		return nil, err
	}
	common.LogInfo("索引建立耗時",
		zap.Duration("耗時", time.Since(start)),
	)

	if cfg.Dataset.SnapshotPath != "" {
		if err := index.SaveSnapshot(cfg.Dataset.SnapshotPath, ix.Snapshot(corpusHash)); err != nil {
			common.LogWarn("快照寫入失敗",
				zap.Error(err),
			)
		}
	}

	return ix, nil
}
