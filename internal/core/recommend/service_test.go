package recommend

import (
	"context"
	"reflect"
	"testing"

	"recipe-recommender/internal/core/index"
	"recipe-recommender/internal/pkg/common"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	recipes := []common.Recipe{
		{ID: "1", Name: "Chicken Soup", Ingredients: []string{"chicken", "broth", "carrot"}},
		{ID: "2", Name: "Beef Stew", Ingredients: []string{"beef", "broth", "potato"}},
		{ID: "3", Name: "Fruit Salad", Ingredients: []string{"apple", "banana", "orange"}},
	}
	ix, err := index.Build(recipes, 1, 1000)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return NewService(ix, 4)
}

func TestRecommend(t *testing.T) {
	svc := newTestService(t)

	// 輸入帶大小寫與空白，正規化後才查詢
	result, err := svc.Recommend(context.Background(), []string{" Chicken ", "BROTH"}, 0)
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}
	if len(result.Items) != 2 {
		t.Fatalf("got %d items, want 2: %+v", len(result.Items), result.Items)
	}
	if result.Items[0].RecipeID != "1" {
		t.Errorf("top item = %s, want recipe 1", result.Items[0].RecipeID)
	}
	if result.Items[0].Score <= result.Items[1].Score {
		t.Errorf("scores not descending: %+v", result.Items)
	}
}

func TestRecommendTopNOverride(t *testing.T) {
	svc := newTestService(t)
	result, err := svc.Recommend(context.Background(), []string{"broth"}, 1)
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}
	if len(result.Items) != 1 {
		t.Errorf("got %d items, want 1", len(result.Items))
	}
}

func TestRecommendEmptyQuery(t *testing.T) {
	svc := newTestService(t)

	// 空輸入與全未知食材都是正常結果，不是錯誤
	for _, ingredients := range [][]string{nil, {}, {"  ", ""}, {"durian", "rambutan"}} {
		result, err := svc.Recommend(context.Background(), ingredients, 0)
		if err != nil {
			t.Fatalf("Recommend(%v) failed: %v", ingredients, err)
		}
		if !result.Empty() {
			t.Errorf("Recommend(%v) = %+v, want empty result", ingredients, result.Items)
		}
	}
}

func TestRecommendIdempotent(t *testing.T) {
	svc := newTestService(t)
	ingredients := []string{"chicken", "broth", "potato"}

	first, err := svc.Recommend(context.Background(), ingredients, 4)
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}
	second, err := svc.Recommend(context.Background(), ingredients, 4)
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("recommend not idempotent:\n%+v\n%+v", first, second)
	}
}
