package ingest

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeTempCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write temp csv: %v", err)
	}
	return path
}

func TestLoadCorpus(t *testing.T) {
	path := writeTempCSV(t, "corpus.csv",
		"RecipeId,Name,CleanedIngredients,Calories\n"+
			`1,Chicken Soup,"c(""Chicken"", ""Broth"")",250.5`+"\n"+
			`2,Beef Stew,"['beef', 'potato']",`+"\n"+
			`,Skipped,"c(""x"")",`+"\n")

	recipes, err := LoadCorpus(path, 0)
	if err != nil {
		t.Fatalf("LoadCorpus failed: %v", err)
	}

	// 空白編號的列被略過
	if len(recipes) != 2 {
		t.Fatalf("got %d recipes, want 2", len(recipes))
	}

	first := recipes[0]
	if first.ID != "1" || first.Name != "Chicken Soup" {
		t.Errorf("unexpected first recipe: %+v", first)
	}
	// 食材已解碼並正規化
	if want := []string{"chicken", "broth"}; !reflect.DeepEqual(first.Ingredients, want) {
		t.Errorf("ingredients = %v, want %v", first.Ingredients, want)
	}
	if first.Nutrition.Calories == nil || *first.Nutrition.Calories != 250.5 {
		t.Errorf("calories = %v, want 250.5", first.Nutrition.Calories)
	}

	// 缺值欄位以 nil 表示
	if recipes[1].Nutrition.Calories != nil {
		t.Errorf("missing calories should be nil, got %v", *recipes[1].Nutrition.Calories)
	}
}

func TestLoadCorpusMaxRows(t *testing.T) {
	path := writeTempCSV(t, "corpus.csv",
		"RecipeId,Name,CleanedIngredients\n"+
			`1,A,"c(""x"")"`+"\n"+
			`2,B,"c(""y"")"`+"\n"+
			`3,C,"c(""z"")"`+"\n")

	recipes, err := LoadCorpus(path, 2)
	if err != nil {
		t.Fatalf("LoadCorpus failed: %v", err)
	}
	if len(recipes) != 2 {
		t.Errorf("got %d recipes, want 2", len(recipes))
	}
}

func TestLoadCorpusMissingColumn(t *testing.T) {
	path := writeTempCSV(t, "corpus.csv",
		"RecipeId,Name\n1,Chicken Soup\n")

	if _, err := LoadCorpus(path, 0); err == nil {
		t.Error("expected error for missing CleanedIngredients column")
	}
}

func TestLoadLookup(t *testing.T) {
	path := writeTempCSV(t, "lookup.csv",
		"RecipeId,Name,Instructions,Keywords,RecipeUrl,RecipeServings,Calories\n"+
			`1,Chicken Soup,"c(""Boil water."", ""Add chicken."")","c(""soup"", ""easy"")",http://example.com/1,4,250`+"\n")

	records, err := LoadLookup(path, 0)
	if err != nil {
		t.Fatalf("LoadLookup failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}

	rec := records[0]
	if rec.ID != "1" || rec.Name != "Chicken Soup" {
		t.Errorf("unexpected record: %+v", rec)
	}
	if want := "1. Boil water.\n2. Add chicken."; rec.Instructions != want {
		t.Errorf("instructions = %q, want %q", rec.Instructions, want)
	}
	if want := []string{"soup", "easy"}; !reflect.DeepEqual(rec.Keywords, want) {
		t.Errorf("keywords = %v, want %v", rec.Keywords, want)
	}
	if rec.URL != "http://example.com/1" {
		t.Errorf("url = %q", rec.URL)
	}
	if rec.Servings == nil || *rec.Servings != 4 {
		t.Errorf("servings = %v, want 4", rec.Servings)
	}
	if rec.Nutrition.Calories == nil || *rec.Nutrition.Calories != 250 {
		t.Errorf("calories = %v, want 250", rec.Nutrition.Calories)
	}
}

func TestLoadLookupURLAlias(t *testing.T) {
	// 欄位別名 URL 也要能接上
	path := writeTempCSV(t, "lookup.csv",
		"RecipeId,Name,URL\n1,Chicken Soup,http://example.com/alias\n")

	records, err := LoadLookup(path, 0)
	if err != nil {
		t.Fatalf("LoadLookup failed: %v", err)
	}
	if records[0].URL != "http://example.com/alias" {
		t.Errorf("url = %q, want alias value", records[0].URL)
	}
}
