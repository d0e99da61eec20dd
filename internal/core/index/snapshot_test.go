package index

import (
	"path/filepath"
	"reflect"
	"testing"

	"recipe-recommender/internal/pkg/common"
)

func TestSnapshotRoundTrip(t *testing.T) {
	recipes := testRecipes()
	ix, err := Build(recipes, 1, 1000)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	hash := CorpusHash(recipes)

	path := filepath.Join(t.TempDir(), "index.snapshot")
	if err := SaveSnapshot(path, ix.Snapshot(hash)); err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}

	snap, err := LoadSnapshot(path)
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}
	restored, err := FromSnapshot(snap, hash)
	if err != nil {
		t.Fatalf("FromSnapshot failed: %v", err)
	}

	if restored.Size() != ix.Size() || restored.VocabSize() != ix.VocabSize() {
		t.Errorf("restored index shape mismatch: %d/%d vs %d/%d",
			restored.Size(), restored.VocabSize(), ix.Size(), ix.VocabSize())
	}

	// 還原後的索引必須給出相同的查詢結果
	query, err := ix.Transform("chicken broth")
	if err != nil {
		t.Fatalf("Transform failed: %v", err)
	}
	restoredQuery, err := restored.Transform("chicken broth")
	if err != nil {
		t.Fatalf("restored Transform failed: %v", err)
	}
	if !reflect.DeepEqual(ix.Search(query, 4), restored.Search(restoredQuery, 4)) {
		t.Error("restored index returned different hits")
	}
}

func TestFromSnapshotStaleHash(t *testing.T) {
	recipes := testRecipes()
	ix, err := Build(recipes, 1, 1000)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	snap := ix.Snapshot(CorpusHash(recipes))

	// 語料變動後雜湊不符，快照必須被拒絕
	changed := append([]common.Recipe{}, recipes...)
	changed[0].Ingredients = []string{"duck", "broth"}
	if _, err := FromSnapshot(snap, CorpusHash(changed)); err == nil {
		t.Error("expected error for stale corpus hash")
	}
}

func TestCorpusHashSensitivity(t *testing.T) {
	base := testRecipes()
	baseHash := CorpusHash(base)

	variants := []func([]common.Recipe){
		func(r []common.Recipe) { r[0].ID = "99" },
		func(r []common.Recipe) { r[0].Name = "Renamed" },
		func(r []common.Recipe) { r[0].Ingredients = []string{"chicken", "broth"} },
	}
	for i, mutate := range variants {
		changed := make([]common.Recipe, len(base))
		copy(changed, base)
		mutate(changed)
		if CorpusHash(changed) == baseHash {
			t.Errorf("variant %d should change corpus hash", i)
		}
	}

	if CorpusHash(testRecipes()) != baseHash {
		t.Error("hash should be stable for identical corpus")
	}
}

func TestLoadSnapshotMissingFile(t *testing.T) {
	if _, err := LoadSnapshot(filepath.Join(t.TempDir(), "absent.snapshot")); err == nil {
		t.Error("expected error for missing snapshot file")
	}
}
