package ingest

import "strings"

// Normalize 將單一食材字串正規化：去除前後空白並轉為小寫。
// 不做詞幹化或拼字修正，食材內部結構原樣保留。
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NormalizeAll 正規化整份食材清單；空白輸入不產生任何詞彙
func NormalizeAll(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		norm := Normalize(item)
		if norm == "" {
			continue
		}
		out = append(out, norm)
	}
	return out
}
