package ingest

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// 接受的清單編碼（§ 外部介面）：
//   - R 風格呼叫：c("a","b") 或 c('a','b')
//   - JSON 風格陣列：["a","b"]
//   - Python repr 風格陣列：['a', 'b']（JSON 解析失敗時改用引號擷取）
//   - 其他任何字串：整串視為單一元素（MalformedEncoding 的具名回退，不報錯）
var (
	rListPattern  = regexp.MustCompile(`(?s)^\s*c\((.*)\)\s*$`)
	quotedPattern = regexp.MustCompile(`"([^"]*)"|'([^']*)'`)
)

// DecodeList 將清單編碼字串解碼為字串切片
func DecodeList(raw string) []string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}

	// R 風格：c("a","b") / c('a','b')
	if m := rListPattern.FindStringSubmatch(s); m != nil {
		return extractQuoted(m[1])
	}

	// 括號清單：先試 JSON，失敗再以引號擷取（涵蓋單引號的 Python repr）
	if strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
		var arr []any
		if err := json.Unmarshal([]byte(s), &arr); err == nil {
			items := make([]string, 0, len(arr))
			for _, v := range arr {
				items = append(items, fmt.Sprint(v))
			}
			return items
		}
		if items := extractQuoted(s[1 : len(s)-1]); len(items) > 0 {
			return items
		}
	}

	// 回退：整串視為單一元素
	return []string{raw}
}

// extractQuoted 擷取內容中所有以單引號或雙引號包住的子字串
func extractQuoted(content string) []string {
	matches := quotedPattern.FindAllStringSubmatch(content, -1)
	items := make([]string, 0, len(matches))
	for _, m := range matches {
		if m[1] != "" {
			items = append(items, m[1])
		} else if m[2] != "" {
			items = append(items, m[2])
		}
	}
	return items
}

// looksEncoded 檢查原始值是否為清單編碼（而非已攤平的純文字）
func looksEncoded(raw string) bool {
	s := strings.TrimSpace(raw)
	return rListPattern.MatchString(s) || (strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]"))
}

// NumberInstructions 將作法欄位正規化為編號步驟："1. ...\n2. ..."
// 已攤平的純文字字串原樣保留；清單編碼值先解碼再編號。
func NumberInstructions(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	if !looksEncoded(trimmed) {
		return trimmed
	}

	steps := DecodeList(trimmed)

	// 解碼結果若仍是單一長字串，改以換行或句號切步驟
	if len(steps) == 1 && (strings.Contains(steps[0], "\n") || strings.Contains(steps[0], ".")) {
		blob := steps[0]
		chunks := splitNonEmpty(blob, "\n")
		if len(chunks) < 2 {
			chunks = splitNonEmpty(blob, ".")
		}
		steps = chunks
	}

	var sb strings.Builder
	n := 0
	for _, step := range steps {
		step = strings.TrimSpace(step)
		if step == "" {
			continue
		}
		n++
		if n > 1 {
			sb.WriteString("\n")
		}
		sb.WriteString(fmt.Sprintf("%d. %s", n, step))
	}
	return sb.String()
}

// splitNonEmpty 以分隔符切割並去除空白片段
func splitNonEmpty(s, sep string) []string {
	parts := strings.Split(s, sep)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
