package ingest

import (
	"reflect"
	"testing"
)

func TestDecodeList(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{
			name: "R 風格雙引號",
			raw:  `c("chicken", "soy sauce")`,
			want: []string{"chicken", "soy sauce"},
		},
		{
			name: "R 風格單引號",
			raw:  `c('beef', 'potato')`,
			want: []string{"beef", "potato"},
		},
		{
			name: "R 風格帶前後空白",
			raw:  `  c("salt")  `,
			want: []string{"salt"},
		},
		{
			name: "JSON 陣列",
			raw:  `["flour", "sugar"]`,
			want: []string{"flour", "sugar"},
		},
		{
			name: "Python repr 單引號陣列",
			raw:  `['soy sauce', 'garlic']`,
			want: []string{"soy sauce", "garlic"},
		},
		{
			name: "非清單編碼整串回退為單一元素",
			raw:  `chicken broth`,
			want: []string{"chicken broth"},
		},
		{
			name: "空字串",
			raw:  "",
			want: nil,
		},
		{
			name: "只有空白",
			raw:  "   ",
			want: nil,
		},
		{
			name: "空的 R 清單",
			raw:  `c()`,
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DecodeList(tt.raw)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("DecodeList(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestDecodeListEquivalentEncodings(t *testing.T) {
	// 同一份清單的三種編碼必須解出相同結果
	encodings := []string{
		`c("chicken", "soy sauce")`,
		`["chicken", "soy sauce"]`,
		`['chicken', 'soy sauce']`,
	}
	want := []string{"chicken", "soy sauce"}
	for _, raw := range encodings {
		if got := DecodeList(raw); !reflect.DeepEqual(got, want) {
			t.Errorf("DecodeList(%q) = %v, want %v", raw, got, want)
		}
	}
}

func TestNumberInstructions(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "R 風格步驟清單",
			raw:  `c("Boil water.", "Add chicken.")`,
			want: "1. Boil water.\n2. Add chicken.",
		},
		{
			name: "已攤平的純文字原樣保留",
			raw:  "1. Boil water.\n2. Add chicken.",
			want: "1. Boil water.\n2. Add chicken.",
		},
		{
			name: "單一長字串以句號切步驟",
			raw:  `["Mix. Bake. Serve."]`,
			want: "1. Mix\n2. Bake\n3. Serve",
		},
		{
			name: "空字串",
			raw:  "",
			want: "",
		},
		{
			name: "只有空白",
			raw:  "  ",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NumberInstructions(tt.raw); got != tt.want {
				t.Errorf("NumberInstructions(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}
