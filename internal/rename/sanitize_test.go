// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rename

import (
	"strings"
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeTitle(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{
			name:  "spaces and punctuation become underscores",
			title: "Attention Is All You Need!",
			want:  "Attention_Is_All_You_Need",
		},
		{
			name:  "colon-separated title",
			title: "BERT: Pre-training of Deep Bidirectional Transformers",
			want:  "BERT_Pre-training_of_Deep_Bidirectional_Transformers",
		},
		{
			name:  "CJK ideographs are kept",
			title: "基于深度学习的图像识别（综述）",
			want:  "基于深度学习的图像识别_综述",
		},
		{
			name:  "full-width characters fold via NFKC",
			title: "ＡＢＣ１２３",
			want:  "ABC123",
		},
		{
			name:  "accented Latin letters are kept",
			title: "Étude de cas: résumé",
			want:  "Étude_de_cas_résumé",
		},
		{
			name:  "kana with prolonged sound mark is kept",
			title: "ディープラーニング入門",
			want:  "ディープラーニング入門",
		},
		{
			name:  "Cyrillic letters are kept",
			title: "Обзор методов",
			want:  "Обзор_методов",
		},
		{
			name:  "hangul letters are kept",
			title: "딥러닝 개요",
			want:  "딥러닝_개요",
		},
		{
			name:  "consecutive separators collapse",
			title: "a  --  b // c",
			want:  "a_--_b_c",
		},
		{
			name:  "leading and trailing junk stripped",
			title: "  ***Model Compression***  ",
			want:  "Model_Compression",
		},
		{
			name:  "hyphen survives",
			title: "state-of-the-art",
			want:  "state-of-the-art",
		},
		{
			name:  "only junk yields empty",
			title: "***///!!!",
			want:  "",
		},
		{
			name:  "empty input",
			title: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeTitle(tt.title))
		})
	}
}

func TestSanitizeTitle_CapsAt200Runes(t *testing.T) {
	long := strings.Repeat("深", 300)
	got := SanitizeTitle(long)
	assert.Equal(t, 200, len([]rune(got)))

	// Truncation at an underscore boundary must not leave a trailing one.
	boundary := strings.Repeat("ab", 99) + "a. tail" // rune 200 is the underscore
	got = SanitizeTitle(boundary)
	assert.False(t, strings.HasSuffix(got, "_"))
	assert.LessOrEqual(t, len([]rune(got)), 200)
}

// Sanitization must be idempotent: a sanitized string passes through unchanged.
func TestSanitizeTitle_Idempotent(t *testing.T) {
	inputs := []string{
		"Attention Is All You Need!",
		"基于深度学习的图像识别（综述）",
		"ＡＢＣ１２３ and some ascii",
		"Étude de cas: Обзор методов",
		"  ***Model Compression***  ",
		strings.Repeat("title words ", 40),
		strings.Repeat("深度", 200),
	}
	for _, in := range inputs {
		once := SanitizeTitle(in)
		assert.Equal(t, once, SanitizeTitle(once), "input %q", in)
	}
}

// Sanitized output may only contain Unicode letters, digits, underscores,
// and hyphens.
func TestSanitizeTitle_Alphabet(t *testing.T) {
	inputs := []string{
		"Title / with : every ? kind * of | junk <>",
		"混合 mixed 标题 with spaces",
		"Étude: ディープラーニング и методы",
		"emoji 🙂 and tabs\tand newlines\n",
	}
	for _, in := range inputs {
		for _, r := range SanitizeTitle(in) {
			ok := r == '_' || r == '-' ||
				unicode.IsLetter(r) || unicode.IsNumber(r)
			assert.True(t, ok, "disallowed rune %q in output for %q", r, in)
		}
	}
}
