// Package i18n localizes Issue codes for display.
package i18n

import "strings"

// Translator retrieves localized messages for Issue codes.
// data provides optional values substituted into the message as {name}
// (for example "path").
type Translator interface {
	Message(code string, data map[string]string) string
}

var dictionaries = map[string]map[string]string{
	"en": {
		"invalid_type":   "invalid type",
		"required":       "required key {key} missing",
		"out_of_range":   "index out of range",
		"overflow":       "number out of range",
		"not_finite":     "number not finite",
		"duplicate_key":  "duplicate key",
		"parse_error":    "parse error",
		"truncated":      "input too large",
		"invalid_format": "invalid format",
	},
	"ja": {
		"invalid_type":   "型が不正です",
		"required":       "必須キー {key} がありません",
		"out_of_range":   "インデックスが範囲外です",
		"overflow":       "数値が範囲外です",
		"not_finite":     "数値が有限ではありません",
		"duplicate_key":  "キーが重複しています",
		"parse_error":    "解析エラー",
		"truncated":      "入力が大きすぎます",
		"invalid_format": "形式が不正です",
	},
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	msg, ok := dictionaries[t.lang][code]
	if !ok {
		return code
	}
	if !strings.Contains(msg, "{") {
		return msg
	}
	pairs := make([]string, 0, 2*len(data))
	for k, v := range data {
		pairs = append(pairs, "{"+k+"}", v)
	}
	msg = strings.NewReplacer(pairs...).Replace(msg)
	// Unfilled placeholders are dropped along with their leading space.
	for {
		i := strings.Index(msg, " {")
		if i < 0 {
			return msg
		}
		j := strings.Index(msg[i:], "}")
		if j < 0 {
			return msg
		}
		msg = msg[:i] + msg[i+j+1:]
	}
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// Languages lists the built-in dictionaries.
func Languages() []string { return []string{"en", "ja"} }

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if _, ok := dictionaries[lang]; !ok {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
