package i18n

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "expected" or "key").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "invalid_type":
			return "型が不正です"
		case "required":
			return "必須プロパティが不足しています"
		case "unknown_key":
			return "未知のキーです"
		case "union_no_match":
			return "どの選択肢にも一致しません"
		case "invalid_format":
			return "書式が不正です"
		case "invalid_value":
			return "値が不正です"
		case "invalid_enum":
			return "列挙値が不正です"
		case "length_mismatch":
			return "長さが一致しません"
		case "unsupported_type":
			return "サポートされない型です"
		case "duplicate_key":
			return "キーが重複しています"
		case "invalid_key":
			return "キー型が不正です"
		case "parse_error":
			return "解析エラー"
		}
	default: // "en"
		switch code {
		case "invalid_type":
			return "invalid type"
		case "required":
			return "required property missing"
		case "unknown_key":
			return "unknown key"
		case "union_no_match":
			return "no union alternative matched"
		case "invalid_format":
			return "invalid format"
		case "invalid_value":
			return "invalid value"
		case "invalid_enum":
			return "invalid enumeration value"
		case "length_mismatch":
			return "length mismatch"
		case "unsupported_type":
			return "unsupported type"
		case "duplicate_key":
			return "duplicate key"
		case "invalid_key":
			return "invalid key type"
		case "parse_error":
			return "parse error"
		}
	}
	return code
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
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
