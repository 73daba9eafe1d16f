package i18n

import "testing"

func TestTranslator_DefaultAndJapanese(t *testing.T) {
	// default is en
	if msg := T("invalid_type", nil); msg == "invalid_type" || msg == "" {
		t.Fatalf("expected a human message, got %q", msg)
	}

	SetLanguage("ja")
	if msg := T("invalid_type", nil); msg == "invalid type" {
		t.Fatalf("expected japanese message, got %q", msg)
	}
	SetLanguage("en")
}

func TestTranslator_UnknownCodeFallsBackToCode(t *testing.T) {
	if msg := T("no_such_code", nil); msg != "no_such_code" {
		t.Fatalf("got %q", msg)
	}
}

type constantTranslator struct{}

func (constantTranslator) Message(code string, data map[string]string) string { return "X" }

func TestSetTranslator_CustomAndReset(t *testing.T) {
	SetTranslator(constantTranslator{})
	if msg := T("required", nil); msg != "X" {
		t.Fatalf("got %q", msg)
	}
	SetTranslator(nil)
	if msg := T("required", nil); msg == "X" {
		t.Fatalf("expected reset to builtin, got %q", msg)
	}
}
