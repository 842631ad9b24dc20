package i18n

import "testing"

func TestDefaultLanguageIsRussian(t *testing.T) {
	if got := Get(DefaultLang, "app.title"); got != "РыбачОК" {
		t.Fatalf("unexpected default title: %q", got)
	}
}

func TestEnglishTranslations(t *testing.T) {
	if got := Get(LangEN, "app.title"); got != "FishOK" {
		t.Fatalf("unexpected english title: %q", got)
	}
	if got := Get(LangEN, "catch.unknown_location"); got != "Unknown location" {
		t.Fatalf("unexpected english location fallback: %q", got)
	}
}

func TestUnknownLanguageFallsBackToDefault(t *testing.T) {
	if got := Get("de", "catch.unknown_location"); got != "Неизвестное место" {
		t.Fatalf("expected russian fallback, got %q", got)
	}
}

func TestMissingKeyFallsBack(t *testing.T) {
	// A key missing from the english table resolves via the default table.
	if got := Get(LangEN, "no.such.key"); got != "no.such.key" {
		t.Fatalf("expected key echo for unknown keys, got %q", got)
	}
}
