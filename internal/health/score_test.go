package health

import "testing"

func TestTendencyScore_CanonicalTokens(t *testing.T) {
	cases := []struct {
		field TendencyField
		value string
		want  int
	}{
		{FieldFood, "none", 0},
		{FieldFood, "less", 30},
		{FieldFood, "normal", 70},
		{FieldFood, "more", 50},
		{FieldStool, "diarrhea", 20},
		{FieldUrine, "NORMAL", 70}, // case-insensitive
		{FieldWater, "LeSs", 30},
	}
	for _, tc := range cases {
		if got := TendencyScore(tc.field, tc.value); got != tc.want {
			t.Errorf("TendencyScore(%s, %q) = %d, want %d", tc.field, tc.value, got, tc.want)
		}
	}
}

func TestTendencyScore_AcceptsDisplayLabels(t *testing.T) {
	if got := TendencyScore(FieldFood, "안 먹음"); got != 0 {
		t.Errorf("food label none = %d, want 0", got)
	}
	if got := TendencyScore(FieldWater, "평소 수준"); got != 70 {
		t.Errorf("water label normal = %d, want 70", got)
	}
	if got := TendencyScore(FieldStool, "설사"); got != 20 {
		t.Errorf("stool label diarrhea = %d, want 20", got)
	}
}

func TestTendencyScore_DefaultOnUnrecognized(t *testing.T) {
	for _, v := range []string{"", "   ", "purple", "yes"} {
		if got := TendencyScore(FieldFood, v); got != 50 {
			t.Errorf("TendencyScore(food, %q) = %d, want default 50", v, got)
		}
	}
}

func TestDashboardScore(t *testing.T) {
	if got := DashboardScore(FieldWater, "normal"); got != 100 {
		t.Errorf("normal = %d, want 100", got)
	}
	if got := DashboardScore(FieldWater, "거의 안 마심"); got != 0 {
		t.Errorf("label none = %d, want 0", got)
	}
	// Unrecognized input defaults to 0 here, not 50.
	if got := DashboardScore(FieldWater, "???"); got != 0 {
		t.Errorf("unrecognized = %d, want 0", got)
	}
}

func TestTendencyLabel_TokenToLabel(t *testing.T) {
	if got := TendencyLabel(FieldFood, "none"); got != "안 먹음" {
		t.Errorf("food none label = %q", got)
	}
	if got := TendencyLabel(FieldStool, "DIARRHEA"); got != "설사" {
		t.Errorf("stool diarrhea label = %q", got)
	}
}

func TestTendencyLabel_Idempotent(t *testing.T) {
	inputs := []string{"none", "평소만큼", "", "custom note", "설사"}
	for _, in := range inputs {
		once := TendencyLabel(FieldStool, in)
		twice := TendencyLabel(FieldStool, once)
		if once != twice {
			t.Errorf("TendencyLabel not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestTendencyLabel_EmptyPlaceholder(t *testing.T) {
	if got := TendencyLabel(FieldUrine, ""); got != NoRecordLabel {
		t.Errorf("empty label = %q, want %q", got, NoRecordLabel)
	}
}

func TestLevelScore(t *testing.T) {
	cases := map[string]int{
		"high":   3,
		"HIGH":   3,
		"normal": 2,
		"low":    1,
		"Low ":   1,
		"":       0,
		"medium": 0,
	}
	for in, want := range cases {
		if got := LevelScore(in); got != want {
			t.Errorf("LevelScore(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestCanonicalTendency(t *testing.T) {
	tok, ok := CanonicalTendency(FieldWater, "평소보다 많음")
	if !ok || tok != TendencyMore {
		t.Fatalf("water label more -> (%q,%v)", tok, ok)
	}
	if _, ok := CanonicalTendency(FieldFood, ""); ok {
		t.Fatal("empty input must not resolve")
	}
	// Diarrhea is a stool-only token.
	if _, ok := CanonicalTendency(FieldFood, "diarrhea"); ok {
		t.Fatal("diarrhea must not resolve for food")
	}
}

func TestDefaultQuestionBank(t *testing.T) {
	bank := DefaultQuestionBank()
	if len(bank.Daily) != 5 {
		t.Fatalf("expected 5 daily questions, got %d", len(bank.Daily))
	}
	if bank.Daily[2].Type != "number" {
		t.Errorf("q3 should be the numeric weight question, got type %q", bank.Daily[2].Type)
	}
	// Option labels must match the synonym table the scorers use.
	for _, opt := range bank.Daily[0].Options {
		if got := TendencyLabel(FieldFood, opt.Value); got != opt.Label {
			t.Errorf("label mismatch for food %q: bank %q vs scorer %q", opt.Value, opt.Label, got)
		}
	}
}
