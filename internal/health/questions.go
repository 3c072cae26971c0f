// Package health implements the scoring and aggregation core of the app:
// tendency/level score primitives, the dashboard metric builder, the rule
// based risk analyzer, and the monthly check-in aggregator. Everything in
// this package is a pure function over already-fetched data; persistence and
// clocks live with the callers.
package health

// TendencyField identifies one of the four categorical daily observations.
type TendencyField string

// The tracked tendency fields. Spellings are part of the API contract.
const (
	FieldFood  TendencyField = "food"
	FieldWater TendencyField = "water"
	FieldStool TendencyField = "stool"
	FieldUrine TendencyField = "urine"
)

// Option is one selectable answer for a check-in question. Value is the
// canonical token persisted by current clients; Label is the display string
// older clients stored verbatim. Scorers accept both forms.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Score int    `json:"score"`
}

// Question is one entry of the daily check-in questionnaire.
type Question struct {
	ID          string   `json:"id"`
	Text        string   `json:"text"`
	Description string   `json:"description"`
	Type        string   `json:"type"` // single | number
	Options     []Option `json:"options"`
	Category    string   `json:"category"`
}

// QuestionBank is the questionnaire configuration. It is loaded once at
// startup and injected read-only; nothing in this package mutates it.
type QuestionBank struct {
	Daily []Question `json:"daily"`
}

// Tendency answer tokens. These spellings are stored in the database and
// returned over the API; they must not be renamed.
const (
	TendencyNone     = "none"
	TendencyLess     = "less"
	TendencyNormal   = "normal"
	TendencyMore     = "more"
	TendencyDiarrhea = "diarrhea" // stool only
)

// NoRecordLabel is the display placeholder for a day without an answer.
const NoRecordLabel = "기록 없음"

// tendencyTokens lists the canonical tokens per field in evaluation order.
// Stool additionally recognizes the diarrhea token.
var tendencyTokens = map[TendencyField][]string{
	FieldFood:  {TendencyNone, TendencyLess, TendencyNormal, TendencyMore},
	FieldWater: {TendencyNone, TendencyLess, TendencyNormal, TendencyMore},
	FieldStool: {TendencyNone, TendencyDiarrhea, TendencyLess, TendencyNormal, TendencyMore},
	FieldUrine: {TendencyNone, TendencyLess, TendencyNormal, TendencyMore},
}

// tendencyLabels maps canonical tokens to the display labels historical data
// may carry instead of tokens. The strings are carried over verbatim from the
// live question bank; dropping or "fixing" one would silently orphan stored
// answers written in label form.
var tendencyLabels = map[TendencyField]map[string]string{
	FieldFood: {
		TendencyNone:   "안 먹음",
		TendencyLess:   "평소보다 적게",
		TendencyNormal: "평소만큼",
		TendencyMore:   "평소보다 많이",
	},
	FieldWater: {
		TendencyNone:   "거의 안 마심",
		TendencyLess:   "평소보다 적음",
		TendencyNormal: "평소 수준",
		TendencyMore:   "평소보다 많음",
	},
	FieldStool: {
		TendencyNone:     "없음",
		TendencyDiarrhea: "설사",
		TendencyLess:     "평소보다 적게",
		TendencyNormal:   "평소만큼",
		TendencyMore:     "평소보다 많이",
	},
	FieldUrine: {
		TendencyNone:   "없음",
		TendencyLess:   "평소보다 적게",
		TendencyNormal: "평소만큼",
		TendencyMore:   "평소보다 많이",
	},
}

// DefaultQuestionBank returns the fixed daily check-in questionnaire: food,
// water, weight, stool, urine. The option labels here are the source of the
// synonym table above, so the two stay in lockstep by construction.
func DefaultQuestionBank() QuestionBank {
	opts := func(field TendencyField, scores map[string]int) []Option {
		out := make([]Option, 0, len(tendencyTokens[field]))
		for _, tok := range tendencyTokens[field] {
			out = append(out, Option{Value: tok, Label: tendencyLabels[field][tok], Score: scores[tok]})
		}
		return out
	}
	return QuestionBank{
		Daily: []Question{
			{
				ID:          "q1_food_intake",
				Text:        "오늘 식사량은 어땠나요?",
				Description: "평소 식사량과 비교해서 선택해주세요.",
				Type:        "single",
				Options:     opts(FieldFood, map[string]int{TendencyNone: 3, TendencyLess: 1, TendencyNormal: 0, TendencyMore: 1}),
				Category:    "DAILY",
			},
			{
				ID:          "q2_water_intake",
				Text:        "오늘 물은 얼마나 마셨나요?",
				Description: "평소 음수량과 비교해서 선택해주세요.",
				Type:        "single",
				Options:     opts(FieldWater, map[string]int{TendencyNone: 3, TendencyLess: 1, TendencyNormal: 0, TendencyMore: 1}),
				Category:    "DAILY",
			},
			{
				ID:          "q3_weight",
				Text:        "오늘 체중을 입력해주세요 (kg)",
				Description: "소숫점 2자리까지 입력 가능해요. (예: 4.25)",
				Type:        "number",
				Category:    "DAILY",
			},
			{
				ID:          "q4_poop",
				Text:        "오늘 배변 상태는 어땠나요?",
				Description: "배변량과 상태를 선택해주세요.",
				Type:        "single",
				Options:     opts(FieldStool, map[string]int{TendencyNone: 2, TendencyDiarrhea: 3, TendencyLess: 1, TendencyNormal: 0, TendencyMore: 1}),
				Category:    "DAILY",
			},
			{
				ID:          "q5_urine",
				Text:        "오늘 배뇨량은 어땠나요?",
				Description: "평소 배뇨량과 비교해서 선택해주세요.",
				Type:        "single",
				Options:     opts(FieldUrine, map[string]int{TendencyNone: 3, TendencyLess: 1, TendencyNormal: 0, TendencyMore: 1}),
				Category:    "DAILY",
			},
		},
	}
}
