package health

import (
	"strings"

	"github.com/catlinkdev/go-catcare-backend/internal/domain"
)

// Severity levels (API contract).
const (
	LevelSafe    = "safe"
	LevelWarning = "warning"
	LevelDanger  = "danger"
)

// Insight messages surfaced on the dashboard. Ordered most urgent first when
// multiple rules trigger; the composite message is prepended so it always
// becomes the primary one.
const (
	InsightLowWater    = "음수량이 적어요. 신선한 물을 자주 갈아주고 습식 사료를 고려해보세요. 💧"
	InsightLowActivity = "활동량이 낮은 편이에요. 하루 10분 놀이 시간을 늘려보세요. 🏃"
	InsightChronic     = "만성 질환 이력이 확인됐어요. 정기 검진 주기를 지켜주세요."
	InsightUrgent      = "신장 질환 이력이 있는 아이의 음수량이 적어요. 빠른 시일 내 병원 상담을 권장합니다. 🚨"
	InsightAllHealthy  = "모든 지표가 안정적이에요. 지금처럼만 관리해주세요! 👍"
	InsightNoData      = "아직 기록이 없어요. 첫 데일리 체크인을 시작해보세요!"
)

// chronicKeywords are matched case-insensitively as substrings of medical
// history categories. Historical entries are free text in either language,
// so both spellings of the kidney condition are recognized.
var chronicKeywords = []string{"kidney", "신장"}

// Assessment is the derived risk view of one pet's latest daily record.
// Score starts at 100 and is decreased cumulatively by triggered rules; it is
// deliberately unclamped and may go negative when several rules stack.
type Assessment struct {
	Score          int      `json:"score"`
	Level          string   `json:"level"`
	Insights       []string `json:"insights"`
	PrimaryMessage string   `json:"primaryMessage"`
}

// AnalyzeRisk evaluates the fixed rule set against a pet's latest record.
//
// Rules run in a fixed order because the order decides which insight becomes
// the primary message when several trigger:
//
//  1. water intake low          → −20
//  2. activity level low        → −10
//  3. chronic condition keyword → −20
//  4. chronic AND low water     → −30 more, level forced to danger, and the
//     composite insight is prepended (not appended)
//
// Deductions are cumulative: the escalation path costs 20+20+30 (70 with low
// activity on top), never just the largest single penalty. Outside the forced
// escalation, level follows the score: warning below 70, safe otherwise.
//
// Callers must not invoke AnalyzeRisk on an empty history; the dashboard
// service substitutes its empty-state response instead.
func AnalyzeRisk(rec domain.DailyRecord) Assessment {
	score := 100
	insights := []string{}

	lowWater := strings.EqualFold(strings.TrimSpace(rec.Lifestyle.WaterIntake), "low")
	if lowWater {
		score -= 20
		insights = append(insights, InsightLowWater)
	}

	if strings.EqualFold(strings.TrimSpace(rec.Lifestyle.ActivityLevel), "low") {
		score -= 10
		insights = append(insights, InsightLowActivity)
	}

	level := LevelSafe
	if hasChronicCondition(rec.MedicalHistory) {
		score -= 20
		insights = append(insights, InsightChronic)
		if lowWater {
			score -= 30
			level = LevelDanger
			insights = append([]string{InsightUrgent}, insights...)
		}
	}

	if level != LevelDanger {
		if score < 70 {
			level = LevelWarning
		} else {
			level = LevelSafe
		}
	}

	if len(insights) == 0 {
		insights = append(insights, InsightAllHealthy)
	}

	return Assessment{
		Score:          score,
		Level:          level,
		Insights:       insights,
		PrimaryMessage: insights[0],
	}
}

// hasChronicCondition reports whether any medical history category contains
// one of the chronic condition keywords (case-insensitive substring match).
func hasChronicCondition(entries []domain.MedicalEntry) bool {
	for _, e := range entries {
		cat := strings.ToLower(e.Category)
		for _, kw := range chronicKeywords {
			if strings.Contains(cat, kw) {
				return true
			}
		}
	}
	return false
}
