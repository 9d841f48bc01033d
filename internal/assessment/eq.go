package assessment

// EQ skills.
const (
	EQSelfAwareness  Category = "self_awareness"
	EQSelfRegulation Category = "self_regulation"
	EQMotivation     Category = "motivation"
	EQEmpathy        Category = "empathy"
	EQSocialSkills   Category = "social_skills"
)

var eqAlphabet = []Category{EQSelfAwareness, EQSelfRegulation, EQMotivation, EQEmpathy, EQSocialSkills}

var eqSkillNames = map[Category]string{
	EQSelfAwareness:  "Tự nhận thức",
	EQSelfRegulation: "Tự điều chỉnh",
	EQMotivation:     "Động lực",
	EQEmpathy:        "Đồng cảm",
	EQSocialSkills:   "Kỹ năng xã hội",
}

// EQSkillName returns the Vietnamese name of an EQ skill.
func EQSkillName(c Category) string {
	if n, ok := eqSkillNames[c]; ok {
		return n
	}
	return string(c)
}

// EQScale lists the Likert labels for values 1..5.
var EQScale = []string{
	"Hoàn toàn không đúng",
	"Không đúng",
	"Phân vân",
	"Đúng",
	"Hoàn toàn đúng",
}

// EQTable buckets the 14..70 total into four ordered labels.
var EQTable = BreakpointTable{
	Order: Descending,
	Tiers: []Breakpoint{
		{Threshold: 60, Code: "eq-excellent", Label: "EQ Xuất Sắc"},
		{Threshold: 45, Code: "eq-good", Label: "EQ Tốt"},
		{Threshold: 30, Code: "eq-average", Label: "EQ Trung Bình"},
	},
	Fallback: Breakpoint{Code: "eq-developing", Label: "EQ Cần Cải Thiện"},
}

var eqQuestions = []Question{
	{ID: "eq-01", Category: EQSelfAwareness, Text: "Tôi nhận ra được cảm xúc của mình ngay khi nó xuất hiện."},
	{ID: "eq-02", Category: EQSelfAwareness, Text: "Tôi biết rõ điểm mạnh và điểm yếu của bản thân."},
	{ID: "eq-03", Category: EQSelfRegulation, Text: "Tôi giữ được bình tĩnh khi bị điểm kém."},
	{ID: "eq-04", Category: EQSelfRegulation, Text: "Khi tức giận, tôi suy nghĩ trước khi nói."},
	{ID: "eq-05", Category: EQMotivation, Text: "Tôi tự đặt mục tiêu học tập và cố gắng đạt được."},
	{ID: "eq-06", Category: EQMotivation, Text: "Tôi không dễ bỏ cuộc khi gặp bài khó."},
	{ID: "eq-07", Category: EQEmpathy, Text: "Tôi dễ dàng nhận ra khi bạn bè đang buồn."},
	{ID: "eq-08", Category: EQEmpathy, Text: "Tôi đặt mình vào vị trí người khác để hiểu họ."},
	{ID: "eq-09", Category: EQEmpathy, Text: "Tôi lắng nghe mà không vội phán xét."},
	{ID: "eq-10", Category: EQSocialSkills, Text: "Tôi dễ dàng kết bạn với người mới."},
	{ID: "eq-11", Category: EQSocialSkills, Text: "Tôi giải quyết mâu thuẫn trong nhóm một cách ôn hòa."},
	{ID: "eq-12", Category: EQSocialSkills, Text: "Tôi biết cách động viên các bạn trong nhóm."},
	{ID: "eq-13", Category: EQSocialSkills, Text: "Tôi tự tin bày tỏ ý kiến của mình một cách tôn trọng."},
	{ID: "eq-14", Category: EQSocialSkills, Text: "Tôi hợp tác tốt với cả những bạn khác tính cách."},
}

type eqScorer struct{}

func (eqScorer) Instrument() Instrument { return InstrumentEQ }

func (eqScorer) Alphabet() []Category { return eqAlphabet }

func (eqScorer) Questions() []Question { return eqQuestions }

func (eqScorer) Empty() ScoreVector { return NewScoreVector(eqAlphabet) }

func (eqScorer) Apply(v ScoreVector, q Question, a Answer) (ScoreVector, error) {
	n, ok := parseLikert(a, 1, 5)
	if !ok {
		return nil, &InvalidAnswerError{Instrument: InstrumentEQ, QuestionID: q.ID, Index: -1, Answer: a, Allowed: likertAllowed(1, 5)}
	}
	return v.plus(q.Category, float64(n)), nil
}

func (eqScorer) Classify(v ScoreVector) Classification {
	total := v.Total()
	bp, tier := EQTable.Lookup(total)
	return Classification{Code: bp.Code, Label: bp.Label, Total: total, Tier: tier}
}
