package assessment

// IQ question kinds.
const (
	IQNumeric Category = "numeric"
	IQVerbal  Category = "verbal"
	IQLogic   Category = "logic"
)

var iqAlphabet = []Category{IQNumeric, IQVerbal, IQLogic}

// IQTable buckets the 0..14 total into five ordered labels.
var IQTable = BreakpointTable{
	Order: Ascending,
	Tiers: []Breakpoint{
		{Threshold: 4, Code: "iq-developing", Label: "IQ Cần Rèn Luyện"},
		{Threshold: 7, Code: "iq-average", Label: "IQ Trung Bình"},
		{Threshold: 10, Code: "iq-good", Label: "IQ Khá"},
		{Threshold: 12, Code: "iq-high", Label: "IQ Cao"},
	},
	Fallback: Breakpoint{Code: "iq-excellent", Label: "IQ Xuất Sắc"},
}

func iqQ(id string, cat Category, text, correct string, opts ...string) Question {
	keys := []string{"A", "B", "C", "D"}
	q := Question{ID: id, Text: text, Category: cat, Correct: correct}
	for i, o := range opts {
		q.Options = append(q.Options, Option{Key: keys[i], Text: o})
	}
	return q
}

var iqQuestions = []Question{
	iqQ("iq-01", IQNumeric, "Số tiếp theo của dãy: 2, 4, 8, 16, ... là?", "C", "18", "24", "32", "64"),
	iqQ("iq-02", IQVerbal, "Từ nào khác loại với các từ còn lại?", "C", "Táo", "Cam", "Cà rốt", "Nho"),
	iqQ("iq-03", IQLogic, "Mọi học sinh lớp 10A đều giỏi Toán. Lan học lớp 10A. Vậy:", "B",
		"Lan giỏi Văn", "Lan giỏi Toán", "Lan không giỏi Toán", "Không kết luận được"),
	iqQ("iq-04", IQNumeric, "Số tiếp theo của dãy: 1, 1, 2, 3, 5, 8, ... là?", "C", "11", "12", "13", "15"),
	iqQ("iq-05", IQVerbal, "Sách đối với đọc cũng như bút đối với:", "A", "Viết", "Giấy", "Mực", "Vở"),
	iqQ("iq-06", IQNumeric, "Một chiếc áo giảm giá 20% còn 160.000 đồng. Giá gốc là?", "B",
		"180.000 đồng", "200.000 đồng", "192.000 đồng", "220.000 đồng"),
	iqQ("iq-07", IQNumeric, "Số tiếp theo của dãy: 3, 6, 11, 18, 27, ... là?", "C", "36", "37", "38", "40"),
	iqQ("iq-08", IQLogic, "Nếu hôm qua là thứ Hai thì ngày kia là thứ mấy?", "B", "Thứ Tư", "Thứ Năm", "Thứ Sáu", "Thứ Ba"),
	iqQ("iq-09", IQNumeric, "5 máy làm 5 sản phẩm trong 5 phút. 100 máy làm 100 sản phẩm trong bao lâu?", "B",
		"100 phút", "5 phút", "20 phút", "1 phút"),
	iqQ("iq-10", IQLogic, "An cao hơn Bình, Bình cao hơn Cường. Ai thấp nhất?", "B", "An", "Cường", "Bình", "Không xác định"),
	iqQ("iq-11", IQLogic, "Hình nào tiếp theo: ○ △ □ ○ △ ...?", "C", "○", "△", "□", "☆"),
	iqQ("iq-12", IQNumeric, "Tổng các số từ 1 đến 10 là?", "B", "50", "55", "45", "60"),
	iqQ("iq-13", IQVerbal, "Từ nào trái nghĩa với \"siêng năng\"?", "A", "Lười biếng", "Chăm chỉ", "Cần cù", "Nhanh nhẹn"),
	iqQ("iq-14", IQLogic, "Có 3 quả táo, bạn lấy đi 2 quả. Bạn có bao nhiêu quả táo?", "B", "1", "2", "3", "0"),
}

type iqScorer struct{}

func (iqScorer) Instrument() Instrument { return InstrumentIQ }

func (iqScorer) Alphabet() []Category { return iqAlphabet }

func (iqScorer) Questions() []Question { return iqQuestions }

func (iqScorer) Empty() ScoreVector { return NewScoreVector(iqAlphabet) }

func (iqScorer) Apply(v ScoreVector, q Question, a Answer) (ScoreVector, error) {
	if !hasOption(q, a) {
		return nil, &InvalidAnswerError{Instrument: InstrumentIQ, QuestionID: q.ID, Index: -1, Answer: a, Allowed: optionKeys(q)}
	}
	if string(a) == q.Correct {
		return v.plus(q.Category, 1), nil
	}
	return v.Clone(), nil
}

func (iqScorer) Classify(v ScoreVector) Classification {
	total := v.Total()
	bp, tier := IQTable.Lookup(total)
	return Classification{Code: bp.Code, Label: bp.Label, Total: total, Tier: tier}
}

func hasOption(q Question, a Answer) bool {
	for _, o := range q.Options {
		if o.Key == string(a) {
			return true
		}
	}
	return false
}

func optionKeys(q Question) []string {
	out := make([]string, len(q.Options))
	for i, o := range q.Options {
		out[i] = o.Key
	}
	return out
}
