package assessment

// MBTI axes. Each question's Category holds the axis it scores.
const (
	AxisEI Category = "EI"
	AxisSN Category = "SN"
	AxisTF Category = "TF"
	AxisJP Category = "JP"
)

// MBTI poles.
const (
	PoleE Category = "E"
	PoleI Category = "I"
	PoleS Category = "S"
	PoleN Category = "N"
	PoleT Category = "T"
	PoleF Category = "F"
	PoleJ Category = "J"
	PoleP Category = "P"
)

type mbtiAxis struct {
	axis   Category
	first  Category
	second Category
}

var mbtiAxes = []mbtiAxis{
	{AxisEI, PoleE, PoleI},
	{AxisSN, PoleS, PoleN},
	{AxisTF, PoleT, PoleF},
	{AxisJP, PoleJ, PoleP},
}

func mbtiAxisOf(c Category) (mbtiAxis, bool) {
	for _, a := range mbtiAxes {
		if a.axis == c {
			return a, true
		}
	}
	return mbtiAxis{}, false
}

func mbtiQ(id string, axis Category, text, a, b string) Question {
	return Question{
		ID:       id,
		Text:     text,
		Category: axis,
		Options: []Option{
			{Key: "A", Text: a},
			{Key: "B", Text: b},
			{Key: "N", Text: "Trung lập / cả hai"},
		},
	}
}

var mbtiQuestions = []Question{
	mbtiQ("mbti-01", AxisEI, "Sau một tuần học căng thẳng, bạn nạp lại năng lượng bằng cách nào?",
		"Đi chơi, gặp gỡ bạn bè", "Ở nhà, dành thời gian cho riêng mình"),
	mbtiQ("mbti-02", AxisEI, "Khi thảo luận nhóm trên lớp, bạn thường:",
		"Phát biểu ngay khi có ý tưởng", "Suy nghĩ kỹ rồi mới nói"),
	mbtiQ("mbti-03", AxisEI, "Khi chuyển đến một lớp học mới, bạn:",
		"Chủ động làm quen với nhiều bạn", "Đợi người khác bắt chuyện trước"),
	mbtiQ("mbti-04", AxisEI, "Bạn học hiệu quả nhất khi:",
		"Học nhóm, trao đổi với người khác", "Tự học ở nơi yên tĩnh"),
	mbtiQ("mbti-05", AxisEI, "Bạn bè thường nhận xét bạn là người:",
		"Sôi nổi, dễ gần", "Trầm tính, sâu sắc"),

	mbtiQ("mbti-06", AxisSN, "Khi đọc một bài học mới, bạn chú ý đến:",
		"Các sự kiện, số liệu cụ thể", "Ý nghĩa và mối liên hệ tổng thể"),
	mbtiQ("mbti-07", AxisSN, "Bạn tin tưởng điều gì hơn?",
		"Kinh nghiệm thực tế đã trải qua", "Linh cảm và trực giác"),
	mbtiQ("mbti-08", AxisSN, "Môn học khiến bạn hứng thú hơn là môn:",
		"Có ứng dụng thực tế rõ ràng", "Có nhiều lý thuyết và ý tưởng mới"),
	mbtiQ("mbti-09", AxisSN, "Khi làm bài tập, bạn thích:",
		"Hướng dẫn từng bước rõ ràng", "Tự tìm cách giải sáng tạo"),
	mbtiQ("mbti-10", AxisSN, "Bạn thích được khen là người:",
		"Thực tế, chu đáo", "Giàu trí tưởng tượng"),

	mbtiQ("mbti-11", AxisTF, "Khi đưa ra quyết định quan trọng, bạn dựa vào:",
		"Lý lẽ và phân tích khách quan", "Cảm xúc và giá trị cá nhân"),
	mbtiQ("mbti-12", AxisTF, "Khi bạn thân mắc lỗi, bạn sẽ:",
		"Chỉ ra thẳng thắn để bạn sửa", "Nhẹ nhàng động viên trước"),
	mbtiQ("mbti-13", AxisTF, "Trong một cuộc tranh luận, điều quan trọng hơn là:",
		"Tìm ra lập luận đúng", "Giữ hòa khí giữa mọi người"),
	mbtiQ("mbti-14", AxisTF, "Khi nhận xét bài của bạn cùng lớp, bạn:",
		"Đánh giá công bằng theo tiêu chí", "Cân nhắc đến cảm xúc của bạn ấy"),
	mbtiQ("mbti-15", AxisTF, "Theo bạn, một thầy cô giỏi là người:",
		"Chấm điểm công bằng, nghiêm túc", "Thấu hiểu và quan tâm học sinh"),

	mbtiQ("mbti-16", AxisJP, "Trước kỳ thi, bạn thường:",
		"Lập kế hoạch ôn tập từ sớm", "Ôn dồn vào những ngày cuối"),
	mbtiQ("mbti-17", AxisJP, "Bàn học của bạn thường:",
		"Gọn gàng, ngăn nắp", "Hơi bừa nhưng bạn biết mọi thứ ở đâu"),
	mbtiQ("mbti-18", AxisJP, "Với bài tập về nhà, bạn:",
		"Làm xong sớm rồi mới nghỉ", "Để đến gần hạn mới làm"),
	mbtiQ("mbti-19", AxisJP, "Cuối tuần của bạn thường:",
		"Đã được lên lịch trước", "Tùy hứng, thích gì làm nấy"),
	mbtiQ("mbti-20", AxisJP, "Khi kế hoạch bị thay đổi đột ngột, bạn cảm thấy:",
		"Khó chịu, bất an", "Thoải mái, thích nghi nhanh"),
}

var mbtiTypeNames = map[string]string{
	"ISTJ": "Người Trách Nhiệm",
	"ISFJ": "Người Nuôi Dưỡng",
	"INFJ": "Người Che Chở",
	"INTJ": "Nhà Chiến Lược",
	"ISTP": "Nhà Kỹ Thuật",
	"ISFP": "Người Nghệ Sĩ",
	"INFP": "Người Lý Tưởng Hóa",
	"INTP": "Nhà Tư Duy",
	"ESTP": "Người Thực Thi",
	"ESFP": "Người Trình Diễn",
	"ENFP": "Người Truyền Cảm Hứng",
	"ENTP": "Người Nhìn Xa",
	"ESTJ": "Người Giám Hộ",
	"ESFJ": "Người Chăm Sóc",
	"ENFJ": "Người Cho Đi",
	"ENTJ": "Nhà Điều Hành",
}

// MBTITypeName returns the Vietnamese name of a four-letter type code.
func MBTITypeName(code string) string {
	if name, ok := mbtiTypeNames[code]; ok {
		return name
	}
	return code
}

type mbtiScorer struct{}

func (mbtiScorer) Instrument() Instrument { return InstrumentMBTI }

func (mbtiScorer) Alphabet() []Category {
	return []Category{PoleE, PoleI, PoleS, PoleN, PoleT, PoleF, PoleJ, PoleP}
}

func (mbtiScorer) Questions() []Question { return mbtiQuestions }

func (s mbtiScorer) Empty() ScoreVector { return NewScoreVector(s.Alphabet()) }

func (mbtiScorer) Apply(v ScoreVector, q Question, a Answer) (ScoreVector, error) {
	axis, ok := mbtiAxisOf(q.Category)
	if !ok {
		return nil, &InvalidAnswerError{Instrument: InstrumentMBTI, QuestionID: q.ID, Index: -1, Answer: a, Allowed: []string{"A", "B", "N"}}
	}
	switch a {
	case "A":
		return v.plus(axis.first, 1), nil
	case "B":
		return v.plus(axis.second, 1), nil
	case "N":
		return v.plus(axis.first, 0.5).plus(axis.second, 0.5), nil
	default:
		return nil, &InvalidAnswerError{Instrument: InstrumentMBTI, QuestionID: q.ID, Index: -1, Answer: a, Allowed: []string{"A", "B", "N"}}
	}
}

func (mbtiScorer) Classify(v ScoreVector) Classification {
	code := make([]byte, 0, len(mbtiAxes))
	for _, ax := range mbtiAxes {
		if v[ax.first] >= v[ax.second] {
			code = append(code, ax.first[0])
		} else {
			code = append(code, ax.second[0])
		}
	}
	c := string(code)
	return Classification{Code: c, Label: MBTITypeName(c), Total: v.Total()}
}
