package assessment

import "fmt"

// DISC styles in tie-break order.
const (
	DiscD Category = "D"
	DiscI Category = "I"
	DiscS Category = "S"
	DiscC Category = "C"
)

var discAlphabet = []Category{DiscD, DiscI, DiscS, DiscC}

var discNames = map[Category]string{
	DiscD: "Thủ Lĩnh (Dominance)",
	DiscI: "Người Truyền Cảm Hứng (Influence)",
	DiscS: "Người Kiên Định (Steadiness)",
	DiscC: "Nhà Phân Tích (Conscientiousness)",
}

// DiscName returns the Vietnamese name of a DISC style.
func DiscName(c Category) string {
	if n, ok := discNames[c]; ok {
		return n
	}
	return string(c)
}

// discQ attaches the fixed option mapping A→D, B→I, C→S, D→C.
func discQ(n int, text, d, i, s, c string) Question {
	return Question{
		ID:   fmt.Sprintf("disc-%02d", n),
		Text: text,
		Options: []Option{
			{Key: "A", Text: d, Category: DiscD},
			{Key: "B", Text: i, Category: DiscI},
			{Key: "C", Text: s, Category: DiscS},
			{Key: "D", Text: c, Category: DiscC},
		},
	}
}

var discQuestions = []Question{
	discQ(1, "Khi làm bài tập nhóm, bạn thường:",
		"Nhận vai trò trưởng nhóm, phân công việc", "Khuấy động không khí, đưa ra ý tưởng",
		"Hỗ trợ các bạn, làm phần được giao", "Kiểm tra kỹ chất lượng bài làm"),
	discQ(2, "Khi gặp một bài toán khó, bạn:",
		"Lao vào giải ngay", "Rủ bạn bè cùng bàn luận",
		"Kiên nhẫn thử từng cách", "Phân tích đề thật kỹ trước"),
	discQ(3, "Trong giờ ra chơi, bạn thường:",
		"Tổ chức trò chơi cho cả nhóm", "Trò chuyện rôm rả với nhiều bạn",
		"Ngồi cùng vài bạn thân", "Đọc sách hoặc ôn bài"),
	discQ(4, "Khi bất đồng ý kiến với bạn, bạn:",
		"Bảo vệ quan điểm đến cùng", "Thuyết phục bằng sự nhiệt tình",
		"Nhường nhịn để giữ hòa khí", "Đưa ra bằng chứng cụ thể"),
	discQ(5, "Bạn thích thầy cô giao nhiệm vụ:",
		"Có thử thách và quyền tự quyết", "Được giao lưu, trình bày",
		"Ổn định, quen thuộc", "Có yêu cầu rõ ràng, chi tiết"),
	discQ(6, "Điều khiến bạn khó chịu nhất là:",
		"Mất quyền kiểm soát", "Bị mọi người phớt lờ",
		"Thay đổi đột ngột", "Làm việc cẩu thả"),
	discQ(7, "Khi chuẩn bị thuyết trình, bạn tập trung vào:",
		"Thông điệp chính và kết quả", "Cách thu hút người nghe",
		"Sự phối hợp của cả nhóm", "Số liệu và độ chính xác"),
	discQ(8, "Bạn bè nhờ bạn giúp, bạn:",
		"Chỉ cách giải quyết nhanh nhất", "Vừa giúp vừa động viên vui vẻ",
		"Kiên nhẫn giúp đến khi xong", "Giải thích cặn kẽ từng bước"),
	discQ(9, "Trong một cuộc thi, bạn quan tâm nhất đến:",
		"Chiến thắng", "Được mọi người ghi nhận",
		"Đồng đội gắn kết", "Làm đúng luật và chuẩn"),
	discQ(10, "Khi lớp tổ chức sự kiện, bạn nhận việc:",
		"Điều phối chung", "Dẫn chương trình, truyền thông",
		"Hậu cần, hỗ trợ", "Lên kế hoạch, quản lý ngân sách"),
	discQ(11, "Cách bạn ra quyết định:",
		"Nhanh và dứt khoát", "Theo cảm hứng và ý kiến bạn bè",
		"Cân nhắc để không ai bị ảnh hưởng", "Dựa trên dữ liệu, phân tích"),
	discQ(12, "Khi bị chê trách, bạn:",
		"Phản bác nếu thấy không đúng", "Buồn nhưng nhanh chóng vui lại",
		"Im lặng chấp nhận", "Xem xét lại lỗi sai một cách logic"),
	discQ(13, "Phong cách học của bạn:",
		"Học nhanh, tập trung vào mục tiêu", "Học qua thảo luận, trò chơi",
		"Học đều đặn mỗi ngày", "Học có hệ thống, ghi chép đầy đủ"),
	discQ(14, "Bạn được khen nhiều nhất về:",
		"Sự quyết đoán", "Sự vui vẻ, hòa đồng",
		"Sự đáng tin cậy", "Sự cẩn thận, tỉ mỉ"),
	discQ(15, "Khi có quy định mới ở trường, bạn:",
		"Đặt câu hỏi nếu thấy bất hợp lý", "Bàn tán với các bạn",
		"Chấp hành nhưng cần thời gian làm quen", "Đọc kỹ và tuân thủ"),
	discQ(16, "Bạn thường nói chuyện theo kiểu:",
		"Thẳng thắn, ngắn gọn", "Sôi nổi, nhiều cảm xúc",
		"Nhẹ nhàng, ôn hòa", "Chính xác, có dẫn chứng"),
	discQ(17, "Khi làm việc dưới áp lực, bạn:",
		"Càng quyết tâm hơn", "Tìm người cùng chia sẻ",
		"Cố giữ nhịp độ quen thuộc", "Lập danh sách việc cần làm"),
	discQ(18, "Một ngày cuối tuần lý tưởng của bạn:",
		"Thử thách bản thân với điều mới", "Tụ tập, tiệc tùng cùng bạn bè",
		"Thư giãn cùng gia đình", "Hoàn thành dự án cá nhân"),
	discQ(19, "Khi nhóm thất bại, bạn:",
		"Đề ra hướng đi mới ngay", "Động viên tinh thần mọi người",
		"Ở bên hỗ trợ các bạn", "Phân tích nguyên nhân thất bại"),
	discQ(20, "Bạn mong muốn được người khác nhìn nhận là:",
		"Người có năng lực", "Người thú vị",
		"Người tốt bụng", "Người chuẩn mực"),
	discQ(21, "Với một dự án dài hạn, bạn:",
		"Đặt mục tiêu lớn và thúc đẩy tiến độ", "Giữ cho mọi người hứng thú",
		"Duy trì đều đặn đến cuối", "Chia nhỏ và kiểm soát chất lượng"),
}

type discScorer struct{}

func (discScorer) Instrument() Instrument { return InstrumentDISC }

func (discScorer) Alphabet() []Category { return discAlphabet }

func (discScorer) Questions() []Question { return discQuestions }

func (discScorer) Empty() ScoreVector { return NewScoreVector(discAlphabet) }

func (discScorer) Apply(v ScoreVector, q Question, a Answer) (ScoreVector, error) {
	for _, o := range q.Options {
		if o.Key == string(a) {
			return v.plus(o.Category, 1), nil
		}
	}
	return nil, &InvalidAnswerError{Instrument: InstrumentDISC, QuestionID: q.ID, Index: -1, Answer: a, Allowed: optionKeys(q)}
}

func (discScorer) Classify(v ScoreVector) Classification {
	best := discAlphabet[0]
	for _, c := range discAlphabet[1:] {
		if v[c] > v[best] {
			best = c
		}
	}
	return Classification{Code: string(best), Label: DiscName(best), Total: v.Total()}
}
