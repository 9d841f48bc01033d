package assessment

import (
	"fmt"
	"strconv"
	"strings"
)

// Holland (RIASEC) categories in tie-break order.
const (
	HollandR Category = "R"
	HollandI Category = "I"
	HollandA Category = "A"
	HollandS Category = "S"
	HollandE Category = "E"
	HollandC Category = "C"
)

var hollandAlphabet = []Category{HollandR, HollandI, HollandA, HollandS, HollandE, HollandC}

// HollandScale lists the Likert labels for values 0..4.
var HollandScale = []string{
	"Rất không thích",
	"Không thích",
	"Bình thường",
	"Thích",
	"Rất thích",
}

var hollandNames = map[Category]string{
	HollandR: "Kỹ thuật (Realistic)",
	HollandI: "Nghiên cứu (Investigative)",
	HollandA: "Nghệ thuật (Artistic)",
	HollandS: "Xã hội (Social)",
	HollandE: "Quản lý (Enterprising)",
	HollandC: "Nghiệp vụ (Conventional)",
}

// HollandName returns the Vietnamese name of a RIASEC letter.
func HollandName(c Category) string {
	if n, ok := hollandNames[c]; ok {
		return n
	}
	return string(c)
}

// Ten statements per category; the bank interleaves them R,I,A,S,E,C.
var hollandStatements = map[Category][]string{
	HollandR: {
		"sửa chữa đồ điện trong nhà",
		"lắp ráp mô hình, đồ chơi kỹ thuật",
		"làm vườn, trồng cây",
		"sử dụng máy móc, dụng cụ cơ khí",
		"chơi thể thao ngoài trời",
		"tìm hiểu cách động cơ xe hoạt động",
		"làm đồ thủ công bằng gỗ",
		"chăm sóc vật nuôi",
		"thực hành trong phòng thí nghiệm",
		"tham gia các hoạt động dã ngoại, cắm trại",
	},
	HollandI: {
		"giải các bài toán khó",
		"đọc sách khoa học",
		"tìm hiểu nguyên nhân của các hiện tượng tự nhiên",
		"làm thí nghiệm hóa học",
		"phân tích số liệu",
		"tìm hiểu về vũ trụ và thiên văn",
		"lập trình máy tính",
		"nghiên cứu về cơ thể con người",
		"giải câu đố logic",
		"xem phim tài liệu khoa học",
	},
	HollandA: {
		"vẽ tranh, thiết kế",
		"chơi nhạc cụ",
		"viết truyện, làm thơ",
		"diễn kịch, đóng vai",
		"chụp ảnh, quay phim",
		"trang trí phòng, góc học tập",
		"hát, múa",
		"thiết kế thời trang",
		"sáng tác nội dung trên mạng xã hội",
		"tham quan bảo tàng, triển lãm nghệ thuật",
	},
	HollandS: {
		"giúp bạn bè giải bài tập",
		"tham gia hoạt động tình nguyện",
		"lắng nghe và an ủi người khác",
		"dạy kèm các em nhỏ",
		"làm việc nhóm",
		"chăm sóc người già, người bệnh",
		"tổ chức hoạt động cho lớp",
		"tìm hiểu tâm lý con người",
		"hòa giải mâu thuẫn giữa các bạn",
		"tham gia câu lạc bộ, đoàn thể",
	},
	HollandE: {
		"làm lớp trưởng, trưởng nhóm",
		"thuyết trình trước đám đông",
		"thuyết phục người khác theo ý mình",
		"kinh doanh, bán hàng nhỏ",
		"tổ chức sự kiện",
		"tranh luận, hùng biện",
		"đặt mục tiêu và dẫn dắt nhóm đạt được",
		"tìm hiểu về khởi nghiệp",
		"đàm phán, thương lượng",
		"chịu trách nhiệm ra quyết định cho nhóm",
	},
	HollandC: {
		"sắp xếp tài liệu ngăn nắp",
		"ghi chép sổ sách cẩn thận",
		"lập bảng tính, thống kê",
		"làm việc theo quy trình rõ ràng",
		"kiểm tra lỗi chính tả, số liệu",
		"quản lý chi tiêu cá nhân",
		"lên thời gian biểu chi tiết",
		"nhập liệu trên máy tính",
		"tuân thủ nội quy, quy định",
		"lưu trữ và phân loại thông tin",
	},
}

var hollandQuestions = buildHollandQuestions()

func buildHollandQuestions() []Question {
	qs := make([]Question, 0, 60)
	for i := 0; i < 10; i++ {
		for _, c := range hollandAlphabet {
			qs = append(qs, Question{
				ID:       fmt.Sprintf("holland-%02d", len(qs)+1),
				Text:     "Tôi thích " + hollandStatements[c][i] + ".",
				Category: c,
			})
		}
	}
	return qs
}

// parseLikert accepts a single digit within [lo, hi]. Signs and padding
// ("+3", "03", " 3") are not Likert tokens.
func parseLikert(a Answer, lo, hi int) (int, bool) {
	if len(a) != 1 || a[0] < '0' || a[0] > '9' {
		return 0, false
	}
	n := int(a[0] - '0')
	if n < lo || n > hi {
		return 0, false
	}
	return n, true
}

func likertAllowed(lo, hi int) []string {
	out := make([]string, 0, hi-lo+1)
	for i := lo; i <= hi; i++ {
		out = append(out, strconv.Itoa(i))
	}
	return out
}

type hollandScorer struct{}

func (hollandScorer) Instrument() Instrument { return InstrumentHolland }

func (hollandScorer) Alphabet() []Category { return hollandAlphabet }

func (hollandScorer) Questions() []Question { return hollandQuestions }

func (hollandScorer) Empty() ScoreVector { return NewScoreVector(hollandAlphabet) }

func (hollandScorer) Apply(v ScoreVector, q Question, a Answer) (ScoreVector, error) {
	n, ok := parseLikert(a, 0, 4)
	if !ok {
		return nil, &InvalidAnswerError{Instrument: InstrumentHolland, QuestionID: q.ID, Index: -1, Answer: a, Allowed: likertAllowed(0, 4)}
	}
	return v.plus(q.Category, float64(n)), nil
}

func (hollandScorer) Classify(v ScoreVector) Classification {
	ranked := v.Ranked(hollandAlphabet)
	var code strings.Builder
	names := make([]string, 0, 3)
	for _, cs := range ranked[:3] {
		code.WriteString(string(cs.Category))
		names = append(names, HollandName(cs.Category))
	}
	return Classification{
		Code:  code.String(),
		Label: strings.Join(names, " - "),
		Total: v.Total(),
	}
}
