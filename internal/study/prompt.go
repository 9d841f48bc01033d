package study

import (
	"fmt"
	"strings"
)

const tutorPersona = `Bạn là gia sư thân thiện cho học sinh THPT Việt Nam. Luôn trả lời bằng tiếng Việt, rõ ràng, đúng chương trình phổ thông.`

const flashcardSystemPrompt = tutorPersona + ` Bạn soạn thẻ ghi nhớ (flashcard) ngắn gọn, mỗi thẻ một ý.`

func buildFlashcardUserMessage(in FlashcardInput) string {
	var b strings.Builder
	if in.Subject != "" {
		fmt.Fprintf(&b, "Môn học: %s\n", in.Subject)
	}
	fmt.Fprintf(&b, "Chủ đề: %s\n", in.Topic)
	fmt.Fprintf(&b, "Số thẻ: %d\n", in.Count)
	b.WriteString(`
Yêu cầu:
1. Mặt trước là thuật ngữ hoặc câu hỏi, tối đa 15 từ.
2. Mặt sau là câu trả lời chính xác, tối đa 40 từ.
3. Không lặp lại thẻ. Gợi ý (hint) là tùy chọn.`)
	return b.String()
}

const writingSystemPrompt = tutorPersona + ` Bạn chấm và góp ý bài viết theo thang điểm 10, công bằng và mang tính xây dựng.`

func buildWritingUserMessage(in WritingInput) string {
	var b strings.Builder
	if in.Subject != "" {
		fmt.Fprintf(&b, "Môn: %s\n", in.Subject)
	}
	if in.Prompt != "" {
		fmt.Fprintf(&b, "Đề bài: %s\n", in.Prompt)
	}
	fmt.Fprintf(&b, "\nBài làm:\n%s\n", in.Essay)
	b.WriteString(`
Yêu cầu: cho điểm, tóm tắt nhận xét, liệt kê điểm mạnh, điểm cần cải thiện và các lỗi cụ thể kèm cách sửa.`)
	return b.String()
}

const homeworkSystemPrompt = tutorPersona + ` Bạn giải bài tập từng bước để học sinh hiểu cách làm, không chỉ đưa đáp án.`

func buildHomeworkUserMessage(in HomeworkInput) string {
	var b strings.Builder
	if in.Subject != "" {
		fmt.Fprintf(&b, "Môn: %s\n", in.Subject)
	}
	fmt.Fprintf(&b, "Bài tập:\n%s\n", in.Problem)
	b.WriteString(`
Yêu cầu: trình bày các bước giải theo thứ tự, nêu đáp án cuối cùng và các kiến thức đã dùng. Viết công thức bằng văn bản thường, không dùng LaTeX.`)
	return b.String()
}

const mindmapSystemPrompt = tutorPersona + ` Bạn tạo sơ đồ tư duy có cấu trúc: chủ đề trung tâm, các nhánh chính, ý phụ và chi tiết.`

func buildMindmapUserMessage(in MindmapInput) string {
	return fmt.Sprintf(`Chủ đề: %s

Yêu cầu: 4 đến 6 nhánh chính, mỗi nhánh 2 đến 4 ý, mỗi ý tối đa 3 chi tiết. Mỗi nhãn tối đa 8 từ.`, in.Topic)
}

const lessonSystemPrompt = tutorPersona + ` Bạn soạn bài giảng ngắn kèm câu hỏi trắc nghiệm kiểm tra hiểu bài.`

func buildLessonUserMessage(in LessonInput) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Môn: %s\n", in.Subject)
	fmt.Fprintf(&b, "Chủ đề: %s\n", in.Topic)
	fmt.Fprintf(&b, "Lớp: %d\n", in.Grade)
	b.WriteString(`
Yêu cầu:
1. 3 đến 5 phần, mỗi phần có tiêu đề và nội dung.
2. Tóm tắt các ý chính.
3. 3 đến 5 câu trắc nghiệm, mỗi câu đúng 4 phương án khác nhau.
4. Trường answer phải chép lại nguyên văn đúng một phương án.`)
	return b.String()
}

const speakingSystemPrompt = tutorPersona + ` Bạn đánh giá bài nói (đã chép thành văn bản) về độ trôi chảy, từ vựng và ngữ pháp.`

func buildSpeakingUserMessage(in SpeakingInput) string {
	var b strings.Builder
	if in.Prompt != "" {
		fmt.Fprintf(&b, "Câu hỏi: %s\n", in.Prompt)
	}
	fmt.Fprintf(&b, "Bản ghi bài nói:\n%s\n", in.Transcript)
	b.WriteString(`
Yêu cầu: cho điểm trên thang 10, nhận xét từng tiêu chí, gợi ý cải thiện và viết lại một phiên bản tốt hơn.`)
	return b.String()
}

const chatSystemPrompt = `Bạn là người bạn đồng hành lắng nghe và hỗ trợ tinh thần cho học sinh THPT Việt Nam. Trả lời bằng tiếng Việt, ấm áp, ngắn gọn (tối đa 120 từ). Không chẩn đoán bệnh. Khi học sinh nhắc đến ý định tự làm hại bản thân, hãy khuyến khích các em liên hệ ngay người lớn tin cậy và Tổng đài 111.`
