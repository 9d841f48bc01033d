package study

import "github.com/abhisek/laban/internal/llm"

type deckOutput struct {
	Cards []Flashcard `json:"cards"`
}

type mindmapIdea struct {
	Label   string   `json:"label"`
	Details []string `json:"details"`
}

type mindmapBranch struct {
	Label string        `json:"label"`
	Ideas []mindmapIdea `json:"ideas"`
}

type mindmapOutput struct {
	Center   string          `json:"center"`
	Branches []mindmapBranch `json:"branches"`
}

// Response schemas, reflected from the output types.
var (
	DeckSchema     = llm.SchemaFor[deckOutput]("flashcard-deck", "Bộ thẻ ghi nhớ cho một chủ đề")
	WritingSchema  = llm.SchemaFor[WritingFeedback]("writing-feedback", "Nhận xét bài viết của học sinh")
	SolutionSchema = llm.SchemaFor[Solution]("homework-solution", "Lời giải từng bước")
	MindmapSchema  = llm.SchemaFor[mindmapOutput]("mindmap", "Sơ đồ tư duy ba tầng")
	LessonSchema   = llm.SchemaFor[Lesson]("lesson", "Bài học ngắn kèm câu hỏi trắc nghiệm")
	SpeakingSchema = llm.SchemaFor[SpeakingFeedback]("speaking-feedback", "Đánh giá bài nói")
)
