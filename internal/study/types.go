package study

import (
	"fmt"
	"time"
)

// Interaction kinds recorded in the interaction log.
const (
	KindFlashcards = "flashcards"
	KindWriting    = "writing"
	KindHomework   = "homework"
	KindMindmap    = "mindmap"
	KindLesson     = "lesson"
	KindSpeaking   = "speaking"
	KindChat       = "chat"
)

// InputError reports a request the tools refuse before calling the AI.
type InputError struct {
	Field  string
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("study: %s %s", e.Field, e.Reason)
}

// FlashcardInput asks for a deck on one topic.
type FlashcardInput struct {
	Subject string `json:"subject"`
	Topic   string `json:"topic"`
	Count   int    `json:"count"`
}

// Flashcard is a single question/answer card.
type Flashcard struct {
	Front string `json:"front" jsonschema:"description=Thuật ngữ hoặc câu hỏi ngắn"`
	Back  string `json:"back" jsonschema:"description=Định nghĩa hoặc câu trả lời"`
	Hint  string `json:"hint,omitempty" jsonschema:"description=Gợi ý ngắn giúp ghi nhớ"`
}

// Deck is a generated flashcard deck.
type Deck struct {
	Subject string      `json:"subject"`
	Topic   string      `json:"topic"`
	Cards   []Flashcard `json:"cards"`
}

// WritingInput is an essay submitted for feedback.
type WritingInput struct {
	Subject string `json:"subject"`
	Prompt  string `json:"prompt"`
	Essay   string `json:"essay"`
}

// Correction is one suggested edit.
type Correction struct {
	Original  string `json:"original"`
	Suggested string `json:"suggested"`
	Reason    string `json:"reason"`
}

// WritingFeedback is the review of an essay.
type WritingFeedback struct {
	Score        float64      `json:"score" jsonschema:"minimum=0,maximum=10,description=Điểm trên thang 10"`
	Summary      string       `json:"summary"`
	Strengths    []string     `json:"strengths"`
	Improvements []string     `json:"improvements"`
	Corrections  []Correction `json:"corrections"`
}

// HomeworkInput is a problem to solve step by step.
type HomeworkInput struct {
	Subject string `json:"subject"`
	Problem string `json:"problem"`
}

// Solution is a worked answer.
type Solution struct {
	Answer      string   `json:"answer" jsonschema:"description=Đáp án cuối cùng"`
	Steps       []string `json:"steps" jsonschema:"description=Các bước giải theo thứ tự"`
	Explanation string   `json:"explanation"`
	Concepts    []string `json:"concepts" jsonschema:"description=Kiến thức cần nắm"`
}

// MindmapInput asks for a mindmap of a topic.
type MindmapInput struct {
	Topic string `json:"topic"`
	Depth int    `json:"depth"`
}

// MindmapNode is one node of a mindmap tree.
type MindmapNode struct {
	Label    string        `json:"label"`
	Children []MindmapNode `json:"children,omitempty"`
}

// LessonInput asks for a lesson with a short quiz.
type LessonInput struct {
	Subject string `json:"subject"`
	Topic   string `json:"topic"`
	Grade   int    `json:"grade"`
}

// LessonSection is one titled part of a lesson.
type LessonSection struct {
	Heading string `json:"heading"`
	Body    string `json:"body"`
}

// QuizItem is a multiple-choice check question.
type QuizItem struct {
	Question    string   `json:"question"`
	Options     []string `json:"options" jsonschema:"minItems=4,maxItems=4"`
	Answer      string   `json:"answer" jsonschema:"description=Chép lại nguyên văn một phương án đúng"`
	Explanation string   `json:"explanation"`
}

// Lesson is a generated lesson.
type Lesson struct {
	Title     string          `json:"title"`
	Summary   string          `json:"summary"`
	Sections  []LessonSection `json:"sections"`
	KeyPoints []string        `json:"key_points"`
	Quiz      []QuizItem      `json:"quiz"`
}

// QuizItemResult is the grade of one quiz answer.
type QuizItemResult struct {
	Question string `json:"question"`
	Pick     string `json:"pick"`
	Answer   string `json:"answer"`
	Correct  bool   `json:"correct"`
}

// QuizGrade is the result of GradeQuiz.
type QuizGrade struct {
	Correct int              `json:"correct"`
	Total   int              `json:"total"`
	Items   []QuizItemResult `json:"items"`
}

// Percent returns the share of correct answers, 0 for an empty quiz.
func (g QuizGrade) Percent() float64 {
	if g.Total == 0 {
		return 0
	}
	return float64(g.Correct) / float64(g.Total) * 100
}

// SpeakingInput is a transcript of a spoken answer.
type SpeakingInput struct {
	Prompt     string `json:"prompt"`
	Transcript string `json:"transcript"`
}

// SpeakingFeedback is the evaluation of a spoken answer.
type SpeakingFeedback struct {
	Score       float64  `json:"score" jsonschema:"minimum=0,maximum=10"`
	Fluency     string   `json:"fluency"`
	Vocabulary  string   `json:"vocabulary"`
	Grammar     string   `json:"grammar"`
	Suggestions []string `json:"suggestions"`
	Improved    string   `json:"improved" jsonschema:"description=Phiên bản câu trả lời được cải thiện"`
}

// ChatReply is one answer in a mood-support chat.
type ChatReply struct {
	Text   string    `json:"text"`
	Crisis bool      `json:"crisis"`
	At     time.Time `json:"at"`
}
