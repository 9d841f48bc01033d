package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"github.com/abhisek/laban/internal/assessment"
	"github.com/abhisek/laban/internal/guidance"
	"github.com/abhisek/laban/internal/llm"
	"github.com/abhisek/laban/internal/study"
	"github.com/abhisek/laban/internal/textmatch"
)

// studentHeader names the student in interaction logs of study calls.
const studentHeader = "X-Laban-Student"

const noResultsMessage = "Bạn cần hoàn thành ít nhất một bài trắc nghiệm trước khi phân tích."

// aiError maps a study or guidance failure to a status and the
// student-facing fallback message.
func aiError(c *gin.Context, err error) {
	var inputErr *study.InputError
	var blocked *llm.ErrContentBlocked
	status := http.StatusBadGateway
	switch {
	case errors.As(err, &inputErr):
		status = http.StatusBadRequest
	case errors.As(err, &blocked):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, llm.ErrNotConfigured):
		status = http.StatusServiceUnavailable
	}
	_ = c.Error(err)
	c.JSON(status, gin.H{
		"error":   study.FallbackMessage(err),
		"outcome": llm.Outcome(err),
	})
}

func studyContext(c *gin.Context) context.Context {
	return study.WithStudent(c.Request.Context(), c.GetHeader(studentHeader))
}

// runTool binds the request body into In, runs fn and writes its result.
func runTool[In, Out any](c *gin.Context, fn func(context.Context, In) (Out, error)) {
	var in In
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	out, err := fn(studyContext(c), in)
	if err != nil {
		aiError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) flashcards(c *gin.Context) { runTool(c, s.deps.Study.Flashcards) }
func (s *Server) writing(c *gin.Context)    { runTool(c, s.deps.Study.ReviewWriting) }
func (s *Server) homework(c *gin.Context)   { runTool(c, s.deps.Study.SolveHomework) }
func (s *Server) lesson(c *gin.Context)     { runTool(c, s.deps.Study.Lesson) }
func (s *Server) speaking(c *gin.Context)   { runTool(c, s.deps.Study.EvaluateSpeaking) }

type mindmapResponse struct {
	Root  *study.MindmapNode `json:"root"`
	Nodes int                `json:"nodes"`
	Text  string             `json:"text"`
}

func (s *Server) mindmap(c *gin.Context) {
	runTool(c, func(ctx context.Context, in study.MindmapInput) (mindmapResponse, error) {
		root, err := s.deps.Study.Mindmap(ctx, in)
		if err != nil {
			return mindmapResponse{}, err
		}
		return mindmapResponse{Root: root, Nodes: root.Count(), Text: root.Render()}, nil
	})
}

type gradeRequest struct {
	Lesson study.Lesson `json:"lesson"`
	Picks  []string     `json:"picks"`
}

func (s *Server) gradeLesson(c *gin.Context) {
	var req gradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(req.Lesson.Quiz) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lesson has no quiz"})
		return
	}
	g := study.GradeQuiz(&req.Lesson, req.Picks)
	c.JSON(http.StatusOK, gin.H{"grade": g, "percent": g.Percent()})
}

type chatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message" binding:"required"`
}

type chatResponse struct {
	SessionID string           `json:"session_id"`
	Reply     *study.ChatReply `json:"reply"`
}

func (s *Server) chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	id, entry := s.chats.get(req.SessionID, s.deps.Study.NewChat)

	entry.mu.Lock()
	reply, err := entry.chat.Send(studyContext(c), req.Message)
	entry.mu.Unlock()
	if err != nil {
		aiError(c, err)
		return
	}
	c.JSON(http.StatusOK, chatResponse{SessionID: id, Reply: reply})
}

type guidanceRequest struct {
	Student studentBody `json:"student"`
}

// guidance analyzes the stored results of one student, or of every result
// when no name is given.
func (s *Server) guidance(c *gin.Context) {
	var req guidanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	all, err := s.deps.Results.LoadAll(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load results"})
		return
	}
	st := req.Student.student()
	results := lo.Filter(all, func(r assessment.Result, _ int) bool {
		return st.Name == "" || textmatch.Equal(r.Student.Name, st.Name)
	})

	report, err := s.deps.Guidance.Analyze(study.WithStudent(c.Request.Context(), st.Name), guidance.Input{
		Student: st,
		Results: results,
	})
	switch {
	case errors.Is(err, guidance.ErrNoResults):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": noResultsMessage})
	case err != nil:
		aiError(c, err)
	default:
		c.JSON(http.StatusOK, report)
	}
}
