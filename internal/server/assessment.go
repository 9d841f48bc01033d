package server

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"github.com/abhisek/laban/internal/assessment"
	"github.com/abhisek/laban/internal/metrics"
	"github.com/abhisek/laban/internal/store"
	"github.com/abhisek/laban/internal/textmatch"
)

type instrumentURI struct {
	Name string `uri:"name" binding:"required,instrument"`
}

type studentBody struct {
	Name   string `json:"name" binding:"max=80"`
	Class  string `json:"class" binding:"max=20"`
	School string `json:"school" binding:"max=120"`
}

func (b studentBody) student() assessment.Student {
	return assessment.Student{Name: b.Name, Class: b.Class, School: b.School}
}

// scoreRequest carries answers either as one string ("ABNA", "A,B", "0 4 3")
// or as a list of tokens.
type scoreRequest struct {
	Answers    string      `json:"answers" binding:"required_without=AnswerList"`
	AnswerList []string    `json:"answer_list" binding:"required_without=Answers"`
	Student    studentBody `json:"student"`
}

func (r scoreRequest) answers() []assessment.Answer {
	if len(r.AnswerList) > 0 {
		return lo.Map(r.AnswerList, func(a string, _ int) assessment.Answer {
			return assessment.Answer(strings.ToUpper(strings.TrimSpace(a)))
		})
	}
	return assessment.ParseAnswers(r.Answers)
}

type instrumentInfo struct {
	Name        assessment.Instrument `json:"name"`
	DisplayName string                `json:"display_name"`
	Questions   int                   `json:"questions"`
	Categories  []categoryInfo        `json:"categories"`
}

type categoryInfo struct {
	Code string  `json:"code"`
	Name string  `json:"name"`
	Max  float64 `json:"max"`
}

func describeInstrument(s assessment.Scorer) instrumentInfo {
	inst := s.Instrument()
	return instrumentInfo{
		Name:        inst,
		DisplayName: inst.DisplayName(),
		Questions:   len(s.Questions()),
		Categories: lo.Map(s.Alphabet(), func(c assessment.Category, _ int) categoryInfo {
			return categoryInfo{Code: string(c), Name: assessment.Describe(inst, c), Max: assessment.MaxScore(s, c)}
		}),
	}
}

func (s *Server) listInstruments(c *gin.Context) {
	c.JSON(http.StatusOK, lo.Map(assessment.Scorers(), func(sc assessment.Scorer, _ int) instrumentInfo {
		return describeInstrument(sc)
	}))
}

type questionView struct {
	assessment.Question
	Choices []assessment.Option `json:"choices"`
}

func (s *Server) instrumentQuestions(c *gin.Context) {
	var uri instrumentURI
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown instrument"})
		return
	}
	sc, _ := assessment.Lookup(uri.Name)
	questions := lo.Map(sc.Questions(), func(q assessment.Question, _ int) questionView {
		return questionView{Question: q, Choices: assessment.AnswerOptions(sc.Instrument(), q)}
	})
	c.JSON(http.StatusOK, gin.H{
		"instrument": describeInstrument(sc),
		"questions":  questions,
	})
}

func (s *Server) scoreInstrument(c *gin.Context) {
	var uri instrumentURI
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown instrument"})
		return
	}
	var req scoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sc, _ := assessment.Lookup(uri.Name)
	res, err := assessment.Grade(sc, req.answers(), req.Student.student(), s.deps.Now())
	metrics.ObserveGrade(sc.Instrument(), res, err)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":  err.Error(),
			"reason": metrics.RejectReason(err),
		})
		return
	}

	if err := s.deps.Results.Save(c.Request.Context(), *res); err != nil {
		metrics.ResultSaveFailures.Inc()
		slog.Warn("failed to save result", "instrument", res.Instrument, "err", err)
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save result"})
		return
	}
	c.JSON(http.StatusCreated, res)
}

type resultsQuery struct {
	Instrument string `form:"instrument" binding:"omitempty,instrument"`
	Student    string `form:"student"`
}

func (s *Server) listResults(c *gin.Context) {
	var q resultsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	all, err := s.deps.Results.LoadAll(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load results"})
		return
	}

	var inst assessment.Instrument
	if q.Instrument != "" {
		sc, _ := assessment.Lookup(q.Instrument)
		inst = sc.Instrument()
	}
	out := lo.Filter(all, func(r assessment.Result, _ int) bool {
		if inst != "" && r.Instrument != inst {
			return false
		}
		return q.Student == "" || textmatch.Equal(r.Student.Name, q.Student)
	})
	c.JSON(http.StatusOK, gin.H{"results": out, "count": len(out)})
}

func (s *Server) getResult(c *gin.Context) {
	res, err := s.deps.Results.Get(c.Request.Context(), c.Param("id"))
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "result not found"})
	case err != nil:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load result"})
	default:
		c.JSON(http.StatusOK, res)
	}
}

type matchRequest struct {
	Options []string `json:"options" binding:"required,min=1,dive,required"`
	Pick    string   `json:"pick" binding:"required"`
}

// match reports which option a free-text pick denotes under the answer
// matching rules.
func (s *Server) match(c *gin.Context) {
	var req matchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	idx := textmatch.IndexOf(req.Options, req.Pick)
	c.JSON(http.StatusOK, gin.H{
		"index":      idx,
		"matched":    idx >= 0,
		"matches":    textmatch.CountMatches(req.Options, req.Pick),
		"normalized": textmatch.Normalize(req.Pick),
	})
}
