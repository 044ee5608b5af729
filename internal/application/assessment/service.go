package assessment

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/evalix/ai-readiness/internal/application"
	appeval "github.com/evalix/ai-readiness/internal/application/evaluation"
	domain "github.com/evalix/ai-readiness/internal/domain/assessment"
	"github.com/evalix/ai-readiness/internal/domain/benchmark"
	"github.com/evalix/ai-readiness/internal/domain/notification"
	"github.com/evalix/ai-readiness/internal/domain/questions"
	"github.com/evalix/ai-readiness/internal/middleware"
)

// Service implements the assessment use-cases: answer upserts, demographics,
// final submission with scoring, results rendering and the contact/report flow.
type Service struct {
	Repo       domain.Repository
	Benchmarks benchmark.Repository
	Evaluator  *appeval.Service
	Mailer     notification.Sender // nil disables the report mail
	MailLog    notification.Repository
	Clock      application.Clock

	// SalesList receives a copy of every report mail.
	SalesList []string
	// ResultURL is where /submit redirects the client.
	ResultURL string
}

var ErrNoSession = errors.New("no session")

// AnswerSubmission is one (question, answer) pair of the final submit batch.
type AnswerSubmission struct {
	QuestionID int `json:"questionId"`
	AnswerID   int `json:"answerId"`
}

// ResolveSession returns the given session id or mints a fresh one.
// Minting never fails.
func (s *Service) ResolveSession(sessionID string) domain.SessionID {
	if strings.TrimSpace(sessionID) != "" {
		return domain.SessionID(sessionID)
	}
	return domain.SessionID(uuid.NewString())
}

// fetchOrCreate loads the session record, creating an empty one lazily on
// the first write.
func (s *Service) fetchOrCreate(ctx context.Context, id domain.SessionID) (*domain.Response, error) {
	rec, err := s.Repo.Get(ctx, id)
	if err == nil {
		return rec, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	now := s.Clock.Now()
	return &domain.Response{SessionID: id, CreatedAt: now, UpdatedAt: now}, nil
}

func (s *Service) save(ctx context.Context, rec *domain.Response) error {
	rec.Rev = uuid.NewString()
	rec.UpdatedAt = s.Clock.Now()
	return s.Repo.Save(ctx, rec)
}

// UpsertAnswer stores the score of the selected option in the question's
// slot, establishing the session on first call.
func (s *Service) UpsertAnswer(ctx context.Context, sessionID string, questionID, answerID int) (domain.SessionID, error) {
	value, err := answerValue(questionID, answerID)
	if err != nil {
		return "", err
	}
	id := s.ResolveSession(sessionID)
	rec, err := s.fetchOrCreate(ctx, id)
	if err != nil {
		return "", err
	}
	rec.SetAnswer(questionID, value)
	if err := s.save(ctx, rec); err != nil {
		return "", err
	}
	return id, nil
}

// answerValue resolves what gets written into the slot: the option score for
// scored questions, the option id for demographics.
func answerValue(questionID, answerID int) (int, error) {
	if questions.IsScored(questionID) {
		score, ok := questions.AnswerScore(questionID, answerID)
		if !ok {
			return 0, fmt.Errorf("unknown answer %d for question %d", answerID, questionID)
		}
		return score, nil
	}
	if _, ok := questions.AnswerLabel(questionID, answerID); !ok {
		return 0, fmt.Errorf("unknown answer %d for question %d", answerID, questionID)
	}
	return answerID, nil
}

// SaveDemographics stores the free-form sector / company-size selection.
func (s *Service) SaveDemographics(ctx context.Context, sessionID, sector, companySize string) (domain.SessionID, error) {
	id := s.ResolveSession(sessionID)
	rec, err := s.fetchOrCreate(ctx, id)
	if err != nil {
		return "", err
	}
	rec.Sector = sector
	rec.CompanySize = companySize
	if err := s.save(ctx, rec); err != nil {
		return "", err
	}
	return id, nil
}

// Submit writes the full answer batch, computes the three category averages
// and persists them. Returns the redirect target for the client.
func (s *Service) Submit(ctx context.Context, sessionID string, answers []AnswerSubmission) (domain.SessionID, string, error) {
	id := s.ResolveSession(sessionID)
	rec, err := s.fetchOrCreate(ctx, id)
	if err != nil {
		return "", "", err
	}
	for _, a := range answers {
		value, err := answerValue(a.QuestionID, a.AnswerID)
		if err != nil {
			return "", "", err
		}
		rec.SetAnswer(a.QuestionID, value)
	}
	scoreRecord(rec)
	if err := s.save(ctx, rec); err != nil {
		return "", "", err
	}
	return id, s.ResultURL, nil
}

// scoreRecord recomputes and stores all category averages that have data.
func scoreRecord(rec *domain.Response) {
	for i, cat := range questions.Categories {
		ids := cat.QuestionIDs[:]
		if domain.CategoryScored(rec, ids) {
			rec.SetAverage(i, domain.CategoryAverage(rec, ids))
		}
	}
}

// CategoryResult is one category line of the results payload.
type CategoryResult struct {
	Name       string  `json:"name"`
	Average    float64 `json:"average"`
	Scored     bool    `json:"scored"`
	Evaluation string  `json:"evaluation,omitempty"`
}

// Results is the payload behind GET /results.
type Results struct {
	UserChartData      []*int           `json:"userChartData"`
	BenchmarkChartData []float64        `json:"benchmarkChartData"`
	CategoryResults    []CategoryResult `json:"categoryResults"`
	Ambition           string           `json:"ambition"`
}

// Results renders the chart and evaluation payload for a session.
// Averages missing on the record (submitted before scoring ran) are
// recomputed and written back.
func (s *Service) Results(ctx context.Context, sessionID string) (*Results, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, ErrNoSession
	}
	rec, err := s.Repo.Get(ctx, domain.SessionID(sessionID))
	if err != nil {
		return nil, err
	}

	if s.lazyScore(ctx, rec) {
		log.Printf("results: recomputed averages for session=%s", sessionID)
	}

	bench, err := s.Benchmarks.Get(ctx)
	if err != nil {
		log.Printf("results: benchmark load failed, using defaults: %v", err)
		bench = benchmark.Default()
	}

	out := &Results{
		UserChartData:      make([]*int, questions.ScoredCount),
		BenchmarkChartData: bench.Values[:],
	}
	for i := 0; i < questions.ScoredCount; i++ {
		out.UserChartData[i] = rec.Answer(i)
	}

	for i, cat := range questions.Categories {
		cr := CategoryResult{Name: cat.Name}
		if avg := rec.Average(i); avg != nil && domain.CategoryScored(rec, cat.QuestionIDs[:]) {
			cr.Scored = true
			cr.Average = *avg
			cr.Evaluation = s.Evaluator.Evaluate(ctx, cat.Name, *avg, rawAnswers(rec, cat.QuestionIDs[:]))
		}
		out.CategoryResults = append(out.CategoryResults, cr)
	}

	if v := rec.Answer(questions.AmbitionQuestionID); v != nil {
		// slot holds the score; option ids are score-1 on scored questions
		if label, ok := questions.AnswerLabel(questions.AmbitionQuestionID, *v-1); ok {
			out.Ambition = label
		}
	}
	return out, nil
}

// lazyScore fills in averages missing on an already-answered record.
func (s *Service) lazyScore(ctx context.Context, rec *domain.Response) bool {
	dirty := false
	for i, cat := range questions.Categories {
		if rec.Average(i) == nil && domain.CategoryScored(rec, cat.QuestionIDs[:]) {
			rec.SetAverage(i, domain.CategoryAverage(rec, cat.QuestionIDs[:]))
			dirty = true
		}
	}
	if dirty {
		if err := s.save(ctx, rec); err != nil {
			log.Printf("results: persisting recomputed averages failed: %v", err)
		}
	}
	return dirty
}

func rawAnswers(rec *domain.Response, ids []int) []int {
	var out []int
	for _, id := range ids {
		if v := rec.Answer(id); v != nil {
			out = append(out, *v)
		}
	}
	return out
}

// SaveContact stores the contact fields and fires the report mail.
// The mail is best-effort: failures are logged (stdout + notification log)
// and never fail the save.
func (s *Service) SaveContact(ctx context.Context, sessionID, name, company, email string, optIn bool) error {
	if strings.TrimSpace(sessionID) == "" {
		return ErrNoSession
	}
	id := domain.SessionID(sessionID)
	rec, err := s.Repo.Get(ctx, id)
	if err != nil {
		return err
	}
	rec.Name = name
	rec.Company = company
	rec.Email = email
	rec.OptIn = optIn
	if err := s.save(ctx, rec); err != nil {
		return err
	}

	s.sendReport(ctx, rec)
	return nil
}

func (s *Service) sendReport(ctx context.Context, rec *domain.Response) {
	if s.Mailer == nil || strings.TrimSpace(rec.Email) == "" {
		return
	}

	rep := notification.Report{
		To:      rec.Email,
		Name:    rec.Name,
		Company: rec.Company,
		CopyTo:  s.SalesList,
	}
	for i, cat := range questions.Categories {
		if avg := rec.Average(i); avg != nil {
			rep.Categories = append(rep.Categories, notification.CategoryScore{
				Name:       cat.Name,
				Average:    *avg,
				Evaluation: s.Evaluator.Evaluate(ctx, cat.Name, *avg, rawAnswers(rec, cat.QuestionIDs[:])),
			})
		}
	}
	if v := rec.Answer(questions.AmbitionQuestionID); v != nil {
		if label, ok := questions.AnswerLabel(questions.AmbitionQuestionID, *v-1); ok {
			rep.Ambition = label
		}
	}

	entry := &notification.Entry{
		SessionID: string(rec.SessionID),
		Recipient: rec.Email,
		Status:    notification.StatusSent,
		CreatedAt: s.Clock.Now(),
	}
	if err := s.Mailer.SendReport(ctx, rep); err != nil {
		log.Printf("report mail failed for session=%s: %v", rec.SessionID, err)
		entry.Status = notification.StatusFailed
		entry.Detail = err.Error()
		middleware.IncrementReportsFailed()
	} else {
		middleware.IncrementReportsSent()
	}
	if s.MailLog != nil {
		if err := s.MailLog.Save(ctx, entry); err != nil {
			log.Printf("notification log write failed: %v", err)
		}
	}
}

// Replace overwrites a record after the caller read it; the rev token must
// still match what was read.
func (s *Service) Replace(ctx context.Context, rec *domain.Response) error {
	current, err := s.Repo.Get(ctx, rec.SessionID)
	if err != nil {
		return err
	}
	if current.Rev != rec.Rev {
		return domain.ErrRevMismatch
	}
	return s.save(ctx, rec)
}
