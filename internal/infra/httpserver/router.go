package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	appadmin "github.com/evalix/ai-readiness/internal/application/admin"
	appassess "github.com/evalix/ai-readiness/internal/application/assessment"
	appauth "github.com/evalix/ai-readiness/internal/application/auth"
	domain "github.com/evalix/ai-readiness/internal/domain/assessment"
	"github.com/evalix/ai-readiness/internal/domain/questions"
	"github.com/evalix/ai-readiness/internal/middleware"
)

type Router struct {
	assessSvc *appassess.Service
	adminSvc  *appadmin.Service
	authSvc   *appauth.Service
	validate  *validator.Validate
}

func NewRouter(assessSvc *appassess.Service, adminSvc *appadmin.Service, authSvc *appauth.Service) http.Handler {
	r := &Router{
		assessSvc: assessSvc,
		adminSvc:  adminSvc,
		authSvc:   authSvc,
		validate:  validator.New(),
	}
	mux := chi.NewRouter()

	mux.Get("/metrics", middleware.MetricsHandler)

	mux.Get("/question/count", r.wrap(r.handleQuestionCount))
	mux.Get("/question/{id}", r.wrap(r.handleQuestion))
	mux.Post("/answer", r.wrap(r.handleAnswer))
	mux.Post("/demographics", r.wrap(r.handleDemographics))
	mux.Post("/submit", r.wrap(r.handleSubmit))
	mux.Get("/results", r.wrap(r.handleResults))
	mux.Post("/contact", r.wrap(r.handleContact))

	mux.Route("/admin", func(rt chi.Router) {
		rt.Post("/authenticate", r.wrap(r.handleAuthenticate))

		rt.Group(func(prot chi.Router) {
			prot.Use(middleware.AdminAuth(authSvc))
			prot.Get("/assessments", r.wrap(r.handleAdminList))
			prot.Get("/assessments/export", r.wrap(r.handleAdminExport))
			prot.Post("/assessments/export", r.wrap(r.handleAdminArchive))
			prot.Delete("/assessments/{id}", r.wrap(r.handleAdminDelete))
			prot.Get("/benchmarks", r.wrap(r.handleBenchmarksGet))
			prot.Post("/benchmarks", r.wrap(r.handleBenchmarksSave))
			prot.Get("/notifications", r.wrap(r.handleNotifications))
		})
	})

	return mux
}

// badRequest marks validation failures so wrap maps them to 400.
type badRequest struct{ msg string }

func (e badRequest) Error() string { return e.msg }

type handlerFunc func(http.ResponseWriter, *http.Request) error

// wrap translates handler errors into the response taxonomy: not-found ->
// 404, validation -> 400, bad credentials -> 401, everything upstream ->
// 500 with a generic message (details stay in the server log).
func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		err := h(w, req)
		if err == nil {
			return
		}
		switch {
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusNotFound, "not found")
		case errors.Is(err, appassess.ErrNoSession):
			writeError(w, http.StatusBadRequest, "no session")
		case errors.Is(err, appauth.ErrInvalidCredentials), errors.Is(err, appauth.ErrInvalidToken):
			writeError(w, http.StatusUnauthorized, "unauthorized")
		default:
			var br badRequest
			var ve validator.ValidationErrors
			if errors.As(err, &br) {
				writeError(w, http.StatusBadRequest, br.msg)
				return
			}
			if errors.As(err, &ve) {
				writeError(w, http.StatusBadRequest, fieldMessages(ve))
				return
			}
			writeError(w, http.StatusInternalServerError, "internal error")
		}
	}
}

func fieldMessages(ve validator.ValidationErrors) string {
	var parts []string
	for _, fe := range ve {
		parts = append(parts, fmt.Sprintf("%s: failed %s validation", fe.Field(), fe.Tag()))
	}
	return strings.Join(parts, "; ")
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, v any) error {
	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(v)
}

// sessionFrom reads the session token from body field, header or query.
func sessionFrom(req *http.Request, bodyValue string) string {
	if bodyValue != "" {
		return bodyValue
	}
	if v := req.Header.Get("X-Session-Id"); v != "" {
		return v
	}
	return req.URL.Query().Get("sessionId")
}

// GET /question/count
func (r *Router) handleQuestionCount(w http.ResponseWriter, req *http.Request) error {
	return writeJSON(w, map[string]int{"count": questions.Count()})
}

// GET /question/{id}
func (r *Router) handleQuestion(w http.ResponseWriter, req *http.Request) error {
	id, err := strconv.Atoi(chi.URLParam(req, "id"))
	if err != nil {
		return badRequest{"question id must be an integer"}
	}
	q, ok := questions.ByID(id)
	if !ok {
		return domain.ErrNotFound
	}
	return writeJSON(w, q)
}

type answerRequest struct {
	QuestionID int    `json:"questionId"`
	AnswerID   int    `json:"answerId"`
	SessionID  string `json:"sessionId,omitempty"`
}

// POST /answer
func (r *Router) handleAnswer(w http.ResponseWriter, req *http.Request) error {
	var body answerRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return badRequest{"invalid json body"}
	}
	if err := middleware.ValidateAnswerID(body.QuestionID, body.AnswerID); err != nil {
		return badRequest{err.Error()}
	}
	session := sessionFrom(req, body.SessionID)
	if err := middleware.ValidateSessionID(session); err != nil {
		return badRequest{err.Error()}
	}

	fresh := session == ""
	id, err := r.assessSvc.UpsertAnswer(req.Context(), session, body.QuestionID, body.AnswerID)
	if err != nil {
		return err
	}
	if fresh {
		middleware.IncrementAssessmentsStarted()
	}
	return writeJSON(w, map[string]string{"sessionId": string(id)})
}

type demographicsRequest struct {
	Sector      string `json:"sector" validate:"required"`
	CompanySize string `json:"companySize" validate:"required"`
	SessionID   string `json:"sessionId,omitempty"`
}

// POST /demographics
func (r *Router) handleDemographics(w http.ResponseWriter, req *http.Request) error {
	var body demographicsRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return badRequest{"invalid json body"}
	}
	if err := r.validate.Struct(body); err != nil {
		return err
	}
	session := sessionFrom(req, body.SessionID)
	if err := middleware.ValidateSessionID(session); err != nil {
		return badRequest{err.Error()}
	}

	id, err := r.assessSvc.SaveDemographics(req.Context(),
		session,
		middleware.SanitizeString(body.Sector),
		middleware.SanitizeString(body.CompanySize),
	)
	if err != nil {
		return err
	}
	return writeJSON(w, map[string]any{"success": true, "sessionId": string(id)})
}

type submitItem struct {
	QuestionID int    `json:"questionId"`
	AnswerID   int    `json:"answerId"`
	SessionID  string `json:"sessionId,omitempty"`
}

// POST /submit
func (r *Router) handleSubmit(w http.ResponseWriter, req *http.Request) error {
	var body []submitItem
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return badRequest{"invalid json body"}
	}
	if len(body) == 0 {
		return badRequest{"empty submission"}
	}

	session := ""
	answers := make([]appassess.AnswerSubmission, 0, len(body))
	for _, item := range body {
		if err := middleware.ValidateAnswerID(item.QuestionID, item.AnswerID); err != nil {
			return badRequest{err.Error()}
		}
		if session == "" {
			session = item.SessionID
		}
		answers = append(answers, appassess.AnswerSubmission{QuestionID: item.QuestionID, AnswerID: item.AnswerID})
	}
	session = sessionFrom(req, session)
	if err := middleware.ValidateSessionID(session); err != nil {
		return badRequest{err.Error()}
	}

	_, redirect, err := r.assessSvc.Submit(req.Context(), session, answers)
	if err != nil {
		return err
	}
	middleware.IncrementAssessmentsSubmitted()
	return writeJSON(w, map[string]string{"redirectUrl": redirect})
}

// GET /results
func (r *Router) handleResults(w http.ResponseWriter, req *http.Request) error {
	session := sessionFrom(req, "")
	results, err := r.assessSvc.Results(req.Context(), session)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// a token we never issued is the same as no session here
			return appassess.ErrNoSession
		}
		return err
	}
	return writeJSON(w, results)
}

type contactForm struct {
	Name    string `validate:"required"`
	Company string
	Email   string `validate:"required,email"`
	OptIn   bool
}

// POST /contact (form-encoded)
func (r *Router) handleContact(w http.ResponseWriter, req *http.Request) error {
	if err := req.ParseForm(); err != nil {
		return badRequest{"invalid form body"}
	}
	form := contactForm{
		Name:    middleware.SanitizeString(req.PostFormValue("name")),
		Company: middleware.SanitizeString(req.PostFormValue("company")),
		Email:   strings.TrimSpace(req.PostFormValue("email")),
		OptIn:   req.PostFormValue("optIn") == "true" || req.PostFormValue("optIn") == "on",
	}
	if err := r.validate.Struct(form); err != nil {
		return err
	}
	session := sessionFrom(req, req.PostFormValue("sessionId"))

	if err := r.assessSvc.SaveContact(req.Context(), session, form.Name, form.Company, form.Email, form.OptIn); err != nil {
		return err
	}
	return writeJSON(w, map[string]string{"message": "thank you, your report is on its way"})
}

// POST /admin/authenticate
func (r *Router) handleAuthenticate(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return badRequest{"invalid json body"}
	}
	token, err := r.authSvc.Login(body.Password)
	if err != nil {
		return err
	}
	return writeJSON(w, map[string]string{"token": token})
}

func listOptions(req *http.Request) (appadmin.ListOptions, error) {
	opts := appadmin.ListOptions{
		SortBy: req.URL.Query().Get("sort"),
		Desc:   req.URL.Query().Get("dir") == "desc",
	}
	if err := middleware.ValidateSortField(opts.SortBy); err != nil {
		return opts, badRequest{err.Error()}
	}
	if v := req.URL.Query().Get("answered"); v != "" {
		q, err := strconv.Atoi(v)
		if err != nil {
			return opts, badRequest{"answered must be a question id"}
		}
		if err := middleware.ValidateQuestionID(q); err != nil {
			return opts, badRequest{err.Error()}
		}
		opts.AnsweredQuestion = &q
	}
	opts.WithContact = req.URL.Query().Get("withContact") == "true"
	return opts, nil
}

// GET /admin/assessments
func (r *Router) handleAdminList(w http.ResponseWriter, req *http.Request) error {
	opts, err := listOptions(req)
	if err != nil {
		return err
	}
	list, err := r.adminSvc.List(req.Context(), opts)
	if err != nil {
		return err
	}
	if list == nil {
		list = []*domain.Response{}
	}
	return writeJSON(w, list)
}

// GET /admin/assessments/export
func (r *Router) handleAdminExport(w http.ResponseWriter, req *http.Request) error {
	opts, err := listOptions(req)
	if err != nil {
		return err
	}
	data, err := r.adminSvc.ExportCSV(req.Context(), opts)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="assessments.csv"`)
	_, err = w.Write(data)
	return err
}

// POST /admin/assessments/export
func (r *Router) handleAdminArchive(w http.ResponseWriter, req *http.Request) error {
	url, err := r.adminSvc.ArchiveCSV(req.Context())
	if err != nil {
		return err
	}
	return writeJSON(w, map[string]string{"url": url})
}

// DELETE /admin/assessments/{id}
func (r *Router) handleAdminDelete(w http.ResponseWriter, req *http.Request) error {
	id := chi.URLParam(req, "id")
	found, err := r.adminSvc.Delete(req.Context(), id)
	if err != nil {
		return err
	}
	if !found {
		return domain.ErrNotFound
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

// GET /admin/benchmarks
func (r *Router) handleBenchmarksGet(w http.ResponseWriter, req *http.Request) error {
	cfg, err := r.adminSvc.GetBenchmarks(req.Context())
	if err != nil {
		return err
	}
	return writeJSON(w, cfg)
}

// POST /admin/benchmarks
func (r *Router) handleBenchmarksSave(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		Values [9]float64 `json:"values"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return badRequest{"invalid json body"}
	}
	cfg, err := r.adminSvc.SaveBenchmarks(req.Context(), body.Values)
	if err != nil {
		if errors.Is(err, appadmin.ErrInvalidBenchmark) {
			return badRequest{err.Error()}
		}
		return err
	}
	return writeJSON(w, cfg)
}

// GET /admin/notifications?sessionId=&limit=
func (r *Router) handleNotifications(w http.ResponseWriter, req *http.Request) error {
	session := req.URL.Query().Get("sessionId")
	if session == "" {
		return badRequest{"sessionId is required"}
	}
	limit, _ := strconv.Atoi(req.URL.Query().Get("limit"))
	entries, err := r.adminSvc.Notifications(req.Context(), session, middleware.ValidateLimit(limit))
	if err != nil {
		return err
	}
	return writeJSON(w, entries)
}
