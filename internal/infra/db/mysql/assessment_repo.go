package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	domain "github.com/evalix/ai-readiness/internal/domain/assessment"
)

type AssessmentRepository struct {
	db *sql.DB
}

func NewAssessmentRepository(db *sql.DB) *AssessmentRepository {
	return &AssessmentRepository{db: db}
}

const responseColumns = `
session_id,
question0_answer, question1_answer, question2_answer, question3_answer,
question4_answer, question5_answer, question6_answer, question7_answer,
question8_answer, question9_answer, question10_answer,
strategy_average, application_average, culture_average,
name, company, email, sector, company_size, opt_in,
rev, created_at, updated_at`

// Save insert/update the response record (last write wins per session)
func (r *AssessmentRepository) Save(ctx context.Context, resp *domain.Response) error {
	const q = `
INSERT INTO assessment_responses (` + responseColumns + `)
VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)
ON DUPLICATE KEY UPDATE
 question0_answer=VALUES(question0_answer), question1_answer=VALUES(question1_answer),
 question2_answer=VALUES(question2_answer), question3_answer=VALUES(question3_answer),
 question4_answer=VALUES(question4_answer), question5_answer=VALUES(question5_answer),
 question6_answer=VALUES(question6_answer), question7_answer=VALUES(question7_answer),
 question8_answer=VALUES(question8_answer), question9_answer=VALUES(question9_answer),
 question10_answer=VALUES(question10_answer),
 strategy_average=VALUES(strategy_average),
 application_average=VALUES(application_average),
 culture_average=VALUES(culture_average),
 name=VALUES(name), company=VALUES(company), email=VALUES(email),
 sector=VALUES(sector), company_size=VALUES(company_size), opt_in=VALUES(opt_in),
 rev=VALUES(rev), updated_at=VALUES(updated_at);
`
	created := resp.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	updated := resp.UpdatedAt
	if updated.IsZero() {
		updated = created
	}

	args := []any{string(resp.SessionID)}
	for i := 0; i < domain.SlotCount; i++ {
		args = append(args, nullInt(resp.Answer(i)))
	}
	args = append(args,
		nullFloat(resp.StrategyAverage), nullFloat(resp.ApplicationAverage), nullFloat(resp.CultureAverage),
		resp.Name, resp.Company, resp.Email, resp.Sector, resp.CompanySize, resp.OptIn,
		resp.Rev, created, updated,
	)

	_, err := r.db.ExecContext(ctx, q, args...)
	return err
}

// Get point lookup by session id
func (r *AssessmentRepository) Get(ctx context.Context, id domain.SessionID) (*domain.Response, error) {
	const q = `
SELECT ` + responseColumns + `
FROM assessment_responses
WHERE session_id=? LIMIT 1;`
	resp, err := scanResponse(r.db.QueryRowContext(ctx, q, string(id)))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading assessment %s: %w", id, err)
	}
	return resp, nil
}

// Delete removes the record; found=false when it did not exist
func (r *AssessmentRepository) Delete(ctx context.Context, id domain.SessionID) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM assessment_responses WHERE session_id=?;`, string(id))
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ListAll full scan for the admin view, newest first
func (r *AssessmentRepository) ListAll(ctx context.Context) ([]*domain.Response, error) {
	const q = `
SELECT ` + responseColumns + `
FROM assessment_responses
ORDER BY created_at DESC;`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Response
	for rows.Next() {
		resp, err := scanResponse(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, resp)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanResponse(row rowScanner) (*domain.Response, error) {
	var resp domain.Response
	var sid string
	var answers [domain.SlotCount]sql.NullInt64
	var strategy, app, culture sql.NullFloat64

	dest := []any{&sid}
	for i := range answers {
		dest = append(dest, &answers[i])
	}
	dest = append(dest,
		&strategy, &app, &culture,
		&resp.Name, &resp.Company, &resp.Email, &resp.Sector, &resp.CompanySize, &resp.OptIn,
		&resp.Rev, &resp.CreatedAt, &resp.UpdatedAt,
	)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	resp.SessionID = domain.SessionID(sid)
	for i, a := range answers {
		if v := intPtr(a); v != nil {
			resp.SetAnswer(i, *v)
		}
	}
	resp.StrategyAverage = floatPtr(strategy)
	resp.ApplicationAverage = floatPtr(app)
	resp.CultureAverage = floatPtr(culture)
	return &resp, nil
}
