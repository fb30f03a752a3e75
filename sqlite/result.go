package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/contactcrawl"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ contactcrawl.ResultService = (*ResultService)(nil)

// ResultService implements contactcrawl.ResultService using SQLite.
// Structured fields (page visits, emails, social media) are stored as JSON
// columns; they are only ever read back whole.
type ResultService struct {
	db *DB
}

// NewResultService creates a new ResultService.
func NewResultService(db *DB) *ResultService {
	return &ResultService{db: db}
}

// SaveResult stores a finalized crawl result, assigning an ID if absent.
func (s *ResultService) SaveResult(ctx context.Context, result *contactcrawl.SiteResult) error {
	if result.URL == "" {
		return contactcrawl.Errorf(contactcrawl.EINVALID, "result URL required")
	}

	if result.ID == "" {
		result.ID = uuid.New().String()
	}
	if result.CreatedAt.IsZero() {
		result.CreatedAt = time.Now().UTC()
	}

	pages, err := json.Marshal(result.PagesVisited)
	if err != nil {
		return fmt.Errorf("failed to encode pages_visited: %w", err)
	}
	emails, err := json.Marshal(result.Emails)
	if err != nil {
		return fmt.Errorf("failed to encode emails: %w", err)
	}
	social, err := json.Marshal(result.SocialMedia)
	if err != nil {
		return fmt.Errorf("failed to encode social_media: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO results (id, batch_id, url, name, status, scraping_time, pages_visited, emails, social_media, error, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			batch_id = excluded.batch_id,
			url = excluded.url,
			name = excluded.name,
			status = excluded.status,
			scraping_time = excluded.scraping_time,
			pages_visited = excluded.pages_visited,
			emails = excluded.emails,
			social_media = excluded.social_media,
			error = excluded.error
	`, result.ID, result.BatchID, result.URL, result.Name, string(result.Status), result.ScrapingTime,
		string(pages), string(emails), string(social), result.Error,
		result.CreatedAt.Format(time.RFC3339))

	return err
}

// FindResultByID retrieves a result by ID.
func (s *ResultService) FindResultByID(ctx context.Context, id string) (*contactcrawl.SiteResult, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, batch_id, url, name, status, scraping_time, pages_visited, emails, social_media, error, created_at
		FROM results
		WHERE id = ?
	`, id)

	result, err := scanResult(row.Scan)
	if err == sql.ErrNoRows {
		return nil, contactcrawl.Errorf(contactcrawl.ENOTFOUND, "result not found")
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

// FindResults retrieves results matching the filter, newest first.
func (s *ResultService) FindResults(ctx context.Context, filter contactcrawl.ResultFilter) ([]*contactcrawl.SiteResult, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, batch_id, url, name, status, scraping_time, pages_visited, emails, social_media, error, created_at FROM results WHERE 1=1")

	if filter.BatchID != nil {
		query.WriteString(" AND batch_id = ?")
		args = append(args, *filter.BatchID)
	}
	if filter.Status != nil {
		query.WriteString(" AND status = ?")
		args = append(args, string(*filter.Status))
	}

	query.WriteString(" ORDER BY created_at DESC, id")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []*contactcrawl.SiteResult
	for rows.Next() {
		result, err := scanResult(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}

	return results, rows.Err()
}

// DeleteResultsByBatch removes all results for a batch.
func (s *ResultService) DeleteResultsByBatch(ctx context.Context, batchID string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM results WHERE batch_id = ?", batchID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return contactcrawl.Errorf(contactcrawl.ENOTFOUND, "no results for batch")
	}

	return nil
}

// scanResult decodes one results row from a Scan function.
func scanResult(scan func(dest ...any) error) (*contactcrawl.SiteResult, error) {
	var result contactcrawl.SiteResult
	var status, pages, emails, social, createdAt string

	if err := scan(&result.ID, &result.BatchID, &result.URL, &result.Name, &status, &result.ScrapingTime,
		&pages, &emails, &social, &result.Error, &createdAt); err != nil {
		return nil, err
	}

	result.Status = contactcrawl.SiteStatus(status)
	if err := json.Unmarshal([]byte(pages), &result.PagesVisited); err != nil {
		return nil, fmt.Errorf("failed to decode pages_visited: %w", err)
	}
	if err := json.Unmarshal([]byte(emails), &result.Emails); err != nil {
		return nil, fmt.Errorf("failed to decode emails: %w", err)
	}
	if err := json.Unmarshal([]byte(social), &result.SocialMedia); err != nil {
		return nil, fmt.Errorf("failed to decode social_media: %w", err)
	}

	var err error
	result.CreatedAt, err = parseRFC3339(createdAt, "created_at")
	if err != nil {
		return nil, err
	}

	return &result, nil
}
