package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	RequestBody  string
	ResponseBody string
	ErrorMessage string
}

// LLMEvent is a stored LLM request event.
type LLMEvent struct {
	ID        int
	Timestamp time.Time
	RunID     string
	LLMRequestEventData
}

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int    // max results, newest first (0 = unlimited)
	Purpose string // filter by purpose label
	RunID   string // filter by pipeline run
}

// PurposeUsage aggregates token usage for one purpose label.
type PurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// ModelUsage aggregates token usage for one model.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo provides append and query access to LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error)

	// GetLLMEvent returns one event by ID, or nil if it doesn't exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMEvent, error)

	// LLMUsageByPurpose aggregates usage across all runs per purpose.
	LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error)

	// LLMUsageByModel aggregates usage across all runs per model.
	LLMUsageByModel(ctx context.Context) ([]ModelUsage, error)
}

type eventRepo struct {
	db    *sql.DB
	runID string
}

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO llm_request_events
		(timestamp, run_id, provider, model, purpose, input_tokens, output_tokens,
		 latency_ms, success, request_body, response_body, error_message)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		time.Now().UTC(),
		r.runID,
		data.Provider,
		data.Model,
		data.Purpose,
		data.InputTokens,
		data.OutputTokens,
		data.LatencyMs,
		data.Success,
		data.RequestBody,
		data.ResponseBody,
		data.ErrorMessage,
	)
	if err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}
	return nil
}

const eventColumns = `id, timestamp, run_id, provider, model, purpose,
	input_tokens, output_tokens, latency_ms, success,
	request_body, response_body, error_message`

func (r *eventRepo) QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error) {
	var conds []string
	var args []any
	if opts.Purpose != "" {
		conds = append(conds, "purpose = ?")
		args = append(args, opts.Purpose)
	}
	if opts.RunID != "" {
		conds = append(conds, "run_id = ?")
		args = append(args, opts.RunID)
	}

	q := "SELECT " + eventColumns + " FROM llm_request_events"
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY id DESC"
	if opts.Limit > 0 {
		q += " LIMIT ?"
		args = append(args, opts.Limit)
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var events []LLMEvent
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, *e)
	}
	return events, rows.Err()
}

func (r *eventRepo) GetLLMEvent(ctx context.Context, id int) (*LLMEvent, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+eventColumns+" FROM llm_request_events WHERE id = ?", id)

	e, err := scanEvent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return e, err
}

func (r *eventRepo) LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT purpose, COUNT(*),
		COALESCE(SUM(input_tokens), 0), COALESCE(SUM(output_tokens), 0),
		CAST(COALESCE(AVG(latency_ms), 0) AS INTEGER)
		FROM llm_request_events GROUP BY purpose ORDER BY purpose`)
	if err != nil {
		return nil, fmt.Errorf("query usage by purpose: %w", err)
	}
	defer rows.Close()

	var usage []PurposeUsage
	for rows.Next() {
		var u PurposeUsage
		if err := rows.Scan(&u.Purpose, &u.Calls, &u.InputTokens, &u.OutputTokens, &u.AvgLatencyMs); err != nil {
			return nil, fmt.Errorf("scan usage row: %w", err)
		}
		usage = append(usage, u)
	}
	return usage, rows.Err()
}

func (r *eventRepo) LLMUsageByModel(ctx context.Context) ([]ModelUsage, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT model, COUNT(*),
		COALESCE(SUM(input_tokens), 0), COALESCE(SUM(output_tokens), 0)
		FROM llm_request_events GROUP BY model ORDER BY model`)
	if err != nil {
		return nil, fmt.Errorf("query usage by model: %w", err)
	}
	defer rows.Close()

	var usage []ModelUsage
	for rows.Next() {
		var u ModelUsage
		if err := rows.Scan(&u.Model, &u.Calls, &u.InputTokens, &u.OutputTokens); err != nil {
			return nil, fmt.Errorf("scan usage row: %w", err)
		}
		usage = append(usage, u)
	}
	return usage, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEvent(s scanner) (*LLMEvent, error) {
	var e LLMEvent
	err := s.Scan(
		&e.ID,
		&e.Timestamp,
		&e.RunID,
		&e.Provider,
		&e.Model,
		&e.Purpose,
		&e.InputTokens,
		&e.OutputTokens,
		&e.LatencyMs,
		&e.Success,
		&e.RequestBody,
		&e.ResponseBody,
		&e.ErrorMessage,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan event: %w", err)
	}
	return &e, nil
}
