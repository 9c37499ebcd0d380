// database/solves.go
package database

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"sync"
	"time"

	"vulnops/models"

	"github.com/google/uuid"
)

// SolveRepository admin panelindeki çözüm geçmişini tutar.
type SolveRepository interface {
	// Record çözümü kaydeder; challenge için ilk çözümse FirstBlood işaretlenir.
	Record(ctx context.Context, s models.Solve) (models.Solve, error)
	Recent(ctx context.Context, limit int) ([]models.Solve, error)
	Count(ctx context.Context) (int, error)
}

type MemorySolveRepository struct {
	mu     sync.Mutex
	solves []models.Solve
}

func NewMemorySolveRepository(seed ...models.Solve) *MemorySolveRepository {
	return &MemorySolveRepository{solves: append([]models.Solve(nil), seed...)}
}

func (m *MemorySolveRepository) Record(ctx context.Context, s models.Solve) (models.Solve, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	fill(&s)
	s.FirstBlood = true
	for _, prev := range m.solves {
		if prev.ChallengeID == s.ChallengeID {
			s.FirstBlood = false
			break
		}
	}
	m.solves = append(m.solves, s)
	return s, nil
}

func (m *MemorySolveRepository) Recent(ctx context.Context, limit int) ([]models.Solve, error) {
	m.mu.Lock()
	out := append([]models.Solve{}, m.solves...)
	m.mu.Unlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MemorySolveRepository) Count(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.solves), nil
}

type PostgresSolveRepository struct {
	db *sql.DB
}

func NewPostgresSolveRepository(db *sql.DB) *PostgresSolveRepository {
	return &PostgresSolveRepository{db: db}
}

func (p *PostgresSolveRepository) Record(ctx context.Context, s models.Solve) (models.Solve, error) {
	fill(&s)

	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Solve{}, err
	}
	defer tx.Rollback()

	// Aynı challenge için eşzamanlı ilk çözümleri sıraya sok
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, s.ChallengeID); err != nil {
		return models.Solve{}, fmt.Errorf("kilit alınamadı: %w", err)
	}

	var exists bool
	err = tx.QueryRowContext(ctx, `
        SELECT EXISTS(SELECT 1 FROM solves WHERE challenge_id = $1)
    `, s.ChallengeID).Scan(&exists)
	if err != nil {
		return models.Solve{}, err
	}
	s.FirstBlood = !exists

	_, err = tx.ExecContext(ctx, `
        INSERT INTO solves (id, user_id, username, challenge_id, challenge_title, points, first_blood, ip_address, solved_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
    `, s.ID, s.UserID, s.Username, s.ChallengeID, s.ChallengeTitle, s.Points, s.FirstBlood, s.IP, s.Timestamp)
	if err != nil {
		return models.Solve{}, fmt.Errorf("çözüm kaydedilemedi: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return models.Solve{}, err
	}
	return s, nil
}

func (p *PostgresSolveRepository) Recent(ctx context.Context, limit int) ([]models.Solve, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := p.db.QueryContext(ctx, `
        SELECT id, user_id, username, challenge_id, challenge_title, points,
               first_blood, COALESCE(ip_address, ''), solved_at
        FROM solves
        ORDER BY solved_at DESC
        LIMIT $1
    `, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	solves := []models.Solve{}
	for rows.Next() {
		var s models.Solve
		if err := rows.Scan(&s.ID, &s.UserID, &s.Username, &s.ChallengeID, &s.ChallengeTitle,
			&s.Points, &s.FirstBlood, &s.IP, &s.Timestamp); err != nil {
			return nil, err
		}
		solves = append(solves, s)
	}
	return solves, rows.Err()
}

func (p *PostgresSolveRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := p.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM solves").Scan(&n)
	return n, err
}

func fill(s *models.Solve) {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.Timestamp.IsZero() {
		s.Timestamp = time.Now().UTC()
	}
}

// SeedSolves admin sayfasındaki örnek çözüm geçmişi.
func SeedSolves() []models.Solve {
	at := func(s string) time.Time {
		t, _ := time.Parse(time.RFC3339, s)
		return t
	}
	return []models.Solve{
		{ID: "1", UserID: "user123", Username: "hacker", ChallengeID: "1", ChallengeTitle: "Web Injection 101", Points: 100, Timestamp: at("2025-04-05T14:23:00Z"), IP: "192.168.1.105"},
		{ID: "2", UserID: "user456", Username: "security_ninja", ChallengeID: "2", ChallengeTitle: "Buffer Overflow Basics", Points: 250, FirstBlood: true, Timestamp: at("2025-04-04T16:45:00Z"), IP: "192.168.1.102"},
		{ID: "3", UserID: "admin123", Username: "admin", ChallengeID: "1", ChallengeTitle: "Web Injection 101", Points: 100, FirstBlood: true, Timestamp: at("2025-04-03T09:15:00Z"), IP: "192.168.1.100"},
	}
}
