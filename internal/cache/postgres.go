package cache

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/xaenox/concept-analysis/internal/models"
)

//go:embed migrations.sql
var migrations embed.FS

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// PostgresCache persists results across restarts. Same contract as
// MemoryCache, with the cache key as primary key.
type PostgresCache struct {
	db *sql.DB
}

func NewPostgresCache(config DatabaseConfig) (*PostgresCache, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		config.Host, config.Port, config.User, config.Password, config.DBName, config.SSLMode)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %v", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("error connecting to the database: %v", err)
	}

	cache := &PostgresCache{db: db}

	// Initialize database schema
	if err := cache.initializeSchema(); err != nil {
		return nil, fmt.Errorf("error initializing database schema: %v", err)
	}

	return cache, nil
}

func (c *PostgresCache) initializeSchema() error {
	migrationSQL, err := migrations.ReadFile("migrations.sql")
	if err != nil {
		return fmt.Errorf("error reading migrations file: %v", err)
	}

	_, err = c.db.Exec(string(migrationSQL))
	if err != nil {
		return fmt.Errorf("error executing migrations: %v", err)
	}

	return nil
}

func (c *PostgresCache) Get(ctx context.Context, key string) (*models.AnalysisResult, error) {
	query := `
		SELECT concept, total_score, feedback, unique_id
		FROM analysis_results
		WHERE cache_key = $1`

	result := &models.AnalysisResult{}
	err := c.db.QueryRowContext(ctx, query, key).Scan(
		&result.Concept,
		&result.TotalScore,
		&result.Feedback,
		&result.UniqueID,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error querying analysis result: %v", err)
	}

	return result, nil
}

func (c *PostgresCache) Put(ctx context.Context, key string, result *models.AnalysisResult) error {
	// Entries are write-once; a concurrent writer of the same key wins
	// harmlessly since both computed the same scores.
	query := `
		INSERT INTO analysis_results (cache_key, concept, total_score, feedback, unique_id)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (cache_key) DO NOTHING`

	_, err := c.db.ExecContext(ctx, query,
		key,
		result.Concept,
		result.TotalScore,
		result.Feedback,
		result.UniqueID,
	)
	if err != nil {
		return fmt.Errorf("error storing analysis result: %v", err)
	}

	return nil
}

func (c *PostgresCache) Close() error {
	return c.db.Close()
}
