package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/marcostaira/travel-expense/internal/apperrors"
	"github.com/marcostaira/travel-expense/internal/core/domain"
	"github.com/marcostaira/travel-expense/internal/models"
	"github.com/marcostaira/travel-expense/internal/utils/mapping"
)

const projectColumns = `project_id, tenant_id, name, code, cost_center_id, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

// PgxProjectRepository implements the project repository interface using pgxpool.
// The partial unique index over (tenant_id, code) for active projects turns
// duplicate codes into apperrors.ErrDuplicate.
type PgxProjectRepository struct {
	BaseRepository
}

func newPgxProjectRepository(db *pgxpool.Pool) *PgxProjectRepository {
	return &PgxProjectRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

func scanProject(row pgx.Row) (*domain.Project, error) {
	var m models.Project
	err := row.Scan(
		&m.ProjectID, &m.TenantID, &m.Name, &m.Code, &m.CostCenterID, &m.IsActive,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return nil, translateError(err)
	}
	p := mapping.ToDomainProject(m)
	return &p, nil
}

// SaveProject persists a new project.
func (r *PgxProjectRepository) SaveProject(ctx context.Context, project domain.Project) error {
	m := mapping.ToModelProject(project)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO projects (`+projectColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);`,
		m.ProjectID, m.TenantID, m.Name, m.Code, m.CostCenterID, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save project: %w", translateError(err))
	}
	return nil
}

// UpdateProject persists changes to an existing project.
func (r *PgxProjectRepository) UpdateProject(ctx context.Context, project domain.Project) error {
	m := mapping.ToModelProject(project)
	tag, err := r.Pool.Exec(ctx, `
		UPDATE projects SET
			name = $1, cost_center_id = $2, is_active = $3,
			last_updated_at = $4, last_updated_by = $5
		WHERE tenant_id = $6 AND project_id = $7;`,
		m.Name, m.CostCenterID, m.IsActive,
		m.LastUpdatedAt, m.LastUpdatedBy,
		m.TenantID, m.ProjectID,
	)
	if err != nil {
		return fmt.Errorf("failed to update project: %w", translateError(err))
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindProjectByID retrieves a project regardless of its active flag.
func (r *PgxProjectRepository) FindProjectByID(ctx context.Context, tenantID, projectID string) (*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE tenant_id = $1 AND project_id = $2;`
	return scanProject(r.Pool.QueryRow(ctx, query, tenantID, projectID))
}

// FindActiveProjectByID retrieves a project only when it is active.
func (r *PgxProjectRepository) FindActiveProjectByID(ctx context.Context, tenantID, projectID string) (*domain.Project, error) {
	query := `SELECT ` + projectColumns + `
		FROM projects WHERE tenant_id = $1 AND project_id = $2 AND is_active = TRUE;`
	return scanProject(r.Pool.QueryRow(ctx, query, tenantID, projectID))
}

// ListActiveProjects retrieves the tenant's active projects ordered by code.
func (r *PgxProjectRepository) ListActiveProjects(ctx context.Context, tenantID string) ([]domain.Project, error) {
	query := `SELECT ` + projectColumns + `
		FROM projects WHERE tenant_id = $1 AND is_active = TRUE ORDER BY code;`

	rows, err := r.Pool.Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var projects []domain.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, *p)
	}
	return projects, rows.Err()
}
