package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/brecho-pos/internal/domain"
	"github.com/jhoicas/brecho-pos/internal/domain/entity"
	"github.com/jhoicas/brecho-pos/internal/domain/repository"
)

var _ repository.ProfileRepository = (*ProfileRepo)(nil)

const profileColumns = `id, name, email, password_hash, role, active, created_at`

// ProfileRepo implementación de ProfileRepository (usable con pool o tx).
type ProfileRepo struct {
	q Querier
}

// NewProfileRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProfileRepository(q Querier) *ProfileRepo {
	return &ProfileRepo{q: q}
}

// Create persiste un nuevo perfil. Email repetido → ErrDuplicate.
func (r *ProfileRepo) Create(ctx context.Context, p *entity.Profile) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO profiles (`+profileColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		p.ID, p.Name, p.Email, p.PasswordHash, string(p.Role), p.Active, p.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert profile: %w", translate(err))
	}
	return nil
}

func scanProfile(row pgx.Row) (*entity.Profile, error) {
	var (
		p    entity.Profile
		role string
	)
	if err := row.Scan(&p.ID, &p.Name, &p.Email, &p.PasswordHash, &role, &p.Active, &p.CreatedAt); err != nil {
		return nil, err
	}
	p.Role = entity.Role(role)
	return &p, nil
}

func (r *ProfileRepo) getOne(ctx context.Context, where string, arg any) (*entity.Profile, error) {
	p, err := scanProfile(r.q.QueryRow(ctx, `SELECT `+profileColumns+` FROM profiles WHERE `+where, arg))
	if err != nil {
		if isMissing(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get profile: %w", translate(err))
	}
	return p, nil
}

// GetByID obtiene un perfil por ID.
func (r *ProfileRepo) GetByID(ctx context.Context, id string) (*entity.Profile, error) {
	return r.getOne(ctx, `id = $1`, id)
}

// GetByEmail obtiene un perfil por email exacto.
func (r *ProfileRepo) GetByEmail(ctx context.Context, email string) (*entity.Profile, error) {
	return r.getOne(ctx, `email = $1`, email)
}

// List ordena por nombre.
func (r *ProfileRepo) List(ctx context.Context) ([]*entity.Profile, error) {
	rows, err := r.q.Query(ctx, `SELECT `+profileColumns+` FROM profiles ORDER BY lower(name)`)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", translate(err))
	}
	defer rows.Close()
	var list []*entity.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan profile: %w", translate(err))
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// SetActive activa o desactiva un perfil.
func (r *ProfileRepo) SetActive(ctx context.Context, id string, active bool) error {
	tag, err := r.q.Exec(ctx, `UPDATE profiles SET active = $1 WHERE id = $2`, active, id)
	if err != nil {
		return fmt.Errorf("update profile: %w", translate(err))
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un perfil.
func (r *ProfileRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM profiles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete profile: %w", translate(err))
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CountActiveAdmins cuenta los ADMIN activos. Bloquea sus filas dentro de una transacción
// para que dos bajas concurrentes no dejen la tienda sin administradores.
func (r *ProfileRepo) CountActiveAdmins(ctx context.Context) (int, error) {
	rows, err := r.q.Query(ctx, `SELECT id FROM profiles WHERE role = 'ADMIN' AND active FOR UPDATE`)
	if err != nil {
		return 0, fmt.Errorf("count admins: %w", translate(err))
	}
	defer rows.Close()
	n := 0
	for rows.Next() {
		n++
	}
	return n, rows.Err()
}
