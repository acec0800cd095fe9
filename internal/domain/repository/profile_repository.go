package repository

import (
	"context"

	"github.com/jhoicas/brecho-pos/internal/domain/entity"
)

// ProfileRepository define el puerto de persistencia para Profile (DIP).
type ProfileRepository interface {
	Create(ctx context.Context, profile *entity.Profile) error
	GetByID(ctx context.Context, id string) (*entity.Profile, error)
	GetByEmail(ctx context.Context, email string) (*entity.Profile, error)
	// List ordena por nombre.
	List(ctx context.Context) ([]*entity.Profile, error)
	SetActive(ctx context.Context, id string, active bool) error
	Delete(ctx context.Context, id string) error
	CountActiveAdmins(ctx context.Context) (int, error)
}
