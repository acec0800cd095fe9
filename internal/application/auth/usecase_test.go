package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/brecho-pos/internal/application/auth"
	"github.com/jhoicas/brecho-pos/internal/application/dto"
	"github.com/jhoicas/brecho-pos/internal/domain"
	"github.com/jhoicas/brecho-pos/internal/infrastructure/memory"
	pkgjwt "github.com/jhoicas/brecho-pos/pkg/jwt"
)

const testSecret = "test-secret"

func newUseCase() *auth.AuthUseCase {
	store := memory.New()
	return auth.NewAuthUseCase(store.Repos().Profiles, store, auth.JWTConfig{Secret: testSecret, ExpMinutes: 60, Issuer: "test"}, nil)
}

func addProfile(t *testing.T, uc *auth.AuthUseCase, email, role string) *dto.ProfileResponse {
	t.Helper()
	p, err := uc.AddProfile(context.Background(), dto.CreateProfileRequest{Name: email, Email: email, Password: "segredo", Role: role})
	require.NoError(t, err)
	return p
}

// ──────────────────────────────────────────────────────────────────────────────
// Authenticate / Login
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthenticate_SinCoincidenciaDevuelveNil(t *testing.T) {
	uc := newUseCase()
	addProfile(t, uc, "ana@loja.com", "ADMIN")

	p, err := uc.Authenticate(context.Background(), "ana@loja.com", "errada")
	require.NoError(t, err)
	assert.Nil(t, p)

	p, err = uc.Authenticate(context.Background(), "nadie@loja.com", "segredo")
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestLogin_CuentaDesactivadaDistintaDeCredencialesIncorrectas(t *testing.T) {
	uc := newUseCase()
	ctx := context.Background()
	admin := addProfile(t, uc, "ana@loja.com", "ADMIN")
	caixa := addProfile(t, uc, "bia@loja.com", "CAIXA")
	_, err := uc.ToggleStatus(ctx, admin.ID, caixa.ID)
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "bia@loja.com", Password: "segredo"})
	assert.ErrorIs(t, err, domain.ErrAccountDisabled)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "bia@loja.com", Password: "outra"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLogin_GeneraTokenConRol(t *testing.T) {
	uc := newUseCase()
	admin := addProfile(t, uc, "ana@loja.com", "ADMIN")

	out, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ana@loja.com", Password: "segredo"})
	require.NoError(t, err)
	id, role, err := pkgjwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, admin.ID, id)
	assert.Equal(t, "ADMIN", role)
	assert.Equal(t, "ana@loja.com", out.Profile.Email)
}

// ──────────────────────────────────────────────────────────────────────────────
// Sesión
// ──────────────────────────────────────────────────────────────────────────────

func TestValidateSession_PerfilDesactivadoOEliminado(t *testing.T) {
	uc := newUseCase()
	ctx := context.Background()
	admin := addProfile(t, uc, "ana@loja.com", "ADMIN")
	caixa := addProfile(t, uc, "bia@loja.com", "CAIXA")
	other := addProfile(t, uc, "cris@loja.com", "CAIXA")

	_, err := uc.ValidateSession(ctx, caixa.ID)
	require.NoError(t, err)

	_, err = uc.ToggleStatus(ctx, admin.ID, caixa.ID)
	require.NoError(t, err)
	_, err = uc.ValidateSession(ctx, caixa.ID)
	assert.ErrorIs(t, err, domain.ErrSessionRevoked)

	require.NoError(t, uc.DeleteProfile(ctx, admin.ID, other.ID))
	_, err = uc.ValidateSession(ctx, other.ID)
	assert.ErrorIs(t, err, domain.ErrSessionRevoked)
}

// ──────────────────────────────────────────────────────────────────────────────
// Protecciones de gestión de perfiles
// ──────────────────────────────────────────────────────────────────────────────

func TestToggleStatus_NoSePuedeDesactivarASiMismo(t *testing.T) {
	uc := newUseCase()
	admin := addProfile(t, uc, "ana@loja.com", "ADMIN")
	addProfile(t, uc, "dora@loja.com", "ADMIN")

	_, err := uc.ToggleStatus(context.Background(), admin.ID, admin.ID)
	assert.ErrorIs(t, err, domain.ErrSelfProtection)
}

func TestDeleteProfile_NoSePuedeEliminarASiMismo(t *testing.T) {
	uc := newUseCase()
	admin := addProfile(t, uc, "ana@loja.com", "ADMIN")
	assert.ErrorIs(t, uc.DeleteProfile(context.Background(), admin.ID, admin.ID), domain.ErrSelfProtection)
}

func TestUltimoAdmin_NoSeDesactivaNiElimina(t *testing.T) {
	uc := newUseCase()
	ctx := context.Background()
	admin := addProfile(t, uc, "ana@loja.com", "ADMIN")
	other := addProfile(t, uc, "dora@loja.com", "ADMIN")

	// dora desactiva a ana: queda dora como única admin activa
	_, err := uc.ToggleStatus(ctx, other.ID, admin.ID)
	require.NoError(t, err)

	caixa := addProfile(t, uc, "bia@loja.com", "CAIXA")
	_, err = uc.ToggleStatus(ctx, caixa.ID, other.ID)
	assert.ErrorIs(t, err, domain.ErrLastAdmin)
	assert.ErrorIs(t, uc.DeleteProfile(ctx, caixa.ID, other.ID), domain.ErrLastAdmin)

	// reactivar a ana siempre está permitido
	reactivated, err := uc.ToggleStatus(ctx, other.ID, admin.ID)
	require.NoError(t, err)
	assert.True(t, reactivated.Active)
	require.NoError(t, uc.DeleteProfile(ctx, admin.ID, other.ID))
}

func TestAddProfile_EmailDuplicadoYRolInvalido(t *testing.T) {
	uc := newUseCase()
	addProfile(t, uc, "ana@loja.com", "ADMIN")
	ctx := context.Background()

	_, err := uc.AddProfile(ctx, dto.CreateProfileRequest{Email: "ana@loja.com", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	_, err = uc.AddProfile(ctx, dto.CreateProfileRequest{Email: "z@loja.com", Password: "x", Role: "GERENTE"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	p, err := uc.AddProfile(ctx, dto.CreateProfileRequest{Email: "y@loja.com", Password: "x"})
	require.NoError(t, err)
	assert.Equal(t, "CAIXA", p.Role)
	assert.Equal(t, "y@loja.com", p.Name)
}

func TestEnsureAdmin_SoloCuandoNoHayAdmins(t *testing.T) {
	uc := newUseCase()
	ctx := context.Background()
	in := dto.CreateProfileRequest{Name: "Dona", Email: "dona@loja.com", Password: "segredo"}

	p, created, err := uc.EnsureAdmin(ctx, in)
	require.NoError(t, err)
	require.True(t, created)
	assert.Equal(t, "ADMIN", p.Role)

	_, created, err = uc.EnsureAdmin(ctx, in)
	require.NoError(t, err)
	assert.False(t, created)
}
