package inventory

import (
	"context"
	"encoding/base64"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/brecho-pos/internal/application/dto"
	"github.com/jhoicas/brecho-pos/internal/domain"
	"github.com/jhoicas/brecho-pos/internal/domain/entity"
	"github.com/jhoicas/brecho-pos/internal/infrastructure/memory"
)

type fakeBlob struct {
	keys  []string
	types []string
	err   error
}

func (f *fakeBlob) Upload(_ context.Context, key, contentType string, _ []byte) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.keys = append(f.keys, key)
	f.types = append(f.types, contentType)
	return "https://storage.test/products/" + key, nil
}

func newUseCase(blob *fakeBlob) (*ItemUseCase, *memory.Store) {
	store := memory.New()
	r := store.Repos()
	uc := NewItemUseCase(r.Items, r.Vendors, blob, nil)
	return uc, store
}

func draft() dto.CreateItemRequest {
	return dto.CreateItemRequest{
		Image:     "https://cdn/foto.png",
		Category:  "Vestido",
		Size:      "M",
		Condition: "EXCELLENT",
		Price:     decimal.NewFromInt(80),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Register
// ──────────────────────────────────────────────────────────────────────────────

func TestRegister_CreaEnEvaluacion(t *testing.T) {
	uc, _ := newUseCase(&fakeBlob{})
	got, err := uc.Register(context.Background(), draft())
	require.NoError(t, err)
	assert.Equal(t, string(entity.ItemStatusEvaluation), got.Status)
	assert.Equal(t, "https://cdn/foto.png", got.ImageURL, "una URL ya publicada se guarda tal cual")
	assert.NotEmpty(t, got.ID)
}

func TestRegister_Validaciones(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(in *dto.CreateItemRequest)
	}{
		{"sin imagen", func(in *dto.CreateItemRequest) { in.Image = "" }},
		{"sin categoría", func(in *dto.CreateItemRequest) { in.Category = "  " }},
		{"precio cero", func(in *dto.CreateItemRequest) { in.Price = decimal.Zero }},
		{"precio negativo", func(in *dto.CreateItemRequest) { in.Price = decimal.NewFromInt(-1) }},
		{"precio con fracción de centavo", func(in *dto.CreateItemRequest) { in.Price = decimal.RequireFromString("10.005") }},
		{"condición desconocida", func(in *dto.CreateItemRequest) { in.Condition = "USADO" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			blob := &fakeBlob{}
			uc, _ := newUseCase(blob)
			in := draft()
			in.Image = "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("png"))
			tc.mutate(&in)
			_, err := uc.Register(context.Background(), in)
			require.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Empty(t, blob.keys, "no se sube nada si la validación falla")
		})
	}
}

func TestRegister_SubeDataURL(t *testing.T) {
	blob := &fakeBlob{}
	uc, _ := newUseCase(blob)
	in := draft()
	in.Image = "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString([]byte{0xff, 0xd8, 0xff})

	got, err := uc.Register(context.Background(), in)
	require.NoError(t, err)
	require.Len(t, blob.keys, 1)
	assert.Contains(t, blob.keys[0], ".png")
	assert.Equal(t, "image/jpeg", blob.types[0])
	assert.Equal(t, "https://storage.test/products/"+blob.keys[0], got.ImageURL)
}

func TestRegister_ErrorDePoliticaSePropaga(t *testing.T) {
	uc, _ := newUseCase(&fakeBlob{err: domain.ErrBlobPolicy})
	in := draft()
	in.Image = "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("x"))
	_, err := uc.Register(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrBlobPolicy)
}

func TestRegister_ProveedoraInexistente(t *testing.T) {
	uc, _ := newUseCase(&fakeBlob{})
	in := draft()
	in.VendorID = "no-existe"
	_, err := uc.Register(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDecodeDataURL_SinBase64(t *testing.T) {
	_, _, err := decodeDataURL("data:image/svg+xml,<svg/>")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ciclo de vida
// ──────────────────────────────────────────────────────────────────────────────

func TestApproveReject_SoloDesdeEvaluacion(t *testing.T) {
	uc, _ := newUseCase(&fakeBlob{})
	ctx := context.Background()

	a, err := uc.Register(ctx, draft())
	require.NoError(t, err)
	approved, err := uc.Approve(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.ItemStatusForSale), approved.Status)

	_, err = uc.Approve(ctx, a.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	_, err = uc.Reject(ctx, a.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	b, err := uc.Register(ctx, draft())
	require.NoError(t, err)
	rejected, err := uc.Reject(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.ItemStatusTraded), rejected.Status)

	_, err = uc.Approve(ctx, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRemove_SoloPiezasResueltas(t *testing.T) {
	uc, _ := newUseCase(&fakeBlob{})
	ctx := context.Background()

	a, err := uc.Register(ctx, draft())
	require.NoError(t, err)
	assert.ErrorIs(t, uc.Remove(ctx, a.ID), domain.ErrInvalidTransition, "EVALUATION no se elimina")

	_, err = uc.Approve(ctx, a.ID)
	require.NoError(t, err)
	assert.ErrorIs(t, uc.Remove(ctx, a.ID), domain.ErrInvalidTransition, "FOR_SALE no se elimina")

	b, err := uc.Register(ctx, draft())
	require.NoError(t, err)
	_, err = uc.Reject(ctx, b.ID)
	require.NoError(t, err)
	require.NoError(t, uc.Remove(ctx, b.ID))

	got, err := uc.Get(ctx, b.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

// ──────────────────────────────────────────────────────────────────────────────
// Listado
// ──────────────────────────────────────────────────────────────────────────────

func TestList_FiltroPorEstadoYBusqueda(t *testing.T) {
	uc, store := newUseCase(&fakeBlob{})
	ctx := context.Background()
	r := store.Repos()
	base := time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)
	seed := []entity.Item{
		{ID: "aaa1", Category: "Calça Jeans", Status: entity.ItemStatusForSale, EntryDate: base},
		{ID: "bbb2", Category: "Vestido", Status: entity.ItemStatusForSale, EntryDate: base.Add(time.Minute)},
		{ID: "ccc3", Category: "Calcado", Status: entity.ItemStatusEvaluation, EntryDate: base.Add(2 * time.Minute)},
	}
	for i := range seed {
		it := seed[i]
		it.ImageURL, it.Price, it.Condition = "u", decimal.NewFromInt(10), entity.ConditionGood
		require.NoError(t, r.Items.Create(ctx, &it))
	}

	all, err := uc.List(ctx, dto.ListItemsQuery{Status: "ALL"})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "ccc3", all[0].ID)

	forSale, err := uc.List(ctx, dto.ListItemsQuery{Status: "for_sale"})
	require.NoError(t, err)
	assert.Len(t, forSale, 2)

	found, err := uc.List(ctx, dto.ListItemsQuery{Search: "CALCA"})
	require.NoError(t, err)
	assert.Len(t, found, 2, "sin distinguir acentos ni mayúsculas")

	byID, err := uc.List(ctx, dto.ListItemsQuery{Search: "bbb"})
	require.NoError(t, err)
	require.Len(t, byID, 1)
	assert.Equal(t, "bbb2", byID[0].ID)

	_, err = uc.List(ctx, dto.ListItemsQuery{Status: "PERDIDO"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
