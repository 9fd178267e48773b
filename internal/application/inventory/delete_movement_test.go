package inventory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Chirlanio/inmystock/internal/application/inventory"
	"github.com/Chirlanio/inmystock/internal/domain"
	"github.com/Chirlanio/inmystock/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Borrar un asiento no decrementa: reconstruye el agregado sumando los asientos
// sobrevivientes. Y borrar una pata de traslado arrastra a la otra, porque un
// transfer_out sin su transfer_in dejaría el total del producto descuadrado.
// ──────────────────────────────────────────────────────────────────────────────

func TestDelete_ResumaLosSobrevivientes(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	mustRecord(t, f, entity.MovementTypeEntry, 10, "area-1")
	exit := mustRecord(t, f, entity.MovementTypeExit, 3, "area-1")
	mustRecord(t, f, entity.MovementTypeAdjustment, 2, "area-1")

	require.NoError(t, f.remove.Delete(ctx, companyID, exit[0].ID))

	level, err := f.levelRepo.Get(ctx, companyID, productID, strPtr("area-1"))
	require.NoError(t, err)
	require.NotNil(t, level)
	assert.Equal(t, "12", level.Quantity.String(), "10 + 2 sin la salida borrada")

	borrado, err := f.movRepo.GetByID(ctx, companyID, exit[0].ID)
	require.NoError(t, err)
	assert.Nil(t, borrado, "el asiento borrado deja de ser visible")
}

func TestDelete_PataDeTrasladoArrastraALaOtra(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	mustRecord(t, f, entity.MovementTypeEntry, 10, "area-1")

	legs, err := f.record.Record(ctx, inventory.MovementInput{
		CompanyID: companyID, UserID: userID, ProductID: productID,
		Type: entity.MovementTypeTransferOut, Quantity: decimal.NewFromInt(4),
		FromAreaID: strPtr("area-1"), ToAreaID: strPtr("area-2"),
	})
	require.NoError(t, err)
	out, in := legs[0], legs[1]

	// Borrar la pata de salida debe borrar también la de entrada.
	require.NoError(t, f.remove.Delete(ctx, companyID, out.ID))

	gone, err := f.movRepo.GetByID(ctx, companyID, in.ID)
	require.NoError(t, err)
	assert.Nil(t, gone, "la pata emparejada también se borra")

	origen, err := f.levelRepo.Get(ctx, companyID, productID, strPtr("area-1"))
	require.NoError(t, err)
	destino, err := f.levelRepo.Get(ctx, companyID, productID, strPtr("area-2"))
	require.NoError(t, err)
	require.NotNil(t, origen)
	require.NotNil(t, destino)
	assert.Equal(t, "10", origen.Quantity.String(), "el origen recupera lo trasladado")
	assert.True(t, destino.Quantity.IsZero(), "el destino vuelve a cero")
}

func TestDelete_PataDeEntradaTambienArrastra(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	mustRecord(t, f, entity.MovementTypeEntry, 10, "area-1")
	legs, err := f.record.Record(ctx, inventory.MovementInput{
		CompanyID: companyID, UserID: userID, ProductID: productID,
		Type: entity.MovementTypeTransferOut, Quantity: decimal.NewFromInt(4),
		FromAreaID: strPtr("area-1"), ToAreaID: strPtr("area-2"),
	})
	require.NoError(t, err)

	// Borrar por la transfer_in llega a la transfer_out vía la referencia.
	require.NoError(t, f.remove.Delete(ctx, companyID, legs[1].ID))

	gone, err := f.movRepo.GetByID(ctx, companyID, legs[0].ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	total, err := f.levelRepo.TotalByProduct(ctx, companyID, productID)
	require.NoError(t, err)
	assert.Equal(t, "10", total.String())
}

func TestDelete_NoExiste(t *testing.T) {
	f := newFixture()
	err := f.remove.Delete(context.Background(), companyID, "mov-fantasma")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDelete_DosVecesEsNotFound(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created := mustRecord(t, f, entity.MovementTypeEntry, 10, "area-1")
	require.NoError(t, f.remove.Delete(ctx, companyID, created[0].ID))

	err := f.remove.Delete(ctx, companyID, created[0].ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "el borrado lógico no es idempotente hacia el cliente")
}
