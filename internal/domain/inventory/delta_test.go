package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Chirlanio/inmystock/internal/domain"
	"github.com/Chirlanio/inmystock/internal/domain/entity"
	"github.com/Chirlanio/inmystock/internal/domain/inventory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Las reglas de signo son el corazón del libro: cada tipo de movimiento aporta
// +|q| o -|q| a exactamente un agregado. Si alguien las cambia sin querer,
// todos los saldos derivados divergen de la suma de los asientos.
// ──────────────────────────────────────────────────────────────────────────────

func TestSignedQuantity_PorTipo(t *testing.T) {
	ten := decimal.NewFromInt(10)

	cases := []struct {
		tipo     string
		esperado string
	}{
		{entity.MovementTypeEntry, "10"},
		{entity.MovementTypeAdjustment, "10"},
		{entity.MovementTypeTransferIn, "10"},
		{entity.MovementTypeExit, "-10"},
		{entity.MovementTypeTransferOut, "-10"},
	}
	for _, tc := range cases {
		t.Run(tc.tipo, func(t *testing.T) {
			signed, err := inventory.SignedQuantity(tc.tipo, ten)
			require.NoError(t, err)
			assert.Equal(t, tc.esperado, signed.String(),
				"la contribución de %s debe ser %s", tc.tipo, tc.esperado)
		})
	}
}

func TestSignedQuantity_NormalizaMagnitud(t *testing.T) {
	// La cantidad del asiento es una magnitud: un -5 que llegue por error se
	// normaliza antes de aplicar el signo del tipo.
	signed, err := inventory.SignedQuantity(entity.MovementTypeExit, decimal.NewFromInt(-5))
	require.NoError(t, err)
	assert.Equal(t, "-5", signed.String(), "exit con magnitud negativa debe seguir restando 5")
}

func TestSignedQuantity_TipoDesconocido(t *testing.T) {
	_, err := inventory.SignedQuantity("donation", decimal.NewFromInt(1))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTargetArea_PatasDeTraslado(t *testing.T) {
	from, to := "area-1", "area-2"

	out := &entity.Movement{Type: entity.MovementTypeTransferOut, FromAreaID: &from, ToAreaID: &to}
	in := &entity.Movement{Type: entity.MovementTypeTransferIn, FromAreaID: &from, ToAreaID: &to}

	require.NotNil(t, inventory.TargetArea(out))
	require.NotNil(t, inventory.TargetArea(in))
	assert.Equal(t, from, *inventory.TargetArea(out), "transfer_out debe afectar el área origen")
	assert.Equal(t, to, *inventory.TargetArea(in), "transfer_in debe afectar el área destino")
}

func TestTargetArea_MovimientoSimple(t *testing.T) {
	area := "area-1"
	m := &entity.Movement{Type: entity.MovementTypeEntry, AreaID: &area}
	require.NotNil(t, inventory.TargetArea(m))
	assert.Equal(t, area, *inventory.TargetArea(m))
}

// TestContribution_TrasladoConservaTotal verifica la invariante de los
// traslados: el par resta en el origen y suma exactamente lo mismo en el
// destino, así el total del producto entre áreas no cambia.
func TestContribution_TrasladoConservaTotal(t *testing.T) {
	from, to := "area-1", "area-2"
	qty := decimal.NewFromInt(5)

	out := &entity.Movement{Type: entity.MovementTypeTransferOut, Quantity: qty, FromAreaID: &from, ToAreaID: &to}
	in := &entity.Movement{Type: entity.MovementTypeTransferIn, Quantity: qty, FromAreaID: &from, ToAreaID: &to}

	assert.Equal(t, "-5", inventory.Contribution(out, &from).String(), "el origen baja 5")
	assert.Equal(t, "5", inventory.Contribution(in, &to).String(), "el destino sube 5")

	// Ninguna pata toca el agregado de la otra área.
	assert.True(t, inventory.Contribution(out, &to).IsZero())
	assert.True(t, inventory.Contribution(in, &from).IsZero())

	total := inventory.Contribution(out, &from).
		Add(inventory.Contribution(in, &to))
	assert.True(t, total.IsZero(), "el efecto neto de un traslado sobre el total debe ser cero")
}

func TestContribution_FilaSinArea(t *testing.T) {
	m := &entity.Movement{Type: entity.MovementTypeEntry, Quantity: decimal.NewFromInt(3)}
	assert.Equal(t, "3", inventory.Contribution(m, nil).String(),
		"un asiento sin área afecta la fila sintética sin área")

	area := "area-1"
	assert.True(t, inventory.Contribution(m, &area).IsZero(),
		"un asiento sin área no afecta agregados por área")
}
