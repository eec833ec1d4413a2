package billing_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	billingapp "github.com/jhoicas/pos-billing-api/internal/application/billing"
	"github.com/jhoicas/pos-billing-api/internal/domain"
	"github.com/jhoicas/pos-billing-api/internal/domain/entity"
	"github.com/jhoicas/pos-billing-api/pkg/logger"
)

type coordinatorFixture struct {
	steps  *steps
	bills  *fakeBillStore
	log    *fakeChangeLog
	mirror *fakeMirror
	tx     *fakeTx
	c      *billingapp.Coordinator
}

func newCoordinatorFixture(users ...string) *coordinatorFixture {
	st := &steps{}
	f := &coordinatorFixture{
		steps:  st,
		bills:  &fakeBillStore{steps: st},
		log:    &fakeChangeLog{steps: st},
		mirror: newFakeMirror(st, &entity.Product{ID: "p1", Stock: 10}, &entity.Product{ID: "p2", Stock: 5}),
		tx:     newFakeTx(st, users...),
	}
	f.c = billingapp.NewCoordinator(f.bills, f.log, f.mirror, f.tx, logger.Nop(), "prime", entity.UnknownCreator)
	return f
}

func sampleBill(id, createdBy string) *entity.Bill {
	return &entity.Bill{
		ID:        id,
		CreatedBy: createdBy,
		Timestamp: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		Items: []entity.LineItem{
			{ProductID: "p1", ProductName: "Anillo", Quantity: 2, UnitPrice: dec("100"), LineTotal: dec("200")},
			{ProductID: "p2", ProductName: "Collar", Quantity: 1, UnitPrice: dec("50"), LineTotal: dec("50")},
			{ProductID: "p1", ProductName: "Anillo", Quantity: 1, UnitPrice: dec("100"), LineTotal: dec("100")},
			{ProductName: "Servicio de grabado", Quantity: 1, UnitPrice: dec("20"), LineTotal: dec("20")},
		},
		Total: dec("370"),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Caso 1: todas las ramas OK, en orden
// ──────────────────────────────────────────────────────────────────────────────

func TestPersist_TodasLasRamasEnOrden(t *testing.T) {
	f := newCoordinatorFixture("u1")

	out, err := f.c.Persist(context.Background(), sampleBill("inv-1", "u1"))

	require.NoError(t, err)
	assert.Equal(t, []string{"primary", "log", "mirror", "relational"}, f.steps.list)
	assert.Equal(t, billingapp.BranchOK, out.Primary.Status)
	assert.Equal(t, billingapp.BranchOK, out.Log.Status)
	assert.Equal(t, billingapp.BranchOK, out.Mirror.Status)
	assert.Equal(t, billingapp.BranchOK, out.Relational.Status)

	assert.Equal(t, []string{"bills.json|New bill created: (ID: inv-1)"}, f.log.lines)
	require.Len(t, f.mirror.applied, 1)
	assert.Equal(t, map[string]int{"p1": 3, "p2": 1}, f.mirror.applied[0], "cantidades agregadas por producto")
	assert.Equal(t, 7, f.mirror.products["p1"].Stock)

	require.Len(t, f.tx.bills, 1)
	assert.Len(t, f.tx.items["inv-1"], 4, "una fila por línea")
	assert.Equal(t, map[string]int{"p1": 3, "p2": 1}, f.tx.decrements, "líneas sin producto no descuentan")
}

// ──────────────────────────────────────────────────────────────────────────────
// Caso 2: falla del almacén principal, nada más se ejecuta
// ──────────────────────────────────────────────────────────────────────────────

func TestPersist_FallaPrincipalEsFatal(t *testing.T) {
	f := newCoordinatorFixture("u1")
	f.bills.err = errBoom

	out, err := f.c.Persist(context.Background(), sampleBill("inv-1", "u1"))

	require.ErrorIs(t, err, domain.ErrPrimaryWrite)
	assert.Nil(t, out)
	assert.Equal(t, []string{"primary"}, f.steps.list)
	assert.Empty(t, f.mirror.applied)
	assert.Empty(t, f.tx.bills)
}

func TestPersist_DuplicadoRechazadoSinDobleDescuento(t *testing.T) {
	f := newCoordinatorFixture("u1")
	_, err := f.c.Persist(context.Background(), sampleBill("inv-1", "u1"))
	require.NoError(t, err)

	_, err = f.c.Persist(context.Background(), sampleBill("inv-1", "u1"))

	require.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Len(t, f.bills.bills, 1)
	assert.Len(t, f.mirror.applied, 1)
	assert.Equal(t, map[string]int{"p1": 3, "p2": 1}, f.tx.decrements)
}

func TestPersist_FacturaSinID(t *testing.T) {
	f := newCoordinatorFixture()
	_, err := f.c.Persist(context.Background(), &entity.Bill{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, f.steps.list)
}

// ──────────────────────────────────────────────────────────────────────────────
// Caso 3: fallas no fatales
// ──────────────────────────────────────────────────────────────────────────────

func TestPersist_FallaRelacionalSeTolera(t *testing.T) {
	f := newCoordinatorFixture("u1")
	f.tx.decErr = errBoom

	out, err := f.c.Persist(context.Background(), sampleBill("inv-1", "u1"))

	require.NoError(t, err, "la venta se informa como exitosa")
	assert.Equal(t, billingapp.BranchFailed, out.Relational.Status)
	assert.ErrorIs(t, out.Relational.Err, errBoom)
	assert.Len(t, f.bills.bills, 1, "el almacén principal conserva la factura")
	assert.Len(t, f.mirror.applied, 1, "el espejo ya fue descontado")
	assert.Empty(t, f.tx.bills, "rollback: sin filas")
	assert.Empty(t, f.tx.decrements)
	assert.Equal(t, 1, f.tx.rollbacks)
}

func TestPersist_FallaLogYEspejoNoDetienen(t *testing.T) {
	f := newCoordinatorFixture("u1")
	f.log.err = errBoom
	f.mirror.err = errBoom

	out, err := f.c.Persist(context.Background(), sampleBill("inv-1", "u1"))

	require.NoError(t, err)
	assert.Equal(t, billingapp.BranchFailed, out.Log.Status)
	assert.Equal(t, billingapp.BranchFailed, out.Mirror.Status)
	assert.Equal(t, billingapp.BranchOK, out.Relational.Status)
	assert.Equal(t, []string{"primary", "log", "mirror", "relational"}, f.steps.list)
}

func TestPersist_SinProductosNoTocaEspejo(t *testing.T) {
	f := newCoordinatorFixture("u1")
	bill := &entity.Bill{ID: "inv-9", CreatedBy: "u1", Items: []entity.LineItem{{ProductName: "Servicio", Quantity: 1, UnitPrice: dec("10")}}}

	out, err := f.c.Persist(context.Background(), bill)

	require.NoError(t, err)
	assert.Equal(t, billingapp.BranchSkipped, out.Mirror.Status)
	assert.Equal(t, []string{"primary", "log", "relational"}, f.steps.list)
}

// ──────────────────────────────────────────────────────────────────────────────
// Caso 4: creador inexistente y creadores de sistema
// ──────────────────────────────────────────────────────────────────────────────

func TestPersist_CreadorInexistenteSoloCortaRelacional(t *testing.T) {
	f := newCoordinatorFixture("u1")

	out, err := f.c.Persist(context.Background(), sampleBill("inv-2", "fantasma"))

	require.NoError(t, err)
	assert.Equal(t, billingapp.BranchSkipped, out.Relational.Status)
	assert.ErrorIs(t, out.Relational.Err, domain.ErrUserNotFound)
	assert.Len(t, f.bills.bills, 1)
	assert.Equal(t, billingapp.BranchOK, out.Mirror.Status)
	assert.Empty(t, f.tx.bills)
	assert.Empty(t, f.tx.decrements)
}

func TestPersist_CreadorDeSistemaNoSeValida(t *testing.T) {
	for _, creator := range []string{"prime", entity.UnknownCreator} {
		f := newCoordinatorFixture()

		out, err := f.c.Persist(context.Background(), sampleBill("inv-"+creator, creator))

		require.NoError(t, err)
		assert.Equal(t, billingapp.BranchOK, out.Relational.Status, creator)
		assert.Equal(t, 0, f.tx.existsCall, creator)
		assert.Len(t, f.tx.bills, 1, creator)
	}
}

func TestPersist_ErrorAlValidarCreadorEsFalla(t *testing.T) {
	f := newCoordinatorFixture("u1")
	f.tx.existsErr = errBoom

	out, err := f.c.Persist(context.Background(), sampleBill("inv-3", "u1"))

	require.NoError(t, err)
	assert.Equal(t, billingapp.BranchFailed, out.Relational.Status)
}

func TestOutcome_ToResponse(t *testing.T) {
	f := newCoordinatorFixture()
	f.mirror.err = errBoom

	out, err := f.c.Persist(context.Background(), sampleBill("inv-4", "fantasma"))
	require.NoError(t, err)

	resp := out.ToResponse()
	assert.Equal(t, "inv-4", resp.Bill.ID)
	assert.Equal(t, "ok", resp.Outcome.Primary.Status)
	assert.Equal(t, "failed", resp.Outcome.Mirror.Status)
	assert.Equal(t, "boom", resp.Outcome.Mirror.Error)
	assert.Equal(t, "skipped", resp.Outcome.Relational.Status)
}
