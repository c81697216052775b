// internal/query/engine_test.go
package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/munidigital/habilitaciones-backend/internal/models"
)

func solicitud(numero int, nombre, apellido string, estado models.Estado, fecha time.Time) models.Solicitud {
	return models.Solicitud{
		Numero:              numero,
		SolicitanteNombre:   nombre,
		SolicitanteApellido: apellido,
		Estado:              estado,
		FechaSolicitud:      fecha,
	}
}

func fixtures() []models.Solicitud {
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	return []models.Solicitud{
		solicitud(1003, "Juan", "Pérez", models.EstadoAprobado, base.Add(48*time.Hour)),
		solicitud(1001, "María", "Gómez", models.EstadoPendiente, base),
		solicitud(1002, "Carlos", "Pérez", models.EstadoRechazado, base.Add(24*time.Hour)),
		solicitud(1004, "Ana", "Álvarez", models.EstadoInspeccion, base.Add(72*time.Hour)),
	}
}

func numeros(items []models.Solicitud) []int {
	out := make([]int, len(items))
	for i, s := range items {
		out[i] = s.Numero
	}
	return out
}

func TestNormalizeDefaults(t *testing.T) {
	p := Params{}.Normalize()

	assert.Equal(t, FilterAll, p.StatusFilter)
	assert.Equal(t, SortByFecha, p.SortBy)
	assert.Equal(t, OrderDesc, p.SortOrder)
}

func TestNormalizeRejectsUnknownSortBy(t *testing.T) {
	p := Params{SortBy: "color", SortOrder: "sideways"}.Normalize()

	assert.Equal(t, SortByFecha, p.SortBy)
	assert.Equal(t, OrderDesc, p.SortOrder)
}

func TestApplyDefaultIsNewestFirst(t *testing.T) {
	result := Apply(fixtures(), Params{})

	assert.Equal(t, []int{1004, 1003, 1002, 1001}, numeros(result.Items))
}

func TestApplySortByNumero(t *testing.T) {
	items := []models.Solicitud{
		solicitud(3, "A", "A", models.EstadoPendiente, time.Now()),
		solicitud(1, "B", "B", models.EstadoPendiente, time.Now()),
		solicitud(2, "C", "C", models.EstadoPendiente, time.Now()),
	}

	asc := Apply(items, Params{SortBy: SortByNumero, SortOrder: OrderAsc})
	assert.Equal(t, []int{1, 2, 3}, numeros(asc.Items))

	desc := Apply(items, Params{SortBy: SortByNumero, SortOrder: OrderDesc})
	assert.Equal(t, []int{3, 2, 1}, numeros(desc.Items))
}

func TestApplySortByNombreUsesSpanishCollation(t *testing.T) {
	result := Apply(fixtures(), Params{SortBy: SortByNombre, SortOrder: OrderAsc})

	// "Ana Álvarez" collates before "Carlos Pérez" despite the accent.
	assert.Equal(t, []int{1004, 1002, 1003, 1001}, numeros(result.Items))
}

func TestApplyFilterAndSearchCompose(t *testing.T) {
	result := Apply(fixtures(), Params{
		StatusFilter: string(models.EstadoAprobado),
		SearchQuery:  "pérez",
	})

	assert.Equal(t, []int{1003}, numeros(result.Items))
}

func TestApplySearchMatchesNumero(t *testing.T) {
	result := Apply(fixtures(), Params{SearchQuery: "1002"})

	assert.Equal(t, []int{1002}, numeros(result.Items))
}

func TestApplySearchIsCaseInsensitive(t *testing.T) {
	result := Apply(fixtures(), Params{SearchQuery: "GÓMEZ"})

	assert.Equal(t, []int{1001}, numeros(result.Items))
}

func TestApplySearchNoMatchReturnsEmpty(t *testing.T) {
	result := Apply(fixtures(), Params{SearchQuery: "zzz-no-existe"})

	assert.Empty(t, result.Items)
	assert.Equal(t, 4, result.Counts.All)
}

func TestCountsIgnoreFilterAndSearch(t *testing.T) {
	unfiltered := Apply(fixtures(), Params{})
	filtered := Apply(fixtures(), Params{
		StatusFilter: string(models.EstadoRechazado),
		SearchQuery:  "pérez",
	})

	assert.Equal(t, unfiltered.Counts, filtered.Counts)
	assert.Equal(t, Counts{All: 4, Pendiente: 1, Inspeccion: 1, Aprobado: 1, Rechazado: 1}, filtered.Counts)
}

func TestCountsAllEqualsSumOfStatuses(t *testing.T) {
	c := Apply(fixtures(), Params{}).Counts

	assert.Equal(t, c.All, c.Pendiente+c.Inspeccion+c.Aprobado+c.Rechazado)
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	items := fixtures()
	original := numeros(items)

	Apply(items, Params{SortBy: SortByNumero, SortOrder: OrderAsc})

	assert.Equal(t, original, numeros(items))
}

func TestSortIsStableOnTies(t *testing.T) {
	fecha := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	items := []models.Solicitud{
		solicitud(10, "A", "A", models.EstadoPendiente, fecha),
		solicitud(20, "B", "B", models.EstadoPendiente, fecha),
		solicitud(30, "C", "C", models.EstadoPendiente, fecha),
	}

	result := Apply(items, Params{SortBy: SortByFecha, SortOrder: OrderDesc})

	// Equal timestamps keep input order.
	assert.Equal(t, []int{10, 20, 30}, numeros(result.Items))
}
