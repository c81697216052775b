// internal/query/engine.go

// Package query implements the operator-facing triage pipeline over an
// already-fetched, already-authorized list of solicitudes: status filter,
// free-text search, sort, plus per-status counters. It is pure and touches
// no storage.
package query

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/munidigital/habilitaciones-backend/internal/models"
)

const (
	FilterAll = "all"

	SortByFecha  = "fecha"
	SortByNumero = "numero"
	SortByNombre = "nombre"

	OrderAsc  = "asc"
	OrderDesc = "desc"
)

type Params struct {
	StatusFilter string `json:"filter"`
	SearchQuery  string `json:"search"`
	SortBy       string `json:"sort_by"`
	SortOrder    string `json:"sort_order"`
}

// Counts always reflects the full visible collection, independent of the
// active filter and search.
type Counts struct {
	All        int `json:"all"`
	Pendiente  int `json:"pendiente"`
	Inspeccion int `json:"inspeccion"`
	Aprobado   int `json:"aprobado"`
	Rechazado  int `json:"rechazado"`
}

type Result struct {
	Items  []models.Solicitud `json:"items"`
	Counts Counts             `json:"counts"`
}

// Normalize fills defaults the same way the operator view does.
func (p Params) Normalize() Params {
	if p.StatusFilter == "" {
		p.StatusFilter = FilterAll
	}
	switch p.SortBy {
	case SortByFecha, SortByNumero, SortByNombre:
	default:
		p.SortBy = SortByFecha
	}
	if p.SortOrder != OrderAsc {
		p.SortOrder = OrderDesc
	}
	return p
}

// Apply runs the three stages in order: filter, search, sort. Counts are
// taken over the input set before filtering.
func Apply(solicitudes []models.Solicitud, params Params) Result {
	params = params.Normalize()

	result := Result{Counts: countEstados(solicitudes)}

	items := make([]models.Solicitud, len(solicitudes))
	copy(items, solicitudes)

	if params.StatusFilter != FilterAll {
		items = filterEstado(items, models.Estado(params.StatusFilter))
	}

	if q := strings.TrimSpace(params.SearchQuery); q != "" {
		items = search(items, strings.ToLower(q))
	}

	sortItems(items, params.SortBy, params.SortOrder)

	result.Items = items
	return result
}

func countEstados(solicitudes []models.Solicitud) Counts {
	counts := Counts{All: len(solicitudes)}
	for _, s := range solicitudes {
		switch s.Estado {
		case models.EstadoPendiente:
			counts.Pendiente++
		case models.EstadoInspeccion:
			counts.Inspeccion++
		case models.EstadoAprobado:
			counts.Aprobado++
		case models.EstadoRechazado:
			counts.Rechazado++
		}
	}
	return counts
}

func filterEstado(items []models.Solicitud, estado models.Estado) []models.Solicitud {
	filtered := items[:0]
	for _, s := range items {
		if s.Estado == estado {
			filtered = append(filtered, s)
		}
	}
	return filtered
}

// search keeps a record when the lowered query is a substring of any of the
// triage fields: numero, applicant name/surname/tax id, holder name/tax id,
// street, locality, activity sector.
func search(items []models.Solicitud, query string) []models.Solicitud {
	filtered := items[:0]
	for _, s := range items {
		fields := []string{
			strconv.Itoa(s.Numero),
			strings.ToLower(s.SolicitanteNombre),
			strings.ToLower(s.SolicitanteApellido),
			s.SolicitanteCuitCuil,
			strings.ToLower(s.TitularNombre),
			s.TitularCuit,
			strings.ToLower(s.DomicilioCalle),
			strings.ToLower(s.DomicilioLocalidad),
			strings.ToLower(s.RubroTipo),
		}

		for _, field := range fields {
			if strings.Contains(field, query) {
				filtered = append(filtered, s)
				break
			}
		}
	}
	return filtered
}

func sortItems(items []models.Solicitud, sortBy, sortOrder string) {
	var compare func(a, b *models.Solicitud) int

	switch sortBy {
	case SortByNumero:
		compare = func(a, b *models.Solicitud) int {
			return a.Numero - b.Numero
		}
	case SortByNombre:
		collator := collate.New(language.Spanish)
		compare = func(a, b *models.Solicitud) int {
			nombreA := strings.ToLower(fmt.Sprintf("%s %s", a.SolicitanteNombre, a.SolicitanteApellido))
			nombreB := strings.ToLower(fmt.Sprintf("%s %s", b.SolicitanteNombre, b.SolicitanteApellido))
			return collator.CompareString(nombreA, nombreB)
		}
	default: // fecha
		compare = func(a, b *models.Solicitud) int {
			switch {
			case a.FechaSolicitud.Before(b.FechaSolicitud):
				return -1
			case a.FechaSolicitud.After(b.FechaSolicitud):
				return 1
			default:
				return 0
			}
		}
	}

	// Stable: ties keep the prior stage's relative order.
	sort.SliceStable(items, func(i, j int) bool {
		c := compare(&items[i], &items[j])
		if sortOrder == OrderDesc {
			return c > 0
		}
		return c < 0
	})
}
