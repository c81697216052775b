// internal/services/solicitud_service.go
package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/munidigital/habilitaciones-backend/internal/models"
	"github.com/munidigital/habilitaciones-backend/internal/utils"
)

const (
	// VigenciaCertificado is the grant window of a Habilitación Precaria.
	VigenciaCertificado = 30 * 24 * time.Hour

	// ObservacionRechazoDefault is stored when a rejection carries no reason.
	ObservacionRechazoDefault = "No cumple requisitos"
)

// transiciones is the legal edge set of the workflow. Same-state transitions
// are always accepted idempotently and are not listed here. aprobado and
// rechazado are terminal; an appeals edge would be added to this table.
var transiciones = map[models.Estado][]models.Estado{
	models.EstadoPendiente:  {models.EstadoInspeccion, models.EstadoAprobado, models.EstadoRechazado},
	models.EstadoInspeccion: {models.EstadoAprobado, models.EstadoRechazado},
	models.EstadoAprobado:   {},
	models.EstadoRechazado:  {},
}

func transicionPermitida(desde, hacia models.Estado) bool {
	if desde == hacia {
		return true
	}
	for _, e := range transiciones[desde] {
		if e == hacia {
			return true
		}
	}
	return false
}

type SolicitudService struct {
	db             *gorm.DB
	notificaciones *NotificationService
}

func NewSolicitudService(db *gorm.DB, notificaciones *NotificationService) *SolicitudService {
	return &SolicitudService{
		db:             db,
		notificaciones: notificaciones,
	}
}

type CrearSolicitudRequest struct {
	SolicitanteNombre   string `json:"solicitante_nombre" validate:"required,max=100"`
	SolicitanteApellido string `json:"solicitante_apellido" validate:"required,max=100"`
	SolicitanteCuitCuil string `json:"solicitante_cuit_cuil" validate:"required,cuit"`
	SolicitanteTelefono string `json:"solicitante_telefono,omitempty"`
	SolicitanteEmail    string `json:"solicitante_email" validate:"omitempty,email"`

	TitularTipo   models.TitularTipo `json:"titular_tipo" validate:"required,oneof=fisica juridica"`
	TitularNombre string             `json:"titular_nombre" validate:"required,max=150"`
	TitularCuit   string             `json:"titular_cuit" validate:"required,cuit"`
	CuentaABL     string             `json:"cuenta_abl,omitempty"`

	DomicilioCalle     string `json:"domicilio_calle" validate:"required,max=150"`
	DomicilioAltura    string `json:"domicilio_altura" validate:"required,max=10"`
	DomicilioPiso      string `json:"domicilio_piso,omitempty"`
	DomicilioDepto     string `json:"domicilio_depto,omitempty"`
	DomicilioLocal     string `json:"domicilio_local,omitempty"`
	DomicilioLocalidad string `json:"domicilio_localidad" validate:"required,max=100"`

	RubroTipo        string  `json:"rubro_tipo" validate:"required,max=100"`
	RubroSubrubro    string  `json:"rubro_subrubro,omitempty"`
	RubroDescripcion string  `json:"rubro_descripcion,omitempty"`
	MetrosCuadrados  float64 `json:"metros_cuadrados" validate:"required,gt=0"`

	TechosCielorrasos string `json:"techos_cielorasos,omitempty"`
	PisosMaterial     string `json:"pisos_material,omitempty"`

	TieneSanitarios          bool `json:"tiene_sanitarios"`
	SanitariosAccesoDirecto  bool `json:"sanitarios_acceso_directo"`
	SanitariosAntecamara     bool `json:"sanitarios_antecamara"`
	SanitariosLavabosM       int  `json:"sanitarios_lavabos_m" validate:"min=0"`
	SanitariosRetretesM      int  `json:"sanitarios_retretes_m" validate:"min=0"`
	SanitariosLavabosF       int  `json:"sanitarios_lavabos_f" validate:"min=0"`
	SanitariosRetretesF      int  `json:"sanitarios_retretes_f" validate:"min=0"`
	SanitariosMingitorios    int  `json:"sanitarios_migitorios" validate:"min=0"`
	SanitariosDiscapacitados bool `json:"sanitarios_discapacitados"`
	CantidadTrabajadores     int  `json:"cantidad_trabajadores" validate:"min=1"`

	DocumentosURLs []string `json:"documentos_urls,omitempty"`
}

// CrearSolicitud files a new request owned by the caller. Only citizens may
// create, and only for themselves; the sequential numero is assigned inside
// the transaction so it is monotonic and never reused.
func (s *SolicitudService) CrearSolicitud(caller Caller, req *CrearSolicitudRequest) (*models.Solicitud, error) {
	if !caller.Can(OpCrearSolicitud) {
		return nil, ErrUnauthorized
	}

	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	solicitud := &models.Solicitud{
		SolicitanteID:       caller.ID,
		SolicitanteNombre:   req.SolicitanteNombre,
		SolicitanteApellido: req.SolicitanteApellido,
		SolicitanteCuitCuil: req.SolicitanteCuitCuil,
		SolicitanteTelefono: req.SolicitanteTelefono,
		SolicitanteEmail:    req.SolicitanteEmail,

		TitularTipo:   req.TitularTipo,
		TitularNombre: req.TitularNombre,
		TitularCuit:   req.TitularCuit,
		CuentaABL:     req.CuentaABL,

		DomicilioCalle:     req.DomicilioCalle,
		DomicilioAltura:    req.DomicilioAltura,
		DomicilioPiso:      req.DomicilioPiso,
		DomicilioDepto:     req.DomicilioDepto,
		DomicilioLocal:     req.DomicilioLocal,
		DomicilioLocalidad: req.DomicilioLocalidad,

		RubroTipo:        req.RubroTipo,
		RubroSubrubro:    req.RubroSubrubro,
		RubroDescripcion: req.RubroDescripcion,
		MetrosCuadrados:  req.MetrosCuadrados,

		TechosCielorrasos: req.TechosCielorrasos,
		PisosMaterial:     req.PisosMaterial,

		TieneSanitarios:          req.TieneSanitarios,
		SanitariosAccesoDirecto:  req.SanitariosAccesoDirecto,
		SanitariosAntecamara:     req.SanitariosAntecamara,
		SanitariosLavabosM:       req.SanitariosLavabosM,
		SanitariosRetretesM:      req.SanitariosRetretesM,
		SanitariosLavabosF:       req.SanitariosLavabosF,
		SanitariosRetretesF:      req.SanitariosRetretesF,
		SanitariosMingitorios:    req.SanitariosMingitorios,
		SanitariosDiscapacitados: req.SanitariosDiscapacitados,
		CantidadTrabajadores:     req.CantidadTrabajadores,

		Estado:         models.EstadoPendiente,
		FechaSolicitud: time.Now(),
	}

	if len(req.DocumentosURLs) > 0 {
		urls := make([]interface{}, len(req.DocumentosURLs))
		for i, u := range req.DocumentosURLs {
			urls[i] = u
		}
		solicitud.DocumentosURLs = models.JSONB{"urls": urls}
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		// The unique index on numero turns a concurrent race into a
		// retryable constraint error instead of a duplicated number.
		var ultimo int
		row := tx.Model(&models.Solicitud{}).
			Select("COALESCE(MAX(numero), 1000)").
			Row()
		if err := row.Scan(&ultimo); err != nil {
			return storeError(err)
		}

		solicitud.Numero = ultimo + 1
		if err := tx.Create(solicitud).Error; err != nil {
			return storeError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return solicitud, nil
}

// GetSolicitud fetches one record under the caller's visibility. Citizens
// query scoped to their own records, so a miss is indistinguishable from a
// record owned by someone else.
func (s *SolicitudService) GetSolicitud(caller Caller, id uuid.UUID) (*models.Solicitud, error) {
	query := s.db.Model(&models.Solicitud{})

	switch {
	case caller.Can(OpVerTodas):
		query = query.Where("id = ?", id)
	case caller.Can(OpVerPropias):
		query = query.Where("id = ? AND solicitante_id = ?", id, caller.ID)
	default:
		return nil, ErrUnauthorized
	}

	var solicitud models.Solicitud
	if err := query.First(&solicitud).Error; err != nil {
		return nil, storeError(err)
	}
	return &solicitud, nil
}

// ListSolicitudes returns every record visible to the caller, newest first.
func (s *SolicitudService) ListSolicitudes(caller Caller) ([]models.Solicitud, error) {
	query := s.db.Model(&models.Solicitud{}).Order("fecha_solicitud DESC")

	switch {
	case caller.Can(OpVerTodas):
	case caller.Can(OpVerPropias):
		query = query.Where("solicitante_id = ?", caller.ID)
	default:
		return nil, ErrUnauthorized
	}

	var solicitudes []models.Solicitud
	if err := query.Find(&solicitudes).Error; err != nil {
		return nil, storeError(err)
	}
	return solicitudes, nil
}

// CambiarEstado applies one workflow transition atomically. Authorization and
// target-status validation run before any lookup, so unauthorized callers
// learn nothing about the record and invalid statuses never touch it.
func (s *SolicitudService) CambiarEstado(caller Caller, id uuid.UUID, nuevoEstado models.Estado, observaciones string) (*models.Solicitud, error) {
	if !caller.Can(OpCambiarEstado) {
		return nil, ErrUnauthorized
	}

	if !nuevoEstado.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, nuevoEstado)
	}

	var solicitud models.Solicitud
	var notificar bool

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&solicitud, "id = ?", id).Error; err != nil {
			return storeError(err)
		}

		if !transicionPermitida(solicitud.Estado, nuevoEstado) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, solicitud.Estado, nuevoEstado)
		}

		// Same-state transition: accepted, only observaciones may change.
		if solicitud.Estado == nuevoEstado {
			if observaciones != "" {
				solicitud.Observaciones = observaciones
				if err := tx.Model(&solicitud).Update("observaciones", observaciones).Error; err != nil {
					return storeError(err)
				}
			}
			return nil
		}

		anterior := solicitud.Estado
		ahora := time.Now()

		updates := map[string]interface{}{
			"estado":        nuevoEstado,
			"observaciones": observaciones,
		}

		switch nuevoEstado {
		case models.EstadoAprobado:
			// The grant window is fixed at first approval and never cleared.
			if solicitud.FechaVencimiento == nil {
				vencimiento := ahora.Add(VigenciaCertificado)
				solicitud.FechaVencimiento = &vencimiento
				updates["fecha_vencimiento"] = &vencimiento
			}
			notificar = true
		case models.EstadoRechazado:
			if observaciones == "" {
				updates["observaciones"] = ObservacionRechazoDefault
			}
			notificar = true
		case models.EstadoInspeccion:
			inspeccion := &models.Inspeccion{
				SolicitudID:     solicitud.ID,
				InspectorID:     &caller.ID,
				Estado:          models.InspeccionProgramada,
				FechaProgramada: ahora,
				Observaciones:   observaciones,
			}
			if err := tx.Create(inspeccion).Error; err != nil {
				return storeError(err)
			}
		}

		if anterior == models.EstadoInspeccion {
			completada := map[string]interface{}{
				"estado":        models.InspeccionCompletada,
				"completada_at": &ahora,
			}
			if err := tx.Model(&models.Inspeccion{}).
				Where("solicitud_id = ? AND estado = ?", solicitud.ID, models.InspeccionProgramada).
				Updates(completada).Error; err != nil {
				return storeError(err)
			}
		}

		if err := tx.Model(&solicitud).Updates(updates).Error; err != nil {
			return storeError(err)
		}

		solicitud.Estado = nuevoEstado
		solicitud.Observaciones = updates["observaciones"].(string)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if notificar {
		go s.notificarCambioEstado(&solicitud)
	}

	return &solicitud, nil
}

func (s *SolicitudService) notificarCambioEstado(solicitud *models.Solicitud) {
	if s.notificaciones == nil {
		return
	}

	switch solicitud.Estado {
	case models.EstadoAprobado:
		s.notificaciones.SendSolicitudAprobada(solicitud)
	case models.EstadoRechazado:
		s.notificaciones.SendSolicitudRechazada(solicitud)
	}
}
