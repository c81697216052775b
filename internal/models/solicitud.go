// internal/models/solicitud.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// Solicitud is a Habilitación Precaria request. Each record is owned by the
// citizen account that filed it; status transitions are reserved to
// inspectors and administrators.
type Solicitud struct {
	BaseModel
	Numero        int       `json:"numero_afap" gorm:"uniqueIndex;not null"`
	SolicitanteID uuid.UUID `json:"solicitante_id" gorm:"type:uuid;not null;index"`

	// Datos del solicitante (snapshot al momento de la solicitud)
	SolicitanteNombre   string `json:"solicitante_nombre" gorm:"size:100;not null"`
	SolicitanteApellido string `json:"solicitante_apellido" gorm:"size:100;not null"`
	SolicitanteCuitCuil string `json:"solicitante_cuit_cuil" gorm:"size:13;not null"`
	SolicitanteTelefono string `json:"solicitante_telefono" gorm:"size:30"`
	SolicitanteEmail    string `json:"solicitante_email" gorm:"size:255"`

	// Datos del titular
	TitularTipo   TitularTipo `json:"titular_tipo" gorm:"type:varchar(10);not null;default:'fisica'"`
	TitularNombre string      `json:"titular_nombre" gorm:"size:150;not null"`
	TitularCuit   string      `json:"titular_cuit" gorm:"size:13;not null"`
	CuentaABL     string      `json:"cuenta_abl" gorm:"size:30"`

	// Domicilio del local
	DomicilioCalle     string `json:"domicilio_calle" gorm:"size:150;not null"`
	DomicilioAltura    string `json:"domicilio_altura" gorm:"size:10;not null"`
	DomicilioPiso      string `json:"domicilio_piso" gorm:"size:10"`
	DomicilioDepto     string `json:"domicilio_depto" gorm:"size:10"`
	DomicilioLocal     string `json:"domicilio_local" gorm:"size:10"`
	DomicilioLocalidad string `json:"domicilio_localidad" gorm:"size:100;not null"`

	// Rubro
	RubroTipo        string  `json:"rubro_tipo" gorm:"size:100;not null;index"`
	RubroSubrubro    string  `json:"rubro_subrubro" gorm:"size:100"`
	RubroDescripcion string  `json:"rubro_descripcion" gorm:"type:text"`
	MetrosCuadrados  float64 `json:"metros_cuadrados"`

	// Características constructivas
	TechosCielorrasos string `json:"techos_cielorasos" gorm:"size:100"`
	PisosMaterial     string `json:"pisos_material" gorm:"size:100"`

	// Sanitarios
	TieneSanitarios          bool `json:"tiene_sanitarios" gorm:"default:true"`
	SanitariosAccesoDirecto  bool `json:"sanitarios_acceso_directo"`
	SanitariosAntecamara     bool `json:"sanitarios_antecamara"`
	SanitariosLavabosM       int  `json:"sanitarios_lavabos_m"`
	SanitariosRetretesM      int  `json:"sanitarios_retretes_m"`
	SanitariosLavabosF       int  `json:"sanitarios_lavabos_f"`
	SanitariosRetretesF      int  `json:"sanitarios_retretes_f"`
	SanitariosMingitorios    int  `json:"sanitarios_migitorios"`
	SanitariosDiscapacitados bool `json:"sanitarios_discapacitados"`
	CantidadTrabajadores     int  `json:"cantidad_trabajadores" gorm:"default:1"`

	DocumentosURLs JSONB `json:"documentos_urls" gorm:"type:jsonb"`

	// Workflow
	Estado           Estado     `json:"estado" gorm:"type:varchar(20);not null;default:'pendiente';index"`
	FechaSolicitud   time.Time  `json:"fecha_solicitud" gorm:"not null"`
	FechaVencimiento *time.Time `json:"fecha_vencimiento"`
	Observaciones    string     `json:"observaciones" gorm:"type:text"`

	// Relationships
	Solicitante User `json:"solicitante,omitempty" gorm:"foreignKey:SolicitanteID"`
}

// CertificadoPublico is the reduced projection served by the anonymous
// verification endpoint. Only fields printed on the certificate itself.
type CertificadoPublico struct {
	Numero             int         `json:"numero_afap"`
	Estado             Estado      `json:"estado"`
	TitularTipo        TitularTipo `json:"titular_tipo"`
	TitularNombre      string      `json:"titular_nombre"`
	TitularCuit        string      `json:"titular_cuit"`
	DomicilioCalle     string      `json:"domicilio_calle"`
	DomicilioAltura    string      `json:"domicilio_altura"`
	DomicilioLocalidad string      `json:"domicilio_localidad"`
	RubroTipo          string      `json:"rubro_tipo"`
	RubroDescripcion   string      `json:"rubro_descripcion"`
	MetrosCuadrados    float64     `json:"metros_cuadrados"`
	FechaSolicitud     time.Time   `json:"fecha_solicitud"`
	FechaVencimiento   *time.Time  `json:"fecha_vencimiento,omitempty"`
	Observaciones      string      `json:"observaciones,omitempty"`
}

// Publico builds the certificate-facing view of the solicitud.
func (s *Solicitud) Publico() *CertificadoPublico {
	return &CertificadoPublico{
		Numero:             s.Numero,
		Estado:             s.Estado,
		TitularTipo:        s.TitularTipo,
		TitularNombre:      s.TitularNombre,
		TitularCuit:        s.TitularCuit,
		DomicilioCalle:     s.DomicilioCalle,
		DomicilioAltura:    s.DomicilioAltura,
		DomicilioLocalidad: s.DomicilioLocalidad,
		RubroTipo:          s.RubroTipo,
		RubroDescripcion:   s.RubroDescripcion,
		MetrosCuadrados:    s.MetrosCuadrados,
		FechaSolicitud:     s.FechaSolicitud,
		FechaVencimiento:   s.FechaVencimiento,
		Observaciones:      s.Observaciones,
	}
}

func (Solicitud) TableName() string {
	return "solicitudes"
}
