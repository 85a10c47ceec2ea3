package model

import (
	"time"

	"github.com/google/uuid"
)

// Catalogo stores the generic enumerations (incoterm, forma_pago, moneda...)
// grouped by Categoria and ordered by Orden.
type Catalogo struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Categoria   string    `gorm:"index;not null"`
	Valor       string    `gorm:"not null"`
	Descripcion *string
	Activo      bool `gorm:"not null;default:true"`
	Orden       int  `gorm:"not null;default:0"`
	CreatedAt   time.Time
}

func (Catalogo) TableName() string { return "catalogos" }

// Naviera is a shipping line.
type Naviera struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre    string    `gorm:"uniqueIndex;not null"`
	CreatedAt time.Time
}

func (Naviera) TableName() string { return "navieras" }

type Nave struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre    string    `gorm:"index;not null"`
	CreatedAt time.Time
}

func (Nave) TableName() string { return "naves" }

// NavieraNave links a vessel to the carriers that operate it.
type NavieraNave struct {
	NavieraID uuid.UUID `gorm:"type:uuid;primaryKey"`
	NaveID    uuid.UUID `gorm:"type:uuid;primaryKey"`
}

func (NavieraNave) TableName() string { return "navieras_naves" }

// Destino is a port of discharge. Pais is copied onto the operation when the
// destination is chosen.
type Destino struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre string    `gorm:"uniqueIndex;not null"`
	Pais   *string
	Activo bool `gorm:"not null;default:true"`
}

func (Destino) TableName() string { return "destinos" }

type PuertoOrigen struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre string    `gorm:"uniqueIndex;not null"`
	Activo bool      `gorm:"not null;default:true"`
}

func (PuertoOrigen) TableName() string { return "puertos_origen" }

type Planta struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre string    `gorm:"uniqueIndex;not null"`
	Activo bool      `gorm:"not null;default:true"`
}

func (Planta) TableName() string { return "plantas" }

type Deposito struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre string    `gorm:"uniqueIndex;not null"`
	Activo bool      `gorm:"not null;default:true"`
}

func (Deposito) TableName() string { return "depositos" }

type Consignatario struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre string    `gorm:"uniqueIndex;not null"`
	Activo bool      `gorm:"not null;default:true"`
}

func (Consignatario) TableName() string { return "consignatarios" }

type Especie struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre string    `gorm:"uniqueIndex;not null"`
}

func (Especie) TableName() string { return "especies" }

// Empresa is an entry of the client-company catalog used by the booking form.
type Empresa struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre    string    `gorm:"uniqueIndex;not null"`
	CreatedAt time.Time
}

func (Empresa) TableName() string { return "empresas" }
