package infra

import (
	"fmt"

	"embarques/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase opens a GORM connection backed by pgx. When autoMigrate is set
// the tables are created or updated, then the idempotent SQL patches that GORM
// cannot express (partial indexes, foreign keys) are applied.
func NewDatabase(dsn string, autoMigrate bool) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if autoMigrate {
		if err := RunMigrations(db); err != nil {
			return nil, err
		}
	}
	return db, nil
}

// RunMigrations creates every table and applies the schema patches. The
// integration tests call it directly against a throwaway container.
func RunMigrations(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error; err != nil {
		return fmt.Errorf("pgcrypto: %w", err)
	}
	if err := db.AutoMigrate(
		&model.Operacion{},
		&model.Documento{},
		&model.Cliente{},
		&model.Usuario{},
		&model.Catalogo{},
		&model.Naviera{},
		&model.Nave{},
		&model.NavieraNave{},
		&model.Destino{},
		&model.PuertoOrigen{},
		&model.Planta{},
		&model.Deposito{},
		&model.Consignatario{},
		&model.Especie{},
		&model.Empresa{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that AutoMigrate does not handle.
// Each statement is guarded so re-running on a patched schema is a no-op.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		// listing of the active set
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_operaciones_activas') THEN
		    CREATE INDEX idx_operaciones_activas
		        ON operaciones (correlativo DESC)
		        WHERE deleted_at IS NULL;
		  END IF;
		END $$`,
		// trash listing
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_operaciones_papelera') THEN
		    CREATE INDEX idx_operaciones_papelera
		        ON operaciones (deleted_at DESC)
		        WHERE deleted_at IS NOT NULL;
		  END IF;
		END $$`,
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'fk_documentos_operacion') THEN
		    ALTER TABLE documentos ADD CONSTRAINT fk_documentos_operacion
		        FOREIGN KEY (operacion_id) REFERENCES operaciones(id) ON DELETE CASCADE;
		  END IF;
		END $$`,
	}

	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", sql[:min(len(sql), 60)], err)
		}
	}
	return nil
}
