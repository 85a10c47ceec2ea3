package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"embarques/internal/dto"
	"embarques/internal/i18n"
	"embarques/internal/model"
	"embarques/internal/projection"
	"embarques/internal/repository"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Content types accepted for documents, as detected from the bytes.
var tiposPermitidos = []string{
	"application/pdf",
	"application/vnd.ms-excel",
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

// DocumentoService manages the fixed document slots of each operation.
type DocumentoService interface {
	Operaciones(ctx context.Context, s i18n.Settings, q string) ([]dto.OperacionResumen, error)
	Slots(ctx context.Context, s i18n.Settings, operacionID uuid.UUID) (dto.DocumentosOperacionResponse, error)
	Subir(ctx context.Context, s i18n.Settings, operacionID uuid.UUID, tipo, nombre string, data []byte) (dto.DocumentoSubidoResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID, confirmado bool) error
}

type documentoService struct {
	ops      repository.OperacionRepository
	docs     repository.DocumentoRepository
	blobs    BlobStorage
	maxBytes int64
	now      func() time.Time
}

func NewDocumentoService(ops repository.OperacionRepository, docs repository.DocumentoRepository, blobs BlobStorage, maxBytes int64) DocumentoService {
	return &documentoService{ops: ops, docs: docs, blobs: blobs, maxBytes: maxBytes, now: time.Now}
}

func mapDocumento(d model.Documento) dto.DocumentoResponse {
	return dto.DocumentoResponse{
		ID:            d.ID,
		Tipo:          d.Tipo,
		NombreArchivo: d.NombreArchivo,
		URL:           d.URL,
		Tamano:        d.Tamano,
		MimeType:      d.MimeType,
		CreatedAt:     d.CreatedAt,
	}
}

func (s *documentoService) Operaciones(ctx context.Context, st i18n.Settings, q string) ([]dto.OperacionResumen, error) {
	ops, err := s.ops.Buscar(ctx, repository.FiltroOperaciones{Q: q})
	if err != nil {
		return nil, err
	}
	return mapResumenes(ops, st), nil
}

func (s *documentoService) activa(ctx context.Context, id uuid.UUID) (*model.Operacion, error) {
	op, err := s.ops.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOperacionNoEncontrada
		}
		return nil, err
	}
	if op.Ciclo() != model.Activa {
		return nil, ErrOperacionNoEncontrada
	}
	return op, nil
}

// Slots lists every document kind in display order with its file, if any.
func (s *documentoService) Slots(ctx context.Context, st i18n.Settings, operacionID uuid.UUID) (dto.DocumentosOperacionResponse, error) {
	op, err := s.activa(ctx, operacionID)
	if err != nil {
		return dto.DocumentosOperacionResponse{}, err
	}
	docs, err := s.docs.ListByOperacion(ctx, operacionID)
	if err != nil {
		return dto.DocumentosOperacionResponse{}, err
	}
	porTipo := make(map[model.TipoDocumento]model.Documento, len(docs))
	for _, d := range docs {
		porTipo[d.Tipo] = d
	}

	out := dto.DocumentosOperacionResponse{
		Operacion: mapResumen(*op, st),
		Slots:     make([]dto.SlotDocumento, 0, len(model.TiposDocumento)),
	}
	for _, t := range model.TiposDocumento {
		slot := dto.SlotDocumento{Tipo: t}
		if d, ok := porTipo[t]; ok {
			r := mapDocumento(d)
			slot.Documento = &r
			out.Subidos++
		}
		out.Slots = append(out.Slots, slot)
	}
	return out, nil
}

// Subir stores a file in a slot, replacing whatever the slot held. The type
// is sniffed from the content; the client's declared type is ignored.
func (s *documentoService) Subir(ctx context.Context, st i18n.Settings, operacionID uuid.UUID, tipo, nombre string, data []byte) (dto.DocumentoSubidoResponse, error) {
	t := model.TipoDocumento(strings.ToUpper(strings.TrimSpace(tipo)))
	if !t.Valido() {
		return dto.DocumentoSubidoResponse{}, ErrTipoDocumento
	}
	if int64(len(data)) > s.maxBytes {
		return dto.DocumentoSubidoResponse{}, ErrArchivoGrande
	}
	mt := mimetype.Detect(data)
	if !mimetype.EqualsAny(mt.String(), tiposPermitidos...) && !permitidoPorPadre(mt) {
		return dto.DocumentoSubidoResponse{}, ErrTipoArchivo
	}

	op, err := s.activa(ctx, operacionID)
	if err != nil {
		return dto.DocumentoSubidoResponse{}, err
	}
	anterior, err := s.docs.FindSlot(ctx, operacionID, t)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.DocumentoSubidoResponse{}, err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		anterior = nil
	}

	ref := projection.RefASLI(op.RefASLI, op.Correlativo)
	ruta := fmt.Sprintf("documentos/%s/%s_%s_%d%s", operacionID, ref, t, s.now().UnixMilli(), mt.Extension())
	if err := s.blobs.Upload(ctx, ruta, data); err != nil {
		return dto.DocumentoSubidoResponse{}, err
	}

	doc := &model.Documento{
		OperacionID:   operacionID,
		Tipo:          t,
		NombreArchivo: nombreArchivo(nombre, ruta),
		URL:           s.blobs.PublicURL(ruta),
		Ruta:          ruta,
		Tamano:        int64(len(data)),
		MimeType:      mt.String(),
	}
	if err := s.docs.Reemplazar(ctx, doc); err != nil {
		s.descartar(ctx, ruta)
		return dto.DocumentoSubidoResponse{}, err
	}
	if anterior != nil {
		s.descartar(ctx, anterior.Ruta)
	}

	return dto.DocumentoSubidoResponse{
		Documento: mapDocumento(*doc),
		Mensaje:   st.T(i18n.DocumentoSubido),
		Reemplazo: anterior != nil,
	}, nil
}

// Eliminar removes the document row and its file. It needs confirmation.
func (s *documentoService) Eliminar(ctx context.Context, id uuid.UUID, confirmado bool) error {
	doc, err := s.docs.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDocumentoNoEncontrado
		}
		return err
	}
	if !confirmado {
		return confirmar(i18n.ConfirmarDocumento)
	}
	if err := s.blobs.Remove(ctx, doc.Ruta); err != nil {
		return err
	}
	return s.docs.Delete(ctx, doc.ID)
}

func (s *documentoService) descartar(ctx context.Context, ruta string) {
	if err := s.blobs.Remove(ctx, ruta); err != nil {
		log.Warn().Err(err).Str("ruta", ruta).Msg("documentos: no se pudo borrar el archivo")
	}
}

// permitidoPorPadre accepts subtypes of the allowed formats, e.g. an xlsx
// detected through its zip container chain.
func permitidoPorPadre(mt *mimetype.MIME) bool {
	for p := mt.Parent(); p != nil; p = p.Parent() {
		if p.Is("application/vnd.openxmlformats-officedocument.spreadsheetml.sheet") {
			return true
		}
	}
	return false
}

func nombreArchivo(nombre, ruta string) string {
	nombre = strings.TrimSpace(path.Base(strings.ReplaceAll(nombre, "\\", "/")))
	if nombre == "" || nombre == "." || nombre == "/" {
		return path.Base(ruta)
	}
	return nombre
}
