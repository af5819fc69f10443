package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"fleet-service/internal/model"
	"fleet-service/internal/storage"
)

// allowedUploadTypes maps an accepted file extension to the content types
// the file body may sniff as.
var allowedUploadTypes = map[string][]string{
	".jpeg": {"image/jpeg"},
	".jpg":  {"image/jpeg"},
	".png":  {"image/png"},
	".gif":  {"image/gif"},
	".pdf":  {"application/pdf"},
	".doc":  {"application/msword", "application/x-ole-storage"},
	".docx": {"application/vnd.openxmlformats-officedocument.wordprocessingml.document", "application/zip"},
}

type UploadLimits struct {
	MaxFiles    int
	MaxFileSize int64
}

type UploadFile struct {
	FileName string
	Size     int64
	Content  io.ReadSeeker
}

type UploadDocumentsInput struct {
	EntityID     string
	EntityType   string
	DocumentType string
	ExpiryDate   *string
	Files        []UploadFile
}

type DocumentService struct {
	documentRepo DocumentStore
	blobs        storage.Storage
	limits       UploadLimits
	log          zerolog.Logger
}

func NewDocumentService(documentRepo DocumentStore, blobs storage.Storage, limits UploadLimits, log zerolog.Logger) *DocumentService {
	return &DocumentService{
		documentRepo: documentRepo,
		blobs:        blobs,
		limits:       limits,
		log:          log,
	}
}

// Upload validates every file before any is stored, then stores blobs and
// rows one by one. Blobs of a failed batch are removed again.
func (s *DocumentService) Upload(ctx context.Context, principal model.Principal, input UploadDocumentsInput) ([]model.Document, error) {
	entityID, err := parseID(input.EntityID, "entityId")
	if err != nil {
		return nil, err
	}
	entityType := model.DocumentEntityType(strings.ToLower(strings.TrimSpace(input.EntityType)))
	if !entityType.Valid() {
		return nil, invalidInput("unknown entityType %q", input.EntityType)
	}
	documentType := strings.TrimSpace(input.DocumentType)
	if documentType == "" {
		return nil, invalidInput("documentType is required")
	}
	expiry, err := parseOptionalTime(input.ExpiryDate, "expiryDate")
	if err != nil {
		return nil, err
	}

	contentTypes, err := s.validateFiles(input.Files)
	if err != nil {
		return nil, err
	}

	documents := make([]model.Document, 0, len(input.Files))
	var stored []string
	rollback := func() {
		cleanupCtx := context.WithoutCancel(ctx)
		for _, document := range documents {
			if err := s.documentRepo.Delete(cleanupCtx, document.ID); err != nil {
				s.log.Warn().Err(err).Str("document_id", document.ID.String()).Msg("failed to remove partial upload row")
			}
		}
		for _, key := range stored {
			if err := s.blobs.Delete(cleanupCtx, key); err != nil {
				s.log.Warn().Err(err).Str("key", key).Msg("failed to remove orphaned upload")
			}
		}
	}

	for i, file := range input.Files {
		ext := strings.ToLower(filepath.Ext(file.FileName))
		key := fmt.Sprintf("%s/%s/%s%s", entityType, entityID, uuid.New(), ext)

		if err := s.blobs.Save(ctx, key, file.Content, file.Size, contentTypes[i]); err != nil {
			rollback()
			return nil, fmt.Errorf("store %s: %w", file.FileName, err)
		}
		stored = append(stored, key)

		uploader := principal.UserID
		document := model.Document{
			EntityID:     entityID,
			EntityType:   entityType,
			DocumentType: documentType,
			FileName:     filepath.Base(file.FileName),
			FilePath:     key,
			FileSize:     file.Size,
			ContentType:  contentTypes[i],
			UploadedBy:   &uploader,
			ExpiryDate:   expiry,
		}
		if err := s.documentRepo.Create(ctx, &document); err != nil {
			rollback()
			return nil, translateStoreError(err)
		}
		documents = append(documents, document)
	}

	return documents, nil
}

// validateFiles enforces the batch limits and returns the sniffed content
// type of each file, in order.
func (s *DocumentService) validateFiles(files []UploadFile) ([]string, error) {
	if len(files) == 0 {
		return nil, invalidInput("no files uploaded")
	}
	if len(files) > s.limits.MaxFiles {
		return nil, invalidInput("at most %d files per upload", s.limits.MaxFiles)
	}

	contentTypes := make([]string, len(files))
	for i, file := range files {
		if file.Size > s.limits.MaxFileSize {
			return nil, invalidInput("%s exceeds the %d byte limit", file.FileName, s.limits.MaxFileSize)
		}

		ext := strings.ToLower(filepath.Ext(file.FileName))
		accepted, ok := allowedUploadTypes[ext]
		if !ok {
			return nil, invalidInput("%s: only images (jpeg, jpg, png, gif), PDF and Word documents are allowed", file.FileName)
		}

		detected, err := mimetype.DetectReader(file.Content)
		if err != nil {
			return nil, fmt.Errorf("sniff %s: %w", file.FileName, err)
		}
		if _, err := file.Content.Seek(0, io.SeekStart); err != nil {
			return nil, fmt.Errorf("rewind %s: %w", file.FileName, err)
		}
		if !mimeIsAny(detected, accepted) {
			return nil, invalidInput("%s: content does not match its %s extension", file.FileName, ext)
		}
		contentTypes[i] = accepted[0]
	}

	return contentTypes, nil
}

func mimeIsAny(detected *mimetype.MIME, candidates []string) bool {
	for _, c := range candidates {
		if detected.Is(c) {
			return true
		}
	}
	return false
}

func (s *DocumentService) ListByEntity(ctx context.Context, principal model.Principal, entityType, entityID string) ([]model.Document, error) {
	t := model.DocumentEntityType(strings.ToLower(strings.TrimSpace(entityType)))
	if !t.Valid() {
		return nil, invalidInput("unknown entity_type %q", entityType)
	}
	id, err := parseID(entityID, "entity_id")
	if err != nil {
		return nil, err
	}
	return s.documentRepo.ListByEntity(ctx, t, id)
}

// DocumentContent is an open stored file; the caller closes Body.
type DocumentContent struct {
	Document model.Document
	Body     io.ReadCloser
	Size     int64
}

func (s *DocumentService) Open(ctx context.Context, principal model.Principal, id string) (*DocumentContent, error) {
	documentID, err := parseID(id, "id")
	if err != nil {
		return nil, err
	}
	document, err := s.documentRepo.GetByID(ctx, documentID)
	if err != nil {
		return nil, translateStoreError(err)
	}

	body, size, err := s.blobs.Open(ctx, document.FilePath)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("stored file %w", ErrNotFound)
		}
		return nil, err
	}

	return &DocumentContent{Document: *document, Body: body, Size: size}, nil
}

func (s *DocumentService) Delete(ctx context.Context, principal model.Principal, id string) error {
	documentID, err := parseID(id, "id")
	if err != nil {
		return err
	}
	document, err := s.documentRepo.GetByID(ctx, documentID)
	if err != nil {
		return translateStoreError(err)
	}

	isUploader := document.UploadedBy != nil && *document.UploadedBy == principal.UserID
	if !principal.IsStaff() && !isUploader {
		return ErrPermissionDenied
	}

	if err := s.blobs.Delete(ctx, document.FilePath); err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			return err
		}
		s.log.Warn().Str("document_id", document.ID.String()).Str("path", document.FilePath).Msg("stored file already missing")
	}

	return s.documentRepo.Delete(ctx, document.ID)
}
