package usecase

import (
	"context"
	"encoding/json"
	"io"
	"strings"

	"brokerdex/internal/domain/entity"
	"brokerdex/internal/domain/repository"
	"brokerdex/internal/domain/service"
	apperrors "brokerdex/pkg/errors"
	"brokerdex/pkg/logger"
)

type RegistrationUseCase struct {
	registrationRepo repository.RegistrationRepository
	storage          service.FileStorage
}

func NewRegistrationUseCase(registrationRepo repository.RegistrationRepository, storage service.FileStorage) *RegistrationUseCase {
	return &RegistrationUseCase{
		registrationRepo: registrationRepo,
		storage:          storage,
	}
}

// AttachmentUpload is one file from the multipart submission.
type AttachmentUpload struct {
	Filename string
	Size     int64
	Open     func() (io.ReadCloser, error)
}

type SubmitRegistrationInput struct {
	FullName          string
	CompanyName       string
	LegalType         entity.LegalType
	Mobile            string
	OfficePhone       string
	HomePhone         string
	Address           string
	Latitude          *float64
	Longitude         *float64
	Customs           []string
	GoodsTypes        []string
	YearsOfExperience int
	Description       string
	Attachments       []AttachmentUpload
	PhonesJSON        string
}

type SubmitRegistrationResult struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

func (uc *RegistrationUseCase) SubmitRegistration(ctx context.Context, input SubmitRegistrationInput) (*SubmitRegistrationResult, error) {
	if strings.TrimSpace(input.FullName) == "" && strings.TrimSpace(input.CompanyName) == "" {
		return nil, apperrors.BadRequest("FullName or CompanyName is required", nil)
	}
	if input.YearsOfExperience < 0 {
		return nil, apperrors.BadRequest("YearsOfExperience must not be negative", nil)
	}

	legalType := input.LegalType
	if legalType == "" {
		legalType = entity.LegalTypeIndividual
	}

	request := &entity.RegistrationRequest{
		FullName:          input.FullName,
		CompanyName:       input.CompanyName,
		LegalType:         legalType,
		Mobile:            input.Mobile,
		OfficePhone:       input.OfficePhone,
		HomePhone:         input.HomePhone,
		Address:           input.Address,
		Latitude:          input.Latitude,
		Longitude:         input.Longitude,
		Customs:           orEmpty(input.Customs),
		GoodsTypes:        orEmpty(input.GoodsTypes),
		YearsOfExperience: input.YearsOfExperience,
		Description:       input.Description,
		Status:            entity.RegistrationStatusPending,
		Phones:            parsePhonesLenient(input.PhonesJSON),
	}

	stored, err := uc.storeAttachments(ctx, input.Attachments)
	if err != nil {
		return nil, err
	}
	request.Attachments = stored.attachments

	if err := uc.registrationRepo.Create(ctx, request); err != nil {
		// The DB insert is atomic; files already on disk are cleaned up so a
		// failed submission leaves nothing behind.
		stored.cleanup(ctx, uc.storage)
		return nil, err
	}

	return &SubmitRegistrationResult{ID: request.ID, Status: request.Status}, nil
}

type storedAttachments struct {
	attachments []entity.RegistrationAttachment
	objectNames []string
}

func (s storedAttachments) cleanup(ctx context.Context, storage service.FileStorage) {
	for _, name := range s.objectNames {
		if err := storage.DeleteFile(ctx, name); err != nil {
			logger.Warn("failed to remove orphaned upload %s: %v", name, err)
		}
	}
}

// storeAttachments writes each non-empty file to storage. Zero-length files
// are silently skipped.
func (uc *RegistrationUseCase) storeAttachments(ctx context.Context, uploads []AttachmentUpload) (storedAttachments, error) {
	stored := storedAttachments{attachments: []entity.RegistrationAttachment{}}

	for _, upload := range uploads {
		if upload.Size <= 0 {
			continue
		}

		src, err := upload.Open()
		if err != nil {
			stored.cleanup(ctx, uc.storage)
			return storedAttachments{}, apperrors.Internal("Unable to read attachment", err)
		}

		result, err := uc.storage.UploadFile(ctx, src, upload.Filename)
		src.Close()
		if err != nil {
			stored.cleanup(ctx, uc.storage)
			return storedAttachments{}, apperrors.Internal("Failed to store attachment", err)
		}

		stored.attachments = append(stored.attachments, entity.RegistrationAttachment{
			FileName: upload.Filename,
			URL:      result.URL,
		})
		stored.objectNames = append(stored.objectNames, result.ObjectName)
	}

	return stored, nil
}

type phoneEntry struct {
	Type   string `json:"type"`
	Number string `json:"number"`
}

// parsePhonesLenient decodes the optional phones JSON. Malformed input is
// ignored rather than failing the submission; entries with blank numbers are
// dropped.
func parsePhonesLenient(phonesJSON string) []entity.RegistrationPhone {
	if strings.TrimSpace(phonesJSON) == "" {
		return nil
	}

	var entries []phoneEntry
	if err := json.Unmarshal([]byte(phonesJSON), &entries); err != nil {
		logger.Warn("ignoring malformed phones payload: %v", err)
		return nil
	}

	phones := []entity.RegistrationPhone{}
	for _, e := range entries {
		if strings.TrimSpace(e.Number) == "" {
			continue
		}
		phones = append(phones, entity.RegistrationPhone{Type: e.Type, Number: e.Number})
	}

	return phones
}

func orEmpty(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
