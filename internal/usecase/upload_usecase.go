package usecase

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"internport-backend/internal/domain"
	"internport-backend/pkg/apperror"
	"internport-backend/pkg/logger"
	"internport-backend/pkg/metrics"
	"internport-backend/pkg/security"
	"internport-backend/pkg/security/antivirus"
	"internport-backend/pkg/storage"

	"github.com/google/uuid"
)

// UploadLimiter is the part of security.UploadLimiter the usecase needs.
type UploadLimiter interface {
	AllowUpload(ctx context.Context, ip string, userID int64) (bool, int, error)
}

type uploadUsecase struct {
	store       domain.FileStore
	profileRepo domain.ProfileRepository
	scanner     antivirus.Scanner
	limiter     UploadLimiter
	audit       *security.SecurityLogger
	maxSize     int64
}

func NewUploadUsecase(
	store domain.FileStore,
	profileRepo domain.ProfileRepository,
	scanner antivirus.Scanner,
	limiter UploadLimiter,
	audit *security.SecurityLogger,
	maxSize int64,
) domain.UploadUsecase {
	if scanner == nil {
		scanner = antivirus.NoOpScanner{}
	}
	if audit == nil {
		audit = security.DefaultLogger()
	}
	return &uploadUsecase{
		store:       store,
		profileRepo: profileRepo,
		scanner:     scanner,
		limiter:     limiter,
		audit:       audit,
		maxSize:     maxSize,
	}
}

func (u *uploadUsecase) reject(ctx context.Context, in domain.ResumeUpload, reason string, err error) error {
	metrics.ResumeUploads.WithLabelValues("rejected").Inc()
	u.audit.LogUploadRejected(ctx, in.UserID, in.ClientIP, reason)
	return err
}

// StoredResumeName builds resume_{user_id}_{uuid hex}_{safe base name}.
func StoredResumeName(userID int64, filename string) string {
	return "resume_" + strconv.FormatInt(userID, 10) + "_" +
		strings.ReplaceAll(uuid.NewString(), "-", "") + "_" + SafeFilename(filename)
}

// SafeFilename reduces a client file name to ASCII letters, digits, '.', '-'
// and '_'. Directories are dropped, whitespace becomes '_' and dot runs
// collapse to one, so the result never contains a separator or "..".
func SafeFilename(filename string) string {
	base := filepath.Base(strings.ReplaceAll(filename, `\`, "/"))
	base = strings.Join(strings.Fields(base), "_")
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		}
		return -1
	}, base)
	for strings.Contains(base, "..") {
		base = strings.ReplaceAll(base, "..", ".")
	}

	ext := filepath.Ext(base)
	stem := strings.Trim(strings.TrimSuffix(base, ext), "._-")
	if stem == "" {
		stem = "resume"
	}
	return stem + ext
}

func (u *uploadUsecase) UploadResume(ctx context.Context, in domain.ResumeUpload) (string, error) {
	if in.Filename == "" {
		return "", apperror.Validation("No file selected")
	}
	if err := security.ValidateFileExtension(in.Filename); err != nil {
		return "", u.reject(ctx, in, "extension", apperror.Validation(err.Error()))
	}
	if u.maxSize > 0 && int64(len(in.Data)) > u.maxSize {
		return "", u.reject(ctx, in, "size", apperror.New(apperror.KindValidation, http.StatusRequestEntityTooLarge, "File too large", nil))
	}

	res := security.ValidateResume(in.Filename, in.Data)
	if !res.Valid {
		return "", u.reject(ctx, in, res.Error, apperror.Validation(security.ErrExtensionNotAllowed.Error()))
	}

	scan, err := u.scanner.Scan(ctx, in.Filename, in.Data)
	if err != nil {
		logger.Log.Error("resume scan failed", "scanner", u.scanner.Name(), "error", err)
		return "", u.reject(ctx, in, "scan_error", apperror.New(apperror.KindInternal, http.StatusServiceUnavailable, "File could not be scanned", err))
	}
	if scan.Infected {
		return "", u.reject(ctx, in, "infected:"+scan.ThreatName, apperror.Validation("File rejected"))
	}

	if u.limiter != nil {
		allowed, retryAfter, err := u.limiter.AllowUpload(ctx, in.ClientIP, in.UserID)
		if err != nil {
			logger.Log.Warn("upload limiter unavailable", "error", err)
		}
		if !allowed {
			return "", u.reject(ctx, in, "rate_limited", apperror.New(apperror.KindValidation, http.StatusTooManyRequests,
				"Too many uploads, retry in "+strconv.Itoa(retryAfter)+" seconds", nil))
		}
	}

	student, err := u.profileRepo.GetStudentByUserID(ctx, in.UserID)
	if err != nil {
		return "", notFound(err, "Student profile not found")
	}

	name := StoredResumeName(in.UserID, in.Filename)
	ref, err := u.store.Save(ctx, name, bytes.NewReader(in.Data), int64(len(in.Data)), res.ContentType())
	if errors.Is(err, storage.ErrInvalidName) {
		return "", u.reject(ctx, in, "filename", apperror.Validation("Invalid file name"))
	}
	if err != nil {
		return "", apperror.Internal(err)
	}

	if err := u.profileRepo.SetResumePath(ctx, student.ID, ref); err != nil {
		return "", internal(err)
	}
	metrics.ResumeUploads.WithLabelValues("accepted").Inc()
	return ref, nil
}

func (u *uploadUsecase) OpenUpload(ctx context.Context, filename string) (io.ReadCloser, error) {
	if !storage.ValidName(filename) {
		return nil, apperror.NotFound("File not found")
	}
	rc, err := u.store.Open(ctx, filename)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) || errors.Is(err, storage.ErrInvalidName) {
			return nil, apperror.NotFound("File not found")
		}
		return nil, apperror.Internal(err)
	}
	return rc, nil
}
