package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/LazizjanAsatov/Catra/internal/domain"
	"github.com/LazizjanAsatov/Catra/internal/service"
	"github.com/LazizjanAsatov/Catra/pkg/utils"
)

const (
	formField = "file"

	// Multipart framing allowance on top of the file size limit.
	bodyOverhead = 1 << 20
)

type Handler struct {
	service     service.AnalysisService
	serviceName string
	log         *zap.Logger
}

func NewHandler(service service.AnalysisService, serviceName string, log *zap.Logger) *Handler {
	return &Handler{
		service:     service,
		serviceName: serviceName,
		log:         log,
	}
}

func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"ok":      true,
		"service": h.serviceName,
		"model":   h.service.Model(),
	})
}

func (h *Handler) Analyze(c *gin.Context) {
	maxSize := h.service.MaxUploadSize()
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxSize+bodyOverhead)

	img, err := h.readUpload(c, maxSize)
	if err != nil {
		h.writeError(c, err)
		return
	}

	payload, err := h.service.Analyze(c.Request.Context(), img)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, payload)
}

// readUpload returns a nil image when the form has no file field; the
// service reports that as MissingFile.
func (h *Handler) readUpload(c *gin.Context, maxSize int64) (*domain.UploadedImage, error) {
	file, err := c.FormFile(formField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, domain.NewError(domain.KindPayloadTooLarge, service.TooLargeMessage(maxSize), err)
		}
		h.log.Debug("No file in form", zap.Error(err))
		return nil, nil
	}

	data, err := utils.ReadFile(file, maxSize)
	if err != nil {
		h.log.Error("Failed to read upload", zap.String("filename", file.Filename), zap.Error(err))
		return nil, domain.NewError(domain.KindUnexpected, service.MsgUnexpected, err)
	}

	size := file.Size
	if int64(len(data)) > size {
		size = int64(len(data))
	}

	return &domain.UploadedImage{
		Filename:    file.Filename,
		ContentType: utils.ContentType(file.Header.Get("Content-Type"), data),
		Size:        size,
		Data:        data,
	}, nil
}

func (h *Handler) writeError(c *gin.Context, err error) {
	var de *domain.Error
	if !errors.As(err, &de) {
		de = domain.NewError(domain.KindUnexpected, service.MsgUnexpected, err)
	}

	status := statusFor(de.Kind)
	body := gin.H{"error": de.Message}

	switch de.Kind {
	case domain.KindUnparseableResponse:
		body["raw"] = de.Raw
	case domain.KindNonFoodDetected:
		body["error"] = "Non-food item detected."
		body["detail"] = service.MsgNonFood
	case domain.KindProviderUnavailable, domain.KindUnexpected:
		body["error"] = service.MsgUnexpected
		body["details"] = detailOf(de)
	}

	if status >= http.StatusInternalServerError {
		h.log.Error("Analyze failed",
			zap.String("kind", string(de.Kind)),
			zap.Int("status", status),
			zap.Error(err))
	} else {
		h.log.Info("Analyze rejected",
			zap.String("kind", string(de.Kind)),
			zap.Int("status", status))
	}

	c.JSON(status, body)
}

func statusFor(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindMissingFile, domain.KindInvalidUploadType, domain.KindNonFoodDetected:
		return http.StatusBadRequest
	case domain.KindPayloadTooLarge:
		return http.StatusRequestEntityTooLarge
	case domain.KindEmptyResponse, domain.KindUnparseableResponse:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func detailOf(de *domain.Error) string {
	if de.Err != nil {
		return de.Err.Error()
	}
	return de.Error()
}
