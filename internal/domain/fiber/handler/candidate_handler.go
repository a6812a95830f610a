package handler

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/fadilmartias/connect-matching/internal/dto"
	"github.com/fadilmartias/connect-matching/internal/middleware"
	"github.com/fadilmartias/connect-matching/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TextExtractor func(ctx context.Context, data []byte, logger *zap.Logger) (string, error)

type CandidateHandler struct {
	uc      MatchingUsecase
	extract TextExtractor
	logger  *zap.Logger
}

func NewCandidateHandler(uc MatchingUsecase, logger *zap.Logger) *CandidateHandler {
	return &CandidateHandler{uc: uc, extract: util.ExtractPDFText, logger: logger}
}

func (h *CandidateHandler) RegisterRoutes(router fiber.Router) {
	candidates := router.Group("/candidates")
	candidates.Post("/", h.Create)
	candidates.Get("/:id", h.Get)
	candidates.Put("/:id", h.Update)
	candidates.Post("/:id/cv", middleware.RateLimiter(5, time.Minute), h.UploadCV)
}

func (h *CandidateHandler) Create(c *fiber.Ctx) error {
	var req dto.CandidateRequest
	if ok, err := bind(c, &req); !ok {
		return err
	}

	candidate := req.ToModel()
	if err := h.uc.CreateCandidate(c.UserContext(), candidate); err != nil {
		return failure(c, "failed to create candidate", err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Candidate created",
		Data:    candidate,
	})
}

func (h *CandidateHandler) Get(c *fiber.Ctx) error {
	if ok, err := validUUID(c, "id"); !ok {
		return err
	}

	candidate, err := h.uc.GetCandidate(c.UserContext(), c.Params("id"))
	if err != nil {
		return failure(c, "candidate not found", err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get candidate",
		Data:    candidate,
	})
}

func (h *CandidateHandler) Update(c *fiber.Ctx) error {
	if ok, err := validUUID(c, "id"); !ok {
		return err
	}
	var req dto.CandidateRequest
	if ok, err := bind(c, &req); !ok {
		return err
	}

	candidate := req.ToModel()
	candidate.ID = uuid.MustParse(c.Params("id"))
	if err := h.uc.UpdateCandidate(c.UserContext(), candidate); err != nil {
		return failure(c, "failed to update candidate", err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Candidate updated",
		Data:    candidate,
	})
}

// UploadCV extracts the text of a PDF CV and stores it, with its embedding, on the candidate.
func (h *CandidateHandler) UploadCV(c *fiber.Ctx) error {
	if ok, err := validUUID(c, "id"); !ok {
		return err
	}

	file, err := c.FormFile("cv")
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "cv file is required",
		}, err)
	}
	if file.Size > util.MaxCVBytes {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusRequestEntityTooLarge,
			Message: fmt.Sprintf("cv file size is too large (max %dMB)", util.MaxCVBytes/1024/1024),
		})
	}
	if ext := strings.ToLower(filepath.Ext(file.Filename)); ext != ".pdf" {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusUnsupportedMediaType,
			Message: "unsupported cv file type",
		})
	}

	f, err := file.Open()
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{Message: "cannot read cv file"}, err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{Message: "cannot read cv file"}, err)
	}

	text, err := h.extract(c.UserContext(), data, h.logger)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusUnprocessableEntity,
			Message: "failed to extract cv text",
		}, err)
	}

	embedded, err := h.uc.AttachCV(c.UserContext(), c.Params("id"), text)
	if err != nil {
		return failure(c, "failed to attach cv", err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "CV attached",
		Data: dto.CVResponse{
			CandidateID: uuid.MustParse(c.Params("id")),
			Characters:  len([]rune(text)),
			Embedded:    embedded,
		},
	})
}
