package handler

import (
	"time"

	"github.com/fadilmartias/connect-matching/internal/dto"
	"github.com/fadilmartias/connect-matching/internal/middleware"
	"github.com/fadilmartias/connect-matching/internal/response"
	"github.com/fadilmartias/connect-matching/internal/usecase"
	"github.com/fadilmartias/connect-matching/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type OfferHandler struct {
	uc MatchingUsecase
}

func NewOfferHandler(uc MatchingUsecase) *OfferHandler {
	return &OfferHandler{uc: uc}
}

func (h *OfferHandler) RegisterRoutes(router fiber.Router) {
	offers := router.Group("/offers")
	offers.Post("/", h.Create)
	offers.Get("/", h.List)
	offers.Get("/:id", h.Get)
	offers.Put("/:id", h.Update)
	offers.Post("/:id/embedding", middleware.RateLimiter(10, time.Minute), h.Index)
}

func (h *OfferHandler) Create(c *fiber.Ctx) error {
	var req dto.OfferRequest
	if ok, err := bind(c, &req); !ok {
		return err
	}

	offer := req.ToModel()
	if err := h.uc.CreateOffer(c.UserContext(), offer); err != nil {
		return failure(c, "failed to create offer", err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Offer created",
		Data:    offer,
	})
}

func (h *OfferHandler) List(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("page_size", usecase.DefaultLimit)
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > usecase.MaxLimit {
		pageSize = usecase.DefaultLimit
	}

	offers, total, err := h.uc.ListOffers(c.UserContext(), page, pageSize)
	if err != nil {
		return failure(c, "failed to list offers", err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message:    "Success list offers",
		Data:       offers,
		Pagination: response.NewPagination(page, pageSize, total),
	})
}

func (h *OfferHandler) Get(c *fiber.Ctx) error {
	if ok, err := validUUID(c, "id"); !ok {
		return err
	}

	offer, err := h.uc.GetOffer(c.UserContext(), c.Params("id"))
	if err != nil {
		return failure(c, "offer not found", err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get offer",
		Data:    offer,
	})
}

func (h *OfferHandler) Update(c *fiber.Ctx) error {
	if ok, err := validUUID(c, "id"); !ok {
		return err
	}
	var req dto.OfferRequest
	if ok, err := bind(c, &req); !ok {
		return err
	}

	offer := req.ToModel()
	offer.ID = uuid.MustParse(c.Params("id"))
	if err := h.uc.UpdateOffer(c.UserContext(), offer); err != nil {
		return failure(c, "failed to update offer", err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Offer updated",
		Data:    offer,
	})
}

func (h *OfferHandler) Index(c *fiber.Ctx) error {
	if ok, err := validUUID(c, "id"); !ok {
		return err
	}

	if err := h.uc.IndexOffer(c.UserContext(), c.Params("id")); err != nil {
		return failure(c, "failed to index offer", err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Offer indexed",
		Data:    fiber.Map{"id": c.Params("id")},
	})
}
