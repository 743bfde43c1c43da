package handlers

import (
	"errors"
	"net/http"

	"cars2customer_backend/internal/logger"
	"cars2customer_backend/internal/services"
	"cars2customer_backend/internal/services/dto"
	"cars2customer_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// multipartOverhead is allowed on top of the image limit for form framing.
const multipartOverhead = 1 << 20

type CarHandler struct {
	*BaseHandler
	carService services.CarService
	maxUpload  int64
}

func NewCarHandler(base *BaseHandler, carService services.CarService, maxUpload int64) *CarHandler {
	return &CarHandler{
		BaseHandler: base,
		carService:  carService,
		maxUpload:   maxUpload,
	}
}

func (h *CarHandler) RegisterRoutes(rg *gin.RouterGroup, requireAdmin gin.HandlerFunc) {
	rg.GET("/all-cars", h.ListByBrand)

	cars := rg.Group("/cars")
	{
		cars.GET("/:carId", h.Get)
		cars.POST("", requireAdmin, h.Create)
		cars.PUT("/:carId", requireAdmin, h.Update)
		cars.DELETE("/:carId", requireAdmin, h.Delete)
		cars.POST("/:carId/images", h.limitBody, requireAdmin, h.UploadImage)
	}
}

// ListByBrand godoc
// @Summary  Catalog grouped by brand
// @Tags     cars
// @Produce  json
// @Success  200  {object}  dto.CarsByBrandResponse
// @Router   /all-cars [get]
func (h *CarHandler) ListByBrand(c *gin.Context) {
	grouped, err := h.carService.ListByBrand(c.Request.Context())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.CarsByBrandResponse{Cars: grouped})
}

// Get godoc
// @Summary  Get a car
// @Tags     cars
// @Produce  json
// @Param    carId  path      string  true  "Car ID"
// @Success  200    {object}  dto.CarResponse
// @Failure  404    {object}  apperrors.ErrorResponse
// @Router   /cars/{carId} [get]
func (h *CarHandler) Get(c *gin.Context) {
	car, err := h.carService.Get(c.Request.Context(), c.Param("carId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.CarResponse{Car: car})
}

// Create godoc
// @Summary   Add a car
// @Tags      cars
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     body  body      dto.CreateCarRequest  true  "Listing"
// @Success   201   {object}  dto.CarResponse
// @Failure   400   {object}  apperrors.ErrorResponse
// @Failure   403   {object}  apperrors.ErrorResponse
// @Router    /cars [post]
func (h *CarHandler) Create(c *gin.Context) {
	var req dto.CreateCarRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	car, err := h.carService.Create(c.Request.Context(), req.Car.ToModel())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.CarResponse{Message: "Car added successfully!", Car: car})
}

// Update godoc
// @Summary   Edit a car
// @Tags      cars
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     carId  path      string                true  "Car ID"
// @Param     body   body      dto.UpdateCarRequest  true  "Changed fields"
// @Success   200    {object}  dto.CarResponse
// @Failure   404    {object}  apperrors.ErrorResponse
// @Router    /cars/{carId} [put]
func (h *CarHandler) Update(c *gin.Context) {
	carID, ok := h.PathParam(c, "carId")
	if !ok {
		return
	}

	var req dto.UpdateCarRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	car, err := h.carService.Update(c.Request.Context(), carID, req.UpdateData.ToUpdate())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.CarResponse{Message: "Car updated successfully!", Car: car})
}

// Delete godoc
// @Summary   Delete a car
// @Tags      cars
// @Produce   json
// @Security  BearerAuth
// @Param     carId  path      string  true  "Car ID"
// @Success   200    {object}  dto.MessageResponse
// @Failure   404    {object}  apperrors.ErrorResponse
// @Router    /cars/{carId} [delete]
func (h *CarHandler) Delete(c *gin.Context) {
	carID, ok := h.PathParam(c, "carId")
	if !ok {
		return
	}

	if err := h.carService.Delete(c.Request.Context(), carID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Car deleted successfully!"})
}

// limitBody caps multipart uploads before the form is parsed.
func (h *CarHandler) limitBody(c *gin.Context) {
	if h.maxUpload > 0 {
		if c.Request.ContentLength > h.maxUpload+multipartOverhead {
			apperrors.HandleError(c, apperrors.ErrFileTooLarge)
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUpload+multipartOverhead)
	}
	c.Next()
}

// UploadImage godoc
// @Summary   Upload a car photo
// @Tags      cars
// @Accept    multipart/form-data
// @Produce   json
// @Security  BearerAuth
// @Param     carId  path      string  true  "Car ID"
// @Param     image  formData  file    true  "JPEG, PNG or WebP image"
// @Success   201    {object}  dto.CarResponse
// @Failure   400    {object}  apperrors.ErrorResponse
// @Failure   404    {object}  apperrors.ErrorResponse
// @Router    /cars/{carId}/images [post]
func (h *CarHandler) UploadImage(c *gin.Context) {
	ctx := c.Request.Context()
	carID, ok := h.PathParam(c, "carId")
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			apperrors.HandleError(c, apperrors.ErrFileTooLarge)
			return
		}
		logger.CtxWarn(ctx, "Image missing from upload", "error", err, "car_id", carID)
		apperrors.HandleError(c, apperrors.NewBadRequestError("Field 'image' must contain a file"))
		return
	}
	if h.maxUpload > 0 && fileHeader.Size > h.maxUpload {
		apperrors.HandleError(c, apperrors.ErrFileTooLarge)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.HandleServiceError(c, apperrors.InternalError(err))
		return
	}
	defer file.Close()

	car, err := h.carService.UploadImage(ctx, carID, file)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.CarResponse{Message: "Image uploaded successfully!", Car: car})
}
