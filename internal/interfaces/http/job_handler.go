package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/jobboard-api/internal/application/dto"
	"github.com/jhoicas/jobboard-api/internal/application/usecase"
	"github.com/jhoicas/jobboard-api/internal/domain"
	"github.com/jhoicas/jobboard-api/pkg/logger"
)

// JobHandler maneja las peticiones HTTP del catálogo de ofertas.
type JobHandler struct {
	uc  *usecase.JobUseCase
	log *logger.Logger
}

// NewJobHandler construye el handler.
func NewJobHandler(uc *usecase.JobUseCase, log *logger.Logger) *JobHandler {
	return &JobHandler{uc: uc, log: log}
}

// List godoc
// @Summary      Listar ofertas públicas
// @Tags         jobs
// @Produce      json
// @Param        q          query  string  false  "Texto en título o empresa"
// @Param        job_type   query  string  false  "full-time | part-time | contract | internship"
// @Param        location   query  string  false  "Ubicación (subcadena)"
// @Param        is_remote  query  bool    false  "Solo remotas"
// @Param        page       query  int     false  "Página"          default(1)
// @Param        per_page   query  int     false  "Tamaño de página" default(15)
// @Success      200  {object}  dto.JobListResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/jobs [get]
func (h *JobHandler) List(c *fiber.Ctx) error {
	isRemote, ok := optionalBool(c.Query("is_remote"))
	if !ok {
		return writeError(c, h.log, domain.FieldError("is_remote", "debe ser true o false"))
	}
	out, err := h.uc.ListPublic(c.UserContext(), dto.JobQuery{
		Q:           c.Query("q"),
		JobType:     c.Query("job_type"),
		Location:    c.Query("location"),
		IsRemote:    isRemote,
		PageRequest: pageFromQuery(c),
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Mine godoc
// @Summary      Ofertas del usuario autenticado
// @Tags         jobs
// @Security     Bearer
// @Produce      json
// @Param        page      query  int  false  "Página"           default(1)
// @Param        per_page  query  int  false  "Tamaño de página" default(15)
// @Success      200  {object}  dto.JobListResponse
// @Router       /api/user/jobs [get]
func (h *JobHandler) Mine(c *fiber.Ctx) error {
	out, err := h.uc.ListOwnedBy(c.UserContext(), GetPrincipal(c), pageFromQuery(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Detalle de oferta
// @Tags         jobs
// @Produce      json
// @Param        id   path  string  true  "ID de la oferta"
// @Success      200  {object}  dto.JobDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/jobs/{id} [get]
func (h *JobHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear oferta
// @Tags         jobs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateJobRequest  true  "Datos de la oferta"
// @Success      201   {object}  dto.JobResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/jobs [post]
func (h *JobHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateJobRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), GetPrincipal(c), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar oferta (parcial)
// @Tags         jobs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                true  "ID de la oferta"
// @Param        body  body  dto.UpdateJobRequest  true  "Campos a cambiar"
// @Success      200   {object}  dto.JobResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/jobs/{id} [put]
func (h *JobHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateJobRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), GetPrincipal(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar oferta y sus postulaciones
// @Tags         jobs
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la oferta"
// @Success      200  {object}  dto.MessageResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/jobs/{id} [delete]
func (h *JobHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetPrincipal(c), c.Params("id")); err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.MessageResponse{Message: "oferta eliminada"})
}
