package http

import (
	"io"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/jobboard-api/internal/application/dto"
	"github.com/jhoicas/jobboard-api/internal/application/intake"
	"github.com/jhoicas/jobboard-api/pkg/logger"
)

// ApplicationHandler maneja postulaciones y la descarga de CVs.
type ApplicationHandler struct {
	uc  *intake.IntakeUseCase
	log *logger.Logger
}

// NewApplicationHandler construye el handler.
func NewApplicationHandler(uc *intake.IntakeUseCase, log *logger.Logger) *ApplicationHandler {
	return &ApplicationHandler{uc: uc, log: log}
}

// Apply godoc
// @Summary      Postular a una oferta (multipart)
// @Tags         applications
// @Security     Bearer
// @Accept       mpfd
// @Produce      json
// @Param        id               path      string  true  "ID de la oferta"
// @Param        applicant_id     formData  string  true  "ID del postulante"
// @Param        applicant_name   formData  string  true  "Nombre"
// @Param        applicant_email  formData  string  true  "Email"
// @Param        cover_letter     formData  string  true  "Carta (mín. 50 caracteres)"
// @Param        resume           formData  file    true  "CV pdf/doc/docx, máx. 5 MiB"
// @Success      201  {object}  dto.ApplicationCreatedResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Failure      429  {object}  dto.ErrorResponse
// @Router       /api/jobs/{id}/apply [post]
func (h *ApplicationHandler) Apply(c *fiber.Ctx) error {
	var in dto.SubmitApplicationRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	var resume *intake.ResumeFile
	if fh, err := c.FormFile("resume"); err == nil {
		resume, err = readResume(fh)
		if err != nil {
			return badBody(c)
		}
	}
	out, err := h.uc.Submit(c.UserContext(), GetPrincipal(c), c.Params("id"), in, resume)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ApplicationCreatedResponse{Application: *out})
}

// readResume lee como mucho MaxResumeBytes+1; el tamaño declarado lo valida el caso de uso.
func readResume(fh *multipart.FileHeader) (*intake.ResumeFile, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	content, err := io.ReadAll(io.LimitReader(f, intake.MaxResumeBytes+1))
	if err != nil {
		return nil, err
	}
	size := fh.Size
	if int64(len(content)) > size {
		size = int64(len(content))
	}
	return &intake.ResumeFile{Filename: fh.Filename, Size: size, Content: content}, nil
}

// List godoc
// @Summary      Listar postulaciones visibles para el usuario
// @Tags         applications
// @Security     Bearer
// @Produce      json
// @Param        page      query  int  false  "Página"           default(1)
// @Param        per_page  query  int  false  "Tamaño de página" default(15)
// @Success      200  {object}  dto.ApplicationListResponse
// @Router       /api/applications [get]
func (h *ApplicationHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), GetPrincipal(c), pageFromQuery(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Detalle de postulación
// @Tags         applications
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la postulación"
// @Success      200  {object}  dto.ApplicationResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/applications/{id} [get]
func (h *ApplicationHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), GetPrincipal(c), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Cambiar estado de la postulación
// @Tags         applications
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                              true  "ID de la postulación"
// @Param        body  body  dto.UpdateApplicationStatusRequest  true  "Nuevo estado"
// @Success      200   {object}  dto.ApplicationResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/applications/{id}/status [patch]
func (h *ApplicationHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateApplicationStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateStatus(c.UserContext(), GetPrincipal(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Retirar postulación
// @Tags         applications
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la postulación"
// @Success      200  {object}  dto.MessageResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/applications/{id} [delete]
func (h *ApplicationHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetPrincipal(c), c.Params("id")); err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.MessageResponse{Message: "postulación eliminada"})
}

// Resume godoc
// @Summary      Descargar CV
// @Description  Disco local: el archivo como adjunto. Almacenamiento de objetos: JSON con URL firmada.
// @Tags         applications
// @Security     Bearer
// @Produce      octet-stream
// @Param        id   path  string  true  "ID de la postulación"
// @Success      200  {object}  dto.ResumeURLResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/applications/{id}/resume [get]
func (h *ApplicationHandler) Resume(c *fiber.Ctx) error {
	f, err := h.uc.Resume(c.UserContext(), GetPrincipal(c), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	if f.Signed() {
		return c.JSON(dto.ResumeURLResponse{URL: f.URL, ExpiresAt: f.ExpiresAt})
	}
	c.Attachment(f.Name)
	c.Set(fiber.HeaderContentType, f.ContentType)
	return c.SendStream(f.Body, int(f.Size))
}
