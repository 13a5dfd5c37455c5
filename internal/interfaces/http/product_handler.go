package http

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Inventario-asociaciones/internal/application/dto"
	"github.com/jhoicas/Inventario-asociaciones/internal/application/usecase"
	"github.com/jhoicas/Inventario-asociaciones/internal/domain"
	"github.com/jhoicas/Inventario-asociaciones/internal/domain/repository"
	"github.com/jhoicas/Inventario-asociaciones/internal/domain/tenant"
)

// ProductHandler maneja las peticiones HTTP para Product (protegido).
type ProductHandler struct {
	uc     *usecase.ProductUseCase
	upload *usecase.ProductUploadUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase, upload *usecase.ProductUploadUseCase) *ProductHandler {
	return &ProductHandler{uc: uc, upload: upload}
}

// Create godoc
// @Summary      Crear producto
// @Description  El producto nace con cantidad 0; el stock se carga con una reposición.
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.Context(), GetScope(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Upload godoc
// @Summary      Crear producto con imagen
// @Description  Multipart: file (imagen), formData (JSON del producto) y email (debe coincidir con el token).
// @Tags         products
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file      formData  file    true  "Imagen del producto"
// @Param        formData  formData  string  true  "JSON con name, description, price, categoryId, unit"
// @Param        email     formData  string  true  "Email de la asociación"
// @Success      200  {object}  dto.ResultResponse
// @Failure      400  {object}  dto.ResultResponse
// @Failure      403  {object}  dto.ResultResponse
// @Failure      500  {object}  dto.ResultResponse
// @Router       /api/products/upload [post]
func (h *ProductHandler) Upload(c *fiber.Ctx) error {
	email := c.FormValue("email")
	if email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ResultResponse{Message: "usuario no autenticado"})
	}
	raw := c.FormValue("formData")
	if raw == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ResultResponse{Message: "faltan los datos del producto"})
	}
	file, err := c.FormFile("file")
	if err != nil || file == nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ResultResponse{Message: "falta el archivo de imagen"})
	}
	if tenant.NormalizeEmail(email) != tenant.NormalizeEmail(GetEmail(c)) {
		return c.Status(fiber.StatusForbidden).JSON(dto.ResultResponse{Message: "el email no corresponde al usuario autenticado"})
	}
	var in dto.CreateProductRequest
	if err := json.Unmarshal([]byte(raw), &in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ResultResponse{Message: "datos del producto inválidos"})
	}

	f, err := file.Open()
	if err != nil {
		c.Locals(localError, err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ResultResponse{Message: "no se pudo leer la imagen"})
	}
	defer f.Close()

	if _, err := h.upload.CreateWithImage(c.Context(), GetScope(c), in, file.Filename, f); err != nil {
		status, _ := errorStatus(err)
		msg := err.Error()
		if status == fiber.StatusInternalServerError {
			c.Locals(localError, err)
			msg = "error del servidor"
		}
		if errors.Is(err, domain.ErrAssociationNotFound) {
			msg = "no se encontró ninguna asociación para este email"
		}
		return c.Status(status).JSON(dto.ResultResponse{Message: msg})
	}
	return c.JSON(dto.ResultResponse{Success: true, Message: "producto creado con éxito"})
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), GetScope(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar productos
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        category_id  query  string  false  "Filtrar por categoría"
// @Param        search       query  string  false  "Buscar en el nombre"
// @Success      200  {array}  dto.ProductResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), GetScope(c), repository.ProductFilter{
		CategoryID: c.Query("category_id"),
		Search:     c.Query("search"),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar producto
// @Description  No modifica la cantidad: el stock solo cambia con reposiciones y salidas.
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.UpdateProductRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.Context(), GetScope(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar producto
// @Description  Un producto con movimientos en el libro no se puede borrar (409).
// @Tags         products
// @Security     Bearer
// @Param        id   path  string  true  "ID del producto"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), GetScope(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
