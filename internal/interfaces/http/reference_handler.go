package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
)

// ReferenceHandler expone los datos de referencia (protegido). Son lecturas
// passthrough sin lógica, por eso va directo contra los puertos.
type ReferenceHandler struct {
	paymentMethodRepo repository.PaymentMethodRepository
	supplierRepo      repository.SupplierRepository
	departmentRepo    repository.DepartmentRepository
}

// NewReferenceHandler construye el handler.
func NewReferenceHandler(
	paymentMethodRepo repository.PaymentMethodRepository,
	supplierRepo repository.SupplierRepository,
	departmentRepo repository.DepartmentRepository,
) *ReferenceHandler {
	return &ReferenceHandler{
		paymentMethodRepo: paymentMethodRepo,
		supplierRepo:      supplierRepo,
		departmentRepo:    departmentRepo,
	}
}

// ListPaymentMethods godoc
// @Summary      Listar métodos de pago
// @Tags         reference
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  entity.PaymentMethod
// @Router       /api/payment-methods [get]
func (h *ReferenceHandler) ListPaymentMethods(c *fiber.Ctx) error {
	out, err := h.paymentMethodRepo.List()
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(out)
}

// ListSuppliers godoc
// @Summary      Listar proveedores
// @Tags         reference
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  entity.Supplier
// @Router       /api/suppliers [get]
func (h *ReferenceHandler) ListSuppliers(c *fiber.Ctx) error {
	out, err := h.supplierRepo.List()
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(out)
}

// ListDepartments godoc
// @Summary      Listar departamentos
// @Tags         reference
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  entity.Department
// @Router       /api/departments [get]
func (h *ReferenceHandler) ListDepartments(c *fiber.Ctx) error {
	out, err := h.departmentRepo.List()
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(out)
}
