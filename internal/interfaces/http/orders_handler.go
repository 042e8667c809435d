package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/PuntoVenta-api/internal/application/dto"
	"github.com/jhoicas/PuntoVenta-api/internal/application/orders"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
)

// OrdersHandler maneja pedidos a proveedor y su buffer de borradores (protegido).
type OrdersHandler struct {
	workflowUC *orders.WorkflowUseCase
	draftUC    *orders.DraftUseCase
}

// NewOrdersHandler construye el handler.
func NewOrdersHandler(workflowUC *orders.WorkflowUseCase, draftUC *orders.DraftUseCase) *OrdersHandler {
	return &OrdersHandler{workflowUC: workflowUC, draftUC: draftUC}
}

// Create godoc
// @Summary      Crear cabecera de pedido (estado draft)
// @Tags         supplier-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "Proveedor y notas"
// @Success      201   {object}  dto.IDResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/supplier-orders [post]
func (h *OrdersHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.SupplierID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "supplier_id es requerido"})
	}
	out, err := h.workflowUC.CreateHeader(c.UserContext(), in)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar pedidos
// @Tags         supplier-orders
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "Filtrar por estado"
// @Success      200     {array}  dto.OrderDTO
// @Router       /api/supplier-orders [get]
func (h *OrdersHandler) List(c *fiber.Ctx) error {
	var status *entity.OrderStatus
	if raw := c.Query("status"); raw != "" {
		s := entity.OrderStatus(raw)
		if !entity.ValidStatus(s) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "estado desconocido"})
		}
		status = &s
	}
	out, err := h.workflowUC.List(c.UserContext(), status)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener pedido con sus items
// @Tags         supplier-orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del pedido"
// @Success      200  {object}  dto.OrderDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/supplier-orders/{id} [get]
func (h *OrdersHandler) Get(c *fiber.Ctx) error {
	out, err := h.workflowUC.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar pedido con sus items
// @Tags         supplier-orders
// @Security     Bearer
// @Param        id   path  string  true  "ID del pedido"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/supplier-orders/{id} [delete]
func (h *OrdersHandler) Delete(c *fiber.Ctx) error {
	if err := h.workflowUC.Delete(c.UserContext(), c.Params("id")); err != nil {
		return mapDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AddItem godoc
// @Summary      Agregar item a un pedido
// @Tags         supplier-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del pedido"
// @Param        body  body  dto.AddOrderItemRequest  true  "Producto y cantidad"
// @Success      201   {object}  dto.IDResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/supplier-orders/{id}/items [post]
func (h *OrdersHandler) AddItem(c *fiber.Ctx) error {
	var in dto.AddOrderItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.ProductID == "" || in.Quantity <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id y quantity > 0 son requeridos"})
	}
	out, err := h.workflowUC.AddItem(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateItem godoc
// @Summary      Actualizar item de un pedido
// @Description  Campos nil no se tocan. received_quantity es acumulado y solo puede crecer; la diferencia se suma al stock.
// @Tags         supplier-orders
// @Security     Bearer
// @Accept       json
// @Param        id      path  string  true  "ID del pedido"
// @Param        itemId  path  string  true  "ID del item"
// @Param        body    body  dto.UpdateOrderItemRequest  true  "Campos a actualizar"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/supplier-orders/{id}/items/{itemId} [put]
func (h *OrdersHandler) UpdateItem(c *fiber.Ctx) error {
	var in dto.UpdateOrderItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.workflowUC.UpdateItem(c.UserContext(), c.Params("id"), c.Params("itemId"), in); err != nil {
		return mapDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DeleteItem godoc
// @Summary      Eliminar item de un pedido
// @Tags         supplier-orders
// @Security     Bearer
// @Param        id      path  string  true  "ID del pedido"
// @Param        itemId  path  string  true  "ID del item"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/supplier-orders/{id}/items/{itemId} [delete]
func (h *OrdersHandler) DeleteItem(c *fiber.Ctx) error {
	if err := h.workflowUC.DeleteItem(c.UserContext(), c.Params("id"), c.Params("itemId")); err != nil {
		return mapDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// MarkReceived godoc
// @Summary      Marcar pedido como recibido
// @Description  received_quantity > 0 solo es válido en pedidos de un único item; 0 acredita a cada item su cantidad pedida.
// @Tags         supplier-orders
// @Security     Bearer
// @Accept       json
// @Param        id    path  string  true  "ID del pedido"
// @Param        body  body  dto.MarkReceivedRequest  false  "Cantidad recibida"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/supplier-orders/{id}/receive [post]
func (h *OrdersHandler) MarkReceived(c *fiber.Ctx) error {
	var in dto.MarkReceivedRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		}
	}
	if err := h.workflowUC.MarkReceived(c.UserContext(), c.Params("id"), in.ReceivedQuantity); err != nil {
		return mapDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Reactivate godoc
// @Summary      Reactivar un pedido recibido (vuelve a pending)
// @Tags         supplier-orders
// @Security     Bearer
// @Param        id   path  string  true  "ID del pedido"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/supplier-orders/{id}/reactivate [post]
func (h *OrdersHandler) Reactivate(c *fiber.Ctx) error {
	if err := h.workflowUC.Reactivate(c.UserContext(), c.Params("id")); err != nil {
		return mapDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UpdateStatus godoc
// @Summary      Cambiar estado administrativo de un pedido
// @Description  Solo transiciones administrativas (draft -> sent -> pending). Los estados de recepción se derivan de los items.
// @Tags         supplier-orders
// @Security     Bearer
// @Accept       json
// @Param        id    path  string  true  "ID del pedido"
// @Param        body  body  dto.UpdateOrderStatusRequest  true  "Estado destino"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/supplier-orders/{id}/status [put]
func (h *OrdersHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateOrderStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	status := entity.OrderStatus(in.Status)
	if !entity.ValidStatus(status) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "estado desconocido"})
	}
	if err := h.workflowUC.UpdateStatus(c.UserContext(), c.Params("id"), status); err != nil {
		return mapDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Duplicate godoc
// @Summary      Duplicar pedido hacia otro proveedor
// @Description  Crea una copia en pending con las cantidades recibidas en cero. El pedido original no se toca.
// @Tags         supplier-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del pedido"
// @Param        body  body  dto.ChangeSupplierRequest  true  "Proveedor destino"
// @Success      201   {object}  dto.IDResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/supplier-orders/{id}/duplicate [post]
func (h *OrdersHandler) Duplicate(c *fiber.Ctx) error {
	var in dto.ChangeSupplierRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.SupplierID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "supplier_id es requerido"})
	}
	out, err := h.workflowUC.DuplicateToSupplier(c.UserContext(), c.Params("id"), in.SupplierID)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Move godoc
// @Summary      Mover pedido a otro proveedor
// @Description  Reasigna el proveedor del mismo pedido en una sola operación, sin duplicar ni borrar.
// @Tags         supplier-orders
// @Security     Bearer
// @Accept       json
// @Param        id    path  string  true  "ID del pedido"
// @Param        body  body  dto.ChangeSupplierRequest  true  "Proveedor destino"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/supplier-orders/{id}/move [post]
func (h *OrdersHandler) Move(c *fiber.Ctx) error {
	var in dto.ChangeSupplierRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.SupplierID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "supplier_id es requerido"})
	}
	if err := h.workflowUC.MoveToSupplier(c.UserContext(), c.Params("id"), in.SupplierID); err != nil {
		return mapDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ── Borradores ────────────────────────────────────────────────────────────────

// AddDraft godoc
// @Summary      Agregar borrador al buffer de pedidos
// @Tags         supplier-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddDraftRequest  true  "Producto, cantidad y proveedor sugerido"
// @Success      201   {object}  dto.IDResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/supplier-orders/drafts [post]
func (h *OrdersHandler) AddDraft(c *fiber.Ctx) error {
	var in dto.AddDraftRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.ProductID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id es requerido"})
	}
	out, err := h.draftUC.Add(c.UserContext(), in)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListDrafts godoc
// @Summary      Listar borradores pendientes
// @Tags         supplier-orders
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.DraftDTO
// @Router       /api/supplier-orders/drafts [get]
func (h *OrdersHandler) ListDrafts(c *fiber.Ctx) error {
	out, err := h.draftUC.List(c.UserContext())
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(out)
}

// UpdateDraft godoc
// @Summary      Actualizar borrador
// @Tags         supplier-orders
// @Security     Bearer
// @Accept       json
// @Param        id    path  string  true  "ID del borrador"
// @Param        body  body  dto.UpdateDraftRequest  true  "Cantidad y proveedor"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/supplier-orders/drafts/{id} [put]
func (h *OrdersHandler) UpdateDraft(c *fiber.Ctx) error {
	var in dto.UpdateDraftRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.draftUC.Update(c.UserContext(), c.Params("id"), in); err != nil {
		return mapDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DeleteDraft godoc
// @Summary      Eliminar borrador
// @Tags         supplier-orders
// @Security     Bearer
// @Param        id   path  string  true  "ID del borrador"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/supplier-orders/drafts/{id} [delete]
func (h *OrdersHandler) DeleteDraft(c *fiber.Ctx) error {
	if err := h.draftUC.Remove(c.UserContext(), c.Params("id")); err != nil {
		return mapDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CreateFromDrafts godoc
// @Summary      Consolidar borradores en un pedido
// @Description  Toma los borradores indicados que sean compatibles con el proveedor, crea un pedido en pending y consume los borradores usados. Todo o nada.
// @Tags         supplier-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CommitDraftsRequest  true  "Proveedor y borradores"
// @Success      201   {object}  dto.IDResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/supplier-orders/create-from-drafts [post]
func (h *OrdersHandler) CreateFromDrafts(c *fiber.Ctx) error {
	var in dto.CommitDraftsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.SupplierID == "" || len(in.DraftIDs) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "supplier_id y draft_ids son requeridos"})
	}
	out, err := h.draftUC.Commit(c.UserContext(), in)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
