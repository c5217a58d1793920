package controller

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	userModel "smartvisit_backend/internals/features/users/user/model"
	visitorDTO "smartvisit_backend/internals/features/visitors/visitor/dto"
	visitorModel "smartvisit_backend/internals/features/visitors/visitor/model"
	"smartvisit_backend/internals/features/visitors/visitor/service"
	helper "smartvisit_backend/internals/helpers"
)

type VisitorController struct {
	DB        *gorm.DB
	Lifecycle *service.LifecycleService
}

func NewVisitorController(db *gorm.DB, lc *service.LifecycleService) *VisitorController {
	return &VisitorController{DB: db, Lifecycle: lc}
}

func (vc *VisitorController) hostName(hostID *uuid.UUID) string {
	if hostID == nil {
		return ""
	}
	var host userModel.UserModel
	if err := vc.DB.Select("first_name", "last_name").First(&host, "id = ?", *hostID).Error; err != nil {
		return ""
	}
	return host.FullName()
}

func (vc *VisitorController) toResponse(v *visitorModel.VisitorModel) visitorDTO.VisitorResponse {
	duration := ""
	if v.CheckOutTime != nil {
		duration = helper.FormatDurationHM(v.VisitDuration())
	}
	return visitorDTO.ToVisitorResponse(v, vc.hostName(v.HostID), duration)
}

// GetVisitors lists visits with search, filters and pagination.
// GET /api/visitors
func (vc *VisitorController) GetVisitors(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 25, 100)

	q := vc.DB.Model(&visitorModel.VisitorModel{})

	if search := strings.TrimSpace(c.Query("search")); search != "" {
		like := "%" + search + "%"
		cond := "first_name ILIKE ? OR last_name ILIKE ? OR company ILIKE ? OR email ILIKE ? OR phone ILIKE ?"
		args := []any{like, like, like, like, like}
		if badge, err := strconv.Atoi(search); err == nil {
			cond += " OR badge_number = ?"
			args = append(args, badge)
		}
		q = q.Where(cond, args...)
	}
	if status := strings.ToLower(strings.TrimSpace(c.Query("status"))); status != "" {
		q = q.Where("status = ?", status)
	}
	if vtype := strings.ToLower(strings.TrimSpace(c.Query("visitor_type"))); vtype != "" {
		q = q.Where("visitor_type = ?", vtype)
	}
	if hostID := strings.TrimSpace(c.Query("host_id")); hostID != "" {
		if id, err := uuid.Parse(hostID); err == nil {
			q = q.Where("host_id = ?", id)
		}
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count visitors")
	}

	var visitors []visitorModel.VisitorModel
	if err := q.Order("created_at DESC").
		Offset(paging.Offset).Limit(paging.PerPage).
		Find(&visitors).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list visitors")
	}

	out := make([]visitorDTO.VisitorResponse, 0, len(visitors))
	for i := range visitors {
		out = append(out, vc.toResponse(&visitors[i]))
	}
	return helper.JsonList(c, "OK", out, helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// GetVisitor returns one visit.
// GET /api/visitors/:id
func (vc *VisitorController) GetVisitor(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid visitor id")
	}
	var v visitorModel.VisitorModel
	if err := vc.DB.First(&v, "id = ?", id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Visitor not found")
	}
	return helper.JsonOK(c, "OK", vc.toResponse(&v))
}

// UpdateVisitor applies a partial update. A status change goes through
// the lifecycle service so the audit row is written.
// PATCH /api/visitors/:id
func (vc *VisitorController) UpdateVisitor(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid visitor id")
	}

	var req visitorDTO.UpdateVisitorRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := helper.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMap(err))
	}

	var v visitorModel.VisitorModel
	if err := vc.DB.First(&v, "id = ?", id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Visitor not found")
	}

	if req.Status != nil && *req.Status != v.Status {
		updated, err := vc.Lifecycle.ChangeStatus(id, *req.Status, actorPtr(c))
		if err != nil {
			if errors.Is(err, service.ErrAlreadyCheckedOut) {
				return helper.JsonError(c, fiber.StatusBadRequest, service.ErrAlreadyCheckedOut.Error())
			}
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid status transition")
		}
		v = *updated
	}

	req.ApplyToModel(&v)
	if err := vc.DB.Save(&v).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update visitor")
	}
	return helper.JsonUpdated(c, "Visitor updated", vc.toResponse(&v))
}

// DeleteVisitor removes a visit row (admin only).
// DELETE /api/visitors/:id
func (vc *VisitorController) DeleteVisitor(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid visitor id")
	}
	res := vc.DB.Delete(&visitorModel.VisitorModel{}, "id = ?", id)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete visitor")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Visitor not found")
	}
	return helper.JsonDeleted(c, "Visitor deleted", nil)
}

// GetBadge returns the printable badge payload.
// GET /api/visitors/:id/badge
func (vc *VisitorController) GetBadge(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid visitor id")
	}
	var v visitorModel.VisitorModel
	if err := vc.DB.First(&v, "id = ?", id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Visitor not found")
	}
	return helper.JsonOK(c, "OK", service.BuildBadgeData(&v, vc.hostName(v.HostID)))
}

// GetBadgePDF streams the A6 badge card.
// GET /api/visitors/:id/badge/pdf
func (vc *VisitorController) GetBadgePDF(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid visitor id")
	}
	var v visitorModel.VisitorModel
	if err := vc.DB.First(&v, "id = ?", id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Visitor not found")
	}

	pdf, err := service.RenderBadgePDF(&v, vc.hostName(v.HostID))
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to render badge")
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="badge-`+v.ID.String()+`.pdf"`)
	return c.Send(pdf)
}
