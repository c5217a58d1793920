package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	formDTO "smartvisit_backend/internals/features/visitors/forms/dto"
	formModel "smartvisit_backend/internals/features/visitors/forms/model"
	helper "smartvisit_backend/internals/helpers"
)

type FormFieldController struct {
	DB *gorm.DB
}

func NewFormFieldController(db *gorm.DB) *FormFieldController {
	return &FormFieldController{DB: db}
}

// GET /api/form-fields
func (fc *FormFieldController) GetFields(c *fiber.Ctx) error {
	var fields []formModel.FormFieldModel
	if err := fc.DB.Order("field_order ASC").Find(&fields).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list form fields")
	}
	return helper.JsonOK(c, "OK", fields)
}

// GetActiveFields feeds the kiosk renderer: active fields only,
// optionally narrowed to one visitor type.
// GET /api/form-fields/active
func (fc *FormFieldController) GetActiveFields(c *fiber.Ctx) error {
	q := fc.DB.Where("is_active = true")
	if vtype := strings.ToLower(strings.TrimSpace(c.Query("visitor_type"))); vtype != "" {
		q = q.Where("visitor_type = '' OR visitor_type IS NULL OR visitor_type = ?", vtype)
	}
	var fields []formModel.FormFieldModel
	if err := q.Order("field_order ASC").Find(&fields).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list form fields")
	}
	return helper.JsonOK(c, "OK", fields)
}

// CreateField appends the new field at the end of the order.
// POST /api/form-fields
func (fc *FormFieldController) CreateField(c *fiber.Ctx) error {
	var req formDTO.CreateFormFieldRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if req.Name == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "Field name could not be derived from label")
	}
	if err := helper.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMap(err))
	}

	field := req.ToModel()
	err := fc.DB.Transaction(func(tx *gorm.DB) error {
		var maxOrder int
		if err := tx.Model(&formModel.FormFieldModel{}).
			Select("COALESCE(MAX(field_order), -1)").Scan(&maxOrder).Error; err != nil {
			return err
		}
		field.Order = maxOrder + 1
		return tx.Create(field).Error
	})
	if err != nil {
		low := strings.ToLower(err.Error())
		if strings.Contains(low, "duplicate key") || strings.Contains(low, "unique") {
			return helper.JsonError(c, fiber.StatusBadRequest, "A field with that name already exists")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create form field")
	}
	return helper.JsonCreated(c, "Form field created", field)
}

// PATCH /api/form-fields/:id
func (fc *FormFieldController) UpdateField(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid field id")
	}

	var req formDTO.UpdateFormFieldRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := helper.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMap(err))
	}

	var field formModel.FormFieldModel
	if err := fc.DB.First(&field, "id = ?", id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Form field not found")
	}

	req.ApplyToModel(&field)
	if err := fc.DB.Save(&field).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update form field")
	}
	return helper.JsonUpdated(c, "Form field updated", field)
}

// DeleteField removes the field and renumbers trailing rows so the
// ordering stays dense.
// DELETE /api/form-fields/:id
func (fc *FormFieldController) DeleteField(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid field id")
	}

	err = fc.DB.Transaction(func(tx *gorm.DB) error {
		var field formModel.FormFieldModel
		if err := tx.First(&field, "id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&field).Error; err != nil {
			return err
		}
		return tx.Model(&formModel.FormFieldModel{}).
			Where("field_order > ?", field.Order).
			UpdateColumn("field_order", gorm.Expr("field_order - 1")).Error
	})
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.JsonError(c, fiber.StatusNotFound, "Form field not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete form field")
	}
	return helper.JsonDeleted(c, "Form field deleted", nil)
}

// UpdateOrder replaces the ordering with the posted id sequence.
// POST /api/form-fields/update-order
func (fc *FormFieldController) UpdateOrder(c *fiber.Ctx) error {
	var req struct {
		FieldIDs []uuid.UUID `json:"field_ids"`
	}
	if err := c.BodyParser(&req); err != nil || len(req.FieldIDs) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "field_ids is required")
	}

	err := fc.DB.Transaction(func(tx *gorm.DB) error {
		for i, id := range req.FieldIDs {
			res := tx.Model(&formModel.FormFieldModel{}).
				Where("id = ?", id).
				UpdateColumn("field_order", i)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
		}
		return nil
	})
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.JsonError(c, fiber.StatusNotFound, "One or more form fields were not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update order")
	}
	return helper.JsonUpdated(c, "Order updated", nil)
}
