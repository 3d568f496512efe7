package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"

	"github.com/caixinhas/backend/internal/httputil"
	"github.com/caixinhas/backend/internal/models"
)

type CategoryEditable struct {
	Name  string                 `json:"name" example:"Mercado"`
	Type  models.TransactionType `json:"type" example:"expense"`
	Icon  string                 `json:"icon" example:"🛒"`
	Color string                 `json:"color" example:"#6B7280"`
}

func (editable CategoryEditable) model() models.Category {
	return models.Category{
		Name:  editable.Name,
		Type:  editable.Type,
		Icon:  editable.Icon,
		Color: editable.Color,
	}
}

type CategoryQueryFilter struct {
	Type string `form:"type" filterField:"false"` // Filter by type
}

type CategoryResponse struct {
	Data  *models.Category `json:"data"`
	Error *string          `json:"error"`
}

type CategoryListResponse struct {
	Data  []models.Category `json:"data"`
	Error *string           `json:"error"`
}

// @Summary		List categories
// @Description	Returns the system categories together with the personal categories of the user, system categories first
// @Tags			Categories
// @Produce		json
// @Success		200	{object}	CategoryListResponse
// @Failure		400	{object}	CategoryListResponse
// @Failure		500	{object}	CategoryListResponse
// @Param			type	query	string	false	"Filter by type"
// @Router			/v1/categories [get]
func (co *Controller) GetCategories(c *gin.Context) {
	var filter CategoryQueryFilter
	if err := c.Bind(&filter); err != nil {
		e := httputil.ErrInvalidQueryString.Error()
		c.JSON(http.StatusBadRequest, CategoryListResponse{Error: &e})
		return
	}

	q := co.db.
		Where("user_id IS NULL OR user_id = ?", userID(c)).
		Order("system DESC, name ASC")

	if filter.Type != "" {
		if !slices.Contains([]string{string(models.TransactionTypeIncome), string(models.TransactionTypeExpense)}, filter.Type) {
			e := models.ErrTransactionTypeInvalid.Error()
			c.JSON(http.StatusBadRequest, CategoryListResponse{Error: &e})
			return
		}

		q = q.Where("type = ?", filter.Type)
	}

	categories := make([]models.Category, 0)
	err := q.Find(&categories).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CategoryListResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, CategoryListResponse{Data: categories})
}

// @Summary		Create category
// @Description	Creates a new personal category for the user
// @Tags			Categories
// @Accept			json
// @Produce		json
// @Success		201			{object}	CategoryResponse
// @Failure		400			{object}	CategoryResponse
// @Failure		500			{object}	CategoryResponse
// @Param			category	body		CategoryEditable	true	"Category"
// @Router			/v1/categories [post]
func (co *Controller) CreateCategory(c *gin.Context) {
	var data CategoryEditable
	err := httputil.BindData(c, &data)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CategoryResponse{Error: &e})
		return
	}

	category := data.model()
	id := userID(c)
	category.UserID = &id

	err = co.db.Create(&category).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CategoryResponse{Error: &e})
		return
	}

	c.JSON(http.StatusCreated, CategoryResponse{Data: &category})
}

// @Summary		Delete category
// @Description	Deletes a personal category. System categories cannot be deleted.
// @Tags			Categories
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/categories/{id} [delete]
func (co *Controller) DeleteCategory(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	// System categories are excluded here so deleting one returns a 404
	var category models.Category
	err = co.db.Where("user_id = ? AND system = ?", userID(c), false).
		First(&category, "id = ?", uri.ID.UUID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = co.db.Delete(&category).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
