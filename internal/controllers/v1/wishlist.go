package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/caixinhas/backend/internal/httputil"
	"github.com/caixinhas/backend/internal/models"
)

type WishlistItemEditable struct {
	Name                string                `json:"name" example:"Standing desk"`
	Note                string                `json:"note"`
	EstimatedValue      decimal.Decimal       `json:"estimatedValue" example:"1200"`
	MonthlyContribution decimal.Decimal       `json:"monthlyContribution" example:"200"`
	Status              models.WishlistStatus `json:"status" example:"saving"`
	EnvelopeID          *uuid.UUID            `json:"envelopeId"`
}

func (editable WishlistItemEditable) model() models.WishlistItem {
	return models.WishlistItem{
		Name:                editable.Name,
		Note:                editable.Note,
		EstimatedValue:      editable.EstimatedValue,
		MonthlyContribution: editable.MonthlyContribution,
		Status:              editable.Status,
		EnvelopeID:          editable.EnvelopeID,
	}
}

type PurchaseEditable struct {
	EnvelopeID   *uuid.UUID       `json:"envelopeId"`
	ActualAmount *decimal.Decimal `json:"actualAmount" example:"1149.90"`
}

// WishlistItemData is the API representation of a wishlist item with the
// purchase projection included.
type WishlistItemData struct {
	models.WishlistItem
	MonthsToPurchase *int64 `json:"monthsToPurchase"`
}

func newWishlistItem(item models.WishlistItem) WishlistItemData {
	return WishlistItemData{
		WishlistItem:     item,
		MonthsToPurchase: item.MonthsToPurchase(),
	}
}

type WishlistItemResponse struct {
	Data  *WishlistItemData `json:"data"`
	Error *string           `json:"error"`
}

type WishlistListResponse struct {
	Data  []WishlistItemData `json:"data"`
	Error *string            `json:"error"`
}

// @Summary		List wishlist items
// @Description	Returns all wishlist items of the user, newest first
// @Tags			Wishlist
// @Produce		json
// @Success		200		{object}	WishlistListResponse
// @Failure		400		{object}	WishlistListResponse
// @Failure		500		{object}	WishlistListResponse
// @Param			status	query		string	false	"Filter by status"
// @Router			/v1/wishlist [get]
func (co *Controller) GetWishlistItems(c *gin.Context) {
	q := co.db.Where("user_id = ?", userID(c)).Order("datetime(created_at) DESC")

	if s := c.Query("status"); s != "" {
		q = q.Where("status = ?", s)
	}

	var items []models.WishlistItem
	err := q.Find(&items).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), WishlistListResponse{Error: &e})
		return
	}

	data := make([]WishlistItemData, 0, len(items))
	for _, item := range items {
		data = append(data, newWishlistItem(item))
	}

	c.JSON(http.StatusOK, WishlistListResponse{Data: data})
}

// @Summary		Get wishlist item
// @Description	Returns a specific wishlist item
// @Tags			Wishlist
// @Produce		json
// @Success		200	{object}	WishlistItemResponse
// @Failure		400	{object}	WishlistItemResponse
// @Failure		404	{object}	WishlistItemResponse
// @Failure		500	{object}	WishlistItemResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/wishlist/{id} [get]
func (co *Controller) GetWishlistItem(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), WishlistItemResponse{Error: &e})
		return
	}

	var item models.WishlistItem
	err = co.db.Where("user_id = ?", userID(c)).First(&item, "id = ?", uri.ID.UUID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), WishlistItemResponse{Error: &e})
		return
	}

	data := newWishlistItem(item)
	c.JSON(http.StatusOK, WishlistItemResponse{Data: &data})
}

// @Summary		Create wishlist item
// @Description	Creates a new wishlist item
// @Tags			Wishlist
// @Accept			json
// @Produce		json
// @Success		201		{object}	WishlistItemResponse
// @Failure		400		{object}	WishlistItemResponse
// @Failure		500		{object}	WishlistItemResponse
// @Param			item	body		WishlistItemEditable	true	"Item"
// @Router			/v1/wishlist [post]
func (co *Controller) CreateWishlistItem(c *gin.Context) {
	var data WishlistItemEditable
	err := httputil.BindData(c, &data)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), WishlistItemResponse{Error: &e})
		return
	}

	item := data.model()
	item.UserID = userID(c)

	err = co.db.Create(&item).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), WishlistItemResponse{Error: &e})
		return
	}

	resource := newWishlistItem(item)
	c.JSON(http.StatusCreated, WishlistItemResponse{Data: &resource})
}

// @Summary		Update wishlist item
// @Description	Updates an existing wishlist item. Only values to be updated need to be specified.
// @Tags			Wishlist
// @Accept			json
// @Produce		json
// @Success		200		{object}	WishlistItemResponse
// @Failure		400		{object}	WishlistItemResponse
// @Failure		404		{object}	WishlistItemResponse
// @Failure		500		{object}	WishlistItemResponse
// @Param			id		path		URIID					true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			item	body		WishlistItemEditable	true	"Item"
// @Router			/v1/wishlist/{id} [patch]
func (co *Controller) UpdateWishlistItem(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), WishlistItemResponse{Error: &e})
		return
	}

	var item models.WishlistItem
	err = co.db.Where("user_id = ?", userID(c)).First(&item, "id = ?", uri.ID.UUID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), WishlistItemResponse{Error: &e})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, WishlistItemEditable{})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), WishlistItemResponse{Error: &e})
		return
	}

	var data WishlistItemEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), WishlistItemResponse{Error: &e})
		return
	}

	for _, field := range updateFields {
		switch field {
		case "Name":
			item.Name = data.Name
		case "Note":
			item.Note = data.Note
		case "EstimatedValue":
			item.EstimatedValue = data.EstimatedValue
		case "MonthlyContribution":
			item.MonthlyContribution = data.MonthlyContribution
		case "Status":
			item.Status = data.Status
		case "EnvelopeID":
			item.EnvelopeID = data.EnvelopeID
		}
	}

	err = co.db.Model(&item).
		Select("Name", "Note", "EstimatedValue", "MonthlyContribution", "Status", "EnvelopeID").
		Updates(&item).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), WishlistItemResponse{Error: &e})
		return
	}

	resource := newWishlistItem(item)
	c.JSON(http.StatusOK, WishlistItemResponse{Data: &resource})
}

// @Summary		Delete wishlist item
// @Description	Deletes a wishlist item
// @Tags			Wishlist
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/wishlist/{id} [delete]
func (co *Controller) DeleteWishlistItem(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var item models.WishlistItem
	err = co.db.Where("user_id = ?", userID(c)).First(&item, "id = ?", uri.ID.UUID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = co.db.Delete(&item).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// @Summary		Purchase wishlist item
// @Description	Marks a wishlist item as bought. When an envelope is given, the envelope is debited by the actual amount (falling back to the estimated value) and a matching expense transaction is booked.
// @Tags			Wishlist
// @Accept			json
// @Produce		json
// @Success		200			{object}	WishlistItemResponse
// @Failure		400			{object}	WishlistItemResponse
// @Failure		404			{object}	WishlistItemResponse
// @Failure		500			{object}	WishlistItemResponse
// @Param			id			path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			purchase	body		PurchaseEditable	true	"Purchase"
// @Router			/v1/wishlist/{id}/purchase [post]
func (co *Controller) PurchaseWishlistItem(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), WishlistItemResponse{Error: &e})
		return
	}

	// The body is optional, a purchase without an envelope needs none
	var data PurchaseEditable
	err = httputil.BindData(c, &data)
	if err != nil && !errors.Is(err, httputil.ErrRequestBodyEmpty) {
		e := err.Error()
		c.JSON(status(err), WishlistItemResponse{Error: &e})
		return
	}

	item, err := co.engine.PurchaseWishlistItem(userID(c), uri.ID.UUID, data.EnvelopeID, data.ActualAmount)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), WishlistItemResponse{Error: &e})
		return
	}

	resource := newWishlistItem(item)
	c.JSON(http.StatusOK, WishlistItemResponse{Data: &resource})
}
