package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/caixinhas/backend/internal/httputil"
	"github.com/caixinhas/backend/internal/models"
)

type GoalEditable struct {
	Name         string            `json:"name" example:"New notebook"`
	Note         string            `json:"note"`
	TargetAmount decimal.Decimal   `json:"targetAmount" example:"500"`
	Deadline     *time.Time        `json:"deadline"`
	Status       models.GoalStatus `json:"status" example:"active"`
	EnvelopeID   *uuid.UUID        `json:"envelopeId"`
}

func (editable GoalEditable) model() models.Goal {
	return models.Goal{
		Name:         editable.Name,
		Note:         editable.Note,
		TargetAmount: editable.TargetAmount,
		Deadline:     editable.Deadline,
		Status:       editable.Status,
		EnvelopeID:   editable.EnvelopeID,
	}
}

type ContributionEditable struct {
	Amount     decimal.Decimal `json:"amount" example:"100"`
	Date       time.Time       `json:"date"`
	EnvelopeID *uuid.UUID      `json:"envelopeId"`
	Note       string          `json:"note"`
}

type GoalResponse struct {
	Data  *models.Goal `json:"data"`
	Error *string      `json:"error"`
}

type GoalListResponse struct {
	Data  []models.Goal `json:"data"`
	Error *string       `json:"error"`
}

type ContributionListResponse struct {
	Data  []models.Contribution `json:"data"`
	Error *string               `json:"error"`
}

// @Summary		List goals
// @Description	Returns all goals of the user, newest first
// @Tags			Goals
// @Produce		json
// @Success		200		{object}	GoalListResponse
// @Failure		400		{object}	GoalListResponse
// @Failure		500		{object}	GoalListResponse
// @Param			status	query		string	false	"Filter by status"
// @Router			/v1/goals [get]
func (co *Controller) GetGoals(c *gin.Context) {
	q := co.db.Where("user_id = ?", userID(c)).Order("datetime(created_at) DESC")

	if s := c.Query("status"); s != "" {
		q = q.Where("status = ?", s)
	}

	goals := make([]models.Goal, 0)
	err := q.Find(&goals).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), GoalListResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, GoalListResponse{Data: goals})
}

// @Summary		Get goal
// @Description	Returns a specific goal
// @Tags			Goals
// @Produce		json
// @Success		200	{object}	GoalResponse
// @Failure		400	{object}	GoalResponse
// @Failure		404	{object}	GoalResponse
// @Failure		500	{object}	GoalResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/goals/{id} [get]
func (co *Controller) GetGoal(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), GoalResponse{Error: &e})
		return
	}

	var goal models.Goal
	err = co.db.Where("user_id = ?", userID(c)).First(&goal, "id = ?", uri.ID.UUID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), GoalResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, GoalResponse{Data: &goal})
}

// @Summary		Create goal
// @Description	Creates a new goal. The current amount starts at zero.
// @Tags			Goals
// @Accept			json
// @Produce		json
// @Success		201		{object}	GoalResponse
// @Failure		400		{object}	GoalResponse
// @Failure		500		{object}	GoalResponse
// @Param			goal	body		GoalEditable	true	"Goal"
// @Router			/v1/goals [post]
func (co *Controller) CreateGoal(c *gin.Context) {
	var data GoalEditable
	err := httputil.BindData(c, &data)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), GoalResponse{Error: &e})
		return
	}

	if data.Name == "" {
		e := models.ErrGoalNameEmpty.Error()
		c.JSON(http.StatusBadRequest, GoalResponse{Error: &e})
		return
	}

	goal := data.model()
	goal.UserID = userID(c)
	goal.CurrentAmount = decimal.Zero

	err = co.db.Create(&goal).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), GoalResponse{Error: &e})
		return
	}

	c.JSON(http.StatusCreated, GoalResponse{Data: &goal})
}

// @Summary		Update goal
// @Description	Updates an existing goal. Only values to be updated need to be specified. Lowering the target below the current amount completes the goal.
// @Tags			Goals
// @Accept			json
// @Produce		json
// @Success		200		{object}	GoalResponse
// @Failure		400		{object}	GoalResponse
// @Failure		404		{object}	GoalResponse
// @Failure		500		{object}	GoalResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			goal	body		GoalEditable	true	"Goal"
// @Router			/v1/goals/{id} [patch]
func (co *Controller) UpdateGoal(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), GoalResponse{Error: &e})
		return
	}

	var goal models.Goal
	err = co.db.Where("user_id = ?", userID(c)).First(&goal, "id = ?", uri.ID.UUID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), GoalResponse{Error: &e})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, GoalEditable{})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), GoalResponse{Error: &e})
		return
	}

	var data GoalEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), GoalResponse{Error: &e})
		return
	}

	for _, field := range updateFields {
		switch field {
		case "Name":
			goal.Name = data.Name
		case "Note":
			goal.Note = data.Note
		case "TargetAmount":
			goal.TargetAmount = data.TargetAmount
		case "Deadline":
			goal.Deadline = data.Deadline
		case "Status":
			goal.Status = data.Status
		case "EnvelopeID":
			goal.EnvelopeID = data.EnvelopeID
		}
	}

	if goal.Status == models.GoalStatusActive && goal.CurrentAmount.GreaterThanOrEqual(goal.TargetAmount) {
		goal.Status = models.GoalStatusCompleted
	}

	err = co.db.Model(&goal).
		Select("Name", "Note", "TargetAmount", "Deadline", "Status", "EnvelopeID").
		Updates(&goal).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), GoalResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, GoalResponse{Data: &goal})
}

// @Summary		Delete goal
// @Description	Deletes a goal with its contributions
// @Tags			Goals
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/goals/{id} [delete]
func (co *Controller) DeleteGoal(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var goal models.Goal
	err = co.db.Where("user_id = ?", userID(c)).First(&goal, "id = ?", uri.ID.UUID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = co.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("goal_id = ?", goal.ID).Delete(&models.Contribution{}).Error
		if err != nil {
			return err
		}

		return tx.Delete(&goal).Error
	})
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// @Summary		List contributions
// @Description	Returns the contributions of a goal, newest first
// @Tags			Goals
// @Produce		json
// @Success		200	{object}	ContributionListResponse
// @Failure		400	{object}	ContributionListResponse
// @Failure		404	{object}	ContributionListResponse
// @Failure		500	{object}	ContributionListResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/goals/{id}/contributions [get]
func (co *Controller) GetContributions(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ContributionListResponse{Error: &e})
		return
	}

	var goal models.Goal
	err = co.db.Where("user_id = ?", userID(c)).First(&goal, "id = ?", uri.ID.UUID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ContributionListResponse{Error: &e})
		return
	}

	contributions := make([]models.Contribution, 0)
	err = co.db.
		Where("goal_id = ?", goal.ID).
		Order("datetime(date) DESC").
		Find(&contributions).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ContributionListResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, ContributionListResponse{Data: contributions})
}

// @Summary		Contribute to goal
// @Description	Adds a contribution to a goal, optionally funded from an envelope. The goal completes when the current amount reaches the target; contributing past the target is allowed.
// @Tags			Goals
// @Accept			json
// @Produce		json
// @Success		201				{object}	GoalResponse
// @Failure		400				{object}	GoalResponse
// @Failure		404				{object}	GoalResponse
// @Failure		500				{object}	GoalResponse
// @Param			id				path		URIID					true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			contribution	body		ContributionEditable	true	"Contribution"
// @Router			/v1/goals/{id}/contributions [post]
func (co *Controller) CreateContribution(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), GoalResponse{Error: &e})
		return
	}

	var data ContributionEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), GoalResponse{Error: &e})
		return
	}

	goal, err := co.engine.ContributeToGoal(userID(c), uri.ID.UUID, data.Amount, data.Date, data.EnvelopeID, data.Note)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), GoalResponse{Error: &e})
		return
	}

	c.JSON(http.StatusCreated, GoalResponse{Data: &goal})
}
