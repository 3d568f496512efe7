// Package healthz implements the health check endpoint.
package healthz

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/caixinhas/backend/internal/httputil"
)

type Controller struct {
	db *gorm.DB
}

func NewController(db *gorm.DB) *Controller {
	return &Controller{db: db}
}

// @Summary		Health
// @Description	Returns the application health and database connectivity
// @Tags			General
// @Success		204
// @Failure		500	{object}	map[string]string
// @Router			/healthz [get]
func (co *Controller) Get(c *gin.Context) {
	sql, err := co.db.DB()
	if err == nil {
		err = sql.Ping()
	}

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "the database is not reachable"})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			General
// @Success		204
// @Router			/healthz [options]
func (co *Controller) Options(c *gin.Context) {
	httputil.OptionsGet(c)
}
