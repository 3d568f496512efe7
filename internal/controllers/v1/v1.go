// Package v1 implements the v1 API of the caixinhas backend.
//
// All handlers are methods on Controller, which carries the database handle,
// the money movement engine and the JWT configuration. Every route except
// registration and login runs behind the auth middleware and operates on the
// resources of the authenticated user only.
package v1

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/caixinhas/backend/internal/config"
	"github.com/caixinhas/backend/internal/engine"
	"github.com/caixinhas/backend/internal/httputil"
)

type Controller struct {
	db     *gorm.DB
	engine *engine.Engine
	jwt    config.JWTConfig
}

func NewController(db *gorm.DB, engine *engine.Engine, jwt config.JWTConfig) *Controller {
	return &Controller{
		db:     db,
		engine: engine,
		jwt:    jwt,
	}
}

// RegisterRoutes registers all v1 routes on the group passed in.
func (co *Controller) RegisterRoutes(r *gin.RouterGroup) {
	auth := r.Group("/auth")
	{
		auth.OPTIONS("/register", httputil.OptionsPost)
		auth.POST("/register", co.Register)
		auth.OPTIONS("/login", httputil.OptionsPost)
		auth.POST("/login", co.Login)
	}

	protected := r.Group("")
	protected.Use(co.requireAuth())

	envelopes := protected.Group("/envelopes")
	{
		envelopes.OPTIONS("", httputil.OptionsGet)
		envelopes.GET("", co.GetEnvelopes)
		envelopes.OPTIONS("/configure", httputil.OptionsPost)
		envelopes.POST("/configure", co.ConfigureEnvelopes)
		envelopes.OPTIONS("/allocate", httputil.OptionsPost)
		envelopes.POST("/allocate", co.AllocateIncome)
		envelopes.OPTIONS("/:id", httputil.OptionsGetDelete)
		envelopes.GET("/:id", co.GetEnvelope)
		envelopes.DELETE("/:id", co.DeleteEnvelope)
	}

	transactions := protected.Group("/transactions")
	{
		transactions.OPTIONS("", httputil.OptionsGetPost)
		transactions.GET("", co.GetTransactions)
		transactions.POST("", co.CreateTransaction)
		transactions.OPTIONS("/stats", httputil.OptionsGet)
		transactions.GET("/stats", co.GetTransactionStats)
		transactions.OPTIONS("/:id", httputil.OptionsGetPatchDelete)
		transactions.GET("/:id", co.GetTransaction)
		transactions.PATCH("/:id", co.UpdateTransaction)
		transactions.DELETE("/:id", co.DeleteTransaction)
	}

	categories := protected.Group("/categories")
	{
		categories.OPTIONS("", httputil.OptionsGetPost)
		categories.GET("", co.GetCategories)
		categories.POST("", co.CreateCategory)
		categories.OPTIONS("/:id", httputil.OptionsDelete)
		categories.DELETE("/:id", co.DeleteCategory)
	}

	debts := protected.Group("/debts")
	{
		debts.OPTIONS("", httputil.OptionsGetPost)
		debts.GET("", co.GetDebts)
		debts.POST("", co.CreateDebt)
		debts.OPTIONS("/:id", httputil.OptionsGetPatchDelete)
		debts.GET("/:id", co.GetDebt)
		debts.PATCH("/:id", co.UpdateDebt)
		debts.DELETE("/:id", co.DeleteDebt)
		debts.OPTIONS("/:id/amortizations", httputil.OptionsGetPost)
		debts.GET("/:id/amortizations", co.GetAmortizations)
		debts.POST("/:id/amortizations", co.CreateAmortization)
	}

	goals := protected.Group("/goals")
	{
		goals.OPTIONS("", httputil.OptionsGetPost)
		goals.GET("", co.GetGoals)
		goals.POST("", co.CreateGoal)
		goals.OPTIONS("/:id", httputil.OptionsGetPatchDelete)
		goals.GET("/:id", co.GetGoal)
		goals.PATCH("/:id", co.UpdateGoal)
		goals.DELETE("/:id", co.DeleteGoal)
		goals.OPTIONS("/:id/contributions", httputil.OptionsGetPost)
		goals.GET("/:id/contributions", co.GetContributions)
		goals.POST("/:id/contributions", co.CreateContribution)
	}

	accounts := protected.Group("/accounts")
	{
		accounts.OPTIONS("", httputil.OptionsGetPost)
		accounts.GET("", co.GetAccounts)
		accounts.POST("", co.CreateAccount)
		accounts.OPTIONS("/:id", httputil.OptionsGetPatchDelete)
		accounts.GET("/:id", co.GetAccount)
		accounts.PATCH("/:id", co.UpdateAccount)
		accounts.DELETE("/:id", co.DeleteAccount)
	}

	cards := protected.Group("/cards")
	{
		cards.OPTIONS("", httputil.OptionsGetPost)
		cards.GET("", co.GetCards)
		cards.POST("", co.CreateCard)
		cards.OPTIONS("/:id", httputil.OptionsGetPatchDelete)
		cards.GET("/:id", co.GetCard)
		cards.PATCH("/:id", co.UpdateCard)
		cards.DELETE("/:id", co.DeleteCard)
		cards.OPTIONS("/:id/invoices", httputil.OptionsGetPost)
		cards.GET("/:id/invoices", co.GetInvoices)
		cards.POST("/:id/invoices", co.CreateInvoice)
		cards.OPTIONS("/:id/invoices/:invoiceId/payments", httputil.OptionsPost)
		cards.POST("/:id/invoices/:invoiceId/payments", co.PayInvoice)
	}

	wishlist := protected.Group("/wishlist")
	{
		wishlist.OPTIONS("", httputil.OptionsGetPost)
		wishlist.GET("", co.GetWishlistItems)
		wishlist.POST("", co.CreateWishlistItem)
		wishlist.OPTIONS("/:id", httputil.OptionsGetPatchDelete)
		wishlist.GET("/:id", co.GetWishlistItem)
		wishlist.PATCH("/:id", co.UpdateWishlistItem)
		wishlist.DELETE("/:id", co.DeleteWishlistItem)
		wishlist.OPTIONS("/:id/purchase", httputil.OptionsPost)
		wishlist.POST("/:id/purchase", co.PurchaseWishlistItem)
	}

	recurring := protected.Group("/recurring")
	{
		recurring.OPTIONS("", httputil.OptionsGetPost)
		recurring.GET("", co.GetRecurringItems)
		recurring.POST("", co.CreateRecurringItem)
		recurring.OPTIONS("/:id", httputil.OptionsGetPatchDelete)
		recurring.GET("/:id", co.GetRecurringItem)
		recurring.PATCH("/:id", co.UpdateRecurringItem)
		recurring.DELETE("/:id", co.DeleteRecurringItem)
	}

	export := protected.Group("/export")
	{
		export.OPTIONS("/transactions", httputil.OptionsGet)
		export.GET("/transactions", co.ExportTransactions)
	}
}
