package v1

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/caixinhas/backend/internal/httputil"
	"github.com/caixinhas/backend/internal/models"
)

type RegisterEditable struct {
	Name     string `json:"name" example:"Maria"`
	Email    string `json:"email" example:"maria@example.com"`
	Password string `json:"password" example:"hunter2hunter2"`
}

type LoginEditable struct {
	Email    string `json:"email" example:"maria@example.com"`
	Password string `json:"password" example:"hunter2hunter2"`
}

type UserResponse struct {
	Data  *models.User `json:"data"`
	Error *string      `json:"error"`
}

type LoginData struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

type LoginResponse struct {
	Data  *LoginData `json:"data"`
	Error *string    `json:"error"`
}

// @Summary		Register user
// @Description	Creates a new user account
// @Tags			Auth
// @Accept			json
// @Produce		json
// @Success		201		{object}	UserResponse
// @Failure		400		{object}	UserResponse
// @Failure		500		{object}	UserResponse
// @Param			user	body		RegisterEditable	true	"User"
// @Router			/v1/auth/register [post]
func (co *Controller) Register(c *gin.Context) {
	var data RegisterEditable
	err := httputil.BindData(c, &data)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), UserResponse{Error: &e})
		return
	}

	if strings.TrimSpace(data.Email) == "" {
		e := errEmailNotSet.Error()
		c.JSON(http.StatusBadRequest, UserResponse{Error: &e})
		return
	}

	if len(data.Password) < 8 {
		e := errPasswordTooShort.Error()
		c.JSON(http.StatusBadRequest, UserResponse{Error: &e})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(data.Password), bcrypt.DefaultCost)
	if err != nil {
		e := models.ErrGeneral.Error()
		c.JSON(http.StatusInternalServerError, UserResponse{Error: &e})
		return
	}

	user := models.User{
		Name:         data.Name,
		Email:        data.Email,
		PasswordHash: string(hash),
	}

	err = co.db.Create(&user).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), UserResponse{Error: &e})
		return
	}

	c.JSON(http.StatusCreated, UserResponse{Data: &user})
}

// @Summary		Log in
// @Description	Verifies the credentials and returns a bearer token
// @Tags			Auth
// @Accept			json
// @Produce		json
// @Success		200			{object}	LoginResponse
// @Failure		400			{object}	LoginResponse
// @Failure		401			{object}	LoginResponse
// @Failure		500			{object}	LoginResponse
// @Param			credentials	body		LoginEditable	true	"Credentials"
// @Router			/v1/auth/login [post]
func (co *Controller) Login(c *gin.Context) {
	var data LoginEditable
	err := httputil.BindData(c, &data)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), LoginResponse{Error: &e})
		return
	}

	var user models.User
	err = co.db.First(&user, "email = ?", strings.ToLower(strings.TrimSpace(data.Email))).Error
	if err != nil {
		// An unknown address reads exactly like a wrong password
		if errors.Is(err, models.ErrResourceNotFound) {
			e := errInvalidCredentials.Error()
			c.JSON(http.StatusUnauthorized, LoginResponse{Error: &e})
			return
		}

		e := err.Error()
		c.JSON(status(err), LoginResponse{Error: &e})
		return
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(data.Password))
	if err != nil {
		e := errInvalidCredentials.Error()
		c.JSON(http.StatusUnauthorized, LoginResponse{Error: &e})
		return
	}

	token, err := co.signToken(user)
	if err != nil {
		e := models.ErrGeneral.Error()
		c.JSON(http.StatusInternalServerError, LoginResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Data: &LoginData{
			Token: token,
			User:  user,
		},
	})
}

func (co *Controller) signToken(user models.User) (string, error) {
	now := time.Now().In(time.UTC)

	claims := jwt.RegisteredClaims{
		Subject:   user.ID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(co.jwt.ExpireTime)),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(co.jwt.Secret))
}
