package handlers

import (
	"net/http"
	"strings"

	"github.com/Kiranpjk/RapidGigs-sub001/internal/errs"
	"github.com/Kiranpjk/RapidGigs-sub001/internal/models"
	"github.com/Kiranpjk/RapidGigs-sub001/internal/msgs"
	"github.com/Kiranpjk/RapidGigs-sub001/internal/utils"

	"github.com/gin-gonic/gin"
)

// MustAuthenticateMiddleware verifies the bearer token and stashes the claims
// in the request context. Everything behind it can trust "user_id".
func MustAuthenticateMiddleware(jwtKey []byte) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		jwtToken := ctx.GetHeader("Authorization")
		if strings.Contains(jwtToken, "Bearer") {
			jwtToken = strings.Replace(jwtToken, "Bearer ", "", 1)
		}

		if jwtToken == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, models.Response{
				Success: false,
				Message: msgs.MsgYouMustLoginFirst,
				Errors:  models.ErrorStrings(errs.ErrUnauthorized),
			})
			return
		}

		claims, err := utils.VerifyToken(jwtToken, jwtKey)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, models.Response{
				Success: false,
				Message: msgs.MsgYouMustLoginFirst,
				Errors:  models.ErrorStrings(errs.ErrUnauthorized),
			})
			return
		}

		ctx.Set("user_id", claims.ID)
		ctx.Set("user_first_name", claims.FirstName)
		ctx.Set("user_last_name", claims.LastName)
		ctx.Next()
	}
}

func authenticatedUserID(ctx *gin.Context) uint {
	return ctx.GetUint("user_id")
}
