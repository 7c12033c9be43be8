package utils

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/taskhub-dev/taskhub/internal/auth"
	"github.com/taskhub-dev/taskhub/internal/types"
)

func GetCurrentClaims(ctx *gin.Context) (auth.Claims, error) {
	value, exists := ctx.Get(types.ContextUserKey)

	if !exists {
		return auth.Claims{}, fmt.Errorf("user not authenticated")
	}

	claims, ok := value.(auth.Claims)

	if !ok {
		return auth.Claims{}, fmt.Errorf("invalid claims type in context")
	}

	return claims, nil
}
