package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/davinpratama/resto-ops/services"
	"github.com/davinpratama/resto-ops/utils"
)

// respondServiceError memetakan error taxonomy dari service layer ke kode
// HTTP. Kegagalan storage yang tidak terduga jadi 500 generik dan dicatat
// untuk operator.
func respondServiceError(c *gin.Context, err error) {
	var notFound *services.NotFoundError
	var capacity *services.CapacityExceededError
	var conflict *services.SlotConflictError
	var precondition *services.PreconditionError

	switch {
	case errors.As(err, &notFound):
		utils.RespondError(c, http.StatusNotFound, err)
	case errors.As(err, &capacity):
		utils.RespondError(c, http.StatusUnprocessableEntity, err)
	case errors.As(err, &conflict):
		utils.RespondError(c, http.StatusConflict, err)
	case errors.As(err, &precondition):
		utils.RespondError(c, http.StatusConflict, err)
	default:
		utils.ErrorLogger.Printf("Internal error: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, errors.New("internal server error"))
	}
}
