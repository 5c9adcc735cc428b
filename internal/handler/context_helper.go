package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/scolarite-dao/pkg/errors"
)

// pathID reads a positive numeric path parameter.
func pathID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, appErrors.New(appErrors.ErrValidation.Code, http.StatusBadRequest, "identifiant invalide")
	}
	return id, nil
}

func invalidBody(err error) error {
	return appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "corps de requête invalide")
}
