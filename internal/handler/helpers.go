package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/noah-isme/timetable-engine/pkg/errors"
)

func idParam(c *gin.Context, name string) (int64, error) {
	return parseQueryID(c.Param(name), name)
}

func parseQueryID(raw, name string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.Clone(apperrors.ErrValidation, "invalid "+name+" parameter")
	}
	return id, nil
}
