package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hospitalroster/duty-scheduler/pkg/models"
)

// ValidateInstance checks a problem instance for structural validity
// without running an optimisation.
func (h *Handler) ValidateInstance(c *gin.Context) {
	var input models.InstanceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, models.ValidationResult{Valid: false, Errors: []string{err.Error()}})
		return
	}

	_, errs := input.ToProblemInstance()
	c.JSON(http.StatusOK, models.NewValidationResult(errs))
}
