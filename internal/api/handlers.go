package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sumanurawat/phoenix-sub003/internal/app"
	"github.com/sumanurawat/phoenix-sub003/internal/contact"
)

const (
	errInternal = "An error occurred while processing your request. Please try again later."
	errTooLarge = "Request body too large"
)

/* ================================================================
   CONTACT FORM
================================================================ */

func handleContactSubmission(a *app.App, c *gin.Context) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, a.GetConfig().MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": errTooLarge})
			return
		}
		a.Logger().Warn("read contact body", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request"})
		return
	}

	form, err := contact.ParseForm(body)
	if err == nil {
		_, err = a.Recorder().Submit(c.Request.Context(), form)
	}

	var verr *contact.ValidationError
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"success": true, "message": contact.ConfirmationMessage})
	case errors.As(err, &verr):
		_ = c.Error(err)
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": validationMessage(verr)})
	default:
		// detail was logged by the recorder
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": errInternal})
	}
}

func validationMessage(e *contact.ValidationError) string {
	switch {
	case len(e.Missing) > 0:
		return "All fields are required"
	case e.Reason == contact.ReasonInvalidJSON:
		return "Invalid JSON body"
	default:
		return "No data provided"
	}
}

/* ================================================================
   HEALTH
================================================================ */

func handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
