package handlers

import (
	"net/http"

	apperrors "github.com/NomadCrew/feedback-intake/errors"
	"github.com/NomadCrew/feedback-intake/logger"
	"github.com/NomadCrew/feedback-intake/services"
	"github.com/NomadCrew/feedback-intake/types"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"
)

// FeedbackHandler handles feedback submission endpoints.
type FeedbackHandler struct {
	validator *services.FeedbackValidator
	log       *zap.SugaredLogger
}

// NewFeedbackHandler creates a new FeedbackHandler.
func NewFeedbackHandler(validator *services.FeedbackValidator) *FeedbackHandler {
	return &FeedbackHandler{
		validator: validator,
		log:       logger.GetLogger(),
	}
}

// SubmitForm godoc
// @Summary      Submit feedback from the HTML form
// @Description  Accepts URL-encoded form fields and echoes them back unchanged. The email address is not format-checked.
// @Tags         feedback
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        name     formData  string    true  "Submitter name"
// @Param        email    formData  string    true  "Submitter email"
// @Param        message  formData  string    true  "Feedback message, at least 10 characters"
// @Param        tags     formData  []string  true  "One or more tags"  collectionFormat(multi)
// @Success      200  {object}  types.SubmissionResponse
// @Failure      400  {object}  types.HTTPErrorResponse
// @Failure      422  {object}  types.ValidationErrorResponse
// @Router       /submit [post]
func (h *FeedbackHandler) SubmitForm(c *gin.Context) {
	var req types.FormSubmission
	if err := c.ShouldBindWith(&req, binding.Form); err != nil {
		_ = c.Error(apperrors.ValidationFailed(apperrors.FieldError{
			Loc:  apperrors.BodyField(),
			Msg:  err.Error(),
			Type: apperrors.FieldValueError,
		}))
		return
	}
	// Some clients post arrays with PHP-style keys.
	if len(req.Tags) == 0 {
		if tags := c.PostFormArray("tags[]"); len(tags) > 0 {
			req.Tags = tags
		}
	}

	if err := h.validator.ValidateFormSubmission(&req); err != nil {
		_ = c.Error(err)
		return
	}

	h.log.Debugw("Form submission accepted",
		"email", logger.MaskEmail(req.Email),
		"tag_count", len(req.Tags),
	)

	c.JSON(http.StatusOK, types.SubmissionResponse{
		Message: types.FormSubmittedMessage,
		Data:    req,
	})
}

// SubmitJSON godoc
// @Summary      Submit feedback as JSON
// @Description  Validates the payload and returns it with every tag uppercased.
// @Tags         feedback
// @Accept       json
// @Produce      json
// @Param        body  body      types.Feedback  true  "Feedback payload"
// @Success      200   {object}  types.ProcessedResponse
// @Failure      400   {object}  types.HTTPErrorResponse
// @Failure      422   {object}  types.ValidationErrorResponse
// @Router       /submit-json [post]
func (h *FeedbackHandler) SubmitJSON(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		_ = c.Error(apperrors.New(apperrors.BadRequestError, "Bad Request", "Request body could not be read"))
		return
	}

	req, decodeErr := decodeFeedback(body)
	if decodeErr != nil {
		_ = c.Error(decodeErr)
		return
	}

	if err := h.validator.ValidateFeedback(&req); err != nil {
		_ = c.Error(err)
		return
	}

	processed := services.ProcessFeedback(req)

	h.log.Debugw("JSON submission accepted",
		"email", logger.MaskEmail(processed.Email),
		"tag_count", len(processed.Tags),
	)

	c.JSON(http.StatusOK, types.ProcessedResponse{
		Message:       types.JSONSubmittedMessage,
		ProcessedData: processed,
	})
}
