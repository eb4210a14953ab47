package helper

import (
	"encoding/json"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"portfolio-api/models"
	Logger "portfolio-api/utils/log"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/pkg/errors"
)

// Response is the envelope every endpoint writes.
type Response struct {
	Success    bool               `json:"success"`
	Data       interface{}        `json:"data,omitempty"`
	Message    string             `json:"message,omitempty"`
	Error      string             `json:"error,omitempty"`
	Details    map[string]string  `json:"details,omitempty"`
	Pagination *models.Pagination `json:"pagination,omitempty"`
}

// HTTPHelper ...
type HTTPHelper struct {
	Validate   *validator.Validate
	Translator ut.Translator
}

// NewHTTPHelper hooks an English translator into gin's binding validator so
// binding failures can be reported field by field.
func NewHTTPHelper() *HTTPHelper {
	h := &HTTPHelper{}
	english := en.New()
	h.Translator, _ = ut.New(english, english).GetTranslator("en")

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		h.Validate = v
		v.RegisterTagNameFunc(jsonFieldName)
		if err := en_translations.RegisterDefaultTranslations(v, h.Translator); err != nil {
			Logger.Log.WithError(err).Warn("register validator translations")
		}
	}
	return h
}

func jsonFieldName(field reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name := strings.SplitN(field.Tag.Get(tag), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return field.Name
}

// GetStatusCode ...
func (u *HTTPHelper) GetStatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var (
		validation   models.ErrorValidation
		unauthorized models.ErrorUnauthorized
		forbidden    models.ErrorForbidden
		notFound     models.ErrorNotFound
		conflict     models.ErrorConflict
		internal     models.ErrorInternalServer
	)
	switch {
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &unauthorized):
		return http.StatusUnauthorized
	case errors.As(err, &forbidden):
		return http.StatusForbidden
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &conflict):
		return http.StatusConflict
	case errors.As(err, &internal):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// SendSuccess ...
// Send success response to consumers.
func (u *HTTPHelper) SendSuccess(c *gin.Context, status int, data interface{}) {
	c.JSON(status, Response{Success: true, Data: data})
}

// SendPaginated writes a page of rows with its pagination block.
func (u *HTTPHelper) SendPaginated(c *gin.Context, data interface{}, pagination models.Pagination) {
	c.JSON(http.StatusOK, Response{Success: true, Data: data, Pagination: &pagination})
}

// SendMessage ...
func (u *HTTPHelper) SendMessage(c *gin.Context, status int, message string) {
	c.JSON(status, Response{Success: true, Message: message})
}

// SendError ...
// Send error response to consumers. Errors outside the taxonomy are logged
// and answered with fallback so internal detail never leaves the server.
func (u *HTTPHelper) SendError(c *gin.Context, err error, fallback string) {
	status := u.GetStatusCode(err)
	if status == http.StatusInternalServerError {
		Logger.Log.WithError(err).
			WithField("method", c.Request.Method).
			WithField("path", c.FullPath()).
			Error(fallback)
		c.AbortWithStatusJSON(status, Response{Error: fallback})
		return
	}

	res := Response{Error: err.Error()}
	var validation models.ErrorValidation
	if errors.As(err, &validation) {
		res.Error = validation.Message
		res.Details = validation.Details
	}
	c.AbortWithStatusJSON(status, res)
}

// SendBadRequest ...
// Send bad request response to consumers.
func (u *HTTPHelper) SendBadRequest(c *gin.Context, message string) {
	u.SendError(c, models.ErrorValidation{Message: message}, message)
}

// SendBindError reports a failed ShouldBind call. Validator failures carry
// a translated message per field.
func (u *HTTPHelper) SendBindError(c *gin.Context, err error) {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		u.SendValidationError(c, validationErrors)
		return
	}

	message := "Invalid request body"
	var numErr *strconv.NumError
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &numErr):
		message = "Invalid query parameters"
	case errors.As(err, &typeErr):
		message = "Invalid value for " + typeErr.Field
	case errors.As(err, &syntaxErr):
		message = "Malformed JSON body"
	}
	u.SendBadRequest(c, message)
}

// SendValidationError ...
// Send validation error response to consumers.
func (u *HTTPHelper) SendValidationError(c *gin.Context, validationErrors validator.ValidationErrors) {
	details := map[string]string{}
	var translated validator.ValidationErrorsTranslations
	if u.Translator != nil {
		translated = validationErrors.Translate(u.Translator)
	}
	for _, fe := range validationErrors {
		msg, ok := translated[fe.Namespace()]
		if !ok {
			msg = fe.Error()
		}
		details[fe.Field()] = msg
	}
	u.SendError(c, models.ErrorValidation{Message: "Validation failed", Details: details}, "Validation failed")
}

// ParseID reads a positive integer path parameter, answering 400 with
// message when it is malformed.
func (u *HTTPHelper) ParseID(c *gin.Context, name, message string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id < 1 {
		u.SendBadRequest(c, message)
		return 0, false
	}
	return id, true
}
