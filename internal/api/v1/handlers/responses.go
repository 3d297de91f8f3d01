package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"todo-calendar/internal/calendar"
	"todo-calendar/internal/config"
	"todo-calendar/internal/middleware"
)

// fieldError menulis 400 dengan satu field dan satu pesan.
func fieldError(c *fiber.Ctx, field, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{field: message})
}

func notFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "Not found."})
}

func serverError(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "A server error occurred."})
}

func tokenNotValid(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"detail": "Token is invalid or expired",
		"code":   "token_not_valid",
	})
}

var (
	errUnsupportedMediaType = errors.New("unsupported media type")
	errMalformedForm        = errors.New("malformed form body")
)

// mediaType mengembalikan Content-Type tanpa parameter, lowercase.
func mediaType(c *fiber.Ctx) string {
	ct := c.Get(fiber.HeaderContentType)
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = ct[:i]
	}
	return strings.ToLower(strings.TrimSpace(ct))
}

// parseBody menerima body JSON, form-urlencoded, atau multipart. Body kosong
// dianggap {}. Field form dipetakan ke tag json milik out, nilai terakhir menang.
func parseBody(c *fiber.Ctx, out interface{}) error {
	if len(c.Body()) == 0 {
		return nil
	}

	mt := mediaType(c)
	switch {
	case mt == fiber.MIMEApplicationJSON || strings.HasSuffix(mt, "+json"):
		return c.BodyParser(out)
	case mt == fiber.MIMEApplicationForm:
		fields := map[string]string{}
		c.Request().PostArgs().VisitAll(func(key, value []byte) {
			fields[string(key)] = string(value)
		})
		return decodeFields(c, fields, out)
	case mt == fiber.MIMEMultipartForm:
		form, err := c.MultipartForm()
		if err != nil {
			return fmt.Errorf("%w: %v", errMalformedForm, err)
		}
		fields := map[string]string{}
		for key, values := range form.Value {
			if len(values) > 0 {
				fields[key] = values[len(values)-1]
			}
		}
		return decodeFields(c, fields, out)
	default:
		return errUnsupportedMediaType
	}
}

// decodeFields mengisi out dari field form lewat encoder JSON aplikasi,
// sehingga aturan decode sama dengan body JSON.
func decodeFields(c *fiber.Ctx, fields map[string]string, out interface{}) error {
	raw, err := c.App().Config().JSONEncoder(fields)
	if err != nil {
		return err
	}
	return c.App().Config().JSONDecoder(raw, out)
}

// bodyError menulis respons untuk error dari parseBody.
func bodyError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, errUnsupportedMediaType):
		return c.Status(fiber.StatusUnsupportedMediaType).JSON(fiber.Map{
			"detail": fmt.Sprintf("Unsupported media type \"%s\" in request.", c.Get(fiber.HeaderContentType)),
		})
	case errors.Is(err, errMalformedForm):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Multipart form parse error"})
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "JSON parse error"})
}

// validationMessage menerjemahkan tag validator ke pesan untuk klien.
func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return calendar.MsgRequired
	case "notblank":
		return calendar.MsgBlank
	case "email":
		return "Enter a valid email address."
	case "username":
		return "Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters."
	case "max":
		return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
	default:
		return "Invalid value."
	}
}

// validateRequest menjalankan config.Validate dan mengembalikan error field
// pertama (urutan field struct) sebagai FieldError.
func validateRequest(req interface{}) *calendar.FieldError {
	err := config.Validate.Struct(req)
	if err == nil {
		return nil
	}
	var errs validator.ValidationErrors
	if errors.As(err, &errs) && len(errs) > 0 {
		return &calendar.FieldError{Field: errs[0].Field(), Message: validationMessage(errs[0])}
	}
	return &calendar.FieldError{Field: "non_field_errors", Message: strings.TrimSpace(err.Error())}
}

// validateFields seperti validateRequest, tetapi mengembalikan error pertama
// per field supaya handler bisa menyisipkan cek lain di antara field.
func validateFields(req interface{}) map[string]*calendar.FieldError {
	result := map[string]*calendar.FieldError{}
	err := config.Validate.Struct(req)
	if err == nil {
		return result
	}
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		result["non_field_errors"] = &calendar.FieldError{Field: "non_field_errors", Message: strings.TrimSpace(err.Error())}
		return result
	}
	for _, fe := range errs {
		if _, seen := result[fe.Field()]; !seen {
			result[fe.Field()] = &calendar.FieldError{Field: fe.Field(), Message: validationMessage(fe)}
		}
	}
	return result
}

func currentUserID(c *fiber.Ctx) int {
	id, _ := c.Locals(middleware.LocalUserID).(int)
	return id
}
