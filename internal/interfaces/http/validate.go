package http

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/erp-core/internal/application/dto"
)

var validate = newValidator()

// newValidator reporta los campos con su nombre JSON.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// errBadRequest indica que la respuesta 400 ya fue escrita.
var errBadRequest = errors.New("bad request")

// parseBody decodifica el JSON del cuerpo y aplica las etiquetas validate.
// Si devuelve errBadRequest el handler debe retornar nil: la respuesta ya está escrita.
func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		if werr := c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"}); werr != nil {
			return werr
		}
		return errBadRequest
	}
	return validateStruct(c, out)
}

// parseQuery es el equivalente de parseBody para los parámetros de consulta.
func parseQuery(c *fiber.Ctx, out any) error {
	if err := c.QueryParser(out); err != nil {
		if werr := c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PARAMS", Message: "parámetros de consulta inválidos"}); werr != nil {
			return werr
		}
		return errBadRequest
	}
	return validateStruct(c, out)
}

func validateStruct(c *fiber.Ctx, out any) error {
	if err := validate.Struct(out); err != nil {
		if werr := c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: describe(err)}); werr != nil {
			return werr
		}
		return errBadRequest
	}
	return nil
}

// describe resume los campos rechazados: "name: required; items[0].quantity: gt".
func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		ns := fe.Namespace()
		if i := strings.Index(ns, "."); i >= 0 {
			ns = ns[i+1:]
		}
		parts = append(parts, fmt.Sprintf("%s: %s", ns, fe.Tag()))
	}
	return strings.Join(parts, "; ")
}

// handled convierte errBadRequest en nil para el handler.
func handled(err error) error {
	if errors.Is(err, errBadRequest) {
		return nil
	}
	return err
}
