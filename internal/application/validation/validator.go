// Package validation capa de validación de formularios: esquema declarativo con tags
// de go-playground/validator más refinamientos entre campos. Duplica parte de las reglas
// del API para dar respuesta inmediata; no es autoritativa.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// decimal.Decimal se valida como número (min=0, gt=0...) en lugar de como struct.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	// Las rutas de error usan los nombres JSON que ve el cliente.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	registerRefinements(v)
	return v
}

// Validate ejecuta esquema y refinamientos sobre un formulario (struct o puntero a struct).
func Validate(form interface{}) FormErrors {
	var out FormErrors
	err := validate.Struct(form)
	if err == nil {
		return out
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out.Add(RootField, "formulario inválido")
		return out
	}
	for _, fe := range verrs {
		out.Add(fieldPath(fe), message(fe))
	}
	return out
}

// fieldPath quita el nombre del struct raíz del namespace: "Req.details[0].quantity_kg" -> "details[0].quantity_kg".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return RootField
}

func message(fe validator.FieldError) string {
	if msg, ok := refinementMessages[fe.Tag()]; ok {
		return msg
	}
	switch fe.Tag() {
	case "required":
		return "Este campo es obligatorio"
	case "min":
		if isNumeric(fe.Kind()) {
			return fmt.Sprintf("Debe ser mayor o igual a %s", fe.Param())
		}
		return fmt.Sprintf("Debe tener al menos %s elementos o caracteres", fe.Param())
	case "max":
		if isNumeric(fe.Kind()) {
			return fmt.Sprintf("Debe ser menor o igual a %s", fe.Param())
		}
		return fmt.Sprintf("Debe tener como máximo %s caracteres", fe.Param())
	case "gt":
		return fmt.Sprintf("Debe ser mayor a %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("Debe ser uno de: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "email":
		return "Correo electrónico inválido"
	case "numeric":
		return "Solo se permiten números"
	case "datetime":
		return "Fecha inválida (AAAA-MM-DD)"
	default:
		return "Valor inválido"
	}
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
