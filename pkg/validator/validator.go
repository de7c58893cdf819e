package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	playground "github.com/go-playground/validator/v10"
)

// Validator valida DTOs con las etiquetas `validate:"..."` y devuelve un mapa campo → mensaje.
// Los nombres de campo salen de la etiqueta json (o form), que es lo que ve el cliente.
type Validator struct {
	v *playground.Validate
}

// New construye el validador.
func New() *Validator {
	v := playground.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})
	return &Validator{v: v}
}

// Struct valida s. Devuelve nil si es válido; error no relacionado con validación (p.ej. s no es struct) → panic de programación.
func (val *Validator) Struct(s any) map[string]string {
	err := val.v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs playground.ValidationErrors
	if !errors.As(err, &verrs) {
		panic(fmt.Sprintf("validator: %v", err))
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		if _, ok := fields[fe.Field()]; ok {
			continue
		}
		fields[fe.Field()] = message(fe)
	}
	return fields
}

// Var valida un valor suelto (ej. "required,email").
func (val *Validator) Var(field string, value any, tag string) map[string]string {
	err := val.v.Var(value, tag)
	if err == nil {
		return nil
	}
	var verrs playground.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return map[string]string{field: "valor inválido"}
	}
	return map[string]string{field: message(verrs[0])}
}

func message(fe playground.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "es requerido"
	case "email":
		return "debe ser un email válido"
	case "min":
		return fmt.Sprintf("debe tener al menos %s caracteres", fe.Param())
	case "max":
		return fmt.Sprintf("no puede superar %s caracteres", fe.Param())
	case "oneof":
		return fmt.Sprintf("debe ser uno de: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "eqfield":
		return "la confirmación no coincide"
	default:
		return fmt.Sprintf("no cumple la regla %q", fe.Tag())
	}
}
