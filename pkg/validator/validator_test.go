package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/jobboard-api/pkg/validator"
)

type sample struct {
	Name    string `json:"name" validate:"required,max=5"`
	Email   string `json:"email" validate:"required,email"`
	Kind    string `json:"kind" validate:"omitempty,oneof=a b"`
	Comment string `form:"comment" validate:"min=3"`
}

func TestStruct_Valido(t *testing.T) {
	v := validator.New()
	assert.Nil(t, v.Struct(sample{Name: "ana", Email: "ana@example.com", Comment: "hola"}))
}

func TestStruct_MapaPorCampoJSON(t *testing.T) {
	v := validator.New()
	fields := v.Struct(sample{Name: "demasiado", Email: "no-es-email", Kind: "z", Comment: "x"})

	assert.Equal(t, "no puede superar 5 caracteres", fields["name"])
	assert.Equal(t, "debe ser un email válido", fields["email"])
	assert.Equal(t, "debe ser uno de: a, b", fields["kind"])
	assert.Equal(t, "debe tener al menos 3 caracteres", fields["comment"])
}

func TestVar(t *testing.T) {
	v := validator.New()
	assert.Nil(t, v.Var("email", "a@b.co", "required,email"))
	assert.Equal(t, map[string]string{"email": "es requerido"}, v.Var("email", "", "required,email"))
}
