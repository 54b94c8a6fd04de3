package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/adriana13032025/sistema-reservas-fase1/internal/model"
)

func TestProfileFor(t *testing.T) {
	assert.Equal(t, Profile{Name: "Cargando...", Handle: "..."}, ProfileFor(nil))

	p := ProfileFor(&model.Identity{UID: "a1b2c3d4e5f6", Anonymous: true})
	assert.Equal(t, "Usuario Anónimo", p.Name)
	assert.Equal(t, "a1b2c3d4...", p.Handle)
	assert.Equal(t, "Gourmet Bronce", p.Level)

	assert.Equal(t, "Usuario", ProfileFor(&model.Identity{UID: "x"}).Name)
}
