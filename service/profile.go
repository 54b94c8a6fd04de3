package service

import "github.com/adriana13032025/sistema-reservas-fase1/internal/model"

// Profile: 프로필 패널에 보여 줄 값
type Profile struct {
	Name   string
	Handle string
	Level  string
}

func ProfileFor(identity *model.Identity) Profile {
	if identity == nil {
		return Profile{Name: "Cargando...", Handle: "..."}
	}
	name := "Usuario"
	if identity.Anonymous {
		name = "Usuario Anónimo"
	}
	return Profile{Name: name, Handle: identity.ShortUID(), Level: "Gourmet Bronce"}
}
