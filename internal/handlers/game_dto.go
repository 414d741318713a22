package handlers

import (
	"github.com/gorilla/schema"

	"github.com/vancomm/minefield/internal/mines"
)

type NewGameDTO struct {
	Height    int `schema:"height"`
	Width     int `schema:"width"`
	MineCount int `schema:"mine_count"`
}

// ParseNewGameDTO fills in the keys present in src on top of defaults.
func ParseNewGameDTO(src map[string][]string, defaults mines.Params) (mines.Params, error) {
	dto := NewGameDTO(defaults)
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	err := dec.Decode(&dto, src)
	return mines.Params(dto), err
}

type PositionDTO struct {
	Row int `schema:"row,required"`
	Col int `schema:"col,required"`
}

func ParsePosition(src map[string][]string) (PositionDTO, error) {
	var dto PositionDTO
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	err := dec.Decode(&dto, src)
	return dto, err
}
