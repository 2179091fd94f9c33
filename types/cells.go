package types

import (
	"fmt"
	"strings"
)

type CellType uint8

const (
	Fluid CellType = iota
	NearWall
	Wall
)

var CellTypeNameMap = map[string]CellType{
	"fluid":     Fluid,
	"near_wall": NearWall,
	"nearwall":  NearWall,
	"boundary":  NearWall,
	"wall":      Wall,
	"solid":     Wall,
}

func (ct CellType) String() string {
	switch ct {
	case Fluid:
		return "fluid"
	case NearWall:
		return "near_wall"
	case Wall:
		return "wall"
	}
	return fmt.Sprintf("CellType(%d)", ct)
}

func NewCellType(label string) (ct CellType, err error) {
	var ok bool
	if ct, ok = CellTypeNameMap[strings.ToLower(strings.TrimSpace(label))]; !ok {
		err = fmt.Errorf("unknown cell type %q", label)
	}
	return
}

// CellCodes are the integer codes written for each cell type when a
// classification is exported
type CellCodes struct {
	Fluid, NearWall, Wall int
}

var DefaultCellCodes = CellCodes{Fluid: 0, NearWall: 1, Wall: 2}

func (cc CellCodes) Code(ct CellType) int {
	switch ct {
	case NearWall:
		return cc.NearWall
	case Wall:
		return cc.Wall
	}
	return cc.Fluid
}
