// Package d2q9 holds the D2Q9 discrete velocity set in lattice units.
//
// Directions are ordered
//
//	0 rest, 1 east, 2 north, 3 west, 4 south,
//	5 northeast, 6 northwest, 7 southwest, 8 southeast
//
// and the tables below are never modified.
package d2q9

import (
	"fmt"
	"math"
)

type Direction uint8

const (
	Rest Direction = iota
	East
	North
	West
	South
	NorthEast
	NorthWest
	SouthWest
	SouthEast
)

// Q is the number of discrete velocities
const Q = 9

// NumLinks is the number of moving directions, the ones that form links
// between neighboring nodes
const NumLinks = Q - 1

// Vector is an integer lattice offset
type Vector struct {
	X, Y int
}

var (
	E = [Q]Vector{
		{0, 0},
		{1, 0},
		{0, 1},
		{-1, 0},
		{0, -1},
		{1, 1},
		{-1, 1},
		{-1, -1},
		{1, -1},
	}
	// Lengths are the Euclidean lengths of E, in lattice spacings
	Lengths = [Q]float64{0, 1, 1, 1, 1, math.Sqrt2, math.Sqrt2, math.Sqrt2, math.Sqrt2}
	// Opposite maps each direction to its reverse, as used by bounce-back
	Opposite = [Q]Direction{Rest, West, South, East, North, SouthWest, SouthEast, NorthEast, NorthWest}
	// Weights are the lattice equilibrium weights
	Weights = [Q]float64{4. / 9., 1. / 9., 1. / 9., 1. / 9., 1. / 9., 1. / 36., 1. / 36., 1. / 36., 1. / 36.}
)

var directionNames = [Q]string{"rest", "east", "north", "west", "south",
	"northeast", "northwest", "southwest", "southeast"}

// Links returns the moving directions 1..8 in table order
func Links() []Direction {
	return []Direction{East, North, West, South, NorthEast, NorthWest, SouthWest, SouthEast}
}

func (d Direction) Offset() Vector { return E[d] }

func (d Direction) Length() float64 { return Lengths[d] }

func (d Direction) Opposite() Direction { return Opposite[d] }

// LinkIndex is the zero-based slot of a moving direction, d-1
func (d Direction) LinkIndex() int { return int(d) - 1 }

func (d Direction) String() string {
	if int(d) < Q {
		return directionNames[d]
	}
	return fmt.Sprintf("Direction(%d)", d)
}
