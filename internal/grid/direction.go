package grid

// Direction names one of the four sides of a cell.
type Direction int

const (
	Top Direction = iota
	Right
	Bottom
	Left
)

// Directions returns the cardinal directions in top, right, bottom, left order.
func Directions() []Direction {
	return []Direction{Top, Right, Bottom, Left}
}

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case Top:
		return "top"
	case Right:
		return "right"
	case Bottom:
		return "bottom"
	case Left:
		return "left"
	default:
		return "unknown"
	}
}

// IsValid returns true for the four cardinal directions.
func (d Direction) IsValid() bool {
	return d >= Top && d <= Left
}

// Opposite returns the direction facing back.
func (d Direction) Opposite() Direction {
	switch d {
	case Top:
		return Bottom
	case Bottom:
		return Top
	case Right:
		return Left
	case Left:
		return Right
	default:
		return d
	}
}

// Delta returns the x and y offsets of the neighbour in this direction.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case Top:
		return 0, -1
	case Right:
		return 1, 0
	case Bottom:
		return 0, 1
	case Left:
		return -1, 0
	default:
		return 0, 0
	}
}

// directionOf maps a unit offset back to its direction.
func directionOf(dx, dy int) (Direction, bool) {
	switch {
	case dx == 0 && dy == -1:
		return Top, true
	case dx == 1 && dy == 0:
		return Right, true
	case dx == 0 && dy == 1:
		return Bottom, true
	case dx == -1 && dy == 0:
		return Left, true
	default:
		return 0, false
	}
}
