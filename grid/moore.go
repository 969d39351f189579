package grid

// Slots is the size of one cell's Moore block in the intent and maintain buffers.
const Slots = 9

// Center is the slot of the zero offset: a cell addressing itself.
const Center = 4

// Point is an integer offset from a cell to one of its Moore neighbours.
type Point struct {
	DX, DY int
}

var offsets = [Slots]Point{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {0, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// OffsetIndex maps an offset in {-1,0,1}x{-1,0,1} to its slot 0..8.
func OffsetIndex(dx, dy int) int {
	return (dy+1)*3 + (dx + 1)
}

// Offset returns the offset stored in slot k.
func Offset(k int) Point {
	return offsets[k]
}

// Opposite returns the slot pointing back along slot k.
func Opposite(k int) int {
	return Slots - 1 - k
}

// MooreIndex returns the buffer index of slot k in cell i's block.
func MooreIndex(i, k int) int {
	return i*Slots + k
}
