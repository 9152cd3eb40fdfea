package imageload

// PlaceholderSize is the edge length of the placeholder pattern in cells
const PlaceholderSize = 8

// Placeholder returns the image shown while nothing has been fetched
func Placeholder() Image {
	return Image{Placeholder: true}
}

// PlaceholderPattern returns a square grid of filled/empty cells that looks
// like a QR code at a glance: three finder squares in the corners and a
// deterministic checker fill elsewhere. It encodes nothing.
func PlaceholderPattern() [PlaceholderSize][PlaceholderSize]bool {
	var grid [PlaceholderSize][PlaceholderSize]bool
	for y := 0; y < PlaceholderSize; y++ {
		for x := 0; x < PlaceholderSize; x++ {
			grid[y][x] = (x*3+y*5)%4 == 0
		}
	}

	finder := func(ox, oy int) {
		for y := 0; y < 3; y++ {
			for x := 0; x < 3; x++ {
				grid[oy+y][ox+x] = !(x == 1 && y == 1)
			}
		}
	}
	finder(0, 0)
	finder(PlaceholderSize-3, 0)
	finder(0, PlaceholderSize-3)

	return grid
}
