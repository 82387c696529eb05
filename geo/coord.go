package geo

//*******************************************
// coordinates
//*******************************************

// Coord is a (lon, lat) pair.
type Coord [2]float32

func (self Coord) Lon() float32 {
	return self[0]
}
func (self Coord) Lat() float32 {
	return self[1]
}
