package util

//*******************************************
// array
//*******************************************

// Array is a fixed-size slice.
type Array[T any] []T

func NewArray[T any](size int) Array[T] {
	return make([]T, size)
}

func (self Array[T]) Length() int {
	return len(self)
}
func (self Array[T]) Get(index int) T {
	return self[index]
}
func (self Array[T]) Set(index int, value T) {
	self[index] = value
}
