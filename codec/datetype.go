package codec

import "time"

// Conversion between time.Time and a date type T, e.g., a named time type, or unix milliseconds.
type DateType[T any] struct {
	from func(t time.Time) T
	to   func(v T) time.Time
}

var (
	DateTypeTime      = NewDateType(func(t time.Time) time.Time { return t }, func(t time.Time) time.Time { return t })
	DateTypeUnixMilli = NewDateType(func(t time.Time) int64 { return t.UnixMilli() }, time.UnixMilli)
)

func NewDateType[T any](from func(t time.Time) T, to func(v T) time.Time) DateType[T] {
	return DateType[T]{from: from, to: to}
}

func (d DateType[T]) From(t time.Time) T {
	return d.from(t)
}

func (d DateType[T]) To(v T) time.Time {
	return d.to(v)
}

// Read token as T.
func (d DateType[T]) ReadAs(c *Codec, token string, path string) (T, error) {
	t, err := c.Read(token, path)
	if err != nil {
		var v T
		return v, err
	}
	return d.from(t), nil
}

// Write v with c's primary format.
func (d DateType[T]) WriteAs(c *Codec, v T) string {
	return c.Write(d.to(v))
}
