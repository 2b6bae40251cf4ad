package models

import "math"

// Distances сопоставляет категории расстояние. nil означает, что
// ближайшего нет (пустая группа или нет столов).
type Distances map[string]*float64

// Value возвращает указатель для значения Distances.
func Value(v float64) *float64 {
	return &v
}

// Equal сравнивает результаты по ключам, порядок вставки не важен.
func (d Distances) Equal(other Distances) bool {
	if len(d) != len(other) {
		return false
	}
	for k, a := range d {
		b, ok := other[k]
		if !ok {
			return false
		}
		if (a == nil) != (b == nil) {
			return false
		}
		if a != nil && *a != *b {
			return false
		}
	}
	return true
}

// Clone возвращает глубокую копию.
func (d Distances) Clone() Distances {
	if d == nil {
		return nil
	}
	out := make(Distances, len(d))
	for k, v := range d {
		if v == nil {
			out[k] = nil
			continue
		}
		out[k] = Value(*v)
	}
	return out
}

// RoundTenth округляет до десятых, половина вверх.
func RoundTenth(v float64) float64 {
	return math.Floor(v*10+0.5) / 10
}
