package rules

import "fmt"

// Numeric is the generic constraint shared by the numeric rule constructors.
type Numeric interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

func Min[T any, V Numeric](field string, get func(T) V, min V) Rule[T] {
	return Rule[T]{
		Field:   field,
		Message: fmt.Sprintf("must be at least %v", min),
		Check: func(entity T) bool {
			return get(entity) >= min
		},
	}
}

func Max[T any, V Numeric](field string, get func(T) V, max V) Rule[T] {
	return Rule[T]{
		Field:   field,
		Message: fmt.Sprintf("must be at most %v", max),
		Check: func(entity T) bool {
			return get(entity) <= max
		},
	}
}

// Between validates that the accessed value lies in the inclusive range [min, max].
func Between[T any, V Numeric](field string, get func(T) V, min, max V) Rule[T] {
	return Rule[T]{
		Field:   field,
		Message: fmt.Sprintf("must be between %v and %v", min, max),
		Check: func(entity T) bool {
			value := get(entity)
			return value >= min && value <= max
		},
	}
}

func Positive[T any, V Numeric](field string, get func(T) V) Rule[T] {
	return Rule[T]{
		Field:   field,
		Message: "must be positive",
		Check: func(entity T) bool {
			return get(entity) > 0
		},
	}
}
