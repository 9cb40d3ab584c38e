package workload

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnknownDistribution is returned by Parse for names it cannot resolve.
var ErrUnknownDistribution = errors.New("unknown distribution")

// aliases maps the short names used in stats files to canonical names.
var aliases = map[string]string{
	"80pcsorted":   "nearly-sorted:5",
	"90pcsorted":   "nearly-sorted:10",
	"99pcsorted":   "nearly-sorted:100",
	"99.9pcsorted": "nearly-sorted:1000",
	"tail90":       "unsorted-tail:10",
	"tail99":       "unsorted-tail:100",
	"ones":         "constant",
}

// DefaultNames returns the distributions swept when none are configured,
// in sweep order.
func DefaultNames() []string {
	return []string{
		"random",
		"80pcsorted", "90pcsorted", "99pcsorted", "99.9pcsorted",
		"tail90", "tail99",
		"sorted", "reverse", "ones",
	}
}

// Parse resolves a distribution name to a generator. Aliases keep their
// short name so result records match what was asked for.
//
// Parameterized distributions take their noise fraction after a colon,
// e.g. "nearly-sorted:100" perturbs one position in a hundred.
func Parse[T Integer](name string) (Generator[T], error) {
	canonical, aliased := aliases[name]
	if !aliased {
		canonical = name
	}

	gen, err := parseCanonical[T](canonical)
	if err != nil {
		return nil, err
	}

	if aliased {
		return Rename(gen, name), nil
	}

	return gen, nil
}

// ParseAll resolves every name in order.
func ParseAll[T Integer](names []string) ([]Generator[T], error) {
	gens := make([]Generator[T], 0, len(names))

	for _, name := range names {
		gen, err := Parse[T](name)
		if err != nil {
			return nil, err
		}

		gens = append(gens, gen)
	}

	return gens, nil
}

func parseCanonical[T Integer](name string) (Generator[T], error) {
	base, param, hasParam := strings.Cut(name, ":")

	switch base {
	case "random":
		return Random[T]{}, nil
	case "sorted":
		return Sorted[T]{}, nil
	case "reverse":
		return Reverse[T]{}, nil
	case "constant":
		return Constant[T]{}, nil
	case "nearly-sorted", "unsorted-tail":
		if !hasParam {
			return nil, fmt.Errorf(
				"%w %q: missing noise fraction (want %s:K)",
				ErrUnknownDistribution, name, base,
			)
		}

		k, err := strconv.Atoi(param)
		if err != nil || k < 1 {
			return nil, fmt.Errorf(
				"%w %q: noise fraction must be a positive integer",
				ErrUnknownDistribution, name,
			)
		}

		if base == "nearly-sorted" {
			return NearlySorted[T]{K: k}, nil
		}

		return UnsortedTail[T]{K: k}, nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownDistribution, name)
	}
}
