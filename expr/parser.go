package expr

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/teranos/dimensio/errors"
)

const (
	// DefaultBudget is the iteration budget used by Parse.
	DefaultBudget = 1000

	// Unbounded disables the iteration budget.
	Unbounded = -1
)

// Parser parses compound unit expressions. The zero value has a budget of
// zero iterations and only accepts atomic identifiers and the empty string.
type Parser struct {
	// Budget is the maximum number of simplification passes. A negative
	// budget is unbounded; an unbounded parse that stops making progress
	// still fails with errors.ErrParserExhaustion.
	Budget int

	// KeepCancelled keeps identifiers whose exponents cancel to zero, so
	// that "m/m" yields {"m": 0} instead of the empty mapping.
	KeepCancelled bool
}

// Parse parses expression with DefaultBudget.
func Parse(expression string) (Exponents, error) {
	return Parser{Budget: DefaultBudget}.Parse(expression)
}

// ParseWithBudget parses expression with the given iteration budget.
func ParseWithBudget(expression string, budget int) (Exponents, error) {
	return Parser{Budget: budget}.Parse(expression)
}

// Parse maps expression to its net exponent per atomic identifier.
//
// The work set starts as {expression: 1}. Each pass strips one layer of
// enclosing parentheses from every entry, then either merges it as an atomic
// identifier or splits it at the first top-level "*", else the last top-level
// "/" (negating the right half), else the last top-level "^". Entries that
// match none of these are carried forward unchanged. Parsing stops once every
// entry is atomic.
func (p Parser) Parse(expression string) (Exponents, error) {
	text := normalize(expression)
	if text == "" {
		return Exponents{}, nil
	}
	if err := checkSyntax(text); err != nil {
		return nil, annotate(err, expression)
	}

	work := map[string]float64{text: 1}
	for pass := 0; !allAtomic(work); pass++ {
		if p.Budget >= 0 && pass >= p.Budget {
			return nil, annotate(errors.NewUnitError(errors.ErrParserExhaustion,
				"%q did not simplify within %d iterations", expression, p.Budget), expression)
		}

		next, err := simplify(work)
		if err != nil {
			return nil, annotate(err, expression)
		}
		if p.Budget < 0 && sameWork(work, next) {
			return nil, annotate(errors.NewUnitError(errors.ErrParserExhaustion,
				"%q stopped simplifying after %d iterations", expression, pass), expression)
		}
		work = next
	}

	if p.KeepCancelled {
		return Exponents(work), nil
	}
	return Exponents(work).compact(), nil
}

// checkSyntax rejects unmatched parentheses and dangling operators before
// simplification begins.
func checkSyntax(text string) error {
	if at := unbalancedAt(text); at >= 0 {
		return errors.WithHint(
			errors.NewUnitError(errors.ErrInvalidUnit, "unmatched parenthesis at offset %d in %q", at, text),
			"every '(' needs a matching ')'")
	}
	if strings.ContainsRune("*/^", rune(text[0])) {
		return errors.NewUnitError(errors.ErrInvalidUnit, "leading operator %q in %q", text[:1], text)
	}
	if last := text[len(text)-1]; strings.ContainsRune("*/^", rune(last)) {
		return errors.NewUnitError(errors.ErrInvalidUnit, "trailing operator %q in %q", string(last), text)
	}
	return nil
}

// simplify runs one pass over the work set. Keys are visited in sorted order so
// that the first reported error is deterministic.
func simplify(work map[string]float64) (map[string]float64, error) {
	keys := make([]string, 0, len(work))
	for k := range work {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	next := make(map[string]float64, len(work))
	for _, text := range keys {
		exp := work[text]

		inner, _ := stripEnclosing(text)
		if inner == "" {
			return nil, errors.NewUnitError(errors.ErrInvalidUnit, "empty group %q", text)
		}

		if IsAtomic(inner) {
			next[inner] += exp
			continue
		}

		if left, right, ok := splitFirst(inner, '*'); ok {
			if err := requireOperands(inner, "*", left, right); err != nil {
				return nil, err
			}
			next[left] += exp
			next[right] += exp
			continue
		}

		if left, right, ok := splitLast(inner, '/'); ok {
			if err := requireOperands(inner, "/", left, right); err != nil {
				return nil, err
			}
			next[left] += exp
			next[right] -= exp
			continue
		}

		if base, power, ok := splitLast(inner, '^'); ok {
			if err := requireOperands(inner, "^", base, power); err != nil {
				return nil, err
			}
			n, err := parseExponent(power)
			if err != nil {
				return nil, err
			}
			if _, grouped := stripEnclosing(base); !grouped && !IsAtomic(base) {
				return nil, errors.WithHint(
					errors.NewUnitError(errors.ErrInvalidUnit, "exponent base %q in %q is not a unit or a parenthesized group", base, inner),
					"wrap the base in parentheses, e.g. (m/s)^2")
			}
			next[base] += exp * n
			continue
		}

		// No operator applies: carry forward. Juxtaposed groups such as
		// "(N)(m)" stay here until the budget runs out.
		next[inner] += exp
	}
	return next, nil
}

func requireOperands(text, op, left, right string) error {
	if left == "" || right == "" {
		return errors.NewUnitError(errors.ErrInvalidUnit, "operator %q is missing an operand in %q", op, text)
	}
	return nil
}

// parseExponent reads a decimal or scientific exponent, optionally wrapped in
// one pair of parentheses.
func parseExponent(text string) (float64, error) {
	raw := text
	text, _ = stripEnclosing(text)
	if text == "" || strings.IndexFunc(text, notNumeric) >= 0 {
		return 0, invalidExponent(raw)
	}
	n, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsInf(n, 0) || math.IsNaN(n) {
		return 0, invalidExponent(raw)
	}
	return n, nil
}

func notNumeric(r rune) bool {
	return !strings.ContainsRune("0123456789.eE+-", r)
}

func invalidExponent(text string) error {
	return errors.WithHint(
		errors.NewUnitError(errors.ErrInvalidExponent, "%q is not a number", text),
		"exponents are decimal or scientific numbers, e.g. 2, -3.5, 2e-1")
}

func allAtomic(work map[string]float64) bool {
	for text := range work {
		if !IsAtomic(text) {
			return false
		}
	}
	return true
}

func sameWork(a, b map[string]float64) bool {
	return Exponents(a).Equal(Exponents(b))
}

func annotate(err error, expression string) error {
	return errors.WithDetailf(err, "expression: %q", expression)
}
