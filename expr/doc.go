// Package expr parses compound unit expressions such as "kg*m/s^2", "(m/s)^2"
// or "kg^-2" into a canonical mapping from atomic unit identifier to net
// exponent.
//
// Grammar:
//
//	expression := term { ("*" | "/") term }
//	term       := atom | "(" expression ")" [ ("^" | "**") exponent ]
//	atom       := identifier [ ("^" | "**") exponent ]
//	exponent   := number | "(" number ")"
//
// Identifiers are runs of any characters other than digits, ".", "*", "/",
// "^", parentheses and whitespace. Numbers are decimal or scientific ("2",
// "-3.5", "2e-1"). "*" and "/" have equal precedence and associate left to
// right, "^" binds tighter, parentheses override both and whitespace is
// insignificant. The empty expression parses to the empty mapping.
//
// Parsing is an iterative fixed-point simplification bounded by an iteration
// budget, so every input either resolves or fails deterministically. Inputs
// that juxtapose groups without an operator, such as "(N)(m)", never reach a
// fixed point and fail with errors.ErrParserExhaustion.
//
// Parsing is pure: no state is kept between calls and nothing is logged.
package expr
