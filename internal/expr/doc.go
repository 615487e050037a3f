// Package expr parses right-hand side expressions such as
// "(1 - x**2) / (x * y)" into an evaluable tree.
//
// The grammar is restricted to arithmetic on the variables x and y,
// numeric literals, the constants pi and e, and a fixed table of math
// functions. Both ^ and ** denote exponentiation. Names may carry an
// "np." or "math." prefix so expressions written for numpy read the same.
//
//	expr    = term { ("+" | "-") term }
//	term    = unary { ("*" | "/") unary }
//	unary   = ("+" | "-") unary | power
//	power   = primary [ ("^" | "**") unary ]
//	primary = number | name | name "(" expr { "," expr } ")" | "(" expr ")"
//
// Evaluation never panics. Division by zero and out-of-domain arguments
// are reported as errors so an integrator can stop cleanly.
package expr
