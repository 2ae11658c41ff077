// Package interpreter executes parsed mlua programs by walking the AST.
//
// Values are 32-bit two's-complement integers: addition, subtraction and
// multiplication wrap, division truncates toward zero. Division by zero is
// not a language-level error; the Go runtime panic propagates to the caller
// and ends the program.
package interpreter
