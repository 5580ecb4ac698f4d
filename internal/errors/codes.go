package errors

// Error codes for the chaoslab compiler
// These codes are used in error messages and documentation
// to provide consistent error identification across the toolchain.
//
// Error code ranges:
// E0100-E0199: Lexer and parser errors
// E0200-E0299: IR construction errors
// E0300-E0399: Functional simulation errors
// E0900-E0999: Reserved for tooling errors
// W0001-W0099: Warning codes

const (
	// E0100: A required token did not match
	ErrorUnexpectedToken = "E0100"

	// E0101: The lexer met a character outside the language
	ErrorUnrecognizedCharacter = "E0101"

	// E0102: Expression is neither a single term nor term-operator-term
	ErrorUnsupportedExpression = "E0102"

	// E0103: Input ended in the middle of a statement
	ErrorUnexpectedEOF = "E0103"
)

const (
	// E0200: Instruction operands violate the opcode's shape
	ErrorMalformedInstruction = "E0200"
)

const (
	// E0300: Variable read before any assignment
	ErrorUndefinedVariable = "E0300"

	// E0301: DIV with a zero divisor
	ErrorDivisionByZero = "E0301"

	// E0302: Numeral does not fit a signed 64-bit register
	ErrorNumeralOutOfRange = "E0302"
)

const (
	// E0900: Configuration file could not be used
	ErrorInvalidConfig = "E0900"
)

const (
	// W0001: Token at statement level that starts no statement
	WarningIgnoredToken = "W0001"
)
