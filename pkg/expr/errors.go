package expr

import "fmt"

// Message fragments here are a stable external contract; callers match
// substrings, not error types.

func errEmptyExpression() error { return fmt.Errorf("Invalid pattern in expression: empty") }

func errUnparsable(text string) error {
	return fmt.Errorf("Invalid pattern in expression: %q", text)
}

func errUnboundVariable(name string) error {
	return fmt.Errorf("Variable %q is not bound", name)
}

func errMissingParameter(name string) error {
	return fmt.Errorf("Missing parameter: %s", name)
}

func errInvalidParameterName(name string) error {
	return fmt.Errorf("Invalid parameter name: %s", name)
}

func errUnsupportedFunction(name string) error {
	return fmt.Errorf("Unsupported function: %s", name)
}

func errConvert(kind, to string) error {
	return fmt.Errorf("Cannot convert %s to %s", kind, to)
}

func errPlusOperands() error {
	return fmt.Errorf("Operator + expects numeric, list, or string operands")
}

func errDivisionByZero() error { return fmt.Errorf("Division by zero") }
func errModuloByZero() error { return fmt.Errorf("Modulo by zero") }

func errInvalidMapEntry() error { return fmt.Errorf("Invalid map entry") }
func errUnsupportedMapKey() error {
	return fmt.Errorf("Unsupported map key")
}

func errFunctionArgCount(name string, n int) error {
	plural := "s"
	if n == 1 {
		plural = ""
	}
	return fmt.Errorf("%s expects %d argument%s", name, n, plural)
}

func errUnterminated(context string) error {
	return fmt.Errorf("Unterminated %s", context)
}
