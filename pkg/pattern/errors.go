package pattern

import "fmt"

// Error-message fragments here are a stable external contract; callers
// match substrings, not types.

func errInvalidPattern(context, text string) error {
	return fmt.Errorf("Invalid pattern in %s: %q", context, text)
}

func errUnterminated(context string) error {
	return fmt.Errorf("Unterminated %s", context)
}

func errInvalidVariable(kind string) error {
	return fmt.Errorf("Invalid %s variable", kind)
}

func errInvalidLabel() error {
	return fmt.Errorf("Invalid node label")
}

func errInvalidType() error {
	return fmt.Errorf("Invalid relationship type")
}
