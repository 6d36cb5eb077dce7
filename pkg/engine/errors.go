package engine

import "fmt"

// Message fragments here extend the same stable external contract to the
// clause handlers (pkg/expr's errors.go covers expression evaluation).

func errUnboundVariable(name string) error {
	return fmt.Errorf("Variable %q is not bound", name)
}

func errMissingParameter(name string) error {
	return fmt.Errorf("Missing parameter: %s", name)
}

func errWhereNotBoolean() error {
	return fmt.Errorf("WHERE clause expression must evaluate to a boolean or null")
}

func errSkipLimitNotInteger(clause string) error {
	return fmt.Errorf("%s expects an integer expression", clause)
}

func errSkipLimitNegative(clause string) error {
	return fmt.Errorf("%s must not be negative", clause)
}

func errUnwindNotList() error {
	return fmt.Errorf("UNWIND expects a list expression")
}

func errUnparsableClause(kind string) error {
	return fmt.Errorf("could not parse %s clause body", kind)
}

func errWildcardAggregate() error {
	return fmt.Errorf("RETURN * cannot be combined with an aggregate projection")
}

func errUnsupportedAggregate(name string) error {
	return fmt.Errorf("Unsupported aggregate function: %s", name)
}

func errAggregateNumeric(name string) error {
	return fmt.Errorf("%s expects a numeric expression", name)
}

func errPercentileArgs(name string) error {
	return fmt.Errorf("%s expects two arguments: a numeric expression and a percentile", name)
}

func errCreateVarLength() error {
	return fmt.Errorf("CREATE does not support variable-length relationships")
}

func errCreateRelType() error {
	return fmt.Errorf("CREATE requires exactly one relationship type")
}

func errNotBoundToNode(name, clause string) error {
	return fmt.Errorf("%s is not bound to a node for %s", name, clause)
}

func errMergeMultipleSegments() error {
	return fmt.Errorf("MERGE supports at most one relationship segment")
}

func errMergeVarLength() error {
	return fmt.Errorf("MERGE does not support variable-length relationships")
}

func errMergeEmptyPattern() error {
	return fmt.Errorf("MERGE requires a non-empty pattern")
}

func errInvalidSetAssignment(text string) error {
	return fmt.Errorf("invalid SET assignment: %q", text)
}

func errSetTargetNotEntity(name string) error {
	return fmt.Errorf("%s is not a node or relationship", name)
}

func errSetExpectsMap() error {
	return fmt.Errorf("SET expects a map, node, or relationship expression")
}

func errUnsupportedRemoveItem(text string) error {
	return fmt.Errorf("invalid REMOVE item: %q", text)
}

func errDeleteTargetInvalid() error {
	return fmt.Errorf("DELETE expects a node, relationship, or path expression")
}

func errOnModifierMustFollowMerge() error {
	return fmt.Errorf("ON CREATE/ON MATCH SET must directly follow MERGE")
}

func errUnionColumnMismatch() error {
	return fmt.Errorf("all parts of a UNION must return the same column names")
}

func errUnionEmptyPart() error {
	return fmt.Errorf("UNION cannot join an empty query part")
}

func errUnsupportedProcedure(name string) error {
	return fmt.Errorf("Unsupported procedure: %s", name)
}

func errProcArgs(name string) error {
	return fmt.Errorf("%s takes no arguments", name)
}

func errDoesNotYield(name string) error {
	return fmt.Errorf("procedure does not yield %q", name)
}

func errYieldRequiresItem() error {
	return fmt.Errorf("YIELD requires at least one item")
}

func errUnsupportedCallInvocation() error {
	return fmt.Errorf("Unsupported CALL invocation")
}

func errYieldStarStandaloneOnly() error {
	return fmt.Errorf("YIELD * is only supported for standalone CALL")
}
