package expr

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/orneryd/cypherlite/pkg/temporal"
	"github.com/orneryd/cypherlite/pkg/value"
)

// CallFunction dispatches a scalar (non-aggregate) built-in by lower-cased
// name, organized by category: conversion, numeric, collections, strings,
// graph, control, temporal. Aggregate functions
// (count/sum/avg/min/max/collect/percentile*) are evaluated by pkg/engine's
// projection stage, not here.
func CallFunction(name string, args []value.Value) (value.Value, error) {
	switch name {
	case "tointeger":
		return fnToInteger(args)
	case "tofloat":
		return fnToFloat(args)
	case "toboolean":
		return fnToBoolean(args)
	case "tostring":
		return fnToString(args)
	case "abs":
		return fnAbs(args)
	case "sign":
		return fnSign(args)
	case "ceil":
		return fnCeil(args)
	case "floor":
		return fnFloor(args)
	case "sqrt":
		return fnSqrt(args)
	case "rand":
		return 0.5, nil
	case "size":
		return fnSize(args)
	case "length":
		return fnLength(args)
	case "head":
		return fnHead(args)
	case "last":
		return fnLast(args)
	case "tail":
		return fnTail(args)
	case "reverse":
		return fnReverse(args)
	case "range":
		return fnRange(args)
	case "split":
		return fnSplit(args)
	case "substring":
		return fnSubstring(args)
	case "tolower":
		return fnToLower(args)
	case "toupper":
		return fnToUpper(args)
	case "type":
		return fnType(args)
	case "id":
		return fnID(args)
	case "labels":
		return fnLabels(args)
	case "keys":
		return fnKeys(args)
	case "properties":
		return fnProperties(args)
	case "nodes":
		return fnNodes(args)
	case "relationships":
		return fnRelationships(args)
	case "startnode":
		return fnStartNode(args)
	case "endnode":
		return fnEndNode(args)
	case "coalesce":
		return fnCoalesce(args)
	case "date":
		return fnDate(args)
	case "localtime":
		return fnLocalTime(args)
	case "time":
		return fnTime(args)
	case "localdatetime":
		return fnLocalDateTime(args)
	case "datetime":
		return fnDateTime(args)
	case "datetime.fromepoch":
		return fnDateTimeFromEpoch(args)
	case "datetime.fromepochmillis":
		return fnDateTimeFromEpochMillis(args)
	case "duration":
		return fnDuration(args)
	case "duration.between":
		return fnDurationBetween(args)
	case "duration.inmonths":
		return fnDurationIn(args, (temporal.Value).InMonths)
	case "duration.indays":
		return fnDurationIn(args, (temporal.Value).InDays)
	case "duration.inseconds":
		return fnDurationIn(args, (temporal.Value).InSeconds)
	}
	return nil, errUnsupportedFunction(name)
}

func argCount(name string, args []value.Value, n int) error {
	if len(args) != n {
		return errFunctionArgCount(name, n)
	}
	return nil
}

func fnToInteger(args []value.Value) (value.Value, error) {
	if err := argCount("toInteger", args, 1); err != nil {
		return nil, err
	}
	v := args[0]
	if v == nil {
		return nil, nil
	}
	switch t := v.(type) {
	case int64:
		return t, nil
	case float64:
		return int64(t), nil
	case string:
		s := strings.TrimSpace(t)
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n, nil
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return int64(f), nil
		}
		return nil, nil
	case bool:
		if t {
			return int64(1), nil
		}
		return int64(0), nil
	}
	return nil, errConvert(value.TypeName(v), "integer")
}

func fnToFloat(args []value.Value) (value.Value, error) {
	if err := argCount("toFloat", args, 1); err != nil {
		return nil, err
	}
	v := args[0]
	if v == nil {
		return nil, nil
	}
	switch t := v.(type) {
	case int64:
		return float64(t), nil
	case float64:
		return t, nil
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(t), 64); err == nil {
			return f, nil
		}
		return nil, nil
	}
	return nil, errConvert(value.TypeName(v), "float")
}

func fnToBoolean(args []value.Value) (value.Value, error) {
	if err := argCount("toBoolean", args, 1); err != nil {
		return nil, err
	}
	v := args[0]
	if v == nil {
		return nil, nil
	}
	switch t := v.(type) {
	case bool:
		return t, nil
	case string:
		switch strings.ToLower(t) {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
		return nil, nil
	}
	return nil, errConvert(value.TypeName(v), "boolean")
}

func fnToString(args []value.Value) (value.Value, error) {
	if err := argCount("toString", args, 1); err != nil {
		return nil, err
	}
	v := args[0]
	if v == nil {
		return nil, nil
	}
	switch t := v.(type) {
	case string:
		return t, nil
	case int64:
		return strconv.FormatInt(t, 10), nil
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64), nil
	case bool:
		return strconv.FormatBool(t), nil
	case temporal.Value:
		return t.String(), nil
	}
	return nil, errConvert(value.TypeName(v), "string")
}

func fnAbs(args []value.Value) (value.Value, error) {
	if err := argCount("abs", args, 1); err != nil {
		return nil, err
	}
	switch t := args[0].(type) {
	case nil:
		return nil, nil
	case int64:
		if t < 0 {
			return -t, nil
		}
		return t, nil
	case float64:
		return math.Abs(t), nil
	}
	return nil, errConvert(value.TypeName(args[0]), "number")
}

func fnSign(args []value.Value) (value.Value, error) {
	if err := argCount("sign", args, 1); err != nil {
		return nil, err
	}
	f, ok := asNumber(args[0])
	if args[0] == nil {
		return nil, nil
	}
	if !ok {
		return nil, errConvert(value.TypeName(args[0]), "number")
	}
	switch {
	case f > 0:
		return int64(1), nil
	case f < 0:
		return int64(-1), nil
	default:
		return int64(0), nil
	}
}

func fnCeil(args []value.Value) (value.Value, error) {
	if err := argCount("ceil", args, 1); err != nil {
		return nil, err
	}
	if args[0] == nil {
		return nil, nil
	}
	f, ok := asNumber(args[0])
	if !ok {
		return nil, errConvert(value.TypeName(args[0]), "number")
	}
	return math.Ceil(f), nil
}

func fnFloor(args []value.Value) (value.Value, error) {
	if err := argCount("floor", args, 1); err != nil {
		return nil, err
	}
	if args[0] == nil {
		return nil, nil
	}
	f, ok := asNumber(args[0])
	if !ok {
		return nil, errConvert(value.TypeName(args[0]), "number")
	}
	return math.Floor(f), nil
}

func fnSqrt(args []value.Value) (value.Value, error) {
	if err := argCount("sqrt", args, 1); err != nil {
		return nil, err
	}
	if args[0] == nil {
		return nil, nil
	}
	f, ok := asNumber(args[0])
	if !ok {
		return nil, errConvert(value.TypeName(args[0]), "number")
	}
	return math.Sqrt(f), nil
}

func fnSize(args []value.Value) (value.Value, error) {
	if err := argCount("size", args, 1); err != nil {
		return nil, err
	}
	switch t := args[0].(type) {
	case nil:
		return nil, nil
	case string:
		return int64(len([]rune(t))), nil
	case value.List:
		return int64(len(t)), nil
	case value.Map:
		return int64(len(t)), nil
	}
	return nil, errConvert(value.TypeName(args[0]), "string, list, or map")
}

func fnLength(args []value.Value) (value.Value, error) {
	if err := argCount("length", args, 1); err != nil {
		return nil, err
	}
	switch t := args[0].(type) {
	case nil:
		return nil, nil
	case string:
		return int64(len([]rune(t))), nil
	case value.List:
		return int64(len(t)), nil
	case value.Path:
		return int64(len(t.Rels)), nil
	}
	return nil, errConvert(value.TypeName(args[0]), "string, list, or path")
}

func fnHead(args []value.Value) (value.Value, error) {
	if err := argCount("head", args, 1); err != nil {
		return nil, err
	}
	l, ok := args[0].(value.List)
	if !ok {
		if args[0] == nil {
			return nil, nil
		}
		return nil, errConvert(value.TypeName(args[0]), "list")
	}
	if len(l) == 0 {
		return nil, nil
	}
	return l[0], nil
}

func fnLast(args []value.Value) (value.Value, error) {
	if err := argCount("last", args, 1); err != nil {
		return nil, err
	}
	l, ok := args[0].(value.List)
	if !ok {
		if args[0] == nil {
			return nil, nil
		}
		return nil, errConvert(value.TypeName(args[0]), "list")
	}
	if len(l) == 0 {
		return nil, nil
	}
	return l[len(l)-1], nil
}

func fnTail(args []value.Value) (value.Value, error) {
	if err := argCount("tail", args, 1); err != nil {
		return nil, err
	}
	l, ok := args[0].(value.List)
	if !ok {
		if args[0] == nil {
			return nil, nil
		}
		return nil, errConvert(value.TypeName(args[0]), "list")
	}
	if len(l) == 0 {
		return value.List{}, nil
	}
	return append(value.List{}, l[1:]...), nil
}

func fnReverse(args []value.Value) (value.Value, error) {
	if err := argCount("reverse", args, 1); err != nil {
		return nil, err
	}
	switch t := args[0].(type) {
	case nil:
		return nil, nil
	case string:
		r := []rune(t)
		for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
			r[i], r[j] = r[j], r[i]
		}
		return string(r), nil
	case value.List:
		out := make(value.List, len(t))
		for i, v := range t {
			out[len(t)-1-i] = v
		}
		return out, nil
	}
	return nil, errConvert(value.TypeName(args[0]), "string or list")
}

func fnRange(args []value.Value) (value.Value, error) {
	if len(args) != 2 && len(args) != 3 {
		return nil, errFunctionArgCount("range", 2)
	}
	start, ok1 := args[0].(int64)
	end, ok2 := args[1].(int64)
	if !ok1 || !ok2 {
		return nil, errConvert("non-integer", "integer")
	}
	step := int64(1)
	if len(args) == 3 {
		s, ok := args[2].(int64)
		if !ok || s == 0 {
			return nil, errFunctionArgCount("range step", 0)
		}
		step = s
	}
	out := value.List{}
	if step > 0 {
		for i := start; i <= end; i += step {
			out = append(out, i)
		}
	} else {
		for i := start; i >= end; i += step {
			out = append(out, i)
		}
	}
	return out, nil
}

func fnSplit(args []value.Value) (value.Value, error) {
	if err := argCount("split", args, 2); err != nil {
		return nil, err
	}
	s, ok1 := args[0].(string)
	sep, ok2 := args[1].(string)
	if !ok1 || !ok2 {
		if args[0] == nil || args[1] == nil {
			return nil, nil
		}
		return nil, errConvert(value.TypeName(args[0]), "string")
	}
	parts := strings.Split(s, sep)
	out := make(value.List, len(parts))
	for i, p := range parts {
		out[i] = p
	}
	return out, nil
}

func fnSubstring(args []value.Value) (value.Value, error) {
	if len(args) != 2 && len(args) != 3 {
		return nil, errFunctionArgCount("substring", 2)
	}
	s, ok := args[0].(string)
	if !ok {
		if args[0] == nil {
			return nil, nil
		}
		return nil, errConvert(value.TypeName(args[0]), "string")
	}
	start, ok := args[1].(int64)
	if !ok {
		return nil, errConvert(value.TypeName(args[1]), "integer")
	}
	r := []rune(s)
	lo := int(start)
	if lo < 0 {
		lo = 0
	}
	if lo > len(r) {
		lo = len(r)
	}
	hi := len(r)
	if len(args) == 3 {
		n, ok := args[2].(int64)
		if !ok {
			return nil, errConvert(value.TypeName(args[2]), "integer")
		}
		hi = lo + int(n)
		if hi > len(r) {
			hi = len(r)
		}
	}
	return string(r[lo:hi]), nil
}

func fnToLower(args []value.Value) (value.Value, error) {
	if err := argCount("toLower", args, 1); err != nil {
		return nil, err
	}
	s, ok := args[0].(string)
	if !ok {
		if args[0] == nil {
			return nil, nil
		}
		return nil, errConvert(value.TypeName(args[0]), "string")
	}
	return strings.ToLower(s), nil
}

func fnToUpper(args []value.Value) (value.Value, error) {
	if err := argCount("toUpper", args, 1); err != nil {
		return nil, err
	}
	s, ok := args[0].(string)
	if !ok {
		if args[0] == nil {
			return nil, nil
		}
		return nil, errConvert(value.TypeName(args[0]), "string")
	}
	return strings.ToUpper(s), nil
}

func fnType(args []value.Value) (value.Value, error) {
	if err := argCount("type", args, 1); err != nil {
		return nil, err
	}
	r, ok := args[0].(value.Relationship)
	if !ok {
		if args[0] == nil {
			return nil, nil
		}
		return nil, errConvert(value.TypeName(args[0]), "relationship")
	}
	return r.Type, nil
}

func fnID(args []value.Value) (value.Value, error) {
	if err := argCount("id", args, 1); err != nil {
		return nil, err
	}
	switch t := args[0].(type) {
	case nil:
		return nil, nil
	case value.Node:
		return int64(t.ID), nil
	case value.Relationship:
		return int64(t.ID), nil
	}
	return nil, errConvert(value.TypeName(args[0]), "node or relationship")
}

func fnLabels(args []value.Value) (value.Value, error) {
	if err := argCount("labels", args, 1); err != nil {
		return nil, err
	}
	n, ok := args[0].(value.Node)
	if !ok {
		if args[0] == nil {
			return nil, nil
		}
		return nil, errConvert(value.TypeName(args[0]), "node")
	}
	out := make(value.List, len(n.Labels))
	for i, l := range n.Labels {
		out[i] = l
	}
	return out, nil
}

func fnKeys(args []value.Value) (value.Value, error) {
	if err := argCount("keys", args, 1); err != nil {
		return nil, err
	}
	var props value.Map
	switch t := args[0].(type) {
	case nil:
		return nil, nil
	case value.Node:
		props = t.Properties
	case value.Relationship:
		props = t.Properties
	case value.Map:
		props = t
	default:
		return nil, errConvert(value.TypeName(args[0]), "map, node, or relationship")
	}
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make(value.List, len(keys))
	for i, k := range keys {
		out[i] = k
	}
	return out, nil
}

func fnProperties(args []value.Value) (value.Value, error) {
	if err := argCount("properties", args, 1); err != nil {
		return nil, err
	}
	switch t := args[0].(type) {
	case nil:
		return nil, nil
	case value.Node:
		return copyMap(t.Properties), nil
	case value.Relationship:
		return copyMap(t.Properties), nil
	case value.Map:
		return copyMap(t), nil
	}
	return nil, errConvert(value.TypeName(args[0]), "map, node, or relationship")
}

func copyMap(m value.Map) value.Map {
	out := make(value.Map, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func fnNodes(args []value.Value) (value.Value, error) {
	if err := argCount("nodes", args, 1); err != nil {
		return nil, err
	}
	p, ok := args[0].(value.Path)
	if !ok {
		if args[0] == nil {
			return nil, nil
		}
		return nil, errConvert(value.TypeName(args[0]), "path")
	}
	out := make(value.List, len(p.Nodes))
	for i, n := range p.Nodes {
		out[i] = n
	}
	return out, nil
}

func fnRelationships(args []value.Value) (value.Value, error) {
	if err := argCount("relationships", args, 1); err != nil {
		return nil, err
	}
	p, ok := args[0].(value.Path)
	if !ok {
		if args[0] == nil {
			return nil, nil
		}
		return nil, errConvert(value.TypeName(args[0]), "path")
	}
	out := make(value.List, len(p.Rels))
	for i, r := range p.Rels {
		out[i] = r
	}
	return out, nil
}

func fnStartNode(args []value.Value) (value.Value, error) {
	if err := argCount("startNode", args, 1); err != nil {
		return nil, err
	}
	r, ok := args[0].(value.Relationship)
	if !ok {
		if args[0] == nil {
			return nil, nil
		}
		return nil, errConvert(value.TypeName(args[0]), "relationship")
	}
	return value.Node{ID: r.StartID}, nil
}

func fnEndNode(args []value.Value) (value.Value, error) {
	if err := argCount("endNode", args, 1); err != nil {
		return nil, err
	}
	r, ok := args[0].(value.Relationship)
	if !ok {
		if args[0] == nil {
			return nil, nil
		}
		return nil, errConvert(value.TypeName(args[0]), "relationship")
	}
	return value.Node{ID: r.EndID}, nil
}

func fnCoalesce(args []value.Value) (value.Value, error) {
	for _, a := range args {
		if a != nil {
			return a, nil
		}
	}
	return nil, nil
}

func argString(v value.Value) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

func argMap(v value.Value) (value.Map, bool) {
	m, ok := v.(value.Map)
	return m, ok
}

func fnDate(args []value.Value) (value.Value, error) {
	if len(args) == 0 {
		t := temporal.Now()
		return temporal.NewDate(t.Year, t.Month, t.Day), nil
	}
	if s, ok := argString(args[0]); ok {
		v, ok := temporal.ParseDate(s)
		if !ok {
			return nil, errConvert("string", "date")
		}
		return v, nil
	}
	if m, ok := argMap(args[0]); ok {
		y := int(intOr(m["year"], 1970))
		mo := int(intOr(m["month"], 1))
		d := int(intOr(m["day"], 1))
		return temporal.NewDate(y, mo, d), nil
	}
	if t, ok := args[0].(temporal.Value); ok {
		return temporal.NewDate(t.Year, t.Month, t.Day), nil
	}
	return nil, errConvert(value.TypeName(args[0]), "date")
}

func fnLocalTime(args []value.Value) (value.Value, error) {
	if len(args) == 0 {
		t := temporal.Now()
		return temporal.NewLocalTime(t.Hour, t.Minute, t.Second, t.Nanosecond), nil
	}
	if s, ok := argString(args[0]); ok {
		v, ok := temporal.ParseLocalTime(s)
		if !ok {
			return nil, errConvert("string", "local time")
		}
		return v, nil
	}
	if m, ok := argMap(args[0]); ok {
		return temporal.NewLocalTime(int(intOr(m["hour"], 0)), int(intOr(m["minute"], 0)), int(intOr(m["second"], 0)), int(intOr(m["nanosecond"], 0))), nil
	}
	if t, ok := args[0].(temporal.Value); ok {
		return temporal.NewLocalTime(t.Hour, t.Minute, t.Second, t.Nanosecond), nil
	}
	return nil, errConvert(value.TypeName(args[0]), "local time")
}

func fnTime(args []value.Value) (value.Value, error) {
	if len(args) == 0 {
		t := temporal.Now()
		return temporal.NewTime(t.Hour, t.Minute, t.Second, t.Nanosecond, 0, ""), nil
	}
	if s, ok := argString(args[0]); ok {
		v, ok := temporal.ParseTime(s)
		if !ok {
			return nil, errConvert("string", "time")
		}
		return v, nil
	}
	if m, ok := argMap(args[0]); ok {
		return temporal.NewTime(int(intOr(m["hour"], 0)), int(intOr(m["minute"], 0)), int(intOr(m["second"], 0)), int(intOr(m["nanosecond"], 0)), int(intOr(m["offsetMinutes"], 0)), ""), nil
	}
	if t, ok := args[0].(temporal.Value); ok {
		return temporal.NewTime(t.Hour, t.Minute, t.Second, t.Nanosecond, t.OffsetMinutes, t.Zone), nil
	}
	return nil, errConvert(value.TypeName(args[0]), "time")
}

func fnLocalDateTime(args []value.Value) (value.Value, error) {
	if len(args) == 0 {
		t := temporal.Now()
		return temporal.NewLocalDateTime(t.Year, t.Month, t.Day, t.Hour, t.Minute, t.Second, t.Nanosecond), nil
	}
	if s, ok := argString(args[0]); ok {
		v, ok := temporal.ParseLocalDateTime(s)
		if !ok {
			return nil, errConvert("string", "local datetime")
		}
		return v, nil
	}
	if m, ok := argMap(args[0]); ok {
		return temporal.NewLocalDateTime(int(intOr(m["year"], 1970)), int(intOr(m["month"], 1)), int(intOr(m["day"], 1)), int(intOr(m["hour"], 0)), int(intOr(m["minute"], 0)), int(intOr(m["second"], 0)), int(intOr(m["nanosecond"], 0))), nil
	}
	if t, ok := args[0].(temporal.Value); ok {
		return temporal.NewLocalDateTime(t.Year, t.Month, t.Day, t.Hour, t.Minute, t.Second, t.Nanosecond), nil
	}
	return nil, errConvert(value.TypeName(args[0]), "local datetime")
}

func fnDateTime(args []value.Value) (value.Value, error) {
	if len(args) == 0 {
		return temporal.Now(), nil
	}
	if s, ok := argString(args[0]); ok {
		v, ok := temporal.ParseDateTime(s)
		if !ok {
			return nil, errConvert("string", "datetime")
		}
		return v, nil
	}
	if m, ok := argMap(args[0]); ok {
		zone, _ := m["timezone"].(string)
		return temporal.NewDateTime(int(intOr(m["year"], 1970)), int(intOr(m["month"], 1)), int(intOr(m["day"], 1)), int(intOr(m["hour"], 0)), int(intOr(m["minute"], 0)), int(intOr(m["second"], 0)), int(intOr(m["nanosecond"], 0)), int(intOr(m["offsetMinutes"], 0)), zone), nil
	}
	if t, ok := args[0].(temporal.Value); ok {
		return temporal.NewDateTime(t.Year, t.Month, t.Day, t.Hour, t.Minute, t.Second, t.Nanosecond, t.OffsetMinutes, t.Zone), nil
	}
	return nil, errConvert(value.TypeName(args[0]), "datetime")
}

func fnDateTimeFromEpoch(args []value.Value) (value.Value, error) {
	if err := argCount("datetime.fromEpoch", args, 2); err != nil {
		return nil, err
	}
	sec, ok1 := args[0].(int64)
	ns, ok2 := args[1].(int64)
	if !ok1 || !ok2 {
		return nil, errConvert("non-integer", "integer")
	}
	return temporal.FromEpoch(sec, ns), nil
}

func fnDateTimeFromEpochMillis(args []value.Value) (value.Value, error) {
	if err := argCount("datetime.fromEpochMillis", args, 1); err != nil {
		return nil, err
	}
	ms, ok := args[0].(int64)
	if !ok {
		return nil, errConvert(value.TypeName(args[0]), "integer")
	}
	return temporal.FromEpochMillis(ms), nil
}

func fnDuration(args []value.Value) (value.Value, error) {
	if err := argCount("duration", args, 1); err != nil {
		return nil, err
	}
	if s, ok := argString(args[0]); ok {
		v, ok := temporal.ParseDuration(s)
		if !ok {
			return nil, errConvert("string", "duration")
		}
		return v, nil
	}
	if m, ok := argMap(args[0]); ok {
		months := intOr(m["years"], 0)*12 + intOr(m["months"], 0)
		days := intOr(m["days"], 0) + intOr(m["weeks"], 0)*7
		seconds := intOr(m["hours"], 0)*3600 + intOr(m["minutes"], 0)*60 + intOr(m["seconds"], 0)
		nanos := intOr(m["nanoseconds"], 0) + intOr(m["milliseconds"], 0)*1_000_000
		return temporal.NewDuration(months, days, seconds, nanos), nil
	}
	return nil, errConvert(value.TypeName(args[0]), "duration")
}

func fnDurationBetween(args []value.Value) (value.Value, error) {
	if err := argCount("duration.between", args, 2); err != nil {
		return nil, err
	}
	a, ok1 := args[0].(temporal.Value)
	b, ok2 := args[1].(temporal.Value)
	if !ok1 || !ok2 {
		return nil, errConvert("non-temporal", "temporal value")
	}
	return temporal.Between(a, b), nil
}

func fnDurationIn(args []value.Value, f func(temporal.Value) int64) (value.Value, error) {
	if len(args) != 1 {
		return nil, errFunctionArgCount("duration accessor", 1)
	}
	d, ok := args[0].(temporal.Value)
	if !ok {
		return nil, errConvert(value.TypeName(args[0]), "duration")
	}
	return f(d), nil
}

func intOr(v value.Value, def int64) int64 {
	switch t := v.(type) {
	case int64:
		return t
	case float64:
		return int64(t)
	}
	return def
}
