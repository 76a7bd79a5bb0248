package repository

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func matches(d bson.M, q Query) (bool, error) {
	for _, f := range q.Filters {
		ok, err := matchFilter(d, f)
		if err != nil || !ok {
			return false, err
		}
	}
	if len(q.AnyOf) == 0 {
		return true, nil
	}
	for _, f := range q.AnyOf {
		ok, err := matchFilter(d, f)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

func matchFilter(d bson.M, f Filter) (bool, error) {
	v := lookup(d, f.Field)
	switch f.Op {
	case Eq:
		return equalValues(v, f.Value), nil
	case Ne:
		return !equalValues(v, f.Value), nil
	case Gt, Gte, Lt, Lte:
		if v == nil {
			return false, nil
		}
		c, ok := compare(v, f.Value)
		if !ok {
			return false, nil
		}
		switch f.Op {
		case Gt:
			return c > 0, nil
		case Gte:
			return c >= 0, nil
		case Lt:
			return c < 0, nil
		default:
			return c <= 0, nil
		}
	case Regex:
		pattern, ok := f.Value.(string)
		if !ok {
			return false, fmt.Errorf("regex filter on %q needs a string pattern", f.Field)
		}
		re, err := regexp.Compile("(?i)" + pattern)
		if err != nil {
			return false, fmt.Errorf("regex filter on %q: %w", f.Field, err)
		}
		s, ok := v.(string)
		return ok && re.MatchString(s), nil
	case In:
		rv := reflect.ValueOf(f.Value)
		if rv.Kind() != reflect.Slice {
			return false, fmt.Errorf("in filter on %q needs a slice", f.Field)
		}
		for i := 0; i < rv.Len(); i++ {
			if equalValues(v, rv.Index(i).Interface()) {
				return true, nil
			}
		}
		return false, nil
	}
	return false, fmt.Errorf("unsupported operator %d", f.Op)
}

// lookup resolves a dotted path inside a decoded document.
func lookup(d bson.M, path string) interface{} {
	var cur interface{} = d
	for _, part := range strings.Split(path, ".") {
		switch m := cur.(type) {
		case bson.M:
			cur = m[part]
		case map[string]interface{}:
			cur = m[part]
		case primitive.D:
			cur = m.Map()[part]
		default:
			return nil
		}
	}
	return cur
}

func equalValues(a, b interface{}) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if c, ok := compare(a, b); ok {
		return c == 0
	}
	return reflect.DeepEqual(a, b)
}

// compareValues orders any two values for sorting; missing values sort first.
func compareValues(a, b interface{}) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	if c, ok := compare(a, b); ok {
		return c
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

// compare orders numbers, strings and times. ok is false when the values are
// not of a comparable kind.
func compare(a, b interface{}) (int, bool) {
	na, nb := normalize(a), normalize(b)
	switch x := na.(type) {
	case float64:
		y, ok := nb.(float64)
		if !ok {
			return 0, false
		}
		switch {
		case x < y:
			return -1, true
		case x > y:
			return 1, true
		}
		return 0, true
	case string:
		y, ok := nb.(string)
		if !ok {
			return 0, false
		}
		return strings.Compare(x, y), true
	case time.Time:
		y, ok := nb.(time.Time)
		if !ok {
			return 0, false
		}
		return x.Compare(y), true
	case bool:
		y, ok := nb.(bool)
		if !ok || x != y {
			return 0, false
		}
		return 0, true
	}
	return 0, false
}

func normalize(v interface{}) interface{} {
	switch x := v.(type) {
	case primitive.DateTime:
		return x.Time().UTC().Truncate(time.Millisecond)
	case time.Time:
		return x.UTC().Truncate(time.Millisecond)
	case int:
		return float64(x)
	case int32:
		return float64(x)
	case int64:
		return float64(x)
	case float32:
		return float64(x)
	case float64:
		return x
	case uint:
		return float64(x)
	case uint32:
		return float64(x)
	case uint64:
		return float64(x)
	}
	return v
}
