package placeholder

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
)

// ResolveStruct looks placeholder names up in bag, which may be a struct, a
// pointer to one, or a map with string keys. Struct fields are matched
// case-insensitively against exported field names; nil field values resolve
// to "". A nil bag leaves the template unchanged.
func ResolveStruct(template string, bag any) string {
	if bag == nil || len(template) < minTemplateLen {
		return template
	}
	v := reflect.ValueOf(bag)
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return template
		}
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Struct:
		fields := defaultPlans.get(v.Type())
		return ResolveFunc(template, func(name string) (string, bool) {
			idx, ok := fields[strings.ToLower(name)]
			if !ok {
				return "", false
			}
			fv, err := v.FieldByIndexErr(idx)
			if err != nil {
				// promoted through a nil embedded pointer
				return "", true
			}
			return format(fv), true
		})
	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			return template
		}
		return ResolveFunc(template, func(name string) (string, bool) {
			mv := v.MapIndex(reflect.ValueOf(name).Convert(v.Type().Key()))
			if !mv.IsValid() {
				return "", false
			}
			return format(mv), true
		})
	default:
		return template
	}
}

func format(v reflect.Value) string {
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return ""
		}
		v = v.Elem()
	}
	return fmt.Sprint(v.Interface())
}

// planCache maps a struct type to its lower-cased exported field names.
type planCache struct {
	mu    sync.RWMutex
	plans map[reflect.Type]map[string][]int
}

var defaultPlans = &planCache{plans: make(map[reflect.Type]map[string][]int)}

func (c *planCache) get(t reflect.Type) map[string][]int {
	c.mu.RLock()
	if plan, ok := c.plans[t]; ok {
		c.mu.RUnlock()
		return plan
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	// Double-check
	if plan, ok := c.plans[t]; ok {
		return plan
	}
	plan := make(map[string][]int)
	for _, sf := range reflect.VisibleFields(t) {
		if !sf.IsExported() || sf.Anonymous {
			continue
		}
		key := strings.ToLower(sf.Name)
		// the shallowest field wins, as with Go selectors
		if prev, ok := plan[key]; ok && len(prev) <= len(sf.Index) {
			continue
		}
		plan[key] = sf.Index
	}
	c.plans[t] = plan
	return plan
}
