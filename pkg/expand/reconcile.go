package expand

import "github.com/leapstack-labs/tplgen/pkg/core"

// Reconcile merges freshly extracted names into the previous variable list.
//
// Names present in both keep their raw values and prior order, names only in
// names are appended with empty values in the order given, and variables whose
// name no longer appears are dropped. Reconciling a list against its own names
// returns an equal list.
func Reconcile(prev []core.Variable, names []string) []core.Variable {
	current := make(map[string]struct{}, len(names))
	for _, n := range names {
		current[n] = struct{}{}
	}

	out := make([]core.Variable, 0, len(names))
	kept := make(map[string]struct{}, len(prev))
	for _, v := range prev {
		if _, ok := current[v.Name]; !ok {
			continue
		}
		if _, dup := kept[v.Name]; dup {
			continue
		}
		kept[v.Name] = struct{}{}
		out = append(out, v)
	}

	for _, n := range names {
		if _, ok := kept[n]; ok {
			continue
		}
		kept[n] = struct{}{}
		out = append(out, core.Variable{Name: n})
	}

	return out
}

// Sync extracts the names from template and reconciles prev against them.
// Call it after every template mutation.
func Sync(template string, prev []core.Variable) []core.Variable {
	return Reconcile(prev, Extract(template))
}
