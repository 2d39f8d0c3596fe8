package binder

import (
	"net/url"
	"slices"
	"strconv"
	"strings"
)

const (
	// maxNestingDepth bounds bracket nesting; deeper segments stay part of the key.
	maxNestingDepth = 5
	// maxArrayIndex is the largest explicit index turned into a list element.
	maxArrayIndex = 20
)

// parseExtended decodes url-encoded pairs with bracket nesting into a tree
// of map[string]any, []any and string values.
func parseExtended(values url.Values) map[string]any {
	root := make(map[string]any, len(values))

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, key := range keys {
		segs := splitKey(key)
		for _, v := range values[key] {
			insert(root, segs, v)
		}
	}

	for k, v := range root {
		root[k] = compact(v)
	}
	return root
}

// splitKey turns "a[b][]" into ["a", "b", ""].
func splitKey(key string) []string {
	open := strings.IndexByte(key, '[')
	if open <= 0 || !strings.HasSuffix(key, "]") {
		return []string{key}
	}

	segs := []string{key[:open]}
	rest := key[open:]
	for rest != "" && len(segs) <= maxNestingDepth {
		if rest[0] != '[' {
			break
		}
		end := strings.IndexByte(rest, ']')
		if end < 0 {
			break
		}
		segs = append(segs, rest[1:end])
		rest = rest[end+1:]
	}
	if rest != "" {
		segs = append(segs, rest)
	}
	return segs
}

func insert(node map[string]any, segs []string, value string) {
	key := segs[0]

	if len(segs) == 1 {
		switch existing := node[key].(type) {
		case nil:
			node[key] = value
		case string:
			node[key] = []any{existing, value}
		case []any:
			node[key] = append(existing, value)
		}
		return
	}

	if segs[1] == "" {
		list, _ := node[key].([]any)
		if s, ok := node[key].(string); ok {
			list = []any{s}
		}
		if len(segs) == 2 {
			node[key] = append(list, value)
			return
		}
		child := make(map[string]any)
		insert(child, segs[2:], value)
		node[key] = append(list, child)
		return
	}

	child, ok := node[key].(map[string]any)
	if !ok {
		child = make(map[string]any)
		if list, isList := node[key].([]any); isList {
			for i, item := range list {
				child[strconv.Itoa(i)] = item
			}
		}
		node[key] = child
	}
	insert(child, segs[1:], value)
}

// compact converts maps keyed only by small indices into lists, keeping
// index order and dropping holes.
func compact(v any) any {
	switch node := v.(type) {
	case map[string]any:
		indices := make([]int, 0, len(node))
		for k, child := range node {
			node[k] = compact(child)
			i, err := strconv.Atoi(k)
			if err != nil || i < 0 || i > maxArrayIndex || strconv.Itoa(i) != k {
				indices = nil
				continue
			}
			if indices != nil {
				indices = append(indices, i)
			}
		}
		if len(indices) != len(node) || len(node) == 0 {
			return node
		}
		slices.Sort(indices)
		list := make([]any, 0, len(indices))
		for _, i := range indices {
			list = append(list, node[strconv.Itoa(i)])
		}
		return list
	case []any:
		for i, child := range node {
			node[i] = compact(child)
		}
		return node
	default:
		return v
	}
}
