// Package scenario moves localized dialogue in and out of parsed script
// trees. Extract flattens every dialogue string into an ordered list for
// translation, Merge writes a translated list back over the same leaves,
// and Prune strips a tree down to its control-flow skeleton.
package scenario

import (
	"fmt"
	"strings"

	"astscript/internal/script"
)

// blockKeyPrefix marks the single structural entry of a block wrapper.
const blockKeyPrefix = "block_"

// visitLeaves walks the dialogue path of a document in a fixed order:
// ast → each block wrapper → each block_* entry → each item dictionary's
// text array → each text block's ja array → each inner array → each
// string leaf. Extract and Merge share this walk, which is what keeps
// their line ordering consistent across two passes.
//
// The callback receives the inner array and the leaf index so callers
// can overwrite the leaf in place.
func visitLeaves(doc *script.Dict, visit func(inner script.Array, idx int) error) error {
	astValue, ok := doc.Get("ast")
	if !ok {
		return &TreeError{Code: MissingField, Detail: "ast"}
	}
	astArray, ok := astValue.(script.Array)
	if !ok {
		return &TreeError{Code: TypeMismatch, Detail: "ast is not an array"}
	}

	for _, wrapper := range astArray {
		wrapperDict, ok := wrapper.(*script.Dict)
		if !ok {
			return &TreeError{Code: TypeMismatch, Detail: "block wrapper is not a dictionary"}
		}
		for _, key := range wrapperDict.Keys() {
			if !strings.HasPrefix(key, blockKeyPrefix) {
				continue
			}
			blockValue, _ := wrapperDict.Get(key)
			items, ok := blockValue.(script.Array)
			if !ok {
				continue
			}
			for _, item := range items {
				if err := visitItem(item, visit); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func visitItem(item script.Value, visit func(inner script.Array, idx int) error) error {
	itemDict, ok := item.(*script.Dict)
	if !ok {
		return nil
	}
	textValue, ok := itemDict.Get("text")
	if !ok {
		// Commands without dialogue are skipped, not an error.
		return nil
	}
	textArray, ok := textValue.(script.Array)
	if !ok {
		return nil
	}

	for _, textBlock := range textArray {
		blockDict, ok := textBlock.(*script.Dict)
		if !ok {
			continue
		}
		jaValue, ok := blockDict.Get("ja")
		if !ok {
			continue
		}
		jaArray, ok := jaValue.(script.Array)
		if !ok {
			continue
		}
		for _, sub := range jaArray {
			inner, ok := sub.(script.Array)
			if !ok {
				continue
			}
			for i := range inner {
				if _, ok := inner[i].(script.String); !ok {
					continue
				}
				if err := visit(inner, i); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// Extract returns every dialogue string of the document in walk order.
// The document is not modified.
func Extract(doc *script.Dict) ([]string, error) {
	var lines []string
	err := visitLeaves(doc, func(inner script.Array, idx int) error {
		lines = append(lines, string(inner[idx].(script.String)))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return lines, nil
}

// Merge overwrites the document's dialogue strings, in walk order, with
// the given lines. The number of lines must match the number of dialogue
// leaves exactly; the count is checked before any leaf is touched so a
// mismatch never leaves the tree half rewritten.
func Merge(doc *script.Dict, lines []string) error {
	leaves := 0
	err := visitLeaves(doc, func(script.Array, int) error {
		leaves++
		return nil
	})
	if err != nil {
		return err
	}

	if len(lines) < leaves {
		return &TreeError{Code: ExhaustedInput, Detail: fmt.Sprintf("document has %d dialogue lines, got %d", leaves, len(lines))}
	}
	if len(lines) > leaves {
		return &TreeError{Code: UnusedInput, Detail: fmt.Sprintf("document has %d dialogue lines, got %d", leaves, len(lines))}
	}

	cursor := 0
	return visitLeaves(doc, func(inner script.Array, idx int) error {
		inner[idx] = script.String(lines[cursor])
		cursor++
		return nil
	})
}

// Prune strips the document to a content-free skeleton: inside every
// block's item array, dictionary items keep only their linknext and line
// keys and everything else is dropped. Keys above the item level, astver
// included, are untouched. Pruning twice changes nothing.
func Prune(doc *script.Dict) {
	astValue, ok := doc.Get("ast")
	if !ok {
		return
	}
	astArray, ok := astValue.(script.Array)
	if !ok {
		return
	}

	for _, wrapper := range astArray {
		wrapperDict, ok := wrapper.(*script.Dict)
		if !ok {
			continue
		}
		for _, key := range wrapperDict.Keys() {
			if !strings.HasPrefix(key, blockKeyPrefix) {
				continue
			}
			blockValue, _ := wrapperDict.Get(key)
			items, ok := blockValue.(script.Array)
			if !ok {
				continue
			}
			wrapperDict.Set(key, pruneItems(items))
		}
	}
}

// pruneItems keeps only dictionary items, reduced to their link metadata.
// Items emptied by the reduction are dropped too: an empty dictionary
// serializes to bare whitespace and would vanish on re-parse anyway.
func pruneItems(items script.Array) script.Array {
	kept := items[:0]
	for _, item := range items {
		itemDict, ok := item.(*script.Dict)
		if !ok {
			continue
		}
		itemDict.Retain(func(key string) bool {
			return key == "linknext" || key == "line"
		})
		if itemDict.Len() == 0 {
			continue
		}
		kept = append(kept, itemDict)
	}
	return kept
}
