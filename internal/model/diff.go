package model

import (
	"crypto/sha256"
	"fmt"
)

// ChangedRecord describes a matched element whose mutable properties changed
// between two snapshots. Changes maps property name to [old, new].
type ChangedRecord struct {
	Index   int                  `json:"index"          yaml:"index"`
	Text    string               `json:"text,omitempty" yaml:"text,omitempty"`
	Changes map[string][2]string `json:"changes"        yaml:"changes"`
}

// TreeDiff is the result of comparing two filtered snapshots by content hash.
type TreeDiff struct {
	Added          []Record        `json:"added,omitempty"   yaml:"added,omitempty"`
	Removed        []Record        `json:"removed,omitempty" yaml:"removed,omitempty"`
	Changed        []ChangedRecord `json:"changed,omitempty" yaml:"changed,omitempty"`
	UnchangedCount int             `json:"unchanged_count"   yaml:"unchanged_count"`
}

// Empty reports whether the diff contains no additions, removals, or changes.
func (d TreeDiff) Empty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0 && len(d.Changed) == 0
}

// RecordHash computes a stable identity hash for an element from its semantic
// content. Indices shift as elements come and go, so identity is keyed on
// class, text, and resource ID rather than the index.
func RecordHash(r Record) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s|%s|%s", r.ClassName, r.Text, r.ResourceID)
	return fmt.Sprintf("%x", h.Sum(nil))[:16]
}

// occurrenceKey disambiguates identically-labeled elements (repeated list
// rows share class, text, and resource ID) by appending a per-snapshot
// occurrence counter to the content hash. The nth occurrence in one snapshot
// pairs with the nth in the other, so additions and removals of duplicates
// still surface.
func occurrenceKey(counts map[string]int, r Record) string {
	h := RecordHash(r)
	n := counts[h]
	counts[h] = n + 1
	return fmt.Sprintf("%s#%d", h, n)
}

// DiffRecords compares two flat record lists using content hashing for
// stable identity, reporting added, removed, and changed elements.
func DiffRecords(prev, curr []Record) TreeDiff {
	prevByHash := make(map[string]Record, len(prev))
	prevCounts := make(map[string]int)
	for _, r := range prev {
		prevByHash[occurrenceKey(prevCounts, r)] = r
	}
	currByHash := make(map[string]Record, len(curr))
	currCounts := make(map[string]int)
	for _, r := range curr {
		currByHash[occurrenceKey(currCounts, r)] = r
	}

	var diff TreeDiff

	lookupCounts := make(map[string]int)
	for _, r := range curr {
		prevR, existed := prevByHash[occurrenceKey(lookupCounts, r)]
		if !existed {
			diff.Added = append(diff.Added, r)
			continue
		}
		changes := diffRecordProperties(prevR, r)
		if len(changes) > 0 {
			diff.Changed = append(diff.Changed, ChangedRecord{
				Index:   r.Index,
				Text:    r.Text,
				Changes: changes,
			})
		} else {
			diff.UnchangedCount++
		}
	}

	removedCounts := make(map[string]int)
	for _, r := range prev {
		if _, exists := currByHash[occurrenceKey(removedCounts, r)]; !exists {
			diff.Removed = append(diff.Removed, r)
		}
	}

	return diff
}

// diffRecordProperties compares the mutable properties of two records matched
// by content hash. Class, text, and resource ID are part of the hash and
// cannot differ here.
func diffRecordProperties(prev, curr Record) map[string][2]string {
	diffs := make(map[string][2]string)

	if prev.Bounds != curr.Bounds {
		diffs["bounds"] = [2]string{prev.Bounds, curr.Bounds}
	}
	if !boolPtrEqual(prev.Checked, curr.Checked) {
		diffs["checked"] = [2]string{formatBoolPtr(prev.Checked), formatBoolPtr(curr.Checked)}
	}
	if !boolPtrEqual(prev.Enabled, curr.Enabled) {
		diffs["enabled"] = [2]string{formatBoolPtr(prev.Enabled), formatBoolPtr(curr.Enabled)}
	}
	if !boolPtrEqual(prev.Selected, curr.Selected) {
		diffs["selected"] = [2]string{formatBoolPtr(prev.Selected), formatBoolPtr(curr.Selected)}
	}
	if !boolPtrEqual(prev.Focused, curr.Focused) {
		diffs["focused"] = [2]string{formatBoolPtr(prev.Focused), formatBoolPtr(curr.Focused)}
	}

	if len(diffs) == 0 {
		return nil
	}
	return diffs
}

func boolPtrEqual(a, b *bool) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func formatBoolPtr(b *bool) string {
	if b == nil {
		return "null"
	}
	return fmt.Sprintf("%t", *b)
}
