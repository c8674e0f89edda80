package diag

import (
	"bytes"
	"encoding/json"
	"fmt"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// StringMismatch renders a human-readable diff between an expected and
// actual string value, used when an EvaluationError involves two String
// operands that were supposed to match (e.g. a failed `==` assertion in
// a test harness, or a signature error showing "closest" overload). Uses
// github.com/sergi/go-diff the way the teacher's libdiff package renders
// document diffs.
func StringMismatch(expected, actual string) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(expected, actual, false)
	diffs = dmp.DiffCleanupSemantic(diffs)
	return dmp.DiffPrettyText(diffs)
}

// StructMismatch renders a JSON Merge Patch (RFC 7386) style diff between
// two Struct-shaped documents, via github.com/evanphx/json-patch, used
// for the "pretty-printed source and target types" spec.md §7 requires
// following a type-assignability failure between two Struct/Hash types
// with enough overlap that a member-by-member diff is more useful than a
// wholesale type mismatch message.
func StructMismatch(expected, actual interface{}) (string, error) {
	expJSON, err := json.Marshal(expected)
	if err != nil {
		return "", fmt.Errorf("diag: marshal expected: %w", err)
	}
	actJSON, err := json.Marshal(actual)
	if err != nil {
		return "", fmt.Errorf("diag: marshal actual: %w", err)
	}
	patch, err := jsonpatch.CreateMergePatch(expJSON, actJSON)
	if err != nil {
		return "", fmt.Errorf("diag: create merge patch: %w", err)
	}
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, patch, "", "  "); err != nil {
		return string(patch), nil
	}
	return pretty.String(), nil
}
