package runtime

import (
	"fmt"
	"strings"

	"github.com/patchloom/patchloom/internal/diffengine"
)

// applyFileDiffInternal applies fd's hunks to original using the same
// context/deletion matching discipline as the external patch tool: each
// context or deletion line must match the corresponding original line
// exactly, in order.
func applyFileDiffInternal(original string, fd *diffengine.FileDiff) (string, error) {
	var originalLines []string
	if original != "" {
		originalLines = strings.Split(original, "\n")
	}

	result := make([]string, 0, len(originalLines))
	cursor := 0

	for hi, hunk := range fd.Hunks {
		target := hunk.OldStart - 1
		if hunk.OldCount == 0 {
			target = hunk.OldStart
		}
		for cursor < target && cursor < len(originalLines) {
			result = append(result, originalLines[cursor])
			cursor++
		}

		for _, line := range hunk.Lines {
			switch line.Tag {
			case diffengine.TagContext:
				if cursor >= len(originalLines) || originalLines[cursor] != line.Text {
					return "", fmt.Errorf("hunk %d: context mismatch at line %d", hi+1, cursor+1)
				}
				result = append(result, originalLines[cursor])
				cursor++
			case diffengine.TagDel:
				if cursor >= len(originalLines) || originalLines[cursor] != line.Text {
					return "", fmt.Errorf("hunk %d: deletion mismatch at line %d", hi+1, cursor+1)
				}
				cursor++
			case diffengine.TagAdd:
				result = append(result, line.Text)
			}
		}
	}

	for cursor < len(originalLines) {
		result = append(result, originalLines[cursor])
		cursor++
	}

	return strings.Join(result, "\n"), nil
}
