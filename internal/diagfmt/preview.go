package diagfmt

import (
	"fmt"
	"strings"

	"fortio.org/safecast"

	"jsvet/internal/diag"
	"jsvet/internal/source"
)

type fixPreview struct {
	before []string
	after  []string
}

// buildFixPreview renders the full lines touched by fix before and after
// the edit.
func buildFixPreview(fs *source.FileSet, fix *diag.Fix) (fixPreview, error) {
	if fs == nil {
		return fixPreview{}, fmt.Errorf("nil FileSet")
	}
	file := fs.Get(fix.Span.File)
	if file == nil {
		return fixPreview{}, fmt.Errorf("file %d not found in FileSet", fix.Span.File)
	}

	startPos, endPos := fs.Resolve(fix.Span)
	endLine := max(endPos.Line, startPos.Line)

	blockStart := lineStartOffset(file, startPos.Line)
	blockEnd := max(lineEndOffsetInclusive(file, endLine), blockStart)

	lenFileContent, err := safecast.Conv[uint32](len(file.Content))
	if err != nil {
		return fixPreview{}, fmt.Errorf("len file content overflow: %w", err)
	}
	blockEnd = min(blockEnd, lenFileContent)
	if fix.Span.Start < blockStart || fix.Span.End > blockEnd || fix.Span.Start > fix.Span.End {
		return fixPreview{}, fmt.Errorf("fix span %s out of range for preview block", fix.Span)
	}

	original := file.Content[blockStart:blockEnd]
	relStart := fix.Span.Start - blockStart
	relEnd := fix.Span.End - blockStart

	after := make([]byte, 0, len(original)+len(fix.NewText))
	after = append(after, original[:relStart]...)
	after = append(after, fix.NewText...)
	after = append(after, original[relEnd:]...)

	return fixPreview{
		before: splitPreviewLines(original),
		after:  splitPreviewLines(after),
	}, nil
}

// splitPreviewLines drops the final newline so it does not show up as an
// empty line.
func splitPreviewLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}
	return strings.Split(strings.TrimSuffix(string(content), "\n"), "\n")
}

func lineStartOffset(f *source.File, line uint32) uint32 {
	if line <= 1 {
		return 0
	}
	idx := line - 2
	if int(idx) < len(f.LineIdx) {
		return f.LineIdx[idx] + 1
	}
	lenFileContent, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("len file content overflow: %w", err))
	}
	return lenFileContent
}

func lineEndOffsetInclusive(f *source.File, line uint32) uint32 {
	if line == 0 {
		return 0
	}
	idx := line - 1
	if int(idx) < len(f.LineIdx) {
		return f.LineIdx[idx] + 1
	}
	lenFileContent, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("len file content overflow: %w", err))
	}
	return lenFileContent
}
