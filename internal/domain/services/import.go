package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/ersonp/onebox-embed/internal/infrastructure/parsers"
)

// ImportOptions controls import behavior.
type ImportOptions struct {
	DryRun bool // Count what would be imported without embedding or saving
}

// ImportResult contains the result of an import operation.
type ImportResult struct {
	Imported int
	Skipped  int // Blank texts and duplicates within the source
	IDs      []string
}

// ImportService adds many pieces of knowledge from an external source.
type ImportService struct {
	knowledge *KnowledgeService
}

// NewImportService creates a new import service.
func NewImportService(knowledge *KnowledgeService) *ImportService {
	return &ImportService{
		knowledge: knowledge,
	}
}

// Import adds every non-blank, distinct entry in order. The first failing
// entry stops the import; entries before it stay imported.
func (s *ImportService) Import(ctx context.Context, raw []parsers.RawEntry, opts ImportOptions) (*ImportResult, error) {
	result := &ImportResult{}
	seen := make(map[string]struct{}, len(raw))

	for i, entry := range raw {
		lineNum := entry.LineNum
		if lineNum == 0 {
			lineNum = i + 1
		}

		key := strings.TrimSpace(entry.Text)
		if key == "" {
			result.Skipped++
			continue
		}
		if _, dup := seen[key]; dup {
			result.Skipped++
			continue
		}
		seen[key] = struct{}{}

		if opts.DryRun {
			result.Imported++
			continue
		}

		added, err := s.knowledge.Add(ctx, entry.Text)
		if err != nil {
			return result, fmt.Errorf("line %d: %w", lineNum, err)
		}
		result.Imported++
		result.IDs = append(result.IDs, added.ID)
	}

	return result, nil
}
