package intelligence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/ironplan/internal/domain"
	"github.com/alexanderramin/ironplan/internal/importer"
	"github.com/alexanderramin/ironplan/internal/llm"
)

// ErrEmptyPrompt is returned when there is nothing to draft from.
var ErrEmptyPrompt = errors.New("draft prompt is required")

// BlockDraft is a model-authored block that passed the importer. Raw keeps
// the model text so a failed parse can be shown back to the user.
type BlockDraft struct {
	Imported *importer.ImportedBlock
	Raw      string
	Model    string
}

// BlockDraftService turns a natural language request into a block.
type BlockDraftService interface {
	Draft(ctx context.Context, prompt string) (*BlockDraft, error)
}

type blockDraftService struct {
	client llm.Client
}

// NewBlockDraftService creates a BlockDraftService backed by a model client.
func NewBlockDraftService(client llm.Client) BlockDraftService {
	return &blockDraftService{client: client}
}

func (s *blockDraftService) Draft(ctx context.Context, prompt string) (*BlockDraft, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, ErrEmptyPrompt
	}

	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Purpose:      "block_draft",
		SystemPrompt: blockDraftSystemPrompt,
		UserPrompt:   prompt,
	})
	if err != nil {
		return nil, fmt.Errorf("llm block draft failed: %w", err)
	}

	imported, err := importer.Import(resp.Text, importer.OriginChat)
	if err != nil {
		return &BlockDraft{Raw: resp.Text, Model: resp.Model}, fmt.Errorf("drafted block did not parse: %w", err)
	}

	b := imported.Block
	b.Source = domain.SourceAI
	if b.AIMetadata == nil {
		b.AIMetadata = &domain.AIMetadata{Strategy: string(imported.Strategy)}
	}
	b.AIMetadata.Prompt = prompt
	b.AIMetadata.Model = resp.Model

	return &BlockDraft{Imported: imported, Raw: resp.Text, Model: resp.Model}, nil
}
