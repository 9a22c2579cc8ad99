package importer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/alexanderramin/ironplan/internal/domain"
)

// Origin says where input came from; it picks the stage chain.
type Origin string

const (
	// OriginChat is pasted assistant output: JSON section, human-readable, legacy.
	OriginChat Origin = "chat"
	// OriginJSONFile is a .json file: raw JSON, then JSON section.
	OriginJSONFile Origin = "json"
	// OriginTextFile is any other file: legacy, JSON section, human-readable.
	OriginTextFile Origin = "text"
)

// ParseOrigin resolves a user-supplied origin name.
func ParseOrigin(s string) (Origin, error) {
	switch Origin(strings.ToLower(strings.TrimSpace(s))) {
	case "", OriginChat:
		return OriginChat, nil
	case OriginJSONFile:
		return OriginJSONFile, nil
	case OriginTextFile, "txt":
		return OriginTextFile, nil
	}
	return "", fmt.Errorf("unknown origin %q (expected chat, json or text)", s)
}

// Strategy names the stage that produced a block.
type Strategy string

const (
	StrategyJSONSection   Strategy = "json_section"
	StrategyRawJSON       Strategy = "raw_json"
	StrategyHumanReadable Strategy = "human_readable"
	StrategyLegacy        Strategy = "legacy"
)

// ImportedBlock is a parsed block with provenance. Authoring is nil for
// legacy input, which never passes through the authoring schema.
type ImportedBlock struct {
	Block     *domain.Block   `json:"block"`
	Authoring *AuthoringBlock `json:"authoring,omitempty"`
	Strategy  Strategy        `json:"strategy"`
	Warnings  []string        `json:"warnings,omitempty"`
}

type stage func(text string) (*ImportedBlock, error)

// Parse tries the JSON section then the human-readable grammar.
func Parse(text string) (*ImportedBlock, error) {
	return runStages(text, jsonSectionStage, humanReadableStage)
}

// Import runs the stage chain for origin. The first stage to succeed wins.
// On total failure the first stage that recognized its input shape
// reports; failing that, the last stage does.
func Import(input string, origin Origin) (*ImportedBlock, error) {
	var imported *ImportedBlock
	var err error
	switch origin {
	case OriginJSONFile:
		imported, err = runStages(input, rawJSONStage, jsonSectionStage)
	case OriginTextFile:
		imported, err = runStages(input, legacyStage, jsonSectionStage, humanReadableStage)
	default:
		imported, err = runStages(input, jsonSectionStage, humanReadableStage, legacyStage)
	}
	if err != nil {
		return nil, err
	}
	if origin == OriginChat || origin == "" {
		imported.Block.Source = domain.SourceAI
	}
	if imported.Block.AIMetadata != nil {
		imported.Block.AIMetadata.Strategy = string(imported.Strategy)
	}
	return imported, nil
}

// LoadFile imports a file, choosing the origin from its extension.
func LoadFile(path string) (*ImportedBlock, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading import file: %w", err)
	}
	origin := OriginTextFile
	if strings.EqualFold(filepath.Ext(path), ".json") {
		origin = OriginJSONFile
	}
	return Import(string(data), origin)
}

// runStages rejects invalid UTF-8 before any stage sees the text.
func runStages(text string, stages ...stage) (*ImportedBlock, error) {
	if !utf8.ValidString(text) {
		return nil, ErrInvalidEncoding
	}
	var firstDetected, last error
	for _, run := range stages {
		imported, err := run(text)
		if err == nil {
			return imported, nil
		}
		if pe, ok := AsParseError(err); ok && pe.Detected && firstDetected == nil {
			firstDetected = err
		}
		last = err
	}
	if firstDetected != nil {
		return nil, firstDetected
	}
	return nil, last
}

func jsonSectionStage(text string) (*ImportedBlock, error) {
	ab, err := ExtractJSONSection(text)
	if err != nil {
		return nil, err
	}
	return fromAuthoring(ab, StrategyJSONSection)
}

func rawJSONStage(text string) (*ImportedBlock, error) {
	ab, err := ParseAuthoringJSON([]byte(text))
	if err != nil {
		return nil, err
	}
	return fromAuthoring(ab, StrategyRawJSON)
}

func humanReadableStage(text string) (*ImportedBlock, error) {
	ab, err := ParseHumanReadable(text)
	if err != nil {
		return nil, err
	}
	return fromAuthoring(ab, StrategyHumanReadable)
}

func legacyStage(text string) (*ImportedBlock, error) {
	block, err := ParseLegacySpec(text)
	if err != nil {
		return nil, err
	}
	return &ImportedBlock{Block: block, Strategy: StrategyLegacy}, nil
}

func fromAuthoring(ab *AuthoringBlock, strategy Strategy) (*ImportedBlock, error) {
	block, err := Convert(ab)
	if err != nil {
		return nil, err
	}
	var warnings []string
	for _, w := range ValidateAuthoring(ab) {
		warnings = append(warnings, w.Error())
	}
	return &ImportedBlock{Block: block, Authoring: ab, Strategy: strategy, Warnings: warnings}, nil
}
