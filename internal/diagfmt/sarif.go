package diagfmt

import (
	"encoding/json"
	"io"
	"sort"

	"jsvet/internal/diag"
	"jsvet/internal/source"
)

const (
	sarifVersion = "2.1.0"
	sarifSchema  = "https://json.schemastore.org/sarif-2.1.0.json"
)

type sarifLog struct {
	Version string     `json:"version"`
	Schema  string     `json:"$schema"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool        sarifTool         `json:"tool"`
	Invocations []sarifInvocation `json:"invocations,omitempty"`
	Results     []sarifResult     `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name    string      `json:"name"`
	Version string      `json:"version,omitempty"`
	Rules   []sarifRule `json:"rules,omitempty"`
}

type sarifRule struct {
	ID               string       `json:"id"`
	ShortDescription sarifMessage `json:"shortDescription"`
}

type sarifInvocation struct {
	Arguments           []string `json:"arguments,omitempty"`
	ExecutionSuccessful bool     `json:"executionSuccessful"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifResult struct {
	RuleID           string          `json:"ruleId"`
	Level            string          `json:"level"`
	Message          sarifMessage    `json:"message"`
	Locations        []sarifLocation `json:"locations"`
	RelatedLocations []sarifLocation `json:"relatedLocations,omitempty"`
	Fixes            []sarifFix      `json:"fixes,omitempty"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysical `json:"physicalLocation"`
	Message          *sarifMessage `json:"message,omitempty"`
}

type sarifPhysical struct {
	ArtifactLocation sarifArtifact `json:"artifactLocation"`
	Region           sarifRegion   `json:"region"`
}

type sarifArtifact struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine   uint32 `json:"startLine"`
	StartColumn uint32 `json:"startColumn"`
	EndLine     uint32 `json:"endLine"`
	EndColumn   uint32 `json:"endColumn"`
	CharOffset  uint32 `json:"charOffset"`
	CharLength  uint32 `json:"charLength"`
}

type sarifFix struct {
	Description     sarifMessage          `json:"description"`
	ArtifactChanges []sarifArtifactChange `json:"artifactChanges"`
}

type sarifArtifactChange struct {
	ArtifactLocation sarifArtifact      `json:"artifactLocation"`
	Replacements     []sarifReplacement `json:"replacements"`
}

type sarifReplacement struct {
	DeletedRegion   sarifRegion  `json:"deletedRegion"`
	InsertedContent sarifMessage `json:"insertedContent"`
}

func sarifLevel(s diag.Severity) string {
	switch s {
	case diag.SevError:
		return "error"
	case diag.SevWarning:
		return "warning"
	}
	return "note"
}

func makeSarifLocation(fs *source.FileSet, span source.Span) sarifLocation {
	start, end := fs.Resolve(span)
	return sarifLocation{PhysicalLocation: sarifPhysical{
		ArtifactLocation: sarifArtifact{URI: formatPath(fs, span.File, PathModeRelative)},
		Region: sarifRegion{
			StartLine:   start.Line,
			StartColumn: start.Col,
			EndLine:     end.Line,
			EndColumn:   end.Col,
			CharOffset:  span.Start,
			CharLength:  span.Len(),
		},
	}}
}

// Sarif writes the bag as a single-run SARIF 2.1.0 log. Columns are byte
// based, matching the rest of the output formats.
func Sarif(w io.Writer, bag *diag.Bag, fs *source.FileSet, meta SarifRunMeta) error {
	run := sarifRun{
		Tool: sarifTool{Driver: sarifDriver{Name: meta.ToolName, Version: meta.ToolVersion}},
		Invocations: []sarifInvocation{{
			Arguments:           meta.InvocationArgs,
			ExecutionSuccessful: !bag.HasErrors(),
		}},
		Results: make([]sarifResult, 0, bag.Len()),
	}

	names := make([]string, 0, len(meta.Rules))
	for name := range meta.Rules {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		run.Tool.Driver.Rules = append(run.Tool.Driver.Rules, sarifRule{
			ID:               name,
			ShortDescription: sarifMessage{Text: meta.Rules[name]},
		})
	}

	for _, d := range bag.Items() {
		res := sarifResult{
			RuleID:    d.Code.String(),
			Level:     sarifLevel(d.Severity),
			Message:   sarifMessage{Text: d.Message},
			Locations: []sarifLocation{makeSarifLocation(fs, d.Primary)},
		}
		if d.Help != "" {
			res.Message.Text += "\n" + d.Help
		}
		for _, l := range d.Labels {
			loc := makeSarifLocation(fs, l.Span)
			loc.Message = &sarifMessage{Text: l.Msg}
			res.RelatedLocations = append(res.RelatedLocations, loc)
		}
		if d.Fix != nil {
			loc := makeSarifLocation(fs, d.Fix.Span)
			res.Fixes = []sarifFix{{
				Description: sarifMessage{Text: d.Fix.Title + " (" + d.Fix.Applicability.String() + ")"},
				ArtifactChanges: []sarifArtifactChange{{
					ArtifactLocation: loc.PhysicalLocation.ArtifactLocation,
					Replacements: []sarifReplacement{{
						DeletedRegion:   loc.PhysicalLocation.Region,
						InsertedContent: sarifMessage{Text: d.Fix.NewText},
					}},
				}},
			}}
		}
		run.Results = append(run.Results, res)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(sarifLog{Version: sarifVersion, Schema: sarifSchema, Runs: []sarifRun{run}})
}
