// Package detector defines the detector contract (metadata plus a check
// operation over a shared Analysis Context) and the runner that invokes a
// static registry of them, normalizing and enriching their findings.
package detector

import (
	"strings"

	"github.com/omensec/solsca/pkg/analysisctx"
	"github.com/omensec/solsca/pkg/models"
)

// Detector is a value exposing static metadata plus a check operation.
type Detector interface {
	ID() string
	Description() string
	Severity() models.Severity
	Title() string
	SWCID() string
	Confidence() string
	FixSuggestion() string
	Run(ctx *analysisctx.Context) []models.Issue
}

const defaultFixSuggestion = "Review the flagged code and apply the recommended mitigation for this class of vulnerability."

// Meta holds a detector's static metadata and supplies the default-valued
// accessors (Title, SWCID, Confidence, FixSuggestion) that every concrete
// detector embeds rather than reimplements.
type Meta struct {
	id            string
	description   string
	severity      models.Severity
	title         string
	swcID         string
	confidence    string
	fixSuggestion string
}

// MetaOption overrides one of Meta's defaulted fields.
type MetaOption func(*Meta)

// WithTitle overrides the default title (which otherwise equals Description).
func WithTitle(title string) MetaOption { return func(m *Meta) { m.title = title } }

// WithSWCID overrides the default registry id (which otherwise equals ID
// when ID starts with "SWC-", else is empty).
func WithSWCID(id string) MetaOption { return func(m *Meta) { m.swcID = id } }

// WithConfidence overrides the default confidence of "High".
func WithConfidence(confidence string) MetaOption {
	return func(m *Meta) { m.confidence = confidence }
}

// WithFixSuggestion overrides the default generic fix suggestion.
func WithFixSuggestion(text string) MetaOption {
	return func(m *Meta) { m.fixSuggestion = text }
}

// NewMeta builds a Meta with the given required fields and any overrides.
func NewMeta(id, description string, severity models.Severity, opts ...MetaOption) Meta {
	m := Meta{id: id, description: description, severity: severity, confidence: "High"}
	for _, opt := range opts {
		opt(&m)
	}
	if m.title == "" {
		m.title = m.description
	}
	if m.swcID == "" && strings.HasPrefix(m.id, "SWC-") {
		m.swcID = m.id
	}
	if m.fixSuggestion == "" {
		m.fixSuggestion = defaultFixSuggestion
	}
	return m
}

func (m Meta) ID() string                 { return m.id }
func (m Meta) Description() string        { return m.description }
func (m Meta) Severity() models.Severity  { return m.severity }
func (m Meta) Title() string              { return m.title }
func (m Meta) SWCID() string              { return m.swcID }
func (m Meta) Confidence() string         { return m.confidence }
func (m Meta) FixSuggestion() string      { return m.fixSuggestion }
