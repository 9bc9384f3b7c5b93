package validators

import (
	"fmt"
	"unicode"

	"loom/domain/config"
	pkgerrors "loom/pkg/errors"
)

// NodeValidator validates client-supplied node metadata before it
// reaches the canvas. Labels and content types arrive from untrusted
// clients, so length and character-set rules are enforced here rather
// than in the entities themselves.
type NodeValidator struct {
	cfg *config.DomainConfig
}

// NewNodeValidator creates a validator with the default limits
func NewNodeValidator() *NodeValidator {
	return NewNodeValidatorWithConfig(config.DefaultDomainConfig())
}

// NewNodeValidatorWithConfig creates a validator with explicit limits
func NewNodeValidatorWithConfig(cfg *config.DomainConfig) *NodeValidator {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}
	return &NodeValidator{cfg: cfg}
}

// ValidateLabel checks a node label against the length limit
func (v *NodeValidator) ValidateLabel(label string) error {
	if len(label) > v.cfg.MaxLabelLength {
		return pkgerrors.NewValidationError(
			fmt.Sprintf("label exceeds maximum length of %d bytes", v.cfg.MaxLabelLength))
	}
	return nil
}

// ValidateContent checks generated or note content against the length
// limit
func (v *NodeValidator) ValidateContent(content string) error {
	if len(content) > v.cfg.MaxContentLength {
		return pkgerrors.NewValidationError(
			fmt.Sprintf("content exceeds maximum length of %d bytes", v.cfg.MaxContentLength))
	}
	return nil
}

// ValidateContentType checks a client content-type hint: bounded
// length, printable characters only
func (v *NodeValidator) ValidateContentType(contentType string) error {
	if len(contentType) > v.cfg.MaxContentTypeLength {
		return pkgerrors.NewValidationError(
			fmt.Sprintf("content type exceeds maximum length of %d bytes", v.cfg.MaxContentTypeLength))
	}
	for _, r := range contentType {
		if !unicode.IsPrint(r) {
			return pkgerrors.NewValidationError("content type contains non-printable characters")
		}
	}
	return nil
}

// ValidateGroupSize checks the member count of a group node
func (v *NodeValidator) ValidateGroupSize(childCount int) error {
	if childCount > v.cfg.MaxGroupChildren {
		return pkgerrors.NewValidationError(
			fmt.Sprintf("group exceeds maximum of %d children", v.cfg.MaxGroupChildren))
	}
	return nil
}
