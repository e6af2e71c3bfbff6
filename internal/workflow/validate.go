package workflow

import (
	"strings"

	"service-shipping-go/internal/apperr"
	"service-shipping-go/internal/domain"
)

const msgSelectLocations = "Please select valid locations for sender and receiver"

// validateLocations checks that both parties carry a selected location
// with a resolvable coordinate pair.
func validateLocations(s State) error {
	for _, p := range [...]PartyState{s.Sender, s.Receiver} {
		if p.Selected == nil {
			return apperr.NewValidation(msgSelectLocations)
		}
		if _, ok := p.Selected.ResolveCoordinates(); !ok {
			return apperr.NewValidation(msgSelectLocations)
		}
	}
	return nil
}

// validateSubmission runs the pre-submission checks in their fixed order;
// the first failure wins and blocks the order entirely.
func validateSubmission(s State) error {
	// 1. a courier must be selected
	if s.Selected == nil {
		return apperr.NewValidation("Please select a courier first")
	}

	// 2. required fields, section by section
	required := []struct {
		section string
		field   string
		value   string
	}{
		{"sender", "name", s.Sender.Form.Name},
		{"sender", "phone", s.Sender.Form.Phone},
		{"sender", "address", s.Sender.Form.Address},
		{"receiver", "name", s.Receiver.Form.Name},
		{"receiver", "phone", s.Receiver.Form.Phone},
		{"receiver", "address", s.Receiver.Form.Address},
		{"package", "weight", s.Package.Weight},
		{"package", "length", s.Package.Length},
		{"package", "width", s.Package.Width},
		{"package", "height", s.Package.Height},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return apperr.NewValidation("%s %s is required", f.section, f.field)
		}
	}

	// 3. phone numbers: digits only, 10-13 of them
	if !domain.ValidatePhone(s.Sender.Form.Phone) {
		return apperr.NewValidation("Invalid sender phone number")
	}
	if !domain.ValidatePhone(s.Receiver.Form.Phone) {
		return apperr.NewValidation("Invalid receiver phone number")
	}

	// 4. package numerics must parse and be positive
	dims := []struct {
		name  string
		value string
	}{
		{"weight", s.Package.Weight},
		{"length", s.Package.Length},
		{"width", s.Package.Width},
		{"height", s.Package.Height},
	}
	for _, d := range dims {
		if num(d.value) <= 0 {
			return apperr.NewValidation("Invalid package %s", d.name)
		}
	}

	// 5. locations must still resolve; a stale or missing selection
	// would submit an order without a usable area_id
	return validateLocations(s)
}
