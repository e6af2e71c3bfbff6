package workflow

import "service-shipping-go/internal/domain"

// Reducers are the only functions that produce a new State from an old
// one. Each corresponds to a single user action; all are pure.

func setPartyName(s State, kind PartyKind, v string) State {
	p := s.party(kind)
	p.Form.Name = v
	return s.withParty(kind, p)
}

func setPartyPhone(s State, kind PartyKind, v string) State {
	p := s.party(kind)
	p.Form.Phone = v
	return s.withParty(kind, p)
}

func setPartyAddress(s State, kind PartyKind, v string) State {
	p := s.party(kind)
	p.Form.Address = v
	return s.withParty(kind, p)
}

func setCandidates(s State, kind PartyKind, list []domain.Location) State {
	p := s.party(kind)
	p.Candidates = list
	return s.withParty(kind, p)
}

// selectLocation attaches the chosen candidate, copies its display text
// into the address field and clears the candidate list.
func selectLocation(s State, kind PartyKind, loc domain.Location) State {
	p := s.party(kind)
	p.Selected = &loc
	p.Form.Address = loc.DisplayTxt
	p.Candidates = nil
	return s.withParty(kind, p)
}

func setPackageField(s State, set func(*PackageForm)) State {
	pkg := s.Package
	pkg.Items = append([]ItemForm(nil), s.Package.Items...)
	set(&pkg)
	s.Package = pkg
	return s
}

func addItem(s State) State {
	return setPackageField(s, func(p *PackageForm) {
		p.Items = append(p.Items, ItemForm{Name: "", Price: "0", Qty: "1"})
	})
}

// removeItem drops one item row; the list never shrinks below one.
func removeItem(s State, idx int) State {
	if idx < 0 || idx >= len(s.Package.Items) || len(s.Package.Items) <= 1 {
		return s
	}
	return setPackageField(s, func(p *PackageForm) {
		p.Items = append(p.Items[:idx], p.Items[idx+1:]...)
	})
}

func setItemField(s State, idx int, set func(*ItemForm)) State {
	if idx < 0 || idx >= len(s.Package.Items) {
		return s
	}
	return setPackageField(s, func(p *PackageForm) {
		set(&p.Items[idx])
	})
}

func setStep(s State, step Step) State {
	s.Step = step
	return s
}

func setRates(s State, rates []domain.RateQuote) State {
	s.Rates = rates
	// Quotes are fetched fresh; a selection made against a previous
	// batch would point at a quote that no longer exists.
	s.Selected = nil
	return s
}

func selectRate(s State, q domain.RateQuote) State {
	s.Selected = &q
	return s
}

func appendOrder(s State, o domain.Order) State {
	orders := append([]domain.Order(nil), s.Orders...)
	s.Orders = append(orders, o)
	return s
}

func setTracking(s State, t *domain.TrackingRecord) State {
	s.Tracking = t
	return s
}

func setNotice(s State, level NoticeLevel, msg string) State {
	s.Notice = &Notice{Level: level, Message: msg}
	return s
}

func dismissNotice(s State) State {
	s.Notice = nil
	return s
}

// reset starts a fresh order: the form clears but the order list stays.
func reset(s State) State {
	next := NewState()
	next.Orders = s.Orders
	return next
}
