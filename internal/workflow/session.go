package workflow

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"service-shipping-go/internal/apperr"
	"service-shipping-go/internal/domain"
	"service-shipping-go/internal/logx"
)

// Session drives one user's order workflow. State changes go through the
// pure reducers under the session lock; network effects go through the
// Gateway. A session is safe for the UI goroutine plus the debounce
// timers it spawns; it is not meant to be shared between users.
type Session struct {
	mu      sync.Mutex
	state   State
	gateway Gateway
	logger  logx.Logger

	ctx        context.Context
	debounce   map[PartyKind]*debouncer
	searchSeq  map[PartyKind]uint64
	searchWait time.Duration
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithSearchDebounce overrides the address-search settle delay.
func WithSearchDebounce(d time.Duration) SessionOption {
	return func(s *Session) { s.searchWait = d }
}

// NewSession creates a workflow session. ctx bounds the background
// location searches the session issues on its own (debounce timers).
func NewSession(ctx context.Context, gw Gateway, logger logx.Logger, opts ...SessionOption) *Session {
	if logger == nil {
		logger = logx.Nop()
	}
	s := &Session{
		state:      NewState(),
		gateway:    gw,
		logger:     logger,
		ctx:        ctx,
		debounce:   make(map[PartyKind]*debouncer),
		searchSeq:  make(map[PartyKind]uint64),
		searchWait: DefaultSearchDebounce,
	}
	for _, o := range opts {
		o(s)
	}
	s.debounce[PartySender] = newDebouncer(s.searchWait)
	s.debounce[PartyReceiver] = newDebouncer(s.searchWait)
	return s
}

// State returns a deep-copied snapshot of the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// Close cancels pending debounced searches.
func (s *Session) Close() {
	for _, d := range s.debounce {
		d.Stop()
	}
}

func (s *Session) apply(f func(State) State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = f(s.state)
}

// fail records a validation/gateway failure as an error notice and
// returns the error. State beyond the notice stays unchanged.
func (s *Session) fail(err error) error {
	s.apply(func(st State) State {
		return setNotice(st, NoticeError, apperr.MessageOf(err))
	})
	return err
}

// SetPartyName records a name input for the given party.
func (s *Session) SetPartyName(kind PartyKind, v string) {
	s.apply(func(st State) State { return setPartyName(st, kind, v) })
}

// SetPartyPhone records a phone input for the given party.
func (s *Session) SetPartyPhone(kind PartyKind, v string) {
	s.apply(func(st State) State { return setPartyPhone(st, kind, v) })
}

// SetPartyAddress records an address input and schedules a debounced
// location search. A blank input clears the candidate list instead and
// invalidates any search still in flight.
func (s *Session) SetPartyAddress(kind PartyKind, v string) {
	s.apply(func(st State) State { return setPartyAddress(st, kind, v) })

	if strings.TrimSpace(v) == "" {
		s.debounce[kind].Stop()
		s.mu.Lock()
		s.searchSeq[kind]++
		s.mu.Unlock()
		s.apply(func(st State) State { return setCandidates(st, kind, nil) })
		return
	}

	s.debounce[kind].Do(func() {
		s.runSearch(kind, v)
	})
}

// runSearch issues the location search for a settled address input.
// Each issued search gets a sequence number; a response is applied only
// if no newer search has been issued for the same party since.
func (s *Session) runSearch(kind PartyKind, keyword string) {
	s.mu.Lock()
	s.searchSeq[kind]++
	seq := s.searchSeq[kind]
	s.mu.Unlock()

	res, err := s.gateway.SearchLocation(s.ctx, keyword, "")

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.searchSeq[kind] {
		s.logger.Debug("stale location search discarded",
			logx.String("party", string(kind)),
			logx.Int64("seq", int64(seq)),
		)
		return
	}
	if err != nil {
		s.state = setNotice(s.state, NoticeError, apperr.MessageOf(err))
		return
	}
	s.state = setCandidates(s.state, kind, res.Data)
}

// SelectLocation attaches a search candidate to the party. Candidates
// without a resolvable coordinate pair are rejected.
func (s *Session) SelectLocation(kind PartyKind, loc domain.Location) error {
	if _, ok := loc.ResolveCoordinates(); !ok {
		return s.fail(apperr.NewValidation("No valid coordinates found for selected %s location", kind))
	}
	s.apply(func(st State) State { return selectLocation(st, kind, loc) })
	return nil
}

// AddItem appends a blank item row to the package.
func (s *Session) AddItem() {
	s.apply(addItem)
}

// RemoveItem drops one item row. The last remaining row cannot be removed.
func (s *Session) RemoveItem(idx int) {
	s.apply(func(st State) State { return removeItem(st, idx) })
}

// SetItemName records a name input for one item row.
func (s *Session) SetItemName(idx int, v string) {
	s.apply(func(st State) State {
		return setItemField(st, idx, func(it *ItemForm) { it.Name = v })
	})
}

// SetItemPrice records a price input for one item row.
func (s *Session) SetItemPrice(idx int, v string) {
	s.apply(func(st State) State {
		return setItemField(st, idx, func(it *ItemForm) { it.Price = v })
	})
}

// SetItemQty records a quantity input for one item row.
func (s *Session) SetItemQty(idx int, v string) {
	s.apply(func(st State) State {
		return setItemField(st, idx, func(it *ItemForm) { it.Qty = v })
	})
}

// SetPackageWeight records the package weight input.
func (s *Session) SetPackageWeight(v string) {
	s.apply(func(st State) State {
		return setPackageField(st, func(p *PackageForm) { p.Weight = v })
	})
}

// SetPackageLength records the package length input.
func (s *Session) SetPackageLength(v string) {
	s.apply(func(st State) State {
		return setPackageField(st, func(p *PackageForm) { p.Length = v })
	})
}

// SetPackageWidth records the package width input.
func (s *Session) SetPackageWidth(v string) {
	s.apply(func(st State) State {
		return setPackageField(st, func(p *PackageForm) { p.Width = v })
	})
}

// SetPackageHeight records the package height input.
func (s *Session) SetPackageHeight(v string) {
	s.apply(func(st State) State {
		return setPackageField(st, func(p *PackageForm) { p.Height = v })
	})
}

// Next advances from sender to receiver details. The move is
// unconditional; downstream gates catch an unresolved sender location.
func (s *Session) Next() {
	s.apply(func(st State) State {
		if st.Step != StepSenderDetails {
			return st
		}
		return setStep(st, StepReceiverDetails)
	})
}

// Back moves one step backward without clearing entered data.
func (s *Session) Back() {
	s.apply(func(st State) State {
		if st.Step <= StepSenderDetails {
			return st
		}
		return setStep(st, st.Step-1)
	})
}

// CheckRates gates the receiver→courier transition: both parties must
// have resolvable locations, then a fresh quote request is issued. On
// failure the step does not advance.
func (s *Session) CheckRates(ctx context.Context) error {
	s.mu.Lock()
	st := s.state
	if st.Step != StepReceiverDetails {
		s.mu.Unlock()
		return apperr.NewValidation("rates can only be checked from the receiver details step")
	}
	if err := validateLocations(st); err != nil {
		s.mu.Unlock()
		return s.fail(err)
	}
	origin, _ := st.Sender.Selected.ResolveCoordinates()
	destination, _ := st.Receiver.Selected.ResolveCoordinates()
	req := buildRateRequest(st, origin, destination)
	s.mu.Unlock()

	res, err := s.gateway.CheckShippingCost(ctx, req, "")
	if err != nil {
		return s.fail(err)
	}

	s.apply(func(st State) State {
		st = setRates(st, res.Data.Pricings)
		return setStep(st, StepCourierSelection)
	})
	return nil
}

// SelectRate makes the quote the active selection, replacing any prior one.
func (s *Session) SelectRate(q domain.RateQuote) {
	s.apply(func(st State) State {
		st = selectRate(st, q)
		return setNotice(st, NoticeSuccess,
			fmt.Sprintf("Selected %s - %s", q.Logistic.Name, q.Rate.Name))
	})
}

// CreateOrder gates the courier→summary transition: the submission
// validation chain runs first, then the normalized payload is built and
// submitted. The created order is appended to the session's order list.
func (s *Session) CreateOrder(ctx context.Context) (*domain.Order, error) {
	s.mu.Lock()
	st := s.state
	if st.Step != StepCourierSelection {
		s.mu.Unlock()
		return nil, apperr.NewValidation("orders can only be created from the courier selection step")
	}
	if err := validateSubmission(st); err != nil {
		s.mu.Unlock()
		return nil, s.fail(err)
	}
	originArea, _ := st.Sender.Selected.AreaID()
	destinationArea, _ := st.Receiver.Selected.AreaID()
	payload := buildOrderPayload(st, originArea, destinationArea)
	s.mu.Unlock()

	res, err := s.gateway.CreateOrder(ctx, payload)
	if err != nil {
		return nil, s.fail(err)
	}

	order := res.Data
	s.apply(func(st State) State {
		st = appendOrder(st, order)
		st = setNotice(st, NoticeSuccess, "Order created successfully!")
		return setStep(st, StepOrderSummary)
	})
	return &order, nil
}

// TrackOrder fetches tracking details for a listed order into the
// tracking overlay.
func (s *Session) TrackOrder(ctx context.Context, orderID string) error {
	res, err := s.gateway.GetOrderDetails(ctx, orderID)
	if err != nil {
		return s.fail(err)
	}
	record := res.Data
	if record.OrderID == "" {
		record.OrderID = orderID
	}
	s.apply(func(st State) State { return setTracking(st, &record) })
	return nil
}

// CloseTracking dismisses the tracking overlay.
func (s *Session) CloseTracking() {
	s.apply(func(st State) State { return setTracking(st, nil) })
}

// DismissNotice clears the current notification.
func (s *Session) DismissNotice() {
	s.apply(dismissNotice)
}

// Reset starts a new order: all form state clears, the order list stays.
func (s *Session) Reset() {
	s.apply(reset)
}
