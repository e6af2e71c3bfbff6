package workflow

import "service-shipping-go/internal/domain"

// Step is one stage of the order workflow.
type Step int

// Workflow steps, in order. No skipping forward without satisfying the
// step's gate; backward moves are always allowed.
const (
	StepSenderDetails Step = iota + 1
	StepReceiverDetails
	StepCourierSelection
	StepOrderSummary
)

// Valid checks if the Step is valid
func (s Step) Valid() bool {
	return s >= StepSenderDetails && s <= StepOrderSummary
}

func (s Step) String() string {
	switch s {
	case StepSenderDetails:
		return "sender_details"
	case StepReceiverDetails:
		return "receiver_details"
	case StepCourierSelection:
		return "courier_selection"
	case StepOrderSummary:
		return "order_summary"
	default:
		return "unknown"
	}
}

// PartyKind distinguishes the two sides of a shipment.
type PartyKind string

// List of party kinds
const (
	PartySender   PartyKind = "sender"
	PartyReceiver PartyKind = "receiver"
)

// PartyForm holds the raw form inputs for one party.
type PartyForm struct {
	Name    string
	Phone   string
	Address string
}

// ItemForm holds the raw form inputs for one package item. Values stay
// strings until validation/formatting time, mirroring form input.
type ItemForm struct {
	Name  string
	Price string
	Qty   string
}

// PackageForm holds the raw package inputs plus the dynamic item list.
type PackageForm struct {
	Weight string
	Length string
	Width  string
	Height string
	Items  []ItemForm
}

// PartyState is the per-party slice of workflow state: the form, the
// current search candidates and the selected location, if any.
type PartyState struct {
	Form       PartyForm
	Candidates []domain.Location
	Selected   *domain.Location
}

// NoticeLevel classifies a user-visible notification.
type NoticeLevel string

// List of notice levels
const (
	NoticeError   NoticeLevel = "error"
	NoticeSuccess NoticeLevel = "success"
)

// Notice is a dismissible user-visible message.
type Notice struct {
	Level   NoticeLevel
	Message string
}

// State is the complete workflow state. It is a value: reducers never
// mutate their input, they return an updated copy.
type State struct {
	Step     Step
	Sender   PartyState
	Receiver PartyState
	Package  PackageForm
	Rates    []domain.RateQuote
	Selected *domain.RateQuote
	// Orders is append-only within the session; Reset keeps it.
	Orders   []domain.Order
	Tracking *domain.TrackingRecord
	Notice   *Notice
}

// NewState returns the initial workflow state: step one, unit package
// dimensions and a single blank item, matching the form defaults.
func NewState() State {
	return State{
		Step: StepSenderDetails,
		Package: PackageForm{
			Weight: "1",
			Length: "1",
			Width:  "1",
			Height: "1",
			Items:  []ItemForm{{Name: "", Price: "0", Qty: "1"}},
		},
	}
}

func (s State) party(kind PartyKind) PartyState {
	if kind == PartyReceiver {
		return s.Receiver
	}
	return s.Sender
}

func (s State) withParty(kind PartyKind, p PartyState) State {
	if kind == PartyReceiver {
		s.Receiver = p
	} else {
		s.Sender = p
	}
	return s
}

// clone deep-copies the state so a snapshot cannot alias session-owned
// slices or pointers.
func (s State) clone() State {
	out := s
	out.Sender = s.Sender.clone()
	out.Receiver = s.Receiver.clone()
	out.Package.Items = append([]ItemForm(nil), s.Package.Items...)
	out.Rates = append([]domain.RateQuote(nil), s.Rates...)
	out.Orders = append([]domain.Order(nil), s.Orders...)
	if s.Selected != nil {
		sel := *s.Selected
		out.Selected = &sel
	}
	if s.Tracking != nil {
		tr := *s.Tracking
		tr.Trackings = append([]domain.TrackingEvent(nil), s.Tracking.Trackings...)
		out.Tracking = &tr
	}
	if s.Notice != nil {
		n := *s.Notice
		out.Notice = &n
	}
	return out
}

func (p PartyState) clone() PartyState {
	out := p
	out.Candidates = append([]domain.Location(nil), p.Candidates...)
	if p.Selected != nil {
		loc := *p.Selected
		out.Selected = &loc
	}
	return out
}
