package workflow_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"service-shipping-go/internal/apperr"
	"service-shipping-go/internal/domain"
	"service-shipping-go/internal/gateway/shipper"
	"service-shipping-go/internal/logx"
	"service-shipping-go/internal/workflow"

	"github.com/stretchr/testify/require"
)

type fakeGateway struct {
	searchFn  func(ctx context.Context, keyword, admLevel string) (*shipper.Result[[]domain.Location], error)
	costFn    func(ctx context.Context, data domain.RateRequest, rateType string) (*shipper.Result[shipper.PricingData], error)
	createFn  func(ctx context.Context, payload any) (*shipper.Result[domain.Order], error)
	detailsFn func(ctx context.Context, orderID string) (*shipper.Result[domain.TrackingRecord], error)
}

func (f *fakeGateway) SearchLocation(ctx context.Context, keyword, admLevel string) (*shipper.Result[[]domain.Location], error) {
	if f.searchFn == nil {
		panic("SearchLocation not expected")
	}
	return f.searchFn(ctx, keyword, admLevel)
}

func (f *fakeGateway) CheckShippingCost(ctx context.Context, data domain.RateRequest, rateType string) (*shipper.Result[shipper.PricingData], error) {
	if f.costFn == nil {
		panic("CheckShippingCost not expected")
	}
	return f.costFn(ctx, data, rateType)
}

func (f *fakeGateway) CreateOrder(ctx context.Context, payload any) (*shipper.Result[domain.Order], error) {
	if f.createFn == nil {
		panic("CreateOrder not expected")
	}
	return f.createFn(ctx, payload)
}

func (f *fakeGateway) GetOrderDetails(ctx context.Context, orderID string) (*shipper.Result[domain.TrackingRecord], error) {
	if f.detailsFn == nil {
		panic("GetOrderDetails not expected")
	}
	return f.detailsFn(ctx, orderID)
}

func resolvableLocation(id int64, display string) domain.Location {
	return domain.Location{
		AdmLevelCur: &domain.AdmLevel{
			ID: id, Level: 3, Type: "District",
			GeoCoord: &domain.GeoCoord{Lat: -7.25, Lng: 112.75},
		},
		DisplayTxt: display,
	}
}

func newSession(t *testing.T, gw workflow.Gateway) *workflow.Session {
	t.Helper()
	s := workflow.NewSession(context.Background(), gw, logx.Nop(),
		workflow.WithSearchDebounce(time.Millisecond))
	t.Cleanup(s.Close)
	return s
}

func quote(logistic, rate string, price float64) domain.RateQuote {
	return domain.RateQuote{
		Logistic:   domain.Logistic{Name: logistic},
		Rate:       domain.RateService{Name: rate},
		FinalPrice: price,
		MinDay:     1,
		MaxDay:     3,
	}
}

// advanceToCourierSelection walks a session through steps 1 and 2 with
// valid data and a single JNE REG quote.
func advanceToCourierSelection(t *testing.T, gw *fakeGateway) *workflow.Session {
	t.Helper()
	gw.costFn = func(_ context.Context, _ domain.RateRequest, _ string) (*shipper.Result[shipper.PricingData], error) {
		return &shipper.Result[shipper.PricingData]{
			Data: shipper.PricingData{Pricings: []domain.RateQuote{quote("JNE", "REG", 12000)}},
		}, nil
	}

	s := newSession(t, gw)
	s.SetPartyName(workflow.PartySender, "Alice")
	s.SetPartyPhone(workflow.PartySender, "0812345678901")
	require.NoError(t, s.SelectLocation(workflow.PartySender, resolvableLocation(100, "Surabaya, Jawa Timur")))
	s.Next()

	s.SetPartyName(workflow.PartyReceiver, "Bob")
	s.SetPartyPhone(workflow.PartyReceiver, "0898765432109")
	require.NoError(t, s.SelectLocation(workflow.PartyReceiver, resolvableLocation(200, "Jakarta Selatan, DKI Jakarta")))

	require.NoError(t, s.CheckRates(context.Background()))
	require.Equal(t, workflow.StepCourierSelection, s.State().Step)
	return s
}

func TestNewSession_InitialState(t *testing.T) {
	t.Parallel()

	s := newSession(t, &fakeGateway{})
	st := s.State()

	require.Equal(t, workflow.StepSenderDetails, st.Step)
	require.Equal(t, "1", st.Package.Weight)
	require.Len(t, st.Package.Items, 1)
	require.Equal(t, workflow.ItemForm{Name: "", Price: "0", Qty: "1"}, st.Package.Items[0])
	require.Empty(t, st.Orders)
	require.Nil(t, st.Notice)
}

func TestSession_NextAndBack_PreserveData(t *testing.T) {
	t.Parallel()

	s := newSession(t, &fakeGateway{})
	s.SetPartyName(workflow.PartySender, "Alice")
	s.Next()
	require.Equal(t, workflow.StepReceiverDetails, s.State().Step)

	s.SetPartyName(workflow.PartyReceiver, "Bob")
	s.Back()

	st := s.State()
	require.Equal(t, workflow.StepSenderDetails, st.Step)
	require.Equal(t, "Alice", st.Sender.Form.Name)
	require.Equal(t, "Bob", st.Receiver.Form.Name, "backward moves must not clear entered data")
}

func TestSession_AddressSearch_SelectsLocation(t *testing.T) {
	t.Parallel()

	// scenario: search "surabaya", one candidate with a level-3
	// coordinate only, select it
	candidate := domain.Location{
		AdmLevelCur: &domain.AdmLevel{ID: 33, Level: 3, Type: "City"},
		AdmLevel3:   &domain.AdmLevel{ID: 33, Level: 3, GeoCoord: &domain.GeoCoord{Lat: -7.2575, Lng: 112.7521}},
		DisplayTxt:  "Surabaya, Jawa Timur",
	}

	gw := &fakeGateway{
		searchFn: func(_ context.Context, keyword, _ string) (*shipper.Result[[]domain.Location], error) {
			require.Equal(t, "surabaya", keyword)
			return &shipper.Result[[]domain.Location]{Data: []domain.Location{candidate}}, nil
		},
	}
	s := newSession(t, gw)

	s.SetPartyAddress(workflow.PartySender, "surabaya")
	require.Eventually(t, func() bool {
		return len(s.State().Sender.Candidates) == 1
	}, time.Second, 2*time.Millisecond)

	require.NoError(t, s.SelectLocation(workflow.PartySender, s.State().Sender.Candidates[0]))

	st := s.State()
	require.Equal(t, "Surabaya, Jawa Timur", st.Sender.Form.Address)
	require.Empty(t, st.Sender.Candidates)
	g, ok := st.Sender.Selected.ResolveCoordinates()
	require.True(t, ok)
	require.Equal(t, domain.GeoCoord{Lat: -7.2575, Lng: 112.7521}, g)
}

func TestSession_BlankAddress_ClearsCandidates(t *testing.T) {
	t.Parallel()

	gw := &fakeGateway{
		searchFn: func(_ context.Context, _, _ string) (*shipper.Result[[]domain.Location], error) {
			return &shipper.Result[[]domain.Location]{Data: []domain.Location{resolvableLocation(1, "X")}}, nil
		},
	}
	s := newSession(t, gw)

	s.SetPartyAddress(workflow.PartySender, "sur")
	require.Eventually(t, func() bool {
		return len(s.State().Sender.Candidates) == 1
	}, time.Second, 2*time.Millisecond)

	s.SetPartyAddress(workflow.PartySender, "  ")
	require.Empty(t, s.State().Sender.Candidates)
	require.Equal(t, "  ", s.State().Sender.Form.Address)
}

func TestSession_StaleSearchResponse_Discarded(t *testing.T) {
	t.Parallel()

	firstIssued := make(chan struct{})
	releaseFirst := make(chan struct{})

	gw := &fakeGateway{}
	gw.searchFn = func(_ context.Context, keyword, _ string) (*shipper.Result[[]domain.Location], error) {
		if keyword == "first" {
			close(firstIssued)
			<-releaseFirst
			return &shipper.Result[[]domain.Location]{Data: []domain.Location{resolvableLocation(1, "FIRST")}}, nil
		}
		return &shipper.Result[[]domain.Location]{Data: []domain.Location{resolvableLocation(2, "SECOND")}}, nil
	}
	s := newSession(t, gw)

	s.SetPartyAddress(workflow.PartySender, "first")
	<-firstIssued

	s.SetPartyAddress(workflow.PartySender, "second")
	require.Eventually(t, func() bool {
		c := s.State().Sender.Candidates
		return len(c) == 1 && c[0].DisplayTxt == "SECOND"
	}, time.Second, 2*time.Millisecond)

	// the slow first response lands after the second; it must be dropped
	close(releaseFirst)
	time.Sleep(20 * time.Millisecond)

	c := s.State().Sender.Candidates
	require.Len(t, c, 1)
	require.Equal(t, "SECOND", c[0].DisplayTxt)
}

func TestSession_SelectLocation_RejectsUnresolvable(t *testing.T) {
	t.Parallel()

	s := newSession(t, &fakeGateway{})

	err := s.SelectLocation(workflow.PartySender, domain.Location{DisplayTxt: "Nowhere"})
	var val *apperr.Validation
	require.ErrorAs(t, err, &val)

	st := s.State()
	require.Nil(t, st.Sender.Selected)
	require.NotNil(t, st.Notice)
	require.Equal(t, workflow.NoticeError, st.Notice.Level)
}

func TestSession_CheckRates_MissingLocation_BlocksWithoutGatewayCall(t *testing.T) {
	t.Parallel()

	s := newSession(t, &fakeGateway{}) // costFn nil: any call panics
	s.SetPartyName(workflow.PartySender, "Alice")
	require.NoError(t, s.SelectLocation(workflow.PartySender, resolvableLocation(100, "Surabaya")))
	s.Next()

	err := s.CheckRates(context.Background())
	var val *apperr.Validation
	require.ErrorAs(t, err, &val)
	require.Equal(t, "Please select valid locations for sender and receiver", val.Message)

	st := s.State()
	require.Equal(t, workflow.StepReceiverDetails, st.Step)
	require.NotNil(t, st.Notice)
	require.Equal(t, "Please select valid locations for sender and receiver", st.Notice.Message)
}

func TestSession_CheckRates_BuildsRequestAndAdvances(t *testing.T) {
	t.Parallel()

	var got domain.RateRequest
	gw := &fakeGateway{
		costFn: func(_ context.Context, data domain.RateRequest, rateType string) (*shipper.Result[shipper.PricingData], error) {
			got = data
			require.Equal(t, "", rateType)
			return &shipper.Result[shipper.PricingData]{
				Data: shipper.PricingData{Pricings: []domain.RateQuote{quote("JNE", "REG", 12000)}},
			}, nil
		},
	}

	s := newSession(t, gw)
	require.NoError(t, s.SelectLocation(workflow.PartySender, resolvableLocation(100, "Surabaya")))
	s.Next()
	require.NoError(t, s.SelectLocation(workflow.PartyReceiver, resolvableLocation(200, "Jakarta")))

	s.SetItemName(0, "Book")
	s.SetItemPrice(0, "50000")
	s.SetItemQty(0, "2")
	s.SetPackageWeight("2.5")

	require.NoError(t, s.CheckRates(context.Background()))

	require.Equal(t, "-7.25", got.Origin.Lat)
	require.Equal(t, "112.75", got.Origin.Lng)
	require.Equal(t, 100000.0, got.ItemValue)
	require.Equal(t, 2.5, got.Weight)
	require.Equal(t, 30, got.Limit)
	require.Equal(t, []string{"final_price"}, got.SortBy)
	require.False(t, got.COD)
	require.False(t, got.ForOrder)

	st := s.State()
	require.Equal(t, workflow.StepCourierSelection, st.Step)
	require.Len(t, st.Rates, 1)
	require.Nil(t, st.Selected)
}

func TestSession_CheckRates_ItemValueCountsUnnamedItems(t *testing.T) {
	t.Parallel()

	var got domain.RateRequest
	gw := &fakeGateway{
		costFn: func(_ context.Context, data domain.RateRequest, _ string) (*shipper.Result[shipper.PricingData], error) {
			got = data
			return &shipper.Result[shipper.PricingData]{}, nil
		},
	}

	s := newSession(t, gw)
	require.NoError(t, s.SelectLocation(workflow.PartySender, resolvableLocation(100, "Surabaya")))
	s.Next()
	require.NoError(t, s.SelectLocation(workflow.PartyReceiver, resolvableLocation(200, "Jakarta")))

	// item has a price and quantity but no name yet; the declared value
	// still counts it, only the order payload filters it out
	s.SetItemPrice(0, "50000")
	s.SetItemQty(0, "2")

	require.NoError(t, s.CheckRates(context.Background()))
	require.Equal(t, 100000.0, got.ItemValue)
}

func TestSession_CheckRates_UpstreamError_StateUnchanged(t *testing.T) {
	t.Parallel()

	gw := &fakeGateway{
		costFn: func(_ context.Context, _ domain.RateRequest, _ string) (*shipper.Result[shipper.PricingData], error) {
			return nil, &apperr.Upstream{Status: 422, Message: "weight too large"}
		},
	}

	s := newSession(t, gw)
	require.NoError(t, s.SelectLocation(workflow.PartySender, resolvableLocation(100, "Surabaya")))
	s.Next()
	require.NoError(t, s.SelectLocation(workflow.PartyReceiver, resolvableLocation(200, "Jakarta")))

	err := s.CheckRates(context.Background())
	require.Error(t, err)

	st := s.State()
	require.Equal(t, workflow.StepReceiverDetails, st.Step)
	require.Empty(t, st.Rates)
	require.Equal(t, "weight too large", st.Notice.Message)
}

func TestSession_SelectRate_ReplacesSelection(t *testing.T) {
	t.Parallel()

	s := advanceToCourierSelection(t, &fakeGateway{})

	first := quote("JNE", "REG", 12000)
	second := quote("SiCepat", "BEST", 15000)

	s.SelectRate(first)
	require.True(t, s.State().Selected.Same(first))

	s.SelectRate(second)
	st := s.State()
	require.True(t, st.Selected.Same(second))
	require.Equal(t, workflow.NoticeSuccess, st.Notice.Level)
	require.Equal(t, "Selected SiCepat - BEST", st.Notice.Message)
}

func TestSession_RemoveItem_KeepsAtLeastOne(t *testing.T) {
	t.Parallel()

	s := newSession(t, &fakeGateway{})
	s.SetItemName(0, "Book")
	s.AddItem()
	s.SetItemName(1, "Pen")
	require.Len(t, s.State().Package.Items, 2)

	s.RemoveItem(0)
	st := s.State()
	require.Len(t, st.Package.Items, 1)
	require.Equal(t, "Pen", st.Package.Items[0].Name)

	s.RemoveItem(0)
	require.Len(t, s.State().Package.Items, 1, "the last item row must survive removal")
}

func TestSession_CreateOrder_RequiresSelectedRate(t *testing.T) {
	t.Parallel()

	s := advanceToCourierSelection(t, &fakeGateway{})

	_, err := s.CreateOrder(context.Background())
	var val *apperr.Validation
	require.ErrorAs(t, err, &val)
	require.Equal(t, "Please select a courier first", val.Message)
	require.Equal(t, workflow.StepCourierSelection, s.State().Step)
}

func TestSession_CreateOrder_ValidationOrder(t *testing.T) {
	t.Parallel()

	gw := &fakeGateway{}
	s := advanceToCourierSelection(t, gw)
	s.SelectRate(quote("JNE", "REG", 12000))

	var val *apperr.Validation

	// missing required field reported section by section
	s.SetPartyName(workflow.PartySender, "")
	_, err := s.CreateOrder(context.Background())
	require.ErrorAs(t, err, &val)
	require.Equal(t, "sender name is required", val.Message)
	s.SetPartyName(workflow.PartySender, "Alice")

	// bad phone only reported after required fields pass
	s.SetPartyPhone(workflow.PartyReceiver, "123")
	_, err = s.CreateOrder(context.Background())
	require.ErrorAs(t, err, &val)
	require.Equal(t, "Invalid receiver phone number", val.Message)
	s.SetPartyPhone(workflow.PartyReceiver, "0898765432109")

	// unparseable dimension passes the required check, fails the numeric one
	s.SetPackageWeight("abc")
	_, err = s.CreateOrder(context.Background())
	require.ErrorAs(t, err, &val)
	require.Equal(t, "Invalid package weight", val.Message)
}

func TestSession_CreateOrder_FormatsPayload(t *testing.T) {
	t.Parallel()

	var sent domain.OrderPayload
	gw := &fakeGateway{
		createFn: func(_ context.Context, payload any) (*shipper.Result[domain.Order], error) {
			var ok bool
			sent, ok = payload.(domain.OrderPayload)
			require.True(t, ok)
			return &shipper.Result[domain.Order]{Data: domain.Order{OrderID: "ORD-1"}}, nil
		},
	}

	s := advanceToCourierSelection(t, gw)
	s.SelectRate(quote("JNE", "REG", 12000))

	// two items; the blank one must be filtered out of the payload
	s.SetItemName(0, "Book")
	s.SetItemPrice(0, "50000")
	s.SetItemQty(0, "2")
	s.AddItem()

	order, err := s.CreateOrder(context.Background())
	require.NoError(t, err)
	require.Equal(t, "ORD-1", order.OrderID)

	require.Equal(t, "domestic", sent.Coverage)
	require.Equal(t, "postpay", sent.PaymentType)
	require.Equal(t, 1, sent.ServiceType)
	require.Equal(t, domain.Contact{Name: "Alice", PhoneNumber: "0812345678901"}, sent.Consigner)
	require.Equal(t, domain.Contact{Name: "Bob", PhoneNumber: "0898765432109"}, sent.Consignee)
	require.False(t, sent.Courier.COD)
	require.False(t, sent.Courier.UseInsurance)
	require.Equal(t, int64(100), sent.Origin.AreaID)
	require.Equal(t, "Surabaya, Jawa Timur", sent.Origin.Address)
	require.Equal(t, int64(200), sent.Destination.AreaID)
	require.Equal(t, 2, sent.Package.PackageType)
	require.Equal(t, []domain.Item{{Name: "Book", Price: 50000, Qty: 2}}, sent.Package.Items)
	require.Equal(t, 100000.0, sent.Package.Price)

	st := s.State()
	require.Equal(t, workflow.StepOrderSummary, st.Step)
	require.Len(t, st.Orders, 1)
	require.Equal(t, "Order created successfully!", st.Notice.Message)
}

func TestSession_Reset_KeepsOrderList(t *testing.T) {
	t.Parallel()

	gw := &fakeGateway{
		createFn: func(_ context.Context, _ any) (*shipper.Result[domain.Order], error) {
			return &shipper.Result[domain.Order]{Data: domain.Order{OrderID: "ORD-1"}}, nil
		},
	}

	s := advanceToCourierSelection(t, gw)
	s.SelectRate(quote("JNE", "REG", 12000))
	s.SetItemName(0, "Book")
	s.SetItemPrice(0, "50000")

	_, err := s.CreateOrder(context.Background())
	require.NoError(t, err)

	s.Reset()
	st := s.State()
	require.Equal(t, workflow.StepSenderDetails, st.Step)
	require.Empty(t, st.Sender.Form.Name)
	require.Nil(t, st.Sender.Selected)
	require.Len(t, st.Orders, 1, "resetting the form must not clear created orders")
}

func TestSession_TrackOrder_Idempotent(t *testing.T) {
	t.Parallel()

	record := domain.TrackingRecord{
		Tracking: &domain.TrackingSnapshot{
			ShipperStatus: domain.ShipperStatus{Name: "Picked Up", Description: "Package picked up"},
		},
		Trackings: []domain.TrackingEvent{
			{ShipperStatus: domain.ShipperStatus{Name: "Created", Description: "Order created"}},
		},
	}
	gw := &fakeGateway{
		detailsFn: func(_ context.Context, orderID string) (*shipper.Result[domain.TrackingRecord], error) {
			require.Equal(t, "ORD-1", orderID)
			return &shipper.Result[domain.TrackingRecord]{Data: record}, nil
		},
	}
	s := newSession(t, gw)

	require.NoError(t, s.TrackOrder(context.Background(), "ORD-1"))
	first := s.State().Tracking
	require.Equal(t, "ORD-1", first.OrderID)
	require.Equal(t, "Picked Up", first.Tracking.ShipperStatus.Name)

	require.NoError(t, s.TrackOrder(context.Background(), "ORD-1"))
	second := s.State().Tracking
	require.Equal(t, first, second, "repeated lookups with a stable fixture must match")

	s.CloseTracking()
	require.Nil(t, s.State().Tracking)
}

func TestSession_TrackOrder_ErrorSetsNotice(t *testing.T) {
	t.Parallel()

	gw := &fakeGateway{
		detailsFn: func(_ context.Context, _ string) (*shipper.Result[domain.TrackingRecord], error) {
			return nil, &apperr.Upstream{Status: 404, Message: "order not found"}
		},
	}
	s := newSession(t, gw)

	err := s.TrackOrder(context.Background(), "NOPE")
	require.Error(t, err)
	require.Nil(t, s.State().Tracking)
	require.Equal(t, "order not found", s.State().Notice.Message)
}

func TestSession_DismissNotice(t *testing.T) {
	t.Parallel()

	s := newSession(t, &fakeGateway{})
	require.Error(t, s.SelectLocation(workflow.PartySender, domain.Location{}))
	require.NotNil(t, s.State().Notice)

	s.DismissNotice()
	require.Nil(t, s.State().Notice)
}

func TestSession_StateSnapshot_DoesNotAliasInternalState(t *testing.T) {
	t.Parallel()

	s := newSession(t, &fakeGateway{})
	st := s.State()
	st.Package.Items[0].Name = "mutated"

	require.Equal(t, "", s.State().Package.Items[0].Name)
}

func TestStep_Valid(t *testing.T) {
	t.Parallel()

	require.True(t, workflow.StepSenderDetails.Valid())
	require.True(t, workflow.StepOrderSummary.Valid())
	require.False(t, workflow.Step(0).Valid())
	require.False(t, workflow.Step(5).Valid())
}

func TestSession_CreateOrder_PayloadMarshalShape(t *testing.T) {
	t.Parallel()

	gw := &fakeGateway{
		createFn: func(_ context.Context, payload any) (*shipper.Result[domain.Order], error) {
			raw, err := json.Marshal(payload)
			require.NoError(t, err)
			require.Contains(t, string(raw), `"payment_type":"postpay"`)
			require.Contains(t, string(raw), `"area_id":100`)
			require.Contains(t, string(raw), `"package_type":2`)
			return &shipper.Result[domain.Order]{Data: domain.Order{OrderID: "ORD-2"}}, nil
		},
	}

	s := advanceToCourierSelection(t, gw)
	s.SelectRate(quote("JNE", "REG", 12000))
	s.SetItemName(0, "Book")
	s.SetItemPrice(0, "50000")

	_, err := s.CreateOrder(context.Background())
	require.NoError(t, err)
}
