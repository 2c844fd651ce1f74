package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	bookingRepo "salonbook/database/repository/booking"
	salonRepo "salonbook/database/repository/salon"
	userRepo "salonbook/database/repository/user"
	"salonbook/models"
	"salonbook/services/payment"
	"salonbook/utils"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson"
)

const ownerID = "owner-1"

var (
	customer = models.Actor{UserID: customerID, Role: models.RoleCustomer}
	owner    = models.Actor{UserID: ownerID, Role: models.RoleSalonOwner}
	admin    = models.Actor{UserID: "admin-1", Role: models.RoleAdmin}
)

type BookingServiceSuite struct {
	suite.Suite
	ctx       context.Context
	repo      *mockRepo
	salons    *mockSalons
	users     *mockUsers
	payments  *mockPayments
	events    *recordingPublisher
	reminders *recordingReminders
	clock     *utils.MockClock
	svc       *DefaultBookingService
}

func TestBookingServiceSuite(t *testing.T) {
	suite.Run(t, new(BookingServiceSuite))
}

func (s *BookingServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.repo = new(mockRepo)
	s.salons = new(mockSalons)
	s.users = new(mockUsers)
	s.payments = new(mockPayments)
	s.events = &recordingPublisher{}
	s.reminders = newRecordingReminders()
	s.clock = utils.NewMockClock(testNow)

	svc, err := NewBookingService(Config{
		Repo:      s.repo,
		Salons:    s.salons,
		Users:     s.users,
		Payments:  s.payments,
		Events:    s.events,
		Reminders: s.reminders,
		Clock:     s.clock,
		Location:  time.UTC,
	})
	s.Require().NoError(err)
	s.svc = svc
}

func (s *BookingServiceSuite) salon() *models.Salon {
	offer := 12.5
	return &models.Salon{
		ID:       salonID,
		OwnerID:  ownerID,
		Name:     "Glow",
		Approved: true,
		Services: []models.SalonService{
			{Name: "Haircut", Price: 15},
			{Name: "Beard Trim", Price: 20, OfferPrice: &offer},
		},
	}
}

func (s *BookingServiceSuite) expectCreateLookups() {
	s.users.On("GetUserByID", s.ctx, customerID).Return(&models.User{ID: customerID, Name: "Ada"}, nil)
	s.salons.On("GetSalon", s.ctx, salonID).Return(s.salon(), nil)
}

func (s *BookingServiceSuite) pending(id string, startsAt time.Time) *models.Booking {
	return &models.Booking{
		ID:       id,
		UserID:   customerID,
		SalonID:  salonID,
		Status:   models.StatusPending,
		Date:     startsAt.Format(dateLayout),
		Time:     startsAt.Format("3:04 PM"),
		StartsAt: startsAt,
	}
}

func (s *BookingServiceSuite) requireKind(err error, kind ErrorKind, code string) {
	be, ok := AsBookingError(err)
	s.Require().True(ok, "expected BookingError, got %v", err)
	s.Equal(kind, be.Kind)
	if code != "" {
		s.Equal(code, be.Code)
	}
}

func (s *BookingServiceSuite) TestCreateSnapshotsCataloguePrices() {
	s.expectCreateLookups()
	s.repo.On("Create", s.ctx, mock.AnythingOfType("*models.Booking")).Return(nil)

	req := validRequest()
	req.Services = []models.RequestedService{
		{ServiceName: "haircut", ServicePrice: price(1)},
		{ServiceName: "Beard Trim"},
	}
	got, err := s.svc.CreateBooking(s.ctx, customer, req)
	s.Require().NoError(err)

	s.NotEmpty(got.ID)
	s.Equal(models.StatusPending, got.Status)
	s.Equal(models.PaymentUnpaid, got.PaymentStatus)
	s.Equal([]models.ServiceLine{
		{ServiceName: "Haircut", ServicePrice: 15},
		{ServiceName: "Beard Trim", ServicePrice: 12.5},
	}, got.Services)
	s.Equal(27.5, got.TotalPrice)
	s.Equal(time.Date(2026, 3, 11, 14, 0, 0, 0, time.UTC), got.StartsAt)
	s.False(got.IsDeleted)

	s.Equal([]models.BookingEventType{models.EventBookingCreated}, s.events.types())
	s.Equal(time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC), s.reminders.scheduled[got.ID])
}

func (s *BookingServiceSuite) TestCreateSkipsReminderInsideLeadTime() {
	s.expectCreateLookups()
	s.repo.On("Create", s.ctx, mock.Anything).Return(nil)

	req := validRequest()
	req.Date = "2026-03-10"
	req.Time = "6:00 PM"
	got, err := s.svc.CreateBooking(s.ctx, customer, req)
	s.Require().NoError(err)
	s.NotContains(s.reminders.scheduled, got.ID)
}

func (s *BookingServiceSuite) TestCreateSideEffectFailuresDoNotFail() {
	s.expectCreateLookups()
	s.repo.On("Create", s.ctx, mock.Anything).Return(nil)
	s.events.err = errors.New("broker down")
	s.reminders.err = errors.New("redis down")

	_, err := s.svc.CreateBooking(s.ctx, customer, validRequest())
	s.NoError(err)
}

func (s *BookingServiceSuite) TestCreateValidationStopsBeforeLookups() {
	req := validRequest()
	req.Email = "broken"
	_, err := s.svc.CreateBooking(s.ctx, customer, req)
	s.requireKind(err, KindValidation, CodeInvalidEmail)
	s.users.AssertNotCalled(s.T(), "GetUserByID", mock.Anything, mock.Anything)
	s.repo.AssertNotCalled(s.T(), "Create", mock.Anything, mock.Anything)
}

func (s *BookingServiceSuite) TestCreateForOtherCustomerForbidden() {
	req := validRequest()
	req.UserID = "0c8b8a3e-0000-4000-8000-000000000001"
	_, err := s.svc.CreateBooking(s.ctx, customer, req)
	s.requireKind(err, KindForbidden, CodeForbidden)
}

func (s *BookingServiceSuite) TestCreateUnknownUser() {
	s.users.On("GetUserByID", s.ctx, customerID).Return(nil, userRepo.ErrNotFound)
	_, err := s.svc.CreateBooking(s.ctx, customer, validRequest())
	s.requireKind(err, KindNotFound, CodeUserNotFound)
	s.ErrorIs(err, ErrNotFound)
}

func (s *BookingServiceSuite) TestCreateUnapprovedSalonIsNotFound() {
	s.users.On("GetUserByID", s.ctx, customerID).Return(&models.User{ID: customerID}, nil)
	salon := s.salon()
	salon.Approved = false
	s.salons.On("GetSalon", s.ctx, salonID).Return(salon, nil)

	_, err := s.svc.CreateBooking(s.ctx, customer, validRequest())
	s.requireKind(err, KindNotFound, CodeSalonNotFound)
}

func (s *BookingServiceSuite) TestCreateMissingSalon() {
	s.users.On("GetUserByID", s.ctx, customerID).Return(&models.User{ID: customerID}, nil)
	s.salons.On("GetSalon", s.ctx, salonID).Return(nil, salonRepo.ErrNotFound)

	_, err := s.svc.CreateBooking(s.ctx, customer, validRequest())
	s.requireKind(err, KindNotFound, CodeSalonNotFound)
}

func (s *BookingServiceSuite) TestCreateServiceNotOffered() {
	s.expectCreateLookups()
	req := validRequest()
	req.Services = []models.RequestedService{{ServiceName: "Massage"}}

	_, err := s.svc.CreateBooking(s.ctx, customer, req)
	s.requireKind(err, KindValidation, CodeInvalidService)
}

func (s *BookingServiceSuite) TestCreateStoreFailureIsDependency() {
	s.expectCreateLookups()
	s.repo.On("Create", s.ctx, mock.Anything).Return(errors.New("connection reset"))

	_, err := s.svc.CreateBooking(s.ctx, customer, validRequest())
	s.requireKind(err, KindDependency, CodeDependency)
	s.ErrorIs(err, ErrDependency)
	s.Empty(s.events.types())
}

func (s *BookingServiceSuite) TestCreateDuplicateTransaction() {
	s.expectCreateLookups()
	s.payments.On("Confirm", s.ctx, "pi_1").Return(&models.PaymentConfirmation{TransactionID: "pi_1", Succeeded: true, AmountMinor: 1500, Currency: "usd"}, nil)
	s.repo.On("Create", s.ctx, mock.Anything).Return(bookingRepo.ErrDuplicate)

	req := validRequest()
	req.TransactionID = "pi_1"
	_, err := s.svc.CreateBooking(s.ctx, customer, req)
	s.requireKind(err, KindConflict, CodeDuplicate)
}

func (s *BookingServiceSuite) TestCreatePaymentChecks() {
	cases := []struct {
		name string
		conf *models.PaymentConfirmation
		err  error
		kind ErrorKind
		code string
	}{
		{"paid", &models.PaymentConfirmation{Succeeded: true, AmountMinor: 1500, Currency: "usd"}, nil, "", ""},
		{"paid upper case currency", &models.PaymentConfirmation{Succeeded: true, AmountMinor: 1500, Currency: "USD"}, nil, "", ""},
		{"not succeeded", &models.PaymentConfirmation{Succeeded: false, AmountMinor: 1500, Currency: "usd"}, nil, KindValidation, CodePaymentNotConfirmed},
		{"short amount", &models.PaymentConfirmation{Succeeded: true, AmountMinor: 1499, Currency: "usd"}, nil, KindValidation, CodePaymentNotConfirmed},
		{"other currency", &models.PaymentConfirmation{Succeeded: true, AmountMinor: 150000, Currency: "kes"}, nil, KindValidation, CodePaymentNotConfirmed},
		{"unknown", nil, payment.ErrUnknownTransaction, KindValidation, CodePaymentNotConfirmed},
		{"gateway down", nil, payment.ErrGatewayUnavailable, KindDependency, CodeDependency},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			s.SetupTest()
			s.expectCreateLookups()
			s.repo.On("Create", s.ctx, mock.Anything).Return(nil)
			s.payments.On("Confirm", s.ctx, "pi_1").Return(tc.conf, tc.err)

			req := validRequest()
			req.TransactionID = "pi_1"
			got, err := s.svc.CreateBooking(s.ctx, customer, req)
			if tc.kind == "" {
				s.Require().NoError(err)
				s.Equal(models.PaymentPaid, got.PaymentStatus)
				s.Equal("pi_1", got.TransactionID)
				return
			}
			s.requireKind(err, tc.kind, tc.code)
			s.repo.AssertNotCalled(s.T(), "Create", mock.Anything, mock.Anything)
		})
	}
}

func (s *BookingServiceSuite) TestCreateRequiresPaymentWhenConfigured() {
	s.svc.requirePayment = true
	s.expectCreateLookups()

	_, err := s.svc.CreateBooking(s.ctx, customer, validRequest())
	s.requireKind(err, KindValidation, CodePaymentRequired)
}

func (s *BookingServiceSuite) TestCancelOutsideWindow() {
	b := s.pending("b1", testNow.Add(5*time.Hour))
	canceled := *b
	canceled.Status = models.StatusCanceled
	s.repo.On("GetByID", s.ctx, "b1").Return(b, nil)
	s.repo.On("Transition", s.ctx, "b1", models.StatusPending, models.StatusCanceled, mock.MatchedBy(func(set bson.M) bool {
		return set["canceledBy"] == customerID
	})).Return(&canceled, nil)

	got, err := s.svc.CancelBooking(s.ctx, customer, "b1")
	s.Require().NoError(err)
	s.True(got.IsCanceled())
	s.Equal([]models.BookingEventType{models.EventBookingCanceled}, s.events.types())
	s.Equal([]string{"b1"}, s.reminders.canceled)
}

func (s *BookingServiceSuite) TestCancelExactlyAtWindowAllowed() {
	b := s.pending("b1", testNow.Add(4*time.Hour))
	s.repo.On("GetByID", s.ctx, "b1").Return(b, nil)
	s.repo.On("Transition", s.ctx, "b1", models.StatusPending, models.StatusCanceled, mock.Anything).
		Return(&models.Booking{ID: "b1", Status: models.StatusCanceled}, nil)

	_, err := s.svc.CancelBooking(s.ctx, customer, "b1")
	s.NoError(err)
}

func (s *BookingServiceSuite) TestCancelOneMinuteEitherSideOfWindow() {
	s.repo.On("GetByID", s.ctx, "early").Return(s.pending("early", testNow.Add(4*time.Hour+time.Minute)), nil)
	s.repo.On("GetByID", s.ctx, "late").Return(s.pending("late", testNow.Add(3*time.Hour+59*time.Minute)), nil)
	s.repo.On("Transition", s.ctx, "early", models.StatusPending, models.StatusCanceled, mock.Anything).
		Return(&models.Booking{ID: "early", Status: models.StatusCanceled}, nil)

	got, err := s.svc.CancelBooking(s.ctx, customer, "early")
	s.Require().NoError(err)
	s.True(got.IsCanceled())

	_, err = s.svc.CancelBooking(s.ctx, customer, "late")
	s.requireKind(err, KindCancellationWindow, CodeCancellationWindow)
	s.repo.AssertNotCalled(s.T(), "Transition", s.ctx, "late", mock.Anything, mock.Anything, mock.Anything)
}

func (s *BookingServiceSuite) TestCancelInsideWindowRejectedForEveryone() {
	b := s.pending("b1", testNow.Add(3*time.Hour))
	s.repo.On("GetByID", s.ctx, "b1").Return(b, nil)

	for _, actor := range []models.Actor{customer, admin} {
		_, err := s.svc.CancelBooking(s.ctx, actor, "b1")
		s.requireKind(err, KindCancellationWindow, CodeCancellationWindow)
		s.ErrorIs(err, ErrCancellationWindow)
	}
	s.repo.AssertNotCalled(s.T(), "Transition", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	s.Empty(s.events.types())
}

func (s *BookingServiceSuite) TestCancelWindowFromStoredClockStrings() {
	// no stored instant; 12:30 PM is three and a half hours away
	b := &models.Booking{ID: "b1", UserID: customerID, SalonID: salonID, Status: models.StatusPending, Date: "2026-03-10", Time: "12:30 PM"}
	s.repo.On("GetByID", s.ctx, "b1").Return(b, nil)

	_, err := s.svc.CancelBooking(s.ctx, customer, "b1")
	s.requireKind(err, KindCancellationWindow, "")
}

func (s *BookingServiceSuite) TestCancelTerminalIsConflict() {
	for _, status := range []models.BookingStatus{models.StatusCanceled, models.StatusCompleted} {
		s.SetupTest()
		b := s.pending("b1", testNow.Add(48*time.Hour))
		b.Status = status
		s.repo.On("GetByID", s.ctx, "b1").Return(b, nil)

		_, err := s.svc.CancelBooking(s.ctx, customer, "b1")
		s.requireKind(err, KindConflict, CodeInvalidTransition)
	}
}

func (s *BookingServiceSuite) TestCancelByUnrelatedCustomerForbidden() {
	s.repo.On("GetByID", s.ctx, "b1").Return(s.pending("b1", testNow.Add(48*time.Hour)), nil)

	_, err := s.svc.CancelBooking(s.ctx, models.Actor{UserID: "someone-else", Role: models.RoleCustomer}, "b1")
	s.requireKind(err, KindForbidden, CodeForbidden)
}

func (s *BookingServiceSuite) TestCancelBySalonOwner() {
	s.repo.On("GetByID", s.ctx, "b1").Return(s.pending("b1", testNow.Add(48*time.Hour)), nil)
	s.salons.On("OwnedSalonIDs", s.ctx, ownerID).Return([]string{salonID}, nil)
	s.repo.On("Transition", s.ctx, "b1", models.StatusPending, models.StatusCanceled, mock.Anything).
		Return(&models.Booking{ID: "b1", Status: models.StatusCanceled}, nil)

	_, err := s.svc.CancelBooking(s.ctx, owner, "b1")
	s.NoError(err)
}

func (s *BookingServiceSuite) TestCancelLostRaceIsConflict() {
	s.repo.On("GetByID", s.ctx, "b1").Return(s.pending("b1", testNow.Add(48*time.Hour)), nil)
	s.repo.On("Transition", s.ctx, "b1", models.StatusPending, models.StatusCanceled, mock.Anything).
		Return(nil, bookingRepo.ErrStatusConflict)

	_, err := s.svc.CancelBooking(s.ctx, customer, "b1")
	s.requireKind(err, KindConflict, CodeConcurrentUpdate)
	s.Empty(s.events.types())
}

func (s *BookingServiceSuite) TestCancelDeletedIsNotFound() {
	b := s.pending("b1", testNow.Add(48*time.Hour))
	b.IsDeleted = true
	s.repo.On("GetByID", s.ctx, "b1").Return(b, nil)

	_, err := s.svc.CancelBooking(s.ctx, admin, "b1")
	s.requireKind(err, KindNotFound, CodeBookingNotFound)
}

func (s *BookingServiceSuite) TestCancelMissing() {
	s.repo.On("GetByID", s.ctx, "nope").Return(nil, bookingRepo.ErrNotFound)

	_, err := s.svc.CancelBooking(s.ctx, customer, "nope")
	s.requireKind(err, KindNotFound, CodeBookingNotFound)
}

func (s *BookingServiceSuite) TestCompleteBySalonOwnerIgnoresWindow() {
	s.repo.On("GetByID", s.ctx, "b1").Return(s.pending("b1", testNow.Add(time.Hour)), nil)
	s.salons.On("OwnedSalonIDs", s.ctx, ownerID).Return([]string{salonID}, nil)
	s.repo.On("Transition", s.ctx, "b1", models.StatusPending, models.StatusCompleted, mock.Anything).
		Return(&models.Booking{ID: "b1", Status: models.StatusCompleted}, nil)

	got, err := s.svc.CompleteBooking(s.ctx, owner, "b1")
	s.Require().NoError(err)
	s.True(got.IsCompleted())
	s.Equal([]models.BookingEventType{models.EventBookingCompleted}, s.events.types())
	s.Equal([]string{"b1"}, s.reminders.canceled)
}

func (s *BookingServiceSuite) TestCompleteByCustomerForbidden() {
	s.repo.On("GetByID", s.ctx, "b1").Return(s.pending("b1", testNow.Add(time.Hour)), nil)

	_, err := s.svc.CompleteBooking(s.ctx, customer, "b1")
	s.requireKind(err, KindForbidden, "")
}

func (s *BookingServiceSuite) TestCompleteByOwnerOfAnotherSalonForbidden() {
	s.repo.On("GetByID", s.ctx, "b1").Return(s.pending("b1", testNow.Add(time.Hour)), nil)
	s.salons.On("OwnedSalonIDs", s.ctx, ownerID).Return([]string{"other-salon"}, nil)

	_, err := s.svc.CompleteBooking(s.ctx, owner, "b1")
	s.requireKind(err, KindForbidden, "")
}

func (s *BookingServiceSuite) TestCompleteCanceledIsConflict() {
	b := s.pending("b1", testNow.Add(time.Hour))
	b.Status = models.StatusCanceled
	s.repo.On("GetByID", s.ctx, "b1").Return(b, nil)

	_, err := s.svc.CompleteBooking(s.ctx, admin, "b1")
	s.requireKind(err, KindConflict, CodeInvalidTransition)
}

func (s *BookingServiceSuite) TestListScopesCustomer() {
	want := models.BookingFilter{
		UserID: customerID,
		Range:  models.RangeUpcoming,
		Today:  "2026-03-10",
	}
	s.repo.On("List", s.ctx, want, models.Page{Page: 1, PageSize: 10}).
		Return([]models.Booking{{ID: "b1"}}, int64(1), nil)

	got, err := s.svc.ListBookings(s.ctx, customer, models.BookingFilter{
		UserID:         "somebody-else",
		Range:          models.RangeUpcoming,
		IncludeDeleted: true,
	}, models.Page{})
	s.Require().NoError(err)
	s.Equal(int64(1), got.Total)
	s.Len(got.Items, 1)
}

func (s *BookingServiceSuite) TestListScopesSalonOwner() {
	s.salons.On("OwnedSalonIDs", s.ctx, ownerID).Return(nil, nil)
	want := models.BookingFilter{SalonIDs: []string{}, Status: models.FilterActive, Today: "2026-03-10"}
	s.repo.On("List", s.ctx, want, models.Page{Page: 2, PageSize: 100}).Return(nil, int64(0), nil)

	got, err := s.svc.ListBookings(s.ctx, owner, models.BookingFilter{Status: models.FilterActive}, models.Page{Page: 2, PageSize: 1000})
	s.Require().NoError(err)
	s.NotNil(got.Items)
	s.Equal(100, got.PageSize)
}

func (s *BookingServiceSuite) TestListAdminMayIncludeDeleted() {
	want := models.BookingFilter{SalonID: salonID, IncludeDeleted: true, Today: "2026-03-10"}
	s.repo.On("List", s.ctx, want, models.Page{Page: 1, PageSize: 10}).Return([]models.Booking{}, int64(0), nil)

	_, err := s.svc.ListBookings(s.ctx, admin, models.BookingFilter{SalonID: salonID, IncludeDeleted: true}, models.Page{})
	s.NoError(err)
}

func (s *BookingServiceSuite) TestListRejectsUnknownFilterValues() {
	_, err := s.svc.ListBookings(s.ctx, admin, models.BookingFilter{Range: "tomorrow"}, models.Page{})
	s.requireKind(err, KindValidation, CodeInvalidFilter)

	_, err = s.svc.ListBookings(s.ctx, admin, models.BookingFilter{Status: "archived"}, models.Page{})
	s.requireKind(err, KindValidation, CodeInvalidFilter)
}

func (s *BookingServiceSuite) TestGetExpandsRelations() {
	s.repo.On("GetByID", s.ctx, "b1").Return(s.pending("b1", testNow.Add(time.Hour)), nil)
	s.users.On("GetUserByID", s.ctx, customerID).Return(&models.User{ID: customerID, Name: "Ada", Email: "ada@example.com"}, nil)
	s.salons.On("GetSalon", s.ctx, salonID).Return(s.salon(), nil)

	got, err := s.svc.GetBooking(s.ctx, customer, "b1", true)
	s.Require().NoError(err)
	s.Require().NotNil(got.User)
	s.Require().NotNil(got.Salon)
	s.Equal("Ada", got.User.Name)
	s.Equal("Glow", got.Salon.Name)
}

func (s *BookingServiceSuite) TestGetDeletedHiddenFromNonAdmins() {
	b := s.pending("b1", testNow.Add(time.Hour))
	b.IsDeleted = true
	s.repo.On("GetByID", s.ctx, "b1").Return(b, nil)

	_, err := s.svc.GetBooking(s.ctx, customer, "b1", false)
	s.requireKind(err, KindNotFound, "")

	got, err := s.svc.GetBooking(s.ctx, admin, "b1", false)
	s.Require().NoError(err)
	s.True(got.Booking.IsDeleted)
	s.Nil(got.User)
}

func (s *BookingServiceSuite) TestUpdateDetailsAllowList() {
	_, err := s.svc.UpdateBookingDetails(s.ctx, admin, "b1", map[string]any{"status": "completed"})
	s.requireKind(err, KindValidation, CodeFieldNotEditable)

	_, err = s.svc.UpdateBookingDetails(s.ctx, admin, "b1", map[string]any{"totalPrice": 0})
	s.requireKind(err, KindValidation, CodeFieldNotEditable)

	_, err = s.svc.UpdateBookingDetails(s.ctx, admin, "b1", map[string]any{"email": "bad"})
	s.requireKind(err, KindValidation, CodeInvalidEmail)

	_, err = s.svc.UpdateBookingDetails(s.ctx, customer, "b1", map[string]any{"email": "a@b.co"})
	s.requireKind(err, KindForbidden, "")

	s.repo.AssertNotCalled(s.T(), "UpdateFields", mock.Anything, mock.Anything, mock.Anything)
}

func (s *BookingServiceSuite) TestUpdateDetailsPatches() {
	s.repo.On("GetByID", s.ctx, "b1").Return(s.pending("b1", testNow.Add(time.Hour)), nil)
	s.repo.On("UpdateFields", s.ctx, "b1", bson.M{"email": "new@example.com", "customerName": "Ada L"}).
		Return(&models.Booking{ID: "b1", Email: "new@example.com", CustomerName: "Ada L"}, nil)

	got, err := s.svc.UpdateBookingDetails(s.ctx, admin, "b1", map[string]any{
		"email":        " new@example.com ",
		"customerName": "Ada L",
	})
	s.Require().NoError(err)
	s.Equal("new@example.com", got.Email)
}

func (s *BookingServiceSuite) TestSoftDelete() {
	_, err := s.svc.SoftDeleteBooking(s.ctx, customer, "b1")
	s.requireKind(err, KindForbidden, "")

	completed := s.pending("b1", testNow.Add(-time.Hour))
	completed.Status = models.StatusCompleted
	deleted := *completed
	deleted.IsDeleted = true
	s.repo.On("GetByID", s.ctx, "b1").Return(completed, nil)
	s.repo.On("SetDeleted", s.ctx, "b1", true).Return(&deleted, nil)

	got, err := s.svc.SoftDeleteBooking(s.ctx, admin, "b1")
	s.Require().NoError(err)
	s.True(got.IsDeleted)
	s.Equal(models.StatusCompleted, got.Status)
	s.Equal([]models.BookingEventType{models.EventBookingDeleted}, s.events.types())
}

func (s *BookingServiceSuite) TestPurge() {
	s.repo.On("Delete", s.ctx, "b1").Return(nil)
	s.repo.On("Delete", s.ctx, "b2").Return(bookingRepo.ErrNotFound)

	s.NoError(s.svc.PurgeBooking(s.ctx, admin, "b1"))
	s.requireKind(s.svc.PurgeBooking(s.ctx, admin, "b2"), KindNotFound, "")
	s.requireKind(s.svc.PurgeBooking(s.ctx, owner, "b1"), KindForbidden, "")
}

func (s *BookingServiceSuite) TestQuoteAndIntent() {
	s.salons.On("GetSalon", s.ctx, salonID).Return(s.salon(), nil)
	s.payments.On("CreateIntent", s.ctx, 27.5, map[string]string{"salonId": salonID, "userId": customerID}).
		Return(&models.PaymentIntent{TransactionID: "pi_9", ClientSecret: "secret", Amount: 27.5, Currency: "usd"}, nil)

	quote, err := s.svc.QuoteBooking(s.ctx, salonID, []string{"Haircut", "beard trim"})
	s.Require().NoError(err)
	s.Equal(27.5, quote.Total)
	s.Equal("usd", quote.Currency)

	intent, err := s.svc.CreatePaymentIntent(s.ctx, customer, models.QuoteRequest{SalonID: salonID, Services: []string{"Haircut", "Beard Trim"}})
	s.Require().NoError(err)
	s.Equal("pi_9", intent.TransactionID)
}

func (s *BookingServiceSuite) TestRescheduleReminders() {
	filter := models.BookingFilter{Range: models.RangeUpcoming, Status: models.FilterActive, Today: "2026-03-10"}
	s.repo.On("Iterate", s.ctx, filter).Return([]models.Booking{
		*s.pending("b1", testNow.Add(72*time.Hour)),
		*s.pending("b2", testNow.Add(2*time.Hour)),
	}, nil)

	n, err := s.svc.RescheduleReminders(s.ctx)
	s.Require().NoError(err)
	s.Equal(2, n)
	s.Contains(s.reminders.scheduled, "b1")
	s.NotContains(s.reminders.scheduled, "b2")
}

func TestNewBookingServiceRequiresCollaborators(t *testing.T) {
	_, err := NewBookingService(Config{})
	if err == nil {
		t.Fatal("expected an error without a repository")
	}
}
