package services

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"

	"reservas/internal/domain"
	"reservas/internal/repositories"
)

func newReservationService(t *testing.T) (ReservationService, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	svc := ReservationService{
		ReservationRepo: repositories.ReservationRepository{DB: db},
		TripRepo:        repositories.TripRepository{DB: db},
		Limit:           7,
	}
	return svc, mock, func() { db.Close() }
}

func countRows(n int) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"COUNT(*)"}).AddRow(n)
}

func expectTripExists(mock sqlmock.Sqlmock) {
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM trips").
		WillReturnRows(countRows(1))
}

func validInput() ReservationInput {
	return ReservationInput{
		HolderName:  "Ana",
		HolderEmail: "ana@example.com",
		Date:        "2025-09-01",
		TripID:      1,
	}
}

func TestCreateReservation_CapacityExceeded(t *testing.T) {
	svc, mock, done := newReservationService(t)
	defer done()

	expectTripExists(mock)
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM reservations WHERE user_id").
		WillReturnRows(countRows(7))

	_, err := svc.Create(domain.Identity{ID: 10, Role: domain.RoleUser}, validInput())
	if !errors.Is(err, domain.ErrCapacityExceeded) {
		t.Fatalf("expected ErrCapacityExceeded, got %v", err)
	}

	// No INSERT may have been attempted.
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateReservation_DuplicateTripDateWinsOverDuplicateDate(t *testing.T) {
	svc, mock, done := newReservationService(t)
	defer done()

	expectTripExists(mock)
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM reservations WHERE user_id").
		WillReturnRows(countRows(2))
	// Same trip, same date: the more specific message fires.
	mock.ExpectQuery("trip_id = \\? AND trip_date").
		WillReturnRows(countRows(1))

	_, err := svc.Create(domain.Identity{ID: 10, Role: domain.RoleUser}, validInput())
	if !errors.Is(err, domain.ErrDuplicateTripDate) {
		t.Fatalf("expected ErrDuplicateTripDate, got %v", err)
	}
}

func TestCreateReservation_DuplicateDate(t *testing.T) {
	svc, mock, done := newReservationService(t)
	defer done()

	expectTripExists(mock)
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM reservations WHERE user_id").
		WillReturnRows(countRows(2))
	mock.ExpectQuery("trip_id = \\? AND trip_date").
		WillReturnRows(countRows(0))
	mock.ExpectQuery("trip_date = \\? AND id != \\?").
		WillReturnRows(countRows(1))

	_, err := svc.Create(domain.Identity{ID: 10, Role: domain.RoleUser}, validInput())
	if !errors.Is(err, domain.ErrDuplicateDate) {
		t.Fatalf("expected ErrDuplicateDate, got %v", err)
	}
}

func TestCreateReservation_Success(t *testing.T) {
	svc, mock, done := newReservationService(t)
	defer done()

	expectTripExists(mock)
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM reservations WHERE user_id").
		WillReturnRows(countRows(0))
	mock.ExpectQuery("trip_id = \\? AND trip_date").
		WillReturnRows(countRows(0))
	mock.ExpectQuery("trip_date = \\? AND id != \\?").
		WillReturnRows(countRows(0))
	mock.ExpectExec("INSERT INTO reservations").
		WillReturnResult(sqlmock.NewResult(42, 1))

	rv, err := svc.Create(domain.Identity{ID: 10, Role: domain.RoleUser}, validInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rv.ID != 42 || rv.UserID != 10 {
		t.Fatalf("unexpected reservation: %+v", rv)
	}
}

func TestCreateReservation_AnonymousRejected(t *testing.T) {
	svc, _, done := newReservationService(t)
	defer done()

	_, err := svc.Create(domain.Anonymous(), validInput())
	if !domain.IsUnauthorized(err) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestCreateReservation_RaceLostMapsToDuplicateDate(t *testing.T) {
	svc, mock, done := newReservationService(t)
	defer done()

	expectTripExists(mock)
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM reservations WHERE user_id").
		WillReturnRows(countRows(0))
	mock.ExpectQuery("trip_id = \\? AND trip_date").
		WillReturnRows(countRows(0))
	mock.ExpectQuery("trip_date = \\? AND id != \\?").
		WillReturnRows(countRows(0))
	// A concurrent insert won the race: the unique key fires.
	mock.ExpectExec("INSERT INTO reservations").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})

	_, err := svc.Create(domain.Identity{ID: 10, Role: domain.RoleUser}, validInput())
	if !errors.Is(err, domain.ErrDuplicateDate) {
		t.Fatalf("expected ErrDuplicateDate, got %v", err)
	}
}

func reservationRows(id, tripID, userID int64, date string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "holder_name", "holder_email", "trip_date", "message",
		"trip_id", "user_id", "trip_name", "created_at",
	}).AddRow(id, "Ana", "ana@example.com", date, "", tripID, userID, "Patagonia", "2025-08-01 10:00:00")
}

func expectGetReservation(mock sqlmock.Sqlmock, id, tripID, userID int64, date string) {
	mock.ExpectQuery("FROM reservations r").
		WillReturnRows(reservationRows(id, tripID, userID, date))
}

func TestUpdateReservation_SelfExclusionAllowsOwnDate(t *testing.T) {
	svc, mock, done := newReservationService(t)
	defer done()

	expectGetReservation(mock, 5, 1, 10, "2025-09-01")
	expectTripExists(mock)
	// Both duplicate lookups exclude id=5, so the row's own (trip, date)
	// does not count against it.
	mock.ExpectQuery("trip_id = \\? AND trip_date = \\? AND id != \\?").
		WithArgs(int64(10), int64(1), "2025-09-01", int64(5)).
		WillReturnRows(countRows(0))
	mock.ExpectQuery("trip_date = \\? AND id != \\?").
		WithArgs(int64(10), "2025-09-01", int64(5)).
		WillReturnRows(countRows(0))
	mock.ExpectExec("UPDATE reservations").
		WillReturnResult(sqlmock.NewResult(0, 1))

	_, err := svc.Update(domain.Identity{ID: 10, Role: domain.RoleUser}, 5, validInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdateReservation_NonOwnerForbidden(t *testing.T) {
	svc, mock, done := newReservationService(t)
	defer done()

	expectGetReservation(mock, 5, 1, 10, "2025-09-01")

	_, err := svc.Update(domain.Identity{ID: 99, Role: domain.RoleUser}, 5, validInput())
	if !domain.IsForbidden(err) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestUpdateReservation_AdminMayEditAnyones(t *testing.T) {
	svc, mock, done := newReservationService(t)
	defer done()

	expectGetReservation(mock, 5, 1, 10, "2025-09-01")
	expectTripExists(mock)
	mock.ExpectQuery("trip_id = \\? AND trip_date").
		WillReturnRows(countRows(0))
	mock.ExpectQuery("trip_date = \\? AND id != \\?").
		WillReturnRows(countRows(0))
	mock.ExpectExec("UPDATE reservations").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if _, err := svc.Update(domain.Identity{ID: 99, Role: domain.RoleAdmin}, 5, validInput()); err != nil {
		t.Fatalf("admin edit should succeed, got %v", err)
	}
}

func TestDeleteReservation_OwnerAndAdminOnly(t *testing.T) {
	svc, mock, done := newReservationService(t)
	defer done()

	expectGetReservation(mock, 5, 1, 10, "2025-09-01")
	err := svc.Delete(domain.Identity{ID: 99, Role: domain.RoleUser}, 5)
	if !domain.IsForbidden(err) {
		t.Fatalf("expected forbidden for non-owner, got %v", err)
	}

	expectGetReservation(mock, 5, 1, 10, "2025-09-01")
	mock.ExpectExec("DELETE FROM reservations").
		WillReturnResult(sqlmock.NewResult(0, 1))
	if err := svc.Delete(domain.Identity{ID: 99, Role: domain.RoleAdmin}, 5); err != nil {
		t.Fatalf("admin delete should succeed, got %v", err)
	}
}

func TestCreateReservation_ValidationFailures(t *testing.T) {
	svc, _, done := newReservationService(t)
	defer done()

	cases := []ReservationInput{
		{HolderEmail: "a@b.com", Date: "2025-09-01", TripID: 1},       // no name
		{HolderName: "Ana", Date: "2025-09-01", TripID: 1},            // no email
		{HolderName: "Ana", HolderEmail: "a@b.com", TripID: 1},        // no date
		{HolderName: "Ana", HolderEmail: "a@b.com", Date: "01/09/25", TripID: 1},
		{HolderName: "Ana", HolderEmail: "a@b.com", Date: "2025-09-01"}, // no trip
	}
	for i, in := range cases {
		if _, err := svc.Create(domain.Identity{ID: 1, Role: domain.RoleUser}, in); !domain.IsValidation(err) {
			t.Fatalf("case %d: expected validation error, got %v", i, err)
		}
	}
}

func TestCreateReservation_UnknownTrip(t *testing.T) {
	svc, mock, done := newReservationService(t)
	defer done()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM trips").
		WillReturnRows(countRows(0))

	_, err := svc.Create(domain.Identity{ID: 1, Role: domain.RoleUser}, validInput())
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}
