package booking

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"salonbook/models"

	"github.com/google/uuid"
)

const (
	dateLayout   = "2006-01-02"
	maxOTPLength = 6
	minNameRunes = 2
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^\d{10,15}$`)
	timePattern  = regexp.MustCompile(`(?i)^(\d{1,2}):(\d{2})\s?(AM|PM)$`)
)

// ParseClock converts an "H:MM AM/PM" string into 24-hour hour and minute.
// 12 AM is midnight and 12 PM is noon.
func ParseClock(s string) (int, int, bool) {
	m := timePattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, 0, false
	}
	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	if hour < 1 || hour > 12 || minute > 59 {
		return 0, 0, false
	}

	pm := strings.EqualFold(m[3], "PM")
	switch {
	case hour == 12 && !pm:
		hour = 0
	case hour != 12 && pm:
		hour += 12
	}
	return hour, minute, true
}

// AppointmentTime combines a YYYY-MM-DD date and a 12-hour clock string into
// an instant in loc.
func AppointmentTime(date, clock string, loc *time.Location) (time.Time, bool) {
	day, err := time.ParseInLocation(dateLayout, strings.TrimSpace(date), loc)
	if err != nil {
		return time.Time{}, false
	}
	hour, minute, ok := ParseClock(clock)
	if !ok {
		return time.Time{}, false
	}
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, loc), true
}

func isValidEmail(s string) bool { return emailPattern.MatchString(s) }
func isValidPhone(s string) bool { return phonePattern.MatchString(s) }

// validatedRequest is a create request that passed every input check.
type validatedRequest struct {
	req      models.CreateBookingRequest
	day      string
	startsAt time.Time
}

// validateCreate runs the input checks in a fixed order and reports the
// first failure only.
func validateCreate(req models.CreateBookingRequest, now time.Time, loc *time.Location) (*validatedRequest, error) {
	req.CustomerName = strings.TrimSpace(req.CustomerName)
	req.PhoneNumber = strings.TrimSpace(req.PhoneNumber)
	req.Email = strings.TrimSpace(req.Email)
	req.Date = strings.TrimSpace(req.Date)
	req.Time = strings.TrimSpace(req.Time)
	req.UserID = strings.TrimSpace(req.UserID)
	req.SalonID = strings.TrimSpace(req.SalonID)

	// 1. presence
	required := []struct{ field, value string }{
		{"customerName", req.CustomerName},
		{"phoneNumber", req.PhoneNumber},
		{"email", req.Email},
		{"date", req.Date},
		{"time", req.Time},
		{"userId", req.UserID},
		{"salonId", req.SalonID},
	}
	for _, r := range required {
		if r.value == "" {
			return nil, newValidationError(CodeMissingField, r.field, r.field+" is required")
		}
	}
	if req.Services == nil {
		return nil, newValidationError(CodeMissingField, "services", "services is required")
	}

	// 2. identifiers
	if _, err := uuid.Parse(req.UserID); err != nil {
		return nil, newValidationError(CodeInvalidIdentifier, "userId", "userId is not a valid identifier")
	}
	if _, err := uuid.Parse(req.SalonID); err != nil {
		return nil, newValidationError(CodeInvalidIdentifier, "salonId", "salonId is not a valid identifier")
	}

	// 3. email
	if !isValidEmail(req.Email) {
		return nil, newValidationError(CodeInvalidEmail, "email", "email address is invalid")
	}

	// 4. phone
	if !isValidPhone(req.PhoneNumber) {
		return nil, newValidationError(CodeInvalidPhone, "phoneNumber", "phone number must be 10 to 15 digits")
	}

	// 5. time
	if _, _, ok := ParseClock(req.Time); !ok {
		return nil, newValidationError(CodeInvalidTimeFormat, "time", "time must look like H:MM AM/PM")
	}

	// 6. date, and the combined moment when the date is today
	day, err := time.ParseInLocation(dateLayout, req.Date, loc)
	if err != nil {
		return nil, newValidationError(CodeInvalidDate, "date", "date must be formatted YYYY-MM-DD")
	}
	today := now.In(loc).Format(dateLayout)
	if day.Format(dateLayout) < today {
		return nil, newValidationError(CodeDateInPast, "date", "date must be today or in the future")
	}
	startsAt, _ := AppointmentTime(req.Date, req.Time, loc)
	if startsAt.Before(now) {
		return nil, newValidationError(CodeDateInPast, "time", "appointment time has already passed")
	}

	// 7. services
	if len(req.Services) == 0 {
		return nil, newValidationError(CodeInvalidService, "services", "at least one service is required")
	}
	for i, svc := range req.Services {
		name := strings.TrimSpace(svc.ServiceName)
		if len([]rune(name)) < minNameRunes {
			return nil, newValidationError(CodeInvalidService, "services", "each service needs a name of at least 2 characters")
		}
		if svc.ServicePrice != nil && *svc.ServicePrice < 0 {
			return nil, newValidationError(CodeInvalidService, "services", "service prices cannot be negative")
		}
		req.Services[i].ServiceName = name
	}

	// 8. optional confirmation code
	req.OTP = strings.TrimSpace(req.OTP)
	if len([]rune(req.OTP)) > maxOTPLength {
		return nil, newValidationError(CodeInvalidOTP, "otp", "otp must be at most 6 characters")
	}

	return &validatedRequest{req: req, day: day.Format(dateLayout), startsAt: startsAt}, nil
}
