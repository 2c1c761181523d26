package core

import (
	"encoding/json"
	"errors"
	"strings"
	"time"
)

// Entity kinds held by the store.
const (
	KindRoom        Kind = "room"
	KindTenant      Kind = "tenant"
	KindPayment     Kind = "payment"
	KindExpense     Kind = "expense"
	KindMaintenance Kind = "maintenance"
)

const (
	RoomOccupied    RoomStatus = "occupied"
	RoomVacant      RoomStatus = "vacant"
	RoomMaintenance RoomStatus = "maintenance"

	TenantActive   TenantStatus = "active"
	TenantInactive TenantStatus = "inactive"
	TenantPending  TenantStatus = "pending"

	PaymentRent        PaymentType = "rent"
	PaymentDeposit     PaymentType = "deposit"
	PaymentMaintenance PaymentType = "maintenance"
	PaymentElectricity PaymentType = "electricity"
	PaymentOther       PaymentType = "other"

	PaymentPaid    PaymentStatus = "paid"
	PaymentPending PaymentStatus = "pending"
	PaymentOverdue PaymentStatus = "overdue"

	ExpenseMaintenance ExpenseCategory = "maintenance"
	ExpenseUtilities   ExpenseCategory = "utilities"
	ExpenseSupplies    ExpenseCategory = "supplies"
	ExpenseStaff       ExpenseCategory = "staff"
	ExpenseMarketing   ExpenseCategory = "marketing"
	ExpenseOther       ExpenseCategory = "other"

	RequestPlumbing   RequestCategory = "plumbing"
	RequestElectrical RequestCategory = "electrical"
	RequestAC         RequestCategory = "ac"
	RequestFurniture  RequestCategory = "furniture"
	RequestCleaning   RequestCategory = "cleaning"
	RequestOther      RequestCategory = "other"

	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"

	RequestPending    RequestStatus = "pending"
	RequestInProgress RequestStatus = "in-progress"
	RequestCompleted  RequestStatus = "completed"
	RequestCancelled  RequestStatus = "cancelled"
)

const dateLayout = "2006-01-02"

type (
	Kind            string
	RoomStatus      string
	TenantStatus    string
	PaymentType     string
	PaymentStatus   string
	ExpenseCategory string
	RequestCategory string
	Priority        string
	RequestStatus   string

	// Date is a calendar date at UTC midnight. The zero value means "not set".
	Date struct {
		time.Time
	}

	// Money is an amount in minor currency units (paise).
	Money struct {
		Minor int64
	}

	Room struct {
		ID           string     `json:"id"`
		Number       string     `json:"number"`
		Type         string     `json:"type"`
		MonthlyRent  Money      `json:"monthlyRent"`
		Deposit      Money      `json:"deposit"`
		Status       RoomStatus `json:"status"`
		OccupantName string     `json:"occupantName,omitempty"`
		Amenities    []string   `json:"amenities"`
		Floor        int        `json:"floor"`
		Description  string     `json:"description"`
	}

	Tenant struct {
		ID               string       `json:"id"`
		Name             string       `json:"name"`
		Email            string       `json:"email"`
		Phone            string       `json:"phone"`
		RoomNumber       string       `json:"roomNumber"`
		RoomID           string       `json:"roomId,omitempty"` // resolved reference, optional
		CheckInDate      Date         `json:"checkInDate"`
		MonthlyRent      Money        `json:"monthlyRent"`
		Deposit          Money        `json:"deposit"`
		Status           TenantStatus `json:"status"`
		EmergencyContact string       `json:"emergencyContact"`
		Address          string       `json:"address"`
		Occupation       string       `json:"occupation"`
		IDProofType      string       `json:"idProofType"`
		AvatarRef        string       `json:"avatarRef,omitempty"`
	}

	Payment struct {
		ID            string        `json:"id"`
		TenantName    string        `json:"tenantName"`
		TenantID      string        `json:"tenantId,omitempty"`
		RoomNumber    string        `json:"roomNumber"`
		Amount        Money         `json:"amount"`
		Type          PaymentType   `json:"type"`
		Status        PaymentStatus `json:"status"`
		DueDate       Date          `json:"dueDate"`
		PaidDate      Date          `json:"paidDate"`
		Method        string        `json:"method,omitempty"`
		TransactionID string        `json:"transactionId,omitempty"`
		Notes         string        `json:"notes,omitempty"`
	}

	Expense struct {
		ID            string          `json:"id"`
		Title         string          `json:"title"`
		Category      ExpenseCategory `json:"category"`
		Amount        Money           `json:"amount"`
		Date          Date            `json:"date"`
		Description   string          `json:"description"`
		PaymentMethod string          `json:"paymentMethod"`
		Vendor        string          `json:"vendor,omitempty"`
	}

	MaintenanceRequest struct {
		ID            string          `json:"id"`
		TenantName    string          `json:"tenantName"`
		TenantID      string          `json:"tenantId,omitempty"`
		RoomNumber    string          `json:"roomNumber"`
		Title         string          `json:"title"`
		Description   string          `json:"description"`
		Category      RequestCategory `json:"category"`
		Priority      Priority        `json:"priority"`
		Status        RequestStatus   `json:"status"`
		CreatedDate   Date            `json:"createdDate"`
		AssignedTo    string          `json:"assignedTo,omitempty"`
		CompletedDate Date            `json:"completedDate"`
		EstimatedCost *Money          `json:"estimatedCost,omitempty"`
		ActualCost    *Money          `json:"actualCost,omitempty"`
		Notes         string          `json:"notes,omitempty"`
	}
)

var (
	ErrInvalidDay    = errors.New("invalid day")
	ErrInvalidMonth  = errors.New("invalid month")
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidDate   = errors.New("invalid date")
)

// Kinds returns every entity kind in a stable order.
func Kinds() []Kind {
	return []Kind{KindRoom, KindTenant, KindPayment, KindExpense, KindMaintenance}
}

func (k Kind) Valid() bool {
	switch k {
	case KindRoom, KindTenant, KindPayment, KindExpense, KindMaintenance:
		return true
	}
	return false
}

func (s RoomStatus) Valid() bool {
	switch s {
	case RoomOccupied, RoomVacant, RoomMaintenance:
		return true
	}
	return false
}

func (s TenantStatus) Valid() bool {
	switch s {
	case TenantActive, TenantInactive, TenantPending:
		return true
	}
	return false
}

func (t PaymentType) Valid() bool {
	switch t {
	case PaymentRent, PaymentDeposit, PaymentMaintenance, PaymentElectricity, PaymentOther:
		return true
	}
	return false
}

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPaid, PaymentPending, PaymentOverdue:
		return true
	}
	return false
}

func (c ExpenseCategory) Valid() bool {
	for _, v := range ExpenseCategories() {
		if c == v {
			return true
		}
	}
	return false
}

func (c RequestCategory) Valid() bool {
	switch c {
	case RequestPlumbing, RequestElectrical, RequestAC, RequestFurniture, RequestCleaning, RequestOther:
		return true
	}
	return false
}

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

func (s RequestStatus) Valid() bool {
	switch s {
	case RequestPending, RequestInProgress, RequestCompleted, RequestCancelled:
		return true
	}
	return false
}

// ExpenseCategories is the fixed category set, in display order.
func ExpenseCategories() []ExpenseCategory {
	return []ExpenseCategory{
		ExpenseMaintenance, ExpenseUtilities, ExpenseSupplies,
		ExpenseStaff, ExpenseMarketing, ExpenseOther,
	}
}

// PaymentTypes is the fixed payment type set, in display order.
func PaymentTypes() []PaymentType {
	return []PaymentType{PaymentRent, PaymentDeposit, PaymentMaintenance, PaymentElectricity, PaymentOther}
}

func (d Date) Validate() error {
	if d.IsZero() {
		return errors.New("date cannot be zero")
	}
	_, month, day := d.Date()
	if day < 1 || day > 31 {
		return ErrInvalidDay
	}
	if month < 1 || month > 12 {
		return ErrInvalidMonth
	}
	return nil
}

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar date in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, int(m), d)
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

// IsEmpty returns true if the date is zero (optional dates)
func (d Date) IsEmpty() bool {
	return d.IsZero()
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Format(dateLayout))
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return ErrInvalidDate
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Before reports whether d is strictly earlier than other, by calendar day.
func (d Date) Before(other Date) bool {
	return d.Time.Before(other.Time)
}
