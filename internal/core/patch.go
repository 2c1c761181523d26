package core

// Patches carry partial updates: a nil field keeps the stored value, and a
// JSON null decodes to nil. Optional strings are cleared with "". Optional
// dates and costs are cleared with the explicit Clear flags.

type RoomPatch struct {
	Number       *string     `json:"number,omitempty"`
	Type         *string     `json:"type,omitempty"`
	MonthlyRent  *Money      `json:"monthlyRent,omitempty"`
	Deposit      *Money      `json:"deposit,omitempty"`
	Status       *RoomStatus `json:"status,omitempty"`
	OccupantName *string     `json:"occupantName,omitempty"`
	Amenities    *[]string   `json:"amenities,omitempty"`
	Floor        *int        `json:"floor,omitempty"`
	Description  *string     `json:"description,omitempty"`
}

func (p RoomPatch) Apply(r Room) Room {
	setIf(&r.Number, p.Number)
	setIf(&r.Type, p.Type)
	setIf(&r.MonthlyRent, p.MonthlyRent)
	setIf(&r.Deposit, p.Deposit)
	setIf(&r.Status, p.Status)
	setIf(&r.OccupantName, p.OccupantName)
	setIf(&r.Floor, p.Floor)
	setIf(&r.Description, p.Description)
	if p.Amenities != nil {
		r.Amenities = NormalizeAmenities(*p.Amenities)
	}
	return r
}

type TenantPatch struct {
	Name             *string       `json:"name,omitempty"`
	Email            *string       `json:"email,omitempty"`
	Phone            *string       `json:"phone,omitempty"`
	RoomNumber       *string       `json:"roomNumber,omitempty"`
	RoomID           *string       `json:"roomId,omitempty"`
	CheckInDate      *Date         `json:"checkInDate,omitempty"`
	MonthlyRent      *Money        `json:"monthlyRent,omitempty"`
	Deposit          *Money        `json:"deposit,omitempty"`
	Status           *TenantStatus `json:"status,omitempty"`
	EmergencyContact *string       `json:"emergencyContact,omitempty"`
	Address          *string       `json:"address,omitempty"`
	Occupation       *string       `json:"occupation,omitempty"`
	IDProofType      *string       `json:"idProofType,omitempty"`
	AvatarRef        *string       `json:"avatarRef,omitempty"`
}

func (p TenantPatch) Apply(t Tenant) Tenant {
	setIf(&t.Name, p.Name)
	setIf(&t.Email, p.Email)
	setIf(&t.Phone, p.Phone)
	setIf(&t.RoomNumber, p.RoomNumber)
	setIf(&t.RoomID, p.RoomID)
	setIf(&t.CheckInDate, p.CheckInDate)
	setIf(&t.MonthlyRent, p.MonthlyRent)
	setIf(&t.Deposit, p.Deposit)
	setIf(&t.Status, p.Status)
	setIf(&t.EmergencyContact, p.EmergencyContact)
	setIf(&t.Address, p.Address)
	setIf(&t.Occupation, p.Occupation)
	setIf(&t.IDProofType, p.IDProofType)
	setIf(&t.AvatarRef, p.AvatarRef)
	return t
}

type PaymentPatch struct {
	TenantName    *string        `json:"tenantName,omitempty"`
	TenantID      *string        `json:"tenantId,omitempty"`
	RoomNumber    *string        `json:"roomNumber,omitempty"`
	Amount        *Money         `json:"amount,omitempty"`
	Type          *PaymentType   `json:"type,omitempty"`
	Status        *PaymentStatus `json:"status,omitempty"`
	DueDate       *Date          `json:"dueDate,omitempty"`
	PaidDate      *Date          `json:"paidDate,omitempty"`
	Method        *string        `json:"method,omitempty"`
	TransactionID *string        `json:"transactionId,omitempty"`
	Notes         *string        `json:"notes,omitempty"`
	ClearPaidDate bool           `json:"clearPaidDate,omitempty"`
}

func (p PaymentPatch) Apply(v Payment) Payment {
	setIf(&v.TenantName, p.TenantName)
	setIf(&v.TenantID, p.TenantID)
	setIf(&v.RoomNumber, p.RoomNumber)
	setIf(&v.Amount, p.Amount)
	setIf(&v.Type, p.Type)
	setIf(&v.Status, p.Status)
	setIf(&v.DueDate, p.DueDate)
	setIf(&v.PaidDate, p.PaidDate)
	setIf(&v.Method, p.Method)
	setIf(&v.TransactionID, p.TransactionID)
	setIf(&v.Notes, p.Notes)
	if p.ClearPaidDate {
		v.PaidDate = Date{}
	}
	return v
}

type ExpensePatch struct {
	Title         *string          `json:"title,omitempty"`
	Category      *ExpenseCategory `json:"category,omitempty"`
	Amount        *Money           `json:"amount,omitempty"`
	Date          *Date            `json:"date,omitempty"`
	Description   *string          `json:"description,omitempty"`
	PaymentMethod *string          `json:"paymentMethod,omitempty"`
	Vendor        *string          `json:"vendor,omitempty"`
}

func (p ExpensePatch) Apply(e Expense) Expense {
	setIf(&e.Title, p.Title)
	setIf(&e.Category, p.Category)
	setIf(&e.Amount, p.Amount)
	setIf(&e.Date, p.Date)
	setIf(&e.Description, p.Description)
	setIf(&e.PaymentMethod, p.PaymentMethod)
	setIf(&e.Vendor, p.Vendor)
	return e
}

type MaintenancePatch struct {
	TenantName         *string          `json:"tenantName,omitempty"`
	TenantID           *string          `json:"tenantId,omitempty"`
	RoomNumber         *string          `json:"roomNumber,omitempty"`
	Title              *string          `json:"title,omitempty"`
	Description        *string          `json:"description,omitempty"`
	Category           *RequestCategory `json:"category,omitempty"`
	Priority           *Priority        `json:"priority,omitempty"`
	Status             *RequestStatus   `json:"status,omitempty"`
	CreatedDate        *Date            `json:"createdDate,omitempty"`
	AssignedTo         *string          `json:"assignedTo,omitempty"`
	CompletedDate      *Date            `json:"completedDate,omitempty"`
	EstimatedCost      *Money           `json:"estimatedCost,omitempty"`
	ActualCost         *Money           `json:"actualCost,omitempty"`
	Notes              *string          `json:"notes,omitempty"`
	ClearEstimatedCost bool             `json:"clearEstimatedCost,omitempty"`
	ClearActualCost    bool             `json:"clearActualCost,omitempty"`
	ClearCompletedDate bool             `json:"clearCompletedDate,omitempty"`
}

func (p MaintenancePatch) Apply(m MaintenanceRequest) MaintenanceRequest {
	setIf(&m.TenantName, p.TenantName)
	setIf(&m.TenantID, p.TenantID)
	setIf(&m.RoomNumber, p.RoomNumber)
	setIf(&m.Title, p.Title)
	setIf(&m.Description, p.Description)
	setIf(&m.Category, p.Category)
	setIf(&m.Priority, p.Priority)
	setIf(&m.Status, p.Status)
	setIf(&m.CreatedDate, p.CreatedDate)
	setIf(&m.AssignedTo, p.AssignedTo)
	setIf(&m.CompletedDate, p.CompletedDate)
	setIf(&m.Notes, p.Notes)
	if p.EstimatedCost != nil {
		v := *p.EstimatedCost
		m.EstimatedCost = &v
	}
	if p.ActualCost != nil {
		v := *p.ActualCost
		m.ActualCost = &v
	}
	if p.ClearEstimatedCost {
		m.EstimatedCost = nil
	}
	if p.ClearActualCost {
		m.ActualCost = nil
	}
	if p.ClearCompletedDate {
		m.CompletedDate = Date{}
	}
	return m
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
