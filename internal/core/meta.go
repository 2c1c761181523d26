package core

// EnumMeta is the display metadata for one enumerated value. It is the single
// table presentation code reads instead of keeping its own colour and icon maps.
type EnumMeta struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

// Metadata groups.
const (
	MetaRoomStatus      = "room.status"
	MetaTenantStatus    = "tenant.status"
	MetaPaymentType     = "payment.type"
	MetaPaymentStatus   = "payment.status"
	MetaExpenseCategory = "expense.category"
	MetaRequestCategory = "maintenance.category"
	MetaPriority        = "maintenance.priority"
	MetaRequestStatus   = "maintenance.status"
	MetaAmenity         = "room.amenity"
)

var metadata = map[string][]EnumMeta{
	MetaRoomStatus: {
		{string(RoomOccupied), "Occupied", "#3b82f6", "users"},
		{string(RoomVacant), "Vacant", "#10b981", "bed"},
		{string(RoomMaintenance), "Maintenance", "#f59e0b", "wrench"},
	},
	MetaTenantStatus: {
		{string(TenantActive), "Active", "#10b981", "user-check"},
		{string(TenantInactive), "Inactive", "#6b7280", "user-x"},
		{string(TenantPending), "Pending", "#f59e0b", "user-clock"},
	},
	MetaPaymentType: {
		{string(PaymentRent), "Rent", "#3b82f6", "home"},
		{string(PaymentDeposit), "Deposit", "#8b5cf6", "shield"},
		{string(PaymentMaintenance), "Maintenance", "#f59e0b", "wrench"},
		{string(PaymentElectricity), "Electricity", "#ef4444", "zap"},
		{string(PaymentOther), "Other", "#6b7280", "receipt"},
	},
	MetaPaymentStatus: {
		{string(PaymentPaid), "Paid", "#10b981", "check-circle"},
		{string(PaymentPending), "Pending", "#eab308", "clock"},
		{string(PaymentOverdue), "Overdue", "#ef4444", "alert-circle"},
	},
	MetaExpenseCategory: {
		{string(ExpenseMaintenance), "Maintenance", "#3b82f6", "wrench"},
		{string(ExpenseUtilities), "Utilities", "#ef4444", "zap"},
		{string(ExpenseSupplies), "Supplies", "#10b981", "package"},
		{string(ExpenseStaff), "Staff", "#f59e0b", "users"},
		{string(ExpenseMarketing), "Marketing", "#8b5cf6", "megaphone"},
		{string(ExpenseOther), "Other", "#6b7280", "receipt"},
	},
	MetaRequestCategory: {
		{string(RequestPlumbing), "Plumbing", "#3b82f6", "droplet"},
		{string(RequestElectrical), "Electrical", "#eab308", "zap"},
		{string(RequestAC), "AC", "#06b6d4", "wind"},
		{string(RequestFurniture), "Furniture", "#a16207", "armchair"},
		{string(RequestCleaning), "Cleaning", "#10b981", "sparkles"},
		{string(RequestOther), "Other", "#6b7280", "wrench"},
	},
	MetaPriority: {
		{string(PriorityLow), "Low", "#10b981", "arrow-down"},
		{string(PriorityMedium), "Medium", "#eab308", "minus"},
		{string(PriorityHigh), "High", "#f97316", "arrow-up"},
		{string(PriorityUrgent), "Urgent", "#ef4444", "alert-triangle"},
	},
	MetaRequestStatus: {
		{string(RequestPending), "Pending", "#eab308", "clock"},
		{string(RequestInProgress), "In Progress", "#3b82f6", "settings"},
		{string(RequestCompleted), "Completed", "#10b981", "check-circle"},
		{string(RequestCancelled), "Cancelled", "#6b7280", "x-circle"},
	},
	MetaAmenity: {
		{"wifi", "Wi-Fi", "#3b82f6", "wifi"},
		{"ac", "AC", "#06b6d4", "wind"},
		{"tv", "TV", "#8b5cf6", "tv"},
		{"parking", "Parking", "#6b7280", "car"},
		{"meals", "Meals", "#f59e0b", "utensils"},
	},
}

// Meta looks up one value in a metadata group.
func Meta(group, value string) (EnumMeta, bool) {
	for _, m := range metadata[group] {
		if m.Value == value {
			return m, true
		}
	}
	return EnumMeta{}, false
}

// MetaTable returns a copy of the whole table.
func MetaTable() map[string][]EnumMeta {
	out := make(map[string][]EnumMeta, len(metadata))
	for k, v := range metadata {
		out[k] = append([]EnumMeta(nil), v...)
	}
	return out
}
