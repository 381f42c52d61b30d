// Package broker defines the insurance brokerage records the seeder produces
// and the fixed reference data they point at.
package broker

import "github.com/shopspring/decimal"

// Client types.
const (
	ClientTypeB2C       = "B2C"
	ClientTypeB2B       = "B2B"
	ClientTypeVIP       = "VIP"
	ClientTypeCorporate = "Corporate"
)

// Policy statuses.
const (
	PolicyDraft     = "draft"
	PolicyActive    = "active"
	PolicySuspended = "suspended"
	PolicyCancelled = "cancelled"
	PolicyExpired   = "expired"
	PolicyRenewed   = "renewed"
)

// Claim statuses.
const (
	ClaimReported    = "reported"
	ClaimUnderReview = "under_review"
	ClaimApproved    = "approved"
	ClaimRejected    = "rejected"
	ClaimPaid        = "paid"
	ClaimClosed      = "closed"
	ClaimReopened    = "reopened"
)

// Payment methods.
const (
	MethodBankTransfer = "bank_transfer"
	MethodCreditCard   = "credit_card"
	MethodDebitCard    = "debit_card"
	MethodCash         = "cash"
	MethodPayPal       = "paypal"
)

// Payment statuses.
const (
	PaymentCompleted     = "completed"
	PaymentPending       = "pending"
	PaymentFailed        = "failed"
	PaymentPartiallyPaid = "partially_paid"
)

// Commission statuses.
const (
	CommissionPaid     = "paid"
	CommissionPending  = "pending"
	CommissionRejected = "rejected"
)

// Roles.
const (
	RoleAdmin       = "admin"
	RoleAgent       = "agent"
	RoleUnderwriter = "underwriter"
	RoleManager     = "manager"
	RoleViewer      = "viewer"
)

// Root policy categories below the "Insurance" root.
const (
	CategoryRoot     = "Insurance"
	CategoryLife     = "Life"
	CategoryProperty = "Property"
	CategoryAuto     = "Auto"
	CategoryHealth   = "Health"
)

// IsPersonType reports whether clients of the type are natural persons.
func IsPersonType(name string) bool {
	return name == ClientTypeB2C || name == ClientTypeVIP
}

// ClientTypeDef is a client_types row before insertion.
type ClientTypeDef struct {
	Name         string
	Description  string
	DiscountRate decimal.Decimal
}

// CategoryDef is a policy_categories row before insertion. Parent is empty for the root.
type CategoryDef struct {
	Name   string
	Parent string
}

// PolicyTypeDef is a policy_types row before insertion.
type PolicyTypeDef struct {
	Category    string
	Name        string
	BasePremium decimal.Decimal
	Description string
}

// StatusDef is a status row before insertion. Flag is is_active_policy for
// policy statuses and is_final for claim statuses.
type StatusDef struct {
	Name        string
	Description string
	Flag        bool
}

// RiskLevelDef is a risk_levels row before insertion.
type RiskLevelDef struct {
	Name       string
	Multiplier decimal.Decimal
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ClientTypeDefs returns the client types with their discount rates.
func ClientTypeDefs() []ClientTypeDef {
	return []ClientTypeDef{
		{ClientTypeB2C, "Klienci indywidualni", dec("0")},
		{ClientTypeB2B, "Małe i średnie firmy", dec("5")},
		{ClientTypeVIP, "Klienci premium", dec("15")},
		{ClientTypeCorporate, "Duże korporacje", dec("20")},
	}
}

// CategoryDefs returns the category tree, parents before children.
func CategoryDefs() []CategoryDef {
	return []CategoryDef{
		{CategoryRoot, ""},
		{CategoryLife, CategoryRoot},
		{CategoryProperty, CategoryRoot},
		{CategoryAuto, CategoryRoot},
		{CategoryHealth, CategoryRoot},
		{"Term Life", CategoryLife},
		{"Whole Life", CategoryLife},
		{"Home", CategoryProperty},
		{"Apartment", CategoryProperty},
		{"Liability (OC)", CategoryAuto},
		{"Comprehensive (AC)", CategoryAuto},
	}
}

// PolicyTypeDefs returns the sellable products.
func PolicyTypeDefs() []PolicyTypeDef {
	return []PolicyTypeDef{
		{CategoryAuto, "OC pojazdu", dec("800"), "Obowiązkowe ubezpieczenie OC"},
		{CategoryAuto, "AC", dec("1500"), "Autocasco"},
		{CategoryAuto, "NNW", dec("200"), "Następstwa nieszczęśliwych wypadków"},
		{CategoryAuto, "Assistance", dec("300"), "Pomoc drogowa"},
		{CategoryLife, "Życiowe terminowe", dec("500"), "Ochrona na określony czas"},
		{CategoryLife, "Życiowe na całe życie", dec("1200"), "Ochrona dożywotnia"},
		{CategoryLife, "Życiowe z UFK", dec("2000"), "Z funduszem kapitałowym"},
		{CategoryProperty, "Ubezpieczenie mieszkania", dec("600"), "Mieszkanie i ruchomości"},
		{CategoryProperty, "Ubezpieczenie domu", dec("1000"), "Dom jednorodzinny"},
		{CategoryProperty, "Mienie ruchome", dec("400"), "Ruchomości domowe"},
		{CategoryHealth, "Zdrowotne", dec("300"), "Prywatna opieka medyczna"},
		{CategoryHealth, "Dentystyczne", dec("150"), "Leczenie stomatologiczne"},
	}
}

// PolicyStatusDefs returns policy statuses; Flag marks in-force statuses.
func PolicyStatusDefs() []StatusDef {
	return []StatusDef{
		{PolicyDraft, "Projekt polisy", false},
		{PolicyActive, "Polisa aktywna", true},
		{PolicySuspended, "Polisa zawieszona", false},
		{PolicyCancelled, "Polisa anulowana", false},
		{PolicyExpired, "Polisa wygasła", false},
		{PolicyRenewed, "Polisa odnowiona", false},
	}
}

// ClaimStatusDefs returns claim statuses; Flag marks final statuses.
func ClaimStatusDefs() []StatusDef {
	return []StatusDef{
		{ClaimReported, "Zgłoszona", false},
		{ClaimUnderReview, "W weryfikacji", false},
		{ClaimApproved, "Zatwierdzona", false},
		{ClaimRejected, "Odrzucona", true},
		{ClaimPaid, "Wypłacona", true},
		{ClaimClosed, "Zamknięta", true},
		{ClaimReopened, "Wznowiona", false},
	}
}

// RiskLevelDefs returns risk levels with their premium multipliers.
func RiskLevelDefs() []RiskLevelDef {
	return []RiskLevelDef{
		{"very_low", dec("0.8")},
		{"low", dec("1.0")},
		{"medium", dec("1.3")},
		{"high", dec("1.7")},
		{"very_high", dec("2.5")},
	}
}

// PaymentMethodNames returns the payment methods.
func PaymentMethodNames() []string {
	return []string{MethodBankTransfer, MethodCreditCard, MethodDebitCard, MethodCash, MethodPayPal}
}

// PaymentStatusNames returns the payment statuses.
func PaymentStatusNames() []string {
	return []string{PaymentCompleted, PaymentPending, PaymentFailed, PaymentPartiallyPaid}
}

// CommissionStatusNames returns the commission statuses.
func CommissionStatusNames() []string {
	return []string{CommissionPaid, CommissionPending, CommissionRejected}
}

// RoleNames returns the user roles.
func RoleNames() []string {
	return []string{RoleAdmin, RoleAgent, RoleUnderwriter, RoleManager, RoleViewer}
}
