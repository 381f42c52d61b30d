package broker

import (
	"time"

	"github.com/shopspring/decimal"
)

// Address types.
const (
	AddressHome    = "home"
	AddressWork    = "work"
	AddressBilling = "billing"
)

// Contact types.
const (
	ContactEmail    = "email"
	ContactMobile   = "mobile"
	ContactLandline = "landline"
)

// Client is a policyholder. Persons carry first and last name, companies a
// company name; never both.
type Client struct {
	ID               int64
	TypeID           int64
	FirstName        *string
	LastName         *string
	CompanyName      *string
	TaxID            string
	DateOfBirth      *time.Time
	RegistrationDate time.Time
	Active           bool
	RiskScore        decimal.Decimal
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// IsPerson reports whether the client is a natural person.
func (c Client) IsPerson() bool {
	return c.CompanyName == nil
}

// DisplayName returns the person or company name.
func (c Client) DisplayName() string {
	if c.CompanyName != nil {
		return *c.CompanyName
	}
	var first, last string
	if c.FirstName != nil {
		first = *c.FirstName
	}
	if c.LastName != nil {
		last = *c.LastName
	}
	return first + " " + last
}

// ClientAddress is one postal address of a client.
type ClientAddress struct {
	ID         int64
	ClientID   int64
	Type       string
	Street     string
	City       string
	PostalCode string
	Country    string
	ValidFrom  time.Time
	ValidTo    *time.Time
	Current    bool
}

// ClientContact is one email or phone of a client.
type ClientContact struct {
	ID         int64
	ClientID   int64
	Type       string
	Value      string
	Primary    bool
	VerifiedAt *time.Time
}

// Agent is a node of the sales hierarchy.
type Agent struct {
	ID             int64
	FirstName      string
	LastName       string
	Email          string
	Phone          string
	ManagerID      *int64
	HireDate       time.Time
	CommissionRate decimal.Decimal
	Active         bool
	Level          int
}

// IsRoot reports whether the agent has no manager.
func (a Agent) IsRoot() bool {
	return a.ManagerID == nil
}

// AgentPerformance is one month of an agent's sales figures.
type AgentPerformance struct {
	ID                int64
	AgentID           int64
	Year              int
	Month             int
	PoliciesSold      int
	TotalPremium      decimal.Decimal
	TotalCommission   decimal.Decimal
	SatisfactionScore decimal.Decimal
}

// User is a login account, linked to an agent for seeded users.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	AgentID      *int64
	Active       bool
	CreatedAt    time.Time
	LastLogin    *time.Time
}

// UserRole grants a role to a user.
type UserRole struct {
	UserID int64
	RoleID int64
}

// Policy is an insurance contract sold by an agent to a client.
type Policy struct {
	ID               int64
	Number           string
	ClientID         int64
	TypeID           int64
	AgentID          int64
	StatusID         int64
	StartDate        time.Time
	EndDate          time.Time
	Premium          decimal.Decimal
	SumInsured       decimal.Decimal
	PaymentFrequency Frequency
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// PolicyStatusChange is one row of a policy's status audit trail.
type PolicyStatusChange struct {
	ID          int64
	PolicyID    int64
	OldStatusID *int64
	NewStatusID int64
	ChangedAt   time.Time
	ChangedBy   *int64
	Reason      string
}

// Beneficiary receives a share of a life policy's benefit.
type Beneficiary struct {
	ID           int64
	PolicyID     int64
	FirstName    string
	LastName     string
	Relationship string
	Share        decimal.Decimal
}

// Invoice bills a policy's premium.
type Invoice struct {
	ID        int64
	Number    string
	PolicyID  int64
	IssueDate time.Time
	DueDate   time.Time
	Net       decimal.Decimal
	VAT       decimal.Decimal
	Gross     decimal.Decimal
	Paid      bool
}

// Commission is the agent's cut of a policy's premium.
type Commission struct {
	ID          int64
	PolicyID    int64
	AgentID     int64
	Rate        decimal.Decimal
	Amount      decimal.Decimal
	PaymentDate *time.Time
	StatusID    int64
}

// RiskAssessment is the underwriting score of a policy.
type RiskAssessment struct {
	ID          int64
	PolicyID    int64
	RiskLevelID int64
	Date        time.Time
	AssessedBy  *int64
	Score       decimal.Decimal
	Notes       string
}

// Claim is a loss reported against a policy.
type Claim struct {
	ID             int64
	Number         string
	PolicyID       int64
	StatusID       int64
	IncidentDate   time.Time
	ReportedDate   time.Time
	ClaimedAmount  decimal.Decimal
	ApprovedAmount decimal.NullDecimal
	Description    string
	CreatedAt      time.Time
}

// ClaimStatusChange is one row of a claim's status audit trail.
type ClaimStatusChange struct {
	ID          int64
	ClaimID     int64
	OldStatusID *int64
	NewStatusID int64
	ChangedAt   time.Time
	ChangedBy   *int64
	Notes       string
}

// ClaimPayment is one payout of an approved claim.
type ClaimPayment struct {
	ID              int64
	ClaimID         int64
	Amount          decimal.Decimal
	PaymentDate     time.Time
	MethodID        int64
	ReferenceNumber string
}

// Payment is one premium instalment paid for a policy.
type Payment struct {
	ID            int64
	PolicyID      int64
	Amount        decimal.Decimal
	PaymentDate   time.Time
	MethodID      int64
	StatusID      int64
	TransactionID string
}
