package persistence

import (
	"time"

	"github.com/shopspring/decimal"
)

// LookupColumns are shared by the name-only reference tables.
type LookupColumns struct {
	ID   int64  `gorm:"primaryKey;autoIncrement"`
	Name string `gorm:"column:name;uniqueIndex;size:50;not null"`
}

// ClientTypeModel represents a client segment.
type ClientTypeModel struct {
	ID           int64           `gorm:"primaryKey;autoIncrement"`
	Name         string          `gorm:"column:name;uniqueIndex;size:50;not null"`
	Description  string          `gorm:"column:description;size:255"`
	DiscountRate decimal.Decimal `gorm:"column:discount_rate;type:numeric(5,2);not null"`
}

// TableName returns the table name.
func (ClientTypeModel) TableName() string { return "client_types" }

// PolicyCategoryModel represents a node of the product category tree.
type PolicyCategoryModel struct {
	ID       int64  `gorm:"primaryKey;autoIncrement"`
	ParentID *int64 `gorm:"column:parent_id;index"`
	Name     string `gorm:"column:name;uniqueIndex;size:100;not null"`
	Level    int    `gorm:"column:level;not null"`
	Path     string `gorm:"column:path;size:500;not null"`
}

// TableName returns the table name.
func (PolicyCategoryModel) TableName() string { return "policy_categories" }

// PolicyTypeModel represents a sellable insurance product.
type PolicyTypeModel struct {
	ID          int64           `gorm:"primaryKey;autoIncrement"`
	CategoryID  int64           `gorm:"column:category_id;index;not null"`
	Name        string          `gorm:"column:name;uniqueIndex;size:100;not null"`
	BasePremium decimal.Decimal `gorm:"column:base_premium;type:numeric(14,2);not null"`
	Description string          `gorm:"column:description;size:255"`
	IsActive    bool            `gorm:"column:is_active;not null"`
}

// TableName returns the table name.
func (PolicyTypeModel) TableName() string { return "policy_types" }

// PolicyStatusModel represents a policy lifecycle status.
type PolicyStatusModel struct {
	ID             int64  `gorm:"primaryKey;autoIncrement"`
	Name           string `gorm:"column:name;uniqueIndex;size:50;not null"`
	Description    string `gorm:"column:description;size:255"`
	IsActivePolicy bool   `gorm:"column:is_active_policy;not null"`
}

// TableName returns the table name.
func (PolicyStatusModel) TableName() string { return "policy_statuses" }

// ClaimStatusModel represents a claim lifecycle status.
type ClaimStatusModel struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	Name        string `gorm:"column:name;uniqueIndex;size:50;not null"`
	Description string `gorm:"column:description;size:255"`
	IsFinal     bool   `gorm:"column:is_final;not null"`
}

// TableName returns the table name.
func (ClaimStatusModel) TableName() string { return "claim_statuses" }

// PaymentMethodModel represents a payment channel.
type PaymentMethodModel struct{ LookupColumns }

// TableName returns the table name.
func (PaymentMethodModel) TableName() string { return "payment_methods" }

// PaymentStatusModel represents a premium payment outcome.
type PaymentStatusModel struct{ LookupColumns }

// TableName returns the table name.
func (PaymentStatusModel) TableName() string { return "payment_statuses" }

// CommissionStatusModel represents a commission payout state.
type CommissionStatusModel struct{ LookupColumns }

// TableName returns the table name.
func (CommissionStatusModel) TableName() string { return "commission_statuses" }

// RoleModel represents a user role.
type RoleModel struct{ LookupColumns }

// TableName returns the table name.
func (RoleModel) TableName() string { return "roles" }

// RiskLevelModel represents an underwriting risk band.
type RiskLevelModel struct {
	ID                int64           `gorm:"primaryKey;autoIncrement"`
	Name              string          `gorm:"column:name;uniqueIndex;size:50;not null"`
	PremiumMultiplier decimal.Decimal `gorm:"column:premium_multiplier;type:numeric(4,2);not null"`
}

// TableName returns the table name.
func (RiskLevelModel) TableName() string { return "risk_levels" }

// ClientModel represents a policyholder.
type ClientModel struct {
	ID               int64           `gorm:"primaryKey;autoIncrement"`
	ClientTypeID     int64           `gorm:"column:client_type_id;index;not null"`
	FirstName        *string         `gorm:"column:first_name;size:100"`
	LastName         *string         `gorm:"column:last_name;size:100"`
	CompanyName      *string         `gorm:"column:company_name;size:255"`
	TaxID            string          `gorm:"column:tax_id;size:20;not null"`
	DateOfBirth      *time.Time      `gorm:"column:date_of_birth;type:date"`
	RegistrationDate time.Time       `gorm:"column:registration_date;type:date;not null"`
	IsActive         bool            `gorm:"column:is_active;not null"`
	RiskScore        decimal.Decimal `gorm:"column:risk_score;type:numeric(5,2);not null"`
	CreatedAt        time.Time       `gorm:"column:created_at"`
	UpdatedAt        time.Time       `gorm:"column:updated_at"`
}

// TableName returns the table name.
func (ClientModel) TableName() string { return "clients" }

// ClientAddressModel represents a client's postal address.
type ClientAddressModel struct {
	ID          int64      `gorm:"primaryKey;autoIncrement"`
	ClientID    int64      `gorm:"column:client_id;index;not null"`
	AddressType string     `gorm:"column:address_type;size:20;not null"`
	Street      string     `gorm:"column:street;size:255;not null"`
	City        string     `gorm:"column:city;size:100;not null"`
	PostalCode  string     `gorm:"column:postal_code;size:10;not null"`
	Country     string     `gorm:"column:country;size:100;not null"`
	ValidFrom   time.Time  `gorm:"column:valid_from;type:date;not null"`
	ValidTo     *time.Time `gorm:"column:valid_to;type:date"`
	IsCurrent   bool       `gorm:"column:is_current;not null"`
}

// TableName returns the table name.
func (ClientAddressModel) TableName() string { return "client_addresses" }

// ClientContactModel represents a client's email or phone.
type ClientContactModel struct {
	ID           int64      `gorm:"primaryKey;autoIncrement"`
	ClientID     int64      `gorm:"column:client_id;index;not null"`
	ContactType  string     `gorm:"column:contact_type;size:20;not null"`
	ContactValue string     `gorm:"column:contact_value;size:255;not null"`
	IsPrimary    bool       `gorm:"column:is_primary;not null"`
	VerifiedAt   *time.Time `gorm:"column:verified_at"`
}

// TableName returns the table name.
func (ClientContactModel) TableName() string { return "client_contacts" }

// AgentModel represents a node of the sales hierarchy.
type AgentModel struct {
	ID             int64           `gorm:"primaryKey;autoIncrement"`
	FirstName      string          `gorm:"column:first_name;size:100;not null"`
	LastName       string          `gorm:"column:last_name;size:100;not null"`
	Email          string          `gorm:"column:email;uniqueIndex;size:255;not null"`
	Phone          string          `gorm:"column:phone;size:30"`
	ManagerID      *int64          `gorm:"column:manager_id;index"`
	HireDate       time.Time       `gorm:"column:hire_date;type:date;not null"`
	CommissionRate decimal.Decimal `gorm:"column:commission_rate;type:numeric(5,2);not null"`
	IsActive       bool            `gorm:"column:is_active;not null"`
	Level          int             `gorm:"column:level;not null"`
}

// TableName returns the table name.
func (AgentModel) TableName() string { return "agents" }

// AgentPerformanceModel represents one month of an agent's results.
type AgentPerformanceModel struct {
	ID                int64           `gorm:"primaryKey;autoIncrement"`
	AgentID           int64           `gorm:"column:agent_id;index;not null"`
	Year              int             `gorm:"column:year;not null"`
	Month             int             `gorm:"column:month;not null"`
	PoliciesSold      int             `gorm:"column:policies_sold;not null"`
	TotalPremium      decimal.Decimal `gorm:"column:total_premium;type:numeric(14,2);not null"`
	TotalCommission   decimal.Decimal `gorm:"column:total_commission;type:numeric(14,2);not null"`
	SatisfactionScore decimal.Decimal `gorm:"column:satisfaction_score;type:numeric(3,2);not null"`
}

// TableName returns the table name.
func (AgentPerformanceModel) TableName() string { return "agent_performance" }

// UserModel represents a login account.
type UserModel struct {
	ID           int64      `gorm:"primaryKey;autoIncrement"`
	Username     string     `gorm:"column:username;uniqueIndex;size:100;not null"`
	Email        string     `gorm:"column:email;size:255;not null"`
	PasswordHash string     `gorm:"column:password_hash;size:255;not null"`
	AgentID      *int64     `gorm:"column:agent_id;index"`
	IsActive     bool       `gorm:"column:is_active;not null"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	LastLogin    *time.Time `gorm:"column:last_login"`
}

// TableName returns the table name.
func (UserModel) TableName() string { return "users" }

// UserRoleModel grants a role to a user.
type UserRoleModel struct {
	UserID int64 `gorm:"column:user_id;primaryKey;autoIncrement:false"`
	RoleID int64 `gorm:"column:role_id;primaryKey;autoIncrement:false"`
}

// TableName returns the table name.
func (UserRoleModel) TableName() string { return "user_roles" }

// PolicyModel represents an insurance contract.
type PolicyModel struct {
	ID               int64           `gorm:"primaryKey;autoIncrement"`
	PolicyNumber     string          `gorm:"column:policy_number;uniqueIndex;size:50;not null"`
	ClientID         int64           `gorm:"column:client_id;index;not null"`
	PolicyTypeID     int64           `gorm:"column:policy_type_id;index;not null"`
	AgentID          int64           `gorm:"column:agent_id;index;not null"`
	StatusID         int64           `gorm:"column:status_id;index;not null"`
	StartDate        time.Time       `gorm:"column:start_date;type:date;not null"`
	EndDate          time.Time       `gorm:"column:end_date;type:date;not null"`
	PremiumAmount    decimal.Decimal `gorm:"column:premium_amount;type:numeric(14,2);not null"`
	SumInsured       decimal.Decimal `gorm:"column:sum_insured;type:numeric(14,2);not null"`
	PaymentFrequency string          `gorm:"column:payment_frequency;size:20;not null"`
	CreatedAt        time.Time       `gorm:"column:created_at"`
	UpdatedAt        time.Time       `gorm:"column:updated_at"`
}

// TableName returns the table name.
func (PolicyModel) TableName() string { return "policies" }

// PolicyStatusHistoryModel represents one policy status transition.
type PolicyStatusHistoryModel struct {
	ID              int64     `gorm:"primaryKey;autoIncrement"`
	PolicyID        int64     `gorm:"column:policy_id;index;not null"`
	OldStatusID     *int64    `gorm:"column:old_status_id"`
	NewStatusID     int64     `gorm:"column:new_status_id;not null"`
	ChangedAt       time.Time `gorm:"column:changed_at;not null"`
	ChangedByUserID *int64    `gorm:"column:changed_by_user_id"`
	Reason          string    `gorm:"column:reason;size:255"`
}

// TableName returns the table name.
func (PolicyStatusHistoryModel) TableName() string { return "policy_status_history" }

// PolicyBeneficiaryModel represents a beneficiary of a life policy.
type PolicyBeneficiaryModel struct {
	ID              int64           `gorm:"primaryKey;autoIncrement"`
	PolicyID        int64           `gorm:"column:policy_id;index;not null"`
	FirstName       string          `gorm:"column:first_name;size:100;not null"`
	LastName        string          `gorm:"column:last_name;size:100;not null"`
	Relationship    string          `gorm:"column:relationship;size:50;not null"`
	SharePercentage decimal.Decimal `gorm:"column:share_percentage;type:numeric(5,2);not null"`
}

// TableName returns the table name.
func (PolicyBeneficiaryModel) TableName() string { return "policy_beneficiaries" }

// InvoiceModel represents a premium invoice.
type InvoiceModel struct {
	ID            int64           `gorm:"primaryKey;autoIncrement"`
	InvoiceNumber string          `gorm:"column:invoice_number;uniqueIndex;size:50;not null"`
	PolicyID      int64           `gorm:"column:policy_id;index;not null"`
	IssueDate     time.Time       `gorm:"column:issue_date;type:date;not null"`
	DueDate       time.Time       `gorm:"column:due_date;type:date;not null"`
	TotalNet      decimal.Decimal `gorm:"column:total_net;type:numeric(14,2);not null"`
	VATAmount     decimal.Decimal `gorm:"column:vat_amount;type:numeric(14,2);not null"`
	TotalGross    decimal.Decimal `gorm:"column:total_gross;type:numeric(14,2);not null"`
	IsPaid        bool            `gorm:"column:is_paid;not null"`
}

// TableName returns the table name.
func (InvoiceModel) TableName() string { return "invoices" }

// CommissionModel represents an agent commission on a policy.
type CommissionModel struct {
	ID                 int64           `gorm:"primaryKey;autoIncrement"`
	PolicyID           int64           `gorm:"column:policy_id;index;not null"`
	AgentID            int64           `gorm:"column:agent_id;index;not null"`
	CommissionRate     decimal.Decimal `gorm:"column:commission_rate;type:numeric(5,2);not null"`
	CommissionAmount   decimal.Decimal `gorm:"column:commission_amount;type:numeric(14,2);not null"`
	PaymentDate        *time.Time      `gorm:"column:payment_date;type:date"`
	CommissionStatusID int64           `gorm:"column:commission_status_id;not null"`
}

// TableName returns the table name.
func (CommissionModel) TableName() string { return "commissions" }

// RiskAssessmentModel represents the underwriting score of a policy.
type RiskAssessmentModel struct {
	ID               int64           `gorm:"primaryKey;autoIncrement"`
	PolicyID         int64           `gorm:"column:policy_id;index;not null"`
	RiskLevelID      int64           `gorm:"column:risk_level_id;not null"`
	AssessmentDate   time.Time       `gorm:"column:assessment_date;type:date;not null"`
	AssessedByUserID *int64          `gorm:"column:assessed_by_user_id"`
	Score            decimal.Decimal `gorm:"column:score;type:numeric(5,2);not null"`
	Notes            string          `gorm:"column:notes;type:text"`
}

// TableName returns the table name.
func (RiskAssessmentModel) TableName() string { return "risk_assessments" }

// ClaimModel represents a reported loss.
type ClaimModel struct {
	ID             int64               `gorm:"primaryKey;autoIncrement"`
	ClaimNumber    string              `gorm:"column:claim_number;uniqueIndex;size:50;not null"`
	PolicyID       int64               `gorm:"column:policy_id;index;not null"`
	StatusID       int64               `gorm:"column:status_id;index;not null"`
	IncidentDate   time.Time           `gorm:"column:incident_date;type:date;not null"`
	ReportedDate   time.Time           `gorm:"column:reported_date;type:date;not null"`
	ClaimedAmount  decimal.Decimal     `gorm:"column:claimed_amount;type:numeric(14,2);not null"`
	ApprovedAmount decimal.NullDecimal `gorm:"column:approved_amount;type:numeric(14,2)"`
	Description    string              `gorm:"column:description;type:text"`
	CreatedAt      time.Time           `gorm:"column:created_at"`
}

// TableName returns the table name.
func (ClaimModel) TableName() string { return "claims" }

// ClaimStatusHistoryModel represents one claim status transition.
type ClaimStatusHistoryModel struct {
	ID              int64     `gorm:"primaryKey;autoIncrement"`
	ClaimID         int64     `gorm:"column:claim_id;index;not null"`
	OldStatusID     *int64    `gorm:"column:old_status_id"`
	NewStatusID     int64     `gorm:"column:new_status_id;not null"`
	ChangedAt       time.Time `gorm:"column:changed_at;not null"`
	ChangedByUserID *int64    `gorm:"column:changed_by_user_id"`
	Notes           string    `gorm:"column:notes;type:text"`
}

// TableName returns the table name.
func (ClaimStatusHistoryModel) TableName() string { return "claim_status_history" }

// ClaimPaymentModel represents a payout on a claim.
type ClaimPaymentModel struct {
	ID              int64           `gorm:"primaryKey;autoIncrement"`
	ClaimID         int64           `gorm:"column:claim_id;index;not null"`
	Amount          decimal.Decimal `gorm:"column:amount;type:numeric(14,2);not null"`
	PaymentDate     time.Time       `gorm:"column:payment_date;type:date;not null"`
	PaymentMethodID int64           `gorm:"column:payment_method_id;not null"`
	ReferenceNumber string          `gorm:"column:reference_number;uniqueIndex;size:50;not null"`
}

// TableName returns the table name.
func (ClaimPaymentModel) TableName() string { return "claim_payments" }

// PaymentModel represents a premium instalment.
type PaymentModel struct {
	ID              int64           `gorm:"primaryKey;autoIncrement"`
	PolicyID        int64           `gorm:"column:policy_id;index;not null"`
	Amount          decimal.Decimal `gorm:"column:amount;type:numeric(14,2);not null"`
	PaymentDate     time.Time       `gorm:"column:payment_date;type:date;not null"`
	PaymentMethodID int64           `gorm:"column:payment_method_id;not null"`
	PaymentStatusID int64           `gorm:"column:payment_status_id;not null"`
	TransactionID   string          `gorm:"column:transaction_id;uniqueIndex;size:50;not null"`
}

// TableName returns the table name.
func (PaymentModel) TableName() string { return "payments" }

// SeedStepModel records the progress of one seeding step.
type SeedStepModel struct {
	Name        string     `gorm:"column:name;primaryKey;size:64"`
	Rows        int64      `gorm:"column:rows_inserted;not null;default:0"`
	Cursor      int64      `gorm:"column:last_parent_id;not null;default:0"`
	CompletedAt *time.Time `gorm:"column:completed_at"`
}

// TableName returns the table name.
func (SeedStepModel) TableName() string { return "seed_steps" }

// SeedSequenceModel stores a document-number counter.
type SeedSequenceModel struct {
	Name  string `gorm:"column:name;primaryKey;size:32"`
	Value int64  `gorm:"column:value;not null"`
}

// TableName returns the table name.
func (SeedSequenceModel) TableName() string { return "seed_sequences" }

// SeedRunModel records one seeding run.
type SeedRunModel struct {
	RunID      string     `gorm:"column:run_id;primaryKey;size:36"`
	StartedAt  time.Time  `gorm:"column:started_at;not null"`
	FinishedAt *time.Time `gorm:"column:finished_at"`
	Reset      bool       `gorm:"column:reset;not null"`
	Seed       string     `gorm:"column:seed;size:20"`
	Status     string     `gorm:"column:status;size:20;not null"`
	Error      *string    `gorm:"column:error;type:text"`
}

// TableName returns the table name.
func (SeedRunModel) TableName() string { return "seed_runs" }
