package persistence

import (
	"strconv"
	"time"

	"github.com/helixml/brokerseed/domain/broker"
	"github.com/helixml/brokerseed/domain/progress"
)

// ClientMapper maps between broker.Client and ClientModel.
type ClientMapper struct{}

// ToDomain converts a ClientModel to a broker.Client.
func (ClientMapper) ToDomain(e ClientModel) broker.Client {
	return broker.Client{
		ID:               e.ID,
		TypeID:           e.ClientTypeID,
		FirstName:        e.FirstName,
		LastName:         e.LastName,
		CompanyName:      e.CompanyName,
		TaxID:            e.TaxID,
		DateOfBirth:      utcPtr(e.DateOfBirth),
		RegistrationDate: e.RegistrationDate.UTC(),
		Active:           e.IsActive,
		RiskScore:        e.RiskScore,
		CreatedAt:        e.CreatedAt.UTC(),
		UpdatedAt:        e.UpdatedAt.UTC(),
	}
}

// ToModel converts a broker.Client to a ClientModel.
func (ClientMapper) ToModel(c broker.Client) ClientModel {
	return ClientModel{
		ID:               c.ID,
		ClientTypeID:     c.TypeID,
		FirstName:        c.FirstName,
		LastName:         c.LastName,
		CompanyName:      c.CompanyName,
		TaxID:            c.TaxID,
		DateOfBirth:      c.DateOfBirth,
		RegistrationDate: c.RegistrationDate,
		IsActive:         c.Active,
		RiskScore:        c.RiskScore,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
}

// AddressMapper maps between broker.ClientAddress and ClientAddressModel.
type AddressMapper struct{}

// ToDomain converts a ClientAddressModel to a broker.ClientAddress.
func (AddressMapper) ToDomain(e ClientAddressModel) broker.ClientAddress {
	return broker.ClientAddress{
		ID:         e.ID,
		ClientID:   e.ClientID,
		Type:       e.AddressType,
		Street:     e.Street,
		City:       e.City,
		PostalCode: e.PostalCode,
		Country:    e.Country,
		ValidFrom:  e.ValidFrom.UTC(),
		ValidTo:    utcPtr(e.ValidTo),
		Current:    e.IsCurrent,
	}
}

// ToModel converts a broker.ClientAddress to a ClientAddressModel.
func (AddressMapper) ToModel(a broker.ClientAddress) ClientAddressModel {
	return ClientAddressModel{
		ID:          a.ID,
		ClientID:    a.ClientID,
		AddressType: a.Type,
		Street:      a.Street,
		City:        a.City,
		PostalCode:  a.PostalCode,
		Country:     a.Country,
		ValidFrom:   a.ValidFrom,
		ValidTo:     a.ValidTo,
		IsCurrent:   a.Current,
	}
}

// ContactMapper maps between broker.ClientContact and ClientContactModel.
type ContactMapper struct{}

// ToDomain converts a ClientContactModel to a broker.ClientContact.
func (ContactMapper) ToDomain(e ClientContactModel) broker.ClientContact {
	return broker.ClientContact{
		ID:         e.ID,
		ClientID:   e.ClientID,
		Type:       e.ContactType,
		Value:      e.ContactValue,
		Primary:    e.IsPrimary,
		VerifiedAt: utcPtr(e.VerifiedAt),
	}
}

// ToModel converts a broker.ClientContact to a ClientContactModel.
func (ContactMapper) ToModel(c broker.ClientContact) ClientContactModel {
	return ClientContactModel{
		ID:           c.ID,
		ClientID:     c.ClientID,
		ContactType:  c.Type,
		ContactValue: c.Value,
		IsPrimary:    c.Primary,
		VerifiedAt:   c.VerifiedAt,
	}
}

// AgentMapper maps between broker.Agent and AgentModel.
type AgentMapper struct{}

// ToDomain converts an AgentModel to a broker.Agent.
func (AgentMapper) ToDomain(e AgentModel) broker.Agent {
	return broker.Agent{
		ID:             e.ID,
		FirstName:      e.FirstName,
		LastName:       e.LastName,
		Email:          e.Email,
		Phone:          e.Phone,
		ManagerID:      e.ManagerID,
		HireDate:       e.HireDate.UTC(),
		CommissionRate: e.CommissionRate,
		Active:         e.IsActive,
		Level:          e.Level,
	}
}

// ToModel converts a broker.Agent to an AgentModel.
func (AgentMapper) ToModel(a broker.Agent) AgentModel {
	return AgentModel{
		ID:             a.ID,
		FirstName:      a.FirstName,
		LastName:       a.LastName,
		Email:          a.Email,
		Phone:          a.Phone,
		ManagerID:      a.ManagerID,
		HireDate:       a.HireDate,
		CommissionRate: a.CommissionRate,
		IsActive:       a.Active,
		Level:          a.Level,
	}
}

// PerformanceMapper maps between broker.AgentPerformance and AgentPerformanceModel.
type PerformanceMapper struct{}

// ToDomain converts an AgentPerformanceModel to a broker.AgentPerformance.
func (PerformanceMapper) ToDomain(e AgentPerformanceModel) broker.AgentPerformance {
	return broker.AgentPerformance{
		ID:                e.ID,
		AgentID:           e.AgentID,
		Year:              e.Year,
		Month:             e.Month,
		PoliciesSold:      e.PoliciesSold,
		TotalPremium:      e.TotalPremium,
		TotalCommission:   e.TotalCommission,
		SatisfactionScore: e.SatisfactionScore,
	}
}

// ToModel converts a broker.AgentPerformance to an AgentPerformanceModel.
func (PerformanceMapper) ToModel(p broker.AgentPerformance) AgentPerformanceModel {
	return AgentPerformanceModel{
		ID:                p.ID,
		AgentID:           p.AgentID,
		Year:              p.Year,
		Month:             p.Month,
		PoliciesSold:      p.PoliciesSold,
		TotalPremium:      p.TotalPremium,
		TotalCommission:   p.TotalCommission,
		SatisfactionScore: p.SatisfactionScore,
	}
}

// UserMapper maps between broker.User and UserModel.
type UserMapper struct{}

// ToDomain converts a UserModel to a broker.User.
func (UserMapper) ToDomain(e UserModel) broker.User {
	return broker.User{
		ID:           e.ID,
		Username:     e.Username,
		Email:        e.Email,
		PasswordHash: e.PasswordHash,
		AgentID:      e.AgentID,
		Active:       e.IsActive,
		CreatedAt:    e.CreatedAt.UTC(),
		LastLogin:    utcPtr(e.LastLogin),
	}
}

// ToModel converts a broker.User to a UserModel.
func (UserMapper) ToModel(u broker.User) UserModel {
	return UserModel{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		AgentID:      u.AgentID,
		IsActive:     u.Active,
		CreatedAt:    u.CreatedAt,
		LastLogin:    u.LastLogin,
	}
}

// UserRoleMapper maps between broker.UserRole and UserRoleModel.
type UserRoleMapper struct{}

// ToDomain converts a UserRoleModel to a broker.UserRole.
func (UserRoleMapper) ToDomain(e UserRoleModel) broker.UserRole {
	return broker.UserRole{UserID: e.UserID, RoleID: e.RoleID}
}

// ToModel converts a broker.UserRole to a UserRoleModel.
func (UserRoleMapper) ToModel(r broker.UserRole) UserRoleModel {
	return UserRoleModel{UserID: r.UserID, RoleID: r.RoleID}
}

// PolicyMapper maps between broker.Policy and PolicyModel.
type PolicyMapper struct{}

// ToDomain converts a PolicyModel to a broker.Policy.
func (PolicyMapper) ToDomain(e PolicyModel) broker.Policy {
	return broker.Policy{
		ID:               e.ID,
		Number:           e.PolicyNumber,
		ClientID:         e.ClientID,
		TypeID:           e.PolicyTypeID,
		AgentID:          e.AgentID,
		StatusID:         e.StatusID,
		StartDate:        e.StartDate.UTC(),
		EndDate:          e.EndDate.UTC(),
		Premium:          e.PremiumAmount,
		SumInsured:       e.SumInsured,
		PaymentFrequency: broker.Frequency(e.PaymentFrequency),
		CreatedAt:        e.CreatedAt.UTC(),
		UpdatedAt:        e.UpdatedAt.UTC(),
	}
}

// ToModel converts a broker.Policy to a PolicyModel.
func (PolicyMapper) ToModel(p broker.Policy) PolicyModel {
	return PolicyModel{
		ID:               p.ID,
		PolicyNumber:     p.Number,
		ClientID:         p.ClientID,
		PolicyTypeID:     p.TypeID,
		AgentID:          p.AgentID,
		StatusID:         p.StatusID,
		StartDate:        p.StartDate,
		EndDate:          p.EndDate,
		PremiumAmount:    p.Premium,
		SumInsured:       p.SumInsured,
		PaymentFrequency: string(p.PaymentFrequency),
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

// PolicyHistoryMapper maps between broker.PolicyStatusChange and PolicyStatusHistoryModel.
type PolicyHistoryMapper struct{}

// ToDomain converts a PolicyStatusHistoryModel to a broker.PolicyStatusChange.
func (PolicyHistoryMapper) ToDomain(e PolicyStatusHistoryModel) broker.PolicyStatusChange {
	return broker.PolicyStatusChange{
		ID:          e.ID,
		PolicyID:    e.PolicyID,
		OldStatusID: e.OldStatusID,
		NewStatusID: e.NewStatusID,
		ChangedAt:   e.ChangedAt.UTC(),
		ChangedBy:   e.ChangedByUserID,
		Reason:      e.Reason,
	}
}

// ToModel converts a broker.PolicyStatusChange to a PolicyStatusHistoryModel.
func (PolicyHistoryMapper) ToModel(c broker.PolicyStatusChange) PolicyStatusHistoryModel {
	return PolicyStatusHistoryModel{
		ID:              c.ID,
		PolicyID:        c.PolicyID,
		OldStatusID:     c.OldStatusID,
		NewStatusID:     c.NewStatusID,
		ChangedAt:       c.ChangedAt,
		ChangedByUserID: c.ChangedBy,
		Reason:          c.Reason,
	}
}

// BeneficiaryMapper maps between broker.Beneficiary and PolicyBeneficiaryModel.
type BeneficiaryMapper struct{}

// ToDomain converts a PolicyBeneficiaryModel to a broker.Beneficiary.
func (BeneficiaryMapper) ToDomain(e PolicyBeneficiaryModel) broker.Beneficiary {
	return broker.Beneficiary{
		ID:           e.ID,
		PolicyID:     e.PolicyID,
		FirstName:    e.FirstName,
		LastName:     e.LastName,
		Relationship: e.Relationship,
		Share:        e.SharePercentage,
	}
}

// ToModel converts a broker.Beneficiary to a PolicyBeneficiaryModel.
func (BeneficiaryMapper) ToModel(b broker.Beneficiary) PolicyBeneficiaryModel {
	return PolicyBeneficiaryModel{
		ID:              b.ID,
		PolicyID:        b.PolicyID,
		FirstName:       b.FirstName,
		LastName:        b.LastName,
		Relationship:    b.Relationship,
		SharePercentage: b.Share,
	}
}

// InvoiceMapper maps between broker.Invoice and InvoiceModel.
type InvoiceMapper struct{}

// ToDomain converts an InvoiceModel to a broker.Invoice.
func (InvoiceMapper) ToDomain(e InvoiceModel) broker.Invoice {
	return broker.Invoice{
		ID:        e.ID,
		Number:    e.InvoiceNumber,
		PolicyID:  e.PolicyID,
		IssueDate: e.IssueDate.UTC(),
		DueDate:   e.DueDate.UTC(),
		Net:       e.TotalNet,
		VAT:       e.VATAmount,
		Gross:     e.TotalGross,
		Paid:      e.IsPaid,
	}
}

// ToModel converts a broker.Invoice to an InvoiceModel.
func (InvoiceMapper) ToModel(i broker.Invoice) InvoiceModel {
	return InvoiceModel{
		ID:            i.ID,
		InvoiceNumber: i.Number,
		PolicyID:      i.PolicyID,
		IssueDate:     i.IssueDate,
		DueDate:       i.DueDate,
		TotalNet:      i.Net,
		VATAmount:     i.VAT,
		TotalGross:    i.Gross,
		IsPaid:        i.Paid,
	}
}

// CommissionMapper maps between broker.Commission and CommissionModel.
type CommissionMapper struct{}

// ToDomain converts a CommissionModel to a broker.Commission.
func (CommissionMapper) ToDomain(e CommissionModel) broker.Commission {
	return broker.Commission{
		ID:          e.ID,
		PolicyID:    e.PolicyID,
		AgentID:     e.AgentID,
		Rate:        e.CommissionRate,
		Amount:      e.CommissionAmount,
		PaymentDate: utcPtr(e.PaymentDate),
		StatusID:    e.CommissionStatusID,
	}
}

// ToModel converts a broker.Commission to a CommissionModel.
func (CommissionMapper) ToModel(c broker.Commission) CommissionModel {
	return CommissionModel{
		ID:                 c.ID,
		PolicyID:           c.PolicyID,
		AgentID:            c.AgentID,
		CommissionRate:     c.Rate,
		CommissionAmount:   c.Amount,
		PaymentDate:        c.PaymentDate,
		CommissionStatusID: c.StatusID,
	}
}

// RiskAssessmentMapper maps between broker.RiskAssessment and RiskAssessmentModel.
type RiskAssessmentMapper struct{}

// ToDomain converts a RiskAssessmentModel to a broker.RiskAssessment.
func (RiskAssessmentMapper) ToDomain(e RiskAssessmentModel) broker.RiskAssessment {
	return broker.RiskAssessment{
		ID:          e.ID,
		PolicyID:    e.PolicyID,
		RiskLevelID: e.RiskLevelID,
		Date:        e.AssessmentDate.UTC(),
		AssessedBy:  e.AssessedByUserID,
		Score:       e.Score,
		Notes:       e.Notes,
	}
}

// ToModel converts a broker.RiskAssessment to a RiskAssessmentModel.
func (RiskAssessmentMapper) ToModel(r broker.RiskAssessment) RiskAssessmentModel {
	return RiskAssessmentModel{
		ID:               r.ID,
		PolicyID:         r.PolicyID,
		RiskLevelID:      r.RiskLevelID,
		AssessmentDate:   r.Date,
		AssessedByUserID: r.AssessedBy,
		Score:            r.Score,
		Notes:            r.Notes,
	}
}

// ClaimMapper maps between broker.Claim and ClaimModel.
type ClaimMapper struct{}

// ToDomain converts a ClaimModel to a broker.Claim.
func (ClaimMapper) ToDomain(e ClaimModel) broker.Claim {
	return broker.Claim{
		ID:             e.ID,
		Number:         e.ClaimNumber,
		PolicyID:       e.PolicyID,
		StatusID:       e.StatusID,
		IncidentDate:   e.IncidentDate.UTC(),
		ReportedDate:   e.ReportedDate.UTC(),
		ClaimedAmount:  e.ClaimedAmount,
		ApprovedAmount: e.ApprovedAmount,
		Description:    e.Description,
		CreatedAt:      e.CreatedAt.UTC(),
	}
}

// ToModel converts a broker.Claim to a ClaimModel.
func (ClaimMapper) ToModel(c broker.Claim) ClaimModel {
	return ClaimModel{
		ID:             c.ID,
		ClaimNumber:    c.Number,
		PolicyID:       c.PolicyID,
		StatusID:       c.StatusID,
		IncidentDate:   c.IncidentDate,
		ReportedDate:   c.ReportedDate,
		ClaimedAmount:  c.ClaimedAmount,
		ApprovedAmount: c.ApprovedAmount,
		Description:    c.Description,
		CreatedAt:      c.CreatedAt,
	}
}

// ClaimHistoryMapper maps between broker.ClaimStatusChange and ClaimStatusHistoryModel.
type ClaimHistoryMapper struct{}

// ToDomain converts a ClaimStatusHistoryModel to a broker.ClaimStatusChange.
func (ClaimHistoryMapper) ToDomain(e ClaimStatusHistoryModel) broker.ClaimStatusChange {
	return broker.ClaimStatusChange{
		ID:          e.ID,
		ClaimID:     e.ClaimID,
		OldStatusID: e.OldStatusID,
		NewStatusID: e.NewStatusID,
		ChangedAt:   e.ChangedAt.UTC(),
		ChangedBy:   e.ChangedByUserID,
		Notes:       e.Notes,
	}
}

// ToModel converts a broker.ClaimStatusChange to a ClaimStatusHistoryModel.
func (ClaimHistoryMapper) ToModel(c broker.ClaimStatusChange) ClaimStatusHistoryModel {
	return ClaimStatusHistoryModel{
		ID:              c.ID,
		ClaimID:         c.ClaimID,
		OldStatusID:     c.OldStatusID,
		NewStatusID:     c.NewStatusID,
		ChangedAt:       c.ChangedAt,
		ChangedByUserID: c.ChangedBy,
		Notes:           c.Notes,
	}
}

// ClaimPaymentMapper maps between broker.ClaimPayment and ClaimPaymentModel.
type ClaimPaymentMapper struct{}

// ToDomain converts a ClaimPaymentModel to a broker.ClaimPayment.
func (ClaimPaymentMapper) ToDomain(e ClaimPaymentModel) broker.ClaimPayment {
	return broker.ClaimPayment{
		ID:              e.ID,
		ClaimID:         e.ClaimID,
		Amount:          e.Amount,
		PaymentDate:     e.PaymentDate.UTC(),
		MethodID:        e.PaymentMethodID,
		ReferenceNumber: e.ReferenceNumber,
	}
}

// ToModel converts a broker.ClaimPayment to a ClaimPaymentModel.
func (ClaimPaymentMapper) ToModel(p broker.ClaimPayment) ClaimPaymentModel {
	return ClaimPaymentModel{
		ID:              p.ID,
		ClaimID:         p.ClaimID,
		Amount:          p.Amount,
		PaymentDate:     p.PaymentDate,
		PaymentMethodID: p.MethodID,
		ReferenceNumber: p.ReferenceNumber,
	}
}

// PaymentMapper maps between broker.Payment and PaymentModel.
type PaymentMapper struct{}

// ToDomain converts a PaymentModel to a broker.Payment.
func (PaymentMapper) ToDomain(e PaymentModel) broker.Payment {
	return broker.Payment{
		ID:            e.ID,
		PolicyID:      e.PolicyID,
		Amount:        e.Amount,
		PaymentDate:   e.PaymentDate.UTC(),
		MethodID:      e.PaymentMethodID,
		StatusID:      e.PaymentStatusID,
		TransactionID: e.TransactionID,
	}
}

// ToModel converts a broker.Payment to a PaymentModel.
func (PaymentMapper) ToModel(p broker.Payment) PaymentModel {
	return PaymentModel{
		ID:              p.ID,
		PolicyID:        p.PolicyID,
		Amount:          p.Amount,
		PaymentDate:     p.PaymentDate,
		PaymentMethodID: p.MethodID,
		PaymentStatusID: p.StatusID,
		TransactionID:   p.TransactionID,
	}
}

// StepMapper maps between progress.Step and SeedStepModel.
type StepMapper struct{}

// ToDomain converts a SeedStepModel to a progress.Step.
func (StepMapper) ToDomain(e SeedStepModel) progress.Step {
	return progress.ReconstructStep(progress.StepName(e.Name), e.Rows, e.Cursor, utcPtr(e.CompletedAt))
}

// ToModel converts a progress.Step to a SeedStepModel.
func (StepMapper) ToModel(s progress.Step) SeedStepModel {
	return SeedStepModel{
		Name:        s.Name().String(),
		Rows:        s.Rows(),
		Cursor:      s.Cursor(),
		CompletedAt: s.CompletedAt(),
	}
}

// RunMapper maps between progress.Run and SeedRunModel.
type RunMapper struct{}

// ToDomain converts a SeedRunModel to a progress.Run.
func (RunMapper) ToDomain(e SeedRunModel) progress.Run {
	var errMsg string
	if e.Error != nil {
		errMsg = *e.Error
	}
	seed, _ := strconv.ParseUint(e.Seed, 10, 64)
	return progress.ReconstructRun(
		e.RunID,
		progress.RunState(e.Status),
		e.StartedAt.UTC(),
		utcPtr(e.FinishedAt),
		e.Reset,
		seed,
		errMsg,
	)
}

// ToModel converts a progress.Run to a SeedRunModel.
func (RunMapper) ToModel(r progress.Run) SeedRunModel {
	var errMsg *string
	if r.Error() != "" {
		msg := r.Error()
		errMsg = &msg
	}
	return SeedRunModel{
		RunID:      r.ID(),
		StartedAt:  r.StartedAt(),
		FinishedAt: r.FinishedAt(),
		Reset:      r.Reset(),
		Seed:       strconv.FormatUint(r.Seed(), 10),
		Status:     string(r.State()),
		Error:      errMsg,
	}
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
