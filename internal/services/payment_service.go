package services

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"vacancy_backend/internal/auth"
	"vacancy_backend/internal/logger"
	"vacancy_backend/internal/models"
	"vacancy_backend/internal/payment"
	"vacancy_backend/internal/repositories"
	"vacancy_backend/internal/services/dto"
	"vacancy_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// Платежные сценарии для метрик
const (
	PaymentFlowRecruiter = "recruiter"
	PaymentFlowUser      = "user"
	PaymentFlowGeneric   = "generic"
)

type PaymentService interface {
	InitiateRecruiter(ctx context.Context, actor Actor, req *dto.InitiatePaymentRequest) (*payment.Authorization, error)
	VerifyRecruiter(ctx context.Context, db *gorm.DB, actor Actor, reference, recruiterID string) (*dto.PaymentVerifiedResponse, error)
	RecruiterStatus(db *gorm.DB, actor Actor, recruiterID string) (*dto.RecruiterPaymentStatusResponse, error)

	InitiateUser(ctx context.Context, actor Actor, req *dto.InitiatePaymentRequest) (*payment.Authorization, error)
	VerifyUser(ctx context.Context, db *gorm.DB, actor Actor, reference, userID string) (*dto.PaymentVerifiedResponse, error)
	UserStatus(db *gorm.DB, actor Actor, userID string) (*dto.UserPaymentStatusResponse, error)

	InitializeForCaller(ctx context.Context, db *gorm.DB, actor Actor, amount float64) (*payment.Authorization, error)
	VerifyForCaller(ctx context.Context, db *gorm.DB, actor Actor, reference string) (*dto.PaymentVerifiedResponse, error)
}

type PaymentServiceImpl struct {
	accountRepo repositories.AccountRepository
	gateway     payment.Gateway
	clientURL   string
	onVerified  func(flow, result string)
	now         func() time.Time
}

func NewPaymentService(
	accountRepo repositories.AccountRepository,
	gateway payment.Gateway,
	clientURL string,
	onVerified func(flow, result string),
) PaymentService {
	if onVerified == nil {
		onVerified = func(string, string) {}
	}
	return &PaymentServiceImpl{
		accountRepo: accountRepo,
		gateway:     gateway,
		clientURL:   strings.TrimRight(clientURL, "/"),
		onVerified:  onVerified,
		now:         time.Now,
	}
}

// target - чей платеж проверяется. Пустой id означает самого вызывающего,
// чужой id доступен только администратору.
func target(actor Actor, id string) (string, error) {
	if id == "" {
		return actor.ID, nil
	}
	if !auth.CanActFor(actor.ID, actor.Role, id) {
		return "", apperrors.ErrAccessDenied
	}
	return id, nil
}

func (s *PaymentServiceImpl) initialize(ctx context.Context, email string, amount float64, callback string) (*payment.Authorization, error) {
	reference, err := payment.NewReference()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	authz, err := s.gateway.Initialize(ctx, payment.InitializeRequest{
		Email:       email,
		Amount:      amount,
		CallbackURL: callback,
		Reference:   reference,
	})
	if err != nil {
		logger.CtxWithError(ctx, "Paystack initialize failed", err, "reference", reference)
		return nil, apperrors.ErrPaymentInitFailed.WithError(err)
	}
	logger.CtxDebug(ctx, "Paystack transaction initialized", "reference", reference)
	return authz, nil
}

// verify - любой неуспешный статус или сетевая ошибка дают одинаковый ответ, без повторов
func (s *PaymentServiceImpl) verify(ctx context.Context, flow, reference string) (*payment.Transaction, error) {
	tx, err := s.gateway.Verify(ctx, reference)
	if err != nil {
		s.onVerified(flow, "error")
		logger.CtxWithError(ctx, "Paystack verify failed", err, "reference", reference, "flow", flow)
		return nil, apperrors.ErrPaymentVerificationFailed.WithError(err)
	}
	if !tx.Successful() {
		s.onVerified(flow, "failed")
		logger.CtxWarn(ctx, "Payment not successful", "reference", reference, "status", tx.Status, "flow", flow)
		return nil, apperrors.ErrPaymentVerificationFailed
	}
	s.onVerified(flow, "success")
	return tx, nil
}

// claimReference - одна успешная транзакция засчитывается только одному аккаунту
func (s *PaymentServiceImpl) claimReference(db *gorm.DB, reference, accountID string) error {
	used, err := s.accountRepo.ReferenceUsedByOther(db, reference, accountID)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if used {
		return apperrors.ErrPaymentReferenceUsed
	}
	return nil
}

func (s *PaymentServiceImpl) callback(path, param, id string) string {
	return s.clientURL + path + "?" + url.Values{param: []string{id}}.Encode()
}

// ============================================
// Рекрутер
// ============================================

func (s *PaymentServiceImpl) InitiateRecruiter(ctx context.Context, actor Actor, req *dto.InitiatePaymentRequest) (*payment.Authorization, error) {
	return s.initialize(ctx, req.Email, req.Amount, s.callback("/payment/verify", "recruiterId", actor.ID))
}

func (s *PaymentServiceImpl) VerifyRecruiter(ctx context.Context, db *gorm.DB, actor Actor, reference, recruiterID string) (*dto.PaymentVerifiedResponse, error) {
	recruiterID, err := target(actor, recruiterID)
	if err != nil {
		return nil, err
	}

	txn, err := s.verify(ctx, PaymentFlowRecruiter, reference)
	if err != nil {
		return nil, err
	}

	verifiedAt := s.now()
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.claimReference(tx, txn.Reference, recruiterID); err != nil {
			return err
		}
		if err := s.accountRepo.UpdateCompanyPayment(tx, recruiterID, models.CompanyPaymentPaid); err != nil {
			return err
		}
		return s.accountRepo.UpdateFields(tx, recruiterID, map[string]interface{}{
			"amount_paid":         txn.Amount,
			"payment_reference":   txn.Reference,
			"payment_verified_at": verifiedAt,
		})
	})
	if err != nil {
		if _, ok := apperrors.AsAppError(err); ok {
			return nil, err
		}
		return nil, handleAccountError(err)
	}

	return &dto.PaymentVerifiedResponse{
		Success:    true,
		Message:    "Payment verified successfully",
		Reference:  txn.Reference,
		AmountPaid: txn.Amount,
		VerifiedAt: &verifiedAt,
	}, nil
}

func (s *PaymentServiceImpl) RecruiterStatus(db *gorm.DB, actor Actor, recruiterID string) (*dto.RecruiterPaymentStatusResponse, error) {
	recruiterID, err := target(actor, recruiterID)
	if err != nil {
		return nil, err
	}

	account, err := s.accountRepo.FindByID(db, recruiterID)
	if err != nil {
		if errors.Is(err, repositories.ErrAccountNotFound) {
			return nil, apperrors.NewNotFoundError("account", "Recruiter not found")
		}
		return nil, apperrors.InternalError(err)
	}
	if account.RecruiterProfile == nil {
		return nil, apperrors.NewNotFoundError("account", "Recruiter not found")
	}
	return &dto.RecruiterPaymentStatusResponse{
		PaymentStatus: string(account.RecruiterProfile.Company.PaymentStatus),
	}, nil
}

// ============================================
// Соискатель
// ============================================

func (s *PaymentServiceImpl) InitiateUser(ctx context.Context, actor Actor, req *dto.InitiatePaymentRequest) (*payment.Authorization, error) {
	return s.initialize(ctx, req.Email, req.Amount, s.callback("/payment/verify-user", "userId", actor.ID))
}

func (s *PaymentServiceImpl) VerifyUser(ctx context.Context, db *gorm.DB, actor Actor, reference, userID string) (*dto.PaymentVerifiedResponse, error) {
	userID, err := target(actor, userID)
	if err != nil {
		return nil, err
	}

	txn, err := s.verify(ctx, PaymentFlowUser, reference)
	if err != nil {
		return nil, err
	}
	return s.markUserPaid(db, userID, txn)
}

func (s *PaymentServiceImpl) markUserPaid(db *gorm.DB, accountID string, txn *payment.Transaction) (*dto.PaymentVerifiedResponse, error) {
	if err := s.claimReference(db, txn.Reference, accountID); err != nil {
		return nil, err
	}

	verifiedAt := s.now()
	err := s.accountRepo.UpdateFields(db, accountID, map[string]interface{}{
		"has_paid":            true,
		"amount_paid":         txn.Amount,
		"payment_reference":   txn.Reference,
		"payment_status":      models.UserPaymentSuccess,
		"payment_gateway":     models.PaymentGateway,
		"payment_verified_at": verifiedAt,
	})
	if err != nil {
		return nil, handleAccountError(err)
	}

	return &dto.PaymentVerifiedResponse{
		Success:    true,
		Message:    "User payment verified successfully",
		Reference:  txn.Reference,
		AmountPaid: txn.Amount,
		VerifiedAt: &verifiedAt,
	}, nil
}

func (s *PaymentServiceImpl) UserStatus(db *gorm.DB, actor Actor, userID string) (*dto.UserPaymentStatusResponse, error) {
	userID, err := target(actor, userID)
	if err != nil {
		return nil, err
	}

	account, err := s.accountRepo.FindByID(db, userID)
	if err != nil {
		return nil, handleAccountError(err)
	}
	return &dto.UserPaymentStatusResponse{
		HasPaid:       account.HasPaid,
		PaymentStatus: account.PaymentStatus,
	}, nil
}

// ============================================
// Общий сценарий: платит сам вызывающий
// ============================================

func (s *PaymentServiceImpl) InitializeForCaller(ctx context.Context, db *gorm.DB, actor Actor, amount float64) (*payment.Authorization, error) {
	account, err := s.accountRepo.FindByID(db, actor.ID)
	if err != nil {
		return nil, handleAccountError(err)
	}
	return s.initialize(ctx, account.Email, amount, s.clientURL+"/pricing/verify")
}

// VerifyForCaller отмечает оплату вызывающего; у рекрутера дополнительно открывается публикация вакансий
func (s *PaymentServiceImpl) VerifyForCaller(ctx context.Context, db *gorm.DB, actor Actor, reference string) (*dto.PaymentVerifiedResponse, error) {
	txn, err := s.verify(ctx, PaymentFlowGeneric, reference)
	if err != nil {
		return nil, err
	}

	var resp *dto.PaymentVerifiedResponse
	err = db.Transaction(func(tx *gorm.DB) error {
		var err error
		resp, err = s.markUserPaid(tx, actor.ID, txn)
		if err != nil {
			return err
		}
		if actor.Role == models.RoleRecruiter {
			if err := s.accountRepo.UpdateCompanyPayment(tx, actor.ID, models.CompanyPaymentPaid); err != nil {
				return handleAccountError(err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp.Message = "Payment verified successfully"
	return resp, nil
}
