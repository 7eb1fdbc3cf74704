package crm

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/johnquangdev/crm-backend/internal/domain/entities"
	"github.com/johnquangdev/crm-backend/internal/domain/repositories"
	usecaseErrors "github.com/johnquangdev/crm-backend/internal/usecase/errors"
)

// CRMService handles the supporting CRUD resources around meetings:
// companies, contacts, deals and tasks.
type CRMService struct {
	companies repositories.CompanyRepository
	contacts  repositories.ContactRepository
	deals     repositories.DealRepository
	tasks     repositories.TaskRepository
	meetings  repositories.MeetingRepository
}

// NewCRMService creates a new CRM service
func NewCRMService(
	companies repositories.CompanyRepository,
	contacts repositories.ContactRepository,
	deals repositories.DealRepository,
	tasks repositories.TaskRepository,
	meetings repositories.MeetingRepository,
) *CRMService {
	return &CRMService{
		companies: companies,
		contacts:  contacts,
		deals:     deals,
		tasks:     tasks,
		meetings:  meetings,
	}
}

// Companies

func (s *CRMService) CreateCompany(ctx context.Context, company *entities.Company) error {
	if err := s.companies.Create(ctx, company); err != nil {
		return fmt.Errorf("failed to create company: %w", err)
	}
	return nil
}

func (s *CRMService) GetCompany(ctx context.Context, id uint) (*entities.Company, error) {
	company, err := s.companies.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecaseErrors.ErrCompanyNotFound
		}
		return nil, fmt.Errorf("failed to find company: %w", err)
	}
	return company, nil
}

func (s *CRMService) ListCompanies(ctx context.Context) ([]*entities.Company, error) {
	return s.companies.List(ctx)
}

func (s *CRMService) UpdateCompany(ctx context.Context, company *entities.Company) error {
	if err := s.companies.Update(ctx, company); err != nil {
		return fmt.Errorf("failed to update company: %w", err)
	}
	return nil
}

func (s *CRMService) DeleteCompany(ctx context.Context, id uint) error {
	if _, err := s.GetCompany(ctx, id); err != nil {
		return err
	}
	return s.companies.Delete(ctx, id)
}

// Contacts

func (s *CRMService) CreateContact(ctx context.Context, contact *entities.Contact) error {
	if err := s.contacts.Create(ctx, contact); err != nil {
		return fmt.Errorf("failed to create contact: %w", err)
	}
	return nil
}

func (s *CRMService) GetContact(ctx context.Context, id uint) (*entities.Contact, error) {
	contact, err := s.contacts.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecaseErrors.ErrContactNotFound
		}
		return nil, fmt.Errorf("failed to find contact: %w", err)
	}
	return contact, nil
}

func (s *CRMService) ListContacts(ctx context.Context) ([]*entities.Contact, error) {
	return s.contacts.List(ctx)
}

func (s *CRMService) UpdateContact(ctx context.Context, contact *entities.Contact) error {
	if err := s.contacts.Update(ctx, contact); err != nil {
		return fmt.Errorf("failed to update contact: %w", err)
	}
	return nil
}

func (s *CRMService) DeleteContact(ctx context.Context, id uint) error {
	if _, err := s.GetContact(ctx, id); err != nil {
		return err
	}
	return s.contacts.Delete(ctx, id)
}

// Deals

func (s *CRMService) CreateDeal(ctx context.Context, deal *entities.Deal) error {
	if !deal.Stage.IsValid() {
		return usecaseErrors.ErrInvalidInput
	}
	if err := s.deals.Create(ctx, deal); err != nil {
		return fmt.Errorf("failed to create deal: %w", err)
	}
	return nil
}

func (s *CRMService) GetDeal(ctx context.Context, id uint) (*entities.Deal, error) {
	deal, err := s.deals.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecaseErrors.ErrDealNotFound
		}
		return nil, fmt.Errorf("failed to find deal: %w", err)
	}
	return deal, nil
}

func (s *CRMService) ListDeals(ctx context.Context) ([]*entities.Deal, error) {
	return s.deals.List(ctx)
}

func (s *CRMService) UpdateDeal(ctx context.Context, deal *entities.Deal) error {
	if !deal.Stage.IsValid() {
		return usecaseErrors.ErrInvalidInput
	}
	if err := s.deals.Update(ctx, deal); err != nil {
		return fmt.Errorf("failed to update deal: %w", err)
	}
	return nil
}

func (s *CRMService) DeleteDeal(ctx context.Context, id uint) error {
	if _, err := s.GetDeal(ctx, id); err != nil {
		return err
	}
	return s.deals.Delete(ctx, id)
}

// Tasks

func (s *CRMService) CreateTask(ctx context.Context, task *entities.Task) error {
	if !task.Status.IsValid() || !task.Priority.IsValid() {
		return usecaseErrors.ErrInvalidInput
	}
	if err := s.tasks.Create(ctx, task); err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

func (s *CRMService) GetTask(ctx context.Context, id uint) (*entities.Task, error) {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecaseErrors.ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

func (s *CRMService) ListTasks(ctx context.Context) ([]*entities.Task, error) {
	return s.tasks.List(ctx)
}

func (s *CRMService) UpdateTask(ctx context.Context, task *entities.Task) error {
	if !task.Status.IsValid() || !task.Priority.IsValid() {
		return usecaseErrors.ErrInvalidInput
	}
	if err := s.tasks.Update(ctx, task); err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	return nil
}

func (s *CRMService) DeleteTask(ctx context.Context, id uint) error {
	if _, err := s.GetTask(ctx, id); err != nil {
		return err
	}
	return s.tasks.Delete(ctx, id)
}

// DashboardStats summarizes the pipeline for the dashboard view
type DashboardStats struct {
	Companies     int64   `json:"companies"`
	Contacts      int64   `json:"contacts"`
	Deals         int64   `json:"deals"`
	OpenDealValue float64 `json:"open_deal_value"`
	PendingTasks  int64   `json:"pending_tasks"`
}

// GetDashboardStats aggregates the headline counts shown on the dashboard
func (s *CRMService) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	companies, err := s.companies.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count companies: %w", err)
	}
	contacts, err := s.contacts.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count contacts: %w", err)
	}
	deals, err := s.deals.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count deals: %w", err)
	}
	openValue, err := s.deals.SumOpenAmount(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to sum open deals: %w", err)
	}
	pending, err := s.tasks.CountByStatus(ctx, entities.TaskStatusPending)
	if err != nil {
		return nil, fmt.Errorf("failed to count pending tasks: %w", err)
	}

	return &DashboardStats{
		Companies:     companies,
		Contacts:      contacts,
		Deals:         deals,
		OpenDealValue: openValue,
		PendingTasks:  pending,
	}, nil
}
