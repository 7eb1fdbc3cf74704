package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/johnquangdev/crm-backend/internal/adapter/dto/common"
	"github.com/johnquangdev/crm-backend/internal/domain/entities"
	crmUsecase "github.com/johnquangdev/crm-backend/internal/usecase/crm"
	usecaseErrors "github.com/johnquangdev/crm-backend/internal/usecase/errors"
)

// CRM handles the generic CRUD resources: companies, contacts, deals, tasks.
// These endpoints bind straight into the entity; the interesting validation
// lives on the enum types and in the service.
type CRM struct {
	crmService *crmUsecase.CRMService
}

// NewCRMHandler creates a new CRM handler
func NewCRMHandler(crmService *crmUsecase.CRMService) *CRM {
	return &CRM{
		crmService: crmService,
	}
}

// Companies

func (h *CRM) CreateCompany(c echo.Context) error {
	var company entities.Company
	if err := c.Bind(&company); err != nil {
		return respondBadRequest(c, "Invalid JSON")
	}
	if company.Name == "" {
		return respondBadRequest(c, "Missing name")
	}
	company.ID = 0

	if err := h.crmService.CreateCompany(c.Request().Context(), &company); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, company)
}

func (h *CRM) GetCompany(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, usecaseErrors.ErrCompanyNotFound)
	}
	company, err := h.crmService.GetCompany(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, company)
}

func (h *CRM) ListCompanies(c echo.Context) error {
	companies, err := h.crmService.ListCompanies(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, companies)
}

func (h *CRM) UpdateCompany(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, usecaseErrors.ErrCompanyNotFound)
	}
	company, err := h.crmService.GetCompany(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	if err := c.Bind(company); err != nil {
		return respondBadRequest(c, "Invalid JSON")
	}
	company.ID = id

	if err := h.crmService.UpdateCompany(c.Request().Context(), company); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, company)
}

func (h *CRM) DeleteCompany(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, usecaseErrors.ErrCompanyNotFound)
	}
	if err := h.crmService.DeleteCompany(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, common.NewSuccessResponse("Company deleted"))
}

// Contacts

func (h *CRM) CreateContact(c echo.Context) error {
	var contact entities.Contact
	if err := c.Bind(&contact); err != nil {
		return respondBadRequest(c, "Invalid JSON")
	}
	if contact.FirstName == "" || contact.LastName == "" || contact.Email == "" {
		return respondBadRequest(c, "Missing required fields")
	}
	contact.ID = 0

	if err := h.crmService.CreateContact(c.Request().Context(), &contact); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, contact)
}

func (h *CRM) GetContact(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, usecaseErrors.ErrContactNotFound)
	}
	contact, err := h.crmService.GetContact(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, contact)
}

func (h *CRM) ListContacts(c echo.Context) error {
	contacts, err := h.crmService.ListContacts(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, contacts)
}

func (h *CRM) UpdateContact(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, usecaseErrors.ErrContactNotFound)
	}
	contact, err := h.crmService.GetContact(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	if err := c.Bind(contact); err != nil {
		return respondBadRequest(c, "Invalid JSON")
	}
	contact.ID = id

	if err := h.crmService.UpdateContact(c.Request().Context(), contact); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, contact)
}

func (h *CRM) DeleteContact(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, usecaseErrors.ErrContactNotFound)
	}
	if err := h.crmService.DeleteContact(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, common.NewSuccessResponse("Contact deleted"))
}

// Deals

func (h *CRM) CreateDeal(c echo.Context) error {
	var deal entities.Deal
	if err := c.Bind(&deal); err != nil {
		return respondBadRequest(c, "Invalid JSON")
	}
	if deal.Title == "" || deal.CompanyID == 0 {
		return respondBadRequest(c, "Missing required fields")
	}
	if deal.Stage == "" {
		deal.Stage = entities.DealStageLead
	}
	deal.ID = 0

	if err := h.crmService.CreateDeal(c.Request().Context(), &deal); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, deal)
}

func (h *CRM) GetDeal(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, usecaseErrors.ErrDealNotFound)
	}
	deal, err := h.crmService.GetDeal(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, deal)
}

func (h *CRM) ListDeals(c echo.Context) error {
	deals, err := h.crmService.ListDeals(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, deals)
}

func (h *CRM) UpdateDeal(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, usecaseErrors.ErrDealNotFound)
	}
	deal, err := h.crmService.GetDeal(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	if err := c.Bind(deal); err != nil {
		return respondBadRequest(c, "Invalid JSON")
	}
	deal.ID = id

	if err := h.crmService.UpdateDeal(c.Request().Context(), deal); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, deal)
}

func (h *CRM) DeleteDeal(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, usecaseErrors.ErrDealNotFound)
	}
	if err := h.crmService.DeleteDeal(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, common.NewSuccessResponse("Deal deleted"))
}

// Tasks

func (h *CRM) CreateTask(c echo.Context) error {
	var task entities.Task
	if err := c.Bind(&task); err != nil {
		return respondBadRequest(c, "Invalid JSON")
	}
	if task.Title == "" {
		return respondBadRequest(c, "Missing title")
	}
	if task.Status == "" {
		task.Status = entities.TaskStatusPending
	}
	if task.Priority == "" {
		task.Priority = entities.TaskPriorityMedium
	}
	task.ID = 0

	if err := h.crmService.CreateTask(c.Request().Context(), &task); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, task)
}

func (h *CRM) GetTask(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, usecaseErrors.ErrTaskNotFound)
	}
	task, err := h.crmService.GetTask(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, task)
}

func (h *CRM) ListTasks(c echo.Context) error {
	tasks, err := h.crmService.ListTasks(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, tasks)
}

func (h *CRM) UpdateTask(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, usecaseErrors.ErrTaskNotFound)
	}
	task, err := h.crmService.GetTask(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	if err := c.Bind(task); err != nil {
		return respondBadRequest(c, "Invalid JSON")
	}
	task.ID = id

	if err := h.crmService.UpdateTask(c.Request().Context(), task); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, task)
}

func (h *CRM) DeleteTask(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, usecaseErrors.ErrTaskNotFound)
	}
	if err := h.crmService.DeleteTask(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, common.NewSuccessResponse("Task deleted"))
}

// DashboardStats handles GET /v1/dashboard/stats
func (h *CRM) DashboardStats(c echo.Context) error {
	stats, err := h.crmService.GetDashboardStats(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
