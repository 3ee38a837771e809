package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/project_books/internal/core/ports/services"
	"github.com/SscSPs/project_books/internal/dto"
	"github.com/SscSPs/project_books/internal/middleware"
	"github.com/SscSPs/project_books/internal/utils"
	"github.com/gin-gonic/gin"
)

// employeeHandler handles employees and payroll.
type employeeHandler struct {
	employeeService portssvc.EmployeeSvcFacade
}

func registerEmployeeRoutes(rg *gin.RouterGroup, employeeService portssvc.EmployeeSvcFacade) {
	h := &employeeHandler{employeeService: employeeService}

	employees := rg.Group("/employees")
	{
		employees.POST("", h.createEmployee)
		employees.GET("", h.listEmployees)
		employees.GET("/:employeeID", h.getEmployee)
		employees.PUT("/:employeeID", h.updateEmployee)
		employees.DELETE("/:employeeID", h.deactivateEmployee)
		employees.POST("/:employeeID/salary-payments", h.paySalary)
		employees.GET("/:employeeID/salary-payments", h.listSalaryPayments)
	}
}

func (h *employeeHandler) createEmployee(c *gin.Context) {
	var req dto.CreateEmployeeRequest
	if !bindJSON(c, &req) {
		return
	}
	employee, err := h.employeeService.CreateEmployee(c.Request.Context(), projectID(c), req)
	if err != nil {
		respondError(c, "create employee", err)
		return
	}
	c.JSON(http.StatusCreated, employee)
}

func (h *employeeHandler) getEmployee(c *gin.Context) {
	employee, err := h.employeeService.GetEmployee(c.Request.Context(), projectID(c), c.Param("employeeID"))
	if err != nil {
		respondError(c, "retrieve employee", err)
		return
	}
	c.JSON(http.StatusOK, employee)
}

func (h *employeeHandler) listEmployees(c *gin.Context) {
	employees, err := h.employeeService.ListEmployees(c.Request.Context(), projectID(c))
	if err != nil {
		respondError(c, "list employees", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"employees": employees})
}

func (h *employeeHandler) updateEmployee(c *gin.Context) {
	var req dto.UpdateEmployeeRequest
	if !bindJSON(c, &req) {
		return
	}
	employee, err := h.employeeService.UpdateEmployee(c.Request.Context(), projectID(c), c.Param("employeeID"), req)
	if err != nil {
		respondError(c, "update employee", err)
		return
	}
	c.JSON(http.StatusOK, employee)
}

func (h *employeeHandler) deactivateEmployee(c *gin.Context) {
	if err := h.employeeService.DeactivateEmployee(c.Request.Context(), projectID(c), c.Param("employeeID")); err != nil {
		respondError(c, "deactivate employee", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// paySalary records a payroll run together with its expense.
func (h *employeeHandler) paySalary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	employeeID := c.Param("employeeID")
	var req dto.PaySalaryRequest
	if !bindJSON(c, &req) {
		return
	}

	logger = logger.With(slog.String("employee_id", employeeID))
	resp, err := h.employeeService.PaySalary(c.Request.Context(), projectID(c), employeeID, req)
	if err != nil {
		respondError(c, "pay salary", err)
		return
	}

	logger.Info("Salary paid", slog.String("payment_id", resp.Payment.PaymentID), slog.String("net_salary", utils.FormatAmount(resp.Payment.NetSalary)))
	c.JSON(http.StatusCreated, resp)
}

func (h *employeeHandler) listSalaryPayments(c *gin.Context) {
	payments, err := h.employeeService.ListSalaryPayments(c.Request.Context(), projectID(c), c.Param("employeeID"))
	if err != nil {
		respondError(c, "list salary payments", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payments": payments})
}
