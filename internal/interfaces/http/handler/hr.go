package handler

import (
	"github.com/crmdesk/backend/internal/application/hr"
	"github.com/gin-gonic/gin"
)

// EmployeeHandler serves employees
type EmployeeHandler struct {
	BaseHandler
	employeeService *hr.EmployeeService
}

// NewEmployeeHandler creates a new employee handler
func NewEmployeeHandler(employeeService *hr.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{employeeService: employeeService}
}

// Create godoc
// @Summary      Create employee
// @Tags         employees
// @Accept       json
// @Produce      json
// @Param        request body hr.EmployeeRequest true "Employee"
// @Success      201 {object} APIResponse[hr.EmployeeResponse]
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /employees [post]
func (h *EmployeeHandler) Create(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	var req hr.EmployeeRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.employeeService.Create(c.Request.Context(), userID, req)
	respondCreated(&h.BaseHandler, c, resp, err)
}

// Get godoc
// @Summary      Get employee
// @Tags         employees
// @Produce      json
// @Param        id path string true "Employee ID"
// @Success      200 {object} APIResponse[hr.EmployeeResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /employees/{id} [get]
func (h *EmployeeHandler) Get(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	resp, err := h.employeeService.GetByID(c.Request.Context(), userID, id)
	respond(&h.BaseHandler, c, resp, err)
}

// Update godoc
// @Summary      Update employee
// @Tags         employees
// @Accept       json
// @Produce      json
// @Param        id path string true "Employee ID"
// @Param        request body hr.EmployeeRequest true "Employee"
// @Success      200 {object} APIResponse[hr.EmployeeResponse]
// @Security     BearerAuth
// @Router       /employees/{id} [put]
func (h *EmployeeHandler) Update(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req hr.EmployeeRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.employeeService.Update(c.Request.Context(), userID, id, req)
	respond(&h.BaseHandler, c, resp, err)
}

// Delete godoc
// @Summary      Delete employee
// @Tags         employees
// @Param        id path string true "Employee ID"
// @Success      204
// @Security     BearerAuth
// @Router       /employees/{id} [delete]
func (h *EmployeeHandler) Delete(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	respondNoContent(&h.BaseHandler, c, h.employeeService.Delete(c.Request.Context(), userID, id))
}

// List godoc
// @Summary      List employees
// @Tags         employees
// @Produce      json
// @Param        status query string false "active or inactive"
// @Param        department_id query string false "Department ID"
// @Success      200 {object} APIResponse[[]hr.EmployeeResponse]
// @Security     BearerAuth
// @Router       /employees [get]
func (h *EmployeeHandler) List(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	var filter hr.EmployeeListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	page, err := h.employeeService.List(c.Request.Context(), userID, filter)
	respondPage(&h.BaseHandler, c, page, err)
}

// DepartmentHandler serves departments and their members
type DepartmentHandler struct {
	BaseHandler
	departmentService *hr.DepartmentService
}

// NewDepartmentHandler creates a new department handler
func NewDepartmentHandler(departmentService *hr.DepartmentService) *DepartmentHandler {
	return &DepartmentHandler{departmentService: departmentService}
}

// Create godoc
// @Summary      Create department
// @Tags         departments
// @Accept       json
// @Produce      json
// @Param        request body hr.DepartmentRequest true "Department"
// @Success      201 {object} APIResponse[hr.DepartmentResponse]
// @Security     BearerAuth
// @Router       /departments [post]
func (h *DepartmentHandler) Create(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	var req hr.DepartmentRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.departmentService.Create(c.Request.Context(), userID, req)
	respondCreated(&h.BaseHandler, c, resp, err)
}

// Get godoc
// @Summary      Get department
// @Tags         departments
// @Produce      json
// @Param        id path string true "Department ID"
// @Success      200 {object} APIResponse[hr.DepartmentResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /departments/{id} [get]
func (h *DepartmentHandler) Get(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	resp, err := h.departmentService.GetByID(c.Request.Context(), userID, id)
	respond(&h.BaseHandler, c, resp, err)
}

// Update godoc
// @Summary      Update department
// @Tags         departments
// @Accept       json
// @Produce      json
// @Param        id path string true "Department ID"
// @Param        request body hr.DepartmentRequest true "Department"
// @Success      200 {object} APIResponse[hr.DepartmentResponse]
// @Security     BearerAuth
// @Router       /departments/{id} [put]
func (h *DepartmentHandler) Update(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req hr.DepartmentRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.departmentService.Update(c.Request.Context(), userID, id, req)
	respond(&h.BaseHandler, c, resp, err)
}

// Delete godoc
// @Summary      Delete department
// @Tags         departments
// @Param        id path string true "Department ID"
// @Success      204
// @Security     BearerAuth
// @Router       /departments/{id} [delete]
func (h *DepartmentHandler) Delete(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	respondNoContent(&h.BaseHandler, c, h.departmentService.Delete(c.Request.Context(), userID, id))
}

// List godoc
// @Summary      List departments
// @Tags         departments
// @Produce      json
// @Param        search query string false "Search"
// @Success      200 {object} APIResponse[[]hr.DepartmentResponse]
// @Security     BearerAuth
// @Router       /departments [get]
func (h *DepartmentHandler) List(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	var filter hr.DepartmentListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	page, err := h.departmentService.List(c.Request.Context(), userID, filter)
	respondPage(&h.BaseHandler, c, page, err)
}

// AddMember godoc
// @Summary      Add department member
// @Tags         departments
// @Accept       json
// @Produce      json
// @Param        id path string true "Department ID"
// @Param        request body hr.DepartmentMemberRequest true "Member"
// @Success      200 {object} APIResponse[hr.DepartmentResponse]
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /departments/{id}/members [post]
func (h *DepartmentHandler) AddMember(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req hr.DepartmentMemberRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.departmentService.AddMember(c.Request.Context(), userID, id, req)
	respond(&h.BaseHandler, c, resp, err)
}

// RemoveMember godoc
// @Summary      Remove department member
// @Tags         departments
// @Produce      json
// @Param        id path string true "Department ID"
// @Param        employeeId path string true "Employee ID"
// @Success      200 {object} APIResponse[hr.DepartmentResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /departments/{id}/members/{employeeId} [delete]
func (h *DepartmentHandler) RemoveMember(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	employeeID, ok := h.pathID(c, "employeeId")
	if !ok {
		return
	}
	resp, err := h.departmentService.RemoveMember(c.Request.Context(), userID, id, employeeID)
	respond(&h.BaseHandler, c, resp, err)
}

// PayrollHandler serves payroll records and analytics
type PayrollHandler struct {
	BaseHandler
	payrollService *hr.PayrollService
}

// NewPayrollHandler creates a new payroll handler
func NewPayrollHandler(payrollService *hr.PayrollService) *PayrollHandler {
	return &PayrollHandler{payrollService: payrollService}
}

// Create godoc
// @Summary      Create payroll record
// @Tags         payroll
// @Accept       json
// @Produce      json
// @Param        request body hr.PayrollRequest true "Payroll"
// @Success      201 {object} APIResponse[hr.PayrollResponse]
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /payroll [post]
func (h *PayrollHandler) Create(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	var req hr.PayrollRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.payrollService.Create(c.Request.Context(), userID, req)
	respondCreated(&h.BaseHandler, c, resp, err)
}

// Get godoc
// @Summary      Get payroll record
// @Tags         payroll
// @Produce      json
// @Param        id path string true "Payroll ID"
// @Success      200 {object} APIResponse[hr.PayrollResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /payroll/{id} [get]
func (h *PayrollHandler) Get(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	resp, err := h.payrollService.GetByID(c.Request.Context(), userID, id)
	respond(&h.BaseHandler, c, resp, err)
}

// Update godoc
// @Summary      Update payroll record
// @Tags         payroll
// @Accept       json
// @Produce      json
// @Param        id path string true "Payroll ID"
// @Param        request body hr.PayrollRequest true "Payroll"
// @Success      200 {object} APIResponse[hr.PayrollResponse]
// @Security     BearerAuth
// @Router       /payroll/{id} [put]
func (h *PayrollHandler) Update(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req hr.PayrollRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.payrollService.Update(c.Request.Context(), userID, id, req)
	respond(&h.BaseHandler, c, resp, err)
}

// UpdateStatus godoc
// @Summary      Mark payroll paid or pending
// @Tags         payroll
// @Accept       json
// @Produce      json
// @Param        id path string true "Payroll ID"
// @Param        request body hr.UpdatePayrollStatusRequest true "Status"
// @Success      200 {object} APIResponse[hr.PayrollResponse]
// @Security     BearerAuth
// @Router       /payroll/{id}/status [patch]
func (h *PayrollHandler) UpdateStatus(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req hr.UpdatePayrollStatusRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.payrollService.UpdateStatus(c.Request.Context(), userID, id, req)
	respond(&h.BaseHandler, c, resp, err)
}

// Delete godoc
// @Summary      Delete payroll record
// @Tags         payroll
// @Param        id path string true "Payroll ID"
// @Success      204
// @Security     BearerAuth
// @Router       /payroll/{id} [delete]
func (h *PayrollHandler) Delete(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	respondNoContent(&h.BaseHandler, c, h.payrollService.Delete(c.Request.Context(), userID, id))
}

// List godoc
// @Summary      List payroll records
// @Tags         payroll
// @Produce      json
// @Param        employee_id query string false "Employee ID"
// @Param        status query string false "pending or paid"
// @Param        month query int false "Month"
// @Param        year query int false "Year"
// @Success      200 {object} APIResponse[[]hr.PayrollResponse]
// @Security     BearerAuth
// @Router       /payroll [get]
func (h *PayrollHandler) List(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	var filter hr.PayrollListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	page, err := h.payrollService.List(c.Request.Context(), userID, filter)
	respondPage(&h.BaseHandler, c, page, err)
}

// Analytics godoc
// @Summary      Payroll analytics
// @Description  Paid totals per day and per month; defaults to the last 12 months
// @Tags         payroll
// @Produce      json
// @Param        from query string false "From (YYYY-MM-DD)"
// @Param        to query string false "To (YYYY-MM-DD)"
// @Success      200 {object} APIResponse[hr.PayrollAnalyticsResponse]
// @Security     BearerAuth
// @Router       /payroll/analytics [get]
func (h *PayrollHandler) Analytics(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	var req hr.PayrollAnalyticsRequest
	if !h.bindQuery(c, &req) {
		return
	}
	resp, err := h.payrollService.Analytics(c.Request.Context(), userID, req)
	respond(&h.BaseHandler, c, resp, err)
}
