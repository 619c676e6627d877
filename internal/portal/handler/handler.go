package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/shariin1057/vendor-valuate/internal/portal/entity"
	"github.com/shariin1057/vendor-valuate/internal/portal/service"
)

// Handlers 处理器集合
type Handlers struct {
	Auth       *AuthHandler
	User       *UserHandler
	Vendor     *VendorHandler
	Template   *TemplateHandler
	Period     *PeriodHandler
	Evaluation *EvaluationHandler
	Dashboard  *DashboardHandler
	Report     *ReportHandler
	Export     *ExportHandler
	Evidence   *EvidenceHandler
	Audit      *AuditHandler
	Branding   *BrandingHandler
}

// NewHandlers 创建处理器集合
func NewHandlers(
	authSvc *service.AuthService,
	userSvc *service.UserService,
	vendorSvc *service.VendorService,
	templateSvc *service.TemplateService,
	periodSvc *service.PeriodService,
	evalSvc *service.EvaluationService,
	dashboardSvc *service.DashboardService,
	reportSvc *service.ReportService,
	exportSvc *service.ExportService,
	evidenceSvc *service.EvidenceService,
	brandingSvc *service.BrandingService,
	auditRepo AuditReader,
) *Handlers {
	return &Handlers{
		Auth:       NewAuthHandler(authSvc),
		User:       NewUserHandler(userSvc),
		Vendor:     NewVendorHandler(vendorSvc),
		Template:   NewTemplateHandler(templateSvc),
		Period:     NewPeriodHandler(periodSvc),
		Evaluation: NewEvaluationHandler(evalSvc),
		Dashboard:  NewDashboardHandler(dashboardSvc),
		Report:     NewReportHandler(reportSvc),
		Export:     NewExportHandler(exportSvc),
		Evidence:   NewEvidenceHandler(evidenceSvc),
		Audit:      NewAuditHandler(auditRepo),
		Branding:   NewBrandingHandler(brandingSvc),
	}
}

// === 响应辅助函数 ===

type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type ListResponse struct {
	Items      interface{} `json:"items"`
	Pagination *Pagination `json:"pagination"`
}

type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(200, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(201, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

func Error(c *gin.Context, code int, message string) {
	statusCode := code / 100
	if statusCode < 100 || statusCode > 599 {
		statusCode = 500
	}
	c.JSON(statusCode, Response{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, message string) {
	Error(c, 40000, message)
}

func Unauthorized(c *gin.Context, message string) {
	Error(c, 40100, message)
}

func NotFound(c *gin.Context, message string) {
	Error(c, 40400, message)
}

func Forbidden(c *gin.Context, message string) {
	Error(c, 40300, message)
}

func Conflict(c *gin.Context, message string) {
	Error(c, 40900, message)
}

func InternalError(c *gin.Context, message string) {
	Error(c, 50000, message)
}

func GetUserID(c *gin.Context) string {
	userID, _ := c.Get("user_id")
	if id, ok := userID.(string); ok {
		return id
	}
	return ""
}

func GetUserName(c *gin.Context) string {
	name, _ := c.Get("user_name")
	if n, ok := name.(string); ok {
		return n
	}
	return ""
}

func GetDepartment(c *gin.Context) string {
	dept, _ := c.Get("department")
	if d, ok := dept.(string); ok {
		return d
	}
	return ""
}

// GetActor 从认证上下文组装审计主体
func GetActor(c *gin.Context) entity.Actor {
	return entity.Actor{ID: GetUserID(c), Name: GetUserName(c)}
}

func GetPagination(c *gin.Context) (page, pageSize int) {
	page = 1
	pageSize = 20

	if p := c.Query("page"); p != "" {
		if v, err := strconv.Atoi(p); err == nil && v > 0 {
			page = v
		}
	}

	if ps := c.Query("page_size"); ps != "" {
		if v, err := strconv.Atoi(ps); err == nil && v > 0 && v <= 100 {
			pageSize = v
		}
	}

	return page, pageSize
}

func totalPages(total int64, pageSize int) int {
	pages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		pages++
	}
	return pages
}
