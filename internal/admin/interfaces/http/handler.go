// 包 http 后台管理的 HTTP 接口层
package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/wyfcoding/jobboard/internal/admin/application"
	"github.com/wyfcoding/jobboard/internal/admin/domain"
	"github.com/wyfcoding/jobboard/pkg/metrics"
)

// IdentityResolver 从请求解析调用方身份
// 认证由外部网关完成，这里只消费解析结果；解析失败返回 false
type IdentityResolver func(c *gin.Context) (domain.Identity, bool)

// HeaderIdentityResolver 信任网关注入的身份头
// X-Account-ID / X-Account-Name / X-Account-Admin 由入口网关鉴权后写入
func HeaderIdentityResolver() IdentityResolver {
	return func(c *gin.Context) (domain.Identity, bool) {
		rawID := c.GetHeader("X-Account-ID")
		if rawID == "" {
			return domain.Identity{}, false
		}
		id, err := strconv.ParseUint(rawID, 10, 64)
		if err != nil {
			return domain.Identity{}, false
		}
		return domain.Identity{
			AccountID: uint(id),
			Name:      c.GetHeader("X-Account-Name"),
			IsAdmin:   c.GetHeader("X-Account-Admin") == "true",
		}, true
	}
}

type Handler struct {
	app     *application.AdminService
	resolve IdentityResolver
	metrics *metrics.Metrics
}

// NewHandler 注册后台管理路由
func NewHandler(r *gin.Engine, app *application.AdminService, resolve IdentityResolver, m *metrics.Metrics) {
	h := &Handler{app: app, resolve: resolve, metrics: m}

	g := r.Group("/api/admin")
	{
		g.GET("/stats", h.GetStats)

		g.GET("/users", h.SearchAccounts)
		g.GET("/users/:userId", h.GetAccount)
		g.PUT("/users/:userId", h.UpdateAccount)
		g.DELETE("/users/:userId", h.DeleteAccount)
		g.DELETE("/users/:userId/resume", h.DeleteResume)

		g.GET("/resumes", h.SearchResumes)
		g.GET("/resumes/:resumeId", h.GetResume)

		g.GET("/companies", h.SearchCompanies)
		g.GET("/companies/pending", h.ListPendingCompanies)
		g.GET("/companies/:companyId", h.GetCompany)
		g.PATCH("/companies/:companyId/status", h.UpdateCompanyStatus)
		g.PATCH("/companies/:companyId/delist", h.SoftDelistCompany)
		g.DELETE("/companies/:companyId", h.DeleteCompany)

		g.GET("/job-posts", h.SearchJobPostings)
		g.GET("/job-posts/:jobPostId", h.GetJobPosting)
		g.PATCH("/job-posts/:jobPostId/status", h.UpdateJobPostingStatus)
		g.DELETE("/job-posts/:jobPostId", h.DeleteJobPosting)

		g.GET("/applications", h.SearchApplications)

		g.GET("/reviews", h.SearchReviews)
		g.GET("/reviews/:reviewId", h.GetReview)
		g.PUT("/reviews/:reviewId", h.UpdateReview)
		g.DELETE("/reviews/:reviewId", h.DeleteReview)
		g.DELETE("/reviews/:reviewId/comments/:commentId", h.DeleteComment)

		g.GET("/comments", h.SearchComments)

		g.GET("/notices", h.ListNotices)
		g.POST("/notices", h.CreateNotice)
		g.GET("/notices/:noticeId", h.GetNotice)
		g.PUT("/notices/:noticeId", h.UpdateNotice)
		g.DELETE("/notices/:noticeId", h.DeleteNotice)
	}
}

// actor 解析失败时返回零值身份，由门面层统一判为未授权
func (h *Handler) actor(c *gin.Context) domain.Identity {
	actor, ok := h.resolve(c)
	if !ok {
		return domain.Identity{}
	}
	return actor
}

func (h *Handler) countSearch(family string) {
	if h.metrics != nil {
		h.metrics.SearchesTotal.WithLabelValues(family).Inc()
	}
}

func (h *Handler) countTransition(entity string, err error) {
	if h.metrics == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "failed"
	}
	h.metrics.StatusTransitionsTotal.WithLabelValues(entity, outcome).Inc()
}

func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return uint(id), true
}

func parseSort(c *gin.Context) domain.SortSpec {
	return domain.SortSpec{
		Key:        c.Query("sort"),
		Descending: c.Query("desc") == "true",
	}
}

func parseLimit(c *gin.Context) int {
	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil {
		return 0
	}
	return limit
}

// respondError 将领域错误映射为 HTTP 状态码
func respondError(c *gin.Context, err error) {
	var cascadeErr *domain.CascadeError
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": "administrator privileges required"})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &cascadeErr):
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":  cascadeErr.Error(),
			"entity": cascadeErr.Entity,
			"step":   cascadeErr.Step,
		})
	case errors.Is(err, domain.ErrStorageUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storage unavailable"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.app.GetDashboardStats(c.Request.Context(), h.actor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *Handler) SearchAccounts(c *gin.Context) {
	h.countSearch("accounts")
	filter := domain.AccountFilter{
		Name:  c.Query("userName"),
		Email: c.Query("userEmail"),
		Phone: c.Query("userPhone"),
	}
	accounts, err := h.app.SearchAccounts(c.Request.Context(), h.actor(c), filter, parseSort(c), parseLimit(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, accounts)
}

func (h *Handler) GetAccount(c *gin.Context) {
	id, ok := parseID(c, "userId")
	if !ok {
		return
	}
	account, err := h.app.GetAccount(c.Request.Context(), h.actor(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, account)
}

func (h *Handler) UpdateAccount(c *gin.Context) {
	id, ok := parseID(c, "userId")
	if !ok {
		return
	}
	var req struct {
		Name  *string `json:"name"`
		Email *string `json:"email"`
		Phone *string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	err := h.app.UpdateAccount(c.Request.Context(), h.actor(c), id, application.UpdateAccountCommand{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func (h *Handler) DeleteAccount(c *gin.Context) {
	id, ok := parseID(c, "userId")
	if !ok {
		return
	}
	if err := h.app.DeleteAccountCascade(c.Request.Context(), h.actor(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "account and related data deleted"})
}

func (h *Handler) DeleteResume(c *gin.Context) {
	id, ok := parseID(c, "userId")
	if !ok {
		return
	}
	if err := h.app.DeleteResume(c.Request.Context(), h.actor(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func (h *Handler) SearchResumes(c *gin.Context) {
	h.countSearch("resumes")
	filter := domain.ResumeFilter{
		AccountName: c.Query("userName"),
		Title:       c.Query("resumeTitle"),
		JobCategory: c.Query("resumeJobCategory"),
		JobType:     c.Query("resumeJobType"),
	}
	resumes, err := h.app.SearchResumes(c.Request.Context(), h.actor(c), filter, parseSort(c), parseLimit(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resumes)
}

func (h *Handler) GetResume(c *gin.Context) {
	id, ok := parseID(c, "resumeId")
	if !ok {
		return
	}
	resume, err := h.app.GetResume(c.Request.Context(), h.actor(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resume)
}

func (h *Handler) SearchCompanies(c *gin.Context) {
	h.countSearch("companies")
	filter := domain.CompanyFilter{
		Name:               c.Query("companyName"),
		OwnerName:          c.Query("companyOwnerName"),
		Phone:              c.Query("companyPhone"),
		RegistrationNumber: c.Query("companyRegistrationNumber"),
		ApprovalStatus:     c.Query("companyApprovalStatus"),
	}
	companies, err := h.app.SearchCompanies(c.Request.Context(), h.actor(c), filter, parseSort(c), parseLimit(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, companies)
}

func (h *Handler) ListPendingCompanies(c *gin.Context) {
	companies, err := h.app.ListPendingCompanies(c.Request.Context(), h.actor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, companies)
}

func (h *Handler) GetCompany(c *gin.Context) {
	id, ok := parseID(c, "companyId")
	if !ok {
		return
	}
	company, err := h.app.GetCompany(c.Request.Context(), h.actor(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, company)
}

func (h *Handler) UpdateCompanyStatus(c *gin.Context) {
	id, ok := parseID(c, "companyId")
	if !ok {
		return
	}
	var req struct {
		ApprovalStatus string `json:"companyApprovalStatus"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	err := h.app.SetCompanyApprovalStatus(c.Request.Context(), h.actor(c), id, req.ApprovalStatus)
	h.countTransition("company", err)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) SoftDelistCompany(c *gin.Context) {
	id, ok := parseID(c, "companyId")
	if !ok {
		return
	}
	if err := h.app.SoftDelistCompanyJobPostings(c.Request.Context(), h.actor(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) DeleteCompany(c *gin.Context) {
	id, ok := parseID(c, "companyId")
	if !ok {
		return
	}
	if err := h.app.DeleteCompanyCascade(c.Request.Context(), h.actor(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "company and related data deleted"})
}

func (h *Handler) SearchJobPostings(c *gin.Context) {
	h.countSearch("job_postings")
	filter := domain.JobPostingFilter{
		CompanyName: c.Query("companyName"),
		Title:       c.Query("jobPostTitle"),
	}
	if raw := c.Query("published"); raw != "" {
		published := raw == "true"
		filter.Published = &published
	}
	postings, err := h.app.SearchJobPostings(c.Request.Context(), h.actor(c), filter, parseSort(c), parseLimit(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, postings)
}

func (h *Handler) GetJobPosting(c *gin.Context) {
	id, ok := parseID(c, "jobPostId")
	if !ok {
		return
	}
	posting, err := h.app.GetJobPosting(c.Request.Context(), h.actor(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, posting)
}

func (h *Handler) UpdateJobPostingStatus(c *gin.Context) {
	id, ok := parseID(c, "jobPostId")
	if !ok {
		return
	}
	var req struct {
		Status *bool `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Status == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status value is required"})
		return
	}
	err := h.app.SetJobPostingPublished(c.Request.Context(), h.actor(c), id, *req.Status)
	h.countTransition("job_posting", err)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) DeleteJobPosting(c *gin.Context) {
	id, ok := parseID(c, "jobPostId")
	if !ok {
		return
	}
	if err := h.app.DeleteJobPosting(c.Request.Context(), h.actor(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) SearchApplications(c *gin.Context) {
	h.countSearch("applications")
	filter := domain.ApplicationFilter{
		AccountName:     c.Query("userName"),
		CompanyName:     c.Query("companyName"),
		JobPostingTitle: c.Query("jobPostTitle"),
	}
	applications, err := h.app.SearchApplications(c.Request.Context(), h.actor(c), filter, parseSort(c), parseLimit(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, applications)
}

func (h *Handler) SearchReviews(c *gin.Context) {
	h.countSearch("reviews")
	filter := domain.ReviewFilter{
		Title:       c.Query("reviewTitle"),
		AccountName: c.Query("userName"),
		CompanyName: c.Query("companyName"),
	}
	reviews, err := h.app.SearchReviews(c.Request.Context(), h.actor(c), filter, parseSort(c), parseLimit(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}

func (h *Handler) GetReview(c *gin.Context) {
	id, ok := parseID(c, "reviewId")
	if !ok {
		return
	}
	detail, err := h.app.GetReview(c.Request.Context(), h.actor(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (h *Handler) UpdateReview(c *gin.Context) {
	id, ok := parseID(c, "reviewId")
	if !ok {
		return
	}
	var req struct {
		Title   *string `json:"title"`
		Content *string `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	err := h.app.UpdateReview(c.Request.Context(), h.actor(c), id, application.UpdateReviewCommand{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func (h *Handler) DeleteReview(c *gin.Context) {
	id, ok := parseID(c, "reviewId")
	if !ok {
		return
	}
	if err := h.app.DeleteReview(c.Request.Context(), h.actor(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func (h *Handler) DeleteComment(c *gin.Context) {
	id, ok := parseID(c, "commentId")
	if !ok {
		return
	}
	if err := h.app.DeleteComment(c.Request.Context(), h.actor(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func (h *Handler) SearchComments(c *gin.Context) {
	h.countSearch("comments")
	filter := domain.CommentFilter{
		ReviewTitle: c.Query("reviewTitle"),
		Content:     c.Query("commentContent"),
		AccountName: c.Query("userName"),
	}
	comments, err := h.app.SearchComments(c.Request.Context(), h.actor(c), filter, parseSort(c), parseLimit(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

func (h *Handler) ListNotices(c *gin.Context) {
	notices, err := h.app.ListNotices(c.Request.Context(), h.actor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, notices)
}

func (h *Handler) CreateNotice(c *gin.Context) {
	var req struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	notice, err := h.app.CreateNotice(c.Request.Context(), h.actor(c), application.NoticeCommand{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, notice)
}

func (h *Handler) GetNotice(c *gin.Context) {
	id, ok := parseID(c, "noticeId")
	if !ok {
		return
	}
	notice, err := h.app.GetNotice(c.Request.Context(), h.actor(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, notice)
}

func (h *Handler) UpdateNotice(c *gin.Context) {
	id, ok := parseID(c, "noticeId")
	if !ok {
		return
	}
	var req struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	err := h.app.UpdateNotice(c.Request.Context(), h.actor(c), id, application.NoticeCommand{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func (h *Handler) DeleteNotice(c *gin.Context) {
	id, ok := parseID(c, "noticeId")
	if !ok {
		return
	}
	if err := h.app.DeleteNotice(c.Request.Context(), h.actor(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusOK)
}
