package application

import (
	"context"

	"github.com/wyfcoding/jobboard/internal/admin/domain"
	"github.com/wyfcoding/jobboard/pkg/metrics"
)

// AdminService 后台管理门面，整合查询、写操作与级联删除
// 所有方法先校验调用方管理员权限，未授权时不触碰任何仓储
type AdminService struct {
	query   *AdminQueryService
	command *AdminCommandService
	cascade *CascadeService
}

// NewAdminService 创建后台管理门面实例
func NewAdminService(
	repos domain.Repositories,
	uow domain.UnitOfWork,
	publisher domain.EventPublisher,
	cache StatsCache,
	m *metrics.Metrics,
) *AdminService {
	return &AdminService{
		query:   NewAdminQueryService(repos, cache),
		command: NewAdminCommandService(repos, uow, publisher),
		cascade: NewCascadeService(uow, publisher, m),
	}
}

func authorize(actor domain.Identity) error {
	if !actor.IsAdmin {
		return domain.ErrUnauthorized
	}
	return nil
}

func (s *AdminService) SearchAccounts(ctx context.Context, actor domain.Identity, filter domain.AccountFilter, sort domain.SortSpec, limit int) ([]*domain.Account, error) {
	if err := authorize(actor); err != nil {
		return nil, err
	}
	return s.query.SearchAccounts(ctx, filter, sort, limit)
}

func (s *AdminService) SearchCompanies(ctx context.Context, actor domain.Identity, filter domain.CompanyFilter, sort domain.SortSpec, limit int) ([]*domain.Company, error) {
	if err := authorize(actor); err != nil {
		return nil, err
	}
	return s.query.SearchCompanies(ctx, filter, sort, limit)
}

func (s *AdminService) SearchJobPostings(ctx context.Context, actor domain.Identity, filter domain.JobPostingFilter, sort domain.SortSpec, limit int) ([]*domain.JobPostingRow, error) {
	if err := authorize(actor); err != nil {
		return nil, err
	}
	return s.query.SearchJobPostings(ctx, filter, sort, limit)
}

func (s *AdminService) SearchApplications(ctx context.Context, actor domain.Identity, filter domain.ApplicationFilter, sort domain.SortSpec, limit int) ([]*domain.ApplicationRow, error) {
	if err := authorize(actor); err != nil {
		return nil, err
	}
	return s.query.SearchApplications(ctx, filter, sort, limit)
}

func (s *AdminService) SearchResumes(ctx context.Context, actor domain.Identity, filter domain.ResumeFilter, sort domain.SortSpec, limit int) ([]*domain.ResumeRow, error) {
	if err := authorize(actor); err != nil {
		return nil, err
	}
	return s.query.SearchResumes(ctx, filter, sort, limit)
}

func (s *AdminService) SearchReviews(ctx context.Context, actor domain.Identity, filter domain.ReviewFilter, sort domain.SortSpec, limit int) ([]*domain.ReviewRow, error) {
	if err := authorize(actor); err != nil {
		return nil, err
	}
	return s.query.SearchReviews(ctx, filter, sort, limit)
}

func (s *AdminService) SearchComments(ctx context.Context, actor domain.Identity, filter domain.CommentFilter, sort domain.SortSpec, limit int) ([]*domain.CommentRow, error) {
	if err := authorize(actor); err != nil {
		return nil, err
	}
	return s.query.SearchComments(ctx, filter, sort, limit)
}

func (s *AdminService) GetAccount(ctx context.Context, actor domain.Identity, id uint) (*domain.Account, error) {
	if err := authorize(actor); err != nil {
		return nil, err
	}
	return s.query.GetAccount(ctx, id)
}

func (s *AdminService) UpdateAccount(ctx context.Context, actor domain.Identity, id uint, cmd UpdateAccountCommand) error {
	if err := authorize(actor); err != nil {
		return err
	}
	return s.command.UpdateAccount(ctx, id, cmd)
}

func (s *AdminService) DeleteAccountCascade(ctx context.Context, actor domain.Identity, id uint) error {
	if err := authorize(actor); err != nil {
		return err
	}
	return s.cascade.DeleteAccountCascade(ctx, actor, id)
}

func (s *AdminService) GetCompany(ctx context.Context, actor domain.Identity, id uint) (*domain.Company, error) {
	if err := authorize(actor); err != nil {
		return nil, err
	}
	return s.query.GetCompany(ctx, id)
}

func (s *AdminService) ListPendingCompanies(ctx context.Context, actor domain.Identity) ([]*domain.Company, error) {
	if err := authorize(actor); err != nil {
		return nil, err
	}
	return s.query.ListPendingCompanies(ctx)
}

func (s *AdminService) SetCompanyApprovalStatus(ctx context.Context, actor domain.Identity, id uint, status string) error {
	if err := authorize(actor); err != nil {
		return err
	}
	return s.command.SetCompanyApprovalStatus(ctx, actor, id, status)
}

func (s *AdminService) DeleteCompanyCascade(ctx context.Context, actor domain.Identity, id uint) error {
	if err := authorize(actor); err != nil {
		return err
	}
	return s.cascade.DeleteCompanyCascade(ctx, actor, id)
}

func (s *AdminService) SoftDelistCompanyJobPostings(ctx context.Context, actor domain.Identity, id uint) error {
	if err := authorize(actor); err != nil {
		return err
	}
	return s.command.SoftDelistCompanyJobPostings(ctx, id)
}

func (s *AdminService) GetJobPosting(ctx context.Context, actor domain.Identity, id uint) (*domain.JobPosting, error) {
	if err := authorize(actor); err != nil {
		return nil, err
	}
	return s.query.GetJobPosting(ctx, id)
}

func (s *AdminService) SetJobPostingPublished(ctx context.Context, actor domain.Identity, id uint, published bool) error {
	if err := authorize(actor); err != nil {
		return err
	}
	return s.command.SetJobPostingPublished(ctx, actor, id, published)
}

func (s *AdminService) DeleteJobPosting(ctx context.Context, actor domain.Identity, id uint) error {
	if err := authorize(actor); err != nil {
		return err
	}
	return s.command.DeleteJobPosting(ctx, id)
}

func (s *AdminService) GetResume(ctx context.Context, actor domain.Identity, id uint) (*domain.Resume, error) {
	if err := authorize(actor); err != nil {
		return nil, err
	}
	return s.query.GetResume(ctx, id)
}

func (s *AdminService) DeleteResume(ctx context.Context, actor domain.Identity, accountID uint) error {
	if err := authorize(actor); err != nil {
		return err
	}
	return s.command.DeleteResume(ctx, accountID)
}

func (s *AdminService) GetReview(ctx context.Context, actor domain.Identity, id uint) (*ReviewDetail, error) {
	if err := authorize(actor); err != nil {
		return nil, err
	}
	return s.query.GetReview(ctx, id)
}

func (s *AdminService) UpdateReview(ctx context.Context, actor domain.Identity, id uint, cmd UpdateReviewCommand) error {
	if err := authorize(actor); err != nil {
		return err
	}
	return s.command.UpdateReview(ctx, id, cmd)
}

func (s *AdminService) DeleteReview(ctx context.Context, actor domain.Identity, id uint) error {
	if err := authorize(actor); err != nil {
		return err
	}
	return s.command.DeleteReview(ctx, id)
}

func (s *AdminService) DeleteComment(ctx context.Context, actor domain.Identity, id uint) error {
	if err := authorize(actor); err != nil {
		return err
	}
	return s.command.DeleteComment(ctx, id)
}

func (s *AdminService) ListNotices(ctx context.Context, actor domain.Identity) ([]*domain.Notice, error) {
	if err := authorize(actor); err != nil {
		return nil, err
	}
	return s.query.ListNotices(ctx)
}

func (s *AdminService) GetNotice(ctx context.Context, actor domain.Identity, id uint) (*domain.Notice, error) {
	if err := authorize(actor); err != nil {
		return nil, err
	}
	return s.query.GetNotice(ctx, id)
}

func (s *AdminService) CreateNotice(ctx context.Context, actor domain.Identity, cmd NoticeCommand) (*domain.Notice, error) {
	if err := authorize(actor); err != nil {
		return nil, err
	}
	return s.command.CreateNotice(ctx, cmd)
}

func (s *AdminService) UpdateNotice(ctx context.Context, actor domain.Identity, id uint, cmd NoticeCommand) error {
	if err := authorize(actor); err != nil {
		return err
	}
	return s.command.UpdateNotice(ctx, id, cmd)
}

func (s *AdminService) DeleteNotice(ctx context.Context, actor domain.Identity, id uint) error {
	if err := authorize(actor); err != nil {
		return err
	}
	return s.command.DeleteNotice(ctx, id)
}

func (s *AdminService) GetDashboardStats(ctx context.Context, actor domain.Identity) (*DashboardStats, error) {
	if err := authorize(actor); err != nil {
		return nil, err
	}
	return s.query.GetDashboardStats(ctx)
}
